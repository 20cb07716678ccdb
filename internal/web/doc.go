// Package web serves the browser front-end: a single embedded page and a
// small JSON API over the shared session.
package web
