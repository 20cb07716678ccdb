// Package ui contains the Fyne desktop front-end. It turns user input into
// session requests and renders the session's updates on the main thread.
package ui
