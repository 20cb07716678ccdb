// Package cli implements the playlistdl command line front-end.
package cli
