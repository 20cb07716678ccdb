package session

// Package session owns the state of one user session: the loaded playlist
// metadata, the single active download and the download history. Downloads
// run on a worker goroutine that reports model.Update values on a channel.
