package download

// Package download fetches media for a request. YouTube downloads run yt-dlp
// through github.com/lrstanley/go-ytdlp and report per-item progress on a
// channel; Spotify albums are fetched by the spotdl binary.
