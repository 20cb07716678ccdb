package concat

// Package concat joins the per-track audio files of a downloaded playlist into
// one file with ffmpeg's concat demuxer, and can export the tracks as an M3U
// playlist.
