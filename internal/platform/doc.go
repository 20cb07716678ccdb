package platform

// Package platform contains OS integration and external tooling glue:
// filesystem helpers, subprocess execution, binary discovery, and playlist
// metadata extraction via github.com/ytget/ytdlp/v2.
