package model

import (
	"fmt"
	"strings"
)

// Source identifies where media is downloaded from
type Source string

const (
	SourceYouTube Source = "youtube"
	SourceSpotify Source = "spotify"
)

// Label returns the display name used by the front-ends
func (s Source) Label() string {
	switch s {
	case SourceSpotify:
		return "Spotify"
	default:
		return "YouTube"
	}
}

// ParseSource accepts both keys and display names, case-insensitively
func ParseSource(value string) (Source, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "youtube", "":
		return SourceYouTube, nil
	case "spotify":
		return SourceSpotify, nil
	default:
		return "", fmt.Errorf("unknown source: %q", value)
	}
}

// AudioFormat is the target audio container/codec
type AudioFormat string

const (
	FormatFLAC AudioFormat = "flac"
	FormatMP3  AudioFormat = "mp3"
)

// Ext returns the file extension without the dot
func (f AudioFormat) Ext() string {
	return string(f)
}

// ParseAudioFormat accepts "flac", "FLAC", "mp3" or "MP3"
func ParseAudioFormat(value string) (AudioFormat, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "flac", "":
		return FormatFLAC, nil
	case "mp3":
		return FormatMP3, nil
	default:
		return "", fmt.Errorf("unsupported audio format: %q", value)
	}
}

// Request describes a download triggered by a front-end
type Request struct {
	Source  Source      `json:"source"`
	URL     string      `json:"url"`
	Dir     string      `json:"dir"`
	Format  AudioFormat `json:"format"`
	Combine bool        `json:"combine"`
}

// Update is sent by a download worker to the presentation layer
type Update struct {
	RunID      string    `json:"run_id"`
	Source     Source    `json:"source"`
	Status     RunStatus `json:"status"`
	Progress   Progress  `json:"progress"`
	Message    string    `json:"message"`
	Warnings   []string  `json:"warnings,omitempty"`
	OutputPath string    `json:"output_path,omitempty"`
	Err        string    `json:"error,omitempty"`
}
