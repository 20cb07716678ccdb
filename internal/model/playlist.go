package model

import (
	"fmt"
	"time"
)

// DefaultThumbnail is shown when no entry carries a thumbnail
const DefaultThumbnail = "https://via.placeholder.com/320x180?text=No+Thumbnail"

// Summary texts
const (
	SummaryTotalFormat = "Total Videos: %d"
	SummarySingle      = "Single Video"
)

// Entry represents a single item of a playlist
type Entry struct {
	ID        string `json:"id,omitempty"`
	Title     string `json:"title"`
	URL       string `json:"url,omitempty"`
	Thumbnail string `json:"thumbnail,omitempty"`
}

// PlaylistInfo is the metadata fetched for a URL before downloading.
// It is read-only once fetched and replaced wholesale on the next fetch.
type PlaylistInfo struct {
	Title      string    `json:"title"`
	URL        string    `json:"url"`
	IsPlaylist bool      `json:"is_playlist"`
	Entries    []Entry   `json:"entries"`
	FetchedAt  time.Time `json:"fetched_at"`
}

// Summary returns the short description shown next to the title
func (p *PlaylistInfo) Summary() string {
	if p == nil || !p.IsPlaylist || len(p.Entries) == 0 {
		return SummarySingle
	}
	return fmt.Sprintf(SummaryTotalFormat, len(p.Entries))
}

// TotalItems returns how many items a download of this URL is expected to produce.
// Anything that is not a multi-entry playlist counts as one item.
func (p *PlaylistInfo) TotalItems() int {
	if p == nil || len(p.Entries) <= 1 {
		return 1
	}
	return len(p.Entries)
}

// Titles returns entry titles in playlist order
func (p *PlaylistInfo) Titles() []string {
	if p == nil {
		return nil
	}
	titles := make([]string, 0, len(p.Entries))
	for _, e := range p.Entries {
		titles = append(titles, e.Title)
	}
	return titles
}

// Thumbnail returns the first entry's thumbnail or the placeholder
func (p *PlaylistInfo) Thumbnail() string {
	if p != nil && len(p.Entries) > 0 && p.Entries[0].Thumbnail != "" {
		return p.Entries[0].Thumbnail
	}
	return DefaultThumbnail
}
