package model

import (
	"testing"
	"time"
)

func TestPlaylistInfo_Summary(t *testing.T) {
	tests := []struct {
		name     string
		info     *PlaylistInfo
		expected string
	}{
		{"nil", nil, SummarySingle},
		{"single video", &PlaylistInfo{Entries: []Entry{{Title: "A"}}}, SummarySingle},
		{"playlist", &PlaylistInfo{IsPlaylist: true, Entries: []Entry{{Title: "A"}, {Title: "B"}}}, "Total Videos: 2"},
		{"playlist with one entry", &PlaylistInfo{IsPlaylist: true, Entries: []Entry{{Title: "A"}}}, "Total Videos: 1"},
		{"empty playlist", &PlaylistInfo{IsPlaylist: true}, SummarySingle},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.info.Summary(); got != tt.expected {
				t.Errorf("Expected %q, got %q", tt.expected, got)
			}
		})
	}
}

func TestPlaylistInfo_TotalItems(t *testing.T) {
	tests := []struct {
		entries  int
		expected int
	}{
		{0, 1},
		{1, 1},
		{2, 2},
		{7, 7},
	}

	for _, tt := range tests {
		info := &PlaylistInfo{Entries: make([]Entry, tt.entries)}
		if got := info.TotalItems(); got != tt.expected {
			t.Errorf("TotalItems() with %d entries = %d, expected %d", tt.entries, got, tt.expected)
		}
	}

	var nilInfo *PlaylistInfo
	if nilInfo.TotalItems() != 1 {
		t.Error("nil playlist info should count as one item")
	}
}

func TestPlaylistInfo_Thumbnail(t *testing.T) {
	info := &PlaylistInfo{Entries: []Entry{{Title: "A"}}}
	if info.Thumbnail() != DefaultThumbnail {
		t.Errorf("Expected placeholder thumbnail, got %s", info.Thumbnail())
	}

	info.Entries[0].Thumbnail = "https://i.ytimg.com/vi/abc/hqdefault.jpg"
	if info.Thumbnail() != "https://i.ytimg.com/vi/abc/hqdefault.jpg" {
		t.Errorf("Expected first entry thumbnail, got %s", info.Thumbnail())
	}
}

func TestPlaylistInfo_Titles(t *testing.T) {
	info := &PlaylistInfo{Entries: []Entry{{Title: "A"}, {Title: "B"}, {Title: "C"}}}
	titles := info.Titles()
	if len(titles) != 3 || titles[0] != "A" || titles[2] != "C" {
		t.Errorf("Expected [A B C], got %v", titles)
	}
}

func TestHistoryEntry_String(t *testing.T) {
	entry := HistoryEntry{
		At:   time.Date(2024, 5, 1, 9, 4, 7, 0, time.UTC),
		Text: "Spotify album downloaded.",
	}
	expected := "[09:04:07] Spotify album downloaded."
	if entry.String() != expected {
		t.Errorf("Expected %q, got %q", expected, entry.String())
	}
}
