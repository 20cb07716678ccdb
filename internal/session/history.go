package session

import (
	"sync"
	"time"

	"github.com/ytget/playlist-downloader/internal/model"
)

// History is the in-memory download history of a session
type History struct {
	mu      sync.RWMutex
	entries []model.HistoryEntry
	now     func() time.Time
}

// NewHistory creates an empty history
func NewHistory() *History {
	return &History{now: time.Now}
}

// Add appends a timestamped entry and returns it
func (h *History) Add(text string) model.HistoryEntry {
	h.mu.Lock()
	defer h.mu.Unlock()
	entry := model.HistoryEntry{At: h.now(), Text: text}
	h.entries = append(h.entries, entry)
	return entry
}

// Entries returns a copy of all entries, oldest first
func (h *History) Entries() []model.HistoryEntry {
	h.mu.RLock()
	defer h.mu.RUnlock()
	out := make([]model.HistoryEntry, len(h.entries))
	copy(out, h.entries)
	return out
}

// Lines returns entries rendered as "[HH:MM:SS] text"
func (h *History) Lines() []string {
	entries := h.Entries()
	lines := make([]string, 0, len(entries))
	for _, e := range entries {
		lines = append(lines, e.String())
	}
	return lines
}

// Len returns the number of entries
func (h *History) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.entries)
}

// Clear removes all entries
func (h *History) Clear() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.entries = nil
}
