package model

import (
	"fmt"
	"time"
)

// HistoryTimeFormat is the clock format used in history lines
const HistoryTimeFormat = "15:04:05"

// HistoryEntry is one line of the download history
type HistoryEntry struct {
	At   time.Time `json:"at"`
	Text string    `json:"text"`
}

// String renders the entry as "[HH:MM:SS] text"
func (h HistoryEntry) String() string {
	return fmt.Sprintf("[%s] %s", h.At.Format(HistoryTimeFormat), h.Text)
}
