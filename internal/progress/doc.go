package progress

// Package progress turns per-item byte counts reported by a downloader into a
// single overall completion value for a multi-item run.
