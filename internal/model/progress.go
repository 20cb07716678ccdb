package model

// Item event statuses reported by the downloader
const (
	ItemStatusDownloading = "downloading"
	ItemStatusFinished    = "finished"
)

// ItemEvent is a per-item status report from a downloader.
// Byte counts of zero mean unknown.
type ItemEvent struct {
	Status             string
	DownloadedBytes    int64
	TotalBytes         int64
	TotalBytesEstimate int64
	Speed              float64 // bytes per second
	Title              string
}

// ProgressState tracks item completion for one in-flight run
type ProgressState struct {
	ItemsCompleted int `json:"items_completed"`
	TotalItems     int `json:"total_items"`
}

// Progress is the aggregated view of a run
type Progress struct {
	Overall        float64 `json:"overall"` // 0.0 to 1.0
	Indeterminate  bool    `json:"indeterminate"`
	Message        string  `json:"message"`
	ItemsCompleted int     `json:"items_completed"`
	TotalItems     int     `json:"total_items"`
}

// Percent returns Overall as a whole percentage
func (p Progress) Percent() int {
	return int(p.Overall * 100)
}
