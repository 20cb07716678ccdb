package model

// RunStatus represents the status of a download run
type RunStatus string

const (
	// RunStatusDownloading means media is being fetched
	RunStatusDownloading RunStatus = "Downloading"

	// RunStatusCombining means per-track files are being concatenated
	RunStatusCombining RunStatus = "Combining"

	// RunStatusCompleted means the run finished successfully
	RunStatusCompleted RunStatus = "Completed"

	// RunStatusError means the run failed with an error
	RunStatusError RunStatus = "Error"
)

// String returns the string representation of RunStatus
func (rs RunStatus) String() string {
	return string(rs)
}

// IsActive returns true if the run is still doing work
func (rs RunStatus) IsActive() bool {
	return rs == RunStatusDownloading || rs == RunStatusCombining
}

// IsFinished returns true if the run is in a terminal state
func (rs RunStatus) IsFinished() bool {
	return rs == RunStatusCompleted || rs == RunStatusError
}
