package ui

import "time"

// Icons
const (
	IconSettings = "⚙"
	IconFolder   = "📁"
)

// Layout sizing
const (
	WindowWidth  float32 = 720
	WindowHeight float32 = 640

	LogoSize float32 = 32

	ThumbnailWidth  float32 = 160
	ThumbnailHeight float32 = 90

	SettingsDialogWidth  float32 = 480
	SettingsDialogHeight float32 = 320

	PlaylistSplitOffset = 0.65
)

// Debounce durations
const (
	UIUpdateDebounce = 100 * time.Millisecond
)

// Text fragments
const (
	WarningSeparator = "\n"
)
