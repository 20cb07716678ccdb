package ui

import (
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"
)

const (
	AppIcon = "playlistdl.png"
)

// LoadLogoResource loads the logo from the working directory
func LoadLogoResource() (fyne.Resource, error) {
	return fyne.LoadResourceFromPath(AppIcon)
}

// LoadThumbnail fetches a thumbnail image. Any failure yields the stock media icon.
func LoadThumbnail(url string) fyne.Resource {
	if !strings.HasPrefix(url, "http://") && !strings.HasPrefix(url, "https://") {
		return theme.MediaMusicIcon()
	}
	res, err := fyne.LoadResourceFromURLString(url)
	if err != nil {
		return theme.MediaMusicIcon()
	}
	return res
}
