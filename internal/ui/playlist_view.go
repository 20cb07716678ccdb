package ui

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/ytget/playlist-downloader/internal/model"
)

const (
	entryRowFormat = "%d. %s"
	entryDoneMark  = "✓"
)

// PlaylistView shows the loaded playlist: thumbnail, title, summary and entries.
// Entries before the completed count are marked done.
type PlaylistView struct {
	info      *model.PlaylistInfo
	completed int

	thumbnail    *canvas.Image
	titleLabel   *widget.Label
	summaryLabel *widget.Label
	list         *widget.List
	container    *fyne.Container
}

// NewPlaylistView creates an empty playlist view
func NewPlaylistView() *PlaylistView {
	pv := &PlaylistView{}
	pv.createUI()
	return pv
}

func (pv *PlaylistView) createUI() {
	pv.thumbnail = canvas.NewImageFromResource(theme.MediaMusicIcon())
	pv.thumbnail.FillMode = canvas.ImageFillContain
	pv.thumbnail.SetMinSize(fyne.NewSize(ThumbnailWidth, ThumbnailHeight))

	pv.titleLabel = widget.NewLabel("")
	pv.titleLabel.TextStyle = fyne.TextStyle{Bold: true}
	pv.titleLabel.Wrapping = fyne.TextWrapWord
	pv.summaryLabel = widget.NewLabel("")

	pv.list = widget.NewList(
		func() int {
			if pv.info == nil {
				return 0
			}
			return len(pv.info.Entries)
		},
		func() fyne.CanvasObject {
			return container.NewBorder(nil, nil, nil, widget.NewLabel(entryDoneMark), widget.NewLabel(""))
		},
		pv.updateEntryRow,
	)

	header := container.NewBorder(nil, nil, pv.thumbnail, nil,
		container.NewVBox(pv.titleLabel, pv.summaryLabel))
	pv.container = container.NewBorder(header, nil, nil, nil, pv.list)
}

func (pv *PlaylistView) updateEntryRow(id widget.ListItemID, obj fyne.CanvasObject) {
	if pv.info == nil || id >= len(pv.info.Entries) {
		return
	}
	row := obj.(*fyne.Container)
	label := row.Objects[0].(*widget.Label)
	mark := row.Objects[1].(*widget.Label)

	label.SetText(pv.EntryText(id))
	if id < pv.completed {
		mark.Show()
	} else {
		mark.Hide()
	}
}

// EntryText returns the row text for entry id
func (pv *PlaylistView) EntryText(id int) string {
	return fmt.Sprintf(entryRowFormat, id+1, pv.info.Entries[id].Title)
}

// Container returns the view's root object
func (pv *PlaylistView) Container() *fyne.Container {
	return pv.container
}

// SetPlaylist shows info with its thumbnail; nil clears the view
func (pv *PlaylistView) SetPlaylist(info *model.PlaylistInfo, thumb fyne.Resource) {
	pv.info = info
	pv.completed = 0

	if thumb == nil {
		thumb = theme.MediaMusicIcon()
	}
	if info == nil {
		pv.titleLabel.SetText("")
		pv.summaryLabel.SetText("")
	} else {
		pv.titleLabel.SetText(info.Title)
		pv.summaryLabel.SetText(info.Summary())
	}
	pv.thumbnail.Resource = thumb
	pv.thumbnail.Refresh()
	pv.list.Refresh()
}

// SetCompleted marks the first n entries as downloaded
func (pv *PlaylistView) SetCompleted(n int) {
	if n == pv.completed {
		return
	}
	pv.completed = n
	pv.list.Refresh()
}

// Title returns the displayed title
func (pv *PlaylistView) Title() string {
	return pv.titleLabel.Text
}

// Summary returns the displayed summary
func (pv *PlaylistView) Summary() string {
	return pv.summaryLabel.Text
}
