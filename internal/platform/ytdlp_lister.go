package platform

import (
	"context"

	"github.com/ytget/ytdlp/v2"

	"github.com/ytget/playlist-downloader/internal/model"
)

// YTDLPLister lists playlists with the pure-Go ytdlp client
type YTDLPLister struct {
	limit int
}

// NewYTDLPLister creates a lister that fetches every playlist item
func NewYTDLPLister() *YTDLPLister {
	return &YTDLPLister{}
}

// ListPlaylist returns the playlist entries in order
func (l *YTDLPLister) ListPlaylist(ctx context.Context, playlistID string) ([]model.Entry, error) {
	items, err := ytdlp.New().GetPlaylistItemsAll(ctx, playlistID, l.limit)
	if err != nil {
		return nil, err
	}

	entries := make([]model.Entry, 0, len(items))
	for _, it := range items {
		entries = append(entries, model.Entry{
			ID:    it.VideoID,
			Title: it.Title,
		})
	}
	return entries, nil
}
