package platform

import (
	"context"
	"fmt"

	"github.com/lrstanley/go-ytdlp"

	"github.com/ytget/playlist-downloader/internal/model"
)

// YTDLPProber reads single video metadata through the yt-dlp binary
type YTDLPProber struct{}

// NewYTDLPProber creates a prober
func NewYTDLPProber() *YTDLPProber {
	return &YTDLPProber{}
}

// ProbeVideo runs yt-dlp without downloading and reads the printed info
func (p *YTDLPProber) ProbeVideo(ctx context.Context, videoURL string) (model.Entry, error) {
	result, err := ytdlp.New().
		SkipDownload().
		PrintJSON().
		Run(ctx, videoURL)
	if err != nil {
		return model.Entry{}, err
	}

	infos, err := result.GetExtractedInfo()
	if err != nil {
		return model.Entry{}, fmt.Errorf("failed to read video info: %w", err)
	}
	if len(infos) == 0 {
		return model.Entry{}, fmt.Errorf("no info returned for %s", videoURL)
	}

	info := infos[0]
	entry := model.Entry{ID: info.ID, URL: videoURL}
	if info.Title != nil {
		entry.Title = *info.Title
	}
	if info.Thumbnail != nil {
		entry.Thumbnail = *info.Thumbnail
	}
	return entry, nil
}

// PlaylistTitle reads playlist_title from the first flat entry of the playlist
func (p *YTDLPProber) PlaylistTitle(ctx context.Context, playlistURL string) (string, error) {
	result, err := ytdlp.New().
		FlatPlaylist().
		PlaylistItems("1").
		SkipDownload().
		PrintJSON().
		Run(ctx, playlistURL)
	if err != nil {
		return "", err
	}

	infos, err := result.GetExtractedInfo()
	if err != nil {
		return "", fmt.Errorf("failed to read playlist info: %w", err)
	}
	for _, info := range infos {
		if info.PlaylistTitle != nil && *info.PlaylistTitle != "" {
			return *info.PlaylistTitle, nil
		}
	}
	return "", fmt.Errorf("no playlist title returned for %s", playlistURL)
}
