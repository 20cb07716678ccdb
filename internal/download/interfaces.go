package download

import (
	"context"

	"github.com/ytget/playlist-downloader/internal/model"
)

// ItemDownloader downloads every item behind a URL and reports per-item
// events on the channel. It never closes the channel.
type ItemDownloader interface {
	Download(ctx context.Context, req model.Request, events chan<- model.ItemEvent) error
}

// AlbumDownloader downloads a whole album without progress reporting.
type AlbumDownloader interface {
	Download(ctx context.Context, req model.Request) error
}
