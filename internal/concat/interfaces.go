package concat

import (
	"context"

	"github.com/ytget/playlist-downloader/internal/model"
)

// Combiner defines the interface for the concatenation service.
type Combiner interface {
	Combine(ctx context.Context, dir string, titles []string, format model.AudioFormat) (*Result, error)
	WritePlaylist(ctx context.Context, dir string, tracks []string) (string, error)
}
