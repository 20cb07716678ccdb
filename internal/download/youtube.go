package download

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/lrstanley/go-ytdlp"
	"github.com/rs/zerolog"

	"github.com/ytget/playlist-downloader/internal/model"
)

// yt-dlp options
const (
	BestAudioFormat  = "bestaudio/best"
	OutputTemplate   = "%(title)s.%(ext)s"
	MP3Quality       = "192K"
	BestQuality      = "0"
	ProgressInterval = 500 * time.Millisecond
)

// runFunc executes yt-dlp for url and forwards progress updates
type runFunc func(ctx context.Context, req model.Request, onProgress func(ytdlp.ProgressUpdate)) error

// YouTube downloads best audio with yt-dlp and converts it to the requested format
type YouTube struct {
	logger zerolog.Logger
	run    runFunc
}

// NewYouTube creates a YouTube downloader
func NewYouTube(logger zerolog.Logger) *YouTube {
	return &YouTube{
		logger: logger,
		run:    runYTDLP,
	}
}

// AudioQuality returns the yt-dlp --audio-quality value for a format
func AudioQuality(format model.AudioFormat) string {
	if format == model.FormatMP3 {
		return MP3Quality
	}
	return BestQuality
}

// Download fetches req.URL into req.Dir, sending item events until it returns.
// yt-dlp runs once; a second attempt would report finished items again.
func (y *YouTube) Download(ctx context.Context, req model.Request, events chan<- model.ItemEvent) error {
	onProgress := func(update ytdlp.ProgressUpdate) {
		ev := toItemEvent(update, time.Now())
		select {
		case events <- ev:
		case <-ctx.Done():
		}
	}

	if err := y.run(ctx, req, onProgress); err != nil {
		y.logger.Warn().Err(err).Str("url", req.URL).Msg("download failed")
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return err
	}
	return nil
}

func runYTDLP(ctx context.Context, req model.Request, onProgress func(ytdlp.ProgressUpdate)) error {
	dl := ytdlp.New().
		Format(BestAudioFormat).
		ExtractAudio().
		AudioFormat(string(req.Format)).
		AudioQuality(AudioQuality(req.Format)).
		Output(filepath.Join(req.Dir, OutputTemplate)).
		ProgressFunc(ProgressInterval, onProgress)

	if _, err := dl.Run(ctx, req.URL); err != nil {
		return fmt.Errorf("yt-dlp failed: %w", err)
	}
	return nil
}

// toItemEvent converts a yt-dlp progress update. Speed is averaged since the
// item started.
func toItemEvent(update ytdlp.ProgressUpdate, now time.Time) model.ItemEvent {
	ev := model.ItemEvent{
		Status:          string(update.Status),
		DownloadedBytes: int64(update.DownloadedBytes),
		TotalBytes:      int64(update.TotalBytes),
	}

	if !update.Started.IsZero() {
		elapsed := now.Sub(update.Started)
		if elapsed.Seconds() > 0 {
			ev.Speed = float64(update.DownloadedBytes) / elapsed.Seconds()
		}
	}

	if update.Info != nil && update.Info.Title != nil {
		ev.Title = *update.Info.Title
	}
	return ev
}
