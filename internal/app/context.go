// Package app wires the shared services every front-end drives.
package app

import (
	"github.com/rs/zerolog"

	"github.com/ytget/playlist-downloader/internal/concat"
	"github.com/ytget/playlist-downloader/internal/config"
	"github.com/ytget/playlist-downloader/internal/download"
	"github.com/ytget/playlist-downloader/internal/platform"
	"github.com/ytget/playlist-downloader/internal/session"
)

// Context holds the configured services for one process
type Context struct {
	Settings *config.Settings
	Logger   zerolog.Logger
	Session  *session.Session
	Combiner concat.Combiner
}

// NewContext builds the production services from settings
func NewContext(settings *config.Settings, logger zerolog.Logger) *Context {
	runner := platform.NewExecRunner()

	combiner := concat.NewService(runner, logger.With().Str("component", "concat").Logger())
	combiner.SetBinaries(settings.GetFFmpegPath(), concat.FFprobeCommand)

	sess := session.New(session.Deps{
		Metadata: platform.NewMetadataService(logger.With().Str("component", "metadata").Logger()),
		YouTube:  download.NewYouTube(logger.With().Str("component", "youtube").Logger()),
		Spotify:  download.NewSpotify(runner, settings.GetSpotDLPath(), logger.With().Str("component", "spotify").Logger()),
		Combiner: combiner,
		Logger:   logger.With().Str("component", "session").Logger(),
	})
	sess.SetWritePlaylist(settings.GetWritePlaylist())

	return &Context{
		Settings: settings,
		Logger:   logger,
		Session:  sess,
		Combiner: combiner,
	}
}
