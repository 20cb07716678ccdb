package download

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/ytget/playlist-downloader/internal/model"
	"github.com/ytget/playlist-downloader/internal/platform"
)

// spotdl flags
const (
	SpotDLOutputFlag = "--output"
	SpotDLFormatFlag = "--audio-format"
)

// Spotify downloads albums with the spotdl binary
type Spotify struct {
	runner platform.Runner
	binary string
	logger zerolog.Logger
}

// NewSpotify creates a Spotify downloader running binary through runner
func NewSpotify(runner platform.Runner, binary string, logger zerolog.Logger) *Spotify {
	if binary == "" {
		binary = platform.SpotDLBinary
	}
	return &Spotify{runner: runner, binary: binary, logger: logger}
}

// BuildArgs returns the spotdl arguments for req
func (s *Spotify) BuildArgs(req model.Request) []string {
	return []string{
		SpotDLOutputFlag, req.Dir,
		SpotDLFormatFlag, string(req.Format),
		req.URL,
	}
}

// Download runs spotdl and waits for it to exit
func (s *Spotify) Download(ctx context.Context, req model.Request) error {
	s.logger.Info().Str("url", req.URL).Str("dir", req.Dir).Msg("starting spotdl")
	if _, err := s.runner.Run(ctx, s.binary, s.BuildArgs(req)...); err != nil {
		return fmt.Errorf("spotify download failed: %w", err)
	}
	return nil
}
