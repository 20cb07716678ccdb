package concat

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/grafov/m3u8"
)

// FFprobe arguments for reading a track duration
const (
	FFprobeLogLevel     = "error"
	FFprobeShowEntries  = "format=duration"
	FFprobeOutputFormat = "csv=p=0"
	UnknownDuration     = -1
)

// ErrEmptyPlaylist is returned when there are no tracks to export
var ErrEmptyPlaylist = errors.New("no tracks to write to playlist")

// WritePlaylist writes an extended M3U playlist of tracks (file names relative
// to dir) and returns its path. Durations come from ffprobe when available.
func (s *Service) WritePlaylist(ctx context.Context, dir string, tracks []string) (string, error) {
	if len(tracks) == 0 {
		return "", ErrEmptyPlaylist
	}

	playlist, err := m3u8.NewMediaPlaylist(0, uint(len(tracks)))
	if err != nil {
		return "", fmt.Errorf("failed to create playlist: %w", err)
	}

	for _, name := range tracks {
		duration, err := s.probeDuration(ctx, filepath.Join(dir, name))
		if err != nil {
			s.logger.Debug().Err(err).Str("track", name).Msg("duration unavailable")
			duration = UnknownDuration
		}
		title := strings.TrimSuffix(name, filepath.Ext(name))
		if err := playlist.Append(name, duration, title); err != nil {
			return "", fmt.Errorf("failed to add %s to playlist: %w", name, err)
		}
	}
	playlist.Close()

	path := filepath.Join(dir, PlaylistName)
	if err := os.WriteFile(path, playlist.Encode().Bytes(), ManifestPermissions); err != nil {
		return "", fmt.Errorf("failed to write playlist: %w", err)
	}
	return path, nil
}

// probeDuration gets the duration of a media file in seconds using ffprobe
func (s *Service) probeDuration(ctx context.Context, filePath string) (float64, error) {
	output, err := s.runner.Run(ctx, s.ffprobePath,
		"-v", FFprobeLogLevel,
		"-show_entries", FFprobeShowEntries,
		"-of", FFprobeOutputFormat,
		filePath,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to run ffprobe: %w", err)
	}

	duration, err := strconv.ParseFloat(strings.TrimSpace(string(output)), 64)
	if err != nil {
		return 0, fmt.Errorf("failed to parse duration: %w", err)
	}
	return duration, nil
}
