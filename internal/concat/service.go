package concat

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/ytget/playlist-downloader/internal/model"
	"github.com/ytget/playlist-downloader/internal/platform"
)

// FFmpeg constants for concatenation
const (
	FFmpegCommand  = "ffmpeg"
	FFprobeCommand = "ffprobe"

	OverwriteFlag   = "-y"
	FormatFlag      = "-f"
	ConcatFormat    = "concat"
	SafeFlag        = "-safe"
	SafeDisabled    = "0"
	InputFlag       = "-i"
	CodecFlag       = "-c"
	AudioCodecFlag  = "-acodec"
	StreamCopyCodec = "copy"
)

// File names inside the download directory
const (
	ManifestName        = "file_list.txt"
	OutputBaseName      = "combined"
	PlaylistName        = "playlist.m3u8"
	ManifestPermissions = 0644
)

const (
	// MaxConcatAttempts is the primary run plus one fallback
	MaxConcatAttempts    = 2
	MissingTrackWarnText = "Could not find file for %s"
)

// ErrNoTracks is returned when no entry matched a file on disk
var ErrNoTracks = errors.New("no track files found to combine")

// Result describes a concatenation run
type Result struct {
	OutputPath   string
	ManifestPath string
	Included     []string // file names, in playlist order
	Missing      []string // titles without a matching file
	Attempts     int
	UsedFallback bool
}

// Warnings returns one human readable warning per missing title
func (r *Result) Warnings() []string {
	warnings := make([]string, 0, len(r.Missing))
	for _, title := range r.Missing {
		warnings = append(warnings, fmt.Sprintf(MissingTrackWarnText, title))
	}
	return warnings
}

// Service concatenates audio tracks with ffmpeg
type Service struct {
	runner      platform.Runner
	ffmpegPath  string
	ffprobePath string
	logger      zerolog.Logger
}

// NewService creates a new concatenation service
func NewService(runner platform.Runner, logger zerolog.Logger) *Service {
	return &Service{
		runner:      runner,
		ffmpegPath:  FFmpegCommand,
		ffprobePath: FFprobeCommand,
		logger:      logger,
	}
}

// SetBinaries overrides the ffmpeg and ffprobe executables. Empty values keep the defaults.
func (s *Service) SetBinaries(ffmpegPath, ffprobePath string) {
	if ffmpegPath != "" {
		s.ffmpegPath = ffmpegPath
	}
	if ffprobePath != "" {
		s.ffprobePath = ffprobePath
	}
}

// OutputName returns the combined file name for an extension
func OutputName(ext string) string {
	return OutputBaseName + "." + ext
}

// Combine matches each title to a file in dir, writes the manifest and runs
// ffmpeg. A failed stream copy is retried once with the audio codec copy flag.
// The returned Result always carries the output path, even on error.
func (s *Service) Combine(ctx context.Context, dir string, titles []string, format model.AudioFormat) (*Result, error) {
	ext := format.Ext()
	result := &Result{
		OutputPath:   filepath.Join(dir, OutputName(ext)),
		ManifestPath: filepath.Join(dir, ManifestName),
	}

	included, missing, err := MatchTracks(dir, titles, format)
	if err != nil {
		return result, err
	}
	result.Included = included
	result.Missing = missing
	for _, title := range missing {
		s.logger.Warn().Str("title", title).Msgf(MissingTrackWarnText, title)
	}

	if err := WriteManifest(result.ManifestPath, result.Included); err != nil {
		return result, err
	}

	if len(result.Included) == 0 {
		return result, ErrNoTracks
	}

	result.Attempts = 1
	if _, err := s.runner.Run(ctx, s.ffmpegPath, s.BuildConcatArgs(result.ManifestPath, result.OutputPath)...); err != nil {
		s.logger.Warn().Err(err).Int("exit_code", platform.ExitCode(err)).Str("path", result.OutputPath).Msg("stream copy concat failed, retrying with audio codec copy")

		result.Attempts = MaxConcatAttempts
		result.UsedFallback = true
		if _, err := s.runner.Run(ctx, s.ffmpegPath, s.BuildFallbackArgs(result.ManifestPath, result.OutputPath)...); err != nil {
			return result, fmt.Errorf("concatenation failed after fallback: %w", err)
		}
	}

	s.logger.Info().Str("path", result.OutputPath).Int("tracks", len(result.Included)).Msg("tracks combined")
	return result, nil
}

// BuildConcatArgs builds the primary ffmpeg arguments
func (s *Service) BuildConcatArgs(manifestPath, outputPath string) []string {
	return append(concatInputArgs(manifestPath), CodecFlag, StreamCopyCodec, outputPath)
}

// BuildFallbackArgs builds the ffmpeg arguments used for the single retry
func (s *Service) BuildFallbackArgs(manifestPath, outputPath string) []string {
	return append(concatInputArgs(manifestPath), AudioCodecFlag, StreamCopyCodec, outputPath)
}

func concatInputArgs(manifestPath string) []string {
	return []string{
		OverwriteFlag,
		FormatFlag, ConcatFormat,
		SafeFlag, SafeDisabled,
		InputFlag, manifestPath,
	}
}
