package platform

import (
	"fmt"
	"os/exec"

	"github.com/rs/zerolog"
)

// Binary names
const (
	YTDLPBinary   = "yt-dlp"
	FFmpegBinary  = "ffmpeg"
	FFprobeBinary = "ffprobe"
	SpotDLBinary  = "spotdl"
)

// Dependency describes an external binary and what needs it
type Dependency struct {
	Name    string
	Feature string
}

// RequiredBinaries are needed for YouTube downloads
var RequiredBinaries = []Dependency{
	{Name: YTDLPBinary, Feature: "YouTube download"},
	{Name: FFmpegBinary, Feature: "audio extraction"},
}

// OptionalBinaries enable extra features when present
var OptionalBinaries = []Dependency{
	{Name: SpotDLBinary, Feature: "Spotify download"},
	{Name: FFprobeBinary, Feature: "playlist durations"},
}

// Binaries maps a binary name to the configured executable name or path
type Binaries map[string]string

// Resolve returns the configured executable for name, or name itself
func (b Binaries) Resolve(name string) string {
	if p := b[name]; p != "" {
		return p
	}
	return name
}

// LookPathFunc resolves a binary name to a path
type LookPathFunc func(file string) (string, error)

// ValidateDependencies checks required and optional binaries, honoring the
// executables configured in paths. Missing optional binaries are only logged.
func ValidateDependencies(logger zerolog.Logger, lookPath LookPathFunc, paths Binaries) error {
	if lookPath == nil {
		lookPath = exec.LookPath
	}

	for _, dep := range RequiredBinaries {
		if _, err := lookPath(paths.Resolve(dep.Name)); err != nil {
			return fmt.Errorf("required dependency '%s' not found (%s): %s", dep.Name, dep.Feature, paths.Resolve(dep.Name))
		}
	}

	for _, dep := range OptionalBinaries {
		if _, err := lookPath(paths.Resolve(dep.Name)); err != nil {
			logger.Info().Str("binary", dep.Name).Msgf("%s not found, %s will be disabled", dep.Name, dep.Feature)
		}
	}

	return nil
}

// ResolveBinary returns the full path of a configured binary name or path
func ResolveBinary(name string) (string, error) {
	path, err := exec.LookPath(name)
	if err != nil {
		return "", fmt.Errorf("%s binary not found in PATH: %w", name, err)
	}
	return path, nil
}
