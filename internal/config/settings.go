package config

import (
	"os"
	"path/filepath"

	"fyne.io/fyne/v2"

	"github.com/ytget/playlist-downloader/internal/model"
	"github.com/ytget/playlist-downloader/internal/platform"
)

// Settings keys
const (
	KeyDownloadDir   = "download_directory"
	KeyAudioFormat   = "audio_format"
	KeySource        = "source"
	KeyCombineOutput = "combine_output"
	KeyWritePlaylist = "write_playlist"
	KeyFFmpegPath    = "ffmpeg_path"
	KeySpotDLPath    = "spotdl_path"
	KeyLogLevel      = "log_level"
	KeyLogFile       = "log_file"
	KeyListenAddr    = "listen_address"
	KeyLanguage      = "language"
)

// Default values
const (
	DefaultAudioFormat   = model.FormatFLAC
	DefaultSource        = model.SourceYouTube
	DefaultCombineOutput = true
	DefaultWritePlaylist = false
	DefaultFFmpegPath    = platform.FFmpegBinary
	DefaultSpotDLPath    = platform.SpotDLBinary
	DefaultLogLevel      = "info"
	DefaultListenAddr    = "127.0.0.1:8080"
	DefaultLanguage      = "en"
	FallbackDownloadDir  = "downloads"
)

// Preferences is the subset of fyne.Preferences the settings need
type Preferences interface {
	String(key string) string
	SetString(key string, value string)
	BoolWithFallback(key string, fallback bool) bool
	SetBool(key string, value bool)
}

// Settings manages application configuration
type Settings struct {
	prefs Preferences
}

// NewSettings creates a settings manager backed by the app preferences
func NewSettings(app fyne.App) *Settings {
	return &Settings{prefs: app.Preferences()}
}

// NewSettingsWith creates a settings manager over any preferences store
func NewSettingsWith(prefs Preferences) *Settings {
	return &Settings{prefs: prefs}
}

// DefaultDownloadDirectory returns ~/Downloads, or a temp dir fallback
func DefaultDownloadDirectory() string {
	dir, err := platform.GetHomeDownloadsDir()
	if err != nil {
		return filepath.Join(os.TempDir(), FallbackDownloadDir)
	}
	return dir
}

// GetDownloadDirectory returns the configured download directory
func (s *Settings) GetDownloadDirectory() string {
	dir := s.prefs.String(KeyDownloadDir)
	if dir == "" {
		dir = DefaultDownloadDirectory()
		s.SetDownloadDirectory(dir)
	}
	return dir
}

// SetDownloadDirectory sets the download directory
func (s *Settings) SetDownloadDirectory(dir string) {
	s.prefs.SetString(KeyDownloadDir, dir)
}

// GetAudioFormat returns the configured audio format. Unknown stored values
// fall back to the default.
func (s *Settings) GetAudioFormat() model.AudioFormat {
	format, err := model.ParseAudioFormat(s.prefs.String(KeyAudioFormat))
	if err != nil {
		return DefaultAudioFormat
	}
	return format
}

// SetAudioFormat sets the audio format
func (s *Settings) SetAudioFormat(format model.AudioFormat) {
	s.prefs.SetString(KeyAudioFormat, string(format))
}

// GetSource returns the last selected source
func (s *Settings) GetSource() model.Source {
	source, err := model.ParseSource(s.prefs.String(KeySource))
	if err != nil {
		return DefaultSource
	}
	return source
}

// SetSource sets the selected source
func (s *Settings) SetSource(source model.Source) {
	s.prefs.SetString(KeySource, string(source))
}

// GetCombineOutput returns whether playlist tracks are combined after download
func (s *Settings) GetCombineOutput() bool {
	return s.prefs.BoolWithFallback(KeyCombineOutput, DefaultCombineOutput)
}

// SetCombineOutput sets whether playlist tracks are combined
func (s *Settings) SetCombineOutput(combine bool) {
	s.prefs.SetBool(KeyCombineOutput, combine)
}

// GetWritePlaylist returns whether an M3U playlist is written next to the tracks
func (s *Settings) GetWritePlaylist() bool {
	return s.prefs.BoolWithFallback(KeyWritePlaylist, DefaultWritePlaylist)
}

// SetWritePlaylist sets whether an M3U playlist is written
func (s *Settings) SetWritePlaylist(write bool) {
	s.prefs.SetBool(KeyWritePlaylist, write)
}

// GetFFmpegPath returns the ffmpeg executable
func (s *Settings) GetFFmpegPath() string {
	return s.stringWithDefault(KeyFFmpegPath, DefaultFFmpegPath)
}

// GetSpotDLPath returns the spotdl executable
func (s *Settings) GetSpotDLPath() string {
	return s.stringWithDefault(KeySpotDLPath, DefaultSpotDLPath)
}

// Binaries returns the configured external executables
func (s *Settings) Binaries() platform.Binaries {
	return platform.Binaries{
		platform.FFmpegBinary: s.GetFFmpegPath(),
		platform.SpotDLBinary: s.GetSpotDLPath(),
	}
}

// GetLogLevel returns the log level name
func (s *Settings) GetLogLevel() string {
	return s.stringWithDefault(KeyLogLevel, DefaultLogLevel)
}

// GetLogFile returns the optional log file path
func (s *Settings) GetLogFile() string {
	return s.prefs.String(KeyLogFile)
}

// GetListenAddr returns the web server listen address
func (s *Settings) GetListenAddr() string {
	return s.stringWithDefault(KeyListenAddr, DefaultListenAddr)
}

// GetLanguage returns the UI language code
func (s *Settings) GetLanguage() string {
	return s.stringWithDefault(KeyLanguage, DefaultLanguage)
}

// SetLanguage sets the UI language code
func (s *Settings) SetLanguage(lang string) {
	s.prefs.SetString(KeyLanguage, lang)
}

// GetAudioFormatOptions returns the formats offered by the front-ends
func (s *Settings) GetAudioFormatOptions() []model.AudioFormat {
	return []model.AudioFormat{model.FormatFLAC, model.FormatMP3}
}

// GetSourceOptions returns the sources offered by the front-ends
func (s *Settings) GetSourceOptions() []model.Source {
	return []model.Source{model.SourceYouTube, model.SourceSpotify}
}

func (s *Settings) stringWithDefault(key, fallback string) string {
	if v := s.prefs.String(key); v != "" {
		return v
	}
	return fallback
}
