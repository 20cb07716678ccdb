package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config file discovery
const (
	EnvPrefix      = "PLAYLISTDL"
	ConfigName     = "playlistdl"
	ConfigType     = "yaml"
	ConfigDirName  = "playlistdl"
	CurrentDirPath = "."
)

// ViperPreferences adapts a viper instance to Preferences
type ViperPreferences struct {
	v *viper.Viper
}

// NewViperPreferences wraps v
func NewViperPreferences(v *viper.Viper) *ViperPreferences {
	return &ViperPreferences{v: v}
}

// String returns the value for key or ""
func (p *ViperPreferences) String(key string) string {
	return p.v.GetString(key)
}

// SetString overrides key for this process
func (p *ViperPreferences) SetString(key string, value string) {
	p.v.Set(key, value)
}

// BoolWithFallback returns the value for key, or fallback if it is unset
func (p *ViperPreferences) BoolWithFallback(key string, fallback bool) bool {
	if !p.v.IsSet(key) {
		return fallback
	}
	return p.v.GetBool(key)
}

// SetBool overrides key for this process
func (p *ViperPreferences) SetBool(key string, value bool) {
	p.v.Set(key, value)
}

// LoadViper reads defaults, an optional config file and PLAYLISTDL_* env vars.
// An explicit path must exist; without one the file is searched for in the
// current directory and the user config directory.
func LoadViper(path string) (*viper.Viper, error) {
	v := viper.New()

	v.SetDefault(KeyDownloadDir, DefaultDownloadDirectory())
	v.SetDefault(KeyAudioFormat, string(DefaultAudioFormat))
	v.SetDefault(KeySource, string(DefaultSource))
	v.SetDefault(KeyCombineOutput, DefaultCombineOutput)
	v.SetDefault(KeyWritePlaylist, DefaultWritePlaylist)
	v.SetDefault(KeyFFmpegPath, DefaultFFmpegPath)
	v.SetDefault(KeySpotDLPath, DefaultSpotDLPath)
	v.SetDefault(KeyLogLevel, DefaultLogLevel)
	v.SetDefault(KeyListenAddr, DefaultListenAddr)
	v.SetDefault(KeyLanguage, DefaultLanguage)

	if path != "" {
		if _, err := os.Stat(path); err != nil {
			return nil, fmt.Errorf("config file not found: %s", path)
		}
		v.SetConfigFile(path)
	} else {
		v.SetConfigName(ConfigName)
		v.SetConfigType(ConfigType)
		v.AddConfigPath(CurrentDirPath)
		if dir, err := os.UserConfigDir(); err == nil {
			v.AddConfigPath(filepath.Join(dir, ConfigDirName))
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	return v, nil
}
