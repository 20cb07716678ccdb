package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/ytget/playlist-downloader/internal/model"
)

func TestLoadViper_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())

	v, err := LoadViper("")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	settings := NewSettingsWith(NewViperPreferences(v))
	if settings.GetAudioFormat() != DefaultAudioFormat {
		t.Errorf("Expected default format, got %s", settings.GetAudioFormat())
	}
	if !settings.GetCombineOutput() {
		t.Error("Expected combine enabled by default")
	}
	if settings.GetListenAddr() != DefaultListenAddr {
		t.Errorf("Expected %s, got %s", DefaultListenAddr, settings.GetListenAddr())
	}
}

func TestLoadViper_FileAndEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := "audio_format: mp3\ncombine_output: false\ndownload_directory: /music\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("PLAYLISTDL_SOURCE", "spotify")

	v, err := LoadViper(path)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	settings := NewSettingsWith(NewViperPreferences(v))
	if settings.GetAudioFormat() != model.FormatMP3 {
		t.Errorf("Expected mp3 from file, got %s", settings.GetAudioFormat())
	}
	if settings.GetCombineOutput() {
		t.Error("Expected combine disabled from file")
	}
	if settings.GetDownloadDirectory() != "/music" {
		t.Errorf("Expected /music, got %s", settings.GetDownloadDirectory())
	}
	if settings.GetSource() != model.SourceSpotify {
		t.Errorf("Expected spotify from env, got %s", settings.GetSource())
	}
}

func TestLoadViper_MissingExplicitFile(t *testing.T) {
	if _, err := LoadViper(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("Expected error for missing config file")
	}
}

func TestViperPreferences_Set(t *testing.T) {
	t.Chdir(t.TempDir())
	v, err := LoadViper("")
	if err != nil {
		t.Fatal(err)
	}
	prefs := NewViperPreferences(v)

	prefs.SetString(KeyDownloadDir, "/tmp/x")
	prefs.SetBool(KeyWritePlaylist, true)

	if prefs.String(KeyDownloadDir) != "/tmp/x" {
		t.Errorf("Expected /tmp/x, got %s", prefs.String(KeyDownloadDir))
	}
	if !prefs.BoolWithFallback(KeyWritePlaylist, false) {
		t.Error("Expected write playlist to be true")
	}
	if !prefs.BoolWithFallback("unknown_key", true) {
		t.Error("Expected fallback for unset key")
	}
}
