package cli

import (
	"bytes"
	"context"
	"errors"
	"io"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/spf13/pflag"

	"github.com/ytget/playlist-downloader/internal/app"
	"github.com/ytget/playlist-downloader/internal/concat"
	"github.com/ytget/playlist-downloader/internal/config"
	"github.com/ytget/playlist-downloader/internal/model"
	"github.com/ytget/playlist-downloader/internal/session"
)

type fakeMetadata struct {
	info *model.PlaylistInfo
}

func (f *fakeMetadata) FetchPlaylist(ctx context.Context, url string) (*model.PlaylistInfo, error) {
	return f.info, nil
}

type fakeYouTube struct {
	err  error
	last model.Request
}

func (f *fakeYouTube) Download(ctx context.Context, req model.Request, events chan<- model.ItemEvent) error {
	f.last = req
	events <- model.ItemEvent{Status: model.ItemStatusDownloading, DownloadedBytes: 5, TotalBytes: 10}
	events <- model.ItemEvent{Status: model.ItemStatusFinished}
	return f.err
}

type fakeSpotify struct {
	called bool
}

func (f *fakeSpotify) Download(ctx context.Context, req model.Request) error {
	f.called = true
	return nil
}

type fakeCombiner struct {
	titles []string
	dir    string
}

func (f *fakeCombiner) Combine(ctx context.Context, dir string, titles []string, format model.AudioFormat) (*concat.Result, error) {
	f.titles = titles
	f.dir = dir
	return &concat.Result{
		OutputPath: filepath.Join(dir, concat.OutputName(format.Ext())),
		Included:   []string{titles[0] + "." + format.Ext()},
		Missing:    titles[1:],
	}, nil
}

func (f *fakeCombiner) WritePlaylist(ctx context.Context, dir string, tracks []string) (string, error) {
	return filepath.Join(dir, concat.PlaylistName), nil
}

type testEnv struct {
	cli      *CLI
	out      *bytes.Buffer
	youtube  *fakeYouTube
	spotify  *fakeSpotify
	combiner *fakeCombiner
}

func newTestEnv(t *testing.T, info *model.PlaylistInfo, lookPathErr error) *testEnv {
	t.Helper()
	t.Chdir(t.TempDir())
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("HOME", t.TempDir())

	env := &testEnv{
		out:      &bytes.Buffer{},
		youtube:  &fakeYouTube{},
		spotify:  &fakeSpotify{},
		combiner: &fakeCombiner{},
	}
	factory := func(settings *config.Settings, logger zerolog.Logger) *app.Context {
		return &app.Context{
			Settings: settings,
			Logger:   logger,
			Combiner: env.combiner,
			Session: session.New(session.Deps{
				Metadata: &fakeMetadata{info: info},
				YouTube:  env.youtube,
				Spotify:  env.spotify,
				Combiner: env.combiner,
				Logger:   logger,
			}),
		}
	}
	lookPath := func(file string) (string, error) {
		if lookPathErr != nil {
			return "", lookPathErr
		}
		return "/usr/bin/" + file, nil
	}
	env.cli = newCLI("test", factory, lookPath, env.out, io.Discard)
	return env
}

func (e *testEnv) run(args ...string) error {
	e.cli.SetArgs(args)
	return e.cli.Execute(context.Background())
}

func singleVideo() *model.PlaylistInfo {
	return &model.PlaylistInfo{Title: "Song", Entries: []model.Entry{{ID: "a", Title: "Song"}}}
}

func TestInfoCommand(t *testing.T) {
	info := &model.PlaylistInfo{
		Title:      "Mix",
		IsPlaylist: true,
		Entries:    []model.Entry{{Title: "One"}, {Title: "Two"}},
	}
	env := newTestEnv(t, info, nil)

	if err := env.run("info", "https://www.youtube.com/playlist?list=PL1"); err != nil {
		t.Fatalf("info failed: %v", err)
	}

	out := env.out.String()
	for _, want := range []string{"Mix", "Total Videos: 2", "1. One", "2. Two"} {
		if !strings.Contains(out, want) {
			t.Errorf("Expected output to contain %q, got %s", want, out)
		}
	}
}

func TestDownloadCommand_FlagsOverrideConfig(t *testing.T) {
	env := newTestEnv(t, singleVideo(), nil)
	dir := t.TempDir()

	if err := env.run("download", "--dir", dir, "--format", "mp3", "https://youtu.be/a"); err != nil {
		t.Fatalf("download failed: %v", err)
	}

	if env.youtube.last.Dir != dir {
		t.Errorf("Expected dir %s, got %s", dir, env.youtube.last.Dir)
	}
	if env.youtube.last.Format != model.FormatMP3 {
		t.Errorf("Expected mp3, got %s", env.youtube.last.Format)
	}
	if !strings.Contains(env.out.String(), session.MsgYouTubeDone) {
		t.Errorf("Expected completion message, got %s", env.out.String())
	}
}

func TestDownloadCommand_NoCombine(t *testing.T) {
	info := &model.PlaylistInfo{
		Title:      "Mix",
		IsPlaylist: true,
		Entries:    []model.Entry{{Title: "One"}, {Title: "Two"}},
	}
	env := newTestEnv(t, info, nil)

	if err := env.run("download", "--dir", t.TempDir(), "--no-combine", "https://www.youtube.com/playlist?list=PL1"); err != nil {
		t.Fatalf("download failed: %v", err)
	}
	if env.youtube.last.Combine {
		t.Error("Expected combine disabled")
	}
	if env.combiner.titles != nil {
		t.Error("Expected combiner not called")
	}
}

func TestDownloadCommand_Failure(t *testing.T) {
	env := newTestEnv(t, singleVideo(), nil)
	env.youtube.err = errors.New("HTTP Error 403")

	err := env.run("download", "--dir", t.TempDir(), "https://youtu.be/a")
	if err == nil || !strings.Contains(err.Error(), "HTTP Error 403") {
		t.Errorf("Expected download error, got %v", err)
	}
}

func TestDownloadCommand_MissingDependency(t *testing.T) {
	env := newTestEnv(t, singleVideo(), errors.New("not found"))

	err := env.run("download", "--dir", t.TempDir(), "https://youtu.be/a")
	if err == nil || !strings.Contains(err.Error(), "required dependency") {
		t.Errorf("Expected dependency error, got %v", err)
	}
}

func TestSpotifyCommand(t *testing.T) {
	env := newTestEnv(t, nil, nil)
	t.Setenv("PLAYLISTDL_SPOTDL_PATH", "sh")

	if err := env.run("spotify", "--dir", t.TempDir(), "https://open.spotify.com/album/x"); err != nil {
		t.Fatalf("spotify failed: %v", err)
	}
	if !env.spotify.called {
		t.Error("Expected spotify downloader to run")
	}
	if !strings.Contains(env.out.String(), session.MsgSpotifyDone) {
		t.Errorf("Expected completion message, got %s", env.out.String())
	}
}

func TestCombineCommand(t *testing.T) {
	env := newTestEnv(t, nil, nil)
	dir := t.TempDir()

	if err := env.run("combine", "--dir", dir, "--playlist", "A", "B"); err != nil {
		t.Fatalf("combine failed: %v", err)
	}

	if env.combiner.dir != dir {
		t.Errorf("Expected dir %s, got %s", dir, env.combiner.dir)
	}
	out := env.out.String()
	if !strings.Contains(out, "Could not find file for B") {
		t.Errorf("Expected missing warning, got %s", out)
	}
	if !strings.Contains(out, "combined.flac") {
		t.Errorf("Expected output path, got %s", out)
	}
	if !strings.Contains(out, concat.PlaylistName) {
		t.Errorf("Expected playlist path, got %s", out)
	}
}

func TestProgressReporter(t *testing.T) {
	updates := make(chan model.Update, 3)
	updates <- model.Update{Status: model.RunStatusDownloading, Message: "Downloading...", Progress: model.Progress{Indeterminate: true}}
	updates <- model.Update{Status: model.RunStatusDownloading, Message: "Downloading: 50.00%", Progress: model.Progress{Overall: 0.5}}
	updates <- model.Update{
		Status:   model.RunStatusCompleted,
		Message:  "Combined into combined.mp3",
		Progress: model.Progress{Overall: 1},
		Warnings: []string{"Could not find file for B"},
	}
	close(updates)

	var out bytes.Buffer
	last := newProgressReporter(&out).Run("Mix", updates)

	if last.Status != model.RunStatusCompleted {
		t.Errorf("Expected completed, got %s", last.Status)
	}
	if !strings.Contains(out.String(), "Combined into combined.mp3") {
		t.Errorf("Expected final message, got %s", out.String())
	}
	if !strings.Contains(out.String(), "warning: Could not find file for B") {
		t.Errorf("Expected warning, got %s", out.String())
	}
}

func TestBindFlags(t *testing.T) {
	t.Chdir(t.TempDir())
	v, err := config.LoadViper("")
	if err != nil {
		t.Fatalf("LoadViper failed: %v", err)
	}

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String(FlagFormat, "", "")
	flags.String(FlagDir, "", "")
	if err := flags.Parse([]string{"--format", "mp3"}); err != nil {
		t.Fatal(err)
	}

	if err := bindFlags(v, flags); err != nil {
		t.Fatalf("bindFlags failed: %v", err)
	}
	if v.GetString(config.KeyAudioFormat) != "mp3" {
		t.Errorf("Expected mp3, got %s", v.GetString(config.KeyAudioFormat))
	}
	if v.GetString(config.KeyDownloadDir) == "" {
		t.Error("Expected unset --dir to keep the configured default")
	}
}
