package download

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/ytget/playlist-downloader/internal/model"
)

type recordingRunner struct {
	name string
	args []string
	err  error
}

func (r *recordingRunner) Run(ctx context.Context, name string, args ...string) ([]byte, error) {
	r.name = name
	r.args = args
	return nil, r.err
}

func TestSpotify_Download(t *testing.T) {
	runner := &recordingRunner{}
	s := NewSpotify(runner, "", zerolog.Nop())

	req := model.Request{
		Source: model.SourceSpotify,
		URL:    "https://open.spotify.com/album/xyz",
		Dir:    "/music/My Album",
		Format: model.FormatMP3,
	}
	if err := s.Download(context.Background(), req); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if runner.name != "spotdl" {
		t.Errorf("Expected spotdl binary, got %s", runner.name)
	}
	expected := "--output|/music/My Album|--audio-format|mp3|https://open.spotify.com/album/xyz"
	if strings.Join(runner.args, "|") != expected {
		t.Errorf("Expected args %s, got %s", expected, strings.Join(runner.args, "|"))
	}
}

func TestSpotify_DownloadError(t *testing.T) {
	boom := errors.New("exit status 1")
	s := NewSpotify(&recordingRunner{err: boom}, "/opt/spotdl", zerolog.Nop())

	err := s.Download(context.Background(), model.Request{URL: "u", Dir: "d", Format: model.FormatFLAC})
	if !errors.Is(err, boom) {
		t.Errorf("Expected wrapped runner error, got %v", err)
	}
}
