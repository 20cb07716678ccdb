package concat

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/ytget/playlist-downloader/internal/model"
)

type call struct {
	name string
	args []string
}

// fakeRunner fails the ffmpeg calls listed in failOn (1-based)
type fakeRunner struct {
	calls  []call
	failOn map[int]bool
	ffmpeg int
	output map[string]string // ffprobe output by file path
}

func (f *fakeRunner) Run(ctx context.Context, name string, args ...string) ([]byte, error) {
	f.calls = append(f.calls, call{name: name, args: args})
	if name == FFprobeCommand {
		path := args[len(args)-1]
		if out, ok := f.output[path]; ok {
			return []byte(out), nil
		}
		return nil, errors.New("ffprobe failed")
	}
	f.ffmpeg++
	if f.failOn[f.ffmpeg] {
		return []byte("Invalid data found"), errors.New("exit status 1")
	}
	return nil, nil
}

func touch(t *testing.T, dir string, names ...string) {
	t.Helper()
	for _, name := range names {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("audio"), 0644); err != nil {
			t.Fatal(err)
		}
	}
}

func readManifest(t *testing.T, path string) []string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read manifest: %v", err)
	}
	text := strings.TrimRight(string(data), "\n")
	if text == "" {
		return nil
	}
	return strings.Split(text, "\n")
}

func TestCombine_SkipsMissingEntries(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "A (Official Audio).mp3")

	runner := &fakeRunner{}
	svc := NewService(runner, zerolog.Nop())

	result, err := svc.Combine(context.Background(), dir, []string{"A", "B"}, model.FormatMP3)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	lines := readManifest(t, result.ManifestPath)
	if len(lines) != 1 || lines[0] != "file 'A (Official Audio).mp3'" {
		t.Errorf("Expected one manifest line for A, got %v", lines)
	}
	if len(result.Missing) != 1 || result.Missing[0] != "B" {
		t.Errorf("Expected B to be reported missing, got %v", result.Missing)
	}
	warnings := result.Warnings()
	if len(warnings) != 1 || warnings[0] != "Could not find file for B" {
		t.Errorf("Unexpected warnings: %v", warnings)
	}
	if result.OutputPath != filepath.Join(dir, "combined.mp3") {
		t.Errorf("Unexpected output path: %s", result.OutputPath)
	}
	if result.Attempts != 1 || result.UsedFallback {
		t.Errorf("Expected a single attempt, got %d (fallback=%v)", result.Attempts, result.UsedFallback)
	}
}

func TestCombine_RetriesOnceWithFallback(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "One.flac", "Two.flac")

	runner := &fakeRunner{failOn: map[int]bool{1: true}}
	svc := NewService(runner, zerolog.Nop())

	result, err := svc.Combine(context.Background(), dir, []string{"One", "Two"}, model.FormatFLAC)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if len(runner.calls) != 2 {
		t.Fatalf("Expected exactly 2 ffmpeg invocations, got %d", len(runner.calls))
	}
	if !containsPair(runner.calls[0].args, CodecFlag, StreamCopyCodec) {
		t.Errorf("Expected primary args to use -c copy, got %v", runner.calls[0].args)
	}
	if !containsPair(runner.calls[1].args, AudioCodecFlag, StreamCopyCodec) {
		t.Errorf("Expected fallback args to use -acodec copy, got %v", runner.calls[1].args)
	}
	if result.Attempts != 2 || !result.UsedFallback {
		t.Errorf("Expected fallback to be recorded, got attempts=%d fallback=%v", result.Attempts, result.UsedFallback)
	}
}

func TestCombine_FallbackFailureStillReturnsPath(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "One.flac", "Two.flac")

	runner := &fakeRunner{failOn: map[int]bool{1: true, 2: true}}
	svc := NewService(runner, zerolog.Nop())

	result, err := svc.Combine(context.Background(), dir, []string{"One", "Two"}, model.FormatFLAC)
	if err == nil {
		t.Fatal("Expected error when both attempts fail")
	}
	if len(runner.calls) != 2 {
		t.Errorf("Expected no more than one retry, got %d calls", len(runner.calls))
	}
	if result == nil || result.OutputPath != filepath.Join(dir, "combined.flac") {
		t.Errorf("Expected output path to be returned, got %+v", result)
	}
}

func TestCombine_NoTracks(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "Other.mp3")

	runner := &fakeRunner{}
	svc := NewService(runner, zerolog.Nop())

	result, err := svc.Combine(context.Background(), dir, []string{"A", "B"}, model.FormatFLAC)
	if !errors.Is(err, ErrNoTracks) {
		t.Errorf("Expected ErrNoTracks, got %v", err)
	}
	if len(runner.calls) != 0 {
		t.Errorf("Expected ffmpeg not to run, got %d calls", len(runner.calls))
	}
	if len(result.Missing) != 2 {
		t.Errorf("Expected both titles missing, got %v", result.Missing)
	}
	if _, err := os.Stat(result.ManifestPath); err != nil {
		t.Errorf("Expected empty manifest to be written: %v", err)
	}
}

func TestCombine_PreservesPlaylistOrder(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "Alpha.flac", "Beta.flac", "Gamma.flac")

	svc := NewService(&fakeRunner{}, zerolog.Nop())
	result, err := svc.Combine(context.Background(), dir, []string{"Gamma", "Alpha", "Beta"}, model.FormatFLAC)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	expected := []string{"file 'Gamma.flac'", "file 'Alpha.flac'", "file 'Beta.flac'"}
	lines := readManifest(t, result.ManifestPath)
	if strings.Join(lines, "|") != strings.Join(expected, "|") {
		t.Errorf("Expected %v, got %v", expected, lines)
	}
}

func TestCombine_IgnoresPreviousOutput(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "combined.flac", "combo.flac")

	svc := NewService(&fakeRunner{}, zerolog.Nop())
	result, err := svc.Combine(context.Background(), dir, []string{"comb"}, model.FormatFLAC)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(result.Included) != 1 || result.Included[0] != "combo.flac" {
		t.Errorf("Expected combo.flac only, got %v", result.Included)
	}
}

func TestCombine_MissingDirectory(t *testing.T) {
	svc := NewService(&fakeRunner{}, zerolog.Nop())
	result, err := svc.Combine(context.Background(), filepath.Join(t.TempDir(), "missing"), []string{"A"}, model.FormatMP3)
	if err == nil {
		t.Fatal("Expected error for missing directory")
	}
	if result == nil || result.OutputPath == "" {
		t.Error("Expected output path even on error")
	}
}

func TestBuildArgs(t *testing.T) {
	svc := NewService(&fakeRunner{}, zerolog.Nop())

	primary := svc.BuildConcatArgs("/m/file_list.txt", "/m/combined.flac")
	expected := []string{"-y", "-f", "concat", "-safe", "0", "-i", "/m/file_list.txt", "-c", "copy", "/m/combined.flac"}
	assertArgs(t, primary, expected)

	fallback := svc.BuildFallbackArgs("/m/file_list.txt", "/m/combined.flac")
	expected = []string{"-y", "-f", "concat", "-safe", "0", "-i", "/m/file_list.txt", "-acodec", "copy", "/m/combined.flac"}
	assertArgs(t, fallback, expected)
}

func TestSetBinaries(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "A.mp3")

	runner := &fakeRunner{}
	svc := NewService(runner, zerolog.Nop())
	svc.SetBinaries("/opt/ffmpeg/bin/ffmpeg", "")

	if _, err := svc.Combine(context.Background(), dir, []string{"A"}, model.FormatMP3); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if runner.calls[0].name != "/opt/ffmpeg/bin/ffmpeg" {
		t.Errorf("Expected configured ffmpeg path, got %s", runner.calls[0].name)
	}
	if svc.ffprobePath != FFprobeCommand {
		t.Errorf("Expected empty value to keep ffprobe default, got %s", svc.ffprobePath)
	}
}

func assertArgs(t *testing.T, got, expected []string) {
	t.Helper()
	if len(got) != len(expected) {
		t.Fatalf("Expected %d args, got %d: %v", len(expected), len(got), got)
	}
	for i := range expected {
		if got[i] != expected[i] {
			t.Errorf("Arg %d: expected %s, got %s", i, expected[i], got[i])
		}
	}
}

func containsPair(args []string, flag, value string) bool {
	for i := 0; i+1 < len(args); i++ {
		if args[i] == flag && args[i+1] == value {
			return true
		}
	}
	return false
}
