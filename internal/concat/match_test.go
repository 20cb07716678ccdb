package concat

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/ytget/playlist-downloader/internal/model"
)

func TestFindTrackFile(t *testing.T) {
	names := []string{
		"AC⧸DC - Back In Black.flac",
		"Intro (Remastered).flac",
		"Intro.flac",
		"What？.flac",
	}

	tests := []struct {
		title    string
		expected string
		found    bool
	}{
		{"Intro", "Intro.flac", true},
		{"Intro (Remastered)", "Intro (Remastered).flac", true},
		{"AC/DC - Back In Black", "AC⧸DC - Back In Black.flac", true},
		{"What?", "What？.flac", true},
		{"Outro", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		got, ok := FindTrackFile(names, tt.title, "flac", nil)
		if ok != tt.found || got != tt.expected {
			t.Errorf("FindTrackFile(%q) = (%q, %v), expected (%q, %v)", tt.title, got, ok, tt.expected, tt.found)
		}
	}
}

func TestSanitizeTitle(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"plain title", "plain title"},
		{`a/b\c`, "a⧸b⧹c"},
		{`x:y*z?"<>|`, "x：y＊z？＂＜＞｜"},
	}

	for _, tt := range tests {
		if got := SanitizeTitle(tt.input); got != tt.expected {
			t.Errorf("SanitizeTitle(%q) = %q, expected %q", tt.input, got, tt.expected)
		}
	}
}

func TestListTrackFiles(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"b.mp3", "a.mp3", "a.flac", "combined.mp3", "c.mp3.part"} {
		if err := os.WriteFile(filepath.Join(dir, name), nil, 0644); err != nil {
			t.Fatal(err)
		}
	}
	if err := os.Mkdir(filepath.Join(dir, "folder.mp3"), 0755); err != nil {
		t.Fatal(err)
	}

	names, err := ListTrackFiles(dir, "mp3")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(names) != 2 || names[0] != "a.mp3" || names[1] != "b.mp3" {
		t.Errorf("Expected [a.mp3 b.mp3], got %v", names)
	}
}

func TestMatchTracks(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"First.mp3", "Second.mp3", "Third.flac"} {
		if err := os.WriteFile(filepath.Join(dir, name), nil, 0644); err != nil {
			t.Fatal(err)
		}
	}

	included, missing, err := MatchTracks(dir, []string{"Second", "Third", "First"}, model.FormatMP3)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(included) != 2 || included[0] != "Second.mp3" || included[1] != "First.mp3" {
		t.Errorf("Expected [Second.mp3 First.mp3], got %v", included)
	}
	if len(missing) != 1 || missing[0] != "Third" {
		t.Errorf("Expected Third to be missing for mp3, got %v", missing)
	}
}

func TestFindTrackFile_SkipsTaken(t *testing.T) {
	names := []string{"Intro (Remastered).flac", "Intro.flac"}
	taken := map[string]bool{"Intro.flac": true}

	got, ok := FindTrackFile(names, "Intro", "flac", taken)
	if !ok || got != "Intro (Remastered).flac" {
		t.Errorf("Expected Intro (Remastered).flac, got (%q, %v)", got, ok)
	}

	taken["Intro (Remastered).flac"] = true
	if got, ok := FindTrackFile(names, "Intro", "flac", taken); ok {
		t.Errorf("Expected no match when every file is taken, got %q", got)
	}
}

func TestMatchTracks_PrefixTitles(t *testing.T) {
	tests := []struct {
		name     string
		titles   []string
		expected []string
	}{
		{"shorter first", []string{"Song", "Song 2"}, []string{"Song.mp3", "Song 2.mp3"}},
		{"longer first", []string{"Song 2", "Song"}, []string{"Song 2.mp3", "Song.mp3"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			for _, name := range []string{"Song.mp3", "Song 2.mp3"} {
				if err := os.WriteFile(filepath.Join(dir, name), nil, 0644); err != nil {
					t.Fatal(err)
				}
			}

			included, missing, err := MatchTracks(dir, tt.titles, model.FormatMP3)
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if len(missing) != 0 {
				t.Errorf("Expected nothing missing, got %v", missing)
			}
			if len(included) != len(tt.expected) {
				t.Fatalf("Expected %v, got %v", tt.expected, included)
			}
			for i := range tt.expected {
				if included[i] != tt.expected[i] {
					t.Errorf("Expected %v, got %v", tt.expected, included)
					break
				}
			}
		})
	}
}

func TestMatchTracks_DuplicateTitleUsesFileOnce(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "Song.mp3"), nil, 0644); err != nil {
		t.Fatal(err)
	}

	included, missing, err := MatchTracks(dir, []string{"Song", "Song"}, model.FormatMP3)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(included) != 1 || included[0] != "Song.mp3" {
		t.Errorf("Expected [Song.mp3], got %v", included)
	}
	if len(missing) != 1 || missing[0] != "Song" {
		t.Errorf("Expected the second Song to be missing, got %v", missing)
	}
}
