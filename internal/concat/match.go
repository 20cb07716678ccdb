package concat

import (
	"fmt"
	"os"
	"strings"

	"github.com/ytget/playlist-downloader/internal/model"
)

// yt-dlp replaces characters that are invalid in filenames with look-alikes
var titleSanitizer = strings.NewReplacer(
	"/", "⧸",
	"\\", "⧹",
	":", "：",
	"*", "＊",
	"?", "？",
	"\"", "＂",
	"<", "＜",
	">", "＞",
	"|", "｜",
)

// SanitizeTitle returns title the way it appears in a downloaded filename
func SanitizeTitle(title string) string {
	return titleSanitizer.Replace(title)
}

// ListTrackFiles returns regular file names in dir with extension ext,
// sorted by name, excluding the combined output.
func ListTrackFiles(dir, ext string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read download directory: %w", err)
	}

	suffix := "." + ext
	output := OutputName(ext)
	var names []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		if !strings.HasSuffix(name, suffix) || name == output {
			continue
		}
		names = append(names, name)
	}
	return names, nil
}

// FindTrackFile resolves title to one of names. An exact "<title>.<ext>"
// wins over a prefix match; the raw title is tried before its sanitized form.
// Names present in taken are skipped.
func FindTrackFile(names []string, title, ext string, taken map[string]bool) (string, bool) {
	if title == "" {
		return "", false
	}

	candidates := []string{title}
	if sanitized := SanitizeTitle(title); sanitized != title {
		candidates = append(candidates, sanitized)
	}

	for _, prefix := range candidates {
		exact := prefix + "." + ext
		for _, name := range names {
			if name == exact && !taken[name] {
				return name, true
			}
		}
	}

	for _, prefix := range candidates {
		for _, name := range names {
			if strings.HasPrefix(name, prefix) && !taken[name] {
				return name, true
			}
		}
	}
	return "", false
}

// MatchTracks resolves titles to file names in dir, in title order. Each file
// is used at most once. Titles without a file are returned in missing.
func MatchTracks(dir string, titles []string, format model.AudioFormat) (included, missing []string, err error) {
	ext := format.Ext()
	names, err := ListTrackFiles(dir, ext)
	if err != nil {
		return nil, nil, err
	}

	taken := make(map[string]bool, len(titles))
	for _, title := range titles {
		name, ok := FindTrackFile(names, title, ext, taken)
		if !ok {
			missing = append(missing, title)
			continue
		}
		taken[name] = true
		included = append(included, name)
	}
	return included, missing, nil
}
