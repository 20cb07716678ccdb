package concat

import (
	"fmt"
	"os"
	"strings"
)

const (
	manifestLineFormat = "file '%s'\n"
	quoteEscape        = `'\''`
)

// ManifestLine renders one concat demuxer entry for name
func ManifestLine(name string) string {
	return fmt.Sprintf(manifestLineFormat, strings.ReplaceAll(name, "'", quoteEscape))
}

// WriteManifest writes the concat list, one entry per name, in order
func WriteManifest(path string, names []string) error {
	var b strings.Builder
	for _, name := range names {
		b.WriteString(ManifestLine(name))
	}
	if err := os.WriteFile(path, []byte(b.String()), ManifestPermissions); err != nil {
		return fmt.Errorf("failed to write manifest: %w", err)
	}
	return nil
}
