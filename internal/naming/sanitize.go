package naming

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode"
)

// Sanitize makes a string safe for use as a filename: every rune outside
// letters, digits, underscore, hyphen and dot becomes an underscore, runs of
// underscores collapse, and leading/trailing underscores are stripped.
// Idempotent.
func Sanitize(name string) string {
	var b strings.Builder
	b.Grow(len(name))
	for _, r := range name {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
		case r == '_' || r == '-' || r == '.':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}
	out := b.String()
	for strings.Contains(out, "__") {
		out = strings.ReplaceAll(out, "__", "_")
	}
	return strings.Trim(out, "_")
}

// UniquePath returns dir/filename, or the first dir/filename_N variant (the
// counter inserted before the extension) that does not exist yet.
// Deterministic; assumes this process is the only writer to dir.
func UniquePath(dir, filename string) string {
	path := filepath.Join(dir, filename)
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return path
	}
	ext := filepath.Ext(filename)
	base := strings.TrimSuffix(filename, ext)
	for counter := 1; ; counter++ {
		candidate := filepath.Join(dir, fmt.Sprintf("%s_%d%s", base, counter, ext))
		if _, err := os.Stat(candidate); os.IsNotExist(err) {
			return candidate
		}
	}
}
