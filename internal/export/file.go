package export

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// Save creates dir if needed and writes one report file through render.
// A partially written file is removed when render fails.
func Save(dir, name string, render func(io.Writer) error) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("export: mkdir %s: %w", dir, err)
	}
	p := filepath.Join(dir, name)
	f, err := os.Create(p)
	if err != nil {
		return "", fmt.Errorf("export: create %s: %w", p, err)
	}
	if err := render(f); err != nil {
		f.Close()
		os.Remove(p)
		return "", err
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("export: close %s: %w", p, err)
	}
	return p, nil
}

// FileName builds "<kind>-<slug>.<ext>", e.g. "schedule-fall-2023.pdf".
func FileName(kind, label, ext string) string {
	slug := slugify(label)
	if slug == "" {
		return kind + "." + ext
	}
	return kind + "-" + slug + "." + ext
}

func slugify(s string) string {
	out := make([]rune, 0, len(s))
	dash := false
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			out = append(out, r)
			dash = false
		case r >= 'A' && r <= 'Z':
			out = append(out, r+('a'-'A'))
			dash = false
		default:
			if len(out) > 0 && !dash {
				out = append(out, '-')
				dash = true
			}
		}
	}
	if dash {
		out = out[:len(out)-1]
	}
	return string(out)
}
