// Package fs writes converted Markdown pages to disk.
package fs

import (
	"os"
	"path/filepath"
	"strings"
)

// MarkdownPath derives the output file name for a source path: the base
// name with its extension replaced by .md. Empty names and "-" (stdin)
// map to index.md.
func MarkdownPath(name string) string {
	if name == "" || name == "-" {
		return "index.md"
	}
	base := filepath.Base(name)
	if ext := filepath.Ext(base); ext != "" {
		base = strings.TrimSuffix(base, ext)
	}
	return base + ".md"
}

// Writer writes Markdown pages into a directory.
type Writer struct {
	baseDir string
}

// NewWriter creates a new Writer that writes to the given base directory.
func NewWriter(baseDir string) *Writer {
	return &Writer{baseDir: baseDir}
}

// WritePage writes markdown to the file derived from name via
// MarkdownPath, creating the directory if needed. The content lands via a
// temp file and rename so readers never observe a partial page. It
// returns the path written.
func (w *Writer) WritePage(name, markdown string) (string, error) {
	if err := os.MkdirAll(w.baseDir, 0755); err != nil {
		return "", err
	}

	fullPath := filepath.Join(w.baseDir, MarkdownPath(name))

	tmp, err := os.CreateTemp(w.baseDir, ".htmlmd-*")
	if err != nil {
		return "", err
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.WriteString(markdown); err != nil {
		tmp.Close()
		return "", err
	}
	if err := tmp.Close(); err != nil {
		return "", err
	}

	if err := os.Rename(tmp.Name(), fullPath); err != nil {
		return "", err
	}
	return fullPath, nil
}
