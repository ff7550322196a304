package extract

import (
	"path/filepath"
	"strings"
)

// Extractor converts a source document into scannable text.
type Extractor interface {
	Extract(input []byte) Document
}

// HTMLExtractor uses FromHTML.
type HTMLExtractor struct{}

func (HTMLExtractor) Extract(input []byte) Document { return FromHTML(input) }

// PlainExtractor passes text and markdown through unchanged. The title is
// the first markdown heading, if any.
type PlainExtractor struct{}

func (PlainExtractor) Extract(input []byte) Document {
	text := strings.ReplaceAll(string(input), "\r\n", "\n")
	var title string
	for _, line := range strings.Split(text, "\n") {
		if strings.HasPrefix(line, "# ") {
			title = strings.TrimSpace(strings.TrimPrefix(line, "# "))
			break
		}
	}
	return Document{Title: title, Text: text}
}

// ForPath picks an extractor by file extension.
func ForPath(path string) Extractor {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".html", ".htm", ".xhtml":
		return HTMLExtractor{}
	}
	return PlainExtractor{}
}
