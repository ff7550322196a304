package annotate

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatParagraphs(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"trailing spaces break", "This is the first sentence.  \nThis is the second sentence.", "<p>This is the first sentence.<br/>This is the second sentence.</p>"},
		{"single newline joins", "This is the first sentence.\nThis is the second sentence.", "<p>This is the first sentence. This is the second sentence.</p>"},
		{"blank line splits", "This is the first paragraph.\n\nThis is the second paragraph.", "<p>This is the first paragraph.</p>\n<p>This is the second paragraph.</p>"},
		{"multiple breaks", "First line.  \nSecond line.  \nThird line.", "<p>First line.<br/>Second line.<br/>Third line.</p>"},
		{"headers not wrapped", "<h1>Header</h1>\n\nSome content.", "<h1>Header</h1>\n<p>Some content.</p>"},
		{"mixed", "First paragraph.  \nStill first paragraph.\n\nSecond paragraph.\nStill second.", "<p>First paragraph.<br/>Still first paragraph.</p>\n<p>Second paragraph. Still second.</p>"},
		{"extra blank lines", "First paragraph.\n\n\n\nSecond paragraph.", "<p>First paragraph.</p>\n<p>Second paragraph.</p>"},
		{"inline html", "This has <strong>bold</strong> text.  \nThis is a new line.", "<p>This has <strong>bold</strong> text.<br/>This is a new line.</p>"},
		{"consecutive headers", "<h2>Section Title</h2>\n\n<h3>Subsection</h3>", "<h2>Section Title</h2>\n<h3>Subsection</h3>"},
		{"crlf", "First line.  \r\nSecond line.", "<p>First line.<br/>Second line.</p>"},
		{"mixed line endings", "Unix line.  \nWindows line.  \r\nMac line.  \rNormal line.", "<p>Unix line.<br/>Windows line.<br/>Mac line.<br/>Normal line.</p>"},
		{"crlf paragraphs", "First paragraph.\r\n\r\nSecond paragraph.", "<p>First paragraph.</p>\n<p>Second paragraph.</p>"},
		{"user example", "line 1 with two spaces at the end  \nline 2 with no extra spaces at the end\nline 3\n\nline 4", "<p>line 1 with two spaces at the end<br/>line 2 with no extra spaces at the end line 3</p>\n<p>line 4</p>"},
		{"empty", "", ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, FormatParagraphs(tc.in))
		})
	}
}
