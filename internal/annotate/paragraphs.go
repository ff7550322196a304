package annotate

import "strings"

// FormatParagraphs applies markdown line-break conventions to a block of
// HTML-ish text: blank lines separate paragraphs, two trailing spaces before
// a newline make a <br/>, and other newlines join lines with a space.
// Paragraphs that start with a heading tag are not wrapped in <p>.
func FormatParagraphs(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")

	var out []string
	for _, p := range strings.Split(s, "\n\n") {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		if strings.HasPrefix(p, "<h") {
			out = append(out, p)
			continue
		}
		p = strings.ReplaceAll(p, "  \n", "<br/>")
		p = strings.ReplaceAll(p, "\n", " ")
		out = append(out, "<p>"+p+"</p>")
	}
	return strings.Join(out, "\n")
}
