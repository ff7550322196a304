package extract

import (
	"bytes"
	"strings"

	"golang.org/x/net/html"
)

// Document is the readable text of a page or file.
type Document struct {
	Title string
	Text  string
}

// Classes that mark content which must never be scanned for references.
const (
	ClassNoBible = "no-bible"
	ClassTooltip = "bible-tooltip"
	ClassRef     = "bible-ref"
)

// FromHTML extracts readable text from HTML, preferring <main> or <article>
// and falling back to <body>. Block elements become line breaks; elements
// rejected by Skip contribute nothing.
func FromHTML(input []byte) Document {
	node, err := html.Parse(bytes.NewReader(input))
	if err != nil || node == nil {
		return Document{}
	}

	title := ""
	if head := findFirst(node, "head"); head != nil {
		if t := findFirst(head, "title"); t != nil && t.FirstChild != nil {
			title = strings.TrimSpace(t.FirstChild.Data)
		}
	}
	content := findFirst(node, "main")
	if content == nil {
		content = findFirst(node, "article")
	}
	if content == nil {
		content = findFirst(node, "body")
	}
	var b strings.Builder
	if content != nil {
		collectText(&b, content, false)
	}
	return Document{Title: title, Text: normalizeWhitespace(b.String())}
}

// Skip reports whether n and its subtree are off limits for reference
// scanning: scripts and styles, navigation chrome, anything marked
// no-bible, tooltip markup and spans that are already annotated.
func Skip(n *html.Node) bool {
	if n == nil || n.Type != html.ElementNode {
		return false
	}
	switch strings.ToLower(n.Data) {
	case "script", "style", "noscript", "template", "iframe", "textarea":
		return true
	}
	return HasClass(n, ClassNoBible) || HasClass(n, ClassTooltip) || HasClass(n, ClassRef)
}

// HasClass reports whether the element's class attribute lists class.
func HasClass(n *html.Node, class string) bool {
	for _, a := range n.Attr {
		if a.Namespace != "" || !strings.EqualFold(a.Key, "class") {
			continue
		}
		for _, c := range strings.Fields(a.Val) {
			if c == class {
				return true
			}
		}
	}
	return false
}

func findFirst(n *html.Node, tag string) *html.Node {
	if n.Type == html.ElementNode && strings.EqualFold(n.Data, tag) {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if res := findFirst(c, tag); res != nil {
			return res
		}
	}
	return nil
}

func collectText(b *strings.Builder, n *html.Node, inPre bool) {
	if Skip(n) {
		return
	}
	if n.Type == html.ElementNode {
		switch strings.ToLower(n.Data) {
		case "nav", "footer", "aside":
			return
		case "pre":
			inPre = true
		case "br", "hr", "p", "h1", "h2", "h3", "h4", "h5", "h6", "li", "ul", "ol", "blockquote":
			b.WriteString("\n")
		}
	}

	if n.Type == html.TextNode {
		data := n.Data
		if !inPre {
			data = strings.NewReplacer("\t", " ", "\r", " ").Replace(data)
		}
		b.WriteString(data)
	}

	for c := n.FirstChild; c != nil; c = c.NextSibling {
		collectText(b, c, inPre)
	}

	if n.Type == html.ElementNode {
		switch strings.ToLower(n.Data) {
		case "p", "h1", "h2", "h3", "h4", "h5", "h6", "blockquote":
			b.WriteString("\n\n")
		case "li", "pre":
			b.WriteString("\n")
		}
	}
}

// normalizeWhitespace collapses runs of spaces within lines and keeps at
// most one blank line between blocks.
func normalizeWhitespace(s string) string {
	lines := strings.Split(s, "\n")
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		collapsed := strings.Join(strings.Fields(line), " ")
		if collapsed == "" {
			if len(out) == 0 || out[len(out)-1] == "" {
				continue
			}
		}
		out = append(out, collapsed)
	}
	for len(out) > 0 && out[len(out)-1] == "" {
		out = out[:len(out)-1]
	}
	return strings.Join(out, "\n")
}
