package annotate

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/hyperifyio/versetip/internal/extract"
	"github.com/hyperifyio/versetip/internal/verse"
)

// Options controls HTML annotation.
type Options struct {
	// Fragment treats the input as body content rather than a full document.
	Fragment bool
	// Interlinear adds a data-interlinear attribute with the interlinear URL.
	Interlinear bool
}

// HTML copies the document from r to w with every reference in visible
// text wrapped as <span class="bible-ref" data-reference="...">. Content
// rejected by extract.Skip is left alone, so running HTML over its own
// output changes nothing. It returns the number of spans inserted.
func HTML(r io.Reader, w io.Writer, opt Options) (int, error) {
	var root *html.Node
	if opt.Fragment {
		body := &html.Node{Type: html.ElementNode, Data: "body", DataAtom: atom.Body}
		nodes, err := html.ParseFragment(r, body)
		if err != nil {
			return 0, fmt.Errorf("parse fragment: %w", err)
		}
		for _, n := range nodes {
			body.AppendChild(n)
		}
		root = body
	} else {
		doc, err := html.Parse(r)
		if err != nil {
			return 0, fmt.Errorf("parse document: %w", err)
		}
		root = doc
	}

	var texts []*html.Node
	collectTextNodes(root, &texts)
	count := 0
	for _, n := range texts {
		count += annotateNode(n, opt)
	}

	if opt.Fragment {
		for c := root.FirstChild; c != nil; c = c.NextSibling {
			if err := html.Render(w, c); err != nil {
				return count, fmt.Errorf("render: %w", err)
			}
		}
		return count, nil
	}
	if err := html.Render(w, root); err != nil {
		return count, fmt.Errorf("render: %w", err)
	}
	return count, nil
}

// HTMLString is HTML over strings.
func HTMLString(s string, opt Options) (string, int, error) {
	var b strings.Builder
	n, err := HTML(strings.NewReader(s), &b, opt)
	return b.String(), n, err
}

func collectTextNodes(n *html.Node, out *[]*html.Node) {
	if extract.Skip(n) {
		return
	}
	if n.Type == html.ElementNode {
		switch n.DataAtom {
		case atom.Head, atom.Title, atom.Option:
			return
		}
	}
	if n.Type == html.TextNode && n.Parent != nil {
		*out = append(*out, n)
		return
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		collectTextNodes(c, out)
	}
}

// annotateNode replaces a text node with plain text and reference spans.
func annotateNode(n *html.Node, opt Options) int {
	segs := Segments(n.Data)
	refs := 0
	for _, s := range segs {
		if s.Ref != nil {
			refs++
		}
	}
	if refs == 0 {
		return 0
	}
	parent := n.Parent
	for _, s := range segs {
		if s.Ref == nil {
			parent.InsertBefore(&html.Node{Type: html.TextNode, Data: s.Text}, n)
			continue
		}
		parent.InsertBefore(refSpan(s, opt), n)
	}
	parent.RemoveChild(n)
	return refs
}

func refSpan(s Segment, opt Options) *html.Node {
	attrs := []html.Attribute{
		{Key: "class", Val: extract.ClassRef},
		{Key: "data-reference", Val: s.Ref.Canonical},
	}
	if s.Ref.Translation != "" {
		attrs = append(attrs, html.Attribute{Key: "data-translation", Val: s.Ref.Translation})
	}
	if opt.Interlinear {
		attrs = append(attrs, html.Attribute{Key: "data-interlinear", Val: verse.InterlinearURL(s.Ref.Canonical)})
	}
	span := &html.Node{Type: html.ElementNode, Data: "span", DataAtom: atom.Span, Attr: attrs}
	span.AppendChild(&html.Node{Type: html.TextNode, Data: s.Text})
	return span
}
