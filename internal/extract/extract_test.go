package extract

import (
	"strings"
	"testing"

	"golang.org/x/net/html"
)

func TestFromHTML_PrefersMainOverBody(t *testing.T) {
	page := `<!doctype html>
    <html>
      <head><title>Sermon Notes</title></head>
      <body>
        <nav>Home John 1:1</nav>
        <main>
          <h1>The Good Shepherd</h1>
          <p>Read John 10:11 before Sunday.</p>
        </main>
        <footer>Footer text</footer>
      </body>
    </html>`

	doc := FromHTML([]byte(page))
	if doc.Title != "Sermon Notes" {
		t.Fatalf("expected title 'Sermon Notes', got %q", doc.Title)
	}
	if !strings.Contains(doc.Text, "The Good Shepherd") || !strings.Contains(doc.Text, "Read John 10:11 before Sunday.") {
		t.Fatalf("expected main content, got %q", doc.Text)
	}
	if strings.Contains(doc.Text, "Home") || strings.Contains(doc.Text, "Footer text") {
		t.Fatalf("did not expect nav or footer text, got %q", doc.Text)
	}
}

func TestFromHTML_FallbackToBody(t *testing.T) {
	doc := FromHTML([]byte(`<html><head><title>No Main</title></head><body><h2>Heading</h2><p>Body paragraph</p></body></html>`))
	if doc.Title != "No Main" {
		t.Fatalf("expected title 'No Main', got %q", doc.Title)
	}
	if doc.Text != "Heading\n\nBody paragraph" {
		t.Fatalf("unexpected text %q", doc.Text)
	}
}

func TestFromHTML_SkipsExcludedContent(t *testing.T) {
	page := `<html><body><article>
      <p>Keep Romans 8:28.</p>
      <p class="lead no-bible">Drop Psalm 23:1.</p>
      <div class="bible-tooltip">Drop John 3:16.</div>
      <script>var ref = "Acts 2:38";</script>
      <style>.x{}</style>
      <pre>line one
line two</pre>
    </article></body></html>`

	doc := FromHTML([]byte(page))
	for _, unwanted := range []string{"Psalm", "John", "Acts", ".x"} {
		if strings.Contains(doc.Text, unwanted) {
			t.Fatalf("did not expect %q in %q", unwanted, doc.Text)
		}
	}
	if !strings.Contains(doc.Text, "Keep Romans 8:28.") {
		t.Fatalf("expected kept paragraph, got %q", doc.Text)
	}
	if !strings.Contains(doc.Text, "line one\nline two") {
		t.Fatalf("expected pre block lines, got %q", doc.Text)
	}
}

func TestSkipAndHasClass(t *testing.T) {
	el := &html.Node{Type: html.ElementNode, Data: "span", Attr: []html.Attribute{{Key: "class", Val: "x bible-ref"}}}
	if !Skip(el) {
		t.Fatalf("expected annotated span to be skipped")
	}
	el.Attr[0].Val = "bible-reference"
	if Skip(el) {
		t.Fatalf("class match must be exact")
	}
	if Skip(&html.Node{Type: html.TextNode, Data: "script"}) {
		t.Fatalf("text nodes are never skipped")
	}
}

func TestForPath(t *testing.T) {
	if _, ok := ForPath("notes.HTML").(HTMLExtractor); !ok {
		t.Fatalf("expected HTML extractor")
	}
	doc := ForPath("notes.md").Extract([]byte("intro\r\n# Lent Study\r\nJohn 3:16"))
	if doc.Title != "Lent Study" {
		t.Fatalf("unexpected title %q", doc.Title)
	}
	if doc.Text != "intro\n# Lent Study\nJohn 3:16" {
		t.Fatalf("unexpected text %q", doc.Text)
	}
}
