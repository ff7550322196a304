package reference

import (
	"regexp"
	"strings"
)

// translationPattern matches a parenthesised translation code such as "(NIV)".
const translationPattern = `\(([A-Z][A-Z0-9]{1,9})\)`

// rule is one citation shape. Rules are tried in slice order and an earlier
// rule's match blocks any later candidate it intersects.
type rule struct {
	name string
	re   *regexp.Regexp
}

var (
	rules = buildRules(bookAlternation())

	// shorthandPattern is the whole comma continuation after an anchor.
	shorthandPattern = regexp.MustCompile(`^(?:,\s*(\d+(?::\d+)?(?:-\d+(?::\d+)?)?))*`)
	// shorthandToken peels one continuation token at a time so each keeps
	// its own offsets.
	shorthandToken = regexp.MustCompile(`^,\s*(\d+(?::\d+)?(?:-\d+(?::\d+)?)?)`)
	anchorPattern  = regexp.MustCompile(`^(.+?)\s+(\d+):(\d+)`)

	translationSuffix = regexp.MustCompile(`\s*` + translationPattern + `$`)
	spaceRun          = regexp.MustCompile(`\s+`)
)

func buildRules(book string) []rule {
	head := `\b` + book + `\s+\d+:\d+`
	list := `(?:,\s*\d+(?::\d+)?(?:-\d+(?::\d+)?)?)*`
	return []rule{
		{
			name: "qualified",
			re:   regexp.MustCompile(head + `(?:-\d+)?` + list + `\s*` + translationPattern),
		},
		{
			name: "cross-chapter",
			re:   regexp.MustCompile(head + `-\d+:\d+(?:\s*` + translationPattern + `)?`),
		},
		{
			name: "plain",
			re:   regexp.MustCompile(head + `(?:-\d+)?`),
		},
	}
}

// canonical strips a trailing translation annotation and collapses
// whitespace. The translation code is returned separately.
func canonical(raw string) (string, string) {
	var translation string
	if m := translationSuffix.FindStringSubmatchIndex(raw); m != nil {
		translation = raw[m[2]:m[3]]
		raw = raw[:m[0]]
	}
	return strings.TrimSpace(spaceRun.ReplaceAllString(raw, " ")), translation
}
