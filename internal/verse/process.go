package verse

import (
	"regexp"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// whitespace also covers \v and Unicode spaces such as NBSP, which \s alone
// does not match.
var whitespace = regexp.MustCompile(`[\s\v\p{Z}]+`)

// Process turns a payload into display text. At most MaxVerses verses are
// joined; when more were supplied TruncationMarker is appended. Without a
// verse list the flat text is used as is, apart from whitespace collapsing.
func Process(p Payload) Result {
	var text string
	truncated := false
	if len(p.Verses) > 0 {
		n := len(p.Verses)
		if n > MaxVerses {
			n = MaxVerses
			truncated = true
		}
		parts := make([]string, 0, n)
		for _, v := range p.Verses[:n] {
			parts = append(parts, v.Text)
		}
		text = strings.Join(parts, " ")
	} else {
		text = p.Text
	}

	text = normalizeSpace(text)
	if truncated {
		text += TruncationMarker
	}
	return Result{Text: text, Translation: translationCode(p)}
}

func normalizeSpace(s string) string {
	return strings.TrimSpace(whitespace.ReplaceAllString(s, " "))
}

func translationCode(p Payload) string {
	for _, s := range []string{p.TranslationID, p.TranslationName} {
		if s = strings.TrimSpace(s); s != "" {
			return cases.Upper(language.Und).String(s)
		}
	}
	return DefaultTranslation
}
