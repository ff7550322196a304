package reference

import (
	"sort"
	"strings"
)

// Match is a citation located in source text. Offsets are byte offsets.
type Match struct {
	Start  int    `json:"start"`
	Length int    `json:"length"`
	Raw    string `json:"raw"`
}

// End returns the offset one past the last byte of the match.
func (m Match) End() int { return m.Start + m.Length }

func (m Match) overlaps(start, end int) bool {
	return start < m.End() && end > m.Start
}

// Expanded is a located reference in its fully qualified lookup form.
// Display is what the reader sees at that span; for shorthand
// continuations it is only the short token, e.g. "26".
type Expanded struct {
	Start       int    `json:"start"`
	Length      int    `json:"length"`
	Canonical   string `json:"canonical"`
	Display     string `json:"display"`
	Translation string `json:"translation,omitempty"`
}

// FindMatches returns every accepted citation in text, sorted by start.
// A candidate is rejected if it intersects anything accepted before it.
func FindMatches(text string) []Match {
	if text == "" {
		return nil
	}
	var accepted []Match
	for _, r := range rules {
		for _, loc := range r.re.FindAllStringIndex(text, -1) {
			start, end := loc[0], loc[1]
			if intersectsAny(accepted, start, end) {
				continue
			}
			accepted = append(accepted, Match{Start: start, Length: end - start, Raw: text[start:end]})
		}
	}
	sort.Slice(accepted, func(i, j int) bool { return accepted[i].Start < accepted[j].Start })
	return accepted
}

// Scan finds citations and expands shorthand continuations such as
// "John 14:16,26" into one reference per token.
func Scan(text string) []Expanded {
	matches := FindMatches(text)
	if len(matches) == 0 {
		return []Expanded{}
	}
	out := make([]Expanded, 0, len(matches))
	for _, m := range matches {
		canon, translation := canonical(m.Raw)
		out = append(out, Expanded{
			Start:       m.Start,
			Length:      m.Length,
			Canonical:   canon,
			Display:     m.Raw,
			Translation: translation,
		})
		out = append(out, expandShorthand(text, m, canon, matches)...)
	}
	return out
}

// expandShorthand turns the comma continuation directly after m into
// references borrowing the anchor's book and chapter.
func expandShorthand(text string, m Match, canon string, matches []Match) []Expanded {
	rest := text[m.End():]
	whole := shorthandPattern.FindString(rest)
	if whole == "" {
		return nil
	}
	anchor := anchorPattern.FindStringSubmatch(canon)
	if anchor == nil {
		return nil
	}
	book, chapter := anchor[1], anchor[2]

	var out []Expanded
	pos := 0
	for pos < len(whole) {
		loc := shorthandToken.FindStringSubmatchIndex(whole[pos:])
		if loc == nil {
			break
		}
		token := whole[pos+loc[2] : pos+loc[3]]
		start := m.End() + pos + loc[2]
		end := start + len(token)
		pos += loc[1]
		if intersectsAny(matches, start, end) {
			continue
		}
		ref := book + " " + chapter + ":" + token
		if strings.Contains(token, ":") {
			ref = book + " " + token
		}
		out = append(out, Expanded{
			Start:     start,
			Length:    end - start,
			Canonical: ref,
			Display:   token,
		})
	}
	return out
}

func intersectsAny(ms []Match, start, end int) bool {
	for _, m := range ms {
		if m.overlaps(start, end) {
			return true
		}
	}
	return false
}
