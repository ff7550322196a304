// Package annotate marks Bible references in text and HTML so a front end
// can attach verse tooltips to them.
package annotate

import (
	"github.com/hyperifyio/versetip/internal/reference"
)

// Span is one annotated reference.
type Span = reference.Expanded

// Segment is a run of source text. Ref is set when the run is a reference.
type Segment struct {
	Text string              `json:"text"`
	Ref  *reference.Expanded `json:"ref,omitempty"`
}

// Text calls emit for each reference in text, in source order.
func Text(text string, emit func(Span)) int {
	refs := reference.Scan(text)
	for _, r := range refs {
		emit(r)
	}
	return len(refs)
}

// Segments splits text into alternating plain and reference runs. Joining
// the Text of every segment yields the input.
func Segments(text string) []Segment {
	var out []Segment
	pos := 0
	Text(text, func(s Span) {
		if s.Start > pos {
			out = append(out, Segment{Text: text[pos:s.Start]})
		}
		ref := s
		out = append(out, Segment{Text: text[s.Start : s.Start+s.Length], Ref: &ref})
		pos = s.Start + s.Length
	})
	if pos < len(text) {
		out = append(out, Segment{Text: text[pos:]})
	}
	return out
}
