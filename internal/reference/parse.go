package reference

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

// Reference is a canonical citation broken into its parts.
// VerseEnd without ChapterEnd is a range inside Chapter.
type Reference struct {
	Book        string  `@Book`
	Chapter     int     `@Number`
	Verse       *int    `( ":" @Number`
	ChapterEnd  *int    `( "-" @Number`
	VerseEnd    *int    `( ":" @Number )? )? )?`
	More        []*Part `( "," @@ )*`
	Translation string  `( "(" @Book ")" )?`
}

// Part is one comma-separated continuation: "26", "17:14" or "5-7".
type Part struct {
	Number   int  `@Number`
	Verse    *int `( ":" @Number )?`
	End      *int `( "-" @Number`
	EndVerse *int `( ":" @Number )? )?`
}

func (p *Part) String() string {
	s := strconv.Itoa(p.Number)
	if p.Verse != nil {
		s += ":" + strconv.Itoa(*p.Verse)
	}
	if p.End != nil {
		s += "-" + strconv.Itoa(*p.End)
		if p.EndVerse != nil {
			s += ":" + strconv.Itoa(*p.EndVerse)
		}
	}
	return s
}

var referenceLexer = lexer.MustSimple([]lexer.SimpleRule{
	// Genesis, Gen., 1 John, 1John, Song of Solomon
	{Name: "Book", Pattern: `(?:\d\s*)?[A-Za-z]+(?:\s+(?:of\s+)?[A-Za-z]+)*\.?`},
	{Name: "Number", Pattern: `\d+`},
	{Name: "Colon", Pattern: `:`},
	{Name: "Dash", Pattern: `-`},
	{Name: "Punct", Pattern: `[(),]`},
	{Name: "Whitespace", Pattern: `\s+`},
})

var referenceParser = participle.MustBuild[Reference](
	participle.Lexer(referenceLexer),
	participle.Elide("Whitespace"),
)

// Parse parses a canonical reference such as "1 Cor 13:4-7" or
// "John 3:16-4:2". Known book abbreviations are expanded to the full name.
func Parse(input string) (*Reference, error) {
	ref, err := referenceParser.ParseString("", strings.TrimSpace(input))
	if err != nil {
		return nil, fmt.Errorf("parse reference %q: %w", input, err)
	}
	ref.Book = strings.TrimSpace(ref.Book)
	if b, ok := LookupBook(ref.Book); ok {
		ref.Book = b.Name
	}
	// "1:1-5" is a verse range, not a chapter range.
	if ref.Verse != nil && ref.ChapterEnd != nil && ref.VerseEnd == nil {
		ref.VerseEnd = ref.ChapterEnd
		ref.ChapterEnd = nil
	}
	return ref, nil
}

// String rebuilds the canonical form without the translation.
func (r *Reference) String() string {
	var sb strings.Builder
	sb.WriteString(r.Book)
	sb.WriteString(" ")
	sb.WriteString(strconv.Itoa(r.Chapter))
	if r.Verse != nil {
		fmt.Fprintf(&sb, ":%d", *r.Verse)
	}
	if r.ChapterEnd != nil {
		fmt.Fprintf(&sb, "-%d", *r.ChapterEnd)
		if r.VerseEnd != nil {
			fmt.Fprintf(&sb, ":%d", *r.VerseEnd)
		}
	} else if r.VerseEnd != nil {
		fmt.Fprintf(&sb, "-%d", *r.VerseEnd)
	}
	for _, m := range r.More {
		sb.WriteString(",")
		sb.WriteString(m.String())
	}
	return sb.String()
}

// IsRange reports whether the reference spans more than one verse or chapter.
func (r *Reference) IsRange() bool {
	return r.ChapterEnd != nil || r.VerseEnd != nil || len(r.More) > 0
}

// Expand returns one canonical reference per comma-separated part,
// following the same rules as shorthand continuations in running text.
func (r *Reference) Expand() []string {
	head := *r
	head.More = nil
	out := []string{head.String()}
	for _, m := range r.More {
		if m.Verse != nil {
			out = append(out, r.Book+" "+m.String())
			continue
		}
		out = append(out, r.Book+" "+strconv.Itoa(r.Chapter)+":"+m.String())
	}
	return out
}
