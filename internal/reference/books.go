package reference

import (
	"regexp"
	"sort"
	"strings"
)

// Book holds the names a single book of the Bible is cited by.
type Book struct {
	Name     string
	Abbrevs  []string
	Order    int
	Chapters int
}

// books lists the Protestant canon in canonical order. Abbreviations are the
// common English short forms; each may also be written with a trailing period.
var books = []Book{
	{"Genesis", []string{"Gen", "Ge", "Gn"}, 1, 50},
	{"Exodus", []string{"Exod", "Exo", "Ex"}, 2, 40},
	{"Leviticus", []string{"Lev", "Le", "Lv"}, 3, 27},
	{"Numbers", []string{"Num", "Nu", "Nm"}, 4, 36},
	{"Deuteronomy", []string{"Deut", "Deu", "Dt"}, 5, 34},
	{"Joshua", []string{"Josh", "Jos"}, 6, 24},
	{"Judges", []string{"Judg", "Jdg"}, 7, 21},
	{"Ruth", []string{"Rth", "Ru"}, 8, 4},
	{"1 Samuel", []string{"1 Sam", "1 Sa"}, 9, 31},
	{"2 Samuel", []string{"2 Sam", "2 Sa"}, 10, 24},
	{"1 Kings", []string{"1 Kgs", "1 Ki"}, 11, 22},
	{"2 Kings", []string{"2 Kgs", "2 Ki"}, 12, 25},
	{"1 Chronicles", []string{"1 Chron", "1 Chr"}, 13, 29},
	{"2 Chronicles", []string{"2 Chron", "2 Chr"}, 14, 36},
	{"Ezra", []string{"Ezr"}, 15, 10},
	{"Nehemiah", []string{"Neh", "Ne"}, 16, 13},
	{"Esther", []string{"Esth", "Est"}, 17, 10},
	{"Job", []string{"Jb"}, 18, 42},
	{"Psalms", []string{"Psalm", "Pss", "Psa", "Ps"}, 19, 150},
	{"Proverbs", []string{"Prov", "Pro", "Prv"}, 20, 31},
	{"Ecclesiastes", []string{"Eccles", "Eccl", "Ecc"}, 21, 12},
	{"Song of Solomon", []string{"Song of Songs", "Song", "SOS"}, 22, 8},
	{"Isaiah", []string{"Isa"}, 23, 66},
	{"Jeremiah", []string{"Jer"}, 24, 52},
	{"Lamentations", []string{"Lam"}, 25, 5},
	{"Ezekiel", []string{"Ezek", "Eze"}, 26, 48},
	{"Daniel", []string{"Dan", "Dn"}, 27, 12},
	{"Hosea", []string{"Hos"}, 28, 14},
	{"Joel", []string{"Jl"}, 29, 3},
	{"Amos", []string{"Am"}, 30, 9},
	{"Obadiah", []string{"Obad", "Ob"}, 31, 1},
	{"Jonah", []string{"Jon"}, 32, 4},
	{"Micah", []string{"Mic"}, 33, 7},
	{"Nahum", []string{"Nah"}, 34, 3},
	{"Habakkuk", []string{"Hab"}, 35, 3},
	{"Zephaniah", []string{"Zeph", "Zep"}, 36, 3},
	{"Haggai", []string{"Hag"}, 37, 2},
	{"Zechariah", []string{"Zech", "Zec"}, 38, 14},
	{"Malachi", []string{"Mal"}, 39, 4},
	{"Matthew", []string{"Matt", "Mt"}, 40, 28},
	{"Mark", []string{"Mrk", "Mk"}, 41, 16},
	{"Luke", []string{"Luk", "Lk"}, 42, 24},
	{"John", []string{"Jhn", "Jn"}, 43, 21},
	{"Acts", []string{"Act"}, 44, 28},
	{"Romans", []string{"Rom", "Rm"}, 45, 16},
	{"1 Corinthians", []string{"1 Cor", "1 Co"}, 46, 16},
	{"2 Corinthians", []string{"2 Cor", "2 Co"}, 47, 13},
	{"Galatians", []string{"Gal"}, 48, 6},
	{"Ephesians", []string{"Eph"}, 49, 6},
	{"Philippians", []string{"Phil", "Php"}, 50, 4},
	{"Colossians", []string{"Col"}, 51, 4},
	{"1 Thessalonians", []string{"1 Thess", "1 Th"}, 52, 5},
	{"2 Thessalonians", []string{"2 Thess", "2 Th"}, 53, 3},
	{"1 Timothy", []string{"1 Tim", "1 Ti"}, 54, 6},
	{"2 Timothy", []string{"2 Tim", "2 Ti"}, 55, 4},
	{"Titus", []string{"Tit"}, 56, 3},
	{"Philemon", []string{"Philem", "Phm"}, 57, 1},
	{"Hebrews", []string{"Heb"}, 58, 13},
	{"James", []string{"Jas", "Jm"}, 59, 5},
	{"1 Peter", []string{"1 Pet", "1 Pe"}, 60, 5},
	{"2 Peter", []string{"2 Pet", "2 Pe"}, 61, 3},
	{"1 John", []string{"1 Jn"}, 62, 5},
	{"2 John", []string{"2 Jn"}, 63, 1},
	{"3 John", []string{"3 Jn"}, 64, 1},
	{"Jude", []string{"Jud"}, 65, 1},
	{"Revelation", []string{"Rev", "Re"}, 66, 22},
}

// Books returns a copy of the book table in canonical order.
func Books() []Book {
	out := make([]Book, len(books))
	copy(out, books)
	return out
}

// LookupBook resolves a full name or abbreviation, ignoring case, a trailing
// period and the spacing after a leading book number.
func LookupBook(name string) (Book, bool) {
	key := bookKey(name)
	if key == "" {
		return Book{}, false
	}
	for _, b := range books {
		if bookKey(b.Name) == key {
			return b, true
		}
		for _, a := range b.Abbrevs {
			if bookKey(a) == key {
				return b, true
			}
		}
	}
	return Book{}, false
}

func bookKey(name string) string {
	s := strings.ToLower(strings.TrimSuffix(strings.TrimSpace(name), "."))
	return strings.Join(strings.Fields(s), "")
}

// bookAlternation builds a regexp alternation over every book name and
// abbreviation, longest first so that "1 John" wins over "John" and
// "Song of Solomon" over "Song".
func bookAlternation() string {
	var names []string
	for _, b := range books {
		names = append(names, b.Name)
		names = append(names, b.Abbrevs...)
	}
	sort.SliceStable(names, func(i, j int) bool {
		return len(names[i]) > len(names[j])
	})
	parts := make([]string, 0, len(names))
	for _, n := range names {
		parts = append(parts, namePattern(n))
	}
	return `(?:` + strings.Join(parts, `|`) + `)`
}

// namePattern turns "1 John" into `1\s*John\.?` and "Song of Solomon" into
// `Song\s+of\s+Solomon\.?`.
func namePattern(name string) string {
	words := strings.Fields(name)
	var b strings.Builder
	for i, w := range words {
		if i > 0 {
			if isDigits(words[i-1]) {
				b.WriteString(`\s*`)
			} else {
				b.WriteString(`\s+`)
			}
		}
		b.WriteString(regexp.QuoteMeta(w))
	}
	b.WriteString(`\.?`)
	return b.String()
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
