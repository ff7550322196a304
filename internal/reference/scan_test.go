package reference

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScan_ShorthandVerse(t *testing.T) {
	got := Scan("John 14:16,26")
	require.Len(t, got, 2)
	assert.Equal(t, Expanded{Start: 0, Length: 10, Canonical: "John 14:16", Display: "John 14:16"}, got[0])
	assert.Equal(t, Expanded{Start: 11, Length: 2, Canonical: "John 14:26", Display: "26"}, got[1])
}

func TestScan_ShorthandChapterVerse(t *testing.T) {
	got := Scan("Revelation 1:5, 17:14")
	require.Len(t, got, 2)
	assert.Equal(t, "Revelation 1:5", got[0].Canonical)
	assert.Equal(t, "Revelation 1:5", got[0].Display)
	assert.Equal(t, "Revelation 17:14", got[1].Canonical)
	assert.Equal(t, "17:14", got[1].Display)
	assert.Equal(t, 16, got[1].Start)
	assert.Equal(t, 5, got[1].Length)
}

func TestScan_ShorthandAfterRange(t *testing.T) {
	got := Scan("Romans 8:28-30, 35 and Psalm 23:1, 24:1-3")
	require.Len(t, got, 4)
	assert.Equal(t, "Romans 8:28-30", got[0].Canonical)
	assert.Equal(t, "Romans 8:35", got[1].Canonical)
	assert.Equal(t, "Psalm 23:1", got[2].Canonical)
	assert.Equal(t, "Psalm 24:1-3", got[3].Canonical)
	assert.Equal(t, "24:1-3", got[3].Display)
}

func TestScan_NoCitations(t *testing.T) {
	for _, in := range []string{"", "Hello world", "john 3:16", "Chapter 3:16", "Psalm 23"} {
		got := Scan(in)
		assert.NotNil(t, got, in)
		assert.Empty(t, got, in)
	}
}

func TestScan_TranslationQualified(t *testing.T) {
	text := "See John 3:16 (NIV) today."
	got := Scan(text)
	require.Len(t, got, 1)
	assert.Equal(t, 4, got[0].Start)
	assert.Equal(t, "John 3:16 (NIV)", got[0].Display)
	assert.Equal(t, "John 3:16", got[0].Canonical)
	assert.Equal(t, "NIV", got[0].Translation)
	assert.Equal(t, got[0].Display, text[got[0].Start:got[0].Start+got[0].Length])
}

func TestScan_TranslationQualifiedList(t *testing.T) {
	got := Scan("John 14:16, 26 (NIV)")
	require.Len(t, got, 1)
	assert.Equal(t, "John 14:16, 26", got[0].Canonical)
	assert.Equal(t, "NIV", got[0].Translation)
}

func TestScan_CrossChapter(t *testing.T) {
	got := Scan("Read Genesis 1:1-2:3 (ESV).")
	require.Len(t, got, 1)
	assert.Equal(t, "Genesis 1:1-2:3", got[0].Canonical)
	assert.Equal(t, "ESV", got[0].Translation)

	got = Scan("Read Genesis 1:1-2:3.")
	require.Len(t, got, 1)
	assert.Equal(t, "Genesis 1:1-2:3", got[0].Canonical)
	assert.Empty(t, got[0].Translation)
}

func TestScan_ShorthandAfterCrossChapter(t *testing.T) {
	text := "John 3:16-4:2, 5"
	got := Scan(text)
	require.Len(t, got, 2)
	assert.Equal(t, "John 3:16-4:2", got[0].Canonical)
	// Continuations borrow the chapter the range starts in.
	assert.Equal(t, Expanded{Start: 15, Length: 1, Canonical: "John 3:5", Display: "5"}, got[1])
	assert.Equal(t, "5", text[got[1].Start:got[1].Start+got[1].Length])
}

func TestScan_SpansSortedDisjointAndFaithful(t *testing.T) {
	corpus := []struct {
		name string
		text string
		want int
	}{
		{"shorthand lists", "John 14:16,26 and Revelation 1:5, 17:14", 4},
		{"ranges", "Romans 8:28-30, 35; Psalm 23:1, 24:1-3.", 4},
		{"translations", "See John 3:16 (NIV) and Acts 2:38 (KJV), then Genesis 1:1-2:3 (ESV).", 3},
		{"cross chapter then shorthand", "John 3:16-4:2, 5 before Mark 1:1", 3},
		{"numbered and abbreviated", "1 John 2:1, 3 and cf. Gen. 1:1, Matt 5:3-12", 4},
		{"adjacent citations", "John 3:16, 1 John 2:1, 2", 3},
		{"prose", "Nothing here but chapter 3 and verse 16.", 0},
	}
	for _, tc := range corpus {
		t.Run(tc.name, func(t *testing.T) {
			got := Scan(tc.text)
			require.Len(t, got, tc.want)
			for i, r := range got {
				require.GreaterOrEqual(t, r.Start, 0)
				require.Greater(t, r.Length, 0)
				require.LessOrEqual(t, r.Start+r.Length, len(tc.text))
				assert.Equal(t, r.Display, tc.text[r.Start:r.Start+r.Length])
				if i > 0 {
					prev := got[i-1]
					assert.Less(t, prev.Start, r.Start)
					assert.LessOrEqual(t, prev.Start+prev.Length, r.Start)
				}
			}
		})
	}
}

func TestScan_NumberedBooks(t *testing.T) {
	got := Scan("1 John 2:1 and 1John 3:1 and Song of Solomon 2:4")
	require.Len(t, got, 3)
	assert.Equal(t, Expanded{Start: 0, Length: 10, Canonical: "1 John 2:1", Display: "1 John 2:1"}, got[0])
	assert.Equal(t, "1John 3:1", got[1].Canonical)
	assert.Equal(t, "Song of Solomon 2:4", got[2].Canonical)
}

func TestScan_Abbreviation(t *testing.T) {
	got := Scan("cf. Gen. 1:1 and Matt 5:3")
	require.Len(t, got, 2)
	assert.Equal(t, "Gen. 1:1", got[0].Canonical)
	assert.Equal(t, "Matt 5:3", got[1].Canonical)
}

func TestScan_ContinuationDoesNotOverlapNextCitation(t *testing.T) {
	got := Scan("John 3:16, 1 John 2:1")
	require.Len(t, got, 2)
	assert.Equal(t, "John 3:16", got[0].Canonical)
	assert.Equal(t, "1 John 2:1", got[1].Canonical)
	assert.Equal(t, 11, got[1].Start)
}

func TestScan_ContinuationMustBeAdjacent(t *testing.T) {
	got := Scan("John 3:16 and, 17")
	require.Len(t, got, 1)
	assert.Equal(t, "John 3:16", got[0].Canonical)
}

func TestFindMatches_FirstRuleWins(t *testing.T) {
	// The plain rule would match "John 3:16" inside the qualified citation.
	got := FindMatches("John 3:16-18 (KJV) and John 3:16")
	require.Len(t, got, 2)
	assert.Equal(t, "John 3:16-18 (KJV)", got[0].Raw)
	assert.Equal(t, "John 3:16", got[1].Raw)
	assert.Equal(t, 23, got[1].Start)
}

func TestFindMatches_SortedAndDisjoint(t *testing.T) {
	got := FindMatches("Mark 1:1 then Luke 2:1-4:2 (ESV) then Acts 2:38 (NIV)")
	require.Len(t, got, 3)
	for i := 1; i < len(got); i++ {
		assert.Less(t, got[i-1].Start, got[i].Start)
		assert.LessOrEqual(t, got[i-1].End(), got[i].Start)
	}
}

func TestCanonical(t *testing.T) {
	c, tr := canonical("John  3:16   (NASB)")
	assert.Equal(t, "John 3:16", c)
	assert.Equal(t, "NASB", tr)

	c, tr = canonical("1\nJohn 2:1")
	assert.Equal(t, "1 John 2:1", c)
	assert.Empty(t, tr)
}
