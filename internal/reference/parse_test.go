package reference

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"John 3:16", "John 3:16"},
		{"1 Cor 13:4-7", "1 Corinthians 13:4-7"},
		{"John 3:16-4:2", "John 3:16-4:2"},
		{"Psalm 23", "Psalms 23"},
		{"Song of Songs 2:4", "Song of Solomon 2:4"},
		{"Gen. 1:1", "Genesis 1:1"},
		{"John 14:16,26", "John 14:16,26"},
		{"Revelation 1:5, 17:14", "Revelation 1:5,17:14"},
	}
	for _, tc := range cases {
		ref, err := Parse(tc.in)
		require.NoError(t, err, tc.in)
		assert.Equal(t, tc.want, ref.String(), tc.in)
	}
}

func TestParse_Fields(t *testing.T) {
	ref, err := Parse("1 Cor 13:4-7")
	require.NoError(t, err)
	assert.Equal(t, "1 Corinthians", ref.Book)
	assert.Equal(t, 13, ref.Chapter)
	require.NotNil(t, ref.Verse)
	assert.Equal(t, 4, *ref.Verse)
	assert.Nil(t, ref.ChapterEnd)
	require.NotNil(t, ref.VerseEnd)
	assert.Equal(t, 7, *ref.VerseEnd)
	assert.True(t, ref.IsRange())

	ref, err = Parse("John 3:16-4:2")
	require.NoError(t, err)
	require.NotNil(t, ref.ChapterEnd)
	assert.Equal(t, 4, *ref.ChapterEnd)
	require.NotNil(t, ref.VerseEnd)
	assert.Equal(t, 2, *ref.VerseEnd)
}

func TestParse_Translation(t *testing.T) {
	ref, err := Parse("John 3:16 (KJV)")
	require.NoError(t, err)
	assert.Equal(t, "KJV", ref.Translation)
	assert.Equal(t, "John 3:16", ref.String())
	assert.False(t, ref.IsRange())
}

func TestParse_Expand(t *testing.T) {
	ref, err := Parse("John 14:16,26")
	require.NoError(t, err)
	assert.Equal(t, []string{"John 14:16", "John 14:26"}, ref.Expand())

	ref, err = Parse("Revelation 1:5, 17:14")
	require.NoError(t, err)
	assert.Equal(t, []string{"Revelation 1:5", "Revelation 17:14"}, ref.Expand())
}

func TestParse_Errors(t *testing.T) {
	for _, in := range []string{"", "3:16", "John", "John 3:"} {
		_, err := Parse(in)
		assert.Error(t, err, in)
	}
}

func TestBooks(t *testing.T) {
	all := Books()
	require.Len(t, all, 66)
	assert.Equal(t, "Genesis", all[0].Name)
	assert.Equal(t, "Revelation", all[65].Name)
	for i, b := range all {
		assert.Equal(t, i+1, b.Order)
	}

	all[0].Name = "changed"
	assert.Equal(t, "Genesis", Books()[0].Name)
}

func TestLookupBook(t *testing.T) {
	for in, want := range map[string]string{
		"jn":             "John",
		"1 Jn":           "1 John",
		"1john":          "1 John",
		"Gen.":           "Genesis",
		"psalm":          "Psalms",
		"Song  of Songs": "Song of Solomon",
	} {
		b, ok := LookupBook(in)
		require.True(t, ok, in)
		assert.Equal(t, want, b.Name, in)
	}
	_, ok := LookupBook("Hezekiah")
	assert.False(t, ok)
	_, ok = LookupBook("  ")
	assert.False(t, ok)
}

func TestNamePattern(t *testing.T) {
	assert.Equal(t, `1\s*John\.?`, namePattern("1 John"))
	assert.Equal(t, `Song\s+of\s+Solomon\.?`, namePattern("Song of Solomon"))
}
