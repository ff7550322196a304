package annotate

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestText_EmitsInOrder(t *testing.T) {
	var got []string
	n := Text("John 14:16,26 and Revelation 1:5, 17:14", func(s Span) {
		got = append(got, s.Canonical+"|"+s.Display)
	})
	assert.Equal(t, 4, n)
	assert.Equal(t, []string{
		"John 14:16|John 14:16",
		"John 14:26|26",
		"Revelation 1:5|Revelation 1:5",
		"Revelation 17:14|17:14",
	}, got)
}

func TestText_NoReferences(t *testing.T) {
	called := false
	assert.Equal(t, 0, Text("nothing to see here", func(Span) { called = true }))
	assert.False(t, called)
}

func TestSegments_RoundTrip(t *testing.T) {
	in := "Read John 3:16 (NIV), then Romans 8:28-30, 35."
	segs := Segments(in)
	var b strings.Builder
	refs := 0
	for _, s := range segs {
		b.WriteString(s.Text)
		if s.Ref != nil {
			refs++
		}
	}
	assert.Equal(t, in, b.String())
	assert.Equal(t, 3, refs)
	require.NotNil(t, segs[1].Ref)
	assert.Equal(t, "John 3:16", segs[1].Ref.Canonical)
	assert.Equal(t, "NIV", segs[1].Ref.Translation)
}

func TestSegments_Empty(t *testing.T) {
	assert.Empty(t, Segments(""))
	segs := Segments("plain")
	require.Len(t, segs, 1)
	assert.Nil(t, segs[0].Ref)
}
