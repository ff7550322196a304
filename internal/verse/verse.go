// Package verse resolves canonical references to display text and derives
// the static cross-reference links shown next to it.
package verse

import (
	"context"
	"errors"
)

const (
	// MaxVerses is how many verses of a passage are shown before truncating.
	MaxVerses = 4
	// DefaultTranslation is reported when the source names none.
	DefaultTranslation = "KJV"
	// TruncationMarker is appended when verses were dropped.
	TruncationMarker = " ..."

	DefaultAPIBase        = "https://bible-api.com/"
	InterlinearBase       = "https://biblehub.com/interlinear/"
	GatewayBase           = "https://www.biblegateway.com/passage/"
	DefaultContextVersion = "ESV"
)

var (
	// ErrEmptyPayload is returned when a response carries no verse text.
	ErrEmptyPayload = errors.New("verse: empty payload")
	// ErrNotFound is returned when the source has no entry for a reference.
	ErrNotFound = errors.New("verse: reference not found")
)

// Payload is the JSON body returned by the verse API.
type Payload struct {
	Reference       string         `json:"reference,omitempty"`
	Verses          []PayloadVerse `json:"verses,omitempty"`
	Text            string         `json:"text,omitempty"`
	TranslationID   string         `json:"translation_id,omitempty"`
	TranslationName string         `json:"translation_name,omitempty"`
}

// PayloadVerse is one entry of Payload.Verses.
type PayloadVerse struct {
	BookName string `json:"book_name,omitempty"`
	Chapter  int    `json:"chapter,omitempty"`
	Verse    int    `json:"verse,omitempty"`
	Text     string `json:"text"`
}

// Result is what the reader is shown for a reference. When Fallback is set
// Text is a pointer to an external viewer rather than verse text.
type Result struct {
	Text        string `json:"text"`
	Translation string `json:"translation,omitempty"`
	Fallback    bool   `json:"fallback"`
}

// Lookup fetches the raw payload for a canonical reference.
type Lookup interface {
	Lookup(ctx context.Context, ref string) (Payload, error)
}

// TranslationLookup is implemented by sources that can serve a requested
// translation. An empty translation means the source default.
type TranslationLookup interface {
	LookupIn(ctx context.Context, ref, translation string) (Payload, error)
}

// LookupFunc adapts a function to Lookup.
type LookupFunc func(ctx context.Context, ref string) (Payload, error)

func (f LookupFunc) Lookup(ctx context.Context, ref string) (Payload, error) { return f(ctx, ref) }
