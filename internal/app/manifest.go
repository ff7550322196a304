package app

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"time"
)

// manifestEntry records one resolved reference of a report.
type manifestEntry struct {
	Index       int    `json:"index"`
	Reference   string `json:"reference"`
	Translation string `json:"translation,omitempty"`
	Fallback    bool   `json:"fallback"`
	Occurrences int    `json:"occurrences"`
	SHA256      string `json:"sha256"`
	Chars       int    `json:"chars"`
}

// manifestMeta captures run details that aid reproducibility.
type manifestMeta struct {
	Input          string    `json:"input"`
	API            string    `json:"api"`
	Offline        bool      `json:"offline"`
	ReferenceCount int       `json:"reference_count"`
	FallbackCount  int       `json:"fallback_count"`
	HTTPCache      bool      `json:"http_cache"`
	Version        string    `json:"version"`
	GeneratedAt    time.Time `json:"generated_at"`
}

func computeSHA256Hex(text string) string {
	h := sha256.Sum256([]byte(text))
	return hex.EncodeToString(h[:])
}

func buildManifestEntries(items []StudyItem) []manifestEntry {
	out := make([]manifestEntry, 0, len(items))
	for i, it := range items {
		out = append(out, manifestEntry{
			Index:       i + 1,
			Reference:   it.Card.Reference,
			Translation: it.Card.Translation,
			Fallback:    it.Card.Fallback,
			Occurrences: it.Occurrences,
			SHA256:      computeSHA256Hex(it.Card.Text),
			Chars:       len(it.Card.Text),
		})
	}
	return out
}

// marshalManifestJSON encodes the machine-readable sidecar manifest.
func marshalManifestJSON(meta manifestMeta, entries []manifestEntry) ([]byte, error) {
	payload := struct {
		Meta       manifestMeta    `json:"meta"`
		References []manifestEntry `json:"references"`
	}{Meta: meta, References: entries}
	return json.MarshalIndent(payload, "", "  ")
}

// deriveManifestSidecarPath returns the sidecar JSON path next to the report.
func deriveManifestSidecarPath(outputPath string) string {
	return outputPath + ".manifest.json"
}
