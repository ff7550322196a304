package verse

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"
)

// FileLookup serves payloads from a local JSON file for offline runs and
// tests. The file is an object keyed by reference:
// {"John 3:16": {"verses": [{"text": "..."}], "translation_id": "kjv"}}.
// Keys match case-insensitively with whitespace collapsed.
type FileLookup struct {
	Path string

	once    sync.Once
	entries map[string]Payload
	loadErr error
}

func (f *FileLookup) load() {
	if strings.TrimSpace(f.Path) == "" {
		f.loadErr = errors.New("file lookup path is empty")
		return
	}
	b, err := os.ReadFile(f.Path)
	if err != nil {
		f.loadErr = err
		return
	}
	var raw map[string]Payload
	if err := json.Unmarshal(b, &raw); err != nil {
		f.loadErr = fmt.Errorf("decode %s: %w", f.Path, err)
		return
	}
	f.entries = make(map[string]Payload, len(raw))
	for k, v := range raw {
		f.entries[fileKey(k)] = v
	}
}

// Lookup returns the stored payload for ref or ErrNotFound.
func (f *FileLookup) Lookup(_ context.Context, ref string) (Payload, error) {
	f.once.Do(f.load)
	if f.loadErr != nil {
		return Payload{}, f.loadErr
	}
	p, ok := f.entries[fileKey(ref)]
	if !ok {
		return Payload{}, fmt.Errorf("lookup %q: %w", ref, ErrNotFound)
	}
	return p, nil
}

// LookupIn prefers an entry keyed "ref (TRANSLATION)" and falls back to
// the plain reference.
func (f *FileLookup) LookupIn(ctx context.Context, ref, translation string) (Payload, error) {
	if t := strings.TrimSpace(translation); t != "" {
		f.once.Do(f.load)
		if f.loadErr != nil {
			return Payload{}, f.loadErr
		}
		if p, ok := f.entries[fileKey(ref+" ("+t+")")]; ok {
			return p, nil
		}
	}
	return f.Lookup(ctx, ref)
}

func fileKey(ref string) string {
	return strings.Join(strings.Fields(strings.ToLower(ref)), " ")
}
