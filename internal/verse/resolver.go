package verse

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/rs/zerolog/log"
)

// Resolver resolves references through a Lookup and remembers successful
// results for its lifetime. Failures are never cached.
type Resolver struct {
	Lookup Lookup

	mu  sync.RWMutex
	mem map[string]Result
}

// NewResolver returns a Resolver backed by l.
func NewResolver(l Lookup) *Resolver {
	return &Resolver{Lookup: l, mem: make(map[string]Result)}
}

// Resolve returns the display text for ref. It never fails: lookup errors
// and empty payloads produce FallbackResult.
func (r *Resolver) Resolve(ctx context.Context, ref string) Result {
	return r.ResolveIn(ctx, ref, "")
}

// ResolveIn is Resolve for a requested translation such as "NIV". The
// translation reaches the source when it implements TranslationLookup;
// results are cached per reference and translation.
func (r *Resolver) ResolveIn(ctx context.Context, ref, translation string) Result {
	translation = strings.ToUpper(strings.TrimSpace(translation))
	key := cacheKey(ref, translation)
	if res, ok := r.cached(key); ok {
		log.Debug().Str("ref", ref).Str("translation", translation).Msg("verse cache hit")
		return res
	}
	res, err := r.fetch(ctx, ref, translation)
	if err != nil {
		log.Warn().Err(err).Str("ref", ref).Str("translation", translation).Msg("verse lookup failed")
		return FallbackResult(ref)
	}
	r.mu.Lock()
	if r.mem == nil {
		r.mem = make(map[string]Result)
	}
	r.mem[key] = res
	r.mu.Unlock()
	return res
}

func cacheKey(ref, translation string) string {
	if translation == "" {
		return ref
	}
	return ref + " (" + translation + ")"
}

func (r *Resolver) fetch(ctx context.Context, ref, translation string) (Result, error) {
	if r.Lookup == nil {
		return Result{}, fmt.Errorf("resolve %q: no lookup configured", ref)
	}
	var p Payload
	var err error
	if tl, ok := r.Lookup.(TranslationLookup); ok && translation != "" {
		p, err = tl.LookupIn(ctx, ref, translation)
	} else {
		p, err = r.Lookup.Lookup(ctx, ref)
	}
	if err != nil {
		return Result{}, fmt.Errorf("resolve %q: %w", ref, err)
	}
	res := Process(p)
	if res.Text == "" {
		return Result{}, fmt.Errorf("resolve %q: %w", ref, ErrEmptyPayload)
	}
	return res, nil
}

func (r *Resolver) cached(key string) (Result, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	res, ok := r.mem[key]
	return res, ok
}

// Len reports how many references are cached.
func (r *Resolver) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.mem)
}

// FallbackResult is shown when a reference cannot be resolved.
func FallbackResult(ref string) Result {
	return Result{Text: fmt.Sprintf("Read %s at BibleGateway.com", ref), Fallback: true}
}
