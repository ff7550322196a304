package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/hyperifyio/versetip/internal/annotate"
	"github.com/hyperifyio/versetip/internal/cache"
	"github.com/hyperifyio/versetip/internal/fetch"
	"github.com/hyperifyio/versetip/internal/reference"
	"github.com/hyperifyio/versetip/internal/verse"
)

// ErrNoReferences is returned by Report when the input cites nothing.
var ErrNoReferences = errors.New("no references found")

// App wires configuration to the scanner, resolver and report writer.
type App struct {
	cfg       Config
	httpCache *cache.HTTPCache
	lookup    verse.Lookup
	resolver  *verse.Resolver
}

// New prepares the cache and verse source described by cfg.
func New(cfg Config) (*App, error) {
	if err := ValidateConfig(cfg); err != nil {
		return nil, err
	}
	a := &App{cfg: cfg}
	if cfg.CacheDir != "" {
		prepareCache(cfg)
		a.httpCache = &cache.HTTPCache{Dir: cfg.CacheDir, StrictPerms: cfg.CacheStrictPerms}
	}

	if cfg.VersesFile != "" {
		a.lookup = &verse.FileLookup{Path: cfg.VersesFile}
		log.Debug().Str("path", cfg.VersesFile).Msg("using offline verse file")
	} else {
		a.lookup = &verse.APIClient{
			Base:        cfg.APIBase,
			Translation: cfg.Translation,
			HTTP: &fetch.Client{
				HTTPClient:        newHTTPClient(cfg.Timeout),
				UserAgent:         cfg.UserAgent,
				MaxAttempts:       1,
				PerRequestTimeout: cfg.Timeout,
				Cache:             a.httpCache,
				BypassCache:       cfg.BypassCache,
				MaxConcurrent:     cfg.MaxConcurrent,
			},
		}
	}
	a.resolver = verse.NewResolver(a.lookup)
	return a, nil
}

// prepareCache applies the invalidation controls. Failures are logged and
// never stop startup.
func prepareCache(cfg Config) {
	if cfg.CacheClear {
		if err := cache.ClearDir(cfg.CacheDir); err != nil {
			log.Warn().Err(err).Str("dir", cfg.CacheDir).Msg("cache clear failed")
		}
	}
	if cfg.CacheMaxAge > 0 {
		n, err := cache.PurgeByAge(cfg.CacheDir, cfg.CacheMaxAge)
		if err != nil {
			log.Debug().Err(err).Msg("cache purge skipped")
		} else if n > 0 {
			log.Info().Int("removed", n).Dur("max_age", cfg.CacheMaxAge).Msg("purged expired cache entries")
		}
	}
	if cfg.CacheMaxEntries > 0 {
		n, err := cache.EnforceLimits(cfg.CacheDir, 0, cfg.CacheMaxEntries)
		if err != nil {
			log.Debug().Err(err).Msg("cache limit skipped")
		} else if n > 0 {
			log.Info().Int("removed", n).Int("max_entries", cfg.CacheMaxEntries).Msg("evicted cache entries")
		}
	}
}

// Config returns the effective configuration.
func (a *App) Config() Config { return a.cfg }

// Resolver returns the shared verse resolver.
func (a *App) Resolver() *verse.Resolver { return a.resolver }

// Scan returns every reference in text.
func (a *App) Scan(text string) []reference.Expanded {
	return reference.Scan(text)
}

// Annotate copies HTML from r to w with references marked. With
// Config.Paragraphs the input is treated as markdown-style text and run
// through the paragraph formatter first.
func (a *App) Annotate(r io.Reader, w io.Writer, fragment bool) (int, error) {
	if a.cfg.Paragraphs {
		b, err := io.ReadAll(r)
		if err != nil {
			return 0, fmt.Errorf("read input: %w", err)
		}
		r = strings.NewReader(annotate.FormatParagraphs(string(b)))
		fragment = true
	}
	return annotate.HTML(r, w, annotate.Options{Fragment: fragment, Interlinear: a.cfg.Interlinear})
}

// Lookup resolves a single reference into a tooltip card.
// A citation carrying its own translation, such as "John 3:16 (NIV)", is
// resolved in that translation.
func (a *App) Lookup(ctx context.Context, ref string) verse.Card {
	ref = strings.TrimSpace(ref)
	if refs := reference.Scan(ref); len(refs) > 0 {
		if r := refs[0]; r.Start == 0 && r.Length == len(ref) && r.Translation != "" {
			return a.LookupIn(ctx, r.Canonical, r.Translation)
		}
	}
	return a.LookupIn(ctx, ref, "")
}

// LookupIn resolves ref in translation. An empty translation means the
// configured source default.
func (a *App) LookupIn(ctx context.Context, ref, translation string) verse.Card {
	return a.resolver.CardIn(ctx, strings.TrimSpace(ref), translation, a.cfg.ContextVersion)
}

// Offline reports whether lookups are served from a local file.
func (a *App) Offline() bool { return a.cfg.VersesFile != "" }
