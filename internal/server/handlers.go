package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/hyperifyio/versetip/internal/annotate"
	"github.com/hyperifyio/versetip/internal/focus"
	"github.com/hyperifyio/versetip/internal/reference"
	"github.com/hyperifyio/versetip/internal/verse"
)

// scanItem is one reference in the /api/scan response. The parsed fields
// are omitted when the canonical form does not parse.
type scanItem struct {
	reference.Expanded
	Book       string `json:"book,omitempty"`
	Chapter    int    `json:"chapter,omitempty"`
	Verse      *int   `json:"verse,omitempty"`
	ChapterEnd *int   `json:"chapter_end,omitempty"`
	VerseEnd   *int   `json:"verse_end,omitempty"`
}

type tooltipResponse struct {
	verse.Card
	Stale bool `json:"stale"`
}

// POST /api/scan
func (s *Server) handleScan(w http.ResponseWriter, r *http.Request) {
	body, ok := s.readBody(w, r)
	if !ok {
		return
	}
	refs := reference.Scan(string(body))
	items := make([]scanItem, 0, len(refs))
	for _, ref := range refs {
		item := scanItem{Expanded: ref}
		if p, err := reference.Parse(ref.Canonical); err == nil {
			item.Book = p.Book
			item.Chapter = p.Chapter
			item.Verse = p.Verse
			item.ChapterEnd = p.ChapterEnd
			item.VerseEnd = p.VerseEnd
		} else {
			log.Debug().Err(err).Str("ref", ref.Canonical).Msg("canonical did not parse")
		}
		items = append(items, item)
	}
	writeJSON(w, http.StatusOK, map[string]any{"references": items})
}

// POST /api/annotate
// Bodies are fragments unless ?document=1.
func (s *Server) handleAnnotate(w http.ResponseWriter, r *http.Request) {
	opt := annotate.Options{
		Fragment:    r.URL.Query().Get("document") != "1",
		Interlinear: s.cfg.Interlinear,
	}
	body, ok := s.readBody(w, r)
	if !ok {
		return
	}
	in := string(body)
	if r.URL.Query().Get("paragraphs") == "1" {
		in = annotate.FormatParagraphs(in)
		opt.Fragment = true
	}
	var out strings.Builder
	n, err := annotate.HTML(strings.NewReader(in), &out, opt)
	if err != nil {
		log.Warn().Err(err).Str("request_id", RequestID(r.Context())).Msg("annotate failed")
		writeError(w, http.StatusBadRequest, "could not annotate body")
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("X-References", strconv.Itoa(n))
	w.WriteHeader(http.StatusOK)
	_, _ = io.WriteString(w, out.String())
}

// GET /api/verse?ref=&translation=
func (s *Server) handleVerse(w http.ResponseWriter, r *http.Request) {
	ref, ok := refParam(w, r)
	if !ok {
		return
	}
	translation := r.URL.Query().Get("translation")
	writeJSON(w, http.StatusOK, s.cfg.Resolver.CardIn(r.Context(), ref, translation, s.cfg.ContextVersion))
}

// GET /api/tooltip?client=&ref=&translation=
// Stale is set when the same client asked for another reference while
// this one was resolving. Without a client parameter the remote host is
// the client, so reconnects from a new port share one focus.
func (s *Server) handleTooltip(w http.ResponseWriter, r *http.Request) {
	ref, ok := refParam(w, r)
	if !ok {
		return
	}
	client := strings.TrimSpace(r.URL.Query().Get("client"))
	if client == "" {
		client = remoteHost(r.RemoteAddr)
	}
	translation := r.URL.Query().Get("translation")
	card, current := focus.ShowFor(r.Context(), &s.clients, client, ref, func(ctx context.Context) verse.Card {
		return s.cfg.Resolver.CardIn(ctx, ref, translation, s.cfg.ContextVersion)
	})
	writeJSON(w, http.StatusOK, tooltipResponse{Card: card, Stale: !current})
}

func remoteHost(addr string) string {
	host, _, err := net.SplitHostPort(addr)
	if err != nil || host == "" {
		return addr
	}
	return host
}

// GET /api/interlinear?ref=
func (s *Server) handleInterlinear(w http.ResponseWriter, r *http.Request) {
	ref, ok := refParam(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"url": verse.InterlinearURL(ref)})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"status": "ok", "cached": s.cfg.Resolver.Len()})
}

// readBody reads at most the configured body limit. Larger bodies get 413.
func (s *Server) readBody(w http.ResponseWriter, r *http.Request) ([]byte, bool) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, s.cfg.MaxBody))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, fmt.Sprintf("body exceeds %d bytes", tooLarge.Limit))
			return nil, false
		}
		writeError(w, http.StatusBadRequest, "could not read body")
		return nil, false
	}
	return body, true
}

func refParam(w http.ResponseWriter, r *http.Request) (string, bool) {
	ref := strings.TrimSpace(r.URL.Query().Get("ref"))
	if ref == "" {
		writeError(w, http.StatusBadRequest, "missing ref parameter")
		return "", false
	}
	return ref, true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Debug().Err(err).Msg("write response")
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
