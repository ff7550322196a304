package app

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/hyperifyio/versetip/internal/extract"
	"github.com/hyperifyio/versetip/internal/reference"
	"github.com/hyperifyio/versetip/internal/verse"
)

// StudyItem is one distinct reference of a report with its resolved card.
type StudyItem struct {
	Card        verse.Card
	Occurrences int
}

// ReportResult summarises a written report.
type ReportResult struct {
	OutputPath   string
	PDFPath      string
	ManifestPath string
	Items        []StudyItem
	Fallbacks    int
}

// Report scans cfg.InputPath ("-" or empty reads in), resolves every
// distinct reference and writes a Markdown study sheet with a JSON sidecar
// manifest and, when enabled, a PDF rendering.
func (a *App) Report(ctx context.Context, in io.Reader) (ReportResult, error) {
	var res ReportResult
	src := a.cfg.InputPath
	var raw []byte
	var err error
	if src == "" || src == "-" {
		src = "stdin"
		raw, err = io.ReadAll(in)
	} else {
		raw, err = os.ReadFile(src)
	}
	if err != nil {
		return res, fmt.Errorf("read input: %w", err)
	}
	doc := extract.ForPath(src).Extract(raw)

	items := a.studyItems(ctx, reference.Scan(doc.Text))
	if len(items) == 0 {
		return res, ErrNoReferences
	}
	for _, it := range items {
		if it.Card.Fallback {
			res.Fallbacks++
		}
	}
	res.Items = items

	title := doc.Title
	if title == "" {
		title = strings.TrimSuffix(filepath.Base(src), filepath.Ext(src))
	}
	md := renderStudySheet(title, items)
	md = appendReproFooter(md, a.apiDescription(), len(items), res.Fallbacks, a.httpCache != nil, a.Offline())

	out := a.cfg.OutputPath
	if out == "" {
		out = DefaultOutputPath
	}
	if err := os.WriteFile(out, []byte(md), 0o644); err != nil {
		return res, fmt.Errorf("write report: %w", err)
	}
	res.OutputPath = out
	log.Info().Str("out", out).Int("references", len(items)).Int("fallbacks", res.Fallbacks).Msg("wrote study sheet")

	meta := manifestMeta{
		Input:          src,
		API:            a.apiDescription(),
		Offline:        a.Offline(),
		ReferenceCount: len(items),
		FallbackCount:  res.Fallbacks,
		HTTPCache:      a.httpCache != nil,
		Version:        BuildVersion,
		GeneratedAt:    time.Now().UTC(),
	}
	b, err := marshalManifestJSON(meta, buildManifestEntries(items))
	if err != nil {
		return res, fmt.Errorf("encode manifest: %w", err)
	}
	res.ManifestPath = deriveManifestSidecarPath(out)
	if err := os.WriteFile(res.ManifestPath, b, 0o644); err != nil {
		return res, fmt.Errorf("write manifest: %w", err)
	}

	if a.cfg.EnablePDF {
		pdfPath := a.cfg.OutputPDFPath
		if pdfPath == "" {
			pdfPath = strings.TrimSuffix(out, filepath.Ext(out)) + ".pdf"
		}
		if err := writeSimplePDF(md, pdfPath); err != nil {
			return res, fmt.Errorf("write pdf: %w", err)
		}
		res.PDFPath = pdfPath
		log.Info().Str("pdf", pdfPath).Msg("wrote pdf")
	}
	return res, nil
}

// studyItems resolves each distinct canonical reference once per cited
// translation, in order of first appearance.
func (a *App) studyItems(ctx context.Context, refs []reference.Expanded) []StudyItem {
	index := make(map[string]int)
	var items []StudyItem
	for _, r := range refs {
		key := r.Canonical
		if r.Translation != "" {
			key += " (" + strings.ToUpper(r.Translation) + ")"
		}
		if i, ok := index[key]; ok {
			items[i].Occurrences++
			continue
		}
		index[key] = len(items)
		items = append(items, StudyItem{Card: a.LookupIn(ctx, r.Canonical, r.Translation), Occurrences: 1})
	}
	return items
}

func (a *App) apiDescription() string {
	if a.Offline() {
		return "file:" + a.cfg.VersesFile
	}
	if a.cfg.APIBase != "" {
		return a.cfg.APIBase
	}
	return verse.DefaultAPIBase
}

func renderStudySheet(title string, items []StudyItem) string {
	var b strings.Builder
	b.WriteString("# ")
	b.WriteString(title)
	b.WriteString("\n\n")
	for i, it := range items {
		c := it.Card
		b.WriteString("## ")
		b.WriteString(strconv.Itoa(i + 1))
		b.WriteString(". ")
		b.WriteString(c.Reference)
		if c.Translation != "" {
			b.WriteString(" (")
			b.WriteString(c.Translation)
			b.WriteString(")")
		}
		b.WriteString("\n\n> ")
		b.WriteString(c.Text)
		b.WriteString("\n\n")
		b.WriteString("[Interlinear](")
		b.WriteString(c.InterlinearURL)
		b.WriteString(") | [Read full context](")
		b.WriteString(c.ContextURL)
		b.WriteString(")")
		if it.Occurrences > 1 {
			b.WriteString(" | cited ")
			b.WriteString(strconv.Itoa(it.Occurrences))
			b.WriteString(" times")
		}
		b.WriteString("\n\n")
	}
	return b.String()
}
