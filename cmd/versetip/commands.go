package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/hyperifyio/versetip/internal/app"
	"github.com/hyperifyio/versetip/internal/cache"
	"github.com/hyperifyio/versetip/internal/reference"
	"github.com/hyperifyio/versetip/internal/server"
	"github.com/hyperifyio/versetip/internal/verse"
)

// readInput reads the file named by args[0], or s.in when it is absent or "-".
func readInput(s streams, args []string) ([]byte, error) {
	if len(args) == 0 || args[0] == "-" {
		return io.ReadAll(s.in)
	}
	return os.ReadFile(args[0])
}

func newScanCommand(s streams) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "scan [file|-]",
		Short: "Print the references found in a text",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := readInput(s, args)
			if err != nil {
				return fmt.Errorf("read input: %w", err)
			}
			refs := reference.Scan(string(b))
			if asJSON {
				enc := json.NewEncoder(s.out)
				enc.SetIndent("", "  ")
				return enc.Encode(refs)
			}
			for _, r := range refs {
				line := fmt.Sprintf("%d\t%d\t%s", r.Start, r.Length, r.Canonical)
				if r.Translation != "" {
					line += "\t" + r.Translation
				}
				fmt.Fprintln(s.out, line)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print JSON instead of tab-separated lines")
	return cmd
}

func newAnnotateCommand(s streams, o *options) *cobra.Command {
	var fragment bool
	cmd := &cobra.Command{
		Use:   "annotate [file|-]",
		Short: "Mark references in HTML with bible-ref spans",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd, o)
			if err != nil {
				return err
			}
			b, err := readInput(s, args)
			if err != nil {
				return fmt.Errorf("read input: %w", err)
			}
			w := s.out
			if cmd.Flags().Changed("output") {
				f, err := os.Create(a.Config().OutputPath)
				if err != nil {
					return fmt.Errorf("create output: %w", err)
				}
				defer f.Close()
				w = f
			}
			n, err := a.Annotate(strings.NewReader(string(b)), w, fragment)
			if err != nil {
				return err
			}
			log.Debug().Int("references", n).Msg("annotated")
			return nil
		},
	}
	cmd.Flags().StringVarP(&o.cfg.OutputPath, "output", "o", "", "Write to this file instead of stdout")
	cmd.Flags().BoolVar(&fragment, "fragment", false, "Treat input as an HTML fragment")
	cmd.Flags().BoolVar(&o.cfg.Paragraphs, "paragraphs", false, "Apply markdown line-break formatting before annotating")
	cmd.Flags().BoolVar(&o.cfg.Interlinear, "interlinear", false, "Add data-interlinear links to spans")
	return cmd
}

func newLookupCommand(s streams, o *options) *cobra.Command {
	var asJSON bool
	var translation string
	cmd := &cobra.Command{
		Use:   "lookup <reference>",
		Short: "Resolve a reference to its verse text",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd, o)
			if err != nil {
				return err
			}
			ref := strings.Join(args, " ")
			var card verse.Card
			if translation != "" {
				card = a.LookupIn(cmd.Context(), ref, translation)
			} else {
				card = a.Lookup(cmd.Context(), ref)
			}
			if asJSON {
				return json.NewEncoder(s.out).Encode(card)
			}
			fmt.Fprintln(s.out, card.Reference)
			fmt.Fprintln(s.out, card.Text)
			if card.Translation != "" {
				fmt.Fprintln(s.out, "Translation:", card.Translation)
			}
			fmt.Fprintln(s.out, "Interlinear:", card.InterlinearURL)
			fmt.Fprintln(s.out, "Full context:", card.ContextURL)
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the tooltip card as JSON")
	cmd.Flags().StringVar(&translation, "translation", "", "Translation to request, e.g. NIV")
	return cmd
}

func newInterlinearCommand(s streams) *cobra.Command {
	return &cobra.Command{
		Use:   "interlinear <reference>",
		Short: "Print the interlinear study URL for a reference",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintln(s.out, verse.InterlinearURL(strings.Join(args, " ")))
			return nil
		},
	}
}

func newParseCommand(s streams) *cobra.Command {
	return &cobra.Command{
		Use:   "parse <reference>",
		Short: "Print the structured form of a canonical reference",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ref, err := reference.Parse(strings.Join(args, " "))
			if err != nil {
				return err
			}
			enc := json.NewEncoder(s.out)
			enc.SetIndent("", "  ")
			return enc.Encode(struct {
				*reference.Reference
				Canonical string   `json:"canonical"`
				Expanded  []string `json:"expanded"`
			}{ref, ref.String(), ref.Expand()})
		},
	}
}

func newReportCommand(s streams, o *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report [file|-]",
		Short: "Write a Markdown study sheet for every reference in a document",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConfig(cmd, o)
			if err != nil {
				return err
			}
			if len(args) == 1 {
				cfg.InputPath = args[0]
			}
			a, err := app.New(cfg)
			if err != nil {
				return err
			}
			res, err := a.Report(cmd.Context(), s.in)
			if err != nil {
				return err
			}
			fmt.Fprintln(s.out, res.OutputPath)
			if res.PDFPath != "" {
				fmt.Fprintln(s.out, res.PDFPath)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&o.cfg.OutputPath, "output", "o", "", "Markdown output path (default study.md)")
	cmd.Flags().BoolVar(&o.cfg.EnablePDF, "pdf", false, "Also render the study sheet as PDF")
	cmd.Flags().StringVar(&o.cfg.OutputPDFPath, "pdf-output", "", "PDF output path (default next to the Markdown)")
	return cmd
}

func newServeCommand(o *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the scan, annotate and verse JSON API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd, o)
			if err != nil {
				return err
			}
			srv, err := server.New(server.Config{
				Resolver:       a.Resolver(),
				ContextVersion: a.Config().ContextVersion,
				Interlinear:    a.Config().Interlinear,
			})
			if err != nil {
				return err
			}
			return srv.ListenAndServe(cmd.Context(), a.Config().Addr)
		},
	}
	cmd.Flags().StringVar(&o.cfg.Addr, "addr", "", "Listen address (default "+app.DefaultAddr+")")
	cmd.Flags().BoolVar(&o.cfg.Interlinear, "interlinear", false, "Add data-interlinear links to annotated spans")
	return cmd
}

func newCacheCommand(s streams, o *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Maintain the HTTP cache directory",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "clear",
		Short: "Remove every cached response",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConfig(cmd, o)
			if err != nil {
				return err
			}
			if err := cache.ClearDir(cfg.CacheDir); err != nil {
				return err
			}
			fmt.Fprintln(s.out, "cleared", cfg.CacheDir)
			return nil
		},
	})

	var maxAge time.Duration
	var maxEntries int
	var maxBytes int64
	prune := &cobra.Command{
		Use:   "prune",
		Short: "Remove expired entries and enforce size limits",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConfig(cmd, o)
			if err != nil {
				return err
			}
			removed := 0
			if maxAge > 0 {
				n, err := cache.PurgeByAge(cfg.CacheDir, maxAge)
				if err != nil {
					return err
				}
				removed += n
			}
			if maxEntries > 0 || maxBytes > 0 {
				n, err := cache.EnforceLimits(cfg.CacheDir, maxBytes, maxEntries)
				if err != nil {
					return err
				}
				removed += n
			}
			fmt.Fprintf(s.out, "removed %d entries from %s\n", removed, cfg.CacheDir)
			return nil
		},
	}
	prune.Flags().DurationVar(&maxAge, "max-age", 0, "Remove entries older than this")
	prune.Flags().IntVar(&maxEntries, "max-entries", 0, "Keep at most this many entries")
	prune.Flags().Int64Var(&maxBytes, "max-bytes", 0, "Keep at most this many bytes of bodies")
	cmd.AddCommand(prune)
	return cmd
}
