package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/hyperifyio/versetip/internal/app"
	"github.com/hyperifyio/versetip/internal/verse"
)

func main() {
	zerolog.TimeFieldFormat = time.RFC3339
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	os.Exit(run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

// streams carries the command's standard streams so tests can capture them.
type streams struct {
	in  io.Reader
	out io.Writer
	err io.Writer
}

// options holds persistent flag values. cfg only carries flag values; the
// effective config is built by resolveConfig.
type options struct {
	configPath string
	envFiles   []string
	cfg        app.Config
}

// run executes the CLI and returns the process exit code: 0 on success,
// 2 when a report found no references, 1 for any other error.
func run(ctx context.Context, args []string, in io.Reader, out, errOut io.Writer) int {
	root := newRootCommand(streams{in: in, out: out, err: errOut})
	root.SetArgs(args)
	root.SetIn(in)
	root.SetOut(out)
	root.SetErr(errOut)
	if err := root.ExecuteContext(ctx); err != nil {
		log.Error().Err(err).Msg("command failed")
		if errors.Is(err, app.ErrNoReferences) {
			return 2
		}
		return 1
	}
	return 0
}

func newRootCommand(s streams) *cobra.Command {
	o := &options{}
	root := &cobra.Command{
		Use:           "versetip",
		Short:         "Find Bible references in text and resolve them to verse tooltips",
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       app.VersionString(),
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if o.cfg.Verbose {
				zerolog.SetGlobalLevel(zerolog.DebugLevel)
			} else {
				zerolog.SetGlobalLevel(zerolog.InfoLevel)
			}
			return nil
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&o.configPath, "config", "", "Path to a YAML or JSON config file")
	pf.StringSliceVar(&o.envFiles, "env-file", []string{".env"}, "Dotenv files to load before reading the environment")
	pf.BoolVarP(&o.cfg.Verbose, "verbose", "v", false, "Verbose logging")
	pf.StringVar(&o.cfg.APIBase, "api", "", "Verse API base URL (default "+verse.DefaultAPIBase+")")
	pf.StringVar(&o.cfg.Translation, "translation", "", "Translation requested from the verse API")
	pf.StringVar(&o.cfg.ContextVersion, "context-version", "", "Translation used for full-context links (default ESV)")
	pf.StringVar(&o.cfg.VersesFile, "verses-file", "", "Serve lookups from a local JSON file instead of the API")
	pf.StringVar(&o.cfg.UserAgent, "ua", "", "User-Agent for verse API requests")
	pf.DurationVar(&o.cfg.Timeout, "timeout", 0, "Per-request timeout (default 10s)")
	pf.IntVar(&o.cfg.MaxConcurrent, "max-concurrent", 0, "Maximum concurrent API requests; 0 is unlimited")
	pf.StringVar(&o.cfg.CacheDir, "cache.dir", "", "HTTP cache directory (default "+app.DefaultCacheDir+")")
	pf.DurationVar(&o.cfg.CacheMaxAge, "cache.maxAge", 0, "Purge cache entries older than this before running; 0 disables")
	pf.IntVar(&o.cfg.CacheMaxEntries, "cache.maxEntries", 0, "Evict least recently used cache entries beyond this count; 0 disables")
	pf.BoolVar(&o.cfg.CacheClear, "cache.clear", false, "Clear the cache directory before running")
	pf.BoolVar(&o.cfg.CacheStrictPerms, "cache.strictPerms", false, "Restrict cache permissions (0700 dirs, 0600 files)")
	pf.BoolVar(&o.cfg.BypassCache, "no-cache", false, "Skip cache revalidation headers; responses are still stored")

	root.AddCommand(
		newScanCommand(s),
		newAnnotateCommand(s, o),
		newLookupCommand(s, o),
		newInterlinearCommand(s),
		newParseCommand(s),
		newReportCommand(s, o),
		newServeCommand(o),
		newCacheCommand(s, o),
	)
	return root
}

// resolveConfig layers the effective configuration: dotenv files, then the
// environment, then the config file for fields still unset, then defaults.
// Flags set on the command line win over all of them.
func resolveConfig(cmd *cobra.Command, o *options) (app.Config, error) {
	if err := app.LoadEnvFiles(o.envFiles...); err != nil {
		return app.Config{}, fmt.Errorf("load env files: %w", err)
	}
	var cfg app.Config
	app.ApplyEnvToConfig(&cfg)
	if o.configPath != "" {
		fc, err := app.LoadConfigFile(o.configPath)
		if err != nil {
			return app.Config{}, fmt.Errorf("load config %s: %w", o.configPath, err)
		}
		app.ApplyFileConfig(&cfg, fc)
	}
	cmd.Flags().Visit(func(f *pflag.Flag) {
		applyFlag(&cfg, &o.cfg, f.Name)
	})
	cfg = cfg.WithDefaults()
	if cfg.Verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
	return cfg, app.ValidateConfig(cfg)
}

// applyFlag copies the field behind an explicitly set flag from src.
func applyFlag(dst, src *app.Config, name string) {
	switch name {
	case "verbose":
		dst.Verbose = src.Verbose
	case "api":
		dst.APIBase = src.APIBase
	case "translation":
		dst.Translation = src.Translation
	case "context-version":
		dst.ContextVersion = src.ContextVersion
	case "verses-file":
		dst.VersesFile = src.VersesFile
	case "ua":
		dst.UserAgent = src.UserAgent
	case "timeout":
		dst.Timeout = src.Timeout
	case "max-concurrent":
		dst.MaxConcurrent = src.MaxConcurrent
	case "cache.dir":
		dst.CacheDir = src.CacheDir
	case "cache.maxAge":
		dst.CacheMaxAge = src.CacheMaxAge
	case "cache.maxEntries":
		dst.CacheMaxEntries = src.CacheMaxEntries
	case "cache.clear":
		dst.CacheClear = src.CacheClear
	case "cache.strictPerms":
		dst.CacheStrictPerms = src.CacheStrictPerms
	case "no-cache":
		dst.BypassCache = src.BypassCache
	case "output":
		dst.OutputPath = src.OutputPath
	case "pdf":
		dst.EnablePDF = src.EnablePDF
	case "pdf-output":
		dst.OutputPDFPath = src.OutputPDFPath
	case "paragraphs":
		dst.Paragraphs = src.Paragraphs
	case "interlinear":
		dst.Interlinear = src.Interlinear
	case "addr":
		dst.Addr = src.Addr
	}
}

func newApp(cmd *cobra.Command, o *options) (*app.App, error) {
	cfg, err := resolveConfig(cmd, o)
	if err != nil {
		return nil, err
	}
	return app.New(cfg)
}
