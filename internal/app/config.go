package app

import "time"

// Config holds runtime configuration for the application.
type Config struct {
	InputPath     string
	OutputPath    string
	OutputPDFPath string
	EnablePDF     bool

	// Verse source
	APIBase        string
	Translation    string
	ContextVersion string
	// VersesFile serves lookups from a local JSON file instead of the API.
	VersesFile string

	// HTTP
	UserAgent     string
	Timeout       time.Duration
	MaxConcurrent int

	// Cache
	CacheDir         string
	CacheMaxAge      time.Duration
	CacheMaxEntries  int
	CacheClear       bool
	CacheStrictPerms bool
	BypassCache      bool

	// Annotation
	Paragraphs  bool
	Interlinear bool

	// Server
	Addr string

	Verbose bool
}

// Defaults shared by flags and file config overlay.
const (
	DefaultOutputPath = "study.md"
	DefaultUserAgent  = "versetip/1.0 (+https://github.com/hyperifyio/versetip)"
	DefaultCacheDir   = ".versetip-cache"
	DefaultAddr       = ":8080"
	DefaultTimeout    = 10 * time.Second
)

// WithDefaults fills fields that are still zero after flags, file and env
// have been applied.
func (c Config) WithDefaults() Config {
	if c.OutputPath == "" {
		c.OutputPath = DefaultOutputPath
	}
	if c.UserAgent == "" {
		c.UserAgent = DefaultUserAgent
	}
	if c.CacheDir == "" {
		c.CacheDir = DefaultCacheDir
	}
	if c.Addr == "" {
		c.Addr = DefaultAddr
	}
	if c.Timeout == 0 {
		c.Timeout = DefaultTimeout
	}
	return c
}
