package app

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	yaml "gopkg.in/yaml.v3"
)

// FileConfig is the single-file configuration schema.
type FileConfig struct {
	Input     string `yaml:"input" json:"input"`
	Output    string `yaml:"output" json:"output"`
	OutputPDF string `yaml:"outputPDF" json:"outputPDF"`
	EnablePDF bool   `yaml:"enablePDF" json:"enablePDF"`

	API struct {
		Base           string        `yaml:"base" json:"base"`
		Translation    string        `yaml:"translation" json:"translation"`
		ContextVersion string        `yaml:"contextVersion" json:"contextVersion"`
		UserAgent      string        `yaml:"ua" json:"ua"`
		Timeout        time.Duration `yaml:"timeout" json:"timeout"`
		MaxConcurrent  int           `yaml:"maxConcurrent" json:"maxConcurrent"`
	} `yaml:"api" json:"api"`

	VersesFile string `yaml:"versesFile" json:"versesFile"`

	Cache struct {
		Dir         string        `yaml:"dir" json:"dir"`
		MaxAge      time.Duration `yaml:"maxAge" json:"maxAge"`
		MaxEntries  int           `yaml:"maxEntries" json:"maxEntries"`
		Clear       bool          `yaml:"clear" json:"clear"`
		StrictPerms bool          `yaml:"strictPerms" json:"strictPerms"`
	} `yaml:"cache" json:"cache"`

	Annotate struct {
		Paragraphs  bool `yaml:"paragraphs" json:"paragraphs"`
		Interlinear bool `yaml:"interlinear" json:"interlinear"`
	} `yaml:"annotate" json:"annotate"`

	Server struct {
		Addr string `yaml:"addr" json:"addr"`
	} `yaml:"server" json:"server"`

	Verbose bool `yaml:"verbose" json:"verbose"`
}

// LoadConfigFile reads YAML or JSON into FileConfig.
func LoadConfigFile(path string) (FileConfig, error) {
	var fc FileConfig
	b, err := os.ReadFile(path)
	if err != nil {
		return fc, err
	}
	switch filepath.Ext(path) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(b, &fc); err != nil {
			return fc, fmt.Errorf("parse yaml: %w", err)
		}
	case ".json":
		if err := json.Unmarshal(b, &fc); err != nil {
			return fc, fmt.Errorf("parse json: %w", err)
		}
	default:
		if err := yaml.Unmarshal(b, &fc); err != nil {
			if jerr := json.Unmarshal(b, &fc); jerr != nil {
				return fc, fmt.Errorf("parse config: %v (yaml) / %v (json)", err, jerr)
			}
		}
	}
	return fc, nil
}

// ApplyFileConfig overlays values from fc onto fields of cfg that are unset
// or still at their flag default, so explicit flags keep precedence.
func ApplyFileConfig(cfg *Config, fc FileConfig) {
	if cfg == nil {
		return
	}
	setString := func(dst *string, def, v string) {
		if (*dst == "" || *dst == def) && v != "" {
			*dst = v
		}
	}
	setString(&cfg.InputPath, "", fc.Input)
	setString(&cfg.OutputPath, DefaultOutputPath, fc.Output)
	setString(&cfg.OutputPDFPath, "", fc.OutputPDF)
	setString(&cfg.APIBase, "", fc.API.Base)
	setString(&cfg.Translation, "", fc.API.Translation)
	setString(&cfg.ContextVersion, "", fc.API.ContextVersion)
	setString(&cfg.UserAgent, DefaultUserAgent, fc.API.UserAgent)
	setString(&cfg.VersesFile, "", fc.VersesFile)
	setString(&cfg.CacheDir, DefaultCacheDir, fc.Cache.Dir)
	setString(&cfg.Addr, DefaultAddr, fc.Server.Addr)

	if (cfg.Timeout == 0 || cfg.Timeout == DefaultTimeout) && fc.API.Timeout > 0 {
		cfg.Timeout = fc.API.Timeout
	}
	if cfg.MaxConcurrent == 0 && fc.API.MaxConcurrent > 0 {
		cfg.MaxConcurrent = fc.API.MaxConcurrent
	}
	if cfg.CacheMaxAge == 0 && fc.Cache.MaxAge > 0 {
		cfg.CacheMaxAge = fc.Cache.MaxAge
	}
	if cfg.CacheMaxEntries == 0 && fc.Cache.MaxEntries > 0 {
		cfg.CacheMaxEntries = fc.Cache.MaxEntries
	}

	cfg.EnablePDF = cfg.EnablePDF || fc.EnablePDF
	cfg.CacheClear = cfg.CacheClear || fc.Cache.Clear
	cfg.CacheStrictPerms = cfg.CacheStrictPerms || fc.Cache.StrictPerms
	cfg.Paragraphs = cfg.Paragraphs || fc.Annotate.Paragraphs
	cfg.Interlinear = cfg.Interlinear || fc.Annotate.Interlinear
	cfg.Verbose = cfg.Verbose || fc.Verbose
}

// ValidateConfig rejects settings no command can run with.
func ValidateConfig(cfg Config) error {
	if cfg.Timeout < 0 || cfg.CacheMaxAge < 0 {
		return errors.New("config: negative durations are not allowed")
	}
	if cfg.MaxConcurrent < 0 || cfg.CacheMaxEntries < 0 {
		return errors.New("config: negative limits are not allowed")
	}
	if b := trim(cfg.APIBase); b != "" && !strings.HasPrefix(b, "http://") && !strings.HasPrefix(b, "https://") {
		return fmt.Errorf("config: api base must be an http(s) URL, got %q", b)
	}
	if cfg.EnablePDF && trim(cfg.OutputPath) == "" && trim(cfg.OutputPDFPath) == "" {
		return errors.New("config: pdf output needs an output path")
	}
	return nil
}

func trim(s string) string { return strings.TrimSpace(s) }
