package app

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Environment variables read by ApplyEnvToConfig.
const (
	EnvAPIBase       = "VERSETIP_API_BASE"
	EnvTranslation   = "VERSETIP_TRANSLATION"
	EnvVersesFile    = "VERSETIP_VERSES_FILE"
	EnvCacheDir      = "VERSETIP_CACHE_DIR"
	EnvCacheMaxAge   = "VERSETIP_CACHE_MAX_AGE"
	EnvCacheClear    = "VERSETIP_CACHE_CLEAR"
	EnvStrictPerms   = "VERSETIP_CACHE_STRICT_PERMS"
	EnvAddr          = "VERSETIP_ADDR"
	EnvTimeout       = "VERSETIP_TIMEOUT"
	EnvMaxConcurrent = "VERSETIP_MAX_CONCURRENT"
	EnvVerbose       = "VERBOSE"
)

// ApplyEnvToConfig populates unset fields of cfg from environment variables.
// Explicit cfg values take precedence over env.
func ApplyEnvToConfig(cfg *Config) {
	if cfg == nil {
		return
	}
	setString := func(dst *string, key string) {
		if *dst == "" {
			*dst = strings.TrimSpace(os.Getenv(key))
		}
	}
	setString(&cfg.APIBase, EnvAPIBase)
	setString(&cfg.Translation, EnvTranslation)
	setString(&cfg.VersesFile, EnvVersesFile)
	setString(&cfg.CacheDir, EnvCacheDir)
	setString(&cfg.Addr, EnvAddr)

	if cfg.Timeout == 0 {
		cfg.Timeout = envDuration(EnvTimeout, 0)
	}
	if cfg.CacheMaxAge == 0 {
		cfg.CacheMaxAge = envDuration(EnvCacheMaxAge, 0)
	}
	if cfg.MaxConcurrent == 0 {
		if n, err := strconv.Atoi(strings.TrimSpace(os.Getenv(EnvMaxConcurrent))); err == nil && n > 0 {
			cfg.MaxConcurrent = n
		}
	}

	setBool := func(dst *bool, key string) {
		if *dst {
			return
		}
		if v, ok := envBool(key); ok && v {
			*dst = true
		}
	}
	setBool(&cfg.Verbose, EnvVerbose)
	setBool(&cfg.CacheClear, EnvCacheClear)
	setBool(&cfg.CacheStrictPerms, EnvStrictPerms)
}

func envDuration(key string, def time.Duration) time.Duration {
	s := strings.TrimSpace(os.Getenv(key))
	if s == "" {
		return def
	}
	if d, err := time.ParseDuration(s); err == nil {
		return d
	}
	return def
}

func envBool(key string) (value bool, ok bool) {
	switch strings.ToLower(strings.TrimSpace(os.Getenv(key))) {
	case "1", "true", "yes", "on":
		return true, true
	case "0", "false", "no", "off":
		return false, true
	}
	return false, false
}
