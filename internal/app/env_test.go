package app

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadEnvFiles_LoadsKeyValues(t *testing.T) {
	t.Setenv("FOO", "")
	t.Setenv("BAR", "")

	dir := t.TempDir()
	envPath := filepath.Join(dir, ".env.test")
	content := "\n# sample dotenv file\nFOO=alpha\nexport BAR=\"beta\"\n"
	if err := os.WriteFile(envPath, []byte(content), 0o600); err != nil {
		t.Fatalf("write dotenv: %v", err)
	}

	if err := LoadEnvFiles(envPath); err != nil {
		t.Fatalf("LoadEnvFiles error: %v", err)
	}
	if got := os.Getenv("FOO"); got != "alpha" {
		t.Fatalf("FOO=%q, want alpha", got)
	}
	if got := os.Getenv("BAR"); got != "beta" {
		t.Fatalf("BAR=%q, want beta", got)
	}
}

// Later files override earlier ones when loading multiple dotenv files.
func TestLoadEnvFiles_OverrideOrder(t *testing.T) {
	t.Setenv("K", "")
	dir := t.TempDir()
	a := filepath.Join(dir, ".env.a")
	b := filepath.Join(dir, ".env.b")
	if err := os.WriteFile(a, []byte("K=first\n"), 0o600); err != nil {
		t.Fatalf("write a: %v", err)
	}
	if err := os.WriteFile(b, []byte("K=second\n"), 0o600); err != nil {
		t.Fatalf("write b: %v", err)
	}

	if err := LoadEnvFiles(a, filepath.Join(dir, "missing"), b); err != nil {
		t.Fatalf("LoadEnvFiles error: %v", err)
	}
	if got := os.Getenv("K"); got != "second" {
		t.Fatalf("override order failed: got %q, want second", got)
	}
}

func TestApplyEnvToConfig_FromEnv(t *testing.T) {
	t.Setenv(EnvAPIBase, "http://verses.example/")
	t.Setenv(EnvTranslation, "web")
	t.Setenv(EnvCacheDir, "/tmp/versetip-cache")
	t.Setenv(EnvTimeout, "3s")
	t.Setenv(EnvMaxConcurrent, "4")
	t.Setenv(EnvCacheClear, "yes")

	cfg := Config{Translation: "kjv"}
	ApplyEnvToConfig(&cfg)
	if cfg.APIBase != "http://verses.example/" {
		t.Fatalf("APIBase=%q", cfg.APIBase)
	}
	if cfg.Translation != "kjv" {
		t.Fatalf("explicit Translation overwritten: %q", cfg.Translation)
	}
	if cfg.CacheDir != "/tmp/versetip-cache" {
		t.Fatalf("CacheDir=%q", cfg.CacheDir)
	}
	if cfg.Timeout != 3*time.Second || cfg.MaxConcurrent != 4 {
		t.Fatalf("Timeout=%v MaxConcurrent=%d", cfg.Timeout, cfg.MaxConcurrent)
	}
	if !cfg.CacheClear {
		t.Fatalf("CacheClear should be set from env")
	}
}

func TestApplyEnvToConfig_IgnoresInvalidValues(t *testing.T) {
	t.Setenv(EnvTimeout, "not-a-duration")
	t.Setenv(EnvMaxConcurrent, "-2")
	t.Setenv(EnvVerbose, "maybe")
	var cfg Config
	ApplyEnvToConfig(&cfg)
	if cfg.Timeout != 0 || cfg.MaxConcurrent != 0 || cfg.Verbose {
		t.Fatalf("invalid env values should be ignored: %+v", cfg)
	}
}
