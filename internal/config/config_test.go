package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.CacheDir == "" {
		t.Error("expected a default cache dir")
	}
	if cfg.Quality != 85 {
		t.Errorf("expected quality 85, got %d", cfg.Quality)
	}
	if cfg.MonitorQuality != 60 {
		t.Errorf("expected monitor quality 60, got %d", cfg.MonitorQuality)
	}
	if cfg.Interval != time.Second {
		t.Errorf("expected 1s interval, got %v", cfg.Interval)
	}
	if cfg.MaxCacheGB != 1.0 {
		t.Errorf("expected 1.0 GB cap, got %v", cfg.MaxCacheGB)
	}
}

func TestApplyFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	data := "cache_dir: /tmp/shots\nquality: 70\ninterval: 5s\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg := Default()
	cfg.applyFile(path)

	if cfg.CacheDir != "/tmp/shots" {
		t.Errorf("cache_dir not applied: %s", cfg.CacheDir)
	}
	if cfg.Quality != 70 {
		t.Errorf("quality not applied: %d", cfg.Quality)
	}
	if cfg.Interval != 5*time.Second {
		t.Errorf("interval not applied: %v", cfg.Interval)
	}
	// Fields absent from the file keep their defaults.
	if cfg.MonitorQuality != 60 {
		t.Errorf("monitor quality should keep default, got %d", cfg.MonitorQuality)
	}
}

func TestApplyFileMalformed(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte("{not yaml"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg := Default()
	cfg.applyFile(path)

	if cfg.Quality != 85 {
		t.Errorf("malformed file should leave defaults, got quality %d", cfg.Quality)
	}
}

func TestApplyFileMissing(t *testing.T) {
	cfg := Default()
	cfg.applyFile(filepath.Join(t.TempDir(), "nope.yaml"))
	if cfg.Quality != 85 {
		t.Errorf("missing file should leave defaults, got quality %d", cfg.Quality)
	}
}

func TestApplyEnv(t *testing.T) {
	t.Setenv("SCREENCAM_CACHE_DIR", "/tmp/envshots")
	t.Setenv("SCREENCAM_QUALITY", "55")
	t.Setenv("SCREENCAM_MAX_CACHE_GB", "2.5")
	t.Setenv("SCREENCAM_INTERVAL", "2s")

	cfg := Default()
	cfg.applyEnv()

	if cfg.CacheDir != "/tmp/envshots" {
		t.Errorf("cache dir: %s", cfg.CacheDir)
	}
	if cfg.Quality != 55 {
		t.Errorf("quality: %d", cfg.Quality)
	}
	if cfg.MaxCacheGB != 2.5 {
		t.Errorf("max cache: %v", cfg.MaxCacheGB)
	}
	if cfg.Interval != 2*time.Second {
		t.Errorf("interval: %v", cfg.Interval)
	}
}

func TestApplyEnvRejectsBadValues(t *testing.T) {
	t.Setenv("SCREENCAM_QUALITY", "150")
	t.Setenv("SCREENCAM_MAX_CACHE_GB", "-1")
	t.Setenv("SCREENCAM_INTERVAL", "soon")

	cfg := Default()
	cfg.applyEnv()

	if cfg.Quality != 85 || cfg.MaxCacheGB != 1.0 || cfg.Interval != time.Second {
		t.Errorf("out-of-range env values should be ignored: %+v", cfg)
	}
}

func TestMaxCacheBytes(t *testing.T) {
	cfg := &Config{MaxCacheGB: 0.5}
	want := int64(512 * 1024 * 1024)
	if got := cfg.MaxCacheBytes(); got != want {
		t.Errorf("expected %d bytes, got %d", want, got)
	}
}
