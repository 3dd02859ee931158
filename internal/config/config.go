// Package config loads screencam settings from an optional YAML file and
// SCREENCAM_* environment variables. Environment variables win over the
// file, the file wins over defaults.
package config

import (
	"os"
	"path/filepath"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds runtime settings shared by the CLI and the MCP server.
type Config struct {
	// CacheDir is where screenshots and GIF summaries are stored.
	CacheDir string `yaml:"cache_dir"`

	// MaxCacheGB caps the cache size; oldest files are evicted past it.
	MaxCacheGB float64 `yaml:"max_cache_gb"`

	// Quality is the JPEG quality for single captures (1-100).
	Quality int `yaml:"quality"`

	// MonitorQuality is the JPEG quality used by the monitoring worker.
	// Lower than Quality because interval capture produces many files.
	MonitorQuality int `yaml:"monitor_quality"`

	// Interval between monitoring captures.
	Interval time.Duration `yaml:"interval"`

	// LogLevel enables debug logging when set to "debug".
	LogLevel string `yaml:"log_level"`
}

// Default returns the built-in configuration.
func Default() *Config {
	home, _ := os.UserHomeDir()
	return &Config{
		CacheDir:       filepath.Join(home, ".cache", "screencam"),
		MaxCacheGB:     1.0,
		Quality:        85,
		MonitorQuality: 60,
		Interval:       time.Second,
	}
}

// Load builds the effective configuration: defaults, then the config file
// at ~/.config/screencam/config.yaml (if present), then environment
// overrides. A malformed file is ignored rather than fatal; screencam
// should still capture with defaults.
func Load() *Config {
	cfg := Default()

	if home, err := os.UserHomeDir(); err == nil {
		cfg.applyFile(filepath.Join(home, ".config", "screencam", "config.yaml"))
	}
	cfg.applyEnv()

	return cfg
}

func (c *Config) applyFile(path string) {
	data, err := os.ReadFile(path)
	if err != nil {
		return
	}
	// Unmarshal into a copy so a partially-valid file cannot leave c
	// half-updated.
	tmp := *c
	if err := yaml.Unmarshal(data, &tmp); err != nil {
		return
	}
	*c = tmp
}

func (c *Config) applyEnv() {
	if v := os.Getenv("SCREENCAM_CACHE_DIR"); v != "" {
		c.CacheDir = v
	}
	if v := os.Getenv("SCREENCAM_MAX_CACHE_GB"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil && f > 0 {
			c.MaxCacheGB = f
		}
	}
	if v := os.Getenv("SCREENCAM_QUALITY"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 1 && n <= 100 {
			c.Quality = n
		}
	}
	if v := os.Getenv("SCREENCAM_MONITOR_QUALITY"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 1 && n <= 100 {
			c.MonitorQuality = n
		}
	}
	if v := os.Getenv("SCREENCAM_INTERVAL"); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			c.Interval = d
		}
	}
	if v := os.Getenv("SCREENCAM_LOG_LEVEL"); v != "" {
		c.LogLevel = v
	}
}

// MaxCacheBytes converts MaxCacheGB to bytes.
func (c *Config) MaxCacheBytes() int64 {
	return int64(c.MaxCacheGB * 1024 * 1024 * 1024)
}
