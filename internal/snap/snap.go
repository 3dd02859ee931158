// Package snap is the high-level single capture path. It picks a capture
// source (screen, window, or URL), runs color classification, names the
// file from the capture metadata, and keeps the cache under its size cap.
package snap

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/screencam/screencam/internal/browser"
	"github.com/screencam/screencam/internal/cache"
	"github.com/screencam/screencam/internal/capture"
	"github.com/screencam/screencam/internal/classify"
	"github.com/screencam/screencam/internal/display"
)

// Options selects the capture source and controls naming. App and URL
// are mutually exclusive with Monitor/All; when both are empty the
// screen is captured.
type Options struct {
	Message    string
	OutputPath string
	Quality    int
	Monitor    int
	All        bool
	App        string
	URL        string

	// Err forces the stderr category, for captures taken while the
	// caller is handling a failure.
	Err bool

	// NoCategorize skips color classification; the category is then
	// stdout unless Err is set.
	NoCategorize bool
}

// Result describes one finished capture.
type Result struct {
	Path     string         `json:"path"`
	Category cache.Category `json:"category"`
	SizeKB   int64          `json:"size_kb"`
	Reason   string         `json:"reason,omitempty"`
}

// Take captures a screenshot per opts and files it in store.
func Take(ctx context.Context, store *cache.Store, opts Options) (*Result, error) {
	if opts.Quality < 1 || opts.Quality > 100 {
		opts.Quality = 85
	}
	now := time.Now()

	tmp, err := captureTemp(ctx, opts)
	if err != nil {
		return nil, err
	}
	defer os.Remove(tmp)

	cat := cache.Stdout
	reason := ""
	switch {
	case opts.Err:
		cat = cache.Stderr
		reason = "caller reported an error"
	case !opts.NoCategorize:
		a := classify.DetectPath(tmp)
		cat, reason = a.Category, a.Reason
	}

	scope := cache.Scope{Monitor: opts.Monitor, All: opts.All}
	dest := opts.OutputPath
	if dest == "" {
		if opts.URL != "" {
			dest = DefaultURLPath(store, opts.URL, now)
		} else {
			dest = store.FilePath(now, scope, opts.Message, cat)
		}
	} else {
		dest = expandPlaceholders(dest, now, scope, opts.Message, cat)
	}

	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return nil, err
	}
	if err := moveFile(tmp, dest); err != nil {
		return nil, err
	}

	if _, err := store.Prune(); err != nil {
		log.Printf("cache prune after capture: %v", err)
	}

	var size int64
	if st, err := os.Stat(dest); err == nil {
		size = st.Size() / 1024
	}
	return &Result{Path: dest, Category: cat, SizeKB: size, Reason: reason}, nil
}

// captureTemp writes the raw capture to a temp file and returns its path.
func captureTemp(ctx context.Context, opts Options) (string, error) {
	f, err := os.CreateTemp("", "screencam-*.jpg")
	if err != nil {
		return "", err
	}
	tmp := f.Name()
	f.Close()

	switch {
	case opts.URL != "":
		if err := browser.CaptureURL(ctx, opts.URL, tmp, opts.Quality); err != nil {
			os.Remove(tmp)
			return "", err
		}
	case opts.App != "":
		win, err := display.FindWindow(ctx, opts.App)
		if err != nil {
			os.Remove(tmp)
			return "", err
		}
		if err := display.CaptureWindow(ctx, win.Handle, tmp, opts.Quality); err != nil {
			os.Remove(tmp)
			return "", err
		}
	default:
		img, err := capture.Grab(ctx, capture.Options{Monitor: opts.Monitor, All: opts.All})
		if err != nil {
			os.Remove(tmp)
			return "", err
		}
		if err := capture.Save(img, tmp, true, opts.Quality); err != nil {
			os.Remove(tmp)
			return "", err
		}
	}
	return tmp, nil
}

// expandPlaceholders substitutes <timestamp>, <scope>, <message> and
// <category> in a caller-supplied output path.
func expandPlaceholders(path string, ts time.Time, scope cache.Scope, message string, cat cache.Category) string {
	stamp := strings.Replace(ts.Format("20060102_150405.000"), ".", "_", 1)
	tag := ""
	if scope.All {
		tag = "all-monitors"
	} else if scope.Monitor > 0 {
		tag = fmt.Sprintf("monitor%d", scope.Monitor)
	}
	r := strings.NewReplacer(
		"<timestamp>", stamp,
		"<scope>", tag,
		"<message>", cache.NormalizeMessage(message),
		"<category>", string(cat),
	)
	return r.Replace(path)
}

// moveFile renames src to dst, falling back to copy when they are on
// different filesystems.
func moveFile(src, dst string) error {
	if err := os.Rename(src, dst); err == nil {
		return nil
	}
	data, err := os.ReadFile(src)
	if err != nil {
		return err
	}
	return os.WriteFile(dst, data, 0o644)
}

// DefaultURLPath builds the cache path for a URL capture.
func DefaultURLPath(store *cache.Store, url string, ts time.Time) string {
	stamp := strings.Replace(ts.Format("20060102_150405.000"), ".", "_", 1)
	return filepath.Join(store.Dir, stamp+"-url-"+browser.Slug(url)+".jpg")
}
