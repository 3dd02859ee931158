package cache

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

// writeShot creates a fake screenshot file of the given size and mtime.
func writeShot(t *testing.T, dir, name string, size int, mtime time.Time) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, make([]byte, size), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	if err := os.Chtimes(path, mtime, mtime); err != nil {
		t.Fatalf("chtimes %s: %v", name, err)
	}
	return path
}

func TestNormalizeMessage(t *testing.T) {
	tests := []struct {
		name    string
		message string
		want    string
	}{
		{"empty", "", ""},
		{"simple", "after deploy", "after-deploy"},
		{"special chars stripped", "build #3 failed!", "build-3-failed"},
		{"first line only", "first line\nsecond line", "first-line"},
		{"collapsed dashes", "a  --  b", "a-b"},
		{"trimmed", "  -hello-  ", "hello"},
		{"only special chars", "!!! ???", ""},
		{"long message capped", strings.Repeat("a", 80), strings.Repeat("a", 50)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizeMessage(tt.message); got != tt.want {
				t.Errorf("NormalizeMessage(%q) = %q, want %q", tt.message, got, tt.want)
			}
		})
	}
}

func TestFilePath(t *testing.T) {
	s := New("/shots", 0)
	ts := time.Date(2026, 8, 29, 10, 15, 0, 123e6, time.UTC)

	tests := []struct {
		name    string
		scope   Scope
		message string
		cat     Category
		want    string
	}{
		{"default", Scope{}, "", Stdout, "20260829_101500_123-stdout.jpg"},
		{"monitor", Scope{Monitor: 1}, "", Stdout, "20260829_101500_123-monitor1-stdout.jpg"},
		{"all monitors", Scope{All: true}, "", Stderr, "20260829_101500_123-all-monitors-stderr.jpg"},
		{"message", Scope{}, "after deploy", Stdout, "20260829_101500_123-after-deploy-stdout.jpg"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := s.FilePath(ts, tt.scope, tt.message, tt.cat)
			if filepath.Base(got) != tt.want {
				t.Errorf("FilePath = %s, want %s", filepath.Base(got), tt.want)
			}
		})
	}
}

func TestCategoryOf(t *testing.T) {
	tests := []struct {
		filename string
		want     Category
	}{
		{"20260829_101500_123-stderr.jpg", Stderr},
		{"20260829_101500_123-stdout.jpg", Stdout},
		{"20260829_101500_123-after-deploy-stderr.png", Stderr},
		{"random.jpg", Stdout},
	}
	for _, tt := range tests {
		if got := CategoryOf(tt.filename); got != tt.want {
			t.Errorf("CategoryOf(%s) = %s, want %s", tt.filename, got, tt.want)
		}
	}
}

func TestPruneEvictsOldestFirst(t *testing.T) {
	dir := t.TempDir()
	now := time.Now()
	old := writeShot(t, dir, "old-stdout.jpg", 600, now.Add(-2*time.Hour))
	mid := writeShot(t, dir, "mid-stdout.jpg", 600, now.Add(-time.Hour))
	recent := writeShot(t, dir, "new-stdout.jpg", 600, now)

	s := New(dir, 1300)
	removed, err := s.Prune()
	if err != nil {
		t.Fatalf("Prune: %v", err)
	}
	if removed != 1 {
		t.Fatalf("expected 1 removal, got %d", removed)
	}
	if _, err := os.Stat(old); !os.IsNotExist(err) {
		t.Error("oldest file should be gone")
	}
	for _, p := range []string{mid, recent} {
		if _, err := os.Stat(p); err != nil {
			t.Errorf("%s should survive: %v", filepath.Base(p), err)
		}
	}
}

func TestPruneUnderCapIsNoop(t *testing.T) {
	dir := t.TempDir()
	writeShot(t, dir, "a-stdout.jpg", 100, time.Now())

	s := New(dir, 1<<20)
	removed, err := s.Prune()
	if err != nil {
		t.Fatalf("Prune: %v", err)
	}
	if removed != 0 {
		t.Errorf("expected no removals, got %d", removed)
	}
}

func TestPruneMissingDir(t *testing.T) {
	s := New(filepath.Join(t.TempDir(), "nope"), 100)
	if _, err := s.Prune(); err != nil {
		t.Errorf("missing dir should not error: %v", err)
	}
}

func TestRecent(t *testing.T) {
	dir := t.TempDir()
	now := time.Now()
	writeShot(t, dir, "a-stdout.jpg", 10, now.Add(-3*time.Minute))
	writeShot(t, dir, "b-stderr.jpg", 10, now.Add(-2*time.Minute))
	writeShot(t, dir, "c-stdout.png", 10, now.Add(-time.Minute))
	writeShot(t, dir, "ignore.txt", 10, now)

	s := New(dir, 0)

	all, err := s.Recent(10, "all")
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(all))
	}
	if all[0].Filename != "c-stdout.png" {
		t.Errorf("expected newest first, got %s", all[0].Filename)
	}

	errs, err := s.Recent(10, "stderr")
	if err != nil {
		t.Fatalf("Recent stderr: %v", err)
	}
	if len(errs) != 1 || errs[0].Filename != "b-stderr.jpg" {
		t.Errorf("stderr filter: %+v", errs)
	}

	limited, _ := s.Recent(2, "all")
	if len(limited) != 2 {
		t.Errorf("limit not applied: %d", len(limited))
	}
}

func TestClearAndCount(t *testing.T) {
	dir := t.TempDir()
	writeShot(t, dir, "a-stdout.jpg", 10, time.Now())
	writeShot(t, dir, "b-stderr.jpg", 10, time.Now())

	s := New(dir, 0)
	if n, _ := s.Count(); n != 2 {
		t.Fatalf("Count = %d, want 2", n)
	}

	removed, err := s.Clear()
	if err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if removed != 2 {
		t.Errorf("Clear removed %d, want 2", removed)
	}
	if n, _ := s.Count(); n != 0 {
		t.Errorf("Count after Clear = %d", n)
	}
}

func TestTotalSize(t *testing.T) {
	dir := t.TempDir()
	writeShot(t, dir, "a-stdout.jpg", 100, time.Now())
	writeShot(t, dir, "b-stdout.jpg", 150, time.Now())

	s := New(dir, 0)
	total, err := s.TotalSize()
	if err != nil {
		t.Fatalf("TotalSize: %v", err)
	}
	if total != 250 {
		t.Errorf("TotalSize = %d, want 250", total)
	}
}
