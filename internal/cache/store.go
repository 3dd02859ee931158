// Package cache manages the bounded on-disk screenshot store.
//
// All state lives in the filenames: the capture timestamp, the monitor
// scope, an optional user message, and the stdout/stderr category are
// encoded into each name, so listing and filtering never need a database.
// Eviction is size-based: when the directory grows past the cap, the
// oldest files go first.
package cache

import (
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"
)

// Category labels a capture as a normal or an error capture, mirroring
// process output streams.
type Category string

const (
	Stdout Category = "stdout"
	Stderr Category = "stderr"
)

// Scope records what a capture covered, for the filename tag.
type Scope struct {
	Monitor int
	All     bool
}

// Store is a screenshot directory with a size cap.
type Store struct {
	Dir      string
	MaxBytes int64
}

// Entry describes one cached screenshot.
type Entry struct {
	Filename string    `json:"filename"`
	Path     string    `json:"path"`
	Category Category  `json:"category"`
	SizeKB   float64   `json:"size_kb"`
	Modified time.Time `json:"modified"`
}

// New returns a Store rooted at dir. maxBytes <= 0 means 1 GiB.
func New(dir string, maxBytes int64) *Store {
	if maxBytes <= 0 {
		maxBytes = 1 << 30
	}
	return &Store{Dir: dir, MaxBytes: maxBytes}
}

var messageClean = regexp.MustCompile(`[^\w\s-]`)
var messageDashes = regexp.MustCompile(`[-\s]+`)

// NormalizeMessage reduces a free-form message to a filename fragment:
// first line only, special characters stripped, runs of spaces and
// hyphens collapsed to single hyphens, at most 50 runes.
func NormalizeMessage(message string) string {
	if message == "" {
		return ""
	}
	line, _, _ := strings.Cut(message, "\n")
	s := messageClean.ReplaceAllString(line, "")
	s = messageDashes.ReplaceAllString(s, "-")
	s = strings.Trim(s, "-")
	if s == "" {
		return ""
	}
	r := []rune(s)
	if len(r) > 50 {
		r = r[:50]
	}
	return string(r)
}

// scopeTag renders the scope portion of a filename. The primary monitor
// gets no tag so default captures keep clean names.
func scopeTag(s Scope) string {
	switch {
	case s.All:
		return "-all-monitors"
	case s.Monitor > 0:
		return "-monitor" + strconv.Itoa(s.Monitor)
	default:
		return ""
	}
}

// FilePath builds the cache path for a single capture:
// <timestamp><scope><message><category>.jpg with millisecond timestamps.
func (s *Store) FilePath(ts time.Time, scope Scope, message string, cat Category) string {
	stamp := strings.Replace(ts.Format("20060102_150405.000"), ".", "_", 1)
	name := stamp + scopeTag(scope)
	if m := NormalizeMessage(message); m != "" {
		name += "-" + m
	}
	name += "-" + string(cat) + ".jpg"
	return filepath.Join(s.Dir, name)
}

// CategoryOf parses the category suffix out of a cached filename.
// Files without a recognizable suffix count as stdout.
func CategoryOf(filename string) Category {
	base := strings.TrimSuffix(filename, filepath.Ext(filename))
	if strings.HasSuffix(base, "-stderr") {
		return Stderr
	}
	return Stdout
}

type fileStat struct {
	path    string
	size    int64
	modTime time.Time
}

// screenshots lists the *.jpg and *.png files in the store, unordered.
func (s *Store) screenshots() ([]fileStat, error) {
	entries, err := os.ReadDir(s.Dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var out []fileStat
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(e.Name()))
		if ext != ".jpg" && ext != ".png" {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue // deleted between ReadDir and stat
		}
		out = append(out, fileStat{
			path:    filepath.Join(s.Dir, e.Name()),
			size:    info.Size(),
			modTime: info.ModTime(),
		})
	}
	return out, nil
}

// Prune deletes oldest-first until the store fits under MaxBytes.
// Files that cannot be removed (e.g. still open) are skipped.
func (s *Store) Prune() (int, error) {
	files, err := s.screenshots()
	if err != nil {
		return 0, err
	}

	var total int64
	for _, f := range files {
		total += f.size
	}
	if total <= s.MaxBytes {
		return 0, nil
	}

	sort.Slice(files, func(i, j int) bool {
		return files[i].modTime.Before(files[j].modTime)
	})

	removed := 0
	for _, f := range files {
		if total <= s.MaxBytes {
			break
		}
		if err := os.Remove(f.path); err != nil {
			continue
		}
		total -= f.size
		removed++
	}
	return removed, nil
}

// Clear deletes every cached screenshot and returns how many went.
func (s *Store) Clear() (int, error) {
	files, err := s.screenshots()
	if err != nil {
		return 0, err
	}
	removed := 0
	for _, f := range files {
		if err := os.Remove(f.path); err == nil {
			removed++
		}
	}
	return removed, nil
}

// Recent lists up to limit screenshots, newest first. category filters by
// the filename suffix; "all" or "" matches everything.
func (s *Store) Recent(limit int, category string) ([]Entry, error) {
	files, err := s.screenshots()
	if err != nil {
		return nil, err
	}

	sort.Slice(files, func(i, j int) bool {
		return files[i].modTime.After(files[j].modTime)
	})

	var out []Entry
	for _, f := range files {
		cat := CategoryOf(filepath.Base(f.path))
		if category != "" && category != "all" && string(cat) != category {
			continue
		}
		out = append(out, Entry{
			Filename: filepath.Base(f.path),
			Path:     f.path,
			Category: cat,
			SizeKB:   float64(f.size) / 1024,
			Modified: f.modTime,
		})
		if limit > 0 && len(out) >= limit {
			break
		}
	}
	return out, nil
}

// TotalSize returns the combined size of cached screenshots in bytes.
func (s *Store) TotalSize() (int64, error) {
	files, err := s.screenshots()
	if err != nil {
		return 0, err
	}
	var total int64
	for _, f := range files {
		total += f.size
	}
	return total, nil
}

// Count returns the number of cached screenshots.
func (s *Store) Count() (int, error) {
	files, err := s.screenshots()
	if err != nil {
		return 0, err
	}
	return len(files), nil
}
