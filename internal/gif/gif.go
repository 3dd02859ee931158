// Package gif assembles screenshot sequences into animated GIF summaries.
//
// Frame decoding and resizing go through disintegration/imaging; encoding
// is the standard library's image/gif with Plan9 palette quantization. The
// package only chooses frames, sizes, and delays.
package gif

import (
	"fmt"
	"image"
	"image/color/palette"
	"image/draw"
	stdgif "image/gif"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/disintegration/imaging"

	"github.com/screencam/screencam/internal/cache"
)

// optimizeMaxWidth is the frame width cap applied when Options.Optimize
// is set. Downscaling before quantization is where the size win is.
const optimizeMaxWidth = 960

// Options control GIF assembly.
type Options struct {
	// Duration each frame is shown. Zero means 500ms.
	Duration time.Duration

	// Optimize downscales frames to at most 960px wide.
	Optimize bool

	// MaxFrames caps the frame count; frames are sampled evenly across
	// the input when it is exceeded. Zero means no cap.
	MaxFrames int
}

func (o Options) delay() int {
	d := o.Duration
	if d <= 0 {
		d = 500 * time.Millisecond
	}
	// image/gif delays are in 100ths of a second.
	return int(d / (10 * time.Millisecond))
}

// Result describes a written GIF.
type Result struct {
	Path       string  `json:"path"`
	Frames     int     `json:"frames"`
	SizeKB     float64 `json:"size_kb"`
	DurationMS int     `json:"duration_per_frame_ms"`
}

// sampleEvenly reduces paths to at most max entries, spaced evenly, the
// way the monitoring sessions are summarized: keep the overall shape,
// drop the in-between frames.
func sampleEvenly(paths []string, max int) []string {
	if max <= 0 || len(paths) <= max {
		return paths
	}
	step := len(paths) / max
	if step < 1 {
		step = 1
	}
	out := make([]string, 0, max)
	for i := 0; i < len(paths) && len(out) < max; i += step {
		out = append(out, paths[i])
	}
	return out
}

// FromFiles builds a GIF from an explicit frame list. Missing or
// undecodable frames are logged and skipped; the GIF is written as long
// as at least one frame survives.
func FromFiles(paths []string, outPath string, opts Options) (*Result, error) {
	if len(paths) == 0 {
		return nil, fmt.Errorf("no frames given")
	}

	var frames []image.Image
	for _, p := range paths {
		img, err := imaging.Open(p)
		if err != nil {
			log.Printf("skipping frame %s: %v", p, err)
			continue
		}
		frames = append(frames, img)
	}
	if len(frames) == 0 {
		return nil, fmt.Errorf("no usable frames among %d paths", len(paths))
	}

	// All frames take the first frame's size so monitor changes
	// mid-session do not corrupt the animation.
	target := frames[0].Bounds()
	width, height := target.Dx(), target.Dy()
	if opts.Optimize && width > optimizeMaxWidth {
		height = height * optimizeMaxWidth / width
		width = optimizeMaxWidth
	}

	anim := &stdgif.GIF{LoopCount: 0}
	delay := opts.delay()
	for _, frame := range frames {
		if frame.Bounds().Dx() != width || frame.Bounds().Dy() != height {
			frame = imaging.Resize(frame, width, height, imaging.Lanczos)
		}
		pal := image.NewPaletted(image.Rect(0, 0, width, height), palette.Plan9)
		draw.FloydSteinberg.Draw(pal, pal.Bounds(), frame, frame.Bounds().Min)
		anim.Image = append(anim.Image, pal)
		anim.Delay = append(anim.Delay, delay)
	}

	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return nil, fmt.Errorf("create output dir: %w", err)
	}
	f, err := os.Create(outPath)
	if err != nil {
		return nil, fmt.Errorf("create gif: %w", err)
	}
	defer f.Close()

	if err := stdgif.EncodeAll(f, anim); err != nil {
		return nil, fmt.Errorf("encode gif: %w", err)
	}

	stat, err := f.Stat()
	if err != nil {
		return nil, err
	}
	return &Result{
		Path:       outPath,
		Frames:     len(anim.Image),
		SizeKB:     float64(stat.Size()) / 1024,
		DurationMS: delay * 10,
	}, nil
}

// FromSession builds a GIF from one monitoring session's frames.
// outPath defaults to <store dir>/<sessionID>_summary.gif.
func FromSession(store *cache.Store, sessionID, outPath string, opts Options) (*Result, error) {
	frames, err := store.SessionFrames(sessionID)
	if err != nil {
		return nil, err
	}
	if len(frames) == 0 {
		return nil, fmt.Errorf("no screenshots found for session %s", sessionID)
	}

	frames = sampleEvenly(frames, opts.MaxFrames)
	if outPath == "" {
		outPath = filepath.Join(store.Dir, sessionID+"_summary.gif")
	}
	return FromFiles(frames, outPath, opts)
}

// FromLatestSession builds a GIF from the most recent monitoring session.
func FromLatestSession(store *cache.Store, outPath string, opts Options) (*Result, error) {
	ids, err := store.SessionIDs()
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return nil, fmt.Errorf("no monitoring sessions found")
	}
	return FromSession(store, ids[0], outPath, opts)
}

// FromPattern builds a GIF from files matching a glob pattern, sorted by
// name. outPath defaults to gif_summary_<timestamp>.gif next to the
// pattern's directory.
func FromPattern(pattern, outPath string, opts Options) (*Result, error) {
	matches, err := filepath.Glob(pattern)
	if err != nil {
		return nil, fmt.Errorf("bad pattern %q: %w", pattern, err)
	}
	if len(matches) == 0 {
		return nil, fmt.Errorf("no files match pattern %q", pattern)
	}
	sort.Strings(matches)
	matches = sampleEvenly(matches, opts.MaxFrames)

	if outPath == "" {
		dir := filepath.Dir(pattern)
		if strings.ContainsAny(dir, "*?[") {
			dir = "."
		}
		stamp := time.Now().Format("20060102_150405")
		outPath = filepath.Join(dir, "gif_summary_"+stamp+".gif")
	}
	return FromFiles(matches, outPath, opts)
}
