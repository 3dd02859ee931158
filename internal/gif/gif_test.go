package gif

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	stdgif "image/gif"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/screencam/screencam/internal/cache"
)

// writeFrame writes a solid-color PNG frame and returns its path.
func writeFrame(t *testing.T, dir, name string, width, height int, c color.RGBA) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, c)
		}
	}
	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create %s: %v", name, err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatalf("encode %s: %v", name, err)
	}
	return path
}

func decodeGIF(t *testing.T, path string) *stdgif.GIF {
	t.Helper()
	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open gif: %v", err)
	}
	defer f.Close()
	g, err := stdgif.DecodeAll(f)
	if err != nil {
		t.Fatalf("decode gif: %v", err)
	}
	return g
}

func TestFromFiles(t *testing.T) {
	dir := t.TempDir()
	var paths []string
	colors := []color.RGBA{
		{255, 0, 0, 255},
		{0, 255, 0, 255},
		{0, 0, 255, 255},
	}
	for i, c := range colors {
		paths = append(paths, writeFrame(t, dir, fmt.Sprintf("f%d.png", i), 40, 30, c))
	}

	out := filepath.Join(dir, "out.gif")
	res, err := FromFiles(paths, out, Options{Duration: 200 * time.Millisecond})
	if err != nil {
		t.Fatalf("FromFiles: %v", err)
	}
	if res.Frames != 3 {
		t.Errorf("Frames = %d, want 3", res.Frames)
	}
	if res.DurationMS != 200 {
		t.Errorf("DurationMS = %d, want 200", res.DurationMS)
	}
	if res.SizeKB <= 0 {
		t.Errorf("SizeKB = %v", res.SizeKB)
	}

	g := decodeGIF(t, out)
	if len(g.Image) != 3 {
		t.Fatalf("decoded %d frames, want 3", len(g.Image))
	}
	if g.LoopCount != 0 {
		t.Errorf("LoopCount = %d, want 0 (loop forever)", g.LoopCount)
	}
	for i, d := range g.Delay {
		if d != 20 {
			t.Errorf("frame %d delay = %d, want 20", i, d)
		}
	}
}

func TestFromFilesDefaultDelay(t *testing.T) {
	dir := t.TempDir()
	p := writeFrame(t, dir, "f.png", 20, 20, color.RGBA{128, 128, 128, 255})

	res, err := FromFiles([]string{p}, filepath.Join(dir, "out.gif"), Options{})
	if err != nil {
		t.Fatalf("FromFiles: %v", err)
	}
	if res.DurationMS != 500 {
		t.Errorf("default DurationMS = %d, want 500", res.DurationMS)
	}
}

func TestFromFilesMismatchedSizes(t *testing.T) {
	dir := t.TempDir()
	paths := []string{
		writeFrame(t, dir, "a.png", 40, 30, color.RGBA{255, 0, 0, 255}),
		writeFrame(t, dir, "b.png", 80, 60, color.RGBA{0, 255, 0, 255}),
	}

	out := filepath.Join(dir, "out.gif")
	if _, err := FromFiles(paths, out, Options{}); err != nil {
		t.Fatalf("FromFiles: %v", err)
	}

	g := decodeGIF(t, out)
	for i, frame := range g.Image {
		b := frame.Bounds()
		if b.Dx() != 40 || b.Dy() != 30 {
			t.Errorf("frame %d is %dx%d, want 40x30", i, b.Dx(), b.Dy())
		}
	}
}

func TestFromFilesSkipsBadFrames(t *testing.T) {
	dir := t.TempDir()
	good := writeFrame(t, dir, "good.png", 20, 20, color.RGBA{0, 0, 0, 255})
	bad := filepath.Join(dir, "bad.png")
	if err := os.WriteFile(bad, []byte("junk"), 0o644); err != nil {
		t.Fatalf("write junk: %v", err)
	}

	res, err := FromFiles([]string{bad, good}, filepath.Join(dir, "out.gif"), Options{})
	if err != nil {
		t.Fatalf("FromFiles: %v", err)
	}
	if res.Frames != 1 {
		t.Errorf("Frames = %d, want 1", res.Frames)
	}
}

func TestFromFilesAllBad(t *testing.T) {
	dir := t.TempDir()
	bad := filepath.Join(dir, "bad.png")
	os.WriteFile(bad, []byte("junk"), 0o644)

	if _, err := FromFiles([]string{bad}, filepath.Join(dir, "out.gif"), Options{}); err == nil {
		t.Error("expected an error when no frame decodes")
	}
}

func TestOptimizeDownscales(t *testing.T) {
	dir := t.TempDir()
	p := writeFrame(t, dir, "wide.png", 1920, 1080, color.RGBA{10, 10, 10, 255})

	out := filepath.Join(dir, "out.gif")
	if _, err := FromFiles([]string{p}, out, Options{Optimize: true}); err != nil {
		t.Fatalf("FromFiles: %v", err)
	}

	g := decodeGIF(t, out)
	b := g.Image[0].Bounds()
	if b.Dx() != 960 || b.Dy() != 540 {
		t.Errorf("optimized frame is %dx%d, want 960x540", b.Dx(), b.Dy())
	}
}

func TestSampleEvenly(t *testing.T) {
	paths := make([]string, 10)
	for i := range paths {
		paths[i] = fmt.Sprintf("f%02d.png", i)
	}

	tests := []struct {
		name string
		max  int
		want int
	}{
		{"no cap", 0, 10},
		{"above count", 20, 10},
		{"half", 5, 5},
		{"one", 1, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := sampleEvenly(paths, tt.max)
			if len(got) != tt.want {
				t.Errorf("len = %d, want %d", len(got), tt.want)
			}
			if len(got) > 0 && got[0] != paths[0] {
				t.Errorf("first frame should survive sampling, got %s", got[0])
			}
		})
	}
}

func TestFromSession(t *testing.T) {
	dir := t.TempDir()
	id := "20260829_120000"
	for i := 0; i < 3; i++ {
		name := fmt.Sprintf("%s_%04d_20260829_12000%d_000.png", id, i, i)
		writeFrame(t, dir, name, 20, 20, color.RGBA{uint8(i * 80), 0, 0, 255})
	}

	store := cache.New(dir, 0)
	res, err := FromSession(store, id, "", Options{})
	if err != nil {
		t.Fatalf("FromSession: %v", err)
	}
	if res.Frames != 3 {
		t.Errorf("Frames = %d, want 3", res.Frames)
	}
	want := filepath.Join(dir, id+"_summary.gif")
	if res.Path != want {
		t.Errorf("Path = %s, want %s", res.Path, want)
	}
	if _, err := os.Stat(want); err != nil {
		t.Errorf("summary gif missing: %v", err)
	}
}

func TestFromSessionUnknown(t *testing.T) {
	store := cache.New(t.TempDir(), 0)
	if _, err := FromSession(store, "20200101_000000", "", Options{}); err == nil {
		t.Error("expected an error for an unknown session")
	}
}

func TestFromLatestSession(t *testing.T) {
	dir := t.TempDir()
	writeFrame(t, dir, "20260829_090000_0000_20260829_090000_000.png", 20, 20, color.RGBA{0, 0, 0, 255})
	writeFrame(t, dir, "20260829_110000_0000_20260829_110000_000.png", 20, 20, color.RGBA{255, 255, 255, 255})

	store := cache.New(dir, 0)
	res, err := FromLatestSession(store, "", Options{})
	if err != nil {
		t.Fatalf("FromLatestSession: %v", err)
	}
	if filepath.Base(res.Path) != "20260829_110000_summary.gif" {
		t.Errorf("latest session not picked: %s", res.Path)
	}
}

func TestFromLatestSessionEmpty(t *testing.T) {
	store := cache.New(t.TempDir(), 0)
	if _, err := FromLatestSession(store, "", Options{}); err == nil {
		t.Error("expected an error with no sessions")
	}
}

func TestFromPattern(t *testing.T) {
	dir := t.TempDir()
	for i := 0; i < 4; i++ {
		writeFrame(t, dir, fmt.Sprintf("frame%d.png", i), 20, 20, color.RGBA{uint8(i * 60), 0, 0, 255})
	}

	out := filepath.Join(dir, "out.gif")
	res, err := FromPattern(filepath.Join(dir, "frame*.png"), out, Options{MaxFrames: 2})
	if err != nil {
		t.Fatalf("FromPattern: %v", err)
	}
	if res.Frames != 2 {
		t.Errorf("Frames = %d, want 2 (max_frames)", res.Frames)
	}
}

func TestFromPatternNoMatches(t *testing.T) {
	if _, err := FromPattern(filepath.Join(t.TempDir(), "*.png"), "", Options{}); err == nil {
		t.Error("expected an error for an empty glob")
	}
}
