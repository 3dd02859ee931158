package capture

import (
	"context"
	"fmt"
	"image"
	"os"
	"os/exec"
	"time"

	"github.com/kbinani/screenshot"
)

// grabNative captures through the screenshot library.
func grabNative(opts Options) (image.Image, error) {
	n := screenshot.NumActiveDisplays()
	if n == 0 {
		return nil, ErrNoDisplay
	}

	if opts.All {
		// Union of all display bounds; the library fills gaps between
		// offset monitors with black.
		union := screenshot.GetDisplayBounds(0)
		for i := 1; i < n; i++ {
			union = union.Union(screenshot.GetDisplayBounds(i))
		}
		img, err := screenshot.CaptureRect(union)
		if err != nil {
			return nil, fmt.Errorf("capture all monitors: %w", err)
		}
		return img, nil
	}

	if err := checkMonitorRange(opts.Monitor, n); err != nil {
		return nil, err
	}

	img, err := screenshot.CaptureRect(screenshot.GetDisplayBounds(opts.Monitor))
	if err != nil {
		return nil, fmt.Errorf("capture monitor %d: %w", opts.Monitor, err)
	}
	return img, nil
}

func checkMonitorRange(monitor, n int) error {
	if monitor < 0 || monitor >= n {
		return fmt.Errorf("monitor %d with %d active displays: %w", monitor, n, ErrMonitorRange)
	}
	return nil
}

// grabScrot shells out to scrot, for X11 hosts where the native backend
// has no usable connection. scrot only captures the full screen.
func grabScrot(ctx context.Context) (image.Image, error) {
	tmp, err := os.CreateTemp("", "screencam-scrot-*.png")
	if err != nil {
		return nil, err
	}
	tmpPath := tmp.Name()
	tmp.Close()
	os.Remove(tmpPath) // scrot refuses to overwrite
	defer os.Remove(tmpPath)

	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	if err := exec.CommandContext(ctx, "scrot", "-z", tmpPath).Run(); err != nil {
		return nil, fmt.Errorf("scrot: %w", err)
	}

	f, err := os.Open(tmpPath)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode scrot output: %w", err)
	}
	return img, nil
}
