package capture

import (
	"context"
	"errors"
	"fmt"
	"image"
)

// ErrNoDisplay is returned when no display is available to capture.
var ErrNoDisplay = errors.New("no active display found")

// ErrNotSupported is returned for operations the current platform cannot
// perform (e.g. window capture outside WSL).
var ErrNotSupported = errors.New("not supported on this platform")

// ErrMonitorRange is returned when the requested monitor index does not
// match an active display.
var ErrMonitorRange = errors.New("monitor out of range")

// Options selects what a single Grab captures.
type Options struct {
	// Monitor is the 0-based display index. Ignored when All is set.
	Monitor int

	// All captures the union rectangle of every active display.
	All bool
}

// Grab captures one frame. Backend order: the Windows host via PowerShell
// when running under WSL, the native screenshot library otherwise, and
// scrot if the native grab fails.
func Grab(ctx context.Context, opts Options) (image.Image, error) {
	if IsWSL() {
		img, err := grabWSL(ctx, opts)
		if err == nil {
			return img, nil
		}
		// Host capture can fail when powershell.exe is not reachable;
		// fall through to the native path.
	}

	img, nativeErr := grabNative(opts)
	if nativeErr == nil {
		return img, nil
	}
	// scrot only grabs the full screen; falling back after a bad monitor
	// index would capture the wrong target instead of reporting it.
	if errors.Is(nativeErr, ErrMonitorRange) {
		return nil, nativeErr
	}

	img, scrotErr := grabScrot(ctx)
	if scrotErr == nil {
		return img, nil
	}

	return nil, fmt.Errorf("screen capture failed: %w (scrot: %v)", nativeErr, scrotErr)
}
