package capture

import (
	"context"
	"errors"
	"fmt"
	"log"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

// ErrAlreadyRunning is returned by Worker.Start when a loop is active.
var ErrAlreadyRunning = errors.New("monitoring already running")

// ErrNotRunning is returned by Worker.Stop when no loop is active.
var ErrNotRunning = errors.New("monitoring not running")

// Settings configures one monitoring run. Start takes the full set so a
// rejected start leaves the active run untouched.
type Settings struct {
	OutputDir string
	Interval  time.Duration
	JPEG      bool
	Quality   int
	Monitor   int
	All       bool
}

// Worker captures a frame per tick into session-named files. One Worker
// runs at most one loop; Start while running is an error.
type Worker struct {
	// OnCapture is called with the saved path after each frame.
	OnCapture func(path string)
	// OnError is called when a tick fails. The loop keeps going.
	OnError func(err error)

	mu        sync.Mutex
	set       Settings
	running   bool
	sessionID string
	count     int
	cancel    context.CancelFunc
	done      chan struct{}
}

// Status is a point-in-time snapshot of a Worker.
type Status struct {
	Running   bool          `json:"running"`
	SessionID string        `json:"session_id"`
	Count     int           `json:"screenshot_count"`
	OutputDir string        `json:"output_dir"`
	Interval  time.Duration `json:"interval"`
	JPEG      bool          `json:"use_jpeg"`
	Quality   int           `json:"jpeg_quality"`
}

// Start launches the capture loop. An empty sessionID defaults to the
// current wall-clock time formatted as 20060102_150405, which is what
// groups the frames into a session for GIF assembly later.
func (w *Worker) Start(sessionID string, set Settings) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.running {
		return ErrAlreadyRunning
	}
	if set.Interval <= 0 {
		set.Interval = time.Second
	}
	if set.Quality == 0 {
		set.Quality = 60
	}
	if sessionID == "" {
		sessionID = time.Now().Format("20060102_150405")
	}

	ctx, cancel := context.WithCancel(context.Background())
	w.set = set
	w.running = true
	w.sessionID = sessionID
	w.count = 0
	w.cancel = cancel
	w.done = make(chan struct{})

	go w.loop(ctx)
	return nil
}

// Stop signals the loop and waits up to 2 seconds for it to exit.
// Stopping an idle worker returns ErrNotRunning; callers that want
// stop-if-running semantics check the sentinel.
func (w *Worker) Stop() error {
	w.mu.Lock()
	if !w.running {
		w.mu.Unlock()
		return ErrNotRunning
	}
	w.running = false
	cancel := w.cancel
	done := w.done
	w.mu.Unlock()

	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		log.Printf("worker did not stop within 2s; abandoning")
	}
	return nil
}

// Status returns a snapshot of the worker state.
func (w *Worker) Status() Status {
	w.mu.Lock()
	defer w.mu.Unlock()
	return Status{
		Running:   w.running,
		SessionID: w.sessionID,
		Count:     w.count,
		OutputDir: w.set.OutputDir,
		Interval:  w.set.Interval,
		JPEG:      w.set.JPEG,
		Quality:   w.set.Quality,
	}
}

func (w *Worker) loop(ctx context.Context) {
	defer close(w.done)

	ticker := time.NewTicker(w.set.Interval)
	defer ticker.Stop()

	// Capture immediately rather than waiting out the first interval.
	w.tick(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			w.tick(ctx)
		}
	}
}

func (w *Worker) tick(ctx context.Context) {
	w.mu.Lock()
	set := w.set
	w.mu.Unlock()

	img, err := Grab(ctx, Options{Monitor: set.Monitor, All: set.All})
	if err != nil {
		w.fail(err)
		return
	}

	path := w.framePath(time.Now())
	if err := Save(img, path, set.JPEG, set.Quality); err != nil {
		w.fail(err)
		return
	}

	w.mu.Lock()
	w.count++
	w.mu.Unlock()

	if w.OnCapture != nil {
		w.OnCapture(path)
	}
}

func (w *Worker) fail(err error) {
	if w.OnError != nil {
		w.OnError(err)
	} else {
		log.Printf("monitor capture: %v", err)
	}
}

// framePath builds <dir>/<session>_<NNNN>_<timestamp>.<ext>. The frame
// counter keeps lexical order stable even when two frames land in the
// same millisecond.
func (w *Worker) framePath(now time.Time) string {
	w.mu.Lock()
	session, n, set := w.sessionID, w.count, w.set
	w.mu.Unlock()

	ts := strings.Replace(now.Format("20060102_150405.000"), ".", "_", 1)
	ext := "jpg"
	if !set.JPEG {
		ext = "png"
	}
	name := fmt.Sprintf("%s_%04d_%s.%s", session, n, ts, ext)
	return filepath.Join(set.OutputDir, name)
}
