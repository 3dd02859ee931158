// Package display enumerates monitors and host windows and captures
// individual windows. Monitor data comes from the screenshot library;
// window data only exists when a Windows host is reachable (WSL), where a
// PowerShell script reports it as JSON.
package display

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/kbinani/screenshot"

	"github.com/screencam/screencam/internal/capture"
)

// Bounds is a monitor or window rectangle in virtual-screen coordinates.
type Bounds struct {
	X      int `json:"x"`
	Y      int `json:"y"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Monitor describes one display.
type Monitor struct {
	Index      int    `json:"index"`
	DeviceName string `json:"device_name,omitempty"`
	IsPrimary  bool   `json:"is_primary"`
	Bounds     Bounds `json:"bounds"`
}

// Window describes one visible host window.
type Window struct {
	Handle      int64  `json:"handle"`
	Title       string `json:"title"`
	ProcessName string `json:"process_name"`
	ProcessID   int    `json:"process_id"`
}

// Info is the full display inventory: monitors, windows, and a virtual
// desktop note, the payload of the get_info tool.
type Info struct {
	Monitors struct {
		Count          int       `json:"count"`
		PrimaryMonitor string    `json:"primary_monitor,omitempty"`
		Details        []Monitor `json:"details"`
	} `json:"monitors"`
	Windows struct {
		Supported    bool     `json:"supported"`
		VisibleCount int      `json:"visible_count"`
		Details      []Window `json:"details"`
		Note         string   `json:"note,omitempty"`
	} `json:"windows"`
	VirtualDesktops struct {
		Supported bool   `json:"supported"`
		Note      string `json:"note"`
	} `json:"virtual_desktops"`
	Timestamp time.Time `json:"timestamp"`
}

// Monitors enumerates displays through the screenshot library.
func Monitors() []Monitor {
	n := screenshot.NumActiveDisplays()
	out := make([]Monitor, 0, n)
	for i := 0; i < n; i++ {
		b := screenshot.GetDisplayBounds(i)
		out = append(out, Monitor{
			Index:     i,
			IsPrimary: i == 0,
			Bounds: Bounds{
				X: b.Min.X, Y: b.Min.Y,
				Width: b.Dx(), Height: b.Dy(),
			},
		})
	}
	return out
}

// hostInfo is the JSON shape printed by display_info.ps1.
type hostInfo struct {
	Monitors struct {
		Count          int    `json:"Count"`
		PrimaryMonitor string `json:"PrimaryMonitor"`
		Details        []struct {
			Index      int    `json:"Index"`
			DeviceName string `json:"DeviceName"`
			IsPrimary  bool   `json:"IsPrimary"`
			Bounds     struct {
				X, Y, Width, Height int
			} `json:"Bounds"`
		} `json:"Details"`
	} `json:"Monitors"`
	Windows struct {
		VisibleCount int `json:"VisibleCount"`
		Details      []struct {
			Handle      int64  `json:"Handle"`
			Title       string `json:"Title"`
			ProcessName string `json:"ProcessName"`
			ProcessID   int    `json:"ProcessId"`
		} `json:"Details"`
	} `json:"Windows"`
	VirtualDesktops struct {
		Supported bool   `json:"Supported"`
		Note      string `json:"Note"`
	} `json:"VirtualDesktops"`
}

// GetInfo gathers the display inventory. Under WSL the Windows host is
// asked for monitors and windows; elsewhere monitors come from the native
// library and the window list is empty.
func GetInfo(ctx context.Context) (*Info, error) {
	info := &Info{Timestamp: time.Now()}
	info.VirtualDesktops.Supported = false
	info.VirtualDesktops.Note = "virtual desktop enumeration is not available"

	if capture.IsWSL() {
		out, err := capture.RunScript(ctx, "display_info.ps1", 10*time.Second)
		if err == nil {
			var host hostInfo
			if jerr := json.Unmarshal(jsonLine(out), &host); jerr == nil {
				fillFromHost(info, &host)
				return info, nil
			}
		}
		// Host query failed; degrade to native enumeration below.
	}

	mons := Monitors()
	info.Monitors.Count = len(mons)
	info.Monitors.Details = mons
	info.Windows.Supported = false
	info.Windows.Note = "window enumeration requires a Windows host (WSL)"
	info.Windows.Details = []Window{}
	return info, nil
}

func fillFromHost(info *Info, host *hostInfo) {
	info.Monitors.Count = host.Monitors.Count
	info.Monitors.PrimaryMonitor = host.Monitors.PrimaryMonitor
	for _, m := range host.Monitors.Details {
		info.Monitors.Details = append(info.Monitors.Details, Monitor{
			Index:      m.Index,
			DeviceName: m.DeviceName,
			IsPrimary:  m.IsPrimary,
			Bounds: Bounds{
				X: m.Bounds.X, Y: m.Bounds.Y,
				Width: m.Bounds.Width, Height: m.Bounds.Height,
			},
		})
	}
	info.Windows.Supported = true
	info.Windows.VisibleCount = host.Windows.VisibleCount
	info.Windows.Details = make([]Window, 0, len(host.Windows.Details))
	for _, w := range host.Windows.Details {
		info.Windows.Details = append(info.Windows.Details, Window{
			Handle:      w.Handle,
			Title:       w.Title,
			ProcessName: w.ProcessName,
			ProcessID:   w.ProcessID,
		})
	}
	info.VirtualDesktops.Supported = host.VirtualDesktops.Supported
	info.VirtualDesktops.Note = host.VirtualDesktops.Note
}

// jsonLine extracts the first line starting with '{' from script output;
// PowerShell profiles and progress noise can precede the payload.
func jsonLine(out []byte) []byte {
	for _, line := range strings.Split(string(out), "\n") {
		if strings.HasPrefix(strings.TrimSpace(line), "{") {
			return []byte(strings.TrimSpace(line))
		}
	}
	return out
}

// FindWindow locates a visible window whose process name or title
// contains app, case-insensitively. Process names match first.
func FindWindow(ctx context.Context, app string) (*Window, error) {
	info, err := GetInfo(ctx)
	if err != nil {
		return nil, err
	}
	if !info.Windows.Supported {
		return nil, fmt.Errorf("window lookup: %w", capture.ErrNotSupported)
	}

	if win := matchWindow(info.Windows.Details, app); win != nil {
		return win, nil
	}
	return nil, fmt.Errorf("app %q not found in visible windows", app)
}

// matchWindow prefers a process-name match over a title match so
// "firefox" picks the browser even when another window mentions it.
func matchWindow(windows []Window, app string) *Window {
	needle := strings.ToLower(app)
	for _, w := range windows {
		if strings.Contains(strings.ToLower(w.ProcessName), needle) {
			win := w
			return &win
		}
	}
	for _, w := range windows {
		if strings.Contains(strings.ToLower(w.Title), needle) {
			win := w
			return &win
		}
	}
	return nil
}

// CaptureWindow grabs one window by handle and writes it to outPath as
// JPEG with the given quality. Only possible through the Windows host.
func CaptureWindow(ctx context.Context, handle int64, outPath string, quality int) error {
	if !capture.IsWSL() {
		return fmt.Errorf("window capture: %w", capture.ErrNotSupported)
	}

	out, err := capture.RunScript(ctx, "capture_window.ps1", 10*time.Second,
		"-WindowHandle", strconv.FormatInt(handle, 10))
	if err != nil {
		return err
	}
	img, err := capture.DecodeBase64Image(out)
	if err != nil {
		return err
	}
	return capture.Save(img, outPath, true, quality)
}
