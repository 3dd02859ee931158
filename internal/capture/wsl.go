package capture

import (
	"bytes"
	"context"
	"embed"
	"encoding/base64"
	"fmt"
	"image"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
	"sync"
	"time"

	"golang.org/x/sys/unix"
)

//go:embed powershell/*.ps1
var scripts embed.FS

var (
	wslOnce sync.Once
	wslFlag bool

	psOnce sync.Once
	psExe  string

	scriptOnce sync.Once
	scriptDir  string
	scriptErr  error
)

// IsWSL reports whether the process runs inside Windows Subsystem for
// Linux, detected from the kernel release string.
func IsWSL() bool {
	wslOnce.Do(func() {
		if runtime.GOOS != "linux" {
			return
		}
		var uts unix.Utsname
		if err := unix.Uname(&uts); err != nil {
			return
		}
		release := unix.ByteSliceToString(uts.Release[:])
		wslFlag = strings.Contains(strings.ToLower(release), "microsoft")
	})
	return wslFlag
}

// findPowerShell probes known powershell.exe locations. Each candidate gets
// a 1 second "echo test" to weed out broken interop setups. The result is
// cached; an empty string means no working executable.
func findPowerShell() string {
	psOnce.Do(func() {
		candidates := []string{
			"powershell.exe",
			"/mnt/c/Windows/System32/WindowsPowerShell/v1.0/powershell.exe",
			"/mnt/c/Windows/SysWOW64/WindowsPowerShell/v1.0/powershell.exe",
		}
		for _, c := range candidates {
			ctx, cancel := context.WithTimeout(context.Background(), time.Second)
			err := exec.CommandContext(ctx, c, "-Command", "echo test").Run()
			cancel()
			if err == nil {
				psExe = c
				return
			}
		}
	})
	return psExe
}

// scriptPath materializes an embedded PowerShell script into a temp
// directory (PowerShell needs a real file path) and returns its location.
func scriptPath(name string) (string, error) {
	scriptOnce.Do(func() {
		dir, err := os.MkdirTemp("", "screencam-ps")
		if err != nil {
			scriptErr = err
			return
		}
		entries, err := scripts.ReadDir("powershell")
		if err != nil {
			scriptErr = err
			return
		}
		for _, e := range entries {
			data, err := scripts.ReadFile("powershell/" + e.Name())
			if err != nil {
				scriptErr = err
				return
			}
			if err := os.WriteFile(filepath.Join(dir, e.Name()), data, 0o644); err != nil {
				scriptErr = err
				return
			}
		}
		scriptDir = dir
	})
	if scriptErr != nil {
		return "", scriptErr
	}
	return filepath.Join(scriptDir, name), nil
}

// RunScript executes an embedded PowerShell script on the Windows host and
// returns its stdout. Used by the capture, display, and browser packages.
func RunScript(ctx context.Context, name string, timeout time.Duration, args ...string) ([]byte, error) {
	ps := findPowerShell()
	if ps == "" {
		return nil, fmt.Errorf("powershell.exe not reachable: %w", ErrNotSupported)
	}
	path, err := scriptPath(name)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	cmdArgs := append([]string{"-NoProfile", "-ExecutionPolicy", "Bypass", "-File", path}, args...)
	cmd := exec.CommandContext(ctx, ps, cmdArgs...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("%s: %w (stderr: %s)", name, err, strings.TrimSpace(stderr.String()))
	}
	return stdout.Bytes(), nil
}

// grabWSL captures the Windows host screen through PowerShell. The scripts
// print base64-encoded PNG to stdout.
func grabWSL(ctx context.Context, opts Options) (image.Image, error) {
	var out []byte
	var err error
	if opts.All {
		out, err = RunScript(ctx, "capture_all_monitors.ps1", 5*time.Second,
			"-OutputFormat", "base64")
	} else {
		out, err = RunScript(ctx, "capture_single_monitor.ps1", 5*time.Second,
			"-MonitorNumber", strconv.Itoa(opts.Monitor), "-OutputFormat", "base64")
	}
	if err != nil {
		return nil, err
	}

	return DecodeBase64Image(out)
}

// DecodeBase64Image decodes base64 text (as printed by the host scripts)
// into an image.
func DecodeBase64Image(b64 []byte) (image.Image, error) {
	raw, err := base64.StdEncoding.DecodeString(strings.TrimSpace(string(b64)))
	if err != nil {
		return nil, fmt.Errorf("decode base64 capture: %w", err)
	}
	return DecodeImageBytes(raw)
}

// DecodeImageBytes decodes raw PNG or JPEG bytes into an image.
func DecodeImageBytes(raw []byte) (image.Image, error) {
	img, _, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("decode captured image: %w", err)
	}
	return img, nil
}
