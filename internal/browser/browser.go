// Package browser captures URL screenshots. Rendering is never done here:
// natively a headless Chrome drives the page through chromedp, and under
// WSL the Windows host's Edge does it through a PowerShell script.
package browser

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/chromedp/chromedp"

	"github.com/screencam/screencam/internal/capture"
)

// captureTimeout bounds one URL capture end to end, browser launch
// included.
const captureTimeout = 30 * time.Second

// Normalize prefixes http:// when the URL carries no scheme, so bare
// host:port arguments work.
func Normalize(url string) string {
	if strings.HasPrefix(url, "http://") ||
		strings.HasPrefix(url, "https://") ||
		strings.HasPrefix(url, "file://") {
		return url
	}
	return "http://" + url
}

// Slug reduces a URL to a filename fragment, at most 30 runes.
func Slug(url string) string {
	s := strings.NewReplacer("://", "_", "/", "_", ":", "_").Replace(url)
	r := []rune(s)
	if len(r) > 30 {
		r = r[:30]
	}
	return string(r)
}

// CaptureURL renders url and writes a JPEG screenshot to outPath.
func CaptureURL(ctx context.Context, url, outPath string, quality int) error {
	url = Normalize(url)
	if quality < 1 || quality > 100 {
		quality = 85
	}

	if capture.IsWSL() {
		if err := captureHost(ctx, url, outPath, quality); err == nil {
			return nil
		}
		// The host path fails when Edge is missing; try a local
		// headless Chrome before giving up.
	}
	return captureChromedp(ctx, url, outPath, quality)
}

// hostResult is the JSON printed by capture_url.ps1.
type hostResult struct {
	Success    bool   `json:"Success"`
	Base64Data string `json:"Base64Data"`
	Error      string `json:"Error"`
}

func captureHost(ctx context.Context, url, outPath string, quality int) error {
	out, err := capture.RunScript(ctx, "capture_url.ps1", captureTimeout, "-Url", url)
	if err != nil {
		return err
	}

	// The payload is the first JSON line; ignore any preceding noise.
	var res hostResult
	for _, line := range strings.Split(string(out), "\n") {
		line = strings.TrimSpace(line)
		if strings.HasPrefix(line, "{") {
			if jerr := json.Unmarshal([]byte(line), &res); jerr == nil {
				break
			}
		}
	}
	if !res.Success {
		if res.Error == "" {
			res.Error = "no capture payload in script output"
		}
		return fmt.Errorf("host URL capture: %s", res.Error)
	}

	img, err := capture.DecodeBase64Image([]byte(res.Base64Data))
	if err != nil {
		return err
	}
	return capture.Save(img, outPath, true, quality)
}

func captureChromedp(ctx context.Context, url, outPath string, quality int) error {
	ctx, cancel := context.WithTimeout(ctx, captureTimeout)
	defer cancel()

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx,
		append(chromedp.DefaultExecAllocatorOptions[:],
			chromedp.WindowSize(1920, 1080),
		)...)
	defer cancelAlloc()

	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx)
	defer cancelBrowser()

	var buf []byte
	err := chromedp.Run(browserCtx,
		chromedp.Navigate(url),
		chromedp.FullScreenshot(&buf, quality),
	)
	if err != nil {
		return fmt.Errorf("chromedp capture of %s: %w", url, err)
	}

	img, err := capture.DecodeImageBytes(buf)
	if err != nil {
		return err
	}
	return capture.Save(img, outPath, true, quality)
}
