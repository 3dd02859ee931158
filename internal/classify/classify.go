// Package classify decides whether a capture is a normal ("stdout") or an
// error ("stderr") screenshot.
//
// The heuristic is visual: error dialogs and failing terminal output skew
// red, warnings skew yellow. Pixels are sampled, converted to HSV, and
// counted against hue/saturation/value thresholds; past 5% red or yellow
// the capture is categorized stderr. When the image cannot be decoded the
// filename is scanned for error keywords instead.
package classify

import (
	"image"
	_ "image/gif"  // register decoders for DetectPath
	_ "image/jpeg" //
	_ "image/png"  //
	"os"
	"path/filepath"
	"strings"

	"github.com/anthonynsimon/bild/clone"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/screencam/screencam/internal/cache"
)

// ratioThreshold is the share of red or yellow pixels past which a
// capture counts as an error capture.
const ratioThreshold = 0.05

// maxSamples bounds the pixel walk; 4K frames would otherwise cost ~8M
// HSV conversions per capture.
const maxSamples = 200_000

// Analysis is the result of categorizing one capture.
type Analysis struct {
	Category    cache.Category `json:"category"`
	RedRatio    float64        `json:"red_ratio"`
	YellowRatio float64        `json:"yellow_ratio"`
	Reason      string         `json:"reason"`
}

// DetectImage categorizes a decoded frame by its color distribution.
func DetectImage(img image.Image) Analysis {
	rgba := clone.AsRGBA(img)
	b := rgba.Bounds()
	w, h := b.Dx(), b.Dy()
	if w == 0 || h == 0 {
		return Analysis{Category: cache.Stdout, Reason: "empty image"}
	}

	// Pick a stride so the sample count stays near maxSamples.
	stride := 1
	for (w/stride)*(h/stride) > maxSamples {
		stride++
	}

	var red, yellow, total int
	for y := 0; y < h; y += stride {
		for x := 0; x < w; x += stride {
			i := rgba.PixOffset(b.Min.X+x, b.Min.Y+y)
			c := colorful.Color{
				R: float64(rgba.Pix[i]) / 255,
				G: float64(rgba.Pix[i+1]) / 255,
				B: float64(rgba.Pix[i+2]) / 255,
			}
			hue, sat, val := c.Hsv()
			switch {
			case sat > 0.55 && val > 0.45 && (hue <= 20 || hue >= 340):
				red++
			case sat > 0.55 && val > 0.55 && hue >= 35 && hue <= 70:
				yellow++
			}
			total++
		}
	}

	a := Analysis{
		RedRatio:    float64(red) / float64(total),
		YellowRatio: float64(yellow) / float64(total),
	}
	switch {
	case a.RedRatio > ratioThreshold:
		a.Category = cache.Stderr
		a.Reason = "red-dominant"
	case a.YellowRatio > ratioThreshold:
		a.Category = cache.Stderr
		a.Reason = "yellow-dominant"
	default:
		a.Category = cache.Stdout
		a.Reason = "no error colors"
	}
	return a
}

// filenameKeywords mark a capture as stderr by name alone. Warnings also
// go to stderr.
var filenameKeywords = []string{"error", "fail", "exception", "crash", "warn", "alert", "caution"}

// DetectPath categorizes a capture on disk. Decode failures fall back to
// filename keyword matching rather than erroring; categorization must
// never block a capture from being saved.
func DetectPath(path string) Analysis {
	f, err := os.Open(path)
	if err != nil {
		return detectFilename(path)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return detectFilename(path)
	}
	return DetectImage(img)
}

func detectFilename(path string) Analysis {
	name := strings.ToLower(filepath.Base(path))
	for _, kw := range filenameKeywords {
		if strings.Contains(name, kw) {
			return Analysis{Category: cache.Stderr, Reason: "filename keyword: " + kw}
		}
	}
	return Analysis{Category: cache.Stdout, Reason: "filename"}
}
