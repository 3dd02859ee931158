package capture

import (
	"fmt"
	"image"
	"image/color"
	_ "image/gif"  // register decoders for scrot/WSL output and Snap temp files
	_ "image/jpeg" //
	_ "image/png"  //
	"os"
	"path/filepath"

	"github.com/disintegration/imaging"
)

// Save writes img to path. JPEG output flattens any alpha channel onto a
// white background first; JPEG has no transparency and black fill makes
// screenshots unreadable. The parent directory is created as needed.
func Save(img image.Image, path string, jpeg bool, quality int) error {
	if quality < 1 || quality > 100 {
		quality = 85
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	if jpeg {
		flat := flatten(img)
		if err := imaging.Save(flat, path, imaging.JPEGQuality(quality)); err != nil {
			return fmt.Errorf("save jpeg: %w", err)
		}
		return nil
	}

	if err := imaging.Save(img, path); err != nil {
		return fmt.Errorf("save png: %w", err)
	}
	return nil
}

// flatten composites img over white, discarding alpha.
func flatten(img image.Image) image.Image {
	switch img.(type) {
	case *image.RGBA, *image.NRGBA, *image.RGBA64, *image.NRGBA64:
		bg := imaging.New(img.Bounds().Dx(), img.Bounds().Dy(), color.NRGBA{R: 255, G: 255, B: 255, A: 255})
		return imaging.Overlay(bg, img, image.Point{}, 1.0)
	default:
		return img
	}
}
