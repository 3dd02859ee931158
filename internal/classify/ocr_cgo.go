//go:build cgo

package classify

import (
	"fmt"

	"github.com/otiai10/gosseract/v2"
)

// ScanText runs OCR over the capture and reports which error keywords
// appear in the recognized text. This is the expensive, opt-in complement
// to the color heuristic; callers treat a failure here as "no OCR
// evidence", not as a classification error.
func ScanText(path, language string) ([]string, error) {
	if language == "" {
		language = "eng"
	}

	client := gosseract.NewClient()
	defer client.Close()

	if err := client.SetLanguage(language); err != nil {
		return nil, fmt.Errorf("set OCR language: %w", err)
	}
	if err := client.SetImage(path); err != nil {
		return nil, fmt.Errorf("set OCR image: %w", err)
	}

	text, err := client.Text()
	if err != nil {
		return nil, fmt.Errorf("OCR failed: %w", err)
	}

	return MatchKeywords(text), nil
}
