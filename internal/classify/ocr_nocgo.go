//go:build !cgo

package classify

import "errors"

// ScanText requires the cgo-backed gosseract bindings; without cgo it
// reports the same kind of failure callers already treat as "no OCR
// evidence".
func ScanText(path, language string) ([]string, error) {
	return nil, errors.New("OCR unavailable: built without cgo")
}
