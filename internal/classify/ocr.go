package classify

import "strings"

// textKeywords are scanned for in OCR output, lowercased.
var textKeywords = []string{"error", "exception", "traceback", "failed", "fatal", "panic"}

// MatchKeywords returns the error keywords present in text.
func MatchKeywords(text string) []string {
	lower := strings.ToLower(text)
	var found []string
	for _, kw := range textKeywords {
		if strings.Contains(lower, kw) {
			found = append(found, kw)
		}
	}
	return found
}
