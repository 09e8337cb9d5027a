package chunker

import (
	"fmt"
	"strings"
)

// Split cuts text into fixed-width rune slices where each chunk after the
// first repeats the last `overlap` runes of its predecessor. The cut is
// purely positional - it can land mid-word - which keeps the output a pure
// function of (text, size, overlap). Index rebuilds and tests rely on that.
func Split(text string, size int, overlap int) ([]string, error) {
	if size <= 0 {
		return nil, fmt.Errorf("chunk size must be positive, got %d", size)
	}
	if overlap < 0 || overlap >= size {
		return nil, fmt.Errorf("overlap must be in [0, size), got %d for size %d", overlap, size)
	}

	runes := []rune(text)
	if len(runes) == 0 {
		return nil, nil
	}

	step := size - overlap
	var chunks []string
	for start := 0; start < len(runes); start += step {
		end := start + size
		if end > len(runes) {
			end = len(runes)
		}
		chunks = append(chunks, string(runes[start:end]))
		if end == len(runes) {
			break
		}
	}
	return chunks, nil
}

// IsBlank reports whether an extracted text carries nothing worth indexing.
func IsBlank(text string) bool {
	return strings.TrimSpace(text) == ""
}
