package normalize

import (
	"unicode"

	"github.com/clipperhouse/uax29/v2/words"
)

// CountTokens returns the number of word tokens in text using Unicode
// UAX #29 word segmentation. Punctuation-only and whitespace segments are
// not counted. The count depends only on the input, so it is stable
// across runs and machines.
func CountTokens(text string) int {
	n := 0
	tokens := words.FromString(text)
	for tokens.Next() {
		if wordlike(tokens.Value()) {
			n++
		}
	}
	return n
}

func wordlike(token string) bool {
	for _, r := range token {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsNumber(r) {
			return true
		}
	}
	return false
}
