package goquery

import "strings"

// Marker reifies blocks introduced by a well-known heading phrase into
// special blocks. The table is ordered; the first matching marker wins.
type Marker struct {
	// Kind becomes the special block's kind.
	Kind string

	// Phrases are matched case-insensitively against the block's text.
	// Multi-word phrases match as substrings, single words as whole
	// tokens. Phrases must be lower-case.
	Phrases []string
}

// DefaultMarkers returns the marker table for help-center content. The
// source site ships both Russian and English locales, so both phrase sets
// are present.
func DefaultMarkers() []Marker {
	return []Marker{
		{
			Kind:    "In this article",
			Phrases: []string{"in this article", "table of contents", "в этой статье", "содержание", "оглавление"},
		},
		{
			Kind:    "Example",
			Phrases: []string{"example", "examples", "пример", "примеры"},
		},
		{
			Kind:    "Warning",
			Phrases: []string{"warning", "caution", "внимание"},
		},
		{
			Kind:    "Important",
			Phrases: []string{"important", "важно"},
		},
		{
			Kind:    "API",
			Phrases: []string{"api", "endpoint", "endpoints"},
		},
	}
}

// Matches reports whether the text triggers this marker.
func (m Marker) Matches(text string) bool {
	t := strings.ToLower(text)
	var tokens []string
	for _, p := range m.Phrases {
		if strings.Contains(p, " ") {
			if strings.Contains(t, p) {
				return true
			}
			continue
		}
		if tokens == nil {
			tokens = strings.FieldsFunc(t, func(r rune) bool {
				return r == ' ' || r == '\t' || r == '\n' || r == ',' || r == '.' || r == ':' || r == ';' || r == '!' || r == '?'
			})
		}
		for _, tok := range tokens {
			if tok == p {
				return true
			}
		}
	}
	return false
}

// matchMarker returns the first marker matching the text.
func matchMarker(markers []Marker, text string) (Marker, bool) {
	for _, m := range markers {
		if m.Matches(text) {
			return m, true
		}
	}
	return Marker{}, false
}
