package normalize_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/docgraph/docgraph/normalize"
)

func TestCountTokens(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want int
	}{
		{"empty", "", 0},
		{"single word", "lead", 1},
		{"punctuation is not counted", "Hello, world!", 2},
		{"numbers count", "step 2 of 3", 4},
		{"russian text", "Создание лида в CRM", 4},
		{"whitespace only", "  \n\t ", 0},
		{"hyphenated identifier", "create-lead", 2},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, normalize.CountTokens(tt.in))
		})
	}
}

func TestCountTokens_Deterministic(t *testing.T) {
	t.Parallel()

	text := "A lead is a potential customer record in the CRM."
	first := normalize.CountTokens(text)
	for n := 0; n < 100; n++ {
		assert.Equal(t, first, normalize.CountTokens(text))
	}
}
