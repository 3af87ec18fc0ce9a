package goquery_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/docgraph/docgraph/goquery"
)

func TestMarker_Matches(t *testing.T) {
	t.Parallel()

	markers := goquery.DefaultMarkers()
	byKind := make(map[string]goquery.Marker)
	for _, m := range markers {
		byKind[m.Kind] = m
	}

	t.Run("multi-word phrase matches as substring", func(t *testing.T) {
		t.Parallel()
		m := byKind["In this article"]
		assert.True(t, m.Matches("In this article:"))
		assert.True(t, m.Matches("What you'll find in this article"))
		assert.False(t, m.Matches("Articles about this"))
	})

	t.Run("single word matches as whole token", func(t *testing.T) {
		t.Parallel()
		m := byKind["Example"]
		assert.True(t, m.Matches("Example"))
		assert.True(t, m.Matches("Examples:"))
		assert.False(t, m.Matches("Counterexamples"))
	})

	t.Run("matching is case-insensitive", func(t *testing.T) {
		t.Parallel()
		m := byKind["Warning"]
		assert.True(t, m.Matches("WARNING"))
		assert.True(t, m.Matches("warning!"))
	})

	t.Run("russian phrases match", func(t *testing.T) {
		t.Parallel()
		assert.True(t, byKind["In this article"].Matches("В этой статье"))
		assert.True(t, byKind["Example"].Matches("Пример:"))
		assert.True(t, byKind["Important"].Matches("Важно!"))
	})

	t.Run("api marker catches endpoint headings", func(t *testing.T) {
		t.Parallel()
		m := byKind["API"]
		assert.True(t, m.Matches("API"))
		assert.True(t, m.Matches("Available endpoints"))
		assert.False(t, m.Matches("Rapid setup"))
	})
}
