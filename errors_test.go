package docgraph_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/docgraph/docgraph"
)

func TestErrorCode(t *testing.T) {
	t.Parallel()

	t.Run("application error", func(t *testing.T) {
		t.Parallel()
		err := docgraph.Errorf(docgraph.ENOTFOUND, "document not found")
		assert.Equal(t, docgraph.ENOTFOUND, docgraph.ErrorCode(err))
	})

	t.Run("wrapped application error", func(t *testing.T) {
		t.Parallel()
		err := fmt.Errorf("upsert: %w", docgraph.Errorf(docgraph.EINVALID, "document ID required"))
		assert.Equal(t, docgraph.EINVALID, docgraph.ErrorCode(err))
	})

	t.Run("non-application error maps to internal", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, docgraph.EINTERNAL, docgraph.ErrorCode(errors.New("boom")))
	})

	t.Run("nil error", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "", docgraph.ErrorCode(nil))
	})
}

func TestErrorMessage(t *testing.T) {
	t.Parallel()

	t.Run("application error message", func(t *testing.T) {
		t.Parallel()
		err := docgraph.Errorf(docgraph.EINVALID, "invalid seed URL %q", "::bad::")
		assert.Equal(t, `invalid seed URL "::bad::"`, docgraph.ErrorMessage(err))
	})

	t.Run("non-application error message is hidden", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "Internal error.", docgraph.ErrorMessage(errors.New("secret details")))
	})
}
