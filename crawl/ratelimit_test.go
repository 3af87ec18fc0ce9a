package crawl_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/docgraph/docgraph/crawl"
)

func TestHostLimiter_Wait(t *testing.T) {
	t.Parallel()

	t.Run("allows requests within the limit", func(t *testing.T) {
		t.Parallel()
		l := crawl.NewHostLimiter(1000)

		for n := 0; n < 5; n++ {
			require.NoError(t, l.Wait(context.Background(), "support.example.com"))
		}
	})

	t.Run("hosts are limited independently", func(t *testing.T) {
		t.Parallel()
		l := crawl.NewHostLimiter(1000)

		require.NoError(t, l.Wait(context.Background(), "a.example.com"))
		require.NoError(t, l.Wait(context.Background(), "b.example.com"))
	})

	t.Run("canceled context aborts the wait", func(t *testing.T) {
		t.Parallel()
		l := crawl.NewHostLimiter(0.001)

		// Exhaust the burst so the next wait would block for a long time.
		require.NoError(t, l.Wait(context.Background(), "slow.example.com"))

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
		defer cancel()
		err := l.Wait(ctx, "slow.example.com")
		assert.Error(t, err)
	})
}
