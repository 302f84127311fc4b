package ratelimit

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLimiter(t *testing.T) {
	t.Run("PositiveRate", func(t *testing.T) {
		assert.NotNil(t, NewLimiter(1024*1024))
	})

	t.Run("NonPositiveRateDisablesLimiting", func(t *testing.T) {
		assert.Nil(t, NewLimiter(0))
		assert.Nil(t, NewLimiter(-1))
	})
}

func TestWrapNilLimiterPassthrough(t *testing.T) {
	var l *Limiter
	src := strings.NewReader("data")
	assert.Equal(t, io.Reader(src), l.Wrap(context.Background(), src))
}

func TestThrottledReadPreservesContent(t *testing.T) {
	content := bytes.Repeat([]byte("abcdefgh"), 4096)
	limiter := NewLimiter(1 << 30)

	r := limiter.Wrap(context.Background(), bytes.NewReader(content))
	got, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, content, got)
}

func TestThrottledReadRespectsRate(t *testing.T) {
	// 128 KiB at 64 KiB/s with a 64 KiB initial burst should take
	// roughly one second; anything near-instant means no throttling
	content := make([]byte, 128*1024)
	limiter := NewLimiter(64 * 1024)

	start := time.Now()
	r := limiter.Wrap(context.Background(), bytes.NewReader(content))
	_, err := io.ReadAll(r)
	require.NoError(t, err)

	assert.GreaterOrEqual(t, time.Since(start), 500*time.Millisecond)
}

func TestThrottledReadCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	limiter := NewLimiter(1024)
	r := limiter.Wrap(ctx, strings.NewReader("data"))

	_, err := io.ReadAll(r)
	assert.ErrorIs(t, err, context.Canceled)
}
