package hasher

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sdejongh/tidynorris/pkg/ratelimit"
)

func writeFile(t *testing.T, dir, name string, content []byte) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, content, 0644))
	return path
}

func TestParseAlgorithm(t *testing.T) {
	assert.Equal(t, XXH3, ParseAlgorithm("xxh3"))
	assert.Equal(t, SHA256, ParseAlgorithm("sha256"))
	assert.Equal(t, SHA256, ParseAlgorithm("anything else"))
}

func TestSumIdenticalContent(t *testing.T) {
	dir := t.TempDir()
	a := writeFile(t, dir, "a.bin", []byte("identical content"))
	b := writeFile(t, dir, "b.bin", []byte("identical content"))
	c := writeFile(t, dir, "c.bin", []byte("different content"))

	for _, algorithm := range []Algorithm{SHA256, XXH3} {
		t.Run(string(algorithm), func(t *testing.T) {
			h := New(algorithm, 8192)
			ctx := context.Background()

			digestA, err := h.Sum(ctx, a)
			require.NoError(t, err)
			digestB, err := h.Sum(ctx, b)
			require.NoError(t, err)
			digestC, err := h.Sum(ctx, c)
			require.NoError(t, err)

			assert.Equal(t, digestA, digestB)
			assert.NotEqual(t, digestA, digestC)
			assert.NotEmpty(t, digestA)
		})
	}
}

func TestSumChunkedReadMatchesWholeFile(t *testing.T) {
	dir := t.TempDir()
	content := make([]byte, 100_000)
	for i := range content {
		content[i] = byte(i % 251)
	}
	path := writeFile(t, dir, "big.bin", content)
	ctx := context.Background()

	small := New(SHA256, 4096)
	large := New(SHA256, 1<<20)

	digestSmall, err := small.Sum(ctx, path)
	require.NoError(t, err)
	digestLarge, err := large.Sum(ctx, path)
	require.NoError(t, err)

	assert.Equal(t, digestSmall, digestLarge)
}

func TestSumMemoizes(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "a.bin", []byte("cache me"))
	ctx := context.Background()

	h := NewDefault()
	first, err := h.Sum(ctx, path)
	require.NoError(t, err)
	assert.Equal(t, 1, h.CacheSize())

	// The cached digest survives even if the file disappears
	require.NoError(t, os.Remove(path))
	second, err := h.Sum(ctx, path)
	require.NoError(t, err)
	assert.Equal(t, first, second)

	h.ClearCache()
	assert.Equal(t, 0, h.CacheSize())
	_, err = h.Sum(ctx, path)
	assert.Error(t, err)
}

func TestSumMissingFile(t *testing.T) {
	h := NewDefault()
	_, err := h.Sum(context.Background(), filepath.Join(t.TempDir(), "absent.bin"))
	assert.Error(t, err)
}

func TestSumCancelledContext(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "a.bin", []byte("content"))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	h := NewDefault()
	_, err := h.Sum(ctx, path)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestSumThrottledReaderSameDigest(t *testing.T) {
	dir := t.TempDir()
	content := make([]byte, 32_768)
	for i := range content {
		content[i] = byte(i)
	}
	path := writeFile(t, dir, "a.bin", content)
	ctx := context.Background()

	plain := NewDefault()
	want, err := plain.Sum(ctx, path)
	require.NoError(t, err)

	throttled := NewDefault()
	throttled.SetLimiter(ratelimit.NewLimiter(1 << 30))
	got, err := throttled.Sum(ctx, path)
	require.NoError(t, err)

	assert.Equal(t, want, got)
}

func TestNewRaisesTinyChunkSize(t *testing.T) {
	h := New(SHA256, 16)
	assert.Equal(t, defaultChunkSize, h.chunkSize)
}
