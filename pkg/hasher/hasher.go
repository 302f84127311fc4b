// Package hasher computes content digests for duplicate detection,
// memoizing results by path for the lifetime of one Hasher instance.
package hasher

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"hash"
	"io"
	"os"

	"github.com/zeebo/xxh3"

	"github.com/sdejongh/tidynorris/pkg/ratelimit"
)

// Algorithm selects the digest function
type Algorithm string

const (
	// SHA256 is the default, cryptographic-strength digest
	SHA256 Algorithm = "sha256"
	// XXH3 is a fast non-cryptographic digest, suitable when duplicate
	// candidates have already been narrowed by exact size
	XXH3 Algorithm = "xxh3"
)

// ParseAlgorithm parses an algorithm name, defaulting to SHA256
func ParseAlgorithm(s string) Algorithm {
	if s == string(XXH3) {
		return XXH3
	}
	return SHA256
}

const defaultChunkSize = 65536

// Hasher computes file content digests with per-path memoization.
// The cache is private to one instance and holds no eviction policy;
// one Hasher is expected to serve one scan+analyze flow.
type Hasher struct {
	algorithm Algorithm
	chunkSize int
	cache     map[string]string
	limiter   *ratelimit.Limiter
}

// New creates a Hasher with the given algorithm and chunk size.
// A chunk size below 4 KiB is raised to the default.
func New(algorithm Algorithm, chunkSize int) *Hasher {
	if chunkSize < 4096 {
		chunkSize = defaultChunkSize
	}
	return &Hasher{
		algorithm: algorithm,
		chunkSize: chunkSize,
		cache:     make(map[string]string),
	}
}

// NewDefault creates a SHA-256 Hasher with the default chunk size
func NewDefault() *Hasher {
	return New(SHA256, defaultChunkSize)
}

// Sum returns the content digest of the file at path, reading the file
// in fixed-size chunks. Repeated calls for the same path return the
// cached digest without re-reading the file. A non-nil error means the
// digest is unavailable; the caller must exclude the file from
// duplicate grouping rather than treat it as matching anything.
func (h *Hasher) Sum(ctx context.Context, path string) (string, error) {
	if digest, ok := h.cache[path]; ok {
		return digest, nil
	}

	digest, err := h.compute(ctx, path)
	if err != nil {
		return "", err
	}

	h.cache[path] = digest
	return digest, nil
}

// SetLimiter throttles all subsequent digest reads through the given
// limiter. A nil limiter removes the throttle.
func (h *Hasher) SetLimiter(l *ratelimit.Limiter) {
	h.limiter = l
}

// ClearCache drops all memoized digests
func (h *Hasher) ClearCache() {
	h.cache = make(map[string]string)
}

// CacheSize returns the number of memoized digests
func (h *Hasher) CacheSize() int {
	return len(h.cache)
}

// Algorithm returns the configured digest algorithm
func (h *Hasher) Algorithm() Algorithm {
	return h.algorithm
}

func (h *Hasher) compute(ctx context.Context, path string) (string, error) {
	file, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	digest := h.newDigest()
	buffer := make([]byte, h.chunkSize)
	src := h.limiter.Wrap(ctx, file)

	for {
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		default:
		}

		n, err := src.Read(buffer)
		if n > 0 {
			digest.Write(buffer[:n])
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", fmt.Errorf("failed to read file: %w", err)
		}
	}

	return hex.EncodeToString(digest.Sum(nil)), nil
}

func (h *Hasher) newDigest() hash.Hash {
	if h.algorithm == XXH3 {
		return xxh3.New()
	}
	return sha256.New()
}
