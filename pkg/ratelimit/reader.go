// Package ratelimit throttles disk reads with a token bucket so that
// background hashing does not saturate I/O on a machine in active use.
package ratelimit

import (
	"context"
	"io"
	"sync"
	"time"
)

// Limiter enforces a shared bytes-per-second budget across every reader
// wrapped with it
type Limiter struct {
	rate int64

	mu     sync.Mutex
	tokens int64
	burst  int64
	last   time.Time
}

// NewLimiter creates a limiter allowing bytesPerSecond of sustained
// throughput. A non-positive rate returns nil, which disables limiting.
func NewLimiter(bytesPerSecond int64) *Limiter {
	if bytesPerSecond <= 0 {
		return nil
	}

	// One second of burst, with a 64 KiB floor so small chunk sizes
	// still make progress
	burst := bytesPerSecond
	if burst < 65536 {
		burst = 65536
	}

	return &Limiter{
		rate:   bytesPerSecond,
		tokens: burst,
		burst:  burst,
		last:   time.Now(),
	}
}

// Wrap returns a reader throttled by the limiter. A nil limiter returns
// src unchanged.
func (l *Limiter) Wrap(ctx context.Context, src io.Reader) io.Reader {
	if l == nil {
		return src
	}
	return &reader{src: src, limiter: l, ctx: ctx}
}

type reader struct {
	src     io.Reader
	limiter *Limiter
	ctx     context.Context
}

// Read blocks until the bucket holds enough tokens for the chunk, then
// reads and charges the bytes actually delivered
func (r *reader) Read(p []byte) (int, error) {
	select {
	case <-r.ctx.Done():
		return 0, r.ctx.Err()
	default:
	}

	want := int64(len(p))
	if want > r.limiter.burst {
		want = r.limiter.burst
	}
	r.limiter.wait(want)

	n, err := r.src.Read(p[:want])
	if n > 0 {
		r.limiter.charge(int64(n))
	}
	return n, err
}

// wait blocks until needed tokens are available
func (l *Limiter) wait(needed int64) {
	for {
		l.mu.Lock()
		l.refill()
		if l.tokens >= needed {
			l.mu.Unlock()
			return
		}
		deficit := needed - l.tokens
		l.mu.Unlock()

		sleep := time.Duration(float64(deficit) / float64(l.rate) * float64(time.Second))
		if sleep < time.Millisecond {
			sleep = time.Millisecond
		}
		time.Sleep(sleep)
	}
}

// refill credits tokens for the elapsed time, capped at the burst size.
// Caller holds the lock.
func (l *Limiter) refill() {
	now := time.Now()
	credit := int64(float64(now.Sub(l.last)) / float64(time.Second) * float64(l.rate))
	if credit > 0 {
		l.tokens += credit
		if l.tokens > l.burst {
			l.tokens = l.burst
		}
		l.last = now
	}
}

// charge debits tokens for bytes actually read
func (l *Limiter) charge(n int64) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.tokens -= n
	if l.tokens < 0 {
		l.tokens = 0
	}
}
