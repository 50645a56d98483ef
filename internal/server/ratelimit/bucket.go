package ratelimit

import (
	"context"
	"errors"
	"math"
	"sync"
	"time"
)

// Bucket is an in-memory token bucket per key. Each bucket holds up to
// Limit tokens and refills continuously at Limit tokens per Window.
type Bucket struct {
	limit  int
	window time.Duration
	now    func() time.Time

	mu      sync.Mutex
	buckets map[string]*bucket

	stop     chan struct{}
	stopOnce sync.Once
}

type bucket struct {
	tokens float64
	last   time.Time
}

// BucketConfig configures a Bucket.
type BucketConfig struct {
	Limit  int
	Window time.Duration
	// CleanupInterval controls how often idle buckets are dropped. Zero
	// disables the cleanup goroutine.
	CleanupInterval time.Duration
}

// NewBucket creates a token bucket limiter.
func NewBucket(cfg BucketConfig) (*Bucket, error) {
	if cfg.Limit <= 0 {
		return nil, errors.New("limit must be greater than 0")
	}
	if cfg.Window <= 0 {
		return nil, errors.New("window must be greater than 0")
	}

	b := &Bucket{
		limit:   cfg.Limit,
		window:  cfg.Window,
		now:     time.Now,
		buckets: make(map[string]*bucket),
		stop:    make(chan struct{}),
	}
	if cfg.CleanupInterval > 0 {
		go b.cleanupLoop(cfg.CleanupInterval)
	}
	return b, nil
}

// Allow takes one token from key's bucket.
func (b *Bucket) Allow(_ context.Context, key string) (Info, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	now := b.now()
	bk, ok := b.buckets[key]
	if !ok {
		bk = &bucket{tokens: float64(b.limit), last: now}
		b.buckets[key] = bk
	}

	rate := float64(b.limit) / b.window.Seconds()
	if elapsed := now.Sub(bk.last).Seconds(); elapsed > 0 {
		bk.tokens = math.Min(float64(b.limit), bk.tokens+elapsed*rate)
		bk.last = now
	}

	info := Info{Limit: b.limit}
	if bk.tokens >= 1 {
		bk.tokens--
		info.Allowed = true
	}
	info.Remaining = int(bk.tokens)

	// Time until the bucket is full again.
	missing := float64(b.limit) - bk.tokens
	info.ResetAt = now.Add(time.Duration(missing / rate * float64(time.Second)))
	return info, nil
}

// Len reports how many keys are tracked.
func (b *Bucket) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.buckets)
}

func (b *Bucket) cleanupLoop(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			b.cleanup()
		case <-b.stop:
			return
		}
	}
}

// cleanup drops buckets that have been idle long enough to be full.
func (b *Bucket) cleanup() {
	b.mu.Lock()
	defer b.mu.Unlock()

	now := b.now()
	for key, bk := range b.buckets {
		if now.Sub(bk.last) > b.window {
			delete(b.buckets, key)
		}
	}
}

// Close stops the cleanup goroutine.
func (b *Bucket) Close() error {
	b.stopOnce.Do(func() { close(b.stop) })
	return nil
}
