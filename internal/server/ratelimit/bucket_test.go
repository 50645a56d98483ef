package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct{ t time.Time }

func (c *fakeClock) now() time.Time          { return c.t }
func (c *fakeClock) advance(d time.Duration) { c.t = c.t.Add(d) }

func newTestBucket(t *testing.T, limit int, window time.Duration) (*Bucket, *fakeClock) {
	t.Helper()
	b, err := NewBucket(BucketConfig{Limit: limit, Window: window})
	require.NoError(t, err)
	clock := &fakeClock{t: time.Unix(1_700_000_000, 0)}
	b.now = clock.now
	t.Cleanup(func() { _ = b.Close() })
	return b, clock
}

func TestNewBucketValidation(t *testing.T) {
	_, err := NewBucket(BucketConfig{Limit: 0, Window: time.Second})
	assert.Error(t, err)
	_, err = NewBucket(BucketConfig{Limit: 1, Window: 0})
	assert.Error(t, err)
}

func TestBucketAllowsUpToLimit(t *testing.T) {
	b, _ := newTestBucket(t, 3, time.Minute)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		info, err := b.Allow(ctx, "client")
		require.NoError(t, err)
		assert.True(t, info.Allowed, "request %d", i)
		assert.Equal(t, 3, info.Limit)
		assert.Equal(t, 2-i, info.Remaining)
	}

	info, err := b.Allow(ctx, "client")
	require.NoError(t, err)
	assert.False(t, info.Allowed)
	assert.Equal(t, 0, info.Remaining)
}

func TestBucketKeysAreIndependent(t *testing.T) {
	b, _ := newTestBucket(t, 1, time.Minute)
	ctx := context.Background()

	info, _ := b.Allow(ctx, "a")
	assert.True(t, info.Allowed)
	info, _ = b.Allow(ctx, "a")
	assert.False(t, info.Allowed)
	info, _ = b.Allow(ctx, "b")
	assert.True(t, info.Allowed)
	assert.Equal(t, 2, b.Len())
}

func TestBucketRefills(t *testing.T) {
	b, clock := newTestBucket(t, 2, time.Minute)
	ctx := context.Background()

	_, _ = b.Allow(ctx, "client")
	_, _ = b.Allow(ctx, "client")
	info, _ := b.Allow(ctx, "client")
	require.False(t, info.Allowed)

	// Half a window refills one token.
	clock.advance(30 * time.Second)
	info, _ = b.Allow(ctx, "client")
	assert.True(t, info.Allowed)
	info, _ = b.Allow(ctx, "client")
	assert.False(t, info.Allowed)
}

func TestBucketResetAt(t *testing.T) {
	b, clock := newTestBucket(t, 2, time.Minute)
	info, _ := b.Allow(context.Background(), "client")
	assert.Equal(t, clock.t.Add(30*time.Second), info.ResetAt)
}

func TestBucketCleanup(t *testing.T) {
	b, clock := newTestBucket(t, 1, time.Minute)
	_, _ = b.Allow(context.Background(), "client")
	require.Equal(t, 1, b.Len())

	clock.advance(2 * time.Minute)
	b.cleanup()
	assert.Equal(t, 0, b.Len())
}

func TestBucketCloseIsIdempotent(t *testing.T) {
	b, err := NewBucket(BucketConfig{Limit: 1, Window: time.Second, CleanupInterval: time.Millisecond})
	require.NoError(t, err)
	assert.NoError(t, b.Close())
	assert.NoError(t, b.Close())
}
