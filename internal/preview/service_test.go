package preview

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ai-stack/stackbuilder/internal/stack"
)

func newService(t *testing.T, opts ...Option) *Service {
	t.Helper()
	svc, err := NewService(opts...)
	require.NoError(t, err)
	return svc
}

func TestPreviewCorrectsStack(t *testing.T) {
	svc := newService(t)

	s := stack.Default()
	s.Database = "sqlite"
	res, err := svc.Preview(s)
	require.NoError(t, err)

	assert.True(t, res.Success)
	assert.Equal(t, "postgresql", res.Stack.Database)
	require.Len(t, res.Changes, 1)
	assert.Equal(t, res.Stack.Fingerprint(), res.Fingerprint)
	assert.Greater(t, res.Summary.Files, 0)
	assert.NotNil(t, res.Tree)
}

func TestPreviewCachesByCorrectedStack(t *testing.T) {
	svc := newService(t, WithCacheSize(2))

	sqlite := stack.Default()
	sqlite.Database = "sqlite"

	first, err := svc.Preview(stack.Default())
	require.NoError(t, err)
	second, err := svc.Preview(sqlite)
	require.NoError(t, err)

	// Both correct to the same stack and share one cache entry.
	assert.Equal(t, 1, svc.Cached())
	assert.Same(t, first.Tree, second.Tree)

	for _, name := range []string{"a", "b", "c"} {
		s := stack.Default()
		s.ProjectName = name
		_, err := svc.Preview(s)
		require.NoError(t, err)
	}
	assert.Equal(t, 2, svc.Cached())
}

func TestPreviewFile(t *testing.T) {
	svc := newService(t)

	content, err := svc.File(stack.Default(), "/src/app/page.tsx")
	require.NoError(t, err)
	assert.Contains(t, content, "Chat")

	_, err = svc.File(stack.Default(), "src")
	assert.Error(t, err)
	_, err = svc.File(stack.Default(), "missing.txt")
	assert.Error(t, err)
	_, err = svc.File(stack.Default(), "../etc/passwd")
	assert.Error(t, err)
}

func TestDebouncerCoalesces(t *testing.T) {
	var calls int32
	var mu sync.Mutex
	var got stack.State

	d := NewDebouncer(30*time.Millisecond, func(s stack.State) {
		atomic.AddInt32(&calls, 1)
		mu.Lock()
		got = s
		mu.Unlock()
	})
	defer d.Stop()

	for _, name := range []string{"one", "two", "three"} {
		s := stack.Default()
		s.ProjectName = name
		d.Trigger(s)
		time.Sleep(5 * time.Millisecond)
	}
	assert.True(t, d.Pending())

	require.Eventually(t, func() bool { return atomic.LoadInt32(&calls) == 1 }, time.Second, 5*time.Millisecond)
	time.Sleep(60 * time.Millisecond)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
	assert.False(t, d.Pending())

	mu.Lock()
	assert.Equal(t, "three", got.ProjectName)
	mu.Unlock()
}

func TestDebouncerStop(t *testing.T) {
	var calls int32
	d := NewDebouncer(20*time.Millisecond, func(stack.State) { atomic.AddInt32(&calls, 1) })

	d.Trigger(stack.Default())
	d.Stop()
	d.Trigger(stack.Default())

	time.Sleep(60 * time.Millisecond)
	assert.Equal(t, int32(0), atomic.LoadInt32(&calls))
	assert.False(t, d.Pending())
}

func TestDebouncerDefaultWindow(t *testing.T) {
	d := NewDebouncer(0, func(stack.State) {})
	assert.Equal(t, DefaultDebounce, d.window)
}

func TestTracker(t *testing.T) {
	var tr Tracker

	tok := tr.Begin("a")
	assert.True(t, tr.IsCurrent(tok))
	assert.Equal(t, "a", tok.Fingerprint())

	// A newer state arrives while "a" is generating.
	tr.Observe("b")
	assert.False(t, tr.IsCurrent(tok))

	// The state returns to "a", but a newer request supersedes the old one.
	tr.Observe("a")
	assert.True(t, tr.IsCurrent(tok))
	next := tr.Begin("a")
	assert.False(t, tr.IsCurrent(tok))
	assert.True(t, tr.IsCurrent(next))
}
