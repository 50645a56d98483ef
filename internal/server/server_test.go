package server

import (
	"context"
	"errors"
	"io"
	"net/http"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("OK"))
	})
}

func TestDefaultConfig(t *testing.T) {
	config := DefaultConfig(okHandler())
	assert.Equal(t, "localhost:8787", config.Address)
	assert.Equal(t, 15*time.Second, config.ReadTimeout)
	assert.Zero(t, config.WriteTimeout)
	assert.Equal(t, 1<<20, config.MaxHeaderBytes)
}

func TestNewValidates(t *testing.T) {
	_, err := New(nil)
	assert.Error(t, err)

	_, err = New(&Config{Address: ":0"})
	assert.Error(t, err)

	srv, err := New(DefaultConfig(okHandler()))
	require.NoError(t, err)
	assert.Equal(t, "localhost:8787", srv.Addr())
}

func TestServeAndShutdown(t *testing.T) {
	config := DefaultConfig(okHandler())
	config.Address = "127.0.0.1:0"
	srv, err := New(config)
	require.NoError(t, err)
	require.NoError(t, srv.Listen())

	errc := make(chan error, 1)
	go func() { errc <- srv.Start() }()

	resp, err := http.Get("http://" + srv.Addr())
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	assert.Equal(t, "OK", string(body))

	require.NoError(t, srv.Shutdown(context.Background()))
	assert.ErrorIs(t, <-errc, http.ErrServerClosed)
}

func TestGracefulShutdownOnContext(t *testing.T) {
	config := DefaultConfig(okHandler())
	config.Address = "127.0.0.1:0"
	srv, err := New(config)
	require.NoError(t, err)

	gs := NewGracefulShutdown(srv, &ShutdownConfig{
		Timeout: time.Second,
		Logger:  zaptest.NewLogger(t),
	})

	var hookCalls int32
	gs.RegisterHook(func(ctx context.Context) error {
		atomic.AddInt32(&hookCalls, 1)
		return nil
	})
	gs.RegisterHook(func(ctx context.Context) error {
		atomic.AddInt32(&hookCalls, 1)
		return errors.New("close storage")
	})

	ctx, cancel := context.WithCancel(context.Background())
	errc := make(chan error, 1)
	go func() { errc <- gs.Run(ctx) }()

	require.Eventually(t, func() bool {
		resp, err := http.Get("http://" + srv.Addr())
		if err != nil {
			return false
		}
		resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 2*time.Second, 10*time.Millisecond)

	cancel()
	select {
	case err := <-errc:
		assert.NoError(t, err)
	case <-time.After(3 * time.Second):
		t.Fatal("server did not shut down")
	}

	assert.NoError(t, gs.Wait())
	assert.Equal(t, int32(2), atomic.LoadInt32(&hookCalls))

	// Shutdown is idempotent.
	assert.NoError(t, gs.Shutdown())
	assert.Equal(t, int32(2), atomic.LoadInt32(&hookCalls))
}

func TestGracefulShutdownListenError(t *testing.T) {
	srv, err := New(&Config{Address: "256.0.0.1:99999", Handler: okHandler()})
	require.NoError(t, err)

	gs := NewGracefulShutdown(srv, nil)
	assert.Error(t, gs.Run(context.Background()))
}
