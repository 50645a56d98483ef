package middleware

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/ai-stack/stackbuilder/internal/server/response"
)

// Timeout cancels the request context after d and answers 504 if the
// handler has not written anything by then. Writes after the deadline are
// dropped.
func Timeout(d time.Duration) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, cancel := context.WithTimeout(r.Context(), d)
			defer cancel()

			done := make(chan struct{})
			panicChan := make(chan interface{}, 1)
			tw := &timeoutWriter{w: w}

			go func() {
				defer func() {
					if p := recover(); p != nil {
						panicChan <- p
					}
				}()
				next.ServeHTTP(tw, r.WithContext(ctx))
				close(done)
			}()

			select {
			case <-done:
			case p := <-panicChan:
				panic(p)
			case <-ctx.Done():
				if tw.timeout() && errors.Is(ctx.Err(), context.DeadlineExceeded) {
					response.RenderError(w, http.StatusGatewayTimeout, errors.New("request timeout"))
				}
			}
		})
	}
}

// timeoutWriter wraps http.ResponseWriter to prevent writes after timeout
type timeoutWriter struct {
	w       http.ResponseWriter
	mu      sync.Mutex
	done    bool
	written bool
}

func (tw *timeoutWriter) Write(b []byte) (int, error) {
	tw.mu.Lock()
	defer tw.mu.Unlock()
	if tw.done {
		return 0, http.ErrHandlerTimeout
	}
	tw.written = true
	return tw.w.Write(b)
}

func (tw *timeoutWriter) WriteHeader(code int) {
	tw.mu.Lock()
	defer tw.mu.Unlock()
	if tw.done {
		return
	}
	tw.written = true
	tw.w.WriteHeader(code)
}

func (tw *timeoutWriter) Header() http.Header {
	return tw.w.Header()
}

// timeout marks the writer closed and reports whether the caller may still
// write the timeout response.
func (tw *timeoutWriter) timeout() bool {
	tw.mu.Lock()
	defer tw.mu.Unlock()
	tw.done = true
	return !tw.written
}
