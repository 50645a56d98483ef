// Package ratelimit bounds how many API requests one client may make per
// window.
package ratelimit

import (
	"context"
	"time"
)

// Limiter decides whether the request identified by key may proceed.
type Limiter interface {
	Allow(ctx context.Context, key string) (Info, error)
}

// Info is the limiter state after a call to Allow.
type Info struct {
	Limit     int
	Remaining int
	ResetAt   time.Time
	Allowed   bool
}
