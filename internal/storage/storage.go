// Package storage persists saved stack configurations under string keys.
package storage

import (
	"context"
	"errors"
	"fmt"
)

// ErrNotFound is returned when a key has never been saved or was deleted.
var ErrNotFound = errors.New("storage: slot not found")

// Slot is a key/value store for saved configurations.
type Slot interface {
	// Get returns the stored bytes or ErrNotFound.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores value under key, replacing any previous value.
	Set(ctx context.Context, key string, value []byte) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
}

// Driver names accepted by Open.
const (
	DriverMemory = "memory"
	DriverFile   = "file"
	DriverRedis  = "redis"
	DriverSQL    = "sql"
)

// Config selects and configures a backend.
type Config struct {
	Driver string

	// Dir is used by the file driver.
	Dir string

	// Redis settings.
	RedisAddr     string
	RedisPassword string
	RedisDB       int

	// DSN is used by the sql driver. sqlite DSNs start with "file:" or
	// end in ".db"; postgres DSNs start with "postgres://" or "postgresql://".
	DSN string
}

// Open builds the backend named by cfg.Driver. The returned close function
// releases connections and is never nil.
func Open(ctx context.Context, cfg Config) (Slot, func() error, error) {
	noop := func() error { return nil }

	switch cfg.Driver {
	case "", DriverMemory:
		return NewMemory(), noop, nil
	case DriverFile:
		fs, err := NewFile(cfg.Dir)
		if err != nil {
			return nil, noop, err
		}
		return fs, noop, nil
	case DriverRedis:
		rs, err := NewRedis(ctx, RedisConfig{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
			Prefix:   DefaultRedisPrefix,
		})
		if err != nil {
			return nil, noop, err
		}
		return rs, rs.Close, nil
	case DriverSQL:
		ss, err := OpenSQL(ctx, cfg.DSN)
		if err != nil {
			return nil, noop, err
		}
		return ss, ss.Close, nil
	default:
		return nil, noop, fmt.Errorf("storage: unknown driver %q", cfg.Driver)
	}
}

func checkKey(key string) error {
	if key == "" {
		return errors.New("storage: empty key")
	}
	return nil
}
