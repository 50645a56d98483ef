package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib" // PostgreSQL driver
	_ "github.com/mattn/go-sqlite3"    // SQLite driver
)

// DefaultTableName is the table used for saved stacks.
const DefaultTableName = "saved_stacks"

// SQL is a Slot stored in a single key/value table. The statements use
// $n placeholders and ON CONFLICT upserts, which both PostgreSQL and
// SQLite accept.
type SQL struct {
	db        *sql.DB
	tableName string
	owned     bool
}

// DriverForDSN picks the database/sql driver name for a DSN.
func DriverForDSN(dsn string) (string, error) {
	switch {
	case strings.HasPrefix(dsn, "postgres://"), strings.HasPrefix(dsn, "postgresql://"):
		return "pgx", nil
	case strings.HasPrefix(dsn, "sqlite://"):
		return "sqlite3", nil
	case strings.HasPrefix(dsn, "file:"), dsn == ":memory:", strings.HasSuffix(dsn, ".db"), strings.HasSuffix(dsn, ".sqlite"):
		return "sqlite3", nil
	case dsn == "":
		return "", errors.New("storage: sql driver needs a DSN")
	}
	return "", fmt.Errorf("storage: cannot infer database driver from DSN %q", dsn)
}

// OpenSQL opens the database named by dsn and ensures the table exists.
func OpenSQL(ctx context.Context, dsn string) (*SQL, error) {
	driver, err := DriverForDSN(dsn)
	if err != nil {
		return nil, err
	}
	if driver == "sqlite3" {
		dsn = strings.TrimPrefix(dsn, "sqlite://")
	}

	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	store, err := NewSQL(ctx, db, DefaultTableName)
	if err != nil {
		db.Close()
		return nil, err
	}
	store.owned = true
	return store, nil
}

// NewSQL wraps an open database. The caller keeps ownership of db.
func NewSQL(ctx context.Context, db *sql.DB, tableName string) (*SQL, error) {
	if tableName == "" {
		tableName = DefaultTableName
	}
	s := &SQL{db: db, tableName: tableName}
	if err := s.createTable(ctx); err != nil {
		return nil, fmt.Errorf("failed to create %s table: %w", tableName, err)
	}
	return s, nil
}

func (s *SQL) createTable(ctx context.Context) error {
	query := fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %s (
			slot_key VARCHAR(255) PRIMARY KEY,
			value TEXT NOT NULL,
			updated_at TIMESTAMP NOT NULL
		)
	`, s.tableName)

	_, err := s.db.ExecContext(ctx, query)
	return err
}

// Get retrieves a saved value
func (s *SQL) Get(ctx context.Context, key string) ([]byte, error) {
	query := fmt.Sprintf(`SELECT value FROM %s WHERE slot_key = $1`, s.tableName)

	var value string
	err := s.db.QueryRowContext(ctx, query, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("database query error: %w", err)
	}
	return []byte(value), nil
}

// Set upserts a value
func (s *SQL) Set(ctx context.Context, key string, value []byte) error {
	if err := checkKey(key); err != nil {
		return err
	}

	query := fmt.Sprintf(`
		INSERT INTO %s (slot_key, value, updated_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (slot_key) DO UPDATE SET
			value = EXCLUDED.value,
			updated_at = EXCLUDED.updated_at
	`, s.tableName)

	if _, err := s.db.ExecContext(ctx, query, key, string(value), time.Now().UTC()); err != nil {
		return fmt.Errorf("database insert error: %w", err)
	}
	return nil
}

// Delete removes a value
func (s *SQL) Delete(ctx context.Context, key string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE slot_key = $1`, s.tableName)
	if _, err := s.db.ExecContext(ctx, query, key); err != nil {
		return fmt.Errorf("database delete error: %w", err)
	}
	return nil
}

// Close closes the database if OpenSQL created it.
func (s *SQL) Close() error {
	if s.owned {
		return s.db.Close()
	}
	return nil
}
