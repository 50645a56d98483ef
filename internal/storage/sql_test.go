package storage

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestDB(t *testing.T) *sql.DB {
	db, err := sql.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	// Each pooled connection to :memory: is a separate database.
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestSQLWithSQLite(t *testing.T) {
	db := setupTestDB(t)
	store, err := NewSQL(context.Background(), db, "")
	require.NoError(t, err)

	var tableName string
	err = db.QueryRow("SELECT name FROM sqlite_master WHERE type='table' AND name='saved_stacks'").Scan(&tableName)
	require.NoError(t, err)
	assert.Equal(t, "saved_stacks", tableName)

	exerciseSlot(t, store)
	assert.NoError(t, store.Close())
}

func TestSQLCustomTable(t *testing.T) {
	db := setupTestDB(t)
	store, err := NewSQL(context.Background(), db, "team_stacks")
	require.NoError(t, err)

	require.NoError(t, store.Set(context.Background(), "a", []byte("1")))
	var count int
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM team_stacks").Scan(&count))
	assert.Equal(t, 1, count)
}

func TestSQLWithMock(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec("CREATE TABLE IF NOT EXISTS saved_stacks").
		WillReturnResult(sqlmock.NewResult(0, 0))

	store, err := NewSQL(context.Background(), db, "")
	require.NoError(t, err)

	mock.ExpectExec("INSERT INTO saved_stacks").
		WithArgs("slot", `{"orm":"prisma"}`, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))
	require.NoError(t, store.Set(context.Background(), "slot", []byte(`{"orm":"prisma"}`)))

	mock.ExpectQuery(`SELECT value FROM saved_stacks WHERE slot_key = \$1`).
		WithArgs("slot").
		WillReturnRows(sqlmock.NewRows([]string{"value"}).AddRow(`{"orm":"prisma"}`))
	got, err := store.Get(context.Background(), "slot")
	require.NoError(t, err)
	assert.Equal(t, `{"orm":"prisma"}`, string(got))

	mock.ExpectQuery(`SELECT value FROM saved_stacks`).
		WithArgs("gone").
		WillReturnRows(sqlmock.NewRows([]string{"value"}))
	_, err = store.Get(context.Background(), "gone")
	assert.ErrorIs(t, err, ErrNotFound)

	mock.ExpectExec("DELETE FROM saved_stacks").
		WithArgs("slot").
		WillReturnError(errors.New("connection reset"))
	err = store.Delete(context.Background(), "slot")
	assert.ErrorContains(t, err, "connection reset")

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLCreateTableError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec("CREATE TABLE").WillReturnError(errors.New("permission denied"))
	_, err = NewSQL(context.Background(), db, "")
	assert.ErrorContains(t, err, "permission denied")
}

func TestDriverForDSN(t *testing.T) {
	tests := []struct {
		dsn     string
		want    string
		wantErr bool
	}{
		{"postgres://localhost:5432/stacks", "pgx", false},
		{"postgresql://u:p@db/stacks?sslmode=disable", "pgx", false},
		{"sqlite://stacks.db", "sqlite3", false},
		{"file:stacks.db?cache=shared", "sqlite3", false},
		{":memory:", "sqlite3", false},
		{"./data/stacks.db", "sqlite3", false},
		{"", "", true},
		{"mysql://localhost", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.dsn, func(t *testing.T) {
			got, err := DriverForDSN(tt.dsn)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
