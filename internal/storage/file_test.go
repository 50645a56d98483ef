package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFile(t *testing.T) {
	f, err := NewFile(t.TempDir())
	require.NoError(t, err)
	exerciseSlot(t, f)
}

func TestFileLayout(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", ".ai-stack")
	f, err := NewFile(dir)
	require.NoError(t, err)
	assert.Equal(t, dir, f.Dir())

	require.NoError(t, f.Set(context.Background(), "team/alpha", []byte("{}")))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "team%2Falpha.json", entries[0].Name())
}

func TestNewFileRequiresDir(t *testing.T) {
	_, err := NewFile("")
	assert.Error(t, err)
}
