package filestore_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"fleetops/internal/adapters/out/filestore"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalStore_Put(t *testing.T) {
	store, err := filestore.NewLocalStore(t.TempDir())
	require.NoError(t, err)

	data := []byte{0x89, 'P', 'N', 'G'}
	stored, err := store.Put(context.Background(), "uploads/signatures/sig.png", data)

	require.NoError(t, err)
	assert.Equal(t, int64(len(data)), stored.Size)
	require.NoError(t, stored.ID.Validate())

	onDisk, err := os.ReadFile(stored.Path)
	require.NoError(t, err)
	assert.Equal(t, data, onDisk)
	assert.Equal(t, "sig.png", filepath.Base(stored.Path))
}

func TestLocalStore_Put_RejectsEscapingNames(t *testing.T) {
	base := t.TempDir()
	store, err := filestore.NewLocalStore(base)
	require.NoError(t, err)

	_, err = store.Put(context.Background(), "../outside.png", []byte("x"))
	require.Error(t, err)

	_, err = store.Put(context.Background(), "/etc/passwd", []byte("x"))
	require.Error(t, err)

	_, err = store.Put(context.Background(), "", []byte("x"))
	require.Error(t, err)
}

func TestNewLocalStore_RequiresBaseDir(t *testing.T) {
	_, err := filestore.NewLocalStore("")
	require.Error(t, err)
}
