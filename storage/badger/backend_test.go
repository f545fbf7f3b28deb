package badger

import (
	"testing"

	"github.com/dgraph-io/badger/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenBackend_InMemory(t *testing.T) {
	backend, err := OpenBackend("", true)
	require.NoError(t, err)
	require.NotNil(t, backend)
	defer backend.Close()

	assert.False(t, backend.IsClosed())
}

func TestOpenBackend_FileSystem(t *testing.T) {
	tmpDir := t.TempDir()
	backend, err := OpenBackend(tmpDir, false)
	require.NoError(t, err)
	require.NotNil(t, backend)
	defer backend.Close()

	assert.False(t, backend.IsClosed())
}

func TestBackendClose(t *testing.T) {
	backend, err := OpenBackend("", true)
	require.NoError(t, err)
	require.NotNil(t, backend)

	assert.False(t, backend.IsClosed())

	err = backend.Close()
	require.NoError(t, err)

	assert.True(t, backend.IsClosed())
}

func TestActiveGeneration_EmptyStore(t *testing.T) {
	backend, err := OpenBackend("", true)
	require.NoError(t, err)
	defer backend.Close()

	err = backend.WithTx(func(tx *badger.Txn) error {
		gen, err := activeGeneration(tx)
		require.NoError(t, err)
		assert.Empty(t, gen)
		return nil
	}, false)
	require.NoError(t, err)
}

func TestDeletePrefixes_NoPrefixes(t *testing.T) {
	backend, err := OpenBackend("", true)
	require.NoError(t, err)
	defer backend.Close()

	assert.NoError(t, backend.DeletePrefixes())
}

func TestDeletePrefixes_RemovesOnlyMatchingKeys(t *testing.T) {
	backend, err := OpenBackend("", true)
	require.NoError(t, err)
	defer backend.Close()

	err = backend.WithTx(func(tx *badger.Txn) error {
		require.NoError(t, tx.Set([]byte("old:a"), []byte("1")))
		require.NoError(t, tx.Set([]byte("old:b"), []byte("2")))
		require.NoError(t, tx.Set([]byte("new:a"), []byte("3")))
		return tx.Commit()
	}, true)
	require.NoError(t, err)

	require.NoError(t, backend.DeletePrefixes([]byte("old:")))

	err = backend.WithTx(func(tx *badger.Txn) error {
		_, err := tx.Get([]byte("old:a"))
		assert.ErrorIs(t, err, badger.ErrKeyNotFound)
		_, err = tx.Get([]byte("new:a"))
		assert.NoError(t, err)
		return nil
	}, false)
	require.NoError(t, err)
}
