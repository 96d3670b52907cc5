package storage

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// backends that every test exercises through the shared contract
func openBackends(t *testing.T) map[string]KV {
	t.Helper()

	dir := t.TempDir()
	file, err := NewFile(filepath.Join(dir, "files"))
	require.NoError(t, err)

	sqlite, err := NewSQLite(filepath.Join(dir, "kv.db"))
	require.NoError(t, err)
	t.Cleanup(func() { sqlite.Close() })

	return map[string]KV{
		"memory": NewMemory(),
		"file":   file,
		"sqlite": sqlite,
	}
}

func TestKVRoundTrip(t *testing.T) {
	for name, kv := range openBackends(t) {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, kv.Set("alpha", []byte(`{"n":1}`)))

			got, err := kv.Get("alpha")
			require.NoError(t, err)
			assert.Equal(t, []byte(`{"n":1}`), got)

			// overwrite
			require.NoError(t, kv.Set("alpha", []byte(`{"n":2}`)))
			got, err = kv.Get("alpha")
			require.NoError(t, err)
			assert.Equal(t, []byte(`{"n":2}`), got)
		})
	}
}

func TestKVMissingKey(t *testing.T) {
	for name, kv := range openBackends(t) {
		t.Run(name, func(t *testing.T) {
			_, err := kv.Get("missing")
			assert.ErrorIs(t, err, ErrNotFound)
		})
	}
}

func TestKVDelete(t *testing.T) {
	for name, kv := range openBackends(t) {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, kv.Set("gone", []byte("x")))
			require.NoError(t, kv.Delete("gone"))

			_, err := kv.Get("gone")
			assert.ErrorIs(t, err, ErrNotFound)

			// deleting twice is a no-op
			assert.NoError(t, kv.Delete("gone"))
		})
	}
}

func TestOpenUnknownBackend(t *testing.T) {
	_, err := Open("etcd", "")
	assert.Error(t, err)
}

func TestOpenSelectsBackend(t *testing.T) {
	kv, err := Open(BackendMemory, "")
	require.NoError(t, err)
	_, ok := kv.(*Memory)
	assert.True(t, ok)
}
