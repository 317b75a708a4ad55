package jsonfile_test

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Zeal1001/casement/internal/infrastructure/persistence/jsonfile"
)

func TestStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "values.json")
	store := jsonfile.NewStore[[]string](path)

	require.NoError(t, store.Save([]string{"one", "two"}))

	got, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, []string{"one", "two"}, got)
}

func TestStoreMissingFile(t *testing.T) {
	store := jsonfile.NewStore[[]string](filepath.Join(t.TempDir(), "absent.json"))

	_, err := store.Load()
	require.Error(t, err)
	assert.True(t, errors.Is(err, fs.ErrNotExist))
}

func TestStoreCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	_, err := jsonfile.NewStore[[]string](path).Load()
	require.Error(t, err)
	assert.False(t, errors.Is(err, fs.ErrNotExist))
}

func TestStoreWritesPrettyJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pretty.json")
	require.NoError(t, jsonfile.NewStore[[]string](path).Save([]string{"a", "b"}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "[\n  \"a\",\n  \"b\"\n]", string(data))
}

func TestStoreCreatesParentDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "deeper", "values.json")
	require.NoError(t, jsonfile.NewStore[int](path).Save(42))

	got, err := jsonfile.NewStore[int](path).Load()
	require.NoError(t, err)
	assert.Equal(t, 42, got)
}

func TestStoreLeavesNoTempFileBehind(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, jsonfile.NewStore[[]string](filepath.Join(dir, "data.json")).Save([]string{"x"}))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "data.json", entries[0].Name())
}
