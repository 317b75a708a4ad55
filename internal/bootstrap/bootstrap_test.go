package bootstrap

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Zeal1001/casement/internal/infrastructure/config"
)

func TestRunParallelInit(t *testing.T) {
	home := t.TempDir()
	t.Setenv("XDG_DATA_HOME", filepath.Join(home, "share"))
	t.Setenv("XDG_STATE_HOME", filepath.Join(home, "state"))
	t.Setenv("ENV", "")

	result, err := RunParallelInit(ParallelInitInput{
		Ctx:    context.Background(),
		Config: config.DefaultConfig(),
	})
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(home, "share", "casement"), result.DataDir)
	assert.Equal(t, filepath.Join(home, "state", "casement", "webkit-cache"), result.CacheDir)
	assert.DirExists(t, result.CacheDir)

	require.NotNil(t, result.History)
	require.NotNil(t, result.Bookmarks)
	require.NotNil(t, result.Sessions)
	require.NotNil(t, result.Injector)
	require.NotNil(t, result.Theme)
	assert.Positive(t, result.Injector.Count())
	assert.Greater(t, result.Duration, time.Duration(0))
}

func TestRunParallelInit_WarmsExistingStores(t *testing.T) {
	home := t.TempDir()
	t.Setenv("XDG_DATA_HOME", filepath.Join(home, "share"))
	t.Setenv("XDG_STATE_HOME", filepath.Join(home, "state"))
	t.Setenv("ENV", "")

	dataDir := filepath.Join(home, "share", "casement")
	require.NoError(t, os.MkdirAll(dataDir, 0o755))
	historyJSON := `["https://example.com/","https://go.dev/"]`
	require.NoError(t, os.WriteFile(filepath.Join(dataDir, "history.json"), []byte(historyJSON), 0o644))

	result, err := RunParallelInit(ParallelInitInput{
		Ctx:    context.Background(),
		Config: config.DefaultConfig(),
	})
	require.NoError(t, err)

	ctx := context.Background()
	assert.True(t, result.History.Contains(ctx, "https://example.com/"))
	assert.True(t, result.History.Contains(ctx, "https://go.dev/"))
}
