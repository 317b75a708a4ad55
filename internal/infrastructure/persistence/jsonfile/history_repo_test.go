package jsonfile_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Zeal1001/casement/internal/infrastructure/persistence/jsonfile"
	"github.com/Zeal1001/casement/internal/logging"
)

func testCtx() context.Context {
	logger := logging.New(logging.Config{Level: zerolog.Disabled})
	return logging.WithContext(context.Background(), logger)
}

func TestHistoryRepositoryFirstRun(t *testing.T) {
	ctx := testCtx()
	repo := jsonfile.NewHistoryRepository(t.TempDir())

	require.NoError(t, repo.Warm(ctx))
	assert.Empty(t, repo.All(ctx))
	assert.False(t, repo.Contains(ctx, "https://example.com/"))
}

func TestHistoryRepositoryAppendAndContains(t *testing.T) {
	ctx := testCtx()
	repo := jsonfile.NewHistoryRepository(t.TempDir())
	require.NoError(t, repo.Warm(ctx))

	require.NoError(t, repo.Append(ctx, "https://example.com/"))
	require.NoError(t, repo.Append(ctx, "https://go.dev/"))

	assert.True(t, repo.Contains(ctx, "https://example.com/"))
	assert.True(t, repo.Contains(ctx, "https://go.dev/"))
	assert.Equal(t, []string{"https://example.com/", "https://go.dev/"}, repo.All(ctx))
}

func TestHistoryRepositoryAppendDeduplicates(t *testing.T) {
	ctx := testCtx()
	dir := t.TempDir()
	repo := jsonfile.NewHistoryRepository(dir)
	require.NoError(t, repo.Warm(ctx))

	require.NoError(t, repo.Append(ctx, "https://example.com/"))
	require.NoError(t, repo.Append(ctx, "https://example.com/"))

	assert.Equal(t, []string{"https://example.com/"}, repo.All(ctx))
}

func TestHistoryRepositoryPersistsAcrossInstances(t *testing.T) {
	ctx := testCtx()
	dir := t.TempDir()

	first := jsonfile.NewHistoryRepository(dir)
	require.NoError(t, first.Warm(ctx))
	require.NoError(t, first.Append(ctx, "https://example.com/"))
	require.NoError(t, first.Append(ctx, "https://go.dev/"))

	second := jsonfile.NewHistoryRepository(dir)
	require.NoError(t, second.Warm(ctx))
	assert.Equal(t, []string{"https://example.com/", "https://go.dev/"}, second.All(ctx))
	assert.True(t, second.Contains(ctx, "https://go.dev/"))
}

func TestHistoryRepositoryWarmCorruptFile(t *testing.T) {
	ctx := testCtx()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "history.json"), []byte("not json"), 0o600))

	repo := jsonfile.NewHistoryRepository(dir)
	require.Error(t, repo.Warm(ctx))

	// Repository stays usable with an empty history.
	assert.Empty(t, repo.All(ctx))
	require.NoError(t, repo.Append(ctx, "https://example.com/"))
	assert.True(t, repo.Contains(ctx, "https://example.com/"))
}

func TestHistoryRepositoryClear(t *testing.T) {
	ctx := testCtx()
	dir := t.TempDir()
	repo := jsonfile.NewHistoryRepository(dir)
	require.NoError(t, repo.Warm(ctx))
	require.NoError(t, repo.Append(ctx, "https://example.com/"))

	require.NoError(t, repo.Clear(ctx))
	assert.Empty(t, repo.All(ctx))
	assert.False(t, repo.Contains(ctx, "https://example.com/"))

	second := jsonfile.NewHistoryRepository(dir)
	require.NoError(t, second.Warm(ctx))
	assert.Empty(t, second.All(ctx))
}
