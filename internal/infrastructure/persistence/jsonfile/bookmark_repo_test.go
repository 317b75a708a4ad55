package jsonfile_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Zeal1001/casement/internal/domain/entity"
	"github.com/Zeal1001/casement/internal/infrastructure/persistence/jsonfile"
)

func TestBookmarkRepositoryAddAndFind(t *testing.T) {
	ctx := testCtx()
	repo := jsonfile.NewBookmarkRepository(t.TempDir())
	require.NoError(t, repo.Warm(ctx))

	require.NoError(t, repo.Add(ctx, entity.NewBookmark("Example", "https://example.com/")))

	found := repo.FindByURL(ctx, "https://example.com/")
	require.NotNil(t, found)
	assert.Equal(t, "Example", found.Title)
	assert.Nil(t, repo.FindByURL(ctx, "https://missing.example/"))
}

func TestBookmarkRepositoryRejectsDuplicateURL(t *testing.T) {
	ctx := testCtx()
	repo := jsonfile.NewBookmarkRepository(t.TempDir())
	require.NoError(t, repo.Warm(ctx))

	require.NoError(t, repo.Add(ctx, entity.NewBookmark("Example", "https://example.com/")))

	err := repo.Add(ctx, entity.NewBookmark("Example again", "https://example.com/"))
	require.ErrorIs(t, err, entity.ErrDuplicateBookmark)
	assert.Len(t, repo.All(ctx), 1)
	assert.Equal(t, "Example", repo.All(ctx)[0].Title)
}

func TestBookmarkRepositoryPersistsAcrossInstances(t *testing.T) {
	ctx := testCtx()
	dir := t.TempDir()

	first := jsonfile.NewBookmarkRepository(dir)
	require.NoError(t, first.Warm(ctx))
	require.NoError(t, first.Add(ctx, entity.NewBookmark("Go", "https://go.dev/")))
	require.NoError(t, first.Add(ctx, entity.NewBookmark("Example", "https://example.com/")))

	second := jsonfile.NewBookmarkRepository(dir)
	require.NoError(t, second.Warm(ctx))

	all := second.All(ctx)
	require.Len(t, all, 2)
	assert.Equal(t, "Go", all[0].Title)
	assert.Equal(t, "https://example.com/", all[1].URL)
	require.NotNil(t, second.FindByURL(ctx, "https://go.dev/"))
}

func TestBookmarkRepositoryTitleFallsBackToURL(t *testing.T) {
	b := entity.NewBookmark("", "https://example.com/")
	assert.Equal(t, "https://example.com/", b.Title)
}
