package usecase_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Zeal1001/casement/internal/application/usecase"
	"github.com/Zeal1001/casement/internal/domain/entity"
)

func TestSnapshotSession(t *testing.T) {
	ctx := testContext()
	repo := &fakeSessionRepo{}
	uc := usecase.NewSnapshotSessionUseCase(repo)

	tabs := entity.NewTabList()
	tabs.Add(entity.NewTab("t1", false))

	loaded := entity.NewTab("t2", false)
	loaded.BeginNavigation("https://example.com/")
	loaded.FinishLoad()
	tabs.Add(loaded)

	private := entity.NewTab("t3", true)
	private.BeginNavigation("https://secret.example/")
	tabs.Add(private)

	require.NoError(t, uc.Execute(ctx, tabs))
	require.Len(t, repo.saved, 1)

	entries := repo.saved[0]
	require.Len(t, entries, 3)
	assert.Equal(t, entity.SessionEntry{URL: "", Private: false}, entries[0], "home tabs serialize with an empty url")
	assert.Equal(t, entity.SessionEntry{URL: "https://example.com/", Private: false}, entries[1])
	assert.Equal(t, entity.SessionEntry{URL: "https://secret.example/", Private: true}, entries[2])
}

func TestSnapshotSessionWrapsSaveError(t *testing.T) {
	ctx := testContext()
	repo := &fakeSessionRepo{saveErr: errors.New("disk full")}
	uc := usecase.NewSnapshotSessionUseCase(repo)

	tabs := entity.NewTabList()
	tabs.Add(entity.NewTab("t1", false))

	err := uc.Execute(ctx, tabs)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to save session")
}
