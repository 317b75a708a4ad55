package usecase_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Zeal1001/casement/internal/application/usecase"
	"github.com/Zeal1001/casement/internal/domain/entity"
)

func TestRestoreSession(t *testing.T) {
	ctx := testContext()
	repo := &fakeSessionRepo{entries: []entity.SessionEntry{
		{URL: "", Private: false},
		{URL: "https://example.com/", Private: false},
		{URL: "https://secret.example/", Private: true},
	}}
	uc := usecase.NewRestoreSessionUseCase(repo)

	entries := uc.Execute(ctx)
	require.Len(t, entries, 3)
	assert.Empty(t, entries[0].URL)
	assert.True(t, entries[2].Private)
}

func TestRestoreSessionEmpty(t *testing.T) {
	uc := usecase.NewRestoreSessionUseCase(&fakeSessionRepo{})
	assert.Nil(t, uc.Execute(testContext()))
}
