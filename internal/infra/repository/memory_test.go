package repository

import (
	"context"
	"testing"

	repo "health-assistant/internal/domain/interfaces/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type record struct {
	ID    string
	Value string
}

func newRecordRepo() *MemoryRepository[record] {
	return NewMemoryRepository(func(r record) string { return r.ID })
}

func TestMemoryRepository_CRUD(t *testing.T) {
	ctx := context.Background()
	r := newRecordRepo()

	_, err := r.Create(ctx, "things", record{ID: "a", Value: "1"})
	require.NoError(t, err)
	_, err = r.Create(ctx, "things", record{ID: "b", Value: "2"})
	require.NoError(t, err)

	_, err = r.Create(ctx, "things", record{ID: "a", Value: "dup"})
	assert.ErrorIs(t, err, repo.ErrDuplicate)

	got, err := r.FindByID(ctx, "things", "a")
	require.NoError(t, err)
	assert.Equal(t, "1", got.Value)

	_, err = r.Update(ctx, "things", "a", record{ID: "a", Value: "updated"})
	require.NoError(t, err)
	got, _ = r.FindByID(ctx, "things", "a")
	assert.Equal(t, "updated", got.Value)

	all, err := r.FindAll(ctx, "things")
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "a", all[0].ID)
	assert.Equal(t, "b", all[1].ID)

	require.NoError(t, r.Delete(ctx, "things", "a"))
	assert.ErrorIs(t, r.Delete(ctx, "things", "a"), repo.ErrNotFound)

	all, _ = r.FindAll(ctx, "things")
	assert.Len(t, all, 1)
}

func TestMemoryRepository_MissingRecords(t *testing.T) {
	ctx := context.Background()
	r := newRecordRepo()

	_, err := r.FindByID(ctx, "nothing", "x")
	assert.ErrorIs(t, err, repo.ErrNotFound)

	_, err = r.Update(ctx, "nothing", "x", record{ID: "x"})
	assert.ErrorIs(t, err, repo.ErrNotFound)

	all, err := r.FindAll(ctx, "nothing")
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestMemoryRepository_CollectionsAreIsolated(t *testing.T) {
	ctx := context.Background()
	r := newRecordRepo()

	_, err := r.Create(ctx, "left", record{ID: "same"})
	require.NoError(t, err)
	_, err = r.Create(ctx, "right", record{ID: "same"})
	require.NoError(t, err)
}
