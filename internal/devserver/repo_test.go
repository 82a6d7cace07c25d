package devserver

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func openTestRepo(t *testing.T) *Repo {
	t.Helper()
	db, err := OpenDB(filepath.Join(t.TempDir(), "devserver.db"))
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return NewRepo(db)
}

func strPtr(s string) *string { return &s }

func TestRepo_CreateAndList(t *testing.T) {
	repo := openTestRepo(t)
	ctx := context.Background()

	items, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, items)

	a := &Content{Title: "A", Text: "first"}
	b := &Content{Title: "B", Text: "second"}
	require.NoError(t, repo.Create(ctx, a))
	require.NoError(t, repo.Create(ctx, b))
	assert.NotZero(t, a.ID)
	assert.Greater(t, b.ID, a.ID)

	items, err = repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "A", items[0].Title)
	assert.Equal(t, "B", items[1].Title)
}

func TestRepo_Update(t *testing.T) {
	repo := openTestRepo(t)
	ctx := context.Background()

	item := &Content{Title: "Old", Text: "body"}
	require.NoError(t, repo.Create(ctx, item))

	got, err := repo.Update(ctx, item.ID, ContentPatch{Title: strPtr("New")})
	require.NoError(t, err)
	assert.Equal(t, "New", got.Title)
	assert.Equal(t, "body", got.Text, "unset fields are kept")

	stored, err := repo.Get(ctx, item.ID)
	require.NoError(t, err)
	assert.Equal(t, "New", stored.Title)

	_, err = repo.Update(ctx, 999, ContentPatch{Title: strPtr("x")})
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestRepo_Delete(t *testing.T) {
	repo := openTestRepo(t)
	ctx := context.Background()

	keep := &Content{Title: "Keep", Text: "k"}
	drop := &Content{Title: "Drop", Text: "d"}
	require.NoError(t, repo.Create(ctx, keep))
	require.NoError(t, repo.Create(ctx, drop))

	require.NoError(t, repo.Delete(ctx, drop.ID))
	assert.ErrorIs(t, repo.Delete(ctx, drop.ID), gorm.ErrRecordNotFound)

	items, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, keep.ID, items[0].ID)
}

func TestOpenDB_Memory(t *testing.T) {
	db, err := OpenDB(":memory:")
	require.NoError(t, err)

	repo := NewRepo(db)
	require.NoError(t, repo.Create(context.Background(), &Content{Title: "t", Text: "x"}))
	items, err := repo.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, items, 1)
}

func TestEchoResponder(t *testing.T) {
	reply, err := EchoResponder{}.Reply(context.Background(), "  hi  ")
	require.NoError(t, err)
	assert.Equal(t, "You said: **hi**", reply)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = EchoResponder{}.Reply(ctx, "hi")
	assert.ErrorIs(t, err, context.Canceled)
}
