package storage

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"contactbook/internal/domain"
)

func fields(name string) domain.ContactFields {
	return domain.ContactFields{
		Name:  name,
		Phone: "081234567890",
		Email: name + "@example.com",
	}
}

func TestMemoryInsertAssignsID(t *testing.T) {
	store := NewInMemoryContactStore()
	ctx := context.Background()

	c, err := store.Insert(ctx, fields("Alice"))
	require.NoError(t, err)
	assert.NotEqual(t, uuid.UUID{}, c.ID)
	assert.Equal(t, "Alice", c.Name)
	assert.False(t, c.CreatedAt.IsZero())
}

func TestMemoryListAllKeepsInsertionOrder(t *testing.T) {
	store := NewInMemoryContactStore()
	ctx := context.Background()

	names := []string{"Charlie", "Alice", "Bob"}
	for _, name := range names {
		_, err := store.Insert(ctx, fields(name))
		require.NoError(t, err)
	}

	all, err := store.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)
	for i, name := range names {
		assert.Equal(t, name, all[i].Name)
	}
}

func TestMemoryFindByName(t *testing.T) {
	store := NewInMemoryContactStore()
	ctx := context.Background()

	inserted, err := store.Insert(ctx, fields("Alice"))
	require.NoError(t, err)

	found, err := store.FindByName(ctx, "Alice")
	require.NoError(t, err)
	assert.Equal(t, inserted.ID, found.ID)

	_, err = store.FindByName(ctx, "alice")
	assert.ErrorIs(t, err, ErrNotFound, "name match is case-sensitive")
}

func TestMemoryInsertDuplicateName(t *testing.T) {
	store := NewInMemoryContactStore()
	ctx := context.Background()

	_, err := store.Insert(ctx, fields("Alice"))
	require.NoError(t, err)

	_, err = store.Insert(ctx, fields("Alice"))
	assert.ErrorIs(t, err, ErrDuplicateName)
}

func TestMemoryUpdate(t *testing.T) {
	store := NewInMemoryContactStore()
	ctx := context.Background()

	c, err := store.Insert(ctx, fields("Alice"))
	require.NoError(t, err)

	require.NoError(t, store.Update(ctx, c.ID, fields("Alice2")))

	updated, err := store.FindByID(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, "Alice2", updated.Name)
	assert.Equal(t, c.ID, updated.ID)
	assert.Equal(t, c.CreatedAt, updated.CreatedAt)
}

func TestMemoryUpdateDuplicateName(t *testing.T) {
	store := NewInMemoryContactStore()
	ctx := context.Background()

	alice, err := store.Insert(ctx, fields("Alice"))
	require.NoError(t, err)
	_, err = store.Insert(ctx, fields("Bob"))
	require.NoError(t, err)

	// Re-writing its own name is not a conflict.
	require.NoError(t, store.Update(ctx, alice.ID, fields("Alice")))

	err = store.Update(ctx, alice.ID, fields("Bob"))
	assert.ErrorIs(t, err, ErrDuplicateName)
}

func TestMemoryUpdateMissing(t *testing.T) {
	store := NewInMemoryContactStore()
	err := store.Update(context.Background(), uuid.New(), fields("Alice"))
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryDelete(t *testing.T) {
	store := NewInMemoryContactStore()
	ctx := context.Background()

	c, err := store.Insert(ctx, fields("Alice"))
	require.NoError(t, err)

	require.NoError(t, store.DeleteByID(ctx, c.ID))

	_, err = store.FindByID(ctx, c.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	all, err := store.ListAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)

	assert.ErrorIs(t, store.DeleteByID(ctx, c.ID), ErrNotFound)
}
