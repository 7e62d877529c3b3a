package session

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTakeFlashDrainsSlot(t *testing.T) {
	store := NewInMemoryStore()
	ctx := context.Background()
	id := uuid.New()

	require.NoError(t, store.SetFlash(ctx, id, "hello", time.Minute))

	msg, err := store.TakeFlash(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "hello", msg)

	msg, err = store.TakeFlash(ctx, id)
	require.NoError(t, err)
	assert.Empty(t, msg, "flash is read-once")
}

func TestSetFlashReplacesSlot(t *testing.T) {
	store := NewInMemoryStore()
	ctx := context.Background()
	id := uuid.New()

	require.NoError(t, store.SetFlash(ctx, id, "first", time.Minute))
	require.NoError(t, store.SetFlash(ctx, id, "second", time.Minute))

	msg, err := store.TakeFlash(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "second", msg)
}

func TestTakeFlashUnknownSession(t *testing.T) {
	store := NewInMemoryStore()

	msg, err := store.TakeFlash(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.Empty(t, msg)
}

func TestFlashExpires(t *testing.T) {
	now := time.Now()
	store := NewInMemoryStore().WithClock(func() time.Time { return now })
	ctx := context.Background()
	id := uuid.New()

	require.NoError(t, store.SetFlash(ctx, id, "hello", 6*time.Second))

	now = now.Add(10 * time.Second)

	msg, err := store.TakeFlash(ctx, id)
	require.NoError(t, err)
	assert.Empty(t, msg, "expired flash is dropped")
}
