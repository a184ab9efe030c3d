package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wolfman30/paramount-detail-site/internal/booking"
)

func TestMemoryStore_CreateGetUpdate(t *testing.T) {
	store := NewMemoryStore(time.Minute)
	defer store.Close()
	ctx := context.Background()

	st := NewState("Standard", time.Now())
	require.NoError(t, store.Create(ctx, st))

	got, err := store.Get(ctx, st.ID)
	require.NoError(t, err)
	assert.Equal(t, "Standard", got.Form.Fields.Package)

	updated, err := store.Update(ctx, st.ID, func(s *State) error {
		return s.Form.Update(booking.FieldName, "Dana")
	})
	require.NoError(t, err)
	assert.Equal(t, "Dana", updated.Form.Fields.Name)

	got, err = store.Get(ctx, st.ID)
	require.NoError(t, err)
	assert.Equal(t, "Dana", got.Form.Fields.Name)
}

func TestMemoryStore_FailedUpdateWritesNothing(t *testing.T) {
	store := NewMemoryStore(time.Minute)
	defer store.Close()
	ctx := context.Background()

	st := NewState("Standard", time.Now())
	require.NoError(t, store.Create(ctx, st))

	boom := errors.New("boom")
	_, err := store.Update(ctx, st.ID, func(s *State) error {
		s.MenuOpen = true
		return boom
	})
	require.ErrorIs(t, err, boom)

	got, err := store.Get(ctx, st.ID)
	require.NoError(t, err)
	assert.False(t, got.MenuOpen)
}

func TestMemoryStore_NotFound(t *testing.T) {
	store := NewMemoryStore(time.Minute)
	defer store.Close()
	ctx := context.Background()

	_, err := store.Get(ctx, "missing")
	assert.ErrorIs(t, err, ErrViewNotFound)

	_, err = store.Update(ctx, "missing", func(*State) error { return nil })
	assert.ErrorIs(t, err, ErrViewNotFound)
}

func TestMemoryStore_Expiry(t *testing.T) {
	store := NewMemoryStore(time.Minute)
	defer store.Close()
	ctx := context.Background()

	now := time.Date(2026, 3, 7, 10, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return now }

	st := NewState("Standard", now)
	require.NoError(t, store.Create(ctx, st))

	now = now.Add(59 * time.Second)
	_, err := store.Get(ctx, st.ID)
	require.NoError(t, err)

	now = now.Add(2 * time.Minute)
	store.sweep()
	assert.Equal(t, 0, store.Len())
	_, err = store.Get(ctx, st.ID)
	assert.ErrorIs(t, err, ErrViewNotFound)
}

func TestMemoryStore_CloseTwice(t *testing.T) {
	store := NewMemoryStore(0)
	assert.NoError(t, store.Close())
	assert.NoError(t, store.Close())
}
