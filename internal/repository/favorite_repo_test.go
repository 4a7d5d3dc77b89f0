package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFavoriteRepository_AddIsIdempotent(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	w := f.wallpaper(t, "a", 0, 0, time.Now())
	fan := f.user(t, "fan@example.com")

	require.NoError(t, f.favorites.Add(ctx, fan.ID, w.ID))
	require.NoError(t, f.favorites.Add(ctx, fan.ID, w.ID))

	n, err := f.favorites.CountByWallpaper(ctx, w.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	ok, err := f.favorites.Exists(ctx, fan.ID, w.ID)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestFavoriteRepository_Remove(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	w := f.wallpaper(t, "a", 0, 0, time.Now())
	fan := f.user(t, "fan@example.com")

	assert.ErrorIs(t, f.favorites.Remove(ctx, fan.ID, w.ID), ErrFavoriteNotFound)

	require.NoError(t, f.favorites.Add(ctx, fan.ID, w.ID))
	require.NoError(t, f.favorites.Remove(ctx, fan.ID, w.ID))

	ok, err := f.favorites.Exists(ctx, fan.ID, w.ID)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestFavoriteRepository_Lists(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	a := f.wallpaper(t, "a", 0, 0, time.Now())
	b := f.wallpaper(t, "b", 0, 0, time.Now())
	ann := f.user(t, "ann@example.com")
	bob := f.user(t, "bob@example.com")

	require.NoError(t, f.favorites.Add(ctx, ann.ID, a.ID))
	require.NoError(t, f.favorites.Add(ctx, bob.ID, a.ID))
	require.NoError(t, f.favorites.Add(ctx, ann.ID, b.ID))

	fans, err := f.favorites.ListFavoriters(ctx, a.ID)
	require.NoError(t, err)
	require.Len(t, fans, 2)
	assert.Equal(t, ann.ID, fans[0].ID)
	assert.Equal(t, bob.ID, fans[1].ID)

	favs, err := f.favorites.ListFavorites(ctx, ann.ID)
	require.NoError(t, err)
	assert.Equal(t, []int64{b.ID, a.ID}, ids(favs))

	none, err := f.favorites.ListFavorites(ctx, f.owner.ID)
	require.NoError(t, err)
	assert.Empty(t, none)
}
