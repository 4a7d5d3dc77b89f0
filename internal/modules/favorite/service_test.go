package favorite

import (
	"context"
	"testing"

	"wallpapers/internal/domain"
	"wallpapers/internal/repository"
	"wallpapers/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fixture struct {
	db    *gorm.DB
	svc   *Service
	users *repository.UserRepository
	ann   *domain.User
	bob   *domain.User
	wall  *domain.Wallpaper
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()
	db := testutil.NewDB(t)

	users := repository.NewUserRepository(db)
	ann := &domain.User{Email: "ann@example.com", Name: "ann"}
	bob := &domain.User{Email: "bob@example.com", Name: "bob"}
	require.NoError(t, users.Create(ctx, ann))
	require.NoError(t, users.Create(ctx, bob))

	walls := repository.NewWallpaperRepository(db)
	wall := &domain.Wallpaper{Title: "dunes", UploaderID: ann.ID}
	require.NoError(t, walls.CreateTagged(ctx, wall, nil))

	svc := NewService(repository.NewFavoriteRepository(db), walls, users)
	return &fixture{db: db, svc: svc, users: users, ann: ann, bob: bob, wall: wall}
}

func (f *fixture) count(t *testing.T) int64 {
	var n int64
	require.NoError(t, f.db.Model(&domain.Favorite{}).Count(&n).Error)
	return n
}

func TestFavorite_Idempotent(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	require.NoError(t, f.svc.Favorite(ctx, f.bob, f.wall.ID))
	require.NoError(t, f.svc.Favorite(ctx, f.bob, f.wall.ID))

	assert.Equal(t, int64(1), f.count(t))
	ok, err := f.svc.IsFavorite(ctx, f.bob.ID, f.wall.ID)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestUnfavorite(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	err := f.svc.Unfavorite(ctx, f.bob, f.wall.ID)
	assert.ErrorIs(t, err, ErrFavoriteNotFound)

	require.NoError(t, f.svc.Favorite(ctx, f.bob, f.wall.ID))
	require.NoError(t, f.svc.Unfavorite(ctx, f.bob, f.wall.ID))
	assert.Equal(t, int64(0), f.count(t))

	err = f.svc.Unfavorite(ctx, f.bob, f.wall.ID)
	assert.ErrorIs(t, err, ErrFavoriteNotFound)
}

func TestFavorite_Errors(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	assert.ErrorIs(t, f.svc.Favorite(ctx, nil, f.wall.ID), ErrUnauthenticated)
	assert.ErrorIs(t, f.svc.Unfavorite(ctx, nil, f.wall.ID), ErrUnauthenticated)
	assert.ErrorIs(t, f.svc.Favorite(ctx, f.bob, 999), ErrWallpaperNotFound)
	assert.ErrorIs(t, f.svc.Unfavorite(ctx, f.bob, 999), ErrWallpaperNotFound)

	_, err := f.svc.ListFavoriters(ctx, 999)
	assert.ErrorIs(t, err, ErrWallpaperNotFound)
	_, err = f.svc.ListFavorites(ctx, 999)
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestCountFavorites(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	n, err := f.svc.CountFavorites(ctx, f.wall.ID)
	require.NoError(t, err)
	assert.Zero(t, n)

	require.NoError(t, f.svc.Favorite(ctx, f.ann, f.wall.ID))
	require.NoError(t, f.svc.Favorite(ctx, f.bob, f.wall.ID))
	require.NoError(t, f.svc.Favorite(ctx, f.bob, f.wall.ID))

	n, err = f.svc.CountFavorites(ctx, f.wall.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	require.NoError(t, f.svc.Unfavorite(ctx, f.ann, f.wall.ID))
	n, err = f.svc.CountFavorites(ctx, f.wall.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}

func TestListFavoritersAndFavorites(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	second := &domain.Wallpaper{Title: "reef", UploaderID: f.ann.ID}
	require.NoError(t, repository.NewWallpaperRepository(f.db).CreateTagged(ctx, second, nil))

	require.NoError(t, f.svc.Favorite(ctx, f.ann, f.wall.ID))
	require.NoError(t, f.svc.Favorite(ctx, f.bob, f.wall.ID))
	require.NoError(t, f.svc.Favorite(ctx, f.bob, second.ID))

	users, err := f.svc.ListFavoriters(ctx, f.wall.ID)
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.ElementsMatch(t, []int64{f.ann.ID, f.bob.ID}, []int64{users[0].ID, users[1].ID})

	walls, err := f.svc.ListFavorites(ctx, f.bob.ID)
	require.NoError(t, err)
	assert.ElementsMatch(t, []int64{f.wall.ID, second.ID}, []int64{walls[0].ID, walls[1].ID})

	annFavs, err := f.svc.ListFavorites(ctx, f.ann.ID)
	require.NoError(t, err)
	assert.Len(t, annFavs, 1)
}
