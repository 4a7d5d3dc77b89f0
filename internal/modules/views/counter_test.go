package views

import (
	"context"
	"errors"
	"testing"
	"time"

	"wallpapers/internal/domain"
	"wallpapers/internal/repository"
	"wallpapers/internal/testutil"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeRedis struct {
	seen map[string]time.Duration
	err  error
}

func (f *fakeRedis) SetNX(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.BoolCmd {
	cmd := redis.NewBoolCmd(ctx)
	if f.err != nil {
		cmd.SetErr(f.err)
		return cmd
	}
	_, exists := f.seen[key]
	if !exists {
		f.seen[key] = expiration
	}
	cmd.SetVal(!exists)
	return cmd
}

func seedWallpaper(t *testing.T) (*repository.WallpaperRepository, int64) {
	t.Helper()
	db := testutil.NewDB(t)
	user := &domain.User{Email: "viewer@example.com", Name: "v"}
	require.NoError(t, repository.NewUserRepository(db).Create(context.Background(), user))

	repo := repository.NewWallpaperRepository(db)
	w := &domain.Wallpaper{Title: "sky", UploaderID: user.ID}
	require.NoError(t, repo.CreateTagged(context.Background(), w, nil))
	return repo, w.ID
}

func TestDBCounter_CountsEveryView(t *testing.T) {
	repo, id := seedWallpaper(t)
	c := NewDBCounter(repo)
	ctx := context.Background()

	for i := int64(1); i <= 3; i++ {
		n, err := c.Record(ctx, id, "user:1")
		require.NoError(t, err)
		assert.Equal(t, i, n)
	}
}

func TestDBCounter_UnknownWallpaper(t *testing.T) {
	repo, _ := seedWallpaper(t)

	_, err := NewDBCounter(repo).Record(context.Background(), 999, "")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestDedupCounter(t *testing.T) {
	repo, id := seedWallpaper(t)
	fake := &fakeRedis{seen: map[string]time.Duration{}}
	c := &DedupCounter{rdb: fake, store: repo, window: 30 * time.Minute}
	ctx := context.Background()

	n, err := c.Record(ctx, id, "ip:10.0.0.1")
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	// same viewer inside the window
	n, err = c.Record(ctx, id, "ip:10.0.0.1")
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	n, err = c.Record(ctx, id, "user:7")
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	// anonymous viewers without a key always count
	n, err = c.Record(ctx, id, "")
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)

	assert.Equal(t, 30*time.Minute, fake.seen[seenKey(id, "user:7")])
}

func TestDedupCounter_RedisDownFailsOpen(t *testing.T) {
	repo, id := seedWallpaper(t)
	c := &DedupCounter{rdb: &fakeRedis{err: errors.New("connection refused")}, store: repo, window: time.Minute}

	for i := int64(1); i <= 2; i++ {
		n, err := c.Record(context.Background(), id, "ip:1.2.3.4")
		require.NoError(t, err)
		assert.Equal(t, i, n)
	}
}
