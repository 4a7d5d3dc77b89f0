package repository

import (
	"context"
	"testing"
	"time"

	"wallpapers/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTagRepository_ReplaceTaggerTagsKeepsOtherTaggers(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	w := f.wallpaper(t, "a", 0, 0, time.Now())
	other := f.user(t, "other@example.com")

	require.NoError(t, f.tags.ReplaceTaggerTags(ctx, w.ID, f.owner.ID, []string{"sky", "sea"}))
	require.NoError(t, f.tags.ReplaceTaggerTags(ctx, w.ID, other.ID, []string{"sky"}))

	require.NoError(t, f.tags.ReplaceTaggerTags(ctx, w.ID, f.owner.ID, []string{"night"}))

	mine, err := f.tags.TaggerTags(ctx, w.ID, f.owner.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"night"}, mine)

	theirs, err := f.tags.TaggerTags(ctx, w.ID, other.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"sky"}, theirs)

	// clearing
	require.NoError(t, f.tags.ReplaceTaggerTags(ctx, w.ID, other.ID, nil))
	theirs, err = f.tags.TaggerTags(ctx, w.ID, other.ID)
	require.NoError(t, err)
	assert.Empty(t, theirs)
}

func TestTagRepository_TagNamesAreShared(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	a := f.wallpaper(t, "a", 0, 0, time.Now())
	b := f.wallpaper(t, "b", 0, 0, time.Now())

	require.NoError(t, f.tags.ReplaceTaggerTags(ctx, a.ID, f.owner.ID, []string{"sky"}))
	require.NoError(t, f.tags.ReplaceTaggerTags(ctx, b.ID, f.owner.ID, []string{"sky"}))

	var n int64
	require.NoError(t, f.db.Model(&domain.Tag{}).Where("name = ?", "sky").Count(&n).Error)
	assert.Equal(t, int64(1), n)
}

func TestTagRepository_Popular(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	other := f.user(t, "other@example.com")
	a := f.wallpaper(t, "a", 0, 0, time.Now())
	b := f.wallpaper(t, "b", 0, 0, time.Now())
	c := f.wallpaper(t, "c", 0, 0, time.Now())

	require.NoError(t, f.tags.ReplaceTaggerTags(ctx, a.ID, f.owner.ID, []string{"sky", "sea"}))
	require.NoError(t, f.tags.ReplaceTaggerTags(ctx, a.ID, other.ID, []string{"sky"}))
	require.NoError(t, f.tags.ReplaceTaggerTags(ctx, b.ID, f.owner.ID, []string{"sky", "snow"}))
	require.NoError(t, f.tags.ReplaceTaggerTags(ctx, c.ID, f.owner.ID, []string{"sea"}))

	all, err := f.tags.Popular(ctx, "", 0)
	require.NoError(t, err)
	assert.Equal(t, []domain.TagCount{
		{Name: "sea", Count: 2},
		{Name: "sky", Count: 2},
		{Name: "snow", Count: 1},
	}, all)

	limited, err := f.tags.Popular(ctx, "", 1)
	require.NoError(t, err)
	assert.Len(t, limited, 1)

	prefixed, err := f.tags.Popular(ctx, " SN", 10)
	require.NoError(t, err)
	assert.Equal(t, []domain.TagCount{{Name: "snow", Count: 1}}, prefixed)
}
