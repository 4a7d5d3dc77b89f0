package repository

import (
	"context"
	"strings"

	"wallpapers/internal/domain"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type TagRepository struct {
	db *gorm.DB
}

func NewTagRepository(db *gorm.DB) *TagRepository {
	return &TagRepository{db: db}
}

// ReplaceTaggerTags makes names the exact set of tags taggerID has applied to
// wallpaperID. Tags applied by other users are left alone.
func (r *TagRepository) ReplaceTaggerTags(ctx context.Context, wallpaperID, taggerID int64, names []string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return replaceTaggerTags(tx, wallpaperID, taggerID, names)
	})
}

// replaceTaggerTags runs inside the caller's transaction.
func replaceTaggerTags(tx *gorm.DB, wallpaperID, taggerID int64, names []string) error {
	if err := tx.Where("wallpaper_id = ? AND tagger_id = ?", wallpaperID, taggerID).
		Delete(&domain.WallpaperTag{}).Error; err != nil {
		return err
	}
	if len(names) == 0 {
		return nil
	}

	tags, err := ensureTags(tx, names)
	if err != nil {
		return err
	}

	links := make([]domain.WallpaperTag, 0, len(tags))
	for _, t := range tags {
		links = append(links, domain.WallpaperTag{
			WallpaperID: wallpaperID,
			TagID:       t.ID,
			TaggerID:    taggerID,
		})
	}
	return tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&links).Error
}

// ensureTags inserts missing tag names and returns all of them.
func ensureTags(tx *gorm.DB, names []string) ([]domain.Tag, error) {
	rows := make([]domain.Tag, 0, len(names))
	for _, n := range names {
		rows = append(rows, domain.Tag{Name: n})
	}
	if err := tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "name"}},
		DoNothing: true,
	}).Create(&rows).Error; err != nil {
		return nil, err
	}

	var tags []domain.Tag
	if err := tx.Where("name IN ?", names).Find(&tags).Error; err != nil {
		return nil, err
	}
	return tags, nil
}

// TaggerTags returns the tag names taggerID applied to wallpaperID.
func (r *TagRepository) TaggerTags(ctx context.Context, wallpaperID, taggerID int64) ([]string, error) {
	var names []string
	err := r.db.WithContext(ctx).
		Table("wallpaper_tags").
		Joins("JOIN tags ON tags.id = wallpaper_tags.tag_id").
		Where("wallpaper_tags.wallpaper_id = ? AND wallpaper_tags.tagger_id = ?", wallpaperID, taggerID).
		Order("tags.name ASC").
		Pluck("tags.name", &names).Error
	return names, err
}

// Popular returns tag usage counts, most used first, optionally filtered by prefix.
func (r *TagRepository) Popular(ctx context.Context, prefix string, limit int) ([]domain.TagCount, error) {
	q := r.db.WithContext(ctx).
		Table("tags").
		Select("tags.name AS name, COUNT(DISTINCT wallpaper_tags.wallpaper_id) AS count").
		Joins("JOIN wallpaper_tags ON wallpaper_tags.tag_id = tags.id").
		Group("tags.name").
		Order("count DESC, tags.name ASC")

	if prefix = strings.ToLower(strings.TrimSpace(prefix)); prefix != "" {
		q = q.Where("tags.name LIKE ?", prefix+"%")
	}
	if limit > 0 {
		q = q.Limit(limit)
	}

	var out []domain.TagCount
	err := q.Scan(&out).Error
	return out, err
}
