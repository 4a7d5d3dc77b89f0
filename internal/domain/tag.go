package domain

import "time"

type Tag struct {
	ID        int64     `json:"id" gorm:"primaryKey"`
	Name      string    `json:"name" gorm:"not null;uniqueIndex"`
	CreatedAt time.Time `json:"created_at"`
}

func (Tag) TableName() string {
	return "tags"
}

// WallpaperTag links a tag to a wallpaper. Each link is owned by the user who
// applied it, so two users tagging the same wallpaper "sunset" produce two rows.
type WallpaperTag struct {
	ID          int64     `json:"id" gorm:"primaryKey"`
	WallpaperID int64     `json:"wallpaper_id" gorm:"not null;index;uniqueIndex:idx_wallpaper_tag_tagger"`
	TagID       int64     `json:"tag_id" gorm:"not null;index;uniqueIndex:idx_wallpaper_tag_tagger"`
	TaggerID    int64     `json:"tagger_id" gorm:"not null;uniqueIndex:idx_wallpaper_tag_tagger"`
	CreatedAt   time.Time `json:"created_at"`
}

func (WallpaperTag) TableName() string {
	return "wallpaper_tags"
}

// TagCount is a tag with the number of wallpapers carrying it.
type TagCount struct {
	Name  string `json:"name"`
	Count int64  `json:"count"`
}
