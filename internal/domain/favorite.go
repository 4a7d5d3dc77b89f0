package domain

import (
	"time"
)

// Favorite is a user's bookmark of a wallpaper.
// The (user, wallpaper) pair is unique.
type Favorite struct {
	ID          int64     `json:"id" gorm:"primaryKey"`
	UserID      int64     `json:"user_id" gorm:"not null;index;uniqueIndex:idx_user_wallpaper"`
	WallpaperID int64     `json:"wallpaper_id" gorm:"not null;index;uniqueIndex:idx_user_wallpaper"`
	CreatedAt   time.Time `json:"created_at" gorm:"autoCreateTime"`

	// Virtual fields для preload
	User      *User      `json:"user,omitempty" gorm:"foreignKey:UserID"`
	Wallpaper *Wallpaper `json:"wallpaper,omitempty" gorm:"foreignKey:WallpaperID"`
}

func (Favorite) TableName() string {
	return "favorites"
}
