package feed

import "time"

const (
	EventWallpaperCreated = "wallpaper.created"
	EventWallpaperDeleted = "wallpaper.deleted"
)

// Event is pushed to every feed subscriber.
type Event struct {
	Type         string    `json:"type"`
	WallpaperID  int64     `json:"wallpaper_id"`
	Title        string    `json:"title,omitempty"`
	ThumbnailURL string    `json:"thumbnail_url,omitempty"`
	UploaderID   int64     `json:"uploader_id,omitempty"`
	Tags         []string  `json:"tags,omitempty"`
	At           time.Time `json:"at"`
}
