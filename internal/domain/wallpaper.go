package domain

import "time"

// Wallpaper is an uploaded image with its popularity counters.
// Priority is a cached ranking score; it is refreshed on detail views
// and by the rerank job.
type Wallpaper struct {
	ID           int64     `json:"id" gorm:"primaryKey"`
	Title        string    `json:"title" gorm:"not null"`
	ImageID      string    `json:"image_id" gorm:"column:image_id;index"`
	ImageURL     string    `json:"image_url"`
	ThumbnailURL string    `json:"thumbnail_url,omitempty"`
	UploaderID   int64     `json:"uploader_id" gorm:"not null;index"`
	ViewsCount   int64     `json:"views_count" gorm:"not null;default:0;index"`
	Priority     float64   `json:"priority" gorm:"not null;default:0;index"`
	CreatedAt    time.Time `json:"created_at" gorm:"index"`
	UpdatedAt    time.Time `json:"updated_at"`

	// Tags is the union of labels applied by all taggers, loaded by the repository.
	Tags []string `json:"tags" gorm:"-"`

	Uploader *User `json:"uploader,omitempty" gorm:"foreignKey:UploaderID"`
}

func (Wallpaper) TableName() string {
	return "wallpapers"
}

// HasTag reports whether name is among the wallpaper's tags.
func (w *Wallpaper) HasTag(name string) bool {
	for _, t := range w.Tags {
		if t == name {
			return true
		}
	}
	return false
}
