package domain

import "time"

// Image is a stored file on the local filesystem backing a wallpaper.
type Image struct {
	ID           string    `gorm:"column:id;primaryKey" json:"id"`
	UserID       int64     `gorm:"column:user_id;index" json:"user_id"`
	OriginalName string    `gorm:"column:original_name" json:"original_name"`
	FilePath     string    `gorm:"column:file_path" json:"-"`  // relative disk path
	ThumbPath    string    `gorm:"column:thumb_path" json:"-"` // empty when no thumbnail was produced
	FileURL      string    `gorm:"column:file_url" json:"url"`
	ThumbnailURL string    `gorm:"column:thumbnail_url" json:"thumbnail_url,omitempty"`
	MimeType     string    `gorm:"column:mime_type" json:"mime_type"`
	Size         int64     `gorm:"column:size" json:"size"`
	Width        int       `gorm:"column:width" json:"width"`
	Height       int       `gorm:"column:height" json:"height"`
	CreatedAt    time.Time `gorm:"column:created_at" json:"created_at"`
}

func (Image) TableName() string { return "images" }
