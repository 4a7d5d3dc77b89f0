package users

import (
	"time"

	"wallpapers/internal/domain"
)

type WallpaperItem struct {
	ID           int64     `json:"id"`
	Title        string    `json:"title"`
	ImageURL     string    `json:"image_url"`
	ThumbnailURL string    `json:"thumbnail_url,omitempty"`
	ViewsCount   int64     `json:"views_count"`
	Tags         []string  `json:"tags"`
	CreatedAt    time.Time `json:"created_at"`
}

// ProfileResponse never includes the email address.
type ProfileResponse struct {
	ID             int64           `json:"id"`
	Name           string          `json:"name"`
	Rank           int             `json:"rank"`
	CreatedAt      time.Time       `json:"created_at"`
	Uploads        []WallpaperItem `json:"uploads"`
	UploadsCount   int             `json:"uploads_count"`
	Favorites      []WallpaperItem `json:"favorites"`
	FavoritesCount int             `json:"favorites_count"`
}

func toItems(items []domain.Wallpaper) []WallpaperItem {
	out := make([]WallpaperItem, len(items))
	for i, w := range items {
		tags := w.Tags
		if tags == nil {
			tags = []string{}
		}
		out[i] = WallpaperItem{
			ID:           w.ID,
			Title:        w.Title,
			ImageURL:     w.ImageURL,
			ThumbnailURL: w.ThumbnailURL,
			ViewsCount:   w.ViewsCount,
			Tags:         tags,
			CreatedAt:    w.CreatedAt,
		}
	}
	return out
}

func ToProfileResponse(p *Profile) ProfileResponse {
	return ProfileResponse{
		ID:             p.User.ID,
		Name:           p.User.Name,
		Rank:           p.User.Rank,
		CreatedAt:      p.User.CreatedAt,
		Uploads:        toItems(p.Uploads),
		UploadsCount:   len(p.Uploads),
		Favorites:      toItems(p.Favorites),
		FavoritesCount: len(p.Favorites),
	}
}
