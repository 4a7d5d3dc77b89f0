package favorite

import (
	"time"

	"wallpapers/internal/domain"
)

// UserBrief: краткая информация о пользователе для списка favoriters
type UserBrief struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// WallpaperBrief: краткая информация об обоях для списка избранного
type WallpaperBrief struct {
	ID           int64     `json:"id"`
	Title        string    `json:"title"`
	ImageURL     string    `json:"image_url"`
	ThumbnailURL string    `json:"thumbnail_url,omitempty"`
	ViewsCount   int64     `json:"views_count"`
	Tags         []string  `json:"tags"`
	CreatedAt    time.Time `json:"created_at"`
}

// FavoritersResponse: кто добавил обои в избранное
type FavoritersResponse struct {
	WallpaperID int64       `json:"wallpaper_id"`
	Users       []UserBrief `json:"users"`
	Total       int         `json:"total"`
}

// FavoriteListResponse: избранное пользователя
type FavoriteListResponse struct {
	UserID     int64            `json:"user_id"`
	Wallpapers []WallpaperBrief `json:"wallpapers"`
	Total      int              `json:"total"`
}

// CheckFavoriteResponse: ответ на проверку "в избранном ли"
type CheckFavoriteResponse struct {
	WallpaperID    int64 `json:"wallpaper_id"`
	IsFavorite     bool  `json:"is_favorite"`
	FavoritesCount int64 `json:"favorites_count"`
}

func ToFavoritersResponse(wallpaperID int64, users []domain.User) FavoritersResponse {
	out := make([]UserBrief, len(users))
	for i, u := range users {
		out[i] = UserBrief{ID: u.ID, Name: u.Name}
	}
	return FavoritersResponse{WallpaperID: wallpaperID, Users: out, Total: len(out)}
}

func ToFavoriteListResponse(userID int64, items []domain.Wallpaper) FavoriteListResponse {
	out := make([]WallpaperBrief, len(items))
	for i, w := range items {
		tags := w.Tags
		if tags == nil {
			tags = []string{}
		}
		out[i] = WallpaperBrief{
			ID:           w.ID,
			Title:        w.Title,
			ImageURL:     w.ImageURL,
			ThumbnailURL: w.ThumbnailURL,
			ViewsCount:   w.ViewsCount,
			Tags:         tags,
			CreatedAt:    w.CreatedAt,
		}
	}
	return FavoriteListResponse{UserID: userID, Wallpapers: out, Total: len(out)}
}
