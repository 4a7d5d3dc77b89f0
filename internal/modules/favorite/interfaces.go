package favorite

import (
	"context"

	"wallpapers/internal/domain"
)

type WallpaperLookup interface {
	GetByID(ctx context.Context, id int64) (*domain.Wallpaper, error)
}

type UserLookup interface {
	GetByID(ctx context.Context, id int64) (*domain.User, error)
}
