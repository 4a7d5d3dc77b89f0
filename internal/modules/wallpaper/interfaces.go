package wallpaper

import (
	"context"

	"wallpapers/internal/domain"
	"wallpapers/internal/modules/media"
	"wallpapers/internal/repository"
)

// WallpaperRepository is the storage the service needs from repository.WallpaperRepository.
type WallpaperRepository interface {
	CreateTagged(ctx context.Context, w *domain.Wallpaper, tags []string) error
	GetByID(ctx context.Context, id int64) (*domain.Wallpaper, error)
	GetByIDs(ctx context.Context, ids []int64) ([]domain.Wallpaper, error)
	ListIDs(ctx context.Context) ([]int64, error)
	List(ctx context.Context, order repository.WallpaperOrder, limit, offset int) ([]domain.Wallpaper, error)
	Count(ctx context.Context) (int64, error)
	ListTagged(ctx context.Context, tag string, limit, offset int) ([]domain.Wallpaper, int64, error)
	Search(ctx context.Context, term string) (repository.SearchResult, error)
	UpdateFields(ctx context.Context, w *domain.Wallpaper) error
	UpdateTagged(ctx context.Context, w *domain.Wallpaper, taggerID int64, tags []string) error
	UpdatePriority(ctx context.Context, id int64, priority float64) error
	Delete(ctx context.Context, id int64) error
}

type TagRepository interface {
	ReplaceTaggerTags(ctx context.Context, wallpaperID, taggerID int64, names []string) error
	TaggerTags(ctx context.Context, wallpaperID, taggerID int64) ([]string, error)
	Popular(ctx context.Context, prefix string, limit int) ([]domain.TagCount, error)
}

type FavoriteReader interface {
	ListFavoriters(ctx context.Context, wallpaperID int64) ([]domain.User, error)
}

// ImageStore keeps the uploaded image files.
type ImageStore interface {
	Save(ctx context.Context, userID int64, up media.Upload) (*domain.Image, error)
	Delete(ctx context.Context, id string) error
}

// ViewCounter records a detail view and returns the wallpaper's view total.
type ViewCounter interface {
	Record(ctx context.Context, wallpaperID int64, viewer string) (int64, error)
}

// Notifier is told about created and deleted wallpapers.
type Notifier interface {
	WallpaperCreated(ctx context.Context, w *domain.Wallpaper)
	WallpaperDeleted(ctx context.Context, id int64)
}

type noopNotifier struct{}

func (noopNotifier) WallpaperCreated(context.Context, *domain.Wallpaper) {}
func (noopNotifier) WallpaperDeleted(context.Context, int64)             {}
