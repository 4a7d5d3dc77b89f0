package favorite

import (
	"context"
	"errors"

	"wallpapers/internal/domain"
	"wallpapers/internal/repository"

	"gorm.io/gorm"
)

// Service is the per-user registry of favorited wallpapers. A pair is either
// absent or favorited; only the user can change it.
type Service struct {
	favorites  repository.FavoriteRepository
	wallpapers WallpaperLookup
	users      UserLookup
}

func NewService(favorites repository.FavoriteRepository, wallpapers WallpaperLookup, users UserLookup) *Service {
	return &Service{favorites: favorites, wallpapers: wallpapers, users: users}
}

// Favorite adds the pair. Favoriting twice is a no-op.
func (s *Service) Favorite(ctx context.Context, user *domain.User, wallpaperID int64) error {
	if user == nil {
		return ErrUnauthenticated
	}
	if err := s.ensureWallpaper(ctx, wallpaperID); err != nil {
		return err
	}
	return s.favorites.Add(ctx, user.ID, wallpaperID)
}

// Unfavorite removes the pair or fails with ErrFavoriteNotFound.
func (s *Service) Unfavorite(ctx context.Context, user *domain.User, wallpaperID int64) error {
	if user == nil {
		return ErrUnauthenticated
	}
	if err := s.ensureWallpaper(ctx, wallpaperID); err != nil {
		return err
	}
	if err := s.favorites.Remove(ctx, user.ID, wallpaperID); err != nil {
		if errors.Is(err, repository.ErrFavoriteNotFound) {
			return ErrFavoriteNotFound
		}
		return err
	}
	return nil
}

func (s *Service) IsFavorite(ctx context.Context, userID, wallpaperID int64) (bool, error) {
	return s.favorites.Exists(ctx, userID, wallpaperID)
}

// CountFavorites returns how many users have favorited the wallpaper.
func (s *Service) CountFavorites(ctx context.Context, wallpaperID int64) (int64, error) {
	return s.favorites.CountByWallpaper(ctx, wallpaperID)
}

// ListFavoriters returns who favorited the wallpaper, earliest first.
func (s *Service) ListFavoriters(ctx context.Context, wallpaperID int64) ([]domain.User, error) {
	if err := s.ensureWallpaper(ctx, wallpaperID); err != nil {
		return nil, err
	}
	return s.favorites.ListFavoriters(ctx, wallpaperID)
}

func (s *Service) ListFavorites(ctx context.Context, userID int64) ([]domain.Wallpaper, error) {
	if _, err := s.users.GetByID(ctx, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return s.favorites.ListFavorites(ctx, userID)
}

func (s *Service) ensureWallpaper(ctx context.Context, id int64) error {
	if _, err := s.wallpapers.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrWallpaperNotFound
		}
		return err
	}
	return nil
}
