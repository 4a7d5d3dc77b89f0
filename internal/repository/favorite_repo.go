package repository

import (
	"context"
	"errors"

	"wallpapers/internal/domain"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ErrFavoriteNotFound is returned by Remove when the pair does not exist.
var ErrFavoriteNotFound = errors.New("favorite not found")

// FavoriteRepository определяет методы для работы с избранным
type FavoriteRepository interface {
	Add(ctx context.Context, userID, wallpaperID int64) error
	Remove(ctx context.Context, userID, wallpaperID int64) error
	Exists(ctx context.Context, userID, wallpaperID int64) (bool, error)
	CountByWallpaper(ctx context.Context, wallpaperID int64) (int64, error)
	ListFavoriters(ctx context.Context, wallpaperID int64) ([]domain.User, error)
	ListFavorites(ctx context.Context, userID int64) ([]domain.Wallpaper, error)
}

type favoriteRepository struct {
	db        *gorm.DB
	wallpaper *WallpaperRepository
}

func NewFavoriteRepository(db *gorm.DB) FavoriteRepository {
	return &favoriteRepository{db: db, wallpaper: NewWallpaperRepository(db)}
}

// Add inserts the pair; an existing pair is left untouched.
func (r *favoriteRepository) Add(ctx context.Context, userID, wallpaperID int64) error {
	fav := &domain.Favorite{UserID: userID, WallpaperID: wallpaperID}
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Omit("User", "Wallpaper").
		Create(fav).Error
	if IsUniqueViolation(err) {
		return nil
	}
	return err
}

// Remove deletes the pair or returns ErrFavoriteNotFound.
func (r *favoriteRepository) Remove(ctx context.Context, userID, wallpaperID int64) error {
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND wallpaper_id = ?", userID, wallpaperID).
		Delete(&domain.Favorite{})

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrFavoriteNotFound
	}
	return nil
}

func (r *favoriteRepository) Exists(ctx context.Context, userID, wallpaperID int64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.Favorite{}).
		Where("user_id = ? AND wallpaper_id = ?", userID, wallpaperID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *favoriteRepository) CountByWallpaper(ctx context.Context, wallpaperID int64) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.Favorite{}).
		Where("wallpaper_id = ?", wallpaperID).
		Count(&count).Error
	return count, err
}

// ListFavoriters returns the users who favorited the wallpaper, earliest first.
func (r *favoriteRepository) ListFavoriters(ctx context.Context, wallpaperID int64) ([]domain.User, error) {
	var users []domain.User
	err := r.db.WithContext(ctx).
		Joins("JOIN favorites ON favorites.user_id = users.id").
		Where("favorites.wallpaper_id = ?", wallpaperID).
		Order("favorites.created_at ASC, favorites.id ASC").
		Find(&users).Error
	return users, err
}

// ListFavorites returns the user's favorited wallpapers, newest favorite first.
func (r *favoriteRepository) ListFavorites(ctx context.Context, userID int64) ([]domain.Wallpaper, error) {
	var ids []int64
	err := r.db.WithContext(ctx).
		Model(&domain.Favorite{}).
		Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").
		Pluck("wallpaper_id", &ids).Error
	if err != nil {
		return nil, err
	}
	return r.wallpaper.GetByIDs(ctx, ids)
}
