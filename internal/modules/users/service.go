package users

import (
	"context"
	"errors"

	"wallpapers/internal/domain"

	"gorm.io/gorm"
)

type UserRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.User, error)
}

type UploadLister interface {
	ListByUploader(ctx context.Context, userID int64) ([]domain.Wallpaper, error)
}

type FavoriteLister interface {
	ListFavorites(ctx context.Context, userID int64) ([]domain.Wallpaper, error)
}

// Profile is the public page of a user.
type Profile struct {
	User      *domain.User
	Uploads   []domain.Wallpaper
	Favorites []domain.Wallpaper
}

type Service struct {
	users     UserRepository
	uploads   UploadLister
	favorites FavoriteLister
}

func NewService(users UserRepository, uploads UploadLister, favorites FavoriteLister) *Service {
	return &Service{users: users, uploads: uploads, favorites: favorites}
}

func (s *Service) GetProfile(ctx context.Context, id int64) (*Profile, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	uploads, err := s.uploads.ListByUploader(ctx, id)
	if err != nil {
		return nil, err
	}
	favorites, err := s.favorites.ListFavorites(ctx, id)
	if err != nil {
		return nil, err
	}

	return &Profile{User: user, Uploads: uploads, Favorites: favorites}, nil
}
