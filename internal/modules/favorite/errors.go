package favorite

import "errors"

var (
	ErrFavoriteNotFound  = errors.New("favorite not found")
	ErrWallpaperNotFound = errors.New("wallpaper not found")
	ErrUserNotFound      = errors.New("user not found")
	ErrUnauthenticated   = errors.New("authentication required")
)
