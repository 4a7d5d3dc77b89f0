package wallpaper

import (
	"errors"
	"sort"
	"strings"
)

var (
	ErrWallpaperNotFound = errors.New("wallpaper not found")
	ErrUnauthenticated   = errors.New("authentication required")
	ErrForbidden         = errors.New("not allowed to modify this wallpaper")
)

// ValidationError maps input fields to the rule they failed.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return "validation failed: " + strings.Join(keys, ", ")
}
