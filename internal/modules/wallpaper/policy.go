package wallpaper

import "wallpapers/internal/domain"

// CanDelete reports whether actor may delete (or edit) w.
// Anonymous actors are refused. A rank 1 actor may only touch their own
// uploads; any other rank may touch every wallpaper.
//
// NOTE: rank 1 is also what every new account gets, so this reads as "rank 1
// is the unprivileged tier". Kept as observed until product confirms.
func CanDelete(actor *domain.User, w *domain.Wallpaper) bool {
	if actor == nil || w == nil {
		return false
	}
	if actor.ID != w.UploaderID && actor.Rank == 1 {
		return false
	}
	return true
}
