package wallpaper

import (
	"math"
	"time"

	"wallpapers/internal/domain"
)

// PriorityFunc scores a wallpaper from its view count and age. Implementations
// must be deterministic and non-decreasing in views for a fixed age.
type PriorityFunc func(views int64, age time.Duration) float64

// DefaultPriority is (views+1) / (ageHours+2)^1.5: every view counts, and a
// wallpaper sinks as it gets older.
func DefaultPriority(views int64, age time.Duration) float64 {
	if views < 0 {
		views = 0
	}
	if age < 0 {
		age = 0
	}
	return float64(views+1) / math.Pow(age.Hours()+2, 1.5)
}

// Score computes w's priority at now. A creation time in the future counts as age zero.
func Score(fn PriorityFunc, w *domain.Wallpaper, now time.Time) float64 {
	if fn == nil {
		fn = DefaultPriority
	}
	age := now.Sub(w.CreatedAt)
	if age < 0 {
		age = 0
	}
	return fn(w.ViewsCount, age)
}
