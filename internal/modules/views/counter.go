// Package views records wallpaper detail views.
package views

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

// Store is the persistent view counter of a wallpaper.
type Store interface {
	IncrementViews(ctx context.Context, wallpaperID int64) (int64, error)
	GetViews(ctx context.Context, wallpaperID int64) (int64, error)
}

// DBCounter counts every view.
type DBCounter struct {
	store Store
}

func NewDBCounter(store Store) *DBCounter {
	return &DBCounter{store: store}
}

// Record increments the counter and returns the new total. viewer is ignored.
func (c *DBCounter) Record(ctx context.Context, wallpaperID int64, viewer string) (int64, error) {
	return c.store.IncrementViews(ctx, wallpaperID)
}

type setNXer interface {
	SetNX(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.BoolCmd
}

// DedupCounter counts a viewer at most once per window. The window is kept in
// redis; the total stays in Store. When redis is unavailable every view counts.
type DedupCounter struct {
	rdb    setNXer
	store  Store
	window time.Duration
}

func NewDedupCounter(rdb *redis.Client, store Store, window time.Duration) *DedupCounter {
	return &DedupCounter{rdb: rdb, store: store, window: window}
}

func (c *DedupCounter) Record(ctx context.Context, wallpaperID int64, viewer string) (int64, error) {
	if viewer == "" {
		return c.store.IncrementViews(ctx, wallpaperID)
	}

	fresh, err := c.rdb.SetNX(ctx, seenKey(wallpaperID, viewer), 1, c.window).Result()
	if err != nil {
		log.Printf("views: dedup unavailable wallpaper_id=%d err=%v", wallpaperID, err)
		return c.store.IncrementViews(ctx, wallpaperID)
	}
	if !fresh {
		return c.store.GetViews(ctx, wallpaperID)
	}
	return c.store.IncrementViews(ctx, wallpaperID)
}

func seenKey(wallpaperID int64, viewer string) string {
	return fmt.Sprintf("wallpaper:%d:seen:%s", wallpaperID, viewer)
}
