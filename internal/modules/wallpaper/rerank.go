package wallpaper

import (
	"context"
	"fmt"
	"time"

	"wallpapers/internal/domain"
	"wallpapers/internal/repository"
)

const defaultRerankBatch = 500

// RankStore is the storage side of a full priority recomputation.
type RankStore interface {
	RankBatch(ctx context.Context, afterID int64, limit int) ([]repository.RankRow, error)
	UpdatePriority(ctx context.Context, id int64, priority float64) error
}

// Rerank walks every wallpaper in id order and stores its priority at now.
// It returns how many rows were updated before the first error.
func Rerank(ctx context.Context, store RankStore, fn PriorityFunc, now time.Time, batch int) (int, error) {
	if batch <= 0 {
		batch = defaultRerankBatch
	}

	updated := 0
	var afterID int64
	for {
		if err := ctx.Err(); err != nil {
			return updated, err
		}

		rows, err := store.RankBatch(ctx, afterID, batch)
		if err != nil {
			return updated, fmt.Errorf("load batch after id=%d: %w", afterID, err)
		}
		if len(rows) == 0 {
			return updated, nil
		}

		for _, row := range rows {
			w := domain.Wallpaper{ID: row.ID, ViewsCount: row.ViewsCount, CreatedAt: row.CreatedAt}
			if err := store.UpdatePriority(ctx, row.ID, Score(fn, &w, now)); err != nil {
				return updated, fmt.Errorf("update priority id=%d: %w", row.ID, err)
			}
			updated++
		}
		afterID = rows[len(rows)-1].ID

		if len(rows) < batch {
			return updated, nil
		}
	}
}
