package repository

import (
	"context"
	"strings"
	"time"

	"wallpapers/internal/domain"

	"gorm.io/gorm"
)

// WallpaperOrder selects the sort key of an unfiltered listing.
type WallpaperOrder string

const (
	OrderLatest   WallpaperOrder = "latest"
	OrderTop      WallpaperOrder = "top"
	OrderPriority WallpaperOrder = "priority"
)

func (o WallpaperOrder) clause() string {
	switch o {
	case OrderLatest:
		return "created_at DESC, id DESC"
	case OrderTop:
		return "views_count DESC, id DESC"
	default:
		return "priority DESC, id DESC"
	}
}

// WallpaperPager fetches windows of an ordered result set the database can paginate.
type WallpaperPager interface {
	Count(ctx context.Context) (int64, error)
	Page(ctx context.Context, limit, offset int) ([]domain.Wallpaper, error)
}

// SearchResult is either a paginated query (Paged != nil) or a plain slice of
// matches without a database-level order (Items).
type SearchResult struct {
	Paged WallpaperPager
	Items []domain.Wallpaper
}

// IsPaged reports whether the backend can paginate the result itself.
func (r SearchResult) IsPaged() bool {
	return r.Paged != nil
}

// RankRow is the subset of a wallpaper needed to recompute its priority.
type RankRow struct {
	ID         int64
	ViewsCount int64
	CreatedAt  time.Time
}

type WallpaperRepository struct {
	db *gorm.DB
}

func NewWallpaperRepository(db *gorm.DB) *WallpaperRepository {
	return &WallpaperRepository{db: db}
}

// CreateTagged inserts the wallpaper and the uploader's tags in one
// transaction: either both are stored or neither is.
func (r *WallpaperRepository) CreateTagged(ctx context.Context, w *domain.Wallpaper, tags []string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Uploader").Create(w).Error; err != nil {
			return err
		}
		if len(tags) == 0 {
			return nil
		}
		return replaceTaggerTags(tx, w.ID, w.UploaderID, tags)
	})
}

// GetByID fetches a wallpaper with its uploader and tags.
func (r *WallpaperRepository) GetByID(ctx context.Context, id int64) (*domain.Wallpaper, error) {
	var w domain.Wallpaper
	err := r.db.WithContext(ctx).
		Preload("Uploader").
		First(&w, id).Error
	if err != nil {
		return nil, err
	}

	items := []domain.Wallpaper{w}
	if err := r.loadTags(ctx, items); err != nil {
		return nil, err
	}
	return &items[0], nil
}

// GetByIDs returns the wallpapers in the order of ids; unknown ids are skipped.
func (r *WallpaperRepository) GetByIDs(ctx context.Context, ids []int64) ([]domain.Wallpaper, error) {
	if len(ids) == 0 {
		return []domain.Wallpaper{}, nil
	}

	var found []domain.Wallpaper
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&found).Error; err != nil {
		return nil, err
	}

	byID := make(map[int64]domain.Wallpaper, len(found))
	for _, w := range found {
		byID[w.ID] = w
	}
	out := make([]domain.Wallpaper, 0, len(found))
	for _, id := range ids {
		if w, ok := byID[id]; ok {
			out = append(out, w)
		}
	}
	return out, r.loadTags(ctx, out)
}

// ListIDs returns every wallpaper id.
func (r *WallpaperRepository) ListIDs(ctx context.Context) ([]int64, error) {
	var ids []int64
	err := r.db.WithContext(ctx).Model(&domain.Wallpaper{}).Order("id ASC").Pluck("id", &ids).Error
	return ids, err
}

// List returns one window of all wallpapers in the given order.
func (r *WallpaperRepository) List(ctx context.Context, order WallpaperOrder, limit, offset int) ([]domain.Wallpaper, error) {
	var items []domain.Wallpaper
	err := r.db.WithContext(ctx).
		Order(order.clause()).
		Limit(limit).
		Offset(offset).
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, r.loadTags(ctx, items)
}

func (r *WallpaperRepository) Count(ctx context.Context) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(&domain.Wallpaper{}).Count(&total).Error
	return total, err
}

// ListTagged returns wallpapers carrying tag, by priority (ties by id ascending), with the total.
func (r *WallpaperRepository) ListTagged(ctx context.Context, tag string, limit, offset int) ([]domain.Wallpaper, int64, error) {
	var total int64
	if err := r.taggedQuery(ctx, tag).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var items []domain.Wallpaper
	err := r.taggedQuery(ctx, tag).
		Order("priority DESC, id ASC").
		Limit(limit).
		Offset(offset).
		Find(&items).Error
	if err != nil {
		return nil, 0, err
	}
	return items, total, r.loadTags(ctx, items)
}

func (r *WallpaperRepository) taggedQuery(ctx context.Context, tag string) *gorm.DB {
	sub := r.db.Table("wallpaper_tags").
		Select("wallpaper_tags.wallpaper_id").
		Joins("JOIN tags ON tags.id = wallpaper_tags.tag_id").
		Where("tags.name = ?", strings.ToLower(strings.TrimSpace(tag)))

	return r.db.WithContext(ctx).Model(&domain.Wallpaper{}).Where("id IN (?)", sub)
}

// Search matches titles first; those results stay paginated by the database.
// When no title matches, it falls back to an exact tag-name lookup and returns
// a plain slice.
func (r *WallpaperRepository) Search(ctx context.Context, term string) (SearchResult, error) {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return SearchResult{Items: []domain.Wallpaper{}}, nil
	}

	pager := &titlePager{repo: r, pattern: "%" + term + "%"}
	n, err := pager.Count(ctx)
	if err != nil {
		return SearchResult{}, err
	}
	if n > 0 {
		return SearchResult{Paged: pager}, nil
	}

	var items []domain.Wallpaper
	if err := r.taggedQuery(ctx, term).Find(&items).Error; err != nil {
		return SearchResult{}, err
	}
	return SearchResult{Items: items}, r.loadTags(ctx, items)
}

type titlePager struct {
	repo    *WallpaperRepository
	pattern string
}

func (p *titlePager) query(ctx context.Context) *gorm.DB {
	return p.repo.db.WithContext(ctx).Model(&domain.Wallpaper{}).Where("LOWER(title) LIKE ?", p.pattern)
}

func (p *titlePager) Count(ctx context.Context) (int64, error) {
	var n int64
	err := p.query(ctx).Count(&n).Error
	return n, err
}

func (p *titlePager) Page(ctx context.Context, limit, offset int) ([]domain.Wallpaper, error) {
	var items []domain.Wallpaper
	err := p.query(ctx).
		Order(OrderPriority.clause()).
		Limit(limit).
		Offset(offset).
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, p.repo.loadTags(ctx, items)
}

// ListByUploader returns a user's uploads, newest first.
func (r *WallpaperRepository) ListByUploader(ctx context.Context, userID int64) ([]domain.Wallpaper, error) {
	var items []domain.Wallpaper
	err := r.db.WithContext(ctx).
		Where("uploader_id = ?", userID).
		Order(OrderLatest.clause()).
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, r.loadTags(ctx, items)
}

// UpdateFields persists the user-editable columns.
func (r *WallpaperRepository) UpdateFields(ctx context.Context, w *domain.Wallpaper) error {
	return r.db.WithContext(ctx).
		Model(&domain.Wallpaper{ID: w.ID}).
		Select("title", "image_id", "image_url", "thumbnail_url").
		Updates(w).Error
}

// UpdateTagged persists the editable columns and replaces taggerID's tags in
// one transaction.
func (r *WallpaperRepository) UpdateTagged(ctx context.Context, w *domain.Wallpaper, taggerID int64, tags []string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&domain.Wallpaper{ID: w.ID}).
			Select("title", "image_id", "image_url", "thumbnail_url").
			Updates(w)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return replaceTaggerTags(tx, w.ID, taggerID, tags)
	})
}

// UpdatePriority stores a recomputed score without touching updated_at.
func (r *WallpaperRepository) UpdatePriority(ctx context.Context, id int64, priority float64) error {
	return r.db.WithContext(ctx).
		Model(&domain.Wallpaper{}).
		Where("id = ?", id).
		UpdateColumn("priority", priority).Error
}

// IncrementViews atomically bumps views_count and returns the new value.
func (r *WallpaperRepository) IncrementViews(ctx context.Context, id int64) (int64, error) {
	tx := r.db.WithContext(ctx).
		Model(&domain.Wallpaper{}).
		Where("id = ?", id).
		UpdateColumn("views_count", gorm.Expr("views_count + 1"))
	if tx.Error != nil {
		return 0, tx.Error
	}
	if tx.RowsAffected == 0 {
		return 0, gorm.ErrRecordNotFound
	}
	return r.GetViews(ctx, id)
}

func (r *WallpaperRepository) GetViews(ctx context.Context, id int64) (int64, error) {
	var views []int64
	err := r.db.WithContext(ctx).Model(&domain.Wallpaper{}).Where("id = ?", id).Pluck("views_count", &views).Error
	if err != nil {
		return 0, err
	}
	if len(views) == 0 {
		return 0, gorm.ErrRecordNotFound
	}
	return views[0], nil
}

// Delete removes the wallpaper together with its favorites and tag links.
func (r *WallpaperRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("wallpaper_id = ?", id).Delete(&domain.Favorite{}).Error; err != nil {
			return err
		}
		if err := tx.Where("wallpaper_id = ?", id).Delete(&domain.WallpaperTag{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&domain.Wallpaper{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

// RankBatch returns up to limit rows with id > afterID, in id order.
func (r *WallpaperRepository) RankBatch(ctx context.Context, afterID int64, limit int) ([]RankRow, error) {
	var rows []RankRow
	err := r.db.WithContext(ctx).
		Model(&domain.Wallpaper{}).
		Select("id, views_count, created_at").
		Where("id > ?", afterID).
		Order("id ASC").
		Limit(limit).
		Scan(&rows).Error
	return rows, err
}

type tagRow struct {
	WallpaperID int64
	Name        string
}

// loadTags fills Tags on every item with one query.
func (r *WallpaperRepository) loadTags(ctx context.Context, items []domain.Wallpaper) error {
	if len(items) == 0 {
		return nil
	}
	ids := make([]int64, len(items))
	for i := range items {
		ids[i] = items[i].ID
		items[i].Tags = []string{}
	}

	var rows []tagRow
	err := r.db.WithContext(ctx).
		Table("wallpaper_tags").
		Select("DISTINCT wallpaper_tags.wallpaper_id, tags.name").
		Joins("JOIN tags ON tags.id = wallpaper_tags.tag_id").
		Where("wallpaper_tags.wallpaper_id IN ?", ids).
		Order("tags.name ASC").
		Scan(&rows).Error
	if err != nil {
		return err
	}

	idx := make(map[int64][]int, len(items))
	for i := range items {
		idx[items[i].ID] = append(idx[items[i].ID], i)
	}
	for _, row := range rows {
		for _, i := range idx[row.WallpaperID] {
			items[i].Tags = append(items[i].Tags, row.Name)
		}
	}
	return nil
}
