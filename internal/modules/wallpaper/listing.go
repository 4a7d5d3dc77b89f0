package wallpaper

import (
	"context"
	"math"
	"sort"
	"strings"

	"wallpapers/internal/domain"
	"wallpapers/internal/repository"
)

const (
	PerPage    = 28
	PicksCount = 4
)

type Sort string

const (
	SortPriority Sort = "priority"
	SortLatest   Sort = "latest"
	SortTop      Sort = "top"
)

// ParseSort maps a query value to a sort mode; unknown values mean priority.
func ParseSort(s string) Sort {
	switch Sort(strings.ToLower(strings.TrimSpace(s))) {
	case SortLatest:
		return SortLatest
	case SortTop:
		return SortTop
	default:
		return SortPriority
	}
}

func (s Sort) order() repository.WallpaperOrder {
	switch s {
	case SortLatest:
		return repository.OrderLatest
	case SortTop:
		return repository.OrderTop
	default:
		return repository.OrderPriority
	}
}

// Query selects one listing. Search wins over Tag; with neither set the whole
// collection is browsed in Sort order.
type Query struct {
	Search string
	Tag    string
	Sort   Sort
	Page   int
}

// Page is one window of a listing. Picks is only filled when browsing.
type Page struct {
	Items   []domain.Wallpaper
	Total   int64
	Page    int
	PerPage int
	Picks   []domain.Wallpaper
}

func newPage(items []domain.Wallpaper, total int64, page int) *Page {
	if items == nil {
		items = []domain.Wallpaper{}
	}
	return &Page{Items: items, Total: total, Page: page, PerPage: PerPage}
}

// maxPage is the last page whose offset fits in an int.
const maxPage = math.MaxInt/PerPage + 1

// pageOffset returns the row offset of page. Pages past maxPage all map to
// the largest offset, which is past the end of any result.
func pageOffset(page int) int {
	if page > maxPage {
		page = maxPage
	}
	return (page - 1) * PerPage
}

// List runs q. Pages past the end come back empty, never as an error.
func (s *Service) List(ctx context.Context, q Query) (*Page, error) {
	page := q.Page
	if page < 1 {
		page = 1
	}
	offset := pageOffset(page)

	if term := strings.TrimSpace(q.Search); term != "" {
		return s.search(ctx, term, page, offset)
	}

	if tag := strings.TrimSpace(q.Tag); tag != "" {
		items, total, err := s.wallpapers.ListTagged(ctx, tag, PerPage, offset)
		if err != nil {
			return nil, err
		}
		return newPage(items, total, page), nil
	}

	total, err := s.wallpapers.Count(ctx)
	if err != nil {
		return nil, err
	}
	var items []domain.Wallpaper
	if int64(offset) < total {
		items, err = s.wallpapers.List(ctx, q.Sort.order(), PerPage, offset)
		if err != nil {
			return nil, err
		}
	}
	picks, err := s.Picks(ctx, PicksCount)
	if err != nil {
		return nil, err
	}

	p := newPage(items, total, page)
	p.Picks = picks
	return p, nil
}

func (s *Service) search(ctx context.Context, term string, page, offset int) (*Page, error) {
	res, err := s.wallpapers.Search(ctx, term)
	if err != nil {
		return nil, err
	}

	if res.IsPaged() {
		total, err := res.Paged.Count(ctx)
		if err != nil {
			return nil, err
		}
		items, err := res.Paged.Page(ctx, PerPage, offset)
		if err != nil {
			return nil, err
		}
		return newPage(items, total, page), nil
	}

	return paginate(res.Items, page, offset), nil
}

// paginate windows an in-memory result, highest priority first.
func paginate(all []domain.Wallpaper, page, offset int) *Page {
	sorted := make([]domain.Wallpaper, len(all))
	copy(sorted, all)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Priority > sorted[j].Priority
	})

	var items []domain.Wallpaper
	if offset >= 0 && offset < len(sorted) {
		end := offset + PerPage
		if end > len(sorted) {
			end = len(sorted)
		}
		items = sorted[offset:end]
	}
	return newPage(items, int64(len(sorted)), page)
}

// Picks samples up to n distinct wallpapers uniformly from the whole collection.
func (s *Service) Picks(ctx context.Context, n int) ([]domain.Wallpaper, error) {
	ids, err := s.wallpapers.ListIDs(ctx)
	if err != nil {
		return nil, err
	}
	if n > len(ids) {
		n = len(ids)
	}
	if n <= 0 {
		return []domain.Wallpaper{}, nil
	}

	// partial Fisher-Yates: the first n slots end up a uniform sample
	s.mu.Lock()
	for i := 0; i < n; i++ {
		j := i + s.intN(len(ids)-i)
		ids[i], ids[j] = ids[j], ids[i]
	}
	s.mu.Unlock()

	return s.wallpapers.GetByIDs(ctx, ids[:n])
}
