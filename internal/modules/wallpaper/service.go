package wallpaper

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math/rand/v2"
	"sort"
	"strings"
	"sync"
	"time"

	"wallpapers/internal/domain"
	"wallpapers/internal/modules/media"
	"wallpapers/internal/pkg/utils"
	"wallpapers/internal/pkg/validator"

	"gorm.io/gorm"
)

const (
	defaultTagCloudLimit = 50
	maxTagCloudLimit     = 200
)

// Service contains the wallpaper business logic: listing, detail views,
// create/edit/delete and tagging.
type Service struct {
	wallpapers WallpaperRepository
	tags       TagRepository
	favorites  FavoriteReader
	images     ImageStore
	views      ViewCounter
	notifier   Notifier
	priority   PriorityFunc
	now        func() time.Time

	mu  sync.Mutex // guards rng
	rng *rand.Rand
}

type Option func(*Service)

func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// WithRand makes editor's picks reproducible.
func WithRand(r *rand.Rand) Option {
	return func(s *Service) { s.rng = r }
}

func WithPriority(fn PriorityFunc) Option {
	return func(s *Service) { s.priority = fn }
}

func WithNotifier(n Notifier) Option {
	return func(s *Service) { s.notifier = n }
}

func NewService(
	wallpapers WallpaperRepository,
	tags TagRepository,
	favorites FavoriteReader,
	images ImageStore,
	views ViewCounter,
	opts ...Option,
) *Service {
	s := &Service{
		wallpapers: wallpapers,
		tags:       tags,
		favorites:  favorites,
		images:     images,
		views:      views,
		notifier:   noopNotifier{},
		priority:   DefaultPriority,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Service) intN(n int) int {
	if s.rng == nil {
		return rand.IntN(n)
	}
	return s.rng.IntN(n)
}

// Create stores the image and the wallpaper, tags it on behalf of the
// uploader and scores it as a fresh upload.
func (s *Service) Create(ctx context.Context, actor *domain.User, in CreateInput) (*domain.Wallpaper, error) {
	if actor == nil {
		return nil, ErrUnauthenticated
	}

	in.Title = strings.TrimSpace(in.Title)
	fields := validator.Validate(in)
	tags, invalid := utils.ParseTagList(in.TagList)
	if len(invalid) > 0 {
		fields = withField(fields, "tag_list", "max")
	}
	if len(fields) > 0 {
		return nil, &ValidationError{Fields: fields}
	}

	img, err := s.saveImage(ctx, actor.ID, *in.Image)
	if err != nil {
		return nil, err
	}

	now := s.now()
	w := &domain.Wallpaper{
		Title:        in.Title,
		ImageID:      img.ID,
		ImageURL:     img.FileURL,
		ThumbnailURL: img.ThumbnailURL,
		UploaderID:   actor.ID,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	w.Priority = Score(s.priority, w, now)

	if err := s.wallpapers.CreateTagged(ctx, w, tags); err != nil {
		s.discardImage(ctx, img.ID)
		return nil, fmt.Errorf("create wallpaper: %w", err)
	}

	w.Tags = sortedCopy(tags)
	w.Uploader = actor
	s.notifier.WallpaperCreated(ctx, w)
	return w, nil
}

// Show returns the wallpaper for a detail view. The view is counted for
// viewer and the priority is refreshed; a failed refresh is only logged.
func (s *Service) Show(ctx context.Context, actor *domain.User, id int64, viewer string) (*Detail, error) {
	w, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}

	views, err := s.views.Record(ctx, id, viewer)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrWallpaperNotFound
		}
		return nil, fmt.Errorf("record view: %w", err)
	}
	w.ViewsCount = views
	w.Priority = Score(s.priority, w, s.now())
	if err := s.wallpapers.UpdatePriority(ctx, id, w.Priority); err != nil {
		log.Printf("wallpaper: priority refresh failed wallpaper_id=%d err=%v", id, err)
	}

	favoriters, err := s.favorites.ListFavoriters(ctx, id)
	if err != nil {
		return nil, err
	}

	d := &Detail{
		Wallpaper:  w,
		Favoriters: favoriters,
		CanDelete:  CanDelete(actor, w),
	}
	if actor != nil {
		for _, u := range favoriters {
			if u.ID == actor.ID {
				d.IsFavorite = true
				break
			}
		}
		d.MyTags, err = s.tags.TaggerTags(ctx, id, actor.ID)
		if err != nil {
			return nil, err
		}
	}
	return d, nil
}

// Update changes title, image and the actor's tags. Only actors that may
// delete the wallpaper may edit it.
func (s *Service) Update(ctx context.Context, actor *domain.User, id int64, in UpdateInput) (*domain.Wallpaper, error) {
	if actor == nil {
		return nil, ErrUnauthenticated
	}
	w, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !CanDelete(actor, w) {
		return nil, ErrForbidden
	}

	if in.Title != nil {
		t := strings.TrimSpace(*in.Title)
		in.Title = &t
	}
	fields := validator.Validate(in)
	var tags []string
	if in.TagList != nil {
		var invalid []string
		tags, invalid = utils.ParseTagList(*in.TagList)
		if len(invalid) > 0 {
			fields = withField(fields, "tag_list", "max")
		}
	}
	if len(fields) > 0 {
		return nil, &ValidationError{Fields: fields}
	}

	oldImageID := ""
	if in.Image != nil {
		img, err := s.saveImage(ctx, actor.ID, *in.Image)
		if err != nil {
			return nil, err
		}
		oldImageID = w.ImageID
		w.ImageID = img.ID
		w.ImageURL = img.FileURL
		w.ThumbnailURL = img.ThumbnailURL
	}
	if in.Title != nil {
		w.Title = *in.Title
	}

	if in.TagList != nil {
		err = s.wallpapers.UpdateTagged(ctx, w, actor.ID, tags)
	} else {
		err = s.wallpapers.UpdateFields(ctx, w)
	}
	if err != nil {
		if in.Image != nil {
			s.discardImage(ctx, w.ImageID)
		}
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrWallpaperNotFound
		}
		return nil, fmt.Errorf("update wallpaper %d: %w", id, err)
	}
	if oldImageID != "" {
		s.discardImage(ctx, oldImageID)
	}

	return s.get(ctx, id)
}

// UpdateTags replaces the tags actor has applied to the wallpaper. Any
// signed-in user may tag; tags of other users are kept.
func (s *Service) UpdateTags(ctx context.Context, actor *domain.User, id int64, tagList string) (*domain.Wallpaper, error) {
	if actor == nil {
		return nil, ErrUnauthenticated
	}
	if _, err := s.get(ctx, id); err != nil {
		return nil, err
	}

	tags, invalid := utils.ParseTagList(tagList)
	if len(invalid) > 0 {
		return nil, &ValidationError{Fields: map[string]string{"tag_list": "max"}}
	}
	if err := s.tags.ReplaceTaggerTags(ctx, id, actor.ID, tags); err != nil {
		return nil, fmt.Errorf("tag wallpaper %d: %w", id, err)
	}
	return s.get(ctx, id)
}

// Delete removes the wallpaper when the policy allows it. A refused actor is
// not an error: the outcome is DeleteDenied and nothing changes.
func (s *Service) Delete(ctx context.Context, actor *domain.User, id int64) (DeleteOutcome, error) {
	w, err := s.get(ctx, id)
	if err != nil {
		return DeleteDenied, err
	}
	if !CanDelete(actor, w) {
		return DeleteDenied, nil
	}

	if err := s.wallpapers.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return DeleteDenied, ErrWallpaperNotFound
		}
		return DeleteDenied, fmt.Errorf("delete wallpaper %d: %w", id, err)
	}

	s.discardImage(ctx, w.ImageID)
	s.notifier.WallpaperDeleted(ctx, id)
	return Deleted, nil
}

// ListTags returns tag usage counts for the tag cloud.
func (s *Service) ListTags(ctx context.Context, prefix string, limit int) ([]domain.TagCount, error) {
	if limit <= 0 {
		limit = defaultTagCloudLimit
	}
	if limit > maxTagCloudLimit {
		limit = maxTagCloudLimit
	}
	return s.tags.Popular(ctx, prefix, limit)
}

func (s *Service) get(ctx context.Context, id int64) (*domain.Wallpaper, error) {
	w, err := s.wallpapers.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrWallpaperNotFound
		}
		return nil, err
	}
	return w, nil
}

// saveImage stores the upload; rejected files come back as a ValidationError on "image".
func (s *Service) saveImage(ctx context.Context, userID int64, up media.Upload) (*domain.Image, error) {
	img, err := s.images.Save(ctx, userID, up)
	if err == nil {
		return img, nil
	}
	switch {
	case errors.Is(err, media.ErrEmptyFile):
		return nil, &ValidationError{Fields: map[string]string{"image": "required"}}
	case errors.Is(err, media.ErrFileTooLarge):
		return nil, &ValidationError{Fields: map[string]string{"image": "max_size"}}
	case errors.Is(err, media.ErrInvalidMimeType):
		return nil, &ValidationError{Fields: map[string]string{"image": "mime"}}
	}
	return nil, fmt.Errorf("store image: %w", err)
}

func (s *Service) discardImage(ctx context.Context, imageID string) {
	if imageID == "" {
		return
	}
	if err := s.images.Delete(ctx, imageID); err != nil && !errors.Is(err, media.ErrImageNotFound) {
		log.Printf("wallpaper: image cleanup failed image_id=%s err=%v", imageID, err)
	}
}

func withField(fields map[string]string, name, rule string) map[string]string {
	if fields == nil {
		fields = make(map[string]string)
	}
	if _, ok := fields[name]; !ok {
		fields[name] = rule
	}
	return fields
}

func sortedCopy(tags []string) []string {
	out := make([]string, len(tags))
	copy(out, tags)
	sort.Strings(out)
	return out
}
