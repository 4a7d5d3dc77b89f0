package wallpaper

import (
	"time"

	"wallpapers/internal/domain"
	"wallpapers/internal/modules/media"
	"wallpapers/internal/pkg/response"
	"wallpapers/internal/pkg/utils"
)

// CreateInput carries the only fields a client may set on a new wallpaper.
type CreateInput struct {
	Title   string        `form:"title" validate:"required,max=120"`
	Image   *media.Upload `form:"image" validate:"required"`
	TagList string        `form:"tag_list"`
}

// UpdateInput changes the fields that are non-nil.
type UpdateInput struct {
	Title   *string       `form:"title" validate:"omitnil,min=1,max=120"`
	Image   *media.Upload `form:"image"`
	TagList *string       `form:"tag_list"`
}

type TagsRequest struct {
	TagList string `form:"tag_list" json:"tag_list"`
}

// Detail is a wallpaper as seen by one actor.
type Detail struct {
	Wallpaper  *domain.Wallpaper
	Favoriters []domain.User
	IsFavorite bool
	CanDelete  bool
	// MyTags are the tags the actor applied, for the tag edit form.
	MyTags []string
}

type DeleteOutcome int

const (
	DeleteDenied DeleteOutcome = iota
	Deleted
)

type UserBrief struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Rank int    `json:"rank"`
}

type WallpaperResponse struct {
	ID           int64      `json:"id"`
	Title        string     `json:"title"`
	ImageURL     string     `json:"image_url"`
	ThumbnailURL string     `json:"thumbnail_url,omitempty"`
	UploaderID   int64      `json:"uploader_id"`
	Uploader     *UserBrief `json:"uploader,omitempty"`
	ViewsCount   int64      `json:"views_count"`
	Priority     float64    `json:"priority"`
	Tags         []string   `json:"tags"`
	CreatedAt    time.Time  `json:"created_at"`
}

type ListResponse struct {
	Wallpapers []WallpaperResponse `json:"wallpapers"`
	response.Pagination
	Picks []WallpaperResponse `json:"picks,omitempty"`
}

type DetailResponse struct {
	Wallpaper      WallpaperResponse `json:"wallpaper"`
	Favoriters     []UserBrief       `json:"favoriters"`
	FavoritesCount int               `json:"favorites_count"`
	IsFavorite     bool              `json:"is_favorite"`
	CanDelete      bool              `json:"can_delete"`
	MyTags         []string          `json:"my_tags"`
	TagList        string            `json:"tag_list"`
}

type TagResponse struct {
	Name  string `json:"name"`
	Count int64  `json:"count"`
}

func ToUserBrief(u *domain.User) UserBrief {
	return UserBrief{ID: u.ID, Name: u.Name, Rank: u.Rank}
}

func ToUserBriefs(users []domain.User) []UserBrief {
	out := make([]UserBrief, len(users))
	for i := range users {
		out[i] = ToUserBrief(&users[i])
	}
	return out
}

func ToWallpaperResponse(w *domain.Wallpaper) WallpaperResponse {
	resp := WallpaperResponse{
		ID:           w.ID,
		Title:        w.Title,
		ImageURL:     w.ImageURL,
		ThumbnailURL: w.ThumbnailURL,
		UploaderID:   w.UploaderID,
		ViewsCount:   w.ViewsCount,
		Priority:     w.Priority,
		Tags:         w.Tags,
		CreatedAt:    w.CreatedAt,
	}
	if resp.Tags == nil {
		resp.Tags = []string{}
	}
	if w.Uploader != nil {
		brief := ToUserBrief(w.Uploader)
		resp.Uploader = &brief
	}
	return resp
}

func ToWallpaperResponses(items []domain.Wallpaper) []WallpaperResponse {
	out := make([]WallpaperResponse, len(items))
	for i := range items {
		out[i] = ToWallpaperResponse(&items[i])
	}
	return out
}

func ToListResponse(p *Page) ListResponse {
	resp := ListResponse{
		Wallpapers: ToWallpaperResponses(p.Items),
		Pagination: response.NewPagination(p.Total, p.Page, p.PerPage),
	}
	if p.Picks != nil {
		resp.Picks = ToWallpaperResponses(p.Picks)
	}
	return resp
}

func ToDetailResponse(d *Detail) DetailResponse {
	myTags := d.MyTags
	if myTags == nil {
		myTags = []string{}
	}
	return DetailResponse{
		Wallpaper:      ToWallpaperResponse(d.Wallpaper),
		Favoriters:     ToUserBriefs(d.Favoriters),
		FavoritesCount: len(d.Favoriters),
		IsFavorite:     d.IsFavorite,
		CanDelete:      d.CanDelete,
		MyTags:         myTags,
		TagList:        utils.JoinTagList(myTags),
	}
}
