package wallpaper

import (
	"errors"
	"mime/multipart"
	"net/http"
	"strconv"

	"wallpapers/internal/domain"
	"wallpapers/internal/middleware"
	"wallpapers/internal/modules/media"
	"wallpapers/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes mounts read routes (and delete, which degrades for anonymous
// callers) on public, and write routes on protected.
func (h *Handler) RegisterRoutes(public, protected *gin.RouterGroup) {
	wallpapers := public.Group("/wallpapers")
	{
		wallpapers.GET("", h.List)
		wallpapers.GET("/latest", h.listSorted(SortLatest))
		wallpapers.GET("/top", h.listSorted(SortTop))
		wallpapers.GET("/popular", h.listSorted(SortPriority))
		wallpapers.GET("/:id", h.Show)
		wallpapers.DELETE("/:id", h.Delete)
	}

	tags := public.Group("/tags")
	{
		tags.GET("", h.ListTags)
		tags.GET("/:tag", h.ListTagged)
	}

	own := protected.Group("/wallpapers")
	{
		own.POST("", h.Create)
		own.PATCH("/:id", h.Update)
		own.PUT("/:id", h.Update)
		own.PATCH("/:id/tags", h.UpdateTags)
		own.PUT("/:id/tags", h.UpdateTags)
	}
}

// List godoc
// @Summary List wallpapers
// @Description Search by title (falls back to exact tag), or browse all wallpapers sorted by latest, top or priority. Browsing also returns 4 random picks.
// @Tags Wallpapers
// @Produce json
// @Param search query string false "Search term"
// @Param sort query string false "latest | top | priority" default(priority)
// @Param page query int false "Page number" default(1)
// @Success 200 {object} ListResponse
// @Router /wallpapers [get]
func (h *Handler) List(c *gin.Context) {
	h.list(c, Query{
		Search: c.Query("search"),
		Sort:   ParseSort(c.Query("sort")),
		Page:   pageParam(c),
	})
}

func (h *Handler) listSorted(sort Sort) gin.HandlerFunc {
	return func(c *gin.Context) {
		h.list(c, Query{Sort: sort, Page: pageParam(c)})
	}
}

// ListTagged godoc
// @Summary Wallpapers with a tag
// @Tags Tags
// @Produce json
// @Param tag path string true "Tag name"
// @Param page query int false "Page number" default(1)
// @Success 200 {object} ListResponse
// @Router /tags/{tag} [get]
func (h *Handler) ListTagged(c *gin.Context) {
	h.list(c, Query{Tag: c.Param("tag"), Page: pageParam(c)})
}

func (h *Handler) list(c *gin.Context, q Query) {
	page, err := h.service.List(c.Request.Context(), q)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, ToListResponse(page))
}

// ListTags godoc
// @Summary Tag cloud
// @Tags Tags
// @Produce json
// @Param prefix query string false "Name prefix"
// @Param limit query int false "Max tags" default(50)
// @Success 200 {object} map[string]interface{}
// @Router /tags [get]
func (h *Handler) ListTags(c *gin.Context) {
	limit, _ := strconv.Atoi(c.Query("limit"))

	tags, err := h.service.ListTags(c.Request.Context(), c.Query("prefix"), limit)
	if err != nil {
		h.writeError(c, err)
		return
	}

	out := make([]TagResponse, len(tags))
	for i, t := range tags {
		out[i] = TagResponse{Name: t.Name, Count: t.Count}
	}
	response.Success(c, http.StatusOK, gin.H{"tags": out})
}

// Show godoc
// @Summary Wallpaper detail
// @Description Counts a view and refreshes the priority score.
// @Tags Wallpapers
// @Produce json
// @Param id path int true "Wallpaper ID"
// @Success 200 {object} DetailResponse
// @Failure 404 {object} map[string]interface{}
// @Router /wallpapers/{id} [get]
func (h *Handler) Show(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	actor := middleware.Actor(c)

	d, err := h.service.Show(c.Request.Context(), actor, id, viewerKey(c, actor))
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, ToDetailResponse(d))
}

// Create godoc
// @Summary Upload a wallpaper
// @Tags Wallpapers
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param title formData string true "Title"
// @Param image formData file true "Image (jpeg, png, gif, webp)"
// @Param tag_list formData string false "Comma separated tags"
// @Success 201 {object} WallpaperResponse
// @Failure 400,401 {object} map[string]interface{}
// @Router /wallpapers [post]
func (h *Handler) Create(c *gin.Context) {
	in := CreateInput{
		Title:   c.PostForm("title"),
		TagList: c.PostForm("tag_list"),
	}

	up, closeFn, err := formUpload(c, "image")
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid image upload")
		return
	}
	defer closeFn()
	in.Image = up

	w, err := h.service.Create(c.Request.Context(), middleware.Actor(c), in)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, ToWallpaperResponse(w))
}

// Update godoc
// @Summary Edit a wallpaper
// @Description Only title, image and tag_list are writable. Absent fields are left unchanged.
// @Tags Wallpapers
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param id path int true "Wallpaper ID"
// @Success 200 {object} WallpaperResponse
// @Failure 400,401,403,404 {object} map[string]interface{}
// @Router /wallpapers/{id} [patch]
func (h *Handler) Update(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	var in UpdateInput
	if v, ok := c.GetPostForm("title"); ok {
		in.Title = &v
	}
	if v, ok := c.GetPostForm("tag_list"); ok {
		in.TagList = &v
	}
	up, closeFn, err := formUpload(c, "image")
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid image upload")
		return
	}
	defer closeFn()
	in.Image = up

	w, err := h.service.Update(c.Request.Context(), middleware.Actor(c), id, in)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, ToWallpaperResponse(w))
}

// UpdateTags godoc
// @Summary Replace my tags on a wallpaper
// @Tags Tags
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Wallpaper ID"
// @Param request body TagsRequest true "Tag list"
// @Success 200 {object} WallpaperResponse
// @Router /wallpapers/{id}/tags [patch]
func (h *Handler) UpdateTags(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	var req TagsRequest
	if err := c.ShouldBind(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	w, err := h.service.UpdateTags(c.Request.Context(), middleware.Actor(c), id, req.TagList)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, ToWallpaperResponse(w))
}

// Delete godoc
// @Summary Delete a wallpaper
// @Description Callers that may not delete are redirected (303) back to the wallpaper.
// @Tags Wallpapers
// @Produce json
// @Param id path int true "Wallpaper ID"
// @Success 200 {object} map[string]interface{}
// @Success 303 "Redirect to the wallpaper"
// @Failure 404 {object} map[string]interface{}
// @Router /wallpapers/{id} [delete]
func (h *Handler) Delete(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	outcome, err := h.service.Delete(c.Request.Context(), middleware.Actor(c), id)
	if err != nil {
		h.writeError(c, err)
		return
	}
	if outcome == DeleteDenied {
		c.Redirect(http.StatusSeeOther, c.Request.URL.Path)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"id": id, "deleted": true})
}

func (h *Handler) writeError(c *gin.Context, err error) {
	var verr *ValidationError
	switch {
	case errors.As(err, &verr):
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid wallpaper data", verr.Fields)
	case errors.Is(err, ErrWallpaperNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Wallpaper not found")
	case errors.Is(err, ErrUnauthenticated):
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Sign in required")
	case errors.Is(err, ErrForbidden):
		response.Error(c, http.StatusForbidden, "FORBIDDEN", "You cannot modify this wallpaper")
	default:
		_ = c.Error(err)
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Something went wrong")
	}
}

// formUpload returns nil when the field is absent. The returned func closes the file.
func formUpload(c *gin.Context, field string) (*media.Upload, func(), error) {
	fh, err := c.FormFile(field)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
			return nil, func() {}, nil
		}
		return nil, func() {}, err
	}

	var f multipart.File
	if f, err = fh.Open(); err != nil {
		return nil, func() {}, err
	}
	return &media.Upload{Filename: fh.Filename, Size: fh.Size, Content: f}, func() { _ = f.Close() }, nil
}

func idParam(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid wallpaper id")
		return 0, false
	}
	return id, true
}

func pageParam(c *gin.Context) int {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	return page
}

// viewerKey identifies a viewer for view de-duplication.
func viewerKey(c *gin.Context, actor *domain.User) string {
	if actor != nil {
		return "user:" + strconv.FormatInt(actor.ID, 10)
	}
	if ip := c.ClientIP(); ip != "" {
		return "ip:" + ip
	}
	return ""
}
