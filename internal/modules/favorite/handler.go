package favorite

import (
	"errors"
	"net/http"
	"strconv"

	"wallpapers/internal/middleware"
	"wallpapers/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

// Handler обрабатывает HTTP запросы для избранного
type Handler struct {
	service *Service
}

// NewHandler создаёт новый handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes регистрирует routes для избранного
func (h *Handler) RegisterRoutes(public, protected *gin.RouterGroup) {
	public.GET("/wallpapers/:id/favoriters", h.ListFavoriters)
	public.GET("/users/:id/favorites", h.ListFavorites)

	protected.GET("/wallpapers/:id/favorite", h.CheckFavorite)
	protected.POST("/wallpapers/:id/favorite", h.AddFavorite)
	protected.DELETE("/wallpapers/:id/favorite", h.RemoveFavorite)
}

// AddFavorite добавляет обои в избранное текущего пользователя
//
// @Summary Добавить обои в избранное
// @Description Повторное добавление не создаёт дубликат
// @Tags Favorite
// @Produce json
// @Security BearerAuth
// @Param id path int64 true "ID обоев"
// @Success 200 {object} CheckFavoriteResponse
// @Failure 400,401,404,500 {object} map[string]interface{}
// @Router /wallpapers/{id}/favorite [post]
func (h *Handler) AddFavorite(c *gin.Context) {
	wallpaperID, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.service.Favorite(c.Request.Context(), middleware.Actor(c), wallpaperID); err != nil {
		writeError(c, err)
		return
	}
	h.writeState(c, wallpaperID, true)
}

// RemoveFavorite удаляет обои из избранного текущего пользователя
//
// @Summary Удалить обои из избранного
// @Tags Favorite
// @Produce json
// @Security BearerAuth
// @Param id path int64 true "ID обоев"
// @Success 200 {object} CheckFavoriteResponse
// @Failure 400,401,404,500 {object} map[string]interface{}
// @Router /wallpapers/{id}/favorite [delete]
func (h *Handler) RemoveFavorite(c *gin.Context) {
	wallpaperID, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.service.Unfavorite(c.Request.Context(), middleware.Actor(c), wallpaperID); err != nil {
		writeError(c, err)
		return
	}
	h.writeState(c, wallpaperID, false)
}

// CheckFavorite проверяет, находятся ли обои в избранном пользователя
//
// @Summary Проверить избранное
// @Tags Favorite
// @Produce json
// @Security BearerAuth
// @Param id path int64 true "ID обоев"
// @Success 200 {object} CheckFavoriteResponse
// @Router /wallpapers/{id}/favorite [get]
func (h *Handler) CheckFavorite(c *gin.Context) {
	wallpaperID, ok := parseID(c)
	if !ok {
		return
	}
	actor := middleware.Actor(c)
	if actor == nil {
		writeError(c, ErrUnauthenticated)
		return
	}

	isFavorite, err := h.service.IsFavorite(c.Request.Context(), actor.ID, wallpaperID)
	if err != nil {
		writeError(c, err)
		return
	}
	h.writeState(c, wallpaperID, isFavorite)
}

// writeState отвечает текущим состоянием кнопки "в избранное" вместе со счётчиком
func (h *Handler) writeState(c *gin.Context, wallpaperID int64, isFavorite bool) {
	count, err := h.service.CountFavorites(c.Request.Context(), wallpaperID)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, CheckFavoriteResponse{
		WallpaperID:    wallpaperID,
		IsFavorite:     isFavorite,
		FavoritesCount: count,
	})
}

// ListFavoriters возвращает пользователей, добавивших обои в избранное
//
// @Summary Кто добавил в избранное
// @Tags Favorite
// @Produce json
// @Param id path int64 true "ID обоев"
// @Success 200 {object} FavoritersResponse
// @Failure 404 {object} map[string]interface{}
// @Router /wallpapers/{id}/favoriters [get]
func (h *Handler) ListFavoriters(c *gin.Context) {
	wallpaperID, ok := parseID(c)
	if !ok {
		return
	}

	users, err := h.service.ListFavoriters(c.Request.Context(), wallpaperID)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, ToFavoritersResponse(wallpaperID, users))
}

// ListFavorites возвращает избранное пользователя, новые первыми
//
// @Summary Избранное пользователя
// @Tags Favorite
// @Produce json
// @Param id path int64 true "ID пользователя"
// @Success 200 {object} FavoriteListResponse
// @Failure 404 {object} map[string]interface{}
// @Router /users/{id}/favorites [get]
func (h *Handler) ListFavorites(c *gin.Context) {
	userID, ok := parseID(c)
	if !ok {
		return
	}

	items, err := h.service.ListFavorites(c.Request.Context(), userID)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, ToFavoriteListResponse(userID, items))
}

func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrUnauthenticated):
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Sign in required")
	case errors.Is(err, ErrWallpaperNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Wallpaper not found")
	case errors.Is(err, ErrUserNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "User not found")
	case errors.Is(err, ErrFavoriteNotFound):
		response.Error(c, http.StatusNotFound, "FAVORITE_NOT_FOUND", "Wallpaper is not in favorites")
	default:
		_ = c.Error(err)
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to process favorite")
	}
}

func parseID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid id")
		return 0, false
	}
	return id, true
}
