package middleware

import (
	"context"
	"errors"
	"net/http"

	"wallpapers/internal/domain"
	"wallpapers/internal/pkg/response"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const ContextActor = "actor"

type UserGetter interface {
	GetByID(ctx context.Context, id int64) (*domain.User, error)
}

// LoadActor resolves the authenticated user id into the stored user. A token
// for a user that no longer exists leaves the request anonymous.
func LoadActor(users UserGetter) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := CurrentUserID(c)
		if !ok {
			c.Next()
			return
		}

		user, err := users.GetByID(c.Request.Context(), id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.Next()
				return
			}
			_ = c.Error(err)
			response.Abort(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load user")
			return
		}

		c.Set(ContextActor, user)
		c.Next()
	}
}

// CurrentUserID returns the user id set by JWTAuth or OptionalJWTAuth.
func CurrentUserID(c *gin.Context) (int64, bool) {
	v, ok := c.Get(ContextUserID)
	if !ok {
		return 0, false
	}
	id, ok := v.(int64)
	return id, ok && id > 0
}

// Actor returns the user loaded by LoadActor, or nil for anonymous requests.
func Actor(c *gin.Context) *domain.User {
	v, ok := c.Get(ContextActor)
	if !ok {
		return nil
	}
	u, _ := v.(*domain.User)
	return u
}
