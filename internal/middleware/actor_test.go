package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"wallpapers/internal/domain"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

type stubUsers map[int64]*domain.User

func (s stubUsers) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	if id == 500 {
		return nil, errors.New("db down")
	}
	u, ok := s[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return u, nil
}

func TestLoadActor(t *testing.T) {
	users := stubUsers{7: {ID: 7, Name: "ann", Rank: 2}}

	tests := []struct {
		name       string
		userID     any
		wantStatus int
		wantActor  string
	}{
		{name: "anonymous", userID: nil, wantStatus: http.StatusOK, wantActor: ""},
		{name: "known user", userID: int64(7), wantStatus: http.StatusOK, wantActor: "ann"},
		{name: "deleted user", userID: int64(8), wantStatus: http.StatusOK, wantActor: ""},
		{name: "lookup failure", userID: int64(500), wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := gin.New()
			router.Use(func(c *gin.Context) {
				if tt.userID != nil {
					c.Set(ContextUserID, tt.userID)
				}
				c.Next()
			})
			router.Use(LoadActor(users))
			router.GET("/who", func(c *gin.Context) {
				name := ""
				if a := Actor(c); a != nil {
					name = a.Name
				}
				c.JSON(http.StatusOK, gin.H{"name": name})
			})

			w := httptest.NewRecorder()
			router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/who", nil))

			assert.Equal(t, tt.wantStatus, w.Code)
			if tt.wantStatus == http.StatusOK {
				assert.JSONEq(t, `{"name":"`+tt.wantActor+`"}`, w.Body.String())
			}
		})
	}
}
