package response

import (
	"math"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPagination(t *testing.T) {
	next := func(n int) *int { return &n }

	tests := []struct {
		name       string
		total      int64
		page       int
		totalPages int
		nextPage   *int
	}{
		{name: "empty result", total: 0, page: 1, totalPages: 0},
		{name: "single partial page", total: 5, page: 1, totalPages: 1},
		{name: "first of three", total: 60, page: 1, totalPages: 3, nextPage: next(2)},
		{name: "exact multiple", total: 56, page: 1, totalPages: 2, nextPage: next(2)},
		{name: "last page", total: 60, page: 3, totalPages: 3},
		{name: "past the end", total: 60, page: 9, totalPages: 3},
		{name: "huge page", total: 60, page: math.MaxInt, totalPages: 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewPagination(tt.total, tt.page, 28)
			assert.Equal(t, tt.total, p.ResultsCount)
			assert.Equal(t, tt.page, p.Page)
			assert.Equal(t, 28, p.PerPage)
			assert.Equal(t, tt.totalPages, p.TotalPages)
			assert.Equal(t, tt.nextPage, p.NextPage)
		})
	}
}

func TestPagination_FlattensIntoPayload(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	type payload struct {
		Items []int `json:"items"`
		Pagination
	}
	Success(c, http.StatusOK, payload{Items: []int{1, 2}, Pagination: NewPagination(30, 1, 28)})

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"success":true,"data":{
		"items":[1,2],"results_count":30,"page":1,"per_page":28,"total_pages":2,"next_page":2
	}}`, w.Body.String())
}

func TestNextPageIsNullOnLastPage(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	Success(c, http.StatusOK, NewPagination(3, 1, 28))
	assert.Contains(t, w.Body.String(), `"next_page":null`)
}

func TestErrorEnvelopes(t *testing.T) {
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	ErrorWithDetails(c, http.StatusUnprocessableEntity, "VALIDATION_ERROR", "invalid input", map[string]string{"title": "required"})
	assert.JSONEq(t, `{"success":false,"error":{
		"code":"VALIDATION_ERROR","message":"invalid input","details":{"title":"required"}
	}}`, w.Body.String())

	w = httptest.NewRecorder()
	c, _ = gin.CreateTestContext(w)
	Abort(c, http.StatusForbidden, "FORBIDDEN", "no")
	assert.True(t, c.IsAborted())
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.JSONEq(t, `{"success":false,"error":{"code":"FORBIDDEN","message":"no"}}`, w.Body.String())
}
