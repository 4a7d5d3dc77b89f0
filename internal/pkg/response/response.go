package response

import "github.com/gin-gonic/gin"

func Success(c *gin.Context, statusCode int, data interface{}) {
	c.JSON(statusCode, gin.H{
		"success": true,
		"data":    data,
	})
}

func Error(c *gin.Context, statusCode int, code string, message string) {
	c.JSON(statusCode, gin.H{
		"success": false,
		"error": gin.H{
			"code":    code,
			"message": message,
		},
	})
}

func ErrorWithDetails(c *gin.Context, statusCode int, code string, message string, details any) {
	c.JSON(statusCode, gin.H{
		"success": false,
		"error": gin.H{
			"code":    code,
			"message": message,
			"details": details,
		},
	})
}

// Pagination is the paging block of a list payload. Embed it in the payload
// struct so its fields sit next to the items.
type Pagination struct {
	ResultsCount int64 `json:"results_count"`
	Page         int   `json:"page"`
	PerPage      int   `json:"per_page"`
	TotalPages   int   `json:"total_pages"`
	NextPage     *int  `json:"next_page"`
}

// NewPagination describes page of a result holding total rows. NextPage is
// nil on the last page and on any page past it.
func NewPagination(total int64, page, perPage int) Pagination {
	p := Pagination{ResultsCount: total, Page: page, PerPage: perPage}
	if perPage > 0 && total > 0 {
		p.TotalPages = int((total + int64(perPage) - 1) / int64(perPage))
	}
	if page >= 1 && page < p.TotalPages {
		next := page + 1
		p.NextPage = &next
	}
	return p
}

// Abort writes an error envelope and stops the handler chain.
func Abort(c *gin.Context, statusCode int, code string, message string) {
	c.AbortWithStatusJSON(statusCode, gin.H{
		"success": false,
		"error": gin.H{
			"code":    code,
			"message": message,
		},
	})
}
