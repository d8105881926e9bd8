package pagination

import (
	"strconv"

	"github.com/docwell/editor-server/internal/pkg/response"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const (
	DefaultPage = 1
	DefaultSize = 20
	MaxSize     = 100
)

// Query holds parsed pagination parameters.
type Query struct {
	Page int
	Size int
}

// Offset is the number of rows skipped before this page.
func (q Query) Offset() int { return (q.Page - 1) * q.Size }

// FromContext reads page and size from the query string. per_page is accepted
// as an alias of size.
func FromContext(c *gin.Context) Query {
	sizeRaw := c.Query("size")
	if sizeRaw == "" {
		sizeRaw = c.Query("per_page")
	}
	return Normalize(parseIntOr(c.Query("page"), DefaultPage), parseIntOr(sizeRaw, DefaultSize))
}

// Normalize clamps page and size into their valid ranges.
func Normalize(page, size int) Query {
	if page < 1 {
		page = DefaultPage
	}
	if size < 1 {
		size = DefaultSize
	}
	if size > MaxSize {
		size = MaxSize
	}
	return Query{Page: page, Size: size}
}

// Meta builds the pagination block for total matching rows.
func Meta(total int64, q Query) response.Pagination {
	totalPage := 0
	if q.Size > 0 {
		totalPage = int((total + int64(q.Size) - 1) / int64(q.Size))
	}
	return response.Pagination{
		Total:       total,
		CurrentPage: q.Page,
		TotalPage:   totalPage,
		Size:        q.Size,
		HasNextPage: q.Page < totalPage,
	}
}

// Paginate counts the rows matched by db, then loads one page into dest.
func Paginate[T any](db *gorm.DB, q Query, dest *[]T) (response.Pagination, error) {
	var total int64
	if err := db.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return response.Pagination{}, err
	}
	if total == 0 {
		return Meta(0, q), nil
	}
	if err := db.Session(&gorm.Session{}).Offset(q.Offset()).Limit(q.Size).Find(dest).Error; err != nil {
		return response.Pagination{}, err
	}
	return Meta(total, q), nil
}

func parseIntOr(s string, def int) int {
	v, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return v
}
