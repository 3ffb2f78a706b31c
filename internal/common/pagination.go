package common

import (
	"math"
	"strconv"

	"github.com/gin-gonic/gin"
)

const (
	DefaultPage     = 1
	DefaultPageSize = 10
	MaxPageSize     = 100
)

// GetPaginationParams extracts page/page_size from the query string, clamping
// both into range.
func GetPaginationParams(c *gin.Context) (page, pageSize int) {
	page, err := strconv.Atoi(c.DefaultQuery("page", strconv.Itoa(DefaultPage)))
	if err != nil || page <= 0 {
		page = DefaultPage
	}

	pageSize, err = strconv.Atoi(c.DefaultQuery("page_size", strconv.Itoa(DefaultPageSize)))
	if err != nil || pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	if pageSize > MaxPageSize {
		pageSize = MaxPageSize
	}
	return page, pageSize
}

// OptionalLimit mirrors the users listing contract: pagination applies only
// when limit parses to a positive number. A missing or invalid page means 1.
// ok is false when the full result set should be returned.
func OptionalLimit(pageRaw, limitRaw string) (page, limit int, ok bool) {
	limit, err := strconv.Atoi(limitRaw)
	if err != nil || limit <= 0 {
		return 0, 0, false
	}
	page, err = strconv.Atoi(pageRaw)
	if err != nil || page <= 0 {
		page = DefaultPage
	}
	return page, limit, true
}

// MaxOffset caps computed offsets so that huge page numbers land past the
// last row instead of overflowing.
const MaxOffset = math.MaxInt32

// Offset returns the row offset for a 1-indexed page.
func Offset(page, limit int) int {
	if page <= 0 {
		page = DefaultPage
	}
	if limit <= 0 {
		return 0
	}
	if page-1 > MaxOffset/limit {
		return MaxOffset
	}
	return (page - 1) * limit
}
