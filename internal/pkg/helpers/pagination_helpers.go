package helpers

import (
	"math"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/scribnotes/scribnotes/internal/app/models/dto"
)

const (
	// PageSize is the fixed number of items per collection page.
	PageSize = 10
	// DefaultPage is 1-based.
	DefaultPage = 1
)

// CalculateOffsetLimit calculates the offset and limit for SQL queries based
// on a 1-based page index.
func CalculateOffsetLimit(page int) (offset uint64, limit int) {
	if page < 1 {
		page = DefaultPage
	}
	return uint64((page - 1) * PageSize), PageSize
}

// NewPaginationInfo creates a standard PaginationInfo DTO.
// page should be the 1-based page number.
func NewPaginationInfo(totalItems int64, page int) dto.PaginationInfo {
	if page < 1 {
		page = DefaultPage
	}

	totalPages := 0
	if totalItems > 0 {
		totalPages = int(math.Ceil(float64(totalItems) / float64(PageSize)))
	} else if page == 1 {
		totalPages = 1
	}

	currentPage := page
	if totalPages > 0 && currentPage > totalPages {
		currentPage = totalPages
	}

	return dto.PaginationInfo{
		CurrentPage: currentPage,
		TotalPages:  totalPages,
		PageSize:    PageSize,
		TotalItems:  totalItems,
	}
}

// ParsePageParam extracts and validates the page parameter from the request.
func ParsePageParam(c *gin.Context) int {
	pageStr := c.DefaultQuery("page", "1")
	page, err := strconv.Atoi(pageStr)
	if err != nil || page < 1 {
		return DefaultPage
	}
	return page
}
