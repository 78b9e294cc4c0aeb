package utils

import "math"

// PaginationMeta holds pagination response metadata
type PaginationMeta struct {
	Page       int   `json:"page"`
	PageSize   int   `json:"pageSize"`
	TotalCount int64 `json:"total"`
	TotalPages int   `json:"totalPages"`
}

// ClampPage forces page to be at least 1
func ClampPage(page int) int {
	if page < 1 {
		return 1
	}
	return page
}

// ClampPageSize forces pageSize into [1, max], using def when unset or
// out of range low.
func ClampPageSize(pageSize, def, max int) int {
	if pageSize < 1 {
		return def
	}
	if pageSize > max {
		return max
	}
	return pageSize
}

// CalculateMeta generates pagination metadata
func CalculateMeta(totalCount int64, page, pageSize int) PaginationMeta {
	totalPages := int(math.Ceil(float64(totalCount) / float64(pageSize)))
	if totalPages < 0 {
		totalPages = 0
	}
	return PaginationMeta{
		Page:       page,
		PageSize:   pageSize,
		TotalCount: totalCount,
		TotalPages: totalPages,
	}
}
