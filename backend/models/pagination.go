package models

type Pagination struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	TotalItems int64 `json:"total_items"`
	TotalPages int   `json:"total_pages"`
}

// NewPagination fills TotalPages as ceil(total/limit).
func NewPagination(page, limit int, total int64) Pagination {
	pages := 0
	if limit > 0 {
		pages = int((total + int64(limit) - 1) / int64(limit))
	}
	return Pagination{Page: page, Limit: limit, TotalItems: total, TotalPages: pages}
}

// Offset is the number of rows skipped before the requested page.
func Offset(page, limit int) int {
	if page < 1 {
		return 0
	}
	return (page - 1) * limit
}

type ContentPage struct {
	Items      []ContentSummary `json:"items"`
	Pagination Pagination       `json:"pagination"`
}

type CookbookPage struct {
	Items      []CookbookEntry `json:"items"`
	Pagination Pagination      `json:"pagination"`
}

// AllContent is the aggregated listing of both content kinds.
type AllContent struct {
	Tutorials ContentPage `json:"tutorials"`
	Articles  ContentPage `json:"articles"`
}
