package common

import "math"

const (
	DefaultPage    = 1
	DefaultPerPage = 20
)

// Page is the envelope every list endpoint returns
type Page struct {
	Items       interface{} `json:"items"`
	Total       int64       `json:"total"`
	Pages       int         `json:"pages"`
	CurrentPage int         `json:"current_page"`
	PerPage     int         `json:"per_page"`
}

// Pagination carries normalized page/per_page values for repositories
type Pagination struct {
	Page    int
	PerPage int
}

// NewPagination clamps raw query values to sane defaults
func NewPagination(page, perPage int) Pagination {
	if page < 1 {
		page = DefaultPage
	}
	if perPage < 1 {
		perPage = DefaultPerPage
	}
	return Pagination{Page: page, PerPage: perPage}
}

// Offset returns the row offset for the current page
func (p Pagination) Offset() int {
	return (p.Page - 1) * p.PerPage
}

// Limit returns the page size
func (p Pagination) Limit() int {
	return p.PerPage
}

// NewPage builds the response envelope. An out-of-range page yields an empty
// item list with correct total/pages metadata, never an error.
func NewPage(items interface{}, total int64, p Pagination) *Page {
	pages := int(math.Ceil(float64(total) / float64(p.PerPage)))
	return &Page{
		Items:       items,
		Total:       total,
		Pages:       pages,
		CurrentPage: p.Page,
		PerPage:     p.PerPage,
	}
}
