package models

import "math"

const (
	DefaultPage  = 1
	DefaultLimit = 8
	MaxLimit     = 100
)

// Page is a 1-indexed page request.
type Page struct {
	Page  int
	Limit int
}

// Offset is (Page-1)*Limit, saturating at math.MaxInt so a huge page
// number reads as past the end instead of wrapping negative.
func (p Page) Offset() int {
	if p.Page <= 1 || p.Limit <= 0 {
		return 0
	}
	if p.Page-1 > math.MaxInt/p.Limit {
		return math.MaxInt
	}
	return (p.Page - 1) * p.Limit
}

type PageMeta struct {
	Page            int  `json:"page"`
	Limit           int  `json:"limit"`
	Total           int  `json:"total"`
	TotalPages      int  `json:"totalPages"`
	HasNextPage     bool `json:"hasNextPage"`
	HasPreviousPage bool `json:"hasPreviousPage"`
}

// NewPageMeta derives pagination metadata from the matching row count.
// An empty result still reports HasPreviousPage for page > 1.
func NewPageMeta(p Page, total int) PageMeta {
	totalPages := 0
	if p.Limit > 0 {
		totalPages = (total + p.Limit - 1) / p.Limit
	}
	return PageMeta{
		Page:            p.Page,
		Limit:           p.Limit,
		Total:           total,
		TotalPages:      totalPages,
		HasNextPage:     p.Page < totalPages,
		HasPreviousPage: p.Page > 1,
	}
}

type PaginatedView struct {
	Data []TransactionView `json:"data"`
	Meta PageMeta          `json:"meta"`
}
