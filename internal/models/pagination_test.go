package models

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewPageMeta(t *testing.T) {
	tests := []struct {
		name  string
		page  Page
		total int
		want  PageMeta
	}{
		{
			name:  "second page of ten",
			page:  Page{Page: 2, Limit: 8},
			total: 10,
			want:  PageMeta{Page: 2, Limit: 8, Total: 10, TotalPages: 2, HasNextPage: false, HasPreviousPage: true},
		},
		{
			name:  "first page of ten",
			page:  Page{Page: 1, Limit: 8},
			total: 10,
			want:  PageMeta{Page: 1, Limit: 8, Total: 10, TotalPages: 2, HasNextPage: true, HasPreviousPage: false},
		},
		{
			name:  "exact multiple",
			page:  Page{Page: 2, Limit: 5},
			total: 10,
			want:  PageMeta{Page: 2, Limit: 5, Total: 10, TotalPages: 2, HasNextPage: false, HasPreviousPage: true},
		},
		{
			name:  "empty first page",
			page:  Page{Page: 1, Limit: 8},
			total: 0,
			want:  PageMeta{Page: 1, Limit: 8, Total: 0, TotalPages: 0},
		},
		{
			name:  "empty page past the end keeps previous flag",
			page:  Page{Page: 3, Limit: 8},
			total: 0,
			want:  PageMeta{Page: 3, Limit: 8, Total: 0, TotalPages: 0, HasNextPage: false, HasPreviousPage: true},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NewPageMeta(tt.page, tt.total))
		})
	}
}

func TestNewPageMeta_TotalPagesIsCeiling(t *testing.T) {
	for limit := 1; limit <= 12; limit++ {
		for total := 0; total <= 40; total++ {
			m := NewPageMeta(Page{Page: 1, Limit: limit}, total)
			want := total / limit
			if total%limit != 0 {
				want++
			}
			assert.Equal(t, want, m.TotalPages, "total=%d limit=%d", total, limit)
			assert.Equal(t, 1 < want, m.HasNextPage, "total=%d limit=%d", total, limit)
		}
	}
}

func TestPageOffset(t *testing.T) {
	tests := []struct {
		name string
		page Page
		want int
	}{
		{"first page", Page{Page: 1, Limit: 8}, 0},
		{"second page", Page{Page: 2, Limit: 8}, 8},
		{"zero limit", Page{Page: 5, Limit: 0}, 0},
		{"would overflow", Page{Page: math.MaxInt/8 + 2, Limit: 8}, math.MaxInt},
		{"max page", Page{Page: math.MaxInt, Limit: 100}, math.MaxInt},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.page.Offset())
		})
	}
}
