package pagination

import (
	"net/http"
	"strconv"
)

const (
	DefaultPage     = 1
	DefaultPageSize = 10
	MaxPageSize     = 100
)

type Params struct {
	Page     int
	PageSize int
}

func (p Params) Offset() int {
	return (p.Page - 1) * p.PageSize
}

func (p Params) Limit() int {
	return p.PageSize
}

// FromRequest reads page and pageSize query parameters, clamping bad or
// out-of-range values to the defaults.
func FromRequest(r *http.Request) Params {
	p := Params{Page: DefaultPage, PageSize: DefaultPageSize}

	if raw := r.URL.Query().Get("page"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil && v >= 1 {
			p.Page = v
		}
	}
	if raw := r.URL.Query().Get("pageSize"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil && v >= 1 {
			if v > MaxPageSize {
				v = MaxPageSize
			}
			p.PageSize = v
		}
	}
	return p
}

type Summary struct {
	CurrentPage int   `json:"currentPage"`
	PageSize    int   `json:"pageSize"`
	TotalCount  int64 `json:"totalCount"`
	TotalPages  int   `json:"totalPages"`
	HasNextPage bool  `json:"hasNextPage"`
	HasPrevPage bool  `json:"hasPrevPage"`
}

func NewSummary(p Params, total int64) Summary {
	totalPages := int((total + int64(p.PageSize) - 1) / int64(p.PageSize))
	return Summary{
		CurrentPage: p.Page,
		PageSize:    p.PageSize,
		TotalCount:  total,
		TotalPages:  totalPages,
		HasNextPage: int64(p.Page)*int64(p.PageSize) < total,
		HasPrevPage: p.Page > 1,
	}
}
