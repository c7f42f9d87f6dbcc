// Package paging normalizes list queries shared by every hub.
package paging

import "strings"

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

type Params struct {
	Q        string
	Status   string
	Page     int
	PageSize int
}

// Normalize trims filters and clamps page/pageSize. def replaces a missing
// or out of range page size.
func (p Params) Normalize(def int) Params {
	if def < 1 || def > MaxPageSize {
		def = DefaultPageSize
	}
	p.Q = strings.TrimSpace(p.Q)
	p.Status = strings.TrimSpace(p.Status)
	if p.Page < 1 {
		p.Page = 1
	}
	if p.PageSize < 1 || p.PageSize > MaxPageSize {
		p.PageSize = def
	}
	return p
}

func (p Params) Offset() int { return (p.Page - 1) * p.PageSize }

// Like wraps the query for a LIKE clause.
func (p Params) Like() string { return "%" + p.Q + "%" }

type Result[T any] struct {
	Items      []T   `json:"items"`
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	PageSize   int   `json:"pageSize"`
	TotalPages int   `json:"totalPages"`
}

func NewResult[T any](items []T, total int64, p Params) Result[T] {
	if items == nil {
		items = []T{}
	}
	return Result[T]{
		Items:      items,
		Total:      total,
		Page:       p.Page,
		PageSize:   p.PageSize,
		TotalPages: PagesFromTotal(total, p.PageSize),
	}
}

// Map converts the items of a result, keeping the paging fields.
func Map[T, U any](r Result[T], f func(T) U) Result[U] {
	out := make([]U, 0, len(r.Items))
	for _, it := range r.Items {
		out = append(out, f(it))
	}
	return Result[U]{Items: out, Total: r.Total, Page: r.Page, PageSize: r.PageSize, TotalPages: r.TotalPages}
}

func PagesFromTotal(total int64, size int) int {
	if size <= 0 || total <= 0 {
		return 1
	}
	p := int((total + int64(size) - 1) / int64(size))
	if p < 1 {
		return 1
	}
	return p
}
