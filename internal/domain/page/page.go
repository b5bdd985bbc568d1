// Package page holds the request/result shapes shared by every paged
// collection the remote authority exposes.
package page

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// SortDir is a sort direction accepted by listing endpoints.
type SortDir string

const (
	SortAsc  SortDir = "asc"
	SortDesc SortDir = "desc"
)

// ParseSortDir normalizes a direction; unknown values yield "".
func ParseSortDir(s string) SortDir {
	switch SortDir(strings.ToLower(strings.TrimSpace(s))) {
	case SortAsc:
		return SortAsc
	case SortDesc:
		return SortDesc
	default:
		return ""
	}
}

// DefaultSize is used when a caller does not choose a page size.
const DefaultSize = 10

var (
	// ErrNegativePage is returned for page indexes below zero.
	ErrNegativePage = errors.New("page index must be >= 0")
	// ErrInvalidSize is returned for page sizes that are not positive.
	ErrInvalidSize = errors.New("page size must be > 0")
)

// Request asks for one page of a resource kind.
type Request struct {
	Kind    string
	Page    int
	Size    int
	SortBy  string
	SortDir SortDir
	Query   string
	Filters url.Values
}

// Validate enforces page >= 0 and size > 0.
func (r Request) Validate() error {
	if r.Page < 0 {
		return fmt.Errorf("%w: got %d", ErrNegativePage, r.Page)
	}
	if r.Size <= 0 {
		return fmt.Errorf("%w: got %d", ErrInvalidSize, r.Size)
	}
	return nil
}

// TrimmedQuery returns the free-text query without surrounding whitespace.
func (r Request) TrimmedQuery() string { return strings.TrimSpace(r.Query) }

// Result is one page returned by the remote authority.
type Result[T any] struct {
	Content       []T   `json:"content"`
	TotalElements int64 `json:"totalElements"`
	TotalPages    int   `json:"totalPages"`
	Number        int   `json:"number"`
	Size          int   `json:"size"`
}

// Normalize fills TotalPages from TotalElements/Size when the server
// omitted it or reported an inconsistent value.
func (r *Result[T]) Normalize() {
	if r.Size <= 0 {
		return
	}
	r.TotalPages = TotalPages(r.TotalElements, r.Size)
}

// TotalPages returns ceil(total/size), or 0 when size is not positive.
func TotalPages(total int64, size int) int {
	if size <= 0 || total <= 0 {
		return 0
	}
	s := int64(size)
	return int((total + s - 1) / s)
}

// InRange reports whether index addresses an existing page.
func InRange(index int, total int64, size int) bool {
	return index >= 0 && index < TotalPages(total, size)
}
