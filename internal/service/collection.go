package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/enicarthage/library-client/internal/domain/page"
	apperrors "github.com/enicarthage/library-client/internal/errors"
	"github.com/enicarthage/library-client/internal/ports"
)

// Resource describes how a kind of collection is addressed.
type Resource struct {
	Kind string
	// SearchPath is appended to /{Kind} for free-text search; "" disables search.
	SearchPath string
	// SearchParam carries the query text on search requests.
	SearchParam    string
	DefaultSortBy  string
	DefaultSortDir page.SortDir
}

// Mode selects the endpoint family used for a page request.
type Mode int

const (
	ModeListing Mode = iota
	ModeSearch
)

// String implements fmt.Stringer.
func (m Mode) String() string {
	if m == ModeSearch {
		return "search"
	}
	return "listing"
}

// ModeFor returns ModeSearch iff the request carries a non-blank query.
func ModeFor(req page.Request) Mode {
	if req.TrimmedQuery() != "" {
		return ModeSearch
	}
	return ModeListing
}

// Collection fetches pages, unpaged subsets and single items of one resource
// kind. It never retries.
type Collection[T any] struct {
	transport ports.Transport
	res       Resource
}

// NewCollection binds a transport to a resource.
func NewCollection[T any](transport ports.Transport, res Resource) *Collection[T] {
	if transport == nil {
		panic("Collection requires Transport")
	}
	return &Collection[T]{transport: transport, res: res}
}

// Resource returns the collection's addressing.
func (c *Collection[T]) Resource() Resource { return c.res }

// FetchPage fetches one page in listing or search mode.
func (c *Collection[T]) FetchPage(ctx context.Context, req page.Request) (page.Result[T], error) {
	if req.Kind != "" && req.Kind != c.res.Kind {
		return page.Result[T]{}, apperrors.Validationf("page request for %q sent to %q collection", req.Kind, c.res.Kind)
	}
	if req.Size == 0 {
		req.Size = page.DefaultSize
	}
	if err := req.Validate(); err != nil {
		return page.Result[T]{}, apperrors.Wrap(err, apperrors.ErrCodeValidation, "invalid page request")
	}

	path, query, err := c.pageRequest(req)
	if err != nil {
		return page.Result[T]{}, err
	}

	var raw json.RawMessage
	if err := c.do(ctx, http.MethodGet, path, query, nil, &raw); err != nil {
		return page.Result[T]{}, err
	}
	return decodePage[T](raw, req)
}

func (c *Collection[T]) pageRequest(req page.Request) (string, url.Values, error) {
	query := url.Values{}
	query.Set("page", strconv.Itoa(req.Page))
	query.Set("size", strconv.Itoa(req.Size))

	if ModeFor(req) == ModeSearch {
		if c.res.SearchPath == "" {
			return "", nil, apperrors.Validationf("%s cannot be searched", c.res.Kind)
		}
		param := c.res.SearchParam
		if param == "" {
			param = "q"
		}
		query.Set(param, req.TrimmedQuery())
		return c.path(c.res.SearchPath), query, nil
	}

	sortBy := req.SortBy
	if sortBy == "" {
		sortBy = c.res.DefaultSortBy
	}
	if sortBy != "" {
		query.Set("sortBy", sortBy)
	}
	sortDir := req.SortDir
	if sortDir == "" {
		sortDir = c.res.DefaultSortDir
	}
	if sortDir != "" {
		query.Set("sortDir", string(sortDir))
	}
	for k, vs := range req.Filters {
		for _, v := range vs {
			if v != "" {
				query.Add(k, v)
			}
		}
	}
	return c.path(""), query, nil
}

// decodePage accepts either a page object or a bare JSON array; an array is
// treated as the single page holding every item.
func decodePage[T any](raw json.RawMessage, req page.Request) (page.Result[T], error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var items []T
		if err := json.Unmarshal(trimmed, &items); err != nil {
			return page.Result[T]{}, apperrors.Wrap(err, apperrors.ErrCodeInternal, "decode item list")
		}
		res := page.Result[T]{Content: items, TotalElements: int64(len(items)), Size: len(items)}
		if len(items) > 0 {
			res.TotalPages = 1
		}
		return res, nil
	}

	var res page.Result[T]
	if len(trimmed) > 0 {
		if err := json.Unmarshal(trimmed, &res); err != nil {
			return page.Result[T]{}, apperrors.Wrap(err, apperrors.ErrCodeInternal, "decode page")
		}
	}
	if res.Size == 0 {
		res.Size = req.Size
	}
	res.Normalize()
	return res, nil
}

// All fetches the unpaged subset at /{kind}/{sub}, e.g. "available".
func (c *Collection[T]) All(ctx context.Context, sub string) ([]T, error) {
	var items []T
	if err := c.do(ctx, http.MethodGet, c.path("/"+sub), nil, nil, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// Get fetches one item by id.
func (c *Collection[T]) Get(ctx context.Context, id int64) (T, error) {
	var item T
	err := c.do(ctx, http.MethodGet, c.itemPath(id, ""), nil, nil, &item)
	return item, err
}

func (c *Collection[T]) path(suffix string) string {
	return "/" + c.res.Kind + suffix
}

func (c *Collection[T]) itemPath(id int64, suffix string) string {
	return fmt.Sprintf("/%s/%d%s", c.res.Kind, id, suffix)
}

func (c *Collection[T]) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	return c.transport.Do(ctx, ports.Request{
		Method: method,
		Path:   path,
		Query:  query,
		Body:   body,
		Kind:   c.res.Kind,
	}, out)
}

func idParam(id int64) string { return strconv.FormatInt(id, 10) }
