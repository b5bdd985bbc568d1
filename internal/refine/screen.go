// Package refine drives a paged collection the way a list screen does:
// server-side search and filters, client-side predicates over the current
// page, bounds-checked navigation and discarding of superseded responses.
package refine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"slices"
	"sync"

	"github.com/enicarthage/library-client/internal/domain/page"
)

var (
	// ErrPageOutOfRange is returned for navigation outside [0, total pages).
	ErrPageOutOfRange = errors.New("page out of range")
	// ErrSuperseded is returned when a newer fetch replaced this one, or the
	// screen was closed, before the response arrived. The response is discarded.
	ErrSuperseded = errors.New("response superseded")
	// ErrClosed is returned by actions on a closed screen.
	ErrClosed = errors.New("screen closed")
)

// Fetcher loads one page of a collection.
type Fetcher[T any] interface {
	FetchPage(ctx context.Context, req page.Request) (page.Result[T], error)
}

// Predicate is a client-side filter over loaded rows.
type Predicate[T any] func(T) bool

// State is the screen's refinement state.
type State struct {
	Search        string
	ServerFilters url.Values
	Page          int
	Size          int
	SortBy        string
	SortDir       page.SortDir
	// Total is the server's unfiltered element count.
	Total      int64
	TotalPages int
}

// Options configure a Screen.
type Options struct {
	Kind    string
	Size    int
	SortBy  string
	SortDir page.SortDir
	Logger  *slog.Logger
}

// Screen holds one list view's rows and refinement state.
// It is safe for concurrent use.
type Screen[T any] struct {
	fetcher Fetcher[T]
	kind    string
	logger  *slog.Logger

	mu     sync.Mutex
	state  State
	// loaded is the state the current rows were fetched with.
	loaded State

	rows       []T
	local      map[string]Predicate[T]
	localOrder []string
	version    uint64
	cancel     context.CancelFunc
	loading    bool
	closed     bool
}

// NewScreen creates a screen over fetcher. Nothing is fetched until Load.
func NewScreen[T any](fetcher Fetcher[T], opts Options) *Screen[T] {
	if fetcher == nil {
		panic("Screen requires Fetcher")
	}
	size := opts.Size
	if size <= 0 {
		size = page.DefaultSize
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default().With("component", "refine_screen")
	}
	initial := State{
		Size:          size,
		SortBy:        opts.SortBy,
		SortDir:       opts.SortDir,
		ServerFilters: url.Values{},
	}
	return &Screen[T]{
		fetcher: fetcher,
		kind:    opts.Kind,
		logger:  logger.With("kind", opts.Kind),
		state:   initial,
		loaded:  initial,
		local:   make(map[string]Predicate[T]),
	}
}

// Load fetches the current page.
func (s *Screen[T]) Load(ctx context.Context) error {
	return s.mutateAndFetch(ctx, func(*State) error { return nil })
}

// SubmitSearch sets the free-text query, returns to the first page and
// fetches. A blank query returns the screen to listing mode.
func (s *Screen[T]) SubmitSearch(ctx context.Context, query string) error {
	return s.mutateAndFetch(ctx, func(st *State) error {
		st.Search = query
		st.Page = 0
		return nil
	})
}

// SetServerFilter sets (or with value "" removes) a server-side filter,
// returns to the first page and fetches.
func (s *Screen[T]) SetServerFilter(ctx context.Context, key, value string) error {
	return s.mutateAndFetch(ctx, func(st *State) error {
		if value == "" {
			st.ServerFilters.Del(key)
		} else {
			st.ServerFilters.Set(key, value)
		}
		st.Page = 0
		return nil
	})
}

// SetSort changes the listing order, returns to the first page and fetches.
func (s *Screen[T]) SetSort(ctx context.Context, sortBy string, dir page.SortDir) error {
	return s.mutateAndFetch(ctx, func(st *State) error {
		st.SortBy = sortBy
		st.SortDir = dir
		st.Page = 0
		return nil
	})
}

// SetLocalFilter installs or replaces a named client-side predicate.
// No fetch happens and the total is unchanged.
func (s *Screen[T]) SetLocalFilter(name string, p Predicate[T]) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if p == nil {
		s.removeLocalLocked(name)
		return
	}
	if _, ok := s.local[name]; !ok {
		s.localOrder = append(s.localOrder, name)
	}
	s.local[name] = p
}

// ClearLocalFilter removes a named client-side predicate.
func (s *Screen[T]) ClearLocalFilter(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.removeLocalLocked(name)
}

func (s *Screen[T]) removeLocalLocked(name string) {
	delete(s.local, name)
	s.localOrder = slices.DeleteFunc(s.localOrder, func(n string) bool { return n == name })
}

// ClearFilters drops the query, server filters and local predicates, returns
// to the first page and fetches.
func (s *Screen[T]) ClearFilters(ctx context.Context) error {
	s.mu.Lock()
	s.local = make(map[string]Predicate[T])
	s.localOrder = nil
	s.mu.Unlock()

	return s.mutateAndFetch(ctx, func(st *State) error {
		st.Search = ""
		st.ServerFilters = url.Values{}
		st.Page = 0
		return nil
	})
}

// Next moves to the following page.
func (s *Screen[T]) Next(ctx context.Context) error {
	return s.mutateAndFetch(ctx, func(st *State) error { return goTo(st, st.Page+1) })
}

// Prev moves to the preceding page.
func (s *Screen[T]) Prev(ctx context.Context) error {
	return s.mutateAndFetch(ctx, func(st *State) error { return goTo(st, st.Page-1) })
}

// GoTo moves to page index i. Indexes outside [0, TotalPages) are refused
// without fetching.
func (s *Screen[T]) GoTo(ctx context.Context, i int) error {
	return s.mutateAndFetch(ctx, func(st *State) error { return goTo(st, i) })
}

func goTo(st *State, i int) error {
	if !page.InRange(i, st.Total, st.Size) {
		return fmt.Errorf("%w: page %d of %d", ErrPageOutOfRange, i, st.TotalPages)
	}
	st.Page = i
	return nil
}

// SetPageSize changes the page size, returns to the first page and fetches.
func (s *Screen[T]) SetPageSize(ctx context.Context, size int) error {
	return s.mutateAndFetch(ctx, func(st *State) error {
		if size <= 0 {
			return fmt.Errorf("%w: got %d", page.ErrInvalidSize, size)
		}
		st.Size = size
		st.Page = 0
		return nil
	})
}

// Visible returns the loaded rows satisfying every local predicate.
func (s *Screen[T]) Visible() []T {
	s.mu.Lock()
	defer s.mu.Unlock()

	preds := make([]Predicate[T], 0, len(s.localOrder))
	for _, name := range s.localOrder {
		preds = append(preds, s.local[name])
	}
	out := make([]T, 0, len(s.rows))
rows:
	for _, row := range s.rows {
		for _, p := range preds {
			if !p(row) {
				continue rows
			}
		}
		out = append(out, row)
	}
	return out
}

// Rows returns every row of the loaded page, ignoring local predicates.
func (s *Screen[T]) Rows() []T {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.rows)
}

// State returns a copy of the refinement state.
func (s *Screen[T]) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	st := s.state
	st.ServerFilters = cloneValues(s.state.ServerFilters)
	return st
}

// TotalPages is the page count of the last successful fetch.
func (s *Screen[T]) TotalPages() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.TotalPages
}

// Loading reports whether a fetch is in flight.
func (s *Screen[T]) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

// Close abandons any in-flight fetch; its response will be discarded.
func (s *Screen[T]) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	s.loading = false
	s.version++
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
}

// mutateAndFetch applies mutate to a copy of the state and, if it succeeds,
// fetches the resulting page. The state is committed before the fetch so a
// later action builds on it. Only the latest fetch may change the rows; if it
// fails the state falls back to the one the current rows were loaded with.
func (s *Screen[T]) mutateAndFetch(ctx context.Context, mutate func(*State) error) error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return ErrClosed
	}
	next := s.state
	next.ServerFilters = cloneValues(s.state.ServerFilters)
	if err := mutate(&next); err != nil {
		s.mu.Unlock()
		return err
	}
	s.state = next

	if s.cancel != nil {
		s.cancel()
	}
	fetchCtx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	s.version++
	version := s.version
	s.loading = true
	req := page.Request{
		Kind:    s.kind,
		Page:    next.Page,
		Size:    next.Size,
		SortBy:  next.SortBy,
		SortDir: next.SortDir,
		Query:   next.Search,
		Filters: next.ServerFilters,
	}
	s.mu.Unlock()

	res, err := s.fetcher.FetchPage(fetchCtx, req)

	s.mu.Lock()
	defer s.mu.Unlock()
	cancel()
	if s.closed || version != s.version {
		s.logger.Debug("discarding superseded response", "page", req.Page, "query", req.Query)
		return ErrSuperseded
	}
	s.cancel = nil
	s.loading = false
	if err != nil {
		s.state = s.loaded
		s.state.ServerFilters = cloneValues(s.loaded.ServerFilters)
		return err
	}

	s.rows = res.Content
	s.state.Total = res.TotalElements
	s.state.TotalPages = page.TotalPages(res.TotalElements, next.Size)
	s.loaded = s.state
	s.loaded.ServerFilters = cloneValues(s.state.ServerFilters)
	return nil
}

func cloneValues(v url.Values) url.Values {
	if v == nil {
		return url.Values{}
	}
	out := make(url.Values, len(v))
	for k, vs := range v {
		out[k] = slices.Clone(vs)
	}
	return out
}
