// Package listctl implements the list controller shared by every paginated,
// filterable collection view: it keeps filter criteria, page position and
// the fetched page consistent while the user changes them.
//
// Every intent mutates the criteria and then fetches synchronously; callers
// that must stay responsive run intents on their own goroutine and observe
// transitions through WithOnChange. Fetches are numbered, and a response is
// applied only if no later fetch was triggered in the meantime, so the most
// recently triggered fetch always wins.
package listctl

import (
	"context"
	"fmt"
	"maps"
	"slices"
	"sync"

	"go.uber.org/zap"

	"github.com/dheerendra45/news-analyzer/internal/client/api"
	"github.com/dheerendra45/news-analyzer/internal/models"
)

// State is the fetch lifecycle of a controller.
type State int

const (
	Idle State = iota
	Loading
	Loaded
	Failed
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Loading:
		return "loading"
	case Loaded:
		return "loaded"
	case Failed:
		return "failed"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// DefaultSearchKey is the filter key that only applies on SubmitSearch.
const DefaultSearchKey = "search"

// DefaultFallback is shown when a failure carries no server message.
const DefaultFallback = "Failed to load data. Please try again."

// Query is the request a controller issues. It mirrors gateway.Params so
// callers can convert between the two.
type Query struct {
	Page    int
	Size    int
	Filters map[string]string
}

// FetchFunc loads one page.
type FetchFunc[T any] func(ctx context.Context, q Query) (*models.ListResult[T], error)

// Config parametrizes a controller for one collection.
type Config struct {
	// Size is the page size sent with every fetch.
	Size int
	// Defaults are the filters ClearAll restores.
	Defaults map[string]string
	// SearchKey names the free-text filter. Empty means DefaultSearchKey.
	SearchKey string
	// Fallback is the failure message used when the error has none.
	Fallback string
}

// Snapshot is an immutable copy of the controller state.
type Snapshot[T any] struct {
	State       State
	Items       []T
	Filters     map[string]string
	SearchInput string
	Page        int
	TotalPages  int
	TotalItems  int
	Size        int
	// Err is the last failure, cleared by the next successful fetch.
	Err error
	// Message is the user facing text of Err.
	Message string
	Chips   []Chip
}

// Pager returns the pagination bar for the snapshot.
func (s Snapshot[T]) Pager() Pager {
	return Window(s.Page, s.TotalPages, DefaultWindow)
}

// RangeLabel describes the visible slice, e.g. "13-24 of 40".
func (s Snapshot[T]) RangeLabel() string {
	if s.TotalItems == 0 || len(s.Items) == 0 {
		return "0 results"
	}
	size := s.Size
	if size < 1 {
		size = len(s.Items)
	}
	first := (s.Page-1)*size + 1
	last := min(first+len(s.Items)-1, s.TotalItems)
	return fmt.Sprintf("%d-%d of %d", first, last, s.TotalItems)
}

// Option configures a Controller.
type Option[T any] func(*Controller[T])

// WithLogger sets the logger for fetch failures.
func WithLogger[T any](l *zap.Logger) Option[T] {
	return func(c *Controller[T]) {
		if l != nil {
			c.log = l
		}
	}
}

// WithOnChange registers fn to receive a snapshot after every state
// transition. fn runs on the goroutine that caused the transition, after
// the controller lock is released.
func WithOnChange[T any](fn func(Snapshot[T])) Option[T] {
	return func(c *Controller[T]) { c.onChange = fn }
}

// Controller is safe for concurrent use.
type Controller[T any] struct {
	fetch    FetchFunc[T]
	cfg      Config
	log      *zap.Logger
	onChange func(Snapshot[T])

	mu          sync.Mutex
	state       State
	items       []T
	filters     map[string]string
	searchInput string
	page        int
	totalPages  int
	totalItems  int
	err         error
	message     string
	seq         uint64

	// resolved is set once a fetch succeeded and totalPages is known.
	resolved bool
}

// New returns an Idle controller with the default filters applied.
func New[T any](fetch FetchFunc[T], cfg Config, opts ...Option[T]) *Controller[T] {
	if cfg.SearchKey == "" {
		cfg.SearchKey = DefaultSearchKey
	}
	if cfg.Fallback == "" {
		cfg.Fallback = DefaultFallback
	}
	c := &Controller[T]{
		fetch:      fetch,
		cfg:        cfg,
		log:        zap.NewNop(),
		filters:    clone(cfg.Defaults),
		page:       1,
		totalPages: 1,
	}
	c.searchInput = c.filters[cfg.SearchKey]
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Snapshot returns the current state.
func (c *Controller[T]) Snapshot() Snapshot[T] {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

func (c *Controller[T]) snapshotLocked() Snapshot[T] {
	return Snapshot[T]{
		State:       c.state,
		Items:       slices.Clone(c.items),
		Filters:     clone(c.filters),
		SearchInput: c.searchInput,
		Page:        c.page,
		TotalPages:  c.totalPages,
		TotalItems:  c.totalItems,
		Size:        c.cfg.Size,
		Err:         c.err,
		Message:     c.message,
		Chips:       chips(c.filters, c.cfg.Defaults),
	}
}

// Load replaces the criteria with q (filters on top of the defaults) and
// fetches. It is the entry point for a view opened at a given position.
func (c *Controller[T]) Load(ctx context.Context, q Query) Snapshot[T] {
	return c.run(ctx, func() bool {
		c.filters = clone(c.cfg.Defaults)
		for k, v := range q.Filters {
			setFilter(c.filters, k, v)
		}
		c.searchInput = c.filters[c.cfg.SearchKey]
		c.page = max(1, q.Page)
		return true
	})
}

// Refresh re-fetches the current criteria and page without changing them.
func (c *Controller[T]) Refresh(ctx context.Context) Snapshot[T] {
	return c.run(ctx, func() bool { return true })
}

// SetFilter applies a selection filter immediately and returns to page 1.
// Setting a filter to its current value is a no-op once data is loaded.
func (c *Controller[T]) SetFilter(ctx context.Context, key, value string) Snapshot[T] {
	return c.SetFilters(ctx, map[string]string{key: value})
}

// SetFilters applies several filters as one change.
func (c *Controller[T]) SetFilters(ctx context.Context, set map[string]string) Snapshot[T] {
	return c.run(ctx, func() bool {
		next := clone(c.filters)
		for k, v := range set {
			setFilter(next, k, v)
		}
		if maps.Equal(next, c.filters) && c.state != Idle {
			return false
		}
		c.filters = next
		if v, ok := set[c.cfg.SearchKey]; ok {
			c.searchInput = v
		}
		c.page = 1
		return true
	})
}

// ClearFilter unsets one filter.
func (c *Controller[T]) ClearFilter(ctx context.Context, key string) Snapshot[T] {
	return c.SetFilter(ctx, key, "")
}

// ClearAll restores the default filters and clears the search input.
func (c *Controller[T]) ClearAll(ctx context.Context) Snapshot[T] {
	return c.run(ctx, func() bool {
		defaults := clone(c.cfg.Defaults)
		if maps.Equal(defaults, c.filters) && c.page == 1 && c.state != Idle {
			c.searchInput = defaults[c.cfg.SearchKey]
			return false
		}
		c.filters = defaults
		c.searchInput = defaults[c.cfg.SearchKey]
		c.page = 1
		return true
	})
}

// SetSearchInput records typed search text. It does not fetch.
func (c *Controller[T]) SetSearchInput(text string) Snapshot[T] {
	c.mu.Lock()
	c.searchInput = text
	snap := c.snapshotLocked()
	c.mu.Unlock()
	c.notify(snap)
	return snap
}

// SubmitSearch applies the recorded search text as a filter.
func (c *Controller[T]) SubmitSearch(ctx context.Context) Snapshot[T] {
	c.mu.Lock()
	text := c.searchInput
	c.mu.Unlock()
	return c.SetFilter(ctx, c.cfg.SearchKey, text)
}

// SetPage moves to page n, clamped to [1, TotalPages] once the page count
// is known. Filters are kept.
func (c *Controller[T]) SetPage(ctx context.Context, n int) Snapshot[T] {
	return c.run(ctx, func() bool {
		if c.resolved {
			n = min(n, c.totalPages)
		}
		n = max(1, n)
		if n == c.page && c.state != Idle {
			return false
		}
		c.page = n
		return true
	})
}

// Next moves one page forward.
func (c *Controller[T]) Next(ctx context.Context) Snapshot[T] {
	return c.SetPage(ctx, c.currentPage()+1)
}

// Prev moves one page back.
func (c *Controller[T]) Prev(ctx context.Context) Snapshot[T] {
	return c.SetPage(ctx, c.currentPage()-1)
}

// First moves to page 1.
func (c *Controller[T]) First(ctx context.Context) Snapshot[T] {
	return c.SetPage(ctx, 1)
}

// Last moves to the last known page.
func (c *Controller[T]) Last(ctx context.Context) Snapshot[T] {
	c.mu.Lock()
	last := c.totalPages
	c.mu.Unlock()
	return c.SetPage(ctx, last)
}

func (c *Controller[T]) currentPage() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.page
}

// run applies mutate under the lock; when it reports a change the
// controller enters Loading and fetches.
func (c *Controller[T]) run(ctx context.Context, mutate func() bool) Snapshot[T] {
	c.mu.Lock()
	if !mutate() {
		snap := c.snapshotLocked()
		c.mu.Unlock()
		return snap
	}
	c.seq++
	seq := c.seq
	c.state = Loading
	q := c.queryLocked()
	snap := c.snapshotLocked()
	c.mu.Unlock()
	c.notify(snap)

	res, err := c.fetch(ctx, q)
	return c.apply(ctx, seq, q, res, err)
}

// apply records a fetch outcome unless a later fetch superseded it.
func (c *Controller[T]) apply(ctx context.Context, seq uint64, q Query, res *models.ListResult[T], err error) Snapshot[T] {
	c.mu.Lock()
	if seq != c.seq {
		latest := c.seq
		snap := c.snapshotLocked()
		c.mu.Unlock()
		c.log.Debug("discarding superseded list response", zap.Uint64("seq", seq), zap.Uint64("latest", latest))
		return snap
	}

	if err != nil {
		c.state = Failed
		c.err = err
		c.message = api.Message(err, c.cfg.Fallback)
		snap := c.snapshotLocked()
		c.mu.Unlock()
		c.log.Warn("list fetch failed",
			zap.Int("page", q.Page),
			zap.Any("filters", q.Filters),
			zap.Error(err),
		)
		c.notify(snap)
		return snap
	}

	c.items = slices.Clone(res.Items)
	if c.items == nil {
		c.items = []T{}
	}
	c.totalItems = max(0, res.Total)
	c.totalPages = max(1, res.Pages)
	if res.Page > 0 {
		c.page = res.Page
	}
	c.err = nil
	c.message = ""
	c.state = Loaded
	c.resolved = true

	// The page disappeared under us, typically after deleting the last
	// record of the last page: step back to the new last page once.
	stepBack := c.page > c.totalPages && len(c.items) == 0
	snap := c.snapshotLocked()
	c.mu.Unlock()
	c.notify(snap)

	if stepBack {
		return c.run(ctx, func() bool {
			c.page = c.totalPages
			return true
		})
	}
	return snap
}

func (c *Controller[T]) queryLocked() Query {
	filters := make(map[string]string, len(c.filters))
	for k, v := range c.filters {
		if v != "" {
			filters[k] = v
		}
	}
	return Query{Page: c.page, Size: c.cfg.Size, Filters: filters}
}

func (c *Controller[T]) notify(s Snapshot[T]) {
	if c.onChange != nil {
		c.onChange(s)
	}
}

// setFilter stores v under k; an empty value unsets the filter.
func setFilter(m map[string]string, k, v string) {
	if v == "" {
		delete(m, k)
		return
	}
	m[k] = v
}

func clone(m map[string]string) map[string]string {
	out := make(map[string]string, len(m))
	for k, v := range m {
		if v != "" {
			out[k] = v
		}
	}
	return out
}
