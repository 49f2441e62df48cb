package listctl

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dheerendra45/news-analyzer/internal/client/api"
	"github.com/dheerendra45/news-analyzer/internal/models"
)

type item struct {
	ID string
}

// stubFetch records every query and answers from respond.
type stubFetch struct {
	mu      sync.Mutex
	queries []Query
	respond func(q Query) (*models.ListResult[item], error)
}

func (s *stubFetch) fetch(_ context.Context, q Query) (*models.ListResult[item], error) {
	s.mu.Lock()
	s.queries = append(s.queries, q)
	respond := s.respond
	s.mu.Unlock()
	return respond(q)
}

func (s *stubFetch) last() Query {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.queries[len(s.queries)-1]
}

func (s *stubFetch) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.queries)
}

// pages simulates a server holding total items split into pages of size.
func pages(total, size int) func(Query) (*models.ListResult[item], error) {
	return func(q Query) (*models.ListResult[item], error) {
		n := 1
		if total > 0 {
			n = (total + size - 1) / size
		}
		var items []item
		for i := (q.Page-1)*size + 1; i <= min(q.Page*size, total); i++ {
			items = append(items, item{ID: fmt.Sprint(i)})
		}
		return &models.ListResult[item]{Items: items, Total: total, Page: q.Page, Size: size, Pages: n}, nil
	}
}

func newController(t *testing.T, respond func(Query) (*models.ListResult[item], error), cfg Config) (*Controller[item], *stubFetch) {
	t.Helper()
	stub := &stubFetch{respond: respond}
	return New(stub.fetch, cfg), stub
}

func TestFilteredListScenario(t *testing.T) {
	respond := func(Query) (*models.ListResult[item], error) {
		return &models.ListResult[item]{Items: []item{{"A"}, {"B"}}, Page: 1, Pages: 3, Total: 25}, nil
	}
	c, stub := newController(t, respond, Config{Size: 10})

	snap := c.Load(context.Background(), Query{Page: 1, Filters: map[string]string{"tier": "tier_1"}})

	assert.Equal(t, Loaded, snap.State)
	assert.Equal(t, []item{{"A"}, {"B"}}, snap.Items)
	assert.Equal(t, 1, snap.Page)
	assert.Equal(t, 3, snap.TotalPages)
	assert.Equal(t, 25, snap.TotalItems)
	assert.Equal(t, Query{Page: 1, Size: 10, Filters: map[string]string{"tier": "tier_1"}}, stub.last())
}

func TestFilterChangeResetsPage(t *testing.T) {
	c, stub := newController(t, pages(50, 10), Config{Size: 10})
	ctx := context.Background()

	c.Load(ctx, Query{Page: 1})
	snap := c.SetPage(ctx, 4)
	require.Equal(t, 4, snap.Page)

	for _, change := range []func() Snapshot[item]{
		func() Snapshot[item] { return c.SetFilter(ctx, "tier", "tier_2") },
		func() Snapshot[item] { c.SetPage(ctx, 3); return c.SetFilter(ctx, "category", "Layoffs") },
		func() Snapshot[item] { c.SetPage(ctx, 2); return c.ClearFilter(ctx, "tier") },
		func() Snapshot[item] {
			c.SetPage(ctx, 5)
			c.SetSearchInput("ai")
			return c.SubmitSearch(ctx)
		},
		func() Snapshot[item] { c.SetPage(ctx, 2); return c.ClearAll(ctx) },
	} {
		snap := change()
		assert.Equal(t, 1, stub.last().Page, "fetch issued after filter change must ask for page 1")
		assert.Equal(t, 1, snap.Page)
	}
}

func TestPageChangesKeepFilters(t *testing.T) {
	c, stub := newController(t, pages(100, 10), Config{Size: 10})
	ctx := context.Background()

	filters := map[string]string{"tier": "tier_1", "search": "bank", "sort_by": "oldest"}
	c.Load(ctx, Query{Page: 1, Filters: filters})

	steps := []func(context.Context) Snapshot[item]{
		c.Next, c.Next, c.Last, c.Prev, c.First,
		func(ctx context.Context) Snapshot[item] { return c.SetPage(ctx, 7) },
	}
	for _, step := range steps {
		snap := step(ctx)
		if diff := cmp.Diff(filters, snap.Filters); diff != "" {
			t.Fatalf("filters changed by page move (-want +got):\n%s", diff)
		}
		if diff := cmp.Diff(filters, stub.last().Filters); diff != "" {
			t.Fatalf("query filters changed by page move (-want +got):\n%s", diff)
		}
	}
	assert.Equal(t, 7, c.Snapshot().Page)
}

func TestPageMovesWithinBounds(t *testing.T) {
	c, stub := newController(t, pages(25, 10), Config{Size: 10})
	ctx := context.Background()

	c.Load(ctx, Query{Page: 1})
	assert.Equal(t, 1, c.Prev(ctx).Page)
	assert.Equal(t, 3, c.Last(ctx).Page)
	calls := stub.count()
	assert.Equal(t, 3, c.Next(ctx).Page)
	assert.Equal(t, calls, stub.count(), "moving past the last page must not fetch")
	assert.Equal(t, 3, c.SetPage(ctx, 99).Page)
}

func TestIdempotentFetch(t *testing.T) {
	c, _ := newController(t, pages(30, 10), Config{Size: 10})
	ctx := context.Background()

	first := c.Load(ctx, Query{Page: 2, Filters: map[string]string{"tier": "tier_3"}})
	second := c.Refresh(ctx)
	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("refresh changed state (-first +second):\n%s", diff)
	}
}

func TestFailurePreservesItems(t *testing.T) {
	fail := false
	respond := func(q Query) (*models.ListResult[item], error) {
		if fail {
			return nil, &api.RequestError{Status: 500, Message: "database unavailable"}
		}
		return &models.ListResult[item]{Items: []item{{"X"}}, Page: 1, Pages: 1, Total: 1}, nil
	}
	c, _ := newController(t, respond, Config{Size: 10})
	ctx := context.Background()

	require.Equal(t, Loaded, c.Load(ctx, Query{Page: 1}).State)

	fail = true
	snap := c.Refresh(ctx)
	assert.Equal(t, Failed, snap.State)
	assert.Equal(t, "database unavailable", snap.Message)
	assert.Error(t, snap.Err)
	assert.Equal(t, []item{{"X"}}, snap.Items)

	fail = false
	snap = c.Refresh(ctx)
	assert.Equal(t, Loaded, snap.State)
	assert.Empty(t, snap.Message)
	assert.NoError(t, snap.Err)
}

func TestFailureFallbackMessage(t *testing.T) {
	respond := func(Query) (*models.ListResult[item], error) {
		return nil, errors.New("dial tcp: connection refused")
	}
	c, _ := newController(t, respond, Config{Size: 10, Fallback: "Failed to load cards"})
	snap := c.Load(context.Background(), Query{Page: 1})
	assert.Equal(t, Failed, snap.State)
	assert.Equal(t, "Failed to load cards", snap.Message)
	assert.Empty(t, snap.Items)
}

func TestSearchAppliesOnSubmit(t *testing.T) {
	c, stub := newController(t, pages(5, 10), Config{Size: 10})
	ctx := context.Background()
	c.Load(ctx, Query{Page: 1})
	calls := stub.count()

	c.SetSearchInput("kla")
	snap := c.SetSearchInput("klarna")
	assert.Equal(t, calls, stub.count(), "typing must not fetch")
	assert.Equal(t, "klarna", snap.SearchInput)
	assert.Empty(t, snap.Filters["search"])

	snap = c.SubmitSearch(ctx)
	assert.Equal(t, calls+1, stub.count())
	assert.Equal(t, "klarna", snap.Filters["search"])
	assert.Equal(t, "klarna", stub.last().Filters["search"])

	snap = c.ClearFilter(ctx, "search")
	assert.Empty(t, snap.SearchInput)
	_, sent := stub.last().Filters["search"]
	assert.False(t, sent)
}

func TestUnchangedFilterDoesNotFetch(t *testing.T) {
	c, stub := newController(t, pages(5, 10), Config{Size: 10})
	ctx := context.Background()

	c.SetFilter(ctx, "tier", "tier_1")
	calls := stub.count()
	c.SetFilter(ctx, "tier", "tier_1")
	c.ClearFilter(ctx, "company")
	assert.Equal(t, calls, stub.count())
}

func TestClearAllRestoresDefaults(t *testing.T) {
	c, stub := newController(t, pages(40, 12), Config{Size: 12, Defaults: map[string]string{"sort_by": "newest"}})
	ctx := context.Background()

	c.Load(ctx, Query{Page: 1})
	assert.Equal(t, "newest", stub.last().Filters["sort_by"])

	c.SetFilters(ctx, map[string]string{"sort_by": "jobs", "company": "IBM"})
	c.SetSearchInput("draft text")
	snap := c.ClearAll(ctx)

	assert.Equal(t, map[string]string{"sort_by": "newest"}, snap.Filters)
	assert.Empty(t, snap.SearchInput)
	assert.Empty(t, snap.Chips)
	assert.Equal(t, 1, snap.Page)
}

func TestCreateThenRefreshShowsNewItem(t *testing.T) {
	var mu sync.Mutex
	server := []item{{"a"}, {"b"}}
	respond := func(Query) (*models.ListResult[item], error) {
		mu.Lock()
		defer mu.Unlock()
		return &models.ListResult[item]{Items: append([]item(nil), server...), Page: 1, Pages: 1, Total: len(server)}, nil
	}
	c, _ := newController(t, respond, Config{Size: 10})
	ctx := context.Background()
	c.Load(ctx, Query{Page: 1})

	mu.Lock()
	server = append([]item{{"new"}}, server...)
	mu.Unlock()

	snap := c.Refresh(ctx)
	assert.Contains(t, snap.Items, item{"new"})
	assert.Equal(t, 3, snap.TotalItems)
}

func TestStepBackWhenLastPageEmptied(t *testing.T) {
	total := 21
	respond := func(q Query) (*models.ListResult[item], error) {
		return pages(total, 10)(q)
	}
	c, stub := newController(t, respond, Config{Size: 10})
	ctx := context.Background()

	require.Equal(t, 3, c.Load(ctx, Query{Page: 3}).Page)

	total = 20
	snap := c.Refresh(ctx)
	assert.Equal(t, 2, snap.Page)
	assert.Equal(t, 2, snap.TotalPages)
	assert.Len(t, snap.Items, 10)
	assert.Equal(t, 2, stub.last().Page)
}

func TestLatestTriggeredFetchWins(t *testing.T) {
	release := map[string]chan struct{}{
		"slow": make(chan struct{}),
		"fast": make(chan struct{}),
	}
	respond := func(q Query) (*models.ListResult[item], error) {
		tag := q.Filters["company"]
		<-release[tag]
		return &models.ListResult[item]{Items: []item{{tag}}, Page: 1, Pages: 1, Total: 1}, nil
	}
	c, stub := newController(t, respond, Config{Size: 10})
	ctx := context.Background()

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		c.SetFilter(ctx, "company", "slow")
	}()
	require.Eventually(t, func() bool { return stub.count() == 1 }, time.Second, time.Millisecond)
	go func() {
		defer wg.Done()
		c.SetFilter(ctx, "company", "fast")
	}()
	require.Eventually(t, func() bool { return stub.count() == 2 }, time.Second, time.Millisecond)

	close(release["fast"])
	require.Eventually(t, func() bool { return c.Snapshot().State == Loaded }, time.Second, time.Millisecond)
	close(release["slow"])
	wg.Wait()

	snap := c.Snapshot()
	assert.Equal(t, []item{{"fast"}}, snap.Items)
	assert.Equal(t, "fast", snap.Filters["company"])
}

func TestOnChangeSeesLoading(t *testing.T) {
	var states []State
	stub := &stubFetch{respond: pages(3, 10)}
	c := New(stub.fetch, Config{Size: 10}, WithOnChange(func(s Snapshot[item]) {
		states = append(states, s.State)
	}))

	assert.Equal(t, Idle, c.Snapshot().State)
	c.Load(context.Background(), Query{Page: 1})
	assert.Equal(t, []State{Loading, Loaded}, states)
}

func TestRangeLabel(t *testing.T) {
	tests := []struct {
		snap Snapshot[item]
		want string
	}{
		{Snapshot[item]{Page: 1, Size: 12, TotalItems: 40, Items: make([]item, 12)}, "1-12 of 40"},
		{Snapshot[item]{Page: 4, Size: 12, TotalItems: 40, Items: make([]item, 4)}, "37-40 of 40"},
		{Snapshot[item]{Page: 1, Size: 12}, "0 results"},
	}
	for _, tt := range tests {
		if got := tt.snap.RangeLabel(); got != tt.want {
			t.Errorf("RangeLabel() = %q; want %q", got, tt.want)
		}
	}
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "loading", Loading.String())
	assert.Equal(t, "State(9)", State(9).String())
}
