package catalog

import (
	"context"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/five82/pokedex/internal/pokeapi"
	"github.com/five82/pokedex/internal/pokeapi/pokeapitest"
	"github.com/five82/pokedex/internal/state"
)

func newOrchestrator(t *testing.T, srv *pokeapitest.Server, opts Options) *Orchestrator {
	t.Helper()
	client, err := pokeapi.NewClient(pokeapi.Options{BaseURL: srv.BaseURL()})
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })
	return New(client, opts)
}

func ids(entries []pokeapi.Pokemon) []int {
	out := make([]int, len(entries))
	for i, p := range entries {
		out[i] = p.ID
	}
	return out
}

func TestLoad_FirstPageOfLargeCollection(t *testing.T) {
	srv := pokeapitest.NewServer(t, 1000)
	o := newOrchestrator(t, srv, Options{})

	ps := NewPageState(9)
	res := o.Load(context.Background(), ps)
	require.False(t, res.Stale)
	assert.Equal(t, 1000, res.Total)
	assert.Equal(t, []int{1, 2, 3, 4, 5, 6, 7, 8, 9}, ids(res.Entries))

	ps, _ = Reduce(ps, Loaded{Total: res.Total}, PolicyServer)
	view := o.Display(ps)
	assert.Len(t, view.Entries, 9)
	assert.Equal(t, 1000, view.TotalItems)
	assert.Equal(t, 112, view.TotalPages)
	assert.True(t, view.ShowPaginator)
	assert.Equal(t, state.Ready, view.Status)

	assert.Equal(t, []string{"limit=9&offset=0"}, srv.ListQueries())
}

func TestLoad_SequentialDetailFetchesInListOrder(t *testing.T) {
	srv := pokeapitest.NewServer(t, 50)
	srv.SetDelay(2 * time.Millisecond)
	o := newOrchestrator(t, srv, Options{DetailWorkers: 1})

	ps := PageState{CurrentPage: 2, Limit: 6}
	res := o.Load(context.Background(), ps)

	assert.Equal(t, []int{7, 8, 9, 10, 11, 12}, srv.DetailOrder())
	assert.Equal(t, 1, srv.MaxInFlight())
	assert.Equal(t, []int{7, 8, 9, 10, 11, 12}, ids(res.Entries))
}

func TestLoad_BoundedFanOutKeepsListOrder(t *testing.T) {
	srv := pokeapitest.NewServer(t, 40)
	srv.SetDelay(10 * time.Millisecond)
	o := newOrchestrator(t, srv, Options{DetailWorkers: 4})

	res := o.Load(context.Background(), PageState{CurrentPage: 1, Limit: 20})

	want := make([]int, 20)
	for i := range want {
		want[i] = i + 1
	}
	assert.Equal(t, want, ids(res.Entries))
	assert.LessOrEqual(t, srv.MaxInFlight(), 4)
	assert.Len(t, srv.DetailOrder(), 20)
}

func TestLoad_FailedDetailIsExcluded(t *testing.T) {
	for _, workers := range []int{1, 3} {
		srv := pokeapitest.NewServer(t, 9)
		srv.FailDetail(4, http.StatusInternalServerError)
		srv.FailDetail(7, http.StatusNotFound)
		o := newOrchestrator(t, srv, Options{DetailWorkers: workers})

		res := o.Load(context.Background(), NewPageState(9))
		assert.Equal(t, []int{1, 2, 3, 5, 6, 8, 9}, ids(res.Entries), "workers=%d", workers)
		assert.Equal(t, 2, res.Failed)

		view := o.Display(PageState{CurrentPage: 1, Limit: 9, TotalItems: res.Total})
		assert.Equal(t, state.Partial, view.Status)
		assert.Equal(t, 2, view.Failed)
		for _, p := range view.Entries {
			assert.True(t, p.Valid(), "placeholder leaked into view: %#v", p)
		}
	}
}

func TestLoad_ListFailureYieldsEmptyNotError(t *testing.T) {
	srv := pokeapitest.NewServer(t, 0)
	srv.Close()
	o := newOrchestrator(t, srv, Options{})

	res := o.Load(context.Background(), NewPageState(9))
	assert.Empty(t, res.Entries)
	assert.Equal(t, 0, res.Total)

	view := o.Display(NewPageState(9))
	assert.False(t, view.ShowPaginator)
	assert.True(t, view.NoResults)
	assert.Empty(t, view.Entries)
}

func TestLoad_ClientPolicyFetchesOnceAndSlicesLocally(t *testing.T) {
	srv := pokeapitest.NewServer(t, 30)
	o := newOrchestrator(t, srv, Options{Policy: PolicyClient, CollectionLimit: 1000, DetailWorkers: 8})
	ctx := context.Background()

	ps := NewPageState(9)
	res := o.Load(ctx, ps)
	require.True(t, res.Fetched)
	assert.Equal(t, 30, res.Total)
	ps, _ = Reduce(ps, Loaded{Total: res.Total}, PolicyClient)

	ps, effect := Reduce(ps, SetPage{Page: 4}, PolicyClient)
	require.Equal(t, EffectReslice, effect)
	view := o.Display(ps)
	assert.Equal(t, []int{28, 29, 30}, ids(view.Entries))
	assert.Equal(t, 4, view.TotalPages)

	again := o.Load(ctx, ps)
	assert.False(t, again.Fetched)
	assert.Len(t, again.Entries, 30)
	assert.Equal(t, []string{"limit=1000&offset=0"}, srv.ListQueries())

	o.Reload(ctx, ps)
	assert.Len(t, srv.ListQueries(), 2)
}

func TestDisplay_SearchIsCaseInsensitiveSubstring(t *testing.T) {
	srv := pokeapitest.NewServer(t, 12)
	o := newOrchestrator(t, srv, Options{Policy: PolicyClient})
	ctx := context.Background()

	ps := NewPageState(9)
	res := o.Load(ctx, ps)
	ps, _ = Reduce(ps, Loaded{Total: res.Total}, PolicyClient)
	ps, _ = Reduce(ps, SetPage{Page: 2}, PolicyClient)

	ps, effect := Reduce(ps, SetSearch{Term: "CHAR"}, PolicyClient)
	assert.Equal(t, EffectReslice, effect)
	assert.Equal(t, 1, ps.CurrentPage)

	view := o.Display(ps)
	names := make([]string, len(view.Entries))
	for i, p := range view.Entries {
		names[i] = p.Name
	}
	assert.Equal(t, []string{"charmander", "charmeleon", "charizard"}, names)
	assert.Equal(t, 12, view.TotalItems)
	assert.Equal(t, 3, view.Filtered)
	assert.False(t, view.NoResults)

	ps, _ = Reduce(ps, SetSearch{Term: "pikachu"}, PolicyClient)
	view = o.Display(ps)
	assert.True(t, view.NoResults)
	assert.Empty(t, view.Entries)
	assert.Equal(t, 12, view.TotalItems)
}

func TestDisplay_SliceNeverExceedsLimit(t *testing.T) {
	srv := pokeapitest.NewServer(t, 57)
	o := newOrchestrator(t, srv, Options{Policy: PolicyClient, DetailWorkers: 8})
	res := o.Load(context.Background(), NewPageState(9))

	for limit := 1; limit <= 60; limit += 7 {
		for page := 1; page <= 70; page += 3 {
			view := o.Display(PageState{CurrentPage: page, Limit: limit, TotalItems: res.Total})
			assert.LessOrEqual(t, len(view.Entries), limit, "limit=%d page=%d", limit, page)
			assert.NotEmpty(t, view.Entries)
		}
	}
}

func TestDisplay_ServerPolicyTruncatesToLimit(t *testing.T) {
	entries := make([]pokeapi.Pokemon, 12)
	for i := range entries {
		entries[i] = pokeapi.Pokemon{ID: i + 1, Name: pokeapitest.Name(i + 1)}
	}
	var store state.Store
	store.Complete(store.Begin(12), state.Result{Entries: entries, Total: 12})

	view := buildView(store.Snapshot(), PageState{CurrentPage: 1, Limit: 5, TotalItems: 12}, PolicyServer)
	assert.Len(t, view.Entries, 5)
	assert.Equal(t, 3, view.TotalPages)
}

func TestDisplay_NoPaginatorWhenTotalIsZero(t *testing.T) {
	var store state.Store
	view := buildView(store.Snapshot(), PageState{CurrentPage: 1, Limit: 9}, PolicyServer)
	assert.False(t, view.ShowPaginator)
	assert.False(t, view.NoResults, "nothing loaded yet should not claim no results")
	assert.Equal(t, 0, view.TotalPages)
}

func TestLoad_SupersededLoadDoesNotPublish(t *testing.T) {
	srv := pokeapitest.NewServer(t, 30)
	srv.SetDelay(30 * time.Millisecond)
	o := newOrchestrator(t, srv, Options{})

	slow := make(chan Result, 1)
	go func() { slow <- o.Load(context.Background(), PageState{CurrentPage: 1, Limit: 3}) }()

	require.Eventually(t, func() bool { return len(srv.DetailOrder()) > 0 }, time.Second, time.Millisecond)
	fast := o.Load(context.Background(), PageState{CurrentPage: 2, Limit: 3})
	require.False(t, fast.Stale)

	stale := <-slow
	assert.True(t, stale.Stale)
	assert.Equal(t, []int{4, 5, 6}, ids(o.Store().Snapshot().Entries))
}

func TestLoad_CancelledLoadIsStale(t *testing.T) {
	srv := pokeapitest.NewServer(t, 30)
	srv.SetDelay(50 * time.Millisecond)
	o := newOrchestrator(t, srv, Options{})

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(20 * time.Millisecond)
		cancel()
	}()
	res := o.Load(ctx, NewPageState(9))
	assert.True(t, res.Stale)
	assert.Equal(t, state.Loading, o.Store().Snapshot().Status)
}

func TestSuggest(t *testing.T) {
	srv := pokeapitest.NewServer(t, 12)
	o := newOrchestrator(t, srv, Options{Policy: PolicyClient})
	o.Load(context.Background(), NewPageState(9))

	got := o.Suggest("chrzrd", 3)
	require.NotEmpty(t, got)
	assert.Equal(t, "charizard", got[0])
	assert.LessOrEqual(t, len(got), 3)

	assert.Nil(t, o.Suggest("", 3))
	assert.Nil(t, o.Suggest("x", 0))
}

func TestFilter(t *testing.T) {
	entries := []pokeapi.Pokemon{{ID: 1, Name: "Bulbasaur"}, {ID: 4, Name: "charmander"}}
	assert.Len(t, Filter(entries, ""), 2)
	got := Filter(entries, "BULB")
	require.Len(t, got, 1)
	assert.True(t, strings.EqualFold(got[0].Name, "bulbasaur"))
}
