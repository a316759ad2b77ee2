package catalog

import (
	"context"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/sahilm/fuzzy"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/five82/pokedex/internal/logging"
	"github.com/five82/pokedex/internal/pokeapi"
	"github.com/five82/pokedex/internal/state"
)

// DefaultCollectionLimit bounds the single list request made under
// PolicyClient.
const DefaultCollectionLimit = 1000

// Options configure an Orchestrator.
type Options struct {
	Policy          Policy
	CollectionLimit int // PolicyClient only
	DetailWorkers   int // <= 1 fetches details one at a time
	Store           *state.Store
	Logger          logrus.FieldLogger
}

// Orchestrator turns page state into loaded entries. Loads publish into a
// state.Store, which also holds the entries Display slices from.
type Orchestrator struct {
	api             pokeapi.Catalog
	policy          Policy
	collectionLimit int
	workers         int
	store           *state.Store
	logger          logrus.FieldLogger

	mu         sync.Mutex
	collection bool // PolicyClient: the store holds the whole collection
}

// Result describes one call to Load.
type Result struct {
	Entries []pokeapi.Pokemon
	Total   int
	Failed  int
	Seq     uint64
	Fetched bool // false when held entries were reused
	Stale   bool // a newer load superseded this one; nothing was published
}

// New builds an Orchestrator over api.
func New(api pokeapi.Catalog, opts Options) *Orchestrator {
	policy := opts.Policy
	if policy == "" {
		policy = PolicyServer
	}
	limit := opts.CollectionLimit
	if limit <= 0 {
		limit = DefaultCollectionLimit
	}
	store := opts.Store
	if store == nil {
		store = &state.Store{}
	}
	logger := opts.Logger
	if logger == nil {
		logger = logging.Discard()
	}
	return &Orchestrator{
		api:             api,
		policy:          policy,
		collectionLimit: limit,
		workers:         max(opts.DetailWorkers, 1),
		store:           store,
		logger:          logger.WithFields(logrus.Fields{"component": "catalog", "policy": string(policy)}),
	}
}

// Policy returns the configured paging policy.
func (o *Orchestrator) Policy() Policy {
	return o.policy
}

// Store returns the store loads publish into.
func (o *Orchestrator) Store() *state.Store {
	return o.store
}

// Load fetches what ps needs. Under PolicyServer that is the current page;
// under PolicyClient the whole collection, once, after which Load reuses it.
func (o *Orchestrator) Load(ctx context.Context, ps PageState) Result {
	if o.policy == PolicyClient {
		o.mu.Lock()
		held := o.collection
		o.mu.Unlock()
		if held {
			snap := o.store.Snapshot()
			return Result{Entries: snap.Entries, Total: snap.Total, Failed: snap.Failed, Seq: snap.Seq}
		}
		return o.load(ctx, pokeapi.Query{Limit: o.collectionLimit}, true)
	}

	if ps.Limit <= 0 {
		ps.Limit = DefaultLimit
	}
	return o.load(ctx, pokeapi.Query{Limit: ps.Limit, Offset: ps.Offset()}, false)
}

// Reload is Load without reuse of a held collection.
func (o *Orchestrator) Reload(ctx context.Context, ps PageState) Result {
	o.mu.Lock()
	o.collection = false
	o.mu.Unlock()
	return o.Load(ctx, ps)
}

func (o *Orchestrator) load(ctx context.Context, query pokeapi.Query, whole bool) Result {
	started := time.Now()
	seq := o.store.Begin(query.Limit)
	log := o.logger.WithFields(logrus.Fields{"seq": seq, "limit": query.Limit, "offset": query.Offset})
	log.Debug("load started")

	page := o.api.ListPage(ctx, query)
	o.store.Progress(seq, 0, len(page.Results))

	entries, failed := o.expand(ctx, seq, page.Results)

	total := page.Count
	if whole {
		total = len(entries)
	}
	res := Result{Entries: entries, Total: total, Failed: failed, Seq: seq, Fetched: true}

	if ctx.Err() != nil {
		res.Stale = true
		log.Debug("load cancelled")
		return res
	}
	if !o.store.Complete(seq, state.Result{Entries: entries, Total: total, Failed: failed}) {
		res.Stale = true
		log.Debug("load superseded")
		return res
	}
	if whole {
		o.mu.Lock()
		o.collection = true
		o.mu.Unlock()
	}

	fields := logrus.Fields{
		"entries":  len(entries),
		"failed":   failed,
		"total":    total,
		"duration": time.Since(started).Round(time.Millisecond).String(),
	}
	if failed > 0 {
		log.WithFields(fields).Warn("load finished with dropped entries")
	} else {
		log.WithFields(fields).Info("load finished")
	}
	return res
}

// expand fetches the detail of every ref. Failed fetches are dropped; the
// rest keep list order.
func (o *Orchestrator) expand(ctx context.Context, seq uint64, refs []pokeapi.NamedResource) ([]pokeapi.Pokemon, int) {
	if len(refs) == 0 {
		return nil, 0
	}
	if o.workers <= 1 {
		return o.expandSequential(ctx, seq, refs)
	}
	return o.expandConcurrent(ctx, seq, refs)
}

func (o *Orchestrator) expandSequential(ctx context.Context, seq uint64, refs []pokeapi.NamedResource) ([]pokeapi.Pokemon, int) {
	entries := make([]pokeapi.Pokemon, 0, len(refs))
	failed := 0
	for i, ref := range refs {
		if ctx.Err() != nil {
			failed += len(refs) - i
			break
		}
		p := o.api.FetchDetail(ctx, ref.URL)
		if p.Valid() {
			entries = append(entries, p)
		} else {
			failed++
		}
		o.store.Progress(seq, i+1, len(refs))
	}
	return entries, failed
}

func (o *Orchestrator) expandConcurrent(ctx context.Context, seq uint64, refs []pokeapi.NamedResource) ([]pokeapi.Pokemon, int) {
	fetched := make([]pokeapi.Pokemon, len(refs))
	var done atomic.Int64

	g := new(errgroup.Group)
	g.SetLimit(o.workers)
	for i, ref := range refs {
		g.Go(func() error {
			if ctx.Err() != nil {
				return nil
			}
			fetched[i] = o.api.FetchDetail(ctx, ref.URL)
			o.store.Progress(seq, int(done.Add(1)), len(refs))
			return nil
		})
	}
	_ = g.Wait()

	entries := make([]pokeapi.Pokemon, 0, len(refs))
	for _, p := range fetched {
		if p.Valid() {
			entries = append(entries, p)
		}
	}
	return entries, len(refs) - len(entries)
}

// View is what the UI renders for one PageState.
type View struct {
	Entries       []pokeapi.Pokemon
	Page          int
	TotalPages    int
	Filtered      int // held entries matching the search
	TotalItems    int
	ShowPaginator bool
	NoResults     bool
	Status        state.Status
	Loaded        int
	Expected      int
	Failed        int
}

// Display derives the visible entries for ps from the latest load.
func (o *Orchestrator) Display(ps PageState) View {
	return buildView(o.store.Snapshot(), ps, o.policy)
}

func buildView(snap state.Snapshot, ps PageState, policy Policy) View {
	if ps.Limit <= 0 {
		ps.Limit = DefaultLimit
	}
	matched := Filter(snap.Entries, ps.Search)

	view := View{
		Filtered:      len(matched),
		TotalItems:    ps.TotalItems,
		ShowPaginator: ps.TotalItems > 0,
		Status:        snap.Status,
		Loaded:        snap.Loaded,
		Expected:      snap.Expected,
		Failed:        snap.Failed,
	}

	switch policy {
	case PolicyClient:
		view.TotalPages = TotalPages(len(matched), ps.Limit)
		view.Page = min(max(ps.CurrentPage, 1), max(view.TotalPages, 1))
		start := (view.Page - 1) * ps.Limit
		end := min(start+ps.Limit, len(matched))
		if start < end {
			view.Entries = matched[start:end]
		}
	default:
		view.TotalPages = TotalPages(ps.TotalItems, ps.Limit)
		view.Page = max(ps.CurrentPage, 1)
		view.Entries = matched[:min(len(matched), ps.Limit)]
	}

	if len(view.Entries) == 0 {
		view.Entries = nil
		finished := snap.Status == state.Ready || snap.Status == state.Partial
		view.NoResults = ps.Search != "" || finished
	}
	return view
}

// Filter keeps entries whose name contains term, ignoring case. An empty term
// keeps everything.
func Filter(entries []pokeapi.Pokemon, term string) []pokeapi.Pokemon {
	needle := strings.ToLower(strings.TrimSpace(term))
	if needle == "" {
		return entries
	}
	out := make([]pokeapi.Pokemon, 0, len(entries))
	for _, p := range entries {
		if strings.Contains(strings.ToLower(p.Name), needle) {
			out = append(out, p)
		}
	}
	return out
}

// Suggest returns up to n held names closest to term by fuzzy match, best
// first.
func (o *Orchestrator) Suggest(term string, n int) []string {
	return suggest(o.store.Snapshot().Entries, term, n)
}

func suggest(entries []pokeapi.Pokemon, term string, n int) []string {
	query := strings.ToLower(strings.TrimSpace(term))
	if query == "" || n <= 0 || len(entries) == 0 {
		return nil
	}
	names := make([]string, len(entries))
	for i, p := range entries {
		names[i] = strings.ToLower(p.Name)
	}
	matches := fuzzy.Find(query, names)
	out := make([]string, 0, min(n, len(matches)))
	for _, m := range matches {
		if len(out) == n {
			break
		}
		out = append(out, entries[m.Index].Name)
	}
	return out
}
