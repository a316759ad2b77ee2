package state

import (
	"sync"
	"time"

	"github.com/five82/pokedex/internal/pokeapi"
)

// Status is the phase of the most recent load.
type Status int

const (
	Idle Status = iota
	Loading
	Ready
	Partial // ready, but some detail fetches failed and were dropped
)

func (s Status) String() string {
	switch s {
	case Loading:
		return "loading"
	case Ready:
		return "ready"
	case Partial:
		return "partial"
	default:
		return "idle"
	}
}

// Snapshot represents the latest data available to the UI.
type Snapshot struct {
	Status      Status
	Entries     []pokeapi.Pokemon
	Total       int // server-reported size of the unfiltered collection
	Loaded      int // details fetched so far in the current load
	Expected    int // details the current load will attempt
	Failed      int // details dropped from the current load
	LastUpdated time.Time
	Seq         uint64
}

// Loading reports whether a load is in flight.
func (s Snapshot) Loading() bool {
	return s.Status == Loading
}

// Result is what a finished load hands back to the store.
type Result struct {
	Entries []pokeapi.Pokemon
	Total   int
	Failed  int
}

// Store coordinates concurrent updates to the snapshot. Each load is tagged
// with the sequence number returned by Begin; only the latest load may publish.
type Store struct {
	mu       sync.RWMutex
	snapshot Snapshot
}

// Begin marks a new load as in flight and returns its sequence number. The
// previous entries stay visible until the load completes.
func (s *Store) Begin(expected int) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.snapshot.Seq++
	s.snapshot.Status = Loading
	s.snapshot.Loaded = 0
	s.snapshot.Expected = max(expected, 0)
	s.snapshot.Failed = 0
	return s.snapshot.Seq
}

// Progress records how many details the load seq has fetched. It is a no-op
// for superseded loads.
func (s *Store) Progress(seq uint64, loaded, expected int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if seq != s.snapshot.Seq || s.snapshot.Status != Loading {
		return
	}
	s.snapshot.Loaded = loaded
	if expected > 0 {
		s.snapshot.Expected = expected
	}
}

// Complete publishes the result of load seq. It returns false, leaving the
// snapshot untouched, when a newer load has begun since.
func (s *Store) Complete(seq uint64, res Result) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if seq != s.snapshot.Seq {
		return false
	}

	s.snapshot.Entries = cloneEntries(res.Entries)
	s.snapshot.Total = max(res.Total, 0)
	s.snapshot.Failed = res.Failed
	s.snapshot.Loaded = len(res.Entries)
	s.snapshot.Expected = len(res.Entries) + res.Failed
	s.snapshot.LastUpdated = time.Now()
	if res.Failed > 0 {
		s.snapshot.Status = Partial
	} else {
		s.snapshot.Status = Ready
	}
	return true
}

// Snapshot returns a copy of the current snapshot.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := s.snapshot
	snap.Entries = cloneEntries(s.snapshot.Entries)
	return snap
}

func cloneEntries(items []pokeapi.Pokemon) []pokeapi.Pokemon {
	if len(items) == 0 {
		return nil
	}
	dup := make([]pokeapi.Pokemon, len(items))
	copy(dup, items)
	return dup
}
