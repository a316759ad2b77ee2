package catalog

import (
	"fmt"
	"strings"
)

// Policy selects how pages are sourced.
type Policy string

const (
	// PolicyServer fetches one server-side page per page change.
	PolicyServer Policy = "server"
	// PolicyClient fetches the collection once and pages through it locally.
	PolicyClient Policy = "client"
)

// ParsePolicy accepts "server" or "client" in any case; empty means server.
func ParsePolicy(raw string) (Policy, error) {
	switch Policy(strings.ToLower(strings.TrimSpace(raw))) {
	case "", PolicyServer:
		return PolicyServer, nil
	case PolicyClient:
		return PolicyClient, nil
	default:
		return "", fmt.Errorf("unknown policy %q (want server or client)", raw)
	}
}

// DefaultLimit is the page size used when none is configured.
const DefaultLimit = 9

// PageState is the pagination and search state of one catalog view.
// TotalItems is the size of the unfiltered collection; Search never changes it.
type PageState struct {
	CurrentPage int
	Limit       int
	TotalItems  int
	Search      string
}

// NewPageState returns page 1 with the given limit, or DefaultLimit if limit
// is not positive.
func NewPageState(limit int) PageState {
	if limit <= 0 {
		limit = DefaultLimit
	}
	return PageState{CurrentPage: 1, Limit: limit}
}

// Offset is the zero-based index of the first entry on the current page.
func (s PageState) Offset() int {
	return (max(s.CurrentPage, 1) - 1) * s.Limit
}

// TotalPages returns ceil(total/limit), or 0 when there is nothing to page.
func TotalPages(total, limit int) int {
	if total <= 0 || limit <= 0 {
		return 0
	}
	return (total + limit - 1) / limit
}

// Action is a state transition request.
type Action interface {
	action()
}

// SetPage moves to Page, clamped to the available pages.
type SetPage struct{ Page int }

// SetLimit changes the page size and returns to page 1.
type SetLimit struct{ Limit int }

// SetSearch changes the name filter. Under PolicyClient it returns to page 1.
type SetSearch struct{ Term string }

// Loaded records the collection size reported by a finished load.
type Loaded struct{ Total int }

func (SetPage) action()   {}
func (SetLimit) action()  {}
func (SetSearch) action() {}
func (Loaded) action()    {}

// Effect tells the caller what work a transition requires.
type Effect int

const (
	// EffectNone means the current view is still valid.
	EffectNone Effect = iota
	// EffectFetch means a network load is required.
	EffectFetch
	// EffectReslice means the view must be re-derived from held entries.
	EffectReslice
)

func (e Effect) String() string {
	switch e {
	case EffectFetch:
		return "fetch"
	case EffectReslice:
		return "reslice"
	default:
		return "none"
	}
}

// Reduce applies a to s under policy p and returns the new state with the
// work it implies. It never mutates s.
func Reduce(s PageState, a Action, p Policy) (PageState, Effect) {
	if s.Limit <= 0 {
		s.Limit = DefaultLimit
	}
	if s.CurrentPage < 1 {
		s.CurrentPage = 1
	}

	switch a := a.(type) {
	case SetPage:
		page := min(max(a.Page, 1), max(TotalPages(s.TotalItems, s.Limit), 1))
		if page == s.CurrentPage {
			return s, EffectNone
		}
		s.CurrentPage = page
		return s, pageEffect(p)

	case SetLimit:
		if a.Limit <= 0 {
			return s, EffectNone
		}
		if a.Limit == s.Limit && s.CurrentPage == 1 {
			return s, EffectNone
		}
		s.Limit = a.Limit
		s.CurrentPage = 1
		return s, pageEffect(p)

	case SetSearch:
		term := strings.TrimSpace(a.Term)
		if term == s.Search {
			return s, EffectNone
		}
		s.Search = term
		// Server pages are filtered where they stand; moving would need a fetch.
		if p == PolicyClient {
			s.CurrentPage = 1
		}
		return s, EffectReslice

	case Loaded:
		s.TotalItems = max(a.Total, 0)
		return s, EffectNone
	}
	return s, EffectNone
}

func pageEffect(p Policy) Effect {
	if p == PolicyClient {
		return EffectReslice
	}
	return EffectFetch
}
