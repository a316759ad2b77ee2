// Package pokeapitest provides an in-process fake of the PokéAPI list and
// detail endpoints for tests.
package pokeapitest

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"
)

var starterNames = []string{
	"bulbasaur", "ivysaur", "venusaur",
	"charmander", "charmeleon", "charizard",
	"squirtle", "wartortle", "blastoise",
	"caterpie", "metapod", "butterfree",
}

var starterTypes = [][]string{
	{"grass", "poison"}, {"grass", "poison"}, {"grass", "poison"},
	{"fire"}, {"fire"}, {"fire", "flying"},
	{"water"}, {"water"}, {"water"},
	{"bug"}, {"bug"}, {"bug", "flying"},
}

// Server is a fake PokéAPI with Total entries numbered 1..Total.
type Server struct {
	*httptest.Server

	Total int

	mu          sync.Mutex
	failDetail  map[int]int // id -> status code
	delay       time.Duration
	listQueries []string
	detailOrder []int
	inFlight    int
	maxInFlight int
}

// NewServer starts a fake with total entries and registers cleanup on t.
func NewServer(t testing.TB, total int) *Server {
	t.Helper()
	s := &Server{Total: total, failDetail: make(map[int]int)}
	s.Server = httptest.NewServer(http.HandlerFunc(s.handle))
	t.Cleanup(s.Close)
	return s
}

// BaseURL is the API root to hand to a client.
func (s *Server) BaseURL() string {
	return s.URL + "/api/v2/"
}

// FailDetail makes the detail endpoint for id answer with status.
func (s *Server) FailDetail(id, status int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failDetail[id] = status
}

// SetDelay makes every detail request sleep for d before answering.
func (s *Server) SetDelay(d time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.delay = d
}

// ListQueries returns the raw query strings of list requests, in order.
func (s *Server) ListQueries() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.listQueries...)
}

// DetailOrder returns the ids of detail requests in arrival order.
func (s *Server) DetailOrder() []int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]int(nil), s.detailOrder...)
}

// MaxInFlight returns the highest number of concurrent detail requests seen.
func (s *Server) MaxInFlight() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.maxInFlight
}

// Name returns the fake's name for id.
func Name(id int) string {
	if id >= 1 && id <= len(starterNames) {
		return starterNames[id-1]
	}
	return fmt.Sprintf("pokemon-%d", id)
}

func types(id int) []string {
	if id >= 1 && id <= len(starterTypes) {
		return starterTypes[id-1]
	}
	return []string{"normal"}
}

func (s *Server) handle(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimSuffix(strings.TrimPrefix(r.URL.Path, "/api/v2/"), "/")
	switch {
	case path == "pokemon":
		s.handleList(w, r)
	case strings.HasPrefix(path, "pokemon/"):
		s.handleDetail(w, strings.TrimPrefix(path, "pokemon/"))
	default:
		http.NotFound(w, r)
	}
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	s.listQueries = append(s.listQueries, r.URL.RawQuery)
	s.mu.Unlock()

	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))
	if limit <= 0 {
		limit = 20
	}

	type result struct {
		Name string `json:"name"`
		URL  string `json:"url"`
	}
	results := []result{}
	for id := offset + 1; id <= s.Total && id <= offset+limit; id++ {
		results = append(results, result{
			Name: Name(id),
			URL:  fmt.Sprintf("%s/api/v2/pokemon/%d/", s.URL, id),
		})
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{
		"count":    s.Total,
		"next":     nil,
		"previous": nil,
		"results":  results,
	})
}

func (s *Server) handleDetail(w http.ResponseWriter, key string) {
	id, err := strconv.Atoi(key)
	if err != nil {
		id = s.idForName(key)
	}

	s.mu.Lock()
	s.detailOrder = append(s.detailOrder, id)
	s.inFlight++
	if s.inFlight > s.maxInFlight {
		s.maxInFlight = s.inFlight
	}
	delay := s.delay
	status, failing := s.failDetail[id]
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.inFlight--
		s.mu.Unlock()
	}()

	if delay > 0 {
		time.Sleep(delay)
	}
	if failing {
		http.Error(w, "fail", status)
		return
	}
	if id < 1 || id > s.Total {
		http.NotFound(w, nil)
		return
	}

	typeSlots := []map[string]any{}
	for i, name := range types(id) {
		typeSlots = append(typeSlots, map[string]any{
			"slot": i + 1,
			"type": map[string]any{"name": name, "url": ""},
		})
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{
		"id":              id,
		"name":            Name(id),
		"base_experience": 64,
		"height":          7,
		"weight":          69,
		"order":           id,
		"is_default":      true,
		"sprites": map[string]any{
			"front_default": fmt.Sprintf("https://img.example/%d.png", id),
			"back_default":  nil,
		},
		"types": typeSlots,
		"stats": []map[string]any{
			{"base_stat": 45, "effort": 0, "stat": map[string]any{"name": "hp"}},
			{"base_stat": 49, "effort": 0, "stat": map[string]any{"name": "attack"}},
		},
		"abilities": []map[string]any{
			{"slot": 1, "is_hidden": false, "ability": map[string]any{"name": "overgrow"}},
			{"slot": 3, "is_hidden": true, "ability": map[string]any{"name": "chlorophyll"}},
		},
		"species":                  map[string]any{"name": Name(id)},
		"location_area_encounters": fmt.Sprintf("/api/v2/pokemon/%d/encounters", id),
	})
}

func (s *Server) idForName(name string) int {
	for id := 1; id <= s.Total; id++ {
		if Name(id) == name {
			return id
		}
	}
	return 0
}
