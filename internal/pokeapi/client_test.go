package pokeapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/five82/pokedex/internal/pokeapi/pokeapitest"
)

func newTestClient(t *testing.T, baseURL string) *Client {
	t.Helper()
	c, err := NewClient(Options{BaseURL: baseURL})
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })
	return c
}

func TestParseBaseURL_DefaultsAndNormalizes(t *testing.T) {
	u, err := parseBaseURL("")
	require.NoError(t, err)
	assert.Equal(t, DefaultBaseURL, u.String())

	u, err = parseBaseURL("example.com/api/v2?x=1#frag")
	require.NoError(t, err)
	assert.Equal(t, "https://example.com/api/v2/", u.String())

	_, err = parseBaseURL("http://")
	require.Error(t, err)
}

func TestClient_ListPageEncodesQuery(t *testing.T) {
	t.Parallel()
	srv := pokeapitest.NewServer(t, 1000)
	c := newTestClient(t, srv.BaseURL())

	page := c.ListPage(context.Background(), Query{Limit: 9, Offset: 18})
	assert.Equal(t, 1000, page.Count)
	require.Len(t, page.Results, 9)
	assert.Equal(t, "pokemon-19", page.Results[0].Name)
	assert.True(t, strings.HasSuffix(page.Results[0].URL, "/api/v2/pokemon/19/"))

	assert.Equal(t, []string{"limit=9&offset=18"}, srv.ListQueries())
}

func TestClient_ListBasicReturnsReferences(t *testing.T) {
	t.Parallel()
	srv := pokeapitest.NewServer(t, 12)
	c := newTestClient(t, srv.BaseURL())

	basic := c.ListBasic(context.Background(), Query{Limit: 3})
	require.Len(t, basic, 3)
	assert.Equal(t, "bulbasaur", basic[0].Name)
	assert.Equal(t, "venusaur", basic[2].Name)
}

func TestClient_FetchDetailKeepsPassthroughFields(t *testing.T) {
	t.Parallel()
	srv := pokeapitest.NewServer(t, 12)
	c := newTestClient(t, srv.BaseURL())

	p := c.FetchDetail(context.Background(), srv.BaseURL()+"pokemon/6/")
	require.True(t, p.Valid())
	assert.Equal(t, 6, p.ID)
	assert.Equal(t, "charizard", p.Name)
	assert.Equal(t, []string{"fire", "flying"}, p.TypeNames())
	assert.Equal(t, "https://img.example/6.png", p.Sprites.FrontDefault)
	assert.Equal(t, 45, p.Stat("HP"))
	assert.Equal(t, []string{"overgrow", "chlorophyll (hidden)"}, p.AbilityNames())

	var raw map[string]any
	require.NoError(t, json.Unmarshal(p.Raw, &raw))
	assert.Contains(t, raw, "species")
	assert.Contains(t, raw, "location_area_encounters")
}

func TestClient_FailuresAreSwallowed(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/pokemon":
			http.Error(w, "nope", http.StatusInternalServerError)
		case "/pokemon/1/":
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte("{not-json"))
		case "/pokemon/2/":
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"id": 0}`))
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(server.Close)

	c := newTestClient(t, server.URL)
	ctx := context.Background()

	assert.Equal(t, Page{}, c.ListPage(ctx, Query{Limit: 9}))
	basic := c.ListBasic(ctx, Query{Limit: 9})
	assert.NotNil(t, basic)
	assert.Empty(t, basic)

	assert.False(t, c.FetchDetail(ctx, server.URL+"/pokemon/1/").Valid())
	assert.False(t, c.FetchDetail(ctx, server.URL+"/pokemon/2/").Valid())
	assert.False(t, c.FetchDetail(ctx, server.URL+"/pokemon/404/").Valid())
}

func TestClient_ErrorTaxonomy(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/pokemon":
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"count": 3}`))
		case "/pokemon/1/":
			_, _ = w.Write([]byte("<html>"))
		default:
			http.Error(w, "gone", http.StatusNotFound)
		}
	}))
	t.Cleanup(server.Close)

	c := newTestClient(t, server.URL)
	ctx := context.Background()

	_, err := c.GetPage(ctx, Query{Limit: 1})
	require.ErrorIs(t, err, ErrMalformed)

	_, err = c.GetDetail(ctx, server.URL+"/pokemon/1/")
	require.ErrorIs(t, err, ErrMalformed)

	_, err = c.GetDetail(ctx, server.URL+"/pokemon/2/")
	var statusErr *StatusError
	require.True(t, errors.As(err, &statusErr))
	assert.Equal(t, http.StatusNotFound, statusErr.StatusCode)

	dead := newTestClient(t, "http://127.0.0.1:1/")
	_, err = dead.GetPage(ctx, Query{Limit: 1})
	require.ErrorIs(t, err, ErrNetwork)

	_, err = c.GetDetail(ctx, "  ")
	require.Error(t, err)
}

func TestClient_CancelledContextReturnsEmpty(t *testing.T) {
	t.Parallel()
	srv := pokeapitest.NewServer(t, 5)
	srv.SetDelay(500 * time.Millisecond)
	c := newTestClient(t, srv.BaseURL())

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	t.Cleanup(cancel)

	p := c.FetchDetail(ctx, srv.BaseURL()+"pokemon/1/")
	assert.False(t, p.Valid())
}

func TestClient_DetailURL(t *testing.T) {
	c := newTestClient(t, "https://pokeapi.co/api/v2")
	assert.Equal(t, "https://pokeapi.co/api/v2/pokemon/pikachu/", c.DetailURL(" Pikachu "))
	assert.Equal(t, "https://pokeapi.co/api/v2/pokemon/25/", c.DetailURL("25"))
	assert.Equal(t, "https://other.test/x/", c.DetailURL("https://other.test/x/"))
}

func TestClient_SendsUserAgent(t *testing.T) {
	t.Parallel()

	var gotUA, gotAccept string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		gotAccept = r.Header.Get("Accept")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"count": 0, "results": []}`))
	}))
	t.Cleanup(server.Close)

	c := newTestClient(t, server.URL)
	page := c.ListPage(context.Background(), Query{Limit: 1})
	assert.Equal(t, 0, page.Count)
	assert.True(t, strings.HasPrefix(gotUA, "pokedex/"), "User-Agent = %q", gotUA)
	assert.Equal(t, "application/json", gotAccept)
}
