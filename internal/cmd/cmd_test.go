package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/five82/pokedex/internal/config"
	"github.com/five82/pokedex/internal/pokeapi/pokeapitest"
)

func setup(t *testing.T, total int) *pokeapitest.Server {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	srv := pokeapitest.NewServer(t, total)
	t.Setenv(config.BaseURLEnv, srv.BaseURL())
	return srv
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(append(args, "--prefs", filepath.Join(t.TempDir(), "prefs.toml")))
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func TestList_PrintsFirstPage(t *testing.T) {
	setup(t, 30)

	out, err := execute(t, "list")
	require.NoError(t, err)
	assert.Contains(t, out, "bulbasaur")
	assert.Contains(t, out, "blastoise")
	assert.NotContains(t, out, "caterpie")
	assert.Contains(t, out, "Page 1/4 · 30 Pokémon")
}

func TestList_JSONHonoursPageAndLimit(t *testing.T) {
	setup(t, 30)

	out, err := execute(t, "list", "--page", "2", "--limit", "5", "--json")
	require.NoError(t, err)

	var got pageOutput
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, 2, got.Page)
	assert.Equal(t, 6, got.TotalPages)
	assert.Equal(t, 30, got.Total)
	assert.Equal(t, "server", got.Policy)
	require.Len(t, got.Entries, 5)
	assert.Equal(t, 6, got.Entries[0].ID)
	assert.Equal(t, "charizard", got.Entries[0].Name)
}

func TestList_ReportsFailedEntries(t *testing.T) {
	srv := setup(t, 30)
	srv.FailDetail(2, 500)

	out, err := execute(t, "list", "--json")
	require.NoError(t, err)

	var got pageOutput
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, 1, got.Failed)
	assert.Len(t, got.Entries, 8)
}

func TestSearch_ClientPolicySearchesWholeCollection(t *testing.T) {
	setup(t, 30)

	out, err := execute(t, "search", "CHAR", "--policy", "client", "--json")
	require.NoError(t, err)

	var got pageOutput
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	names := make([]string, len(got.Entries))
	for i, e := range got.Entries {
		names[i] = e.Name
	}
	assert.Equal(t, []string{"charmander", "charmeleon", "charizard"}, names)
	assert.Equal(t, "client", got.Policy)
}

func TestSearch_NoMatchSuggests(t *testing.T) {
	setup(t, 30)

	out, err := execute(t, "search", "chrzrd", "--policy", "client")
	require.NoError(t, err)
	assert.Contains(t, out, "No Pokémon found.")
	assert.Contains(t, out, "Did you mean: charizard")
}

func TestShow_PrintsDetail(t *testing.T) {
	setup(t, 30)

	out, err := execute(t, "show", "charizard")
	require.NoError(t, err)
	assert.Contains(t, out, "#006 charizard")
	assert.Contains(t, out, "0.7 m")
	assert.Contains(t, out, "chlorophyll (hidden)")
}

func TestShow_JSONPassesBodyThrough(t *testing.T) {
	setup(t, 30)

	out, err := execute(t, "show", "6", "--json")
	require.NoError(t, err)

	var body map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &body))
	assert.Contains(t, body, "species")
	assert.Contains(t, body, "location_area_encounters")
}

func TestShow_UnknownEntryFails(t *testing.T) {
	setup(t, 30)

	_, err := execute(t, "show", "missingno")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "404")
}

func TestRoot_WithoutTerminalPrintsList(t *testing.T) {
	setup(t, 30)
	prev := isTerminal
	isTerminal = func() bool { return false }
	t.Cleanup(func() { isTerminal = prev })

	out, err := execute(t)
	require.NoError(t, err)
	assert.Contains(t, out, "bulbasaur")
}

func TestRoot_RejectsUnknownPolicy(t *testing.T) {
	setup(t, 30)

	_, err := execute(t, "list", "--policy", "sideways")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "catalog.policy")
}

func TestVersion(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "pokedex "+Version))
}
