package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePolicy(t *testing.T) {
	p, err := ParsePolicy("")
	require.NoError(t, err)
	assert.Equal(t, PolicyServer, p)

	p, err = ParsePolicy(" Client ")
	require.NoError(t, err)
	assert.Equal(t, PolicyClient, p)

	_, err = ParsePolicy("hybrid")
	require.Error(t, err)
}

func TestTotalPages(t *testing.T) {
	tests := []struct {
		total, limit, want int
	}{
		{0, 9, 0},
		{1, 9, 1},
		{9, 9, 1},
		{10, 9, 2},
		{1000, 9, 112},
		{5, 0, 0},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, TotalPages(tt.total, tt.limit), "TotalPages(%d, %d)", tt.total, tt.limit)
	}
}

func TestReduce_SetLimitAlwaysResetsPage(t *testing.T) {
	for _, policy := range []Policy{PolicyServer, PolicyClient} {
		for _, limit := range []int{1, 9, 20, 50} {
			start := PageState{CurrentPage: 7, Limit: 9, TotalItems: 1000, Search: "a"}
			next, effect := Reduce(start, SetLimit{Limit: limit}, policy)
			assert.Equal(t, 1, next.CurrentPage, "policy=%s limit=%d", policy, limit)
			assert.Equal(t, limit, next.Limit)
			assert.Equal(t, 1000, next.TotalItems)
			assert.Equal(t, pageEffect(policy), effect)
		}
	}
}

func TestReduce_SetLimitIgnoresNonPositive(t *testing.T) {
	start := PageState{CurrentPage: 3, Limit: 9, TotalItems: 100}
	next, effect := Reduce(start, SetLimit{Limit: 0}, PolicyServer)
	assert.Equal(t, start, next)
	assert.Equal(t, EffectNone, effect)
}

func TestReduce_SetPageClamps(t *testing.T) {
	start := PageState{CurrentPage: 1, Limit: 9, TotalItems: 20}

	next, effect := Reduce(start, SetPage{Page: 99}, PolicyServer)
	assert.Equal(t, 3, next.CurrentPage)
	assert.Equal(t, EffectFetch, effect)

	next, effect = Reduce(next, SetPage{Page: -4}, PolicyClient)
	assert.Equal(t, 1, next.CurrentPage)
	assert.Equal(t, EffectReslice, effect)

	_, effect = Reduce(next, SetPage{Page: 1}, PolicyServer)
	assert.Equal(t, EffectNone, effect)

	empty := PageState{CurrentPage: 1, Limit: 9}
	next, effect = Reduce(empty, SetPage{Page: 2}, PolicyServer)
	assert.Equal(t, 1, next.CurrentPage)
	assert.Equal(t, EffectNone, effect)
}

func TestReduce_SetSearchNeverFetchesOrTouchesTotal(t *testing.T) {
	start := PageState{CurrentPage: 4, Limit: 9, TotalItems: 1000}

	next, effect := Reduce(start, SetSearch{Term: "  Char "}, PolicyClient)
	assert.Equal(t, EffectReslice, effect)
	assert.Equal(t, "Char", next.Search)
	assert.Equal(t, 1, next.CurrentPage)
	assert.Equal(t, 1000, next.TotalItems)

	next, effect = Reduce(start, SetSearch{Term: "char"}, PolicyServer)
	assert.Equal(t, EffectReslice, effect)
	assert.Equal(t, 4, next.CurrentPage)
	assert.Equal(t, 1000, next.TotalItems)

	_, effect = Reduce(next, SetSearch{Term: "char "}, PolicyServer)
	assert.Equal(t, EffectNone, effect)
}

func TestReduce_LoadedRecordsTotal(t *testing.T) {
	next, effect := Reduce(PageState{}, Loaded{Total: 1000}, PolicyServer)
	assert.Equal(t, EffectNone, effect)
	assert.Equal(t, PageState{CurrentPage: 1, Limit: DefaultLimit, TotalItems: 1000}, next)
}

func TestPageStateOffset(t *testing.T) {
	assert.Equal(t, 0, NewPageState(9).Offset())
	assert.Equal(t, 18, PageState{CurrentPage: 3, Limit: 9}.Offset())
	assert.Equal(t, DefaultLimit, NewPageState(0).Limit)
}
