package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/five82/pokedex/internal/catalog"
	"github.com/five82/pokedex/internal/pokeapi"
)

type entryOutput struct {
	ID             int      `json:"id"`
	Name           string   `json:"name"`
	Types          []string `json:"types"`
	HeightMeters   float64  `json:"height_m"`
	WeightKilogram float64  `json:"weight_kg"`
	BaseExperience int      `json:"base_experience"`
}

type pageOutput struct {
	Page        int           `json:"page"`
	TotalPages  int           `json:"total_pages"`
	Total       int           `json:"total"`
	Limit       int           `json:"limit"`
	Policy      string        `json:"policy"`
	Search      string        `json:"search,omitempty"`
	Failed      int           `json:"failed"`
	Entries     []entryOutput `json:"entries"`
	Suggestions []string      `json:"suggestions,omitempty"`
}

func newPageOutput(view catalog.View, ps catalog.PageState, policy catalog.Policy, suggestions []string) pageOutput {
	out := pageOutput{
		Page:        view.Page,
		TotalPages:  view.TotalPages,
		Total:       ps.TotalItems,
		Limit:       ps.Limit,
		Policy:      string(policy),
		Search:      ps.Search,
		Failed:      view.Failed,
		Entries:     make([]entryOutput, 0, len(view.Entries)),
		Suggestions: suggestions,
	}
	for _, p := range view.Entries {
		types := p.TypeNames()
		if types == nil {
			types = []string{}
		}
		out.Entries = append(out.Entries, entryOutput{
			ID:             p.ID,
			Name:           p.Name,
			Types:          types,
			HeightMeters:   p.HeightMeters(),
			WeightKilogram: p.WeightKilograms(),
			BaseExperience: p.BaseExperience,
		})
	}
	return out
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode json: %w", err)
	}
	return nil
}

var headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
var cellStyle = lipgloss.NewStyle().Padding(0, 1)

// renderEntries renders entries as a bordered table.
func renderEntries(entries []pokeapi.Pokemon) string {
	rows := make([][]string, 0, len(entries))
	for _, p := range entries {
		rows = append(rows, []string{
			strconv.Itoa(p.ID),
			p.Name,
			strings.Join(p.TypeNames(), "/"),
			fmt.Sprintf("%.1f m", p.HeightMeters()),
			fmt.Sprintf("%.1f kg", p.WeightKilograms()),
		})
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		Headers("#", "NAME", "TYPES", "HEIGHT", "WEIGHT").
		Rows(rows...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})
	return t.Render()
}

// writePage prints a rendered page with its paging summary.
func writePage(w io.Writer, view catalog.View, ps catalog.PageState, suggestions []string) {
	if view.NoResults {
		_, _ = fmt.Fprintln(w, "No Pokémon found.")
		if len(suggestions) > 0 {
			_, _ = fmt.Fprintf(w, "Did you mean: %s?\n", strings.Join(suggestions, ", "))
		}
		writeFailed(w, view.Failed)
		return
	}

	_, _ = fmt.Fprintln(w, renderEntries(view.Entries))
	_, _ = fmt.Fprintf(w, "Page %d/%d · %d Pokémon", view.Page, max(view.TotalPages, 1), ps.TotalItems)
	if ps.Search != "" {
		_, _ = fmt.Fprintf(w, " · %d matching %q", view.Filtered, ps.Search)
	}
	_, _ = fmt.Fprintln(w)
	writeFailed(w, view.Failed)
}

func writeFailed(w io.Writer, failed int) {
	switch {
	case failed == 1:
		_, _ = fmt.Fprintln(w, "1 entry could not be loaded.")
	case failed > 1:
		_, _ = fmt.Fprintf(w, "%d entries could not be loaded.\n", failed)
	}
}
