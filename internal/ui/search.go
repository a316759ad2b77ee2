package ui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/pokedex/internal/catalog"
)

// handleSearchKey feeds keys to the search input. Every edit narrows the
// grid immediately; enter keeps the term and esc drops it.
func (m Model) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC:
		m.cancel()
		return m, tea.Quit
	case tea.KeyEnter:
		m.searching = false
		m.searchInput.Blur()
		return m, nil
	case tea.KeyEsc:
		m.searching = false
		m.searchInput.Blur()
		m.searchInput.SetValue("")
		return m.dispatch(catalog.SetSearch{Term: ""})
	}

	var inputCmd tea.Cmd
	m.searchInput, inputCmd = m.searchInput.Update(msg)
	next, cmd := m.dispatch(catalog.SetSearch{Term: m.searchInput.Value()})
	return next, tea.Batch(inputCmd, cmd)
}

// renderSearchBar renders the search line under the header.
func (m Model) renderSearchBar() string {
	styles := m.theme.Styles()

	if m.searching {
		return m.searchInput.View()
	}
	if m.page.Search == "" {
		return styles.FaintText.Render("/ search by name")
	}

	label := fmt.Sprintf("%d match", m.view.Filtered)
	if m.view.Filtered != 1 {
		label += "es"
	}
	return styles.AccentText.Render("/ "+m.page.Search) + "  " +
		styles.MutedText.Render(label) + "  " +
		styles.FaintText.Render("esc to clear")
}
