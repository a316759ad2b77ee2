package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/five82/pokedex/internal/pokeapi"
)

// renderGrid renders the visible entries as a grid of cards.
func (m Model) renderGrid() string {
	styles := m.theme.Styles()

	if len(m.view.Entries) == 0 {
		return m.renderEmpty(styles)
	}

	cols := m.gridColumns()
	var rows []string
	for start := 0; start < len(m.view.Entries); start += cols {
		end := min(start+cols, len(m.view.Entries))
		cards := make([]string, 0, cols*2)
		for i := start; i < end; i++ {
			if i > start {
				cards = append(cards, strings.Repeat(" ", CardGap))
			}
			cards = append(cards, m.renderCard(m.view.Entries[i], i == m.cursor, styles))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cards...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

// renderCard renders one entry: number, name and type badges.
func (m Model) renderCard(p pokeapi.Pokemon, focused bool, styles Styles) string {
	inner := CardWidth - 4 // border plus padding

	nameStyle := styles.Text.Bold(true)
	frame := styles.Card
	if focused {
		nameStyle = styles.AccentText.Bold(true)
		frame = styles.CardFocused
	}

	var badges []string
	used := 0
	for _, t := range p.TypeNames() {
		badge := styles.TypeBadge(t).Render(t)
		w := lipgloss.Width(badge)
		if used+w > inner {
			break
		}
		badges = append(badges, badge)
		used += w + 1
	}

	lines := []string{
		styles.MutedText.Render(formatID(p.ID)),
		nameStyle.Render(padRight(displayName(p.Name), inner)),
		strings.Join(badges, " "),
	}
	return frame.Width(CardWidth - 2).Height(CardHeight - 2).Render(strings.Join(lines, "\n"))
}

// renderEmpty renders the placeholder shown when nothing is visible.
func (m Model) renderEmpty(styles Styles) string {
	var b strings.Builder

	switch {
	case m.loading && !m.view.NoResults:
		b.WriteString(m.spinner.View())
		b.WriteString(" ")
		b.WriteString(styles.MutedText.Render("Loading Pokémon..."))
	case m.view.NoResults:
		b.WriteString(styles.WarningText.Render("No Pokémon found"))
		if m.page.Search != "" {
			b.WriteString(styles.MutedText.Render(fmt.Sprintf(" matching %q", m.page.Search)))
		}
		if len(m.suggestions) > 0 {
			names := make([]string, len(m.suggestions))
			for i, s := range m.suggestions {
				names[i] = styles.AccentText.Render(displayName(s))
			}
			b.WriteString("\n\n")
			b.WriteString(styles.MutedText.Render("Did you mean "))
			b.WriteString(strings.Join(names, styles.MutedText.Render(", ")))
			b.WriteString(styles.MutedText.Render("?"))
		}
	default:
		b.WriteString(styles.FaintText.Render("Nothing loaded yet. Press r to reload."))
	}

	return lipgloss.Place(max(m.width, 1), max(m.height-ChromeHeight, 1), lipgloss.Center, lipgloss.Center, b.String())
}

// gridColumns returns how many cards fit across the terminal.
func (m Model) gridColumns() int {
	return max((m.width+CardGap)/(CardWidth+CardGap), 1)
}

func (m *Model) moveCursor(delta int) {
	m.cursor += delta
	m.clampCursor()
}

func (m *Model) clampCursor() {
	n := len(m.view.Entries)
	if n == 0 {
		m.cursor = 0
		return
	}
	m.cursor = min(max(m.cursor, 0), n-1)
}

// selectCursor opens the detail view on the entry under the cursor.
func (m *Model) selectCursor() {
	if m.cursor < 0 || m.cursor >= len(m.view.Entries) {
		m.selected = nil
		return
	}
	entry := m.view.Entries[m.cursor]
	m.selected = &entry
}
