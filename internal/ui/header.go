package ui

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/five82/pokedex/internal/state"
)

// renderHeader renders the status bar: logo, load progress, counts and
// the partial-failure banner.
func (m Model) renderHeader() string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := NewBgStyle(m.theme.Surface)
	compact := m.width < 90

	parts := []string{bg.Render("pokédex", styles.Logo)}

	switch {
	case m.loading:
		progress := "Loading"
		if m.view.Expected > 0 {
			progress = fmt.Sprintf("Loading %d/%d", m.view.Loaded, m.view.Expected)
		}
		parts = append(parts,
			bg.Render(m.spinner.View(), styles.AccentText)+bg.Spaces(1)+
				bg.Render(progress, styles.WarningText))
	case m.view.Status == state.Partial:
		parts = append(parts, bg.Render("● PARTIAL", styles.WarningText))
	case m.view.Status == state.Ready:
		parts = append(parts, bg.Render("● READY", styles.SuccessText))
	default:
		parts = append(parts, bg.Render("● IDLE", styles.MutedText))
	}

	parts = append(parts,
		bg.Render(strconv.Itoa(m.page.TotalItems), styles.Text)+bg.Spaces(1)+
			bg.Render("Pokémon", styles.MutedText))

	if !compact {
		parts = append(parts,
			bg.Render("Mode:", styles.MutedText)+bg.Spaces(1)+
				bg.Render(string(m.orch.Policy()), styles.InfoText))
		if ts := m.formatTimestamp(); ts != "" {
			parts = append(parts, bg.Render(ts, styles.FaintText))
		}
	}

	if m.view.Failed > 0 {
		noun := "entries"
		if m.view.Failed == 1 {
			noun = "entry"
		}
		parts = append(parts,
			bg.Render("!", styles.DangerText)+bg.Spaces(1)+
				bg.Render(fmt.Sprintf("%d %s could not be loaded", m.view.Failed, noun), styles.WarningText))
	}

	return styles.Header.Width(m.width).Render(bg.Join(parts, "  "))
}

// formatTimestamp formats the last load time with a relative indicator.
func (m Model) formatTimestamp() string {
	if m.lastUpdated.IsZero() {
		return ""
	}
	since := humanizeDuration(time.Since(m.lastUpdated))
	if since != "now" {
		since += " ago"
	}
	return m.lastUpdated.Format("15:04:05") + " (" + since + ")"
}

// renderFooter renders the paginator and key hints.
func (m Model) renderFooter() string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := NewBgStyle(m.theme.Surface)

	var segments []string
	if m.currentView == ViewCatalog && m.view.ShowPaginator {
		segments = append(segments, m.renderPaginator(styles, bg))
		segments = append(segments,
			bg.Render(strconv.Itoa(m.page.Limit), styles.Text)+bg.Spaces(1)+
				bg.Render("per page", styles.MutedText))
	}

	var hints []string
	if m.currentView == ViewLogs {
		hints = append(hints,
			bg.Render("j/k", styles.AccentText)+bg.Render(":Scroll", styles.MutedText),
			bg.Render("r", styles.AccentText)+bg.Render(":Refresh", styles.MutedText),
			bg.Render("v", styles.AccentText)+bg.Render(":Catalog", styles.MutedText),
		)
	} else {
		for _, b := range m.keys.ShortHelp() {
			h := b.Help()
			hints = append(hints, bg.Render(h.Key, styles.AccentText)+bg.Render(":"+h.Desc, styles.MutedText))
		}
	}
	hints = append(hints, bg.Render("T", styles.AccentText)+bg.Render(":"+m.theme.Name, styles.FaintText))
	segments = append(segments, strings.Join(hints, bg.Spaces(2)))

	return styles.Footer.Width(m.width).Render(bg.Join(segments, "   "))
}

// renderPaginator renders "‹ 1 … 4 5 6 … 112 ›" with the current page
// highlighted.
func (m Model) renderPaginator(styles Styles, bg BgStyle) string {
	current := m.view.Page
	total := max(m.view.TotalPages, 1)

	prev := styles.FaintText
	if current > 1 {
		prev = styles.AccentText
	}
	next := styles.FaintText
	if current < total {
		next = styles.AccentText
	}

	span := 2
	if m.width < 90 {
		span = 1
	}

	parts := []string{bg.Render("‹", prev)}
	for _, p := range pageWindow(current, total, span) {
		switch {
		case p == 0:
			parts = append(parts, bg.Render("…", styles.FaintText))
		case p == current:
			parts = append(parts, bg.Render(strconv.Itoa(p), styles.AccentText.Bold(true).Underline(true)))
		default:
			parts = append(parts, bg.Render(strconv.Itoa(p), styles.MutedText))
		}
	}
	parts = append(parts, bg.Render("›", next))

	return strings.Join(parts, bg.Spaces(1))
}
