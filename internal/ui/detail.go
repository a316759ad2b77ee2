package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/five82/pokedex/internal/pokeapi"
)

// statOrder is the display order of base stats.
var statOrder = []struct{ key, label string }{
	{"hp", "HP"},
	{"attack", "Attack"},
	{"defense", "Defense"},
	{"special-attack", "Sp. Atk"},
	{"special-defense", "Sp. Def"},
	{"speed", "Speed"},
}

// maxBaseStat scales the stat bars.
const maxBaseStat = 255

// renderDetail renders the selected entry as a centered modal.
func (m Model) renderDetail() string {
	if m.selected == nil {
		return m.renderMain()
	}
	p := *m.selected
	styles := m.theme.Styles().WithBackground(m.theme.SurfaceAlt)

	modalWidth := min(max(m.width-8, 40), 64)
	inner := modalWidth - 6

	var b strings.Builder

	b.WriteString(styles.MutedText.Render(formatID(p.ID)) + " " + styles.Text.Bold(true).Render(displayName(p.Name)))
	b.WriteString("\n")
	var badges []string
	for _, t := range p.TypeNames() {
		badges = append(badges, styles.TypeBadge(t).Render(t))
	}
	b.WriteString(strings.Join(badges, " "))
	b.WriteString("\n\n")

	b.WriteString(detailRow(styles, "Height", fmt.Sprintf("%.1f m", p.HeightMeters())))
	b.WriteString(detailRow(styles, "Weight", fmt.Sprintf("%.1f kg", p.WeightKilograms())))
	b.WriteString(detailRow(styles, "Base XP", fmt.Sprintf("%d", p.BaseExperience)))
	b.WriteString(detailRow(styles, "Abilities", truncate(abilityList(p), inner-12)))
	b.WriteString("\n")

	b.WriteString(styles.AccentText.Bold(true).Render("Base stats"))
	b.WriteString("\n")
	barWidth := max(inner-16, 8)
	for _, s := range statOrder {
		b.WriteString(m.statBar(styles, s.label, p.Stat(s.key), barWidth))
		b.WriteString("\n")
	}

	if sprite := p.Sprites.FrontDefault; sprite != "" {
		b.WriteString("\n")
		b.WriteString(styles.FaintText.Render(truncate(sprite, inner)))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(styles.FaintText.Render("←/→ browse  esc close"))

	modal := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(m.theme.BorderFocus)).
		Background(lipgloss.Color(m.theme.SurfaceAlt)).
		Padding(1, 2).
		Width(modalWidth).
		Render(b.String())

	return lipgloss.Place(
		m.width,
		m.height,
		lipgloss.Center,
		lipgloss.Center,
		modal,
		lipgloss.WithWhitespaceChars(" "),
		lipgloss.WithWhitespaceForeground(lipgloss.Color(m.theme.Background)),
	)
}

func detailRow(styles Styles, label, value string) string {
	return styles.MutedText.Render(padRight(label, 11)) + " " + styles.Text.Render(value) + "\n"
}

// abilityList joins the display names of every ability.
func abilityList(p pokeapi.Pokemon) string {
	var names []string
	for _, name := range p.AbilityNames() {
		if name = displayName(name); name != "" {
			names = append(names, name)
		}
	}
	if len(names) == 0 {
		return "-"
	}
	return strings.Join(names, ", ")
}

func (m Model) statBar(styles Styles, label string, value, width int) string {
	filled := min(value*width/maxBaseStat, width)
	if value > 0 {
		filled = max(filled, 1)
	}

	color := m.theme.Danger
	switch {
	case value >= 100:
		color = m.theme.Success
	case value >= 60:
		color = m.theme.Warning
	}
	bar := lipgloss.NewStyle().Foreground(lipgloss.Color(color)).Render(strings.Repeat("█", filled)) +
		styles.FaintText.Render(strings.Repeat("░", width-filled))

	return styles.MutedText.Render(padRight(label, 8)) + " " +
		styles.Text.Render(fmt.Sprintf("%3d", value)) + " " + bar
}
