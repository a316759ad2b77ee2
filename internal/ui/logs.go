package ui

import (
	"errors"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/pokedex/internal/logtail"
)

type logTailMsg struct {
	entries []logtail.Entry
	err     error
}

// readLogCmd loads the tail of the application log.
func readLogCmd(path string) tea.Cmd {
	return func() tea.Msg {
		if strings.TrimSpace(path) == "" {
			return logTailMsg{err: errors.New("no log file configured")}
		}
		lines, err := logtail.Read(path, LogTailLines)
		if err != nil {
			return logTailMsg{err: err}
		}
		return logTailMsg{entries: logtail.ParseAll(lines)}
	}
}

func (m *Model) handleLogTail(msg logTailMsg) {
	m.logErr = msg.err
	if msg.err == nil {
		m.logEntries = msg.entries
	}
	m.logViewport.SetContent(m.renderLogContent())
	m.logViewport.GotoBottom()
}

func (m Model) handleLogsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Escape):
		m.currentView = ViewCatalog
		return m, nil
	case key.Matches(msg, m.keys.Reload):
		return m, readLogCmd(m.logPath)
	case key.Matches(msg, m.keys.FirstPage):
		m.logViewport.GotoTop()
		return m, nil
	case key.Matches(msg, m.keys.LastPage):
		m.logViewport.GotoBottom()
		return m, nil
	}

	var cmd tea.Cmd
	m.logViewport, cmd = m.logViewport.Update(msg)
	return m, cmd
}

// renderLogs renders the log view body.
func (m Model) renderLogs() string {
	return m.logViewport.View()
}

// renderLogContent formats parsed log entries, one per line.
func (m Model) renderLogContent() string {
	styles := m.theme.Styles()

	if m.logErr != nil {
		return styles.DangerText.Render("Log unavailable: " + m.logErr.Error())
	}
	if len(m.logEntries) == 0 {
		return styles.FaintText.Render("Log is empty.")
	}

	var b strings.Builder
	for i, e := range m.logEntries {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(m.formatLogEntry(e, styles))
	}
	return b.String()
}

func (m Model) formatLogEntry(e logtail.Entry, styles Styles) string {
	if e.Level == "" {
		return styles.Text.Render(e.Raw)
	}

	var parts []string
	if !e.Time.IsZero() {
		parts = append(parts, styles.FaintText.Render(e.Time.Format("15:04:05")))
	}
	parts = append(parts, m.levelStyle(e.Level, styles).Render(padRight(strings.ToUpper(e.Level), 5)))
	parts = append(parts, styles.Text.Render(e.Message))
	for _, k := range e.FieldKeys() {
		parts = append(parts, styles.MutedText.Render(k+"=")+styles.InfoText.Render(e.Fields[k]))
	}
	return strings.Join(parts, " ")
}

func (m Model) levelStyle(level string, styles Styles) lipgloss.Style {
	switch strings.ToLower(level) {
	case "error", "fatal", "panic":
		return styles.DangerText
	case "warning", "warn":
		return styles.WarningText
	case "debug", "trace":
		return styles.FaintText
	default:
		return styles.InfoText
	}
}
