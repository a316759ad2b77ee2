package ui

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sirupsen/logrus"

	"github.com/five82/pokedex/internal/catalog"
	"github.com/five82/pokedex/internal/logging"
	"github.com/five82/pokedex/internal/logtail"
	"github.com/five82/pokedex/internal/pokeapi"
	"github.com/five82/pokedex/internal/prefs"
	"github.com/five82/pokedex/internal/state"
)

// View represents the current active view.
type View int

const (
	ViewCatalog View = iota
	ViewLogs
)

// Options configures the UI.
type Options struct {
	Context      context.Context
	Orchestrator *catalog.Orchestrator
	PageSize     int
	ThemeName    string
	PrefsPath    string
	LogPath      string
	Logger       logrus.FieldLogger
}

// Model is the root application state for Bubble Tea.
type Model struct {
	// Configuration
	ctx       context.Context
	orch      *catalog.Orchestrator
	prefsPath string
	logPath   string
	logger    logrus.FieldLogger
	keys      keyMap

	// UI state
	theme       Theme
	currentView View
	width       int
	height      int
	ready       bool

	// Catalog state
	page        catalog.PageState
	view        catalog.View
	cursor      int
	selected    *pokeapi.Pokemon
	suggestions []string
	loading     bool
	loadID      uint64 // id of the load the model is waiting for
	cancelLoad  context.CancelFunc
	lastUpdated time.Time
	spinner     spinner.Model

	// Search state
	searching   bool
	searchInput textinput.Model

	// Log state
	logViewport viewport.Model
	logEntries  []logtail.Entry
	logErr      error

	// Help overlay
	showHelp bool
}

// New creates a new Bubble Tea model.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}

	themeName := opts.ThemeName
	if themeName == "" {
		themeName = ThemeNames()[0]
	}

	prefsPath := opts.PrefsPath
	if prefsPath == "" {
		prefsPath = prefs.DefaultPath()
	}

	logger := opts.Logger
	if logger == nil {
		logger = logging.Discard()
	}

	input := textinput.New()
	input.Prompt = "/ "
	input.Placeholder = "search by name"
	input.CharLimit = 40

	spin := spinner.New()
	spin.Spinner = spinner.Dot

	return Model{
		ctx:         ctx,
		orch:        opts.Orchestrator,
		prefsPath:   prefsPath,
		logPath:     opts.LogPath,
		logger:      logger.WithField("component", "ui"),
		keys:        DefaultKeyMap(),
		theme:       GetTheme(themeName),
		currentView: ViewCatalog,
		page:        catalog.NewPageState(opts.PageSize),
		spinner:     spin,
		searchInput: input,
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		tea.EnterAltScreen,
		func() tea.Msg { return reloadMsg{} },
	)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if !m.ready {
			m.logViewport = viewport.New(msg.Width, max(msg.Height-ChromeHeight, 1))
		}
		m.ready = true
		m.logViewport.Width = msg.Width
		m.logViewport.Height = max(msg.Height-ChromeHeight, 1)
		m.clampCursor()
		return m, nil

	case reloadMsg:
		return m.startLoad(true)

	case tickMsg:
		if !m.loading {
			return m, nil
		}
		m.refreshView()
		return m, tickCmd(ProgressInterval)

	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case loadDoneMsg:
		return m.handleLoadDone(msg)

	case logTailMsg:
		m.handleLogTail(msg)
		return m, nil
	}

	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	if m.showHelp {
		return m.renderHelp()
	}

	if m.selected != nil && m.currentView == ViewCatalog {
		return m.renderDetail()
	}

	return m.renderMain()
}

func (m Model) renderMain() string {
	var b strings.Builder

	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	b.WriteString(m.renderSearchBar())
	b.WriteString("\n")

	switch m.currentView {
	case ViewLogs:
		b.WriteString(m.renderLogs())
	default:
		body := lipgloss.NewStyle().Height(max(m.height-ChromeHeight, 1)).Render(m.renderGrid())
		b.WriteString(body)
	}
	b.WriteString("\n")
	b.WriteString(m.renderFooter())

	return b.String()
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.showHelp {
		// Any key closes help
		m.showHelp = false
		return m, nil
	}

	if m.searching {
		return m.handleSearchKey(msg)
	}

	if m.selected != nil {
		return m.handleDetailKey(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		m.cancel()
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		return m, nil

	case key.Matches(msg, m.keys.CycleTheme):
		m.theme = GetTheme(NextTheme(m.theme.Name))
		m.savePrefs()
		return m, nil

	case key.Matches(msg, m.keys.ToggleLogs):
		if m.currentView == ViewLogs {
			m.currentView = ViewCatalog
			return m, nil
		}
		m.currentView = ViewLogs
		return m, readLogCmd(m.logPath)
	}

	switch m.currentView {
	case ViewLogs:
		return m.handleLogsKey(msg)
	default:
		return m.handleCatalogKey(msg)
	}
}

func (m Model) handleCatalogKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Escape):
		if m.page.Search != "" {
			m.searchInput.SetValue("")
			return m.dispatch(catalog.SetSearch{Term: ""})
		}
		return m, nil

	case key.Matches(msg, m.keys.Search):
		m.searching = true
		m.searchInput.SetValue(m.page.Search)
		m.searchInput.CursorEnd()
		return m, m.searchInput.Focus()

	case key.Matches(msg, m.keys.Reload):
		return m.startLoad(true)

	case key.Matches(msg, m.keys.Confirm):
		if m.cursor >= 0 && m.cursor < len(m.view.Entries) {
			entry := m.view.Entries[m.cursor]
			m.selected = &entry
		}
		return m, nil

	case key.Matches(msg, m.keys.NextPage):
		return m.dispatch(catalog.SetPage{Page: m.currentPage() + 1})
	case key.Matches(msg, m.keys.PrevPage):
		return m.dispatch(catalog.SetPage{Page: m.currentPage() - 1})
	case key.Matches(msg, m.keys.FirstPage):
		return m.dispatch(catalog.SetPage{Page: 1})
	case key.Matches(msg, m.keys.LastPage):
		return m.dispatch(catalog.SetPage{Page: max(m.view.TotalPages, 1)})

	case key.Matches(msg, m.keys.MoreLimit):
		return m.changeLimit(nextPageSize(m.page.Limit, 1))
	case key.Matches(msg, m.keys.LessLimit):
		return m.changeLimit(nextPageSize(m.page.Limit, -1))

	case key.Matches(msg, m.keys.Left):
		m.moveCursor(-1)
	case key.Matches(msg, m.keys.Right):
		m.moveCursor(1)
	case key.Matches(msg, m.keys.Up):
		m.moveCursor(-m.gridColumns())
	case key.Matches(msg, m.keys.Down):
		m.moveCursor(m.gridColumns())
	}
	return m, nil
}

func (m Model) handleDetailKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit) && msg.String() == "ctrl+c":
		m.cancel()
		return m, tea.Quit
	case key.Matches(msg, m.keys.Escape, m.keys.Confirm, m.keys.Quit):
		m.selected = nil
	case key.Matches(msg, m.keys.Left, m.keys.Up):
		m.moveCursor(-1)
		m.selectCursor()
	case key.Matches(msg, m.keys.Right, m.keys.Down):
		m.moveCursor(1)
		m.selectCursor()
	}
	return m, nil
}

// currentPage is the page paging keys step from. Under the client policy
// the view clamps the page to the filtered entries; under the server policy
// the requested page leads the view until its load lands.
func (m Model) currentPage() int {
	if m.orch.Policy() == catalog.PolicyClient {
		return m.view.Page
	}
	return m.page.CurrentPage
}

// dispatch runs an action through the reducer and performs its effect.
func (m Model) dispatch(action catalog.Action) (Model, tea.Cmd) {
	next, effect := catalog.Reduce(m.page, action, m.orch.Policy())
	m.page = next
	switch effect {
	case catalog.EffectFetch:
		return m.startLoad(false)
	case catalog.EffectReslice:
		m.cursor = 0
		m.refreshView()
	}
	return m, nil
}

func (m Model) changeLimit(limit int) (Model, tea.Cmd) {
	m, cmd := m.dispatch(catalog.SetLimit{Limit: limit})
	m.savePrefs()
	return m, cmd
}

// startLoad cancels any load in flight and starts a new one for the
// current page state.
func (m Model) startLoad(force bool) (Model, tea.Cmd) {
	m.cancel()
	ctx, cancel := context.WithCancel(m.ctx)
	m.cancelLoad = cancel
	m.loadID++

	id := m.loadID
	orch := m.orch
	ps := m.page
	load := func() tea.Msg {
		if force {
			return loadDoneMsg{id: id, result: orch.Reload(ctx, ps)}
		}
		return loadDoneMsg{id: id, result: orch.Load(ctx, ps)}
	}

	m.loading = true
	m.view.Status = state.Loading
	m.logger.WithFields(logrus.Fields{"page": ps.CurrentPage, "limit": ps.Limit}).Debug("load requested")
	return m, tea.Batch(load, m.spinner.Tick, tickCmd(ProgressInterval))
}

func (m Model) handleLoadDone(msg loadDoneMsg) (tea.Model, tea.Cmd) {
	if msg.id != m.loadID || msg.result.Stale {
		return m, nil
	}
	m.loading = false
	m.cancelLoad = nil
	m.page, _ = catalog.Reduce(m.page, catalog.Loaded{Total: msg.result.Total}, m.orch.Policy())
	m.lastUpdated = time.Now()
	m.refreshView()
	m.clampCursor()
	return m, nil
}

// refreshView re-derives the visible entries from the store.
func (m *Model) refreshView() {
	m.view = m.orch.Display(m.page)
	m.suggestions = nil
	if m.view.NoResults && m.page.Search != "" {
		m.suggestions = m.orch.Suggest(m.page.Search, SuggestionCount)
	}
	m.clampCursor()
}

func (m *Model) cancel() {
	if m.cancelLoad != nil {
		m.cancelLoad()
		m.cancelLoad = nil
	}
}

func (m *Model) savePrefs() {
	err := prefs.Save(m.prefsPath, prefs.Prefs{Theme: m.theme.Name, PageSize: m.page.Limit})
	if err != nil {
		m.logger.WithError(err).Warn("save preferences failed")
	}
}

// Messages

type reloadMsg struct{}

type tickMsg time.Time

type loadDoneMsg struct {
	id     uint64
	result catalog.Result
}

// Commands

func tickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Run starts the Bubble Tea program and blocks until the user quits or ctx
// is cancelled.
func Run(ctx context.Context, opts Options) error {
	if opts.Orchestrator == nil {
		return errors.New("ui requires a catalog orchestrator")
	}
	if opts.Context == nil {
		opts.Context = ctx
	}
	m := New(opts)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}
