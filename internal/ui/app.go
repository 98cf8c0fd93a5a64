package ui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"

	"github.com/five82/flicks/internal/config"
	"github.com/five82/flicks/internal/omdb"
	"github.com/five82/flicks/internal/state"
)

// Options configures the UI.
type Options struct {
	Context      context.Context
	Source       omdb.Source
	Tracker      *state.Tracker
	Logger       zerolog.Logger
	OpenURL      func(string) error
	ThemeName    string
	PrefsPath    string
	LogPath      string
	InitialQuery omdb.Query
}

// Model is the root application state for Bubble Tea.
type Model struct {
	// Configuration
	ctx       context.Context
	source    omdb.Source
	tracker   *state.Tracker
	logger    zerolog.Logger
	openURL   func(string) error
	prefsPath string
	logPath   string
	initial   omdb.Query

	// UI state
	theme  Theme
	styles Styles
	keys   keyMap
	help   help.Model
	width  int
	height int
	ready  bool
	notice string

	// Form
	search textinput.Model
	year   textinput.Model

	// Regions
	view    viewState
	spinner spinner.Model
	list    resultList
	detail  overlay
	failure error
	failed  state.Kind

	// Help overlay
	showHelp bool

	// Diagnostics panel
	showDiagnostics bool
	diagnostics     viewport.Model
	diagnosticsErr  error
}

// New creates a new Bubble Tea model.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}

	tracker := opts.Tracker
	if tracker == nil {
		tracker = &state.Tracker{}
	}

	themeName := opts.ThemeName
	if themeName == "" {
		themeName = config.DefaultTheme
	}

	prefsPath := opts.PrefsPath
	if prefsPath == "" {
		prefsPath = config.DefaultPrefsPath()
	}

	theme := GetTheme(themeName)
	m := Model{
		ctx:         ctx,
		source:      opts.Source,
		tracker:     tracker,
		logger:      opts.Logger.With().Str("component", "ui").Logger(),
		openURL:     opts.OpenURL,
		prefsPath:   prefsPath,
		logPath:     opts.LogPath,
		initial:     opts.InitialQuery,
		keys:        DefaultKeyMap(),
		help:        help.New(),
		search:      newField("Movie title", searchFieldWidth),
		year:        newField("Year", yearFieldWidth),
		view:        newViewState(),
		spinner:     spinner.New(spinner.WithSpinner(spinner.Dot)),
		detail:      newOverlay(),
		diagnostics: viewport.New(0, 0),
	}
	m.applyTheme(theme)
	m.applyFocus()
	return m
}

func newField(placeholder string, width int) textinput.Model {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.Prompt = ""
	ti.Width = width
	ti.CharLimit = 120
	ti.Cursor.SetMode(cursor.CursorStatic)
	return ti
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	if strings.TrimSpace(m.initial.Term) == "" {
		return nil
	}
	return submitCmd(m.initial)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.resize()
		return m, nil

	case submitMsg:
		return m.runSearch(omdb.Query(msg))

	case searchResultMsg:
		return m.applySearch(msg), nil

	case detailResultMsg:
		return m.applyDetail(msg), nil

	case linkOpenedMsg:
		if msg.err != nil {
			m.logger.Warn().Err(msg.err).Str("url", msg.url).Msg("open link failed")
			m.notice = "Could not open link"
		} else {
			m.notice = "Opened " + msg.url
		}
		return m, nil

	case diagnosticsMsg:
		m.diagnosticsErr = msg.err
		m.diagnostics.SetContent(strings.Join(msg.lines, "\n"))
		m.diagnostics.GotoBottom()
		return m, nil

	case spinner.TickMsg:
		if !m.view.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
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

	if m.showDiagnostics {
		return m.renderDiagnostics()
	}

	return m.renderMain()
}

// Screen derives the presented state from the visible regions.
func (m Model) Screen() Screen {
	switch {
	case m.view.loading:
		return ScreenLoading
	case m.view.failure:
		return ScreenError
	case m.view.overlay:
		return ScreenDetail
	case m.list.blank():
		return ScreenIdle
	case m.list.empty != nil:
		return ScreenNoResults
	default:
		return ScreenList
	}
}

func (m *Model) applyTheme(theme Theme) {
	m.theme = theme
	m.styles = theme.Styles()
	m.spinner.Style = m.styles.AccentText

	m.help.Styles.ShortKey = m.styles.AccentText
	m.help.Styles.ShortDesc = m.styles.MutedText
	m.help.Styles.ShortSeparator = m.styles.FaintText
	m.help.Styles.FullKey = m.styles.AccentText
	m.help.Styles.FullDesc = m.styles.MutedText
	m.help.Styles.FullSeparator = m.styles.FaintText

	for _, field := range []*textinput.Model{&m.search, &m.year} {
		field.TextStyle = m.styles.Text
		field.PlaceholderStyle = m.styles.FaintText
		field.Cursor.Style = m.styles.AccentText
	}
}

// applyFocus moves the text cursor to match view.focus.
func (m *Model) applyFocus() {
	m.search.Blur()
	m.year.Blur()
	switch m.view.focus {
	case focusSearch:
		m.search.Focus()
	case focusYear:
		m.year.Focus()
	}
}

func (m *Model) resize() {
	width := m.contentWidth()
	height := m.contentHeight()

	m.help.Width = width
	if width < LayoutCompactWidth {
		m.search.Width = max(width-yearFieldWidth-20, 10)
	} else {
		m.search.Width = searchFieldWidth
	}
	m.detail.resize(width, height)
	m.list.ensureVisible(height)
	m.diagnostics.Width = max(width-diagnosticsMargin, 10)
	m.diagnostics.Height = max(m.height-diagnosticsMargin-2, 3)
}

// renderMain renders the header, the form, the active region and the footer.
func (m Model) renderMain() string {
	var b strings.Builder

	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	b.WriteString(m.renderForm())
	b.WriteString("\n")
	b.WriteString(m.styles.FaintText.Render(strings.Repeat("─", m.contentWidth())))
	b.WriteString("\n")
	b.WriteString(m.renderContent())
	b.WriteString("\n")
	b.WriteString(m.renderFooter())

	return b.String()
}

func (m Model) renderForm() string {
	label := func(text string, focused bool) string {
		if focused {
			return m.styles.AccentText.Bold(true).Render(text)
		}
		return m.styles.Label.Render(text)
	}
	return " " + label("Search", m.view.focus == focusSearch) + " " + m.search.View() +
		"  " + label("Year", m.view.focus == focusYear) + " " + m.year.View()
}

func (m Model) renderContent() string {
	width := m.contentWidth()
	height := m.contentHeight()
	box := lipgloss.NewStyle().Width(width).Height(height)

	switch m.Screen() {
	case ScreenLoading:
		return box.Render(" " + m.spinner.View() + " " + m.styles.MutedText.Render("Fetching..."))
	case ScreenError:
		return box.Render(m.renderError(width))
	case ScreenDetail:
		return m.detail.view(m.styles, width, height)
	case ScreenIdle:
		return box.Render(m.styles.FaintText.Render(" Type a title and press enter"))
	default:
		return m.list.view(m.styles, width, height, m.view.focus == focusList)
	}
}

func (m Model) renderError(width int) string {
	title := "Search failed"
	if m.failed == state.KindDetail {
		title = "Could not load title"
	}
	var b strings.Builder
	b.WriteString(m.styles.DangerText.Render(title))
	b.WriteString("\n")
	b.WriteString(m.styles.Text.Render(omdb.Describe(m.failure)))
	if m.failure != nil {
		b.WriteString("\n\n")
		b.WriteString(m.styles.FaintText.Render(truncateMiddle(m.failure.Error(), max(width-8, 10))))
	}
	b.WriteString("\n\n")
	b.WriteString(m.styles.MutedText.Render("esc back  ctrl+l diagnostics"))
	return m.styles.ErrorPanel.Width(max(width-2, 10)).Render(b.String())
}

func (m Model) renderFooter() string {
	line := m.help.View(m.keys.footerFor(m.Screen(), m.view.focus))
	if m.notice != "" {
		line = m.styles.AccentText.Render(truncate(m.notice, 50)) + "  " + line
	}
	return m.styles.Footer.Width(m.contentWidth()).Render(line)
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	m := New(opts)
	p := tea.NewProgram(m,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithContext(m.ctx),
	)
	_, err := p.Run()
	return err
}
