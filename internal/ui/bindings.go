package ui

import (
	"context"
	"errors"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/flicks/internal/config"
	"github.com/five82/flicks/internal/omdb"
	"github.com/five82/flicks/internal/state"
)

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Any key closes help
	if m.showHelp {
		m.showHelp = false
		return m, nil
	}

	if m.showDiagnostics {
		return m.handleDiagnosticsKey(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		return m, nil
	case key.Matches(msg, m.keys.CycleTheme):
		return m.cycleTheme(), nil
	case key.Matches(msg, m.keys.Diagnostics):
		return m.openDiagnostics()
	}

	switch m.Screen() {
	case ScreenLoading:
		if key.Matches(msg, m.keys.Back) {
			return m.cancelLoading(), nil
		}
		// The form stays live; a new submit supersedes the pending request.
		if m.view.focus == focusList {
			return m, nil
		}
		return m.handleFormKey(msg)

	case ScreenDetail:
		switch {
		case key.Matches(msg, m.keys.Back):
			return m.back(), nil
		case key.Matches(msg, m.keys.OpenLink):
			return m.openLink()
		case key.Matches(msg, m.keys.PageUp):
			m.detail.plot.HalfPageUp()
			return m, nil
		case key.Matches(msg, m.keys.PageDown):
			m.detail.plot.HalfPageDown()
			return m, nil
		case msg.Type == tea.KeyUp:
			m.detail.plot.ScrollUp(1)
			return m, nil
		case msg.Type == tea.KeyDown:
			m.detail.plot.ScrollDown(1)
			return m, nil
		}
		return m.handleFormKey(msg)

	case ScreenError:
		if key.Matches(msg, m.keys.Back) {
			return m.back(), nil
		}
		return m.handleFormKey(msg)
	}

	if m.view.focus == focusList {
		return m.handleListKey(msg)
	}
	return m.handleFormKey(msg)
}

// handleFormKey routes keys while one of the two form fields has focus.
func (m Model) handleFormKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Confirm):
		return m.submit()
	case key.Matches(msg, m.keys.NextField):
		m.cycleFocus(1)
		return m, nil
	case key.Matches(msg, m.keys.PrevField):
		m.cycleFocus(-1)
		return m, nil
	case key.Matches(msg, m.keys.Back):
		if m.Screen() == ScreenList {
			m.setFocus(focusList)
		}
		return m, nil
	}

	m.notice = ""
	var cmd tea.Cmd
	if m.view.focus == focusYear {
		m.year, cmd = m.year.Update(msg)
	} else {
		m.search, cmd = m.search.Update(msg)
	}
	return m, cmd
}

// handleListKey routes keys while the result list has focus.
func (m Model) handleListKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	height := m.contentHeight()
	page := visibleEntries(height)

	switch {
	case key.Matches(msg, m.keys.QuitList):
		return m, tea.Quit
	case key.Matches(msg, m.keys.HelpList):
		m.showHelp = true
	case key.Matches(msg, m.keys.ThemeList):
		return m.cycleTheme(), nil
	case key.Matches(msg, m.keys.LogsList):
		return m.openDiagnostics()
	case key.Matches(msg, m.keys.FocusInput):
		m.setFocus(focusSearch)
	case key.Matches(msg, m.keys.NextField):
		m.cycleFocus(1)
	case key.Matches(msg, m.keys.PrevField):
		m.cycleFocus(-1)
	case key.Matches(msg, m.keys.Confirm):
		return m.selectEntry()
	case key.Matches(msg, m.keys.Up):
		m.list.move(-1, height)
	case key.Matches(msg, m.keys.Down):
		m.list.move(1, height)
	case key.Matches(msg, m.keys.Top):
		m.list.moveTo(0, height)
	case key.Matches(msg, m.keys.Bottom):
		m.list.moveTo(len(m.list.entries)-1, height)
	case key.Matches(msg, m.keys.PageUp):
		m.list.move(-page, height)
	case key.Matches(msg, m.keys.PageDown):
		m.list.move(page, height)
	}
	return m, nil
}

// handleMouse selects an entry on a left click anywhere inside it and
// scrolls the list or the plot with the wheel.
func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if m.showHelp || m.showDiagnostics {
		return m, nil
	}

	screen := m.Screen()
	height := m.contentHeight()

	switch msg.Button {
	case tea.MouseButtonWheelUp:
		if screen == ScreenDetail {
			m.detail.plot.ScrollUp(1)
		} else if screen == ScreenList {
			m.list.move(-1, height)
		}
		return m, nil
	case tea.MouseButtonWheelDown:
		if screen == ScreenDetail {
			m.detail.plot.ScrollDown(1)
		} else if screen == ScreenList {
			m.list.move(1, height)
		}
		return m, nil
	case tea.MouseButtonLeft:
	default:
		return m, nil
	}
	if msg.Action != tea.MouseActionPress {
		return m, nil
	}

	if msg.Y == headerRows && screen != ScreenLoading {
		if msg.X >= m.yearColumn() {
			m.setFocus(focusYear)
		} else {
			m.setFocus(focusSearch)
		}
		return m, nil
	}

	if screen != ScreenList {
		return m, nil
	}
	row := msg.Y - listTop
	if row >= height {
		return m, nil
	}
	h, ok := m.list.entryAt(row, msg.X)
	if !ok {
		return m, nil
	}
	m.logger.Debug().
		Str("id", h.Entry.Key).
		Str("part", h.Part.String()).
		Msg("entry clicked")
	m.list.moveTo(m.list.indexOf(h.Entry.Key), height)
	m.setFocus(focusList)
	return m.selectEntry()
}

// yearColumn is the first screen column of the year field's label.
func (m Model) yearColumn() int {
	return 1 + len("Search") + 1 + m.search.Width + 2
}

// submit starts a search for the form's contents. An empty or blank term
// does nothing at all.
func (m Model) submit() (tea.Model, tea.Cmd) {
	return m.runSearch(omdb.Query{Term: m.search.Value(), Year: m.year.Value()})
}

// runSearch clears the form and the list, enters the loading state and
// issues the search. The term is kept as submitted so the no-match message
// echoes it literally; the client trims it for the request.
func (m Model) runSearch(query omdb.Query) (tea.Model, tea.Cmd) {
	if strings.TrimSpace(query.Term) == "" || m.source == nil {
		return m, nil
	}

	m.search.SetValue("")
	m.year.SetValue("")
	m.list.clear()
	m.failure = nil
	m.notice = ""
	m.view.enterLoading()

	ctx, tk := m.tracker.Begin(m.ctx, state.KindSearch, query.Term)
	m.logger.Debug().
		Str("request_id", tk.RequestID).
		Str("kind", tk.Kind.String()).
		Str("term", query.Term).
		Str("year", query.Year).
		Msg("search started")

	return m, tea.Batch(searchCmd(ctx, m.source, tk, query), m.spinner.Tick)
}

// selectEntry fetches the detail record for the entry under the cursor.
func (m Model) selectEntry() (tea.Model, tea.Cmd) {
	e, ok := m.list.selected()
	if !ok || m.source == nil {
		return m, nil
	}

	m.notice = ""
	m.view.enterLoading()

	ctx, tk := m.tracker.Begin(m.ctx, state.KindDetail, e.Key)
	m.logger.Debug().
		Str("request_id", tk.RequestID).
		Str("kind", tk.Kind.String()).
		Str("id", e.Key).
		Msg("detail started")

	return m, tea.Batch(detailCmd(ctx, m.source, tk, e.Key), m.spinner.Tick)
}

func (m Model) applySearch(msg searchResultMsg) Model {
	if !m.tracker.Settle(msg.ticket) {
		m.logStale(msg.ticket)
		return m
	}

	if msg.err != nil {
		m.logFailure(msg.ticket, msg.err)
		m.failure = msg.err
		m.failed = state.KindSearch
		m.view.enterError()
		m.setFocus(focusSearch)
		return m
	}

	m.view.enterList()
	var items []omdb.Summary
	if msg.result.Found {
		items = msg.result.Items
	}
	m.list.renderResults(items, msg.query.Term)
	m.list.ensureVisible(m.contentHeight())

	m.logger.Info().
		Str("request_id", msg.ticket.RequestID).
		Str("kind", msg.ticket.Kind.String()).
		Str("term", msg.query.Term).
		Int("results", len(items)).
		Msg("search completed")

	if len(items) > 0 {
		m.setFocus(focusList)
	} else {
		m.setFocus(focusSearch)
	}
	return m
}

func (m Model) applyDetail(msg detailResultMsg) Model {
	if !m.tracker.Settle(msg.ticket) {
		m.logStale(msg.ticket)
		return m
	}

	if msg.err != nil {
		m.logFailure(msg.ticket, msg.err)
		m.failure = msg.err
		m.failed = state.KindDetail
		m.view.enterError()
		m.setFocus(focusSearch)
		return m
	}

	m.view.enterDetail()
	m.applyFocus()
	m.detail.resize(m.contentWidth(), m.contentHeight())
	m.detail.renderDetail(msg.movie, msg.id, m.source.TitleURL(msg.id))

	m.logger.Info().
		Str("request_id", msg.ticket.RequestID).
		Str("kind", msg.ticket.Kind.String()).
		Str("id", msg.id).
		Msg("detail completed")
	return m
}

// back returns from the overlay or the error panel to the list without
// fetching anything.
func (m Model) back() Model {
	m.failure = nil
	m.view.enterList()
	if len(m.list.entries) > 0 {
		m.setFocus(focusList)
	} else {
		m.setFocus(focusSearch)
	}
	return m
}

// cancelLoading aborts the in-flight request and shows the list again.
func (m Model) cancelLoading() Model {
	if tk, ok := m.tracker.Cancel(); ok {
		m.logger.Info().
			Str("request_id", tk.RequestID).
			Str("kind", tk.Kind.String()).
			Msg("request cancelled")
	}
	m.notice = "Request cancelled"
	return m.back()
}

func (m Model) openLink() (tea.Model, tea.Cmd) {
	link := m.detail.Link
	if link == "" {
		return m, nil
	}
	if m.openURL == nil {
		m.notice = link
		return m, nil
	}
	return m, openLinkCmd(m.openURL, link)
}

func (m Model) cycleTheme() Model {
	m.applyTheme(GetTheme(NextTheme(m.theme.Name)))
	m.notice = "Theme: " + m.theme.Name
	if err := config.SavePrefs(m.prefsPath, config.Prefs{Theme: m.theme.Name}); err != nil {
		m.logger.Warn().Err(err).Str("path", m.prefsPath).Msg("save prefs failed")
	}
	return m
}

// cycleFocus steps through search, year and, when it has entries, the list.
func (m *Model) cycleFocus(delta int) {
	order := []focusTarget{focusSearch, focusYear}
	if m.Screen() == ScreenList {
		order = append(order, focusList)
	}
	idx := 0
	for i, f := range order {
		if f == m.view.focus {
			idx = i
		}
	}
	idx = (idx + delta + len(order)) % len(order)
	m.setFocus(order[idx])
}

func (m *Model) setFocus(target focusTarget) {
	m.view.focus = target
	m.applyFocus()
}

func (m Model) logStale(tk state.Ticket) {
	m.logger.Debug().
		Str("request_id", tk.RequestID).
		Str("kind", tk.Kind.String()).
		Uint64("seq", tk.Seq).
		Msg("discarding stale response")
}

func (m Model) logFailure(tk state.Ticket, err error) {
	event := m.logger.Error()
	if errors.Is(err, context.Canceled) {
		event = m.logger.Info()
	}
	event.Err(err).
		Str("request_id", tk.RequestID).
		Str("kind", tk.Kind.String()).
		Str("key", tk.Key).
		Msg("request failed")
}
