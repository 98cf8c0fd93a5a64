package ui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/flicks/internal/logging"
	"github.com/five82/flicks/internal/omdb"
	"github.com/five82/flicks/internal/state"
)

// diagnosticsLines is how much of the log file the diagnostics panel reads.
const diagnosticsLines = 200

// searchResultMsg carries the outcome of one search request.
type searchResultMsg struct {
	ticket state.Ticket
	query  omdb.Query
	result omdb.SearchResult
	err    error
}

// detailResultMsg carries the outcome of one detail request.
type detailResultMsg struct {
	ticket state.Ticket
	id     string
	movie  omdb.Movie
	err    error
}

// submitMsg runs a search as if the user had typed it; used for the
// initial term passed on the command line.
type submitMsg omdb.Query

type linkOpenedMsg struct {
	url string
	err error
}

type diagnosticsMsg struct {
	lines []string
	err   error
}

func searchCmd(ctx context.Context, source omdb.Source, tk state.Ticket, query omdb.Query) tea.Cmd {
	return func() tea.Msg {
		result, err := source.Search(ctx, query)
		return searchResultMsg{ticket: tk, query: query, result: result, err: err}
	}
}

func detailCmd(ctx context.Context, source omdb.Source, tk state.Ticket, id string) tea.Cmd {
	return func() tea.Msg {
		movie, err := source.Detail(ctx, id)
		return detailResultMsg{ticket: tk, id: id, movie: movie, err: err}
	}
}

func openLinkCmd(open func(string) error, url string) tea.Cmd {
	return func() tea.Msg {
		return linkOpenedMsg{url: url, err: open(url)}
	}
}

func loadDiagnosticsCmd(path string) tea.Cmd {
	return func() tea.Msg {
		raw, err := logging.Tail(path, diagnosticsLines)
		if err != nil {
			return diagnosticsMsg{err: err}
		}
		lines := make([]string, 0, len(raw))
		for _, line := range raw {
			lines = append(lines, logging.Pretty(line))
		}
		return diagnosticsMsg{lines: lines}
	}
}

func submitCmd(query omdb.Query) tea.Cmd {
	return func() tea.Msg {
		return submitMsg(query)
	}
}
