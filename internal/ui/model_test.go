package ui

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/five82/flicks/internal/omdb"
	"github.com/five82/flicks/internal/state"
)

// fakeSource records every lookup and answers from canned data.
type fakeSource struct {
	mu       sync.Mutex
	searches []omdb.Query
	details  []string

	results map[string]omdb.SearchResult
	movies  map[string]omdb.Movie
	err     error
}

func (f *fakeSource) Search(ctx context.Context, query omdb.Query) (omdb.SearchResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.searches = append(f.searches, query)
	if f.err != nil {
		return omdb.SearchResult{}, f.err
	}
	if res, ok := f.results[query.Term]; ok {
		return res, nil
	}
	return omdb.SearchResult{Found: false, Message: "Movie not found!"}, nil
}

func (f *fakeSource) Detail(ctx context.Context, id string) (omdb.Movie, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.details = append(f.details, id)
	if f.err != nil {
		return omdb.Movie{}, f.err
	}
	if mv, ok := f.movies[id]; ok {
		return mv, nil
	}
	return omdb.Movie{}, &omdb.LookupError{ID: id, Message: "Incorrect IMDb ID."}
}

func (f *fakeSource) TitleURL(id string) string {
	return "http://www.imdb.com/title/" + id
}

func (f *fakeSource) counts() (int, int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.searches), len(f.details)
}

func shawshankSource() *fakeSource {
	return &fakeSource{
		results: map[string]omdb.SearchResult{
			"shawshank": {Found: true, Items: []omdb.Summary{
				{ID: "tt0111161", Title: "Shawshank Redemption", Year: "1994", Poster: "https://img.example/ss.jpg"},
				{ID: "tt5174870", Title: "Shawshank: The Redeeming Feature", Year: "2001", Poster: omdb.NoPoster},
				{ID: "tt1408339", Title: "Shawshank Unbound", Year: "2004", Poster: "https://img.example/su.jpg"},
			}},
			"alien": {Found: true, Items: []omdb.Summary{
				{ID: "tt0078748", Title: "Alien", Year: "1979", Poster: "https://img.example/alien.jpg"},
			}},
		},
		movies: map[string]omdb.Movie{
			"tt0111161": {ID: "tt0111161", Title: "Shawshank Redemption", Year: "1994", Rating: "9.3",
				Poster: "https://img.example/ss.jpg", Plot: "Two imprisoned men bond over a number of years."},
			"tt5174870": {ID: "tt5174870", Title: "Shawshank: The Redeeming Feature", Year: "2001", Rating: "7.8",
				Poster: omdb.NoPoster, Plot: "A documentary."},
		},
	}
}

func newTestModel(t *testing.T, src omdb.Source, opts ...func(*Options)) Model {
	t.Helper()
	o := Options{
		Source:    src,
		Tracker:   &state.Tracker{},
		Logger:    zerolog.Nop(),
		PrefsPath: filepath.Join(t.TempDir(), "prefs.toml"),
	}
	for _, fn := range opts {
		fn(&o)
	}
	m := New(o)
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 100, Height: 40})
	return m
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	nm, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T, want Model", next)
	}
	return nm, cmd
}

// collect runs cmd and returns the messages it produced, flattening batches.
// Spinner ticks are dropped so the loop never sleeps.
func collect(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	switch msg := msg.(type) {
	case nil:
		return nil
	case tea.BatchMsg:
		var out []tea.Msg
		for _, c := range msg {
			out = append(out, collect(c)...)
		}
		return out
	case spinner.TickMsg:
		return nil
	default:
		return []tea.Msg{msg}
	}
}

// drain feeds every message cmd produces back into the model until the
// model stops issuing work.
func drain(t *testing.T, m Model, cmd tea.Cmd) Model {
	t.Helper()
	for _, msg := range collect(cmd) {
		switch msg.(type) {
		case searchResultMsg, detailResultMsg, submitMsg, linkOpenedMsg, diagnosticsMsg:
			var next tea.Cmd
			m, next = update(t, m, msg)
			m = drain(t, m, next)
		}
	}
	return m
}

func press(t *testing.T, m Model, k tea.KeyMsg) Model {
	t.Helper()
	m, cmd := update(t, m, k)
	return drain(t, m, cmd)
}

var (
	keyEnter = tea.KeyMsg{Type: tea.KeyEnter}
	keyEsc   = tea.KeyMsg{Type: tea.KeyEsc}
	keyTab   = tea.KeyMsg{Type: tea.KeyTab}
	keyDown  = tea.KeyMsg{Type: tea.KeyDown}
	keyOpen  = tea.KeyMsg{Type: tea.KeyCtrlO}
)

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func searchFor(t *testing.T, m Model, term string) Model {
	t.Helper()
	m.search.SetValue(term)
	return press(t, m, keyEnter)
}

func entryKeys(m Model) []string {
	keys := make([]string, 0, len(m.list.entries))
	for _, e := range m.list.entries {
		keys = append(keys, e.Key)
	}
	return keys
}

func TestSubmit_RendersOneEntryPerSummary(t *testing.T) {
	src := shawshankSource()
	m := newTestModel(t, src)

	m = searchFor(t, m, "shawshank")

	if got := m.Screen(); got != ScreenList {
		t.Fatalf("Screen = %v, want list", got)
	}
	want := []string{"tt0111161", "tt5174870", "tt1408339"}
	got := entryKeys(m)
	if strings.Join(got, ",") != strings.Join(want, ",") {
		t.Fatalf("entries = %v, want %v", got, want)
	}
	if !m.list.entries[1].Poster.Placeholder {
		t.Fatal("N/A poster should render as the placeholder icon")
	}
	if m.search.Value() != "" || m.year.Value() != "" {
		t.Fatalf("form not cleared: %q %q", m.search.Value(), m.year.Value())
	}
	if len(src.searches) != 1 || src.searches[0] != (omdb.Query{Term: "shawshank"}) {
		t.Fatalf("searches = %+v", src.searches)
	}
	if m.view.focus != focusList {
		t.Fatalf("focus = %v, want list", m.view.focus)
	}
	if out := m.View(); !strings.Contains(out, "Shawshank Unbound") {
		t.Fatalf("view missing entry:\n%s", out)
	}
}

func TestSubmit_TypedTermAndYearArePassedThrough(t *testing.T) {
	src := shawshankSource()
	m := newTestModel(t, src)

	for _, r := range "alien" {
		m = press(t, m, runes(string(r)))
	}
	m = press(t, m, keyTab)
	m.year.SetValue("19x9")
	m = press(t, m, keyEnter)

	if len(src.searches) != 1 {
		t.Fatalf("searches = %d, want 1", len(src.searches))
	}
	if q := src.searches[0]; q.Term != "alien" || q.Year != "19x9" {
		t.Fatalf("query = %+v", q)
	}
}

func TestSubmit_YearRangeIsNotTruncated(t *testing.T) {
	src := shawshankSource()
	m := newTestModel(t, src)

	for _, r := range "shawshank" {
		m = press(t, m, runes(string(r)))
	}
	m = press(t, m, keyTab)
	for _, r := range "1994-2004" {
		m = press(t, m, runes(string(r)))
	}
	m = press(t, m, keyEnter)

	if len(src.searches) != 1 {
		t.Fatalf("searches = %d, want 1", len(src.searches))
	}
	if q := src.searches[0]; q.Term != "shawshank" || q.Year != "1994-2004" {
		t.Fatalf("query = %+v, want year 1994-2004", q)
	}
}

func TestSubmit_NoMatchesShowsPlaceholder(t *testing.T) {
	m := newTestModel(t, shawshankSource())

	m = searchFor(t, m, "qwxzqwxz")

	if got := m.Screen(); got != ScreenNoResults {
		t.Fatalf("Screen = %v, want no-results", got)
	}
	if m.list.size() != 1 || len(m.list.entries) != 0 {
		t.Fatalf("expected exactly one placeholder item, size=%d entries=%d", m.list.size(), len(m.list.entries))
	}
	if out := m.View(); !strings.Contains(out, "No movies found that match: qwxzqwxz") {
		t.Fatalf("placeholder text missing:\n%s", out)
	}
}

func TestSubmit_PlaceholderEchoesLiteralTerm(t *testing.T) {
	src := shawshankSource()
	m := newTestModel(t, src)

	m = searchFor(t, m, "  qwxz ")

	if got := m.Screen(); got != ScreenNoResults {
		t.Fatalf("Screen = %v, want no-results", got)
	}
	if len(src.searches) != 1 || src.searches[0].Term != "  qwxz " {
		t.Fatalf("searches = %+v, want the term as submitted", src.searches)
	}
	if got, want := m.list.empty.Message, "No movies found that match:   qwxz "; got != want {
		t.Fatalf("placeholder = %q, want %q", got, want)
	}
}

func TestSubmit_SecondSearchReplacesFirst(t *testing.T) {
	m := newTestModel(t, shawshankSource())

	m = searchFor(t, m, "shawshank")
	m = press(t, m, runes("/"))
	m = searchFor(t, m, "alien")

	if got := entryKeys(m); len(got) != 1 || got[0] != "tt0078748" {
		t.Fatalf("entries = %v, want only the second search", got)
	}
}

func TestSubmit_EmptyTermIsNoOp(t *testing.T) {
	for _, term := range []string{"", "   ", "\t"} {
		src := shawshankSource()
		m := newTestModel(t, src)
		before := m.view

		m.search.SetValue(term)
		m, cmd := update(t, m, keyEnter)

		if cmd != nil {
			t.Fatalf("term %q: expected no command", term)
		}
		if s, d := src.counts(); s != 0 || d != 0 {
			t.Fatalf("term %q: requests issued: %d searches, %d details", term, s, d)
		}
		if m.view != before || m.Screen() != ScreenIdle {
			t.Fatalf("term %q: state changed to %+v (%v)", term, m.view, m.Screen())
		}
	}
}

func TestSelect_FetchesDetailAndRendersOverlay(t *testing.T) {
	src := shawshankSource()
	m := newTestModel(t, src)
	m = searchFor(t, m, "shawshank")

	m = press(t, m, keyEnter)

	if len(src.details) != 1 || src.details[0] != "tt0111161" {
		t.Fatalf("details = %v, want [tt0111161]", src.details)
	}
	if got := m.Screen(); got != ScreenDetail {
		t.Fatalf("Screen = %v, want detail", got)
	}
	if m.detail.Title != "Shawshank Redemption (1994)" {
		t.Fatalf("Title = %q", m.detail.Title)
	}
	if m.detail.Rating != "imdb rating: 9.3" {
		t.Fatalf("Rating = %q", m.detail.Rating)
	}
	if m.detail.Link != "http://www.imdb.com/title/tt0111161" {
		t.Fatalf("Link = %q", m.detail.Link)
	}
	if m.detail.Backdrop.Fit != fitCover {
		t.Fatalf("Backdrop = %+v", m.detail.Backdrop)
	}
	if m.view.focus != focusSearch || !m.search.Focused() {
		t.Fatal("detail view should hand focus to the search field")
	}
	out := m.View()
	for _, want := range []string{"Shawshank Redemption (1994)", "imdb rating: 9.3", "Two imprisoned men"} {
		if !strings.Contains(out, want) {
			t.Fatalf("view missing %q:\n%s", want, out)
		}
	}
}

func TestSelect_NoPosterUsesPlaceholderBackdrop(t *testing.T) {
	m := newTestModel(t, shawshankSource())
	m = searchFor(t, m, "shawshank")

	m = press(t, m, keyDown)
	m = press(t, m, keyEnter)

	if m.detail.ID != "tt5174870" {
		t.Fatalf("detail ID = %q", m.detail.ID)
	}
	if m.detail.Backdrop != (backdrop{Source: placeholderAsset, Fit: fitPlaceholder}) {
		t.Fatalf("Backdrop = %+v", m.detail.Backdrop)
	}
}

func TestBack_ReturnsToListWithoutRefetch(t *testing.T) {
	src := shawshankSource()
	m := newTestModel(t, src)
	m = searchFor(t, m, "shawshank")
	m = press(t, m, keyEnter)

	m, cmd := update(t, m, keyEsc)
	if cmd != nil {
		t.Fatal("back should not issue a command")
	}

	if got := m.Screen(); got != ScreenList {
		t.Fatalf("Screen = %v, want list", got)
	}
	if got := entryKeys(m); len(got) != 3 {
		t.Fatalf("list content changed: %v", got)
	}
	if s, d := src.counts(); s != 1 || d != 1 {
		t.Fatalf("requests = %d searches, %d details; want 1 and 1", s, d)
	}
}

func TestStaleResponseIsDiscarded(t *testing.T) {
	tracker := &state.Tracker{}
	m := newTestModel(t, shawshankSource(), func(o *Options) { o.Tracker = tracker })

	m.search.SetValue("shawshank")
	m, first := update(t, m, keyEnter)
	m.search.SetValue("alien")
	m, second := update(t, m, keyEnter)

	firstMsgs := collect(first)
	secondMsgs := collect(second)

	for _, msg := range secondMsgs {
		m, _ = update(t, m, msg)
	}
	for _, msg := range firstMsgs {
		m, _ = update(t, m, msg)
	}

	if got := entryKeys(m); len(got) != 1 || got[0] != "tt0078748" {
		t.Fatalf("entries = %v, want the newest search only", got)
	}
	stats := tracker.Stats()
	if stats.Discarded != 1 || stats.Settled != 1 || stats.Cancelled != 1 {
		t.Fatalf("stats = %+v", stats)
	}
}

func TestSearchError_EntersErrorState(t *testing.T) {
	src := &fakeSource{err: &omdb.StatusError{URL: "https://www.omdbapi.com/", StatusCode: 503, Status: "Service Unavailable"}}
	m := newTestModel(t, src)

	m = searchFor(t, m, "anything")

	if got := m.Screen(); got != ScreenError {
		t.Fatalf("Screen = %v, want error", got)
	}
	if out := m.View(); !strings.Contains(out, "Service Unavailable") || !strings.Contains(out, "Search failed") {
		t.Fatalf("error panel missing status:\n%s", out)
	}

	m = press(t, m, keyEsc)
	if got := m.Screen(); got != ScreenIdle {
		t.Fatalf("Screen after back = %v, want idle", got)
	}
	if m.failure != nil {
		t.Fatal("failure not cleared on back")
	}
}

func TestDetailError_KeepsList(t *testing.T) {
	src := shawshankSource()
	m := newTestModel(t, src)
	m = searchFor(t, m, "shawshank")

	m = press(t, m, runes("G"))
	m = press(t, m, keyEnter)

	if got := m.Screen(); got != ScreenError {
		t.Fatalf("Screen = %v, want error", got)
	}
	var lookup *omdb.LookupError
	if !errors.As(m.failure, &lookup) || lookup.ID != "tt1408339" {
		t.Fatalf("failure = %v", m.failure)
	}
	if out := m.View(); !strings.Contains(out, "Incorrect IMDb ID.") {
		t.Fatalf("error panel missing message:\n%s", out)
	}

	m = press(t, m, keyEsc)
	if got := m.Screen(); got != ScreenList || len(m.list.entries) != 3 {
		t.Fatalf("Screen = %v with %d entries, want list with 3", got, len(m.list.entries))
	}
}

func TestEscWhileLoading_CancelsRequest(t *testing.T) {
	tracker := &state.Tracker{}
	m := newTestModel(t, shawshankSource(), func(o *Options) { o.Tracker = tracker })

	m.search.SetValue("shawshank")
	m, pending := update(t, m, keyEnter)
	if got := m.Screen(); got != ScreenLoading {
		t.Fatalf("Screen = %v, want loading", got)
	}
	if !strings.Contains(m.View(), "Fetching") {
		t.Fatal("loading marker not rendered")
	}

	m = press(t, m, keyEsc)
	if got := m.Screen(); got != ScreenIdle {
		t.Fatalf("Screen after cancel = %v, want idle", got)
	}

	for _, msg := range collect(pending) {
		m, _ = update(t, m, msg)
	}
	if got := m.Screen(); got != ScreenIdle || len(m.list.entries) != 0 {
		t.Fatalf("late response applied: %v with %d entries", got, len(m.list.entries))
	}
	if stats := tracker.Stats(); stats.Cancelled != 1 || stats.Discarded != 1 {
		t.Fatalf("stats = %+v", stats)
	}
}

func TestMouseClick_SelectsEnclosingEntry(t *testing.T) {
	tests := []struct {
		name string
		x, y int
		want string
	}{
		{"poster of first", 0, listTop, "tt0111161"},
		{"title of first", 8, listTop, "tt0111161"},
		{"year of first", 3, listTop + 1, "tt0111161"},
		{"title of second", 10, listTop + 2, "tt5174870"},
		{"year of second", 2, listTop + 3, "tt5174870"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := shawshankSource()
			m := newTestModel(t, src)
			m = searchFor(t, m, "shawshank")

			m, cmd := update(t, m, tea.MouseMsg{X: tt.x, Y: tt.y, Button: tea.MouseButtonLeft, Action: tea.MouseActionPress})
			m = drain(t, m, cmd)

			if len(src.details) != 1 || src.details[0] != tt.want {
				t.Fatalf("details = %v, want [%s]", src.details, tt.want)
			}
			if m.Screen() != ScreenDetail {
				t.Fatalf("Screen = %v, want detail", m.Screen())
			}
		})
	}
}

func TestMouseClick_OutsideEntriesDoesNothing(t *testing.T) {
	src := shawshankSource()
	m := newTestModel(t, src)
	m = searchFor(t, m, "shawshank")

	for _, msg := range []tea.MouseMsg{
		{X: 5, Y: listTop + 6, Button: tea.MouseButtonLeft, Action: tea.MouseActionPress},
		{X: 5, Y: listTop, Button: tea.MouseButtonLeft, Action: tea.MouseActionRelease},
		{X: 5, Y: listTop, Button: tea.MouseButtonRight, Action: tea.MouseActionPress},
	} {
		var cmd tea.Cmd
		m, cmd = update(t, m, msg)
		m = drain(t, m, cmd)
	}
	if _, d := src.counts(); d != 0 {
		t.Fatalf("details = %d, want 0", d)
	}
}

func TestInitialQuery_RunsSearchOnStart(t *testing.T) {
	src := shawshankSource()
	m := newTestModel(t, src, func(o *Options) { o.InitialQuery = omdb.Query{Term: "alien", Year: "1979"} })

	m = drain(t, m, m.Init())

	if len(src.searches) != 1 || src.searches[0] != (omdb.Query{Term: "alien", Year: "1979"}) {
		t.Fatalf("searches = %+v", src.searches)
	}
	if m.Screen() != ScreenList {
		t.Fatalf("Screen = %v, want list", m.Screen())
	}
}

func TestInit_NoInitialQuery(t *testing.T) {
	m := newTestModel(t, shawshankSource())
	if cmd := m.Init(); cmd != nil {
		t.Fatal("Init should not issue work without an initial term")
	}
}

func TestOpenLink_UsesSelectedID(t *testing.T) {
	var opened []string
	m := newTestModel(t, shawshankSource(), func(o *Options) {
		o.OpenURL = func(url string) error {
			opened = append(opened, url)
			return nil
		}
	})
	m = searchFor(t, m, "shawshank")
	m = press(t, m, keyEnter)

	m = press(t, m, keyOpen)

	if len(opened) != 1 || opened[0] != "http://www.imdb.com/title/tt0111161" {
		t.Fatalf("opened = %v", opened)
	}
	if !strings.Contains(m.notice, "Opened") {
		t.Fatalf("notice = %q", m.notice)
	}
}

func TestCycleFocus(t *testing.T) {
	m := newTestModel(t, shawshankSource())

	m = press(t, m, keyTab)
	if m.view.focus != focusYear || !m.year.Focused() || m.search.Focused() {
		t.Fatalf("focus = %v, want year", m.view.focus)
	}
	// Without results the list is skipped.
	m = press(t, m, keyTab)
	if m.view.focus != focusSearch {
		t.Fatalf("focus = %v, want search", m.view.focus)
	}

	m = searchFor(t, m, "shawshank")
	m = press(t, m, keyTab)
	if m.view.focus != focusSearch {
		t.Fatalf("focus = %v, want search after list", m.view.focus)
	}
	m = press(t, m, keyTab)
	m = press(t, m, keyTab)
	if m.view.focus != focusList {
		t.Fatalf("focus = %v, want list", m.view.focus)
	}
}

func TestCycleTheme_SavesPrefs(t *testing.T) {
	prefs := filepath.Join(t.TempDir(), "prefs.toml")
	m := newTestModel(t, shawshankSource(), func(o *Options) {
		o.PrefsPath = prefs
		o.ThemeName = "Nightfox"
	})

	m = press(t, m, tea.KeyMsg{Type: tea.KeyCtrlT})

	if m.theme.Name != "Kanagawa" {
		t.Fatalf("theme = %q, want Kanagawa", m.theme.Name)
	}
	data, err := os.ReadFile(prefs)
	if err != nil {
		t.Fatalf("read prefs: %v", err)
	}
	if !strings.Contains(string(data), "Kanagawa") {
		t.Fatalf("prefs = %q", data)
	}
}

func TestDiagnostics_ShowsLogTail(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "flicks.log")
	line := `{"level":"error","component":"ui","time":"2026-01-02T03:04:05Z","message":"request failed"}` + "\n"
	if err := os.WriteFile(logPath, []byte(line), 0o644); err != nil {
		t.Fatalf("write log: %v", err)
	}
	m := newTestModel(t, shawshankSource(), func(o *Options) { o.LogPath = logPath })

	m = press(t, m, tea.KeyMsg{Type: tea.KeyCtrlL})

	if !m.showDiagnostics {
		t.Fatal("diagnostics panel not shown")
	}
	if out := m.View(); !strings.Contains(out, "request failed") {
		t.Fatalf("diagnostics missing log line:\n%s", out)
	}

	m = press(t, m, keyEsc)
	if m.showDiagnostics {
		t.Fatal("esc should close diagnostics")
	}
}

func TestHelp_AnyKeyCloses(t *testing.T) {
	m := newTestModel(t, shawshankSource())

	m = press(t, m, tea.KeyMsg{Type: tea.KeyF1})
	if !m.showHelp || !strings.Contains(m.View(), "Keyboard Shortcuts") {
		t.Fatal("help not shown")
	}
	m = press(t, m, runes("x"))
	if m.showHelp {
		t.Fatal("help still shown")
	}
	if m.search.Value() != "" {
		t.Fatal("closing key leaked into the search field")
	}
}
