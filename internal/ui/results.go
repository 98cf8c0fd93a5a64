package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/five82/flicks/internal/omdb"
)

const (
	posterGlyph      = "▣"
	placeholderGlyph = "▢"
	noMatchesGlyph   = "?"

	// entryHeight is the number of screen rows one entry occupies:
	// poster cell + title, then year.
	entryHeight = 2
	posterWidth = 2 // glyph plus gap
)

// posterCell is either a real poster or the placeholder icon, never a
// poster pointed at the "N/A" sentinel.
type posterCell struct {
	URL         string
	Placeholder bool
}

// entry is one rendered search result. Key is the title id used to resolve
// a selection back to its record.
type entry struct {
	Key    string
	Poster posterCell
	Title  string
	Year   string
}

// noMatches is the single placeholder entry shown for an empty result.
type noMatches struct {
	Icon    string
	Message string
}

// entryPart names the sub-element of an entry a click landed on.
type entryPart int

const (
	partPoster entryPart = iota
	partTitle
	partYear
)

func (p entryPart) String() string {
	switch p {
	case partPoster:
		return "poster"
	case partTitle:
		return "title"
	case partYear:
		return "year"
	default:
		return "unknown"
	}
}

// hit is the result of resolving a screen position inside the list.
type hit struct {
	Entry entry
	Part  entryPart
}

// resultList is the list region: either entries, a no-matches placeholder,
// or nothing before the first search.
type resultList struct {
	entries []entry
	empty   *noMatches
	term    string
	cursor  int
	offset  int
}

// clear removes every entry and the placeholder.
func (l *resultList) clear() {
	l.entries = nil
	l.empty = nil
	l.term = ""
	l.cursor = 0
	l.offset = 0
}

// renderResults builds entries for summaries, in input order, and attaches
// them to the list in one step. The list must have been cleared first.
func (l *resultList) renderResults(summaries []omdb.Summary, term string) {
	l.term = term
	if len(summaries) == 0 {
		l.empty = &noMatches{Icon: noMatchesGlyph, Message: noMatchesMessage(term)}
		return
	}

	fragment := make([]entry, 0, len(summaries))
	for _, s := range summaries {
		fragment = append(fragment, newEntry(s))
	}
	l.entries = append(l.entries, fragment...)
}

func newEntry(s omdb.Summary) entry {
	url, ok := s.PosterURL()
	return entry{
		Key:    s.ID,
		Poster: posterCell{URL: url, Placeholder: !ok},
		Title:  s.Title,
		Year:   s.Year,
	}
}

func noMatchesMessage(term string) string {
	return "No movies found that match: " + term
}

// size is the number of rendered list items, the placeholder included.
func (l resultList) size() int {
	if l.empty != nil {
		return 1
	}
	return len(l.entries)
}

// blank reports whether nothing has been rendered yet.
func (l resultList) blank() bool {
	return l.empty == nil && len(l.entries) == 0
}

// selected returns the entry under the cursor.
func (l resultList) selected() (entry, bool) {
	if l.cursor < 0 || l.cursor >= len(l.entries) {
		return entry{}, false
	}
	return l.entries[l.cursor], true
}

// entryAt resolves a row/column relative to the list's top-left corner to
// the entry containing it. Any sub-element resolves to its entry.
func (l resultList) entryAt(row, col int) (hit, bool) {
	if row < 0 || len(l.entries) == 0 {
		return hit{}, false
	}
	idx := l.offset + row/entryHeight
	if idx >= len(l.entries) {
		return hit{}, false
	}
	part := partYear
	if row%entryHeight == 0 {
		part = partTitle
		if col < posterWidth {
			part = partPoster
		}
	}
	return hit{Entry: l.entries[idx], Part: part}, true
}

// indexOf returns the position of the entry with key.
func (l resultList) indexOf(key string) int {
	for i, e := range l.entries {
		if e.Key == key {
			return i
		}
	}
	return -1
}

// move shifts the cursor by delta, keeping it inside the list and on screen.
func (l *resultList) move(delta, height int) {
	if len(l.entries) == 0 {
		return
	}
	l.cursor = clamp(l.cursor+delta, 0, len(l.entries)-1)
	l.ensureVisible(height)
}

// moveTo places the cursor on idx.
func (l *resultList) moveTo(idx, height int) {
	if len(l.entries) == 0 {
		return
	}
	l.cursor = clamp(idx, 0, len(l.entries)-1)
	l.ensureVisible(height)
}

func (l *resultList) ensureVisible(height int) {
	visible := visibleEntries(height)
	if l.cursor < l.offset {
		l.offset = l.cursor
	}
	if l.cursor >= l.offset+visible {
		l.offset = l.cursor - visible + 1
	}
	if l.offset < 0 {
		l.offset = 0
	}
}

func visibleEntries(height int) int {
	if n := height / entryHeight; n > 0 {
		return n
	}
	return 1
}

// view renders the list region into width x height cells.
func (l resultList) view(styles Styles, width, height int, focused bool) string {
	if l.empty != nil {
		line := styles.NoResults.Render(l.empty.Icon+" ") + styles.Text.Render(l.empty.Message)
		return lipgloss.NewStyle().Width(width).Height(height).Render(line)
	}

	visible := visibleEntries(height)
	end := min(l.offset+visible, len(l.entries))
	textWidth := max(width-posterWidth, 1)

	lines := make([]string, 0, (end-l.offset)*entryHeight)
	for i := l.offset; i < end; i++ {
		e := l.entries[i]
		selected := focused && i == l.cursor

		glyph := styles.Poster.Render(posterGlyph)
		if e.Poster.Placeholder {
			glyph = styles.PosterPlaceholder.Render(placeholderGlyph)
		}
		titleRow := glyph + " " + styles.EntryTitle.Render(truncate(e.Title, textWidth))
		yearRow := strings.Repeat(" ", posterWidth) + styles.EntryYear.Render(truncate(e.Year, textWidth))

		if selected {
			row := styles.Selected.Width(width)
			titleRow = row.Render(titleRow)
			yearRow = row.Render(yearRow)
		}
		lines = append(lines, titleRow, yearRow)
	}
	return lipgloss.NewStyle().Width(width).Height(height).Render(strings.Join(lines, "\n"))
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
