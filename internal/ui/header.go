package ui

import "fmt"

// renderHeader renders the status bar: logo, what the screen shows and,
// on wide terminals, the theme name.
func (m Model) renderHeader() string {
	styles := m.styles
	bg := newBgStyle(m.theme.Surface)

	parts := []string{bg.render("flicks", styles.Logo)}
	switch m.Screen() {
	case ScreenLoading:
		parts = append(parts, bg.render(m.loadingLabel(), styles.AccentText))
	case ScreenList:
		parts = append(parts, bg.render(resultCount(m.list.size(), m.list.term), styles.MutedText))
	case ScreenNoResults:
		parts = append(parts, bg.render("no matches", styles.MutedText))
	case ScreenDetail:
		parts = append(parts, bg.render(m.detail.ID, styles.MutedText))
	case ScreenError:
		parts = append(parts, bg.render("error", styles.DangerText))
	}
	if m.width >= LayoutCompactWidth {
		parts = append(parts, bg.render(m.theme.Name, styles.FaintText))
	}

	return bg.fill(bg.spaces(1)+bg.join(parts, 2), m.contentWidth())
}

func (m Model) loadingLabel() string {
	tk, ok := m.tracker.Pending()
	if !ok {
		return "loading"
	}
	return fmt.Sprintf("loading %s %q", tk.Kind, truncate(tk.Key, 30))
}

func resultCount(n int, term string) string {
	noun := "results"
	if n == 1 {
		noun = "result"
	}
	return truncate(fmt.Sprintf("%d %s for %q", n, noun, term), 60)
}
