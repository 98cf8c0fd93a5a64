package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines all keyboard bindings for the application. Bindings that
// are plain letters only apply while the result list has focus, so they do
// not fight with typing in the search form.
type keyMap struct {
	// Global
	Quit        key.Binding
	Help        key.Binding
	CycleTheme  key.Binding
	Diagnostics key.Binding
	NextField   key.Binding
	PrevField   key.Binding
	Back        key.Binding
	Confirm     key.Binding
	OpenLink    key.Binding

	// List focus only
	QuitList   key.Binding
	HelpList   key.Binding
	ThemeList  key.Binding
	LogsList   key.Binding
	FocusInput key.Binding

	// Navigation
	Up       key.Binding
	Down     key.Binding
	Top      key.Binding
	Bottom   key.Binding
	PageUp   key.Binding
	PageDown key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() keyMap {
	return keyMap{
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "Quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("f1"),
			key.WithHelp("f1", "Help"),
		),
		CycleTheme: key.NewBinding(
			key.WithKeys("ctrl+t"),
			key.WithHelp("ctrl+t", "Cycle theme"),
		),
		Diagnostics: key.NewBinding(
			key.WithKeys("ctrl+l"),
			key.WithHelp("ctrl+l", "Diagnostics log"),
		),
		NextField: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "Next field"),
		),
		PrevField: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("shift+tab", "Previous field"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "Back / cancel"),
		),
		Confirm: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "Search / open"),
		),
		OpenLink: key.NewBinding(
			key.WithKeys("ctrl+o"),
			key.WithHelp("ctrl+o", "Open on IMDb"),
		),

		QuitList: key.NewBinding(
			key.WithKeys("q"),
			key.WithHelp("q", "Quit"),
		),
		HelpList: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "Help"),
		),
		ThemeList: key.NewBinding(
			key.WithKeys("T"),
			key.WithHelp("T", "Cycle theme"),
		),
		LogsList: key.NewBinding(
			key.WithKeys("L"),
			key.WithHelp("L", "Diagnostics log"),
		),
		FocusInput: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "New search"),
		),

		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("k/up", "Move up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("j/down", "Move down"),
		),
		Top: key.NewBinding(
			key.WithKeys("home", "g"),
			key.WithHelp("g", "Go to top"),
		),
		Bottom: key.NewBinding(
			key.WithKeys("end", "G"),
			key.WithHelp("G", "Go to bottom"),
		),
		PageUp: key.NewBinding(
			key.WithKeys("pgup"),
			key.WithHelp("pgup", "Page up"),
		),
		PageDown: key.NewBinding(
			key.WithKeys("pgdown"),
			key.WithHelp("pgdown", "Page down"),
		),
	}
}

// ShortHelp returns key bindings for the short help view.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Confirm, k.NextField, k.Back, k.Help, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Confirm, k.NextField, k.PrevField, k.Back},
		{k.Up, k.Down, k.Top, k.Bottom, k.PageUp, k.PageDown},
		{k.OpenLink, k.Diagnostics, k.CycleTheme},
		{k.FocusInput, k.QuitList, k.HelpList, k.ThemeList, k.LogsList},
		{k.Help, k.Quit},
	}
}

// footerKeys is the context-sensitive subset shown in the footer.
type footerKeys []key.Binding

func (f footerKeys) ShortHelp() []key.Binding  { return f }
func (f footerKeys) FullHelp() [][]key.Binding { return [][]key.Binding{f} }

// footerFor picks the bindings worth showing for the current screen.
func (k keyMap) footerFor(screen Screen, focus focusTarget) footerKeys {
	switch screen {
	case ScreenLoading:
		return footerKeys{k.Back, k.Quit}
	case ScreenDetail:
		return footerKeys{k.Back, k.OpenLink, k.PageDown, k.Confirm, k.Quit}
	case ScreenError:
		return footerKeys{k.Back, k.Diagnostics, k.Quit}
	}
	if focus == focusList {
		return footerKeys{k.Up, k.Down, k.Confirm, k.FocusInput, k.HelpList, k.QuitList}
	}
	return footerKeys{k.Confirm, k.NextField, k.Help, k.Quit}
}
