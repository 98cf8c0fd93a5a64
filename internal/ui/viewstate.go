package ui

// Screen is the UI state currently presented.
type Screen int

const (
	ScreenIdle Screen = iota
	ScreenLoading
	ScreenList
	ScreenNoResults
	ScreenDetail
	ScreenError
)

func (s Screen) String() string {
	switch s {
	case ScreenIdle:
		return "idle"
	case ScreenLoading:
		return "loading"
	case ScreenList:
		return "list"
	case ScreenNoResults:
		return "no-results"
	case ScreenDetail:
		return "detail"
	case ScreenError:
		return "error"
	default:
		return "unknown"
	}
}

// focusTarget names the element that receives typed input.
type focusTarget int

const (
	focusSearch focusTarget = iota
	focusYear
	focusList
)

// viewState toggles which regions of the screen are visible. At most one
// of list, overlay and error panel is shown; the loading marker is set
// only while all three are hidden.
type viewState struct {
	loading bool
	list    bool
	overlay bool
	failure bool
	focus   focusTarget
}

func newViewState() viewState {
	return viewState{list: true, focus: focusSearch}
}

// enterLoading hides the list and the overlay and raises the loading marker.
func (v *viewState) enterLoading() {
	v.list = false
	v.overlay = false
	v.failure = false
	v.loading = true
}

// enterList shows the list region, whatever it currently holds.
func (v *viewState) enterList() {
	v.loading = false
	v.overlay = false
	v.failure = false
	v.list = true
}

// enterDetail shows the overlay and hands focus back to the search field.
func (v *viewState) enterDetail() {
	v.list = false
	v.loading = false
	v.failure = false
	v.overlay = true
	v.focus = focusSearch
}

// enterError shows the error panel in place of the list or overlay.
func (v *viewState) enterError() {
	v.loading = false
	v.list = false
	v.overlay = false
	v.failure = true
}
