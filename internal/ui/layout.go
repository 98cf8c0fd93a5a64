package ui

// Screen rows above and below the content region.
const (
	headerRows    = 1
	formRows      = 1
	separatorRows = 1
	footerRows    = 1

	// listTop is the first screen row of the result list. Mouse
	// coordinates are translated by it before hit testing.
	listTop = headerRows + formRows + separatorRows
)

// Terminal width thresholds for responsive layouts.
const (
	// LayoutCompactWidth is the threshold below which the header drops
	// the theme name and the year field shrinks.
	LayoutCompactWidth = 70

	searchFieldWidth  = 40
	yearFieldWidth    = 6
	helpModalWidth    = 46
	minContentHeight  = entryHeight
	diagnosticsMargin = 4
)

// contentHeight is the number of rows left for the list or overlay.
func (m Model) contentHeight() int {
	return max(m.height-listTop-footerRows, minContentHeight)
}

func (m Model) contentWidth() int {
	return max(m.width, 20)
}
