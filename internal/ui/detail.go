package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/flicks/internal/omdb"
)

// Backdrop fit modes. A real poster covers the backdrop band; the
// placeholder asset is drawn smaller, at a fixed share of the width.
const (
	fitCover       = "cover"
	fitPlaceholder = "60%"

	placeholderAsset = "img/noImage.svg"
	placeholderShare = 60
	backdropRows     = 3
)

// backdrop is the image region at the top of the overlay.
type backdrop struct {
	Source string
	Fit    string
}

// overlay is the detail view's content, populated by renderDetail.
type overlay struct {
	ID       string
	Backdrop backdrop
	Title    string
	Rating   string
	Plot     string
	Link     string

	plot          viewport.Model
	width, height int
}

func newOverlay() overlay {
	return overlay{plot: viewport.New(0, 0)}
}

// renderDetail fills the overlay from movie. link is the source site's page
// for id; the id is the one the user selected, not the one echoed back.
func (o *overlay) renderDetail(movie omdb.Movie, id, link string) {
	if poster, ok := movie.PosterURL(); ok {
		o.Backdrop = backdrop{Source: poster, Fit: fitCover}
	} else {
		o.Backdrop = backdrop{Source: placeholderAsset, Fit: fitPlaceholder}
	}
	o.ID = id
	o.Title = fmt.Sprintf("%s (%s)", movie.Title, movie.Year)
	o.Rating = "imdb rating: " + movie.Rating
	o.Plot = movie.Plot
	o.Link = link
	o.layoutPlot()
	o.plot.GotoTop()
}

// resize fits the plot viewport to the space the overlay leaves for it.
func (o *overlay) resize(width, height int) {
	o.width, o.height = width, height
	o.layoutPlot()
}

func (o *overlay) layoutPlot() {
	inner := overlayInnerWidth(o.width)
	o.plot.Width = inner
	o.plot.Height = max(o.height-overlayChromeRows, 1)
	o.plot.SetContent(lipgloss.NewStyle().Width(inner).Render(o.Plot))
}

// overlayChromeRows counts the rows around the plot: borders, backdrop
// band, title, rating, blank lines, link and back hint.
const overlayChromeRows = 2 + backdropRows + 2 + 1 + 1 + 1 + 2 + 1

func overlayInnerWidth(width int) int {
	// border (2) + horizontal padding (4)
	return max(width-6, 10)
}

// view renders the overlay into width x height cells.
func (o overlay) view(styles Styles, width, height int) string {
	inner := overlayInnerWidth(width)

	var b strings.Builder
	b.WriteString(o.backdropView(styles, inner))
	b.WriteString("\n\n")
	b.WriteString(styles.DetailTitle.Render(truncate(o.Title, inner)))
	b.WriteString("\n")
	b.WriteString(styles.Rating.Render(o.Rating))
	b.WriteString("\n\n")
	b.WriteString(o.plot.View())
	b.WriteString("\n\n")
	b.WriteString(styles.Link.Render(truncateMiddle(o.Link, inner-16)))
	b.WriteString(styles.FaintText.Render("  ctrl+o open"))
	b.WriteString("\n")
	b.WriteString(styles.MutedText.Render("esc back"))

	return styles.Overlay.
		Width(width - 2).
		Height(max(height-2, 1)).
		Render(b.String())
}

func (o overlay) backdropView(styles Styles, inner int) string {
	if o.Backdrop.Fit == fitCover {
		return styles.Backdrop.
			Width(inner - 2).
			Height(backdropRows - 2).
			Render(truncateMiddle(o.Backdrop.Source, inner-4))
	}
	band := max(inner*placeholderShare/100, 12)
	box := styles.BackdropPlaceholder.
		Width(band - 2).
		Height(backdropRows - 2).
		Render(placeholderGlyph + " no image")
	return lipgloss.PlaceHorizontal(inner, lipgloss.Center, box)
}
