package omdb

import (
	"net/url"
	"strings"
)

// NoPoster is the value OMDb sends when a title has no poster.
const NoPoster = "N/A"

// Query is a single search submitted by the user.
type Query struct {
	Term string
	Year string // optional, passed through unvalidated
}

// Summary is one row of a search response.
type Summary struct {
	ID     string `json:"imdbID"`
	Title  string `json:"Title"`
	Year   string `json:"Year"`
	Type   string `json:"Type"`
	Poster string `json:"Poster"`
}

// PosterURL returns the summary's poster when it is usable.
func (s Summary) PosterURL() (string, bool) {
	return PosterURL(s.Poster)
}

// Movie is the full-plot record returned by a title lookup.
type Movie struct {
	ID     string `json:"imdbID"`
	Title  string `json:"Title"`
	Year   string `json:"Year"`
	Poster string `json:"Poster"`
	Rating string `json:"imdbRating"`
	Plot   string `json:"Plot"`
}

// PosterURL returns the movie's poster when it is usable.
func (m Movie) PosterURL() (string, bool) {
	return PosterURL(m.Poster)
}

// SearchResult is the outcome of a search that reached the API.
type SearchResult struct {
	Found   bool
	Items   []Summary
	Message string // upstream explanation when Found is false
}

// PosterURL reports whether raw is an absolute http(s) URL. The "N/A"
// sentinel, blanks and anything unparsable count as no image.
func PosterURL(raw string) (string, bool) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" || strings.EqualFold(trimmed, NoPoster) {
		return "", false
	}
	u, err := url.Parse(trimmed)
	if err != nil || u.Host == "" {
		return "", false
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return "", false
	}
	return trimmed, true
}

// envelope carries the status fields every OMDb response shares.
type envelope struct {
	Response string `json:"Response"`
	Error    string `json:"Error"`
}

func (e envelope) ok() bool {
	return strings.EqualFold(strings.TrimSpace(e.Response), "True")
}

// failed reports an explicit "False" answer. Detail bodies that omit
// Response altogether still carry a usable record.
func (e envelope) failed() bool {
	return strings.EqualFold(strings.TrimSpace(e.Response), "False")
}

type searchResponse struct {
	envelope
	Search       []Summary `json:"Search"`
	TotalResults string    `json:"totalResults"`
}

type detailResponse struct {
	envelope
	Movie
}
