// Package omdb provides an HTTP client for the OMDb movie database API.
//
// # Overview
//
// The client performs two read-only lookups against the API root:
//
//   - GET /?s={term}&y={year}&r=json: title search, one page of summaries
//   - GET /?i={id}&y=&plot=full&r=json: a single title with its full plot
//
// Both return JSON with a "Response" field of "True" or "False". A search
// answered with "False" is a normal outcome (no matches) and is reported
// through SearchResult.Found. A lookup answered with "False" is a
// *LookupError.
//
// # Usage
//
//	client, err := omdb.NewClient(omdb.Options{APIKey: key})
//	if err != nil {
//		return err
//	}
//
//	res, err := client.Search(ctx, omdb.Query{Term: "shawshank"})
//	if err != nil {
//		return err
//	}
//	for _, s := range res.Items {
//		fmt.Println(s.ID, s.Title, s.Year)
//	}
//
// # Errors
//
//   - *NetworkError: the request never completed (refused, DNS, timeout, cancelled)
//   - *StatusError: any status other than 200; carries the status text
//   - *LookupError: a title lookup with Response "False"
//   - "decode response" wrapped errors: the body was not valid JSON
//
// Describe turns any of these into a short label suitable for the UI.
//
// # Posters
//
// OMDb marks missing posters with the literal "N/A". PosterURL treats that
// sentinel, blanks and non-http(s) values as "no image" so callers never
// point an image at the sentinel.
//
// The client has no retries and no de-duplication: each call is exactly one
// round trip. Callers that want last-request-wins semantics pass a context
// they cancel when the request is superseded.
package omdb
