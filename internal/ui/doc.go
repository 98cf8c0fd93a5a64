// Package ui provides the terminal user interface for flicks.
//
// # Architecture Overview
//
// The UI is a single Bubble Tea model. A search form sits at the top of the
// screen; below it one region is visible at a time: the result list, the
// loading spinner, the detail overlay or the error panel. viewState tracks
// which region is shown and Model.Screen derives the presented state from it.
//
// # Package Structure
//
//   - app.go: Model, Options, layout composition and the Run function
//   - bindings.go: key and mouse handling, the submit/select/back transitions
//   - commands.go: messages and the commands that call omdb.Source
//   - viewstate.go: region visibility and focus
//   - results.go: the result list, its placeholder and hit testing
//   - detail.go: the detail overlay with its backdrop and scrollable plot
//   - diagnostics.go, help.go: full-screen panels
//   - theme.go, keys.go, layout.go, strings.go: styling and helpers
//
// # Event Flow
//
//  1. enter in the form with a non-blank term clears the form and the list,
//     shows the spinner and issues a search command
//  2. the search result replaces the spinner with the list, or with a single
//     "No movies found" placeholder when nothing matched
//  3. enter on an entry (or a click on any part of it) fetches the title
//  4. the detail result opens the overlay; esc goes back to the untouched list
//
// Every request is registered with a state.Tracker. A response whose ticket
// has been superseded is dropped, so the newest request always wins. esc
// while loading cancels the in-flight request.
//
// # Key Bindings
//
//   - enter: Search from the form, open the selected entry from the list
//   - tab/shift+tab: Cycle focus between search, year and list
//   - j/k, up/down, g/G, pgup/pgdown: Move through results
//   - /: Back to the search field
//   - esc: Back from detail or error, cancel while loading
//   - ctrl+o: Open the title page in the system browser
//   - ctrl+l or L: Diagnostics log
//   - ctrl+t or T: Cycle theme
//   - f1 or ?: Help
//   - q or ctrl+c: Exit
package ui
