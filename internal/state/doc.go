// Package state tracks which request the UI is waiting for.
//
// # Overview
//
// Searches and detail lookups run as Bubble Tea commands on their own
// goroutines and report back with messages. Nothing stops a slow response
// from arriving after the user has already moved on, so every request is
// registered with a Tracker first.
//
// # Tickets
//
// Begin hands out a Ticket carrying a monotonically increasing sequence
// number, the request kind, its key (term or title id) and a request id
// for log correlation. It also returns a context derived from the caller's,
// which is cancelled when a later request begins.
//
//	ctx, tk := tracker.Begin(parent, state.KindSearch, "alien")
//	result, err := source.Search(ctx, query)
//	// back on the UI goroutine:
//	if !tracker.Settle(tk) {
//		return // superseded, drop it
//	}
//
// Settle accepts a response only for the current ticket; anything older is
// counted as discarded. Cancel aborts the in-flight request without starting
// a new one.
//
// # Concurrency Model
//
// A single mutex guards the tracker. Begin, Settle and Cancel only swap a
// few fields and never block on I/O, so the UI goroutine can call them
// directly. The zero value is ready to use.
package state
