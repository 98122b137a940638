// Package lister implements the state machine behind every searchable,
// paginated list screen: a load-state machine that never blanks previously
// shown content, a nested pagination state machine, debounced
// search-as-you-type, and generation-based discarding of superseded
// completions.
package lister

import "context"

// Page is one fetched batch of items together with an optional continuation
// for fetching the batch after it.
type Page[T any] struct {
	Items []T
	// Next fetches the next page. Nil means this page is terminal and no
	// further pages exist.
	Next Continuation[T]
}

// Continuation fetches the page following the one it was returned with. It is
// intended to be consumed at most once; the controller guarantees it is never
// invoked concurrently with itself.
type Continuation[T any] func(ctx context.Context) (Page[T], error)

// LoadFunc fetches the first page of results for a query. It is supplied by
// the caller and is opaque to the controller: given a query it either returns
// a page or fails. It may be slow; it is expected to honour ctx cancellation.
type LoadFunc[T any, Q comparable] func(ctx context.Context, q Q) (Page[T], error)
