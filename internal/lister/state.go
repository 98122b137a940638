package lister

// StateKind enumerates the lifecycle of the most recent load attempt.
type StateKind int

const (
	// StateEmpty: no content. Terminal unless a load is started.
	StateEmpty StateKind = iota
	// StateLoading: a load is running. The state active immediately before
	// the load started is retained so that it can be restored on
	// cancellation and so its content remains visible meanwhile.
	StateLoading
	// StateLoaded: content is available.
	StateLoaded
	// StateErrored: the most recent load failed. The state active before the
	// failing attempt is retained so its content remains visible.
	StateErrored
)

func (k StateKind) String() string {
	switch k {
	case StateLoading:
		return "loading"
	case StateLoaded:
		return "loaded"
	case StateErrored:
		return "errored"
	default:
		return "empty"
	}
}

// EmptyState configures how an empty result is presented.
type EmptyState struct {
	Label string
	Icon  string
}

// State is an immutable value capturing the lifecycle of the most recent load
// attempt, preserving prior good content across transient states.
//
// Previous-state chains are flattened on construction: the previous state of
// a loading state is never itself loading, and the previous state of an
// errored state is never loading nor errored. Content lookup is therefore a
// bounded, constant-time unwrap, and chains cannot grow without bound across
// repeated error/retry cycles.
type State[T any] struct {
	kind StateKind

	// StateEmpty only.
	empty EmptyState

	// StateLoaded only.
	items  []T
	next   Continuation[T]
	paging PagingStatus

	// StateErrored only.
	message string

	// StateLoading and StateErrored only: the state to fall back to.
	prev *State[T]
}

func emptyState[T any](cfg EmptyState) State[T] {
	return State[T]{kind: StateEmpty, empty: cfg}
}

func loadedState[T any](page Page[T]) State[T] {
	s := State[T]{
		kind:   StateLoaded,
		items:  page.Items,
		next:   page.Next,
		paging: PagingUnavailable,
	}
	if page.Next != nil {
		s.paging = PagingReady
	}
	return s
}

// loadingState wraps prev in a loading state. A loading previous state is
// unwrapped first so that loading states never nest.
func loadingState[T any](prev State[T]) State[T] {
	base := prev
	if base.kind == StateLoading && base.prev != nil {
		base = *base.prev
	}
	return State[T]{kind: StateLoading, prev: &base}
}

// erroredState wraps prev in an errored state. Loading and errored previous
// states are unwrapped down to the underlying loaded or empty state, so an
// errored state always falls back to real content (or its absence).
func erroredState[T any](message string, prev State[T]) State[T] {
	base := prev
	for base.prev != nil && (base.kind == StateLoading || base.kind == StateErrored) {
		base = *base.prev
	}
	return State[T]{kind: StateErrored, message: message, prev: &base}
}

func (s State[T]) Kind() StateKind { return s.kind }

// Content returns the most recently loaded items, unwrapping transient
// loading/errored states, so that the view never loses previously shown
// content during a background refresh or a transient error. The second return
// value is false if there is no content to show.
func (s State[T]) Content() ([]T, bool) {
	for st := &s; st != nil; st = st.prev {
		switch st.kind {
		case StateLoaded:
			return st.items, true
		case StateEmpty:
			return nil, false
		}
	}
	return nil, false
}

// Paging returns the pagination status. Anything other than a loaded state
// reports pagination as unavailable.
func (s State[T]) Paging() PagingStatus {
	if s.kind == StateLoaded {
		return s.paging
	}
	return PagingUnavailable
}

func (s State[T]) Errored() bool { return s.kind == StateErrored }

// ErrorMessage returns the failure message, non-empty only when the state is
// errored.
func (s State[T]) ErrorMessage() string {
	if s.kind == StateErrored {
		return s.message
	}
	return ""
}

// Empty returns the configured empty-state presentation if the state,
// unwrapped of transient wrappers, has no content.
func (s State[T]) Empty() (EmptyState, bool) {
	for st := &s; st != nil; st = st.prev {
		switch st.kind {
		case StateLoaded:
			return EmptyState{}, false
		case StateEmpty:
			return st.empty, true
		}
	}
	return EmptyState{}, false
}

// previous returns the state to restore upon cancellation of the operation
// that produced s.
func (s State[T]) previous() State[T] {
	if s.prev != nil {
		return *s.prev
	}
	return s
}

// settled reports whether s represents a completed load whose content (or
// error wrapping content) is on screen, i.e. a state in which a redundant
// reload may be skipped.
func (s State[T]) settled() bool {
	switch s.kind {
	case StateLoaded:
		return true
	case StateErrored:
		return s.prev != nil && s.prev.kind == StateLoaded
	default:
		return false
	}
}
