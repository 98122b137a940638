package lister

import (
	"sync"
	"time"

	"ward/internal/logging"
	"ward/internal/resource"
)

// ScopedOptions configures a Scoped controller. Load and BuildQuery are
// mandatory.
type ScopedOptions[T any, Q, S comparable] struct {
	Load LoadFunc[T, Q]
	// BuildQuery deterministically builds a query from the current search
	// text and scope.
	BuildQuery func(text string, scope S) Q
	// Scope is the initial scope value.
	Scope    S
	Debounce time.Duration
	Empty    EmptyState

	Logger    logging.Interface
	Publisher resource.Publisher[Snapshot]
}

// Scoped is a Controller specialisation that adds a mutable scope value, a
// discrete filter dimension such as a tab selection. Changing scope forces an
// immediate reload with the current search text: unlike keystrokes, scope
// changes are discrete user actions and are not debounced.
type Scoped[T any, Q, S comparable] struct {
	*Controller[T, Q]

	mu    sync.Mutex
	scope S
	build func(text string, scope S) Q
}

func NewScoped[T any, Q, S comparable](opts ScopedOptions[T, Q, S]) *Scoped[T, Q, S] {
	s := &Scoped[T, Q, S]{
		scope: opts.Scope,
		build: opts.BuildQuery,
	}
	s.Controller = New(Options[T, Q]{
		Load: opts.Load,
		BuildQuery: func(text string) Q {
			return s.build(text, s.Scope())
		},
		Debounce:  opts.Debounce,
		Empty:     opts.Empty,
		Logger:    opts.Logger,
		Publisher: opts.Publisher,
	})
	return s
}

func (s *Scoped[T, Q, S]) Scope() S {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.scope
}

// SetScope switches to a new scope and immediately reloads using the current
// search text. Setting the scope to its current value is a no-op.
func (s *Scoped[T, Q, S]) SetScope(scope S) {
	s.mu.Lock()
	if scope == s.scope {
		s.mu.Unlock()
		return
	}
	s.scope = scope
	s.mu.Unlock()

	s.Load(true)
}
