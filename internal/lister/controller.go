package lister

import (
	"context"
	"errors"
	"sync"
	"time"

	"ward/internal/logging"
	"ward/internal/resource"
)

// DefaultDebounce is the delay between the last keystroke and the load it
// triggers, unless configured otherwise.
const DefaultDebounce = 300 * time.Millisecond

// Snapshot is the event payload published after every state transition, for
// consumers that want to be told when to re-read the controller.
type Snapshot struct {
	Kind    StateKind
	Count   int
	Paging  PagingStatus
	Message string
}

// Options configures a Controller. Load and BuildQuery are mandatory.
type Options[T any, Q comparable] struct {
	// Load fetches the first page of results for a query.
	Load LoadFunc[T, Q]
	// BuildQuery deterministically builds a query from the current search
	// text. Identical text must build an equal query; this is what redundant
	// reload detection rests on.
	BuildQuery func(text string) Q
	// Debounce is the search-as-you-type delay. Defaults to DefaultDebounce.
	Debounce time.Duration
	// Empty configures presentation of an empty result.
	Empty EmptyState

	Logger    logging.Interface
	Publisher resource.Publisher[Snapshot]
}

// Controller owns the load state for one list screen. It enforces a single
// in-flight operation and discards completions of superseded operations, so
// stale results never overwrite fresher state.
//
// All public methods are safe for concurrent use, but the intended usage is a
// single logical owner (one screen) invoking them, with the loader completing
// on whatever goroutine it pleases.
type Controller[T any, Q comparable] struct {
	mu    sync.Mutex
	state State[T]

	// gen tags the current load-generating operation. Any completion carrying
	// an older generation is discarded without applying a transition.
	gen    uint64
	cancel context.CancelFunc
	closed bool

	searchText string
	// lastQuery is the query of the last completed load, for redundant
	// reload detection. Nil until a load completes.
	lastQuery *Q

	// searchSerial tags the pending debounce so that a superseded debounce
	// firing late cannot commit its text.
	searchSerial uint64
	debounce     *time.Timer
	debounceFor  time.Duration

	load       LoadFunc[T, Q]
	buildQuery func(string) Q
	empty      EmptyState
	logger     logging.Interface
	pub        resource.Publisher[Snapshot]
}

func New[T any, Q comparable](opts Options[T, Q]) *Controller[T, Q] {
	c := &Controller[T, Q]{
		load:        opts.Load,
		buildQuery:  opts.BuildQuery,
		debounceFor: opts.Debounce,
		empty:       opts.Empty,
		logger:      opts.Logger,
		pub:         opts.Publisher,
	}
	if c.debounceFor <= 0 {
		c.debounceFor = DefaultDebounce
	}
	if c.logger == nil {
		c.logger = logging.Discard
	}
	c.state = emptyState[T](c.empty)
	return c
}

// State returns a snapshot of the current load state. The returned value is
// immutable; accessors on it are pure.
func (c *Controller[T, Q]) State() State[T] {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.state
}

// SearchText returns the most recently committed search text.
func (c *Controller[T, Q]) SearchText() string {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.searchText
}

// Load starts a load using the current search text. Unless force is set, the
// load is skipped when the query it would issue equals the query of the last
// completed load and that load's outcome is still on screen; callers use this
// on re-appearance of a screen to avoid redundant fetches.
//
// Starting a load supersedes any in-flight load or page fetch: the superseded
// operation's completion is discarded.
func (c *Controller[T, Q]) Load(force bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.loadLocked(force)
}

func (c *Controller[T, Q]) loadLocked(force bool) {
	if c.closed {
		return
	}
	q := c.buildQuery(c.searchText)
	if !force && c.lastQuery != nil && *c.lastQuery == q && c.state.settled() {
		c.logger.Debug("skipped redundant load", "search", c.searchText)
		return
	}

	ctx, gen := c.supersedeLocked()
	c.state = loadingState(c.state)
	c.publishLocked()
	c.logger.Debug("started load", "search", c.searchText, "generation", gen)

	go func() {
		page, err := c.load(ctx, q)
		c.finishLoad(gen, q, page, err)
	}()
}

func (c *Controller[T, Q]) finishLoad(gen uint64, q Q, page Page[T], err error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed || gen != c.gen {
		c.logger.Debug("discarded stale load result", "generation", gen)
		return
	}
	c.cancel = nil

	switch {
	case errors.Is(err, context.Canceled):
		// Cancellation is not an error condition: fall back to the state
		// captured when the load started.
		c.state = c.state.previous()
	case err != nil:
		c.lastQuery = &q
		c.state = erroredState(err.Error(), c.state)
		c.logger.Error("load failed", "error", err)
	case len(page.Items) == 0:
		c.lastQuery = &q
		c.state = emptyState[T](c.empty)
	default:
		c.lastQuery = &q
		c.state = loadedState(page)
	}
	c.publishLocked()
}

// LoadMore invokes the stored continuation to fetch the next page, appending
// its items to the existing content. It is a no-op unless content is loaded
// and pagination is ready, so the continuation is never double-invoked.
//
// On failure pagination reverts to ready and no error state is raised: the
// loaded content stays visible and the user may simply retry.
func (c *Controller[T, Q]) LoadMore() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed || c.state.kind != StateLoaded || c.state.paging != PagingReady {
		return
	}

	ctx, gen := c.supersedeLocked()
	next := c.state.next
	c.state.paging = PagingInProgress
	c.publishLocked()
	c.logger.Debug("started page fetch", "generation", gen)

	go func() {
		page, err := next(ctx)
		c.finishLoadMore(gen, page, err)
	}()
}

func (c *Controller[T, Q]) finishLoadMore(gen uint64, page Page[T], err error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed || gen != c.gen {
		c.logger.Debug("discarded stale page fetch result", "generation", gen)
		return
	}
	c.cancel = nil

	// Only a newer operation can have moved the state on, and a newer
	// operation would have bumped the generation, so the state is still
	// loaded with pagination in progress.
	st := c.state
	if err != nil {
		st.paging = PagingReady
		if !errors.Is(err, context.Canceled) {
			c.logger.Error("page fetch failed", "error", err)
		}
	} else {
		st.items = concat(st.items, page.Items)
		st.next = page.Next
		if page.Next != nil {
			st.paging = PagingReady
		} else {
			st.paging = PagingUnavailable
		}
	}
	c.state = st
	c.publishLocked()
}

// Search schedules a debounced load with the given text. A further call
// before the delay elapses cancels and replaces the pending one, so of a
// burst of keystrokes only the last triggers a load. The empty string is a
// valid search value and clears the filter.
func (c *Controller[T, Q]) Search(text string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return
	}
	if c.debounce != nil {
		c.debounce.Stop()
	}
	c.searchSerial++
	serial := c.searchSerial
	c.debounce = time.AfterFunc(c.debounceFor, func() {
		c.commitSearch(serial, text)
	})
}

func (c *Controller[T, Q]) commitSearch(serial uint64, text string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed || serial != c.searchSerial {
		// Replaced by a newer search before the timer could be stopped.
		return
	}
	c.searchText = text
	c.loadLocked(true)
}

// CancelLoad is the explicit user cancellation of the in-flight operation: a
// running load reverts to the state captured when it started, and a running
// page fetch reverts pagination to ready. Not an error condition.
func (c *Controller[T, Q]) CancelLoad() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return
	}
	switch {
	case c.state.kind == StateLoading:
		c.invalidateLocked()
		c.state = c.state.previous()
		c.publishLocked()
	case c.state.kind == StateLoaded && c.state.paging == PagingInProgress:
		c.invalidateLocked()
		c.state.paging = PagingReady
		c.publishLocked()
	}
}

// Close tears the controller down: the in-flight operation and any pending
// debounce are cancelled, and no further state transitions occur.
func (c *Controller[T, Q]) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return
	}
	c.closed = true
	c.searchSerial++
	if c.debounce != nil {
		c.debounce.Stop()
		c.debounce = nil
	}
	c.invalidateLocked()
}

// invalidateLocked marks any in-flight operation as stale and cancels it,
// without starting a replacement.
func (c *Controller[T, Q]) invalidateLocked() {
	c.gen++
	c.cancelInFlightLocked()
}

// supersedeLocked marks any in-flight operation as stale and returns the
// context and generation for a new one.
func (c *Controller[T, Q]) supersedeLocked() (context.Context, uint64) {
	c.invalidateLocked()

	ctx, cancel := context.WithCancel(context.Background())
	c.cancel = cancel
	return ctx, c.gen
}

func (c *Controller[T, Q]) cancelInFlightLocked() {
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
}

func (c *Controller[T, Q]) publishLocked() {
	if c.pub == nil {
		return
	}
	snap := Snapshot{
		Kind:    c.state.kind,
		Paging:  c.state.Paging(),
		Message: c.state.ErrorMessage(),
	}
	if items, ok := c.state.Content(); ok {
		snap.Count = len(items)
	}
	c.pub.Publish(resource.UpdatedEvent, snap)
}

// concat returns a new slice rather than appending in place, so previously
// published states keep their items unchanged.
func concat[T any](a, b []T) []T {
	out := make([]T, 0, len(a)+len(b))
	out = append(out, a...)
	return append(out, b...)
}
