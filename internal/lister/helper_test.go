package lister

import (
	"context"
	"testing"
	"time"

	"ward/internal/logging"
	"ward/internal/pubsub"
	"ward/internal/resource"

	"github.com/stretchr/testify/require"
)

// loaderCall is one invocation of a fake loader, held open until the test
// replies to it.
type loaderCall[Q comparable] struct {
	ctx   context.Context
	query Q
	reply chan loaderResult
}

type loaderResult struct {
	page Page[string]
	err  error
}

func (c loaderCall[Q]) respond(page Page[string], err error) {
	c.reply <- loaderResult{page: page, err: err}
}

// fakeLoader returns a loader whose invocations are surfaced on a channel,
// letting tests control exactly when and how each load completes.
func fakeLoader[Q comparable]() (LoadFunc[string, Q], chan loaderCall[Q]) {
	calls := make(chan loaderCall[Q], 10)
	fn := func(ctx context.Context, q Q) (Page[string], error) {
		call := loaderCall[Q]{ctx: ctx, query: q, reply: make(chan loaderResult, 1)}
		calls <- call
		select {
		case r := <-call.reply:
			return r.page, r.err
		case <-ctx.Done():
			return Page[string]{}, ctx.Err()
		}
	}
	return fn, calls
}

// page builds a terminal page from items.
func page(items ...string) Page[string] {
	return Page[string]{Items: items}
}

// pageWithNext builds a page whose continuation is another fake loader call
// surfaced on the same channel.
func pageWithNext[Q comparable](calls chan loaderCall[Q], zero Q, items ...string) Page[string] {
	return Page[string]{
		Items: items,
		Next: func(ctx context.Context) (Page[string], error) {
			call := loaderCall[Q]{ctx: ctx, query: zero, reply: make(chan loaderResult, 1)}
			calls <- call
			select {
			case r := <-call.reply:
				return r.page, r.err
			case <-ctx.Done():
				return Page[string]{}, ctx.Err()
			}
		},
	}
}

func waitCall[Q comparable](t *testing.T, calls chan loaderCall[Q]) loaderCall[Q] {
	t.Helper()
	select {
	case call := <-calls:
		return call
	case <-time.After(3 * time.Second):
		t.Fatal("timed out waiting for loader invocation")
		return loaderCall[Q]{}
	}
}

func assertNoCall[Q comparable](t *testing.T, calls chan loaderCall[Q], within time.Duration) {
	t.Helper()
	select {
	case <-calls:
		t.Fatal("unexpected loader invocation")
	case <-time.After(within):
	}
}

// waitKind consumes snapshots until one with the wanted kind arrives. Because
// snapshots are published after the transition is applied, receiving one
// guarantees the controller state is readable.
func waitKind(t *testing.T, sub <-chan resource.Event[Snapshot], kind StateKind) Snapshot {
	t.Helper()
	timeout := time.After(3 * time.Second)
	for {
		select {
		case ev := <-sub:
			if ev.Payload.Kind == kind {
				return ev.Payload
			}
		case <-timeout:
			t.Fatalf("timed out waiting for %s state", kind)
			return Snapshot{}
		}
	}
}

// waitPaging consumes snapshots until one with the wanted paging status
// arrives.
func waitPaging(t *testing.T, sub <-chan resource.Event[Snapshot], status PagingStatus) Snapshot {
	t.Helper()
	timeout := time.After(3 * time.Second)
	for {
		select {
		case ev := <-sub:
			if ev.Payload.Kind == StateLoaded && ev.Payload.Paging == status {
				return ev.Payload
			}
		case <-timeout:
			t.Fatalf("timed out waiting for %s paging", status)
			return Snapshot{}
		}
	}
}

type controllerFixture struct {
	ctrl  *Controller[string, string]
	calls chan loaderCall[string]
	sub   <-chan resource.Event[Snapshot]
}

func setupController(t *testing.T, opts Options[string, string]) controllerFixture {
	t.Helper()

	load, calls := fakeLoader[string]()
	if opts.Load == nil {
		opts.Load = load
	}
	if opts.BuildQuery == nil {
		opts.BuildQuery = func(text string) string { return text }
	}
	if opts.Debounce == 0 {
		opts.Debounce = 20 * time.Millisecond
	}
	opts.Logger = logging.Discard

	broker := pubsub.NewBroker[Snapshot](logging.Discard)
	opts.Publisher = broker

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	sub, _ := broker.Subscribe(ctx)

	ctrl := New(opts)
	t.Cleanup(ctrl.Close)

	return controllerFixture{ctrl: ctrl, calls: calls, sub: sub}
}

// loadItems drives the fixture's controller to a loaded state with the given
// page.
func (f controllerFixture) loadItems(t *testing.T, p Page[string]) {
	t.Helper()

	f.ctrl.Load(true)
	waitCall(t, f.calls).respond(p, nil)
	waitKind(t, f.sub, StateLoaded)
}

func requireContent(t *testing.T, st State[string], want ...string) {
	t.Helper()

	items, ok := st.Content()
	require.True(t, ok, "expected content, state is %s", st.Kind())
	require.Equal(t, want, items)
}
