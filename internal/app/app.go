// Package app is the main entrypoint into the application, responsible for
// configuring and starting the application, services, dependency injection,
// etc.
package app

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"

	"ward/internal/lister"
	"ward/internal/logging"
	"ward/internal/patient"
	"ward/internal/pubsub"
	"ward/internal/tui"
	"ward/internal/version"
)

// Start parses configuration, builds the application and runs the TUI,
// blocking until the user quits.
func Start(stdout, stderr io.Writer, args []string) error {
	cfg, err := Parse(stderr, args)
	if err != nil {
		return err
	}

	if cfg.Version {
		fmt.Fprintln(stdout, "ward", version.Version)
		return nil
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	app, model, err := newApp(ctx, cfg)
	if err != nil {
		return err
	}

	p := tea.NewProgram(
		model,
		// use the full size of the terminal with its "alternate screen buffer"
		tea.WithAltScreen(),
	)

	cleanup := app.start(ctx, p)
	defer func() {
		if err := cleanup(); err != nil {
			app.logger.Error("cleaning up app resources", "error", err)
		}
	}()

	// Blocks until user quits
	_, err = p.Run()
	return err
}

type app struct {
	cfg       Config
	logger    *logging.Logger
	store     *patient.Store
	patients  *patient.Service
	roster    *tui.Roster
	snapshots *pubsub.Broker[lister.Snapshot]
}

// newApp assembles the services and the top-level TUI model. The model is
// returned separately so that tests can wrap it in a test harness before
// starting the event relays.
func newApp(ctx context.Context, cfg Config) (*app, tea.Model, error) {
	logger := logging.NewLogger(cfg.Logging)

	if err := os.MkdirAll(filepath.Dir(cfg.Database), 0o755); err != nil {
		return nil, nil, fmt.Errorf("creating database directory: %w", err)
	}
	store, err := patient.NewStore(cfg.Database, logger)
	if err != nil {
		return nil, nil, err
	}

	patients := patient.NewService(patient.ServiceOptions{
		Store:  store,
		Logger: logger,
	})
	if cfg.Seed {
		if err := patients.Seed(ctx); err != nil {
			store.Close()
			return nil, nil, fmt.Errorf("seeding roster: %w", err)
		}
	}

	snapshots := pubsub.NewBroker[lister.Snapshot](logger)
	roster := lister.NewScoped(lister.ScopedOptions[*patient.Patient, patient.Query, patient.Filter]{
		Load: patients.Loader(),
		BuildQuery: func(text string, scope patient.Filter) patient.Query {
			return patient.Query{
				Search:   text,
				Filter:   scope,
				PageSize: cfg.PageSize,
			}
		},
		Scope:    patient.FilterAll,
		Debounce: cfg.SearchDebounce,
		Empty: lister.EmptyState{
			Label: cfg.EmptyLabel,
			Icon:  cfg.EmptyIcon,
		},
		Logger:    logger,
		Publisher: snapshots,
	})

	model := tui.New(tui.Options{
		Roster: roster,
		Logger: logger,
	})

	a := &app{
		cfg:       cfg,
		logger:    logger,
		store:     store,
		patients:  patients,
		roster:    roster,
		snapshots: snapshots,
	}
	return a, model, nil
}

// sender is a subset of the tea.Program interface, to allow a test harness to
// receive messages in place of a real program.
type sender interface {
	Send(tea.Msg)
}

// start wires service events through to the TUI and returns a cleanup
// function for the caller to invoke after the program has finished.
func (a *app) start(ctx context.Context, prog sender) func() error {
	relay(ctx, prog, a.snapshots.Subscribe)
	relay(ctx, prog, a.patients.Subscribe)
	relay(ctx, prog, a.logger.Subscribe)

	a.logger.Info("started ward", "database", a.cfg.Database, "page_size", a.cfg.PageSize)

	return func() error {
		a.roster.Close()
		return a.store.Close()
	}
}

// relay forwards events from a subscription to the TUI until ctx is done.
func relay[T any](ctx context.Context, prog sender, subscribe func(context.Context) (<-chan T, func())) {
	events, _ := subscribe(ctx)
	go func() {
		for ev := range events {
			prog.Send(ev)
		}
	}()
}
