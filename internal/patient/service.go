package patient

import (
	"context"
	"time"

	"ward/internal/lister"
	"ward/internal/logging"
	"ward/internal/pubsub"
	"ward/internal/resource"
)

// DefaultPageSize is the fallback number of patients per page when a query
// does not specify one.
const DefaultPageSize = 25

// Service owns the patient roster: the sqlite store, an in-memory identity
// cache, and a broker publishing change events.
type Service struct {
	Broker *pubsub.Broker[*Patient]

	store  *Store
	cache  *resource.Table[*Patient]
	logger logging.Interface
}

type ServiceOptions struct {
	Store  *Store
	Logger logging.Interface
}

func NewService(opts ServiceOptions) *Service {
	logger := opts.Logger
	if logger == nil {
		logger = logging.Discard
	}
	broker := pubsub.NewBroker[*Patient](logger)
	return &Service{
		Broker: broker,
		store:  opts.Store,
		cache:  resource.NewTable(broker),
		logger: logger,
	}
}

// Save persists patients, assigning IDs to any that lack one, and publishes
// change events.
func (s *Service) Save(ctx context.Context, patients ...*Patient) error {
	now := time.Now()
	for _, p := range patients {
		if p.ID.IsZero() {
			p.ID = resource.NewID(resource.Patient)
		}
		if p.AdmittedAt.IsZero() {
			p.AdmittedAt = now
		}
		p.UpdatedAt = now
	}

	if _, err := s.store.Save(ctx, patients...); err != nil {
		return err
	}
	for _, p := range patients {
		s.cache.Add(p.ID, p)
	}
	s.logger.Debug("saved patients", "count", len(patients))
	return nil
}

// Get retrieves a patient by ID from the identity cache.
func (s *Service) Get(id resource.ID) (*Patient, error) {
	return s.cache.Get(id)
}

// Subscribe subscribes the caller to patient change events.
func (s *Service) Subscribe(ctx context.Context) (<-chan resource.Event[*Patient], func()) {
	return s.Broker.Subscribe(ctx)
}

// Loader adapts the store into the list controller's loader contract: given
// a query it returns the first page of matching patients, with a
// continuation for each further page.
func (s *Service) Loader() lister.LoadFunc[*Patient, Query] {
	return func(ctx context.Context, q Query) (lister.Page[*Patient], error) {
		return s.page(ctx, q, 0)
	}
}

func (s *Service) page(ctx context.Context, q Query, offset int) (lister.Page[*Patient], error) {
	limit := q.PageSize
	if limit <= 0 {
		limit = DefaultPageSize
	}

	// Fetch one row beyond the page: its presence is what decides whether a
	// continuation exists.
	rows, err := s.store.List(ctx, ListOptions{
		Search: q.Search,
		Status: q.Filter.status(),
		Limit:  limit + 1,
		Offset: offset,
	})
	if err != nil {
		return lister.Page[*Patient]{}, err
	}

	page := lister.Page[*Patient]{Items: rows}
	if len(rows) > limit {
		page.Items = rows[:limit]
		page.Next = func(ctx context.Context) (lister.Page[*Patient], error) {
			return s.page(ctx, q, offset+limit)
		}
	}
	for _, p := range page.Items {
		s.cache.Add(p.ID, p)
	}
	return page, nil
}
