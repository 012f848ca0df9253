package usecase

import (
	"briefing-service/internal/adapters/memory"
	"briefing-service/internal/contextkeys"
	"briefing-service/internal/core/domain"
	"briefing-service/internal/core/port"
	"context"
	"sync"
	"time"
)

type fakeListings struct {
	listings []domain.Listing
	err      error
	calls    int
}

func (f *fakeListings) FetchListings(context.Context, string) ([]domain.Listing, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.listings, nil
}

type fakeCustomers struct {
	customers map[string]*domain.Customer
}

func (f *fakeCustomers) GetCustomer(_ context.Context, _, id string) (*domain.Customer, error) {
	c, ok := f.customers[id]
	if !ok {
		return nil, domain.ErrCustomerNotFound
	}
	return c, nil
}

type fakeNotifier struct {
	mu     sync.Mutex
	events []port.ViewEvent
}

func (f *fakeNotifier) Notify(_ context.Context, e port.ViewEvent) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, e)
}

type fakeEvents struct {
	published []domain.BriefingStatusChanged
	err       error
}

func (f *fakeEvents) PublishStatusChanged(_ context.Context, e domain.BriefingStatusChanged) error {
	if f.err != nil {
		return f.err
	}
	f.published = append(f.published, e)
	return nil
}

type fakeMetrics struct {
	fetchFailures   int
	publishFailures int
	statusChanges   []string
}

func (m *fakeMetrics) ObservePipelineRun(string, time.Duration, int, int) {}
func (m *fakeMetrics) StorageFailure(string)                              {}
func (m *fakeMetrics) SessionsActive(int)                                 {}
func (m *fakeMetrics) FetchFailure(string)                                { m.fetchFailures++ }
func (m *fakeMetrics) PublishFailure(string)                              { m.publishFailures++ }
func (m *fakeMetrics) BriefingStatusChanged(s string) {
	m.statusChanges = append(m.statusChanges, s)
}

// env собирает все use cases поверх адаптеров в памяти.
type env struct {
	repo      *memory.SessionRepository
	storage   *memory.BriefingStorage
	listings  *fakeListings
	customers *fakeCustomers
	notifier  *fakeNotifier
	events    *fakeEvents
	metrics   *fakeMetrics
}

func newEnv(listings ...domain.Listing) *env {
	return &env{
		repo:      memory.NewSessionRepository(time.Hour, contextkeys.LoggerFromContext(context.Background())),
		storage:   memory.NewBriefingStorage(),
		listings:  &fakeListings{listings: listings},
		customers: &fakeCustomers{customers: map[string]*domain.Customer{}},
		notifier:  &fakeNotifier{},
		events:    &fakeEvents{},
		metrics:   &fakeMetrics{},
	}
}

func (e *env) open(ctx context.Context) domain.SessionSnapshot {
	snap, err := NewOpenSessionUseCase(e.repo, e.listings, e.notifier, e.metrics).Execute(ctx, "u1", domain.RoleAdmin)
	if err != nil {
		panic(err)
	}
	return snap
}

func viewerCtx(userID string) context.Context {
	return contextkeys.ContextWithViewer(context.Background(), contextkeys.Viewer{UserID: userID, Role: domain.RoleAdmin})
}

func item(id string, fields map[string]string) domain.Listing {
	return domain.Listing{ID: domain.ListingID(id), Fields: fields}
}

func ids(listings []domain.Listing) []domain.ListingID {
	out := make([]domain.ListingID, 0, len(listings))
	for _, l := range listings {
		out = append(out, l.ID)
	}
	return out
}
