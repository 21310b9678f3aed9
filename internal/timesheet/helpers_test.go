package timesheet

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"timegrid/internal/calendar"
	"timegrid/internal/domain"
)

const (
	userID    = int64(1)
	projectA  = int64(1)
	projectB  = int64(2)
	taskT1    = int64(11)
	taskT2    = int64(12)
	weekStart = "2024-03-04"
)

func hours(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

type fakeProvider struct {
	projects []domain.Project
	tasks    map[int64][]domain.Task
	err      error
}

func newFakeProvider() *fakeProvider {
	return &fakeProvider{
		projects: []domain.Project{
			{ID: projectA, Name: "Apollo", Status: domain.ProjectStatusActive},
			{ID: projectB, Name: "Gemini", Status: domain.ProjectStatusActive},
		},
		tasks: map[int64][]domain.Task{
			projectA: {
				{ID: taskT1, ProjectID: projectA, Name: "Design"},
				{ID: taskT2, ProjectID: projectA, Name: "Build"},
			},
		},
	}
}

func (p *fakeProvider) ListProjects(ctx context.Context, filters domain.ProjectFilter) ([]domain.Project, error) {
	if p.err != nil {
		return nil, p.err
	}
	return p.projects, nil
}

func (p *fakeProvider) ListTasks(ctx context.Context, projectID int64) ([]domain.Task, error) {
	return p.tasks[projectID], nil
}

type storeCall struct {
	Op      WriteOp
	ID      int64
	Payload domain.EntryPayload
}

// fakeStore is an in-memory timesheet store. It inserts without upserting so
// duplicate durable entries stay visible to tests.
type fakeStore struct {
	mu      sync.Mutex
	nextID  int64
	entries map[int64]domain.DurableEntry
	calls   []storeCall
	errs    []error

	blocking bool
	started  chan struct{}
	release  chan struct{}
}

func newFakeStore(seed ...domain.DurableEntry) *fakeStore {
	s := &fakeStore{
		nextID:  100,
		entries: make(map[int64]domain.DurableEntry),
		started: make(chan struct{}),
		release: make(chan struct{}),
	}
	for _, e := range seed {
		s.entries[e.ID] = e
	}
	return s
}

// block makes every later write wait for unblockOne.
func (s *fakeStore) block() {
	s.setBlocking(true)
}

func (s *fakeStore) setBlocking(blocking bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.blocking = blocking
}

// failNext queues err as the result of the next write.
func (s *fakeStore) failNext(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.errs = append(s.errs, err)
}

func (s *fakeStore) awaitCall(t *testing.T) {
	t.Helper()
	select {
	case <-s.started:
	case <-time.After(2 * time.Second):
		t.Fatal("no write reached the store")
	}
}

func (s *fakeStore) unblockOne(t *testing.T) {
	t.Helper()
	select {
	case s.release <- struct{}{}:
	case <-time.After(2 * time.Second):
		t.Fatal("no write waiting to be released")
	}
}

func (s *fakeStore) enter(call storeCall) error {
	s.mu.Lock()
	s.calls = append(s.calls, call)
	blocking := s.blocking
	s.mu.Unlock()

	if blocking {
		s.started <- struct{}{}
		<-s.release
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.errs) > 0 {
		err := s.errs[0]
		s.errs = s.errs[1:]
		return err
	}
	return nil
}

func (s *fakeStore) Create(ctx context.Context, payload domain.EntryPayload) (domain.DurableEntry, error) {
	if err := s.enter(storeCall{Op: OpCreate, Payload: payload}); err != nil {
		return domain.DurableEntry{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	entry := domain.DurableEntry{ID: s.nextID, TimeEntry: payload.TimeEntry()}
	s.entries[entry.ID] = entry
	return entry, nil
}

func (s *fakeStore) Update(ctx context.Context, id int64, payload domain.EntryPayload) (domain.DurableEntry, error) {
	if err := s.enter(storeCall{Op: OpUpdate, ID: id, Payload: payload}); err != nil {
		return domain.DurableEntry{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	entry := domain.DurableEntry{ID: id, TimeEntry: payload.TimeEntry()}
	s.entries[id] = entry
	return entry, nil
}

func (s *fakeStore) Delete(ctx context.Context, id int64) error {
	if err := s.enter(storeCall{Op: OpDelete, ID: id}); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, id)
	return nil
}

func (s *fakeStore) ListByRange(ctx context.Context, user int64, startDate, endDate string) ([]domain.DurableEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []domain.DurableEntry
	for _, e := range s.entries {
		if e.UserID == user && e.Date >= startDate && e.Date <= endDate {
			out = append(out, e)
		}
	}
	return out, nil
}

func (s *fakeStore) Calls() []storeCall {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]storeCall(nil), s.calls...)
}

// DurableCount counts stored entries for a cell.
func (s *fakeStore) DurableCount(taskID int64, date string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, e := range s.entries {
		if e.TaskID == taskID && e.Date == date {
			n++
		}
	}
	return n
}

type staticRestriction domain.DateRestrictionConfig

func (r staticRestriction) DateRestriction(context.Context) (domain.DateRestrictionConfig, error) {
	return domain.DateRestrictionConfig(r), nil
}

func durable(id, taskID int64, date, h string) domain.DurableEntry {
	return domain.DurableEntry{ID: id, TimeEntry: domain.TimeEntry{
		UserID: userID, ProjectID: projectA, TaskID: taskID, Date: date, Hours: hours(h),
	}}
}

type harness struct {
	clock  *calendar.FakeClock
	store  *fakeStore
	editor *Editor
}

// newHarness loads the week of 2024-03-04 with today set to now.
func newHarness(t *testing.T, now time.Time, restriction domain.DateRestrictionConfig, seed ...domain.DurableEntry) *harness {
	t.Helper()

	clock := calendar.NewFakeClock(now)
	store := newFakeStore(seed...)
	opts := DefaultOptions(userID)
	opts.Clock = clock

	editor := NewEditor(Dependencies{
		Projects:     newFakeProvider(),
		Store:        store,
		Restrictions: staticRestriction(restriction),
	}, opts)
	t.Cleanup(editor.Close)

	require.NoError(t, editor.LoadWeek(context.Background(), domain.ProjectFilter{}, weekStart))
	return &harness{clock: clock, store: store, editor: editor}
}

func wednesday() time.Time {
	return time.Date(2024, 3, 6, 10, 0, 0, 0, time.Local)
}

func (h *harness) edit(t *testing.T, taskID int64, date, raw string) {
	t.Helper()
	require.NoError(t, h.editor.OnEdit(context.Background(), taskID, date, raw))
}

// settle fires due timers, waits for the writes and lets cooldowns pass.
func (h *harness) settle(d time.Duration) {
	h.clock.Advance(d)
	h.editor.Wait()
	h.clock.Advance(DefaultCooldown)
}

// gatedStore holds ListByRange open once armed, so a week switch can
// be observed halfway.
type gatedStore struct {
	*fakeStore
	mu      sync.Mutex
	armed   bool
	entered chan struct{}
	proceed chan struct{}
}

func newGatedStore(seed ...domain.DurableEntry) *gatedStore {
	return &gatedStore{
		fakeStore: newFakeStore(seed...),
		entered:   make(chan struct{}),
		proceed:   make(chan struct{}),
	}
}

func (s *gatedStore) arm() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.armed = true
}

func (s *gatedStore) ListByRange(ctx context.Context, user int64, startDate, endDate string) ([]domain.DurableEntry, error) {
	s.mu.Lock()
	armed := s.armed
	s.armed = false
	s.mu.Unlock()

	if armed {
		s.entered <- struct{}{}
		<-s.proceed
	}
	return s.fakeStore.ListByRange(ctx, user, startDate, endDate)
}
