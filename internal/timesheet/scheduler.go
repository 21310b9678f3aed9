package timesheet

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"timegrid/internal/calendar"
	"timegrid/internal/domain"
	"timegrid/internal/logging"
)

// Default autosave timings.
const (
	DefaultDebounce = 2 * time.Second
	DefaultCooldown = 1 * time.Second
)

// WriteFunc performs the write for one cell. It runs on its own goroutine
// and returns once the write has settled.
type WriteFunc func(ctx context.Context)

type scheduled struct {
	timer calendar.Timer
	write WriteFunc
}

// Scheduler debounces writes per cell and keeps at most one write per cell
// outstanding. A timer that fires while its cell is still in flight, or
// cooling down after settling, is dropped; the next edit schedules again.
type Scheduler struct {
	clock    calendar.Clock
	debounce time.Duration
	cooldown time.Duration
	logger   *slog.Logger

	ctx    context.Context
	cancel context.CancelFunc

	mu      sync.Mutex
	timers  map[domain.CellKey]*scheduled
	pending map[domain.CellKey]struct{}
	wg      sync.WaitGroup
}

// SchedulerOpts configures a Scheduler.
type SchedulerOpts struct {
	Clock    calendar.Clock
	Debounce time.Duration
	Cooldown time.Duration
	Logger   *slog.Logger
}

// NewScheduler creates a Scheduler. A zero debounce takes the default; a
// zero cooldown releases a cell as soon as its write settles.
func NewScheduler(opts SchedulerOpts) *Scheduler {
	if opts.Clock == nil {
		opts.Clock = calendar.SystemClock{}
	}
	if opts.Debounce <= 0 {
		opts.Debounce = DefaultDebounce
	}
	if opts.Logger == nil {
		opts.Logger = logging.Discard()
	}

	ctx, cancel := context.WithCancel(context.Background())
	return &Scheduler{
		clock:    opts.Clock,
		debounce: opts.Debounce,
		cooldown: opts.Cooldown,
		logger:   opts.Logger,
		ctx:      ctx,
		cancel:   cancel,
		timers:   make(map[domain.CellKey]*scheduled),
		pending:  make(map[domain.CellKey]struct{}),
	}
}

// Schedule replaces any timer armed for key with a new one that runs write
// after the debounce delay.
func (s *Scheduler) Schedule(key domain.CellKey, write WriteFunc) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if prev, ok := s.timers[key]; ok {
		prev.timer.Stop()
	}
	entry := &scheduled{write: write}
	s.timers[key] = entry
	entry.timer = s.clock.AfterFunc(s.debounce, func() { s.fire(key, entry) })
}

// Cancel disarms the timer for key. An in-flight write is not affected.
func (s *Scheduler) Cancel(key domain.CellKey) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if entry, ok := s.timers[key]; ok {
		entry.timer.Stop()
		delete(s.timers, key)
	}
}

// CancelAll disarms every timer.
func (s *Scheduler) CancelAll() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for key, entry := range s.timers {
		entry.timer.Stop()
		delete(s.timers, key)
	}
}

// scheduled reports whether a timer is armed for key.
func (s *Scheduler) scheduled(key domain.CellKey) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.timers[key]
	return ok
}

// InFlight reports whether a write for key is outstanding or cooling down.
func (s *Scheduler) InFlight(key domain.CellKey) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.pending[key]
	return ok
}

// Flush fires every armed timer now.
func (s *Scheduler) Flush() {
	s.mu.Lock()
	due := make(map[domain.CellKey]*scheduled, len(s.timers))
	for key, entry := range s.timers {
		if entry.timer.Stop() {
			due[key] = entry
		}
	}
	s.mu.Unlock()

	for key, entry := range due {
		s.fire(key, entry)
	}
}

// Wait blocks until every dispatched write has settled.
func (s *Scheduler) Wait() {
	s.wg.Wait()
}

// Close disarms every timer, waits for outstanding writes and cancels the
// context they run under.
func (s *Scheduler) Close() {
	s.CancelAll()
	s.Wait()
	s.cancel()
}

func (s *Scheduler) fire(key domain.CellKey, entry *scheduled) {
	s.mu.Lock()
	if s.timers[key] != entry {
		// Superseded or cancelled after the timer had already started.
		s.mu.Unlock()
		return
	}
	delete(s.timers, key)

	if _, busy := s.pending[key]; busy {
		s.mu.Unlock()
		s.logger.Debug("autosave_dropped", "cell", key.String())
		return
	}
	s.pending[key] = struct{}{}
	s.wg.Add(1)
	s.mu.Unlock()

	s.logger.Debug("autosave_dispatch", "cell", key.String())
	go func() {
		defer s.wg.Done()
		entry.write(s.ctx)
		s.settle(key)
	}()
}

func (s *Scheduler) settle(key domain.CellKey) {
	if s.cooldown <= 0 {
		s.release(key)
		return
	}
	s.clock.AfterFunc(s.cooldown, func() { s.release(key) })
}

func (s *Scheduler) release(key domain.CellKey) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.pending, key)
}
