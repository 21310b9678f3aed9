package timesheet

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"timegrid/internal/calendar"
	"timegrid/internal/domain"
	"timegrid/internal/errors"
	"timegrid/internal/logging"
	"timegrid/internal/validation"
)

// Dependencies are the external collaborators of an Editor.
type Dependencies struct {
	Projects     ProjectProvider
	Store        TimesheetStore
	Restrictions RestrictionConfigProvider
}

// Options configures an Editor.
type Options struct {
	UserID       int64
	Clock        calendar.Clock
	Logger       *slog.Logger
	Debounce     time.Duration
	Cooldown     time.Duration
	Display      StatusDisplay
	WriteTimeout time.Duration
}

// DefaultOptions returns the reference timings for userID.
func DefaultOptions(userID int64) Options {
	return Options{
		UserID:   userID,
		Debounce: DefaultDebounce,
		Cooldown: DefaultCooldown,
		Display: StatusDisplay{
			Saved:     DefaultSavedDisplay,
			Error:     DefaultErrorDisplay,
			RateLimit: DefaultRateLimitDisplay,
		},
		WriteTimeout: 30 * time.Second,
	}
}

// Editor is the grid's editing engine. OnEdit is the single entry point for
// keystrokes; the accessors serve rendering.
type Editor struct {
	deps   Dependencies
	opts   Options
	logger *slog.Logger

	cells      *CellStore
	scheduler  *Scheduler
	status     *StatusTracker
	reconciler *Reconciler
	hours      *validation.HoursValidator

	mu      sync.Mutex
	grid    *Grid
	writing map[domain.CellKey]decimal.Decimal
}

// NewEditor wires an Editor. No week is loaded until LoadWeek.
func NewEditor(deps Dependencies, opts Options) *Editor {
	if opts.Clock == nil {
		opts.Clock = calendar.SystemClock{}
	}
	if opts.Logger == nil {
		opts.Logger = logging.Discard()
	}
	if deps.Restrictions == nil {
		deps.Restrictions = NoRestriction{}
	}

	cells := NewCellStore()
	status := NewStatusTracker(opts.Clock, opts.Display)
	return &Editor{
		deps:   deps,
		opts:   opts,
		logger: opts.Logger,
		cells:  cells,
		scheduler: NewScheduler(SchedulerOpts{
			Clock:    opts.Clock,
			Debounce: opts.Debounce,
			Cooldown: opts.Cooldown,
			Logger:   opts.Logger,
		}),
		status:     status,
		reconciler: NewReconciler(cells, status, opts.Logger),
		hours:      validation.NewHoursValidator(),
		writing:    make(map[domain.CellKey]decimal.Decimal),
	}
}

// LoadWeek builds the grid for the seven days from anchor and seeds the
// cells from the store. Armed timers of the previous week are cancelled and
// results of its in-flight writes will be discarded.
func (e *Editor) LoadWeek(ctx context.Context, filters domain.ProjectFilter, anchor any) error {
	e.mu.Lock()
	e.scheduler.CancelAll()
	epoch := e.reconciler.NextEpoch()
	e.status.Reset()
	// Edits are refused until the new week is seeded.
	e.grid = nil
	e.cells.Seed(nil)
	e.writing = make(map[domain.CellKey]decimal.Decimal)
	e.mu.Unlock()

	grid, err := BuildGrid(ctx, e.deps.Projects, filters, anchor)
	if err != nil {
		return err
	}
	entries, err := e.deps.Store.ListByRange(ctx, e.opts.UserID, grid.StartDate(), grid.EndDate())
	if err != nil {
		return errors.WrapError(err, errors.ErrorTypeDatabase, "failed to load time entries")
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if epoch != e.reconciler.Epoch() {
		// A later LoadWeek owns the editor now.
		return nil
	}
	e.grid = grid
	e.cells.Seed(entries)
	e.writing = make(map[domain.CellKey]decimal.Decimal)

	e.logger.Debug("week_loaded", "start", grid.StartDate(), "tasks", grid.TaskCount(), "cells", e.cells.Len())
	return nil
}

// OnEdit applies raw, the text typed into the cell (taskID, date).
// Rejected input is reported as an error and leaves the engine running.
func (e *Editor) OnEdit(ctx context.Context, taskID int64, date any, raw string) error {
	key := domain.NewCellKey(taskID, date)

	restriction, err := e.deps.Restrictions.DateRestriction(ctx)
	if err != nil {
		return errors.WrapError(err, errors.ErrorTypeRestriction, "failed to read date restriction")
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if e.grid == nil {
		return errors.NewInvalidInputError("week", "", "no week is loaded")
	}
	if !key.IsValid() {
		return errors.NewInvalidInputError("date", date, "not a calendar day")
	}
	projectID, ok := e.grid.TaskProject(taskID)
	if !ok {
		return errors.NewNotFoundError("task", key.String())
	}
	if !e.grid.HasDay(key.Date) {
		return errors.NewInvalidInputError("date", date, "not a day of the loaded week")
	}

	e.status.CancelDisplay(key)

	hours, err := e.hours.ParseHours(raw)
	if err != nil {
		e.scheduler.Cancel(key)
		e.cells.DiscardPending(key)
		e.status.MarkError(key, false)
		return errors.NewValidationError("invalid hours", err).WithContext("cell", key.String())
	}

	if !hours.IsZero() {
		policy := validation.NewDateRestrictionPolicy(restriction, e.opts.Clock)
		if decision := policy.IsAllowed(key.Date); !decision.IsValid {
			e.status.MarkError(key, false)
			return errors.NewRestrictionError(key.Date, decision.Reason)
		}
	}

	// Skip the write when the store already holds, or is being sent, this value.
	target, writing := e.writing[key]
	if !writing {
		target = e.cells.Confirmed(key)
	}
	if hours.Equal(target) {
		e.scheduler.Cancel(key)
		if writing {
			e.cells.ApplyOptimistic(key, hours, e.baseEntry(key, projectID))
		} else {
			e.cells.DiscardPending(key)
		}
		e.status.Rearm(key)
		return nil
	}

	e.cells.ApplyOptimistic(key, hours, e.baseEntry(key, projectID))
	if e.scheduler.InFlight(key) {
		e.logger.Debug("autosave_behind_write", "cell", key.String())
	}
	e.scheduler.Schedule(key, e.writeFunc(key, projectID, hours, e.reconciler.Epoch()))
	return nil
}

func (e *Editor) baseEntry(key domain.CellKey, projectID int64) domain.TimeEntry {
	base := domain.TimeEntry{
		UserID:    e.opts.UserID,
		ProjectID: projectID,
		TaskID:    key.TaskID,
		Date:      key.Date,
	}
	if durable, ok := e.cells.DurableFor(key); ok {
		base.Description = durable.Description
	}
	return base
}

// writeFunc decides create, update or delete when the timer fires, from the
// durable id known at that moment.
func (e *Editor) writeFunc(key domain.CellKey, projectID int64, hours decimal.Decimal, epoch uint64) WriteFunc {
	return func(ctx context.Context) {
		e.mu.Lock()
		if epoch != e.reconciler.Epoch() {
			e.mu.Unlock()
			return
		}

		durable, hasDurable := e.cells.DurableFor(key)
		var op WriteOp
		switch {
		case hours.IsZero() && !hasDurable:
			// Never became durable; nothing to delete.
			e.cells.DiscardPending(key)
			e.status.Rearm(key)
			e.mu.Unlock()
			return
		case hours.IsZero():
			op = OpDelete
		case hasDurable:
			op = OpUpdate
		default:
			op = OpCreate
		}

		values := e.baseEntry(key, projectID)
		values.Hours = hours
		payload, err := domain.NewEntryPayload(values)
		if err != nil {
			e.status.MarkError(key, false)
			e.mu.Unlock()
			return
		}
		e.writing[key] = hours
		e.status.MarkSaving(key)
		e.mu.Unlock()

		res := WriteResult{Key: key, Epoch: epoch, Op: op}
		res.Entry, res.Err = e.send(ctx, op, durable.ID, payload)

		e.mu.Lock()
		defer e.mu.Unlock()
		if epoch == e.reconciler.Epoch() {
			delete(e.writing, key)
		}
		e.reconciler.Apply(res)
	}
}

func (e *Editor) send(ctx context.Context, op WriteOp, id int64, payload domain.EntryPayload) (*domain.DurableEntry, error) {
	if e.opts.WriteTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.opts.WriteTimeout)
		defer cancel()
	}

	switch op {
	case OpCreate:
		entry, err := e.deps.Store.Create(ctx, payload)
		if err != nil {
			return nil, err
		}
		return &entry, nil
	case OpUpdate:
		entry, err := e.deps.Store.Update(ctx, id, payload)
		if err != nil {
			return nil, err
		}
		return &entry, nil
	default:
		return nil, e.deps.Store.Delete(ctx, id)
	}
}

// Grid returns the loaded week, or nil.
func (e *Editor) Grid() *Grid {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.grid
}

// HoursFor returns what the cell shows.
func (e *Editor) HoursFor(taskID int64, date any) decimal.Decimal {
	return e.cells.HoursFor(taskID, date)
}

// EntryIDFor returns the durable id of the cell, if any.
func (e *Editor) EntryIDFor(taskID int64, date any) (int64, bool) {
	return e.cells.EntryIDFor(taskID, date)
}

// DayTotal sums durable hours on date.
func (e *Editor) DayTotal(date any) decimal.Decimal {
	return e.cells.DayTotal(date)
}

// TaskTotal sums durable hours of taskID in the loaded week.
func (e *Editor) TaskTotal(taskID int64) decimal.Decimal {
	return e.cells.TaskTotal(taskID)
}

// SaveStatus returns the indicator state of the cell.
func (e *Editor) SaveStatus(taskID int64, date any) SaveStatus {
	return e.status.Status(domain.NewCellKey(taskID, date))
}

// Flush dispatches every armed write now.
func (e *Editor) Flush() {
	e.scheduler.Flush()
}

// Wait blocks until dispatched writes have settled.
func (e *Editor) Wait() {
	e.scheduler.Wait()
}

// Close cancels armed timers and waits for outstanding writes.
func (e *Editor) Close() {
	e.scheduler.Close()
	e.status.Reset()
}
