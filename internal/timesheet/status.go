package timesheet

import (
	"sync"
	"time"

	"timegrid/internal/calendar"
	"timegrid/internal/domain"
)

// SaveStatus is the indicator shown next to a cell.
type SaveStatus int

const (
	StatusNone SaveStatus = iota
	StatusSaving
	StatusSaved
	StatusError
)

func (s SaveStatus) String() string {
	switch s {
	case StatusNone:
		return "none"
	case StatusSaving:
		return "saving"
	case StatusSaved:
		return "saved"
	case StatusError:
		return "error"
	default:
		return "unknown"
	}
}

// Default display windows.
const (
	DefaultSavedDisplay     = 2 * time.Second
	DefaultErrorDisplay     = 5 * time.Second
	DefaultRateLimitDisplay = 15 * time.Second
)

// StatusDisplay configures how long settled states stay visible.
type StatusDisplay struct {
	Saved     time.Duration
	Error     time.Duration
	RateLimit time.Duration
}

type cellStatus struct {
	status SaveStatus
	window time.Duration
	timer  calendar.Timer
}

// StatusTracker runs the per-cell state machine
// none -> saving -> saved|error -> none.
type StatusTracker struct {
	clock   calendar.Clock
	display StatusDisplay

	mu    sync.Mutex
	cells map[domain.CellKey]*cellStatus
}

// NewStatusTracker creates a tracker. Zero windows take the defaults.
func NewStatusTracker(clock calendar.Clock, display StatusDisplay) *StatusTracker {
	if clock == nil {
		clock = calendar.SystemClock{}
	}
	if display.Saved <= 0 {
		display.Saved = DefaultSavedDisplay
	}
	if display.Error <= 0 {
		display.Error = DefaultErrorDisplay
	}
	if display.RateLimit <= 0 {
		display.RateLimit = DefaultRateLimitDisplay
	}
	return &StatusTracker{
		clock:   clock,
		display: display,
		cells:   make(map[domain.CellKey]*cellStatus),
	}
}

// Status returns the current state of key.
func (t *StatusTracker) Status(key domain.CellKey) SaveStatus {
	t.mu.Lock()
	defer t.mu.Unlock()
	if cell, ok := t.cells[key]; ok {
		return cell.status
	}
	return StatusNone
}

// MarkSaving records a dispatched write.
func (t *StatusTracker) MarkSaving(key domain.CellKey) {
	t.set(key, StatusSaving, 0)
}

// MarkSaved records a successful write and arms the saved window.
func (t *StatusTracker) MarkSaved(key domain.CellKey) {
	t.set(key, StatusSaved, t.display.Saved)
}

// MarkError records a rejected edit or failed write. Rate-limited failures
// stay visible longer.
func (t *StatusTracker) MarkError(key domain.CellKey, rateLimited bool) {
	window := t.display.Error
	if rateLimited {
		window = t.display.RateLimit
	}
	t.set(key, StatusError, window)
}

// CancelDisplay stops the display timeout of key and leaves its state as is.
func (t *StatusTracker) CancelDisplay(key domain.CellKey) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if cell, ok := t.cells[key]; ok && cell.timer != nil {
		cell.timer.Stop()
		cell.timer = nil
	}
}

// Rearm restarts the display timeout of a settled cell whose timeout was
// cancelled by an edit that ended up sending nothing.
func (t *StatusTracker) Rearm(key domain.CellKey) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if cell, ok := t.cells[key]; ok && cell.timer == nil && cell.window > 0 {
		t.armLocked(key, cell)
	}
}

// Reset clears every cell.
func (t *StatusTracker) Reset() {
	t.mu.Lock()
	defer t.mu.Unlock()
	for _, cell := range t.cells {
		if cell.timer != nil {
			cell.timer.Stop()
		}
	}
	t.cells = make(map[domain.CellKey]*cellStatus)
}

func (t *StatusTracker) set(key domain.CellKey, status SaveStatus, window time.Duration) {
	t.mu.Lock()
	defer t.mu.Unlock()

	cell, ok := t.cells[key]
	if !ok {
		cell = &cellStatus{}
		t.cells[key] = cell
	}
	if cell.timer != nil {
		cell.timer.Stop()
		cell.timer = nil
	}
	cell.status = status
	cell.window = window
	if window > 0 {
		t.armLocked(key, cell)
	}
}

func (t *StatusTracker) armLocked(key domain.CellKey, cell *cellStatus) {
	var timer calendar.Timer
	timer = t.clock.AfterFunc(cell.window, func() {
		t.mu.Lock()
		defer t.mu.Unlock()
		if current, ok := t.cells[key]; ok && current == cell && cell.timer == timer {
			delete(t.cells, key)
		}
	})
	cell.timer = timer
}
