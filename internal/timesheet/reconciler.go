package timesheet

import (
	"log/slog"
	"sync/atomic"

	"timegrid/internal/domain"
	"timegrid/internal/errors"
	"timegrid/internal/logging"
)

// WriteOp names the store call a settled write made.
type WriteOp string

const (
	OpCreate WriteOp = "create"
	OpUpdate WriteOp = "update"
	OpDelete WriteOp = "delete"
)

// WriteResult is the outcome of one write. Entry is nil for a delete.
type WriteResult struct {
	Key   domain.CellKey
	Epoch uint64
	Op    WriteOp
	Entry *domain.DurableEntry
	Err   error
}

// Reconciler merges settled writes into the cell store and moves the cell's
// save status. Results from an earlier epoch are discarded untouched.
type Reconciler struct {
	cells  *CellStore
	status *StatusTracker
	logger *slog.Logger
	epoch  atomic.Uint64
}

// NewReconciler creates a Reconciler over cells and status.
func NewReconciler(cells *CellStore, status *StatusTracker, logger *slog.Logger) *Reconciler {
	if logger == nil {
		logger = logging.Discard()
	}
	return &Reconciler{cells: cells, status: status, logger: logger}
}

// Epoch returns the current generation.
func (r *Reconciler) Epoch() uint64 {
	return r.epoch.Load()
}

// NextEpoch starts a new generation and returns it. Writes dispatched
// under an older generation no longer reach the store.
func (r *Reconciler) NextEpoch() uint64 {
	return r.epoch.Add(1)
}

// Apply merges res and reports whether it was current. On failure the
// optimistic value stays in place and only the status changes.
func (r *Reconciler) Apply(res WriteResult) bool {
	if res.Epoch != r.Epoch() {
		r.logger.Debug("autosave_stale_result", "cell", res.Key.String(), "op", string(res.Op),
			"epoch", res.Epoch, "current_epoch", r.Epoch())
		return false
	}

	if res.Err != nil {
		appErr := errors.ClassifyWriteError(string(res.Op), res.Err)
		rateLimited := appErr.IsType(errors.ErrorTypeRateLimit)
		r.logger.Warn("autosave_failed", "cell", res.Key.String(), "op", string(res.Op),
			"rate_limited", rateLimited, "error", res.Err.Error())
		r.status.MarkError(res.Key, rateLimited)
		return true
	}

	r.cells.ApplyServerResult(res.Key, res.Entry)
	r.checkCell(res)
	r.status.MarkSaved(res.Key)
	r.logger.Debug("autosave_saved", "cell", res.Key.String(), "op", string(res.Op))
	return true
}

// checkCell logs when a merged cell holds anything but its one durable entry
// (or nothing after a delete).
func (r *Reconciler) checkCell(res WriteResult) {
	durable, pending := 0, 0
	for _, e := range r.cells.Entries(res.Key) {
		if domain.IsDurable(e) {
			durable++
		} else {
			pending++
		}
	}

	want := 1
	if res.Entry == nil {
		want = 0
	}
	if durable != want || pending != 0 {
		r.logger.Error("reconcile_cell_mismatch", "cell", res.Key.String(), "op", string(res.Op),
			"durable", durable, "pending", pending)
	}
}
