package timesheet

import (
	"sync"

	"github.com/shopspring/decimal"

	"timegrid/internal/calendar"
	"timegrid/internal/domain"
)

type cellState struct {
	// durable is the local view of the store's entry. Its hours drop to zero
	// in place while a deletion is outstanding.
	durable *domain.DurableEntry
	// confirmed is the hours value the store last acknowledged.
	confirmed decimal.Decimal
	pending   []domain.PendingEntry
}

func (c *cellState) empty() bool {
	return c.durable == nil && len(c.pending) == 0
}

// CellStore holds the entries of the loaded week, durable and pending.
// Totals count durable entries only; HoursFor prefers the newest
// placeholder so the cell shows the latest keystroke.
type CellStore struct {
	mu    sync.RWMutex
	cells map[domain.CellKey]*cellState
}

// NewCellStore creates an empty store.
func NewCellStore() *CellStore {
	return &CellStore{cells: make(map[domain.CellKey]*cellState)}
}

// Seed replaces the contents of the store with entries from the timesheet store.
func (s *CellStore) Seed(entries []domain.DurableEntry) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cells = make(map[domain.CellKey]*cellState, len(entries))
	for _, e := range entries {
		entry := e
		s.cells[entry.Cell()] = &cellState{durable: &entry, confirmed: entry.Hours}
	}
}

// HoursFor returns what the cell currently shows.
func (s *CellStore) HoursFor(taskID int64, date any) decimal.Decimal {
	s.mu.RLock()
	defer s.mu.RUnlock()

	cell, ok := s.cells[domain.NewCellKey(taskID, date)]
	if !ok {
		return decimal.Zero
	}
	if n := len(cell.pending); n > 0 {
		return cell.pending[n-1].Hours
	}
	if cell.durable != nil {
		return cell.durable.Hours
	}
	return decimal.Zero
}

// EntryIDFor returns the durable id of the cell, if it has one.
func (s *CellStore) EntryIDFor(taskID int64, date any) (int64, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	cell, ok := s.cells[domain.NewCellKey(taskID, date)]
	if !ok || cell.durable == nil {
		return 0, false
	}
	return cell.durable.ID, true
}

// DurableFor returns a copy of the cell's durable entry.
func (s *CellStore) DurableFor(key domain.CellKey) (domain.DurableEntry, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	cell, ok := s.cells[key]
	if !ok || cell.durable == nil {
		return domain.DurableEntry{}, false
	}
	return *cell.durable, true
}

// Confirmed returns the hours the store last acknowledged for the cell,
// zero when it holds no durable entry.
func (s *CellStore) Confirmed(key domain.CellKey) decimal.Decimal {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if cell, ok := s.cells[key]; ok && cell.durable != nil {
		return cell.confirmed
	}
	return decimal.Zero
}

// DayTotal sums durable hours on date.
func (s *CellStore) DayTotal(date any) decimal.Decimal {
	day := calendar.Normalize(date)
	s.mu.RLock()
	defer s.mu.RUnlock()

	total := decimal.Zero
	for key, cell := range s.cells {
		if key.Date == day && cell.durable != nil {
			total = total.Add(cell.durable.Hours)
		}
	}
	return total
}

// TaskTotal sums durable hours of taskID across the week.
func (s *CellStore) TaskTotal(taskID int64) decimal.Decimal {
	s.mu.RLock()
	defer s.mu.RUnlock()

	total := decimal.Zero
	for key, cell := range s.cells {
		if key.TaskID == taskID && cell.durable != nil {
			total = total.Add(cell.durable.Hours)
		}
	}
	return total
}

// Entries returns the cell's durable entry followed by its placeholders.
func (s *CellStore) Entries(key domain.CellKey) []domain.Entry {
	s.mu.RLock()
	defer s.mu.RUnlock()

	cell, ok := s.cells[key]
	if !ok {
		return nil
	}
	entries := make([]domain.Entry, 0, 1+len(cell.pending))
	if cell.durable != nil {
		entries = append(entries, *cell.durable)
	}
	for _, p := range cell.pending {
		entries = append(entries, p)
	}
	return entries
}

// ApplyOptimistic records a keystroke. Existing placeholders for the cell
// are dropped; a non-zero value gets a fresh placeholder built from base,
// and a zero value clears the durable hours until the deletion is confirmed.
func (s *CellStore) ApplyOptimistic(key domain.CellKey, hours decimal.Decimal, base domain.TimeEntry) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cell := s.cell(key)
	cell.pending = nil

	if hours.IsPositive() {
		values := base
		values.TaskID = key.TaskID
		values.Date = key.Date
		values.Hours = hours
		cell.pending = append(cell.pending, domain.NewPendingEntry(values))
	} else if cell.durable != nil {
		cell.durable.Hours = decimal.Zero
	}
	s.prune(key, cell)
}

// ApplyServerResult merges a settled write. Every placeholder for the cell
// goes, including ones typed while the write was in flight. A nil result
// confirms a deletion.
func (s *CellStore) ApplyServerResult(key domain.CellKey, result *domain.DurableEntry) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cell := s.cell(key)
	cell.pending = nil
	if result == nil {
		cell.durable = nil
		cell.confirmed = decimal.Zero
	} else {
		entry := *result
		cell.durable = &entry
		cell.confirmed = entry.Hours
	}
	s.prune(key, cell)
}

// DiscardPending drops the cell's placeholders and restores the durable
// hours to the last acknowledged value.
func (s *CellStore) DiscardPending(key domain.CellKey) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cell, ok := s.cells[key]
	if !ok {
		return
	}
	cell.pending = nil
	if cell.durable != nil {
		cell.durable.Hours = cell.confirmed
	}
	s.prune(key, cell)
}

// Len returns the number of cells holding any entry.
func (s *CellStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.cells)
}

func (s *CellStore) cell(key domain.CellKey) *cellState {
	cell, ok := s.cells[key]
	if !ok {
		cell = &cellState{}
		s.cells[key] = cell
	}
	return cell
}

func (s *CellStore) prune(key domain.CellKey, cell *cellState) {
	if cell.empty() {
		delete(s.cells, key)
	}
}
