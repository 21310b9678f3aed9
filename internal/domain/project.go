package domain

// Project is a read model supplying a group of grid rows.
type Project struct {
	ID     int64
	Name   string
	Status string
	Area   string
}

// Project statuses.
const (
	ProjectStatusActive   = "active"
	ProjectStatusArchived = "archived"
)

// Task is a read model supplying one grid row.
type Task struct {
	ID        int64
	ProjectID int64
	Name      string
}

// String returns the task name for display purposes.
func (t Task) String() string {
	return t.Name
}

// ProjectFilter carries the already-chosen row filters through to the provider.
type ProjectFilter struct {
	Status string
	Area   string
	Search string
}

// DateRestrictionConfig limits which days may be edited relative to today.
type DateRestrictionConfig struct {
	Enabled           bool `yaml:"enabled"`
	PastDaysAllowed   int  `yaml:"past_days_allowed"`
	FutureDaysAllowed int  `yaml:"future_days_allowed"`
}
