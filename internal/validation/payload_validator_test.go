package validation

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"timegrid/internal/domain"
)

func validPayload() domain.EntryPayload {
	return domain.EntryPayload{
		UserID: 1, ProjectID: 2, TaskID: 3,
		Year: 2024, Month: 3, Day: 6,
		Hours: decimal.NewFromInt(4),
	}
}

func TestPayloadValidator_ValidateEntryPayload(t *testing.T) {
	pv := NewPayloadValidator()

	tests := []struct {
		name   string
		mutate func(p *domain.EntryPayload)
		field  string
	}{
		{name: "valid payload"},
		{name: "zero user", mutate: func(p *domain.EntryPayload) { p.UserID = 0 }, field: "user_id"},
		{name: "zero project", mutate: func(p *domain.EntryPayload) { p.ProjectID = 0 }, field: "project_id"},
		{name: "negative task", mutate: func(p *domain.EntryPayload) { p.TaskID = -3 }, field: "task_id"},
		{name: "impossible date", mutate: func(p *domain.EntryPayload) { p.Month = 2; p.Day = 30 }, field: "date"},
		{name: "hours over a day", mutate: func(p *domain.EntryPayload) { p.Hours = decimal.NewFromInt(25) }, field: "hours"},
		{name: "hours off the quarter", mutate: func(p *domain.EntryPayload) { p.Hours = decimal.RequireFromString("1.1") }, field: "hours"},
		{name: "description too long", mutate: func(p *domain.EntryPayload) { p.Description = strings.Repeat("x", 1001) }, field: "description"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := validPayload()
			if tt.mutate != nil {
				tt.mutate(&p)
			}
			err := pv.ValidateEntryPayload(p)
			if tt.field == "" {
				assert.NoError(t, err)
				return
			}
			var ve *ValidationError
			require.ErrorAs(t, err, &ve)
			assert.NotEmpty(t, ve.GetFieldErrors(tt.field))
		})
	}
}

func TestPayloadValidator_ValidateRange(t *testing.T) {
	pv := NewPayloadValidator()

	assert.NoError(t, pv.ValidateRange("2024-03-04", "2024-03-10"))
	assert.NoError(t, pv.ValidateRange("2024-03-04", "2024-03-04"))
	assert.Error(t, pv.ValidateRange("2024-03-10", "2024-03-04"))
	assert.Error(t, pv.ValidateRange("", "2024-03-04"))
}

func TestPayloadValidator_ValidateIDAndName(t *testing.T) {
	pv := NewPayloadValidator()

	assert.NoError(t, pv.ValidateID("task_id", 1))
	assert.Error(t, pv.ValidateID("task_id", 0))

	assert.NoError(t, pv.ValidateName("name", "Apollo"))
	assert.Error(t, pv.ValidateName("name", "   "))
	assert.Error(t, pv.ValidateName("name", strings.Repeat("a", 256)))
}
