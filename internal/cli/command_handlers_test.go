package cli

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"timegrid/internal/domain"
	"timegrid/internal/errors"
)

var emptyFilter = domain.ProjectFilter{}

func TestSetCommand_CreatesUpdatesAndDeletes(t *testing.T) {
	ta := setupTestApp(t)
	ta.seedProject(t)

	out := ta.mustRun(t, "set", "1", "today", "4")
	assert.Contains(t, out, "Design 2024-03-06: 4 (saved)")
	assert.Contains(t, out, "Week total for Design: 4")

	out = ta.mustRun(t, "set", "1", "2024-03-06", "6.5")
	assert.Contains(t, out, "Design 2024-03-06: 6.5 (saved)")

	entries, err := ta.app.api.ListByRange(context.Background(), 1, "2024-03-04", "2024-03-10")
	require.NoError(t, err)
	require.Len(t, entries, 1, "an update must not create a second entry")
	assert.Equal(t, "6.5", entries[0].Hours.String())

	out = ta.mustRun(t, "set", "1", "today", "0")
	assert.Contains(t, out, "Design 2024-03-06: - (saved)")

	entries, err = ta.app.api.ListByRange(context.Background(), 1, "2024-03-04", "2024-03-10")
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestSetCommand_SeveralDays(t *testing.T) {
	ta := setupTestApp(t)
	ta.seedProject(t)

	out := ta.mustRun(t, "set", "1", "2024-03-04", "7.5", "2024-03-05", "1,25", "2024-03-06", "2.1")
	assert.Contains(t, out, "Design 2024-03-04: 7.5 (saved)")
	assert.Contains(t, out, "Design 2024-03-05: 1.25 (saved)")
	assert.Contains(t, out, "Design 2024-03-06: 2 (saved)")
	assert.Contains(t, out, "Week total for Design: 10.75")
}

func TestSetCommand_SameValueIsUnchanged(t *testing.T) {
	ta := setupTestApp(t)
	ta.seedProject(t)

	ta.mustRun(t, "set", "1", "today", "4")
	out := ta.mustRun(t, "set", "1", "today", "4")
	assert.Contains(t, out, "Design 2024-03-06: 4 (unchanged)")
}

func TestSetCommand_Rejections(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		wantMsg string
	}{
		{
			name:    "days in different weeks",
			args:    []string{"set", "1", "2024-03-08", "1", "2024-03-11", "1"},
			wantMsg: "all days must fall in the same week",
		},
		{
			name:    "missing hours for the last day",
			args:    []string{"set", "1", "today", "1", "tomorrow"},
			wantMsg: "expected <task-id>",
		},
		{
			name:    "invalid task id",
			args:    []string{"set", "abc", "today", "1"},
			wantMsg: "task-id",
		},
		{
			name:    "invalid day",
			args:    []string{"set", "1", "someday", "1"},
			wantMsg: "expected YYYY-MM-DD",
		},
		{
			name:    "unknown task",
			args:    []string{"set", "42", "today", "1"},
			wantMsg: "task not found: 42",
		},
		{
			name:    "hours out of range",
			args:    []string{"set", "1", "today", "25"},
			wantMsg: "hours has invalid range: must be between 0 and 24",
		},
		{
			name:    "hours not a number",
			args:    []string{"set", "1", "today", "four"},
			wantMsg: "hours has invalid format",
		},
		{
			name:    "day outside the editable window",
			args:    []string{"--restriction-enabled", "--past-days", "0", "--future-days", "0", "set", "1", "yesterday", "3"},
			wantMsg: "2024-03-05 is not editable: only 0 day(s) in the past may be edited",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ta := setupTestApp(t)
			ta.seedProject(t)

			_, err := ta.run(t, tt.args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantMsg)

			entries, listErr := ta.app.api.ListByRange(context.Background(), 1, "2024-03-01", "2024-03-20")
			require.NoError(t, listErr)
			assert.Empty(t, entries)
		})
	}
}

func TestSetCommand_RestrictionFile(t *testing.T) {
	ta := setupTestApp(t)
	ta.seedProject(t)

	file := filepath.Join(t.TempDir(), "restriction.yaml")
	require.NoError(t, os.WriteFile(file, []byte("enabled: true\npast_days_allowed: 1\nfuture_days_allowed: 0\n"), 0o644))

	ta.mustRun(t, "--restriction-file", file, "set", "1", "yesterday", "2")

	_, err := ta.run(t, "--restriction-file", file, "set", "1", "tomorrow", "2")
	require.Error(t, err)
	assert.True(t, errors.IsErrorType(err, errors.ErrorTypeRestriction))

	// Clearing a cell is allowed anywhere.
	ta.mustRun(t, "--restriction-file", file, "set", "1", "tomorrow", "0")
}

func TestWeekCommand_RendersGridAndTotals(t *testing.T) {
	ta := setupTestApp(t)
	ta.seedProject(t)
	ta.mustRun(t, "task", "add", "1", "Build")
	ta.mustRun(t, "project", "add", "Empty")

	ta.mustRun(t, "set", "1", "2024-03-04", "2", "2024-03-06", "4")
	ta.mustRun(t, "set", "2", "2024-03-06", "1.5")

	out := ta.mustRun(t, "week", "2024-03-07")
	lines := strings.Split(out, "\n")

	assert.Equal(t, "Week of 2024-03-04 to 2024-03-10", lines[0])
	assert.Contains(t, lines[1], "Mon 04")
	assert.Contains(t, lines[1], "Sun 10")
	assert.Contains(t, out, "Apollo\n")
	assert.Contains(t, out, "Empty\n  (no tasks, add one with: task add 2 <name>)")

	design := lineWith(lines, "Design [1]")
	assert.Equal(t, []string{"Design", "[1]", "2", "-", "4", "-", "-", "-", "-", "6"}, strings.Fields(design))

	build := lineWith(lines, "Build [2]")
	assert.Equal(t, []string{"Build", "[2]", "-", "-", "1.5", "-", "-", "-", "-", "1.5"}, strings.Fields(build))

	total := lines[len(lines)-2]
	assert.Equal(t, []string{"Total", "2", "-", "5.5", "-", "-", "-", "-", "7.5"}, strings.Fields(total))
}

func TestWeekCommand_Filters(t *testing.T) {
	ta := setupTestApp(t)
	ta.seedProject(t)
	ta.mustRun(t, "project", "add", "Marketing site", "--area", "marketing")

	out := ta.mustRun(t, "week", "--area", "marketing")
	assert.Contains(t, out, "Marketing site")
	assert.NotContains(t, out, "Apollo")

	out = ta.mustRun(t, "week", "--search", "nothing")
	assert.Contains(t, out, "No projects match the filters")
}

func TestWeekCommand_FromDate(t *testing.T) {
	ta := setupTestApp(t)

	out := ta.mustRun(t, "week", "2024-03-06", "--from-date")
	assert.True(t, strings.HasPrefix(out, "Week of 2024-03-06 to 2024-03-12\n"))
}

func TestWeekCommand_InvalidDate(t *testing.T) {
	ta := setupTestApp(t)

	_, err := ta.run(t, "week", "2024-02-30")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to show week")
}

func TestProjectListCommand(t *testing.T) {
	ta := setupTestApp(t)
	ta.seedProject(t)
	ta.mustRun(t, "task", "add", "1", "Code", "review")
	ta.mustRun(t, "project", "add", "Hermes")

	out := ta.mustRun(t, "project", "list")
	assert.Equal(t, "[1] Apollo (active) area=engineering\n"+
		"    [1] Design\n"+
		"    [2] Code review\n"+
		"[2] Hermes (active)\n", out)

	out = ta.mustRun(t, "project", "list", "--search", "herm")
	assert.Equal(t, "[2] Hermes (active)\n", out)
}

func TestTaskAddCommand(t *testing.T) {
	ta := setupTestApp(t)
	ta.mustRun(t, "project", "add", "Apollo")

	out := ta.mustRun(t, "task", "add", "1", "Design")
	assert.Equal(t, "Added task Design [1] to project 1\n", out)

	_, err := ta.run(t, "task", "add", "x", "Design")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "project-id")

	_, err = ta.run(t, "task", "add", "1", "   ")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to add task")
}

func TestConfigCommand(t *testing.T) {
	ta := setupTestApp(t)

	out := ta.mustRun(t, "--debounce", "3s", "--past-days", "5", "--user-id", "4", "config")
	assert.Contains(t, out, "debounce: 3s")
	assert.Contains(t, out, "cooldown: 1s")
	assert.Contains(t, out, "past_days_allowed: 5")
	assert.Contains(t, out, "user_id: 4")
	assert.Contains(t, out, "rate_limit_display: 15s")
	assert.NotContains(t, out, "file:")
}

func TestRootCommand_InvalidFlagValues(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"negative user", []string{"--user-id", "-1", "config"}},
		{"negative past days", []string{"--past-days", "-2", "config"}},
		{"zero timeout", []string{"--app-timeout", "0s", "config"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ta := setupTestApp(t)
			_, err := ta.run(t, tt.args...)
			assert.Error(t, err)
		})
	}
}

func lineWith(lines []string, substr string) string {
	for _, line := range lines {
		if strings.Contains(line, substr) {
			return line
		}
	}
	return ""
}
