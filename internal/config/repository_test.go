package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"timegrid/internal/repository/sqlite"
)

func TestCreateRepository(t *testing.T) {
	// Nested directory that does not exist yet
	dbDir := filepath.Join(t.TempDir(), "nested", "data")
	t.Setenv("TG_DB_DIR", dbDir)

	cfg, err := NewLoader().Load()
	require.NoError(t, err)

	repo, err := CreateRepository(cfg)
	require.NoError(t, err)
	require.NotNil(t, repo)
	defer repo.Close()

	_, err = os.Stat(cfg.GetDatabasePath())
	assert.NoError(t, err)

	project := &sqlite.Project{Name: "Apollo", Status: "active"}
	require.NoError(t, repo.CreateProject(context.Background(), project))

	projects, err := repo.ListProjects(context.Background(), sqlite.ProjectSearch{})
	require.NoError(t, err)
	assert.Len(t, projects, 1)
}

func TestCreateTestRepository(t *testing.T) {
	repo, err := CreateTestRepository()
	require.NoError(t, err)
	defer repo.Close()

	project := &sqlite.Project{Name: "Gemini", Status: "active"}
	require.NoError(t, repo.CreateProject(context.Background(), project))
	assert.NotZero(t, project.ID)

	task := &sqlite.Task{ProjectID: project.ID, Name: "Design"}
	require.NoError(t, repo.CreateTask(context.Background(), task))

	tasks, err := repo.ListTasks(context.Background(), project.ID)
	require.NoError(t, err)
	assert.Len(t, tasks, 1)
}
