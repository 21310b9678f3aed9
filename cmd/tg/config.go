package main

import (
	"fmt"
	"os"

	"timegrid/internal/config"
	"timegrid/internal/repository/sqlite"
)

// Environment represents the current environment
type Environment string

const (
	Development Environment = "development"
	Testing     Environment = "testing"
	Production  Environment = "production"
)

// RepositoryFactory creates repository instances based on environment
type RepositoryFactory struct {
	env    Environment
	config *config.Config
}

// NewRepositoryFactory creates a new repository factory for the given environment
func NewRepositoryFactory(env Environment, cfg *config.Config) *RepositoryFactory {
	return &RepositoryFactory{env: env, config: cfg}
}

// CreateRepository creates a repository instance based on the current environment
func (rf *RepositoryFactory) CreateRepository() (sqlite.Repository, error) {
	switch rf.env {
	case Development:
		return rf.createDevelopmentRepository()
	case Testing:
		return config.CreateTestRepository()
	default:
		return config.CreateRepository(rf.config)
	}
}

// createDevelopmentRepository uses a database file in the working directory
func (rf *RepositoryFactory) createDevelopmentRepository() (sqlite.Repository, error) {
	repo, err := sqlite.New(rf.config.Database.Filename)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize development database: %w", err)
	}
	return repo, nil
}

// getEnvironment determines the current environment from TG_ENV
func getEnvironment() Environment {
	switch os.Getenv("TG_ENV") {
	case "development":
		return Development
	case "testing":
		return Testing
	default:
		return Production
	}
}
