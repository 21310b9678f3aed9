package main

import (
	"context"
	"fmt"
	"os"

	"timegrid/internal/api"
	"timegrid/internal/cli"
	"timegrid/internal/config"
	"timegrid/internal/logging"
)

func main() {
	cfg, err := config.NewLoader().Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
		os.Exit(1)
	}

	env := getEnvironment()
	logging.Debugf("environment=%s database=%s\n", env, cfg.GetDatabasePath())

	repo, err := NewRepositoryFactory(env, cfg).CreateRepository()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating repository: %v\n", err)
		os.Exit(1)
	}

	app := cli.NewApp(api.NewTimesheetAPI(repo), cfg)

	// Commands bound themselves by the configured application timeout.
	err = app.Run(context.Background(), os.Args[1:])
	repo.Close()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
