package main

import (
	"fmt"
	"os"
	"path/filepath"

	"teamtrack/internal/cli"
	"teamtrack/internal/localstore"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Store path: env var or default ~/.teamtrack/teamtrack.json
	storePath := os.Getenv("TEAMTRACK_STORE")
	if storePath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("finding home directory: %w", err)
		}
		storePath = filepath.Join(home, ".teamtrack", "teamtrack.json")
	}

	store, err := localstore.Open(storePath)
	if err != nil {
		return fmt.Errorf("opening store: %w", err)
	}

	rootCmd := cli.NewRootCmd(&cli.App{Store: store})
	return rootCmd.Execute()
}
