package main

import (
	"os"

	"github.com/yigit/teamreg/internal/pkg/logger" // Still needed for initial error logging
	"github.com/yigit/teamreg/internal/server"
)

// @title Team Registration API
// @version 1.0
// @description Read model and registration endpoint of the competition team registration site

// @BasePath /api/v1
// @schemes http https

func main() {
	// NewServer orchestrates LoadConfigAndSetupLogger, BuildDependencies, the initial load and SetupRouter
	srv, err := server.NewServer()
	if err != nil {
		logger.Error().Err(err).Msg("Failed to initialize server")
		os.Exit(1)
	}

	// Run the server (this blocks until shutdown signal)
	if err := srv.Run(); err != nil {
		logger.Error().Err(err).Msg("Server execution failed or shutdown encountered errors")
		os.Exit(1)
	}

	logger.Info().Msg("Application finished gracefully.")
	os.Exit(0)
}
