package main

import (
	"os"

	"github.com/kaan/eduflow/internal/pkg/logger"
	"github.com/kaan/eduflow/internal/server"
)

// @title EduFlow API
// @version 1.0
// @description API for the EduFlow online course platform
// @termsOfService http://swagger.io/terms/

// @contact.name API Support
// @contact.email support@eduflow.dev

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /api/v1
// @schemes http https

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Session token for authorization

func main() {
	srv, err := server.NewServer()
	if err != nil {
		logger.Error().Err(err).Msg("Failed to initialize server")
		os.Exit(1)
	}

	// Run blocks until a shutdown signal arrives
	if err := srv.Run(); err != nil {
		logger.Error().Err(err).Msg("Server execution failed or shutdown encountered errors")
		os.Exit(1)
	}

	logger.Info().Msg("Application finished gracefully.")
	os.Exit(0)
}
