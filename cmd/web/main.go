package main

import (
	"os"

	"github.com/yigit/schooladmin/internal/pkg/logger"
	"github.com/yigit/schooladmin/internal/server"
)

// @title School Admin API
// @version 1.0
// @description JSON API of the school administration console. Student records live in the remote GraphQL backend; this API forwards the caller's credentials to it.

// @contact.name API Support

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /api/v1
// @schemes http https

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Backend token as "Bearer <token>". Browser calls may rely on the session cookie instead.

func main() {
	srv, err := server.NewServer()
	if err != nil {
		logger.Error().Err(err).Msg("Failed to initialize server")
		os.Exit(1)
	}

	// Blocks until a shutdown signal
	if err := srv.Run(); err != nil {
		logger.Error().Err(err).Msg("Server execution failed or shutdown encountered errors")
		os.Exit(1)
	}

	logger.Info().Msg("Application finished gracefully.")
	os.Exit(0)
}
