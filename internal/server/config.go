package server

import (
	"github.com/bakerapp/baker/internal/app"
	"github.com/bakerapp/baker/internal/logging"
)

type Config struct {
	// ListenAddr is the HTTP listen address for the API server.
	ListenAddr string

	// AppConfig configures the orchestrator; nil means defaults.
	AppConfig *app.Config

	// Logger receives request and handler logs; nil means a stdout logger.
	Logger logging.Logger
}
