package handler

import (
	"errors"

	"github.com/globalmart/auth-service/internal/config"
	"github.com/globalmart/auth-service/internal/handler/http"
	"github.com/globalmart/auth-service/internal/logger"
	"github.com/globalmart/auth-service/internal/service"
)

// errNoHandlersAreCreated is returned by NewHandlers when no transport
// address is configured. This is treated as a fatal misconfiguration and
// causes the application to fail at startup.
var errNoHandlersAreCreated = errors.New("no handlers are created")

type Handlers struct {
	HTTP *http.Handler
}

func NewHandlers(services *service.Services, cfg config.Server, logger *logger.Logger) (*Handlers, error) {
	logger.Info().Msg("creating new handlers...")

	handlers := &Handlers{}

	if cfg.HTTPAddress != "" {
		handlers.HTTP = http.NewHandler(services, logger)
	}

	if handlers.HTTP == nil {
		return nil, errNoHandlersAreCreated
	}

	return handlers, nil
}
