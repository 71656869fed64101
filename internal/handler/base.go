// Package handler defines HTTP request handlers and related utilities.
package handler

import (
	"log/slog"

	"github.com/Siri-durga/dex-amm/internal/service"
)

// BaseHandler provides common dependencies for HTTP handlers.
type BaseHandler struct {
	logger *slog.Logger
}

// PoolHandler serves the pool's HTTP API.
type PoolHandler struct {
	BaseHandler
	service *service.PoolService
}

func NewPoolHandler(logger *slog.Logger, svc *service.PoolService) *PoolHandler {
	return &PoolHandler{
		BaseHandler: BaseHandler{
			logger: logger,
		},
		service: svc,
	}
}
