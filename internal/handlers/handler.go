package handlers

import (
	"log/slog"

	"github.com/SentryPrime1/sentryprime-backend-clean/internal/auth"
	"github.com/SentryPrime1/sentryprime-backend-clean/internal/config"
	"github.com/SentryPrime1/sentryprime-backend-clean/internal/repository"
	"github.com/SentryPrime1/sentryprime-backend-clean/internal/services"
)

type Handler struct {
	cfg          config.Config
	logger       *slog.Logger
	store        *repository.Store
	tokens       *auth.TokenService
	scanner      *services.ScannerService
	enricher     *services.EnricherService
	aggregator   *services.AggregatorService
	auditService *services.AuditService
}

func NewHandler(
	cfg config.Config,
	logger *slog.Logger,
	store *repository.Store,
	tokens *auth.TokenService,
	scanner *services.ScannerService,
	enricher *services.EnricherService,
	aggregator *services.AggregatorService,
	auditService *services.AuditService,
) *Handler {
	return &Handler{
		cfg:          cfg,
		logger:       logger,
		store:        store,
		tokens:       tokens,
		scanner:      scanner,
		enricher:     enricher,
		aggregator:   aggregator,
		auditService: auditService,
	}
}
