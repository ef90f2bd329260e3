// Package leads provides the lead management bounded context module.
package leads

import (
	apphttp "crm_backend/internal/http"
	"crm_backend/internal/leads/handler"
	"crm_backend/internal/leads/repository"
	"crm_backend/internal/leads/scan"
	"crm_backend/internal/leads/service"
	"crm_backend/platform/config"
	"crm_backend/platform/events"
	"crm_backend/platform/logger"
	"crm_backend/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Module is the leads bounded context module implementing http.Module.
type Module struct {
	handler *handler.Handler
	repo    *repository.Repository
	service *service.Service
}

// NewModule creates a new leads module with all dependencies wired.
func NewModule(pool *pgxpool.Pool, eventBus events.Bus, cfg config.LeadScanConfig, log *logger.Logger, val *validator.Validator) *Module {
	repo := repository.New(pool)
	svc := service.New(repo)
	svc.SetEventBus(eventBus)
	scanner := scan.New(cfg.GetLeadScanWebhookURL(), log.WithModule("leads"))

	return &Module{
		handler: handler.New(svc, scanner, val),
		repo:    repo,
		service: svc,
	}
}

// Name returns the module name for logging.
func (m *Module) Name() string {
	return "leads"
}

// Repository exposes the lead repository for adapter wiring.
func (m *Module) Repository() *repository.Repository {
	return m.repo
}

// RegisterRoutes registers the module's routes.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	m.handler.RegisterRoutes(ctx.Protected.Group("/leads"))
}

// Compile-time check that Module implements http.Module.
var _ apphttp.Module = (*Module)(nil)
