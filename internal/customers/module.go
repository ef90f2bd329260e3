// Package customers provides the customer management bounded context module.
package customers

import (
	"crm_backend/internal/customers/handler"
	"crm_backend/internal/customers/repository"
	"crm_backend/internal/customers/service"
	apphttp "crm_backend/internal/http"
	"crm_backend/platform/events"
	"crm_backend/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Module is the customers bounded context module implementing http.Module.
type Module struct {
	handler *handler.Handler
	repo    *repository.Repository
	service *service.Service
}

// NewModule creates a new customers module with all dependencies wired.
func NewModule(pool *pgxpool.Pool, eventBus events.Bus, val *validator.Validator) *Module {
	repo := repository.New(pool)
	svc := service.New(repo)
	svc.SetEventBus(eventBus)

	return &Module{
		handler: handler.New(svc, val),
		repo:    repo,
		service: svc,
	}
}

// Name returns the module name for logging.
func (m *Module) Name() string {
	return "customers"
}

// Repository exposes the customer repository for adapter wiring.
func (m *Module) Repository() *repository.Repository {
	return m.repo
}

// RegisterRoutes registers the module's routes.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	m.handler.RegisterRoutes(ctx.Protected.Group("/customers"))
}

// Compile-time check that Module implements http.Module.
var _ apphttp.Module = (*Module)(nil)
