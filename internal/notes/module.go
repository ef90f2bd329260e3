// Package notes provides the note management bounded context module.
package notes

import (
	apphttp "crm_backend/internal/http"
	"crm_backend/internal/notes/handler"
	"crm_backend/internal/notes/repository"
	"crm_backend/internal/notes/service"
	"crm_backend/platform/events"
	"crm_backend/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Module is the notes bounded context module implementing http.Module.
type Module struct {
	handler *handler.Handler
	repo    *repository.Repository
	service *service.Service
}

// NewModule creates a new notes module with all dependencies wired.
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
	return "notes"
}

// Repository exposes the note repository for adapter wiring.
func (m *Module) Repository() *repository.Repository {
	return m.repo
}

// RegisterRoutes registers the module's routes.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	m.handler.RegisterRoutes(ctx.Protected.Group("/notes"))
}

// Compile-time check that Module implements http.Module.
var _ apphttp.Module = (*Module)(nil)
