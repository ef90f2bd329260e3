// Package dashboard provides the dashboard aggregation module.
package dashboard

import (
	"crm_backend/internal/dashboard/handler"
	"crm_backend/internal/dashboard/service"
	apphttp "crm_backend/internal/http"
	"crm_backend/platform/logger"
)

// Sources bundles the snapshot ports the aggregation engine reads from.
// They are adapters over the entity repositories.
type Sources struct {
	Leads     service.LeadSource
	Customers service.CustomerSource
	Offers    service.OfferSource
	Notes     service.NoteSource
	Names     service.CustomerNameLookup
}

// Module is the dashboard module implementing http.Module.
type Module struct {
	handler *handler.Handler
	service *service.Service
}

// NewModule creates a new dashboard module.
func NewModule(sources Sources, log *logger.Logger) *Module {
	svc := service.New(sources.Leads, sources.Customers, sources.Offers, sources.Notes, sources.Names, log.WithModule("dashboard"))

	return &Module{
		handler: handler.New(svc),
		service: svc,
	}
}

// Name returns the module name for logging.
func (m *Module) Name() string {
	return "dashboard"
}

// RegisterRoutes registers the module's routes.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	m.handler.RegisterRoutes(ctx.Protected.Group("/dashboard"))
}

// Compile-time check that Module implements http.Module.
var _ apphttp.Module = (*Module)(nil)
