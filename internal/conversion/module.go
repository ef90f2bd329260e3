// Package conversion provides the lead/customer conversion workflow module.
package conversion

import (
	"crm_backend/internal/conversion/handler"
	"crm_backend/internal/conversion/service"
	apphttp "crm_backend/internal/http"
	"crm_backend/platform/events"
	"crm_backend/platform/logger"
	"crm_backend/platform/validator"
)

// Module is the conversion workflow module implementing http.Module.
type Module struct {
	handler *handler.Handler
	service *service.Service
}

// NewModule creates a new conversion module. The stores are adapters over
// the leads and customers repositories.
func NewModule(leads service.LeadStore, customers service.CustomerStore, eventBus events.Bus, log *logger.Logger, val *validator.Validator) *Module {
	svc := service.New(leads, customers, log.WithModule("conversion"))
	svc.SetEventBus(eventBus)

	return &Module{
		handler: handler.New(svc, val),
		service: svc,
	}
}

// Name returns the module name for logging.
func (m *Module) Name() string {
	return "conversion"
}

// RegisterRoutes registers the module's routes.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	m.handler.RegisterRoutes(ctx.Protected.Group("/conversions"))
}

// Compile-time check that Module implements http.Module.
var _ apphttp.Module = (*Module)(nil)
