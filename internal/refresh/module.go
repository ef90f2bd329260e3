package refresh

import (
	"context"

	"crm_backend/internal/events"
	apphttp "crm_backend/internal/http"
	"crm_backend/platform/httpkit"

	"github.com/gin-gonic/gin"
)

// Module exposes the view-version polling endpoint and keeps the registry
// fed from stale-view events.
type Module struct {
	registry *Registry
}

// NewModule creates the refresh module and subscribes it to the bus.
func NewModule(eventBus events.Bus) *Module {
	m := &Module{registry: NewRegistry()}

	eventBus.Subscribe(events.ViewsStale{}.EventName(), events.HandlerFunc(
		func(_ context.Context, event events.Event) error {
			if stale, ok := event.(events.ViewsStale); ok {
				m.registry.Bump(stale.Views)
			}
			return nil
		}))

	return m
}

// Name returns the module name for logging.
func (m *Module) Name() string {
	return "refresh"
}

// Registry exposes the version registry, mainly for tests.
func (m *Module) Registry() *Registry {
	return m.registry
}

// RegisterRoutes registers the module's routes.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	ctx.Protected.GET("/views/versions", m.versions)
}

func (m *Module) versions(c *gin.Context) {
	httpkit.OK(c, m.registry.Versions())
}

// Compile-time check that Module implements http.Module.
var _ apphttp.Module = (*Module)(nil)
