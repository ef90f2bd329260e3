// Package auth provides the authentication module.
package auth

import (
	"crm_backend/internal/auth/handler"
	"crm_backend/internal/auth/repository"
	"crm_backend/internal/auth/service"
	apphttp "crm_backend/internal/http"
	"crm_backend/platform/config"
	"crm_backend/platform/logger"
	"crm_backend/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Module is the auth module implementing http.Module.
type Module struct {
	handler *handler.Handler
}

// NewModule creates a new auth module with all dependencies wired.
func NewModule(pool *pgxpool.Pool, cfg config.AuthServiceConfig, log *logger.Logger, val *validator.Validator) *Module {
	repo := repository.New(pool)
	svc := service.New(repo, cfg, log.WithModule("auth"))

	return &Module{
		handler: handler.New(svc, val),
	}
}

// Name returns the module name for logging.
func (m *Module) Name() string {
	return "auth"
}

// RegisterRoutes registers the module's routes. Login sits on the public
// group behind the stricter auth rate limiter; profile lookup requires a
// valid token.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	public := ctx.V1.Group("/auth")
	public.POST("/login", ctx.AuthRateLimiter.RateLimit(), m.handler.Login)

	ctx.Protected.GET("/auth/me", m.handler.Me)
}

// Compile-time check that Module implements http.Module.
var _ apphttp.Module = (*Module)(nil)
