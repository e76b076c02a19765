// Package auth provides login, registration, and the user provider the
// verification middleware re-fetches identities through.
package auth

import (
	"taleschool_backend/internal/auth/adapter"
	"taleschool_backend/internal/auth/handler"
	"taleschool_backend/internal/auth/repository"
	"taleschool_backend/internal/auth/service"
	apphttp "taleschool_backend/internal/http"
	"taleschool_backend/platform/config"
	"taleschool_backend/platform/httpkit"
	"taleschool_backend/platform/logger"
	"taleschool_backend/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Module is the auth bounded context module implementing http.Module.
type Module struct {
	handler *handler.Handler
	repo    *repository.Repository
}

// NewModule creates and initializes the auth module.
func NewModule(pool *pgxpool.Pool, cfg config.AuthServiceConfig, val *validator.Validator, log *logger.Logger) *Module {
	repo := repository.New(pool)
	svc := service.New(repo, cfg, log)
	h := handler.New(svc, val)

	return &Module{handler: h, repo: repo}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "auth"
}

// UserProvider returns the adapter the verification middleware re-fetches
// users through.
func (m *Module) UserProvider() httpkit.UserProvider {
	return adapter.NewUserProviderAdapter(m.repo)
}

// RegisterRoutes mounts auth routes on the provided router context.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	group := ctx.V1.Group("/auth")
	group.POST("/login", ctx.AuthRateLimiter.RateLimit(), m.handler.Login)
	group.POST("/register", ctx.AuthRateLimiter.RateLimit(), m.handler.Register)
	group.GET("/profile", ctx.Auth, m.handler.Profile)
}

var _ apphttp.Module = (*Module)(nil)
