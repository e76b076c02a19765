// Package schools implements platform-level school administration.
// All routes are restricted to super admins; tenant-scoped reads of the
// current school happen through the tenant resolver instead.
package schools

import (
	"taleschool_backend/internal/auth/roles"
	"taleschool_backend/internal/events"
	apphttp "taleschool_backend/internal/http"
	"taleschool_backend/internal/schools/handler"
	"taleschool_backend/internal/schools/repository"
	"taleschool_backend/internal/schools/service"
	"taleschool_backend/platform/httpkit"
	"taleschool_backend/platform/logger"
	"taleschool_backend/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
)

type Module struct {
	handler *handler.Handler
}

func NewModule(pool *pgxpool.Pool, bus events.Bus, val *validator.Validator, log *logger.Logger) *Module {
	repo := repository.New(pool)
	svc := service.New(repo, bus, log)
	return &Module{handler: handler.New(svc, val)}
}

func (m *Module) Name() string {
	return "schools"
}

func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	group := ctx.V1.Group("/schools", ctx.Auth, httpkit.RequireRoles(roles.SuperAdmin))
	group.POST("", m.handler.Create)
	group.GET("", m.handler.List)
	group.GET("/:id", m.handler.Get)
	group.PATCH("/:id", m.handler.Update)
	group.PATCH("/:id/toggle-active", m.handler.ToggleActive)
	group.DELETE("/:id", m.handler.Delete)
	group.GET("/:id/stats", m.handler.Stats)
}

var _ apphttp.Module = (*Module)(nil)
