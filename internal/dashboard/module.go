// Package dashboard serves role-dependent summary statistics.
package dashboard

import (
	"taleschool_backend/internal/auth/roles"
	"taleschool_backend/internal/dashboard/handler"
	"taleschool_backend/internal/dashboard/repository"
	"taleschool_backend/internal/dashboard/service"
	apphttp "taleschool_backend/internal/http"
	"taleschool_backend/platform/httpkit"

	"github.com/jackc/pgx/v5/pgxpool"
)

type Module struct {
	handler *handler.Handler
}

func NewModule(pool *pgxpool.Pool) *Module {
	repo := repository.New(pool)
	svc := service.New(repo)
	return &Module{handler: handler.New(svc)}
}

func (m *Module) Name() string {
	return "dashboard"
}

func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	all := []string{roles.SuperAdmin, roles.SchoolAdmin, roles.Teacher}

	group := ctx.V1.Group("/dashboard", ctx.Auth)
	group.GET("/stats", httpkit.RequireRoles(all...), ctx.Guard, m.handler.Stats)
}

var _ apphttp.Module = (*Module)(nil)
