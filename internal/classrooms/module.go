// Package classrooms manages classroom sections within a school.
package classrooms

import (
	"taleschool_backend/internal/auth/roles"
	"taleschool_backend/internal/classrooms/handler"
	"taleschool_backend/internal/classrooms/repository"
	"taleschool_backend/internal/classrooms/service"
	apphttp "taleschool_backend/internal/http"
	"taleschool_backend/platform/httpkit"
	"taleschool_backend/platform/logger"
	"taleschool_backend/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
)

type Module struct {
	handler *handler.Handler
}

func NewModule(pool *pgxpool.Pool, val *validator.Validator, log *logger.Logger) *Module {
	repo := repository.New(pool)
	svc := service.New(repo, log)
	return &Module{handler: handler.New(svc, val)}
}

func (m *Module) Name() string {
	return "classrooms"
}

func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	admins := []string{roles.SuperAdmin, roles.SchoolAdmin}
	readers := []string{roles.SuperAdmin, roles.SchoolAdmin, roles.Teacher}

	group := ctx.V1.Group("/classrooms", ctx.Auth)
	group.POST("", httpkit.RequireRoles(admins...), ctx.Guard, m.handler.Create)
	group.GET("", httpkit.RequireRoles(readers...), ctx.Guard, m.handler.List)
	group.GET("/:id", httpkit.RequireRoles(readers...), ctx.Guard, m.handler.Get)
	group.PATCH("/:id", httpkit.RequireRoles(admins...), ctx.Guard, m.handler.Update)
	group.DELETE("/:id", httpkit.RequireRoles(admins...), ctx.Guard, m.handler.Delete)
}

var _ apphttp.Module = (*Module)(nil)
