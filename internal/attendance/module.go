// Package attendance manages daily attendance records for students.
package attendance

import (
	"taleschool_backend/internal/attendance/handler"
	"taleschool_backend/internal/attendance/repository"
	"taleschool_backend/internal/attendance/service"
	"taleschool_backend/internal/auth/roles"
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
	return "attendance"
}

func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	admins := []string{roles.SuperAdmin, roles.SchoolAdmin}
	markers := []string{roles.SuperAdmin, roles.SchoolAdmin, roles.Teacher}

	group := ctx.V1.Group("/attendance", ctx.Auth)
	group.POST("", httpkit.RequireRoles(markers...), ctx.Guard, m.handler.Mark)
	group.POST("/bulk", httpkit.RequireRoles(markers...), ctx.Guard, m.handler.BulkMark)
	group.GET("", httpkit.RequireRoles(markers...), ctx.Guard, m.handler.List)
	group.GET("/stats", httpkit.RequireRoles(markers...), ctx.Guard, m.handler.Stats)
	group.GET("/:id", httpkit.RequireRoles(markers...), ctx.Guard, m.handler.Get)
	group.PATCH("/:id", httpkit.RequireRoles(markers...), ctx.Guard, m.handler.Update)
	group.DELETE("/:id", httpkit.RequireRoles(admins...), ctx.Guard, m.handler.Delete)
}

var _ apphttp.Module = (*Module)(nil)
