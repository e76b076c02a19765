// Package http provides HTTP server infrastructure including the Module
// interface that all domain modules implement for route registration.
package http

import (
	"taleschool_backend/platform/httpkit"

	"github.com/gin-gonic/gin"
)

// Module represents a bounded context that can register its HTTP routes.
// Each domain module implements this interface to encapsulate its own
// route setup, keeping the main router decoupled from specific endpoints.
type Module interface {
	// Name returns the module's identifier for logging purposes.
	Name() string
	// RegisterRoutes mounts the module's routes on the provided router context.
	RegisterRoutes(ctx *RouterContext)
}

// RouterContext provides shared dependencies for module route registration.
// This avoids passing many parameters to each module's RegisterRoutes method.
type RouterContext struct {
	// Engine is the root Gin engine for modules that need engine-level access.
	Engine *gin.Engine
	// V1 is the /api/v1 route group. The tenant resolver already ran for it.
	V1 *gin.RouterGroup
	// Auth is the JWT verification middleware (identity re-fetch included).
	Auth gin.HandlerFunc
	// Guard is the tenant ownership guard; mount after Auth on school-scoped routes.
	Guard gin.HandlerFunc
	// AuthRateLimiter is the stricter rate limiter for credential endpoints.
	AuthRateLimiter *httpkit.AuthRateLimiter
}
