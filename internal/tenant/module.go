package tenant

import (
	"context"

	"taleschool_backend/internal/events"
	"taleschool_backend/platform/config"
	"taleschool_backend/platform/logger"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Module wires the tenant resolver with its repository and cache and keeps
// the cache coherent by subscribing to school change events.
type Module struct {
	resolver *Resolver
	cache    Cache
	log      *logger.Logger
}

// NewModule creates the tenant module. cache may be nil when Redis is disabled.
func NewModule(pool *pgxpool.Pool, cache Cache, cfg config.TenantConfig, log *logger.Logger) *Module {
	repo := NewRepository(pool)
	return &Module{
		resolver: NewResolver(repo, cache, cfg, log),
		cache:    cache,
		log:      log,
	}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "tenant"
}

// Resolver returns the hostname resolution middleware.
func (m *Module) Resolver() *Resolver {
	return m.resolver
}

// RegisterHandlers subscribes to school change events for cache invalidation.
func (m *Module) RegisterHandlers(bus *events.InMemoryBus) {
	if m.cache == nil {
		return
	}
	bus.Subscribe(events.SchoolUpdated{}.EventName(), m)
	bus.Subscribe(events.SchoolDeleted{}.EventName(), m)
}

// Handle routes events to the cache invalidation.
func (m *Module) Handle(ctx context.Context, event events.Event) error {
	switch e := event.(type) {
	case events.SchoolUpdated:
		m.cache.Invalidate(ctx, e.Slug)
	case events.SchoolDeleted:
		m.cache.Invalidate(ctx, e.Slug)
	}
	return nil
}
