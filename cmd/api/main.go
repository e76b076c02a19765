package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"taleschool_backend/internal/attendance"
	"taleschool_backend/internal/auth"
	"taleschool_backend/internal/classrooms"
	"taleschool_backend/internal/dashboard"
	"taleschool_backend/internal/events"
	apphttp "taleschool_backend/internal/http"
	"taleschool_backend/internal/http/router"
	"taleschool_backend/internal/schools"
	"taleschool_backend/internal/students"
	"taleschool_backend/internal/teachers"
	"taleschool_backend/internal/tenant"
	"taleschool_backend/migrations"
	"taleschool_backend/platform/config"
	"taleschool_backend/platform/db"
	"taleschool_backend/platform/httpkit"
	"taleschool_backend/platform/logger"
	"taleschool_backend/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	log := logger.New(cfg.Env)
	log.Info("starting server", "env", cfg.Env, "addr", cfg.HTTPAddr)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// ========================================================================
	// Infrastructure Layer
	// ========================================================================

	if err := withRetry(ctx, log, "database migrations", 5, 2*time.Second, func() error {
		return db.RunMigrations(ctx, cfg, migrations.FS, ".")
	}); err != nil {
		log.Error("failed to run database migrations", "error", err)
		panic("failed to run database migrations: " + err.Error())
	}
	log.Info("database migrations complete")

	var pool *pgxpool.Pool
	if err := withRetry(ctx, log, "database connection", 5, 2*time.Second, func() error {
		p, err := db.NewPool(ctx, cfg)
		if err != nil {
			return err
		}
		pool = p
		return nil
	}); err != nil {
		log.Error("failed to connect to database", "error", err)
		panic("failed to connect to database: " + err.Error())
	}
	defer pool.Close()
	log.Info("database connection established")

	// Event bus for decoupled communication between modules
	eventBus := events.NewInMemoryBus(log)

	// Tenant cache is optional: without Redis, slug lookups hit Postgres.
	var tenantCache tenant.Cache
	if cfg.IsRedisEnabled() {
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.GetRedisAddr(),
			Password: cfg.GetRedisPassword(),
		})
		if err := client.Ping(ctx).Err(); err != nil {
			log.Warn("redis unreachable, tenant cache disabled", "error", err)
		} else {
			tenantCache = tenant.NewRedisCache(client, cfg.GetTenantCacheTTL(), log)
			defer client.Close()
			log.Info("tenant cache enabled", "addr", cfg.GetRedisAddr())
		}
	}

	// Shared validator instance for dependency injection
	val := validator.New()

	// ========================================================================
	// Domain Modules (Composition Root)
	// ========================================================================

	tenantModule := tenant.NewModule(pool, tenantCache, cfg, log)
	tenantModule.RegisterHandlers(eventBus)

	authModule := auth.NewModule(pool, cfg, val, log)
	schoolsModule := schools.NewModule(pool, eventBus, val, log)
	teachersModule := teachers.NewModule(pool, val, log)
	studentsModule := students.NewModule(pool, val, log)
	classroomsModule := classrooms.NewModule(pool, val, log)
	attendanceModule := attendance.NewModule(pool, val, log)
	dashboardModule := dashboard.NewModule(pool)

	// ========================================================================
	// HTTP Layer
	// ========================================================================

	app := &apphttp.App{
		Config:         cfg,
		Logger:         log,
		Health:         pool,
		TenantResolver: tenantModule.Resolver().Middleware(),
		Auth:           httpkit.AuthRequired(cfg, authModule.UserProvider()),
		Guard:          tenant.SchoolGuard(),
		Modules: []apphttp.Module{
			authModule,
			schoolsModule,
			teachersModule,
			studentsModule,
			classroomsModule,
			attendanceModule,
			dashboardModule,
		},
	}

	engine := router.New(app)

	srvErr := make(chan error, 1)
	go func() {
		log.Info("server listening", "addr", cfg.HTTPAddr)
		srvErr <- engine.Run(cfg.HTTPAddr)
	}()

	select {
	case <-ctx.Done():
		log.Info("shutdown signal received, gracefully shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = shutdownCtx
	case err := <-srvErr:
		if err != nil {
			log.Error("server error", "error", err)
			panic("server error: " + err.Error())
		}
	}
}

func withRetry(ctx context.Context, log *logger.Logger, name string, attempts int, baseDelay time.Duration, fn func() error) error {
	if attempts < 1 {
		return fmt.Errorf("%s: invalid retry attempts", name)
	}

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if err := fn(); err == nil {
			return nil
		} else {
			lastErr = err
			log.Warn("retryable operation failed", "operation", name, "attempt", attempt, "error", err)
		}

		if attempt < attempts {
			delay := time.Duration(attempt*attempt) * baseDelay
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
			}
		}
	}

	return errors.New(name + ": " + lastErr.Error())
}
