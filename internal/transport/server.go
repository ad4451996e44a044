package transport

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/encryptcookie"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"
	"github.com/kursadbilgin/sms-console/internal/auth"
	"github.com/kursadbilgin/sms-console/internal/config"
	"github.com/kursadbilgin/sms-console/internal/handler"
	infraredis "github.com/kursadbilgin/sms-console/internal/infra/redis"
	"github.com/kursadbilgin/sms-console/internal/observability"
	"github.com/kursadbilgin/sms-console/internal/web"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	readTimeout  = 15 * time.Second
	writeTimeout = 30 * time.Second
)

type AppDeps struct {
	Config     *config.Config
	Dispatcher handler.Dispatcher
	Logger     *zap.Logger
	Metrics    *observability.Metrics
	// Redis is optional; sessions stay in process when it is nil.
	Redis *redis.Client
}

// NewApp assembles the operator console: middleware, session gate, pages,
// health probes and metrics.
func NewApp(deps AppDeps) (*fiber.App, error) {
	if deps.Config == nil {
		return nil, fmt.Errorf("config is required")
	}
	if deps.Dispatcher == nil {
		return nil, fmt.Errorf("dispatcher is required")
	}
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	metrics := deps.Metrics
	if metrics == nil {
		metrics = observability.NewMetrics()
	}

	views, err := web.NewViews()
	if err != nil {
		return nil, err
	}
	if err := views.Load(); err != nil {
		return nil, fmt.Errorf("failed to load views: %w", err)
	}

	sessionCfg := auth.SessionConfig{
		TTL:          deps.Config.SessionTTL(),
		CookieSecure: deps.Config.CookieSecure,
	}
	if deps.Redis != nil {
		storage, err := infraredis.NewSessionStorage(deps.Redis, "")
		if err != nil {
			return nil, err
		}
		sessionCfg.Storage = storage
	}
	sessions := auth.NewSessions(sessionCfg)

	gate, err := auth.NewGate(deps.Config.AdminUsername, deps.Config.AdminPassword)
	if err != nil {
		return nil, err
	}
	authHandler, err := handler.NewAuthHandler(gate, sessions, metrics, logger)
	if err != nil {
		return nil, err
	}
	dashboardHandler, err := handler.NewDashboardHandler(deps.Dispatcher, auth.NewRelay(sessions))
	if err != nil {
		return nil, err
	}

	app := fiber.New(fiber.Config{
		AppName:               "sms-console",
		Views:                 views,
		ErrorHandler:          ErrorHandler(logger),
		ReadTimeout:           readTimeout,
		WriteTimeout:          writeTimeout,
		DisableStartupMessage: true,
	})

	app.Use(recover.New())
	app.Use(requestid.New(requestid.Config{Generator: uuid.NewString}))
	app.Use(Correlation())
	app.Use(RequestLogger(logger))
	app.Use(metrics.HTTPMiddleware())

	handler.RegisterHealthRoutes(app, deps.Redis)
	app.Get("/metrics", adaptor.HTTPHandler(metrics.Handler()))

	app.Use(encryptcookie.New(encryptcookie.Config{
		Key: auth.CookieKey(deps.Config.SessionSecret),
	}))

	handler.RegisterAuthRoutes(app, authHandler)
	handler.RegisterDashboardRoutes(app, dashboardHandler, handler.RequireAuth(sessions, logger))

	return app, nil
}
