package api

import (
	"database/sql"
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/barangay-bis/records-system/internal/api/handler"
	"github.com/barangay-bis/records-system/internal/api/metrics"
	"github.com/barangay-bis/records-system/internal/api/middleware"
	"github.com/barangay-bis/records-system/internal/core/hash"
	"github.com/barangay-bis/records-system/internal/core/service"
	"github.com/barangay-bis/records-system/internal/core/token"
	"github.com/barangay-bis/records-system/internal/infrastructure/config"
	"github.com/barangay-bis/records-system/internal/infrastructure/db/postgres"
	"github.com/barangay-bis/records-system/internal/infrastructure/db/redis"
)

// NewRouter builds and returns the Echo instance with all routes registered.
// rdb may be nil; the login rate limiter is then left out of the chain.
func NewRouter(db *sql.DB, rdb *goredis.Client, cfg *config.Config, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)
	e.Validator = handler.NewValidator()

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("records"))

	// --- Dependencies ---
	accountRepo := postgres.NewAccountRepository(db)
	hasher := hash.NewHasher(cfg.HashWorkers).WithObserver(func(operation string, elapsed time.Duration) {
		metrics.PasswordHashDuration.WithLabelValues(operation).Observe(elapsed.Seconds())
	})
	tokens := token.NewAuthenticator(cfg.JWTSecret, cfg.TokenTTL)
	accountService := service.NewAccountService(accountRepo, hasher, tokens, log)

	accountHandler := handler.NewAccountHandler(accountService)
	authHandler := handler.NewAuthHandler(accountService)
	authGate := middleware.Auth(tokens)

	// --- Account routes ---
	// Access control for the account pages is decided by the surrounding
	// application gateway; this core only serves them.
	e.GET("/accounts", accountHandler.List)
	e.GET("/accounts/:id", accountHandler.Get)
	e.POST("/accounts", accountHandler.Create)
	e.PUT("/accounts/:id", accountHandler.Update)
	e.DELETE("/accounts/:id", accountHandler.Delete)

	// --- Auth routes ---
	var loginGates []echo.MiddlewareFunc
	if rdb != nil {
		limiter := redis.NewLoginLimiter(rdb, cfg.Redis.LoginLimit, cfg.Redis.LoginWindow)
		loginGates = append(loginGates, middleware.LoginRateLimit(limiter, log))
	}
	e.POST("/auth/login", authHandler.Login, loginGates...)
	e.GET("/auth/me", authHandler.Me, authGate)
	e.POST("/auth/logout", authHandler.Logout)

	// --- Health probes and metrics (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", readinessHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())

	return e
}
