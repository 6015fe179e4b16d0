// Package v1 provides HTTP API version 1.
package v1

import (
	"github.com/gin-gonic/gin"

	"tradebook/internal/core/cqs"
	"tradebook/internal/domain/customers"
	"tradebook/internal/infrastructure/http/v1/handlers"
	"tradebook/internal/infrastructure/http/v1/middleware"
	"tradebook/internal/infrastructure/storage/postgres"
	"tradebook/pkg/logger"
)

// RouterConfig holds router configuration.
type RouterConfig struct {
	// Pool is the database connection pool the per-request scopes draw from.
	Pool *postgres.Pool

	// Logger for request logging
	Logger *logger.Logger
}

// NewRouter creates and configures the Gin router. The handler object graph
// is composed here explicitly: each command handler is wrapped in the
// transactional decorator at construction time, so every command a request
// runs participates in the request's shared transaction.
func NewRouter(cfg RouterConfig) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()

	// Global middleware (order matters!)
	router.Use(middleware.Recovery())
	router.Use(middleware.Trace())
	router.Use(middleware.Logger(cfg.Logger))
	router.Use(middleware.ErrorHandler())

	// Health endpoints (no scope required)
	healthHandler := handlers.NewHealthHandler(cfg.Pool)
	health := router.Group("/health")
	{
		health.GET("/live", healthHandler.Live)
		health.GET("/ready", healthHandler.Ready)
	}

	// Wiring: repository, handlers, transactional decoration.
	customerRepo := postgres.NewCustomerRepo()
	customerHandler := handlers.NewCustomerHandler(
		handlers.NewBaseHandler(),
		cqs.NewTransactional[*customers.AddCustomer](customers.NewAddCustomerHandler(customerRepo)),
		cqs.NewTransactional[*customers.MoveCustomer](customers.NewMoveCustomerHandler(customerRepo)),
		customers.NewCustomersByCountryHandler(customerRepo),
		customers.NewCustomerByIDHandler(customerRepo),
	)

	// API v1: every request gets one transaction scope.
	api := router.Group("/api/v1")
	api.Use(middleware.Scope(cfg.Pool))
	{
		api.POST("/customers", customerHandler.Create)
		api.GET("/customers", customerHandler.ListByCountry)
		api.GET("/customers/:id", customerHandler.Get)
		api.PUT("/customers/:id/address", customerHandler.Move)
	}

	return router
}
