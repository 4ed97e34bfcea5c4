package handlers

import (
	"fmt"
	"net/http"

	"github.com/SscSPs/wallet_ledger_service/cmd/docs"
	portssvc "github.com/SscSPs/wallet_ledger_service/internal/core/ports/services"
	"github.com/SscSPs/wallet_ledger_service/internal/middleware"
	"github.com/SscSPs/wallet_ledger_service/internal/platform/config"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces.
// metricsHandler may be nil.
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
	metricsHandler http.Handler,
) error {
	registerValidators()

	// Add health check route
	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})

	if metricsHandler != nil {
		r.GET("/metrics", gin.WrapH(metricsHandler))
	}

	if err := setupAPIV1Routes(r, cfg, services); err != nil {
		return err
	}

	// Swagger routes (typically public or conditionally available)
	setupSwaggerRoutes(r, cfg)
	return nil
}

// setupAPIV1Routes configures the /api/v1 group and delegates to specific entity route registrations
func setupAPIV1Routes(
	r *gin.Engine,
	cfg *config.Config,
	service *portssvc.ServiceContainer,
) error {
	var groupMiddleware []gin.HandlerFunc
	if cfg.RateLimit != "" {
		limiter, err := middleware.NewRateLimiter(cfg.RateLimit)
		if err != nil {
			return fmt.Errorf("setting up rate limiter: %w", err)
		}
		groupMiddleware = append(groupMiddleware, middleware.RateLimit(limiter))
	}
	if cfg.AuthEnabled {
		groupMiddleware = append(groupMiddleware, middleware.AuthMiddleware(cfg.JWTSecret))
	}

	v1 := r.Group("/api/v1", groupMiddleware...)

	RegisterAccountRoutes(v1, service.Account)
	RegisterTransferRoutes(v1, service.Transfer)

	if service.Treasury != nil && !cfg.IsProduction {
		RegisterDevTreasuryRoutes(v1, service.Treasury)
	}
	return nil
}

// setupSwaggerRoutes configures the swagger documentation routes
func setupSwaggerRoutes(r *gin.Engine, cfg *config.Config) {
	if cfg.IsProduction {
		//no swagger in prod
		return
	}
	docs.SwaggerInfo.BasePath = "/api/v1"
	swagger := r.Group("/swagger")
	swagger.GET("/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}
