package handlers

import (
	"fmt"

	"github.com/SscSPs/ledgerlite/cmd/docs"
	portsrepo "github.com/SscSPs/ledgerlite/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/ledgerlite/internal/core/ports/services"
	"github.com/SscSPs/ledgerlite/internal/middleware"
	"github.com/SscSPs/ledgerlite/internal/platform/config"
	"github.com/SscSPs/ledgerlite/internal/utils"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// RegisterRoutes sets up all application routes. tracker may be nil.
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
	health portsrepo.HealthChecker,
	tracker *utils.PosthogClientWrapper,
) error {
	otpLimiter, err := middleware.NewMemoryLimiter(cfg.OTPRateLimit)
	if err != nil {
		return fmt.Errorf("otp rate limit: %w", err)
	}
	apiLimiter, err := middleware.NewMemoryLimiter(cfg.APIRateLimit)
	if err != nil {
		return fmt.Errorf("api rate limit: %w", err)
	}

	r.GET("/health", getHealth(health))

	// Public sign-in routes
	registerAuthRoutes(r, services.Auth, otpLimiter)

	setupAPIV1Routes(r, cfg, services, middleware.GinMiddlewarize(apiLimiter), middleware.PosthogMiddleware(tracker))

	setupSwaggerRoutes(r, cfg)
	return nil
}

// setupAPIV1Routes configures the authenticated /api/v1 group
func setupAPIV1Routes(r *gin.Engine, cfg *config.Config, services *portssvc.ServiceContainer, extra ...gin.HandlerFunc) {
	v1 := r.Group("/api/v1", middleware.AuthMiddleware(cfg.JWTSecret, cfg.JWTIssuer))
	v1.Use(extra...)

	registerContextRoutes(v1, services.Context)
	registerCompanyRoutes(v1, services.Company, services.Customer)
	registerLedgerRoutes(v1, services)
	registerPersonalRoutes(v1, services.Personal, services.Budget)
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
