package handlers

import (
	"log/slog"

	"github.com/SscSPs/bank_recon_engine/cmd/docs"
	portssvc "github.com/SscSPs/bank_recon_engine/internal/core/ports/services"
	"github.com/SscSPs/bank_recon_engine/internal/middleware"
	"github.com/SscSPs/bank_recon_engine/internal/platform/config"
	"github.com/SscSPs/bank_recon_engine/internal/utils"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// RouterDeps carries the collaborators the router needs besides configuration.
type RouterDeps struct {
	Services *portssvc.ServiceContainer
	Logger   *slog.Logger
	Posthog  *utils.PosthogClientWrapper
	DB       Pinger // optional; pinged by /health when EnableDBCheck is set
}

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces
func RegisterRoutes(r *gin.Engine, cfg *config.Config, deps RouterDeps) error {
	r.Use(middleware.StructuredLoggingMiddleware(deps.Logger))
	r.Use(cors.New(corsConfig(cfg)))

	var db Pinger
	if cfg.EnableDBCheck {
		db = deps.DB
	}
	r.GET("/health", healthHandler(db))

	heavy, err := middleware.NewMemoryLimiter(cfg.RateLimit)
	if err != nil {
		return err
	}

	setupAPIV1Routes(r, cfg, deps, middleware.RateLimit(heavy))
	setupSwaggerRoutes(r, cfg)
	return nil
}

func corsConfig(cfg *config.Config) cors.Config {
	c := cors.DefaultConfig()
	if len(cfg.CORSAllowedOrigins) == 0 {
		c.AllowAllOrigins = true
	} else {
		c.AllowOrigins = cfg.CORSAllowedOrigins
	}
	c.AddAllowHeaders("Authorization", middleware.RequestIDHeader)
	c.AddExposeHeaders(middleware.RequestIDHeader, "Content-Disposition")
	return c
}

// setupAPIV1Routes configures the /api/v1 group and delegates to specific entity route registrations
func setupAPIV1Routes(r *gin.Engine, cfg *config.Config, deps RouterDeps, heavy gin.HandlerFunc) {
	v1 := r.Group("/api/v1", middleware.AuthMiddleware(cfg.JWTSecret, cfg.JWTIssuer), middleware.PosthogMiddleware(deps.Posthog))
	v1.GET("", getHome)

	org := v1.Group("/organizations/:organization_id")
	RegisterStatementRoutes(org, deps.Services.Statement, cfg.MaxUploadBytes, heavy)
	RegisterLedgerRoutes(org, deps.Services.Ledger)
	RegisterReconciliationRoutes(org, deps.Services.Reconciliation, heavy)
	RegisterPeriodRoutes(org, deps.Services.Period)
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
