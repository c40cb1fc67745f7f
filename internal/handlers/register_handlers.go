package handlers

import (
	"github.com/gin-gonic/gin"

	portssvc "github.com/vendasys/vendas_pos_app/internal/core/ports/services"
	"github.com/vendasys/vendas_pos_app/internal/middleware"
	"github.com/vendasys/vendas_pos_app/internal/platform/config"
)

// RegisterRoutes sets up all application routes, injecting dependencies
// through the service container.
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
) {
	r.GET("/health", func(c *gin.Context) {
		c.String(200, "OK")
	})

	// Public authentication routes.
	registerAuthRoutes(r, cfg, services)

	setupAPIV1Routes(r, cfg, services)
}

// setupAPIV1Routes configures the authenticated /api/v1 group and delegates
// to per-entity registrations.
func setupAPIV1Routes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
) {
	v1 := r.Group("/api/v1", middleware.AuthMiddleware(cfg.JWTSecret))

	registerUserRoutes(v1, services.User)
	registerProductRoutes(v1, services.Product)
	registerPartyRoutes(v1, services.Customer, services.Supplier)
	registerCheckoutRoutes(v1, services.Checkout)
	registerStockRoutes(v1, cfg, services.Stock)
	registerSaleRoutes(v1, services.Sale)
	registerReportingRoutes(v1, services.Reporting)
}
