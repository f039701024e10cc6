package handlers

import (
	"github.com/gin-gonic/gin"

	portssvc "github.com/anygroup/splitfair/internal/core/ports/services"
	"github.com/anygroup/splitfair/internal/middleware"
	"github.com/anygroup/splitfair/internal/platform/metrics"
	"github.com/anygroup/splitfair/pkg/config"
)

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
) {

	// Add health check route
	r.GET("/health", func(c *gin.Context) {
		c.String(200, "OK")
	})

	r.GET("/metrics", metrics.Handler())

	// Setup API v1 routes with identity middleware, passing service interfaces
	setupAPIV1Routes(r, cfg, services)
}

// setupAPIV1Routes configures the /api/v1 group and delegates to specific entity route registrations
func setupAPIV1Routes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
) {
	v1 := r.Group("/api/v1", middleware.Identity())

	registerExpenseRoutes(v1, services.Expense)
	registerDebtRoutes(v1, services.Debt)
}
