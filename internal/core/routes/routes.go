package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/blazinaj/roboconfig-sub000/internal/core/container"
	"github.com/blazinaj/roboconfig-sub000/internal/middleware"
	"github.com/blazinaj/roboconfig-sub000/pkg/security"
)

// RegisterPublicRoutes mounts endpoints reachable without a JWT: login and
// the payments webhook, which authenticates with its signature header.
func RegisterPublicRoutes(router *gin.Engine, container *container.Container) {
	container.LoginHandler.RegisterRoutes(router)

	public := router.Group("")
	container.PaymentsHandler.RegisterPublicRoutes(public)
}

func RegisterProtectedRoutes(router *gin.Engine, container *container.Container) {
	protectedRoutes := router.Group("")
	protectedRoutes.Use(security.JWTMiddleware())

	container.ComponentHandler.RegisterRoutes(protectedRoutes)
	container.InventoryHandler.RegisterRoutes(protectedRoutes)
	container.MachineHandler.RegisterRoutes(protectedRoutes)
	container.OrderHandler.RegisterRoutes(protectedRoutes)
	container.SupplierHandler.RegisterRoutes(protectedRoutes)
	container.OrganizationHandler.RegisterRoutes(protectedRoutes)
	container.UserHandler.RegisterRoutes(protectedRoutes)
	container.PricingHandler.RegisterRoutes(protectedRoutes)
	container.AssistantHandler.RegisterRoutes(protectedRoutes)
	container.PaymentsHandler.RegisterRoutes(protectedRoutes)
	container.AuditLogHandler.RegisterRoutes(protectedRoutes)
}

func RegisterUtilityRoutes(router *gin.Engine) {
	router.GET("/health", middleware.HealthCheckMiddleware())
}
