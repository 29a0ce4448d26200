package routes

import (
	"github.com/gin-gonic/gin"

	"keymint/internal/interfaces/http/handlers"
	"keymint/internal/interfaces/http/middleware"
)

type ProductRouteConfig struct {
	ProductLicenseHandler *handlers.ProductLicenseHandler
}

// SetupProductRoutes registers the product-facing entitlement API called by
// installed product instances. The license key travels in the X-License-Key
// header rather than the body so the three endpoints share one auth path.
func SetupProductRoutes(engine *gin.Engine, config *ProductRouteConfig) {
	product := engine.Group("/api/product")
	product.Use(middleware.RequireLicenseKey())
	{
		product.POST("/activate", config.ProductLicenseHandler.Activate)
		product.POST("/deactivate", config.ProductLicenseHandler.Deactivate)
		product.GET("/check", config.ProductLicenseHandler.Check)
	}
}
