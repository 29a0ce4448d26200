package routes

import (
	"github.com/gin-gonic/gin"

	"keymint/internal/interfaces/http/handlers"
	"keymint/internal/interfaces/http/middleware"
)

type BrandRouteConfig struct {
	BrandLicenseHandler *handlers.BrandLicenseHandler
	BrandAuthMiddleware *middleware.BrandAuthMiddleware
}

// SetupBrandRoutes registers the brand-facing license management API.
// Every route requires a valid brand API key.
func SetupBrandRoutes(engine *gin.Engine, config *BrandRouteConfig) {
	licenses := engine.Group("/api/brand/licenses")
	licenses.Use(config.BrandAuthMiddleware.RequireBrand())
	{
		// Specific paths before parameterized ones to avoid route conflicts
		licenses.GET("/by-email", config.BrandLicenseHandler.ListByEmail)

		licenses.POST("", config.BrandLicenseHandler.ProvisionLicense)
		licenses.POST("/:license_key/add-product", config.BrandLicenseHandler.AddProduct)
		licenses.PATCH("/:license_id/lifecycle", config.BrandLicenseHandler.ChangeLifecycle)
	}
}
