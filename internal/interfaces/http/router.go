// Package http wires the HTTP interface layer: repositories, use cases,
// handlers, middleware and routes.
package http

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"keymint/internal/application/licensing/usecases"
	"keymint/internal/infrastructure/config"
	"keymint/internal/infrastructure/repository"
	"keymint/internal/interfaces/http/handlers"
	"keymint/internal/interfaces/http/middleware"
	"keymint/internal/interfaces/http/routes"
	"keymint/internal/shared/db"
	"keymint/internal/shared/keygen"
	"keymint/internal/shared/logger"
)

// Router represents the HTTP router configuration
type Router struct {
	engine                *gin.Engine
	brandLicenseHandler   *handlers.BrandLicenseHandler
	productLicenseHandler *handlers.ProductLicenseHandler
	healthHandler         *handlers.HealthHandler
	brandAuthMiddleware   *middleware.BrandAuthMiddleware
	cfg                   *config.Config
	log                   logger.Interface
}

// NewRouter creates a new HTTP router with all dependencies
func NewRouter(database *gorm.DB, cfg *config.Config, log logger.Interface) *Router {
	engine := gin.New()

	brandRepo := repository.NewBrandRepository(database, log)
	productRepo := repository.NewProductRepository(database, log)
	keyRepo := repository.NewLicenseKeyRepository(database, log)
	licenseRepo := repository.NewLicenseRepository(database, log)
	activationRepo := repository.NewActivationRepository(database, log)

	txManager := db.NewTransactionManager(database)
	keyGen := keygen.NewGenerator(cfg.Licensing.KeyGenMaxAttempts)

	provisionUC := usecases.NewProvisionLicenseUseCase(keyRepo, licenseRepo, productRepo, brandRepo, activationRepo, keyGen, txManager, log)
	addProductUC := usecases.NewAddProductUseCase(keyRepo, licenseRepo, productRepo, log)
	changeLifecycleUC := usecases.NewChangeLifecycleUseCase(licenseRepo, keyRepo, productRepo, activationRepo, log)
	listByEmailUC := usecases.NewListByEmailUseCase(keyRepo, licenseRepo, productRepo, activationRepo, brandRepo, log)
	activateUC := usecases.NewActivateLicenseUseCase(keyRepo, licenseRepo, productRepo, activationRepo, txManager, log)
	deactivateUC := usecases.NewDeactivateLicenseUseCase(keyRepo, licenseRepo, productRepo, activationRepo, txManager, log)
	checkStatusUC := usecases.NewCheckStatusUseCase(keyRepo, licenseRepo, productRepo, activationRepo, brandRepo, log)

	brandLicenseHandler := handlers.NewBrandLicenseHandler(provisionUC, addProductUC, changeLifecycleUC, listByEmailUC, log)
	productLicenseHandler := handlers.NewProductLicenseHandler(activateUC, deactivateUC, checkStatusUC, log)
	healthHandler := handlers.NewHealthHandler(database)

	brandAuthMiddleware := middleware.NewBrandAuthMiddleware(brandRepo, log)

	return &Router{
		engine:                engine,
		brandLicenseHandler:   brandLicenseHandler,
		productLicenseHandler: productLicenseHandler,
		healthHandler:         healthHandler,
		brandAuthMiddleware:   brandAuthMiddleware,
		cfg:                   cfg,
		log:                   log,
	}
}

// Setup configures global middleware and registers all routes
func (r *Router) Setup() {
	r.engine.Use(middleware.Recovery())
	r.engine.Use(middleware.CustomLogger(r.log))
	r.engine.Use(middleware.CORS(r.cfg.Server.AllowedOrigins))
	r.engine.Use(middleware.ErrorHandler())

	r.engine.GET("/api/health", r.healthHandler.Check)

	routes.SetupBrandRoutes(r.engine, &routes.BrandRouteConfig{
		BrandLicenseHandler: r.brandLicenseHandler,
		BrandAuthMiddleware: r.brandAuthMiddleware,
	})

	routes.SetupProductRoutes(r.engine, &routes.ProductRouteConfig{
		ProductLicenseHandler: r.productLicenseHandler,
	})
}

// Engine returns the underlying gin engine
func (r *Router) Engine() *gin.Engine {
	return r.engine
}
