package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"keymint/internal/domain/brand"
	"keymint/internal/shared/constants"
	"keymint/internal/shared/logger"
	"keymint/internal/shared/utils"
)

// BrandAuthMiddleware authenticates brand-facing requests by API key.
// Every brand endpoint is scoped to the authenticated brand; the resolved
// brand ID is the only tenant identifier downstream code may use.
type BrandAuthMiddleware struct {
	brandRepo brand.Repository
	logger    logger.Interface
}

func NewBrandAuthMiddleware(brandRepo brand.Repository, logger logger.Interface) *BrandAuthMiddleware {
	return &BrandAuthMiddleware{
		brandRepo: brandRepo,
		logger:    logger,
	}
}

func (m *BrandAuthMiddleware) RequireBrand() gin.HandlerFunc {
	return func(c *gin.Context) {
		apiKey := c.GetHeader(constants.HeaderXAPIKey)
		if apiKey == "" {
			utils.ErrorResponse(c, http.StatusUnauthorized, "missing API key")
			c.Abort()
			return
		}

		b, err := m.brandRepo.GetByAPIKey(c.Request.Context(), apiKey)
		if err != nil {
			m.logger.Errorw("brand lookup failed", "error", err, "ip", c.ClientIP())
			utils.ErrorResponse(c, http.StatusInternalServerError, "Internal server error occurred")
			c.Abort()
			return
		}
		if b == nil {
			m.logger.Warnw("unknown API key", "ip", c.ClientIP())
			utils.ErrorResponse(c, http.StatusUnauthorized, "invalid API key")
			c.Abort()
			return
		}
		if !b.IsActive() {
			m.logger.Warnw("API key of deactivated brand", "brand", b.Name(), "ip", c.ClientIP())
			utils.ErrorResponse(c, http.StatusForbidden, "brand is deactivated")
			c.Abort()
			return
		}

		c.Set(constants.ContextKeyBrandID, b.ID())
		c.Set(constants.ContextKeyBrandName, b.Name())
		c.Next()
	}
}

// BrandID extracts the authenticated brand ID set by RequireBrand.
func BrandID(c *gin.Context) (uint, bool) {
	v, exists := c.Get(constants.ContextKeyBrandID)
	if !exists {
		return 0, false
	}
	brandID, ok := v.(uint)
	return brandID, ok
}
