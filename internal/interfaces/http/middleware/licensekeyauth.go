package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"keymint/internal/shared/constants"
	"keymint/internal/shared/keygen"
	"keymint/internal/shared/utils"
)

// RequireLicenseKey extracts the customer's license key from the request
// header. Only the shape is checked here; whether the key exists is decided
// by the use case, which reports unknown and foreign keys identically.
func RequireLicenseKey() gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.GetHeader(constants.HeaderXLicenseKey)
		if key == "" {
			utils.ErrorResponse(c, http.StatusUnauthorized, "missing license key")
			c.Abort()
			return
		}
		if !keygen.IsWellFormed(key) {
			utils.ErrorResponse(c, http.StatusUnauthorized, "malformed license key")
			c.Abort()
			return
		}

		c.Set(constants.ContextKeyLicenseKey, key)
		c.Next()
	}
}

// LicenseKey extracts the license key set by RequireLicenseKey.
func LicenseKey(c *gin.Context) (string, bool) {
	v, exists := c.Get(constants.ContextKeyLicenseKey)
	if !exists {
		return "", false
	}
	key, ok := v.(string)
	return key, ok
}
