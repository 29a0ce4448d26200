package constants

const (
	// Environment constants
	EnvDevelopment = "development"
	EnvTest        = "test"
	EnvProduction  = "production"

	// HTTP Headers
	HeaderContentType   = "Content-Type"
	HeaderXRequestID    = "X-Request-ID"
	HeaderXAPIKey       = "X-API-Key"
	HeaderXLicenseKey   = "X-License-Key"
	HeaderXForwardedFor = "X-Forwarded-For"
	HeaderUserAgent     = "User-Agent"

	// Content Types
	ContentTypeJSON = "application/json"

	// Context keys
	ContextKeyBrandID    = "brand_id"
	ContextKeyBrandName  = "brand_name"
	ContextKeyLicenseKey = "license_key"
	ContextKeyRequestID  = "request_id"

	// Table names
	TableBrands      = "brands"
	TableProducts    = "products"
	TableLicenseKeys = "license_keys"
	TableLicenses    = "licenses"
	TableActivations = "activations"
)
