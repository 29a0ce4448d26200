package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"keymint/internal/application/licensing/usecases"
	"keymint/internal/interfaces/http/middleware"
	"keymint/internal/shared/id"
	"keymint/internal/shared/keygen"
	"keymint/internal/shared/logger"
	"keymint/internal/shared/utils"
)

// BrandLicenseHandler handles the brand-facing license management API.
// All routes sit behind the brand API key middleware, so every operation
// is already scoped to one authenticated brand.
type BrandLicenseHandler struct {
	provisionUC       provisionLicenseUseCase
	addProductUC      addProductUseCase
	changeLifecycleUC changeLifecycleUseCase
	listByEmailUC     listByEmailUseCase
	logger            logger.Interface
}

// NewBrandLicenseHandler creates a new brand license handler
func NewBrandLicenseHandler(
	provisionUC provisionLicenseUseCase,
	addProductUC addProductUseCase,
	changeLifecycleUC changeLifecycleUseCase,
	listByEmailUC listByEmailUseCase,
	logger logger.Interface,
) *BrandLicenseHandler {
	return &BrandLicenseHandler{
		provisionUC:       provisionUC,
		addProductUC:      addProductUC,
		changeLifecycleUC: changeLifecycleUC,
		listByEmailUC:     listByEmailUC,
		logger:            logger,
	}
}

// ProductGrantRequest represents one product line in a provisioning request
type ProductGrantRequest struct {
	Slug      string     `json:"slug" binding:"required"`
	ExpiresAt *time.Time `json:"expires_at"`
	MaxSeats  *int       `json:"max_seats" binding:"omitempty,min=1"`
}

// ProvisionLicenseRequest represents a purchase notification from a brand's store
type ProvisionLicenseRequest struct {
	CustomerEmail string                `json:"customer_email" binding:"required,email"`
	Products      []ProductGrantRequest `json:"products" binding:"required,min=1,dive"`
}

// AddProductRequest represents the request to grant one more product under an existing key
type AddProductRequest struct {
	Slug      string     `json:"slug" binding:"required"`
	ExpiresAt *time.Time `json:"expires_at"`
	MaxSeats  *int       `json:"max_seats" binding:"omitempty,min=1"`
}

// ChangeLifecycleRequest represents a lifecycle action on a single license
type ChangeLifecycleRequest struct {
	Action    string     `json:"action" binding:"required,oneof=suspend resume cancel renew"`
	ExpiresAt *time.Time `json:"expires_at"`
}

func (h *BrandLicenseHandler) ProvisionLicense(c *gin.Context) {
	brandID, ok := middleware.BrandID(c)
	if !ok {
		utils.ErrorResponse(c, http.StatusUnauthorized, "brand not authenticated")
		return
	}

	var req ProvisionLicenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for provision license", "error", err)
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	products := make([]usecases.ProductRequest, 0, len(req.Products))
	for _, p := range req.Products {
		products = append(products, usecases.ProductRequest{
			Slug:      p.Slug,
			ExpiresAt: normalizeTime(p.ExpiresAt),
			MaxSeats:  p.MaxSeats,
		})
	}

	cmd := usecases.ProvisionLicenseCommand{
		BrandID:       brandID,
		CustomerEmail: req.CustomerEmail,
		Products:      products,
	}

	result, err := h.provisionUC.Execute(c.Request.Context(), cmd)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	if result.Created {
		utils.CreatedResponse(c, result, "License key provisioned successfully")
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "Licenses updated successfully", result)
}

func (h *BrandLicenseHandler) AddProduct(c *gin.Context) {
	brandID, ok := middleware.BrandID(c)
	if !ok {
		utils.ErrorResponse(c, http.StatusUnauthorized, "brand not authenticated")
		return
	}

	licenseKey := c.Param("license_key")
	if !keygen.IsWellFormed(licenseKey) {
		utils.ErrorResponse(c, http.StatusBadRequest, "malformed license key")
		return
	}

	var req AddProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for add product", "error", err)
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	cmd := usecases.AddProductCommand{
		BrandID:    brandID,
		LicenseKey: licenseKey,
		Slug:       req.Slug,
		ExpiresAt:  normalizeTime(req.ExpiresAt),
		MaxSeats:   req.MaxSeats,
	}

	result, err := h.addProductUC.Execute(c.Request.Context(), cmd)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, result, "Product licensed successfully")
}

func (h *BrandLicenseHandler) ChangeLifecycle(c *gin.Context) {
	brandID, ok := middleware.BrandID(c)
	if !ok {
		utils.ErrorResponse(c, http.StatusUnauthorized, "brand not authenticated")
		return
	}

	licenseID := c.Param("license_id")
	if err := id.ValidatePrefix(licenseID, id.PrefixLicense); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid license ID format, expected lic_xxxxx")
		return
	}

	var req ChangeLifecycleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for lifecycle change", "error", err)
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	cmd := usecases.ChangeLifecycleCommand{
		BrandID:      brandID,
		LicenseID:    licenseID,
		Action:       req.Action,
		NewExpiresAt: normalizeTime(req.ExpiresAt),
	}

	result, err := h.changeLifecycleUC.Execute(c.Request.Context(), cmd)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "License updated successfully", result)
}

func (h *BrandLicenseHandler) ListByEmail(c *gin.Context) {
	if _, ok := middleware.BrandID(c); !ok {
		utils.ErrorResponse(c, http.StatusUnauthorized, "brand not authenticated")
		return
	}

	email := c.Query("email")
	if email == "" {
		utils.ErrorResponse(c, http.StatusBadRequest, "email query parameter is required")
		return
	}

	cmd := usecases.ListByEmailCommand{CustomerEmail: email}

	result, err := h.listByEmailUC.Execute(c.Request.Context(), cmd)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Customer keys retrieved successfully", result)
}

// normalizeTime converts an optional timestamp to UTC.
func normalizeTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	u := t.UTC()
	return &u
}
