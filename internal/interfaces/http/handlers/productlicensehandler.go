package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"keymint/internal/application/licensing/usecases"
	"keymint/internal/interfaces/http/middleware"
	"keymint/internal/shared/logger"
	"keymint/internal/shared/utils"
)

// ProductLicenseHandler handles the product-facing entitlement API used by
// installed product instances: seat activation, deactivation and status
// checks. The license key arrives via the X-License-Key header.
type ProductLicenseHandler struct {
	activateUC    activateLicenseUseCase
	deactivateUC  deactivateLicenseUseCase
	checkStatusUC checkStatusUseCase
	logger        logger.Interface
}

// NewProductLicenseHandler creates a new product license handler
func NewProductLicenseHandler(
	activateUC activateLicenseUseCase,
	deactivateUC deactivateLicenseUseCase,
	checkStatusUC checkStatusUseCase,
	logger logger.Interface,
) *ProductLicenseHandler {
	return &ProductLicenseHandler{
		activateUC:    activateUC,
		deactivateUC:  deactivateUC,
		checkStatusUC: checkStatusUC,
		logger:        logger,
	}
}

// SeatRequest represents an activate or deactivate call from a product instance
type SeatRequest struct {
	ProductSlug string `json:"product_slug" binding:"required"`
	InstanceID  string `json:"instance_id" binding:"required,max=255"`
}

func (h *ProductLicenseHandler) Activate(c *gin.Context) {
	licenseKey, ok := middleware.LicenseKey(c)
	if !ok {
		utils.ErrorResponse(c, http.StatusUnauthorized, "license key not provided")
		return
	}

	var req SeatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for activate", "error", err)
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	cmd := usecases.ActivateLicenseCommand{
		LicenseKey:  licenseKey,
		ProductSlug: req.ProductSlug,
		InstanceID:  req.InstanceID,
	}

	result, err := h.activateUC.Execute(c.Request.Context(), cmd)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Seat activated successfully", result)
}

func (h *ProductLicenseHandler) Deactivate(c *gin.Context) {
	licenseKey, ok := middleware.LicenseKey(c)
	if !ok {
		utils.ErrorResponse(c, http.StatusUnauthorized, "license key not provided")
		return
	}

	var req SeatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for deactivate", "error", err)
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	cmd := usecases.DeactivateLicenseCommand{
		LicenseKey:  licenseKey,
		ProductSlug: req.ProductSlug,
		InstanceID:  req.InstanceID,
	}

	result, err := h.deactivateUC.Execute(c.Request.Context(), cmd)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Seat deactivated successfully", result)
}

func (h *ProductLicenseHandler) Check(c *gin.Context) {
	licenseKey, ok := middleware.LicenseKey(c)
	if !ok {
		utils.ErrorResponse(c, http.StatusUnauthorized, "license key not provided")
		return
	}

	cmd := usecases.CheckStatusCommand{LicenseKey: licenseKey}

	result, err := h.checkStatusUC.Execute(c.Request.Context(), cmd)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "License status retrieved successfully", result)
}
