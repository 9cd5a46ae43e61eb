package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	apierrors "github.com/taxoapp/taxo/internal/errors"
	"github.com/taxoapp/taxo/internal/models"
	"github.com/taxoapp/taxo/internal/services"
)

// TaxHandler handles tax estimation and payment HTTP requests.
type TaxHandler struct {
	service services.TaxService
}

// NewTaxHandler creates a new TaxHandler instance.
func NewTaxHandler(service services.TaxService) *TaxHandler {
	return &TaxHandler{
		service: service,
	}
}

// EstimateRequest represents the query parameters for the tax estimate
// endpoint. A zero value is valid, so the field carries no required tag.
type EstimateRequest struct {
	Value float64 `form:"value" binding:"gte=0"`
}

// EstimateResponse represents the response for the tax estimate endpoint.
type EstimateResponse struct {
	PropertyID    string  `json:"property_id"`
	PropertyType  string  `json:"property_type"`
	PropertyValue float64 `json:"property_value"`
	TaxRate       float64 `json:"tax_rate"`
	TaxAmount     float64 `json:"tax_amount"`
}

// RecordPaymentRequest represents the body for the payment endpoint.
// Amount is unconstrained on purpose: duplicate and arbitrary-amount
// payments are accepted.
type RecordPaymentRequest struct {
	Amount float64 `json:"amount"`
}

// PaymentHistoryResponse represents the response for the payment history
// endpoint.
type PaymentHistoryResponse struct {
	Payments []models.Payment `json:"payments"`
	Count    int              `json:"count"`
}

// Estimate handles GET /api/v1/properties/:propertyID/tax.
// It computes the tax owed on the supplied value using the stored
// property's type and the fixed rate table.
func (h *TaxHandler) Estimate(c *gin.Context) {
	propertyID := c.Param("propertyID")

	var req EstimateRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		if validationErrors, ok := err.(validator.ValidationErrors); ok {
			apierrors.ValidationError(c, validationErrors)
			return
		}
		apierrors.BadRequest(c, "Invalid query parameters", nil)
		return
	}

	estimate, err := h.service.EstimateTax(c.Request.Context(), propertyID, req.Value)
	if err != nil {
		if errors.Is(err, services.ErrPropertyNotFound) {
			apierrors.NotFound(c, "No property found with this ID")
			return
		}
		if errors.Is(err, services.ErrUnknownPropertyType) || errors.Is(err, services.ErrNegativePropertyValue) {
			apierrors.BadRequest(c, err.Error(), nil)
			return
		}
		apierrors.InternalServerError(c, "Failed to estimate tax", err)
		return
	}

	c.JSON(http.StatusOK, EstimateResponse{
		PropertyID:    estimate.PropertyID,
		PropertyType:  string(estimate.PropertyType),
		PropertyValue: estimate.PropertyValue,
		TaxRate:       estimate.TaxRate,
		TaxAmount:     estimate.TaxAmount,
	})
}

// RecordPayment handles POST /api/v1/properties/:propertyID/payments.
// The payment date is server-assigned at insert time.
func (h *TaxHandler) RecordPayment(c *gin.Context) {
	propertyID := c.Param("propertyID")

	var req RecordPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		if validationErrors, ok := err.(validator.ValidationErrors); ok {
			apierrors.ValidationError(c, validationErrors)
			return
		}
		apierrors.BadRequest(c, "Invalid request body", nil)
		return
	}

	payment, err := h.service.RecordPayment(c.Request.Context(), propertyID, req.Amount)
	if err != nil {
		apierrors.InternalServerError(c, "Failed to record payment", err)
		return
	}

	c.JSON(http.StatusCreated, payment)
}

// PaymentHistory handles GET /api/v1/properties/:propertyID/payments.
// Returns all payments for the property in insertion order.
func (h *TaxHandler) PaymentHistory(c *gin.Context) {
	propertyID := c.Param("propertyID")

	payments, err := h.service.GetPaymentHistory(c.Request.Context(), propertyID)
	if err != nil {
		apierrors.InternalServerError(c, "Failed to list payments", err)
		return
	}

	c.JSON(http.StatusOK, PaymentHistoryResponse{
		Payments: payments,
		Count:    len(payments),
	})
}
