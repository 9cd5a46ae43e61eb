package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	apierrors "github.com/taxoapp/taxo/internal/errors"
	"github.com/taxoapp/taxo/internal/middleware"
	"github.com/taxoapp/taxo/internal/models"
	"github.com/taxoapp/taxo/internal/services"
)

// PropertyHandler handles property-related HTTP requests.
type PropertyHandler struct {
	service services.PropertyService
}

// NewPropertyHandler creates a new PropertyHandler instance.
func NewPropertyHandler(service services.PropertyService) *PropertyHandler {
	return &PropertyHandler{
		service: service,
	}
}

// RegisterPropertyRequest represents the body for the property registration
// endpoint. The type choice set mirrors the fixed options the form layer
// offers; the service re-validates it regardless. Size is free text.
type RegisterPropertyRequest struct {
	PropertyID       string `json:"property_id" binding:"required"`
	Address          string `json:"address" binding:"required"`
	Size             string `json:"size" binding:"required"`
	Type             string `json:"type" binding:"required,oneof=Residential Commercial Industrial"`
	OwnershipDetails string `json:"ownership_details"`
}

// PropertyListResponse represents the response for the property list endpoint.
type PropertyListResponse struct {
	Properties []models.Property `json:"properties"`
	Count      int               `json:"count"`
}

// Register handles POST /api/v1/properties.
// The new property is owned by the session identity.
func (h *PropertyHandler) Register(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		apierrors.Unauthorized(c, "Session identity is required")
		return
	}

	var req RegisterPropertyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		if validationErrors, ok := err.(validator.ValidationErrors); ok {
			apierrors.ValidationError(c, validationErrors)
			return
		}
		apierrors.BadRequest(c, "Invalid request body", nil)
		return
	}

	property, err := h.service.RegisterProperty(c.Request.Context(), userID, services.RegisterPropertyInput{
		PropertyID:       req.PropertyID,
		Address:          req.Address,
		Size:             req.Size,
		Type:             models.PropertyType(req.Type),
		OwnershipDetails: req.OwnershipDetails,
	})
	if err != nil {
		if errors.Is(err, services.ErrPropertyIDTaken) {
			apierrors.Conflict(c, "Property ID already registered")
			return
		}
		if errors.Is(err, services.ErrUnknownPropertyType) {
			apierrors.BadRequest(c, err.Error(), nil)
			return
		}
		apierrors.InternalServerError(c, "Failed to register property", err)
		return
	}

	c.JSON(http.StatusCreated, property)
}

// List handles GET /api/v1/properties.
// Returns only the session user's properties, in insertion order.
func (h *PropertyHandler) List(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		apierrors.Unauthorized(c, "Session identity is required")
		return
	}

	properties, err := h.service.ListProperties(c.Request.Context(), userID)
	if err != nil {
		apierrors.InternalServerError(c, "Failed to list properties", err)
		return
	}

	c.JSON(http.StatusOK, PropertyListResponse{
		Properties: properties,
		Count:      len(properties),
	})
}
