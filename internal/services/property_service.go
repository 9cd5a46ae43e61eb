package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/taxoapp/taxo/internal/logger"
	"github.com/taxoapp/taxo/internal/models"
	"github.com/taxoapp/taxo/internal/repository"
)

// Service-level errors
var (
	ErrPropertyIDTaken     = errors.New("property id already registered")
	ErrPropertyNotFound    = errors.New("property not found")
	ErrUnknownPropertyType = errors.New("unknown property type")
)

// RegisterPropertyInput carries the caller-supplied fields for a new property.
type RegisterPropertyInput struct {
	PropertyID       string
	Address          string
	Size             string
	Type             models.PropertyType
	OwnershipDetails string
}

// PropertyService defines the interface for property business logic operations.
type PropertyService interface {
	// RegisterProperty inserts a new property owned by userID.
	// Returns ErrPropertyIDTaken if the external property id already exists
	// anywhere in the store, even under a different user.
	// Returns ErrUnknownPropertyType if the type is not one of the three
	// enumerated values.
	RegisterProperty(ctx context.Context, userID int64, input RegisterPropertyInput) (*models.Property, error)

	// ListProperties returns all properties owned by userID in insertion
	// order. Returns an empty slice if none (not an error).
	ListProperties(ctx context.Context, userID int64) ([]models.Property, error)

	// GetProperty looks up a property by its external id.
	// Returns ErrPropertyNotFound if no such property exists.
	GetProperty(ctx context.Context, propertyID string) (*models.Property, error)
}

// propertyService is the concrete implementation of PropertyService.
type propertyService struct {
	properties repository.PropertyRepository
	log        *logger.Logger
}

// NewPropertyService creates a new instance of PropertyService.
func NewPropertyService(properties repository.PropertyRepository, log *logger.Logger) PropertyService {
	return &propertyService{
		properties: properties,
		log:        log,
	}
}

// RegisterProperty validates the property type and inserts the row.
// Size is stored exactly as supplied; no numeric parsing or range checking.
func (s *propertyService) RegisterProperty(ctx context.Context, userID int64, input RegisterPropertyInput) (*models.Property, error) {
	if !input.Type.Valid() {
		s.log.Warn("Invalid property type provided", map[string]interface{}{
			"user_id": userID,
			"type":    string(input.Type),
		})
		return nil, fmt.Errorf("%w: %q", ErrUnknownPropertyType, input.Type)
	}

	property := &models.Property{
		UserID:           userID,
		PropertyID:       input.PropertyID,
		Address:          input.Address,
		Size:             input.Size,
		Type:             input.Type,
		OwnershipDetails: input.OwnershipDetails,
	}

	created, err := s.properties.Create(ctx, property)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			s.log.Warn("Property registration rejected: id taken", map[string]interface{}{
				"user_id":     userID,
				"property_id": input.PropertyID,
			})
			return nil, ErrPropertyIDTaken
		}
		s.log.Error("Failed to create property", err, map[string]interface{}{
			"user_id":     userID,
			"property_id": input.PropertyID,
		})
		return nil, fmt.Errorf("failed to register property: %w", err)
	}

	s.log.Info("Property registered", map[string]interface{}{
		"user_id":     userID,
		"property_id": created.PropertyID,
		"type":        string(created.Type),
	})

	return created, nil
}

// ListProperties returns the caller's properties, id ascending.
func (s *propertyService) ListProperties(ctx context.Context, userID int64) ([]models.Property, error) {
	properties, err := s.properties.ListByUser(ctx, userID)
	if err != nil {
		s.log.Error("Failed to list properties", err, map[string]interface{}{
			"user_id": userID,
		})
		return nil, fmt.Errorf("failed to list properties: %w", err)
	}

	s.log.Debug("Properties listed", map[string]interface{}{
		"user_id": userID,
		"count":   len(properties),
	})

	return properties, nil
}

// GetProperty resolves a property by its external id, transforming the
// repository's nil result into a domain error.
func (s *propertyService) GetProperty(ctx context.Context, propertyID string) (*models.Property, error) {
	property, err := s.properties.FindByPropertyID(ctx, propertyID)
	if err != nil {
		s.log.Error("Failed to look up property", err, map[string]interface{}{
			"property_id": propertyID,
		})
		return nil, fmt.Errorf("failed to look up property: %w", err)
	}

	if property == nil {
		return nil, ErrPropertyNotFound
	}

	return property, nil
}
