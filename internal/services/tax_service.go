package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/taxoapp/taxo/internal/logger"
	"github.com/taxoapp/taxo/internal/models"
	"github.com/taxoapp/taxo/internal/repository"
)

// ErrNegativePropertyValue is returned when a tax computation is requested
// for a negative property value.
var ErrNegativePropertyValue = errors.New("property value must be non-negative")

// TaxEstimate is the result of computing tax for a stored property.
type TaxEstimate struct {
	PropertyID    string
	PropertyType  models.PropertyType
	PropertyValue float64
	TaxRate       float64
	TaxAmount     float64
}

// TaxService defines the interface for tax computation and payment operations.
type TaxService interface {
	// ComputeTax applies the fixed rate table to a property value.
	// Returns ErrUnknownPropertyType for a type outside the enumerated set
	// and ErrNegativePropertyValue for a negative value.
	ComputeTax(propertyType models.PropertyType, value float64) (float64, error)

	// EstimateTax resolves the stored property's type and computes the tax
	// owed on the given value.
	// Returns ErrPropertyNotFound if the property id is unknown.
	EstimateTax(ctx context.Context, propertyID string, value float64) (*TaxEstimate, error)

	// RecordPayment appends a payment with a server-assigned timestamp.
	// By design there is no check that the property exists, that the amount
	// matches a computed tax, or that the period was already paid.
	RecordPayment(ctx context.Context, propertyID string, amount float64) (*models.Payment, error)

	// GetPaymentHistory returns all payments for the property in insertion
	// order. Returns an empty slice if none (not an error).
	GetPaymentHistory(ctx context.Context, propertyID string) ([]models.Payment, error)
}

// taxService is the concrete implementation of TaxService.
type taxService struct {
	properties repository.PropertyRepository
	payments   repository.PaymentRepository
	log        *logger.Logger
}

// NewTaxService creates a new instance of TaxService.
func NewTaxService(properties repository.PropertyRepository, payments repository.PaymentRepository, log *logger.Logger) TaxService {
	return &taxService{
		properties: properties,
		payments:   payments,
		log:        log,
	}
}

// ComputeTax is a pure computation against the fixed rate table.
func (s *taxService) ComputeTax(propertyType models.PropertyType, value float64) (float64, error) {
	rate, ok := models.TaxRates[propertyType]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownPropertyType, propertyType)
	}
	if value < 0 {
		return 0, fmt.Errorf("%w: got %f", ErrNegativePropertyValue, value)
	}
	return value * rate, nil
}

// EstimateTax computes the tax owed on value using the stored property's type.
func (s *taxService) EstimateTax(ctx context.Context, propertyID string, value float64) (*TaxEstimate, error) {
	property, err := s.properties.FindByPropertyID(ctx, propertyID)
	if err != nil {
		s.log.Error("Failed to look up property for tax estimate", err, map[string]interface{}{
			"property_id": propertyID,
		})
		return nil, fmt.Errorf("failed to estimate tax: %w", err)
	}

	if property == nil {
		s.log.Debug("Tax estimate requested for unknown property", map[string]interface{}{
			"property_id": propertyID,
		})
		return nil, ErrPropertyNotFound
	}

	amount, err := s.ComputeTax(property.Type, value)
	if err != nil {
		return nil, err
	}

	s.log.Info("Tax estimated", map[string]interface{}{
		"property_id": propertyID,
		"type":        string(property.Type),
		"value":       value,
		"amount":      amount,
	})

	return &TaxEstimate{
		PropertyID:    property.PropertyID,
		PropertyType:  property.Type,
		PropertyValue: value,
		TaxRate:       models.TaxRates[property.Type],
		TaxAmount:     amount,
	}, nil
}

// RecordPayment appends a payment row stamped with the current server time.
func (s *taxService) RecordPayment(ctx context.Context, propertyID string, amount float64) (*models.Payment, error) {
	paymentDate := time.Now().Format(models.PaymentDateFormat)

	payment, err := s.payments.Create(ctx, propertyID, amount, paymentDate)
	if err != nil {
		s.log.Error("Failed to record payment", err, map[string]interface{}{
			"property_id": propertyID,
			"amount":      amount,
		})
		return nil, fmt.Errorf("failed to record payment: %w", err)
	}

	s.log.Info("Payment recorded", map[string]interface{}{
		"property_id":  payment.PropertyID,
		"amount":       payment.Amount,
		"payment_date": payment.PaymentDate,
	})

	return payment, nil
}

// GetPaymentHistory returns the property's payments, id ascending.
func (s *taxService) GetPaymentHistory(ctx context.Context, propertyID string) ([]models.Payment, error) {
	payments, err := s.payments.ListByProperty(ctx, propertyID)
	if err != nil {
		s.log.Error("Failed to list payments", err, map[string]interface{}{
			"property_id": propertyID,
		})
		return nil, fmt.Errorf("failed to list payments: %w", err)
	}

	s.log.Debug("Payment history listed", map[string]interface{}{
		"property_id": propertyID,
		"count":       len(payments),
	})

	return payments, nil
}
