package repository

import (
	"context"
	"fmt"

	"github.com/taxoapp/taxo/internal/database"
	"github.com/taxoapp/taxo/internal/models"
)

// PaymentRepository defines the interface for payment data access operations.
// Payments are append-only; there are no update or delete operations.
type PaymentRepository interface {
	// Create appends a payment row. The property id is not checked against
	// the properties table; arbitrary and duplicate payments are accepted.
	Create(ctx context.Context, propertyID string, amount float64, paymentDate string) (*models.Payment, error)

	// ListByProperty returns all payments referencing the given external
	// property id in insertion order (id ascending). Returns an empty slice
	// if none (not an error).
	ListByProperty(ctx context.Context, propertyID string) ([]models.Payment, error)
}

// paymentRepository is the concrete implementation of PaymentRepository.
type paymentRepository struct {
	db *database.Database
}

// NewPaymentRepository creates a new instance of PaymentRepository.
func NewPaymentRepository(db *database.Database) PaymentRepository {
	return &paymentRepository{
		db: db,
	}
}

// Create inserts a payment row and returns it with the assigned id.
func (r *paymentRepository) Create(ctx context.Context, propertyID string, amount float64, paymentDate string) (*models.Payment, error) {
	query := `
		INSERT INTO payments (property_id, amount, payment_date)
		VALUES ($1, $2, $3)
		RETURNING id, property_id, amount, payment_date
	`

	var payment models.Payment
	err := r.db.Pool.QueryRow(ctx, query, propertyID, amount, paymentDate).Scan(
		&payment.ID,
		&payment.PropertyID,
		&payment.Amount,
		&payment.PaymentDate,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to insert payment for property %q: %w", propertyID, err)
	}

	return &payment, nil
}

// ListByProperty queries all payments for the given property id, id ascending.
func (r *paymentRepository) ListByProperty(ctx context.Context, propertyID string) ([]models.Payment, error) {
	query := `
		SELECT id, property_id, amount, payment_date
		FROM payments
		WHERE property_id = $1
		ORDER BY id ASC
	`

	rows, err := r.db.Pool.Query(ctx, query, propertyID)
	if err != nil {
		return nil, fmt.Errorf("failed to query payments for property %q: %w", propertyID, err)
	}
	defer rows.Close()

	var payments []models.Payment

	for rows.Next() {
		var p models.Payment
		if err := rows.Scan(&p.ID, &p.PropertyID, &p.Amount, &p.PaymentDate); err != nil {
			return nil, fmt.Errorf("failed to scan payment row: %w", err)
		}
		payments = append(payments, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating payment rows: %w", err)
	}

	// Return empty slice if no payments found (not an error)
	if payments == nil {
		payments = []models.Payment{}
	}

	return payments, nil
}
