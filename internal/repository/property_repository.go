package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/taxoapp/taxo/internal/database"
	"github.com/taxoapp/taxo/internal/models"
)

// PropertyRepository defines the interface for property data access operations.
type PropertyRepository interface {
	// Create inserts a new property row.
	// Returns ErrDuplicate (wrapped) if the external property id already
	// exists anywhere in the store, regardless of owner.
	Create(ctx context.Context, property *models.Property) (*models.Property, error)

	// ListByUser returns all properties owned by userID in insertion order
	// (id ascending). Returns an empty slice if none (not an error).
	ListByUser(ctx context.Context, userID int64) ([]models.Property, error)

	// FindByPropertyID looks up a property by its external id string.
	// Returns nil, nil if no property is found (not an error).
	FindByPropertyID(ctx context.Context, propertyID string) (*models.Property, error)
}

// propertyRepository is the concrete implementation of PropertyRepository.
type propertyRepository struct {
	db *database.Database
}

// NewPropertyRepository creates a new instance of PropertyRepository.
func NewPropertyRepository(db *database.Database) PropertyRepository {
	return &propertyRepository{
		db: db,
	}
}

// Create inserts a property row and returns it with the assigned id.
func (r *propertyRepository) Create(ctx context.Context, property *models.Property) (*models.Property, error) {
	query := `
		INSERT INTO properties (user_id, property_id, address, size, type, ownership_details)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, user_id, property_id, address, size, type, ownership_details
	`

	var created models.Property
	err := r.db.Pool.QueryRow(ctx, query,
		property.UserID,
		property.PropertyID,
		property.Address,
		property.Size,
		property.Type,
		property.OwnershipDetails,
	).Scan(
		&created.ID,
		&created.UserID,
		&created.PropertyID,
		&created.Address,
		&created.Size,
		&created.Type,
		&created.OwnershipDetails,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("property id %q: %w", property.PropertyID, ErrDuplicate)
		}
		return nil, fmt.Errorf("failed to insert property %q: %w", property.PropertyID, err)
	}

	return &created, nil
}

// ListByUser queries all properties owned by the given user, id ascending.
func (r *propertyRepository) ListByUser(ctx context.Context, userID int64) ([]models.Property, error) {
	query := `
		SELECT id, user_id, property_id, address, size, type, ownership_details
		FROM properties
		WHERE user_id = $1
		ORDER BY id ASC
	`

	rows, err := r.db.Pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query properties for user %d: %w", userID, err)
	}
	defer rows.Close()

	var properties []models.Property

	for rows.Next() {
		var p models.Property
		err := rows.Scan(
			&p.ID,
			&p.UserID,
			&p.PropertyID,
			&p.Address,
			&p.Size,
			&p.Type,
			&p.OwnershipDetails,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan property row: %w", err)
		}
		properties = append(properties, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating property rows: %w", err)
	}

	// Return empty slice if no properties found (not an error)
	if properties == nil {
		properties = []models.Property{}
	}

	return properties, nil
}

// FindByPropertyID queries a property by its external id string.
func (r *propertyRepository) FindByPropertyID(ctx context.Context, propertyID string) (*models.Property, error) {
	query := `
		SELECT id, user_id, property_id, address, size, type, ownership_details
		FROM properties
		WHERE property_id = $1
	`

	var p models.Property
	err := r.db.Pool.QueryRow(ctx, query, propertyID).Scan(
		&p.ID,
		&p.UserID,
		&p.PropertyID,
		&p.Address,
		&p.Size,
		&p.Type,
		&p.OwnershipDetails,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to query property %q: %w", propertyID, err)
	}

	return &p, nil
}
