package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/taxoapp/taxo/internal/database"
	"github.com/taxoapp/taxo/internal/models"
)

// UserRepository defines the interface for user data access operations.
type UserRepository interface {
	// Create inserts a new user with the given username and password hash.
	// Returns ErrDuplicate (wrapped) if the username is already taken.
	Create(ctx context.Context, username, passwordHash string) (*models.User, error)

	// FindByUsername looks up a user by exact username.
	// Returns nil, nil if no user is found (not an error).
	// Returns error only for actual database failures.
	FindByUsername(ctx context.Context, username string) (*models.User, error)
}

// userRepository is the concrete implementation of UserRepository.
type userRepository struct {
	db *database.Database
}

// NewUserRepository creates a new instance of UserRepository.
func NewUserRepository(db *database.Database) UserRepository {
	return &userRepository{
		db: db,
	}
}

// Create inserts a user row and returns it with the assigned id.
func (r *userRepository) Create(ctx context.Context, username, passwordHash string) (*models.User, error) {
	query := `
		INSERT INTO users (username, password)
		VALUES ($1, $2)
		RETURNING id, username, password
	`

	var user models.User
	err := r.db.Pool.QueryRow(ctx, query, username, passwordHash).Scan(
		&user.ID,
		&user.Username,
		&user.PasswordHash,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("username %q: %w", username, ErrDuplicate)
		}
		return nil, fmt.Errorf("failed to insert user %q: %w", username, err)
	}

	return &user, nil
}

// FindByUsername queries the database for a user with the exact username.
// Username matching is case-sensitive.
func (r *userRepository) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	query := `
		SELECT id, username, password
		FROM users
		WHERE username = $1
	`

	var user models.User
	err := r.db.Pool.QueryRow(ctx, query, username).Scan(
		&user.ID,
		&user.Username,
		&user.PasswordHash,
	)

	// Handle no rows found - this is not an error at the repository level
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to query user %q: %w", username, err)
	}

	return &user, nil
}
