package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/taxoapp/taxo/internal/logger"
	"github.com/taxoapp/taxo/internal/models"
	"github.com/taxoapp/taxo/internal/repository"
	"golang.org/x/crypto/bcrypt"
)

// Service-level errors
var (
	ErrUsernameTaken      = errors.New("username already exists")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrEmptyCredentials   = errors.New("username and password are required")
)

// AccountService defines the interface for account business logic operations.
type AccountService interface {
	// Register creates a new user with a bcrypt-hashed password.
	// Returns ErrUsernameTaken if the username is already registered.
	// Returns ErrEmptyCredentials if username or password is empty.
	Register(ctx context.Context, username, password string) (*models.User, error)

	// Authenticate verifies a username/password pair.
	// Returns the matching user on success.
	// Returns ErrInvalidCredentials for an unknown username or a password
	// mismatch; the two cases are deliberately indistinguishable.
	Authenticate(ctx context.Context, username, password string) (*models.User, error)
}

// accountService is the concrete implementation of AccountService.
type accountService struct {
	users repository.UserRepository
	log   *logger.Logger
}

// NewAccountService creates a new instance of AccountService.
func NewAccountService(users repository.UserRepository, log *logger.Logger) AccountService {
	return &accountService{
		users: users,
		log:   log,
	}
}

// Register hashes the password and inserts the user. The duplicate-username
// check is delegated to the unique constraint in the store; it is the only
// integrity check applied.
func (s *accountService) Register(ctx context.Context, username, password string) (*models.User, error) {
	if username == "" || password == "" {
		return nil, ErrEmptyCredentials
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user, err := s.users.Create(ctx, username, string(hash))
	if err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			s.log.Warn("Registration rejected: username taken", map[string]interface{}{
				"username": username,
			})
			return nil, ErrUsernameTaken
		}
		s.log.Error("Failed to create user", err, map[string]interface{}{
			"username": username,
		})
		return nil, fmt.Errorf("failed to register user: %w", err)
	}

	s.log.Info("User registered", map[string]interface{}{
		"user_id":  user.ID,
		"username": user.Username,
	})

	return user, nil
}

// Authenticate looks up the user by exact username and compares the stored
// bcrypt hash against the supplied password.
func (s *accountService) Authenticate(ctx context.Context, username, password string) (*models.User, error) {
	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		s.log.Error("Failed to look up user", err, map[string]interface{}{
			"username": username,
		})
		return nil, fmt.Errorf("failed to authenticate user: %w", err)
	}

	if user == nil {
		s.log.Debug("Authentication failed: unknown username", map[string]interface{}{
			"username": username,
		})
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		s.log.Debug("Authentication failed: password mismatch", map[string]interface{}{
			"username": username,
		})
		return nil, ErrInvalidCredentials
	}

	s.log.Info("User authenticated", map[string]interface{}{
		"user_id":  user.ID,
		"username": user.Username,
	})

	return user, nil
}
