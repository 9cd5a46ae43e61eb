package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/taxoapp/taxo/internal/auth"
	apierrors "github.com/taxoapp/taxo/internal/errors"
	"github.com/taxoapp/taxo/internal/middleware"
	"github.com/taxoapp/taxo/internal/services"
)

// AuthHandler handles account registration and login HTTP requests.
type AuthHandler struct {
	service services.AccountService
	issuer  *auth.TokenIssuer
}

// NewAuthHandler creates a new AuthHandler instance.
func NewAuthHandler(service services.AccountService, issuer *auth.TokenIssuer) *AuthHandler {
	return &AuthHandler{
		service: service,
		issuer:  issuer,
	}
}

// RegisterRequest represents the body for the register endpoint.
type RegisterRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// RegisterResponse represents the response for a successful registration.
type RegisterResponse struct {
	UserID   int64  `json:"user_id"`
	Username string `json:"username"`
}

// LoginRequest represents the body for the login endpoint.
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse represents the response for a successful login.
// The token carries the session identity; clients present it as a Bearer
// token on all property and payment requests.
type LoginResponse struct {
	Token    string `json:"token"`
	UserID   int64  `json:"user_id"`
	Username string `json:"username"`
}

// Register handles POST /api/v1/auth/register.
func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		if validationErrors, ok := err.(validator.ValidationErrors); ok {
			apierrors.ValidationError(c, validationErrors)
			return
		}
		apierrors.BadRequest(c, "Invalid request body", nil)
		return
	}

	user, err := h.service.Register(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, services.ErrUsernameTaken) {
			apierrors.Conflict(c, "Username already exists")
			return
		}
		if errors.Is(err, services.ErrEmptyCredentials) {
			apierrors.BadRequest(c, err.Error(), nil)
			return
		}
		apierrors.InternalServerError(c, "Failed to register user", err)
		return
	}

	c.JSON(http.StatusCreated, RegisterResponse{
		UserID:   user.ID,
		Username: user.Username,
	})
}

// Login handles POST /api/v1/auth/login.
func (h *AuthHandler) Login(c *gin.Context) {
	log := middleware.GetLogger(c)

	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		if validationErrors, ok := err.(validator.ValidationErrors); ok {
			apierrors.ValidationError(c, validationErrors)
			return
		}
		apierrors.BadRequest(c, "Invalid request body", nil)
		return
	}

	user, err := h.service.Authenticate(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			apierrors.Unauthorized(c, "Invalid username or password")
			return
		}
		apierrors.InternalServerError(c, "Failed to authenticate user", err)
		return
	}

	token, err := h.issuer.Issue(user)
	if err != nil {
		apierrors.InternalServerError(c, "Failed to issue session token", err)
		return
	}

	if log != nil {
		log.Info("Session token issued", map[string]interface{}{
			"user_id": user.ID,
		})
	}

	c.JSON(http.StatusOK, LoginResponse{
		Token:    token,
		UserID:   user.ID,
		Username: user.Username,
	})
}
