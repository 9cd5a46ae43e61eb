package errors

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"

	"github.com/gin-gonic/gin"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/taxoapp/taxo/internal/logger"
	"github.com/taxoapp/taxo/internal/middleware"
)

func init() {
	// Set Gin to test mode to suppress logs during tests
	gin.SetMode(gin.TestMode)
}

// setupTestContext creates a test Gin context with logger and request ID in context.
func setupTestContext() (*gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	c.Request = httptest.NewRequest(http.MethodGet, "/test", nil)

	log := logger.New("development")
	c.Set("logger", log)
	c.Set(middleware.RequestIDKey, "test-request-id")

	return c, w
}

// parseErrorResponse parses the JSON response into an ErrorResponse struct.
func parseErrorResponse(t *testing.T, body *bytes.Buffer) ErrorResponse {
	var response ErrorResponse
	err := json.Unmarshal(body.Bytes(), &response)
	require.NoError(t, err, "Failed to parse error response JSON")
	return response
}

func TestNotFound(t *testing.T) {
	c, w := setupTestContext()

	NotFound(c, "Property not found")

	assert.Equal(t, http.StatusNotFound, w.Code, "Expected status 404 Not Found")

	response := parseErrorResponse(t, w.Body)
	assert.Equal(t, ErrNotFound, response.Error.Code, "Expected NOT_FOUND error code")
	assert.Equal(t, "Property not found", response.Error.Message, "Expected correct error message")
	assert.Equal(t, "test-request-id", response.Error.RequestID, "Expected request ID in response")
	assert.Nil(t, response.Error.Details, "Expected no details for NotFound")
}

func TestBadRequest(t *testing.T) {
	t.Run("without details", func(t *testing.T) {
		c, w := setupTestContext()

		BadRequest(c, "Invalid input", nil)

		assert.Equal(t, http.StatusBadRequest, w.Code, "Expected status 400 Bad Request")

		response := parseErrorResponse(t, w.Body)
		assert.Equal(t, ErrBadRequest, response.Error.Code, "Expected BAD_REQUEST error code")
		assert.Equal(t, "Invalid input", response.Error.Message, "Expected correct error message")
		assert.Nil(t, response.Error.Details, "Expected no details when nil is passed")
	})

	t.Run("with details", func(t *testing.T) {
		c, w := setupTestContext()

		details := map[string]interface{}{
			"field": "property_type",
			"value": "Agricultural",
		}
		BadRequest(c, "Invalid input", details)

		assert.Equal(t, http.StatusBadRequest, w.Code, "Expected status 400 Bad Request")

		response := parseErrorResponse(t, w.Body)
		assert.Equal(t, ErrBadRequest, response.Error.Code, "Expected BAD_REQUEST error code")
		assert.NotNil(t, response.Error.Details, "Expected details to be present")
		assert.Equal(t, "property_type", response.Error.Details["field"], "Expected field in details")
		assert.Equal(t, "Agricultural", response.Error.Details["value"], "Expected value in details")
	})
}

func TestConflict(t *testing.T) {
	c, w := setupTestContext()

	Conflict(c, "Username is already taken")

	assert.Equal(t, http.StatusConflict, w.Code, "Expected status 409 Conflict")

	response := parseErrorResponse(t, w.Body)
	assert.Equal(t, ErrConflict, response.Error.Code, "Expected CONFLICT error code")
	assert.Equal(t, "Username is already taken", response.Error.Message, "Expected correct error message")
	assert.Equal(t, "test-request-id", response.Error.RequestID, "Expected request ID in response")
}

func TestUnauthorized(t *testing.T) {
	c, w := setupTestContext()

	Unauthorized(c, "Invalid username or password")

	assert.Equal(t, http.StatusUnauthorized, w.Code, "Expected status 401 Unauthorized")

	response := parseErrorResponse(t, w.Body)
	assert.Equal(t, ErrUnauthorized, response.Error.Code, "Expected UNAUTHORIZED error code")
	assert.Equal(t, "Invalid username or password", response.Error.Message, "Expected correct error message")
}

func TestInternalServerError(t *testing.T) {
	c, w := setupTestContext()

	testErr := errors.New("database connection failed")
	InternalServerError(c, "An unexpected error occurred", testErr)

	assert.Equal(t, http.StatusInternalServerError, w.Code, "Expected status 500 Internal Server Error")

	response := parseErrorResponse(t, w.Body)
	assert.Equal(t, ErrInternalServer, response.Error.Code, "Expected INTERNAL_SERVER_ERROR code")
	assert.Equal(t, "An unexpected error occurred", response.Error.Message, "Expected correct error message")
	assert.Nil(t, response.Error.Details, "Expected no details for InternalServerError")
}

func TestValidationError(t *testing.T) {
	c, w := setupTestContext()

	type TestStruct struct {
		PropertyID string  `validate:"required"`
		Value      float64 `validate:"gte=0"`
	}

	validate := validator.New()
	testData := TestStruct{
		PropertyID: "",
		Value:      -500,
	}

	err := validate.Struct(testData)
	require.Error(t, err, "Expected validation to fail")

	validationErrors, ok := err.(validator.ValidationErrors)
	require.True(t, ok, "Expected validator.ValidationErrors")

	ValidationError(c, validationErrors)

	assert.Equal(t, http.StatusBadRequest, w.Code, "Expected status 400 Bad Request")

	response := parseErrorResponse(t, w.Body)
	assert.Equal(t, ErrValidation, response.Error.Code, "Expected VALIDATION_ERROR code")
	assert.Equal(t, "Validation failed for one or more fields", response.Error.Message)
	assert.NotNil(t, response.Error.Details, "Expected details to be present")

	_, hasPropertyID := response.Error.Details["PropertyID"]
	_, hasValue := response.Error.Details["Value"]
	assert.True(t, hasPropertyID || hasValue, "Expected at least one validation error field")
}

func TestFormatValidationError(t *testing.T) {
	tests := []struct {
		name     string
		tag      string
		param    string
		expected string
	}{
		{
			name:     "required",
			tag:      "required",
			param:    "",
			expected: "This field is required",
		},
		{
			name:     "min",
			tag:      "min",
			param:    "5",
			expected: "Value is too short or small (minimum: 5)",
		},
		{
			name:     "max",
			tag:      "max",
			param:    "100",
			expected: "Value is too long or large (maximum: 100)",
		},
		{
			name:     "gte",
			tag:      "gte",
			param:    "0",
			expected: "Must be greater than or equal to 0",
		},
		{
			name:     "oneof",
			tag:      "oneof",
			param:    "Residential Commercial Industrial",
			expected: "Must be one of: Residential Commercial Industrial",
		},
		{
			name:     "unknown",
			tag:      "unknown_tag",
			param:    "",
			expected: "Validation failed for tag: unknown_tag",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockErr := &mockFieldError{
				tag:   tt.tag,
				param: tt.param,
			}

			result := formatValidationError(mockErr)
			assert.Equal(t, tt.expected, result, "Expected correct validation error message")
		})
	}
}

func TestErrorResponseWithoutContext(t *testing.T) {
	// Error functions must work even without logger/request ID in context
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/test", nil)

	NotFound(c, "Property not found")

	assert.Equal(t, http.StatusNotFound, w.Code, "Expected status 404 even without context")

	response := parseErrorResponse(t, w.Body)
	assert.Equal(t, ErrNotFound, response.Error.Code, "Expected error code")
	assert.Empty(t, response.Error.RequestID, "Expected empty request ID when not in context")
}

func TestErrorConstants(t *testing.T) {
	assert.Equal(t, "NOT_FOUND", ErrNotFound)
	assert.Equal(t, "BAD_REQUEST", ErrBadRequest)
	assert.Equal(t, "CONFLICT", ErrConflict)
	assert.Equal(t, "UNAUTHORIZED", ErrUnauthorized)
	assert.Equal(t, "INTERNAL_SERVER_ERROR", ErrInternalServer)
	assert.Equal(t, "VALIDATION_ERROR", ErrValidation)
	assert.Equal(t, "DATABASE_CONNECTION_ERROR", ErrDatabaseConnection)
}

// mockFieldError is a mock implementation of validator.FieldError for testing.
type mockFieldError struct {
	tag   string
	param string
}

func (m *mockFieldError) Tag() string                    { return m.tag }
func (m *mockFieldError) ActualTag() string              { return m.tag }
func (m *mockFieldError) Namespace() string              { return "" }
func (m *mockFieldError) StructNamespace() string        { return "" }
func (m *mockFieldError) Field() string                  { return "TestField" }
func (m *mockFieldError) StructField() string            { return "TestField" }
func (m *mockFieldError) Value() interface{}             { return nil }
func (m *mockFieldError) Param() string                  { return m.param }
func (m *mockFieldError) Kind() reflect.Kind             { return reflect.String }
func (m *mockFieldError) Type() reflect.Type             { return nil }
func (m *mockFieldError) Translate(ut.Translator) string { return "" }
func (m *mockFieldError) Error() string                  { return "" }
