package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/taxoapp/taxo/internal/logger"
	"github.com/taxoapp/taxo/internal/models"
	"github.com/taxoapp/taxo/internal/repository"
)

// MockPropertyRepository is a mock implementation of PropertyRepository for testing
type MockPropertyRepository struct {
	mock.Mock
}

func (m *MockPropertyRepository) Create(ctx context.Context, property *models.Property) (*models.Property, error) {
	args := m.Called(ctx, property)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	created, ok := args.Get(0).(*models.Property)
	if !ok {
		return nil, args.Error(1)
	}
	return created, args.Error(1)
}

func (m *MockPropertyRepository) ListByUser(ctx context.Context, userID int64) ([]models.Property, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	properties, ok := args.Get(0).([]models.Property)
	if !ok {
		return nil, args.Error(1)
	}
	return properties, args.Error(1)
}

func (m *MockPropertyRepository) FindByPropertyID(ctx context.Context, propertyID string) (*models.Property, error) {
	args := m.Called(ctx, propertyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	property, ok := args.Get(0).(*models.Property)
	if !ok {
		return nil, args.Error(1)
	}
	return property, args.Error(1)
}

func TestRegisterProperty_Success(t *testing.T) {
	// Arrange
	mockRepo := new(MockPropertyRepository)
	log := logger.New("test")
	service := NewPropertyService(mockRepo, log)

	ctx := context.Background()

	input := RegisterPropertyInput{
		PropertyID:       "P100",
		Address:          "12 Main St",
		Size:             "2400",
		Type:             models.TypeCommercial,
		OwnershipDetails: "sole owner",
	}

	created := &models.Property{
		ID:               1,
		UserID:           7,
		PropertyID:       "P100",
		Address:          "12 Main St",
		Size:             "2400",
		Type:             models.TypeCommercial,
		OwnershipDetails: "sole owner",
	}

	mockRepo.On("Create", ctx, mock.AnythingOfType("*models.Property")).Return(created, nil)

	// Act
	property, err := service.RegisterProperty(ctx, 7, input)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "P100", property.PropertyID)
	assert.Equal(t, int64(7), property.UserID)
	mockRepo.AssertExpectations(t)
}

func TestRegisterProperty_UnknownType(t *testing.T) {
	testCases := []struct {
		name string
		typ  models.PropertyType
	}{
		{name: "empty type", typ: ""},
		{name: "unlisted type", typ: "Agricultural"},
		{name: "wrong case", typ: "residential"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			mockRepo := new(MockPropertyRepository)
			log := logger.New("test")
			service := NewPropertyService(mockRepo, log)

			input := RegisterPropertyInput{
				PropertyID: "P100",
				Address:    "12 Main St",
				Size:       "2400",
				Type:       tc.typ,
			}

			property, err := service.RegisterProperty(context.Background(), 7, input)

			assert.Error(t, err)
			assert.Nil(t, property)
			assert.ErrorIs(t, err, ErrUnknownPropertyType)
			mockRepo.AssertNotCalled(t, "Create")
		})
	}
}

func TestRegisterProperty_DuplicatePropertyID(t *testing.T) {
	// Arrange
	mockRepo := new(MockPropertyRepository)
	log := logger.New("test")
	service := NewPropertyService(mockRepo, log)

	ctx := context.Background()

	// Duplicate external ids are rejected regardless of which user owns
	// the existing property
	mockRepo.On("Create", ctx, mock.AnythingOfType("*models.Property")).
		Return(nil, repository.ErrDuplicate)

	input := RegisterPropertyInput{
		PropertyID: "P100",
		Address:    "34 Oak Ave",
		Size:       "900",
		Type:       models.TypeResidential,
	}

	// Act
	property, err := service.RegisterProperty(ctx, 99, input)

	// Assert
	assert.Error(t, err)
	assert.Nil(t, property)
	assert.ErrorIs(t, err, ErrPropertyIDTaken)
	mockRepo.AssertExpectations(t)
}

func TestRegisterProperty_SizeStoredVerbatim(t *testing.T) {
	// Arrange
	mockRepo := new(MockPropertyRepository)
	log := logger.New("test")
	service := NewPropertyService(mockRepo, log)

	ctx := context.Background()

	var captured *models.Property
	mockRepo.On("Create", ctx, mock.AnythingOfType("*models.Property")).
		Run(func(args mock.Arguments) {
			captured = args.Get(1).(*models.Property)
		}).
		Return(&models.Property{ID: 1}, nil)

	input := RegisterPropertyInput{
		PropertyID: "P200",
		Address:    "56 Elm Rd",
		Size:       "about 1,200 sq ft",
		Type:       models.TypeIndustrial,
	}

	// Act
	_, err := service.RegisterProperty(ctx, 7, input)

	// Assert
	require.NoError(t, err)
	require.NotNil(t, captured)
	assert.Equal(t, "about 1,200 sq ft", captured.Size, "size is not parsed or normalized")
}

func TestListProperties_Success(t *testing.T) {
	// Arrange
	mockRepo := new(MockPropertyRepository)
	log := logger.New("test")
	service := NewPropertyService(mockRepo, log)

	ctx := context.Background()

	expected := []models.Property{
		{ID: 1, UserID: 7, PropertyID: "P100", Type: models.TypeCommercial},
		{ID: 3, UserID: 7, PropertyID: "P300", Type: models.TypeResidential},
	}
	mockRepo.On("ListByUser", ctx, int64(7)).Return(expected, nil)

	// Act
	properties, err := service.ListProperties(ctx, 7)

	// Assert
	require.NoError(t, err)
	require.Len(t, properties, 2)
	assert.Equal(t, "P100", properties[0].PropertyID)
	assert.Equal(t, "P300", properties[1].PropertyID)
	mockRepo.AssertExpectations(t)
}

func TestListProperties_Empty(t *testing.T) {
	// Arrange
	mockRepo := new(MockPropertyRepository)
	log := logger.New("test")
	service := NewPropertyService(mockRepo, log)

	ctx := context.Background()

	mockRepo.On("ListByUser", ctx, int64(7)).Return([]models.Property{}, nil)

	// Act
	properties, err := service.ListProperties(ctx, 7)

	// Assert
	require.NoError(t, err)
	assert.NotNil(t, properties)
	assert.Empty(t, properties)
	mockRepo.AssertExpectations(t)
}

func TestListProperties_RepositoryError(t *testing.T) {
	// Arrange
	mockRepo := new(MockPropertyRepository)
	log := logger.New("test")
	service := NewPropertyService(mockRepo, log)

	ctx := context.Background()

	dbError := errors.New("database connection failed")
	mockRepo.On("ListByUser", ctx, int64(7)).Return(nil, dbError)

	// Act
	properties, err := service.ListProperties(ctx, 7)

	// Assert
	assert.Error(t, err)
	assert.Nil(t, properties)
	assert.ErrorIs(t, err, dbError)
	mockRepo.AssertExpectations(t)
}

func TestGetProperty_Success(t *testing.T) {
	// Arrange
	mockRepo := new(MockPropertyRepository)
	log := logger.New("test")
	service := NewPropertyService(mockRepo, log)

	ctx := context.Background()

	expected := &models.Property{ID: 1, UserID: 7, PropertyID: "P100", Type: models.TypeCommercial}
	mockRepo.On("FindByPropertyID", ctx, "P100").Return(expected, nil)

	// Act
	property, err := service.GetProperty(ctx, "P100")

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "P100", property.PropertyID)
	mockRepo.AssertExpectations(t)
}

func TestGetProperty_NotFound(t *testing.T) {
	// Arrange
	mockRepo := new(MockPropertyRepository)
	log := logger.New("test")
	service := NewPropertyService(mockRepo, log)

	ctx := context.Background()

	// Repository returns nil, nil when no property found
	mockRepo.On("FindByPropertyID", ctx, "P999").Return(nil, nil)

	// Act
	property, err := service.GetProperty(ctx, "P999")

	// Assert
	assert.Error(t, err)
	assert.Nil(t, property)
	assert.ErrorIs(t, err, ErrPropertyNotFound)
	mockRepo.AssertExpectations(t)
}
