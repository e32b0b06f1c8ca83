package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/pageza/nutriplan/backend/internal/models"
)

// MockShoppingStore is a mock implementation of shopping.Store
type MockShoppingStore struct {
	mock.Mock
}

// GetActiveDiet mocks the GetActiveDiet method
func (m *MockShoppingStore) GetActiveDiet(ctx context.Context, userID uuid.UUID) (*models.Diet, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Diet), args.Error(1)
}

// GetMeals mocks the GetMeals method
func (m *MockShoppingStore) GetMeals(ctx context.Context, dietID uuid.UUID) ([]models.Meal, error) {
	args := m.Called(ctx, dietID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Meal), args.Error(1)
}

// GetDietItems mocks the GetDietItems method
func (m *MockShoppingStore) GetDietItems(ctx context.Context, mealIDs []uuid.UUID) ([]models.DietItem, error) {
	args := m.Called(ctx, mealIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.DietItem), args.Error(1)
}

// GetInventory mocks the GetInventory method
func (m *MockShoppingStore) GetInventory(ctx context.Context, userID uuid.UUID) ([]models.InventoryEntry, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.InventoryEntry), args.Error(1)
}

// CreateShoppingList mocks the CreateShoppingList method
func (m *MockShoppingStore) CreateShoppingList(ctx context.Context, userID uuid.UUID, name string, isAutoGenerated bool) (*models.ShoppingList, error) {
	args := m.Called(ctx, userID, name, isAutoGenerated)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ShoppingList), args.Error(1)
}

// InsertShoppingListItems mocks the InsertShoppingListItems method
func (m *MockShoppingStore) InsertShoppingListItems(ctx context.Context, listID uuid.UUID, items []models.ShoppingListItem) error {
	args := m.Called(ctx, listID, items)
	return args.Error(0)
}

// DeleteShoppingList mocks the DeleteShoppingList method
func (m *MockShoppingStore) DeleteShoppingList(ctx context.Context, listID uuid.UUID) error {
	args := m.Called(ctx, listID)
	return args.Error(0)
}
