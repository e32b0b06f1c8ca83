package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/pageza/nutriplan/backend/internal/shopping"
	"github.com/pageza/nutriplan/backend/internal/types"
)

// MockShoppingListGenerator is a mock implementation of service.IShoppingListGenerator
type MockShoppingListGenerator struct {
	mock.Mock
}

func (m *MockShoppingListGenerator) Generate(ctx context.Context, userID uuid.UUID, days int) (*shopping.Result, error) {
	args := m.Called(ctx, userID, days)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*shopping.Result), args.Error(1)
}

// MockTokenValidator is a mock implementation of middleware.TokenValidator
type MockTokenValidator struct {
	mock.Mock
}

func (m *MockTokenValidator) ValidateToken(token string) (*types.TokenClaims, error) {
	args := m.Called(token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.TokenClaims), args.Error(1)
}
