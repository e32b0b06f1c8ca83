package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/pageza/nutriplan/backend/internal/models"
	"github.com/pageza/nutriplan/backend/internal/shopping"
	"github.com/pageza/nutriplan/backend/internal/types"
)

// IShoppingListGenerator builds shopping lists from the active diet
type IShoppingListGenerator interface {
	Generate(ctx context.Context, userID uuid.UUID, days int) (*shopping.Result, error)
}

// IShoppingListService defines the interface for shopping list operations
type IShoppingListService interface {
	ListShoppingLists(ctx context.Context, userID uuid.UUID) ([]models.ShoppingList, error)
	GetShoppingList(ctx context.Context, userID, listID uuid.UUID) (*models.ShoppingList, error)
	SetItemPurchased(ctx context.Context, userID, listID, itemID uuid.UUID, purchased bool) (*models.ShoppingListItem, error)
	SetCompleted(ctx context.Context, userID, listID uuid.UUID, completed bool) (*models.ShoppingList, error)
	DeleteShoppingList(ctx context.Context, userID, listID uuid.UUID) error
}

// IDietService defines the interface for diet operations
type IDietService interface {
	ListDiets(ctx context.Context, userID uuid.UUID) ([]models.Diet, error)
	GetDiet(ctx context.Context, userID, dietID uuid.UUID) (*models.Diet, error)
	GetDietWithItems(ctx context.Context, userID, dietID uuid.UUID) (*models.Diet, error)
	CreateDiet(ctx context.Context, userID uuid.UUID, req *types.CreateDietRequest) (*models.Diet, error)
	ActivateDiet(ctx context.Context, userID, dietID uuid.UUID) (*models.Diet, error)
	AddMeal(ctx context.Context, userID, dietID uuid.UUID, req *types.CreateMealRequest) (*models.Meal, error)
	AddItem(ctx context.Context, userID, mealID uuid.UUID, req *types.CreateDietItemRequest) (*models.DietItem, error)
}

// IInventoryService defines the interface for inventory operations
type IInventoryService interface {
	ListInventory(ctx context.Context, userID uuid.UUID) ([]models.InventoryEntry, error)
	AddEntry(ctx context.Context, userID uuid.UUID, req *types.CreateInventoryRequest) (*models.InventoryEntry, error)
	RemoveEntry(ctx context.Context, userID, entryID uuid.UUID) error
}

// IPreferenceService defines the interface for tracked nutrient preferences
type IPreferenceService interface {
	GetTrackedNutrients(ctx context.Context, dietID uuid.UUID) ([]string, error)
	SetTrackedNutrients(ctx context.Context, dietID uuid.UUID, keys []string) ([]string, error)
}

// ICatalogService defines the interface for product catalog reads
type ICatalogService interface {
	ListUnits(ctx context.Context) ([]models.MeasurementUnit, error)
	HydrateItems(ctx context.Context, userID uuid.UUID, inputs []types.NutritionItemInput) ([]models.DietItem, error)
}

// IAvatarService defines the interface for avatar uploads
type IAvatarService interface {
	CreateUploadURL(ctx context.Context, userID uuid.UUID, contentType string) (*AvatarUpload, error)
}

var (
	_ shopping.Store         = (*ShoppingStore)(nil)
	_ IShoppingListGenerator = (*shopping.Generator)(nil)
	_ IShoppingListService   = (*ShoppingListService)(nil)
	_ IDietService           = (*DietService)(nil)
	_ IInventoryService      = (*InventoryService)(nil)
	_ IPreferenceService     = (*PreferenceService)(nil)
	_ ICatalogService        = (*CatalogService)(nil)
	_ IAvatarService         = (*AvatarService)(nil)
)
