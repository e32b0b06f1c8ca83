package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/pageza/nutriplan/backend/internal/models"
)

// ShoppingStore is the PostgreSQL-backed data access of the shopping list
// generator.
type ShoppingStore struct {
	db *gorm.DB
}

func NewShoppingStore(db *gorm.DB) *ShoppingStore {
	return &ShoppingStore{db: db}
}

// GetActiveDiet returns the user's active diet. With several active diets
// the earliest by start date wins.
func (s *ShoppingStore) GetActiveDiet(ctx context.Context, userID uuid.UUID) (*models.Diet, error) {
	var diet models.Diet
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND is_active = ?", userID, true).
		Order("start_date ASC, created_at ASC, id ASC").
		First(&diet).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load active diet: %w", err)
	}
	return &diet, nil
}

func (s *ShoppingStore) GetMeals(ctx context.Context, dietID uuid.UUID) ([]models.Meal, error) {
	var meals []models.Meal
	if err := s.db.WithContext(ctx).
		Where("diet_id = ?", dietID).
		Order("meal_order ASC, created_at ASC").
		Find(&meals).Error; err != nil {
		return nil, fmt.Errorf("failed to load meals: %w", err)
	}
	return meals, nil
}

func (s *ShoppingStore) GetDietItems(ctx context.Context, mealIDs []uuid.UUID) ([]models.DietItem, error) {
	if len(mealIDs) == 0 {
		return nil, nil
	}
	var items []models.DietItem
	if err := withProducts(s.db.WithContext(ctx), "").
		Where("meal_id IN ?", mealIDs).
		Order("created_at ASC, id ASC").
		Find(&items).Error; err != nil {
		return nil, fmt.Errorf("failed to load diet items: %w", err)
	}
	return items, nil
}

func (s *ShoppingStore) GetInventory(ctx context.Context, userID uuid.UUID) ([]models.InventoryEntry, error) {
	var entries []models.InventoryEntry
	if err := s.db.WithContext(ctx).Where("user_id = ?", userID).Find(&entries).Error; err != nil {
		return nil, fmt.Errorf("failed to load inventory: %w", err)
	}
	return entries, nil
}

func (s *ShoppingStore) CreateShoppingList(ctx context.Context, userID uuid.UUID, name string, isAutoGenerated bool) (*models.ShoppingList, error) {
	list := &models.ShoppingList{
		UserID:          userID,
		Name:            name,
		IsAutoGenerated: isAutoGenerated,
	}
	if err := s.db.WithContext(ctx).Create(list).Error; err != nil {
		return nil, fmt.Errorf("failed to create shopping list: %w", err)
	}
	return list, nil
}

func (s *ShoppingStore) InsertShoppingListItems(ctx context.Context, listID uuid.UUID, items []models.ShoppingListItem) error {
	if len(items) == 0 {
		return nil
	}
	for i := range items {
		items[i].ShoppingListID = listID
	}
	if err := s.db.WithContext(ctx).Create(&items).Error; err != nil {
		return fmt.Errorf("failed to insert shopping list items: %w", err)
	}
	return nil
}

func (s *ShoppingStore) DeleteShoppingList(ctx context.Context, listID uuid.UUID) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("shopping_list_id = ?", listID).Delete(&models.ShoppingListItem{}).Error; err != nil {
			return fmt.Errorf("failed to delete shopping list items: %w", err)
		}
		if err := tx.Where("id = ?", listID).Delete(&models.ShoppingList{}).Error; err != nil {
			return fmt.Errorf("failed to delete shopping list: %w", err)
		}
		return nil
	})
}
