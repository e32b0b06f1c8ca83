package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/pageza/nutriplan/backend/internal/models"
)

// ShoppingListService manages the lists a user owns
type ShoppingListService struct {
	db *gorm.DB
}

func NewShoppingListService(db *gorm.DB) *ShoppingListService {
	return &ShoppingListService{db: db}
}

// ListShoppingLists returns the user's lists, newest first
func (s *ShoppingListService) ListShoppingLists(ctx context.Context, userID uuid.UUID) ([]models.ShoppingList, error) {
	var lists []models.ShoppingList
	if err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&lists).Error; err != nil {
		return nil, fmt.Errorf("failed to list shopping lists: %w", err)
	}
	return lists, nil
}

// GetShoppingList returns a list with its items and their products
func (s *ShoppingListService) GetShoppingList(ctx context.Context, userID, listID uuid.UUID) (*models.ShoppingList, error) {
	var list models.ShoppingList
	err := s.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC, id ASC")
		}).
		Preload("Items.ProductBase").
		Preload("Items.UserProduct").
		Preload("Items.MeasurementUnit").
		Where("id = ? AND user_id = ?", listID, userID).
		First(&list).Error
	if err != nil {
		return nil, notFound(err, "failed to get shopping list")
	}
	return &list, nil
}

// SetItemPurchased marks an item of one of the user's lists as purchased or not
func (s *ShoppingListService) SetItemPurchased(ctx context.Context, userID, listID, itemID uuid.UUID, purchased bool) (*models.ShoppingListItem, error) {
	var item models.ShoppingListItem
	err := s.db.WithContext(ctx).
		Joins("JOIN shopping_lists ON shopping_lists.id = shopping_list_items.shopping_list_id").
		Where("shopping_list_items.id = ? AND shopping_list_items.shopping_list_id = ? AND shopping_lists.user_id = ?", itemID, listID, userID).
		First(&item).Error
	if err != nil {
		return nil, notFound(err, "failed to get shopping list item")
	}

	if err := s.db.WithContext(ctx).Model(&item).Update("is_purchased", purchased).Error; err != nil {
		return nil, fmt.Errorf("failed to update shopping list item: %w", err)
	}
	item.IsPurchased = purchased
	return &item, nil
}

// SetCompleted marks a list as completed or reopens it
func (s *ShoppingListService) SetCompleted(ctx context.Context, userID, listID uuid.UUID, completed bool) (*models.ShoppingList, error) {
	var list models.ShoppingList
	if err := s.db.WithContext(ctx).Where("id = ? AND user_id = ?", listID, userID).First(&list).Error; err != nil {
		return nil, notFound(err, "failed to get shopping list")
	}
	if err := s.db.WithContext(ctx).Model(&list).Update("is_completed", completed).Error; err != nil {
		return nil, fmt.Errorf("failed to update shopping list: %w", err)
	}
	list.IsCompleted = completed
	return &list, nil
}

// DeleteShoppingList removes a list and its items
func (s *ShoppingListService) DeleteShoppingList(ctx context.Context, userID, listID uuid.UUID) error {
	var list models.ShoppingList
	if err := s.db.WithContext(ctx).Where("id = ? AND user_id = ?", listID, userID).First(&list).Error; err != nil {
		return notFound(err, "failed to get shopping list")
	}
	return NewShoppingStore(s.db).DeleteShoppingList(ctx, list.ID)
}

// notFound maps gorm.ErrRecordNotFound to ErrNotFound and wraps anything else
func notFound(err error, msg string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return fmt.Errorf("%s: %w", msg, err)
}
