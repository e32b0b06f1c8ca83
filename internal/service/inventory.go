package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/pageza/nutriplan/backend/internal/models"
	"github.com/pageza/nutriplan/backend/internal/types"
)

// InventoryService handles the products a user has at home
type InventoryService struct {
	db *gorm.DB
}

func NewInventoryService(db *gorm.DB) *InventoryService {
	return &InventoryService{db: db}
}

// ListInventory returns the user's entries, soonest expiring first
func (s *InventoryService) ListInventory(ctx context.Context, userID uuid.UUID) ([]models.InventoryEntry, error) {
	var entries []models.InventoryEntry
	if err := s.db.WithContext(ctx).
		Preload("ProductBase").
		Preload("UserProduct").
		Preload("MeasurementUnit").
		Where("user_id = ?", userID).
		Order("expiration_date ASC, created_at ASC").
		Find(&entries).Error; err != nil {
		return nil, fmt.Errorf("failed to list inventory: %w", err)
	}
	return entries, nil
}

// AddEntry records a product quantity in the user's inventory
func (s *InventoryService) AddEntry(ctx context.Context, userID uuid.UUID, req *types.CreateInventoryRequest) (*models.InventoryEntry, error) {
	ref, err := req.Ref()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if req.Quantity < 0 {
		return nil, fmt.Errorf("%w: quantity cannot be negative", ErrInvalidInput)
	}
	if req.Status != "" && !models.IsValidInventoryStatus(req.Status) {
		return nil, fmt.Errorf("%w: unknown status %q", ErrInvalidInput, req.Status)
	}
	if err := checkProduct(ctx, s.db, userID, ref); err != nil {
		return nil, err
	}

	entry := &models.InventoryEntry{
		UserID:            userID,
		Quantity:          req.Quantity,
		MeasurementUnitID: req.MeasurementUnitID,
		ExpirationDate:    req.ExpirationDate,
		StorageLocation:   req.StorageLocation,
		Status:            req.Status,
	}
	entry.SetProduct(ref)
	if err := s.db.WithContext(ctx).Create(entry).Error; err != nil {
		return nil, fmt.Errorf("failed to create inventory entry: %w", err)
	}
	return entry, nil
}

// RemoveEntry deletes one of the user's entries
func (s *InventoryService) RemoveEntry(ctx context.Context, userID, entryID uuid.UUID) error {
	res := s.db.WithContext(ctx).Where("id = ? AND user_id = ?", entryID, userID).Delete(&models.InventoryEntry{})
	if res.Error != nil {
		return fmt.Errorf("failed to delete inventory entry: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
