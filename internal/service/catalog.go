package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/pageza/nutriplan/backend/internal/models"
	"github.com/pageza/nutriplan/backend/internal/types"
)

// CatalogService reads products and measurement units
type CatalogService struct {
	db *gorm.DB
}

func NewCatalogService(db *gorm.DB) *CatalogService {
	return &CatalogService{db: db}
}

// ListUnits returns the active measurement units
func (s *CatalogService) ListUnits(ctx context.Context) ([]models.MeasurementUnit, error) {
	var units []models.MeasurementUnit
	if err := s.db.WithContext(ctx).Where("active = ?", true).Order("abbreviation").Find(&units).Error; err != nil {
		return nil, fmt.Errorf("failed to list measurement units: %w", err)
	}
	return units, nil
}

// HydrateItems turns ad-hoc portions into diet items carrying the products,
// profiles and units needed to resolve their nutrients. User products must
// belong to userID. An unknown unit id leaves the unit empty.
func (s *CatalogService) HydrateItems(ctx context.Context, userID uuid.UUID, inputs []types.NutritionItemInput) ([]models.DietItem, error) {
	var baseIDs, userIDs, unitIDs []uuid.UUID
	refs := make([]models.ProductRef, len(inputs))
	for i, in := range inputs {
		ref, err := in.Ref()
		if err != nil {
			return nil, fmt.Errorf("%w: item %d: %v", ErrInvalidInput, i, err)
		}
		refs[i] = ref
		if ref.Kind == models.ProductKindBase {
			baseIDs = append(baseIDs, ref.ID)
		} else {
			userIDs = append(userIDs, ref.ID)
		}
		if in.MeasurementUnitID != nil {
			unitIDs = append(unitIDs, *in.MeasurementUnitID)
		}
	}

	db := s.db.WithContext(ctx)

	bases := make(map[uuid.UUID]*models.ProductBase)
	if len(baseIDs) > 0 {
		var rows []models.ProductBase
		if err := db.Preload("MeasurementUnit").Preload("NutritionalInfo").
			Where("id IN ?", baseIDs).Find(&rows).Error; err != nil {
			return nil, fmt.Errorf("failed to load products: %w", err)
		}
		for i := range rows {
			bases[rows[i].ID] = &rows[i]
		}
	}

	owned := make(map[uuid.UUID]*models.UserProduct)
	if len(userIDs) > 0 {
		var rows []models.UserProduct
		if err := db.Preload("NutritionalInfo").
			Preload("ProductBase.MeasurementUnit").
			Preload("ProductBase.NutritionalInfo").
			Where("id IN ? AND user_id = ?", userIDs, userID).Find(&rows).Error; err != nil {
			return nil, fmt.Errorf("failed to load user products: %w", err)
		}
		for i := range rows {
			owned[rows[i].ID] = &rows[i]
		}
	}

	units := make(map[uuid.UUID]*models.MeasurementUnit)
	if len(unitIDs) > 0 {
		var rows []models.MeasurementUnit
		if err := db.Where("id IN ?", unitIDs).Find(&rows).Error; err != nil {
			return nil, fmt.Errorf("failed to load measurement units: %w", err)
		}
		for i := range rows {
			units[rows[i].ID] = &rows[i]
		}
	}

	items := make([]models.DietItem, len(inputs))
	for i, in := range inputs {
		item := models.DietItem{Quantity: in.Quantity, MeasurementUnitID: in.MeasurementUnitID}
		item.SetProduct(refs[i])
		switch refs[i].Kind {
		case models.ProductKindBase:
			p, ok := bases[refs[i].ID]
			if !ok {
				return nil, fmt.Errorf("%w: product %s does not exist", ErrInvalidInput, refs[i])
			}
			item.ProductBase = p
		case models.ProductKindUser:
			p, ok := owned[refs[i].ID]
			if !ok {
				return nil, fmt.Errorf("%w: product %s does not exist", ErrInvalidInput, refs[i])
			}
			item.UserProduct = p
		}
		if in.MeasurementUnitID != nil {
			item.MeasurementUnit = units[*in.MeasurementUnitID]
		}
		items[i] = item
	}
	return items, nil
}
