package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/pageza/nutriplan/backend/internal/models"
	"github.com/pageza/nutriplan/backend/internal/types"
)

// DietService handles diets, their meals and meal items
type DietService struct {
	db *gorm.DB
}

func NewDietService(db *gorm.DB) *DietService {
	return &DietService{db: db}
}

// ListDiets returns the user's diets, active first
func (s *DietService) ListDiets(ctx context.Context, userID uuid.UUID) ([]models.Diet, error) {
	var diets []models.Diet
	if err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("is_active DESC, start_date DESC, created_at DESC").
		Find(&diets).Error; err != nil {
		return nil, fmt.Errorf("failed to list diets: %w", err)
	}
	return diets, nil
}

// GetDiet returns one of the user's diets without its meals
func (s *DietService) GetDiet(ctx context.Context, userID, dietID uuid.UUID) (*models.Diet, error) {
	var diet models.Diet
	if err := s.db.WithContext(ctx).Where("id = ? AND user_id = ?", dietID, userID).First(&diet).Error; err != nil {
		return nil, notFound(err, "failed to get diet")
	}
	return &diet, nil
}

// GetDietWithItems returns a diet with its meals in order and every item
// loaded with what nutrient resolution needs.
func (s *DietService) GetDietWithItems(ctx context.Context, userID, dietID uuid.UUID) (*models.Diet, error) {
	var diet models.Diet
	q := s.db.WithContext(ctx).
		Preload("Meals", func(db *gorm.DB) *gorm.DB {
			return db.Order("meal_order ASC, created_at ASC")
		}).
		Preload("Meals.Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC, id ASC")
		})
	if err := withProducts(q, "Meals.Items.").
		Where("id = ? AND user_id = ?", dietID, userID).
		First(&diet).Error; err != nil {
		return nil, notFound(err, "failed to get diet")
	}
	return &diet, nil
}

// CreateDiet stores a new diet. An active diet deactivates the others.
func (s *DietService) CreateDiet(ctx context.Context, userID uuid.UUID, req *types.CreateDietRequest) (*models.Diet, error) {
	if !models.IsValidObjective(req.Objective) {
		return nil, fmt.Errorf("%w: unknown objective %q", ErrInvalidInput, req.Objective)
	}
	start := time.Now().UTC().Truncate(24 * time.Hour)
	if req.StartDate != nil {
		start = *req.StartDate
	}
	if req.EndDate != nil && req.EndDate.Before(start) {
		return nil, fmt.Errorf("%w: end_date is before start_date", ErrInvalidInput)
	}

	diet := &models.Diet{
		UserID:              userID,
		Name:                req.Name,
		Objective:           req.Objective,
		IsActive:            req.IsActive,
		TargetCalories:      req.TargetCalories,
		TargetProtein:       req.TargetProtein,
		TargetCarbohydrates: req.TargetCarbohydrates,
		TargetFat:           req.TargetFat,
		StartDate:           start,
		EndDate:             req.EndDate,
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if diet.IsActive {
			if err := deactivateDiets(tx, userID, uuid.Nil); err != nil {
				return err
			}
		}
		return tx.Create(diet).Error
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create diet: %w", err)
	}
	return diet, nil
}

// ActivateDiet makes dietID the user's only active diet
func (s *DietService) ActivateDiet(ctx context.Context, userID, dietID uuid.UUID) (*models.Diet, error) {
	var diet models.Diet
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ? AND user_id = ?", dietID, userID).First(&diet).Error; err != nil {
			return err
		}
		if err := deactivateDiets(tx, userID, dietID); err != nil {
			return err
		}
		return tx.Model(&diet).Update("is_active", true).Error
	})
	if err != nil {
		return nil, notFound(err, "failed to activate diet")
	}
	diet.IsActive = true
	log.Printf("[DietService] diet %s is now active for user %s", dietID, userID)
	return &diet, nil
}

func deactivateDiets(tx *gorm.DB, userID, except uuid.UUID) error {
	return tx.Model(&models.Diet{}).
		Where("user_id = ? AND is_active = ? AND id <> ?", userID, true, except).
		Update("is_active", false).Error
}

// AddMeal appends a meal to one of the user's diets
func (s *DietService) AddMeal(ctx context.Context, userID, dietID uuid.UUID, req *types.CreateMealRequest) (*models.Meal, error) {
	if !models.IsValidMealType(req.MealType) {
		return nil, fmt.Errorf("%w: unknown meal type %q", ErrInvalidInput, req.MealType)
	}
	if _, err := s.GetDiet(ctx, userID, dietID); err != nil {
		return nil, err
	}

	meal := &models.Meal{
		DietID:    dietID,
		MealType:  req.MealType,
		Name:      req.Name,
		MealOrder: req.MealOrder,
	}
	if err := s.db.WithContext(ctx).Create(meal).Error; err != nil {
		return nil, fmt.Errorf("failed to create meal: %w", err)
	}
	return meal, nil
}

// AddItem adds a product portion to a meal of one of the user's diets
func (s *DietService) AddItem(ctx context.Context, userID, mealID uuid.UUID, req *types.CreateDietItemRequest) (*models.DietItem, error) {
	ref, err := req.Ref()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if req.Quantity <= 0 {
		return nil, fmt.Errorf("%w: quantity must be positive", ErrInvalidInput)
	}

	var meal models.Meal
	if err := s.db.WithContext(ctx).
		Joins("JOIN diets ON diets.id = meals.diet_id").
		Where("meals.id = ? AND diets.user_id = ?", mealID, userID).
		First(&meal).Error; err != nil {
		return nil, notFound(err, "failed to get meal")
	}

	if err := checkProduct(ctx, s.db, userID, ref); err != nil {
		return nil, err
	}

	item := &models.DietItem{
		MealID:            meal.ID,
		Quantity:          req.Quantity,
		MeasurementUnitID: req.MeasurementUnitID,
		PreparationNotes:  req.PreparationNotes,
	}
	item.SetProduct(ref)
	if err := s.db.WithContext(ctx).Create(item).Error; err != nil {
		return nil, fmt.Errorf("failed to create diet item: %w", err)
	}
	return item, nil
}

// checkProduct verifies that ref names a catalog product or a product the
// user owns.
func checkProduct(ctx context.Context, db *gorm.DB, userID uuid.UUID, ref models.ProductRef) error {
	var count int64
	q := db.WithContext(ctx)
	switch ref.Kind {
	case models.ProductKindBase:
		q = q.Model(&models.ProductBase{}).Where("id = ?", ref.ID)
	case models.ProductKindUser:
		q = q.Model(&models.UserProduct{}).Where("id = ? AND user_id = ?", ref.ID, userID)
	default:
		return fmt.Errorf("%w: %v", ErrInvalidInput, models.ErrInvalidProductRef)
	}
	if err := q.Count(&count).Error; err != nil {
		return fmt.Errorf("failed to check product: %w", err)
	}
	if count == 0 {
		return fmt.Errorf("%w: product %s does not exist", ErrInvalidInput, ref)
	}
	return nil
}
