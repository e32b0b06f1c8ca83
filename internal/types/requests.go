package types

import (
	"time"

	"github.com/google/uuid"

	"github.com/pageza/nutriplan/backend/internal/models"
)

// ProductInput names a product by exactly one of its two ids
type ProductInput struct {
	ProductBaseID *uuid.UUID `json:"product_base_id,omitempty"`
	UserProductID *uuid.UUID `json:"user_product_id,omitempty"`
}

// Ref validates the input and returns the product reference
func (p ProductInput) Ref() (models.ProductRef, error) {
	return models.ParseProductRef(p.ProductBaseID, p.UserProductID)
}

// GenerateShoppingListRequest is the body of POST /shopping-lists/generate.
// Days defaults to 7 when omitted.
type GenerateShoppingListRequest struct {
	Days *int `json:"days"`
}

// GenerateShoppingListResponse reports the outcome of a generation
type GenerateShoppingListResponse struct {
	Success        bool         `json:"success"`
	ShoppingListID *uuid.UUID   `json:"shoppingListId,omitempty"`
	ItemsCount     int          `json:"itemsCount,omitempty"`
	Error          *ErrorDetail `json:"error,omitempty"`
}

// GenerationQuotaResponse reports how many generations are left in the
// current window. Limited is false when generation is not rate limited.
type GenerationQuotaResponse struct {
	Limited   bool       `json:"limited"`
	Limit     int        `json:"limit,omitempty"`
	Remaining *int       `json:"remaining,omitempty"`
	ResetAt   *time.Time `json:"reset_at,omitempty"`
}

// ErrorDetail carries a typed failure to the client
type ErrorDetail struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
	Hint    string `json:"hint,omitempty"`
}

type UpdateShoppingListItemRequest struct {
	IsPurchased *bool `json:"is_purchased" binding:"required"`
}

type UpdateShoppingListRequest struct {
	IsCompleted *bool `json:"is_completed" binding:"required"`
}

// NutritionItemInput is one ad-hoc portion for the totals calculator
type NutritionItemInput struct {
	ProductInput
	Quantity          float64    `json:"quantity"`
	MeasurementUnitID *uuid.UUID `json:"measurement_unit_id,omitempty"`
}

type NutritionTotalsRequest struct {
	Items        []NutritionItemInput `json:"items" binding:"required"`
	NutrientKeys []string             `json:"nutrient_keys"`
}

type CreateDietRequest struct {
	Name                string     `json:"name" binding:"required,max=255"`
	Objective           string     `json:"objective" binding:"required,oneof=weight_loss weight_gain muscle_gain maintenance health_improvement disease_management"`
	IsActive            bool       `json:"is_active"`
	TargetCalories      *float64   `json:"target_calories" binding:"omitempty,gte=0"`
	TargetProtein       *float64   `json:"target_protein" binding:"omitempty,gte=0"`
	TargetCarbohydrates *float64   `json:"target_carbohydrates" binding:"omitempty,gte=0"`
	TargetFat           *float64   `json:"target_fat" binding:"omitempty,gte=0"`
	StartDate           *time.Time `json:"start_date"`
	EndDate             *time.Time `json:"end_date"`
}

type CreateMealRequest struct {
	MealType  string `json:"meal_type" binding:"required,oneof=breakfast morning_snack lunch afternoon_snack dinner supper pre_workout post_workout"`
	Name      string `json:"name" binding:"max=255"`
	MealOrder int    `json:"meal_order" binding:"gte=0"`
}

type CreateDietItemRequest struct {
	ProductInput
	Quantity          float64    `json:"quantity" binding:"gt=0"`
	MeasurementUnitID *uuid.UUID `json:"measurement_unit_id"`
	PreparationNotes  string     `json:"preparation_notes"`
}

type CreateInventoryRequest struct {
	ProductInput
	Quantity          float64    `json:"quantity" binding:"gte=0"`
	MeasurementUnitID *uuid.UUID `json:"measurement_unit_id"`
	ExpirationDate    *time.Time `json:"expiration_date"`
	StorageLocation   string     `json:"storage_location" binding:"max=100"`
	Status            string     `json:"status" binding:"omitempty,oneof=available low expired consumed"`
}

type TrackedNutrientsRequest struct {
	NutrientKeys []string `json:"nutrient_keys" binding:"required"`
}

type TrackedNutrientsResponse struct {
	DietID       uuid.UUID `json:"diet_id"`
	NutrientKeys []string  `json:"nutrient_keys"`
}

type AvatarUploadRequest struct {
	ContentType string `json:"content_type" binding:"required"`
}
