package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ShoppingList struct {
	Model
	UserID          uuid.UUID          `gorm:"type:uuid;not null;index" json:"user_id"`
	Name            string             `gorm:"size:255;not null" json:"name"`
	IsCompleted     bool               `gorm:"not null" json:"is_completed"`
	IsAutoGenerated bool               `gorm:"not null" json:"is_auto_generated"`
	Items           []ShoppingListItem `gorm:"foreignKey:ShoppingListID;constraint:OnDelete:CASCADE" json:"items,omitempty"`
}

func (ShoppingList) TableName() string {
	return "shopping_lists"
}

type ShoppingListItem struct {
	Model
	ShoppingListID    uuid.UUID        `gorm:"type:uuid;not null;index" json:"shopping_list_id"`
	ProductBaseID     *uuid.UUID       `gorm:"type:uuid" json:"product_base_id,omitempty"`
	ProductBase       *ProductBase     `json:"product_base,omitempty"`
	UserProductID     *uuid.UUID       `gorm:"type:uuid" json:"user_product_id,omitempty"`
	UserProduct       *UserProduct     `json:"user_product,omitempty"`
	Quantity          float64          `gorm:"not null" json:"quantity"`
	MeasurementUnitID *uuid.UUID       `gorm:"type:uuid" json:"measurement_unit_id,omitempty"`
	MeasurementUnit   *MeasurementUnit `json:"measurement_unit,omitempty"`
	IsPurchased       bool             `gorm:"not null" json:"is_purchased"`
}

func (ShoppingListItem) TableName() string {
	return "shopping_list_items"
}

func (i *ShoppingListItem) BeforeSave(tx *gorm.DB) error {
	_, err := i.Product()
	return err
}

func (i ShoppingListItem) Product() (ProductRef, error) {
	return ParseProductRef(i.ProductBaseID, i.UserProductID)
}

func (i *ShoppingListItem) SetProduct(ref ProductRef) {
	i.ProductBaseID, i.UserProductID = ref.Columns()
}

// AllModels lists every table in migration order
func AllModels() []interface{} {
	return []interface{}{
		&MeasurementUnit{},
		&ProductBase{},
		&NutritionalInfo{},
		&UserProduct{},
		&UserProductNutritionalInfo{},
		&Diet{},
		&Meal{},
		&DietItem{},
		&DietPreference{},
		&InventoryEntry{},
		&ShoppingList{},
		&ShoppingListItem{},
	}
}
