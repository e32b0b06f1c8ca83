package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Inventory statuses
const (
	InventoryAvailable = "available"
	InventoryLow       = "low"
	InventoryExpired   = "expired"
	InventoryConsumed  = "consumed"
)

type InventoryEntry struct {
	Model
	UserID            uuid.UUID        `gorm:"type:uuid;not null;index" json:"user_id"`
	ProductBaseID     *uuid.UUID       `gorm:"type:uuid" json:"product_base_id,omitempty"`
	ProductBase       *ProductBase     `json:"product_base,omitempty"`
	UserProductID     *uuid.UUID       `gorm:"type:uuid" json:"user_product_id,omitempty"`
	UserProduct       *UserProduct     `json:"user_product,omitempty"`
	Quantity          float64          `gorm:"not null" json:"quantity"`
	MeasurementUnitID *uuid.UUID       `gorm:"type:uuid" json:"measurement_unit_id,omitempty"`
	MeasurementUnit   *MeasurementUnit `json:"measurement_unit,omitempty"`
	ExpirationDate    *time.Time       `json:"expiration_date,omitempty"`
	StorageLocation   string           `gorm:"size:100" json:"storage_location,omitempty"`
	Status            string           `gorm:"size:20;not null" json:"status"`
}

func (InventoryEntry) TableName() string {
	return "inventory"
}

func (e *InventoryEntry) BeforeSave(tx *gorm.DB) error {
	if e.Status == "" {
		e.Status = InventoryAvailable
	}
	_, err := e.Product()
	return err
}

func (e InventoryEntry) Product() (ProductRef, error) {
	return ParseProductRef(e.ProductBaseID, e.UserProductID)
}

func (e *InventoryEntry) SetProduct(ref ProductRef) {
	e.ProductBaseID, e.UserProductID = ref.Columns()
}

// IsValidInventoryStatus reports whether s is a known status
func IsValidInventoryStatus(s string) bool {
	switch s {
	case InventoryAvailable, InventoryLow, InventoryExpired, InventoryConsumed:
		return true
	}
	return false
}
