package models

import (
	"time"

	"github.com/google/uuid"
)

// Mass-class unit abbreviations
const (
	UnitGram     = "g"
	UnitKilogram = "kg"
)

type MeasurementUnit struct {
	Model
	Abbreviation string `gorm:"size:20;not null;uniqueIndex" json:"abbreviation"`
	Name         string `gorm:"size:100;not null" json:"name"`
	Active       bool   `gorm:"not null" json:"active"`
}

func (MeasurementUnit) TableName() string {
	return "measurement_units"
}

// ProductBase is a catalog product
type ProductBase struct {
	Model
	Name              string           `gorm:"size:255;not null" json:"name"`
	Category          string           `gorm:"size:100" json:"category,omitempty"`
	MeasurementUnitID *uuid.UUID       `gorm:"type:uuid" json:"measurement_unit_id,omitempty"`
	MeasurementUnit   *MeasurementUnit `json:"measurement_unit,omitempty"`
	NutritionalInfo   *NutritionalInfo `gorm:"foreignKey:ProductBaseID" json:"nutritional_info,omitempty"`
}

func (ProductBase) TableName() string {
	return "product_base"
}

// UserProduct is a product owned by a user, optionally linked to the catalog
type UserProduct struct {
	Model
	UserID            uuid.UUID                   `gorm:"type:uuid;not null;index" json:"user_id"`
	ProductBaseID     *uuid.UUID                  `gorm:"type:uuid" json:"product_base_id,omitempty"`
	ProductBase       *ProductBase                `json:"product_base,omitempty"`
	Name              string                      `gorm:"size:255;not null" json:"name"`
	Brand             string                      `gorm:"size:255" json:"brand,omitempty"`
	Price             *float64                    `json:"price,omitempty"`
	Store             string                      `gorm:"size:255" json:"store,omitempty"`
	PurchaseDate      *time.Time                  `json:"purchase_date,omitempty"`
	MeasurementUnitID *uuid.UUID                  `gorm:"type:uuid" json:"measurement_unit_id,omitempty"`
	MeasurementUnit   *MeasurementUnit            `json:"measurement_unit,omitempty"`
	NutritionalInfo   *UserProductNutritionalInfo `gorm:"foreignKey:UserProductID" json:"nutritional_info,omitempty"`
}

func (UserProduct) TableName() string {
	return "user_products"
}
