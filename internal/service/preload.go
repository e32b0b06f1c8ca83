package service

import "gorm.io/gorm"

// withProducts preloads everything the nutrient resolver reads for rows
// that reference a product, under the given association prefix.
func withProducts(db *gorm.DB, prefix string) *gorm.DB {
	return db.
		Preload(prefix + "ProductBase.MeasurementUnit").
		Preload(prefix + "ProductBase.NutritionalInfo").
		Preload(prefix + "UserProduct.NutritionalInfo").
		Preload(prefix + "UserProduct.ProductBase.MeasurementUnit").
		Preload(prefix + "UserProduct.ProductBase.NutritionalInfo").
		Preload(prefix + "MeasurementUnit")
}
