package models

import (
	"github.com/google/uuid"
)

// Nutrient keys as stored and exchanged over the API
const (
	NutrientCalories      = "calories"
	NutrientProtein       = "protein"
	NutrientCarbohydrates = "carbohydrates"
	NutrientTotalFat      = "total_fat"
	NutrientSaturatedFat  = "saturated_fat"
	NutrientTransFat      = "trans_fat"
	NutrientFiber         = "fiber"
	NutrientSugar         = "sugar"
	NutrientSodium        = "sodium"
	NutrientCalcium       = "calcium"
	NutrientIron          = "iron"
	NutrientMagnesium     = "magnesium"
	NutrientPotassium     = "potassium"
	NutrientZinc          = "zinc"
	NutrientVitaminA      = "vitamin_a"
	NutrientVitaminB1     = "vitamin_b1"
	NutrientVitaminB2     = "vitamin_b2"
	NutrientVitaminB3     = "vitamin_b3"
	NutrientVitaminB6     = "vitamin_b6"
	NutrientVitaminB12    = "vitamin_b12"
	NutrientVitaminC      = "vitamin_c"
	NutrientVitaminD      = "vitamin_d"
	NutrientVitaminE      = "vitamin_e"
	NutrientVitaminK      = "vitamin_k"
	NutrientCholesterol   = "cholesterol"
)

// NutrientValues holds the nutrient fields of a profile. A nil field means
// the value is unknown.
type NutrientValues struct {
	Calories      *float64 `json:"calories,omitempty"`
	Protein       *float64 `json:"protein,omitempty"`
	Carbohydrates *float64 `json:"carbohydrates,omitempty"`
	TotalFat      *float64 `json:"total_fat,omitempty"`
	SaturatedFat  *float64 `json:"saturated_fat,omitempty"`
	TransFat      *float64 `json:"trans_fat,omitempty"`
	Fiber         *float64 `json:"fiber,omitempty"`
	Sugar         *float64 `json:"sugar,omitempty"`
	Sodium        *float64 `json:"sodium,omitempty"`
	Calcium       *float64 `json:"calcium,omitempty"`
	Iron          *float64 `json:"iron,omitempty"`
	Magnesium     *float64 `json:"magnesium,omitempty"`
	Potassium     *float64 `json:"potassium,omitempty"`
	Zinc          *float64 `json:"zinc,omitempty"`
	VitaminA      *float64 `gorm:"column:vitamin_a" json:"vitamin_a,omitempty"`
	VitaminB1     *float64 `gorm:"column:vitamin_b1" json:"vitamin_b1,omitempty"`
	VitaminB2     *float64 `gorm:"column:vitamin_b2" json:"vitamin_b2,omitempty"`
	VitaminB3     *float64 `gorm:"column:vitamin_b3" json:"vitamin_b3,omitempty"`
	VitaminB6     *float64 `gorm:"column:vitamin_b6" json:"vitamin_b6,omitempty"`
	VitaminB12    *float64 `gorm:"column:vitamin_b12" json:"vitamin_b12,omitempty"`
	VitaminC      *float64 `gorm:"column:vitamin_c" json:"vitamin_c,omitempty"`
	VitaminD      *float64 `gorm:"column:vitamin_d" json:"vitamin_d,omitempty"`
	VitaminE      *float64 `gorm:"column:vitamin_e" json:"vitamin_e,omitempty"`
	VitaminK      *float64 `gorm:"column:vitamin_k" json:"vitamin_k,omitempty"`
	Cholesterol   *float64 `json:"cholesterol,omitempty"`
}

// field maps a nutrient key to its storage field
func (n *NutrientValues) field(key string) **float64 {
	switch key {
	case NutrientCalories:
		return &n.Calories
	case NutrientProtein:
		return &n.Protein
	case NutrientCarbohydrates:
		return &n.Carbohydrates
	case NutrientTotalFat:
		return &n.TotalFat
	case NutrientSaturatedFat:
		return &n.SaturatedFat
	case NutrientTransFat:
		return &n.TransFat
	case NutrientFiber:
		return &n.Fiber
	case NutrientSugar:
		return &n.Sugar
	case NutrientSodium:
		return &n.Sodium
	case NutrientCalcium:
		return &n.Calcium
	case NutrientIron:
		return &n.Iron
	case NutrientMagnesium:
		return &n.Magnesium
	case NutrientPotassium:
		return &n.Potassium
	case NutrientZinc:
		return &n.Zinc
	case NutrientVitaminA:
		return &n.VitaminA
	case NutrientVitaminB1:
		return &n.VitaminB1
	case NutrientVitaminB2:
		return &n.VitaminB2
	case NutrientVitaminB3:
		return &n.VitaminB3
	case NutrientVitaminB6:
		return &n.VitaminB6
	case NutrientVitaminB12:
		return &n.VitaminB12
	case NutrientVitaminC:
		return &n.VitaminC
	case NutrientVitaminD:
		return &n.VitaminD
	case NutrientVitaminE:
		return &n.VitaminE
	case NutrientVitaminK:
		return &n.VitaminK
	case NutrientCholesterol:
		return &n.Cholesterol
	}
	return nil
}

// Get returns the value stored for key. ok is false for unknown keys and
// unset fields.
func (n NutrientValues) Get(key string) (value float64, ok bool) {
	f := n.field(key)
	if f == nil || *f == nil {
		return 0, false
	}
	return **f, true
}

// Set stores v under key and reports whether the key is known.
func (n *NutrientValues) Set(key string, v float64) bool {
	f := n.field(key)
	if f == nil {
		return false
	}
	*f = &v
	return true
}

// NutritionalInfo is the catalog profile of a product base. Values are
// expressed per ReferenceQuantity of the product's own measurement unit.
type NutritionalInfo struct {
	Model
	ProductBaseID     uuid.UUID `gorm:"type:uuid;not null;uniqueIndex" json:"product_base_id"`
	ReferenceQuantity *float64  `json:"reference_quantity,omitempty"`
	NutrientValues    `gorm:"embedded"`
}

func (NutritionalInfo) TableName() string {
	return "nutritional_info"
}

// UserProductNutritionalInfo overrides the catalog profile for a user product
type UserProductNutritionalInfo struct {
	Model
	UserProductID     uuid.UUID `gorm:"type:uuid;not null;uniqueIndex" json:"user_product_id"`
	ReferenceQuantity *float64  `json:"reference_quantity,omitempty"`
	ReferenceUnit     string    `gorm:"size:20" json:"reference_unit,omitempty"`
	NutrientValues    `gorm:"embedded"`
}

func (UserProductNutritionalInfo) TableName() string {
	return "user_product_nutritional_info"
}
