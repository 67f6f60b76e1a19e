package models

// Ingredient is a reference entry in the ingredient catalogue. The same
// name may exist under different measurement units; the pair is unique.
type Ingredient struct {
	ID              uint   `gorm:"primaryKey" json:"id"`
	Name            string `gorm:"size:128;not null;uniqueIndex:idx_ingredient_name_unit" json:"name"`
	MeasurementUnit string `gorm:"size:32;not null;uniqueIndex:idx_ingredient_name_unit" json:"measurement_unit"`
}
