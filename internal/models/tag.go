package models

// Tag labels recipes for filtering. Name and slug are both unique.
type Tag struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"size:128;unique;not null" json:"name"`
	Slug string `gorm:"size:64;unique;not null" json:"slug"`
}
