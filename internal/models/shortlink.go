package models

import "time"

// ShortLink persists the reverse lookup for a recipe's short token so
// /s/:token can resolve. The token is derived deterministically from the
// server secret and the recipe id; it is a convenience identifier, not a
// security boundary.
type ShortLink struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Token     string    `gorm:"size:16;unique;not null" json:"token"`
	RecipeID  uint      `gorm:"unique;not null" json:"recipe_id"`
	CreatedAt time.Time `json:"created_at"`
}
