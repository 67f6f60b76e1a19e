// Package models contains data structures for the application's domain models.
package models

import (
	"time"

	"gorm.io/gorm"
)

// User represents a registered account in the Foodgram application.
// Authentication is by email; username is a public handle.
type User struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	Email     string         `gorm:"size:254;unique;not null" json:"email"`
	Username  string         `gorm:"size:150;not null" json:"username"`
	FirstName string         `gorm:"size:150;not null" json:"first_name"`
	LastName  string         `gorm:"size:150;not null" json:"last_name"`
	Password  string         `gorm:"not null" json:"-"`
	Avatar    string         `json:"-"`
	CreatedAt time.Time      `json:"-"`
	UpdatedAt time.Time      `json:"-"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
	Recipes   []Recipe       `gorm:"foreignKey:AuthorID" json:"-"`
}

// UserView is the public profile representation of a user.
type UserView struct {
	Email        string  `json:"email"`
	ID           uint    `json:"id"`
	Username     string  `json:"username"`
	FirstName    string  `json:"first_name"`
	LastName     string  `json:"last_name"`
	IsSubscribed bool    `json:"is_subscribed"`
	Avatar       *string `json:"avatar"`
}

// View builds the public profile of the user. isSubscribed is computed by
// the caller against the requesting user; false for anonymous requests.
func (u *User) View(isSubscribed bool, mediaURL func(string) string) UserView {
	v := UserView{
		Email:        u.Email,
		ID:           u.ID,
		Username:     u.Username,
		FirstName:    u.FirstName,
		LastName:     u.LastName,
		IsSubscribed: isSubscribed,
	}
	if u.Avatar != "" {
		url := mediaURL(u.Avatar)
		v.Avatar = &url
	}
	return v
}

// SubscriptionView is a followed author's profile annotated with their
// recipes and recipe count.
type SubscriptionView struct {
	UserView
	Recipes      []RecipeShortView `json:"recipes"`
	RecipesCount int64             `json:"recipes_count"`
}
