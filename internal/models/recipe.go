package models

import "time"

// Recipe is a user-authored recipe combining tagged ingredients with
// quantities. Only the author may mutate it. PubDate is set at creation
// and never changes.
type Recipe struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	AuthorID    uint      `gorm:"not null;index" json:"author_id"`
	Author      User      `gorm:"foreignKey:AuthorID" json:"-"`
	Name        string    `gorm:"size:128;not null" json:"name"`
	Image       string    `gorm:"not null" json:"image"`
	Text        string    `gorm:"type:text;not null" json:"text"`
	CookingTime int       `gorm:"not null" json:"cooking_time"`
	PubDate     time.Time `gorm:"autoCreateTime;<-:create" json:"pub_date"`

	Tags            []Tag                `gorm:"many2many:recipe_tags;" json:"tags"`
	IngredientLinks []IngredientInRecipe `gorm:"foreignKey:RecipeID" json:"-"`

	// IsFavorited is not persisted; computed per requesting user at query time
	IsFavorited bool `gorm:"->" json:"is_favorited"`
	// IsInShoppingCart is not persisted; computed per requesting user at query time
	IsInShoppingCart bool `gorm:"->" json:"is_in_shopping_cart"`
}

// IngredientInRecipe links a recipe to an ingredient with a quantity.
// A recipe never holds two lines for the same ingredient; updates replace
// the full line set rather than diffing it.
type IngredientInRecipe struct {
	ID           uint       `gorm:"primaryKey" json:"id"`
	RecipeID     uint       `gorm:"not null;uniqueIndex:idx_recipe_ingredient" json:"recipe_id"`
	IngredientID uint       `gorm:"not null;uniqueIndex:idx_recipe_ingredient" json:"ingredient_id"`
	Ingredient   Ingredient `gorm:"foreignKey:IngredientID" json:"-"`
	Amount       int        `gorm:"not null" json:"amount"`
}

// TableName specifies the table name for GORM
func (IngredientInRecipe) TableName() string {
	return "ingredient_in_recipes"
}

// IngredientLineView is one ingredient row in the recipe read view.
type IngredientLineView struct {
	ID              uint   `json:"id"`
	Name            string `json:"name"`
	MeasurementUnit string `json:"measurement_unit"`
	Amount          int    `json:"amount"`
}

// RecipeView is the denormalized read representation of a recipe.
type RecipeView struct {
	ID               uint                 `json:"id"`
	Tags             []Tag                `json:"tags"`
	Author           UserView             `json:"author"`
	Ingredients      []IngredientLineView `json:"ingredients"`
	IsFavorited      bool                 `json:"is_favorited"`
	IsInShoppingCart bool                 `json:"is_in_shopping_cart"`
	Name             string               `json:"name"`
	Image            string               `json:"image"`
	Text             string               `json:"text"`
	CookingTime      int                  `json:"cooking_time"`
}

// RecipeShortView is the compact representation used by favorite/cart
// responses and subscription payloads.
type RecipeShortView struct {
	ID          uint   `json:"id"`
	Name        string `json:"name"`
	Image       string `json:"image"`
	CookingTime int    `json:"cooking_time"`
}

// View assembles the read representation. The recipe must have its tags,
// ingredient links (with ingredients) and author preloaded; the favorited
// and cart flags are taken from the computed columns.
func (r *Recipe) View(authorSubscribed bool, mediaURL func(string) string) RecipeView {
	lines := make([]IngredientLineView, 0, len(r.IngredientLinks))
	for _, link := range r.IngredientLinks {
		lines = append(lines, IngredientLineView{
			ID:              link.Ingredient.ID,
			Name:            link.Ingredient.Name,
			MeasurementUnit: link.Ingredient.MeasurementUnit,
			Amount:          link.Amount,
		})
	}

	tags := r.Tags
	if tags == nil {
		tags = []Tag{}
	}

	return RecipeView{
		ID:               r.ID,
		Tags:             tags,
		Author:           r.Author.View(authorSubscribed, mediaURL),
		Ingredients:      lines,
		IsFavorited:      r.IsFavorited,
		IsInShoppingCart: r.IsInShoppingCart,
		Name:             r.Name,
		Image:            mediaURL(r.Image),
		Text:             r.Text,
		CookingTime:      r.CookingTime,
	}
}

// ShortView assembles the compact representation.
func (r *Recipe) ShortView(mediaURL func(string) string) RecipeShortView {
	return RecipeShortView{
		ID:          r.ID,
		Name:        r.Name,
		Image:       mediaURL(r.Image),
		CookingTime: r.CookingTime,
	}
}
