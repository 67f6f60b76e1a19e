package repository

import (
	"context"
	"errors"

	"foodgram/internal/models"

	"gorm.io/gorm"
)

// RecipeFilter narrows recipe listings.
type RecipeFilter struct {
	AuthorID uint
	TagSlugs []string
	// FavoritedOnly / InCartOnly filter by the requesting user's membership
	// rows. For anonymous requests they yield an empty result set.
	FavoritedOnly bool
	InCartOnly    bool
}

// RecipeRepository defines the interface for recipe data operations
type RecipeRepository interface {
	Create(ctx context.Context, recipe *models.Recipe, links []models.IngredientInRecipe, tags []models.Tag) error
	Update(ctx context.Context, recipe *models.Recipe, links []models.IngredientInRecipe, tags []models.Tag) error
	GetByID(ctx context.Context, id uint, currentUserID uint) (*models.Recipe, error)
	List(ctx context.Context, filter RecipeFilter, limit, offset int, currentUserID uint) ([]*models.Recipe, error)
	Delete(ctx context.Context, id uint) error

	CountByAuthor(ctx context.Context, authorID uint) (int64, error)
	ShortByAuthor(ctx context.Context, authorID uint, limit int) ([]models.Recipe, error)

	IsFavorited(ctx context.Context, userID, recipeID uint) (bool, error)
	Favorite(ctx context.Context, userID, recipeID uint) error
	Unfavorite(ctx context.Context, userID, recipeID uint) (bool, error)

	IsInCart(ctx context.Context, userID, recipeID uint) (bool, error)
	AddToCart(ctx context.Context, userID, recipeID uint) error
	RemoveFromCart(ctx context.Context, userID, recipeID uint) (bool, error)
	AggregateCart(ctx context.Context, userID uint) ([]models.ShoppingListItem, error)
}

// recipeRepository implements RecipeRepository
type recipeRepository struct {
	db *gorm.DB
}

// NewRecipeRepository creates a new recipe repository
func NewRecipeRepository(db *gorm.DB) RecipeRepository {
	return &recipeRepository{db: db}
}

// Create persists the recipe row, its ingredient links and tag set in one
// transaction. Validation happens before this point; any failure here is a
// store-level fault.
func (r *recipeRepository) Create(ctx context.Context, recipe *models.Recipe, links []models.IngredientInRecipe, tags []models.Tag) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Tags", "IngredientLinks", "Author").Create(recipe).Error; err != nil {
			return err
		}
		for i := range links {
			links[i].RecipeID = recipe.ID
		}
		if err := tx.Create(&links).Error; err != nil {
			return err
		}
		return tx.Model(recipe).Association("Tags").Replace(tags)
	})
	if err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

// Update applies scalar changes and replaces the tag set and ingredient
// links wholesale (delete-all-then-reinsert) inside one transaction, so a
// concurrent reader never observes a recipe with zero ingredients.
func (r *recipeRepository) Update(ctx context.Context, recipe *models.Recipe, links []models.IngredientInRecipe, tags []models.Tag) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(recipe).
			Select("name", "image", "text", "cooking_time").
			Updates(map[string]interface{}{
				"name":         recipe.Name,
				"image":        recipe.Image,
				"text":         recipe.Text,
				"cooking_time": recipe.CookingTime,
			}).Error; err != nil {
			return err
		}
		if err := tx.Where("recipe_id = ?", recipe.ID).Delete(&models.IngredientInRecipe{}).Error; err != nil {
			return err
		}
		for i := range links {
			links[i].ID = 0
			links[i].RecipeID = recipe.ID
		}
		if err := tx.Create(&links).Error; err != nil {
			return err
		}
		return tx.Model(recipe).Association("Tags").Replace(tags)
	})
	if err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *recipeRepository) GetByID(ctx context.Context, id uint, currentUserID uint) (*models.Recipe, error) {
	var recipe models.Recipe
	err := r.applyRecipeFlags(r.db.WithContext(ctx), currentUserID).
		Preload("Author").
		Preload("Tags").
		Preload("IngredientLinks").
		Preload("IngredientLinks.Ingredient").
		First(&recipe, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Recipe", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &recipe, nil
}

func (r *recipeRepository) List(ctx context.Context, filter RecipeFilter, limit, offset int, currentUserID uint) ([]*models.Recipe, error) {
	var recipes []*models.Recipe
	q := r.applyRecipeFlags(r.db.WithContext(ctx), currentUserID).
		Preload("Author").
		Preload("Tags").
		Preload("IngredientLinks").
		Preload("IngredientLinks.Ingredient")

	if filter.AuthorID != 0 {
		q = q.Where("recipes.author_id = ?", filter.AuthorID)
	}
	if len(filter.TagSlugs) > 0 {
		q = q.Where("recipes.id IN (?)",
			r.db.Table("recipe_tags").
				Select("recipe_tags.recipe_id").
				Joins("JOIN tags ON tags.id = recipe_tags.tag_id").
				Where("tags.slug IN ?", filter.TagSlugs))
	}
	if filter.FavoritedOnly {
		if currentUserID == 0 {
			return []*models.Recipe{}, nil
		}
		q = q.Where("recipes.id IN (?)",
			r.db.Table("favorites").Select("recipe_id").Where("user_id = ?", currentUserID))
	}
	if filter.InCartOnly {
		if currentUserID == 0 {
			return []*models.Recipe{}, nil
		}
		q = q.Where("recipes.id IN (?)",
			r.db.Table("shopping_carts").Select("recipe_id").Where("user_id = ?", currentUserID))
	}

	err := q.Order("recipes.pub_date DESC").Order("recipes.id DESC").
		Limit(limit).
		Offset(offset).
		Find(&recipes).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return recipes, nil
}

// applyRecipeFlags adds subqueries computing the per-user favorited and
// cart flags in the same query. Anonymous requesters get constant false.
func (r *recipeRepository) applyRecipeFlags(db *gorm.DB, currentUserID uint) *gorm.DB {
	if currentUserID != 0 {
		return db.Select("recipes.*, "+
			"EXISTS(SELECT 1 FROM favorites WHERE favorites.recipe_id = recipes.id AND favorites.user_id = ?) AS is_favorited, "+
			"EXISTS(SELECT 1 FROM shopping_carts WHERE shopping_carts.recipe_id = recipes.id AND shopping_carts.user_id = ?) AS is_in_shopping_cart",
			currentUserID, currentUserID)
	}
	return db.Select("recipes.*, FALSE AS is_favorited, FALSE AS is_in_shopping_cart")
}

// Delete removes the recipe and every row referencing it. Favorites and
// cart entries of other users must not survive the recipe, so the whole
// teardown runs in one transaction.
func (r *recipeRepository) Delete(ctx context.Context, id uint) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		recipe := models.Recipe{ID: id}
		if err := tx.Model(&recipe).Association("Tags").Clear(); err != nil {
			return err
		}
		if err := tx.Where("recipe_id = ?", id).Delete(&models.IngredientInRecipe{}).Error; err != nil {
			return err
		}
		if err := tx.Where("recipe_id = ?", id).Delete(&models.Favorite{}).Error; err != nil {
			return err
		}
		if err := tx.Where("recipe_id = ?", id).Delete(&models.ShoppingCart{}).Error; err != nil {
			return err
		}
		if err := tx.Where("recipe_id = ?", id).Delete(&models.ShortLink{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Recipe{}, id).Error
	})
	if err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *recipeRepository) CountByAuthor(ctx context.Context, authorID uint) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Recipe{}).
		Where("author_id = ?", authorID).
		Count(&count).Error; err != nil {
		return 0, models.NewInternalError(err)
	}
	return count, nil
}

// ShortByAuthor returns the author's recipes, newest first, optionally
// truncated. limit <= 0 means no truncation.
func (r *recipeRepository) ShortByAuthor(ctx context.Context, authorID uint, limit int) ([]models.Recipe, error) {
	var recipes []models.Recipe
	q := r.db.WithContext(ctx).
		Where("author_id = ?", authorID).
		Order("pub_date DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&recipes).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return recipes, nil
}

func (r *recipeRepository) IsFavorited(ctx context.Context, userID, recipeID uint) (bool, error) {
	return r.pairExists(ctx, &models.Favorite{}, userID, recipeID)
}

func (r *recipeRepository) Favorite(ctx context.Context, userID, recipeID uint) error {
	fav := models.Favorite{UserID: userID, RecipeID: recipeID}
	if err := r.db.WithContext(ctx).Create(&fav).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *recipeRepository) Unfavorite(ctx context.Context, userID, recipeID uint) (bool, error) {
	res := r.db.WithContext(ctx).
		Where("user_id = ? AND recipe_id = ?", userID, recipeID).
		Delete(&models.Favorite{})
	if res.Error != nil {
		return false, models.NewInternalError(res.Error)
	}
	return res.RowsAffected > 0, nil
}

func (r *recipeRepository) IsInCart(ctx context.Context, userID, recipeID uint) (bool, error) {
	return r.pairExists(ctx, &models.ShoppingCart{}, userID, recipeID)
}

func (r *recipeRepository) AddToCart(ctx context.Context, userID, recipeID uint) error {
	item := models.ShoppingCart{UserID: userID, RecipeID: recipeID}
	if err := r.db.WithContext(ctx).Create(&item).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *recipeRepository) RemoveFromCart(ctx context.Context, userID, recipeID uint) (bool, error) {
	res := r.db.WithContext(ctx).
		Where("user_id = ? AND recipe_id = ?", userID, recipeID).
		Delete(&models.ShoppingCart{})
	if res.Error != nil {
		return false, models.NewInternalError(res.Error)
	}
	return res.RowsAffected > 0, nil
}

func (r *recipeRepository) pairExists(ctx context.Context, model interface{}, userID, recipeID uint) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(model).
		Where("user_id = ? AND recipe_id = ?", userID, recipeID).
		Count(&count).Error; err != nil {
		return false, models.NewInternalError(err)
	}
	return count > 0, nil
}

// AggregateCart sums ingredient amounts across every recipe in the user's
// cart, grouped by ingredient name and unit, ordered by name.
func (r *recipeRepository) AggregateCart(ctx context.Context, userID uint) ([]models.ShoppingListItem, error) {
	var items []models.ShoppingListItem
	err := r.db.WithContext(ctx).
		Table("ingredient_in_recipes").
		Select("ingredients.name AS name, ingredients.measurement_unit AS measurement_unit, SUM(ingredient_in_recipes.amount) AS total").
		Joins("JOIN ingredients ON ingredients.id = ingredient_in_recipes.ingredient_id").
		Where("ingredient_in_recipes.recipe_id IN (?)",
			r.db.Table("shopping_carts").Select("recipe_id").Where("user_id = ?", userID)).
		Group("ingredients.name, ingredients.measurement_unit").
		Order("ingredients.name ASC").
		Scan(&items).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return items, nil
}
