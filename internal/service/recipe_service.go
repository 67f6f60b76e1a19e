package service

import (
	"context"

	"foodgram/internal/imaging"
	"foodgram/internal/middleware"
	"foodgram/internal/models"
	"foodgram/internal/repository"
)

const recipeImageDir = "recipes"

// RecipeService owns recipe lifecycle and per-user membership (favorites,
// shopping cart entries).
type RecipeService struct {
	recipeRepo     repository.RecipeRepository
	tagRepo        repository.TagRepository
	ingredientRepo repository.IngredientRepository
	decoder        *imaging.Decoder
}

// IngredientAmountInput is one ingredient line of a write payload.
type IngredientAmountInput struct {
	ID     uint `json:"id"`
	Amount int  `json:"amount"`
}

type CreateRecipeInput struct {
	AuthorID    uint
	Name        string
	Text        string
	Image       string // base64 data URI
	CookingTime int
	Ingredients []IngredientAmountInput
	TagIDs      []uint
}

type UpdateRecipeInput struct {
	UserID      uint
	RecipeID    uint
	Name        string
	Text        string
	Image       string // base64 data URI; empty keeps the current image
	CookingTime int
	Ingredients []IngredientAmountInput
	TagIDs      []uint
}

type ListRecipesInput struct {
	Limit         int
	Offset        int
	CurrentUserID uint
	Filter        repository.RecipeFilter
}

func NewRecipeService(
	recipeRepo repository.RecipeRepository,
	tagRepo repository.TagRepository,
	ingredientRepo repository.IngredientRepository,
	decoder *imaging.Decoder,
) *RecipeService {
	return &RecipeService{
		recipeRepo:     recipeRepo,
		tagRepo:        tagRepo,
		ingredientRepo: ingredientRepo,
		decoder:        decoder,
	}
}

// validateAssociations checks the ingredient and tag sets of a write
// payload and resolves them against the catalog. Checks run in a fixed
// order so a payload with several problems always reports the same first
// failure: ingredient presence, then duplicates, then existence, then
// amounts; tags follow the same sequence; cooking time is checked last.
func (s *RecipeService) validateAssociations(ctx context.Context, ingredients []IngredientAmountInput, tagIDs []uint, cookingTime int) ([]models.IngredientInRecipe, []models.Tag, error) {
	if len(ingredients) == 0 {
		return nil, nil, models.NewFieldValidationError("ingredients", "At least one ingredient is required")
	}

	seen := make(map[uint]bool, len(ingredients))
	ids := make([]uint, 0, len(ingredients))
	for _, line := range ingredients {
		if seen[line.ID] {
			return nil, nil, models.NewFieldValidationError("ingredients", "Ingredients must not repeat")
		}
		seen[line.ID] = true
		ids = append(ids, line.ID)
	}

	found, err := s.ingredientRepo.GetByIDs(ctx, ids)
	if err != nil {
		return nil, nil, err
	}
	if len(found) != len(ids) {
		return nil, nil, models.NewFieldValidationError("ingredients", "Unknown ingredient id")
	}

	for _, line := range ingredients {
		if line.Amount < 1 {
			return nil, nil, models.NewFieldValidationError("ingredients", "Ingredient amount must be at least 1")
		}
	}

	if len(tagIDs) == 0 {
		return nil, nil, models.NewFieldValidationError("tags", "At least one tag is required")
	}
	seenTags := make(map[uint]bool, len(tagIDs))
	for _, id := range tagIDs {
		if seenTags[id] {
			return nil, nil, models.NewFieldValidationError("tags", "Tags must not repeat")
		}
		seenTags[id] = true
	}
	tags, err := s.tagRepo.GetByIDs(ctx, tagIDs)
	if err != nil {
		return nil, nil, err
	}
	if len(tags) != len(tagIDs) {
		return nil, nil, models.NewFieldValidationError("tags", "Unknown tag id")
	}

	if cookingTime < 1 {
		return nil, nil, models.NewFieldValidationError("cooking_time", "Cooking time must be at least 1 minute")
	}

	links := make([]models.IngredientInRecipe, 0, len(ingredients))
	for _, line := range ingredients {
		links = append(links, models.IngredientInRecipe{
			IngredientID: line.ID,
			Amount:       line.Amount,
		})
	}
	return links, tags, nil
}

func (s *RecipeService) CreateRecipe(ctx context.Context, in CreateRecipeInput) (*models.Recipe, error) {
	links, tags, err := s.validateAssociations(ctx, in.Ingredients, in.TagIDs, in.CookingTime)
	if err != nil {
		return nil, err
	}
	if in.Name == "" {
		return nil, models.NewFieldValidationError("name", "Name is required")
	}
	if in.Text == "" {
		return nil, models.NewFieldValidationError("text", "Text is required")
	}
	if in.Image == "" {
		return nil, models.NewFieldValidationError("image", "Image is required")
	}

	imagePath, err := s.decoder.Decode(in.Image, recipeImageDir)
	if err != nil {
		return nil, models.NewFieldValidationError("image", err.Error())
	}

	recipe := &models.Recipe{
		AuthorID:    in.AuthorID,
		Name:        in.Name,
		Image:       imagePath,
		Text:        in.Text,
		CookingTime: in.CookingTime,
	}
	if err := s.recipeRepo.Create(ctx, recipe, links, tags); err != nil {
		// keep the media dir free of files no row points at
		if rmErr := s.decoder.Remove(imagePath); rmErr != nil {
			middleware.Logger.Warn("failed to remove orphaned recipe image", "path", imagePath, "error", rmErr)
		}
		return nil, err
	}
	middleware.RecipeWrites.WithLabelValues("create").Inc()

	return s.recipeRepo.GetByID(ctx, recipe.ID, in.AuthorID)
}

func (s *RecipeService) UpdateRecipe(ctx context.Context, in UpdateRecipeInput) (*models.Recipe, error) {
	recipe, err := s.recipeRepo.GetByID(ctx, in.RecipeID, in.UserID)
	if err != nil {
		return nil, err
	}
	if recipe.AuthorID != in.UserID {
		return nil, models.NewForbiddenError("You can only update your own recipes")
	}

	links, tags, err := s.validateAssociations(ctx, in.Ingredients, in.TagIDs, in.CookingTime)
	if err != nil {
		return nil, err
	}
	if in.Name == "" {
		return nil, models.NewFieldValidationError("name", "Name is required")
	}
	if in.Text == "" {
		return nil, models.NewFieldValidationError("text", "Text is required")
	}

	oldImage := recipe.Image
	newImage := oldImage
	if in.Image != "" {
		newImage, err = s.decoder.Decode(in.Image, recipeImageDir)
		if err != nil {
			return nil, models.NewFieldValidationError("image", err.Error())
		}
	}

	recipe.Name = in.Name
	recipe.Text = in.Text
	recipe.Image = newImage
	recipe.CookingTime = in.CookingTime

	if err := s.recipeRepo.Update(ctx, recipe, links, tags); err != nil {
		if newImage != oldImage {
			if rmErr := s.decoder.Remove(newImage); rmErr != nil {
				middleware.Logger.Warn("failed to remove orphaned recipe image", "path", newImage, "error", rmErr)
			}
		}
		return nil, err
	}
	if newImage != oldImage {
		if rmErr := s.decoder.Remove(oldImage); rmErr != nil {
			middleware.Logger.Warn("failed to remove replaced recipe image", "path", oldImage, "error", rmErr)
		}
	}
	middleware.RecipeWrites.WithLabelValues("update").Inc()

	return s.recipeRepo.GetByID(ctx, in.RecipeID, in.UserID)
}

func (s *RecipeService) GetRecipe(ctx context.Context, id uint, currentUserID uint) (*models.Recipe, error) {
	return s.recipeRepo.GetByID(ctx, id, currentUserID)
}

func (s *RecipeService) ListRecipes(ctx context.Context, in ListRecipesInput) ([]*models.Recipe, error) {
	return s.recipeRepo.List(ctx, in.Filter, in.Limit, in.Offset, in.CurrentUserID)
}

func (s *RecipeService) DeleteRecipe(ctx context.Context, userID, recipeID uint) error {
	recipe, err := s.recipeRepo.GetByID(ctx, recipeID, userID)
	if err != nil {
		return err
	}
	if recipe.AuthorID != userID {
		return models.NewForbiddenError("You can only delete your own recipes")
	}
	if err := s.recipeRepo.Delete(ctx, recipeID); err != nil {
		return err
	}
	if rmErr := s.decoder.Remove(recipe.Image); rmErr != nil {
		middleware.Logger.Warn("failed to remove deleted recipe image", "path", recipe.Image, "error", rmErr)
	}
	middleware.RecipeWrites.WithLabelValues("delete").Inc()
	return nil
}

// Favorite adds the recipe to the user's favorites and returns its
// compact representation. Adding twice is an error.
func (s *RecipeService) Favorite(ctx context.Context, userID, recipeID uint) (*models.Recipe, error) {
	recipe, err := s.recipeRepo.GetByID(ctx, recipeID, userID)
	if err != nil {
		return nil, err
	}
	if recipe.IsFavorited {
		return nil, models.NewConflictError("Recipe is already in favorites")
	}
	if err := s.recipeRepo.Favorite(ctx, userID, recipeID); err != nil {
		return nil, err
	}
	return recipe, nil
}

func (s *RecipeService) Unfavorite(ctx context.Context, userID, recipeID uint) error {
	if _, err := s.recipeRepo.GetByID(ctx, recipeID, userID); err != nil {
		return err
	}
	removed, err := s.recipeRepo.Unfavorite(ctx, userID, recipeID)
	if err != nil {
		return err
	}
	if !removed {
		return models.NewConflictError("Recipe is not in favorites")
	}
	return nil
}

// AddToCart queues the recipe for the user's shopping list and returns
// its compact representation. Adding twice is an error.
func (s *RecipeService) AddToCart(ctx context.Context, userID, recipeID uint) (*models.Recipe, error) {
	recipe, err := s.recipeRepo.GetByID(ctx, recipeID, userID)
	if err != nil {
		return nil, err
	}
	if recipe.IsInShoppingCart {
		return nil, models.NewConflictError("Recipe is already in shopping cart")
	}
	if err := s.recipeRepo.AddToCart(ctx, userID, recipeID); err != nil {
		return nil, err
	}
	return recipe, nil
}

func (s *RecipeService) RemoveFromCart(ctx context.Context, userID, recipeID uint) error {
	if _, err := s.recipeRepo.GetByID(ctx, recipeID, userID); err != nil {
		return err
	}
	removed, err := s.recipeRepo.RemoveFromCart(ctx, userID, recipeID)
	if err != nil {
		return err
	}
	if !removed {
		return models.NewConflictError("Recipe is not in shopping cart")
	}
	return nil
}
