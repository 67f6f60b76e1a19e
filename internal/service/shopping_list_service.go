package service

import (
	"context"
	"fmt"
	"strings"

	"foodgram/internal/middleware"
	"foodgram/internal/repository"
)

// ShoppingListFilename is the attachment name of the downloaded report.
const ShoppingListFilename = "shopping_cart.txt"

// ShoppingListService renders the aggregated shopping list report.
type ShoppingListService struct {
	recipeRepo repository.RecipeRepository
}

func NewShoppingListService(recipeRepo repository.RecipeRepository) *ShoppingListService {
	return &ShoppingListService{recipeRepo: recipeRepo}
}

// Render produces the plain-text shopping list for everything in the
// user's cart, one ingredient per line, amounts summed across recipes.
// An empty cart yields an empty report, not an error.
func (s *ShoppingListService) Render(ctx context.Context, userID uint) (string, error) {
	items, err := s.recipeRepo.AggregateCart(ctx, userID)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	for _, item := range items {
		fmt.Fprintf(&b, "%s (%s) — %d\n", item.Name, item.MeasurementUnit, item.Total)
	}

	middleware.ShoppingListDownloads.Inc()
	return b.String(), nil
}
