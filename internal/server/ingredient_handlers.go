package server

import (
	"foodgram/internal/models"

	"github.com/gofiber/fiber/v2"
)

// GetIngredients handles GET /api/ingredients with an optional ?name=
// prefix filter.
func (s *Server) GetIngredients(c *fiber.Ctx) error {
	ingredients, err := s.ingredientRepo.List(c.Context(), c.Query("name"))
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	if ingredients == nil {
		ingredients = []models.Ingredient{}
	}
	return c.JSON(ingredients)
}

// GetIngredient handles GET /api/ingredients/:id
func (s *Server) GetIngredient(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	ingredient, err := s.ingredientRepo.GetByID(c.Context(), id)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(ingredient)
}
