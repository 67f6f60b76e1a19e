package server

import (
	"foodgram/internal/models"
	"foodgram/internal/repository"
	"foodgram/internal/service"

	"github.com/gofiber/fiber/v2"
)

type recipeRequest struct {
	Ingredients []service.IngredientAmountInput `json:"ingredients"`
	Tags        []uint                          `json:"tags"`
	Image       string                          `json:"image"`
	Name        string                          `json:"name"`
	Text        string                          `json:"text"`
	CookingTime int                             `json:"cooking_time"`
}

// CreateRecipe handles POST /api/recipes
func (s *Server) CreateRecipe(c *fiber.Ctx) error {
	var req recipeRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	recipe, err := s.recipeService.CreateRecipe(c.Context(), service.CreateRecipeInput{
		AuthorID:    currentUserID(c),
		Name:        req.Name,
		Text:        req.Text,
		Image:       req.Image,
		CookingTime: req.CookingTime,
		Ingredients: req.Ingredients,
		TagIDs:      req.Tags,
	})
	if err != nil {
		return models.RespondWithAppError(c, err)
	}

	view, err := s.recipeView(c.Context(), recipe, currentUserID(c))
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(view)
}

// GetRecipes handles GET /api/recipes with author/tags/membership filters.
func (s *Server) GetRecipes(c *fiber.Ctx) error {
	pagination := parsePagination(c, 10)
	requesterID, _ := s.optionalUserID(c)

	filter := repository.RecipeFilter{
		FavoritedOnly: c.Query("is_favorited") == "1",
		InCartOnly:    c.Query("is_in_shopping_cart") == "1",
	}
	if author := c.QueryInt("author", 0); author > 0 {
		filter.AuthorID = uint(author)
	}
	for _, raw := range c.Context().QueryArgs().PeekMulti("tags") {
		if slug := string(raw); slug != "" {
			filter.TagSlugs = append(filter.TagSlugs, slug)
		}
	}

	recipes, err := s.recipeService.ListRecipes(c.Context(), service.ListRecipesInput{
		Limit:         pagination.Limit,
		Offset:        pagination.Offset,
		CurrentUserID: requesterID,
		Filter:        filter,
	})
	if err != nil {
		return models.RespondWithAppError(c, err)
	}

	// resolve the requester's followed authors in one query
	authorIDs := make([]uint, 0, len(recipes))
	for _, r := range recipes {
		authorIDs = append(authorIDs, r.AuthorID)
	}
	followed, err := s.subRepo.FollowedIDs(c.Context(), requesterID, authorIDs)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}

	views := make([]models.RecipeView, 0, len(recipes))
	for _, r := range recipes {
		views = append(views, r.View(followed[r.AuthorID], s.mediaURL))
	}
	return c.JSON(views)
}

// GetRecipe handles GET /api/recipes/:id
func (s *Server) GetRecipe(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	requesterID, _ := s.optionalUserID(c)

	recipe, err := s.recipeService.GetRecipe(c.Context(), id, requesterID)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}

	view, err := s.recipeView(c.Context(), recipe, requesterID)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(view)
}

// UpdateRecipe handles PATCH/PUT /api/recipes/:id
func (s *Server) UpdateRecipe(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req recipeRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	recipe, err := s.recipeService.UpdateRecipe(c.Context(), service.UpdateRecipeInput{
		UserID:      currentUserID(c),
		RecipeID:    id,
		Name:        req.Name,
		Text:        req.Text,
		Image:       req.Image,
		CookingTime: req.CookingTime,
		Ingredients: req.Ingredients,
		TagIDs:      req.Tags,
	})
	if err != nil {
		return models.RespondWithAppError(c, err)
	}

	view, err := s.recipeView(c.Context(), recipe, currentUserID(c))
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(view)
}

// DeleteRecipe handles DELETE /api/recipes/:id
func (s *Server) DeleteRecipe(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	if err := s.recipeService.DeleteRecipe(c.Context(), currentUserID(c), id); err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// GetRecipeLink handles GET /api/recipes/:id/get-link
func (s *Server) GetRecipeLink(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	link, err := s.shortLinkService.GetLink(c.Context(), id)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(fiber.Map{
		"short-link": link,
	})
}

// ResolveShortLink handles GET /s/:token with a redirect to the recipe.
func (s *Server) ResolveShortLink(c *fiber.Ctx) error {
	token := c.Params("token")
	recipeID, err := s.shortLinkService.Resolve(c.Context(), token)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.Redirect(s.shortLinkService.RecipeURL(recipeID), fiber.StatusFound)
}
