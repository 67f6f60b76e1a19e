package server

import (
	"context"
	"errors"
	"strconv"

	"foodgram/internal/models"
	"foodgram/internal/service"

	"github.com/gofiber/fiber/v2"
)

// errResponseWritten is a sentinel indicating the HTTP response was already
// committed by a helper. Handlers must return nil (not this error) to avoid
// Fiber's ErrorHandler overwriting the response.
var errResponseWritten = errors.New("response already written")

// Pagination holds parsed limit/offset query parameters.
type Pagination struct {
	Limit  int
	Offset int
}

const maxPaginationLimit = 100

// parsePagination extracts limit and offset query parameters with the given default limit.
func parsePagination(c *fiber.Ctx, defaultLimit int) Pagination {
	limit := c.QueryInt("limit", defaultLimit)
	if limit <= 0 {
		limit = defaultLimit
	}
	if limit > maxPaginationLimit {
		limit = maxPaginationLimit
	}

	offset := c.QueryInt("offset", 0)
	if offset < 0 {
		offset = 0
	}

	return Pagination{
		Limit:  limit,
		Offset: offset,
	}
}

// parseID extracts a route parameter by name as a positive uint.
// On failure it writes a 400 JSON response and returns errResponseWritten.
// Callers should check: if err != nil { return nil }
func (s *Server) parseID(c *fiber.Ctx, param string) (uint, error) {
	id, err := c.ParamsInt(param)
	if err != nil || id <= 0 {
		_ = models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid ID"))
		return 0, errResponseWritten
	}
	return uint(id), nil
}

// currentUserID reads the authenticated user id set by AuthRequired.
func currentUserID(c *fiber.Ctx) uint {
	if uid, ok := c.Locals("userID").(uint); ok {
		return uid
	}
	return 0
}

// recipesLimitQuery parses the optional recipes_limit query parameter.
// Invalid or non-positive values are silently ignored (zero = no limit).
func recipesLimitQuery(c *fiber.Ctx) int {
	raw := c.Query("recipes_limit")
	if raw == "" {
		return 0
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0
	}
	return n
}

// mediaURL turns a stored relative media path into an absolute URL.
func (s *Server) mediaURL(relPath string) string {
	if relPath == "" {
		return ""
	}
	return s.config.BaseURL + "/media/" + relPath
}

// userView builds the public profile of a user as seen by requesterID.
func (s *Server) userView(ctx context.Context, user *models.User, requesterID uint) (models.UserView, error) {
	subscribed, err := s.subscriptionService.IsSubscribed(ctx, requesterID, user.ID)
	if err != nil {
		return models.UserView{}, err
	}
	return user.View(subscribed, s.mediaURL), nil
}

// recipeView builds the full read representation of a recipe as seen by
// requesterID. The recipe must be loaded with its associations.
func (s *Server) recipeView(ctx context.Context, recipe *models.Recipe, requesterID uint) (models.RecipeView, error) {
	subscribed, err := s.subscriptionService.IsSubscribed(ctx, requesterID, recipe.AuthorID)
	if err != nil {
		return models.RecipeView{}, err
	}
	return recipe.View(subscribed, s.mediaURL), nil
}

// subscriptionView renders a followed author with their recipe preview.
// The subscription edge is known to exist, so is_subscribed is true.
func (s *Server) subscriptionView(preview *service.AuthorWithRecipes) models.SubscriptionView {
	shorts := make([]models.RecipeShortView, 0, len(preview.Recipes))
	for i := range preview.Recipes {
		shorts = append(shorts, preview.Recipes[i].ShortView(s.mediaURL))
	}
	return models.SubscriptionView{
		UserView:     preview.Author.View(true, s.mediaURL),
		Recipes:      shorts,
		RecipesCount: preview.RecipesCount,
	}
}
