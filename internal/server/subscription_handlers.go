package server

import (
	"foodgram/internal/models"

	"github.com/gofiber/fiber/v2"
)

// Subscribe handles POST /api/users/:id/subscribe
func (s *Server) Subscribe(c *fiber.Ctx) error {
	authorID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	preview, err := s.subscriptionService.Subscribe(c.Context(), currentUserID(c), authorID, recipesLimitQuery(c))
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(s.subscriptionView(preview))
}

// Unsubscribe handles DELETE /api/users/:id/subscribe
func (s *Server) Unsubscribe(c *fiber.Ctx) error {
	authorID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	if err := s.subscriptionService.Unsubscribe(c.Context(), currentUserID(c), authorID); err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// GetSubscriptions handles GET /api/users/subscriptions
func (s *Server) GetSubscriptions(c *fiber.Ctx) error {
	pagination := parsePagination(c, 10)

	previews, total, err := s.subscriptionService.ListSubscriptions(
		c.Context(), currentUserID(c), pagination.Limit, pagination.Offset, recipesLimitQuery(c))
	if err != nil {
		return models.RespondWithAppError(c, err)
	}

	results := make([]models.SubscriptionView, 0, len(previews))
	for _, p := range previews {
		results = append(results, s.subscriptionView(p))
	}
	return c.JSON(fiber.Map{
		"count":   total,
		"results": results,
	})
}
