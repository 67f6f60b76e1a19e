package service

import (
	"context"

	"foodgram/internal/models"
	"foodgram/internal/repository"
)

// SubscriptionService manages the follower graph.
type SubscriptionService struct {
	subRepo    repository.SubscriptionRepository
	userRepo   repository.UserRepository
	recipeRepo repository.RecipeRepository
}

// AuthorWithRecipes bundles a followed author with a preview of their
// recipes. RecipesLimit zero means the preview is not truncated.
type AuthorWithRecipes struct {
	Author       *models.User
	Recipes      []models.Recipe
	RecipesCount int64
}

func NewSubscriptionService(
	subRepo repository.SubscriptionRepository,
	userRepo repository.UserRepository,
	recipeRepo repository.RecipeRepository,
) *SubscriptionService {
	return &SubscriptionService{
		subRepo:    subRepo,
		userRepo:   userRepo,
		recipeRepo: recipeRepo,
	}
}

// Subscribe makes userID follow authorID. Following yourself and
// following the same author twice are both errors.
func (s *SubscriptionService) Subscribe(ctx context.Context, userID, authorID uint, recipesLimit int) (*AuthorWithRecipes, error) {
	if userID == authorID {
		return nil, models.NewConflictError("Cannot subscribe to yourself")
	}
	author, err := s.userRepo.GetByID(ctx, authorID)
	if err != nil {
		return nil, err
	}
	exists, err := s.subRepo.Exists(ctx, userID, authorID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, models.NewConflictError("Already subscribed to this author")
	}
	if err := s.subRepo.Create(ctx, userID, authorID); err != nil {
		return nil, err
	}
	return s.authorPreview(ctx, author, recipesLimit)
}

// Unsubscribe removes the follow edge. Removing one that does not exist
// is an error.
func (s *SubscriptionService) Unsubscribe(ctx context.Context, userID, authorID uint) error {
	if _, err := s.userRepo.GetByID(ctx, authorID); err != nil {
		return err
	}
	removed, err := s.subRepo.Delete(ctx, userID, authorID)
	if err != nil {
		return err
	}
	if !removed {
		return models.NewConflictError("Not subscribed to this author")
	}
	return nil
}

// ListSubscriptions returns the authors userID follows, each with a
// recipe preview.
func (s *SubscriptionService) ListSubscriptions(ctx context.Context, userID uint, limit, offset, recipesLimit int) ([]*AuthorWithRecipes, int64, error) {
	authors, err := s.subRepo.ListAuthors(ctx, userID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.subRepo.CountAuthors(ctx, userID)
	if err != nil {
		return nil, 0, err
	}

	result := make([]*AuthorWithRecipes, 0, len(authors))
	for _, author := range authors {
		preview, err := s.authorPreview(ctx, author, recipesLimit)
		if err != nil {
			return nil, 0, err
		}
		result = append(result, preview)
	}
	return result, total, nil
}

// IsSubscribed reports whether userID follows authorID. Anonymous
// requesters (userID zero) never follow anyone.
func (s *SubscriptionService) IsSubscribed(ctx context.Context, userID, authorID uint) (bool, error) {
	if userID == 0 {
		return false, nil
	}
	return s.subRepo.Exists(ctx, userID, authorID)
}

func (s *SubscriptionService) authorPreview(ctx context.Context, author *models.User, recipesLimit int) (*AuthorWithRecipes, error) {
	recipes, err := s.recipeRepo.ShortByAuthor(ctx, author.ID, recipesLimit)
	if err != nil {
		return nil, err
	}
	count, err := s.recipeRepo.CountByAuthor(ctx, author.ID)
	if err != nil {
		return nil, err
	}
	return &AuthorWithRecipes{
		Author:       author,
		Recipes:      recipes,
		RecipesCount: count,
	}, nil
}
