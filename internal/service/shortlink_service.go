package service

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"strings"

	"foodgram/internal/cache"
	"foodgram/internal/repository"
)

// ShortLinkService issues and resolves compact share links for recipes.
// Tokens are derived deterministically from the recipe id, so the same
// recipe always maps to the same link.
type ShortLinkService struct {
	linkRepo   repository.ShortLinkRepository
	recipeRepo repository.RecipeRepository
	secret     string
	baseURL    string
}

func NewShortLinkService(
	linkRepo repository.ShortLinkRepository,
	recipeRepo repository.RecipeRepository,
	secret string,
	baseURL string,
) *ShortLinkService {
	return &ShortLinkService{
		linkRepo:   linkRepo,
		recipeRepo: recipeRepo,
		secret:     secret,
		baseURL:    strings.TrimRight(baseURL, "/"),
	}
}

// TokenFor derives the recipe's share token: the first 8 hex characters
// of md5 over the signing secret and the recipe id.
func (s *ShortLinkService) TokenFor(recipeID uint) string {
	sum := md5.Sum([]byte(fmt.Sprintf("%s%d", s.secret, recipeID)))
	return hex.EncodeToString(sum[:])[:8]
}

// GetLink returns the absolute short URL for the recipe, persisting the
// token on first request.
func (s *ShortLinkService) GetLink(ctx context.Context, recipeID uint) (string, error) {
	if _, err := s.recipeRepo.GetByID(ctx, recipeID, 0); err != nil {
		return "", err
	}

	link, err := s.linkRepo.GetOrCreate(ctx, recipeID, s.TokenFor(recipeID))
	if err != nil {
		return "", err
	}

	cache.SetJSON(ctx, cache.ShortLinkKey(link.Token), link.RecipeID, cache.ShortLinkTTL)
	return fmt.Sprintf("%s/s/%s", s.baseURL, link.Token), nil
}

// Resolve maps a share token back to its recipe id.
func (s *ShortLinkService) Resolve(ctx context.Context, token string) (uint, error) {
	var recipeID uint
	err := cache.Aside(ctx, cache.ShortLinkKey(token), &recipeID, cache.ShortLinkTTL, func() error {
		link, ferr := s.linkRepo.GetByToken(ctx, token)
		if ferr != nil {
			return ferr
		}
		recipeID = link.RecipeID
		return nil
	})
	if err != nil {
		return 0, err
	}
	return recipeID, nil
}

// RecipeURL is the canonical recipe location a resolved token redirects to.
func (s *ShortLinkService) RecipeURL(recipeID uint) string {
	return fmt.Sprintf("%s/api/recipes/%d", s.baseURL, recipeID)
}
