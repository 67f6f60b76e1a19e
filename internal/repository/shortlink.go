package repository

import (
	"context"
	"errors"

	"foodgram/internal/models"

	"gorm.io/gorm"
)

// ShortLinkRepository defines the interface for short link data operations
type ShortLinkRepository interface {
	GetOrCreate(ctx context.Context, recipeID uint, token string) (*models.ShortLink, error)
	GetByToken(ctx context.Context, token string) (*models.ShortLink, error)
}

type shortLinkRepository struct {
	db *gorm.DB
}

// NewShortLinkRepository creates a new short link repository
func NewShortLinkRepository(db *gorm.DB) ShortLinkRepository {
	return &shortLinkRepository{db: db}
}

// GetOrCreate returns the persisted link for the recipe, inserting the
// derived token on first request. The token is deterministic, so a lost
// race with a concurrent insert resolves to the same row.
func (r *shortLinkRepository) GetOrCreate(ctx context.Context, recipeID uint, token string) (*models.ShortLink, error) {
	var link models.ShortLink
	err := r.db.WithContext(ctx).Where("recipe_id = ?", recipeID).First(&link).Error
	if err == nil {
		return &link, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, models.NewInternalError(err)
	}

	link = models.ShortLink{RecipeID: recipeID, Token: token}
	if err := r.db.WithContext(ctx).Create(&link).Error; err != nil {
		var existing models.ShortLink
		if ferr := r.db.WithContext(ctx).Where("recipe_id = ?", recipeID).First(&existing).Error; ferr == nil {
			return &existing, nil
		}
		return nil, models.NewInternalError(err)
	}
	return &link, nil
}

func (r *shortLinkRepository) GetByToken(ctx context.Context, token string) (*models.ShortLink, error) {
	var link models.ShortLink
	err := r.db.WithContext(ctx).Where("token = ?", token).First(&link).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("ShortLink", token)
		}
		return nil, models.NewInternalError(err)
	}
	return &link, nil
}
