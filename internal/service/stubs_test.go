package service

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"image"
	"image/color"
	"image/png"
	"testing"

	"foodgram/internal/imaging"
	"foodgram/internal/models"
	"foodgram/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recipeRepoStub is a stub for repository.RecipeRepository.
type recipeRepoStub struct {
	createFn         func(context.Context, *models.Recipe, []models.IngredientInRecipe, []models.Tag) error
	updateFn         func(context.Context, *models.Recipe, []models.IngredientInRecipe, []models.Tag) error
	getByIDFn        func(context.Context, uint, uint) (*models.Recipe, error)
	listFn           func(context.Context, repository.RecipeFilter, int, int, uint) ([]*models.Recipe, error)
	deleteFn         func(context.Context, uint) error
	countByAuthorFn  func(context.Context, uint) (int64, error)
	shortByAuthorFn  func(context.Context, uint, int) ([]models.Recipe, error)
	isFavoritedFn    func(context.Context, uint, uint) (bool, error)
	favoriteFn       func(context.Context, uint, uint) error
	unfavoriteFn     func(context.Context, uint, uint) (bool, error)
	isInCartFn       func(context.Context, uint, uint) (bool, error)
	addToCartFn      func(context.Context, uint, uint) error
	removeFromCartFn func(context.Context, uint, uint) (bool, error)
	aggregateCartFn  func(context.Context, uint) ([]models.ShoppingListItem, error)
}

func (s *recipeRepoStub) Create(ctx context.Context, r *models.Recipe, links []models.IngredientInRecipe, tags []models.Tag) error {
	return s.createFn(ctx, r, links, tags)
}
func (s *recipeRepoStub) Update(ctx context.Context, r *models.Recipe, links []models.IngredientInRecipe, tags []models.Tag) error {
	return s.updateFn(ctx, r, links, tags)
}
func (s *recipeRepoStub) GetByID(ctx context.Context, id, currentUserID uint) (*models.Recipe, error) {
	return s.getByIDFn(ctx, id, currentUserID)
}
func (s *recipeRepoStub) List(ctx context.Context, f repository.RecipeFilter, limit, offset int, currentUserID uint) ([]*models.Recipe, error) {
	return s.listFn(ctx, f, limit, offset, currentUserID)
}
func (s *recipeRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}
func (s *recipeRepoStub) CountByAuthor(ctx context.Context, authorID uint) (int64, error) {
	return s.countByAuthorFn(ctx, authorID)
}
func (s *recipeRepoStub) ShortByAuthor(ctx context.Context, authorID uint, limit int) ([]models.Recipe, error) {
	return s.shortByAuthorFn(ctx, authorID, limit)
}
func (s *recipeRepoStub) IsFavorited(ctx context.Context, userID, recipeID uint) (bool, error) {
	return s.isFavoritedFn(ctx, userID, recipeID)
}
func (s *recipeRepoStub) Favorite(ctx context.Context, userID, recipeID uint) error {
	return s.favoriteFn(ctx, userID, recipeID)
}
func (s *recipeRepoStub) Unfavorite(ctx context.Context, userID, recipeID uint) (bool, error) {
	return s.unfavoriteFn(ctx, userID, recipeID)
}
func (s *recipeRepoStub) IsInCart(ctx context.Context, userID, recipeID uint) (bool, error) {
	return s.isInCartFn(ctx, userID, recipeID)
}
func (s *recipeRepoStub) AddToCart(ctx context.Context, userID, recipeID uint) error {
	return s.addToCartFn(ctx, userID, recipeID)
}
func (s *recipeRepoStub) RemoveFromCart(ctx context.Context, userID, recipeID uint) (bool, error) {
	return s.removeFromCartFn(ctx, userID, recipeID)
}
func (s *recipeRepoStub) AggregateCart(ctx context.Context, userID uint) ([]models.ShoppingListItem, error) {
	return s.aggregateCartFn(ctx, userID)
}

func noopRecipeRepo() *recipeRepoStub {
	return &recipeRepoStub{
		createFn: func(_ context.Context, _ *models.Recipe, _ []models.IngredientInRecipe, _ []models.Tag) error {
			return nil
		},
		updateFn: func(_ context.Context, _ *models.Recipe, _ []models.IngredientInRecipe, _ []models.Tag) error {
			return nil
		},
		getByIDFn: func(_ context.Context, id, _ uint) (*models.Recipe, error) {
			return &models.Recipe{ID: id}, nil
		},
		listFn: func(_ context.Context, _ repository.RecipeFilter, _, _ int, _ uint) ([]*models.Recipe, error) {
			return nil, nil
		},
		deleteFn:         func(_ context.Context, _ uint) error { return nil },
		countByAuthorFn:  func(_ context.Context, _ uint) (int64, error) { return 0, nil },
		shortByAuthorFn:  func(_ context.Context, _ uint, _ int) ([]models.Recipe, error) { return nil, nil },
		isFavoritedFn:    func(_ context.Context, _, _ uint) (bool, error) { return false, nil },
		favoriteFn:       func(_ context.Context, _, _ uint) error { return nil },
		unfavoriteFn:     func(_ context.Context, _, _ uint) (bool, error) { return true, nil },
		isInCartFn:       func(_ context.Context, _, _ uint) (bool, error) { return false, nil },
		addToCartFn:      func(_ context.Context, _, _ uint) error { return nil },
		removeFromCartFn: func(_ context.Context, _, _ uint) (bool, error) { return true, nil },
		aggregateCartFn:  func(_ context.Context, _ uint) ([]models.ShoppingListItem, error) { return nil, nil },
	}
}

// tagRepoStub is a stub for repository.TagRepository.
type tagRepoStub struct {
	listFn     func(context.Context) ([]models.Tag, error)
	getByIDFn  func(context.Context, uint) (*models.Tag, error)
	getByIDsFn func(context.Context, []uint) ([]models.Tag, error)
	createFn   func(context.Context, *models.Tag) error
}

func (s *tagRepoStub) List(ctx context.Context) ([]models.Tag, error) { return s.listFn(ctx) }
func (s *tagRepoStub) GetByID(ctx context.Context, id uint) (*models.Tag, error) {
	return s.getByIDFn(ctx, id)
}
func (s *tagRepoStub) GetByIDs(ctx context.Context, ids []uint) ([]models.Tag, error) {
	return s.getByIDsFn(ctx, ids)
}
func (s *tagRepoStub) Create(ctx context.Context, tag *models.Tag) error { return s.createFn(ctx, tag) }

func echoTagRepo() *tagRepoStub {
	return &tagRepoStub{
		listFn:    func(_ context.Context) ([]models.Tag, error) { return nil, nil },
		getByIDFn: func(_ context.Context, id uint) (*models.Tag, error) { return &models.Tag{ID: id}, nil },
		getByIDsFn: func(_ context.Context, ids []uint) ([]models.Tag, error) {
			tags := make([]models.Tag, 0, len(ids))
			for _, id := range ids {
				tags = append(tags, models.Tag{ID: id})
			}
			return tags, nil
		},
		createFn: func(_ context.Context, _ *models.Tag) error { return nil },
	}
}

// ingredientRepoStub is a stub for repository.IngredientRepository.
type ingredientRepoStub struct {
	listFn     func(context.Context, string) ([]models.Ingredient, error)
	getByIDFn  func(context.Context, uint) (*models.Ingredient, error)
	getByIDsFn func(context.Context, []uint) ([]models.Ingredient, error)
	createFn   func(context.Context, *models.Ingredient) error
}

func (s *ingredientRepoStub) List(ctx context.Context, q string) ([]models.Ingredient, error) {
	return s.listFn(ctx, q)
}
func (s *ingredientRepoStub) GetByID(ctx context.Context, id uint) (*models.Ingredient, error) {
	return s.getByIDFn(ctx, id)
}
func (s *ingredientRepoStub) GetByIDs(ctx context.Context, ids []uint) ([]models.Ingredient, error) {
	return s.getByIDsFn(ctx, ids)
}
func (s *ingredientRepoStub) Create(ctx context.Context, i *models.Ingredient) error {
	return s.createFn(ctx, i)
}

func echoIngredientRepo() *ingredientRepoStub {
	return &ingredientRepoStub{
		listFn: func(_ context.Context, _ string) ([]models.Ingredient, error) { return nil, nil },
		getByIDFn: func(_ context.Context, id uint) (*models.Ingredient, error) {
			return &models.Ingredient{ID: id}, nil
		},
		getByIDsFn: func(_ context.Context, ids []uint) ([]models.Ingredient, error) {
			ingredients := make([]models.Ingredient, 0, len(ids))
			for _, id := range ids {
				ingredients = append(ingredients, models.Ingredient{ID: id})
			}
			return ingredients, nil
		},
		createFn: func(_ context.Context, _ *models.Ingredient) error { return nil },
	}
}

// userRepoStub is a stub for repository.UserRepository.
type userRepoStub struct {
	createFn         func(context.Context, *models.User) error
	getByIDFn        func(context.Context, uint) (*models.User, error)
	getByEmailFn     func(context.Context, string) (*models.User, error)
	listFn           func(context.Context, int, int) ([]models.User, error)
	updatePasswordFn func(context.Context, uint, string) error
	updateAvatarFn   func(context.Context, uint, string) error
}

func (s *userRepoStub) Create(ctx context.Context, u *models.User) error { return s.createFn(ctx, u) }
func (s *userRepoStub) GetByID(ctx context.Context, id uint) (*models.User, error) {
	return s.getByIDFn(ctx, id)
}
func (s *userRepoStub) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.getByEmailFn(ctx, email)
}
func (s *userRepoStub) List(ctx context.Context, limit, offset int) ([]models.User, error) {
	return s.listFn(ctx, limit, offset)
}
func (s *userRepoStub) UpdatePassword(ctx context.Context, id uint, hashed string) error {
	return s.updatePasswordFn(ctx, id, hashed)
}
func (s *userRepoStub) UpdateAvatar(ctx context.Context, id uint, avatar string) error {
	return s.updateAvatarFn(ctx, id, avatar)
}

func noopUserRepo() *userRepoStub {
	return &userRepoStub{
		createFn: func(_ context.Context, u *models.User) error {
			u.ID = 1
			return nil
		},
		getByIDFn:        func(_ context.Context, id uint) (*models.User, error) { return &models.User{ID: id}, nil },
		getByEmailFn:     func(_ context.Context, _ string) (*models.User, error) { return nil, nil },
		listFn:           func(_ context.Context, _, _ int) ([]models.User, error) { return nil, nil },
		updatePasswordFn: func(_ context.Context, _ uint, _ string) error { return nil },
		updateAvatarFn:   func(_ context.Context, _ uint, _ string) error { return nil },
	}
}

// subscriptionRepoStub is a stub for repository.SubscriptionRepository.
type subscriptionRepoStub struct {
	createFn       func(context.Context, uint, uint) error
	deleteFn       func(context.Context, uint, uint) (bool, error)
	existsFn       func(context.Context, uint, uint) (bool, error)
	listAuthorsFn  func(context.Context, uint, int, int) ([]*models.User, error)
	countAuthorsFn func(context.Context, uint) (int64, error)
	followedIDsFn  func(context.Context, uint, []uint) (map[uint]bool, error)
}

func (s *subscriptionRepoStub) Create(ctx context.Context, userID, authorID uint) error {
	return s.createFn(ctx, userID, authorID)
}
func (s *subscriptionRepoStub) Delete(ctx context.Context, userID, authorID uint) (bool, error) {
	return s.deleteFn(ctx, userID, authorID)
}
func (s *subscriptionRepoStub) Exists(ctx context.Context, userID, authorID uint) (bool, error) {
	return s.existsFn(ctx, userID, authorID)
}
func (s *subscriptionRepoStub) ListAuthors(ctx context.Context, userID uint, limit, offset int) ([]*models.User, error) {
	return s.listAuthorsFn(ctx, userID, limit, offset)
}
func (s *subscriptionRepoStub) CountAuthors(ctx context.Context, userID uint) (int64, error) {
	return s.countAuthorsFn(ctx, userID)
}
func (s *subscriptionRepoStub) FollowedIDs(ctx context.Context, userID uint, authorIDs []uint) (map[uint]bool, error) {
	return s.followedIDsFn(ctx, userID, authorIDs)
}

func noopSubscriptionRepo() *subscriptionRepoStub {
	return &subscriptionRepoStub{
		createFn:       func(_ context.Context, _, _ uint) error { return nil },
		deleteFn:       func(_ context.Context, _, _ uint) (bool, error) { return true, nil },
		existsFn:       func(_ context.Context, _, _ uint) (bool, error) { return false, nil },
		listAuthorsFn:  func(_ context.Context, _ uint, _, _ int) ([]*models.User, error) { return nil, nil },
		countAuthorsFn: func(_ context.Context, _ uint) (int64, error) { return 0, nil },
		followedIDsFn:  func(_ context.Context, _ uint, _ []uint) (map[uint]bool, error) { return nil, nil },
	}
}

// shortLinkRepoStub is a stub for repository.ShortLinkRepository.
type shortLinkRepoStub struct {
	getOrCreateFn func(context.Context, uint, string) (*models.ShortLink, error)
	getByTokenFn  func(context.Context, string) (*models.ShortLink, error)
}

func (s *shortLinkRepoStub) GetOrCreate(ctx context.Context, recipeID uint, token string) (*models.ShortLink, error) {
	return s.getOrCreateFn(ctx, recipeID, token)
}
func (s *shortLinkRepoStub) GetByToken(ctx context.Context, token string) (*models.ShortLink, error) {
	return s.getByTokenFn(ctx, token)
}

// testDecoder returns an image decoder writing into a per-test temp dir.
func testDecoder(t *testing.T) *imaging.Decoder {
	t.Helper()
	return imaging.NewDecoder(t.TempDir())
}

// pngDataURI builds a valid base64 png payload.
func pngDataURI(t *testing.T) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	for x := 0; x < 4; x++ {
		for y := 0; y < 4; y++ {
			img.Set(x, y, color.RGBA{R: 200, G: 30, B: 30, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(buf.Bytes())
}

// assertErrorCode asserts that err is an AppError carrying the code.
func assertErrorCode(t *testing.T, err error, code string) {
	t.Helper()
	require.Error(t, err)
	var appErr *models.AppError
	require.True(t, errors.As(err, &appErr), "expected AppError, got %T: %v", err, err)
	assert.Equal(t, code, appErr.Code)
}
