package service

import (
	"context"
	"testing"

	"foodgram/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubscriptionService_Subscribe(t *testing.T) {
	ctx := context.Background()

	t.Run("success with recipe preview", func(t *testing.T) {
		subs := noopSubscriptionRepo()
		users := noopUserRepo()
		recipes := noopRecipeRepo()
		recipes.shortByAuthorFn = func(_ context.Context, authorID uint, limit int) ([]models.Recipe, error) {
			assert.Equal(t, 2, limit)
			return []models.Recipe{{ID: 10, AuthorID: authorID}, {ID: 9, AuthorID: authorID}}, nil
		}
		recipes.countByAuthorFn = func(_ context.Context, _ uint) (int64, error) { return 5, nil }
		svc := NewSubscriptionService(subs, users, recipes)

		preview, err := svc.Subscribe(ctx, 1, 2, 2)
		require.NoError(t, err)
		assert.Equal(t, uint(2), preview.Author.ID)
		assert.Len(t, preview.Recipes, 2)
		assert.Equal(t, int64(5), preview.RecipesCount)
	})

	t.Run("self subscription", func(t *testing.T) {
		svc := NewSubscriptionService(noopSubscriptionRepo(), noopUserRepo(), noopRecipeRepo())

		_, err := svc.Subscribe(ctx, 1, 1, 0)
		assertErrorCode(t, err, models.CodeConflict)
	})

	t.Run("unknown author", func(t *testing.T) {
		users := noopUserRepo()
		users.getByIDFn = func(_ context.Context, id uint) (*models.User, error) {
			return nil, models.NewNotFoundError("User", id)
		}
		svc := NewSubscriptionService(noopSubscriptionRepo(), users, noopRecipeRepo())

		_, err := svc.Subscribe(ctx, 1, 2, 0)
		assertErrorCode(t, err, models.CodeNotFound)
	})

	t.Run("already subscribed", func(t *testing.T) {
		subs := noopSubscriptionRepo()
		subs.existsFn = func(_ context.Context, _, _ uint) (bool, error) { return true, nil }
		svc := NewSubscriptionService(subs, noopUserRepo(), noopRecipeRepo())

		_, err := svc.Subscribe(ctx, 1, 2, 0)
		assertErrorCode(t, err, models.CodeConflict)
	})
}

func TestSubscriptionService_Unsubscribe(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		svc := NewSubscriptionService(noopSubscriptionRepo(), noopUserRepo(), noopRecipeRepo())
		assert.NoError(t, svc.Unsubscribe(ctx, 1, 2))
	})

	t.Run("not subscribed", func(t *testing.T) {
		subs := noopSubscriptionRepo()
		subs.deleteFn = func(_ context.Context, _, _ uint) (bool, error) { return false, nil }
		svc := NewSubscriptionService(subs, noopUserRepo(), noopRecipeRepo())

		err := svc.Unsubscribe(ctx, 1, 2)
		assertErrorCode(t, err, models.CodeConflict)
	})
}

func TestSubscriptionService_ListSubscriptions(t *testing.T) {
	ctx := context.Background()

	subs := noopSubscriptionRepo()
	subs.listAuthorsFn = func(_ context.Context, _ uint, _, _ int) ([]*models.User, error) {
		return []*models.User{{ID: 2, Username: "a"}, {ID: 3, Username: "b"}}, nil
	}
	subs.countAuthorsFn = func(_ context.Context, _ uint) (int64, error) { return 2, nil }
	recipes := noopRecipeRepo()
	recipes.countByAuthorFn = func(_ context.Context, authorID uint) (int64, error) { return int64(authorID), nil }
	svc := NewSubscriptionService(subs, noopUserRepo(), recipes)

	previews, total, err := svc.ListSubscriptions(ctx, 1, 10, 0, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	require.Len(t, previews, 2)
	assert.Equal(t, int64(2), previews[0].RecipesCount)
	assert.Equal(t, int64(3), previews[1].RecipesCount)
}

func TestSubscriptionService_IsSubscribed(t *testing.T) {
	ctx := context.Background()

	subs := noopSubscriptionRepo()
	subs.existsFn = func(_ context.Context, userID, authorID uint) (bool, error) {
		return userID == 1 && authorID == 2, nil
	}
	svc := NewSubscriptionService(subs, noopUserRepo(), noopRecipeRepo())

	ok, err := svc.IsSubscribed(ctx, 1, 2)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = svc.IsSubscribed(ctx, 0, 2)
	require.NoError(t, err)
	assert.False(t, ok)
}
