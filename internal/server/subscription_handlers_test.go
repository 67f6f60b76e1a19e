package server

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type subscriptionViewBody struct {
	ID           uint            `json:"id"`
	Username     string          `json:"username"`
	IsSubscribed bool            `json:"is_subscribed"`
	Recipes      []shortViewBody `json:"recipes"`
	RecipesCount int64           `json:"recipes_count"`
}

func subscribePath(authorID uint) string {
	return fmt.Sprintf("/api/users/%d/subscribe", authorID)
}

func TestSubscribe(t *testing.T) {
	srv, app := newTestServer(t)
	tags, ingredients := seedCatalogue(t, srv.db)

	followerID, followerToken := signupAndLogin(t, app, "fan@example.com", "fan")
	authorID, authorToken := signupAndLogin(t, app, "author@example.com", "author")
	createRecipe(t, app, authorToken, recipePayload(t, tags, ingredients))

	t.Run("subscribe returns the author with recipes", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodPost, subscribePath(authorID), nil, followerToken)
		require.Equal(t, http.StatusCreated, resp.StatusCode)

		var view subscriptionViewBody
		decodeBody(t, resp, &view)
		assert.Equal(t, authorID, view.ID)
		assert.Equal(t, "author", view.Username)
		assert.True(t, view.IsSubscribed)
		assert.Equal(t, int64(1), view.RecipesCount)
		require.Len(t, view.Recipes, 1)
		assert.Equal(t, "Pancakes", view.Recipes[0].Name)
	})

	t.Run("double subscribe is rejected", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodPost, subscribePath(authorID), nil, followerToken)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("self subscribe is rejected", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodPost, subscribePath(followerID), nil, followerToken)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("unknown author", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodPost, "/api/users/9999/subscribe", nil, followerToken)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})

	t.Run("subscription shows in author profile", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodGet, fmt.Sprintf("/api/users/%d", authorID), nil, followerToken)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var profile struct {
			IsSubscribed bool `json:"is_subscribed"`
		}
		decodeBody(t, resp, &profile)
		assert.True(t, profile.IsSubscribed)
	})
}

func TestUnsubscribe(t *testing.T) {
	_, app := newTestServer(t)
	_, followerToken := signupAndLogin(t, app, "fan@example.com", "fan")
	authorID, _ := signupAndLogin(t, app, "author@example.com", "author")

	t.Run("not subscribed is rejected", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodDelete, subscribePath(authorID), nil, followerToken)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("subscribe then unsubscribe", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodPost, subscribePath(authorID), nil, followerToken)
		require.Equal(t, http.StatusCreated, resp.StatusCode)

		resp = doJSON(t, app, http.MethodDelete, subscribePath(authorID), nil, followerToken)
		assert.Equal(t, http.StatusNoContent, resp.StatusCode)

		resp = doJSON(t, app, http.MethodDelete, subscribePath(authorID), nil, followerToken)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}

func TestGetSubscriptions(t *testing.T) {
	srv, app := newTestServer(t)
	tags, ingredients := seedCatalogue(t, srv.db)

	_, followerToken := signupAndLogin(t, app, "fan@example.com", "fan")
	authorID, authorToken := signupAndLogin(t, app, "author@example.com", "author")
	otherID, _ := signupAndLogin(t, app, "other@example.com", "other")

	for i := 0; i < 3; i++ {
		payload := recipePayload(t, tags, ingredients)
		payload["name"] = fmt.Sprintf("Dish %d", i)
		createRecipe(t, app, authorToken, payload)
	}

	for _, id := range []uint{authorID, otherID} {
		resp := doJSON(t, app, http.MethodPost, subscribePath(id), nil, followerToken)
		require.Equal(t, http.StatusCreated, resp.StatusCode)
	}

	t.Run("lists followed authors newest first", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodGet, "/api/users/subscriptions", nil, followerToken)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var body struct {
			Count   int64                  `json:"count"`
			Results []subscriptionViewBody `json:"results"`
		}
		decodeBody(t, resp, &body)
		assert.Equal(t, int64(2), body.Count)
		require.Len(t, body.Results, 2)
		assert.Equal(t, otherID, body.Results[0].ID)
		assert.Equal(t, authorID, body.Results[1].ID)
		assert.Equal(t, int64(3), body.Results[1].RecipesCount)
		assert.Len(t, body.Results[1].Recipes, 3)
	})

	t.Run("recipes_limit truncates the preview", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodGet, "/api/users/subscriptions?recipes_limit=1", nil, followerToken)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var body struct {
			Results []subscriptionViewBody `json:"results"`
		}
		decodeBody(t, resp, &body)
		require.Len(t, body.Results, 2)
		assert.Len(t, body.Results[1].Recipes, 1)
		// the count still reflects the full catalogue
		assert.Equal(t, int64(3), body.Results[1].RecipesCount)
	})

	t.Run("invalid recipes_limit is ignored", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodGet, "/api/users/subscriptions?recipes_limit=oops", nil, followerToken)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var body struct {
			Results []subscriptionViewBody `json:"results"`
		}
		decodeBody(t, resp, &body)
		require.Len(t, body.Results, 2)
		assert.Len(t, body.Results[1].Recipes, 3)
	})

	t.Run("pagination", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodGet, "/api/users/subscriptions?limit=1&offset=1", nil, followerToken)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var body struct {
			Count   int64                  `json:"count"`
			Results []subscriptionViewBody `json:"results"`
		}
		decodeBody(t, resp, &body)
		assert.Equal(t, int64(2), body.Count)
		require.Len(t, body.Results, 1)
		assert.Equal(t, authorID, body.Results[0].ID)
	})

	t.Run("requires auth", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodGet, "/api/users/subscriptions", nil, "")
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})
}
