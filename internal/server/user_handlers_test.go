package server

import (
	"fmt"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetUsers(t *testing.T) {
	_, app := newTestServer(t)
	aliceID, _ := signupAndLogin(t, app, "alice@example.com", "alice")
	_, bobToken := signupAndLogin(t, app, "bob@example.com", "bob")

	t.Run("anonymous listing", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodGet, "/api/users/", nil, "")
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var users []struct {
			ID           uint   `json:"id"`
			Username     string `json:"username"`
			IsSubscribed bool   `json:"is_subscribed"`
		}
		decodeBody(t, resp, &users)
		require.Len(t, users, 2)
		for _, u := range users {
			assert.False(t, u.IsSubscribed)
		}
	})

	t.Run("is_subscribed reflects the requester", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodPost, subscribePath(aliceID), nil, bobToken)
		require.Equal(t, http.StatusCreated, resp.StatusCode)

		resp = doJSON(t, app, http.MethodGet, "/api/users/", nil, bobToken)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var users []struct {
			ID           uint `json:"id"`
			IsSubscribed bool `json:"is_subscribed"`
		}
		decodeBody(t, resp, &users)
		for _, u := range users {
			assert.Equal(t, u.ID == aliceID, u.IsSubscribed)
		}
	})

	t.Run("pagination", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodGet, "/api/users/?limit=1", nil, "")
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var users []struct {
			ID uint `json:"id"`
		}
		decodeBody(t, resp, &users)
		assert.Len(t, users, 1)
	})

	t.Run("missing profile", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodGet, "/api/users/9999", nil, "")
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})

	t.Run("invalid id", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodGet, "/api/users/zero", nil, "")
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}

func TestAvatar(t *testing.T) {
	_, app := newTestServer(t)
	_, token := signupAndLogin(t, app, "ava@example.com", "ava")

	t.Run("set avatar returns its URL", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodPut, "/api/users/me/avatar", map[string]string{
			"avatar": pngDataURI(t),
		}, token)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var body struct {
			Avatar string `json:"avatar"`
		}
		decodeBody(t, resp, &body)
		assert.True(t, strings.HasPrefix(body.Avatar, "http://localhost:8000/media/avatars/"), body.Avatar)
	})

	t.Run("empty payload is rejected", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodPut, "/api/users/me/avatar", map[string]string{}, token)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("delete avatar", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodDelete, "/api/users/me/avatar", nil, token)
		assert.Equal(t, http.StatusNoContent, resp.StatusCode)

		resp = doJSON(t, app, http.MethodGet, "/api/users/me", nil, token)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		var me struct {
			Avatar *string `json:"avatar"`
		}
		decodeBody(t, resp, &me)
		assert.Nil(t, me.Avatar)
	})
}

func TestCatalogueEndpoints(t *testing.T) {
	srv, app := newTestServer(t)
	tags, ingredients := seedCatalogue(t, srv.db)

	t.Run("list tags", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodGet, "/api/tags/", nil, "")
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var got []struct {
			ID   uint   `json:"id"`
			Name string `json:"name"`
			Slug string `json:"slug"`
		}
		decodeBody(t, resp, &got)
		assert.Len(t, got, len(tags))
	})

	t.Run("get tag", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodGet, fmt.Sprintf("/api/tags/%d", tags[0].ID), nil, "")
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var tag struct {
			Slug string `json:"slug"`
		}
		decodeBody(t, resp, &tag)
		assert.Equal(t, "breakfast", tag.Slug)
	})

	t.Run("missing tag", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodGet, "/api/tags/9999", nil, "")
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})

	t.Run("ingredients prefix search", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodGet, "/api/ingredients/?name=Sa", nil, "")
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var got []struct {
			Name            string `json:"name"`
			MeasurementUnit string `json:"measurement_unit"`
		}
		decodeBody(t, resp, &got)
		require.Len(t, got, 1)
		assert.Equal(t, "salt", got[0].Name)
	})

	t.Run("get ingredient", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodGet, fmt.Sprintf("/api/ingredients/%d", ingredients[0].ID), nil, "")
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var ing struct {
			Name string `json:"name"`
		}
		decodeBody(t, resp, &ing)
		assert.Equal(t, "flour", ing.Name)
	})
}
