package server

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"foodgram/internal/config"
	"foodgram/internal/database"
	"foodgram/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestServer(t *testing.T) (*Server, *fiber.App) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(database.AllModels()...))

	cfg := &config.Config{
		JWTSecret: "test-secret",
		Port:      "8000",
		BaseURL:   "http://localhost:8000",
		MediaDir:  t.TempDir(),
		Env:       "test",
	}

	srv, err := NewServerWithDeps(cfg, db, nil)
	require.NoError(t, err)

	app := fiber.New(fiber.Config{BodyLimit: 8 * 1024 * 1024})
	srv.SetupRoutes(app)
	return srv, app
}

func testConfigWithSecret(secret string) *config.Config {
	return &config.Config{JWTSecret: secret, BaseURL: "http://localhost:8000"}
}

// doJSON performs a request against the test app with an optional JSON body
// and bearer token.
func doJSON(t *testing.T, app *fiber.App, method, path string, body any, token string) *http.Response {
	t.Helper()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decodeBody(t *testing.T, resp *http.Response, dest any) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(dest))
}

// signupAndLogin registers a fresh user and returns its id and auth token.
func signupAndLogin(t *testing.T, app *fiber.App, email, username string) (uint, string) {
	t.Helper()

	resp := doJSON(t, app, http.MethodPost, "/api/users/", map[string]string{
		"email":      email,
		"username":   username,
		"first_name": "Test",
		"last_name":  "User",
		"password":   "strong-password-1",
	}, "")
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var created struct {
		ID uint `json:"id"`
	}
	decodeBody(t, resp, &created)

	resp = doJSON(t, app, http.MethodPost, "/api/auth/token/login", map[string]string{
		"email":    email,
		"password": "strong-password-1",
	}, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var login struct {
		AuthToken string `json:"auth_token"`
	}
	decodeBody(t, resp, &login)
	require.NotEmpty(t, login.AuthToken)

	return created.ID, login.AuthToken
}

// pngDataURI returns a valid base64-encoded PNG data URI.
func pngDataURI(t *testing.T) string {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	for x := 0; x < 4; x++ {
		for y := 0; y < 4; y++ {
			img.Set(x, y, color.RGBA{R: 200, G: 80, B: 40, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(buf.Bytes())
}

// seedCatalogue inserts tags and ingredients directly; the API exposes them
// read-only.
func seedCatalogue(t *testing.T, db *gorm.DB) ([]models.Tag, []models.Ingredient) {
	t.Helper()

	tags := []models.Tag{
		{Name: "Breakfast", Slug: "breakfast"},
		{Name: "Dinner", Slug: "dinner"},
	}
	require.NoError(t, db.Create(&tags).Error)

	ingredients := []models.Ingredient{
		{Name: "flour", MeasurementUnit: "g"},
		{Name: "milk", MeasurementUnit: "ml"},
		{Name: "salt", MeasurementUnit: "g"},
	}
	require.NoError(t, db.Create(&ingredients).Error)
	return tags, ingredients
}

// recipePayload builds a valid creation body against the seeded catalogue.
func recipePayload(t *testing.T, tags []models.Tag, ingredients []models.Ingredient) map[string]any {
	t.Helper()
	return map[string]any{
		"name":         "Pancakes",
		"text":         "Mix everything and fry.",
		"image":        pngDataURI(t),
		"cooking_time": 20,
		"tags":         []uint{tags[0].ID},
		"ingredients": []map[string]any{
			{"id": ingredients[0].ID, "amount": 300},
			{"id": ingredients[1].ID, "amount": 250},
		},
	}
}

// createRecipe posts a recipe and returns its id.
func createRecipe(t *testing.T, app *fiber.App, token string, payload map[string]any) uint {
	t.Helper()

	resp := doJSON(t, app, http.MethodPost, "/api/recipes/", payload, token)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var created struct {
		ID uint `json:"id"`
	}
	decodeBody(t, resp, &created)
	require.NotZero(t, created.ID)
	return created.ID
}

func recipePath(id uint, suffix string) string {
	return fmt.Sprintf("/api/recipes/%d%s", id, suffix)
}
