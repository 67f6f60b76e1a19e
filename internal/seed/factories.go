// Package seed provides helpers to create demo and test data for the
// application database. These helpers are intended for development and
// testing only.
package seed

import (
	"fmt"
	"log"
	"math/rand"
	"time"

	"foodgram/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Factory builds domain entities and persists them to the database.
// It is a thin helper used by seed presets and tests.
type Factory struct {
	db   *gorm.DB
	opts Options
	// synthetic ID counter when running in DryRun mode
	nextID uint
}

// NewFactory creates a new Factory bound to the provided Gorm DB.
func NewFactory(db *gorm.DB, opts Options) *Factory {
	// seed gofakeit for richer content
	gofakeit.Seed(time.Now().UnixNano())
	return &Factory{db: db, opts: opts, nextID: 1000}
}

// CreateUser constructs and persists a sample `models.User`.
// Optional override functions may modify the generated user before saving.
func (f *Factory) CreateUser(overrides ...func(*models.User)) (*models.User, error) {
	user := &models.User{
		Username:  gofakeit.Username() + fmt.Sprintf("%d", gofakeit.Number(100, 999)),
		Email:     gofakeit.Email(),
		FirstName: gofakeit.FirstName(),
		LastName:  gofakeit.LastName(),
	}

	// Password handling: allow skipping bcrypt in dev fast mode
	if f.opts.SkipBcrypt {
		user.Password = "password123"
	} else {
		hashedPassword, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("failed to hash seed password: %w", err)
		}
		user.Password = string(hashedPassword)
	}

	for _, override := range overrides {
		override(user)
	}

	if f.opts.DryRun {
		f.nextID++
		user.ID = f.nextID
		log.Printf("[dry-run] CreateUser: %s <%s>", user.Username, user.Email)
		return user, nil
	}

	if err := f.db.Create(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// BuildRecipe constructs a recipe struct for the given author without
// persisting it. Useful for batching.
func (f *Factory) BuildRecipe(author *models.User, overrides ...func(*models.Recipe)) *models.Recipe {
	recipe := &models.Recipe{
		AuthorID:    author.ID,
		Name:        recipeName(),
		Text:        gofakeit.Paragraph(1, 3, 8, "\n"),
		Image:       fmt.Sprintf("recipes/seed-%s.png", gofakeit.UUID()),
		CookingTime: gofakeit.Number(5, 180),
	}

	// realistic pub_date spread
	maxDays := f.opts.MaxDays
	if maxDays <= 0 {
		maxDays = 90
	}
	// #nosec G404: acceptable for seeding
	r := rand.New(rand.NewSource(time.Now().UnixNano()))
	daysBack := r.Intn(maxDays)
	hoursBack := r.Intn(24)
	recipe.PubDate = time.Now().Add(-time.Duration(daysBack)*24*time.Hour - time.Duration(hoursBack)*time.Hour)

	for _, override := range overrides {
		override(recipe)
	}
	return recipe
}

// CreateRecipe persists a recipe with its tag set and ingredient lines.
func (f *Factory) CreateRecipe(author *models.User, tags []models.Tag, links []models.IngredientInRecipe, overrides ...func(*models.Recipe)) (*models.Recipe, error) {
	recipe := f.BuildRecipe(author, overrides...)

	if f.opts.DryRun {
		f.nextID++
		recipe.ID = f.nextID
		log.Printf("[dry-run] CreateRecipe: author=%d name=%q tags=%d ingredients=%d",
			recipe.AuthorID, recipe.Name, len(tags), len(links))
		return recipe, nil
	}

	err := f.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Tags", "IngredientLinks", "Author").Create(recipe).Error; err != nil {
			return err
		}
		for i := range links {
			links[i].ID = 0
			links[i].RecipeID = recipe.ID
		}
		if len(links) > 0 {
			if err := tx.Create(&links).Error; err != nil {
				return err
			}
		}
		return tx.Model(recipe).Association("Tags").Replace(tags)
	})
	if err != nil {
		return nil, err
	}
	return recipe, nil
}

// CreateSubscription persists a follow edge from user to author.
func (f *Factory) CreateSubscription(user, author *models.User) error {
	sub := &models.Subscription{
		UserID:   user.ID,
		AuthorID: author.ID,
	}
	return f.db.Create(sub).Error
}

// CreateFavorite persists a favorite mark from `user` on `recipe`.
func (f *Factory) CreateFavorite(user *models.User, recipe *models.Recipe) error {
	fav := &models.Favorite{
		UserID:   user.ID,
		RecipeID: recipe.ID,
	}
	return f.db.Create(fav).Error
}

// CreateCartItem queues `recipe` in the shopping cart of `user`.
func (f *Factory) CreateCartItem(user *models.User, recipe *models.Recipe) error {
	item := &models.ShoppingCart{
		UserID:   user.ID,
		RecipeID: recipe.ID,
	}
	return f.db.Create(item).Error
}

// recipeName builds a plausible dish name from gofakeit's food generators.
func recipeName() string {
	parts := []func() string{
		gofakeit.Breakfast,
		gofakeit.Lunch,
		gofakeit.Dinner,
		gofakeit.Dessert,
		gofakeit.Snack,
	}
	return parts[gofakeit.Number(0, len(parts)-1)]()
}
