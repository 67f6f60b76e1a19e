package seed

import (
	"fmt"
	"log"
	"math/rand"
	"time"

	"foodgram/internal/models"

	"gorm.io/gorm"
)

// Options configuration for the seeder
type Options struct {
	NumUsers   int
	NumRecipes int
	// ShouldClean truncates existing data before seeding
	ShouldClean bool
	// DryRun logs instead of writing
	DryRun bool
	// SkipBcrypt stores plain passwords for fast dev iterations
	SkipBcrypt bool
	// MaxDays spreads recipe pub dates over the last N days (default 90)
	MaxDays int
}

var tagCatalogue = []models.Tag{
	{Name: "Breakfast", Slug: "breakfast"},
	{Name: "Lunch", Slug: "lunch"},
	{Name: "Dinner", Slug: "dinner"},
	{Name: "Dessert", Slug: "dessert"},
	{Name: "Snack", Slug: "snack"},
	{Name: "Drinks", Slug: "drinks"},
	{Name: "Vegetarian", Slug: "vegetarian"},
	{Name: "Quick", Slug: "quick"},
}

var ingredientCatalogue = []models.Ingredient{
	{Name: "salt", MeasurementUnit: "g"},
	{Name: "sugar", MeasurementUnit: "g"},
	{Name: "flour", MeasurementUnit: "g"},
	{Name: "butter", MeasurementUnit: "g"},
	{Name: "milk", MeasurementUnit: "ml"},
	{Name: "water", MeasurementUnit: "ml"},
	{Name: "olive oil", MeasurementUnit: "ml"},
	{Name: "egg", MeasurementUnit: "pcs"},
	{Name: "onion", MeasurementUnit: "pcs"},
	{Name: "garlic", MeasurementUnit: "cloves"},
	{Name: "tomato", MeasurementUnit: "pcs"},
	{Name: "potato", MeasurementUnit: "g"},
	{Name: "carrot", MeasurementUnit: "g"},
	{Name: "chicken breast", MeasurementUnit: "g"},
	{Name: "ground beef", MeasurementUnit: "g"},
	{Name: "salmon", MeasurementUnit: "g"},
	{Name: "rice", MeasurementUnit: "g"},
	{Name: "pasta", MeasurementUnit: "g"},
	{Name: "cheese", MeasurementUnit: "g"},
	{Name: "sour cream", MeasurementUnit: "g"},
	{Name: "black pepper", MeasurementUnit: "g"},
	{Name: "paprika", MeasurementUnit: "g"},
	{Name: "basil", MeasurementUnit: "g"},
	{Name: "lemon", MeasurementUnit: "pcs"},
	{Name: "honey", MeasurementUnit: "ml"},
	{Name: "baking powder", MeasurementUnit: "g"},
	{Name: "vanilla extract", MeasurementUnit: "ml"},
	{Name: "chocolate", MeasurementUnit: "g"},
	{Name: "walnuts", MeasurementUnit: "g"},
	{Name: "mushrooms", MeasurementUnit: "g"},
}

// Seed populates the database with test data
func Seed(db *gorm.DB, opts Options) error {
	log.Printf("🌱 Starting database seeding with %d users and %d recipes...", opts.NumUsers, opts.NumRecipes)

	if opts.ShouldClean {
		if err := clearData(db); err != nil {
			log.Println("⚠️  Warning: Could not clear all existing data, but continuing anyway...")
		}
	}

	factory := NewFactory(db, opts)

	tags, err := createOrGetTags(db)
	if err != nil {
		return fmt.Errorf("failed to create tags: %w", err)
	}
	log.Printf("✓ %d tags available", len(tags))

	ingredients, err := createOrGetIngredients(db)
	if err != nil {
		return fmt.Errorf("failed to create ingredients: %w", err)
	}
	log.Printf("✓ %d ingredients available", len(ingredients))

	users, err := createUsers(factory, opts.NumUsers)
	if err != nil {
		return fmt.Errorf("failed to create users: %w", err)
	}
	log.Printf("✓ %d test users created", len(users))

	recipes, err := createRecipes(factory, users, tags, ingredients, opts.NumRecipes)
	if err != nil {
		return fmt.Errorf("failed to create recipes: %w", err)
	}
	log.Printf("✓ %d recipes created", len(recipes))

	if !opts.DryRun {
		if err := createSocialMesh(factory, users, recipes); err != nil {
			return fmt.Errorf("failed to create subscriptions and favorites: %w", err)
		}
		log.Println("✓ subscriptions, favorites and carts created")
	}

	log.Println("🎉 Database seeding completed successfully!")
	return nil
}

func clearData(db *gorm.DB) error {
	log.Println("🗑️  Clearing existing data...")
	sql := `TRUNCATE TABLE favorites, shopping_carts, subscriptions, short_links,
		ingredient_in_recipes, recipe_tags, recipes, ingredients, tags, users
		RESTART IDENTITY CASCADE;`
	return db.Exec(sql).Error
}

func createOrGetTags(db *gorm.DB) ([]models.Tag, error) {
	tags := make([]models.Tag, 0, len(tagCatalogue))
	for _, entry := range tagCatalogue {
		var tag models.Tag
		err := db.Where(models.Tag{Slug: entry.Slug}).
			Attrs(models.Tag{Name: entry.Name}).
			FirstOrCreate(&tag).Error
		if err != nil {
			return nil, err
		}
		tags = append(tags, tag)
	}
	return tags, nil
}

func createOrGetIngredients(db *gorm.DB) ([]models.Ingredient, error) {
	ingredients := make([]models.Ingredient, 0, len(ingredientCatalogue))
	for _, entry := range ingredientCatalogue {
		var ing models.Ingredient
		err := db.Where(models.Ingredient{Name: entry.Name, MeasurementUnit: entry.MeasurementUnit}).
			FirstOrCreate(&ing).Error
		if err != nil {
			return nil, err
		}
		ingredients = append(ingredients, ing)
	}
	return ingredients, nil
}

func createUsers(factory *Factory, count int) ([]*models.User, error) {
	users := make([]*models.User, 0, count)

	// Always include a predictable account for manual testing
	if count >= 1 {
		user, err := factory.CreateUser(func(u *models.User) {
			u.Username = "chef"
			u.Email = "chef@example.com"
			u.FirstName = "Chef"
			u.LastName = "Example"
		})
		if err == nil {
			users = append(users, user)
		}
	}

	for i := len(users); i < count; i++ {
		user, err := factory.CreateUser()
		if err != nil {
			log.Printf("Failed to create user: %v", err)
			continue
		}
		users = append(users, user)

		if i > 0 && i%100 == 0 {
			log.Printf("Created %d users...", i)
		}
	}
	return users, nil
}

func createRecipes(factory *Factory, users []*models.User, tags []models.Tag, ingredients []models.Ingredient, count int) ([]*models.Recipe, error) {
	//nolint:gosec // Weak random number generator is fine for seeding
	r := rand.New(rand.NewSource(time.Now().UnixNano()))
	recipes := make([]*models.Recipe, 0, count)

	for i := 0; i < count; i++ {
		author := users[r.Intn(len(users))]

		recipeTags := pickTags(r, tags)
		links := pickIngredientLines(r, ingredients)

		recipe, err := factory.CreateRecipe(author, recipeTags, links)
		if err != nil {
			return nil, err
		}
		recipes = append(recipes, recipe)

		if i > 0 && i%100 == 0 {
			log.Printf("Created %d recipes...", i)
		}
	}
	return recipes, nil
}

// pickTags selects 1 to 3 distinct tags.
func pickTags(r *rand.Rand, tags []models.Tag) []models.Tag {
	n := r.Intn(3) + 1
	perm := r.Perm(len(tags))
	picked := make([]models.Tag, 0, n)
	for _, idx := range perm[:n] {
		picked = append(picked, tags[idx])
	}
	return picked
}

// pickIngredientLines selects 2 to 5 distinct ingredients with amounts.
func pickIngredientLines(r *rand.Rand, ingredients []models.Ingredient) []models.IngredientInRecipe {
	n := r.Intn(4) + 2
	perm := r.Perm(len(ingredients))
	links := make([]models.IngredientInRecipe, 0, n)
	for _, idx := range perm[:n] {
		links = append(links, models.IngredientInRecipe{
			IngredientID: ingredients[idx].ID,
			Amount:       r.Intn(500) + 1,
		})
	}
	return links
}

// createSocialMesh wires follows, favorites and cart entries between the
// seeded users and recipes.
func createSocialMesh(factory *Factory, users []*models.User, recipes []*models.Recipe) error {
	//nolint:gosec // Weak random number generator is fine for seeding
	r := rand.New(rand.NewSource(time.Now().UnixNano()))

	for _, user := range users {
		seenAuthors := map[uint]bool{user.ID: true}
		for i := 0; i < r.Intn(4); i++ {
			author := users[r.Intn(len(users))]
			if seenAuthors[author.ID] {
				continue
			}
			seenAuthors[author.ID] = true
			if err := factory.CreateSubscription(user, author); err != nil {
				return err
			}
		}

		if len(recipes) == 0 {
			continue
		}
		seenFavorites := map[uint]bool{}
		for i := 0; i < r.Intn(6); i++ {
			recipe := recipes[r.Intn(len(recipes))]
			if seenFavorites[recipe.ID] {
				continue
			}
			seenFavorites[recipe.ID] = true
			if err := factory.CreateFavorite(user, recipe); err != nil {
				return err
			}
		}
		seenCart := map[uint]bool{}
		for i := 0; i < r.Intn(4); i++ {
			recipe := recipes[r.Intn(len(recipes))]
			if seenCart[recipe.ID] {
				continue
			}
			seenCart[recipe.ID] = true
			if err := factory.CreateCartItem(user, recipe); err != nil {
				return err
			}
		}
	}
	return nil
}
