package main

import (
	"context"
	"log"

	"github.com/tastery/backend/config"
	"github.com/tastery/backend/internal/database"
	"github.com/tastery/backend/internal/service"
	"github.com/tastery/backend/internal/types"
)

// Seeds a handful of recipes through the regular write path so ingredient
// resolution and line ordering behave exactly as in production.
func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.New(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	ingredientService := service.NewIngredientService(db)
	recipeService := service.NewRecipeService(db, ingredientService)

	seeds := []types.RecipeInput{
		{
			Name:       "Tacos",
			Difficulty: "easy",
			MealType:   "meal",
			PrepTime:   15,
			CookTime:   20,
			Servings:   4,
			Cuisine:    "Mexican",
			Directions: "Brown the beef, warm the tortillas, assemble.",
			Ingredients: []types.RecipeIngredientInput{
				{Name: "Ground Beef", Category: "meat", Amount: 1, Measurement: "pound"},
				{Name: "Tortillas", Category: "pantry", Amount: 8, Measurement: "piece"},
				{Name: "Cheddar Cheese", Category: "dairy", Amount: 1, Measurement: "cup", IsOptional: true},
			},
		},
		{
			Name:        "Tomato Soup",
			Difficulty:  "easy",
			MealType:    "meal",
			Description: "Weeknight staple.",
			PrepTime:    10,
			CookTime:    30,
			Servings:    2,
			Directions:  "Simmer tomatoes with stock, blend, season.",
			Ingredients: []types.RecipeIngredientInput{
				{Name: "Tomatoes", Category: "produce", Amount: 6, Measurement: "piece"},
				{Name: "Vegetable Stock", Category: "pantry", Amount: 500, Measurement: "milliliter"},
				{Name: "Basil", Category: "spices", Measurement: "to taste"},
			},
		},
		{
			Name:         "Creme Brulee",
			Difficulty:   "hard",
			MealType:     "dessert",
			PrepTime:     20,
			CookTime:     45,
			ExtraTime:    240,
			Servings:     6,
			Directions:   "Infuse the cream, bake in a water bath, chill, torch the sugar.",
			SpecialTools: []string{"kitchen torch", "ramekins"},
			Ingredients: []types.RecipeIngredientInput{
				{Name: "Heavy Cream", Category: "dairy", Amount: 500, Measurement: "milliliter"},
				{Name: "Egg Yolks", Category: "dairy", Amount: 6, Measurement: "piece"},
				{Name: "Sugar", Category: "pantry", Amount: 100, Measurement: "gram"},
			},
		},
	}

	ctx := context.Background()
	for _, seed := range seeds {
		recipe, err := recipeService.CreateRecipe(ctx, &seed)
		if err != nil {
			log.Fatalf("Failed to seed recipe %q: %v", seed.Name, err)
		}
		log.Printf("Seeded recipe %q (%s) with %d ingredient lines", recipe.Name, recipe.ID, len(recipe.Ingredients))
	}
}
