package service_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/tastery/backend/internal/models"
	"github.com/tastery/backend/internal/service"
	"github.com/tastery/backend/internal/testhelpers"
	"github.com/tastery/backend/internal/types"
)

func newRecipeService(db *gorm.DB) *service.RecipeService {
	return service.NewRecipeService(db, service.NewIngredientService(db))
}

func TestCreateRecipeRoundTrip(t *testing.T) {
	db := testhelpers.SetupTestDB(t)
	svc := newRecipeService(db)
	ctx := context.Background()

	created, err := svc.CreateRecipe(ctx, &types.RecipeInput{
		Name:       "Tacos",
		Difficulty: "easy",
		Ingredients: []types.RecipeIngredientInput{
			{Name: "Beef", Category: "meat", Amount: 1, Measurement: "pound"},
		},
	})
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, created.ID)

	recipes, err := svc.ListRecipes(ctx)
	require.NoError(t, err)
	require.Len(t, recipes, 1)

	got := recipes[0]
	assert.Equal(t, "Tacos", got.Name)
	assert.Equal(t, "easy", got.Difficulty)
	assert.False(t, got.Favorite)
	require.Len(t, got.Ingredients, 1)
	assert.Equal(t, "Beef", got.Ingredients[0].Name)
	assert.Equal(t, "meat", got.Ingredients[0].Category)
	assert.Equal(t, 1.0, got.Ingredients[0].Amount)
	assert.Equal(t, "pound", got.Ingredients[0].Measurement)
	assert.False(t, got.Ingredients[0].IsOptional)
}

func TestCreateRecipePreservesLineOrder(t *testing.T) {
	db := testhelpers.SetupTestDB(t)
	svc := newRecipeService(db)
	ctx := context.Background()

	created, err := svc.CreateRecipe(ctx, &types.RecipeInput{
		Name:       "Stir Fry",
		Difficulty: "medium",
		Ingredients: []types.RecipeIngredientInput{
			{Name: "Zucchini", Category: "produce"},
			{Name: "Soy Sauce", Category: "pantry"},
			{Name: "Chicken", Category: "meat"},
		},
	})
	require.NoError(t, err)

	got, err := svc.GetRecipe(ctx, created.ID)
	require.NoError(t, err)
	require.Len(t, got.Ingredients, 3)
	assert.Equal(t, "Zucchini", got.Ingredients[0].Name)
	assert.Equal(t, "Soy Sauce", got.Ingredients[1].Name)
	assert.Equal(t, "Chicken", got.Ingredients[2].Name)
}

func TestCreateRecipeAllowsRepeatedIngredient(t *testing.T) {
	db := testhelpers.SetupTestDB(t)
	svc := newRecipeService(db)
	ctx := context.Background()

	created, err := svc.CreateRecipe(ctx, &types.RecipeInput{
		Name:       "Double Garlic Pasta",
		Difficulty: "easy",
		Ingredients: []types.RecipeIngredientInput{
			{Name: "Garlic", Category: "produce", Amount: 4, Measurement: "cloves"},
			{Name: "Garlic", Category: "produce", Amount: 2, Measurement: "cloves", IsOptional: true},
		},
	})
	require.NoError(t, err)
	require.Len(t, created.Ingredients, 2)
	assert.Equal(t, created.Ingredients[0].IngredientID, created.Ingredients[1].IngredientID)

	var count int64
	require.NoError(t, db.Model(&models.Ingredient{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestCreateRecipeWithExplicitIngredientID(t *testing.T) {
	db := testhelpers.SetupTestDB(t)
	ingredients := service.NewIngredientService(db)
	svc := service.NewRecipeService(db, ingredients)
	ctx := context.Background()

	existing, _, err := ingredients.FindOrCreate(ctx, "Flour", "pantry")
	require.NoError(t, err)

	created, err := svc.CreateRecipe(ctx, &types.RecipeInput{
		Name:       "Bread",
		Difficulty: "hard",
		Ingredients: []types.RecipeIngredientInput{
			{IngredientID: existing.ID.String(), Amount: 500, Measurement: "grams"},
		},
	})
	require.NoError(t, err)
	require.Len(t, created.Ingredients, 1)
	assert.Equal(t, existing.ID, created.Ingredients[0].IngredientID)
	assert.Equal(t, "Flour", created.Ingredients[0].Name)
}

func TestCreateRecipeRollsBackOnBadLine(t *testing.T) {
	db := testhelpers.SetupTestDB(t)
	svc := newRecipeService(db)
	ctx := context.Background()

	// Second line references an ingredient that does not exist; the foreign
	// key rejects it and the whole recipe must vanish, first line included.
	_, err := svc.CreateRecipe(ctx, &types.RecipeInput{
		Name:       "Phantom Pie",
		Difficulty: "easy",
		Ingredients: []types.RecipeIngredientInput{
			{Name: "Apples", Category: "produce"},
			{IngredientID: uuid.NewString()},
		},
	})
	require.Error(t, err)

	var recipeCount, lineCount int64
	require.NoError(t, db.Model(&models.Recipe{}).Count(&recipeCount).Error)
	require.NoError(t, db.Model(&models.RecipeIngredient{}).Count(&lineCount).Error)
	assert.Equal(t, int64(0), recipeCount)
	assert.Equal(t, int64(0), lineCount)
}

func TestListRecipesOrderedByName(t *testing.T) {
	db := testhelpers.SetupTestDB(t)
	svc := newRecipeService(db)
	ctx := context.Background()

	for _, name := range []string{"Zucchini Bread", "Apple Pie", "Minestrone"} {
		_, err := svc.CreateRecipe(ctx, &types.RecipeInput{Name: name, Difficulty: "easy"})
		require.NoError(t, err)
	}

	recipes, err := svc.ListRecipes(ctx)
	require.NoError(t, err)
	require.Len(t, recipes, 3)
	assert.Equal(t, "Apple Pie", recipes[0].Name)
	assert.Equal(t, "Minestrone", recipes[1].Name)
	assert.Equal(t, "Zucchini Bread", recipes[2].Name)
}

func TestListRecipesDropsOrphanedLines(t *testing.T) {
	db := testhelpers.SetupTestDB(t)
	svc := newRecipeService(db)
	ctx := context.Background()

	created, err := svc.CreateRecipe(ctx, &types.RecipeInput{
		Name:       "Salad",
		Difficulty: "easy",
		Ingredients: []types.RecipeIngredientInput{
			{Name: "Lettuce", Category: "produce"},
			{Name: "Croutons", Category: "pantry"},
		},
	})
	require.NoError(t, err)

	// Point one line at a missing ingredient row behind the constraint's back
	// to simulate a historically corrupted reference.
	require.NoError(t, db.Exec("PRAGMA foreign_keys = OFF").Error)
	require.NoError(t, db.Exec(
		"UPDATE recipe_ingredients SET ingredient_id = ? WHERE recipe_id = ? AND position = 1",
		uuid.NewString(), created.ID,
	).Error)
	require.NoError(t, db.Exec("PRAGMA foreign_keys = ON").Error)

	recipes, err := svc.ListRecipes(ctx)
	require.NoError(t, err)
	require.Len(t, recipes, 1)
	require.Len(t, recipes[0].Ingredients, 1)
	assert.Equal(t, "Lettuce", recipes[0].Ingredients[0].Name)
}

func TestUpdateRecipeFavorite(t *testing.T) {
	db := testhelpers.SetupTestDB(t)
	svc := newRecipeService(db)
	ctx := context.Background()

	created, err := svc.CreateRecipe(ctx, &types.RecipeInput{
		Name:       "Chili",
		Difficulty: "medium",
		Ingredients: []types.RecipeIngredientInput{
			{Name: "Beans", Category: "pantry"},
		},
	})
	require.NoError(t, err)
	require.False(t, created.Favorite)

	favorite := true
	updated, err := svc.UpdateRecipe(ctx, created.ID, &types.RecipeUpdate{Favorite: &favorite})
	require.NoError(t, err)
	assert.True(t, updated.Favorite)

	// Everything outside the patch stays put, ingredient lines included.
	assert.Equal(t, "Chili", updated.Name)
	assert.Equal(t, "medium", updated.Difficulty)
	require.Len(t, updated.Ingredients, 1)
	assert.Equal(t, "Beans", updated.Ingredients[0].Name)
}

func TestUpdateRecipeEmptyPatch(t *testing.T) {
	db := testhelpers.SetupTestDB(t)
	svc := newRecipeService(db)
	ctx := context.Background()

	created, err := svc.CreateRecipe(ctx, &types.RecipeInput{Name: "Toast", Difficulty: "easy"})
	require.NoError(t, err)

	updated, err := svc.UpdateRecipe(ctx, created.ID, &types.RecipeUpdate{})
	require.NoError(t, err)
	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, "Toast", updated.Name)
}

func TestUpdateRecipeNotFound(t *testing.T) {
	db := testhelpers.SetupTestDB(t)
	svc := newRecipeService(db)

	favorite := true
	_, err := svc.UpdateRecipe(context.Background(), uuid.New(), &types.RecipeUpdate{Favorite: &favorite})
	assert.ErrorIs(t, err, service.ErrNotFound)
}

func TestGetRecipeNotFound(t *testing.T) {
	db := testhelpers.SetupTestDB(t)
	svc := newRecipeService(db)

	_, err := svc.GetRecipe(context.Background(), uuid.New())
	assert.ErrorIs(t, err, service.ErrNotFound)
}

func TestDeleteRecipeCascadesLines(t *testing.T) {
	db := testhelpers.SetupTestDB(t)
	svc := newRecipeService(db)
	ctx := context.Background()

	created, err := svc.CreateRecipe(ctx, &types.RecipeInput{
		Name:       "Omelette",
		Difficulty: "easy",
		Ingredients: []types.RecipeIngredientInput{
			{Name: "Eggs", Category: "dairy"},
			{Name: "Chives", Category: "produce"},
		},
	})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteRecipe(ctx, created.ID))

	var lineCount, ingredientCount int64
	require.NoError(t, db.Model(&models.RecipeIngredient{}).Count(&lineCount).Error)
	require.NoError(t, db.Model(&models.Ingredient{}).Count(&ingredientCount).Error)
	assert.Equal(t, int64(0), lineCount)
	// Ingredient rows are shared across recipes and survive deletion.
	assert.Equal(t, int64(2), ingredientCount)

	assert.ErrorIs(t, svc.DeleteRecipe(ctx, created.ID), service.ErrNotFound)
}

func TestSetImageURL(t *testing.T) {
	db := testhelpers.SetupTestDB(t)
	svc := newRecipeService(db)
	ctx := context.Background()

	created, err := svc.CreateRecipe(ctx, &types.RecipeInput{Name: "Curry", Difficulty: "medium"})
	require.NoError(t, err)

	require.NoError(t, svc.SetImageURL(ctx, created.ID, "https://images.example.com/curry.jpg"))

	got, err := svc.GetRecipe(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "https://images.example.com/curry.jpg", got.ImageURL)

	assert.ErrorIs(t, svc.SetImageURL(ctx, uuid.New(), "https://images.example.com/x.jpg"), service.ErrNotFound)
}
