package service_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tastery/backend/internal/models"
	"github.com/tastery/backend/internal/service"
	"github.com/tastery/backend/internal/testhelpers"
)

func TestFindOrCreateCreatesOnce(t *testing.T) {
	db := testhelpers.SetupTestDB(t)
	svc := service.NewIngredientService(db)
	ctx := context.Background()

	first, created, err := svc.FindOrCreate(ctx, "Cheddar Cheese", "dairy")
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, "Cheddar Cheese", first.Name)
	assert.Equal(t, "dairy", first.Category)

	second, created, err := svc.FindOrCreate(ctx, "Cheddar Cheese", "dairy")
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, first.ID, second.ID)

	var count int64
	require.NoError(t, db.Model(&models.Ingredient{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestFindOrCreateCaseInsensitive(t *testing.T) {
	db := testhelpers.SetupTestDB(t)
	svc := service.NewIngredientService(db)
	ctx := context.Background()

	first, _, err := svc.FindOrCreate(ctx, "Basil", "spices")
	require.NoError(t, err)

	second, created, err := svc.FindOrCreate(ctx, "bAsIl", "spices")
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, first.ID, second.ID)
	// The original casing is the one that stays.
	assert.Equal(t, "Basil", second.Name)
}

func TestFindOrCreateKeepsExistingCategory(t *testing.T) {
	db := testhelpers.SetupTestDB(t)
	svc := service.NewIngredientService(db)
	ctx := context.Background()

	first, _, err := svc.FindOrCreate(ctx, "Anchovies", "meat")
	require.NoError(t, err)

	second, created, err := svc.FindOrCreate(ctx, "anchovies", "pantry")
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, "meat", second.Category)
}

func TestFindOrCreateEmptyName(t *testing.T) {
	db := testhelpers.SetupTestDB(t)
	svc := service.NewIngredientService(db)

	_, _, err := svc.FindOrCreate(context.Background(), "   ", "produce")
	var verr *service.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "name", verr.Field)
}

func TestFindOrCreateUnknownCategory(t *testing.T) {
	db := testhelpers.SetupTestDB(t)
	svc := service.NewIngredientService(db)

	_, _, err := svc.FindOrCreate(context.Background(), "Salt", "minerals")
	var verr *service.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "category", verr.Field)
}

func TestFindOrCreateDefaultsCategory(t *testing.T) {
	db := testhelpers.SetupTestDB(t)
	svc := service.NewIngredientService(db)

	ingredient, created, err := svc.FindOrCreate(context.Background(), "Ice", "")
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, models.CategoryOther, ingredient.Category)
}

func TestSearchMatchesCaseInsensitively(t *testing.T) {
	db := testhelpers.SetupTestDB(t)
	svc := service.NewIngredientService(db)
	ctx := context.Background()

	for _, seed := range []struct{ name, category string }{
		{"Cheddar Cheese", "dairy"},
		{"Cream Cheese", "dairy"},
		{"Butter", "dairy"},
	} {
		_, _, err := svc.FindOrCreate(ctx, seed.name, seed.category)
		require.NoError(t, err)
	}

	results, err := svc.Search(ctx, "che", 5)
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, "Cheddar Cheese", results[0].Name)
	assert.Equal(t, "Cream Cheese", results[1].Name)
}

func TestSearchRespectsLimit(t *testing.T) {
	db := testhelpers.SetupTestDB(t)
	svc := service.NewIngredientService(db)
	ctx := context.Background()

	for i := 0; i < 7; i++ {
		_, _, err := svc.FindOrCreate(ctx, fmt.Sprintf("Cheese %d", i), "dairy")
		require.NoError(t, err)
	}

	results, err := svc.Search(ctx, "cheese", 5)
	require.NoError(t, err)
	assert.Len(t, results, 5)
}
