package service

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/tastery/backend/internal/models"
	"github.com/tastery/backend/internal/types"
)

// RecipeService handles recipe operations
type RecipeService struct {
	db          *gorm.DB
	ingredients *IngredientService
}

// NewRecipeService creates a new RecipeService instance
func NewRecipeService(db *gorm.DB, ingredients *IngredientService) *RecipeService {
	return &RecipeService{
		db:          db,
		ingredients: ingredients,
	}
}

// CreateRecipe persists a recipe and its ingredient lines as one transaction.
// Lines are inserted in payload order; each is resolved to an ingredient row
// through the resolver unless it carries an explicit ingredient_id. Any
// failure rolls back the whole recipe.
func (s *RecipeService) CreateRecipe(ctx context.Context, input *types.RecipeInput) (*types.RecipeResponse, error) {
	recipe := models.Recipe{
		Name:         input.Name,
		Description:  input.Description,
		MealType:     input.MealType,
		PrepTime:     input.PrepTime,
		CookTime:     input.CookTime,
		ExtraTime:    input.ExtraTime,
		Difficulty:   input.Difficulty,
		Cuisine:      input.Cuisine,
		Servings:     input.Servings,
		Directions:   input.Directions,
		SourceURL:    input.SourceURL,
		SpecialTools: models.JSONBStringArray(input.SpecialTools),
		Favorite:     input.Favorite,
	}
	if recipe.SpecialTools == nil {
		recipe.SpecialTools = models.JSONBStringArray{}
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&recipe).Error; err != nil {
			return err
		}

		for i, line := range input.Ingredients {
			var ingredientID uuid.UUID
			if line.IngredientID != "" {
				id, err := uuid.Parse(line.IngredientID)
				if err != nil {
					return &ValidationError{Field: "ingredients", Message: "invalid ingredient_id"}
				}
				ingredientID = id
			} else {
				ingredient, _, err := s.ingredients.findOrCreate(ctx, tx, line.Name, line.Category)
				if err != nil {
					return err
				}
				ingredientID = ingredient.ID
			}

			ri := models.RecipeIngredient{
				RecipeID:     recipe.ID,
				IngredientID: ingredientID,
				Position:     i,
				Amount:       line.Amount,
				Measurement:  line.Measurement,
				IsOptional:   line.IsOptional,
			}
			if err := tx.Create(&ri).Error; err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.GetRecipe(ctx, recipe.ID)
}

// GetRecipe retrieves one recipe with its ingredient lines expanded.
func (s *RecipeService) GetRecipe(ctx context.Context, id uuid.UUID) (*types.RecipeResponse, error) {
	var recipe models.Recipe
	err := s.preloaded(ctx).First(&recipe, "id = ?", id).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return composeRecipe(&recipe), nil
}

// ListRecipes returns all recipes ordered by name, each with its ingredient
// lines expanded.
func (s *RecipeService) ListRecipes(ctx context.Context) ([]*types.RecipeResponse, error) {
	var recipes []models.Recipe
	if err := s.preloaded(ctx).Order("name ASC").Find(&recipes).Error; err != nil {
		return nil, err
	}

	result := make([]*types.RecipeResponse, len(recipes))
	for i := range recipes {
		result[i] = composeRecipe(&recipes[i])
	}
	return result, nil
}

// UpdateRecipe applies a partial update of scalar fields, then re-fetches the
// composed recipe. Ingredient lines are not touched by this path.
func (s *RecipeService) UpdateRecipe(ctx context.Context, id uuid.UUID, patch *types.RecipeUpdate) (*types.RecipeResponse, error) {
	var recipe models.Recipe
	if err := s.db.WithContext(ctx).First(&recipe, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrNotFound
		}
		return nil, err
	}

	updates := patchColumns(patch)
	if len(updates) > 0 {
		err := s.db.WithContext(ctx).Model(&models.Recipe{}).Where("id = ?", id).Updates(updates).Error
		if err != nil {
			return nil, err
		}
	}

	return s.GetRecipe(ctx, id)
}

// SetImageURL records the uploaded image location for a recipe.
func (s *RecipeService) SetImageURL(ctx context.Context, id uuid.UUID, url string) error {
	result := s.db.WithContext(ctx).Model(&models.Recipe{}).Where("id = ?", id).Update("image_url", url)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteRecipe removes a recipe; its ingredient lines cascade with it.
// Ingredient rows are shared and always survive.
func (s *RecipeService) DeleteRecipe(ctx context.Context, id uuid.UUID) error {
	var recipe models.Recipe
	if err := s.db.WithContext(ctx).First(&recipe, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return ErrNotFound
		}
		return err
	}
	return s.db.WithContext(ctx).Delete(&models.Recipe{}, "id = ?", id).Error
}

func (s *RecipeService) preloaded(ctx context.Context) *gorm.DB {
	return s.db.WithContext(ctx).
		Preload("Ingredients", func(db *gorm.DB) *gorm.DB {
			return db.Order("recipe_ingredients.position ASC")
		}).
		Preload("Ingredients.Ingredient")
}

// composeRecipe flattens a recipe row and its preloaded lines into the API
// shape. Lines whose ingredient row is missing are dropped rather than
// surfaced with a null ingredient.
func composeRecipe(recipe *models.Recipe) *types.RecipeResponse {
	lines := make([]types.RecipeIngredientResponse, 0, len(recipe.Ingredients))
	for _, ri := range recipe.Ingredients {
		if ri.Ingredient == nil {
			continue
		}
		lines = append(lines, types.RecipeIngredientResponse{
			ID:           ri.ID,
			IngredientID: ri.IngredientID,
			Name:         ri.Ingredient.Name,
			Category:     ri.Ingredient.Category,
			Amount:       ri.Amount,
			Measurement:  ri.Measurement,
			IsOptional:   ri.IsOptional,
		})
	}

	return &types.RecipeResponse{
		ID:           recipe.ID,
		Name:         recipe.Name,
		Description:  recipe.Description,
		MealType:     recipe.MealType,
		PrepTime:     recipe.PrepTime,
		CookTime:     recipe.CookTime,
		ExtraTime:    recipe.ExtraTime,
		Difficulty:   recipe.Difficulty,
		Cuisine:      recipe.Cuisine,
		Servings:     recipe.Servings,
		Directions:   recipe.Directions,
		SourceURL:    recipe.SourceURL,
		SpecialTools: recipe.SpecialTools,
		ImageURL:     recipe.ImageURL,
		Favorite:     recipe.Favorite,
		Ingredients:  lines,
		CreatedAt:    recipe.CreatedAt,
		UpdatedAt:    recipe.UpdatedAt,
	}
}

// patchColumns converts the non-nil fields of a patch into a column update
// map. Column names stay in one place here so a rename cannot silently split
// the API shape from the schema.
func patchColumns(patch *types.RecipeUpdate) map[string]interface{} {
	updates := map[string]interface{}{}
	if patch.Name != nil {
		updates["name"] = *patch.Name
	}
	if patch.Description != nil {
		updates["description"] = *patch.Description
	}
	if patch.MealType != nil {
		updates["meal_type"] = *patch.MealType
	}
	if patch.PrepTime != nil {
		updates["prep_time"] = *patch.PrepTime
	}
	if patch.CookTime != nil {
		updates["cook_time"] = *patch.CookTime
	}
	if patch.ExtraTime != nil {
		updates["extra_time"] = *patch.ExtraTime
	}
	if patch.Difficulty != nil {
		updates["difficulty"] = *patch.Difficulty
	}
	if patch.Cuisine != nil {
		updates["cuisine"] = *patch.Cuisine
	}
	if patch.Servings != nil {
		updates["servings"] = *patch.Servings
	}
	if patch.Directions != nil {
		updates["directions"] = *patch.Directions
	}
	if patch.SourceURL != nil {
		updates["source_url"] = *patch.SourceURL
	}
	if patch.SpecialTools != nil {
		updates["special_tools"] = models.JSONBStringArray(*patch.SpecialTools)
	}
	if patch.Favorite != nil {
		updates["favorite"] = *patch.Favorite
	}
	return updates
}
