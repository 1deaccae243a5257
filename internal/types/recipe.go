package types

import (
	"time"

	"github.com/google/uuid"
)

// RecipeIngredientInput is one ingredient line of a recipe submission. A line
// either references an existing ingredient by id or names one to be resolved
// (created on first use).
type RecipeIngredientInput struct {
	IngredientID string  `json:"ingredient_id" binding:"omitempty,uuid"`
	Name         string  `json:"name" binding:"required_without=IngredientID"`
	Category     string  `json:"category" binding:"omitempty,oneof=meat dairy produce pantry spices other"`
	Amount       float64 `json:"amount" binding:"omitempty,gt=0"`
	Measurement  string  `json:"measurement" binding:"omitempty,max=50"`
	IsOptional   bool    `json:"is_optional"`
}

// RecipeInput is the payload for creating a recipe. Binding tags hold the
// shape constraints; violations are accumulated by the validator and reported
// together.
type RecipeInput struct {
	Name         string                  `json:"name" binding:"required,max=255"`
	Description  string                  `json:"description" binding:"omitempty,max=300"`
	MealType     string                  `json:"meal_type" binding:"omitempty,oneof=snack meal 'side dish' appetizer dessert"`
	PrepTime     int                     `json:"prep_time" binding:"gte=0"`
	CookTime     int                     `json:"cook_time" binding:"gte=0"`
	ExtraTime    int                     `json:"extra_time" binding:"gte=0"`
	Difficulty   string                  `json:"difficulty" binding:"required,oneof=easy medium hard"`
	Cuisine      string                  `json:"cuisine" binding:"omitempty,max=100"`
	Servings     int                     `json:"servings" binding:"omitempty,gt=0"`
	Directions   string                  `json:"directions"`
	SourceURL    string                  `json:"source_url" binding:"omitempty,url"`
	SpecialTools []string                `json:"special_tools"`
	Favorite     bool                    `json:"favorite"`
	Ingredients  []RecipeIngredientInput `json:"ingredients" binding:"omitempty,dive"`
}

// RecipeUpdate is a partial update of a recipe's scalar fields. Nil fields are
// left untouched. Ingredient lines are not editable through this path.
type RecipeUpdate struct {
	Name         *string   `json:"name" binding:"omitempty,max=255"`
	Description  *string   `json:"description" binding:"omitempty,max=300"`
	MealType     *string   `json:"meal_type" binding:"omitempty,oneof=snack meal 'side dish' appetizer dessert"`
	PrepTime     *int      `json:"prep_time" binding:"omitempty,gte=0"`
	CookTime     *int      `json:"cook_time" binding:"omitempty,gte=0"`
	ExtraTime    *int      `json:"extra_time" binding:"omitempty,gte=0"`
	Difficulty   *string   `json:"difficulty" binding:"omitempty,oneof=easy medium hard"`
	Cuisine      *string   `json:"cuisine" binding:"omitempty,max=100"`
	Servings     *int      `json:"servings" binding:"omitempty,gt=0"`
	Directions   *string   `json:"directions"`
	SourceURL    *string   `json:"source_url" binding:"omitempty,url"`
	SpecialTools *[]string `json:"special_tools"`
	Favorite     *bool     `json:"favorite"`
}

// IngredientInput is the payload for the find-or-create ingredient endpoint.
type IngredientInput struct {
	Name     string `json:"name" binding:"required"`
	Category string `json:"category" binding:"omitempty,oneof=meat dairy produce pantry spices other"`
}

// RecipeIngredientResponse is an ingredient line expanded with the resolved
// ingredient's name and category.
type RecipeIngredientResponse struct {
	ID           uuid.UUID `json:"id"`
	IngredientID uuid.UUID `json:"ingredient_id"`
	Name         string    `json:"name"`
	Category     string    `json:"category"`
	Amount       float64   `json:"amount"`
	Measurement  string    `json:"measurement"`
	IsOptional   bool      `json:"is_optional"`
}

// RecipeResponse is the composed recipe returned by the API.
type RecipeResponse struct {
	ID           uuid.UUID                  `json:"id"`
	Name         string                     `json:"name"`
	Description  string                     `json:"description"`
	MealType     string                     `json:"meal_type"`
	PrepTime     int                        `json:"prep_time"`
	CookTime     int                        `json:"cook_time"`
	ExtraTime    int                        `json:"extra_time"`
	Difficulty   string                     `json:"difficulty"`
	Cuisine      string                     `json:"cuisine"`
	Servings     int                        `json:"servings"`
	Directions   string                     `json:"directions"`
	SourceURL    string                     `json:"source_url"`
	SpecialTools []string                   `json:"special_tools"`
	ImageURL     string                     `json:"image_url"`
	Favorite     bool                       `json:"favorite"`
	Ingredients  []RecipeIngredientResponse `json:"ingredients"`
	CreatedAt    time.Time                  `json:"created_at"`
	UpdatedAt    time.Time                  `json:"updated_at"`
}
