package service

import (
	"context"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/tastery/backend/internal/models"
)

// IngredientService resolves ingredient names to rows, creating them on first
// use. Names match case-insensitively; an existing row is returned unchanged,
// its category is never overwritten.
type IngredientService struct {
	db *gorm.DB
}

// NewIngredientService creates a new IngredientService instance
func NewIngredientService(db *gorm.DB) *IngredientService {
	return &IngredientService{db: db}
}

// FindOrCreate resolves name to an ingredient, inserting a new row when no
// case-insensitive match exists. The second return value reports whether a row
// was created.
func (s *IngredientService) FindOrCreate(ctx context.Context, name, category string) (*models.Ingredient, bool, error) {
	return s.findOrCreate(ctx, s.db, name, category)
}

// findOrCreate is the transaction-aware implementation; the recipe writer
// calls it with its own tx so resolution rolls back with the recipe.
func (s *IngredientService) findOrCreate(ctx context.Context, db *gorm.DB, name, category string) (*models.Ingredient, bool, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, false, &ValidationError{Field: "name", Message: "ingredient name must not be empty"}
	}
	if category == "" {
		category = models.CategoryOther
	}
	if !models.ValidCategory(category) {
		return nil, false, &ValidationError{Field: "category", Message: "unknown ingredient category"}
	}

	var ingredient models.Ingredient
	err := db.WithContext(ctx).Where("LOWER(name) = LOWER(?)", name).First(&ingredient).Error
	if err == nil {
		return &ingredient, false, nil
	}
	if err != gorm.ErrRecordNotFound {
		return nil, false, err
	}

	// Two requests may race past the lookup for the same new name. The unique
	// index on LOWER(name) makes the insert conflict instead of duplicating;
	// the loser re-fetches the winner's row.
	ingredient = models.Ingredient{Name: name, Category: category}
	result := db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(&ingredient)
	if result.Error != nil {
		return nil, false, result.Error
	}
	if result.RowsAffected == 0 {
		if err := db.WithContext(ctx).Where("LOWER(name) = LOWER(?)", name).First(&ingredient).Error; err != nil {
			return nil, false, err
		}
		return &ingredient, false, nil
	}

	return &ingredient, true, nil
}

// Search returns up to limit ingredients whose name contains query,
// case-insensitively, ordered by name.
func (s *IngredientService) Search(ctx context.Context, query string, limit int) ([]models.Ingredient, error) {
	var ingredients []models.Ingredient
	err := s.db.WithContext(ctx).
		Where("LOWER(name) LIKE ?", "%"+strings.ToLower(query)+"%").
		Order("name ASC").
		Limit(limit).
		Find(&ingredients).Error
	if err != nil {
		return nil, err
	}
	return ingredients, nil
}
