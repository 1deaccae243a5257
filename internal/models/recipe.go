package models

import (
	"database/sql/driver"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Recipe difficulty levels.
const (
	DifficultyEasy   = "easy"
	DifficultyMedium = "medium"
	DifficultyHard   = "hard"
)

// Recipe meal types.
const (
	MealTypeSnack     = "snack"
	MealTypeMeal      = "meal"
	MealTypeSideDish  = "side dish"
	MealTypeAppetizer = "appetizer"
	MealTypeDessert   = "dessert"
)

// JSONBStringArray is a custom type for handling string arrays in JSONB
type JSONBStringArray []string

// Value implements the driver.Valuer interface
func (a JSONBStringArray) Value() (driver.Value, error) {
	if len(a) == 0 {
		return "[]", nil
	}
	return json.Marshal(a)
}

// Scan implements the sql.Scanner interface
func (a *JSONBStringArray) Scan(value interface{}) error {
	if value == nil {
		*a = JSONBStringArray{}
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return nil
	}

	return json.Unmarshal(bytes, a)
}

type Recipe struct {
	ID           uuid.UUID          `gorm:"type:varchar(36);primaryKey" json:"id"`
	CreatedAt    time.Time          `json:"created_at"`
	UpdatedAt    time.Time          `json:"updated_at"`
	Name         string             `gorm:"size:255;not null" json:"name"`
	Description  string             `gorm:"size:300" json:"description"`
	MealType     string             `gorm:"size:20" json:"meal_type"`
	PrepTime     int                `gorm:"not null;default:0" json:"prep_time"`
	CookTime     int                `gorm:"not null;default:0" json:"cook_time"`
	ExtraTime    int                `gorm:"not null;default:0" json:"extra_time"`
	Difficulty   string             `gorm:"size:10;not null" json:"difficulty"`
	Cuisine      string             `gorm:"size:100" json:"cuisine"`
	Servings     int                `gorm:"not null;default:0" json:"servings"`
	Directions   string             `gorm:"type:text;not null;default:''" json:"directions"`
	SourceURL    string             `gorm:"size:255" json:"source_url"`
	SpecialTools JSONBStringArray   `gorm:"type:jsonb;not null;default:'[]'" json:"special_tools"`
	ImageURL     string             `gorm:"size:255" json:"image_url"`
	Favorite     bool               `gorm:"not null;default:false" json:"favorite"`
	Ingredients  []RecipeIngredient `gorm:"foreignKey:RecipeID;constraint:OnDelete:CASCADE" json:"ingredients"`
}

func (r *Recipe) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

// RecipeIngredient is one line of a recipe: how much of which ingredient.
// Position preserves submission order. Lines belong exclusively to their
// recipe and are removed with it; the referenced ingredient is never touched.
type RecipeIngredient struct {
	ID           uuid.UUID   `gorm:"type:varchar(36);primaryKey" json:"id"`
	CreatedAt    time.Time   `json:"created_at"`
	RecipeID     uuid.UUID   `gorm:"type:varchar(36);not null;index" json:"recipe_id"`
	IngredientID uuid.UUID   `gorm:"type:varchar(36);not null;index" json:"ingredient_id"`
	Position     int         `gorm:"not null;default:0" json:"position"`
	Amount       float64     `json:"amount"`
	Measurement  string      `gorm:"size:50" json:"measurement"`
	IsOptional   bool        `gorm:"not null;default:false" json:"is_optional"`
	Ingredient   *Ingredient `gorm:"foreignKey:IngredientID" json:"ingredient,omitempty"`
}

func (RecipeIngredient) TableName() string {
	return "recipe_ingredients"
}

func (ri *RecipeIngredient) BeforeCreate(tx *gorm.DB) error {
	if ri.ID == uuid.Nil {
		ri.ID = uuid.New()
	}
	return nil
}
