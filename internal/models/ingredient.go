package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Ingredient categories accepted by the schema.
const (
	CategoryMeat    = "meat"
	CategoryDairy   = "dairy"
	CategoryProduce = "produce"
	CategoryPantry  = "pantry"
	CategorySpices  = "spices"
	CategoryOther   = "other"
)

// ValidCategory reports whether c is one of the accepted ingredient categories.
func ValidCategory(c string) bool {
	switch c {
	case CategoryMeat, CategoryDairy, CategoryProduce, CategoryPantry, CategorySpices, CategoryOther:
		return true
	}
	return false
}

// Ingredient is a shared food item referenced by recipes. Names are unique
// case-insensitively; the uniqueness is enforced by an expression index on
// LOWER(name) created during migration, since GORM tags cannot express it.
type Ingredient struct {
	ID        uuid.UUID `gorm:"type:varchar(36);primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	Name      string    `gorm:"size:100;not null" json:"name"`
	Category  string    `gorm:"size:20;not null;default:'other'" json:"category"`
}

func (i *Ingredient) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}
