package entities

import (
	"github.com/google/uuid"
)

type MenuCategory struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Name         string    `json:"name"`
	Description  string    `json:"description,omitempty"`
	DisplayOrder int       `json:"display_order"`
	IsActive     bool      `gorm:"default:true" json:"is_active"`

	Timestamp
}

type MenuItem struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Price       float64   `json:"price"`
	Cost        float64   `json:"cost"`
	CategoryID  uuid.UUID `json:"category_id"`
	IsAvailable bool      `gorm:"default:true" json:"is_available"`
	ImageURL    string    `json:"image_url,omitempty"`
	PrepTime    int       `json:"prep_time,omitempty"` // minutes
	IsFeatured  bool      `json:"is_featured"`

	Category *MenuCategory `gorm:"foreignKey:CategoryID"`
	Timestamp
}

type Recipe struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	MenuItemID   uuid.UUID `gorm:"uniqueIndex" json:"menu_item_id"`
	Instructions string    `gorm:"type:text" json:"instructions,omitempty"`
	YieldCount   int       `gorm:"default:1" json:"yield_count"`
	YieldUnit    string    `gorm:"default:servings" json:"yield_unit"`

	MenuItem    *MenuItem           `gorm:"foreignKey:MenuItemID"`
	Ingredients []*RecipeIngredient `gorm:"foreignKey:RecipeID"`
	Timestamp
}

type RecipeIngredient struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	RecipeID     uuid.UUID `json:"recipe_id"`
	IngredientID uuid.UUID `json:"ingredient_id"`
	Quantity     float64   `json:"quantity"`
	Unit         string    `json:"unit"`
	Notes        string    `json:"notes,omitempty"`

	Ingredient *Ingredient `gorm:"foreignKey:IngredientID"`
}
