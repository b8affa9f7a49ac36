package entities

import (
	"time"

	"github.com/google/uuid"
)

type Unit struct {
	ID               uuid.UUID  `gorm:"type:uuid;primary_key" json:"id"`
	Name             string     `json:"name"`
	Abbreviation     string     `json:"abbreviation"`
	BaseUnitID       *uuid.UUID `json:"base_unit_id,omitempty"`
	ConversionFactor float64    `gorm:"default:1" json:"conversion_factor"`

	BaseUnit *Unit `gorm:"foreignKey:BaseUnitID"`
	Timestamp
}

type Ingredient struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Name         string    `json:"name"`
	Description  string    `json:"description,omitempty"`
	UnitID       uuid.UUID `json:"unit_id"`
	CurrentStock float64   `json:"current_stock"`
	MinStock     float64   `json:"min_stock"`
	UnitCost     float64   `json:"unit_cost"`
	Category     string    `json:"category,omitempty"`

	Unit *Unit `gorm:"foreignKey:UnitID"`
	Timestamp
}

type InventoryTransaction struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Type        string    `json:"type"` // "receiving", "issuing", "adjustment"
	Date        time.Time `gorm:"type:timestamp" json:"date"`
	ReferenceID string    `json:"reference_id,omitempty"`
	Notes       string    `json:"notes,omitempty"`
	UserID      uuid.UUID `json:"user_id"`

	User  *User                       `gorm:"foreignKey:UserID"`
	Items []*InventoryTransactionItem `gorm:"foreignKey:TransactionID"`
	Timestamp
}

type InventoryTransactionItem struct {
	ID            uuid.UUID  `gorm:"type:uuid;primary_key" json:"id"`
	TransactionID uuid.UUID  `json:"transaction_id"`
	IngredientID  uuid.UUID  `json:"ingredient_id"`
	Quantity      float64    `json:"quantity"`
	UnitCost      float64    `json:"unit_cost"`
	TotalCost     float64    `json:"total_cost"`
	ExpiryDate    *time.Time `json:"expiry_date,omitempty"`
	BatchNumber   string     `json:"batch_number,omitempty"`

	Ingredient *Ingredient `gorm:"foreignKey:IngredientID"`
}
