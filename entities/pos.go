package entities

import (
	"github.com/google/uuid"
)

type Table struct {
	ID       uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Name     string    `json:"name"`
	Capacity int       `json:"capacity"`
	Status   string    `gorm:"default:available" json:"status"` // "available", "occupied", "reserved", "dirty"
	Section  string    `json:"section,omitempty"`

	Timestamp
}

type Order struct {
	ID            uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	TableID       uuid.UUID `json:"table_id"`
	UserID        uuid.UUID `json:"user_id"`
	OrderType     string    `gorm:"default:dine-in" json:"order_type"` // "dine-in", "takeout", "delivery"
	Status        string    `gorm:"default:new" json:"status"`         // "new", "preparing", "ready", "served", "paid", "cancelled"
	CustomerName  string    `json:"customer_name,omitempty"`
	CustomerPhone string    `json:"customer_phone,omitempty"`
	PartySize     int       `json:"party_size,omitempty"`
	Subtotal      float64   `json:"subtotal"`
	Tax           float64   `json:"tax"`
	Discount      float64   `json:"discount"`
	Total         float64   `json:"total"`
	PaymentStatus string    `gorm:"default:pending" json:"payment_status"` // "pending", "partial", "paid"

	Table *Table       `gorm:"foreignKey:TableID"`
	User  *User        `gorm:"foreignKey:UserID"`
	Items []*OrderItem `gorm:"foreignKey:OrderID"`
	Timestamp
}

type OrderItem struct {
	ID         uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	OrderID    uuid.UUID `json:"order_id"`
	MenuItemID uuid.UUID `json:"menu_item_id"`
	Quantity   int       `json:"quantity"`
	UnitPrice  float64   `json:"unit_price"`
	Notes      string    `json:"notes,omitempty"`
	Status     string    `gorm:"default:new" json:"status"` // "new", "preparing", "ready", "served"

	MenuItem *MenuItem `gorm:"foreignKey:MenuItemID"`
	Timestamp
}

type Payment struct {
	ID            uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	OrderID       uuid.UUID `json:"order_id"`
	UserID        uuid.UUID `json:"user_id"`
	Amount        float64   `json:"amount"`
	Method        string    `json:"method"`                            // "cash", "card", "telebirr", "chapa"
	Status        string    `gorm:"default:pending" json:"status"`     // "pending", "completed", "failed"
	TransactionID string    `json:"transaction_id,omitempty"`          // gateway reference
	RedirectURL   string    `gorm:"-" json:"redirect_url,omitempty"`   // gateway checkout URL, not persisted
	Notes         string    `json:"notes,omitempty"`

	Order *Order `gorm:"foreignKey:OrderID"`
	User  *User  `gorm:"foreignKey:UserID"`
	Timestamp
}
