package domain

import (
	"errors"
	"time"
)

const (
	TableStatusAvailable = "available"
	TableStatusOccupied  = "occupied"
	TableStatusReserved  = "reserved"
	TableStatusDirty     = "dirty"

	OrderStatusNew       = "new"
	OrderStatusPreparing = "preparing"
	OrderStatusReady     = "ready"
	OrderStatusServed    = "served"
	OrderStatusPaid      = "paid"
	OrderStatusCancelled = "cancelled"

	PaymentStatusPending = "pending"
	PaymentStatusPartial = "partial"
	PaymentStatusPaid    = "paid"

	PaymentRecordPending   = "pending"
	PaymentRecordCompleted = "completed"
	PaymentRecordFailed    = "failed"

	PaymentMethodCash     = "cash"
	PaymentMethodCard     = "card"
	PaymentMethodTelebirr = "telebirr"
	PaymentMethodChapa    = "chapa"
)

var (
	MessageSuccessGetTables     = "tables retrieved successfully"
	MessageSuccessCreateTable   = "table created successfully"
	MessageSuccessUpdateTable   = "table updated successfully"
	MessageSuccessDeleteTable   = "table deleted successfully"
	MessageSuccessGetOrders     = "orders retrieved successfully"
	MessageSuccessCreateOrder   = "order created successfully"
	MessageSuccessUpdateOrder   = "order updated successfully"
	MessageSuccessGetPayments   = "payments retrieved successfully"
	MessageSuccessCreatePayment = "payment processed successfully"

	MessageFailedGetTables     = "failed to retrieve tables"
	MessageFailedCreateTable   = "failed to create table"
	MessageFailedUpdateTable   = "failed to update table"
	MessageFailedDeleteTable   = "failed to delete table"
	MessageFailedGetOrders     = "failed to retrieve orders"
	MessageFailedCreateOrder   = "failed to create order"
	MessageFailedUpdateOrder   = "failed to update order"
	MessageFailedGetPayments   = "failed to retrieve payments"
	MessageFailedCreatePayment = "failed to process payment"

	ErrTableNotFound          = errors.New("table not found")
	ErrTableHasActiveOrders   = errors.New("cannot delete table: it has active orders")
	ErrOrderNotFound          = errors.New("order not found")
	ErrOrderNoItems           = errors.New("order must contain at least one item")
	ErrOrderAlreadyPaid       = errors.New("order is already paid")
	ErrOrderCancelled         = errors.New("order is cancelled")
	ErrInvalidStatusChange    = errors.New("invalid order status transition")
	ErrPaymentNotFound        = errors.New("payment not found")
	ErrInvalidPaymentAmount   = errors.New("payment amount must be positive")
	ErrPaymentExceedsBalance  = errors.New("payment amount exceeds outstanding balance")
	ErrInvalidPaymentMethod   = errors.New("invalid payment method")
	ErrGatewayUnavailable     = errors.New("payment gateway unavailable")
)

type (
	CreateTableRequest struct {
		Name     string `json:"name" validate:"required,max=50"`
		Capacity int    `json:"capacity" validate:"required,gt=0"`
		Status   string `json:"status" validate:"omitempty,oneof=available occupied reserved dirty"`
		Section  string `json:"section" validate:"omitempty"`
	}

	UpdateTableRequest struct {
		Name     string `json:"name" validate:"omitempty,max=50"`
		Capacity *int   `json:"capacity" validate:"omitempty,gt=0"`
		Status   string `json:"status" validate:"omitempty,oneof=available occupied reserved dirty"`
		Section  string `json:"section" validate:"omitempty"`
	}

	TableResponse struct {
		ID       string `json:"id"`
		Name     string `json:"name"`
		Capacity int    `json:"capacity"`
		Status   string `json:"status"`
		Section  string `json:"section,omitempty"`
	}

	OrderItemRequest struct {
		MenuItemID string  `json:"menu_item_id" validate:"required,uuid"`
		Quantity   int     `json:"quantity" validate:"required,gt=0"`
		UnitPrice  float64 `json:"unit_price" validate:"omitempty,gte=0"`
		Notes      string  `json:"notes" validate:"omitempty"`
	}

	CreateOrderRequest struct {
		TableID       string             `json:"table_id" validate:"required,uuid"`
		OrderType     string             `json:"order_type" validate:"omitempty,oneof=dine-in takeout delivery"`
		CustomerName  string             `json:"customer_name" validate:"omitempty"`
		CustomerPhone string             `json:"customer_phone" validate:"omitempty"`
		PartySize     int                `json:"party_size" validate:"omitempty,gt=0"`
		Tax           float64            `json:"tax" validate:"omitempty,gte=0"`
		Discount      float64            `json:"discount" validate:"omitempty,gte=0"`
		Items         []OrderItemRequest `json:"items" validate:"required,min=1,dive"`
	}

	UpdateOrderRequest struct {
		Status   string   `json:"status" validate:"omitempty,oneof=new preparing ready served paid cancelled"`
		Tax      *float64 `json:"tax" validate:"omitempty,gte=0"`
		Discount *float64 `json:"discount" validate:"omitempty,gte=0"`
	}

	OrderItemResponse struct {
		ID           string  `json:"id"`
		MenuItemID   string  `json:"menu_item_id"`
		MenuItemName string  `json:"menu_item_name"`
		Quantity     int     `json:"quantity"`
		UnitPrice    float64 `json:"unit_price"`
		Notes        string  `json:"notes,omitempty"`
		Status       string  `json:"status"`
	}

	OrderResponse struct {
		ID            string              `json:"id"`
		TableID       string              `json:"table_id"`
		TableName     string              `json:"table_name"`
		OrderType     string              `json:"order_type"`
		Status        string              `json:"status"`
		CustomerName  string              `json:"customer_name,omitempty"`
		CustomerPhone string              `json:"customer_phone,omitempty"`
		PartySize     int                 `json:"party_size,omitempty"`
		Subtotal      float64             `json:"subtotal"`
		Tax           float64             `json:"tax"`
		Discount      float64             `json:"discount"`
		Total         float64             `json:"total"`
		PaymentStatus string              `json:"payment_status"`
		Items         []OrderItemResponse `json:"items"`
		CreatedAt     time.Time           `json:"created_at"`
	}

	CreatePaymentRequest struct {
		OrderID string  `json:"order_id" validate:"required,uuid"`
		Amount  float64 `json:"amount" validate:"required,gt=0"`
		Method  string  `json:"method" validate:"required,oneof=cash card telebirr chapa"`
		Notes   string  `json:"notes" validate:"omitempty"`
	}

	PaymentResponse struct {
		ID            string    `json:"id"`
		OrderID       string    `json:"order_id"`
		Amount        float64   `json:"amount"`
		Method        string    `json:"method"`
		Status        string    `json:"status"`
		TransactionID string    `json:"transaction_id,omitempty"`
		RedirectURL   string    `json:"redirect_url,omitempty"`
		Notes         string    `json:"notes,omitempty"`
		CreatedAt     time.Time `json:"created_at"`
	}
)
