package domain

import (
	"errors"
	"time"
)

const (
	TransactionTypeReceiving  = "receiving"
	TransactionTypeIssuing    = "issuing"
	TransactionTypeAdjustment = "adjustment"
)

var (
	MessageSuccessGetIngredients    = "ingredients retrieved successfully"
	MessageSuccessCreateIngredient  = "ingredient created successfully"
	MessageSuccessUpdateIngredient  = "ingredient updated successfully"
	MessageSuccessDeleteIngredient  = "ingredient deleted successfully"
	MessageSuccessGetUnits          = "units retrieved successfully"
	MessageSuccessCreateUnit        = "unit created successfully"
	MessageSuccessUpdateUnit        = "unit updated successfully"
	MessageSuccessDeleteUnit        = "unit deleted successfully"
	MessageSuccessGetTransactions   = "inventory transactions retrieved successfully"
	MessageSuccessCreateTransaction = "inventory transaction created successfully"
	MessageSuccessGetLowStock       = "low stock items retrieved successfully"

	MessageFailedGetIngredients    = "failed to retrieve ingredients"
	MessageFailedCreateIngredient  = "failed to create ingredient"
	MessageFailedUpdateIngredient  = "failed to update ingredient"
	MessageFailedDeleteIngredient  = "failed to delete ingredient"
	MessageFailedGetUnits          = "failed to retrieve units"
	MessageFailedCreateUnit        = "failed to create unit"
	MessageFailedUpdateUnit        = "failed to update unit"
	MessageFailedDeleteUnit        = "failed to delete unit"
	MessageFailedGetTransactions   = "failed to retrieve inventory transactions"
	MessageFailedCreateTransaction = "failed to create inventory transaction"
	MessageFailedGetLowStock       = "failed to retrieve low stock items"

	ErrIngredientNotFound     = errors.New("ingredient not found")
	ErrIngredientInUse        = errors.New("cannot delete ingredient: recipes or transactions still reference it")
	ErrUnitNotFound           = errors.New("unit not found")
	ErrUnitInUse              = errors.New("cannot delete unit: ingredients still reference it")
	ErrTransactionNotFound    = errors.New("inventory transaction not found")
	ErrTransactionNoItems     = errors.New("transaction must contain at least one item")
	ErrInvalidTransactionType = errors.New("invalid transaction type")
	ErrInvalidQuantity        = errors.New("quantity must be positive")
	ErrInvalidExpiryDate      = errors.New("expiry date must be formatted yyyy-mm-dd")
	ErrInsufficientStock      = errors.New("insufficient stock for ingredient")
)

type (
	CreateIngredientRequest struct {
		Name         string  `json:"name" validate:"required,max=100"`
		Description  string  `json:"description" validate:"omitempty"`
		UnitID       string  `json:"unit_id" validate:"required,uuid"`
		CurrentStock float64 `json:"current_stock" validate:"omitempty,gte=0"`
		MinStock     float64 `json:"min_stock" validate:"omitempty,gte=0"`
		UnitCost     float64 `json:"unit_cost" validate:"omitempty,gte=0"`
		Category     string  `json:"category" validate:"omitempty"`
	}

	UpdateIngredientRequest struct {
		Name        string   `json:"name" validate:"omitempty,max=100"`
		Description string   `json:"description" validate:"omitempty"`
		UnitID      string   `json:"unit_id" validate:"omitempty,uuid"`
		MinStock    *float64 `json:"min_stock" validate:"omitempty,gte=0"`
		UnitCost    *float64 `json:"unit_cost" validate:"omitempty,gte=0"`
		Category    string   `json:"category" validate:"omitempty"`
	}

	IngredientResponse struct {
		ID           string    `json:"id"`
		Name         string    `json:"name"`
		Description  string    `json:"description,omitempty"`
		UnitID       string    `json:"unit_id"`
		UnitName     string    `json:"unit_name"`
		CurrentStock float64   `json:"current_stock"`
		MinStock     float64   `json:"min_stock"`
		UnitCost     float64   `json:"unit_cost"`
		Category     string    `json:"category,omitempty"`
		CreatedAt    time.Time `json:"created_at"`
	}

	LowStockItemResponse struct {
		IngredientResponse
		Shortage float64 `json:"shortage"`
	}

	CreateUnitRequest struct {
		Name             string  `json:"name" validate:"required,max=50"`
		Abbreviation     string  `json:"abbreviation" validate:"required,max=10"`
		BaseUnitID       string  `json:"base_unit_id" validate:"omitempty,uuid"`
		ConversionFactor float64 `json:"conversion_factor" validate:"omitempty,gt=0"`
	}

	UpdateUnitRequest struct {
		Name             string   `json:"name" validate:"omitempty,max=50"`
		Abbreviation     string   `json:"abbreviation" validate:"omitempty,max=10"`
		BaseUnitID       string   `json:"base_unit_id" validate:"omitempty,uuid"`
		ConversionFactor *float64 `json:"conversion_factor" validate:"omitempty,gt=0"`
	}

	UnitResponse struct {
		ID               string  `json:"id"`
		Name             string  `json:"name"`
		Abbreviation     string  `json:"abbreviation"`
		BaseUnitID       string  `json:"base_unit_id,omitempty"`
		ConversionFactor float64 `json:"conversion_factor"`
	}

	TransactionItemRequest struct {
		IngredientID string  `json:"ingredient_id" validate:"required,uuid"`
		Quantity     float64 `json:"quantity" validate:"required"`
		UnitCost     float64 `json:"unit_cost" validate:"omitempty,gte=0"`
		ExpiryDate   string  `json:"expiry_date" validate:"omitempty"`
		BatchNumber  string  `json:"batch_number" validate:"omitempty"`
	}

	CreateTransactionRequest struct {
		Type        string                   `json:"type" validate:"required,oneof=receiving issuing adjustment"`
		ReferenceID string                   `json:"reference_id" validate:"omitempty"`
		Notes       string                   `json:"notes" validate:"omitempty"`
		Items       []TransactionItemRequest `json:"items" validate:"required,min=1,dive"`
	}

	TransactionItemResponse struct {
		ID             string     `json:"id"`
		IngredientID   string     `json:"ingredient_id"`
		IngredientName string     `json:"ingredient_name"`
		Quantity       float64    `json:"quantity"`
		UnitCost       float64    `json:"unit_cost"`
		TotalCost      float64    `json:"total_cost"`
		ExpiryDate     *time.Time `json:"expiry_date,omitempty"`
		BatchNumber    string     `json:"batch_number,omitempty"`
	}

	TransactionResponse struct {
		ID          string                    `json:"id"`
		Type        string                    `json:"type"`
		Date        time.Time                 `json:"date"`
		ReferenceID string                    `json:"reference_id,omitempty"`
		Notes       string                    `json:"notes,omitempty"`
		UserID      string                    `json:"user_id"`
		Items       []TransactionItemResponse `json:"items"`
	}
)
