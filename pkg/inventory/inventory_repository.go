package inventory

import (
	"Resto-POS-Backend/domain"
	"Resto-POS-Backend/entities"
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type (
	InventoryRepository interface {
		// Ingredients
		CreateIngredient(ctx context.Context, ingredient *entities.Ingredient) error
		GetIngredientByID(ctx context.Context, id string) (*entities.Ingredient, error)
		GetIngredients(ctx context.Context, category string, lowStock *bool, page, limit int) ([]*entities.Ingredient, int64, error)
		GetLowStockIngredients(ctx context.Context) ([]*entities.Ingredient, error)
		UpdateIngredient(ctx context.Context, ingredient *entities.Ingredient) error
		DeleteIngredient(ctx context.Context, id string) error
		CountIngredientReferences(ctx context.Context, id string) (int64, error)

		// Units
		CreateUnit(ctx context.Context, unit *entities.Unit) error
		GetUnitByID(ctx context.Context, id string) (*entities.Unit, error)
		GetUnits(ctx context.Context) ([]*entities.Unit, error)
		UpdateUnit(ctx context.Context, unit *entities.Unit) error
		DeleteUnit(ctx context.Context, id string) error
		CountIngredientsUsingUnit(ctx context.Context, unitID string) (int64, error)

		// Transactions
		CreateTransaction(ctx context.Context, transaction *entities.InventoryTransaction) error
		GetTransactionByID(ctx context.Context, id string) (*entities.InventoryTransaction, error)
		GetTransactions(ctx context.Context, transactionType string, page, limit int) ([]*entities.InventoryTransaction, int64, error)
	}

	inventoryRepository struct {
		db *gorm.DB
	}
)

func NewInventoryRepository(db *gorm.DB) InventoryRepository {
	return &inventoryRepository{db: db}
}

// lockForUpdate takes a row lock on dialects that support it. Postgres gives
// us FOR UPDATE; the sqlite used in tests serializes writers on its own.
func lockForUpdate(tx *gorm.DB) *gorm.DB {
	if tx.Dialector.Name() == "postgres" {
		return tx.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	return tx
}

func (r *inventoryRepository) CreateIngredient(ctx context.Context, ingredient *entities.Ingredient) error {
	return r.db.WithContext(ctx).Create(ingredient).Error
}

func (r *inventoryRepository) GetIngredientByID(ctx context.Context, id string) (*entities.Ingredient, error) {
	var ingredient entities.Ingredient
	if err := r.db.WithContext(ctx).
		Preload("Unit").
		Where("id = ?", id).
		First(&ingredient).Error; err != nil {
		return nil, err
	}
	return &ingredient, nil
}

func (r *inventoryRepository) GetIngredients(ctx context.Context, category string, lowStock *bool, page, limit int) ([]*entities.Ingredient, int64, error) {
	var ingredients []*entities.Ingredient
	var count int64

	offset := (page - 1) * limit

	query := r.db.WithContext(ctx).Model(&entities.Ingredient{})
	if category != "" {
		query = query.Where("category = ?", category)
	}
	// filtered before counting so pagination and totals stay consistent
	if lowStock != nil {
		if *lowStock {
			query = query.Where("current_stock <= min_stock")
		} else {
			query = query.Where("current_stock > min_stock")
		}
	}

	if err := query.Count(&count).Error; err != nil {
		return nil, 0, err
	}

	if err := query.
		Preload("Unit").
		Offset(offset).
		Limit(limit).
		Order("name asc").
		Find(&ingredients).Error; err != nil {
		return nil, 0, err
	}

	return ingredients, count, nil
}

func (r *inventoryRepository) GetLowStockIngredients(ctx context.Context) ([]*entities.Ingredient, error) {
	var ingredients []*entities.Ingredient
	if err := r.db.WithContext(ctx).
		Preload("Unit").
		Where("current_stock <= min_stock").
		Order("name asc").
		Find(&ingredients).Error; err != nil {
		return nil, err
	}
	return ingredients, nil
}

func (r *inventoryRepository) UpdateIngredient(ctx context.Context, ingredient *entities.Ingredient) error {
	return r.db.WithContext(ctx).Save(ingredient).Error
}

func (r *inventoryRepository) DeleteIngredient(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&entities.Ingredient{}).Error
}

func (r *inventoryRepository) CountIngredientReferences(ctx context.Context, id string) (int64, error) {
	var recipeLines, transactionItems int64

	if err := r.db.WithContext(ctx).Model(&entities.RecipeIngredient{}).
		Where("ingredient_id = ?", id).
		Count(&recipeLines).Error; err != nil {
		return 0, err
	}
	if err := r.db.WithContext(ctx).Model(&entities.InventoryTransactionItem{}).
		Where("ingredient_id = ?", id).
		Count(&transactionItems).Error; err != nil {
		return 0, err
	}

	return recipeLines + transactionItems, nil
}

func (r *inventoryRepository) CreateUnit(ctx context.Context, unit *entities.Unit) error {
	return r.db.WithContext(ctx).Create(unit).Error
}

func (r *inventoryRepository) GetUnitByID(ctx context.Context, id string) (*entities.Unit, error) {
	var unit entities.Unit
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&unit).Error; err != nil {
		return nil, err
	}
	return &unit, nil
}

func (r *inventoryRepository) GetUnits(ctx context.Context) ([]*entities.Unit, error) {
	var units []*entities.Unit
	if err := r.db.WithContext(ctx).Order("name asc").Find(&units).Error; err != nil {
		return nil, err
	}
	return units, nil
}

func (r *inventoryRepository) UpdateUnit(ctx context.Context, unit *entities.Unit) error {
	return r.db.WithContext(ctx).Save(unit).Error
}

func (r *inventoryRepository) DeleteUnit(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&entities.Unit{}).Error
}

func (r *inventoryRepository) CountIngredientsUsingUnit(ctx context.Context, unitID string) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&entities.Ingredient{}).
		Where("unit_id = ?", unitID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// CreateTransaction persists the transaction header, all of its items and
// every stock delta as one database transaction. Any failure, including an
// issuing that would drive stock negative, rolls the whole unit of work back.
func (r *inventoryRepository) CreateTransaction(ctx context.Context, transaction *entities.InventoryTransaction) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		header := entities.InventoryTransaction{
			ID:          transaction.ID,
			Type:        transaction.Type,
			Date:        transaction.Date,
			ReferenceID: transaction.ReferenceID,
			Notes:       transaction.Notes,
			UserID:      transaction.UserID,
		}
		if err := tx.Create(&header).Error; err != nil {
			return err
		}

		for _, item := range transaction.Items {
			item.TransactionID = transaction.ID
			if err := tx.Create(item).Error; err != nil {
				return err
			}

			var ingredient entities.Ingredient
			if err := lockForUpdate(tx).
				Where("id = ?", item.IngredientID).
				First(&ingredient).Error; err != nil {
				return err
			}

			newStock := ingredient.CurrentStock
			switch transaction.Type {
			case domain.TransactionTypeReceiving:
				newStock += item.Quantity
			case domain.TransactionTypeIssuing:
				newStock -= item.Quantity
			case domain.TransactionTypeAdjustment:
				// adjustments carry a signed quantity
				newStock += item.Quantity
			default:
				return domain.ErrInvalidTransactionType
			}

			if newStock < 0 {
				return domain.ErrInsufficientStock
			}

			if err := tx.Model(&entities.Ingredient{}).
				Where("id = ?", item.IngredientID).
				Update("current_stock", newStock).Error; err != nil {
				return err
			}
		}

		return nil
	})
}

func (r *inventoryRepository) GetTransactionByID(ctx context.Context, id string) (*entities.InventoryTransaction, error) {
	var transaction entities.InventoryTransaction
	if err := r.db.WithContext(ctx).
		Preload("Items").
		Preload("Items.Ingredient").
		Where("id = ?", id).
		First(&transaction).Error; err != nil {
		return nil, err
	}
	return &transaction, nil
}

func (r *inventoryRepository) GetTransactions(ctx context.Context, transactionType string, page, limit int) ([]*entities.InventoryTransaction, int64, error) {
	var transactions []*entities.InventoryTransaction
	var count int64

	offset := (page - 1) * limit

	query := r.db.WithContext(ctx).Model(&entities.InventoryTransaction{})
	if transactionType != "" {
		query = query.Where("type = ?", transactionType)
	}

	if err := query.Count(&count).Error; err != nil {
		return nil, 0, err
	}

	if err := query.
		Preload("Items").
		Preload("Items.Ingredient").
		Offset(offset).
		Limit(limit).
		Order("date desc").
		Find(&transactions).Error; err != nil {
		return nil, 0, err
	}

	return transactions, count, nil
}
