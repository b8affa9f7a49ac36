package inventory

import (
	"Resto-POS-Backend/domain"
	"Resto-POS-Backend/entities"
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func migrateAll(t *testing.T, db *gorm.DB) {
	t.Helper()
	require.NoError(t, db.AutoMigrate(
		&entities.User{},
		&entities.Unit{},
		&entities.Ingredient{},
		&entities.Recipe{},
		&entities.RecipeIngredient{},
		&entities.InventoryTransaction{},
		&entities.InventoryTransactionItem{},
	))
}

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	migrateAll(t, db)
	return db
}

func seedIngredient(t *testing.T, svc InventoryService, name string, stock float64) (domain.IngredientResponse, domain.UnitResponse) {
	t.Helper()
	ctx := context.Background()

	unit, err := svc.CreateUnit(ctx, domain.CreateUnitRequest{
		Name:         "kilogram " + name,
		Abbreviation: "kg",
	})
	require.NoError(t, err)

	ingredient, err := svc.CreateIngredient(ctx, domain.CreateIngredientRequest{
		Name:         name,
		UnitID:       unit.ID,
		CurrentStock: stock,
		MinStock:     1,
		UnitCost:     2.5,
	})
	require.NoError(t, err)
	return ingredient, unit
}

func TestReceivingIncreasesStock(t *testing.T) {
	svc := NewInventoryService(NewInventoryRepository(setupTestDB(t)))
	ctx := context.Background()

	ingredient, _ := seedIngredient(t, svc, "flour", 10)

	res, err := svc.CreateTransaction(ctx, domain.CreateTransactionRequest{
		Type: domain.TransactionTypeReceiving,
		Items: []domain.TransactionItemRequest{
			{IngredientID: ingredient.ID, Quantity: 5, UnitCost: 3},
		},
	}, uuid.NewString())
	require.NoError(t, err)
	require.Len(t, res.Items, 1)
	assert.Equal(t, 15.0, res.Items[0].TotalCost)

	after, err := svc.GetIngredientByID(ctx, ingredient.ID)
	require.NoError(t, err)
	assert.Equal(t, 15.0, after.CurrentStock)
}

func TestIssuingBeyondStockRollsBack(t *testing.T) {
	svc := NewInventoryService(NewInventoryRepository(setupTestDB(t)))
	ctx := context.Background()

	flour, _ := seedIngredient(t, svc, "flour", 10)
	sugar, _ := seedIngredient(t, svc, "sugar", 2)

	// the first line fits, the second does not: nothing may move
	_, err := svc.CreateTransaction(ctx, domain.CreateTransactionRequest{
		Type: domain.TransactionTypeIssuing,
		Items: []domain.TransactionItemRequest{
			{IngredientID: flour.ID, Quantity: 4},
			{IngredientID: sugar.ID, Quantity: 5},
		},
	}, uuid.NewString())
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	flourAfter, err := svc.GetIngredientByID(ctx, flour.ID)
	require.NoError(t, err)
	assert.Equal(t, 10.0, flourAfter.CurrentStock)

	sugarAfter, err := svc.GetIngredientByID(ctx, sugar.ID)
	require.NoError(t, err)
	assert.Equal(t, 2.0, sugarAfter.CurrentStock)

	transactions, count, err := svc.GetTransactions(ctx, "", 1, 10)
	require.NoError(t, err)
	assert.Empty(t, transactions)
	assert.Zero(t, count)
}

func TestAdjustmentCarriesSignedDelta(t *testing.T) {
	svc := NewInventoryService(NewInventoryRepository(setupTestDB(t)))
	ctx := context.Background()

	flour, _ := seedIngredient(t, svc, "flour", 10)

	_, err := svc.CreateTransaction(ctx, domain.CreateTransactionRequest{
		Type: domain.TransactionTypeAdjustment,
		Items: []domain.TransactionItemRequest{
			{IngredientID: flour.ID, Quantity: -3},
		},
	}, uuid.NewString())
	require.NoError(t, err)

	after, err := svc.GetIngredientByID(ctx, flour.ID)
	require.NoError(t, err)
	assert.Equal(t, 7.0, after.CurrentStock)

	// an adjustment below zero is still rejected
	_, err = svc.CreateTransaction(ctx, domain.CreateTransactionRequest{
		Type: domain.TransactionTypeAdjustment,
		Items: []domain.TransactionItemRequest{
			{IngredientID: flour.ID, Quantity: -8},
		},
	}, uuid.NewString())
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
}

func TestTransactionQuantityValidation(t *testing.T) {
	svc := NewInventoryService(NewInventoryRepository(setupTestDB(t)))
	ctx := context.Background()

	flour, _ := seedIngredient(t, svc, "flour", 10)

	_, err := svc.CreateTransaction(ctx, domain.CreateTransactionRequest{
		Type: domain.TransactionTypeIssuing,
		Items: []domain.TransactionItemRequest{
			{IngredientID: flour.ID, Quantity: -2},
		},
	}, uuid.NewString())
	assert.ErrorIs(t, err, domain.ErrInvalidQuantity)

	_, err = svc.CreateTransaction(ctx, domain.CreateTransactionRequest{
		Type: domain.TransactionTypeAdjustment,
		Items: []domain.TransactionItemRequest{
			{IngredientID: flour.ID, Quantity: 0},
		},
	}, uuid.NewString())
	assert.ErrorIs(t, err, domain.ErrInvalidQuantity)

	_, err = svc.CreateTransaction(ctx, domain.CreateTransactionRequest{
		Type:  domain.TransactionTypeReceiving,
		Items: []domain.TransactionItemRequest{},
	}, uuid.NewString())
	assert.ErrorIs(t, err, domain.ErrTransactionNoItems)
}

func TestDeleteGuards(t *testing.T) {
	db := setupTestDB(t)
	svc := NewInventoryService(NewInventoryRepository(db))
	ctx := context.Background()

	flour, unit := seedIngredient(t, svc, "flour", 10)

	// the unit is referenced by the ingredient
	err := svc.DeleteUnit(ctx, unit.ID)
	assert.ErrorIs(t, err, domain.ErrUnitInUse)

	// reference the ingredient from a transaction
	_, err = svc.CreateTransaction(ctx, domain.CreateTransactionRequest{
		Type: domain.TransactionTypeReceiving,
		Items: []domain.TransactionItemRequest{
			{IngredientID: flour.ID, Quantity: 1},
		},
	}, uuid.NewString())
	require.NoError(t, err)

	err = svc.DeleteIngredient(ctx, flour.ID)
	assert.ErrorIs(t, err, domain.ErrIngredientInUse)

	// unreferenced rows delete cleanly
	basil, _ := seedIngredient(t, svc, "basil", 3)
	require.NoError(t, svc.DeleteIngredient(ctx, basil.ID))
}

func TestLowStockFilterPaginatesCorrectly(t *testing.T) {
	db := setupTestDB(t)
	svc := NewInventoryService(NewInventoryRepository(db))
	ctx := context.Background()

	flour, _ := seedIngredient(t, svc, "flour", 10)
	sugar, _ := seedIngredient(t, svc, "sugar", 10)
	seedIngredient(t, svc, "salt", 10)

	for _, id := range []string{flour.ID, sugar.ID} {
		require.NoError(t, db.Model(&entities.Ingredient{}).
			Where("id = ?", id).
			Updates(map[string]interface{}{"current_stock": 1.0, "min_stock": 5.0}).Error)
	}

	// the filter is applied before pagination, so the total matches the
	// filtered rows and a one-row page still reaches every low item
	lowOnly := true
	page1, count, err := svc.GetIngredients(ctx, "", &lowOnly, 1, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
	require.Len(t, page1, 1)

	page2, _, err := svc.GetIngredients(ctx, "", &lowOnly, 2, 1)
	require.NoError(t, err)
	require.Len(t, page2, 1)
	assert.NotEqual(t, page1[0].ID, page2[0].ID)

	healthy := false
	rest, count, err := svc.GetIngredients(ctx, "", &healthy, 1, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
	require.Len(t, rest, 1)
	assert.Equal(t, "salt", rest[0].Name)
}

func TestTransactionExpiryDateValidation(t *testing.T) {
	svc := NewInventoryService(NewInventoryRepository(setupTestDB(t)))
	ctx := context.Background()

	flour, _ := seedIngredient(t, svc, "flour", 10)

	_, err := svc.CreateTransaction(ctx, domain.CreateTransactionRequest{
		Type: domain.TransactionTypeReceiving,
		Items: []domain.TransactionItemRequest{
			{IngredientID: flour.ID, Quantity: 1, ExpiryDate: "31-12-2026"},
		},
	}, uuid.NewString())
	assert.ErrorIs(t, err, domain.ErrInvalidExpiryDate)
}

func TestLowStockShortage(t *testing.T) {
	db := setupTestDB(t)
	svc := NewInventoryService(NewInventoryRepository(db))
	ctx := context.Background()

	flour, _ := seedIngredient(t, svc, "flour", 10)

	require.NoError(t, db.Model(&entities.Ingredient{}).
		Where("id = ?", flour.ID).
		Updates(map[string]interface{}{"current_stock": 2.0, "min_stock": 5.0}).Error)

	items, err := svc.GetLowStockItems(ctx)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, flour.ID, items[0].ID)
	assert.Equal(t, 3.0, items[0].Shortage)
}

// Concurrent issuings against the same ingredient must never drive the
// stock negative. Uses a file-backed database so writers genuinely contend.
func TestConcurrentIssuingNeverOversells(t *testing.T) {
	path := filepath.Join(t.TempDir(), "inventory.db")
	dsn := fmt.Sprintf("file:%s?_busy_timeout=5000&_txlock=immediate", path)

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	migrateAll(t, db)

	svc := NewInventoryService(NewInventoryRepository(db))
	ctx := context.Background()

	flour, _ := seedIngredient(t, svc, "flour", 5)

	const workers = 10
	var wg sync.WaitGroup
	errs := make([]error, workers)

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = svc.CreateTransaction(ctx, domain.CreateTransactionRequest{
				Type: domain.TransactionTypeIssuing,
				Items: []domain.TransactionItemRequest{
					{IngredientID: flour.ID, Quantity: 1},
				},
			}, uuid.NewString())
		}(i)
	}
	wg.Wait()

	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
		}
	}

	after, err := svc.GetIngredientByID(ctx, flour.ID)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, after.CurrentStock, 0.0)
	assert.Equal(t, 5.0-float64(succeeded), after.CurrentStock)
	assert.LessOrEqual(t, succeeded, 5)
}
