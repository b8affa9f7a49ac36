package report

import (
	"Resto-POS-Backend/domain"
	"Resto-POS-Backend/entities"
	"Resto-POS-Backend/pkg/inventory"
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&entities.User{},
		&entities.MenuCategory{},
		&entities.MenuItem{},
		&entities.Unit{},
		&entities.Ingredient{},
		&entities.Recipe{},
		&entities.RecipeIngredient{},
		&entities.InventoryTransaction{},
		&entities.InventoryTransactionItem{},
		&entities.Table{},
		&entities.Order{},
		&entities.OrderItem{},
		&entities.Payment{},
	))
	return db
}

type reportFixture struct {
	svc    ReportService
	db     *gorm.DB
	alice  *entities.User
	bob    *entities.User
	wat    *entities.MenuItem
	injera *entities.MenuItem
	teff   *entities.Ingredient
	onion  *entities.Ingredient
}

// seeds two paid orders for today plus one open order that reports ignore:
//
//	alice: 2x wat + 1x injera, total 25
//	bob:   1x wat, total 10
func newFixture(t *testing.T) *reportFixture {
	t.Helper()
	db := setupTestDB(t)

	alice := &entities.User{ID: uuid.New(), Email: "alice@resto.test", FullName: "Alice", IsActive: true, Role: domain.RoleStaff}
	bob := &entities.User{ID: uuid.New(), Email: "bob@resto.test", FullName: "Bob", IsActive: true, Role: domain.RoleStaff}
	require.NoError(t, db.Create(alice).Error)
	require.NoError(t, db.Create(bob).Error)

	category := &entities.MenuCategory{ID: uuid.New(), Name: "Mains", IsActive: true}
	require.NoError(t, db.Create(category).Error)

	wat := &entities.MenuItem{ID: uuid.New(), Name: "Doro Wat", Price: 10, Cost: 4, CategoryID: category.ID, IsAvailable: true}
	injera := &entities.MenuItem{ID: uuid.New(), Name: "Injera", Price: 5, Cost: 5, CategoryID: category.ID, IsAvailable: true}
	require.NoError(t, db.Create(wat).Error)
	require.NoError(t, db.Create(injera).Error)

	unit := &entities.Unit{ID: uuid.New(), Name: "kilogram", Abbreviation: "kg", ConversionFactor: 1}
	require.NoError(t, db.Create(unit).Error)

	teff := &entities.Ingredient{ID: uuid.New(), Name: "teff", UnitID: unit.ID, CurrentStock: 50}
	onion := &entities.Ingredient{ID: uuid.New(), Name: "onion", UnitID: unit.ID, CurrentStock: 20}
	require.NoError(t, db.Create(teff).Error)
	require.NoError(t, db.Create(onion).Error)

	// wat consumes 0.5 kg teff per serving
	recipe := &entities.Recipe{ID: uuid.New(), MenuItemID: wat.ID, YieldCount: 1, YieldUnit: "servings"}
	require.NoError(t, db.Create(recipe).Error)
	require.NoError(t, db.Create(&entities.RecipeIngredient{
		ID: uuid.New(), RecipeID: recipe.ID, IngredientID: teff.ID, Quantity: 0.5, Unit: "kg",
	}).Error)

	tableID := uuid.New()

	orderAlice := &entities.Order{
		ID: uuid.New(), TableID: tableID, UserID: alice.ID,
		Status: domain.OrderStatusPaid, PaymentStatus: domain.PaymentStatusPaid,
		Subtotal: 25, Total: 25,
	}
	require.NoError(t, db.Create(orderAlice).Error)
	require.NoError(t, db.Create(&entities.OrderItem{
		ID: uuid.New(), OrderID: orderAlice.ID, MenuItemID: wat.ID, Quantity: 2, UnitPrice: 10,
	}).Error)
	require.NoError(t, db.Create(&entities.OrderItem{
		ID: uuid.New(), OrderID: orderAlice.ID, MenuItemID: injera.ID, Quantity: 1, UnitPrice: 5,
	}).Error)

	orderBob := &entities.Order{
		ID: uuid.New(), TableID: tableID, UserID: bob.ID,
		Status: domain.OrderStatusPaid, PaymentStatus: domain.PaymentStatusPaid,
		Subtotal: 10, Total: 10,
	}
	require.NoError(t, db.Create(orderBob).Error)
	require.NoError(t, db.Create(&entities.OrderItem{
		ID: uuid.New(), OrderID: orderBob.ID, MenuItemID: wat.ID, Quantity: 1, UnitPrice: 10,
	}).Error)

	// open orders stay out of every report
	openOrder := &entities.Order{
		ID: uuid.New(), TableID: tableID, UserID: alice.ID,
		Status: domain.OrderStatusNew, PaymentStatus: domain.PaymentStatusPending,
		Subtotal: 99, Total: 99,
	}
	require.NoError(t, db.Create(openOrder).Error)

	// the kitchen issued 2 kg teff and 1 kg onion
	issue := &entities.InventoryTransaction{
		ID: uuid.New(), Type: domain.TransactionTypeIssuing, Date: time.Now().UTC(), UserID: alice.ID,
	}
	require.NoError(t, db.Create(issue).Error)
	require.NoError(t, db.Create(&entities.InventoryTransactionItem{
		ID: uuid.New(), TransactionID: issue.ID, IngredientID: teff.ID, Quantity: 2,
	}).Error)
	require.NoError(t, db.Create(&entities.InventoryTransactionItem{
		ID: uuid.New(), TransactionID: issue.ID, IngredientID: onion.ID, Quantity: 1,
	}).Error)

	svc := NewReportService(NewReportRepository(db), inventory.NewInventoryRepository(db))
	return &reportFixture{svc: svc, db: db, alice: alice, bob: bob, wat: wat, injera: injera, teff: teff, onion: onion}
}

func TestMenuItemPerformance(t *testing.T) {
	f := newFixture(t)

	rows, err := f.svc.GetMenuItemPerformance(context.Background(), "", "")
	require.NoError(t, err)
	require.Len(t, rows, 2)

	// sorted by quantity sold
	assert.Equal(t, "Doro Wat", rows[0].MenuItemName)
	assert.Equal(t, 3, rows[0].QuantitySold)
	assert.Equal(t, 30.0, rows[0].Revenue)
	assert.Equal(t, 12.0, rows[0].Cost)
	assert.Equal(t, 18.0, rows[0].Profit)
	assert.InDelta(t, 60.0, rows[0].ProfitMargin, 0.01)

	// zero profit never divides by zero
	assert.Equal(t, "Injera", rows[1].MenuItemName)
	assert.InDelta(t, 0.0, rows[1].ProfitMargin, 0.01)
}

func TestDailySales(t *testing.T) {
	f := newFixture(t)

	days, err := f.svc.GetDailySales(context.Background(), "", "")
	require.NoError(t, err)
	require.Len(t, days, 1)

	today := days[0]
	assert.Equal(t, time.Now().UTC().Format("2006-01-02"), today.Date)
	assert.Equal(t, 35.0, today.TotalSales)
	assert.Equal(t, 2, today.TotalOrders)
	assert.InDelta(t, 17.5, today.AvgOrderValue, 0.01)
	require.NotEmpty(t, today.TopSellingItems)
	assert.Equal(t, "Doro Wat", today.TopSellingItems[0].MenuItemName)
}

func TestEmployeePerformance(t *testing.T) {
	f := newFixture(t)

	rows, err := f.svc.GetEmployeePerformance(context.Background(), "", "")
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, "Alice", rows[0].EmployeeName)
	assert.Equal(t, 1, rows[0].TotalOrdersHandled)
	assert.Equal(t, 25.0, rows[0].TotalSales)
	assert.InDelta(t, 25.0, rows[0].AvgOrderValue, 0.01)

	assert.Equal(t, "Bob", rows[1].EmployeeName)
	assert.Equal(t, 10.0, rows[1].TotalSales)
}

func TestInventoryVariance(t *testing.T) {
	f := newFixture(t)

	rows, err := f.svc.GetInventoryVariance(context.Background(), "", "")
	require.NoError(t, err)
	require.Len(t, rows, 2)

	byName := map[string]domain.InventoryVarianceReport{}
	for _, row := range rows {
		byName[row.IngredientName] = row
	}

	teff := byName["teff"]
	assert.InDelta(t, 1.5, teff.TheoreticalUsage, 0.001) // 3 servings * 0.5 kg
	assert.InDelta(t, 2.0, teff.ActualUsage, 0.001)
	assert.InDelta(t, 0.5, teff.Variance, 0.001)
	assert.InDelta(t, 33.33, teff.VariancePercentage, 0.1)

	// no recipe references onion: zero theoretical usage reports zero percent
	onion := byName["onion"]
	assert.InDelta(t, 0.0, onion.TheoreticalUsage, 0.001)
	assert.InDelta(t, 1.0, onion.ActualUsage, 0.001)
	assert.InDelta(t, 0.0, onion.VariancePercentage, 0.001)
}

func TestDashboard(t *testing.T) {
	f := newFixture(t)

	// push teff below its minimum so the dashboard flags it
	require.NoError(t, f.db.Model(&entities.Ingredient{}).
		Where("id = ?", f.teff.ID).
		Updates(map[string]interface{}{"current_stock": 1.0, "min_stock": 4.0}).Error)

	summary, err := f.svc.GetDashboard(context.Background(), "", "")
	require.NoError(t, err)

	assert.Equal(t, 35.0, summary.TotalSales)
	assert.Equal(t, 2, summary.TotalOrders)
	assert.InDelta(t, 17.5, summary.AvgOrderValue, 0.01)
	assert.InDelta(t, 51.43, summary.ProfitMargin, 0.1)
	require.NotEmpty(t, summary.TopSellingItems)
	assert.Equal(t, "Doro Wat", summary.TopSellingItems[0].MenuItemName)

	require.Len(t, summary.LowStockItems, 1)
	assert.Equal(t, "teff", summary.LowStockItems[0].Name)
	assert.InDelta(t, 3.0, summary.LowStockItems[0].Shortage, 0.001)
}

func TestEmptyRangeYieldsZeros(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	// a valid window with no orders produces zeros, never a division error
	summary, err := f.svc.GetDashboard(ctx, "2001-01-01", "2001-01-31")
	require.NoError(t, err)
	assert.Equal(t, 0.0, summary.TotalSales)
	assert.Equal(t, 0, summary.TotalOrders)
	assert.Equal(t, 0.0, summary.AvgOrderValue)
	assert.Equal(t, 0.0, summary.ProfitMargin)
	assert.Empty(t, summary.TopSellingItems)

	days, err := f.svc.GetDailySales(ctx, "2001-01-01", "2001-01-31")
	require.NoError(t, err)
	assert.Empty(t, days)

	items, err := f.svc.GetMenuItemPerformance(ctx, "2001-01-01", "2001-01-31")
	require.NoError(t, err)
	assert.Empty(t, items)

	employees, err := f.svc.GetEmployeePerformance(ctx, "2001-01-01", "2001-01-31")
	require.NoError(t, err)
	assert.Empty(t, employees)

	variance, err := f.svc.GetInventoryVariance(ctx, "2001-01-01", "2001-01-31")
	require.NoError(t, err)
	assert.Empty(t, variance)
}

func TestInvalidDateRange(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.GetDailySales(ctx, "2026-02-10", "2026-02-01")
	assert.ErrorIs(t, err, domain.ErrInvalidDateRange)

	_, err = f.svc.GetMenuItemPerformance(ctx, "not-a-date", "")
	assert.ErrorIs(t, err, domain.ErrInvalidDateRange)
}
