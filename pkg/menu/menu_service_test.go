package menu

import (
	"Resto-POS-Backend/domain"
	"Resto-POS-Backend/entities"
	"Resto-POS-Backend/pkg/inventory"
	"context"
	"mime/multipart"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type fakeS3 struct {
	deleted []string
}

func (f *fakeS3) UploadFile(file *multipart.FileHeader, objectKey string) (string, error) {
	return "https://bucket.test/" + objectKey, nil
}

func (f *fakeS3) DeleteFile(objectKey string) error {
	f.deleted = append(f.deleted, objectKey)
	return nil
}

func (f *fakeS3) GetObjectKeyFromLink(link string) string {
	return strings.TrimPrefix(link, "https://bucket.test/")
}

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&entities.MenuCategory{},
		&entities.MenuItem{},
		&entities.Unit{},
		&entities.Ingredient{},
		&entities.Recipe{},
		&entities.RecipeIngredient{},
		&entities.InventoryTransaction{},
		&entities.InventoryTransactionItem{},
	))
	return db
}

func newTestService(t *testing.T) (MenuService, inventory.InventoryService) {
	t.Helper()
	db := setupTestDB(t)
	inventoryRepository := inventory.NewInventoryRepository(db)
	menuService := NewMenuService(NewMenuRepository(db), inventoryRepository, &fakeS3{})
	return menuService, inventory.NewInventoryService(inventoryRepository)
}

func seedCategory(t *testing.T, svc MenuService) domain.CategoryResponse {
	t.Helper()
	category, err := svc.CreateCategory(context.Background(), domain.CreateCategoryRequest{
		Name:         "Mains",
		DisplayOrder: 1,
	})
	require.NoError(t, err)
	return category
}

func seedMenuItem(t *testing.T, svc MenuService, categoryID string) domain.MenuItemResponse {
	t.Helper()
	item, err := svc.CreateMenuItem(context.Background(), domain.CreateMenuItemRequest{
		Name:       "Doro Wat",
		Price:      12.5,
		Cost:       4.0,
		CategoryID: categoryID,
	})
	require.NoError(t, err)
	return item
}

func TestCategoryLifecycle(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	category := seedCategory(t, svc)
	assert.True(t, category.IsActive)

	order := 3
	updated, err := svc.UpdateCategory(ctx, category.ID, domain.UpdateCategoryRequest{
		Name:         "Main Dishes",
		DisplayOrder: &order,
	})
	require.NoError(t, err)
	assert.Equal(t, "Main Dishes", updated.Name)
	assert.Equal(t, 3, updated.DisplayOrder)

	require.NoError(t, svc.DeleteCategory(ctx, category.ID))
	_, err = svc.GetCategoryByID(ctx, category.ID)
	assert.ErrorIs(t, err, domain.ErrCategoryNotFound)
}

func TestDeleteCategoryWithItemsBlocked(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	category := seedCategory(t, svc)
	seedMenuItem(t, svc, category.ID)

	err := svc.DeleteCategory(ctx, category.ID)
	assert.ErrorIs(t, err, domain.ErrCategoryInUse)
}

func TestMenuItemCarriesCategoryName(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	category := seedCategory(t, svc)
	item := seedMenuItem(t, svc, category.ID)
	assert.Equal(t, "Mains", item.CategoryName)

	fetched, err := svc.GetMenuItemByID(ctx, item.ID)
	require.NoError(t, err)
	assert.Equal(t, "Mains", fetched.CategoryName)
	assert.Equal(t, 12.5, fetched.Price)
}

func TestMenuItemFilters(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	category := seedCategory(t, svc)
	item := seedMenuItem(t, svc, category.ID)

	unavailable := false
	_, err := svc.UpdateMenuItem(ctx, item.ID, domain.UpdateMenuItemRequest{
		IsAvailable: &unavailable,
	})
	require.NoError(t, err)

	available := true
	items, count, err := svc.GetMenuItems(ctx, category.ID, &available, 1, 10)
	require.NoError(t, err)
	assert.Empty(t, items)
	assert.Zero(t, count)

	items, count, err = svc.GetMenuItems(ctx, category.ID, &unavailable, 1, 10)
	require.NoError(t, err)
	assert.Len(t, items, 1)
	assert.Equal(t, int64(1), count)
}

func TestUpdateRecipeReplacesLines(t *testing.T) {
	svc, inventoryService := newTestService(t)
	ctx := context.Background()

	category := seedCategory(t, svc)
	item := seedMenuItem(t, svc, category.ID)

	unit, err := inventoryService.CreateUnit(ctx, domain.CreateUnitRequest{
		Name:         "kilogram",
		Abbreviation: "kg",
	})
	require.NoError(t, err)

	chicken, err := inventoryService.CreateIngredient(ctx, domain.CreateIngredientRequest{
		Name: "chicken", UnitID: unit.ID, CurrentStock: 20,
	})
	require.NoError(t, err)
	berbere, err := inventoryService.CreateIngredient(ctx, domain.CreateIngredientRequest{
		Name: "berbere", UnitID: unit.ID, CurrentStock: 5,
	})
	require.NoError(t, err)

	first, err := svc.UpdateRecipe(ctx, item.ID, domain.UpdateRecipeRequest{
		Ingredients: []domain.RecipeIngredientRequest{
			{IngredientID: chicken.ID, Quantity: 0.4, Unit: "kg"},
			{IngredientID: berbere.ID, Quantity: 0.05, Unit: "kg"},
		},
	})
	require.NoError(t, err)
	assert.Len(t, first.Ingredients, 2)
	assert.Equal(t, 1, first.YieldCount)
	assert.Equal(t, "servings", first.YieldUnit)

	// a second update replaces the lines wholesale and keeps the header row
	second, err := svc.UpdateRecipe(ctx, item.ID, domain.UpdateRecipeRequest{
		Instructions: "slow cook",
		Ingredients: []domain.RecipeIngredientRequest{
			{IngredientID: chicken.ID, Quantity: 0.5, Unit: "kg"},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	require.Len(t, second.Ingredients, 1)
	assert.Equal(t, 0.5, second.Ingredients[0].Quantity)
	assert.Equal(t, "chicken", second.Ingredients[0].IngredientName)
}

func TestUpdateRecipeUnknownIngredient(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	category := seedCategory(t, svc)
	item := seedMenuItem(t, svc, category.ID)

	_, err := svc.UpdateRecipe(ctx, item.ID, domain.UpdateRecipeRequest{
		Ingredients: []domain.RecipeIngredientRequest{
			{IngredientID: "11111111-2222-3333-4444-555555555555", Quantity: 1, Unit: "kg"},
		},
	})
	assert.ErrorIs(t, err, domain.ErrIngredientNotFound)
}

func TestGetRecipeMissing(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	category := seedCategory(t, svc)
	item := seedMenuItem(t, svc, category.ID)

	_, err := svc.GetRecipe(ctx, item.ID)
	assert.ErrorIs(t, err, domain.ErrRecipeNotFound)

	_, err = svc.GetRecipe(ctx, "11111111-2222-3333-4444-555555555555")
	assert.ErrorIs(t, err, domain.ErrMenuItemNotFound)
}
