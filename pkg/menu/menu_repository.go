package menu

import (
	"Resto-POS-Backend/entities"
	"context"
	"errors"

	"gorm.io/gorm"
)

type (
	MenuRepository interface {
		// Categories
		CreateCategory(ctx context.Context, category *entities.MenuCategory) error
		GetCategoryByID(ctx context.Context, id string) (*entities.MenuCategory, error)
		GetCategories(ctx context.Context) ([]*entities.MenuCategory, error)
		UpdateCategory(ctx context.Context, category *entities.MenuCategory) error
		DeleteCategory(ctx context.Context, id string) error
		CountItemsInCategory(ctx context.Context, categoryID string) (int64, error)

		// Menu items
		CreateMenuItem(ctx context.Context, item *entities.MenuItem) error
		GetMenuItemByID(ctx context.Context, id string) (*entities.MenuItem, error)
		GetMenuItems(ctx context.Context, categoryID string, available *bool, page, limit int) ([]*entities.MenuItem, int64, error)
		UpdateMenuItem(ctx context.Context, item *entities.MenuItem) error
		DeleteMenuItem(ctx context.Context, id string) error

		// Recipes
		GetRecipeByMenuItem(ctx context.Context, menuItemID string) (*entities.Recipe, error)
		ReplaceRecipe(ctx context.Context, recipe *entities.Recipe) error
	}

	menuRepository struct {
		db *gorm.DB
	}
)

func NewMenuRepository(db *gorm.DB) MenuRepository {
	return &menuRepository{db: db}
}

func (r *menuRepository) CreateCategory(ctx context.Context, category *entities.MenuCategory) error {
	return r.db.WithContext(ctx).Create(category).Error
}

func (r *menuRepository) GetCategoryByID(ctx context.Context, id string) (*entities.MenuCategory, error) {
	var category entities.MenuCategory
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&category).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

func (r *menuRepository) GetCategories(ctx context.Context) ([]*entities.MenuCategory, error) {
	var categories []*entities.MenuCategory
	if err := r.db.WithContext(ctx).
		Order("display_order asc").
		Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

func (r *menuRepository) UpdateCategory(ctx context.Context, category *entities.MenuCategory) error {
	return r.db.WithContext(ctx).Save(category).Error
}

func (r *menuRepository) DeleteCategory(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&entities.MenuCategory{}).Error
}

func (r *menuRepository) CountItemsInCategory(ctx context.Context, categoryID string) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&entities.MenuItem{}).
		Where("category_id = ?", categoryID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *menuRepository) CreateMenuItem(ctx context.Context, item *entities.MenuItem) error {
	return r.db.WithContext(ctx).Create(item).Error
}

func (r *menuRepository) GetMenuItemByID(ctx context.Context, id string) (*entities.MenuItem, error) {
	var item entities.MenuItem
	if err := r.db.WithContext(ctx).
		Preload("Category").
		Where("id = ?", id).
		First(&item).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *menuRepository) GetMenuItems(ctx context.Context, categoryID string, available *bool, page, limit int) ([]*entities.MenuItem, int64, error) {
	var items []*entities.MenuItem
	var count int64

	offset := (page - 1) * limit

	query := r.db.WithContext(ctx).Model(&entities.MenuItem{})
	if categoryID != "" {
		query = query.Where("category_id = ?", categoryID)
	}
	if available != nil {
		query = query.Where("is_available = ?", *available)
	}

	if err := query.Count(&count).Error; err != nil {
		return nil, 0, err
	}

	if err := query.
		Preload("Category").
		Offset(offset).
		Limit(limit).
		Order("name asc").
		Find(&items).Error; err != nil {
		return nil, 0, err
	}

	return items, count, nil
}

func (r *menuRepository) UpdateMenuItem(ctx context.Context, item *entities.MenuItem) error {
	return r.db.WithContext(ctx).Save(item).Error
}

func (r *menuRepository) DeleteMenuItem(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&entities.MenuItem{}).Error
}

func (r *menuRepository) GetRecipeByMenuItem(ctx context.Context, menuItemID string) (*entities.Recipe, error) {
	var recipe entities.Recipe
	if err := r.db.WithContext(ctx).
		Preload("Ingredients").
		Preload("Ingredients.Ingredient").
		Where("menu_item_id = ?", menuItemID).
		First(&recipe).Error; err != nil {
		return nil, err
	}
	return &recipe, nil
}

// ReplaceRecipe upserts the recipe header and swaps all ingredient lines in
// one database transaction. Replace-on-update keeps the lines strictly owned
// by the recipe: no partial merges.
func (r *menuRepository) ReplaceRecipe(ctx context.Context, recipe *entities.Recipe) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing entities.Recipe
		err := tx.Where("menu_item_id = ?", recipe.MenuItemID).First(&existing).Error
		if err == nil {
			recipe.ID = existing.ID
			if err := tx.Where("recipe_id = ?", existing.ID).
				Delete(&entities.RecipeIngredient{}).Error; err != nil {
				return err
			}
			if err := tx.Model(&entities.Recipe{}).
				Where("id = ?", existing.ID).
				Updates(map[string]interface{}{
					"instructions": recipe.Instructions,
					"yield_count":  recipe.YieldCount,
					"yield_unit":   recipe.YieldUnit,
				}).Error; err != nil {
				return err
			}
		} else if errors.Is(err, gorm.ErrRecordNotFound) {
			header := entities.Recipe{
				ID:           recipe.ID,
				MenuItemID:   recipe.MenuItemID,
				Instructions: recipe.Instructions,
				YieldCount:   recipe.YieldCount,
				YieldUnit:    recipe.YieldUnit,
			}
			if err := tx.Create(&header).Error; err != nil {
				return err
			}
		} else {
			return err
		}

		for _, ingredient := range recipe.Ingredients {
			ingredient.RecipeID = recipe.ID
			if err := tx.Create(ingredient).Error; err != nil {
				return err
			}
		}
		return nil
	})
}
