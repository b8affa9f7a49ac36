package domain

import (
	"errors"
	"mime/multipart"
	"time"
)

var (
	MessageSuccessGetCategories   = "menu categories retrieved successfully"
	MessageSuccessCreateCategory  = "menu category created successfully"
	MessageSuccessUpdateCategory  = "menu category updated successfully"
	MessageSuccessDeleteCategory  = "menu category deleted successfully"
	MessageSuccessGetMenuItems    = "menu items retrieved successfully"
	MessageSuccessCreateMenuItem  = "menu item created successfully"
	MessageSuccessUpdateMenuItem  = "menu item updated successfully"
	MessageSuccessDeleteMenuItem  = "menu item deleted successfully"
	MessageSuccessUploadItemImage = "menu item image uploaded successfully"
	MessageSuccessGetRecipe       = "recipe retrieved successfully"
	MessageSuccessUpdateRecipe    = "recipe updated successfully"

	MessageFailedGetCategories   = "failed to retrieve menu categories"
	MessageFailedCreateCategory  = "failed to create menu category"
	MessageFailedUpdateCategory  = "failed to update menu category"
	MessageFailedDeleteCategory  = "failed to delete menu category"
	MessageFailedGetMenuItems    = "failed to retrieve menu items"
	MessageFailedCreateMenuItem  = "failed to create menu item"
	MessageFailedUpdateMenuItem  = "failed to update menu item"
	MessageFailedDeleteMenuItem  = "failed to delete menu item"
	MessageFailedUploadItemImage = "failed to upload menu item image"
	MessageFailedGetRecipe       = "failed to retrieve recipe"
	MessageFailedUpdateRecipe    = "failed to update recipe"

	ErrCategoryNotFound = errors.New("menu category not found")
	ErrCategoryInUse    = errors.New("cannot delete category: menu items still reference it")
	ErrMenuItemNotFound = errors.New("menu item not found")
	ErrRecipeNotFound   = errors.New("recipe not found")
	ErrInvalidPrice     = errors.New("price must be positive")
)

type (
	CreateCategoryRequest struct {
		Name         string `json:"name" validate:"required,max=100"`
		Description  string `json:"description" validate:"omitempty"`
		DisplayOrder int    `json:"display_order" validate:"omitempty,min=0"`
		IsActive     *bool  `json:"is_active" validate:"omitempty"`
	}

	UpdateCategoryRequest struct {
		Name         string `json:"name" validate:"omitempty,max=100"`
		Description  string `json:"description" validate:"omitempty"`
		DisplayOrder *int   `json:"display_order" validate:"omitempty,min=0"`
		IsActive     *bool  `json:"is_active" validate:"omitempty"`
	}

	CategoryResponse struct {
		ID           string    `json:"id"`
		Name         string    `json:"name"`
		Description  string    `json:"description,omitempty"`
		DisplayOrder int       `json:"display_order"`
		IsActive     bool      `json:"is_active"`
		CreatedAt    time.Time `json:"created_at"`
	}

	CreateMenuItemRequest struct {
		Name        string  `json:"name" validate:"required,max=100"`
		Description string  `json:"description" validate:"omitempty"`
		Price       float64 `json:"price" validate:"required,gt=0"`
		Cost        float64 `json:"cost" validate:"omitempty,gte=0"`
		CategoryID  string  `json:"category_id" validate:"required,uuid"`
		IsAvailable *bool   `json:"is_available" validate:"omitempty"`
		PrepTime    int     `json:"prep_time" validate:"omitempty,min=0"`
		IsFeatured  bool    `json:"is_featured"`
	}

	UpdateMenuItemRequest struct {
		Name        string   `json:"name" validate:"omitempty,max=100"`
		Description string   `json:"description" validate:"omitempty"`
		Price       *float64 `json:"price" validate:"omitempty,gt=0"`
		Cost        *float64 `json:"cost" validate:"omitempty,gte=0"`
		CategoryID  string   `json:"category_id" validate:"omitempty,uuid"`
		IsAvailable *bool    `json:"is_available" validate:"omitempty"`
		PrepTime    *int     `json:"prep_time" validate:"omitempty,min=0"`
		IsFeatured  *bool    `json:"is_featured" validate:"omitempty"`
	}

	// MenuItemResponse carries the joined category name alongside the item
	// fields so clients never chase the category reference for display.
	MenuItemResponse struct {
		ID           string    `json:"id"`
		Name         string    `json:"name"`
		Description  string    `json:"description,omitempty"`
		Price        float64   `json:"price"`
		Cost         float64   `json:"cost"`
		CategoryID   string    `json:"category_id"`
		CategoryName string    `json:"category_name"`
		IsAvailable  bool      `json:"is_available"`
		ImageURL     string    `json:"image_url,omitempty"`
		PrepTime     int       `json:"prep_time,omitempty"`
		IsFeatured   bool      `json:"is_featured"`
		CreatedAt    time.Time `json:"created_at"`
	}

	UploadItemImageRequest struct {
		Image *multipart.FileHeader `json:"image" form:"image" validate:"required"`
	}

	RecipeIngredientRequest struct {
		IngredientID string  `json:"ingredient_id" validate:"required,uuid"`
		Quantity     float64 `json:"quantity" validate:"required,gt=0"`
		Unit         string  `json:"unit" validate:"required,max=20"`
		Notes        string  `json:"notes" validate:"omitempty"`
	}

	UpdateRecipeRequest struct {
		Instructions string                    `json:"instructions" validate:"omitempty"`
		YieldCount   int                       `json:"yield_count" validate:"omitempty,min=1"`
		YieldUnit    string                    `json:"yield_unit" validate:"omitempty"`
		Ingredients  []RecipeIngredientRequest `json:"ingredients" validate:"required,dive"`
	}

	RecipeIngredientResponse struct {
		ID             string  `json:"id"`
		IngredientID   string  `json:"ingredient_id"`
		IngredientName string  `json:"ingredient_name"`
		Quantity       float64 `json:"quantity"`
		Unit           string  `json:"unit"`
		Notes          string  `json:"notes,omitempty"`
	}

	RecipeResponse struct {
		ID           string                     `json:"id"`
		MenuItemID   string                     `json:"menu_item_id"`
		Instructions string                     `json:"instructions,omitempty"`
		YieldCount   int                        `json:"yield_count"`
		YieldUnit    string                     `json:"yield_unit"`
		Ingredients  []RecipeIngredientResponse `json:"ingredients"`
	}
)
