package menu

import (
	"Resto-POS-Backend/domain"
	"Resto-POS-Backend/entities"
	"Resto-POS-Backend/internal/utils/storage"
	"Resto-POS-Backend/pkg/inventory"
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"path/filepath"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type (
	MenuService interface {
		GetCategories(ctx context.Context) ([]domain.CategoryResponse, error)
		GetCategoryByID(ctx context.Context, id string) (domain.CategoryResponse, error)
		CreateCategory(ctx context.Context, req domain.CreateCategoryRequest) (domain.CategoryResponse, error)
		UpdateCategory(ctx context.Context, id string, req domain.UpdateCategoryRequest) (domain.CategoryResponse, error)
		DeleteCategory(ctx context.Context, id string) error

		GetMenuItems(ctx context.Context, categoryID string, available *bool, page, limit int) ([]domain.MenuItemResponse, int64, error)
		GetMenuItemByID(ctx context.Context, id string) (domain.MenuItemResponse, error)
		CreateMenuItem(ctx context.Context, req domain.CreateMenuItemRequest) (domain.MenuItemResponse, error)
		UpdateMenuItem(ctx context.Context, id string, req domain.UpdateMenuItemRequest) (domain.MenuItemResponse, error)
		DeleteMenuItem(ctx context.Context, id string) error
		UploadMenuItemImage(ctx context.Context, id string, image *multipart.FileHeader) (domain.MenuItemResponse, error)

		GetRecipe(ctx context.Context, menuItemID string) (domain.RecipeResponse, error)
		UpdateRecipe(ctx context.Context, menuItemID string, req domain.UpdateRecipeRequest) (domain.RecipeResponse, error)
	}

	menuService struct {
		menuRepository      MenuRepository
		inventoryRepository inventory.InventoryRepository
		s3                  storage.AwsS3
	}
)

func NewMenuService(menuRepository MenuRepository, inventoryRepository inventory.InventoryRepository, s3 storage.AwsS3) MenuService {
	return &menuService{
		menuRepository:      menuRepository,
		inventoryRepository: inventoryRepository,
		s3:                  s3,
	}
}

func toCategoryResponse(category *entities.MenuCategory) domain.CategoryResponse {
	return domain.CategoryResponse{
		ID:           category.ID.String(),
		Name:         category.Name,
		Description:  category.Description,
		DisplayOrder: category.DisplayOrder,
		IsActive:     category.IsActive,
		CreatedAt:    category.CreatedAt,
	}
}

func toMenuItemResponse(item *entities.MenuItem) domain.MenuItemResponse {
	categoryName := ""
	if item.Category != nil {
		categoryName = item.Category.Name
	}
	return domain.MenuItemResponse{
		ID:           item.ID.String(),
		Name:         item.Name,
		Description:  item.Description,
		Price:        item.Price,
		Cost:         item.Cost,
		CategoryID:   item.CategoryID.String(),
		CategoryName: categoryName,
		IsAvailable:  item.IsAvailable,
		ImageURL:     item.ImageURL,
		PrepTime:     item.PrepTime,
		IsFeatured:   item.IsFeatured,
		CreatedAt:    item.CreatedAt,
	}
}

func (s *menuService) GetCategories(ctx context.Context) ([]domain.CategoryResponse, error) {
	categories, err := s.menuRepository.GetCategories(ctx)
	if err != nil {
		return nil, err
	}

	result := make([]domain.CategoryResponse, 0, len(categories))
	for _, category := range categories {
		result = append(result, toCategoryResponse(category))
	}
	return result, nil
}

func (s *menuService) GetCategoryByID(ctx context.Context, id string) (domain.CategoryResponse, error) {
	category, err := s.menuRepository.GetCategoryByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.CategoryResponse{}, domain.ErrCategoryNotFound
		}
		return domain.CategoryResponse{}, err
	}
	return toCategoryResponse(category), nil
}

func (s *menuService) CreateCategory(ctx context.Context, req domain.CreateCategoryRequest) (domain.CategoryResponse, error) {
	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}

	category := &entities.MenuCategory{
		ID:           uuid.New(),
		Name:         req.Name,
		Description:  req.Description,
		DisplayOrder: req.DisplayOrder,
		IsActive:     isActive,
	}

	if err := s.menuRepository.CreateCategory(ctx, category); err != nil {
		return domain.CategoryResponse{}, err
	}
	return toCategoryResponse(category), nil
}

func (s *menuService) UpdateCategory(ctx context.Context, id string, req domain.UpdateCategoryRequest) (domain.CategoryResponse, error) {
	category, err := s.menuRepository.GetCategoryByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.CategoryResponse{}, domain.ErrCategoryNotFound
		}
		return domain.CategoryResponse{}, err
	}

	if req.Name != "" {
		category.Name = req.Name
	}
	if req.Description != "" {
		category.Description = req.Description
	}
	if req.DisplayOrder != nil {
		category.DisplayOrder = *req.DisplayOrder
	}
	if req.IsActive != nil {
		category.IsActive = *req.IsActive
	}

	if err := s.menuRepository.UpdateCategory(ctx, category); err != nil {
		return domain.CategoryResponse{}, err
	}
	return toCategoryResponse(category), nil
}

func (s *menuService) DeleteCategory(ctx context.Context, id string) error {
	if _, err := s.menuRepository.GetCategoryByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrCategoryNotFound
		}
		return err
	}

	count, err := s.menuRepository.CountItemsInCategory(ctx, id)
	if err != nil {
		return err
	}
	if count > 0 {
		return domain.ErrCategoryInUse
	}

	return s.menuRepository.DeleteCategory(ctx, id)
}

func (s *menuService) GetMenuItems(ctx context.Context, categoryID string, available *bool, page, limit int) ([]domain.MenuItemResponse, int64, error) {
	items, count, err := s.menuRepository.GetMenuItems(ctx, categoryID, available, page, limit)
	if err != nil {
		return nil, 0, err
	}

	result := make([]domain.MenuItemResponse, 0, len(items))
	for _, item := range items {
		result = append(result, toMenuItemResponse(item))
	}
	return result, count, nil
}

func (s *menuService) GetMenuItemByID(ctx context.Context, id string) (domain.MenuItemResponse, error) {
	item, err := s.menuRepository.GetMenuItemByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.MenuItemResponse{}, domain.ErrMenuItemNotFound
		}
		return domain.MenuItemResponse{}, err
	}
	return toMenuItemResponse(item), nil
}

func (s *menuService) CreateMenuItem(ctx context.Context, req domain.CreateMenuItemRequest) (domain.MenuItemResponse, error) {
	category, err := s.menuRepository.GetCategoryByID(ctx, req.CategoryID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.MenuItemResponse{}, domain.ErrCategoryNotFound
		}
		return domain.MenuItemResponse{}, err
	}

	isAvailable := true
	if req.IsAvailable != nil {
		isAvailable = *req.IsAvailable
	}

	item := &entities.MenuItem{
		ID:          uuid.New(),
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Cost:        req.Cost,
		CategoryID:  category.ID,
		IsAvailable: isAvailable,
		PrepTime:    req.PrepTime,
		IsFeatured:  req.IsFeatured,
	}

	if err := s.menuRepository.CreateMenuItem(ctx, item); err != nil {
		return domain.MenuItemResponse{}, err
	}

	item.Category = category
	return toMenuItemResponse(item), nil
}

func (s *menuService) UpdateMenuItem(ctx context.Context, id string, req domain.UpdateMenuItemRequest) (domain.MenuItemResponse, error) {
	item, err := s.menuRepository.GetMenuItemByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.MenuItemResponse{}, domain.ErrMenuItemNotFound
		}
		return domain.MenuItemResponse{}, err
	}

	if req.Name != "" {
		item.Name = req.Name
	}
	if req.Description != "" {
		item.Description = req.Description
	}
	if req.Price != nil {
		item.Price = *req.Price
	}
	if req.Cost != nil {
		item.Cost = *req.Cost
	}
	if req.CategoryID != "" {
		category, err := s.menuRepository.GetCategoryByID(ctx, req.CategoryID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.MenuItemResponse{}, domain.ErrCategoryNotFound
			}
			return domain.MenuItemResponse{}, err
		}
		item.CategoryID = category.ID
		item.Category = category
	}
	if req.IsAvailable != nil {
		item.IsAvailable = *req.IsAvailable
	}
	if req.PrepTime != nil {
		item.PrepTime = *req.PrepTime
	}
	if req.IsFeatured != nil {
		item.IsFeatured = *req.IsFeatured
	}

	if err := s.menuRepository.UpdateMenuItem(ctx, item); err != nil {
		return domain.MenuItemResponse{}, err
	}
	return toMenuItemResponse(item), nil
}

func (s *menuService) DeleteMenuItem(ctx context.Context, id string) error {
	item, err := s.menuRepository.GetMenuItemByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrMenuItemNotFound
		}
		return err
	}

	if item.ImageURL != "" {
		objectKey := s.s3.GetObjectKeyFromLink(item.ImageURL)
		if objectKey != "" {
			_ = s.s3.DeleteFile(objectKey)
		}
	}

	return s.menuRepository.DeleteMenuItem(ctx, id)
}

func (s *menuService) UploadMenuItemImage(ctx context.Context, id string, image *multipart.FileHeader) (domain.MenuItemResponse, error) {
	item, err := s.menuRepository.GetMenuItemByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.MenuItemResponse{}, domain.ErrMenuItemNotFound
		}
		return domain.MenuItemResponse{}, err
	}

	objectKey := fmt.Sprintf("menu-items/%s%s", item.ID.String(), filepath.Ext(image.Filename))
	url, err := s.s3.UploadFile(image, objectKey)
	if err != nil {
		return domain.MenuItemResponse{}, err
	}

	item.ImageURL = url
	if err := s.menuRepository.UpdateMenuItem(ctx, item); err != nil {
		return domain.MenuItemResponse{}, err
	}
	return toMenuItemResponse(item), nil
}

func toRecipeResponse(recipe *entities.Recipe) domain.RecipeResponse {
	ingredients := make([]domain.RecipeIngredientResponse, 0, len(recipe.Ingredients))
	for _, line := range recipe.Ingredients {
		name := ""
		if line.Ingredient != nil {
			name = line.Ingredient.Name
		}
		ingredients = append(ingredients, domain.RecipeIngredientResponse{
			ID:             line.ID.String(),
			IngredientID:   line.IngredientID.String(),
			IngredientName: name,
			Quantity:       line.Quantity,
			Unit:           line.Unit,
			Notes:          line.Notes,
		})
	}
	return domain.RecipeResponse{
		ID:           recipe.ID.String(),
		MenuItemID:   recipe.MenuItemID.String(),
		Instructions: recipe.Instructions,
		YieldCount:   recipe.YieldCount,
		YieldUnit:    recipe.YieldUnit,
		Ingredients:  ingredients,
	}
}

func (s *menuService) GetRecipe(ctx context.Context, menuItemID string) (domain.RecipeResponse, error) {
	if _, err := s.menuRepository.GetMenuItemByID(ctx, menuItemID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.RecipeResponse{}, domain.ErrMenuItemNotFound
		}
		return domain.RecipeResponse{}, err
	}

	recipe, err := s.menuRepository.GetRecipeByMenuItem(ctx, menuItemID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.RecipeResponse{}, domain.ErrRecipeNotFound
		}
		return domain.RecipeResponse{}, err
	}
	return toRecipeResponse(recipe), nil
}

func (s *menuService) UpdateRecipe(ctx context.Context, menuItemID string, req domain.UpdateRecipeRequest) (domain.RecipeResponse, error) {
	item, err := s.menuRepository.GetMenuItemByID(ctx, menuItemID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.RecipeResponse{}, domain.ErrMenuItemNotFound
		}
		return domain.RecipeResponse{}, err
	}

	lines := make([]*entities.RecipeIngredient, 0, len(req.Ingredients))
	for _, line := range req.Ingredients {
		ingredientID, err := uuid.Parse(line.IngredientID)
		if err != nil {
			return domain.RecipeResponse{}, domain.ErrParseUUID
		}
		if _, err := s.inventoryRepository.GetIngredientByID(ctx, line.IngredientID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.RecipeResponse{}, domain.ErrIngredientNotFound
			}
			return domain.RecipeResponse{}, err
		}
		lines = append(lines, &entities.RecipeIngredient{
			ID:           uuid.New(),
			IngredientID: ingredientID,
			Quantity:     line.Quantity,
			Unit:         line.Unit,
			Notes:        line.Notes,
		})
	}

	yieldCount := req.YieldCount
	if yieldCount == 0 {
		yieldCount = 1
	}
	yieldUnit := req.YieldUnit
	if yieldUnit == "" {
		yieldUnit = "servings"
	}

	recipe := &entities.Recipe{
		ID:           uuid.New(),
		MenuItemID:   item.ID,
		Instructions: req.Instructions,
		YieldCount:   yieldCount,
		YieldUnit:    yieldUnit,
		Ingredients:  lines,
	}

	if err := s.menuRepository.ReplaceRecipe(ctx, recipe); err != nil {
		return domain.RecipeResponse{}, err
	}

	saved, err := s.menuRepository.GetRecipeByMenuItem(ctx, menuItemID)
	if err != nil {
		return domain.RecipeResponse{}, err
	}
	return toRecipeResponse(saved), nil
}
