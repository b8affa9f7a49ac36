package inventory

import (
	"Resto-POS-Backend/domain"
	"Resto-POS-Backend/entities"
	"Resto-POS-Backend/internal/utils"
	"Resto-POS-Backend/internal/utils/mailing"
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type (
	InventoryService interface {
		GetIngredients(ctx context.Context, category string, lowStock *bool, page, limit int) ([]domain.IngredientResponse, int64, error)
		GetIngredientByID(ctx context.Context, id string) (domain.IngredientResponse, error)
		CreateIngredient(ctx context.Context, req domain.CreateIngredientRequest) (domain.IngredientResponse, error)
		UpdateIngredient(ctx context.Context, id string, req domain.UpdateIngredientRequest) (domain.IngredientResponse, error)
		DeleteIngredient(ctx context.Context, id string) error
		GetLowStockItems(ctx context.Context) ([]domain.LowStockItemResponse, error)

		GetUnits(ctx context.Context) ([]domain.UnitResponse, error)
		GetUnitByID(ctx context.Context, id string) (domain.UnitResponse, error)
		CreateUnit(ctx context.Context, req domain.CreateUnitRequest) (domain.UnitResponse, error)
		UpdateUnit(ctx context.Context, id string, req domain.UpdateUnitRequest) (domain.UnitResponse, error)
		DeleteUnit(ctx context.Context, id string) error

		CreateTransaction(ctx context.Context, req domain.CreateTransactionRequest, userID string) (domain.TransactionResponse, error)
		GetTransactionByID(ctx context.Context, id string) (domain.TransactionResponse, error)
		GetTransactions(ctx context.Context, transactionType string, page, limit int) ([]domain.TransactionResponse, int64, error)
	}

	inventoryService struct {
		inventoryRepository InventoryRepository
	}
)

func NewInventoryService(inventoryRepository InventoryRepository) InventoryService {
	return &inventoryService{inventoryRepository: inventoryRepository}
}

func toIngredientResponse(ingredient *entities.Ingredient) domain.IngredientResponse {
	unitName := ""
	if ingredient.Unit != nil {
		unitName = ingredient.Unit.Name
	}
	return domain.IngredientResponse{
		ID:           ingredient.ID.String(),
		Name:         ingredient.Name,
		Description:  ingredient.Description,
		UnitID:       ingredient.UnitID.String(),
		UnitName:     unitName,
		CurrentStock: ingredient.CurrentStock,
		MinStock:     ingredient.MinStock,
		UnitCost:     ingredient.UnitCost,
		Category:     ingredient.Category,
		CreatedAt:    ingredient.CreatedAt,
	}
}

func toUnitResponse(unit *entities.Unit) domain.UnitResponse {
	baseUnitID := ""
	if unit.BaseUnitID != nil {
		baseUnitID = unit.BaseUnitID.String()
	}
	return domain.UnitResponse{
		ID:               unit.ID.String(),
		Name:             unit.Name,
		Abbreviation:     unit.Abbreviation,
		BaseUnitID:       baseUnitID,
		ConversionFactor: unit.ConversionFactor,
	}
}

func toTransactionResponse(transaction *entities.InventoryTransaction) domain.TransactionResponse {
	items := make([]domain.TransactionItemResponse, 0, len(transaction.Items))
	for _, item := range transaction.Items {
		name := ""
		if item.Ingredient != nil {
			name = item.Ingredient.Name
		}
		items = append(items, domain.TransactionItemResponse{
			ID:             item.ID.String(),
			IngredientID:   item.IngredientID.String(),
			IngredientName: name,
			Quantity:       item.Quantity,
			UnitCost:       item.UnitCost,
			TotalCost:      item.TotalCost,
			ExpiryDate:     item.ExpiryDate,
			BatchNumber:    item.BatchNumber,
		})
	}
	return domain.TransactionResponse{
		ID:          transaction.ID.String(),
		Type:        transaction.Type,
		Date:        transaction.Date,
		ReferenceID: transaction.ReferenceID,
		Notes:       transaction.Notes,
		UserID:      transaction.UserID.String(),
		Items:       items,
	}
}

func (s *inventoryService) GetIngredients(ctx context.Context, category string, lowStock *bool, page, limit int) ([]domain.IngredientResponse, int64, error) {
	ingredients, count, err := s.inventoryRepository.GetIngredients(ctx, category, lowStock, page, limit)
	if err != nil {
		return nil, 0, err
	}

	result := make([]domain.IngredientResponse, 0, len(ingredients))
	for _, ingredient := range ingredients {
		result = append(result, toIngredientResponse(ingredient))
	}
	return result, count, nil
}

func (s *inventoryService) GetIngredientByID(ctx context.Context, id string) (domain.IngredientResponse, error) {
	ingredient, err := s.inventoryRepository.GetIngredientByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.IngredientResponse{}, domain.ErrIngredientNotFound
		}
		return domain.IngredientResponse{}, err
	}
	return toIngredientResponse(ingredient), nil
}

func (s *inventoryService) CreateIngredient(ctx context.Context, req domain.CreateIngredientRequest) (domain.IngredientResponse, error) {
	unit, err := s.inventoryRepository.GetUnitByID(ctx, req.UnitID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.IngredientResponse{}, domain.ErrUnitNotFound
		}
		return domain.IngredientResponse{}, err
	}

	ingredient := &entities.Ingredient{
		ID:           uuid.New(),
		Name:         req.Name,
		Description:  req.Description,
		UnitID:       unit.ID,
		CurrentStock: req.CurrentStock,
		MinStock:     req.MinStock,
		UnitCost:     req.UnitCost,
		Category:     req.Category,
	}

	if err := s.inventoryRepository.CreateIngredient(ctx, ingredient); err != nil {
		return domain.IngredientResponse{}, err
	}

	ingredient.Unit = unit
	return toIngredientResponse(ingredient), nil
}

func (s *inventoryService) UpdateIngredient(ctx context.Context, id string, req domain.UpdateIngredientRequest) (domain.IngredientResponse, error) {
	ingredient, err := s.inventoryRepository.GetIngredientByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.IngredientResponse{}, domain.ErrIngredientNotFound
		}
		return domain.IngredientResponse{}, err
	}

	if req.Name != "" {
		ingredient.Name = req.Name
	}
	if req.Description != "" {
		ingredient.Description = req.Description
	}
	if req.UnitID != "" {
		unit, err := s.inventoryRepository.GetUnitByID(ctx, req.UnitID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.IngredientResponse{}, domain.ErrUnitNotFound
			}
			return domain.IngredientResponse{}, err
		}
		ingredient.UnitID = unit.ID
		ingredient.Unit = unit
	}
	if req.MinStock != nil {
		ingredient.MinStock = *req.MinStock
	}
	if req.UnitCost != nil {
		ingredient.UnitCost = *req.UnitCost
	}
	if req.Category != "" {
		ingredient.Category = req.Category
	}

	if err := s.inventoryRepository.UpdateIngredient(ctx, ingredient); err != nil {
		return domain.IngredientResponse{}, err
	}
	return toIngredientResponse(ingredient), nil
}

func (s *inventoryService) DeleteIngredient(ctx context.Context, id string) error {
	if _, err := s.inventoryRepository.GetIngredientByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrIngredientNotFound
		}
		return err
	}

	references, err := s.inventoryRepository.CountIngredientReferences(ctx, id)
	if err != nil {
		return err
	}
	if references > 0 {
		return domain.ErrIngredientInUse
	}

	return s.inventoryRepository.DeleteIngredient(ctx, id)
}

func (s *inventoryService) GetLowStockItems(ctx context.Context) ([]domain.LowStockItemResponse, error) {
	ingredients, err := s.inventoryRepository.GetLowStockIngredients(ctx)
	if err != nil {
		return nil, err
	}

	result := make([]domain.LowStockItemResponse, 0, len(ingredients))
	for _, ingredient := range ingredients {
		result = append(result, domain.LowStockItemResponse{
			IngredientResponse: toIngredientResponse(ingredient),
			Shortage:           ingredient.MinStock - ingredient.CurrentStock,
		})
	}
	return result, nil
}

func (s *inventoryService) GetUnits(ctx context.Context) ([]domain.UnitResponse, error) {
	units, err := s.inventoryRepository.GetUnits(ctx)
	if err != nil {
		return nil, err
	}

	result := make([]domain.UnitResponse, 0, len(units))
	for _, unit := range units {
		result = append(result, toUnitResponse(unit))
	}
	return result, nil
}

func (s *inventoryService) GetUnitByID(ctx context.Context, id string) (domain.UnitResponse, error) {
	unit, err := s.inventoryRepository.GetUnitByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.UnitResponse{}, domain.ErrUnitNotFound
		}
		return domain.UnitResponse{}, err
	}
	return toUnitResponse(unit), nil
}

func (s *inventoryService) CreateUnit(ctx context.Context, req domain.CreateUnitRequest) (domain.UnitResponse, error) {
	unit := &entities.Unit{
		ID:               uuid.New(),
		Name:             req.Name,
		Abbreviation:     req.Abbreviation,
		ConversionFactor: 1,
	}

	if req.BaseUnitID != "" {
		baseUnit, err := s.inventoryRepository.GetUnitByID(ctx, req.BaseUnitID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.UnitResponse{}, domain.ErrUnitNotFound
			}
			return domain.UnitResponse{}, err
		}
		unit.BaseUnitID = &baseUnit.ID
	}
	if req.ConversionFactor > 0 {
		unit.ConversionFactor = req.ConversionFactor
	}

	if err := s.inventoryRepository.CreateUnit(ctx, unit); err != nil {
		return domain.UnitResponse{}, err
	}
	return toUnitResponse(unit), nil
}

func (s *inventoryService) UpdateUnit(ctx context.Context, id string, req domain.UpdateUnitRequest) (domain.UnitResponse, error) {
	unit, err := s.inventoryRepository.GetUnitByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.UnitResponse{}, domain.ErrUnitNotFound
		}
		return domain.UnitResponse{}, err
	}

	if req.Name != "" {
		unit.Name = req.Name
	}
	if req.Abbreviation != "" {
		unit.Abbreviation = req.Abbreviation
	}
	if req.BaseUnitID != "" {
		baseUnit, err := s.inventoryRepository.GetUnitByID(ctx, req.BaseUnitID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.UnitResponse{}, domain.ErrUnitNotFound
			}
			return domain.UnitResponse{}, err
		}
		unit.BaseUnitID = &baseUnit.ID
	}
	if req.ConversionFactor != nil {
		unit.ConversionFactor = *req.ConversionFactor
	}

	if err := s.inventoryRepository.UpdateUnit(ctx, unit); err != nil {
		return domain.UnitResponse{}, err
	}
	return toUnitResponse(unit), nil
}

func (s *inventoryService) DeleteUnit(ctx context.Context, id string) error {
	if _, err := s.inventoryRepository.GetUnitByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrUnitNotFound
		}
		return err
	}

	count, err := s.inventoryRepository.CountIngredientsUsingUnit(ctx, id)
	if err != nil {
		return err
	}
	if count > 0 {
		return domain.ErrUnitInUse
	}

	return s.inventoryRepository.DeleteUnit(ctx, id)
}

func (s *inventoryService) CreateTransaction(ctx context.Context, req domain.CreateTransactionRequest, userID string) (domain.TransactionResponse, error) {
	if len(req.Items) == 0 {
		return domain.TransactionResponse{}, domain.ErrTransactionNoItems
	}

	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return domain.TransactionResponse{}, domain.ErrParseUUID
	}

	transaction := &entities.InventoryTransaction{
		ID:          uuid.New(),
		Type:        req.Type,
		Date:        time.Now().UTC(),
		ReferenceID: req.ReferenceID,
		Notes:       req.Notes,
		UserID:      userUUID,
	}

	for _, item := range req.Items {
		// receiving and issuing take positive quantities; adjustments
		// carry a signed delta and only zero is rejected
		switch req.Type {
		case domain.TransactionTypeReceiving, domain.TransactionTypeIssuing:
			if item.Quantity <= 0 {
				return domain.TransactionResponse{}, domain.ErrInvalidQuantity
			}
		case domain.TransactionTypeAdjustment:
			if item.Quantity == 0 {
				return domain.TransactionResponse{}, domain.ErrInvalidQuantity
			}
		default:
			return domain.TransactionResponse{}, domain.ErrInvalidTransactionType
		}

		ingredientID, err := uuid.Parse(item.IngredientID)
		if err != nil {
			return domain.TransactionResponse{}, domain.ErrParseUUID
		}
		ingredient, err := s.inventoryRepository.GetIngredientByID(ctx, item.IngredientID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.TransactionResponse{}, domain.ErrIngredientNotFound
			}
			return domain.TransactionResponse{}, err
		}

		unitCost := item.UnitCost
		if unitCost == 0 {
			unitCost = ingredient.UnitCost
		}

		var expiryDate *time.Time
		if item.ExpiryDate != "" {
			parsed, err := time.Parse("2006-01-02", item.ExpiryDate)
			if err != nil {
				return domain.TransactionResponse{}, domain.ErrInvalidExpiryDate
			}
			expiryDate = &parsed
		}

		transaction.Items = append(transaction.Items, &entities.InventoryTransactionItem{
			ID:           uuid.New(),
			IngredientID: ingredientID,
			Quantity:     item.Quantity,
			UnitCost:     unitCost,
			TotalCost:    unitCost * item.Quantity,
			ExpiryDate:   expiryDate,
			BatchNumber:  item.BatchNumber,
		})
	}

	if err := s.inventoryRepository.CreateTransaction(ctx, transaction); err != nil {
		return domain.TransactionResponse{}, err
	}

	s.notifyLowStock(ctx, transaction)

	saved, err := s.inventoryRepository.GetTransactionByID(ctx, transaction.ID.String())
	if err != nil {
		return domain.TransactionResponse{}, err
	}
	return toTransactionResponse(saved), nil
}

// notifyLowStock mails the configured alert address when a committed
// transaction leaves ingredients at or below their minimum. Best effort:
// a mail failure never fails the request.
func (s *inventoryService) notifyLowStock(ctx context.Context, transaction *entities.InventoryTransaction) {
	alertEmail := utils.GetConfig("ALERT_EMAIL")
	if alertEmail == "" {
		return
	}

	var lines []string
	for _, item := range transaction.Items {
		ingredient, err := s.inventoryRepository.GetIngredientByID(ctx, item.IngredientID.String())
		if err != nil {
			continue
		}
		if ingredient.CurrentStock <= ingredient.MinStock {
			lines = append(lines, fmt.Sprintf(
				"<li>%s: %.2f on hand (minimum %.2f)</li>",
				ingredient.Name, ingredient.CurrentStock, ingredient.MinStock,
			))
		}
	}
	if len(lines) == 0 {
		return
	}

	body := "<p>The following ingredients are at or below minimum stock:</p><ul>" +
		strings.Join(lines, "") + "</ul>"
	if err := mailing.SendMail(alertEmail, "Low stock alert", body); err != nil {
		log.Printf("failed to send low stock alert: %v", err)
	}
}

func (s *inventoryService) GetTransactionByID(ctx context.Context, id string) (domain.TransactionResponse, error) {
	transaction, err := s.inventoryRepository.GetTransactionByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.TransactionResponse{}, domain.ErrTransactionNotFound
		}
		return domain.TransactionResponse{}, err
	}
	return toTransactionResponse(transaction), nil
}

func (s *inventoryService) GetTransactions(ctx context.Context, transactionType string, page, limit int) ([]domain.TransactionResponse, int64, error) {
	transactions, count, err := s.inventoryRepository.GetTransactions(ctx, transactionType, page, limit)
	if err != nil {
		return nil, 0, err
	}

	result := make([]domain.TransactionResponse, 0, len(transactions))
	for _, transaction := range transactions {
		result = append(result, toTransactionResponse(transaction))
	}
	return result, count, nil
}
