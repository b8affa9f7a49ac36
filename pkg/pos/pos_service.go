package pos

import (
	"Resto-POS-Backend/domain"
	"Resto-POS-Backend/entities"
	"Resto-POS-Backend/pkg/gateway"
	"Resto-POS-Backend/pkg/menu"
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type (
	PosService interface {
		GetTables(ctx context.Context, status string) ([]domain.TableResponse, error)
		GetTableByID(ctx context.Context, id string) (domain.TableResponse, error)
		CreateTable(ctx context.Context, req domain.CreateTableRequest) (domain.TableResponse, error)
		UpdateTable(ctx context.Context, id string, req domain.UpdateTableRequest) (domain.TableResponse, error)
		DeleteTable(ctx context.Context, id string) error

		CreateOrder(ctx context.Context, req domain.CreateOrderRequest, userID string) (domain.OrderResponse, error)
		GetOrderByID(ctx context.Context, id string) (domain.OrderResponse, error)
		GetOrders(ctx context.Context, status, tableID string, page, limit int) ([]domain.OrderResponse, int64, error)
		UpdateOrder(ctx context.Context, id string, req domain.UpdateOrderRequest) (domain.OrderResponse, error)

		CreatePayment(ctx context.Context, req domain.CreatePaymentRequest, userID string) (domain.PaymentResponse, error)
		GetPayments(ctx context.Context, status string, page, limit int) ([]domain.PaymentResponse, int64, error)
		GetPaymentsByOrder(ctx context.Context, orderID string) ([]domain.PaymentResponse, error)
		HandleGatewayNotification(ctx context.Context, req domain.GatewayNotificationRequest) error
	}

	posService struct {
		posRepository  PosRepository
		menuRepository menu.MenuRepository
		gatewayService gateway.GatewayService
	}
)

func NewPosService(posRepository PosRepository, menuRepository menu.MenuRepository, gatewayService gateway.GatewayService) PosService {
	return &posService{
		posRepository:  posRepository,
		menuRepository: menuRepository,
		gatewayService: gatewayService,
	}
}

// Orders only move forward. Paid is reachable through payments alone,
// cancellation is allowed anywhere before that.
var orderTransitions = map[string][]string{
	domain.OrderStatusNew:       {domain.OrderStatusPreparing, domain.OrderStatusCancelled},
	domain.OrderStatusPreparing: {domain.OrderStatusReady, domain.OrderStatusCancelled},
	domain.OrderStatusReady:     {domain.OrderStatusServed, domain.OrderStatusCancelled},
	domain.OrderStatusServed:    {domain.OrderStatusCancelled},
}

func transitionAllowed(from, to string) bool {
	for _, allowed := range orderTransitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

func toTableResponse(table *entities.Table) domain.TableResponse {
	return domain.TableResponse{
		ID:       table.ID.String(),
		Name:     table.Name,
		Capacity: table.Capacity,
		Status:   table.Status,
		Section:  table.Section,
	}
}

func toOrderResponse(order *entities.Order) domain.OrderResponse {
	tableName := ""
	if order.Table != nil {
		tableName = order.Table.Name
	}

	items := make([]domain.OrderItemResponse, 0, len(order.Items))
	for _, item := range order.Items {
		name := ""
		if item.MenuItem != nil {
			name = item.MenuItem.Name
		}
		items = append(items, domain.OrderItemResponse{
			ID:           item.ID.String(),
			MenuItemID:   item.MenuItemID.String(),
			MenuItemName: name,
			Quantity:     item.Quantity,
			UnitPrice:    item.UnitPrice,
			Notes:        item.Notes,
			Status:       item.Status,
		})
	}

	return domain.OrderResponse{
		ID:            order.ID.String(),
		TableID:       order.TableID.String(),
		TableName:     tableName,
		OrderType:     order.OrderType,
		Status:        order.Status,
		CustomerName:  order.CustomerName,
		CustomerPhone: order.CustomerPhone,
		PartySize:     order.PartySize,
		Subtotal:      order.Subtotal,
		Tax:           order.Tax,
		Discount:      order.Discount,
		Total:         order.Total,
		PaymentStatus: order.PaymentStatus,
		Items:         items,
		CreatedAt:     order.CreatedAt,
	}
}

func toPaymentResponse(payment *entities.Payment) domain.PaymentResponse {
	return domain.PaymentResponse{
		ID:            payment.ID.String(),
		OrderID:       payment.OrderID.String(),
		Amount:        payment.Amount,
		Method:        payment.Method,
		Status:        payment.Status,
		TransactionID: payment.TransactionID,
		RedirectURL:   payment.RedirectURL,
		Notes:         payment.Notes,
		CreatedAt:     payment.CreatedAt,
	}
}

func (s *posService) GetTables(ctx context.Context, status string) ([]domain.TableResponse, error) {
	tables, err := s.posRepository.GetTables(ctx, status)
	if err != nil {
		return nil, err
	}

	result := make([]domain.TableResponse, 0, len(tables))
	for _, table := range tables {
		result = append(result, toTableResponse(table))
	}
	return result, nil
}

func (s *posService) GetTableByID(ctx context.Context, id string) (domain.TableResponse, error) {
	table, err := s.posRepository.GetTableByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.TableResponse{}, domain.ErrTableNotFound
		}
		return domain.TableResponse{}, err
	}
	return toTableResponse(table), nil
}

func (s *posService) CreateTable(ctx context.Context, req domain.CreateTableRequest) (domain.TableResponse, error) {
	status := req.Status
	if status == "" {
		status = domain.TableStatusAvailable
	}

	table := &entities.Table{
		ID:       uuid.New(),
		Name:     req.Name,
		Capacity: req.Capacity,
		Status:   status,
		Section:  req.Section,
	}

	if err := s.posRepository.CreateTable(ctx, table); err != nil {
		return domain.TableResponse{}, err
	}
	return toTableResponse(table), nil
}

func (s *posService) UpdateTable(ctx context.Context, id string, req domain.UpdateTableRequest) (domain.TableResponse, error) {
	table, err := s.posRepository.GetTableByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.TableResponse{}, domain.ErrTableNotFound
		}
		return domain.TableResponse{}, err
	}

	if req.Name != "" {
		table.Name = req.Name
	}
	if req.Capacity != nil {
		table.Capacity = *req.Capacity
	}
	if req.Status != "" {
		table.Status = req.Status
	}
	if req.Section != "" {
		table.Section = req.Section
	}

	if err := s.posRepository.UpdateTable(ctx, table); err != nil {
		return domain.TableResponse{}, err
	}
	return toTableResponse(table), nil
}

func (s *posService) DeleteTable(ctx context.Context, id string) error {
	if _, err := s.posRepository.GetTableByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrTableNotFound
		}
		return err
	}

	active, err := s.posRepository.CountActiveOrdersForTable(ctx, id)
	if err != nil {
		return err
	}
	if active > 0 {
		return domain.ErrTableHasActiveOrders
	}

	return s.posRepository.DeleteTable(ctx, id)
}

func (s *posService) CreateOrder(ctx context.Context, req domain.CreateOrderRequest, userID string) (domain.OrderResponse, error) {
	if len(req.Items) == 0 {
		return domain.OrderResponse{}, domain.ErrOrderNoItems
	}

	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return domain.OrderResponse{}, domain.ErrParseUUID
	}

	table, err := s.posRepository.GetTableByID(ctx, req.TableID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.OrderResponse{}, domain.ErrTableNotFound
		}
		return domain.OrderResponse{}, err
	}

	orderType := req.OrderType
	if orderType == "" {
		orderType = "dine-in"
	}

	order := &entities.Order{
		ID:            uuid.New(),
		TableID:       table.ID,
		UserID:        userUUID,
		OrderType:     orderType,
		Status:        domain.OrderStatusNew,
		CustomerName:  req.CustomerName,
		CustomerPhone: req.CustomerPhone,
		PartySize:     req.PartySize,
		Tax:           req.Tax,
		Discount:      req.Discount,
		PaymentStatus: domain.PaymentStatusPending,
	}

	subtotal := 0.0
	for _, line := range req.Items {
		menuItem, err := s.menuRepository.GetMenuItemByID(ctx, line.MenuItemID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.OrderResponse{}, domain.ErrMenuItemNotFound
			}
			return domain.OrderResponse{}, err
		}

		unitPrice := line.UnitPrice
		if unitPrice == 0 {
			unitPrice = menuItem.Price
		}
		subtotal += unitPrice * float64(line.Quantity)

		order.Items = append(order.Items, &entities.OrderItem{
			ID:         uuid.New(),
			MenuItemID: menuItem.ID,
			Quantity:   line.Quantity,
			UnitPrice:  unitPrice,
			Notes:      line.Notes,
			Status:     domain.OrderStatusNew,
		})
	}

	order.Subtotal = subtotal
	order.Total = subtotal + order.Tax - order.Discount
	if order.Total < 0 {
		order.Total = 0
	}

	if err := s.posRepository.CreateOrder(ctx, order); err != nil {
		return domain.OrderResponse{}, err
	}

	saved, err := s.posRepository.GetOrderByID(ctx, order.ID.String())
	if err != nil {
		return domain.OrderResponse{}, err
	}
	return toOrderResponse(saved), nil
}

func (s *posService) GetOrderByID(ctx context.Context, id string) (domain.OrderResponse, error) {
	order, err := s.posRepository.GetOrderByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.OrderResponse{}, domain.ErrOrderNotFound
		}
		return domain.OrderResponse{}, err
	}
	return toOrderResponse(order), nil
}

func (s *posService) GetOrders(ctx context.Context, status, tableID string, page, limit int) ([]domain.OrderResponse, int64, error) {
	orders, count, err := s.posRepository.GetOrders(ctx, status, tableID, page, limit)
	if err != nil {
		return nil, 0, err
	}

	result := make([]domain.OrderResponse, 0, len(orders))
	for _, order := range orders {
		result = append(result, toOrderResponse(order))
	}
	return result, count, nil
}

func (s *posService) UpdateOrder(ctx context.Context, id string, req domain.UpdateOrderRequest) (domain.OrderResponse, error) {
	order, err := s.posRepository.GetOrderByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.OrderResponse{}, domain.ErrOrderNotFound
		}
		return domain.OrderResponse{}, err
	}

	// Settled orders are immutable: a paid total is backed by its payments
	// and a cancelled order is closed, so neither may change status, tax or
	// discount anymore.
	if order.Status == domain.OrderStatusPaid {
		return domain.OrderResponse{}, domain.ErrOrderAlreadyPaid
	}
	if order.Status == domain.OrderStatusCancelled {
		return domain.OrderResponse{}, domain.ErrOrderCancelled
	}

	if req.Status != "" && req.Status != order.Status {
		if !transitionAllowed(order.Status, req.Status) {
			return domain.OrderResponse{}, domain.ErrInvalidStatusChange
		}
		order.Status = req.Status
	}

	if req.Tax != nil {
		order.Tax = *req.Tax
	}
	if req.Discount != nil {
		order.Discount = *req.Discount
	}
	order.Total = order.Subtotal + order.Tax - order.Discount
	if order.Total < 0 {
		order.Total = 0
	}

	if err := s.posRepository.UpdateOrder(ctx, order); err != nil {
		return domain.OrderResponse{}, err
	}

	saved, err := s.posRepository.GetOrderByID(ctx, id)
	if err != nil {
		return domain.OrderResponse{}, err
	}
	return toOrderResponse(saved), nil
}

// CreatePayment takes a cash payment to completion immediately. Card and
// wallet payments go through the gateway: the payment is stored pending with
// a checkout link and the webhook settles it later.
func (s *posService) CreatePayment(ctx context.Context, req domain.CreatePaymentRequest, userID string) (domain.PaymentResponse, error) {
	if req.Amount <= 0 {
		return domain.PaymentResponse{}, domain.ErrInvalidPaymentAmount
	}

	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return domain.PaymentResponse{}, domain.ErrParseUUID
	}

	order, err := s.posRepository.GetOrderByID(ctx, req.OrderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.PaymentResponse{}, domain.ErrOrderNotFound
		}
		return domain.PaymentResponse{}, err
	}

	payment := &entities.Payment{
		ID:      uuid.New(),
		OrderID: order.ID,
		UserID:  userUUID,
		Amount:  req.Amount,
		Method:  req.Method,
		Notes:   req.Notes,
	}

	switch req.Method {
	case domain.PaymentMethodCash:
		payment.Status = domain.PaymentRecordCompleted
	case domain.PaymentMethodCard, domain.PaymentMethodTelebirr, domain.PaymentMethodChapa:
		charge, err := s.gatewayService.CreateCharge(ctx, payment.ID.String(), req.Amount)
		if err != nil {
			return domain.PaymentResponse{}, err
		}
		payment.Status = domain.PaymentRecordPending
		payment.TransactionID = charge.Token
		payment.RedirectURL = charge.RedirectURL
	default:
		return domain.PaymentResponse{}, domain.ErrInvalidPaymentMethod
	}

	if err := s.posRepository.RecordPayment(ctx, payment); err != nil {
		return domain.PaymentResponse{}, err
	}
	return toPaymentResponse(payment), nil
}

func (s *posService) GetPayments(ctx context.Context, status string, page, limit int) ([]domain.PaymentResponse, int64, error) {
	payments, count, err := s.posRepository.GetPayments(ctx, status, page, limit)
	if err != nil {
		return nil, 0, err
	}

	result := make([]domain.PaymentResponse, 0, len(payments))
	for _, payment := range payments {
		result = append(result, toPaymentResponse(payment))
	}
	return result, count, nil
}

func (s *posService) GetPaymentsByOrder(ctx context.Context, orderID string) ([]domain.PaymentResponse, error) {
	if _, err := s.posRepository.GetOrderByID(ctx, orderID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrOrderNotFound
		}
		return nil, err
	}

	payments, err := s.posRepository.GetPaymentsByOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}

	result := make([]domain.PaymentResponse, 0, len(payments))
	for _, payment := range payments {
		result = append(result, toPaymentResponse(payment))
	}
	return result, nil
}

// HandleGatewayNotification resolves a pending gateway payment. The
// gateway's order_id is the payment ID we sent when opening the checkout.
func (s *posService) HandleGatewayNotification(ctx context.Context, req domain.GatewayNotificationRequest) error {
	var succeeded bool
	switch req.TransactionStatus {
	case "settlement":
		succeeded = true
	case "capture":
		succeeded = req.FraudStatus != "challenge" && req.FraudStatus != "deny"
	case "deny", "cancel", "expire", "failure":
		succeeded = false
	default:
		// pending and the like, nothing to resolve yet
		return nil
	}

	_, err := s.posRepository.SettlePayment(ctx, req.OrderID, succeeded)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrPaymentNotFound
		}
		return err
	}
	return nil
}
