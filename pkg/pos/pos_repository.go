package pos

import (
	"Resto-POS-Backend/domain"
	"Resto-POS-Backend/entities"
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type (
	PosRepository interface {
		// Tables
		CreateTable(ctx context.Context, table *entities.Table) error
		GetTableByID(ctx context.Context, id string) (*entities.Table, error)
		GetTables(ctx context.Context, status string) ([]*entities.Table, error)
		UpdateTable(ctx context.Context, table *entities.Table) error
		DeleteTable(ctx context.Context, id string) error
		CountActiveOrdersForTable(ctx context.Context, tableID string) (int64, error)

		// Orders
		CreateOrder(ctx context.Context, order *entities.Order) error
		GetOrderByID(ctx context.Context, id string) (*entities.Order, error)
		GetOrders(ctx context.Context, status, tableID string, page, limit int) ([]*entities.Order, int64, error)
		UpdateOrder(ctx context.Context, order *entities.Order) error

		// Payments
		RecordPayment(ctx context.Context, payment *entities.Payment) error
		SettlePayment(ctx context.Context, paymentID string, succeeded bool) (*entities.Payment, error)
		GetPaymentByID(ctx context.Context, id string) (*entities.Payment, error)
		GetPayments(ctx context.Context, status string, page, limit int) ([]*entities.Payment, int64, error)
		GetPaymentsByOrder(ctx context.Context, orderID string) ([]*entities.Payment, error)
	}

	posRepository struct {
		db *gorm.DB
	}
)

func NewPosRepository(db *gorm.DB) PosRepository {
	return &posRepository{db: db}
}

var activeOrderStatuses = []string{
	domain.OrderStatusNew,
	domain.OrderStatusPreparing,
	domain.OrderStatusReady,
	domain.OrderStatusServed,
}

func lockForUpdate(tx *gorm.DB) *gorm.DB {
	if tx.Dialector.Name() == "postgres" {
		return tx.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	return tx
}

func (r *posRepository) CreateTable(ctx context.Context, table *entities.Table) error {
	return r.db.WithContext(ctx).Create(table).Error
}

func (r *posRepository) GetTableByID(ctx context.Context, id string) (*entities.Table, error) {
	var table entities.Table
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&table).Error; err != nil {
		return nil, err
	}
	return &table, nil
}

func (r *posRepository) GetTables(ctx context.Context, status string) ([]*entities.Table, error) {
	var tables []*entities.Table
	query := r.db.WithContext(ctx)
	if status != "" {
		query = query.Where("status = ?", status)
	}
	if err := query.Order("name asc").Find(&tables).Error; err != nil {
		return nil, err
	}
	return tables, nil
}

func (r *posRepository) UpdateTable(ctx context.Context, table *entities.Table) error {
	return r.db.WithContext(ctx).Save(table).Error
}

func (r *posRepository) DeleteTable(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&entities.Table{}).Error
}

func (r *posRepository) CountActiveOrdersForTable(ctx context.Context, tableID string) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&entities.Order{}).
		Where("table_id = ? AND status IN ?", tableID, activeOrderStatuses).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// CreateOrder writes the order with its items and flips the table to
// occupied in one database transaction.
func (r *posRepository) CreateOrder(ctx context.Context, order *entities.Order) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		header := entities.Order{
			ID:            order.ID,
			TableID:       order.TableID,
			UserID:        order.UserID,
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
		}
		if err := tx.Create(&header).Error; err != nil {
			return err
		}

		for _, item := range order.Items {
			item.OrderID = order.ID
			if err := tx.Create(item).Error; err != nil {
				return err
			}
		}

		return tx.Model(&entities.Table{}).
			Where("id = ?", order.TableID).
			Update("status", domain.TableStatusOccupied).Error
	})
}

func (r *posRepository) GetOrderByID(ctx context.Context, id string) (*entities.Order, error) {
	var order entities.Order
	if err := r.db.WithContext(ctx).
		Preload("Table").
		Preload("Items").
		Preload("Items.MenuItem").
		Where("id = ?", id).
		First(&order).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *posRepository) GetOrders(ctx context.Context, status, tableID string, page, limit int) ([]*entities.Order, int64, error) {
	var orders []*entities.Order
	var count int64

	offset := (page - 1) * limit

	query := r.db.WithContext(ctx).Model(&entities.Order{})
	if status != "" {
		query = query.Where("status = ?", status)
	}
	if tableID != "" {
		query = query.Where("table_id = ?", tableID)
	}

	if err := query.Count(&count).Error; err != nil {
		return nil, 0, err
	}

	if err := query.
		Preload("Table").
		Preload("Items").
		Preload("Items.MenuItem").
		Offset(offset).
		Limit(limit).
		Order("created_at desc").
		Find(&orders).Error; err != nil {
		return nil, 0, err
	}

	return orders, count, nil
}

func (r *posRepository) UpdateOrder(ctx context.Context, order *entities.Order) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Table", "User", "Items").Save(order).Error; err != nil {
			return err
		}

		// A cancelled order frees its table once nothing active remains on it.
		if order.Status == domain.OrderStatusCancelled {
			var remaining int64
			if err := tx.Model(&entities.Order{}).
				Where("table_id = ? AND status IN ?", order.TableID, activeOrderStatuses).
				Count(&remaining).Error; err != nil {
				return err
			}
			if remaining == 0 {
				return tx.Model(&entities.Table{}).
					Where("id = ?", order.TableID).
					Update("status", domain.TableStatusAvailable).Error
			}
		}
		return nil
	})
}

// settleOrderBalance recomputes the order's paid total from its completed
// payments and moves the order and its table along: fully covered means the
// order is paid and the table goes dirty, anything above zero means partial.
// Callers must run it inside a transaction with the order row locked.
func settleOrderBalance(tx *gorm.DB, orderID uuid.UUID) error {
	var order entities.Order
	if err := lockForUpdate(tx).Where("id = ?", orderID).First(&order).Error; err != nil {
		return err
	}

	var paid float64
	if err := tx.Model(&entities.Payment{}).
		Where("order_id = ? AND status = ?", orderID, domain.PaymentRecordCompleted).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&paid).Error; err != nil {
		return err
	}

	switch {
	case paid >= order.Total:
		if err := tx.Model(&entities.Order{}).
			Where("id = ?", orderID).
			Updates(map[string]interface{}{
				"payment_status": domain.PaymentStatusPaid,
				"status":         domain.OrderStatusPaid,
			}).Error; err != nil {
			return err
		}
		return tx.Model(&entities.Table{}).
			Where("id = ?", order.TableID).
			Update("status", domain.TableStatusDirty).Error
	case paid > 0:
		return tx.Model(&entities.Order{}).
			Where("id = ?", orderID).
			Update("payment_status", domain.PaymentStatusPartial).Error
	default:
		return nil
	}
}

// RecordPayment persists a payment and, when it is already completed,
// applies it to the order inside the same transaction. The order row is
// locked first so two cashiers cannot both settle the same balance.
func (r *posRepository) RecordPayment(ctx context.Context, payment *entities.Payment) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var order entities.Order
		if err := lockForUpdate(tx).Where("id = ?", payment.OrderID).First(&order).Error; err != nil {
			return err
		}

		if order.Status == domain.OrderStatusCancelled {
			return domain.ErrOrderCancelled
		}
		if order.PaymentStatus == domain.PaymentStatusPaid {
			return domain.ErrOrderAlreadyPaid
		}

		var paid float64
		if err := tx.Model(&entities.Payment{}).
			Where("order_id = ? AND status = ?", order.ID, domain.PaymentRecordCompleted).
			Select("COALESCE(SUM(amount), 0)").
			Scan(&paid).Error; err != nil {
			return err
		}
		if paid+payment.Amount > order.Total {
			return domain.ErrPaymentExceedsBalance
		}

		if err := tx.Omit("Order", "User").Create(payment).Error; err != nil {
			return err
		}

		if payment.Status == domain.PaymentRecordCompleted {
			return settleOrderBalance(tx, order.ID)
		}
		return nil
	})
}

// SettlePayment resolves a pending gateway payment from the webhook.
func (r *posRepository) SettlePayment(ctx context.Context, paymentID string, succeeded bool) (*entities.Payment, error) {
	var payment entities.Payment
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := lockForUpdate(tx).Where("id = ?", paymentID).First(&payment).Error; err != nil {
			return err
		}
		if payment.Status != domain.PaymentRecordPending {
			// already resolved, webhook retries are no-ops
			return nil
		}

		status := domain.PaymentRecordFailed
		if succeeded {
			status = domain.PaymentRecordCompleted
		}
		if err := tx.Model(&entities.Payment{}).
			Where("id = ?", payment.ID).
			Update("status", status).Error; err != nil {
			return err
		}
		payment.Status = status

		if succeeded {
			return settleOrderBalance(tx, payment.OrderID)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &payment, nil
}

func (r *posRepository) GetPaymentByID(ctx context.Context, id string) (*entities.Payment, error) {
	var payment entities.Payment
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&payment).Error; err != nil {
		return nil, err
	}
	return &payment, nil
}

func (r *posRepository) GetPayments(ctx context.Context, status string, page, limit int) ([]*entities.Payment, int64, error) {
	var payments []*entities.Payment
	var count int64

	offset := (page - 1) * limit

	query := r.db.WithContext(ctx).Model(&entities.Payment{})
	if status != "" {
		query = query.Where("status = ?", status)
	}

	if err := query.Count(&count).Error; err != nil {
		return nil, 0, err
	}

	if err := query.
		Offset(offset).
		Limit(limit).
		Order("created_at desc").
		Find(&payments).Error; err != nil {
		return nil, 0, err
	}

	return payments, count, nil
}

func (r *posRepository) GetPaymentsByOrder(ctx context.Context, orderID string) ([]*entities.Payment, error) {
	var payments []*entities.Payment
	if err := r.db.WithContext(ctx).
		Where("order_id = ?", orderID).
		Order("created_at asc").
		Find(&payments).Error; err != nil {
		return nil, err
	}
	return payments, nil
}
