package report

import (
	"Resto-POS-Backend/domain"
	"Resto-POS-Backend/entities"
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type (
	ReportRepository interface {
		GetItemSales(ctx context.Context, start, end time.Time, limit int) ([]itemSalesRow, error)
		GetPaidOrders(ctx context.Context, start, end time.Time) ([]*entities.Order, error)
		GetEmployeeSales(ctx context.Context, start, end time.Time) ([]employeeRow, error)
		GetTheoreticalUsage(ctx context.Context, start, end time.Time) ([]usageRow, error)
		GetActualUsage(ctx context.Context, start, end time.Time) ([]usageRow, error)
	}

	reportRepository struct {
		db *gorm.DB
	}

	itemSalesRow struct {
		MenuItemID   uuid.UUID
		MenuItemName string
		QuantitySold int
		Revenue      float64
		Cost         float64
	}

	employeeRow struct {
		EmployeeID         uuid.UUID
		EmployeeName       string
		TotalOrdersHandled int
		TotalSales         float64
	}

	usageRow struct {
		IngredientID   uuid.UUID
		IngredientName string
		UsedQuantity   float64
	}
)

func NewReportRepository(db *gorm.DB) ReportRepository {
	return &reportRepository{db: db}
}

// withRetry runs a read once more after a failure. Reports aggregate over
// hot tables and can lose a race to a writer; one bounded retry is enough.
func withRetry(fn func() error) error {
	if err := fn(); err != nil {
		time.Sleep(50 * time.Millisecond)
		return fn()
	}
	return nil
}

func (r *reportRepository) GetItemSales(ctx context.Context, start, end time.Time, limit int) ([]itemSalesRow, error) {
	var rows []itemSalesRow
	err := withRetry(func() error {
		query := r.db.WithContext(ctx).Raw(`
			SELECT mi.id AS menu_item_id,
			       mi.name AS menu_item_name,
			       COALESCE(SUM(oi.quantity), 0) AS quantity_sold,
			       COALESCE(SUM(oi.quantity * oi.unit_price), 0) AS revenue,
			       COALESCE(SUM(oi.quantity * mi.cost), 0) AS cost
			FROM order_items oi
			JOIN orders o ON o.id = oi.order_id
			JOIN menu_items mi ON mi.id = oi.menu_item_id
			WHERE o.status = ? AND o.created_at >= ? AND o.created_at < ?
			GROUP BY mi.id, mi.name
			ORDER BY quantity_sold DESC`,
			domain.OrderStatusPaid, start, end)
		return query.Scan(&rows).Error
	})
	if err != nil {
		return nil, err
	}
	if limit > 0 && len(rows) > limit {
		rows = rows[:limit]
	}
	return rows, nil
}

func (r *reportRepository) GetPaidOrders(ctx context.Context, start, end time.Time) ([]*entities.Order, error) {
	var orders []*entities.Order
	err := withRetry(func() error {
		return r.db.WithContext(ctx).
			Where("status = ? AND created_at >= ? AND created_at < ?",
				domain.OrderStatusPaid, start, end).
			Order("created_at asc").
			Find(&orders).Error
	})
	if err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *reportRepository) GetEmployeeSales(ctx context.Context, start, end time.Time) ([]employeeRow, error) {
	var rows []employeeRow
	err := withRetry(func() error {
		return r.db.WithContext(ctx).Raw(`
			SELECT u.id AS employee_id,
			       u.full_name AS employee_name,
			       COUNT(o.id) AS total_orders_handled,
			       COALESCE(SUM(o.total), 0) AS total_sales
			FROM orders o
			JOIN users u ON u.id = o.user_id
			WHERE o.status = ? AND o.created_at >= ? AND o.created_at < ?
			GROUP BY u.id, u.full_name
			ORDER BY total_sales DESC`,
			domain.OrderStatusPaid, start, end).
			Scan(&rows).Error
	})
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// GetTheoreticalUsage expands every paid order item through its menu item's
// recipe to the ingredient quantities the kitchen should have consumed.
func (r *reportRepository) GetTheoreticalUsage(ctx context.Context, start, end time.Time) ([]usageRow, error) {
	var rows []usageRow
	err := withRetry(func() error {
		return r.db.WithContext(ctx).Raw(`
			SELECT i.id AS ingredient_id,
			       i.name AS ingredient_name,
			       COALESCE(SUM(oi.quantity * ri.quantity), 0) AS used_quantity
			FROM ingredients i
			JOIN recipe_ingredients ri ON ri.ingredient_id = i.id
			JOIN recipes rc ON rc.id = ri.recipe_id
			JOIN order_items oi ON oi.menu_item_id = rc.menu_item_id
			JOIN orders o ON o.id = oi.order_id
			WHERE o.status = ? AND o.created_at >= ? AND o.created_at < ?
			GROUP BY i.id, i.name`,
			domain.OrderStatusPaid, start, end).
			Scan(&rows).Error
	})
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// GetActualUsage sums issuing transactions per ingredient.
func (r *reportRepository) GetActualUsage(ctx context.Context, start, end time.Time) ([]usageRow, error) {
	var rows []usageRow
	err := withRetry(func() error {
		return r.db.WithContext(ctx).Raw(`
			SELECT i.id AS ingredient_id,
			       i.name AS ingredient_name,
			       COALESCE(SUM(ti.quantity), 0) AS used_quantity
			FROM inventory_transaction_items ti
			JOIN inventory_transactions t ON t.id = ti.transaction_id
			JOIN ingredients i ON i.id = ti.ingredient_id
			WHERE t.type = ? AND t.date >= ? AND t.date < ?
			GROUP BY i.id, i.name`,
			domain.TransactionTypeIssuing, start, end).
			Scan(&rows).Error
	})
	if err != nil {
		return nil, err
	}
	return rows, nil
}
