package pos

import (
	"Resto-POS-Backend/domain"
	"Resto-POS-Backend/entities"
	"Resto-POS-Backend/pkg/menu"
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type fakeGateway struct {
	fail    bool
	charges int
}

func (f *fakeGateway) CreateCharge(ctx context.Context, paymentID string, amount float64) (domain.GatewayChargeResponse, error) {
	if f.fail {
		return domain.GatewayChargeResponse{}, domain.ErrGatewayUnavailable
	}
	f.charges++
	return domain.GatewayChargeResponse{
		Token:       "tok-" + paymentID,
		RedirectURL: "https://pay.test/" + paymentID,
	}, nil
}

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
		&entities.Table{},
		&entities.Order{},
		&entities.OrderItem{},
		&entities.Payment{},
	))
	return db
}

type posFixture struct {
	svc      PosService
	gateway  *fakeGateway
	table    domain.TableResponse
	menuItem *entities.MenuItem
	userID   string
}

func newFixture(t *testing.T) *posFixture {
	t.Helper()
	db := setupTestDB(t)
	gw := &fakeGateway{}
	svc := NewPosService(NewPosRepository(db), menu.NewMenuRepository(db), gw)
	ctx := context.Background()

	category := &entities.MenuCategory{ID: uuid.New(), Name: "Mains", IsActive: true}
	require.NoError(t, db.Create(category).Error)

	item := &entities.MenuItem{
		ID:          uuid.New(),
		Name:        "Doro Wat",
		Price:       10.0,
		Cost:        4.0,
		CategoryID:  category.ID,
		IsAvailable: true,
	}
	require.NoError(t, db.Create(item).Error)

	table, err := svc.CreateTable(ctx, domain.CreateTableRequest{Name: "T1", Capacity: 4})
	require.NoError(t, err)

	return &posFixture{
		svc:      svc,
		gateway:  gw,
		table:    table,
		menuItem: item,
		userID:   uuid.NewString(),
	}
}

func (f *posFixture) createOrder(t *testing.T, quantity int) domain.OrderResponse {
	t.Helper()
	order, err := f.svc.CreateOrder(context.Background(), domain.CreateOrderRequest{
		TableID: f.table.ID,
		Items: []domain.OrderItemRequest{
			{MenuItemID: f.menuItem.ID.String(), Quantity: quantity},
		},
	}, f.userID)
	require.NoError(t, err)
	return order
}

func TestCreateOrderComputesTotalsAndOccupiesTable(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	order, err := f.svc.CreateOrder(ctx, domain.CreateOrderRequest{
		TableID:  f.table.ID,
		Tax:      1.5,
		Discount: 0.5,
		Items: []domain.OrderItemRequest{
			{MenuItemID: f.menuItem.ID.String(), Quantity: 2},
		},
	}, f.userID)
	require.NoError(t, err)

	assert.Equal(t, 20.0, order.Subtotal)
	assert.Equal(t, 21.0, order.Total)
	assert.Equal(t, domain.OrderStatusNew, order.Status)
	assert.Equal(t, domain.PaymentStatusPending, order.PaymentStatus)
	require.Len(t, order.Items, 1)
	assert.Equal(t, "Doro Wat", order.Items[0].MenuItemName)

	table, err := f.svc.GetTableByID(ctx, f.table.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.TableStatusOccupied, table.Status)
}

func TestCreateOrderValidation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.CreateOrder(ctx, domain.CreateOrderRequest{
		TableID: f.table.ID,
		Items:   []domain.OrderItemRequest{},
	}, f.userID)
	assert.ErrorIs(t, err, domain.ErrOrderNoItems)

	_, err = f.svc.CreateOrder(ctx, domain.CreateOrderRequest{
		TableID: uuid.NewString(),
		Items: []domain.OrderItemRequest{
			{MenuItemID: f.menuItem.ID.String(), Quantity: 1},
		},
	}, f.userID)
	assert.ErrorIs(t, err, domain.ErrTableNotFound)
}

func TestDeleteTableWithActiveOrdersBlocked(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	order := f.createOrder(t, 1)

	err := f.svc.DeleteTable(ctx, f.table.ID)
	assert.ErrorIs(t, err, domain.ErrTableHasActiveOrders)

	// cancelling the only active order unblocks the delete and frees the table
	_, err = f.svc.UpdateOrder(ctx, order.ID, domain.UpdateOrderRequest{
		Status: domain.OrderStatusCancelled,
	})
	require.NoError(t, err)

	table, err := f.svc.GetTableByID(ctx, f.table.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.TableStatusAvailable, table.Status)

	require.NoError(t, f.svc.DeleteTable(ctx, f.table.ID))
}

func TestOrderStatusTransitions(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	order := f.createOrder(t, 1)

	// skipping preparation is not allowed
	_, err := f.svc.UpdateOrder(ctx, order.ID, domain.UpdateOrderRequest{
		Status: domain.OrderStatusServed,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidStatusChange)

	// paid is only reachable through payments
	_, err = f.svc.UpdateOrder(ctx, order.ID, domain.UpdateOrderRequest{
		Status: domain.OrderStatusPaid,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidStatusChange)

	for _, status := range []string{
		domain.OrderStatusPreparing,
		domain.OrderStatusReady,
		domain.OrderStatusServed,
	} {
		updated, err := f.svc.UpdateOrder(ctx, order.ID, domain.UpdateOrderRequest{Status: status})
		require.NoError(t, err)
		assert.Equal(t, status, updated.Status)
	}

	_, err = f.svc.UpdateOrder(ctx, order.ID, domain.UpdateOrderRequest{
		Status: domain.OrderStatusCancelled,
	})
	require.NoError(t, err)

	// cancelled is terminal
	_, err = f.svc.UpdateOrder(ctx, order.ID, domain.UpdateOrderRequest{
		Status: domain.OrderStatusNew,
	})
	assert.ErrorIs(t, err, domain.ErrOrderCancelled)
}

func TestSettledOrderRejectsAmountChanges(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	order := f.createOrder(t, 1) // total 10

	_, err := f.svc.CreatePayment(ctx, domain.CreatePaymentRequest{
		OrderID: order.ID,
		Amount:  10,
		Method:  domain.PaymentMethodCash,
	}, f.userID)
	require.NoError(t, err)

	// the paid total is backed by its payments, so tax and discount are frozen
	tax := 5.0
	_, err = f.svc.UpdateOrder(ctx, order.ID, domain.UpdateOrderRequest{Tax: &tax})
	assert.ErrorIs(t, err, domain.ErrOrderAlreadyPaid)

	after, err := f.svc.GetOrderByID(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, 10.0, after.Total)
	assert.Equal(t, domain.PaymentStatusPaid, after.PaymentStatus)

	// cancelled orders are just as closed
	cancelled := f.createOrder(t, 1)
	_, err = f.svc.UpdateOrder(ctx, cancelled.ID, domain.UpdateOrderRequest{
		Status: domain.OrderStatusCancelled,
	})
	require.NoError(t, err)

	discount := 2.0
	_, err = f.svc.UpdateOrder(ctx, cancelled.ID, domain.UpdateOrderRequest{Discount: &discount})
	assert.ErrorIs(t, err, domain.ErrOrderCancelled)
}

func TestCashPaymentPartialThenFull(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	order := f.createOrder(t, 2) // total 20

	payment, err := f.svc.CreatePayment(ctx, domain.CreatePaymentRequest{
		OrderID: order.ID,
		Amount:  8,
		Method:  domain.PaymentMethodCash,
	}, f.userID)
	require.NoError(t, err)
	assert.Equal(t, domain.PaymentRecordCompleted, payment.Status)

	afterPartial, err := f.svc.GetOrderByID(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.PaymentStatusPartial, afterPartial.PaymentStatus)
	assert.Equal(t, domain.OrderStatusNew, afterPartial.Status)

	_, err = f.svc.CreatePayment(ctx, domain.CreatePaymentRequest{
		OrderID: order.ID,
		Amount:  12,
		Method:  domain.PaymentMethodCash,
	}, f.userID)
	require.NoError(t, err)

	afterFull, err := f.svc.GetOrderByID(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.PaymentStatusPaid, afterFull.PaymentStatus)
	assert.Equal(t, domain.OrderStatusPaid, afterFull.Status)

	table, err := f.svc.GetTableByID(ctx, f.table.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.TableStatusDirty, table.Status)

	// a paid order accepts no further payments
	_, err = f.svc.CreatePayment(ctx, domain.CreatePaymentRequest{
		OrderID: order.ID,
		Amount:  1,
		Method:  domain.PaymentMethodCash,
	}, f.userID)
	assert.ErrorIs(t, err, domain.ErrOrderAlreadyPaid)
}

func TestPaymentOvershootRejected(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	order := f.createOrder(t, 1) // total 10

	_, err := f.svc.CreatePayment(ctx, domain.CreatePaymentRequest{
		OrderID: order.ID,
		Amount:  15,
		Method:  domain.PaymentMethodCash,
	}, f.userID)
	assert.ErrorIs(t, err, domain.ErrPaymentExceedsBalance)

	after, err := f.svc.GetOrderByID(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.PaymentStatusPending, after.PaymentStatus)

	payments, err := f.svc.GetPaymentsByOrder(ctx, order.ID)
	require.NoError(t, err)
	assert.Empty(t, payments)
}

func TestGatewayPaymentSettlesViaWebhook(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	order := f.createOrder(t, 1) // total 10

	payment, err := f.svc.CreatePayment(ctx, domain.CreatePaymentRequest{
		OrderID: order.ID,
		Amount:  10,
		Method:  domain.PaymentMethodTelebirr,
	}, f.userID)
	require.NoError(t, err)
	assert.Equal(t, domain.PaymentRecordPending, payment.Status)
	assert.NotEmpty(t, payment.RedirectURL)
	assert.Equal(t, 1, f.gateway.charges)

	// a pending payment settles nothing yet
	pending, err := f.svc.GetOrderByID(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.PaymentStatusPending, pending.PaymentStatus)

	err = f.svc.HandleGatewayNotification(ctx, domain.GatewayNotificationRequest{
		OrderID:           payment.ID,
		TransactionStatus: "settlement",
	})
	require.NoError(t, err)

	settled, err := f.svc.GetOrderByID(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.PaymentStatusPaid, settled.PaymentStatus)
	assert.Equal(t, domain.OrderStatusPaid, settled.Status)

	// webhook retries are idempotent
	err = f.svc.HandleGatewayNotification(ctx, domain.GatewayNotificationRequest{
		OrderID:           payment.ID,
		TransactionStatus: "settlement",
	})
	require.NoError(t, err)
}

func TestGatewayPaymentDenied(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	order := f.createOrder(t, 1)

	payment, err := f.svc.CreatePayment(ctx, domain.CreatePaymentRequest{
		OrderID: order.ID,
		Amount:  10,
		Method:  domain.PaymentMethodChapa,
	}, f.userID)
	require.NoError(t, err)

	err = f.svc.HandleGatewayNotification(ctx, domain.GatewayNotificationRequest{
		OrderID:           payment.ID,
		TransactionStatus: "deny",
	})
	require.NoError(t, err)

	after, err := f.svc.GetOrderByID(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.PaymentStatusPending, after.PaymentStatus)

	payments, err := f.svc.GetPaymentsByOrder(ctx, order.ID)
	require.NoError(t, err)
	require.Len(t, payments, 1)
	assert.Equal(t, domain.PaymentRecordFailed, payments[0].Status)
}

func TestGatewayUnavailable(t *testing.T) {
	f := newFixture(t)
	f.gateway.fail = true
	ctx := context.Background()

	order := f.createOrder(t, 1)

	_, err := f.svc.CreatePayment(ctx, domain.CreatePaymentRequest{
		OrderID: order.ID,
		Amount:  10,
		Method:  domain.PaymentMethodCard,
	}, f.userID)
	assert.ErrorIs(t, err, domain.ErrGatewayUnavailable)

	payments, err := f.svc.GetPaymentsByOrder(ctx, order.ID)
	require.NoError(t, err)
	assert.Empty(t, payments)
}
