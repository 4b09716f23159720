package payment

import (
	"QR-Ordering-Backend/domain"
	"QR-Ordering-Backend/entities"
	"QR-Ordering-Backend/pkg/menu"
	"QR-Ordering-Backend/pkg/midtrans"
	"QR-Ordering-Backend/pkg/order"
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type quietOrders struct{}

func (quietOrders) OrderCreated(*domain.OrderResponse)                    {}
func (quietOrders) OrderAccepted(*domain.OrderResponse)                   {}
func (quietOrders) OrderStatusUpdated(*domain.OrderResponse)              {}
func (quietOrders) OrderReady(*domain.OrderResponse)                      {}
func (quietOrders) OrderItemStatusUpdated(orderID, itemID, status string) {}

type paymentEvents struct {
	mu       sync.Mutex
	payments []*domain.PaymentResponse
}

func (n *paymentEvents) PaymentCompleted(orderID string, payment *domain.PaymentResponse) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.payments = append(n.payments, payment)
}

func (n *paymentEvents) count() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.payments)
}

type fakeMailer struct {
	to      []string
	bodies  []string
	sendErr error
}

func (m *fakeMailer) SendMail(toEmail, subject, body string) error {
	m.to = append(m.to, toEmail)
	m.bodies = append(m.bodies, body)
	return m.sendErr
}

type fakeGateway struct {
	checkoutRef    string
	checkoutAmount int64
	status         *domain.GatewayStatus
	checkErr       error
}

func (g *fakeGateway) CreateCheckout(ctx context.Context, gatewayRef string, amount int64, email string) (string, string, error) {
	g.checkoutRef = gatewayRef
	g.checkoutAmount = amount
	return "snap-token", "https://pay.example/" + gatewayRef, nil
}

func (g *fakeGateway) CheckTransaction(ctx context.Context, gatewayRef string) (*domain.GatewayStatus, error) {
	if g.checkErr != nil {
		return nil, g.checkErr
	}
	return g.status, nil
}

type harness struct {
	payments PaymentService
	orders   order.OrderService
	events   *paymentEvents
	mailer   *fakeMailer
	gateway  *fakeGateway
	table    *entities.Table
	item     *entities.MenuItem
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	require.NoError(t, db.AutoMigrate(
		&entities.Table{},
		&entities.Category{},
		&entities.ModifierGroup{},
		&entities.ModifierOption{},
		&entities.MenuItem{},
		&entities.Order{},
		&entities.OrderItem{},
		&entities.OrderItemModifier{},
		&entities.Payment{},
	))

	h := &harness{
		events:  &paymentEvents{},
		mailer:  &fakeMailer{},
		gateway: &fakeGateway{},
		table:   &entities.Table{Number: "T07", Capacity: 2},
	}
	require.NoError(t, db.Create(h.table).Error)
	drinks := &entities.Category{Name: "Drinks", IsActive: true}
	require.NoError(t, db.Create(drinks).Error)
	h.item = &entities.MenuItem{CategoryID: drinks.ID, Name: "Iced Tea", Price: 50000, IsAvailable: true}
	require.NoError(t, db.Create(h.item).Error)

	paymentRepository := NewPaymentRepository(db)
	h.orders = order.NewOrderService(order.NewOrderRepository(db), menu.NewMenuRepository(db), paymentRepository, quietOrders{}, 1000)
	h.payments = NewPaymentService(paymentRepository, h.orders, h.gateway, h.events, h.mailer)
	return h
}

// newOrder places two iced teas: 100000 plus 10% tax.
func (h *harness) newOrder(t *testing.T) *domain.OrderResponse {
	t.Helper()
	o, err := h.orders.CreateOrder(context.Background(), h.table.ID.String(), domain.CreateOrderRequest{
		Items: []domain.CreateOrderItemRequest{{MenuItemID: h.item.ID.String(), Quantity: 2}},
	})
	require.NoError(t, err)
	require.Equal(t, int64(110000), o.TotalAmount)
	return o
}

func (h *harness) serve(t *testing.T, orderID string) {
	t.Helper()
	ctx := context.Background()
	for _, step := range []func(context.Context, string) (*domain.OrderResponse, error){
		h.orders.AcceptOrder, h.orders.MarkOrderReady, h.orders.MarkServed,
	} {
		_, err := step(ctx, orderID)
		require.NoError(t, err)
	}
}

func TestRecordPartialPayments(t *testing.T) {
	h := newHarness(t)
	o := h.newOrder(t)
	ctx := context.Background()
	staffID := uuid.NewString()

	_, err := h.payments.RecordPayment(ctx, o.ID, domain.RecordPaymentRequest{Amount: 60000, Method: "CASH"}, staffID)
	require.NoError(t, err)

	_, err = h.payments.RecordPayment(ctx, o.ID, domain.RecordPaymentRequest{Amount: 60000, Method: "CARD"}, staffID)
	assert.ErrorIs(t, err, domain.ErrPaymentExceedsBalance)

	_, err = h.payments.RecordPayment(ctx, o.ID, domain.RecordPaymentRequest{Amount: 50000, Method: "CARD", Reference: "EDC-1"}, staffID)
	require.NoError(t, err)

	summary, err := h.payments.GetSummary(ctx, o.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(110000), summary.Total)
	assert.Equal(t, int64(110000), summary.Paid)
	assert.Equal(t, int64(0), summary.Outstanding)
	require.Len(t, summary.Payments, 2)
	assert.Equal(t, "EDC-1", summary.Payments[1].Reference)
	assert.Equal(t, 2, h.events.count())

	_, err = h.payments.RecordPayment(ctx, o.ID, domain.RecordPaymentRequest{Amount: 1, Method: "CASH"}, staffID)
	assert.ErrorIs(t, err, domain.ErrOrderAlreadyPaid)

	// paid before being served, so it stays open
	current, err := h.orders.GetOrder(ctx, o.ID)
	require.NoError(t, err)
	assert.Equal(t, string(entities.OrderPending), current.Status)
}

func TestFullPaymentCompletesServedOrder(t *testing.T) {
	h := newHarness(t)
	o := h.newOrder(t)
	h.serve(t, o.ID)
	ctx := context.Background()

	_, err := h.payments.RecordPayment(ctx, o.ID, domain.RecordPaymentRequest{
		Amount: 110000, Method: "CASH", ReceiptEmail: "guest@example.com",
	}, "")
	require.NoError(t, err)

	current, err := h.orders.GetOrder(ctx, o.ID)
	require.NoError(t, err)
	assert.Equal(t, string(entities.OrderCompleted), current.Status)

	require.Equal(t, []string{"guest@example.com"}, h.mailer.to)
	assert.Contains(t, h.mailer.bodies[0], "Iced Tea")
	assert.Contains(t, h.mailer.bodies[0], "Remaining balance: 0")

	_, err = h.payments.RecordPayment(ctx, o.ID, domain.RecordPaymentRequest{Amount: 1, Method: "CASH"}, "")
	assert.ErrorIs(t, err, domain.ErrPaymentOrderClosed)
}

func TestMailerFailureDoesNotFailPayment(t *testing.T) {
	h := newHarness(t)
	h.mailer.sendErr = errors.New("smtp down")
	o := h.newOrder(t)

	resp, err := h.payments.RecordPayment(context.Background(), o.ID, domain.RecordPaymentRequest{
		Amount: 10000, Method: "CASH", ReceiptEmail: "guest@example.com",
	}, "")
	require.NoError(t, err)
	assert.Equal(t, int64(10000), resp.Amount)
}

func TestRecordPaymentOnCancelledOrder(t *testing.T) {
	h := newHarness(t)
	o := h.newOrder(t)
	_, err := h.orders.CancelOrder(context.Background(), o.ID, "walked out")
	require.NoError(t, err)

	_, err = h.payments.RecordPayment(context.Background(), o.ID, domain.RecordPaymentRequest{Amount: 1000, Method: "CASH"}, "")
	assert.ErrorIs(t, err, domain.ErrPaymentOrderClosed)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
}

func TestCreateOnlineCheckout(t *testing.T) {
	h := newHarness(t)
	o := h.newOrder(t)
	ctx := context.Background()
	_, err := h.payments.RecordPayment(ctx, o.ID, domain.RecordPaymentRequest{Amount: 10000, Method: "CASH"}, "")
	require.NoError(t, err)

	checkout, err := h.payments.CreateOnlineCheckout(ctx, o.ID, h.table.ID.String(), domain.OnlinePaymentRequest{})
	require.NoError(t, err)
	assert.Equal(t, int64(100000), checkout.Amount)
	assert.Equal(t, "snap-token", checkout.Token)
	assert.Equal(t, h.gateway.checkoutRef, checkout.GatewayRef)
	assert.True(t, strings.HasPrefix(checkout.GatewayRef, "ORD-"+o.ID))

	_, err = h.payments.CreateOnlineCheckout(ctx, o.ID, uuid.NewString(), domain.OnlinePaymentRequest{})
	assert.ErrorIs(t, err, domain.ErrOrderNotForThisTable)
}

func TestMidtransNotificationIsIdempotent(t *testing.T) {
	h := newHarness(t)
	o := h.newOrder(t)
	h.serve(t, o.ID)
	ctx := context.Background()

	ref := GatewayRef(o.ID, time.Now())
	h.gateway.status = &domain.GatewayStatus{
		OrderRef:      ref,
		TransactionID: "trx-1",
		Status:        midtrans.StatusSettlement,
		Amount:        110000,
	}
	notification := domain.MidtransNotification{OrderID: ref, TransactionID: "trx-1", TransactionStatus: "settlement"}

	require.NoError(t, h.payments.HandleMidtransNotification(ctx, notification))
	require.NoError(t, h.payments.HandleMidtransNotification(ctx, notification))

	summary, err := h.payments.GetSummary(ctx, o.ID)
	require.NoError(t, err)
	require.Len(t, summary.Payments, 1)
	assert.Equal(t, "MIDTRANS", summary.Payments[0].Method)
	assert.Equal(t, "trx-1", summary.Payments[0].Reference)
	assert.Equal(t, string(entities.OrderCompleted), summary.OrderStatus)
	assert.Equal(t, 1, h.events.count())
}

func TestMidtransNotificationIgnoresUnpaidStatus(t *testing.T) {
	h := newHarness(t)
	o := h.newOrder(t)
	ctx := context.Background()

	ref := GatewayRef(o.ID, time.Now())
	h.gateway.status = &domain.GatewayStatus{OrderRef: ref, TransactionID: "trx-2", Status: "pending", Amount: 110000}

	require.NoError(t, h.payments.HandleMidtransNotification(ctx, domain.MidtransNotification{OrderID: ref}))

	summary, err := h.payments.GetSummary(ctx, o.ID)
	require.NoError(t, err)
	assert.Empty(t, summary.Payments)
	assert.Zero(t, h.events.count())
}

func TestMidtransNotificationRejectsUnknownReference(t *testing.T) {
	h := newHarness(t)
	err := h.payments.HandleMidtransNotification(context.Background(), domain.MidtransNotification{OrderID: "INV-123"})
	assert.ErrorIs(t, err, domain.ErrGatewayOrderInvalid)
}

func TestGatewayRefRoundTrip(t *testing.T) {
	id := uuid.NewString()
	ref := GatewayRef(id, time.Unix(1760000000, 0))
	assert.Equal(t, "ORD-"+id+"-1760000000", ref)

	parsed, err := ParseGatewayRef(ref)
	require.NoError(t, err)
	assert.Equal(t, id, parsed)

	for _, bad := range []string{"", "ORD-", "ORD-not-a-uuid-at-all-but-long-enough-1", id} {
		_, err := ParseGatewayRef(bad)
		assert.ErrorIs(t, err, domain.ErrGatewayOrderInvalid, bad)
	}
}

func TestGatewayDisabled(t *testing.T) {
	svc := NewPaymentService(nil, nil, nil, &paymentEvents{}, nil)
	_, err := svc.CreateOnlineCheckout(context.Background(), uuid.NewString(), uuid.NewString(), domain.OnlinePaymentRequest{})
	assert.ErrorIs(t, err, domain.ErrPaymentGatewayOff)
	assert.ErrorIs(t, svc.HandleMidtransNotification(context.Background(), domain.MidtransNotification{}), domain.ErrPaymentGatewayOff)
}

func TestPrepaidOrderCompletesWhenServed(t *testing.T) {
	h := newHarness(t)
	o := h.newOrder(t)
	ctx := context.Background()

	_, err := h.payments.RecordPayment(ctx, o.ID, domain.RecordPaymentRequest{Amount: 110000, Method: "CARD"}, "")
	require.NoError(t, err)
	current, err := h.orders.GetOrder(ctx, o.ID)
	require.NoError(t, err)
	require.Equal(t, string(entities.OrderPending), current.Status)

	h.serve(t, o.ID)

	current, err = h.orders.GetOrder(ctx, o.ID)
	require.NoError(t, err)
	assert.Equal(t, string(entities.OrderCompleted), current.Status)
}
