package order

import (
	"QR-Ordering-Backend/domain"
	"QR-Ordering-Backend/entities"
	"QR-Ordering-Backend/pkg/menu"
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(
		&entities.User{},
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
	return db
}

type fixture struct {
	table   *entities.Table
	burger  *entities.MenuItem
	fries   *entities.MenuItem
	soup    *entities.MenuItem
	regular *entities.ModifierOption
	large   *entities.ModifierOption
	cheese  *entities.ModifierOption
	bacon   *entities.ModifierOption
}

func seedFixture(t *testing.T, db *gorm.DB) fixture {
	t.Helper()
	f := fixture{
		table:   &entities.Table{Number: "T01", Capacity: 4},
		regular: &entities.ModifierOption{Name: "Regular", IsAvailable: true},
		large:   &entities.ModifierOption{Name: "Large", PriceDelta: 10000, IsAvailable: true},
		cheese:  &entities.ModifierOption{Name: "Cheese", PriceDelta: 5000, IsAvailable: true},
		bacon:   &entities.ModifierOption{Name: "Bacon", PriceDelta: 8000, IsAvailable: false},
	}
	require.NoError(t, db.Create(f.table).Error)

	size := &entities.ModifierGroup{Name: "Size", IsRequired: true, MaxSelect: 1,
		Options: []*entities.ModifierOption{f.regular, f.large}}
	extras := &entities.ModifierGroup{Name: "Extras",
		Options: []*entities.ModifierOption{f.cheese, f.bacon}}
	require.NoError(t, db.Create(size).Error)
	require.NoError(t, db.Create(extras).Error)

	mains := &entities.Category{Name: "Mains", IsActive: true}
	require.NoError(t, db.Create(mains).Error)

	f.burger = &entities.MenuItem{CategoryID: mains.ID, Name: "Burger", Price: 50000, IsAvailable: true,
		ModifierGroups: []*entities.ModifierGroup{size, extras}}
	f.fries = &entities.MenuItem{CategoryID: mains.ID, Name: "Fries", Price: 20000, IsAvailable: true}
	f.soup = &entities.MenuItem{CategoryID: mains.ID, Name: "Soup", Price: 25000, IsAvailable: false}
	for _, item := range []*entities.MenuItem{f.burger, f.fries, f.soup} {
		require.NoError(t, db.Omit("ModifierGroups.*").Create(item).Error)
	}
	return f
}

// twoItemCart is a burger with a size modifier and a plain portion of fries.
func (f fixture) twoItemCart() domain.CreateOrderRequest {
	return domain.CreateOrderRequest{
		Items: []domain.CreateOrderItemRequest{
			{MenuItemID: f.burger.ID.String(), Quantity: 2, ModifierOptionIDs: []string{f.large.ID.String()}, SpecialRequest: "no onions"},
			{MenuItemID: f.fries.ID.String(), Quantity: 1},
		},
	}
}

type recordingNotifier struct {
	mu    sync.Mutex
	calls []string
}

func (n *recordingNotifier) record(call string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.calls = append(n.calls, call)
}

func (n *recordingNotifier) Calls() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]string(nil), n.calls...)
}

func (n *recordingNotifier) Reset() {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.calls = nil
}

func (n *recordingNotifier) OrderCreated(order *domain.OrderResponse) {
	n.record("created:" + order.Status)
}

func (n *recordingNotifier) OrderAccepted(order *domain.OrderResponse) {
	n.record("accepted:" + order.Status)
}

func (n *recordingNotifier) OrderStatusUpdated(order *domain.OrderResponse) {
	n.record("status:" + order.Status)
}

func (n *recordingNotifier) OrderReady(order *domain.OrderResponse) {
	n.record("ready:" + order.Status)
}

func (n *recordingNotifier) OrderItemStatusUpdated(orderID, itemID, status string) {
	n.record("item:" + status)
}

func newTestService(t *testing.T, notifier Notifier) (OrderService, OrderRepository, fixture) {
	t.Helper()
	db := newTestDB(t)
	f := seedFixture(t, db)
	repo := NewOrderRepository(db)
	svc := NewOrderService(repo, menu.NewMenuRepository(db), nil, notifier, 1000)
	return svc, repo, f
}

func createOrder(t *testing.T, svc OrderService, f fixture) *domain.OrderResponse {
	t.Helper()
	resp, err := svc.CreateOrder(context.Background(), f.table.ID.String(), f.twoItemCart())
	require.NoError(t, err)
	return resp
}

func menuRepo(db *gorm.DB) menu.MenuRepository {
	return menu.NewMenuRepository(db)
}
