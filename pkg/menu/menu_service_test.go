package menu

import (
	"QR-Ordering-Backend/entities"
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
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
		&entities.Category{},
		&entities.ModifierGroup{},
		&entities.ModifierOption{},
		&entities.MenuItem{},
	))
	return db
}

func TestGetMenuShowsOnlyOrderableItems(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	spice := &entities.ModifierGroup{Name: "Spice", MaxSelect: 1, Options: []*entities.ModifierOption{
		{Name: "Mild", IsAvailable: true},
		{Name: "Volcano", PriceDelta: 2000, IsAvailable: false},
	}}
	require.NoError(t, db.Create(spice).Error)

	mains := &entities.Category{Name: "Mains", SortOrder: 1, IsActive: true}
	drinks := &entities.Category{Name: "Drinks", SortOrder: 2, IsActive: true}
	desserts := &entities.Category{Name: "Desserts", SortOrder: 3, IsActive: true}
	hidden := &entities.Category{Name: "Secret", SortOrder: 0, IsActive: false}
	for _, c := range []*entities.Category{mains, drinks, desserts, hidden} {
		require.NoError(t, db.Create(c).Error)
	}

	items := []*entities.MenuItem{
		{CategoryID: mains.ID, Name: "Noodles", Price: 30000, IsAvailable: true, ModifierGroups: []*entities.ModifierGroup{spice}},
		{CategoryID: mains.ID, Name: "Curry", Price: 35000, IsAvailable: true},
		{CategoryID: drinks.ID, Name: "Coffee", Price: 15000, IsAvailable: true},
		{CategoryID: desserts.ID, Name: "Pudding", Price: 12000, IsAvailable: false},
		{CategoryID: hidden.ID, Name: "Chef Special", Price: 99000, IsAvailable: true},
	}
	for _, item := range items {
		require.NoError(t, db.Omit("ModifierGroups.*").Create(item).Error)
	}

	menu, err := NewMenuService(NewMenuRepository(db)).GetMenu(ctx)
	require.NoError(t, err)

	require.Len(t, menu, 2)
	assert.Equal(t, "Mains", menu[0].Name)
	assert.Equal(t, "Drinks", menu[1].Name)

	require.Len(t, menu[0].Items, 2)
	assert.Equal(t, "Curry", menu[0].Items[0].Name)
	noodles := menu[0].Items[1]
	require.Len(t, noodles.ModifierGroups, 1)
	require.Len(t, noodles.ModifierGroups[0].Options, 1)
	assert.Equal(t, "Mild", noodles.ModifierGroups[0].Options[0].Name)
}

func TestGetMenuItemsByIDsKeepsUnavailableOptions(t *testing.T) {
	db := newTestDB(t)
	group := &entities.ModifierGroup{Name: "Milk", Options: []*entities.ModifierOption{
		{Name: "Oat", IsAvailable: true},
		{Name: "Soy", IsAvailable: false},
	}}
	require.NoError(t, db.Create(group).Error)
	cat := &entities.Category{Name: "Drinks", IsActive: true}
	require.NoError(t, db.Create(cat).Error)
	latte := &entities.MenuItem{CategoryID: cat.ID, Name: "Latte", Price: 25000, IsAvailable: true,
		ModifierGroups: []*entities.ModifierGroup{group}}
	require.NoError(t, db.Omit("ModifierGroups.*").Create(latte).Error)

	got, err := NewMenuRepository(db).GetMenuItemsByIDs(context.Background(), []uuid.UUID{latte.ID, uuid.New()})
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.Len(t, got[0].ModifierGroups, 1)
	assert.Len(t, got[0].ModifierGroups[0].Options, 2)

	empty, err := NewMenuRepository(db).GetMenuItemsByIDs(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, empty)
}
