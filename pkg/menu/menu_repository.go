package menu

import (
	"QR-Ordering-Backend/entities"
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type (
	MenuRepository interface {
		GetActiveCategories(ctx context.Context) ([]*entities.Category, error)
		GetMenuItemsByIDs(ctx context.Context, ids []uuid.UUID) ([]*entities.MenuItem, error)
	}

	menuRepository struct {
		db *gorm.DB
	}
)

func NewMenuRepository(db *gorm.DB) MenuRepository {
	return &menuRepository{
		db: db,
	}
}

func (r *menuRepository) GetActiveCategories(ctx context.Context) ([]*entities.Category, error) {
	var categories []*entities.Category
	if err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Where("is_available = ?", true).Order("name ASC")
		}).
		Preload("Items.ModifierGroups").
		Preload("Items.ModifierGroups.Options", func(db *gorm.DB) *gorm.DB {
			return db.Where("is_available = ?", true)
		}).
		Order("sort_order ASC").
		Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

// GetMenuItemsByIDs loads items with every modifier option, available or
// not, so callers can tell "unavailable" apart from "unknown".
func (r *menuRepository) GetMenuItemsByIDs(ctx context.Context, ids []uuid.UUID) ([]*entities.MenuItem, error) {
	var items []*entities.MenuItem
	if len(ids) == 0 {
		return items, nil
	}
	if err := r.db.WithContext(ctx).
		Where("id IN ?", ids).
		Preload("ModifierGroups").
		Preload("ModifierGroups.Options").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}
