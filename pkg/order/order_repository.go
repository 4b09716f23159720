package order

import (
	"QR-Ordering-Backend/domain"
	"QR-Ordering-Backend/entities"
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type (
	OrderRepository interface {
		CreateOrder(ctx context.Context, order *entities.Order) error
		GetOrderByID(ctx context.Context, id uuid.UUID) (*entities.Order, error)
		GetOrders(ctx context.Context, filter domain.OrderFilter) ([]*entities.Order, int64, error)
		GetOrdersByStatus(ctx context.Context, statuses ...entities.OrderStatus) ([]*entities.Order, error)
		UpdateStatus(ctx context.Context, id uuid.UUID, from, to entities.OrderStatus, fields map[string]any) (bool, error)
		MarkItemReady(ctx context.Context, orderID, itemID uuid.UUID, at time.Time) (bool, error)
		ReleaseTableIfIdle(ctx context.Context, tableID uuid.UUID) error
	}

	orderRepository struct {
		db *gorm.DB
	}
)

var openStatuses = []entities.OrderStatus{
	entities.OrderPending,
	entities.OrderPreparing,
	entities.OrderReady,
	entities.OrderServed,
}

func NewOrderRepository(db *gorm.DB) OrderRepository {
	return &orderRepository{
		db: db,
	}
}

// CreateOrder stores the order with its items and modifiers and marks the
// table occupied, all in one transaction.
func (r *orderRepository) CreateOrder(ctx context.Context, order *entities.Order) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(order).Error; err != nil {
			return err
		}
		return tx.Model(&entities.Table{}).
			Where("id = ?", order.TableID).
			Update("status", entities.TableOccupied).Error
	})
}

func (r *orderRepository) withDetails(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Preload("Table").
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		Preload("Items.Modifiers")
}

func (r *orderRepository) GetOrderByID(ctx context.Context, id uuid.UUID) (*entities.Order, error) {
	var order entities.Order
	if err := r.withDetails(ctx).Where("id = ?", id).First(&order).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrOrderNotFound
		}
		return nil, err
	}
	return &order, nil
}

func (r *orderRepository) GetOrders(ctx context.Context, filter domain.OrderFilter) ([]*entities.Order, int64, error) {
	var orders []*entities.Order
	var count int64
	offset := (filter.Page - 1) * filter.Limit

	query := r.db.WithContext(ctx).Model(&entities.Order{})
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.TableID != "" {
		query = query.Where("table_id = ?", filter.TableID)
	}
	if err := query.Count(&count).Error; err != nil {
		return nil, 0, err
	}

	query = r.withDetails(ctx)
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.TableID != "" {
		query = query.Where("table_id = ?", filter.TableID)
	}
	if err := query.
		Order("created_at DESC").
		Offset(offset).
		Limit(filter.Limit).
		Find(&orders).Error; err != nil {
		return nil, 0, err
	}
	return orders, count, nil
}

func (r *orderRepository) GetOrdersByStatus(ctx context.Context, statuses ...entities.OrderStatus) ([]*entities.Order, error) {
	var orders []*entities.Order
	if err := r.withDetails(ctx).
		Where("status IN ?", statuses).
		Order("created_at ASC").
		Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

// UpdateStatus writes the new status only if the row still holds the
// expected one. A false result means another writer got there first.
func (r *orderRepository) UpdateStatus(ctx context.Context, id uuid.UUID, from, to entities.OrderStatus, fields map[string]any) (bool, error) {
	updates := map[string]any{"status": to}
	for k, v := range fields {
		updates[k] = v
	}
	result := r.db.WithContext(ctx).
		Model(&entities.Order{}).
		Where("id = ? AND status = ?", id, from).
		Updates(updates)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected == 1, nil
}

func (r *orderRepository) MarkItemReady(ctx context.Context, orderID, itemID uuid.UUID, at time.Time) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&entities.OrderItem{}).
		Where("id = ? AND order_id = ? AND status = ?", itemID, orderID, entities.OrderItemPending).
		Updates(map[string]any{
			"status":      entities.OrderItemReady,
			"prepared_at": at,
		})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected == 1, nil
}

func (r *orderRepository) ReleaseTableIfIdle(ctx context.Context, tableID uuid.UUID) error {
	var open int64
	if err := r.db.WithContext(ctx).
		Model(&entities.Order{}).
		Where("table_id = ? AND status IN ?", tableID, openStatuses).
		Count(&open).Error; err != nil {
		return err
	}
	if open > 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Model(&entities.Table{}).
		Where("id = ? AND status = ?", tableID, entities.TableOccupied).
		Update("status", entities.TableAvailable).Error
}
