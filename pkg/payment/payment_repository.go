package payment

import (
	"QR-Ordering-Backend/entities"
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type (
	PaymentRepository interface {
		CreatePayment(ctx context.Context, payment *entities.Payment) error
		GetPaymentsByOrder(ctx context.Context, orderID uuid.UUID) ([]*entities.Payment, error)
		SumPaid(ctx context.Context, orderID uuid.UUID) (int64, error)
		ExistsByReference(ctx context.Context, reference string) (bool, error)
	}

	paymentRepository struct {
		db *gorm.DB
	}
)

func NewPaymentRepository(db *gorm.DB) PaymentRepository {
	return &paymentRepository{
		db: db,
	}
}

func (r *paymentRepository) CreatePayment(ctx context.Context, payment *entities.Payment) error {
	return r.db.WithContext(ctx).Create(payment).Error
}

func (r *paymentRepository) GetPaymentsByOrder(ctx context.Context, orderID uuid.UUID) ([]*entities.Payment, error) {
	var payments []*entities.Payment
	if err := r.db.WithContext(ctx).
		Where("order_id = ?", orderID).
		Order("paid_at ASC").
		Find(&payments).Error; err != nil {
		return nil, err
	}
	return payments, nil
}

func (r *paymentRepository) SumPaid(ctx context.Context, orderID uuid.UUID) (int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).
		Model(&entities.Payment{}).
		Where("order_id = ?", orderID).
		Select("COALESCE(SUM(amount), 0) as total").
		Row().Scan(&total); err != nil {
		return 0, err
	}
	return total, nil
}

func (r *paymentRepository) ExistsByReference(ctx context.Context, reference string) (bool, error) {
	var payment entities.Payment
	if err := r.db.WithContext(ctx).
		Where("reference = ?", reference).
		First(&payment).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}
