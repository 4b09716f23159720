package table

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
	TableRepository interface {
		GetTables(ctx context.Context) ([]*entities.Table, error)
		GetTableByID(ctx context.Context, id uuid.UUID) (*entities.Table, error)
		SaveQR(ctx context.Context, id uuid.UUID, token string, sessionID uuid.UUID, imageURL string, at time.Time) error
	}

	tableRepository struct {
		db *gorm.DB
	}
)

func NewTableRepository(db *gorm.DB) TableRepository {
	return &tableRepository{
		db: db,
	}
}

func (r *tableRepository) GetTables(ctx context.Context) ([]*entities.Table, error) {
	var tables []*entities.Table
	if err := r.db.WithContext(ctx).Order("number ASC").Find(&tables).Error; err != nil {
		return nil, err
	}
	return tables, nil
}

func (r *tableRepository) GetTableByID(ctx context.Context, id uuid.UUID) (*entities.Table, error) {
	var table entities.Table
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&table).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrTableNotFound
		}
		return nil, err
	}
	return &table, nil
}

// SaveQR replaces the table's token, which revokes every earlier one.
func (r *tableRepository) SaveQR(ctx context.Context, id uuid.UUID, token string, sessionID uuid.UUID, imageURL string, at time.Time) error {
	result := r.db.WithContext(ctx).
		Model(&entities.Table{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"qr_token":        token,
			"session_id":      sessionID,
			"qr_image_url":    imageURL,
			"qr_generated_at": at,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrTableNotFound
	}
	return nil
}
