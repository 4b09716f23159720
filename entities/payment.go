package entities

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
	"time"
)

type PaymentMethod string

const (
	PaymentCash     PaymentMethod = "CASH"
	PaymentCard     PaymentMethod = "CARD"
	PaymentMidtrans PaymentMethod = "MIDTRANS"
)

// Payment rows are append-only; a refund would be a new row, never an update.
type Payment struct {
	ID         uuid.UUID     `gorm:"type:uuid;primaryKey" json:"id"`
	OrderID    uuid.UUID     `gorm:"type:uuid;not null;index" json:"order_id"`
	Amount     int64         `gorm:"not null" json:"amount"`
	Method     PaymentMethod `gorm:"type:varchar(20);not null" json:"method"`
	Reference  *string       `gorm:"uniqueIndex" json:"reference,omitempty"`
	ReceivedBy *uuid.UUID    `gorm:"type:uuid" json:"received_by,omitempty"`
	PaidAt     time.Time     `gorm:"not null" json:"paid_at"`

	Timestamp
}

func (p *Payment) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
