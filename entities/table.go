package entities

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
	"time"
)

type TableStatus string

const (
	TableAvailable TableStatus = "AVAILABLE"
	TableOccupied  TableStatus = "OCCUPIED"
	TableReserved  TableStatus = "RESERVED"
	TableInactive  TableStatus = "INACTIVE"
)

type Table struct {
	ID            uuid.UUID   `gorm:"type:uuid;primaryKey" json:"id"`
	Number        string      `gorm:"uniqueIndex;not null" json:"number"`
	Capacity      int         `gorm:"not null" json:"capacity"`
	Status        TableStatus `gorm:"type:varchar(20);not null" json:"status"`
	QRToken       *string     `gorm:"type:text" json:"-"`
	SessionID     *uuid.UUID  `gorm:"type:uuid" json:"session_id,omitempty"`
	QRImageURL    string      `json:"qr_image_url,omitempty"`
	QRGeneratedAt *time.Time  `json:"qr_generated_at,omitempty"`

	Timestamp
}

func (t *Table) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	if t.Status == "" {
		t.Status = TableAvailable
	}
	return nil
}
