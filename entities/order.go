package entities

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
	"time"
)

type OrderStatus string

const (
	OrderPending   OrderStatus = "PENDING"
	OrderPreparing OrderStatus = "PREPARING"
	OrderReady     OrderStatus = "READY"
	OrderServed    OrderStatus = "SERVED"
	OrderCompleted OrderStatus = "COMPLETED"
	OrderCancelled OrderStatus = "CANCELLED"
)

// IsTerminal reports whether no further transition can leave the status.
func (s OrderStatus) IsTerminal() bool {
	return s == OrderCompleted || s == OrderCancelled
}

type OrderItemStatus string

const (
	OrderItemPending OrderItemStatus = "PENDING"
	OrderItemReady   OrderItemStatus = "READY"
)

type Order struct {
	ID           uuid.UUID   `gorm:"type:uuid;primaryKey" json:"id"`
	TableID      uuid.UUID   `gorm:"type:uuid;not null;index" json:"table_id"`
	Status       OrderStatus `gorm:"type:varchar(20);not null;index" json:"status"`
	Subtotal     int64       `gorm:"not null" json:"subtotal"`
	TaxAmount    int64       `gorm:"not null" json:"tax_amount"`
	TotalAmount  int64       `gorm:"not null" json:"total_amount"`
	Notes        string      `gorm:"type:text" json:"notes,omitempty"`
	AcceptedAt   *time.Time  `json:"accepted_at,omitempty"`
	ReadyAt      *time.Time  `json:"ready_at,omitempty"`
	ServedAt     *time.Time  `json:"served_at,omitempty"`
	CompletedAt  *time.Time  `json:"completed_at,omitempty"`
	CancelledAt  *time.Time  `json:"cancelled_at,omitempty"`
	CancelReason string      `json:"cancel_reason,omitempty"`

	Table    *Table       `gorm:"foreignKey:TableID"`
	Items    []*OrderItem `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	Payments []*Payment   `gorm:"foreignKey:OrderID"`
	Timestamp
}

type OrderItem struct {
	ID             uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	OrderID        uuid.UUID       `gorm:"type:uuid;not null;index" json:"order_id"`
	MenuItemID     uuid.UUID       `gorm:"type:uuid;not null" json:"menu_item_id"`
	Name           string          `gorm:"not null" json:"name"`
	UnitPrice      int64           `gorm:"not null" json:"unit_price"`
	Quantity       int             `gorm:"not null" json:"quantity"`
	LineTotal      int64           `gorm:"not null" json:"line_total"`
	Status         OrderItemStatus `gorm:"type:varchar(20);not null" json:"status"`
	PreparedAt     *time.Time      `json:"prepared_at,omitempty"`
	SpecialRequest string          `gorm:"type:text" json:"special_request,omitempty"`
	Position       int             `gorm:"not null" json:"position"`

	Modifiers []*OrderItemModifier `gorm:"foreignKey:OrderItemID;constraint:OnDelete:CASCADE"`
	Timestamp
}

type OrderItemModifier struct {
	ID               uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	OrderItemID      uuid.UUID `gorm:"type:uuid;not null;index" json:"order_item_id"`
	ModifierOptionID uuid.UUID `gorm:"type:uuid;not null" json:"modifier_option_id"`
	Name             string    `gorm:"not null" json:"name"`
	PriceDelta       int64     `json:"price_delta"`

	Timestamp
}

func (o *Order) BeforeCreate(tx *gorm.DB) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	if o.Status == "" {
		o.Status = OrderPending
	}
	return nil
}

func (i *OrderItem) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	if i.Status == "" {
		i.Status = OrderItemPending
	}
	return nil
}

func (m *OrderItemModifier) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}
