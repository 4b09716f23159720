package entities

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Category struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name      string    `gorm:"not null" json:"name"`
	SortOrder int       `json:"sort_order"`
	IsActive  bool      `gorm:"not null" json:"is_active"`

	Items []*MenuItem `gorm:"foreignKey:CategoryID"`
	Timestamp
}

type MenuItem struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	CategoryID  uuid.UUID `gorm:"type:uuid;not null;index" json:"category_id"`
	Name        string    `gorm:"not null" json:"name"`
	Description string    `json:"description"`
	Price       int64     `gorm:"not null" json:"price"`
	ImageURL    string    `json:"image_url,omitempty"`
	IsAvailable bool      `gorm:"not null" json:"is_available"`

	Category       *Category        `gorm:"foreignKey:CategoryID"`
	ModifierGroups []*ModifierGroup `gorm:"many2many:menu_item_modifier_groups"`
	Timestamp
}

type ModifierGroup struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name       string    `gorm:"not null" json:"name"`
	IsRequired bool      `gorm:"not null" json:"is_required"`
	MaxSelect  int       `json:"max_select"` // 0 means unlimited

	Options []*ModifierOption `gorm:"foreignKey:GroupID;constraint:OnDelete:CASCADE"`
	Timestamp
}

type ModifierOption struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	GroupID     uuid.UUID `gorm:"type:uuid;not null;index" json:"group_id"`
	Name        string    `gorm:"not null" json:"name"`
	PriceDelta  int64     `json:"price_delta"`
	IsAvailable bool      `gorm:"not null" json:"is_available"`

	Group *ModifierGroup `gorm:"foreignKey:GroupID"`
	Timestamp
}

func (c *Category) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

func (m *MenuItem) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}

func (g *ModifierGroup) BeforeCreate(tx *gorm.DB) error {
	if g.ID == uuid.Nil {
		g.ID = uuid.New()
	}
	return nil
}

func (o *ModifierOption) BeforeCreate(tx *gorm.DB) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	return nil
}
