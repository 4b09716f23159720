package migration

import (
	"QR-Ordering-Backend/entities"
	"fmt"

	"gorm.io/gorm"
)

func Migrate(db *gorm.DB) error {
	models := []any{
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
	}
	for _, model := range models {
		if err := db.AutoMigrate(model); err != nil {
			return fmt.Errorf("error migrating %T: %w", model, err)
		}
	}

	fmt.Println("Database migration complete")
	return nil
}
