package seed

import (
	"QR-Ordering-Backend/domain"
	"QR-Ordering-Backend/entities"
	"QR-Ordering-Backend/pkg/jwt"
	"QR-Ordering-Backend/pkg/user"
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
)

type staffSeed struct {
	name, email, password, role string
}

var staff = []staffSeed{
	{"Admin", "admin@restaurant.local", "admin123", domain.RoleAdmin},
	{"Waiter", "waiter@restaurant.local", "waiter123", domain.RoleWaiter},
	{"Kitchen", "kitchen@restaurant.local", "kitchen123", domain.RoleKitchen},
}

// Seed loads demo staff, tables and a small menu. Rows that already exist
// are left alone.
func Seed(ctx context.Context, db *gorm.DB) error {
	users := user.NewUserService(user.NewUserRepository(db), jwt.NewJWTService())
	for _, s := range staff {
		var count int64
		if err := db.WithContext(ctx).Model(&entities.User{}).Where("email = ?", s.email).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			continue
		}
		if _, err := users.CreateStaff(ctx, s.name, s.email, s.password, s.role); err != nil {
			return fmt.Errorf("seed %s: %w", s.email, err)
		}
	}

	for i := 1; i <= 10; i++ {
		t := entities.Table{Number: fmt.Sprintf("T%02d", i), Capacity: 4}
		if err := db.WithContext(ctx).Where("number = ?", t.Number).FirstOrCreate(&t).Error; err != nil {
			return err
		}
	}

	var existing entities.Category
	err := db.WithContext(ctx).Where("name = ?", "Mains").First(&existing).Error
	if err == nil {
		fmt.Println("Seed complete")
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		spice := &entities.ModifierGroup{
			Name:       "Spice level",
			IsRequired: true,
			MaxSelect:  1,
			Options: []*entities.ModifierOption{
				{Name: "Mild", IsAvailable: true},
				{Name: "Hot", IsAvailable: true},
			},
		}
		extras := &entities.ModifierGroup{
			Name: "Extras",
			Options: []*entities.ModifierOption{
				{Name: "Fried egg", PriceDelta: 5000, IsAvailable: true},
				{Name: "Extra rice", PriceDelta: 6000, IsAvailable: true},
			},
		}
		if err := tx.Create(spice).Error; err != nil {
			return err
		}
		if err := tx.Create(extras).Error; err != nil {
			return err
		}

		mains := &entities.Category{Name: "Mains", SortOrder: 1, IsActive: true}
		drinks := &entities.Category{Name: "Drinks", SortOrder: 2, IsActive: true}
		if err := tx.Create(mains).Error; err != nil {
			return err
		}
		if err := tx.Create(drinks).Error; err != nil {
			return err
		}

		items := []*entities.MenuItem{
			{CategoryID: mains.ID, Name: "Nasi Goreng", Price: 35000, IsAvailable: true, ModifierGroups: []*entities.ModifierGroup{spice, extras}},
			{CategoryID: mains.ID, Name: "Mie Ayam", Price: 30000, IsAvailable: true, ModifierGroups: []*entities.ModifierGroup{extras}},
			{CategoryID: drinks.ID, Name: "Es Teh", Price: 8000, IsAvailable: true},
		}
		if err := tx.Omit("ModifierGroups.*").Create(&items).Error; err != nil {
			return err
		}
		fmt.Println("Seed complete")
		return nil
	})
}
