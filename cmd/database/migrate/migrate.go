package migration

import (
	"Resto-POS-Backend/entities"
	"fmt"
	"log"

	"gorm.io/gorm"
)

func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&entities.User{},
		&entities.MenuCategory{},
		&entities.MenuItem{},
		&entities.Unit{},
		&entities.Ingredient{},
		&entities.Recipe{},
		&entities.RecipeIngredient{},
		&entities.InventoryTransaction{},
		&entities.InventoryTransactionItem{},
		&entities.Table{},
		&entities.Order{},
		&entities.OrderItem{},
		&entities.Payment{},
	); err != nil {
		log.Fatalf("Error migrating database: %v", err)
		return err
	}

	fmt.Println("Database migration complete")
	return nil
}
