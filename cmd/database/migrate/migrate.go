package migration

import (
	"Pantry-API/entities"
	"fmt"
	"log"

	"gorm.io/gorm"
)

func Migrate(db *gorm.DB) error {
	db.Exec("CREATE EXTENSION IF NOT EXISTS \"uuid-ossp\";")

	if err := db.AutoMigrate(&entities.Member{}); err != nil {
		log.Fatalf("Error migrating member database: %v", err)
		return err
	}
	if err := db.AutoMigrate(&entities.Ingredient{}); err != nil {
		log.Fatalf("Error migrating ingredient database: %v", err)
		return err
	}
	if err := db.AutoMigrate(&entities.IngredientLog{}); err != nil {
		log.Fatalf("Error migrating ingredient log database: %v", err)
		return err
	}
	if err := db.AutoMigrate(&entities.Alert{}); err != nil {
		log.Fatalf("Error migrating alert database: %v", err)
		return err
	}
	if err := db.AutoMigrate(&entities.FCMToken{}); err != nil {
		log.Fatalf("Error migrating fcm token database: %v", err)
		return err
	}
	if err := db.AutoMigrate(&entities.Meal{}); err != nil {
		log.Fatalf("Error migrating meal database: %v", err)
		return err
	}

	fmt.Println("Database migration complete")
	return nil
}
