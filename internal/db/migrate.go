package db

import (
	"fmt"

	"gorm.io/gorm"

	"trtlmarket/internal/model"
)

// Models lists the persisted models in dependency order.
func Models() []interface{} {
	return []interface{}{
		&model.User{},
		&model.Item{},
		&model.Activity{},
	}
}

// Reset drops all marketplace tables, dependents first.
func Reset(db *gorm.DB) error {
	models := Models()
	for i := len(models) - 1; i >= 0; i-- {
		if err := db.Migrator().DropTable(models[i]); err != nil {
			return fmt.Errorf("drop table: %w", err)
		}
	}
	return nil
}

// Migrate creates or updates the schema for all models.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(Models()...); err != nil {
		return fmt.Errorf("auto-migrate: %w", err)
	}
	return nil
}
