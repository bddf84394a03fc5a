package model

import (
	"fmt"

	"gorm.io/gorm"
)

// allModels lists every model with its own fixed table.
var allModels = []interface{}{
	&Character{},
	&Contact{},
	&Player{},
	&TimelineEvent{},
	&AuditLog{},
}

// AutoMigrate creates or updates all tables in the given database,
// including one inventory table per shop.
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(allModels...); err != nil {
		return err
	}
	for _, shop := range Shops() {
		if err := migrateShop(db, shop); err != nil {
			return fmt.Errorf("migrate %s: %w", shop, err)
		}
	}
	return nil
}

// migrateShop creates the shop table and its unique name index. The index
// is named per table because index names share one namespace in SQLite.
func migrateShop(db *gorm.DB, shop Shop) error {
	table := shop.Table()
	if err := db.Table(table).AutoMigrate(&InventoryItem{}); err != nil {
		return err
	}
	idx := "idx_" + table + "_name"
	if db.Migrator().HasIndex(table, idx) {
		return nil
	}
	return db.Exec(fmt.Sprintf("CREATE UNIQUE INDEX %s ON %s (name)", idx, table)).Error
}
