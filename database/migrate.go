// database/migrate.go - Database Migration Runner
package database

import (
	"log"
	"reactcheckin/models"
)

// RunMigrations runs all database migrations
func RunMigrations() {
	db := GetDB()
	log.Println("🔄 Running database migrations...")

	if err := db.AutoMigrate(
		&models.User{},
		&models.ActionRecord{},
		&models.HousePointLedger{},
		&models.TileState{},
		&models.TileFlip{},
		&models.Quote{},
		&models.Setting{},
		&models.Message{},
	); err != nil {
		log.Fatalf("❌ Failed to run migrations: %v", err)
	}

	createIndexes()

	log.Println("✅ All migrations completed successfully")
}

// createIndexes creates additional indexes beyond what AutoMigrate derives
// from struct tags
func createIndexes() {
	db := GetDB()
	log.Println("Creating indexes...")

	// User indexes
	db.Exec("CREATE INDEX IF NOT EXISTS idx_users_role ON users(role)")
	db.Exec("CREATE INDEX IF NOT EXISTS idx_users_class ON users(class_name)")
	db.Exec("CREATE INDEX IF NOT EXISTS idx_users_house ON users(house)")

	// Action record indexes; the daily cap check filters by user, kind and
	// creation date
	db.Exec("CREATE INDEX IF NOT EXISTS idx_action_records_created ON action_records(created_at DESC)")
	db.Exec("CREATE INDEX IF NOT EXISTS idx_action_records_kind ON action_records(kind)")

	// Tile indexes
	db.Exec("CREATE INDEX IF NOT EXISTS idx_tile_flips_user ON tile_flips(user_id)")

	// Message indexes
	db.Exec("CREATE INDEX IF NOT EXISTS idx_messages_recipient_read ON messages(recipient_id, is_read)")
	db.Exec("CREATE INDEX IF NOT EXISTS idx_messages_created ON messages(created_at DESC)")

	log.Println("✅ Indexes created successfully")
}
