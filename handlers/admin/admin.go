// handlers/admin/admin.go - Director-only service wiring
package admin

import (
	"reactcheckin/database"
	"reactcheckin/services"
)

var (
	settingsService *services.SettingsService
	purgeService    *services.PurgeService
)

// InitAdminHandlers initializes the services used by director endpoints
func InitAdminHandlers() {
	db := database.GetDB()
	if db == nil {
		panic("Database not initialized before InitAdminHandlers")
	}

	settingsService = services.NewSettingsService(db)
	purgeService = services.NewPurgeService(db)
}
