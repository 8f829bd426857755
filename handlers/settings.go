// handlers/settings.go
package handlers

import (
	"github.com/gofiber/fiber/v2"
)

// GetSettings returns a snapshot of every known setting. Reads fail open,
// so this always succeeds with at least the defaults.
// GET /api/settings
func GetSettings(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"success":  true,
		"settings": settingsService.Snapshot(),
	})
}
