// handlers/admin/purge.go - End-of-year bulk purge
package admin

import (
	"errors"
	"log"

	"reactcheckin/services"

	"github.com/gofiber/fiber/v2"
)

// PurgeStudents deletes every student together with their check-ins,
// journal entries, point ledgers, tile state and messages in one
// transaction. All-or-nothing: a failure mid-way leaves every row in place.
// POST /api/admin/purge/students
func PurgeStudents(c *fiber.Ctx) error {
	result, err := purgeService.PurgeByRole("student")
	if err != nil {
		log.Printf("Bulk purge failed: %v", err)
		status := 500
		if errors.Is(err, services.ErrUnavailable) {
			status = 503
		}
		return c.Status(status).JSON(fiber.Map{"success": false, "error": "Purge failed, no rows were deleted"})
	}

	log.Printf("✅ Purged %d students (%d actions, %d ledger rows, %d flips, %d messages)",
		result.Users, result.Actions, result.LedgerEntries, result.TileFlips, result.Messages)

	return c.JSON(fiber.Map{
		"success": true,
		"deleted": result,
	})
}
