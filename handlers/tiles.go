// handlers/tiles.go
package handlers

import (
	"reactcheckin/database"
	"reactcheckin/middleware"
	"reactcheckin/models"

	"github.com/gofiber/fiber/v2"
)

type FlipRequest struct {
	TileIndex *int `json:"tile_index"`
}

// GetTileStatus returns the caller's quote board snapshot
// GET /api/tiles
func GetTileStatus(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"success": false, "error": err.Error()})
	}

	status, err := tileService.Status(userID)
	if err != nil {
		return serviceError(c, err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"tiles":   status,
	})
}

// FlipTile reveals one tile and its quote, consuming an earned flip
// POST /api/tiles/flip
func FlipTile(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"success": false, "error": err.Error()})
	}

	if !settingsService.GetBool("tiles_enabled") {
		return c.Status(403).JSON(fiber.Map{"success": false, "error": "The quote board is currently disabled"})
	}

	var req FlipRequest
	if err := c.BodyParser(&req); err != nil || req.TileIndex == nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "tile_index is required"})
	}

	result, err := tileService.Flip(userID, *req.TileIndex)
	if err != nil {
		return serviceError(c, err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"flip":    result,
	})
}

// ResetTiles clears the caller's board and restarts the quote rotation.
// Invoked by the front end after it observes should_reset.
// POST /api/tiles/reset
func ResetTiles(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"success": false, "error": err.Error()})
	}

	if err := tileService.Reset(userID); err != nil {
		return serviceError(c, err)
	}

	status, err := tileService.Status(userID)
	if err != nil {
		return serviceError(c, err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"tiles":   status,
	})
}

// GetQuotes lists the full quote rotation
// GET /api/quotes
func GetQuotes(c *fiber.Ctx) error {
	db := database.GetDB()

	var quotes []models.Quote
	if err := db.Order("\"index\"").Find(&quotes).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"success": false, "error": "Failed to fetch quotes"})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"quotes":  quotes,
		"total":   len(quotes),
	})
}
