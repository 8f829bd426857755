// handlers/admin/quotes.go - Director quote editing
package admin

import (
	"reactcheckin/database"
	"reactcheckin/models"

	"github.com/gofiber/fiber/v2"
)

type UpdateQuoteRequest struct {
	Text   string `json:"text"`
	Author string `json:"author"`
}

// GetQuotes lists the full rotation for the editor screen
// GET /api/admin/quotes
func GetQuotes(c *fiber.Ctx) error {
	db := database.GetDB()

	var quotes []models.Quote
	if err := db.Order("\"index\"").Find(&quotes).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"success": false, "error": "Failed to fetch quotes"})
	}

	return c.JSON(fiber.Map{"success": true, "quotes": quotes})
}

// UpdateQuote edits one quote in place. Edits may race with a concurrent
// flip read; a flip can return mid-edit text, which is accepted as a
// content-only race.
// PUT /api/admin/quotes/:index
func UpdateQuote(c *fiber.Ctx) error {
	db := database.GetDB()

	index, err := c.ParamsInt("index")
	if err != nil || index < 0 || index >= models.QuoteCount {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Quote index must be between 0 and 49"})
	}

	var req UpdateQuoteRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid request body"})
	}

	if req.Text == "" {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Quote text is required"})
	}

	var quote models.Quote
	if err := db.Where("\"index\" = ?", index).First(&quote).Error; err != nil {
		return c.Status(404).JSON(fiber.Map{"success": false, "error": "Quote not found"})
	}

	quote.Text = req.Text
	quote.Author = req.Author

	if err := db.Save(&quote).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"success": false, "error": "Failed to update quote"})
	}

	return c.JSON(fiber.Map{"success": true, "quote": quote})
}
