// handlers/journal.go
package handlers

import (
	"reactcheckin/middleware"
	"reactcheckin/models"
	"reactcheckin/services"

	"github.com/gofiber/fiber/v2"
)

type JournalRequest struct {
	Content string `json:"content"`
	Mood    string `json:"mood"`
}

// CreateJournalEntry records a journal entry. Each entry also earns one tile
// flip on the quote board.
// POST /api/journal
func CreateJournalEntry(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"success": false, "error": err.Error()})
	}

	if !settingsService.GetBool("journal_enabled") {
		return c.Status(403).JSON(fiber.Map{"success": false, "error": "Journaling is currently disabled"})
	}

	var req JournalRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid request body"})
	}

	record, err := actionService.Record(userID, models.ActionJournal, services.ActionPayload{
		Mood:    req.Mood,
		Content: req.Content,
	})
	if err != nil {
		return serviceError(c, err)
	}

	return c.Status(201).JSON(fiber.Map{
		"success":       true,
		"entry":         record,
		"points_earned": record.Points,
	})
}

// GetJournalEntries returns the caller's journal history, newest first
// GET /api/journal?limit=30&offset=0
func GetJournalEntries(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"success": false, "error": err.Error()})
	}

	limit := c.QueryInt("limit", 30)
	if limit < 1 || limit > 100 {
		limit = 30
	}
	offset := c.QueryInt("offset", 0)
	if offset < 0 {
		offset = 0
	}

	records, total, err := actionService.History(userID, models.ActionJournal, limit, offset)
	if err != nil {
		return serviceError(c, err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"entries": records,
		"total":   total,
		"limit":   limit,
		"offset":  offset,
	})
}
