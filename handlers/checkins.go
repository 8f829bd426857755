// handlers/checkins.go
package handlers

import (
	"reactcheckin/middleware"
	"reactcheckin/models"
	"reactcheckin/services"

	"github.com/gofiber/fiber/v2"
)

type CheckInRequest struct {
	Mood string `json:"mood"`
	Note string `json:"note"`
}

// CreateCheckIn records today's mood check-in
// POST /api/checkins
func CreateCheckIn(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"success": false, "error": err.Error()})
	}

	if !settingsService.GetBool("checkins_enabled") {
		return c.Status(403).JSON(fiber.Map{"success": false, "error": "Check-ins are currently disabled"})
	}

	var req CheckInRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid request body"})
	}

	record, err := actionService.Record(userID, models.ActionCheckIn, services.ActionPayload{
		Mood:    req.Mood,
		Content: req.Note,
	})
	if err != nil {
		return serviceError(c, err)
	}

	return c.Status(201).JSON(fiber.Map{
		"success":       true,
		"checkin":       record,
		"points_earned": record.Points,
	})
}

// GetCheckIns returns the caller's check-in history, newest first
// GET /api/checkins?limit=30&offset=0
func GetCheckIns(c *fiber.Ctx) error {
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

	records, total, err := actionService.History(userID, models.ActionCheckIn, limit, offset)
	if err != nil {
		return serviceError(c, err)
	}

	return c.JSON(fiber.Map{
		"success":  true,
		"checkins": records,
		"total":    total,
		"limit":    limit,
		"offset":   offset,
	})
}

// GetTodayCheckIns reports how many check-ins the caller has left today
// GET /api/checkins/today
func GetTodayCheckIns(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"success": false, "error": err.Error()})
	}

	count, err := actionService.CountToday(userID, models.ActionCheckIn)
	if err != nil {
		return serviceError(c, err)
	}

	limit := settingsService.GetInt("max_checkins_per_day")
	remaining := int64(limit) - count
	if remaining < 0 {
		remaining = 0
	}

	return c.JSON(fiber.Map{
		"success":   true,
		"count":     count,
		"limit":     limit,
		"remaining": remaining,
	})
}
