// handlers/handlers.go - Service wiring and shared response helpers
package handlers

import (
	"errors"

	"reactcheckin/database"
	"reactcheckin/services"

	"github.com/gofiber/fiber/v2"
)

var (
	settingsService *services.SettingsService
	rewardService   *services.RewardService
	actionService   *services.ActionService
	tileService     *services.TileService
	purgeService    *services.PurgeService
)

// InitHandlers initializes the service layer shared by all handlers
func InitHandlers() {
	db := database.GetDB()
	if db == nil {
		panic("Database not initialized before InitHandlers")
	}

	settingsService = services.NewSettingsService(db)
	rewardService = services.NewRewardService(db)
	actionService = services.NewActionService(db, settingsService, rewardService)
	tileService = services.NewTileService(db, rewardService)
	purgeService = services.NewPurgeService(db)
}

// Settings exposes the settings service to route guards in other packages.
func Settings() *services.SettingsService {
	return settingsService
}

// serviceError maps a service-layer error onto an HTTP response. Cap and
// flip rejections are expected user-facing conditions; outages get a 503
// with a generic message so internals never leak.
func serviceError(c *fiber.Ctx, err error) error {
	switch {
	case services.IsCapExceeded(err):
		return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
			"success": false,
			"error":   err.Error(),
		})
	case errors.Is(err, services.ErrValidation):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"error":   err.Error(),
		})
	case errors.Is(err, services.ErrAlreadyFlipped):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"success": false,
			"error":   "That tile has already been flipped",
		})
	case errors.Is(err, services.ErrNoFlipsAvailable):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"success": false,
			"error":   "No flips available. Write a journal entry to earn one!",
		})
	case errors.Is(err, services.ErrNotAuthorized):
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"success": false,
			"error":   err.Error(),
		})
	case errors.Is(err, services.ErrUnavailable):
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"success": false,
			"error":   "Service temporarily unavailable. Please try again later.",
		})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"success": false,
		"error":   "Internal server error",
	})
}
