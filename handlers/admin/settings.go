// handlers/admin/settings.go - Director settings mutation
package admin

import (
	"errors"

	"reactcheckin/middleware"
	"reactcheckin/services"

	"github.com/gofiber/fiber/v2"
)

type SetSettingRequest struct {
	Value string `json:"value"`
}

// SetSetting writes one setting. The route is already gated by
// RequireDirector; the service re-checks the role so the restriction holds
// even for callers that bypass the router.
// PUT /api/admin/settings/:key
func SetSetting(c *fiber.Ctx) error {
	key := c.Params("key")

	var req SetSettingRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid request body"})
	}

	if err := settingsService.Set(middleware.GetRole(c), key, req.Value); err != nil {
		status := 500
		switch {
		case errors.Is(err, services.ErrNotAuthorized):
			status = 403
		case errors.Is(err, services.ErrValidation):
			status = 400
		case errors.Is(err, services.ErrUnavailable):
			status = 503
		}
		return c.Status(status).JSON(fiber.Map{"success": false, "error": err.Error()})
	}

	return c.JSON(fiber.Map{
		"success":  true,
		"settings": settingsService.Snapshot(),
	})
}
