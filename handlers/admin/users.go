// handlers/admin/users.go - Director user management
package admin

import (
	"reactcheckin/database"
	"reactcheckin/models"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
)

// GetUsers returns all users with pagination
// GET /api/admin/users?page=1&limit=20&search=&role=
func GetUsers(c *fiber.Ctx) error {
	db := database.GetDB()

	page := c.QueryInt("page", 1)
	if page < 1 {
		page = 1
	}
	limit := c.QueryInt("limit", 20)
	if limit < 1 || limit > 100 {
		limit = 20
	}
	search := c.Query("search", "")
	role := c.Query("role", "")

	offset := (page - 1) * limit

	var users []models.User
	var total int64

	query := db.Model(&models.User{})

	if search != "" {
		query = query.Where("student_id LIKE ? OR display_name LIKE ?", "%"+search+"%", "%"+search+"%")
	}
	if role != "" {
		query = query.Where("role = ?", role)
	}

	query.Count(&total)

	if err := query.Order("created_at DESC").Offset(offset).Limit(limit).Find(&users).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"success": false, "error": "Failed to fetch users"})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"users":   users,
		"total":   total,
		"page":    page,
		"limit":   limit,
	})
}

// GetUser returns a single user by ID
// GET /api/admin/users/:id
func GetUser(c *fiber.Ctx) error {
	db := database.GetDB()
	id := c.Params("id")

	var user models.User
	if err := db.First(&user, id).Error; err != nil {
		return c.Status(404).JSON(fiber.Map{"success": false, "error": "User not found"})
	}

	return c.JSON(fiber.Map{"success": true, "user": user})
}

// UpdateUser updates a user's profile. This is the administrative override
// that can change a role after registration.
// PUT /api/admin/users/:id
func UpdateUser(c *fiber.Ctx) error {
	db := database.GetDB()
	id := c.Params("id")

	var user models.User
	if err := db.First(&user, id).Error; err != nil {
		return c.Status(404).JSON(fiber.Map{"success": false, "error": "User not found"})
	}

	var updateData struct {
		DisplayName string `json:"display_name"`
		Role        string `json:"role"`
		ClassName   string `json:"class_name"`
		House       string `json:"house"`
		NewPassword string `json:"new_password"`
	}

	if err := c.BodyParser(&updateData); err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid request body"})
	}

	if updateData.Role != "" {
		if !models.ValidRole(updateData.Role) {
			return c.Status(400).JSON(fiber.Map{"success": false, "error": "Unknown role"})
		}
		user.Role = updateData.Role
	}
	if updateData.House != "" {
		if !models.ValidHouse(updateData.House) {
			return c.Status(400).JSON(fiber.Map{"success": false, "error": "Unknown house"})
		}
		user.House = updateData.House
	}
	if updateData.DisplayName != "" {
		user.DisplayName = updateData.DisplayName
	}
	if updateData.ClassName != "" {
		user.ClassName = updateData.ClassName
	}
	if updateData.NewPassword != "" {
		if len(updateData.NewPassword) < 6 {
			return c.Status(400).JSON(fiber.Map{"success": false, "error": "Password must be at least 6 characters"})
		}
		hashed, err := bcrypt.GenerateFromPassword([]byte(updateData.NewPassword), bcrypt.DefaultCost)
		if err != nil {
			return c.Status(500).JSON(fiber.Map{"success": false, "error": "Failed to hash password"})
		}
		user.Password = string(hashed)
	}

	if err := db.Save(&user).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"success": false, "error": "Failed to update user"})
	}

	return c.JSON(fiber.Map{"success": true, "user": user})
}

// DeleteUser removes a user and all their dependent rows atomically
// DELETE /api/admin/users/:id
func DeleteUser(c *fiber.Ctx) error {
	db := database.GetDB()
	id := c.Params("id")

	var user models.User
	if err := db.First(&user, id).Error; err != nil {
		return c.Status(404).JSON(fiber.Map{"success": false, "error": "User not found"})
	}

	if user.Role == models.RoleDirector {
		return c.Status(403).JSON(fiber.Map{"success": false, "error": "Cannot delete director accounts"})
	}

	if err := purgeService.PurgeUser(user.ID); err != nil {
		return c.Status(500).JSON(fiber.Map{"success": false, "error": "Failed to delete user"})
	}

	return c.JSON(fiber.Map{"success": true, "message": "User deleted successfully"})
}
