// middleware/auth.go
package middleware

import (
	"os"
	"strings"
	"time"

	"reactcheckin/database"
	"reactcheckin/models"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

func jwtSecret() []byte {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		secret = "reactcheckin-secret-change-in-production"
	}
	return []byte(secret)
}

// AuthMiddleware validates the bearer token and stores the caller's identity
// in c.Locals.
func AuthMiddleware(c *fiber.Ctx) error {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return c.Status(401).JSON(fiber.Map{"success": false, "error": "Missing authorization header"})
	}

	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return c.Status(401).JSON(fiber.Map{"success": false, "error": "Invalid authorization header format"})
	}

	token, err := jwt.Parse(parts[1], func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fiber.NewError(401, "Invalid signing method")
		}
		return jwtSecret(), nil
	})

	if err != nil || !token.Valid {
		return c.Status(401).JSON(fiber.Map{"success": false, "error": "Invalid or expired token"})
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return c.Status(401).JSON(fiber.Map{"success": false, "error": "Invalid token claims"})
	}

	exp, ok := claims["exp"].(float64)
	if !ok || time.Unix(int64(exp), 0).Before(time.Now()) {
		return c.Status(401).JSON(fiber.Map{"success": false, "error": "Token expired"})
	}

	c.Locals("userId", claims["user_id"])
	c.Locals("studentId", claims["student_id"])
	c.Locals("role", claims["role"])

	updateUserActivity(claims["user_id"])

	return c.Next()
}

// RequireStaff allows teachers and directors through. Must run after
// AuthMiddleware.
func RequireStaff(c *fiber.Ctx) error {
	role := GetRole(c)
	if role != models.RoleTeacher && role != models.RoleDirector {
		return c.Status(403).JSON(fiber.Map{"success": false, "error": "Access denied. Staff privileges required."})
	}
	return c.Next()
}

// RequireDirector allows only the director through. Must run after
// AuthMiddleware.
func RequireDirector(c *fiber.Ctx) error {
	if GetRole(c) != models.RoleDirector {
		return c.Status(403).JSON(fiber.Map{"success": false, "error": "Access denied. Director privileges required."})
	}
	return c.Next()
}

func GetUserID(c *fiber.Ctx) (uint, error) {
	userID := c.Locals("userId")
	if userID == nil {
		return 0, fiber.NewError(401, "User not authenticated")
	}

	if id, ok := userID.(float64); ok {
		return uint(id), nil
	}

	if id, ok := userID.(uint); ok {
		return id, nil
	}

	return 0, fiber.NewError(401, "Invalid user ID format")
}

// GetRole returns the caller's role claim, empty when unauthenticated.
func GetRole(c *fiber.Ctx) string {
	role := c.Locals("role")
	if role == nil {
		return ""
	}
	if r, ok := role.(string); ok {
		return r
	}
	return ""
}

// updateUserActivity updates the user's last activity timestamp
func updateUserActivity(userID interface{}) {
	if userID == nil {
		return
	}

	db := database.GetDB()
	if db == nil {
		return
	}

	var id uint
	switch v := userID.(type) {
	case float64:
		id = uint(v)
	case uint:
		id = v
	default:
		return
	}

	now := time.Now()
	db.Model(&models.User{}).Where("id = ?", id).Update("last_activity", now)
}
