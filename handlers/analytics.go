// handlers/analytics.go - Staff dashboards
package handlers

import (
	"time"

	"reactcheckin/classparser"
	"reactcheckin/database"
	"reactcheckin/models"
	"reactcheckin/services"

	"github.com/gofiber/fiber/v2"
)

// GetHousePoints returns cumulative points per house
// GET /api/analytics/houses
func GetHousePoints(c *fiber.Ctx) error {
	totals, err := rewardService.HouseTotals()
	if err != nil {
		return serviceError(c, err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"houses":  totals,
	})
}

// GetClassPoints returns cumulative points per class, optionally rolled up
// to year level
// GET /api/analytics/classes?by=class|year
func GetClassPoints(c *fiber.Ctx) error {
	totals, err := rewardService.ClassTotals()
	if err != nil {
		return serviceError(c, err)
	}

	if c.Query("by", "class") == "year" {
		totals = rollupByYear(totals)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"classes": totals,
	})
}

// rollupByYear merges per-class totals into per-year-level buckets using the
// parsed class labels.
func rollupByYear(totals []services.GroupTotal) []services.GroupTotal {
	merged := make(map[string]int64)
	order := []string{}

	for _, t := range totals {
		label := classparser.YearLabel(t.Group)
		if _, seen := merged[label]; !seen {
			order = append(order, label)
		}
		merged[label] += t.Points
	}

	out := make([]services.GroupTotal, 0, len(order))
	for _, label := range order {
		out = append(out, services.GroupTotal{Group: label, Points: merged[label]})
	}
	return out
}

// GetMoodSummary returns check-in mood counts over a day range, overall and
// per class
// GET /api/analytics/moods?days=7
func GetMoodSummary(c *fiber.Ctx) error {
	days := c.QueryInt("days", 7)
	if days < 1 || days > 90 {
		days = 7
	}
	since := time.Now().AddDate(0, 0, -days)

	db := database.GetDB()

	type moodCount struct {
		Mood  string `json:"mood"`
		Count int64  `json:"count"`
	}
	var overall []moodCount
	err := db.Model(&models.ActionRecord{}).
		Select("mood, COUNT(*) AS count").
		Where("kind = ? AND created_at >= ?", models.ActionCheckIn, since).
		Group("mood").
		Order("count DESC").
		Scan(&overall).Error
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"success": false, "error": "Failed to fetch mood summary"})
	}

	type classMoodCount struct {
		ClassName string `json:"class_name"`
		Mood      string `json:"mood"`
		Count     int64  `json:"count"`
	}
	var byClass []classMoodCount
	err = db.Table("action_records").
		Select("users.class_name AS class_name, action_records.mood AS mood, COUNT(*) AS count").
		Joins("JOIN users ON users.id = action_records.user_id").
		Where("action_records.kind = ? AND action_records.created_at >= ? AND users.class_name <> ''",
			models.ActionCheckIn, since).
		Group("users.class_name, action_records.mood").
		Order("users.class_name").
		Scan(&byClass).Error
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"success": false, "error": "Failed to fetch mood summary"})
	}

	return c.JSON(fiber.Map{
		"success":  true,
		"days":     days,
		"overall":  overall,
		"by_class": byClass,
	})
}

// GetParticipation returns daily check-in counts for the range
// GET /api/analytics/participation?days=14
func GetParticipation(c *fiber.Ctx) error {
	days := c.QueryInt("days", 14)
	if days < 1 || days > 90 {
		days = 14
	}
	since := time.Now().AddDate(0, 0, -days)

	db := database.GetDB()

	type dayCount struct {
		Day   string `json:"day"`
		Count int64  `json:"count"`
	}
	var counts []dayCount
	err := db.Model(&models.ActionRecord{}).
		Select("DATE(created_at) AS day, COUNT(*) AS count").
		Where("kind = ? AND created_at >= ?", models.ActionCheckIn, since).
		Group("DATE(created_at)").
		Order("day").
		Scan(&counts).Error
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"success": false, "error": "Failed to fetch participation"})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"days":    days,
		"series":  counts,
	})
}
