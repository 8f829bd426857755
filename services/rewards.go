// services/rewards.go - House point accumulation
package services

import (
	"fmt"
	"log"
	"time"

	"reactcheckin/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Points awarded per qualifying action.
const (
	PointsCheckIn  = 1
	PointsJournal  = 2
	PointsTileFlip = 1
)

type RewardService struct {
	db *gorm.DB
}

func NewRewardService(db *gorm.DB) *RewardService {
	return &RewardService{db: db}
}

// Award credits points to the user's cumulative house total. Only
// house-affiliated students earn points; everyone else is a silent no-op.
// Errors are logged and swallowed: a failed reward credit must never roll
// back or block the check-in, journal entry or flip that triggered it.
func (s *RewardService) Award(userID uint, points int) {
	if points <= 0 {
		return
	}

	var user models.User
	if err := s.db.First(&user, userID).Error; err != nil {
		log.Printf("Reward skipped, user %d lookup failed: %v", userID, err)
		return
	}

	if !user.IsStudent() || user.House == "" {
		return
	}

	entry := models.HousePointLedger{
		UserID:    userID,
		Points:    points,
		UpdatedAt: time.Now(),
	}

	err := s.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"points":     gorm.Expr("house_point_ledgers.points + ?", points),
			"updated_at": time.Now(),
		}),
	}).Create(&entry).Error

	if err != nil {
		log.Printf("Reward credit failed for user %d (+%d): %v", userID, points, err)
	}
}

// Total returns the user's cumulative point total, zero if the ledger row
// does not exist yet.
func (s *RewardService) Total(userID uint) (int, error) {
	var entry models.HousePointLedger
	if err := s.db.Where("user_id = ?", userID).First(&entry).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return 0, nil
		}
		return 0, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return entry.Points, nil
}

// GroupTotal is one aggregation bucket for the dashboards.
type GroupTotal struct {
	Group  string `json:"group"`
	Points int64  `json:"points"`
}

// HouseTotals sums points per house across all house-affiliated students.
func (s *RewardService) HouseTotals() ([]GroupTotal, error) {
	return s.groupTotals("users.house")
}

// ClassTotals sums points per class across all students with a class set.
func (s *RewardService) ClassTotals() ([]GroupTotal, error) {
	return s.groupTotals("users.class_name")
}

func (s *RewardService) groupTotals(column string) ([]GroupTotal, error) {
	var totals []GroupTotal
	err := s.db.Table("house_point_ledgers").
		Select(column+" AS \"group\", COALESCE(SUM(house_point_ledgers.points), 0) AS points").
		Joins("JOIN users ON users.id = house_point_ledgers.user_id").
		Where("users.role = ? AND "+column+" <> ''", models.RoleStudent).
		Group(column).
		Order("points DESC").
		Scan(&totals).Error
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return totals, nil
}
