// services/actions.go - Daily-capped check-in and journal ledger
package services

import (
	"fmt"
	"time"

	"reactcheckin/models"
	"reactcheckin/utils"

	"gorm.io/gorm"
)

// ActionPayload carries the user-submitted fields of a check-in or journal
// entry. Check-ins require a mood; journal entries require content.
type ActionPayload struct {
	Mood    string `json:"mood"`
	Content string `json:"content"`
}

type ActionService struct {
	db       *gorm.DB
	settings *SettingsService
	rewards  *RewardService
}

func NewActionService(db *gorm.DB, settings *SettingsService, rewards *RewardService) *ActionService {
	return &ActionService{db: db, settings: settings, rewards: rewards}
}

// Record validates and inserts one action for the user, enforcing the daily
// cap for students. Teachers and directors are exempt from caps: the limits
// exist to pace student submissions, not to restrict staff usage.
//
// The cap check and the insert are not wrapped in a serializable
// transaction; two concurrent requests from the same user can both pass the
// check before either insert commits. With per-user request concurrency this
// low the transient over-limit is accepted.
func (s *ActionService) Record(userID uint, kind string, payload ActionPayload) (*models.ActionRecord, error) {
	points, err := validateAction(kind, payload)
	if err != nil {
		return nil, err
	}

	var user models.User
	if err := s.db.First(&user, userID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("%w: user not found", ErrValidation)
		}
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	if user.IsStudent() {
		cap := s.dailyCap(kind)
		count, err := s.CountToday(userID, kind)
		if err != nil {
			return nil, err
		}
		if count >= int64(cap) {
			return nil, &CapExceededError{Kind: kind, Cap: cap}
		}
	}

	record := models.ActionRecord{
		UserID:  userID,
		Kind:    kind,
		Mood:    payload.Mood,
		Content: payload.Content,
		Points:  points,
	}

	if err := s.db.Create(&record).Error; err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	s.rewards.Award(userID, points)

	return &record, nil
}

// CountToday counts the user's same-kind actions on the current server-local
// calendar date.
func (s *ActionService) CountToday(userID uint, kind string) (int64, error) {
	now := time.Now()
	var count int64
	err := s.db.Model(&models.ActionRecord{}).
		Where("user_id = ? AND kind = ? AND created_at >= ? AND created_at < ?",
			userID, kind, utils.StartOfDay(now), utils.EndOfDay(now)).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return count, nil
}

// History returns the user's actions of one kind, newest first.
func (s *ActionService) History(userID uint, kind string, limit, offset int) ([]models.ActionRecord, int64, error) {
	var records []models.ActionRecord
	var total int64

	query := s.db.Model(&models.ActionRecord{}).Where("user_id = ? AND kind = ?", userID, kind)
	query.Count(&total)

	err := query.Order("created_at DESC").Limit(limit).Offset(offset).Find(&records).Error
	if err != nil {
		return nil, 0, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return records, total, nil
}

func (s *ActionService) dailyCap(kind string) int {
	key := "max_checkins_per_day"
	if kind == models.ActionJournal {
		key = "max_journal_entries_per_day"
	}
	cap := s.settings.GetInt(key)
	if cap < MinDailyCap {
		cap = MinDailyCap
	}
	return cap
}

func validateAction(kind string, payload ActionPayload) (int, error) {
	switch kind {
	case models.ActionCheckIn:
		if payload.Mood == "" {
			return 0, fmt.Errorf("%w: mood is required", ErrValidation)
		}
		return PointsCheckIn, nil
	case models.ActionJournal:
		if payload.Content == "" {
			return 0, fmt.Errorf("%w: journal content is required", ErrValidation)
		}
		return PointsJournal, nil
	}
	return 0, fmt.Errorf("%w: unknown action kind %q", ErrValidation, kind)
}
