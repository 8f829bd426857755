// services/purge.go - Administrative bulk purge
package services

import (
	"fmt"

	"reactcheckin/models"

	"gorm.io/gorm"
)

type PurgeService struct {
	db *gorm.DB
}

func NewPurgeService(db *gorm.DB) *PurgeService {
	return &PurgeService{db: db}
}

// PurgeResult reports how many rows each table lost.
type PurgeResult struct {
	Users         int64 `json:"users"`
	Actions       int64 `json:"actions"`
	LedgerEntries int64 `json:"ledger_entries"`
	TileStates    int64 `json:"tile_states"`
	TileFlips     int64 `json:"tile_flips"`
	Messages      int64 `json:"messages"`
}

// PurgeByRole deletes every user of the given role together with all their
// dependent rows in a single all-or-nothing transaction. Any failure rolls
// the whole purge back; there is no partial deletion. Directors cannot be
// purged.
func (s *PurgeService) PurgeByRole(role string) (*PurgeResult, error) {
	if role != models.RoleStudent && role != models.RoleTeacher {
		return nil, fmt.Errorf("%w: cannot purge role %q", ErrValidation, role)
	}

	result := &PurgeResult{}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var userIDs []uint
		if err := tx.Model(&models.User{}).Where("role = ?", role).Pluck("id", &userIDs).Error; err != nil {
			return err
		}
		if len(userIDs) == 0 {
			return nil
		}

		res := tx.Where("user_id IN ?", userIDs).Delete(&models.ActionRecord{})
		if res.Error != nil {
			return res.Error
		}
		result.Actions = res.RowsAffected

		res = tx.Where("user_id IN ?", userIDs).Delete(&models.HousePointLedger{})
		if res.Error != nil {
			return res.Error
		}
		result.LedgerEntries = res.RowsAffected

		res = tx.Where("user_id IN ?", userIDs).Delete(&models.TileFlip{})
		if res.Error != nil {
			return res.Error
		}
		result.TileFlips = res.RowsAffected

		res = tx.Where("user_id IN ?", userIDs).Delete(&models.TileState{})
		if res.Error != nil {
			return res.Error
		}
		result.TileStates = res.RowsAffected

		res = tx.Where("sender_id IN ? OR recipient_id IN ?", userIDs, userIDs).Delete(&models.Message{})
		if res.Error != nil {
			return res.Error
		}
		result.Messages = res.RowsAffected

		res = tx.Where("id IN ?", userIDs).Delete(&models.User{})
		if res.Error != nil {
			return res.Error
		}
		result.Users = res.RowsAffected

		return nil
	})

	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return result, nil
}

// PurgeUser deletes one user and their dependent rows atomically.
func (s *PurgeService) PurgeUser(userID uint) error {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		for _, del := range []error{
			tx.Where("user_id = ?", userID).Delete(&models.ActionRecord{}).Error,
			tx.Where("user_id = ?", userID).Delete(&models.HousePointLedger{}).Error,
			tx.Where("user_id = ?", userID).Delete(&models.TileFlip{}).Error,
			tx.Where("user_id = ?", userID).Delete(&models.TileState{}).Error,
			tx.Where("sender_id = ? OR recipient_id = ?", userID, userID).Delete(&models.Message{}).Error,
		} {
			if del != nil {
				return del
			}
		}
		return tx.Delete(&models.User{}, userID).Error
	})

	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return nil
}
