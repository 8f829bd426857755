// services/tiles.go - Quote-tile unlock cycle
package services

import (
	"errors"
	"fmt"
	"time"

	"reactcheckin/models"

	"gorm.io/gorm"
)

// Once all 12 tiles are flipped the board enters a cooldown; after this long
// the front end may trigger a reset.
const tileResetCooldown = 24 * time.Hour

type TileService struct {
	db      *gorm.DB
	rewards *RewardService
}

func NewTileService(db *gorm.DB, rewards *RewardService) *TileService {
	return &TileService{db: db, rewards: rewards}
}

// TileStatus is the per-user board snapshot.
type TileStatus struct {
	FlippedTiles   []int      `json:"flipped_tiles"`
	FlippedCount   int        `json:"flipped_count"`
	JournalCount   int64      `json:"journal_count"`
	AvailableFlips int64      `json:"available_flips"`
	NextQuoteIndex int        `json:"next_quote_index"`
	ResetAt        *time.Time `json:"reset_at,omitempty"`
	ShouldReset    bool       `json:"should_reset"`
}

// FlipResult is returned by a successful flip.
type FlipResult struct {
	TileIndex int          `json:"tile_index"`
	Quote     models.Quote `json:"quote"`
	Status    TileStatus   `json:"status"`
}

// Status computes the board snapshot. Flips are earned one per journal
// entry and accumulate across days if unused; should_reset is query-time
// only and never mutates state — an explicit Reset call performs the reset.
func (s *TileService) Status(userID uint) (*TileStatus, error) {
	flips, err := s.userFlips(userID)
	if err != nil {
		return nil, err
	}

	journalCount, err := s.journalCount(userID)
	if err != nil {
		return nil, err
	}

	var state models.TileState
	if err := s.db.Where("user_id = ?", userID).First(&state).Error; err != nil {
		if err != gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
		}
		// No state row yet: cursor starts at quote 0.
	}

	return s.buildStatus(flips, journalCount, &state), nil
}

// Flip reveals the tile at tileIndex, consuming one earned flip and
// assigning the quote under the user's cursor. The cursor advances
// deterministically (i+1 mod 50), so every user cycles through all 50
// quotes in a fixed order from wherever their cursor sits.
func (s *TileService) Flip(userID uint, tileIndex int) (*FlipResult, error) {
	if tileIndex < 0 || tileIndex >= models.TileCount {
		return nil, fmt.Errorf("%w: tile index must be between 0 and %d", ErrValidation, models.TileCount-1)
	}

	flips, err := s.userFlips(userID)
	if err != nil {
		return nil, err
	}
	for _, f := range flips {
		if f.TileIndex == tileIndex {
			return nil, ErrAlreadyFlipped
		}
	}

	journalCount, err := s.journalCount(userID)
	if err != nil {
		return nil, err
	}
	if journalCount-int64(len(flips)) <= 0 {
		return nil, ErrNoFlipsAvailable
	}

	// Load or lazily create the cursor row. On the very first flip the row
	// is created with the cursor already advanced to 1 and quote 0 issued.
	var state models.TileState
	err = s.db.Where("user_id = ?", userID).First(&state).Error
	if err == gorm.ErrRecordNotFound {
		state = models.TileState{UserID: userID}
	} else if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	quoteIndex := state.NextQuoteIndex
	state.NextQuoteIndex = (quoteIndex + 1) % models.QuoteCount

	flip := models.TileFlip{
		UserID:     userID,
		TileIndex:  tileIndex,
		QuoteIndex: quoteIndex,
	}

	// Flip row and cursor advance commit together; a failure on either side
	// rolls both back so a recorded flip can never leave the cursor behind.
	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&flip).Error; err != nil {
			// Two concurrent flips of the same tile race to the unique
			// index; the loser surfaces as already-flipped, not an outage.
			if IsDuplicateKey(err) {
				return ErrAlreadyFlipped
			}
			return err
		}

		if len(flips)+1 == models.TileCount {
			now := time.Now()
			state.ResetAt = &now
		}

		return tx.Save(&state).Error
	})
	if err != nil {
		if errors.Is(err, ErrAlreadyFlipped) {
			return nil, ErrAlreadyFlipped
		}
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	var quote models.Quote
	if err := s.db.Where("\"index\" = ?", quoteIndex).First(&quote).Error; err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	s.rewards.Award(userID, PointsTileFlip)

	flips = append(flips, flip)
	return &FlipResult{
		TileIndex: tileIndex,
		Quote:     quote,
		Status:    *s.buildStatus(flips, journalCount, &state),
	}, nil
}

// Reset clears the board unconditionally: all flips deleted, cursor back to
// quote 0, cooldown stamp renewed. Callers decide when to invoke it after
// observing should_reset; the service does not gate on the cooldown itself.
// A mid-cycle reset deliberately discards the cursor position — the next
// round starts from quote 0 again.
func (s *TileService) Reset(userID uint) error {
	now := time.Now()

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", userID).Delete(&models.TileFlip{}).Error; err != nil {
			return err
		}

		var state models.TileState
		err := tx.Where("user_id = ?", userID).First(&state).Error
		if err == gorm.ErrRecordNotFound {
			state = models.TileState{UserID: userID}
		} else if err != nil {
			return err
		}

		state.NextQuoteIndex = 0
		state.ResetAt = &now
		return tx.Save(&state).Error
	})

	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return nil
}

func (s *TileService) userFlips(userID uint) ([]models.TileFlip, error) {
	var flips []models.TileFlip
	if err := s.db.Where("user_id = ?", userID).Order("tile_index").Find(&flips).Error; err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return flips, nil
}

func (s *TileService) journalCount(userID uint) (int64, error) {
	var count int64
	err := s.db.Model(&models.ActionRecord{}).
		Where("user_id = ? AND kind = ?", userID, models.ActionJournal).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return count, nil
}

func (s *TileService) buildStatus(flips []models.TileFlip, journalCount int64, state *models.TileState) *TileStatus {
	indices := make([]int, 0, len(flips))
	for _, f := range flips {
		indices = append(indices, f.TileIndex)
	}

	available := journalCount - int64(len(flips))
	if available < 0 {
		available = 0
	}

	shouldReset := len(flips) == models.TileCount &&
		state.ResetAt != nil &&
		!time.Now().Before(state.ResetAt.Add(tileResetCooldown))

	return &TileStatus{
		FlippedTiles:   indices,
		FlippedCount:   len(flips),
		JournalCount:   journalCount,
		AvailableFlips: available,
		NextQuoteIndex: state.NextQuoteIndex,
		ResetAt:        state.ResetAt,
		ShouldReset:    shouldReset,
	}
}
