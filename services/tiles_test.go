package services

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"reactcheckin/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTileService(db *gorm.DB) (*TileService, *RewardService) {
	rewards := NewRewardService(db)
	return NewTileService(db, rewards), rewards
}

func TestFlipWithoutJournalEntryRejected(t *testing.T) {
	db := setupTestDB(t)
	student := createStudent(t, db)
	tiles, _ := newTileService(db)

	_, err := tiles.Flip(student.ID, 0)
	assert.True(t, errors.Is(err, ErrNoFlipsAvailable))
}

func TestFlipConsumesEarnedFlipAndIssuesQuotesInOrder(t *testing.T) {
	db := setupTestDB(t)
	student := createStudent(t, db)
	tiles, _ := newTileService(db)
	addJournalEntries(t, db, student.ID, 3)

	for i, tileIndex := range []int{5, 0, 11} {
		result, err := tiles.Flip(student.ID, tileIndex)
		require.NoError(t, err)
		assert.Equal(t, tileIndex, result.TileIndex)
		// The cursor walks 0, 1, 2 regardless of which tiles were chosen.
		assert.Equal(t, i, result.Quote.Index)
	}

	status, err := tiles.Status(student.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, status.FlippedCount)
	assert.EqualValues(t, 0, status.AvailableFlips)
	assert.Equal(t, 3, status.NextQuoteIndex)

	_, err = tiles.Flip(student.ID, 7)
	assert.True(t, errors.Is(err, ErrNoFlipsAvailable))
}

func TestFlipSameTileTwiceRejected(t *testing.T) {
	db := setupTestDB(t)
	student := createStudent(t, db)
	tiles, _ := newTileService(db)
	addJournalEntries(t, db, student.ID, 2)

	_, err := tiles.Flip(student.ID, 4)
	require.NoError(t, err)

	_, err = tiles.Flip(student.ID, 4)
	assert.True(t, errors.Is(err, ErrAlreadyFlipped))

	// The failed flip did not consume the remaining credit.
	status, err := tiles.Status(student.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, status.AvailableFlips)
}

func TestFlipIndexValidation(t *testing.T) {
	db := setupTestDB(t)
	student := createStudent(t, db)
	tiles, _ := newTileService(db)
	addJournalEntries(t, db, student.ID, 1)

	for _, idx := range []int{-1, models.TileCount, 100} {
		_, err := tiles.Flip(student.ID, idx)
		assert.Truef(t, errors.Is(err, ErrValidation), "index %d should be rejected", idx)
	}
}

func TestAvailableFlipsIsJournalMinusFlipped(t *testing.T) {
	db := setupTestDB(t)
	student := createStudent(t, db)
	tiles, _ := newTileService(db)
	addJournalEntries(t, db, student.ID, 3)

	status, err := tiles.Status(student.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 3, status.JournalCount)
	assert.EqualValues(t, 3, status.AvailableFlips)

	_, err = tiles.Flip(student.ID, 0)
	require.NoError(t, err)

	status, err = tiles.Status(student.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 2, status.AvailableFlips)
}

func TestTwelfthFlipStampsCooldown(t *testing.T) {
	db := setupTestDB(t)
	student := createStudent(t, db)
	tiles, _ := newTileService(db)
	addJournalEntries(t, db, student.ID, models.TileCount)

	for i := 0; i < models.TileCount-1; i++ {
		_, err := tiles.Flip(student.ID, i)
		require.NoError(t, err)
	}

	status, err := tiles.Status(student.ID)
	require.NoError(t, err)
	assert.Nil(t, status.ResetAt)
	assert.False(t, status.ShouldReset)

	result, err := tiles.Flip(student.ID, models.TileCount-1)
	require.NoError(t, err)
	require.NotNil(t, result.Status.ResetAt)
	assert.WithinDuration(t, time.Now(), *result.Status.ResetAt, 5*time.Second)
	assert.False(t, result.Status.ShouldReset)
}

func TestShouldResetAfterCooldownElapses(t *testing.T) {
	db := setupTestDB(t)
	student := createStudent(t, db)
	tiles, _ := newTileService(db)
	addJournalEntries(t, db, student.ID, models.TileCount)

	for i := 0; i < models.TileCount; i++ {
		_, err := tiles.Flip(student.ID, i)
		require.NoError(t, err)
	}

	// 23 hours in: still cooling down.
	backdate(t, db, student.ID, 23*time.Hour)
	status, err := tiles.Status(student.ID)
	require.NoError(t, err)
	assert.False(t, status.ShouldReset)

	// 25 hours in: the board is due.
	backdate(t, db, student.ID, 25*time.Hour)
	status, err = tiles.Status(student.ID)
	require.NoError(t, err)
	assert.True(t, status.ShouldReset)
}

func backdate(t *testing.T, db *gorm.DB, userID uint, age time.Duration) {
	t.Helper()
	stamp := time.Now().Add(-age)
	err := db.Model(&models.TileState{}).
		Where("user_id = ?", userID).
		Update("reset_at", stamp).Error
	require.NoError(t, err)
}

func TestCursorWrapsAtQuoteFifty(t *testing.T) {
	db := setupTestDB(t)
	student := createStudent(t, db)
	tiles, _ := newTileService(db)
	addJournalEntries(t, db, student.ID, 2)

	require.NoError(t, db.Create(&models.TileState{
		UserID:         student.ID,
		NextQuoteIndex: models.QuoteCount - 1,
	}).Error)

	result, err := tiles.Flip(student.ID, 0)
	require.NoError(t, err)
	assert.Equal(t, models.QuoteCount-1, result.Quote.Index)

	result, err = tiles.Flip(student.ID, 1)
	require.NoError(t, err)
	assert.Equal(t, 0, result.Quote.Index)
}

func TestResetClearsBoardAndCursor(t *testing.T) {
	db := setupTestDB(t)
	student := createStudent(t, db)
	tiles, _ := newTileService(db)
	addJournalEntries(t, db, student.ID, models.TileCount)

	for i := 0; i < models.TileCount; i++ {
		_, err := tiles.Flip(student.ID, i)
		require.NoError(t, err)
	}

	require.NoError(t, tiles.Reset(student.ID))

	status, err := tiles.Status(student.ID)
	require.NoError(t, err)
	assert.Empty(t, status.FlippedTiles)
	assert.Equal(t, 0, status.NextQuoteIndex)
	require.NotNil(t, status.ResetAt)
	assert.False(t, status.ShouldReset)
	// Flip credits were spent last cycle and do not come back.
	assert.EqualValues(t, 0, status.AvailableFlips)
}

func TestFlipAwardsOneHousePoint(t *testing.T) {
	db := setupTestDB(t)
	student := createStudent(t, db)
	tiles, rewards := newTileService(db)
	addJournalEntries(t, db, student.ID, 1)

	_, err := tiles.Flip(student.ID, 0)
	require.NoError(t, err)

	total, err := rewards.Total(student.ID)
	require.NoError(t, err)
	assert.EqualValues(t, PointsTileFlip, total)
}

func TestStatusForFreshUserIsEmpty(t *testing.T) {
	db := setupTestDB(t)
	student := createStudent(t, db)
	tiles, _ := newTileService(db)

	status, err := tiles.Status(student.ID)
	require.NoError(t, err)
	assert.Empty(t, status.FlippedTiles)
	assert.Equal(t, 0, status.NextQuoteIndex)
	assert.Nil(t, status.ResetAt)
	assert.EqualValues(t, 0, status.AvailableFlips)
}

func TestSeededQuotesCoverFullCycle(t *testing.T) {
	db := setupTestDB(t)
	student := createStudent(t, db)
	tiles, _ := newTileService(db)
	addJournalEntries(t, db, student.ID, models.QuoteCount)

	seen := make(map[int]bool)
	for round := 0; round < models.QuoteCount; round += models.TileCount {
		for i := 0; i < models.TileCount && round+i < models.QuoteCount; i++ {
			result, err := tiles.Flip(student.ID, i)
			require.NoError(t, err)
			require.Falsef(t, seen[result.Quote.Index], "quote %d issued twice", result.Quote.Index)
			seen[result.Quote.Index] = true
		}
		// Clear flipped tiles but keep the cursor so the walk continues.
		require.NoError(t, db.Where("user_id = ?", student.ID).Delete(&models.TileFlip{}).Error)
	}

	assert.Len(t, seen, models.QuoteCount)
	for i := 0; i < models.QuoteCount; i++ {
		assert.Truef(t, seen[i], "quote %d was never issued", i)
	}
}

func TestFlipRollsBackWhenCursorSaveFails(t *testing.T) {
	db := setupTestDB(t)
	student := createStudent(t, db)
	tiles, _ := newTileService(db)
	addJournalEntries(t, db, student.ID, 3)

	_, err := tiles.Flip(student.ID, 0)
	require.NoError(t, err)

	// Block cursor updates so the second flip fails between the flip insert
	// and the state save; both must roll back together.
	require.NoError(t, db.Exec(
		"CREATE TRIGGER tile_state_update_block BEFORE UPDATE ON tile_states BEGIN SELECT RAISE(ABORT, 'blocked'); END",
	).Error)

	_, err = tiles.Flip(student.ID, 1)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnavailable))

	var flipCount int64
	db.Model(&models.TileFlip{}).Where("user_id = ?", student.ID).Count(&flipCount)
	assert.EqualValues(t, 1, flipCount, "failed flip must not be recorded")

	var state models.TileState
	require.NoError(t, db.Where("user_id = ?", student.ID).First(&state).Error)
	assert.Equal(t, 1, state.NextQuoteIndex)

	// Once the store recovers the same quote is issued, not skipped.
	require.NoError(t, db.Exec("DROP TRIGGER tile_state_update_block").Error)
	result, err := tiles.Flip(student.ID, 1)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Quote.Index)
}

func TestQuoteLookupMatchesSeedText(t *testing.T) {
	db := setupTestDB(t)
	student := createStudent(t, db)
	tiles, _ := newTileService(db)
	addJournalEntries(t, db, student.ID, 1)

	result, err := tiles.Flip(student.ID, 3)
	require.NoError(t, err)
	assert.Equal(t, fmt.Sprintf("Quote number %d", result.Quote.Index), result.Quote.Text)
}
