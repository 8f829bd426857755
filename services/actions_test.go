package services

import (
	"errors"
	"testing"

	"reactcheckin/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordCheckInWithinCap(t *testing.T) {
	db := setupTestDB(t)
	rewards := NewRewardService(db)
	svc := NewActionService(db, NewSettingsService(db), rewards)
	student := createStudent(t, db)

	record, err := svc.Record(student.ID, models.ActionCheckIn, ActionPayload{Mood: "happy"})
	require.NoError(t, err)
	assert.Equal(t, models.ActionCheckIn, record.Kind)
	assert.Equal(t, "happy", record.Mood)
	assert.Equal(t, PointsCheckIn, record.Points)
}

func TestSecondCheckInSameDayRejected(t *testing.T) {
	db := setupTestDB(t)
	svc := NewActionService(db, NewSettingsService(db), NewRewardService(db))
	student := createStudent(t, db)

	_, err := svc.Record(student.ID, models.ActionCheckIn, ActionPayload{Mood: "happy"})
	require.NoError(t, err)

	_, err = svc.Record(student.ID, models.ActionCheckIn, ActionPayload{Mood: "tired"})
	require.Error(t, err)
	assert.True(t, IsCapExceeded(err))
	assert.Equal(t, "You've already checked in today", err.Error())

	// Only the first record exists.
	count, err := svc.CountToday(student.ID, models.ActionCheckIn)
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)
}

func TestRaisedCapAllowsExactlyCapActions(t *testing.T) {
	db := setupTestDB(t)
	setSetting(t, db, "max_checkins_per_day", "3")
	svc := NewActionService(db, NewSettingsService(db), NewRewardService(db))
	student := createStudent(t, db)

	successes := 0
	var lastErr error
	for i := 0; i < 4; i++ {
		_, err := svc.Record(student.ID, models.ActionCheckIn, ActionPayload{Mood: "ok"})
		if err == nil {
			successes++
		} else {
			lastErr = err
		}
	}

	assert.Equal(t, 3, successes)
	require.Error(t, lastErr)
	assert.True(t, IsCapExceeded(lastErr))
	assert.Equal(t, "You've reached the daily limit of 3 check-ins", lastErr.Error())
}

func TestJournalCapMessagePluralizes(t *testing.T) {
	db := setupTestDB(t)
	svc := NewActionService(db, NewSettingsService(db), NewRewardService(db))
	student := createStudent(t, db)

	_, err := svc.Record(student.ID, models.ActionJournal, ActionPayload{Content: "today was good"})
	require.NoError(t, err)

	_, err = svc.Record(student.ID, models.ActionJournal, ActionPayload{Content: "more thoughts"})
	require.Error(t, err)
	assert.Equal(t, "You've already written a journal entry today", err.Error())

	setSetting(t, db, "max_journal_entries_per_day", "2")
	_, err = svc.Record(student.ID, models.ActionJournal, ActionPayload{Content: "second entry"})
	require.NoError(t, err)
	_, err = svc.Record(student.ID, models.ActionJournal, ActionPayload{Content: "third entry"})
	require.Error(t, err)
	assert.Equal(t, "You've reached the daily limit of 2 journal entries", err.Error())
}

func TestStaffAreNeverCapped(t *testing.T) {
	db := setupTestDB(t)
	svc := NewActionService(db, NewSettingsService(db), NewRewardService(db))
	teacher := createUser(t, db, models.RoleTeacher, "", "")
	director := createUser(t, db, models.RoleDirector, "", "")

	for i := 0; i < 5; i++ {
		_, err := svc.Record(teacher.ID, models.ActionCheckIn, ActionPayload{Mood: "fine"})
		require.NoError(t, err)
		_, err = svc.Record(director.ID, models.ActionJournal, ActionPayload{Content: "staff note"})
		require.NoError(t, err)
	}
}

func TestRecordValidation(t *testing.T) {
	db := setupTestDB(t)
	svc := NewActionService(db, NewSettingsService(db), NewRewardService(db))
	student := createStudent(t, db)

	_, err := svc.Record(student.ID, models.ActionCheckIn, ActionPayload{})
	assert.True(t, errors.Is(err, ErrValidation))

	_, err = svc.Record(student.ID, models.ActionJournal, ActionPayload{Mood: "happy"})
	assert.True(t, errors.Is(err, ErrValidation))

	_, err = svc.Record(student.ID, "nap", ActionPayload{Mood: "sleepy"})
	assert.True(t, errors.Is(err, ErrValidation))

	_, err = svc.Record(9999, models.ActionCheckIn, ActionPayload{Mood: "happy"})
	assert.True(t, errors.Is(err, ErrValidation))
}

func TestRecordCreditsHousePoints(t *testing.T) {
	db := setupTestDB(t)
	rewards := NewRewardService(db)
	svc := NewActionService(db, NewSettingsService(db), rewards)
	student := createStudent(t, db)

	_, err := svc.Record(student.ID, models.ActionCheckIn, ActionPayload{Mood: "happy"})
	require.NoError(t, err)

	total, err := rewards.Total(student.ID)
	require.NoError(t, err)
	assert.Equal(t, PointsCheckIn, total)

	_, err = svc.Record(student.ID, models.ActionJournal, ActionPayload{Content: "a good day"})
	require.NoError(t, err)

	total, err = rewards.Total(student.ID)
	require.NoError(t, err)
	assert.Equal(t, PointsCheckIn+PointsJournal, total)
}

func TestHistoryReturnsNewestFirst(t *testing.T) {
	db := setupTestDB(t)
	svc := NewActionService(db, NewSettingsService(db), NewRewardService(db))
	student := createStudent(t, db)
	addJournalEntries(t, db, student.ID, 5)

	records, total, err := svc.History(student.ID, models.ActionJournal, 3, 0)
	require.NoError(t, err)
	assert.EqualValues(t, 5, total)
	assert.Len(t, records, 3)
}
