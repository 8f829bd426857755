package services

import (
	"testing"

	"reactcheckin/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAwardAccumulatesAcrossActions(t *testing.T) {
	db := setupTestDB(t)
	student := createStudent(t, db)
	rewards := NewRewardService(db)

	rewards.Award(student.ID, PointsCheckIn)
	rewards.Award(student.ID, PointsJournal)
	rewards.Award(student.ID, PointsTileFlip)

	total, err := rewards.Total(student.ID)
	require.NoError(t, err)
	assert.Equal(t, PointsCheckIn+PointsJournal+PointsTileFlip, total)

	var count int64
	db.Model(&models.HousePointLedger{}).Where("user_id = ?", student.ID).Count(&count)
	assert.EqualValues(t, 1, count, "ledger keeps one row per user")
}

func TestAwardIgnoresStaffAndHouselessStudents(t *testing.T) {
	db := setupTestDB(t)
	rewards := NewRewardService(db)

	teacher := createUser(t, db, models.RoleTeacher, "", models.Houses[0])
	director := createUser(t, db, models.RoleDirector, "", "")
	houseless := createUser(t, db, models.RoleStudent, "Year 8B", "")

	for _, u := range []*models.User{teacher, director, houseless} {
		rewards.Award(u.ID, PointsJournal)
		total, err := rewards.Total(u.ID)
		require.NoError(t, err)
		assert.Zerof(t, total, "user %s should not accrue points", u.StudentID)
	}
}

func TestAwardZeroOrNegativeIsNoOp(t *testing.T) {
	db := setupTestDB(t)
	student := createStudent(t, db)
	rewards := NewRewardService(db)

	rewards.Award(student.ID, 0)
	rewards.Award(student.ID, -5)

	total, err := rewards.Total(student.ID)
	require.NoError(t, err)
	assert.Zero(t, total)
}

func TestAwardSwallowsMissingUser(t *testing.T) {
	db := setupTestDB(t)
	rewards := NewRewardService(db)

	// Must not panic or error out; the credit is simply dropped.
	rewards.Award(99999, PointsCheckIn)

	var count int64
	db.Model(&models.HousePointLedger{}).Count(&count)
	assert.Zero(t, count)
}

func TestTotalForUnknownUserIsZero(t *testing.T) {
	db := setupTestDB(t)
	rewards := NewRewardService(db)

	total, err := rewards.Total(42)
	require.NoError(t, err)
	assert.Zero(t, total)
}

func TestHouseTotalsGroupAcrossStudents(t *testing.T) {
	db := setupTestDB(t)
	rewards := NewRewardService(db)

	a := createUser(t, db, models.RoleStudent, "Year 7A", models.Houses[0])
	b := createUser(t, db, models.RoleStudent, "Year 7B", models.Houses[0])
	c := createUser(t, db, models.RoleStudent, "Year 8A", models.Houses[1])

	rewards.Award(a.ID, 3)
	rewards.Award(b.ID, 2)
	rewards.Award(c.ID, 4)

	totals, err := rewards.HouseTotals()
	require.NoError(t, err)
	require.Len(t, totals, 2)

	byHouse := make(map[string]int64)
	for _, gt := range totals {
		byHouse[gt.Group] = gt.Points
	}
	assert.EqualValues(t, 5, byHouse[models.Houses[0]])
	assert.EqualValues(t, 4, byHouse[models.Houses[1]])

	// Ordered by points descending.
	assert.Equal(t, models.Houses[0], totals[0].Group)
}

func TestClassTotalsGroupByClassName(t *testing.T) {
	db := setupTestDB(t)
	rewards := NewRewardService(db)

	a := createUser(t, db, models.RoleStudent, "Year 7A", models.Houses[0])
	b := createUser(t, db, models.RoleStudent, "Year 7A", models.Houses[1])
	c := createUser(t, db, models.RoleStudent, "Year 9C", models.Houses[2])

	rewards.Award(a.ID, 1)
	rewards.Award(b.ID, 1)
	rewards.Award(c.ID, 6)

	totals, err := rewards.ClassTotals()
	require.NoError(t, err)
	require.Len(t, totals, 2)
	assert.Equal(t, "Year 9C", totals[0].Group)
	assert.EqualValues(t, 6, totals[0].Points)
	assert.Equal(t, "Year 7A", totals[1].Group)
	assert.EqualValues(t, 2, totals[1].Points)
}
