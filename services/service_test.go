package services

import (
	"fmt"
	"strings"
	"testing"

	"reactcheckin/models"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestDB opens a per-test in-memory database with the full schema and
// the 50-quote rotation.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.ActionRecord{},
		&models.HousePointLedger{},
		&models.TileState{},
		&models.TileFlip{},
		&models.Quote{},
		&models.Setting{},
		&models.Message{},
	))

	quotes := make([]models.Quote, 0, models.QuoteCount)
	for i := 0; i < models.QuoteCount; i++ {
		quotes = append(quotes, models.Quote{
			Index:  i,
			Text:   fmt.Sprintf("Quote number %d", i),
			Author: "Test Author",
		})
	}
	require.NoError(t, db.Create(&quotes).Error)

	return db
}

func createUser(t *testing.T, db *gorm.DB, role, class, house string) *models.User {
	t.Helper()

	var count int64
	db.Model(&models.User{}).Count(&count)

	user := &models.User{
		StudentID:   fmt.Sprintf("user%d", count+1),
		Password:    "x",
		DisplayName: fmt.Sprintf("User %d", count+1),
		Role:        role,
		ClassName:   class,
		House:       house,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func createStudent(t *testing.T, db *gorm.DB) *models.User {
	return createUser(t, db, models.RoleStudent, "Year 7A", models.Houses[0])
}

// addJournalEntries inserts journal rows directly, bypassing the cap, to
// earn tile flips for a user.
func addJournalEntries(t *testing.T, db *gorm.DB, userID uint, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		require.NoError(t, db.Create(&models.ActionRecord{
			UserID:  userID,
			Kind:    models.ActionJournal,
			Content: fmt.Sprintf("entry %d", i),
			Points:  PointsJournal,
		}).Error)
	}
}

func setSetting(t *testing.T, db *gorm.DB, key, value string) {
	t.Helper()
	require.NoError(t, NewSettingsService(db).Set(models.RoleDirector, key, value))
}
