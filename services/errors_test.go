package services

import (
	"fmt"
	"testing"

	"reactcheckin/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsDuplicateKeyRecognizesUniqueViolations(t *testing.T) {
	db := setupTestDB(t)

	first := models.User{StudentID: "dup-check", Password: "x", Role: models.RoleStudent}
	require.NoError(t, db.Create(&first).Error)

	// Second insert races past any check-then-create and hits the unique
	// index; it must classify as a duplicate, not a generic failure.
	second := models.User{StudentID: "dup-check", Password: "x", Role: models.RoleStudent}
	err := db.Create(&second).Error
	require.Error(t, err)
	assert.True(t, IsDuplicateKey(err))

	assert.True(t, IsDuplicateKey(fmt.Errorf(`ERROR: duplicate key value violates unique constraint "users_student_id_key"`)))
	assert.False(t, IsDuplicateKey(fmt.Errorf("connection refused")))
	assert.False(t, IsDuplicateKey(ErrUnavailable))
}
