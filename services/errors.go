// services/errors.go - Error taxonomy shared by the service layer
package services

import (
	"errors"
	"fmt"
	"strings"

	"reactcheckin/models"

	"gorm.io/gorm"
)

// Sentinel errors. Handlers map these onto HTTP statuses; nothing is retried
// internally.
var (
	// ErrValidation marks missing or malformed input.
	ErrValidation = errors.New("invalid input")

	// ErrUnavailable marks an unreachable or failing store. Kept distinct
	// from CapExceededError so callers never confuse an outage with "limit
	// reached".
	ErrUnavailable = errors.New("service unavailable")

	// ErrAlreadyFlipped is returned when a tile was flipped before.
	ErrAlreadyFlipped = errors.New("tile already flipped")

	// ErrNoFlipsAvailable is returned when the user has no earned flips
	// left.
	ErrNoFlipsAvailable = errors.New("no flips available")

	// ErrNotAuthorized marks a failed role check.
	ErrNotAuthorized = errors.New("not authorized")
)

// CapExceededError is returned when a student hits the daily limit for an
// action kind. It is an expected, user-facing condition, not a system fault.
type CapExceededError struct {
	Kind string
	Cap  int
}

func (e *CapExceededError) Error() string {
	if e.Cap == 1 {
		switch e.Kind {
		case models.ActionCheckIn:
			return "You've already checked in today"
		case models.ActionJournal:
			return "You've already written a journal entry today"
		}
	}
	switch e.Kind {
	case models.ActionCheckIn:
		return fmt.Sprintf("You've reached the daily limit of %d check-ins", e.Cap)
	case models.ActionJournal:
		return fmt.Sprintf("You've reached the daily limit of %d journal entries", e.Cap)
	}
	return fmt.Sprintf("You've reached the daily limit of %d", e.Cap)
}

// IsCapExceeded reports whether err is a daily-cap rejection.
func IsCapExceeded(err error) bool {
	var capErr *CapExceededError
	return errors.As(err, &capErr)
}

// IsDuplicateKey reports whether err is a unique-index violation. GORM only
// translates these when the dialect supports it, so the driver message is
// matched as a fallback (Postgres says "duplicate key", SQLite says "UNIQUE
// constraint").
func IsDuplicateKey(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate key") || strings.Contains(msg, "unique constraint")
}
