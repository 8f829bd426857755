// services/settings.go - Key-value settings with fail-open defaults
package services

import (
	"fmt"
	"log"
	"strconv"

	"reactcheckin/models"

	"gorm.io/gorm"
)

// Daily caps are clamped to this range when a director changes them.
const (
	MinDailyCap = 1
	MaxDailyCap = 999
)

// settingDefaults is the documented fallback table. Reads never fail the
// caller: on a storage error or a missing row the default is returned, so a
// settings outage cannot block check-ins.
var settingDefaults = map[string]string{
	"max_checkins_per_day":        "1",
	"max_journal_entries_per_day": "1",
	"checkins_enabled":            "true",
	"journal_enabled":             "true",
	"tiles_enabled":               "true",
	"messages_enabled":            "true",
}

var numericSettings = map[string]bool{
	"max_checkins_per_day":        true,
	"max_journal_entries_per_day": true,
}

type SettingsService struct {
	db *gorm.DB
}

func NewSettingsService(db *gorm.DB) *SettingsService {
	return &SettingsService{db: db}
}

// Get returns the stored value for key, or its default when the row is
// missing or the store is unreachable.
func (s *SettingsService) Get(key string) string {
	var setting models.Setting
	if err := s.db.Where("key = ?", key).First(&setting).Error; err != nil {
		if err != gorm.ErrRecordNotFound {
			log.Printf("Settings read failed for %q, using default: %v", key, err)
		}
		return settingDefaults[key]
	}
	return setting.Value
}

// GetInt returns the integer value for key, falling back to the default and
// finally to 1 (the documented numeric default).
func (s *SettingsService) GetInt(key string) int {
	if n, err := strconv.Atoi(s.Get(key)); err == nil {
		return n
	}
	if n, err := strconv.Atoi(settingDefaults[key]); err == nil {
		return n
	}
	return 1
}

// GetBool returns the boolean value for key. Anything unparseable reads as
// true, the documented default for feature toggles.
func (s *SettingsService) GetBool(key string) bool {
	if b, err := strconv.ParseBool(s.Get(key)); err == nil {
		return b
	}
	return true
}

// Set writes a setting. Only directors may call this; numeric caps must
// parse and fall within [MinDailyCap, MaxDailyCap].
func (s *SettingsService) Set(actorRole, key, value string) error {
	if actorRole != models.RoleDirector {
		return fmt.Errorf("%w: only the director can change settings", ErrNotAuthorized)
	}

	if _, known := settingDefaults[key]; !known {
		return fmt.Errorf("%w: unknown setting %q", ErrValidation, key)
	}

	if numericSettings[key] {
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("%w: %q must be a number", ErrValidation, key)
		}
		if n < MinDailyCap || n > MaxDailyCap {
			return fmt.Errorf("%w: %q must be between %d and %d", ErrValidation, key, MinDailyCap, MaxDailyCap)
		}
	} else {
		if _, err := strconv.ParseBool(value); err != nil {
			return fmt.Errorf("%w: %q must be true or false", ErrValidation, key)
		}
	}

	var setting models.Setting
	err := s.db.Where("key = ?", key).First(&setting).Error
	switch {
	case err == gorm.ErrRecordNotFound:
		setting = models.Setting{Key: key, Value: value}
		err = s.db.Create(&setting).Error
	case err == nil:
		err = s.db.Model(&setting).Update("value", value).Error
	}
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return nil
}

// Snapshot returns the current value of every known setting, applying
// defaults for missing rows.
func (s *SettingsService) Snapshot() map[string]string {
	snapshot := make(map[string]string, len(settingDefaults))
	for key := range settingDefaults {
		snapshot[key] = s.Get(key)
	}
	return snapshot
}
