// models/models.go - Core Models
package models

import (
	"time"
)

// Action kinds recorded in the ledger.
const (
	ActionCheckIn = "check_in"
	ActionJournal = "journal"
)

// ActionRecord is a single check-in or journal-entry submission. Records are
// append-only: never updated, deleted only by the administrative bulk purge.
type ActionRecord struct {
	ID      uint   `json:"id" gorm:"primaryKey"`
	UserID  uint   `json:"user_id" gorm:"not null;index:idx_action_records_user_kind"`
	User    *User  `json:"user,omitempty" gorm:"foreignKey:UserID"`
	Kind    string `json:"kind" gorm:"not null;size:20;index:idx_action_records_user_kind"`
	Mood    string `json:"mood" gorm:"size:30"`
	Content string `json:"content" gorm:"type:text"`
	Points  int    `json:"points" gorm:"default:0"`

	CreatedAt time.Time `json:"created_at"`
}

// HousePointLedger holds one cumulative point total per user. Created lazily
// on the first qualifying action; the total never decreases (no spend
// operation exists).
type HousePointLedger struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    uint      `json:"user_id" gorm:"not null;uniqueIndex"`
	User      *User     `json:"user,omitempty" gorm:"foreignKey:UserID"`
	Points    int       `json:"points" gorm:"default:0"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Setting is a director-configurable key-value flag (feature toggles, daily
// caps). Values are stored as strings and interpreted by the settings
// service.
type Setting struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Key       string    `json:"key" gorm:"uniqueIndex;not null;size:100"`
	Value     string    `json:"value" gorm:"not null;size:255"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Message is a simple student/staff message.
type Message struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	PublicID    string    `json:"public_id" gorm:"uniqueIndex;size:36"`
	SenderID    uint      `json:"sender_id" gorm:"not null;index"`
	Sender      *User     `json:"sender,omitempty" gorm:"foreignKey:SenderID"`
	RecipientID uint      `json:"recipient_id" gorm:"not null;index"`
	Recipient   *User     `json:"recipient,omitempty" gorm:"foreignKey:RecipientID"`
	Body        string    `json:"body" gorm:"not null;type:text"`
	IsRead      bool      `json:"is_read" gorm:"default:false"`
	CreatedAt   time.Time `json:"created_at"`
}

func (ActionRecord) TableName() string {
	return "action_records"
}

func (HousePointLedger) TableName() string {
	return "house_point_ledgers"
}

func (Setting) TableName() string {
	return "settings"
}

func (Message) TableName() string {
	return "messages"
}
