// models/tiles.go - Quote-tile unlock state
package models

import (
	"time"
)

// A user has 12 tiles (indices 0-11) and earns one flip per journal entry.
// The quote cursor walks the 50 seeded quotes in a fixed order, wrapping at
// 50.
const (
	TileCount  = 12
	QuoteCount = 50
)

// TileState is the per-user cursor and cooldown marker. Created lazily on
// the first flip.
type TileState struct {
	ID             uint       `json:"id" gorm:"primaryKey"`
	UserID         uint       `json:"user_id" gorm:"not null;uniqueIndex"`
	User           *User      `json:"user,omitempty" gorm:"foreignKey:UserID"`
	NextQuoteIndex int        `json:"next_quote_index" gorm:"default:0"`
	ResetAt        *time.Time `json:"reset_at,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

// TileFlip records one revealed tile. The composite unique index stops a
// tile being flipped twice for the same user.
type TileFlip struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	UserID     uint      `json:"user_id" gorm:"not null;uniqueIndex:idx_tile_flips_user_tile"`
	TileIndex  int       `json:"tile_index" gorm:"not null;uniqueIndex:idx_tile_flips_user_tile"`
	QuoteIndex int       `json:"quote_index" gorm:"not null"`
	CreatedAt  time.Time `json:"created_at"`
}

// Quote is one of the 50 fixed quotes, seeded once and director-editable.
type Quote struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Index     int       `json:"index" gorm:"uniqueIndex;not null"`
	Text      string    `json:"text" gorm:"not null;type:text"`
	Author    string    `json:"author" gorm:"size:100"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (TileState) TableName() string {
	return "tile_states"
}

func (TileFlip) TableName() string {
	return "tile_flips"
}

func (Quote) TableName() string {
	return "quotes"
}
