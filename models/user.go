// models/user.go
package models

import (
	"time"
)

// Roles a user can hold. Role is fixed at registration (the public endpoint
// always creates students); only a director override through the admin API
// can change it.
const (
	RoleStudent  = "student"
	RoleTeacher  = "teacher"
	RoleDirector = "director"
)

// Houses students can be sorted into for point aggregation.
var Houses = []string{"Kererū", "Tūī", "Pīwakawaka", "Ruru"}

type User struct {
	ID          uint    `gorm:"primaryKey" json:"id"`
	StudentID   string  `gorm:"uniqueIndex;not null" json:"student_id"`
	Email       *string `gorm:"uniqueIndex" json:"email,omitempty"`
	Password    string  `gorm:"not null" json:"-"`
	DisplayName string  `json:"display_name"`
	Role        string  `gorm:"default:'student';size:20;index" json:"role"`
	ClassName   string  `gorm:"size:50;index" json:"class_name"`
	House       string  `gorm:"size:50;index" json:"house"`
	Avatar      string  `json:"avatar"`

	// Timestamps
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
	LastLogin    time.Time  `json:"last_login"`
	LastActivity *time.Time `json:"last_activity,omitempty"`

	// Relationships
	Actions   []ActionRecord `gorm:"foreignKey:UserID" json:"actions,omitempty"`
	TileFlips []TileFlip     `gorm:"foreignKey:UserID" json:"tile_flips,omitempty"`
}

func (u *User) IsStudent() bool {
	return u.Role == RoleStudent
}

func (u *User) IsStaff() bool {
	return u.Role == RoleTeacher || u.Role == RoleDirector
}

// ValidHouse reports whether name is one of the configured houses.
func ValidHouse(name string) bool {
	for _, h := range Houses {
		if h == name {
			return true
		}
	}
	return false
}

// ValidRole reports whether role is a known role name.
func ValidRole(role string) bool {
	return role == RoleStudent || role == RoleTeacher || role == RoleDirector
}
