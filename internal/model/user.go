package model

import (
	"fmt"
	"time"

	"gorm.io/gorm"
)

// User represents a marketplace account.
type User struct {
	ID        uint       `json:"id" gorm:"primaryKey"`
	Username  string     `json:"username" gorm:"size:64;not null;uniqueIndex"`
	Password  string     `json:"-" gorm:"size:255;not null"` // bcrypt hash
	Address   string     `json:"address,omitempty" gorm:"size:128"`
	Role      Role       `json:"role" gorm:"type:varchar(20);not null;default:'user'"`
	Recovery  string     `json:"-" gorm:"size:255"`
	Seen      *time.Time `json:"seen,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// BeforeSave rejects roles outside the known set.
func (u *User) BeforeSave(tx *gorm.DB) error {
	if u.Role == "" {
		u.Role = RoleUser
	}
	if !u.Role.Valid() {
		return fmt.Errorf("invalid role %q", u.Role)
	}
	return nil
}
