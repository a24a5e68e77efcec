package model

import (
	"fmt"
	"time"

	"gorm.io/gorm"
)

// Activity is an append-only audit record of a user action.
type Activity struct {
	ID        uint           `json:"id" gorm:"primaryKey"`
	UserID    uint           `json:"user_id" gorm:"not null;index"`
	ItemID    *uint          `json:"item_id,omitempty" gorm:"index"`
	Method    ActivityMethod `json:"method" gorm:"type:varchar(20);not null;index"`
	Status    ActivityStatus `json:"status" gorm:"type:varchar(20);not null"`
	Progress  int            `json:"progress" gorm:"not null;default:0"`
	Message   string         `json:"message" gorm:"type:text"`
	Notify    bool           `json:"notify" gorm:"not null;default:false"`
	CreatedAt time.Time      `json:"created_at"`
}

// TableName keeps the singular table name used by the marketplace schema.
func (Activity) TableName() string {
	return "activity"
}

// BeforeCreate rejects methods and statuses outside the known sets.
func (a *Activity) BeforeCreate(tx *gorm.DB) error {
	if !a.Method.Valid() {
		return fmt.Errorf("invalid activity method %q", a.Method)
	}
	if !a.Status.Valid() {
		return fmt.Errorf("invalid activity status %q", a.Status)
	}
	if a.Progress < 0 || a.Progress > 100 {
		return fmt.Errorf("activity progress %d out of range", a.Progress)
	}
	return nil
}
