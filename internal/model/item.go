package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Item is a digital good listed for sale by a user.
type Item struct {
	ID                uint            `json:"id" gorm:"primaryKey"`
	UserID            uint            `json:"user_id" gorm:"not null;index"`
	Name              string          `json:"name" gorm:"size:255;not null"`
	Description       string          `json:"description" gorm:"type:text"`
	Category          string          `json:"category" gorm:"size:100;index"`
	Price             decimal.Decimal `json:"price" gorm:"type:decimal(20,2);not null;default:0"`
	Overview          string          `json:"overview" gorm:"type:text"`
	License           string          `json:"license" gorm:"size:50;not null"`
	PaymentID         string          `json:"payment_id" gorm:"size:64;not null;uniqueIndex"`
	IntegratedAddress string          `json:"integrated_address" gorm:"size:255;not null"`
	Filename          string          `json:"filename" gorm:"size:255;not null"`
	Filesize          int64           `json:"filesize"`
	Views             uint            `json:"views" gorm:"not null;default:0"`
	Purchases         uint            `json:"purchases" gorm:"not null;default:0"`
	Created           time.Time       `json:"created" gorm:"autoCreateTime"`
	Reviewed          bool            `json:"reviewed" gorm:"not null;default:false;index"`
	Deleted           bool            `json:"-" gorm:"not null;default:false;index"`

	// Relations
	User User `json:"-" gorm:"foreignKey:UserID"`
}
