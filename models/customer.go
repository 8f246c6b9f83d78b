package models

import (
	"time"
)

type CustomerProfile struct {
	ID         uint      `json:"customer_id" gorm:"primaryKey"`
	AccountID  uint      `json:"user_id" gorm:"uniqueIndex;not null"`
	Account    *Account  `json:"-" gorm:"foreignKey:AccountID;constraint:OnDelete:CASCADE"`
	Fullname   string    `json:"fullname" gorm:"type:varchar(100);not null"`
	Address    string    `json:"address" gorm:"type:varchar(255);not null"`
	Pincode    string    `json:"pincode" gorm:"type:varchar(6);index;not null"`
	IsActive   bool      `json:"is_active" gorm:"not null"`
	IsApproved bool      `json:"is_approved" gorm:"not null"`
	CreatedAt  time.Time `json:"created_at"`
}

func (CustomerProfile) TableName() string {
	return "customers"
}
