package models

import (
	"strings"
	"time"
)

type ProfessionalProfile struct {
	ID                uint      `json:"professional_id" gorm:"primaryKey"`
	AccountID         uint      `json:"user_id" gorm:"uniqueIndex;not null"`
	Account           *Account  `json:"-" gorm:"foreignKey:AccountID;constraint:OnDelete:CASCADE"`
	Fullname          string    `json:"fullname" gorm:"type:varchar(100);not null"`
	AvailableServices string    `json:"available_services" gorm:"type:varchar(255)"` // comma separated
	Experience        int       `json:"experience" gorm:"not null"`
	Documents         string    `json:"documents" gorm:"type:varchar(255)"`
	Address           string    `json:"address" gorm:"type:varchar(255);not null"`
	Pincode           string    `json:"pincode" gorm:"type:varchar(6);index;not null"`
	IsActive          bool      `json:"is_active" gorm:"not null"`
	IsApproved        bool      `json:"is_approved" gorm:"not null"`
	CreatedAt         time.Time `json:"created_at"`
}

func (ProfessionalProfile) TableName() string {
	return "professionals"
}

// JoinServices normalises the multi-valued form field into the stored column.
func JoinServices(services []string) string {
	cleaned := make([]string, 0, len(services))
	for _, s := range services {
		if s = strings.TrimSpace(s); s != "" {
			cleaned = append(cleaned, s)
		}
	}
	return strings.Join(cleaned, ", ")
}

// Eligible reports whether the professional may be assigned bookings.
func (p *ProfessionalProfile) Eligible() bool {
	return p.IsActive && p.IsApproved
}

// Offers reports whether name is one of the professional's listed services.
func (p *ProfessionalProfile) Offers(name string) bool {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return false
	}
	for _, s := range strings.Split(p.AvailableServices, ",") {
		if strings.ToLower(strings.TrimSpace(s)) == name {
			return true
		}
	}
	return false
}
