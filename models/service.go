package models

import (
	"strconv"
	"strings"
	"time"

	"gorm.io/gorm"
)

type Service struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	Name         string    `json:"name" gorm:"type:varchar(100);not null"`
	Description  string    `json:"description" gorm:"type:varchar(255);not null"`
	Price        float64   `json:"price" gorm:"not null"`
	TimeRequired string    `json:"time_required" gorm:"type:varchar(50);not null"`
	IsApproved   bool      `json:"is_approved" gorm:"not null"`
	CreatedAt    time.Time `json:"created_at"`
}

// BeforeSave keeps catalog names trimmed and lower-cased.
func (s *Service) BeforeSave(tx *gorm.DB) error {
	s.Name = strings.ToLower(strings.TrimSpace(s.Name))
	return nil
}

// Matches does a case-insensitive substring match of term against the
// searchable fields, including the textual forms of price and approval.
func (s *Service) Matches(term string) bool {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return true
	}
	fields := []string{
		s.Name,
		s.Description,
		s.TimeRequired,
		strconv.FormatFloat(s.Price, 'f', -1, 64),
		strconv.FormatBool(s.IsApproved),
	}
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), term) {
			return true
		}
	}
	return false
}
