package models

import (
	"time"

	"gorm.io/gorm"
)

const (
	MinRating = 1
	MaxRating = 5
)

// Review is a customer's rating of the professional who completed a booking.
// BookingID is nulled when the booking goes away with its service.
type Review struct {
	ID             uint                 `json:"id" gorm:"primaryKey"`
	BookingID      *uint                `json:"booking_id" gorm:"uniqueIndex"`
	Booking        *Booking             `json:"-" gorm:"foreignKey:BookingID;constraint:OnDelete:SET NULL"`
	CustomerID     uint                 `json:"customer_id" gorm:"not null;index"`
	Customer       *CustomerProfile     `json:"-" gorm:"foreignKey:CustomerID;constraint:OnDelete:CASCADE"`
	ProfessionalID uint                 `json:"professional_id" gorm:"not null;index"`
	Professional   *ProfessionalProfile `json:"-" gorm:"foreignKey:ProfessionalID;constraint:OnDelete:CASCADE"`
	Rating         int                  `json:"rating" gorm:"not null"`
	ReviewText     string               `json:"review_text" gorm:"type:text"`
	ReviewDate     time.Time            `json:"review_date" gorm:"not null"`
}

func (Review) TableName() string {
	return "reviews"
}

// ValidRating reports whether r is within the accepted star range.
func ValidRating(r int) bool {
	return r >= MinRating && r <= MaxRating
}

func (r *Review) BeforeCreate(tx *gorm.DB) error {
	if r.ReviewDate.IsZero() {
		r.ReviewDate = time.Now().UTC()
	}
	return nil
}
