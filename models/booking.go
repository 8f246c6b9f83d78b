package models

import (
	"fmt"
	"time"

	"gorm.io/gorm"
)

type BookingStatus string

const (
	StatusRequested  BookingStatus = "requested"
	StatusAssigned   BookingStatus = "assigned"
	StatusInProgress BookingStatus = "in_progress"
	StatusCompleted  BookingStatus = "completed"
	StatusCancelled  BookingStatus = "cancelled"
)

// TransitionError is returned for any status change the lifecycle forbids.
type TransitionError struct {
	From BookingStatus
	To   BookingStatus
}

func (e *TransitionError) Error() string {
	if e.From == StatusCompleted || e.From == StatusCancelled {
		return fmt.Sprintf("no transitions allowed from %s", e.From)
	}
	return fmt.Sprintf("invalid transition from %s to %s", e.From, e.To)
}

// Booking is a customer's request for a service, stored as service_requests.
type Booking struct {
	ID             uint                 `json:"id" gorm:"primaryKey"`
	ServiceID      uint                 `json:"service_id" gorm:"not null;index"`
	Service        *Service             `json:"service,omitempty" gorm:"foreignKey:ServiceID;constraint:OnDelete:CASCADE"`
	CustomerID     uint                 `json:"customer_id" gorm:"not null;index"`
	Customer       *CustomerProfile     `json:"-" gorm:"foreignKey:CustomerID;constraint:OnDelete:CASCADE"`
	ProfessionalID *uint                `json:"professional_id" gorm:"index"`
	Professional   *ProfessionalProfile `json:"-" gorm:"foreignKey:ProfessionalID;constraint:OnDelete:CASCADE"`
	Status         BookingStatus        `json:"status" gorm:"type:varchar(20);not null;index"`
	Remarks        string               `json:"remarks" gorm:"type:varchar(255)"`
	RequestedAt    time.Time            `json:"date_of_request" gorm:"column:date_of_request;not null"`
	CompletedAt    *time.Time           `json:"date_of_completion" gorm:"column:date_of_completion"`
	CreatedAt      time.Time            `json:"created_at"`
	UpdatedAt      time.Time            `json:"updated_at"`
}

func (Booking) TableName() string {
	return "service_requests"
}

// NewBooking builds a fresh request; professional stays unset until assignment.
func NewBooking(serviceID, customerID uint, at time.Time) *Booking {
	return &Booking{
		ServiceID:   serviceID,
		CustomerID:  customerID,
		Status:      StatusRequested,
		RequestedAt: at,
	}
}

func (b *Booking) BeforeCreate(tx *gorm.DB) error {
	if b.Status == "" {
		b.Status = StatusRequested
	}
	if b.RequestedAt.IsZero() {
		b.RequestedAt = time.Now().UTC()
	}
	return nil
}

// IsTerminal reports whether the booking can no longer change state.
func (b *Booking) IsTerminal() bool {
	return b.Status == StatusCompleted || b.Status == StatusCancelled
}

// CanTransition validates a status change without applying it.
func (b *Booking) CanTransition(to BookingStatus) error {
	var ok bool
	switch b.Status {
	case StatusRequested:
		ok = to == StatusAssigned || to == StatusCancelled
	case StatusAssigned:
		ok = to == StatusInProgress || to == StatusCancelled
	case StatusInProgress:
		ok = to == StatusCompleted || to == StatusCancelled
	}
	if !ok {
		return &TransitionError{From: b.Status, To: to}
	}
	return nil
}

func (b *Booking) Assign(professionalID uint) error {
	if err := b.CanTransition(StatusAssigned); err != nil {
		return err
	}
	b.ProfessionalID = &professionalID
	b.Status = StatusAssigned
	return nil
}

func (b *Booking) Start() error {
	if err := b.CanTransition(StatusInProgress); err != nil {
		return err
	}
	b.Status = StatusInProgress
	return nil
}

func (b *Booking) Complete(at time.Time, remarks string) error {
	if err := b.CanTransition(StatusCompleted); err != nil {
		return err
	}
	b.Status = StatusCompleted
	b.CompletedAt = &at
	if remarks != "" {
		b.Remarks = remarks
	}
	return nil
}

func (b *Booking) Cancel(remarks string) error {
	if err := b.CanTransition(StatusCancelled); err != nil {
		return err
	}
	b.Status = StatusCancelled
	if remarks != "" {
		b.Remarks = remarks
	}
	return nil
}

// AssignedTo reports whether professionalID is the booking's professional.
func (b *Booking) AssignedTo(professionalID uint) bool {
	return b.ProfessionalID != nil && *b.ProfessionalID == professionalID
}
