package services

import (
	"context"
	"time"

	"github.com/meinhoongagan/household-services/models"
	"github.com/meinhoongagan/household-services/utils"
)

// BookingEvent is emitted after a booking change has been committed.
type BookingEvent struct {
	BookingID      uint                 `json:"booking_id"`
	Status         models.BookingStatus `json:"status"`
	CustomerID     uint                 `json:"customer_id"`
	ProfessionalID *uint                `json:"professional_id"`
	At             time.Time            `json:"at"`
}

// EventSink receives booking events. A nil sink disables publishing.
type EventSink interface {
	Publish(ctx context.Context, ev BookingEvent) error
}

func publish(ctx context.Context, sink EventSink, b *models.Booking, at time.Time) {
	if sink == nil {
		return
	}
	ev := BookingEvent{
		BookingID:      b.ID,
		Status:         b.Status,
		CustomerID:     b.CustomerID,
		ProfessionalID: b.ProfessionalID,
		At:             at,
	}
	if err := sink.Publish(ctx, ev); err != nil {
		utils.Log.WithError(err).WithField("booking_id", b.ID).Warn("publish booking event")
	}
}
