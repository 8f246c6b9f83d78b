package services

import (
	"context"
	"errors"
	"time"

	"github.com/meinhoongagan/household-services/models"
	"github.com/meinhoongagan/household-services/utils"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// BookingView is a booking denormalised with its service, customer and, once
// assigned, professional.
type BookingView struct {
	ID                 uint                 `json:"id"`
	ServiceID          uint                 `json:"service_id"`
	ServiceName        string               `json:"service_name"`
	ServiceDescription string               `json:"service_description"`
	CustomerID         uint                 `json:"customer_id"`
	CustomerName       string               `json:"customer_name"`
	ProfessionalID     *uint                `json:"professional_id"`
	ProfessionalName   *string              `json:"professional_name"`
	ProfessionalEmail  *string              `json:"professional_email"`
	Status             models.BookingStatus `json:"status"`
	Remarks            string               `json:"remarks"`
	DateOfRequest      time.Time            `json:"date_of_request"`
	DateOfCompletion   *time.Time           `json:"date_of_completion"`
}

type BookingService struct {
	DB     *gorm.DB
	Events EventSink
	Now    func() time.Time
}

func NewBookingService(db *gorm.DB, events EventSink) *BookingService {
	return &BookingService{
		DB:     db,
		Events: events,
		Now:    func() time.Time { return time.Now().UTC() },
	}
}

func bookingQuery(tx *gorm.DB) *gorm.DB {
	return tx.Table("service_requests AS b").
		Select(`b.id, b.service_id, s.name AS service_name, s.description AS service_description,
			b.customer_id, c.fullname AS customer_name,
			b.professional_id, p.fullname AS professional_name, pa.email AS professional_email,
			b.status, b.remarks, b.date_of_request, b.date_of_completion`).
		Joins("JOIN services s ON s.id = b.service_id").
		Joins("JOIN customers c ON c.id = b.customer_id").
		Joins("LEFT JOIN professionals p ON p.id = b.professional_id").
		Joins("LEFT JOIN accounts pa ON pa.id = p.account_id").
		Order("b.id")
}

func validStatus(s models.BookingStatus) bool {
	switch s {
	case models.StatusRequested, models.StatusAssigned, models.StatusInProgress,
		models.StatusCompleted, models.StatusCancelled:
		return true
	}
	return false
}

// Create opens a request for an approved service on behalf of customer.
func (s *BookingService) Create(ctx context.Context, customer *models.CustomerProfile, serviceID uint) (*models.Booking, error) {
	booking := models.NewBooking(serviceID, customer.ID, s.Now())

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var svc models.Service
		if err := tx.First(&svc, serviceID).Error; err != nil {
			return err
		}
		if !svc.IsApproved {
			return utils.Unauthorized("service is not available for booking")
		}
		return tx.Create(booking).Error
	})
	if err != nil {
		return nil, utils.FromDB(err, "service not found")
	}

	utils.Log.WithFields(logrus.Fields{
		"booking_id":  booking.ID,
		"service_id":  serviceID,
		"customer_id": customer.ID,
	}).Info("booking requested")
	publish(ctx, s.Events, booking, booking.RequestedAt)
	return booking, nil
}

// History lists every booking of the customer.
func (s *BookingService) History(ctx context.Context, customerID uint) ([]BookingView, error) {
	var views []BookingView
	err := bookingQuery(s.DB.WithContext(ctx)).Where("b.customer_id = ?", customerID).Scan(&views).Error
	if err != nil {
		return nil, utils.FromDB(err, "")
	}
	return views, nil
}

// ListAll lists every booking, optionally restricted to one status.
func (s *BookingService) ListAll(ctx context.Context, status string) ([]BookingView, error) {
	q := bookingQuery(s.DB.WithContext(ctx))
	if status != "" {
		st := models.BookingStatus(status)
		if !validStatus(st) {
			return nil, utils.ValidationError("unknown status %q", status)
		}
		q = q.Where("b.status = ?", st)
	}

	var views []BookingView
	if err := q.Scan(&views).Error; err != nil {
		return nil, utils.FromDB(err, "")
	}
	return views, nil
}

// ProfessionalQueue lists the professional's own bookings plus open requests.
func (s *BookingService) ProfessionalQueue(ctx context.Context, professionalID uint) ([]BookingView, error) {
	var views []BookingView
	err := bookingQuery(s.DB.WithContext(ctx)).
		Where("b.professional_id = ? OR b.status = ?", professionalID, models.StatusRequested).
		Scan(&views).Error
	if err != nil {
		return nil, utils.FromDB(err, "")
	}
	return views, nil
}

// Assign lets an admin hand a requested booking to an eligible professional.
func (s *BookingService) Assign(ctx context.Context, bookingID, professionalID uint) (*models.Booking, error) {
	return s.transition(ctx, bookingID, func(tx *gorm.DB, b *models.Booking) error {
		var p models.ProfessionalProfile
		if err := tx.First(&p, professionalID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return utils.NotFound("professional not found")
			}
			return err
		}
		if !p.Eligible() {
			return utils.ValidationError("professional %d is not active and approved", p.ID)
		}
		svc, err := bookedService(tx, b)
		if err != nil {
			return err
		}
		if !p.Offers(svc.Name) {
			return utils.ValidationError("professional %d does not offer %s", p.ID, svc.Name)
		}
		return b.Assign(p.ID)
	})
}

// Accept assigns an open request to the calling professional.
func (s *BookingService) Accept(ctx context.Context, professional *models.ProfessionalProfile, bookingID uint) (*models.Booking, error) {
	return s.transition(ctx, bookingID, func(tx *gorm.DB, b *models.Booking) error {
		if !professional.Eligible() {
			return utils.Unauthorized("professional account is not approved yet")
		}
		svc, err := bookedService(tx, b)
		if err != nil {
			return err
		}
		if !professional.Offers(svc.Name) {
			return utils.Unauthorized("you do not offer this service")
		}
		return b.Assign(professional.ID)
	})
}

func bookedService(tx *gorm.DB, b *models.Booking) (*models.Service, error) {
	var svc models.Service
	if err := tx.First(&svc, b.ServiceID).Error; err != nil {
		return nil, err
	}
	return &svc, nil
}

func (s *BookingService) Start(ctx context.Context, professional *models.ProfessionalProfile, bookingID uint) (*models.Booking, error) {
	return s.transition(ctx, bookingID, func(tx *gorm.DB, b *models.Booking) error {
		if !b.AssignedTo(professional.ID) {
			return utils.Unauthorized("booking is not assigned to you")
		}
		return b.Start()
	})
}

func (s *BookingService) Complete(ctx context.Context, professional *models.ProfessionalProfile, bookingID uint, remarks string) (*models.Booking, error) {
	return s.transition(ctx, bookingID, func(tx *gorm.DB, b *models.Booking) error {
		if !b.AssignedTo(professional.ID) {
			return utils.Unauthorized("booking is not assigned to you")
		}
		return b.Complete(s.Now(), remarks)
	})
}

// CancelByCustomer cancels one of the customer's own bookings.
func (s *BookingService) CancelByCustomer(ctx context.Context, customer *models.CustomerProfile, bookingID uint, remarks string) (*models.Booking, error) {
	return s.transition(ctx, bookingID, func(tx *gorm.DB, b *models.Booking) error {
		if b.CustomerID != customer.ID {
			return utils.Unauthorized("booking belongs to another customer")
		}
		return b.Cancel(remarks)
	})
}

func (s *BookingService) CancelByAdmin(ctx context.Context, bookingID uint, remarks string) (*models.Booking, error) {
	return s.transition(ctx, bookingID, func(tx *gorm.DB, b *models.Booking) error {
		return b.Cancel(remarks)
	})
}

// transition loads the booking, applies change and writes it back only if the
// status is still what was read, so concurrent transitions cannot both win.
func (s *BookingService) transition(ctx context.Context, id uint, change func(tx *gorm.DB, b *models.Booking) error) (*models.Booking, error) {
	var b models.Booking
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&b, id).Error; err != nil {
			return err
		}
		from := b.Status
		if b.IsTerminal() {
			return &models.TransitionError{From: from}
		}
		if err := change(tx, &b); err != nil {
			return err
		}

		res := tx.Model(&models.Booking{}).
			Where("id = ? AND status = ?", b.ID, from).
			Updates(map[string]interface{}{
				"status":             b.Status,
				"professional_id":    b.ProfessionalID,
				"remarks":            b.Remarks,
				"date_of_completion": b.CompletedAt,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return utils.Conflict("booking was changed by another request")
		}
		return nil
	})
	if err != nil {
		var te *models.TransitionError
		if errors.As(err, &te) {
			return nil, utils.Conflict(te.Error())
		}
		return nil, utils.FromDB(err, "booking not found")
	}

	utils.Log.WithFields(logrus.Fields{"booking_id": b.ID, "status": b.Status}).Info("booking updated")
	publish(ctx, s.Events, &b, s.Now())
	return &b, nil
}
