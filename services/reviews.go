package services

import (
	"context"
	"strings"

	"github.com/meinhoongagan/household-services/models"
	"github.com/meinhoongagan/household-services/utils"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type ReviewInput struct {
	Rating     int    `json:"rating" validate:"required,min=1,max=5"`
	ReviewText string `json:"review_text" validate:"max=255"`
}

type ReviewService struct {
	DB *gorm.DB
}

func NewReviewService(db *gorm.DB) *ReviewService {
	return &ReviewService{DB: db}
}

// Create records the customer's review of a completed booking. A booking can
// be reviewed once.
func (s *ReviewService) Create(ctx context.Context, customer *models.CustomerProfile, bookingID uint, in ReviewInput) (*models.Review, error) {
	if err := utils.Validate(in); err != nil {
		return nil, err
	}
	if !models.ValidRating(in.Rating) {
		return nil, utils.ValidationError("rating must be between %d and %d", models.MinRating, models.MaxRating)
	}

	var review models.Review
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var b models.Booking
		if err := tx.First(&b, bookingID).Error; err != nil {
			return err
		}
		if b.CustomerID != customer.ID {
			return utils.Unauthorized("booking belongs to another customer")
		}
		if b.Status != models.StatusCompleted || b.ProfessionalID == nil {
			return utils.Conflict("only completed bookings can be reviewed")
		}

		var count int64
		if err := tx.Model(&models.Review{}).Where("booking_id = ?", b.ID).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return utils.Conflict("booking has already been reviewed")
		}

		review = models.Review{
			BookingID:      &b.ID,
			CustomerID:     customer.ID,
			ProfessionalID: *b.ProfessionalID,
			Rating:         in.Rating,
			ReviewText:     strings.TrimSpace(in.ReviewText),
		}
		return tx.Create(&review).Error
	})
	if err != nil {
		if utils.IsDuplicateKey(err) && !utils.IsKind(err, utils.KindConflict) {
			return nil, utils.Conflict("booking has already been reviewed")
		}
		return nil, utils.FromDB(err, "booking not found")
	}

	utils.Log.WithFields(logrus.Fields{
		"booking_id":      bookingID,
		"professional_id": review.ProfessionalID,
		"rating":          review.Rating,
	}).Info("review submitted")
	return &review, nil
}

func (s *ReviewService) ListForProfessional(ctx context.Context, professionalID uint) ([]models.Review, error) {
	var reviews []models.Review
	err := s.DB.WithContext(ctx).Where("professional_id = ?", professionalID).
		Order("review_date DESC").Find(&reviews).Error
	if err != nil {
		return nil, utils.FromDB(err, "")
	}
	return reviews, nil
}
