package services

import (
	"context"

	"github.com/meinhoongagan/household-services/models"
	"github.com/meinhoongagan/household-services/utils"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type ServiceInput struct {
	Name         string   `json:"name" validate:"required,max=100"`
	Description  string   `json:"description" validate:"required,max=255"`
	Price        *float64 `json:"price" validate:"required,gte=0"`
	TimeRequired string   `json:"time_required" validate:"required,max=50"`
}

type ServiceSummary struct {
	ApprovedCount        int64   `json:"approved_count"`
	UnapprovedCount      int64   `json:"unapproved_count"`
	ApprovedTotalMoney   float64 `json:"approved_total_money"`
	UnapprovedTotalMoney float64 `json:"unapproved_total_money"`
}

type CatalogService struct {
	DB *gorm.DB
}

func NewCatalogService(db *gorm.DB) *CatalogService {
	return &CatalogService{DB: db}
}

func (s *CatalogService) Add(ctx context.Context, in ServiceInput) (*models.Service, error) {
	if err := utils.Validate(in); err != nil {
		return nil, err
	}
	svc := &models.Service{
		Name:         in.Name,
		Description:  in.Description,
		Price:        *in.Price,
		TimeRequired: in.TimeRequired,
		IsApproved:   true,
	}
	if err := s.DB.WithContext(ctx).Create(svc).Error; err != nil {
		return nil, utils.FromDB(err, "")
	}
	utils.Log.WithFields(logrus.Fields{"service_id": svc.ID, "name": svc.Name}).Info("service added")
	return svc, nil
}

func (s *CatalogService) Update(ctx context.Context, id uint, in ServiceInput) (*models.Service, error) {
	if err := utils.Validate(in); err != nil {
		return nil, err
	}
	var svc models.Service
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&svc, id).Error; err != nil {
			return err
		}
		svc.Name = in.Name
		svc.Description = in.Description
		svc.Price = *in.Price
		svc.TimeRequired = in.TimeRequired
		return tx.Save(&svc).Error
	})
	if err != nil {
		return nil, utils.FromDB(err, "service not found")
	}
	return &svc, nil
}

// Delete removes the service and its bookings. Reviews of those bookings are
// kept but lose their booking link.
func (s *CatalogService) Delete(ctx context.Context, id uint) error {
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var svc models.Service
		if err := tx.First(&svc, id).Error; err != nil {
			return err
		}
		bookings := tx.Model(&models.Booking{}).Select("id").Where("service_id = ?", id)
		if err := tx.Model(&models.Review{}).Where("booking_id IN (?)", bookings).
			Update("booking_id", nil).Error; err != nil {
			return err
		}
		if err := tx.Where("service_id = ?", id).Delete(&models.Booking{}).Error; err != nil {
			return err
		}
		return tx.Delete(&svc).Error
	})
	if err != nil {
		return utils.FromDB(err, "service not found")
	}
	utils.Log.WithField("service_id", id).Info("service deleted")
	return nil
}

func (s *CatalogService) List(ctx context.Context) ([]models.Service, error) {
	var services []models.Service
	if err := s.DB.WithContext(ctx).Order("id").Find(&services).Error; err != nil {
		return nil, utils.FromDB(err, "")
	}
	return services, nil
}

func (s *CatalogService) ListApproved(ctx context.Context) ([]models.Service, error) {
	var services []models.Service
	if err := s.DB.WithContext(ctx).Where("is_approved = ?", true).Order("id").Find(&services).Error; err != nil {
		return nil, utils.FromDB(err, "")
	}
	return services, nil
}

func (s *CatalogService) Get(ctx context.Context, id uint) (*models.Service, error) {
	var svc models.Service
	if err := s.DB.WithContext(ctx).First(&svc, id).Error; err != nil {
		return nil, utils.FromDB(err, "service not found")
	}
	return &svc, nil
}

// Search matches term against the textual form of every searchable column.
// Filtering happens in Go so price and approval match the same way on every
// database driver.
func (s *CatalogService) Search(ctx context.Context, term string, approvedOnly bool) ([]models.Service, error) {
	var all []models.Service
	var err error
	if approvedOnly {
		all, err = s.ListApproved(ctx)
	} else {
		all, err = s.List(ctx)
	}
	if err != nil {
		return nil, err
	}

	matched := make([]models.Service, 0, len(all))
	for i := range all {
		if all[i].Matches(term) {
			matched = append(matched, all[i])
		}
	}
	return matched, nil
}

func (s *CatalogService) Summary(ctx context.Context) (*ServiceSummary, error) {
	type row struct {
		IsApproved bool
		Count      int64
		Total      float64
	}
	var rows []row
	err := s.DB.WithContext(ctx).Model(&models.Service{}).
		Select("is_approved, COUNT(id) AS count, COALESCE(SUM(price), 0) AS total").
		Group("is_approved").
		Scan(&rows).Error
	if err != nil {
		return nil, utils.FromDB(err, "")
	}

	summary := &ServiceSummary{}
	for _, r := range rows {
		if r.IsApproved {
			summary.ApprovedCount = r.Count
			summary.ApprovedTotalMoney = r.Total
		} else {
			summary.UnapprovedCount = r.Count
			summary.UnapprovedTotalMoney = r.Total
		}
	}
	return summary, nil
}

// SetApproval writes the flag as given; it does not look at bookings.
func (s *CatalogService) SetApproval(ctx context.Context, id uint, approved bool) error {
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var svc models.Service
		if err := tx.First(&svc, id).Error; err != nil {
			return err
		}
		return tx.Model(&svc).Update("is_approved", approved).Error
	})
	if err != nil {
		return utils.FromDB(err, "service not found")
	}
	utils.Log.WithFields(logrus.Fields{"service_id": id, "is_approved": approved}).Info("service approval changed")
	return nil
}
