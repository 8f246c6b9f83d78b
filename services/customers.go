package services

import (
	"context"
	"strings"

	"github.com/meinhoongagan/household-services/models"
	"github.com/meinhoongagan/household-services/utils"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type CustomerView struct {
	CustomerID uint   `json:"customer_id"`
	UserID     uint   `json:"user_id"`
	Fullname   string `json:"fullname"`
	Email      string `json:"email"`
	Address    string `json:"address"`
	Pincode    string `json:"pincode"`
	IsActive   bool   `json:"is_active"`
	IsApproved bool   `json:"is_approved"`
}

type CustomerFilter struct {
	Fullname string `query:"fullname"`
	Email    string `query:"email"`
	Pincode  string `query:"pincode"`
	IsActive *bool  `query:"is_active"`
	Address  string `query:"address"`
}

type CustomerSummary struct {
	TotalCustomers    int64 `json:"total_customers"`
	ActiveCustomers   int64 `json:"active_customers"`
	InactiveCustomers int64 `json:"inactive_customers"`
}

type CustomerService struct {
	DB *gorm.DB
}

func NewCustomerService(db *gorm.DB) *CustomerService {
	return &CustomerService{DB: db}
}

func (s *CustomerService) List(ctx context.Context) ([]CustomerView, error) {
	return s.Search(ctx, CustomerFilter{})
}

// Search applies each non-empty filter as a case-insensitive substring match.
func (s *CustomerService) Search(ctx context.Context, f CustomerFilter) ([]CustomerView, error) {
	q := s.DB.WithContext(ctx).Table("customers AS c").
		Select("c.id AS customer_id, c.account_id AS user_id, c.fullname, a.email, c.address, c.pincode, c.is_active, c.is_approved").
		Joins("JOIN accounts a ON a.id = c.account_id").
		Order("c.id")

	if strings.TrimSpace(f.Fullname) != "" {
		q = q.Where("LOWER(c.fullname) LIKE ?", likePattern(f.Fullname))
	}
	if strings.TrimSpace(f.Email) != "" {
		q = q.Where("LOWER(a.email) LIKE ?", likePattern(f.Email))
	}
	if strings.TrimSpace(f.Pincode) != "" {
		q = q.Where("c.pincode LIKE ?", likePattern(f.Pincode))
	}
	if f.IsActive != nil {
		q = q.Where("c.is_active = ?", *f.IsActive)
	}
	if strings.TrimSpace(f.Address) != "" {
		q = q.Where("LOWER(c.address) LIKE ?", likePattern(f.Address))
	}

	var views []CustomerView
	if err := q.Scan(&views).Error; err != nil {
		return nil, utils.FromDB(err, "")
	}
	return views, nil
}

func (s *CustomerService) Summary(ctx context.Context) (*CustomerSummary, error) {
	tx := s.DB.WithContext(ctx)
	summary := &CustomerSummary{}
	if err := tx.Model(&models.CustomerProfile{}).Count(&summary.TotalCustomers).Error; err != nil {
		return nil, utils.FromDB(err, "")
	}
	if err := tx.Model(&models.CustomerProfile{}).Where("is_active = ?", true).
		Count(&summary.ActiveCustomers).Error; err != nil {
		return nil, utils.FromDB(err, "")
	}
	summary.InactiveCustomers = summary.TotalCustomers - summary.ActiveCustomers
	return summary, nil
}

// SetActive writes is_active as given, including no-op writes.
func (s *CustomerService) SetActive(ctx context.Context, id uint, active bool) error {
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var c models.CustomerProfile
		if err := tx.First(&c, id).Error; err != nil {
			return err
		}
		return tx.Model(&c).Update("is_active", active).Error
	})
	if err != nil {
		return utils.FromDB(err, "customer not found")
	}
	utils.Log.WithFields(logrus.Fields{"customer_id": id, "is_active": active}).Info("customer status updated")
	return nil
}
