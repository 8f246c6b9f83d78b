package services

import (
	"context"
	"math"
	"strings"

	"github.com/meinhoongagan/household-services/models"
	"github.com/meinhoongagan/household-services/utils"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// ProfessionalView is a professional joined with its account email and
// average review rating. AverageRating is nil when there are no reviews.
type ProfessionalView struct {
	ProfessionalID    uint     `json:"professional_id"`
	UserID            uint     `json:"user_id"`
	Fullname          string   `json:"fullname"`
	Email             string   `json:"email"`
	AvailableServices string   `json:"available_services"`
	Experience        int      `json:"experience"`
	Documents         string   `json:"documents"`
	Address           string   `json:"address"`
	Pincode           string   `json:"pincode"`
	IsActive          bool     `json:"is_active"`
	IsApproved        bool     `json:"is_approved"`
	AverageRating     *float64 `json:"average_rating"`
}

// ProfessionalFilter holds the optional admin search filters; set filters
// are AND-combined.
type ProfessionalFilter struct {
	SearchTerm string   `query:"search_term"`
	Fullname   string   `query:"fullname"`
	Email      string   `query:"email"`
	Services   string   `query:"services"`
	Experience *int     `query:"experience"` // minimum years
	IsApproved *bool    `query:"is_approved"`
	AvgRating  *float64 `query:"avg_rating"` // minimum average
}

type ProfessionalSummary struct {
	TotalProfessionals    int64            `json:"total_professionals"`
	ApprovedProfessionals int64            `json:"approved_professionals"`
	PendingProfessionals  int64            `json:"pending_professionals"`
	AvgRatings            map[uint]float64 `json:"avg_ratings"`
}

type ProfessionalService struct {
	DB *gorm.DB
}

func NewProfessionalService(db *gorm.DB) *ProfessionalService {
	return &ProfessionalService{DB: db}
}

func roundRating(avg float64) float64 {
	return math.Round(avg*100) / 100
}

func likePattern(s string) string {
	return "%" + strings.ToLower(strings.TrimSpace(s)) + "%"
}

// averageRatings returns the unrounded average per professional that has at
// least one review.
func averageRatings(tx *gorm.DB) (map[uint]float64, error) {
	var rows []struct {
		ProfessionalID uint
		Average        float64
	}
	err := tx.Model(&models.Review{}).
		Select("professional_id, AVG(rating) AS average").
		Group("professional_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	out := make(map[uint]float64, len(rows))
	for _, r := range rows {
		out[r.ProfessionalID] = r.Average
	}
	return out, nil
}

func professionalQuery(tx *gorm.DB) *gorm.DB {
	return tx.Table("professionals AS p").
		Select(`p.id AS professional_id, p.account_id AS user_id, p.fullname, a.email,
			p.available_services, p.experience, p.documents, p.address, p.pincode,
			p.is_active, p.is_approved`).
		Joins("JOIN accounts a ON a.id = p.account_id").
		Order("p.id")
}

func (s *ProfessionalService) Details(ctx context.Context) ([]ProfessionalView, error) {
	return s.Search(ctx, ProfessionalFilter{})
}

func (s *ProfessionalService) Search(ctx context.Context, f ProfessionalFilter) ([]ProfessionalView, error) {
	tx := s.DB.WithContext(ctx)
	q := professionalQuery(tx)

	if t := strings.TrimSpace(f.SearchTerm); t != "" {
		p := likePattern(t)
		q = q.Where("LOWER(p.fullname) LIKE ? OR LOWER(a.email) LIKE ? OR LOWER(p.address) LIKE ? OR p.pincode LIKE ?", p, p, p, p)
	}
	if strings.TrimSpace(f.Fullname) != "" {
		q = q.Where("LOWER(p.fullname) LIKE ?", likePattern(f.Fullname))
	}
	if strings.TrimSpace(f.Email) != "" {
		q = q.Where("LOWER(a.email) LIKE ?", likePattern(f.Email))
	}
	if strings.TrimSpace(f.Services) != "" {
		q = q.Where("LOWER(p.available_services) LIKE ?", likePattern(f.Services))
	}
	if f.Experience != nil {
		q = q.Where("p.experience >= ?", *f.Experience)
	}
	if f.IsApproved != nil {
		q = q.Where("p.is_approved = ?", *f.IsApproved)
	}

	var views []ProfessionalView
	if err := q.Scan(&views).Error; err != nil {
		return nil, utils.FromDB(err, "")
	}

	ratings, err := averageRatings(tx)
	if err != nil {
		return nil, utils.FromDB(err, "")
	}

	out := make([]ProfessionalView, 0, len(views))
	for _, v := range views {
		avg, rated := ratings[v.ProfessionalID]
		if f.AvgRating != nil && (!rated || avg < *f.AvgRating) {
			continue
		}
		if rated {
			rounded := roundRating(avg)
			v.AverageRating = &rounded
		}
		out = append(out, v)
	}
	return out, nil
}

func (s *ProfessionalService) Summary(ctx context.Context) (*ProfessionalSummary, error) {
	tx := s.DB.WithContext(ctx)
	summary := &ProfessionalSummary{}

	if err := tx.Model(&models.ProfessionalProfile{}).Count(&summary.TotalProfessionals).Error; err != nil {
		return nil, utils.FromDB(err, "")
	}
	if err := tx.Model(&models.ProfessionalProfile{}).Where("is_approved = ?", true).
		Count(&summary.ApprovedProfessionals).Error; err != nil {
		return nil, utils.FromDB(err, "")
	}
	summary.PendingProfessionals = summary.TotalProfessionals - summary.ApprovedProfessionals

	ratings, err := averageRatings(tx)
	if err != nil {
		return nil, utils.FromDB(err, "")
	}
	summary.AvgRatings = make(map[uint]float64, len(ratings))
	for id, avg := range ratings {
		summary.AvgRatings[id] = roundRating(avg)
	}
	return summary, nil
}

// SetApproval writes is_approved as given, including no-op writes.
func (s *ProfessionalService) SetApproval(ctx context.Context, id uint, approved bool) error {
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var p models.ProfessionalProfile
		if err := tx.First(&p, id).Error; err != nil {
			return err
		}
		return tx.Model(&p).Update("is_approved", approved).Error
	})
	if err != nil {
		return utils.FromDB(err, "professional not found")
	}
	utils.Log.WithFields(logrus.Fields{"professional_id": id, "is_approved": approved}).Info("professional status updated")
	return nil
}
