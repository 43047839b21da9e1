package serviceimpl

import (
	"fmt"

	"github.com/servilink/go-ambassador/models"
	"github.com/servilink/go-ambassador/request"
	"github.com/servilink/go-ambassador/service"
	"gorm.io/gorm"
)

type referralService struct {
	DB *gorm.DB
}

var _ service.ReferralService = &referralService{}

func NewReferralService(db *gorm.DB) *referralService {
	return &referralService{DB: db}
}

func (s *referralService) GetReferrals(req request.GetReferralRequest) ([]models.Referral, int64, error) {
	var referrals []models.Referral
	var count int64

	query := s.DB.Model(&models.Referral{})
	query = request.ApplyGetReferralRequest(req, query)

	countQuery := query
	if err := countQuery.Count(&count).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count referrals: %w", err)
	}

	query = request.ApplyPaginationConditions(query, req.PaginationConditions)

	if err := query.Preload("Referrer").Preload("Referred").Find(&referrals).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to fetch referrals: %w", err)
	}

	return referrals, count, nil
}

func (s *referralService) GetTotalReferrals(req request.GetReferralRequest) (int64, error) {
	var count int64

	query := s.DB.Model(&models.Referral{})
	query = request.ApplyGetReferralRequest(req, query)

	if err := query.Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count referrals: %w", err)
	}

	return count, nil
}
