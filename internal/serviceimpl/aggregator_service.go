package serviceimpl

import (
	"errors"
	"fmt"

	"github.com/servilink/go-ambassador/models"
	"github.com/servilink/go-ambassador/response"
	"github.com/servilink/go-ambassador/service"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var oneHundred = decimal.NewFromInt(100)

type aggregatorService struct {
	DB *gorm.DB
}

var _ service.AggregatorService = &aggregatorService{}

func NewAggregatorService(db *gorm.DB) *aggregatorService {
	return &aggregatorService{DB: db}
}

// Summarize aggregates a referrer's referrals and ledger rows into dashboard
// stats. Pure: no side effects, empty inputs yield zero stats.
func (s *aggregatorService) Summarize(referrals []models.Referral, rewardEvents []models.RewardEvent) response.DashboardStats {
	stats := response.DashboardStats{
		ReferralCount: int64(len(referrals)),
		TotalEarnings: decimal.Zero,
		PendingTotal:  decimal.Zero,
	}

	for _, referral := range referrals {
		if referral.HoursCompleted.GreaterThanOrEqual(models.ValidationThresholdHours) {
			stats.ValidatedCount++
		}
		stats.Referrals = append(stats.Referrals, referralProgress(referral))
	}

	for _, event := range rewardEvents {
		switch event.Status {
		case models.RewardStatusPaid:
			stats.TotalEarnings = stats.TotalEarnings.Add(event.Amount)
		case models.RewardStatusPending:
			stats.PendingTotal = stats.PendingTotal.Add(event.Amount)
		}
	}

	return stats
}

func referralProgress(referral models.Referral) response.ReferralProgress {
	progress := response.ReferralProgress{
		ReferralID:          referral.ID,
		ReferredReferenceID: referral.ReferredReferenceID,
		HoursCompleted:      referral.HoursCompleted,
	}

	switch {
	case referral.HoursCompleted.GreaterThanOrEqual(models.LoyaltyThresholdHours):
		progress.ProgressPercent = oneHundred
		progress.Label = "loyalty reached"
	case referral.HoursCompleted.GreaterThanOrEqual(models.ValidationThresholdHours):
		progress.ProgressPercent = referral.HoursCompleted.Div(models.LoyaltyThresholdHours).Mul(oneHundred)
		progress.Label = "validation reached"
	default:
		progress.ProgressPercent = referral.HoursCompleted.Div(models.ValidationThresholdHours).Mul(oneHundred)
		progress.Label = fmt.Sprintf("%sh / %sh", referral.HoursCompleted, models.ValidationThresholdHours)
	}

	return progress
}

// GetReferrerDashboard loads everything shown on a referrer's dashboard:
// aggregated stats, the shareable code and the ambassador badge.
func (s *aggregatorService) GetReferrerDashboard(project, referrerReferenceID string) (*response.ReferrerDashboard, error) {
	var member models.Member
	if err := s.DB.Where("project = ? AND reference_id = ?", project, referrerReferenceID).
		First(&member).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("member not found for project=%s and reference_id=%s", project, referrerReferenceID)
		}
		return nil, fmt.Errorf("failed to fetch member: %w", err)
	}

	var referrals []models.Referral
	if err := s.DB.Where("project = ? AND referrer_id = ?", project, member.ID).
		Order("id ASC").Find(&referrals).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch referrals: %w", err)
	}

	var rewardEvents []models.RewardEvent
	if err := s.DB.Where("project = ? AND referrer_id = ?", project, member.ID).
		Order("id ASC").Find(&rewardEvents).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch reward events: %w", err)
	}

	return &response.ReferrerDashboard{
		DashboardStats:    s.Summarize(referrals, rewardEvents),
		ReferenceID:       member.ReferenceID,
		Code:              member.Code,
		IsSuperAmbassador: member.IsSuperAmbassador,
	}, nil
}

func (s *aggregatorService) GetProgramStats(project string) (*response.ProgramStats, error) {
	stats := &response.ProgramStats{
		TotalPaid:    decimal.Zero,
		TotalPending: decimal.Zero,
	}

	if err := s.DB.Model(&models.Member{}).Where("project = ?", project).
		Count(&stats.MemberCount).Error; err != nil {
		return nil, fmt.Errorf("failed to count members: %w", err)
	}

	if err := s.DB.Model(&models.Referral{}).Where("project = ?", project).
		Count(&stats.ReferralCount).Error; err != nil {
		return nil, fmt.Errorf("failed to count referrals: %w", err)
	}

	if err := s.DB.Model(&models.Referral{}).
		Where("project = ? AND first_reward_paid = ?", project, true).
		Count(&stats.ValidatedCount).Error; err != nil {
		return nil, fmt.Errorf("failed to count validated referrals: %w", err)
	}

	totalsByStatus := func(status string) (decimal.Decimal, error) {
		var totalStr string
		err := s.DB.Model(&models.RewardEvent{}).
			Select("COALESCE(CAST(SUM(amount) AS TEXT), '0')").
			Where("project = ? AND status = ?", project, status).
			Row().Scan(&totalStr)
		if err != nil {
			return decimal.Zero, err
		}
		return decimal.NewFromString(totalStr)
	}

	var err error
	if stats.TotalPaid, err = totalsByStatus(models.RewardStatusPaid); err != nil {
		return nil, fmt.Errorf("failed to sum paid rewards: %w", err)
	}
	if stats.TotalPending, err = totalsByStatus(models.RewardStatusPending); err != nil {
		return nil, fmt.Errorf("failed to sum pending rewards: %w", err)
	}

	return stats, nil
}
