package serviceimpl

import (
	"errors"
	"fmt"

	"github.com/servilink/go-ambassador/models"
	"github.com/servilink/go-ambassador/request"
	"github.com/servilink/go-ambassador/service"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type rewardService struct {
	DB *gorm.DB
}

var _ service.RewardService = &rewardService{}

func NewRewardService(db *gorm.DB) *rewardService {
	return &rewardService{DB: db}
}

func (s *rewardService) GetRewards(req request.GetRewardRequest) ([]models.RewardEvent, int64, error) {
	var rewards []models.RewardEvent
	var count int64

	query := s.DB.Model(&models.RewardEvent{})
	query = request.ApplyGetRewardRequest(req, query)

	countQuery := query
	if err := countQuery.Count(&count).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count reward events: %w", err)
	}

	query = request.ApplyPaginationConditions(query, req.PaginationConditions)

	if err := query.Preload("Referral").Find(&rewards).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to fetch reward events: %w", err)
	}

	return rewards, count, nil
}

func (s *rewardService) GetTotalRewards(req request.GetRewardRequest) (decimal.Decimal, error) {
	var totalStr string

	query := s.DB.Model(&models.RewardEvent{}).Select("COALESCE(CAST(SUM(amount) AS TEXT), '0')")
	query = request.ApplyGetRewardRequest(req, query)

	if err := query.Row().Scan(&totalStr); err != nil {
		return decimal.Zero, fmt.Errorf("failed to calculate total rewards: %w", err)
	}

	total, err := decimal.NewFromString(totalStr)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to parse total rewards: %w", err)
	}

	return total, nil
}

// UpdateRewardStatus is the payout collaborator's entry point. Ledger rows
// are otherwise immutable; the only permitted transition is pending→paid.
func (s *rewardService) UpdateRewardStatus(project string, rewardID uint, newStatus string) (*models.RewardEvent, error) {
	if newStatus != models.RewardStatusPaid {
		return nil, fmt.Errorf("invalid new status '%s': only '%s' is permitted", newStatus, models.RewardStatusPaid)
	}

	var reward models.RewardEvent
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("project = ? AND id = ?", project, rewardID).
			First(&reward).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("reward event %d not found in project '%s'", rewardID, project)
			}
			return fmt.Errorf("failed to fetch reward event: %w", err)
		}

		if reward.Status != models.RewardStatusPending {
			return fmt.Errorf("reward event %d is '%s', only pending rewards can be paid", rewardID, reward.Status)
		}

		reward.Status = models.RewardStatusPaid
		if err := tx.Save(&reward).Error; err != nil {
			return fmt.Errorf("failed to update reward status: %w", err)
		}

		return nil
	})

	if err != nil {
		return nil, err
	}

	return &reward, nil
}
