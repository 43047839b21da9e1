package serviceimpl

import (
	"errors"
	"fmt"
	"time"

	"github.com/servilink/go-ambassador/models"
	"github.com/servilink/go-ambassador/request"
	"github.com/servilink/go-ambassador/service"
	"gorm.io/gorm"
)

type accrualService struct {
	DB *gorm.DB
}

var _ service.AccrualService = &accrualService{}

func NewAccrualService(db *gorm.DB) *accrualService {
	return &accrualService{DB: db}
}

// RecordHours appends a pending AccrualLog for the referral behind the
// referred provider. No tier evaluation happens here; the Worker drains the
// queue so evaluations stay serialized per referral.
func (s *accrualService) RecordHours(project string, req request.RecordHoursRequest) (*models.AccrualLog, error) {
	if req.ReferredReferenceID == "" {
		return nil, fmt.Errorf("referred reference ID is required")
	}
	if req.HoursCompleted.IsNegative() {
		return nil, fmt.Errorf("hours completed cannot be negative: %s", req.HoursCompleted)
	}

	var referral models.Referral
	if err := s.DB.Where("project = ? AND referred_reference_id = ?", project, req.ReferredReferenceID).
		First(&referral).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: no referral for referred provider '%s' in project '%s'",
				service.ErrReferralNotFound, req.ReferredReferenceID, project)
		}
		return nil, fmt.Errorf("failed to fetch referral: %w", err)
	}

	accrualLog := &models.AccrualLog{
		Project:             project,
		ReferralID:          referral.ID,
		ReferredReferenceID: req.ReferredReferenceID,
		HoursCompleted:      req.HoursCompleted,
		RecordedAt:          time.Now(),
		Status:              models.AccrualStatusPending,
	}

	if err := s.DB.Create(accrualLog).Error; err != nil {
		return nil, fmt.Errorf("failed to create accrual log: %w", err)
	}

	return accrualLog, nil
}

func (s *accrualService) GetAccrualLogs(req request.GetAccrualLogRequest) ([]models.AccrualLog, int64, error) {
	var accrualLogs []models.AccrualLog
	var count int64

	query := s.DB.Model(&models.AccrualLog{})
	query = request.ApplyGetAccrualLogRequest(req, query)

	countQuery := query
	if err := countQuery.Count(&count).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count accrual logs: %w", err)
	}

	query = request.ApplyPaginationConditions(query, req.PaginationConditions)

	if err := query.Preload("Referral").Find(&accrualLogs).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to fetch accrual logs: %w", err)
	}

	return accrualLogs, count, nil
}
