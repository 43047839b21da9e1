package request

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// RecordHoursRequest reports a referred provider's new cumulative
// completed-hours total.
type RecordHoursRequest struct {
	ReferredReferenceID string          `json:"referredReferenceID" binding:"required"`
	HoursCompleted      decimal.Decimal `json:"hoursCompleted" binding:"required"`
}

type GetAccrualLogRequest struct {
	Projects             []string             `form:"projects"`
	ID                   *uint                `form:"id"`
	ReferralID           *uint                `form:"referralID"`
	ReferredReferenceID  *string              `form:"referredReferenceID"`
	Status               *string              `form:"status"`
	PaginationConditions PaginationConditions `form:"paginationConditions"`
}

func ApplyGetAccrualLogRequest(req GetAccrualLogRequest, query *gorm.DB) *gorm.DB {
	if len(req.Projects) > 0 {
		query = query.Where("ambassador_accrual_logs.project IN (?)", req.Projects)
	}
	if req.ID != nil {
		query = query.Where("ambassador_accrual_logs.id = ?", *req.ID)
	}
	if req.ReferralID != nil {
		query = query.Where("ambassador_accrual_logs.referral_id = ?", *req.ReferralID)
	}
	if req.ReferredReferenceID != nil {
		query = query.Where("ambassador_accrual_logs.referred_reference_id = ?", *req.ReferredReferenceID)
	}
	if req.Status != nil {
		query = query.Where("ambassador_accrual_logs.status = ?", *req.Status)
	}
	return query
}
