package request

import "gorm.io/gorm"

type GetReferralRequest struct {
	Projects             []string             `form:"projects"`
	ID                   *uint                `form:"id"`
	ReferrerID           *uint                `form:"referrerID"`
	ReferrerReferenceID  *string              `form:"referrerReferenceID"`
	ReferredID           *uint                `form:"referredID"`
	ReferredReferenceID  *string              `form:"referredReferenceID"`
	Status               *string              `form:"status"`
	FirstRewardPaid      *bool                `form:"firstRewardPaid"`
	LoyaltyBonusPaid     *bool                `form:"loyaltyBonusPaid"`
	PaginationConditions PaginationConditions `form:"paginationConditions"`
}

func ApplyGetReferralRequest(req GetReferralRequest, query *gorm.DB) *gorm.DB {
	if len(req.Projects) > 0 {
		query = query.Where("ambassador_referrals.project IN (?)", req.Projects)
	}
	if req.ID != nil {
		query = query.Where("ambassador_referrals.id = ?", *req.ID)
	}
	if req.ReferrerID != nil {
		query = query.Where("ambassador_referrals.referrer_id = ?", *req.ReferrerID)
	}
	if req.ReferrerReferenceID != nil {
		query = query.Where("ambassador_referrals.referrer_reference_id = ?", *req.ReferrerReferenceID)
	}
	if req.ReferredID != nil {
		query = query.Where("ambassador_referrals.referred_id = ?", *req.ReferredID)
	}
	if req.ReferredReferenceID != nil {
		query = query.Where("ambassador_referrals.referred_reference_id = ?", *req.ReferredReferenceID)
	}
	if req.Status != nil {
		query = query.Where("ambassador_referrals.status = ?", *req.Status)
	}
	if req.FirstRewardPaid != nil {
		query = query.Where("ambassador_referrals.first_reward_paid = ?", *req.FirstRewardPaid)
	}
	if req.LoyaltyBonusPaid != nil {
		query = query.Where("ambassador_referrals.loyalty_bonus_paid = ?", *req.LoyaltyBonusPaid)
	}
	return query
}
