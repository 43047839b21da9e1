package request

import "gorm.io/gorm"

type GetRewardRequest struct {
	Projects             []string             `form:"projects"`
	ID                   *uint                `form:"id"`
	ReferralID           *uint                `form:"referralID"`
	ReferrerID           *uint                `form:"referrerID"`
	ReferrerReferenceID  *string              `form:"referrerReferenceID"`
	ReferredReferenceID  *string              `form:"referredReferenceID"`
	RewardType           *string              `form:"rewardType"`
	Status               *string              `form:"status"`
	PaginationConditions PaginationConditions `form:"paginationConditions"`
}

func ApplyGetRewardRequest(req GetRewardRequest, query *gorm.DB) *gorm.DB {
	if len(req.Projects) > 0 {
		query = query.Where("ambassador_reward_events.project IN (?)", req.Projects)
	}
	if req.ID != nil {
		query = query.Where("ambassador_reward_events.id = ?", *req.ID)
	}
	if req.ReferralID != nil {
		query = query.Where("ambassador_reward_events.referral_id = ?", *req.ReferralID)
	}
	if req.ReferrerID != nil {
		query = query.Where("ambassador_reward_events.referrer_id = ?", *req.ReferrerID)
	}
	if req.ReferrerReferenceID != nil {
		query = query.Where("ambassador_reward_events.referrer_reference_id = ?", *req.ReferrerReferenceID)
	}
	if req.ReferredReferenceID != nil {
		query = query.Where("ambassador_reward_events.referred_reference_id = ?", *req.ReferredReferenceID)
	}
	if req.RewardType != nil {
		query = query.Where("ambassador_reward_events.reward_type = ?", *req.RewardType)
	}
	if req.Status != nil {
		query = query.Where("ambassador_reward_events.status = ?", *req.Status)
	}
	return query
}
