package request

import "gorm.io/gorm"

type CreateMemberRequest struct {
	ReferenceID   string  `json:"referenceID" binding:"required"`
	MemberType    *string `json:"memberType"`   // defaults to "provider"
	ReferrerCode  *string `json:"referrerCode"` // join via an existing member's code
	PreferredCode *string `json:"preferredCode"`
	Email         *string `json:"email"`
}

type GetMemberRequest struct {
	Projects             []string             `form:"projects"`
	ID                   *uint                `form:"id"`
	ReferenceID          *string              `form:"referenceID"`
	Email                *string              `form:"email"`
	Code                 *string              `form:"code"`
	MemberType           *string              `form:"memberType"`
	Status               *string              `form:"status"`
	IsSuperAmbassador    *bool                `form:"isSuperAmbassador"`
	IsReferred           *bool                `form:"isReferred"`
	ReferredByMemberID   *uint                `form:"referredByMemberID"`
	PaginationConditions PaginationConditions `form:"paginationConditions"`
}

func ApplyGetMemberRequest(req GetMemberRequest, query *gorm.DB) *gorm.DB {
	if len(req.Projects) > 0 {
		query = query.Where("ambassador_members.project IN (?)", req.Projects)
	}
	if req.ID != nil {
		query = query.Where("ambassador_members.id = ?", *req.ID)
	}
	if req.ReferenceID != nil {
		query = query.Where("ambassador_members.reference_id = ?", *req.ReferenceID)
	}
	if req.Email != nil {
		query = query.Where("ambassador_members.email = ?", *req.Email)
	}
	if req.Code != nil {
		query = query.Where("ambassador_members.code = ?", *req.Code)
	}
	if req.MemberType != nil {
		query = query.Where("ambassador_members.member_type = ?", *req.MemberType)
	}
	if req.Status != nil {
		query = query.Where("ambassador_members.status = ?", *req.Status)
	}
	if req.IsSuperAmbassador != nil {
		query = query.Where("ambassador_members.is_super_ambassador = ?", *req.IsSuperAmbassador)
	}
	if req.IsReferred != nil {
		if *req.IsReferred {
			query = query.Where("ambassador_members.referred_by_member_id IS NOT NULL")
		} else {
			query = query.Where("ambassador_members.referred_by_member_id IS NULL")
		}
	}
	if req.ReferredByMemberID != nil {
		query = query.Where("ambassador_members.referred_by_member_id = ?", *req.ReferredByMemberID)
	}
	return query
}
