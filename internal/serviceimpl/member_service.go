package serviceimpl

import (
	"errors"
	"fmt"
	"net/mail"
	"strings"

	"github.com/servilink/go-ambassador/models"
	"github.com/servilink/go-ambassador/request"
	"github.com/servilink/go-ambassador/service"
	"github.com/servilink/go-ambassador/utils"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const codeGenerationAttempts = 5

type memberService struct {
	DB *gorm.DB
}

var _ service.MemberService = &memberService{}

func NewMemberService(db *gorm.DB) *memberService {
	return &memberService{DB: db}
}

// CreateMember enrols a participant. When the request carries a referrer
// code and both sides are providers, the referrer→referred Referral row is
// created in the same transaction so the relationship can never exist
// half-registered.
func (s *memberService) CreateMember(project string, req request.CreateMemberRequest) (*models.Member, error) {
	if req.Email != nil {
		if *req.Email == "" {
			return nil, fmt.Errorf("email cannot be empty")
		}
		if _, err := mail.ParseAddress(*req.Email); err != nil {
			return nil, fmt.Errorf("invalid email format: %w", err)
		}
	}

	memberType := models.MemberTypeProvider
	if req.MemberType != nil {
		memberType = *req.MemberType
	}
	if memberType != models.MemberTypeProvider && memberType != models.MemberTypeClient {
		return nil, fmt.Errorf("invalid member type: must be '%s' or '%s'", models.MemberTypeProvider, models.MemberTypeClient)
	}

	// Resolve the referrer first; an unknown code fails the whole enrolment.
	var referrer *models.Member
	if req.ReferrerCode != nil && *req.ReferrerCode != "" {
		var referrerMember models.Member
		if err := s.DB.Where("project = ? AND code = ?", project, strings.ToUpper(*req.ReferrerCode)).
			First(&referrerMember).Error; err != nil {
			return nil, fmt.Errorf("invalid referrer code: %w", err)
		}
		referrer = &referrerMember
	}

	code, err := s.resolveCode(project, req.PreferredCode)
	if err != nil {
		return nil, err
	}

	member := &models.Member{
		Project:     project,
		ReferenceID: req.ReferenceID,
		MemberType:  memberType,
		Email:       req.Email,
		Code:        code,
	}
	if referrer != nil {
		member.ReferredByMemberID = &referrer.ID
	}

	err = s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(member).Error; err != nil {
			return err
		}

		// Only provider→provider relationships accrue hours and earn
		// rewards; client referrals carry no Referral row.
		if referrer != nil && referrer.MemberType == models.MemberTypeProvider && memberType == models.MemberTypeProvider {
			referral := &models.Referral{
				Project:             project,
				ReferrerID:          referrer.ID,
				ReferrerReferenceID: referrer.ReferenceID,
				ReferredID:          &member.ID,
				ReferredReferenceID: &member.ReferenceID,
				Status:              models.ReferralStatusPending,
			}
			if err := tx.Create(referral).Error; err != nil {
				return fmt.Errorf("failed to create referral for member %s: %w", member.ReferenceID, err)
			}
		}

		return nil
	})

	if err != nil {
		return nil, err
	}

	if err := s.DB.Preload("ReferredByMember").First(member, member.ID).Error; err != nil {
		return nil, fmt.Errorf("failed to reload member: %w", err)
	}

	return member, nil
}

// resolveCode returns the caller's preferred code (upper-cased, verified
// free) or generates one with a bounded propose-check-retry loop.
// Uniqueness is ultimately enforced by the store's unique index; the loop
// only keeps collisions rare, not impossible.
func (s *memberService) resolveCode(project string, preferred *string) (string, error) {
	if preferred != nil && *preferred != "" {
		code := strings.ToUpper(*preferred)
		var count int64
		if err := s.DB.Model(&models.Member{}).Where("code = ?", code).Count(&count).Error; err != nil {
			return "", fmt.Errorf("failed to check preferred code: %w", err)
		}
		if count > 0 {
			return "", fmt.Errorf("preferred code '%s' is already taken", code)
		}
		return code, nil
	}

	for attempt := 0; attempt < codeGenerationAttempts; attempt++ {
		code, err := utils.CreateReferralCode(7)
		if err != nil {
			return "", fmt.Errorf("failed to generate referral code: %w", err)
		}
		var count int64
		if err := s.DB.Model(&models.Member{}).Where("code = ?", code).Count(&count).Error; err != nil {
			return "", fmt.Errorf("failed to check generated code: %w", err)
		}
		if count == 0 {
			return code, nil
		}
	}

	return "", service.ErrCodeGenerationExhausted
}

func (s *memberService) GetMembers(req request.GetMemberRequest) ([]models.Member, int64, error) {
	var members []models.Member
	var count int64

	query := s.DB.Model(&models.Member{})
	query = request.ApplyGetMemberRequest(req, query)

	countQuery := query
	if err := countQuery.Count(&count).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count members: %w", err)
	}

	query = request.ApplyPaginationConditions(query, req.PaginationConditions)

	if err := query.Preload("ReferredByMember").Find(&members).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to fetch members: %w", err)
	}

	return members, count, nil
}

func (s *memberService) GetTotalMembers(req request.GetMemberRequest) (int64, error) {
	var count int64

	query := s.DB.Model(&models.Member{})
	query = request.ApplyGetMemberRequest(req, query)

	if err := query.Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count members: %w", err)
	}

	return count, nil
}

func (s *memberService) UpdateMemberStatus(project, referenceID string, newStatus string) (*models.Member, error) {
	var member models.Member

	if newStatus != models.MemberStatusActive && newStatus != models.MemberStatusInactive {
		return nil, fmt.Errorf("invalid new status: must be '%s' or '%s'", models.MemberStatusActive, models.MemberStatusInactive)
	}

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("project = ? AND reference_id = ?", project, referenceID).
			First(&member).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("member not found for project=%s and reference_id=%s", project, referenceID)
			}
			return fmt.Errorf("failed to fetch member: %w", err)
		}

		if member.Status == newStatus {
			return fmt.Errorf("member is already %s", newStatus)
		}

		member.Status = newStatus
		if err := tx.Save(&member).Error; err != nil {
			return fmt.Errorf("failed to update member status: %w", err)
		}

		return nil
	})

	if err != nil {
		return nil, err
	}

	return &member, nil
}
