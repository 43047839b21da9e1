package models

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"time"
)

const (
	MemberTypeProvider = "provider"
	MemberTypeClient   = "client"

	MemberStatusActive   = "active"
	MemberStatusInactive = "inactive"

	ReferralStatusPending   = "pending"
	ReferralStatusActive    = "active"
	ReferralStatusCompleted = "completed"

	AccrualStatusPending   = "pending"
	AccrualStatusProcessed = "processed"
	AccrualStatusFailed    = "failed"

	RewardTypeValidation      = "validation"
	RewardTypeLoyalty         = "loyalty"
	RewardTypeSuperAmbassador = "super_ambassador"

	RewardStatusPending = "pending"
	RewardStatusPaid    = "paid"

	// ValidationWindowDays is the rolling window over which validation
	// rewards are capped per referrer.
	ValidationWindowDays = 365

	// ValidationCapPerWindow is the maximum number of validation rewards a
	// referrer can earn inside one rolling window. Reaching it is also the
	// super-ambassador trigger.
	ValidationCapPerWindow = 5
)

// Fixed tier thresholds and payout amounts. Amounts are immutable once a
// RewardEvent is created.
var (
	ValidationThresholdHours    = decimal.NewFromInt(50)
	LoyaltyThresholdHours       = decimal.NewFromInt(120)
	ValidationRewardAmount      = decimal.NewFromInt(30)
	LoyaltyRewardAmount         = decimal.NewFromInt(50)
	SuperAmbassadorRewardAmount = decimal.NewFromInt(100)
)

type BaseModel struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time      `gorm:"index" json:"createdAt"`
	UpdatedAt time.Time      `gorm:"index" json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// Member is a program participant: a referrer holding a shareable code,
// a referred provider, or both. Codes are stored upper-case so the unique
// index enforces case-insensitive uniqueness.
type Member struct {
	BaseModel
	Project     string  `gorm:"size:100;not null;uniqueIndex:idx_member_project_reference_id" json:"project"`
	ReferenceID string  `gorm:"size:100;not null;uniqueIndex:idx_member_project_reference_id" json:"referenceID"`
	MemberType  string  `gorm:"size:50;not null;default:'provider';index" json:"memberType"` // "provider" or "client"
	Email       *string `gorm:"size:100" json:"email"`
	Code        string  `gorm:"size:50;uniqueIndex;not null" json:"code"`
	Status      string  `gorm:"size:50;default:'active';index" json:"status"`

	IsSuperAmbassador bool       `gorm:"default:false;index" json:"isSuperAmbassador"`
	SuperAmbassadorAt *time.Time `json:"superAmbassadorAt"`

	ReferredByMemberID *uint   `gorm:"index" json:"referredByMemberID"`
	ReferredByMember   *Member `gorm:"foreignKey:ReferredByMemberID" json:"referredByMember,omitempty"`
}

func (Member) TableName() string {
	return "ambassador_members"
}

// Referral tracks one referrer→referred relationship. HoursCompleted is the
// referred provider's cumulative completed hours and only ever increases;
// the paid flags never revert once set.
type Referral struct {
	BaseModel
	Project             string          `gorm:"size:100;not null;index" json:"project"`
	ReferrerID          uint            `gorm:"not null;uniqueIndex:idx_referral_referrer_referred" json:"referrerID"`
	ReferrerReferenceID string          `gorm:"size:100;not null;index" json:"referrerReferenceID"`
	ReferredID          *uint           `gorm:"uniqueIndex:idx_referral_referrer_referred" json:"referredID"` // nil until the referred party registers
	ReferredReferenceID *string         `gorm:"size:100;index" json:"referredReferenceID"`
	Status              string          `gorm:"size:50;default:'pending';not null;index" json:"status"` // lifecycle label, not reward-bearing
	HoursCompleted      decimal.Decimal `gorm:"type:decimal(38,18);not null;default:0" json:"hoursCompleted"`
	FirstRewardPaid     bool            `gorm:"default:false;index" json:"firstRewardPaid"`
	LoyaltyBonusPaid    bool            `gorm:"default:false;index" json:"loyaltyBonusPaid"`

	Referrer *Member `gorm:"foreignKey:ReferrerID;references:ID" json:"referrer,omitempty"`
	Referred *Member `gorm:"foreignKey:ReferredID;references:ID" json:"referred,omitempty"`
}

func (Referral) TableName() string {
	return "ambassador_referrals"
}

// AccrualLog is one ingested "cumulative hours completed" update for a
// referred provider, queued for the worker. HoursCompleted is the new
// cumulative total reported by the marketplace, not a delta.
type AccrualLog struct {
	BaseModel
	Project             string          `gorm:"size:100;not null;index" json:"project"`
	ReferralID          uint            `gorm:"not null;index" json:"referralID"`
	ReferredReferenceID string          `gorm:"size:100;not null;index" json:"referredReferenceID"`
	HoursCompleted      decimal.Decimal `gorm:"type:decimal(38,18);not null" json:"hoursCompleted"`
	RecordedAt          time.Time       `gorm:"not null;index" json:"recordedAt"`
	Status              string          `gorm:"size:50;default:'pending';not null;index" json:"status"`
	Note                *string         `gorm:"type:text" json:"note"` // notable business events, e.g. a capped validation
	FailureReason       *string         `gorm:"type:text" json:"failureReason"`

	Referral *Referral `gorm:"foreignKey:ReferralID;references:ID" json:"referral,omitempty"`
}

func (AccrualLog) TableName() string {
	return "ambassador_accrual_logs"
}

// RewardEvent is an append-only ledger row. The unique (referral, type)
// index is the hard idempotence backstop for validation and loyalty even if
// two evaluations race past the flag gating.
type RewardEvent struct {
	BaseModel
	Project             string          `gorm:"size:100;not null;index" json:"project"`
	ReferralID          uint            `gorm:"not null;uniqueIndex:idx_reward_event_referral_type" json:"referralID"`
	RewardType          string          `gorm:"size:50;not null;uniqueIndex:idx_reward_event_referral_type;index" json:"rewardType"`
	ReferrerID          uint            `gorm:"not null;index" json:"referrerID"`
	ReferrerReferenceID string          `gorm:"size:100;not null;index" json:"referrerReferenceID"`
	ReferredID          *uint           `gorm:"index" json:"referredID"`
	ReferredReferenceID *string         `gorm:"size:100;index" json:"referredReferenceID"`
	Amount              decimal.Decimal `gorm:"type:decimal(38,18);not null;index" json:"amount"`
	Status              string          `gorm:"size:50;default:'pending';not null;index" json:"status"`
	Reason              *string         `gorm:"type:text" json:"reason"`

	Referrer *Member   `gorm:"foreignKey:ReferrerID;references:ID" json:"referrer,omitempty"`
	Referral *Referral `gorm:"foreignKey:ReferralID;references:ID" json:"referral,omitempty"`
}

func (RewardEvent) TableName() string {
	return "ambassador_reward_events"
}
