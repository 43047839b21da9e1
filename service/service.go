package service

import (
	"errors"
	"time"

	"github.com/servilink/go-ambassador/models"
	"github.com/servilink/go-ambassador/request"
	"github.com/servilink/go-ambassador/response"
	"github.com/shopspring/decimal"
)

var (
	// ErrInvalidAccrual is returned when a cumulative-hours update is lower
	// than the hours already recorded on the referral. Hours never decrease;
	// a decrease is a caller bug and is never silently clamped.
	ErrInvalidAccrual = errors.New("hours completed cannot decrease")

	// ErrReferralNotFound is returned when no referral exists for the
	// referred provider an accrual refers to.
	ErrReferralNotFound = errors.New("referral not found")

	// ErrCodeGenerationExhausted is returned when a unique referral code
	// could not be produced within the bounded retry budget.
	ErrCodeGenerationExhausted = errors.New("could not generate a unique referral code")
)

// MemberService handles program enrolment and referrer profiles.
type MemberService interface {
	CreateMember(project string, req request.CreateMemberRequest) (*models.Member, error)
	GetMembers(req request.GetMemberRequest) ([]models.Member, int64, error)
	GetTotalMembers(req request.GetMemberRequest) (int64, error)
	UpdateMemberStatus(project, referenceID string, newStatus string) (*models.Member, error)
}

// ReferralService exposes referrer→referred relationship queries.
type ReferralService interface {
	GetReferrals(req request.GetReferralRequest) ([]models.Referral, int64, error)
	GetTotalReferrals(req request.GetReferralRequest) (int64, error)
}

// AccrualService ingests cumulative completed-hours updates for referred
// providers. Ingestion only appends a pending AccrualLog; evaluation happens
// in the Worker.
type AccrualService interface {
	RecordHours(project string, req request.RecordHoursRequest) (*models.AccrualLog, error)
	GetAccrualLogs(req request.GetAccrualLogRequest) ([]models.AccrualLog, int64, error)
}

// AccrualEngine decides which reward tiers newly qualify for a referral. It
// is pure: no I/O, no locking, always completes. The caller must serialize
// Evaluate calls per referral and persist the result transactionally.
type AccrualEngine interface {
	Evaluate(referral models.Referral, newHoursCompleted decimal.Decimal, existingRewardEvents []models.RewardEvent, now time.Time) (*response.Evaluation, error)
}

// RewardService exposes the append-only reward ledger. Status is the only
// mutable field on a ledger row, and only pending→paid is permitted.
type RewardService interface {
	GetRewards(req request.GetRewardRequest) ([]models.RewardEvent, int64, error)
	GetTotalRewards(req request.GetRewardRequest) (decimal.Decimal, error)
	UpdateRewardStatus(project string, rewardID uint, newStatus string) (*models.RewardEvent, error)
}

// AggregatorService builds the dashboard read-models. Summarize is a pure
// aggregation; empty inputs yield zero stats, never an error.
type AggregatorService interface {
	Summarize(referrals []models.Referral, rewardEvents []models.RewardEvent) response.DashboardStats
	GetReferrerDashboard(project, referrerReferenceID string) (*response.ReferrerDashboard, error)
	GetProgramStats(project string) (*response.ProgramStats, error)
}

// Worker drains pending accrual logs through the engine.
type Worker interface {
	ProcessPendingAccruals() error
}
