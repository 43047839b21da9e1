package response

import (
	"github.com/servilink/go-ambassador/models"
	"github.com/shopspring/decimal"
)

// Evaluation is the outcome of one engine pass over a referral: the updated
// referral state plus zero or more newly created ledger rows, ordered
// validation before loyalty before super_ambassador.
type Evaluation struct {
	Referral        models.Referral      `json:"referral"`
	NewRewardEvents []models.RewardEvent `json:"newRewardEvents"`

	// BecameSuperAmbassador is set when this pass created the referrer's 5th
	// windowed validation and the one-time super_ambassador reward.
	BecameSuperAmbassador bool `json:"becameSuperAmbassador"`

	// ValidationSkipped is set when the validation tier qualified but the
	// rolling-window cap blocked the reward. Callers should surface it as a
	// notable business event.
	ValidationSkipped bool `json:"validationSkipped"`
}

// ReferralProgress is one dashboard progress row.
type ReferralProgress struct {
	ReferralID          uint            `json:"referralID"`
	ReferredReferenceID *string         `json:"referredReferenceID"`
	HoursCompleted      decimal.Decimal `json:"hoursCompleted"`
	ProgressPercent     decimal.Decimal `json:"progressPercent"`
	Label               string          `json:"label"`
}

type DashboardStats struct {
	ReferralCount  int64              `json:"referralCount"`
	ValidatedCount int64              `json:"validatedCount"`
	TotalEarnings  decimal.Decimal    `json:"totalEarnings"` // paid rewards only
	PendingTotal   decimal.Decimal    `json:"pendingTotal"`
	Referrals      []ReferralProgress `json:"referrals"`
}

// ReferrerDashboard is the full per-referrer view: aggregated stats plus the
// literal share code and ambassador status.
type ReferrerDashboard struct {
	DashboardStats
	ReferenceID       string `json:"referenceID"`
	Code              string `json:"code"`
	IsSuperAmbassador bool   `json:"isSuperAmbassador"`
}

type ProgramStats struct {
	MemberCount    int64           `json:"memberCount"`
	ReferralCount  int64           `json:"referralCount"`
	ValidatedCount int64           `json:"validatedCount"`
	TotalPaid      decimal.Decimal `json:"totalPaid"`
	TotalPending   decimal.Decimal `json:"totalPending"`
}
