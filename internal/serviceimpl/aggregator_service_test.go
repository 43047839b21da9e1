package serviceimpl_test

import (
	"testing"

	"github.com/servilink/go-ambassador/internal/serviceimpl"
	"github.com/servilink/go-ambassador/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

// Summarize is pure; no database needed.
var aggregator = serviceimpl.NewAggregatorService(nil)

func TestSummarizeEmptyInputs(t *testing.T) {
	stats := aggregator.Summarize(nil, nil)

	assert.Equal(t, int64(0), stats.ReferralCount)
	assert.Equal(t, int64(0), stats.ValidatedCount)
	assert.True(t, stats.TotalEarnings.IsZero())
	assert.True(t, stats.PendingTotal.IsZero())
	assert.Empty(t, stats.Referrals)
}

func TestSummarizeReferralBelowValidation(t *testing.T) {
	referral := testReferral(30)

	stats := aggregator.Summarize([]models.Referral{referral}, nil)

	assert.Equal(t, int64(1), stats.ReferralCount)
	assert.Equal(t, int64(0), stats.ValidatedCount)
	assert.True(t, stats.TotalEarnings.IsZero())
	assert.True(t, stats.PendingTotal.IsZero())

	assert.Len(t, stats.Referrals, 1)
	progress := stats.Referrals[0]
	assert.Equal(t, "30h / 50h", progress.Label)
	assert.True(t, progress.ProgressPercent.Equal(decimal.NewFromInt(60)),
		"expected 60%%, got %s", progress.ProgressPercent)
}

func TestSummarizeProgressTiers(t *testing.T) {
	validated := testReferral(60)
	validated.FirstRewardPaid = true
	loyal := testReferral(130)
	loyal.FirstRewardPaid = true
	loyal.LoyaltyBonusPaid = true

	stats := aggregator.Summarize([]models.Referral{validated, loyal}, nil)

	assert.Equal(t, int64(2), stats.ReferralCount)
	assert.Equal(t, int64(2), stats.ValidatedCount)

	assert.Equal(t, "validation reached", stats.Referrals[0].Label)
	assert.True(t, stats.Referrals[0].ProgressPercent.Equal(decimal.NewFromInt(50)),
		"expected 50%%, got %s", stats.Referrals[0].ProgressPercent)

	assert.Equal(t, "loyalty reached", stats.Referrals[1].Label)
	assert.True(t, stats.Referrals[1].ProgressPercent.Equal(decimal.NewFromInt(100)))
}

func TestSummarizeSplitsPaidAndPending(t *testing.T) {
	paid := models.RewardEvent{
		RewardType: models.RewardTypeValidation,
		Amount:     models.ValidationRewardAmount,
		Status:     models.RewardStatusPaid,
	}
	pendingLoyalty := models.RewardEvent{
		RewardType: models.RewardTypeLoyalty,
		Amount:     models.LoyaltyRewardAmount,
		Status:     models.RewardStatusPending,
	}
	pendingSuper := models.RewardEvent{
		RewardType: models.RewardTypeSuperAmbassador,
		Amount:     models.SuperAmbassadorRewardAmount,
		Status:     models.RewardStatusPending,
	}

	stats := aggregator.Summarize(nil, []models.RewardEvent{paid, pendingLoyalty, pendingSuper})

	assert.True(t, stats.TotalEarnings.Equal(decimal.NewFromInt(30)))
	assert.True(t, stats.PendingTotal.Equal(decimal.NewFromInt(150)))
}
