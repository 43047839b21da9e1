package serviceimpl_test

import (
	"errors"
	"testing"
	"time"

	"github.com/servilink/go-ambassador/internal/serviceimpl"
	"github.com/servilink/go-ambassador/models"
	"github.com/servilink/go-ambassador/service"
	"github.com/servilink/go-ambassador/utils"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

var engine = serviceimpl.NewAccrualEngine()

func testReferral(hours int64) models.Referral {
	referral := models.Referral{
		Project:             "homecare",
		ReferrerID:          10,
		ReferrerReferenceID: "provider-10",
		ReferredID:          utils.UintPtr(20),
		ReferredReferenceID: utils.StringPtr("provider-20"),
		Status:              models.ReferralStatusPending,
		HoursCompleted:      decimal.NewFromInt(hours),
	}
	referral.ID = 1
	return referral
}

func validationEventAt(id uint, createdAt time.Time) models.RewardEvent {
	event := models.RewardEvent{
		Project:             "homecare",
		ReferralID:          100 + id,
		RewardType:          models.RewardTypeValidation,
		ReferrerID:          10,
		ReferrerReferenceID: "provider-10",
		Amount:              models.ValidationRewardAmount,
		Status:              models.RewardStatusPending,
	}
	event.ID = id
	event.CreatedAt = createdAt
	return event
}

func TestEvaluateRejectsDecreasingHours(t *testing.T) {
	now := time.Now()
	referral := testReferral(60)

	eval, err := engine.Evaluate(referral, decimal.NewFromInt(59), nil, now)
	assert.Nil(t, eval)
	assert.True(t, errors.Is(err, service.ErrInvalidAccrual), "expected ErrInvalidAccrual, got %v", err)
}

func TestEvaluateBelowValidationThreshold(t *testing.T) {
	now := time.Now()
	referral := testReferral(0)

	eval, err := engine.Evaluate(referral, decimal.RequireFromString("49.9"), nil, now)
	assert.NoError(t, err)
	assert.Empty(t, eval.NewRewardEvents)
	assert.False(t, eval.Referral.FirstRewardPaid)
	assert.False(t, eval.Referral.LoyaltyBonusPaid)
	assert.True(t, eval.Referral.HoursCompleted.Equal(decimal.RequireFromString("49.9")))
}

func TestEvaluateValidationAtExactThreshold(t *testing.T) {
	now := time.Now()
	referral := testReferral(0)

	eval, err := engine.Evaluate(referral, decimal.NewFromInt(50), nil, now)
	assert.NoError(t, err)
	assert.Len(t, eval.NewRewardEvents, 1)

	event := eval.NewRewardEvents[0]
	assert.Equal(t, models.RewardTypeValidation, event.RewardType)
	assert.True(t, event.Amount.Equal(models.ValidationRewardAmount))
	assert.Equal(t, models.RewardStatusPending, event.Status)
	assert.Equal(t, referral.ReferrerID, event.ReferrerID)

	assert.True(t, eval.Referral.FirstRewardPaid)
	assert.False(t, eval.Referral.LoyaltyBonusPaid)
	assert.Equal(t, models.ReferralStatusActive, eval.Referral.Status)
	assert.True(t, eval.Referral.HoursCompleted.Equal(decimal.NewFromInt(50)))
}

func TestEvaluateIdempotentOnRepeatedHours(t *testing.T) {
	now := time.Now()
	referral := testReferral(0)

	first, err := engine.Evaluate(referral, decimal.NewFromInt(50), nil, now)
	assert.NoError(t, err)
	assert.Len(t, first.NewRewardEvents, 1)

	existing := []models.RewardEvent{validationEventAt(1, now)}
	second, err := engine.Evaluate(first.Referral, decimal.NewFromInt(50), existing, now)
	assert.NoError(t, err)
	assert.Empty(t, second.NewRewardEvents)
	assert.Equal(t, first.Referral, second.Referral)
}

func TestEvaluateLoyaltyAfterValidation(t *testing.T) {
	now := time.Now()
	referral := testReferral(50)
	referral.FirstRewardPaid = true
	referral.Status = models.ReferralStatusActive

	eval, err := engine.Evaluate(referral, decimal.NewFromInt(120), nil, now)
	assert.NoError(t, err)
	assert.Len(t, eval.NewRewardEvents, 1)
	assert.Equal(t, models.RewardTypeLoyalty, eval.NewRewardEvents[0].RewardType)
	assert.True(t, eval.NewRewardEvents[0].Amount.Equal(models.LoyaltyRewardAmount))
	assert.True(t, eval.Referral.LoyaltyBonusPaid)
	assert.Equal(t, models.ReferralStatusCompleted, eval.Referral.Status)
}

func TestEvaluateJumpPastBothThresholds(t *testing.T) {
	now := time.Now()
	referral := testReferral(0)

	eval, err := engine.Evaluate(referral, decimal.NewFromInt(125), nil, now)
	assert.NoError(t, err)
	assert.Len(t, eval.NewRewardEvents, 2)
	assert.Equal(t, models.RewardTypeValidation, eval.NewRewardEvents[0].RewardType)
	assert.Equal(t, models.RewardTypeLoyalty, eval.NewRewardEvents[1].RewardType)
	assert.True(t, eval.Referral.FirstRewardPaid)
	assert.True(t, eval.Referral.LoyaltyBonusPaid)
}

func TestEvaluateCapBlocksValidation(t *testing.T) {
	now := time.Now()
	referral := testReferral(0)

	var existing []models.RewardEvent
	for i := uint(1); i <= models.ValidationCapPerWindow; i++ {
		existing = append(existing, validationEventAt(i, now.AddDate(0, 0, -10)))
	}

	eval, err := engine.Evaluate(referral, decimal.NewFromInt(50), existing, now)
	assert.NoError(t, err)
	assert.Empty(t, eval.NewRewardEvents)
	assert.True(t, eval.ValidationSkipped)
	assert.False(t, eval.Referral.FirstRewardPaid)
}

func TestEvaluateCapBlocksLoyaltyToo(t *testing.T) {
	now := time.Now()
	referral := testReferral(0)

	var existing []models.RewardEvent
	for i := uint(1); i <= models.ValidationCapPerWindow; i++ {
		existing = append(existing, validationEventAt(i, now.AddDate(0, 0, -10)))
	}

	// Jumping straight past 120h while capped earns nothing: loyalty
	// requires the validation tier first.
	eval, err := engine.Evaluate(referral, decimal.NewFromInt(125), existing, now)
	assert.NoError(t, err)
	assert.Empty(t, eval.NewRewardEvents)
	assert.False(t, eval.Referral.FirstRewardPaid)
	assert.False(t, eval.Referral.LoyaltyBonusPaid)
}

func TestEvaluateWindowRollsForward(t *testing.T) {
	now := time.Now()
	referral := testReferral(0)

	var existing []models.RewardEvent
	for i := uint(1); i <= models.ValidationCapPerWindow; i++ {
		existing = append(existing, validationEventAt(i, now.AddDate(0, 0, -370)))
	}

	eval, err := engine.Evaluate(referral, decimal.NewFromInt(50), existing, now)
	assert.NoError(t, err)
	assert.Len(t, eval.NewRewardEvents, 1)
	assert.Equal(t, models.RewardTypeValidation, eval.NewRewardEvents[0].RewardType)
	assert.False(t, eval.BecameSuperAmbassador)
	assert.True(t, eval.Referral.FirstRewardPaid)
}

func TestEvaluateSuperAmbassadorOnFifthValidation(t *testing.T) {
	now := time.Now()
	referral := testReferral(0)

	var existing []models.RewardEvent
	for i := uint(1); i <= 4; i++ {
		existing = append(existing, validationEventAt(i, now.AddDate(0, 0, -30)))
	}

	eval, err := engine.Evaluate(referral, decimal.NewFromInt(50), existing, now)
	assert.NoError(t, err)
	assert.Len(t, eval.NewRewardEvents, 2)
	assert.Equal(t, models.RewardTypeValidation, eval.NewRewardEvents[0].RewardType)
	assert.Equal(t, models.RewardTypeSuperAmbassador, eval.NewRewardEvents[1].RewardType)
	assert.True(t, eval.NewRewardEvents[1].Amount.Equal(models.SuperAmbassadorRewardAmount))
	assert.True(t, eval.BecameSuperAmbassador)
}

func TestEvaluateNoSecondSuperAmbassador(t *testing.T) {
	now := time.Now()
	referral := testReferral(0)

	var existing []models.RewardEvent
	for i := uint(1); i <= 4; i++ {
		existing = append(existing, validationEventAt(i, now.AddDate(0, 0, -30)))
	}
	superEvent := models.RewardEvent{
		Project:             "homecare",
		ReferralID:          105,
		RewardType:          models.RewardTypeSuperAmbassador,
		ReferrerID:          10,
		ReferrerReferenceID: "provider-10",
		Amount:              models.SuperAmbassadorRewardAmount,
		Status:              models.RewardStatusPending,
	}
	superEvent.ID = 50
	superEvent.CreatedAt = now.AddDate(-1, -1, 0)
	existing = append(existing, superEvent)

	eval, err := engine.Evaluate(referral, decimal.NewFromInt(50), existing, now)
	assert.NoError(t, err)
	assert.Len(t, eval.NewRewardEvents, 1)
	assert.Equal(t, models.RewardTypeValidation, eval.NewRewardEvents[0].RewardType)
	assert.False(t, eval.BecameSuperAmbassador)
}
