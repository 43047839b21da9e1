package serviceimpl

import (
	"fmt"
	"time"

	"github.com/servilink/go-ambassador/models"
	"github.com/servilink/go-ambassador/response"
	"github.com/servilink/go-ambassador/service"
	"github.com/shopspring/decimal"
)

type accrualEngine struct{}

var _ service.AccrualEngine = &accrualEngine{}

func NewAccrualEngine() service.AccrualEngine {
	return &accrualEngine{}
}

// Evaluate applies the tier rules to a referral for a new cumulative-hours
// total. It performs no I/O; the caller owns per-referral serialization and
// transactional persistence of the returned state and events.
//
// Re-running with the same hours value is a no-op because the paid flags
// gate event creation.
func (e *accrualEngine) Evaluate(referral models.Referral, newHoursCompleted decimal.Decimal, existingRewardEvents []models.RewardEvent, now time.Time) (*response.Evaluation, error) {
	if newHoursCompleted.LessThan(referral.HoursCompleted) {
		return nil, fmt.Errorf("%w: referral %d reported %s after %s",
			service.ErrInvalidAccrual, referral.ID, newHoursCompleted, referral.HoursCompleted)
	}

	referral.HoursCompleted = newHoursCompleted

	eval := &response.Evaluation{}
	windowStart := now.AddDate(0, 0, -models.ValidationWindowDays)
	windowedValidations := countValidationsSince(existingRewardEvents, windowStart)

	validationCreated := false
	if newHoursCompleted.GreaterThanOrEqual(models.ValidationThresholdHours) && !referral.FirstRewardPaid {
		if windowedValidations < models.ValidationCapPerWindow {
			eval.NewRewardEvents = append(eval.NewRewardEvents, newRewardEvent(referral, models.RewardTypeValidation, models.ValidationRewardAmount))
			referral.FirstRewardPaid = true
			referral.Status = models.ReferralStatusActive
			windowedValidations++
			validationCreated = true
		} else {
			// Cap reached: no event, flag stays false. Not re-attempted until
			// a later accrual arrives once the window has rolled forward.
			eval.ValidationSkipped = true
		}
	}

	if newHoursCompleted.GreaterThanOrEqual(models.LoyaltyThresholdHours) && !referral.LoyaltyBonusPaid && referral.FirstRewardPaid {
		eval.NewRewardEvents = append(eval.NewRewardEvents, newRewardEvent(referral, models.RewardTypeLoyalty, models.LoyaltyRewardAmount))
		referral.LoyaltyBonusPaid = true
		referral.Status = models.ReferralStatusCompleted
	}

	if validationCreated && windowedValidations == models.ValidationCapPerWindow && !hasSuperAmbassadorEvent(existingRewardEvents) {
		eval.NewRewardEvents = append(eval.NewRewardEvents, newRewardEvent(referral, models.RewardTypeSuperAmbassador, models.SuperAmbassadorRewardAmount))
		eval.BecameSuperAmbassador = true
	}

	eval.Referral = referral
	return eval, nil
}

func newRewardEvent(referral models.Referral, rewardType string, amount decimal.Decimal) models.RewardEvent {
	return models.RewardEvent{
		Project:             referral.Project,
		ReferralID:          referral.ID,
		RewardType:          rewardType,
		ReferrerID:          referral.ReferrerID,
		ReferrerReferenceID: referral.ReferrerReferenceID,
		ReferredID:          referral.ReferredID,
		ReferredReferenceID: referral.ReferredReferenceID,
		Amount:              amount,
		Status:              models.RewardStatusPending,
	}
}

func countValidationsSince(events []models.RewardEvent, windowStart time.Time) int {
	count := 0
	for _, event := range events {
		if event.RewardType == models.RewardTypeValidation && !event.CreatedAt.Before(windowStart) {
			count++
		}
	}
	return count
}

func hasSuperAmbassadorEvent(events []models.RewardEvent) bool {
	for _, event := range events {
		if event.RewardType == models.RewardTypeSuperAmbassador {
			return true
		}
	}
	return false
}
