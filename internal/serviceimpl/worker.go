package serviceimpl

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/servilink/go-ambassador/models"
	"github.com/servilink/go-ambassador/service"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type worker struct {
	DB     *gorm.DB
	Engine service.AccrualEngine
}

var _ service.Worker = &worker{}

func NewWorkerService(db *gorm.DB) *worker {
	return &worker{DB: db, Engine: NewAccrualEngine()}
}

// ProcessPendingAccruals drains pending accrual logs in insertion order.
// Each log is handled in one transaction holding a row lock on its referral,
// which is the serialization the engine's contract requires: no two
// evaluations of the same referral can interleave.
func (w *worker) ProcessPendingAccruals() error {
	var pendingLogs []models.AccrualLog
	if err := w.DB.Where("status = ?", models.AccrualStatusPending).
		Order("id ASC").Find(&pendingLogs).Error; err != nil {
		return fmt.Errorf("failed to fetch pending accrual logs: %w", err)
	}

	for _, accrualLog := range pendingLogs {
		err := w.DB.Transaction(func(tx *gorm.DB) error {
			return w.processAccrualLog(tx, accrualLog)
		})
		if err != nil {
			log.Printf("error processing accrual log %d: %v", accrualLog.ID, err)
		}
	}

	return nil
}

func (w *worker) processAccrualLog(tx *gorm.DB, accrualLog models.AccrualLog) error {
	var referral models.Referral
	if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&referral, accrualLog.ReferralID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return w.markFailed(tx, &accrualLog, "referral not found")
		}
		return fmt.Errorf("failed to fetch referral %d: %w", accrualLog.ReferralID, err)
	}

	var existingEvents []models.RewardEvent
	if err := tx.Where("project = ? AND referrer_id = ?", referral.Project, referral.ReferrerID).
		Find(&existingEvents).Error; err != nil {
		return fmt.Errorf("failed to fetch reward events for referrer %d: %w", referral.ReferrerID, err)
	}

	eval, err := w.Engine.Evaluate(referral, accrualLog.HoursCompleted, existingEvents, time.Now())
	if err != nil {
		if errors.Is(err, service.ErrInvalidAccrual) {
			// Decreasing hours is a caller bug; the log is parked as failed
			// so an operator sees it, the referral is left untouched.
			return w.markFailed(tx, &accrualLog, err.Error())
		}
		return fmt.Errorf("evaluation failed for accrual log %d: %w", accrualLog.ID, err)
	}

	if err := tx.Save(&eval.Referral).Error; err != nil {
		return fmt.Errorf("failed to persist referral %d: %w", eval.Referral.ID, err)
	}

	for i := range eval.NewRewardEvents {
		if err := tx.Create(&eval.NewRewardEvents[i]).Error; err != nil {
			if isDuplicateKey(err) {
				// The ledger's unique index says this reward already exists;
				// a concurrent evaluation got there first. Treat as already
				// processed.
				continue
			}
			return fmt.Errorf("failed to create %s reward event: %w", eval.NewRewardEvents[i].RewardType, err)
		}
	}

	if eval.BecameSuperAmbassador {
		now := time.Now()
		if err := tx.Model(&models.Member{}).Where("id = ?", referral.ReferrerID).
			Updates(map[string]interface{}{
				"is_super_ambassador": true,
				"super_ambassador_at": now,
			}).Error; err != nil {
			return fmt.Errorf("failed to flag member %d as super ambassador: %w", referral.ReferrerID, err)
		}
	}

	if eval.ValidationSkipped {
		note := "validation reward skipped: rolling-window cap reached"
		accrualLog.Note = &note
	}

	accrualLog.Status = models.AccrualStatusProcessed
	accrualLog.FailureReason = nil
	return tx.Save(&accrualLog).Error
}

func (w *worker) markFailed(tx *gorm.DB, accrualLog *models.AccrualLog, reason string) error {
	accrualLog.Status = models.AccrualStatusFailed
	accrualLog.FailureReason = &reason
	return tx.Save(accrualLog).Error
}

func isDuplicateKey(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	// sqlite driver without error translation
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}
