package migration

import (
	"github.com/go-gormigrate/gormigrate/v2"
	"github.com/servilink/go-ambassador/models"
	"gorm.io/gorm"
)

var Initialise = &gormigrate.Migration{
	ID: "202509011030-ga-583921",
	Migrate: func(db *gorm.DB) error {
		return db.AutoMigrate(&models.Member{}, &models.Referral{}, &models.AccrualLog{}, &models.RewardEvent{})
	},
	Rollback: func(db *gorm.DB) error {
		return db.Migrator().DropTable(&models.Member{}, &models.Referral{}, &models.AccrualLog{}, &models.RewardEvent{})
	},
}
