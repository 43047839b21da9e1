package go_ambassador

import (
	db2 "github.com/servilink/go-ambassador/internal/db"
	"github.com/servilink/go-ambassador/internal/serviceimpl"
	"github.com/servilink/go-ambassador/service"
	"gorm.io/gorm"
)

type AmbassadorService struct {
	Members    service.MemberService
	Referrals  service.ReferralService
	Accruals   service.AccrualService
	Engine     service.AccrualEngine
	Rewards    service.RewardService
	Aggregator service.AggregatorService
	Worker     service.Worker
}

func NewAmbassadorService(db *gorm.DB) *AmbassadorService {
	db2.Migrate(db)
	return &AmbassadorService{
		Members:    serviceimpl.NewMemberService(db),
		Referrals:  serviceimpl.NewReferralService(db),
		Accruals:   serviceimpl.NewAccrualService(db),
		Engine:     serviceimpl.NewAccrualEngine(),
		Rewards:    serviceimpl.NewRewardService(db),
		Aggregator: serviceimpl.NewAggregatorService(db),
		Worker:     serviceimpl.NewWorkerService(db),
	}
}
