package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"

	"payout-service/internal/models"

	"github.com/hibiken/asynq"
	"github.com/robfig/cron/v3"
	"gorm.io/gorm"
)

// Task type shared with the worker mux (kept in sync with worker/tasks.go to
// avoid an import cycle).
const TypeWithdrawalSettle = "withdrawal:settle"

type SettlementJobDTO struct {
	TransactionId string `json:"transactionId"`
}

// SettlementService drives pending withdrawals to a terminal state, either
// through the payout rail or by a finance operator's manual decision.
type SettlementService struct {
	DB          *gorm.DB
	Ledger      *LedgerService
	Payout      *PayoutClient
	Balance     *BalanceService
	Marketplace *MarketplaceClient
	Queue       *asynq.Client
}

func NewSettlementService(db *gorm.DB, ledger *LedgerService, payout *PayoutClient, balance *BalanceService, marketplace *MarketplaceClient, queue *asynq.Client) *SettlementService {
	return &SettlementService{
		DB:          db,
		Ledger:      ledger,
		Payout:      payout,
		Balance:     balance,
		Marketplace: marketplace,
		Queue:       queue,
	}
}

// Settle pays out one withdrawal. It is idempotent: the pending -> processing
// compare-and-set claims the row, and a second call (or a duplicate queue
// delivery) finds the row already claimed and makes no payout call.
func (s *SettlementService) Settle(ref string) error {
	row, err := s.Ledger.MarkProcessing(ref)
	if err != nil {
		if errors.Is(err, ErrInvalidTransition) {
			log.Printf("Settlement for %s skipped: already claimed or terminal", ref)
		}
		return err
	}

	result, err := s.Payout.Transfer(row.TransactionId, row.DestinationAccount, row.Amount)
	if err != nil {
		// Transport failure: the payout outcome is unknown, so the row stays
		// in processing for an operator to resolve. Retrying blindly could
		// double-pay.
		return fmt.Errorf("payout call for %s failed: %w", ref, err)
	}

	if result.Ok {
		_, err = s.Ledger.Complete(ref)
		return err
	}

	_, err = s.Ledger.Fail(ref, result.Reason)
	return err
}

// ResolveManually applies a finance operator's decision without touching the
// payout rail.
func (s *SettlementService) ResolveManually(ref, outcome, reason string) (*models.WithdrawalRequest, error) {
	switch outcome {
	case models.WithdrawalCompleted:
		return s.Ledger.Complete(ref)
	case models.WithdrawalFailed:
		return s.Ledger.Fail(ref, reason)
	default:
		return nil, fmt.Errorf("unknown settlement outcome %q", outcome)
	}
}

// EnqueueSettlement hands a withdrawal to the worker queue.
func (s *SettlementService) EnqueueSettlement(ref string) error {
	payload, err := json.Marshal(SettlementJobDTO{TransactionId: ref})
	if err != nil {
		return err
	}
	_, err = s.Queue.Enqueue(asynq.NewTask(TypeWithdrawalSettle, payload), asynq.Queue("critical"))
	return err
}

// sweepPending enqueues every pending withdrawal for settlement when the
// operator has auto-disbursement turned on.
func (s *SettlementService) sweepPending() {
	if !s.Marketplace.AutoDisbursementEnabled() {
		return
	}

	var rows []models.WithdrawalRequest
	if err := s.DB.Where("status = ?", models.WithdrawalPending).Find(&rows).Error; err != nil {
		log.Printf("Auto-disbursement sweep query failed: %v", err)
		return
	}

	for _, row := range rows {
		if err := s.EnqueueSettlement(row.TransactionId); err != nil {
			log.Printf("Failed to enqueue settlement for %s: %v", row.TransactionId, err)
		}
	}
	if len(rows) > 0 {
		log.Printf("Auto-disbursement sweep enqueued %d withdrawals", len(rows))
	}
}

// auditBalances recomputes every technician's balance and raises an alarm in
// the logs for any inconsistency. Read only.
func (s *SettlementService) auditBalances() {
	var technicianIds []int
	if err := s.DB.Model(&models.WithdrawalRequest{}).Distinct("technician_id").Pluck("technician_id", &technicianIds).Error; err != nil {
		log.Printf("Balance audit query failed: %v", err)
		return
	}

	for _, id := range technicianIds {
		if _, err := s.Balance.Available(id); err != nil {
			log.Printf("BALANCE ALARM technician %d: %v", id, err)
		}
	}
}

// StartScheduler runs the auto-disbursement sweep every 10 minutes and the
// balance audit nightly.
func (s *SettlementService) StartScheduler() {
	c := cron.New()
	_, err := c.AddFunc("*/10 * * * *", func() {
		log.Println("Running scheduled auto-disbursement sweep...")
		s.sweepPending()
	})
	if err != nil {
		log.Printf("Error scheduling auto-disbursement sweep: %v", err)
		return
	}
	_, err = c.AddFunc("0 1 * * *", func() {
		log.Println("Running scheduled balance audit...")
		s.auditBalances()
	})
	if err != nil {
		log.Printf("Error scheduling balance audit: %v", err)
		return
	}
	c.Start()
	log.Println("Settlement schedulers started (sweep every 10 minutes, audit at 01:00)")
}
