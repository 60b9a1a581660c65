package services

import (
	"encoding/json"
	"errors"
	"log"
	"slices"
	"time"

	"payout-service/internal/models"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"gorm.io/gorm"
)

// Task type shared with the worker mux (kept in sync with worker/tasks.go to
// avoid an import cycle).
const TypeWithdrawalNotify = "withdrawal:notify"

// allowedTransitions maps a target status to the statuses a row may be in for
// the move to be legal. Everything else is ErrInvalidTransition.
var allowedTransitions = map[string][]string{
	models.WithdrawalProcessing: {models.WithdrawalPending},
	models.WithdrawalCompleted:  {models.WithdrawalPending, models.WithdrawalProcessing},
	models.WithdrawalFailed:     {models.WithdrawalPending, models.WithdrawalProcessing},
	models.WithdrawalCancelled:  {models.WithdrawalPending},
}

// CanTransition reports whether a withdrawal in status from may move to to.
func CanTransition(from, to string) bool {
	return slices.Contains(allowedTransitions[to], from)
}

// NotificationEvent is the fire-and-forget payload emitted when a withdrawal
// reaches completed or failed. Delivery is best effort.
type NotificationEvent struct {
	EventId       string  `json:"eventId"`
	TransactionId string  `json:"transactionId"`
	TechnicianId  int     `json:"technicianId"`
	Status        string  `json:"status"`
	Amount        float64 `json:"amount"`
}

// LedgerService owns the withdrawal status state machine. Every transition is
// a compare-and-set on the current status; the persisted status field is the
// only lock token, so concurrent and repeated transitions cannot overwrite a
// row that has already moved on.
type LedgerService struct {
	DB    *gorm.DB
	Queue *asynq.Client
}

func NewLedgerService(db *gorm.DB, queue *asynq.Client) *LedgerService {
	return &LedgerService{DB: db, Queue: queue}
}

// MarkProcessing moves pending -> processing, claiming the request for a
// settlement actor.
func (s *LedgerService) MarkProcessing(ref string) (*models.WithdrawalRequest, error) {
	return s.transition(ref, models.WithdrawalProcessing, map[string]interface{}{})
}

// Complete finalizes a payout. Legal from pending or processing only.
func (s *LedgerService) Complete(ref string) (*models.WithdrawalRequest, error) {
	row, err := s.transition(ref, models.WithdrawalCompleted, map[string]interface{}{
		"processed_at": time.Now(),
	})
	if err != nil {
		return nil, err
	}
	s.notify(row)
	return row, nil
}

// Fail marks a payout as failed with a mandatory reason. Legal from pending
// or processing only.
func (s *LedgerService) Fail(ref, reason string) (*models.WithdrawalRequest, error) {
	if reason == "" {
		return nil, ErrFailureReasonRequired
	}
	row, err := s.transition(ref, models.WithdrawalFailed, map[string]interface{}{
		"processed_at":   time.Now(),
		"failure_reason": reason,
	})
	if err != nil {
		return nil, err
	}
	s.notify(row)
	return row, nil
}

// Cancel lets the technician withdraw the request before processing begins.
func (s *LedgerService) Cancel(ref string) (*models.WithdrawalRequest, error) {
	return s.transition(ref, models.WithdrawalCancelled, map[string]interface{}{})
}

func (s *LedgerService) transition(ref, to string, patch map[string]interface{}) (*models.WithdrawalRequest, error) {
	patch["status"] = to

	res := s.DB.Model(&models.WithdrawalRequest{}).
		Where("transaction_id = ? AND status IN ?", ref, allowedTransitions[to]).
		Updates(patch)
	if res.Error != nil {
		return nil, res.Error
	}

	if res.RowsAffected == 0 {
		// Either the row does not exist or it already left the expected
		// status; a second lookup tells the two apart.
		var row models.WithdrawalRequest
		if err := s.DB.Where("transaction_id = ?", ref).First(&row).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrWithdrawalNotFound
			}
			return nil, err
		}
		return nil, ErrInvalidTransition
	}

	var row models.WithdrawalRequest
	if err := s.DB.Where("transaction_id = ?", ref).First(&row).Error; err != nil {
		return nil, err
	}
	return &row, nil
}

// notify enqueues the downstream notification event. Enqueue failures are
// logged and never fail the transition itself.
func (s *LedgerService) notify(row *models.WithdrawalRequest) {
	if s.Queue == nil {
		return
	}

	event := NotificationEvent{
		EventId:       uuid.NewString(),
		TransactionId: row.TransactionId,
		TechnicianId:  row.TechnicianId,
		Status:        row.Status,
		Amount:        row.Amount,
	}
	payload, err := json.Marshal(event)
	if err != nil {
		log.Printf("Failed to marshal notification event for %s: %v", row.TransactionId, err)
		return
	}
	if _, err := s.Queue.Enqueue(asynq.NewTask(TypeWithdrawalNotify, payload), asynq.Queue("low")); err != nil {
		log.Printf("Failed to enqueue notification for %s: %v", row.TransactionId, err)
	}
}
