package models

import (
	"time"
)

// Withdrawal statuses. Rows are never deleted, only moved through these states.
const (
	WithdrawalPending    = "pending"
	WithdrawalProcessing = "processing"
	WithdrawalCompleted  = "completed"
	WithdrawalFailed     = "failed"
	WithdrawalCancelled  = "cancelled"
)

type WithdrawalRequest struct {
	ID                 int        `gorm:"primaryKey;autoIncrement" json:"id"`
	TechnicianId       int        `gorm:"column:technician_id;not null;index:idx_withdrawal_technician" json:"technician_id"`
	UserId             int        `gorm:"column:user_id;not null" json:"user_id"`
	Amount             float64    `gorm:"column:amount;type:decimal(20,2);not null" json:"amount"`
	DestinationAccount string     `gorm:"column:destination_account;size:330;not null" json:"destination_account"`
	Status             string     `gorm:"column:status;size:20;default:pending;index:idx_withdrawal_status" json:"status"`
	TransactionId      string     `gorm:"column:transaction_id;size:40;not null;uniqueIndex:idx_withdrawal_trx" json:"transaction_id"`
	FailureReason      string     `gorm:"column:failure_reason;size:255" json:"failure_reason,omitempty"`
	ProcessedAt        *time.Time `gorm:"column:processed_at" json:"processed_at"`
	CreatedAt          time.Time  `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt          time.Time  `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (WithdrawalRequest) TableName() string {
	return "withdrawal_requests"
}

// Terminal reports whether the request can no longer change state.
func (w *WithdrawalRequest) Terminal() bool {
	switch w.Status {
	case WithdrawalCompleted, WithdrawalFailed, WithdrawalCancelled:
		return true
	}
	return false
}
