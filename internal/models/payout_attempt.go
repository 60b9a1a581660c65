package models

import (
	"time"
)

// PayoutAttempt logs every call made to the payout rail for a withdrawal,
// keyed by the withdrawal's transaction id plus a per-attempt reference.
type PayoutAttempt struct {
	ID            uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	TransactionId string    `gorm:"column:transaction_id;size:40;not null;index:idx_attempt_trx" json:"transaction_id"`
	Reference     string    `gorm:"column:reference;size:40;not null" json:"reference"`
	Request       string    `gorm:"column:request;type:longtext" json:"request"`
	Response      string    `gorm:"column:response;type:longtext" json:"response"`
	Status        string    `gorm:"column:status;size:20" json:"status"`
	CreatedAt     time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (PayoutAttempt) TableName() string {
	return "payout_attempts"
}
