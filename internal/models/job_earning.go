package models

import (
	"time"
)

// Earning statuses
const (
	EarningEarned = "earned"
	EarningPaid   = "paid"
)

// JobEarning is one completed service request's payout credit to a technician.
// Only rows with status "paid" count toward the withdrawable balance.
type JobEarning struct {
	ID               int        `gorm:"primaryKey;autoIncrement" json:"id"`
	TechnicianId     int        `gorm:"column:technician_id;not null;index:idx_earning_technician" json:"technician_id"`
	UserId           int        `gorm:"column:user_id;not null" json:"user_id"`
	ServiceRequestId string     `gorm:"column:service_request_id;size:100;not null" json:"service_request_id"`
	Amount           float64    `gorm:"column:amount;type:decimal(20,2);not null" json:"amount"`
	Status           string     `gorm:"column:status;size:20;default:earned" json:"status"`
	PaidAt           *time.Time `gorm:"column:paid_at" json:"paid_at"`
	CreatedAt        time.Time  `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt        time.Time  `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (JobEarning) TableName() string {
	return "job_earnings"
}
