package models

import (
	"time"
)

type Technician struct {
	ID            int       `gorm:"primaryKey;autoIncrement" json:"id"`
	UserId        int       `gorm:"column:user_id;not null;index:idx_technician_user" json:"user_id"`
	Name          string    `gorm:"column:name;size:150;not null" json:"name"`
	Phone         string    `gorm:"column:phone;size:20" json:"phone"`
	Profession    string    `gorm:"column:profession;size:100" json:"profession"`
	WithdrawalPin string    `gorm:"column:withdrawal_pin;size:100" json:"-"` // bcrypt hash, empty = not configured
	Status        int       `gorm:"column:status;default:1" json:"status"`
	CreatedAt     time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (Technician) TableName() string {
	return "technicians"
}
