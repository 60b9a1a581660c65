package services

import (
	"fmt"

	"payout-service/internal/models"

	"gorm.io/gorm"
)

// BalanceService derives a technician's withdrawable balance on demand. The
// balance is never stored as a running total: it is the sum of paid job
// earnings minus every withdrawal that is pending, processing or completed.
type BalanceService struct {
	DB *gorm.DB
}

func NewBalanceService(db *gorm.DB) *BalanceService {
	return &BalanceService{DB: db}
}

// Available computes the technician's current withdrawable balance. A
// negative result indicates corrupted underlying data and is surfaced as
// ErrBalanceInconsistency, never clamped to zero.
func (s *BalanceService) Available(technicianId int) (float64, error) {
	return s.AvailableTx(s.DB, technicianId)
}

// AvailableTx is the transaction-scoped variant used inside the withdrawal
// creation critical section, so the balance read shares the caller's locks.
func (s *BalanceService) AvailableTx(tx *gorm.DB, technicianId int) (float64, error) {
	var earned float64
	err := tx.Model(&models.JobEarning{}).
		Where("technician_id = ? AND status = ?", technicianId, models.EarningPaid).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&earned).Error
	if err != nil {
		return 0, err
	}

	var withheld float64
	err = tx.Model(&models.WithdrawalRequest{}).
		Where("technician_id = ? AND status IN ?", technicianId, []string{
			models.WithdrawalPending,
			models.WithdrawalProcessing,
			models.WithdrawalCompleted,
		}).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&withheld).Error
	if err != nil {
		return 0, err
	}

	return availableBalance(earned, withheld)
}

func availableBalance(earned, withheld float64) (float64, error) {
	available := earned - withheld
	if available < 0 {
		return 0, fmt.Errorf("%w: earned %.2f, withheld %.2f", ErrBalanceInconsistency, earned, withheld)
	}
	return available, nil
}
