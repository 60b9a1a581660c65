package services

import (
	"golang.org/x/crypto/bcrypt"

	"payout-service/internal/models"

	"gorm.io/gorm"
)

// PinService manages the 4-digit withdrawal PIN. The PIN is stored as a
// bcrypt hash and never compared or logged in plaintext; bcrypt's compare is
// constant-time with respect to the submitted secret.
type PinService struct {
	DB *gorm.DB
}

func NewPinService(db *gorm.DB) *PinService {
	return &PinService{DB: db}
}

// Set hashes and stores a technician's withdrawal PIN, replacing any prior one.
func (s *PinService) Set(technicianId int, pin string) error {
	if err := ValidatePinFormat(pin); err != nil {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(pin), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	res := s.DB.Model(&models.Technician{}).
		Where("id = ?", technicianId).
		Update("withdrawal_pin", string(hash))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrTechnicianNotFound
	}
	return nil
}

// Verify checks a submitted PIN against the technician's stored hash.
func (s *PinService) Verify(technician *models.Technician, pin string) error {
	if technician.WithdrawalPin == "" {
		return ErrPinNotConfigured
	}
	if err := ValidatePinFormat(pin); err != nil {
		return err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(technician.WithdrawalPin), []byte(pin)); err != nil {
		return ErrPinMismatch
	}
	return nil
}
