package services

import (
	"testing"

	"payout-service/internal/models"

	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/bcrypt"
)

func hashedPin(t *testing.T, pin string) string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(pin), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("bcrypt failed: %v", err)
	}
	return string(hash)
}

func TestVerifyPin(t *testing.T) {
	svc := NewPinService(nil)
	tech := &models.Technician{WithdrawalPin: hashedPin(t, "4321")}

	assert.NoError(t, svc.Verify(tech, "4321"))
	assert.ErrorIs(t, svc.Verify(tech, "1234"), ErrPinMismatch)
	assert.ErrorIs(t, svc.Verify(tech, "12a4"), ErrPinFormatInvalid)
	assert.ErrorIs(t, svc.Verify(tech, "432"), ErrPinFormatInvalid)

	unset := &models.Technician{}
	assert.ErrorIs(t, svc.Verify(unset, "4321"), ErrPinNotConfigured)
}
