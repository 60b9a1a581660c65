package services

import (
	"errors"
	"testing"

	"payout-service/internal/models"
)

func seedPendingWithdrawal(t *testing.T, svc *WithdrawalService, technicianId int, amount float64) *models.WithdrawalRequest {
	t.Helper()
	row, err := svc.RequestWithdrawal(WithdrawRequestDTO{
		TechnicianId:       technicianId,
		Amount:             amount,
		DestinationAccount: "alice@examplebank",
		Pin:                "4321",
	})
	if err != nil {
		t.Fatalf("seed withdrawal failed: %v", err)
	}
	return row
}

func TestLedgerCompleteFlow(t *testing.T) {
	if testDB == nil {
		t.Skip("Database not configured")
	}
	defer cleanup()

	svc := newWithdrawalService()
	ledger := NewLedgerService(testDB, nil)
	tech := seedTechnician(t, 501, 1000.0)
	row := seedPendingWithdrawal(t, svc, tech.ID, 250.0)

	claimed, err := ledger.MarkProcessing(row.TransactionId)
	if err != nil {
		t.Fatalf("MarkProcessing failed: %v", err)
	}
	if claimed.Status != models.WithdrawalProcessing {
		t.Errorf("Expected processing, got %s", claimed.Status)
	}

	done, err := ledger.Complete(row.TransactionId)
	if err != nil {
		t.Fatalf("Complete failed: %v", err)
	}
	if done.Status != models.WithdrawalCompleted {
		t.Errorf("Expected completed, got %s", done.Status)
	}
	if done.ProcessedAt == nil {
		t.Error("Expected processed_at to be set")
	}

	// Idempotence: a second Complete must not double-settle
	if _, err := ledger.Complete(row.TransactionId); !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("Expected ErrInvalidTransition on double complete, got %v", err)
	}

	// Completed withdrawals stay withheld from the balance
	balance, err := NewBalanceService(testDB).Available(tech.ID)
	if err != nil {
		t.Fatalf("Available failed: %v", err)
	}
	if balance != 750.0 {
		t.Errorf("Expected balance 750 after completion, got %.2f", balance)
	}
}

func TestLedgerFail(t *testing.T) {
	if testDB == nil {
		t.Skip("Database not configured")
	}
	defer cleanup()

	svc := newWithdrawalService()
	ledger := NewLedgerService(testDB, nil)
	tech := seedTechnician(t, 502, 1000.0)
	row := seedPendingWithdrawal(t, svc, tech.ID, 250.0)

	if _, err := ledger.Fail(row.TransactionId, ""); !errors.Is(err, ErrFailureReasonRequired) {
		t.Errorf("Expected ErrFailureReasonRequired, got %v", err)
	}

	failed, err := ledger.Fail(row.TransactionId, "bank rejected")
	if err != nil {
		t.Fatalf("Fail failed: %v", err)
	}
	if failed.Status != models.WithdrawalFailed {
		t.Errorf("Expected failed, got %s", failed.Status)
	}
	if failed.FailureReason != "bank rejected" {
		t.Errorf("Expected failure reason to persist, got %q", failed.FailureReason)
	}
	if failed.ProcessedAt == nil {
		t.Error("Expected processed_at to be set")
	}

	// A failed row can never be completed afterwards
	if _, err := ledger.Complete(row.TransactionId); !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("Expected ErrInvalidTransition after fail, got %v", err)
	}

	// Failed withdrawals release their amount back to the balance
	balance, err := NewBalanceService(testDB).Available(tech.ID)
	if err != nil {
		t.Fatalf("Available failed: %v", err)
	}
	if balance != 1000.0 {
		t.Errorf("Expected balance restored to 1000, got %.2f", balance)
	}
}

func TestLedgerCancel(t *testing.T) {
	if testDB == nil {
		t.Skip("Database not configured")
	}
	defer cleanup()

	svc := newWithdrawalService()
	ledger := NewLedgerService(testDB, nil)
	tech := seedTechnician(t, 503, 1000.0)

	row := seedPendingWithdrawal(t, svc, tech.ID, 250.0)
	cancelled, err := ledger.Cancel(row.TransactionId)
	if err != nil {
		t.Fatalf("Cancel failed: %v", err)
	}
	if cancelled.Status != models.WithdrawalCancelled {
		t.Errorf("Expected cancelled, got %s", cancelled.Status)
	}

	// Once processing has started the technician can no longer cancel
	row2 := seedPendingWithdrawal(t, svc, tech.ID, 250.0)
	if _, err := ledger.MarkProcessing(row2.TransactionId); err != nil {
		t.Fatalf("MarkProcessing failed: %v", err)
	}
	if _, err := ledger.Cancel(row2.TransactionId); !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("Expected ErrInvalidTransition cancelling a processing row, got %v", err)
	}
}

func TestLedgerUnknownRef(t *testing.T) {
	if testDB == nil {
		t.Skip("Database not configured")
	}
	defer cleanup()

	ledger := NewLedgerService(testDB, nil)
	if _, err := ledger.Complete("WD-000000-ABCDEF"); !errors.Is(err, ErrWithdrawalNotFound) {
		t.Errorf("Expected ErrWithdrawalNotFound, got %v", err)
	}
}
