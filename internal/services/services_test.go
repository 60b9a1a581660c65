package services

import (
	"log"
	"os"
	"testing"
	"time"

	"payout-service/internal/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// DB-backed tests need a running MySQL instance; they skip when DATABASE_URL
// is not set so the pure-logic tests still run everywhere.

var testDB *gorm.DB

func TestMain(m *testing.M) {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		log.Println("Skipping DB tests: DATABASE_URL not set")
		os.Exit(m.Run())
	}

	var err error
	testDB, err = gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		log.Printf("Failed to connect to database: %v", err)
		testDB = nil
		os.Exit(m.Run())
	}

	testDB.AutoMigrate(
		&models.Technician{},
		&models.JobEarning{},
		&models.WithdrawalRequest{},
		&models.PayoutAttempt{},
	)

	os.Exit(m.Run())
}

func cleanup() {
	if testDB != nil {
		testDB.Exec("DELETE FROM payout_attempts")
		testDB.Exec("DELETE FROM withdrawal_requests")
		testDB.Exec("DELETE FROM job_earnings")
		testDB.Exec("DELETE FROM technicians")
	}
}

// seedTechnician creates a technician with the given paid earnings and a
// withdrawal PIN of "4321".
func seedTechnician(t *testing.T, userId int, earned float64) *models.Technician {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("4321"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("bcrypt failed: %v", err)
	}

	tech := models.Technician{
		UserId:        userId,
		Name:          "Test Technician",
		Profession:    "electrician",
		WithdrawalPin: string(hash),
	}
	if err := testDB.Create(&tech).Error; err != nil {
		t.Fatalf("failed to seed technician: %v", err)
	}

	if earned > 0 {
		now := time.Now()
		earning := models.JobEarning{
			TechnicianId:     tech.ID,
			UserId:           userId,
			ServiceRequestId: "SR-TEST",
			Amount:           earned,
			Status:           models.EarningPaid,
			PaidAt:           &now,
		}
		if err := testDB.Create(&earning).Error; err != nil {
			t.Fatalf("failed to seed earning: %v", err)
		}
	}
	return &tech
}

func newWithdrawalService() *WithdrawalService {
	return NewWithdrawalService(testDB, NewBalanceService(testDB), NewPinService(testDB), NewMarketplaceClient())
}
