package services

import (
	"errors"
	"strings"

	"payout-service/internal/models"
	"payout-service/pkg/common"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// maxRefAttempts bounds transaction-id regeneration when an insert hits the
// unique index. A collision needs two requests in the same millisecond with
// the same 24-bit suffix, so one retry is already generous.
const maxRefAttempts = 3

type WithdrawalService struct {
	DB          *gorm.DB
	Balance     *BalanceService
	Pin         *PinService
	Marketplace *MarketplaceClient
}

func NewWithdrawalService(db *gorm.DB, balance *BalanceService, pin *PinService, marketplace *MarketplaceClient) *WithdrawalService {
	return &WithdrawalService{DB: db, Balance: balance, Pin: pin, Marketplace: marketplace}
}

type WithdrawRequestDTO struct {
	TechnicianId       int
	Amount             float64
	DestinationAccount string
	Pin                string
}

// RequestWithdrawal validates and records a new withdrawal request.
//
// The PIN verification, balance read and ledger insert run in one database
// transaction holding a row lock on the technician, so two concurrent
// requests from the same technician cannot both pass the balance check
// against a stale balance.
func (s *WithdrawalService) RequestWithdrawal(data WithdrawRequestDTO) (*models.WithdrawalRequest, error) {
	if err := ValidatePinFormat(data.Pin); err != nil {
		return nil, err
	}
	if err := ValidateDestination(data.DestinationAccount); err != nil {
		return nil, err
	}

	// Remote settings lookup stays outside the critical section.
	limits := s.Marketplace.GetWithdrawalLimits(data.TechnicianId)

	var created models.WithdrawalRequest
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var technician models.Technician
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ?", data.TechnicianId).
			First(&technician).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrTechnicianNotFound
			}
			return err
		}

		if err := s.Pin.Verify(&technician, data.Pin); err != nil {
			return err
		}

		available, err := s.Balance.AvailableTx(tx, technician.ID)
		if err != nil {
			return err
		}
		if err := ValidateAmount(data.Amount, available, limits); err != nil {
			return err
		}

		created = models.WithdrawalRequest{
			TechnicianId:       technician.ID,
			UserId:             technician.UserId,
			Amount:             data.Amount,
			DestinationAccount: strings.TrimSpace(data.DestinationAccount),
			Status:             models.WithdrawalPending,
		}

		for attempt := 0; attempt < maxRefAttempts; attempt++ {
			created.TransactionId = common.GenerateWithdrawalRef()
			err := tx.Create(&created).Error
			if err == nil {
				return nil
			}
			if !errors.Is(err, gorm.ErrDuplicatedKey) {
				return err
			}
		}
		return ErrDuplicateTransactionId
	})
	if err != nil {
		return nil, err
	}
	return &created, nil
}

// GetByTransactionId looks up a withdrawal by its public reference.
func (s *WithdrawalService) GetByTransactionId(ref string) (*models.WithdrawalRequest, error) {
	var row models.WithdrawalRequest
	if err := s.DB.Where("transaction_id = ?", ref).First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrWithdrawalNotFound
		}
		return nil, err
	}
	return &row, nil
}

// FetchTechnicianWithdrawals returns a technician's withdrawal history,
// newest first, optionally narrowed to pending requests.
func (s *WithdrawalService) FetchTechnicianWithdrawals(technicianId int, pendingOnly bool) ([]models.WithdrawalRequest, error) {
	var rows []models.WithdrawalRequest
	query := s.DB.Where("technician_id = ?", technicianId)
	if pendingOnly {
		query = query.Where("status = ?", models.WithdrawalPending)
	}
	if err := query.Order("created_at DESC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

type ListWithdrawalRequestsDTO struct {
	From         string
	To           string
	Status       string
	TechnicianId int
	Page         int
	Limit        int
}

// ListWithdrawalRequests is the finance-operator view: filtered, paginated,
// with an aggregate of the filtered total amount.
func (s *WithdrawalService) ListWithdrawalRequests(data ListWithdrawalRequestsDTO) (common.PaginationResult, error) {
	limit := data.Limit
	if limit <= 0 {
		limit = 50
	}
	page := data.Page
	if page < 1 {
		page = 1
	}
	offset := (page - 1) * limit

	query := s.DB.Model(&models.WithdrawalRequest{})
	if data.From != "" && data.To != "" {
		query = query.Where("created_at BETWEEN ? AND ?", data.From, data.To)
	}
	if data.TechnicianId != 0 {
		query = query.Where("technician_id = ?", data.TechnicianId)
	}
	if data.Status != "" {
		query = query.Where("status = ?", data.Status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return common.PaginationResult{}, err
	}

	var list []models.WithdrawalRequest
	if err := query.Order("created_at DESC").Limit(limit).Offset(offset).Find(&list).Error; err != nil {
		return common.PaginationResult{}, err
	}

	sumQuery := s.DB.Model(&models.WithdrawalRequest{})
	if data.From != "" && data.To != "" {
		sumQuery = sumQuery.Where("created_at BETWEEN ? AND ?", data.From, data.To)
	}
	if data.TechnicianId != 0 {
		sumQuery = sumQuery.Where("technician_id = ?", data.TechnicianId)
	}
	if data.Status != "" {
		sumQuery = sumQuery.Where("status = ?", data.Status)
	}

	var totalAmount float64
	if err := sumQuery.Select("COALESCE(SUM(amount), 0)").Scan(&totalAmount).Error; err != nil {
		return common.PaginationResult{}, err
	}

	return common.PaginateResponse(map[string]interface{}{
		"data":        list,
		"totalAmount": totalAmount,
	}, total, page, limit, "Withdrawal requests fetched successfully"), nil
}
