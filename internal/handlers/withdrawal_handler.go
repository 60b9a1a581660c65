package handlers

import (
	"net/http"
	"strconv"

	"payout-service/internal/services"
	"payout-service/pkg/common"

	"github.com/gin-gonic/gin"
)

type WithdrawalHandler struct {
	Withdrawal *services.WithdrawalService
	Ledger     *services.LedgerService
	Balance    *services.BalanceService
}

func NewWithdrawalHandler(withdrawal *services.WithdrawalService, ledger *services.LedgerService, balance *services.BalanceService) *WithdrawalHandler {
	return &WithdrawalHandler{Withdrawal: withdrawal, Ledger: ledger, Balance: balance}
}

// The technician id always arrives explicitly in the request; this service
// never reads it from ambient auth state. The calling gateway resolves
// identity before it gets here.
type CreateWithdrawalRequest struct {
	TechnicianId       int     `json:"technician_id" binding:"required"`
	Amount             float64 `json:"amount" binding:"required"`
	DestinationAccount string  `json:"destination_account" binding:"required"`
	Pin                string  `json:"pin" binding:"required"`
}

func (h *WithdrawalHandler) Create(c *gin.Context) {
	var req CreateWithdrawalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, common.NewErrorResponse(err.Error(), nil, http.StatusBadRequest))
		return
	}

	row, err := h.Withdrawal.RequestWithdrawal(services.WithdrawRequestDTO{
		TechnicianId:       req.TechnicianId,
		Amount:             req.Amount,
		DestinationAccount: req.DestinationAccount,
		Pin:                req.Pin,
	})
	if err != nil {
		status := statusForError(err)
		c.JSON(status, common.NewErrorResponse(err.Error(), nil, status))
		return
	}

	c.JSON(http.StatusCreated, common.NewSuccessResponse(gin.H{
		"transaction_id":      row.TransactionId,
		"status":              row.Status,
		"amount":              row.Amount,
		"destination_account": row.DestinationAccount,
	}, "Withdrawal request accepted"))
}

func (h *WithdrawalHandler) Get(c *gin.Context) {
	row, err := h.Withdrawal.GetByTransactionId(c.Param("ref"))
	if err != nil {
		status := statusForError(err)
		c.JSON(status, common.NewErrorResponse(err.Error(), nil, status))
		return
	}
	c.JSON(http.StatusOK, common.NewSuccessResponse(row, "Successful"))
}

func (h *WithdrawalHandler) Cancel(c *gin.Context) {
	row, err := h.Ledger.Cancel(c.Param("ref"))
	if err != nil {
		status := statusForError(err)
		c.JSON(status, common.NewErrorResponse(err.Error(), nil, status))
		return
	}
	c.JSON(http.StatusOK, common.NewSuccessResponse(row, "Withdrawal cancelled"))
}

func (h *WithdrawalHandler) List(c *gin.Context) {
	technicianId, err := strconv.Atoi(c.Query("technician_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, common.NewErrorResponse("Invalid technician_id", nil, http.StatusBadRequest))
		return
	}
	pendingOnly := c.Query("pending") == "true"

	rows, err := h.Withdrawal.FetchTechnicianWithdrawals(technicianId, pendingOnly)
	if err != nil {
		c.JSON(http.StatusInternalServerError, common.NewErrorResponse(err.Error(), nil, http.StatusInternalServerError))
		return
	}
	c.JSON(http.StatusOK, common.NewSuccessResponse(rows, "Successful"))
}

func (h *WithdrawalHandler) GetBalance(c *gin.Context) {
	technicianId, err := strconv.Atoi(c.Query("technician_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, common.NewErrorResponse("Invalid technician_id", nil, http.StatusBadRequest))
		return
	}

	balance, err := h.Balance.Available(technicianId)
	if err != nil {
		status := statusForError(err)
		c.JSON(status, common.NewErrorResponse(err.Error(), nil, status))
		return
	}
	c.JSON(http.StatusOK, common.NewSuccessResponse(gin.H{"balance": balance}, "Successful"))
}
