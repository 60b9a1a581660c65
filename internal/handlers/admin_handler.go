package handlers

import (
	"net/http"
	"strconv"

	"payout-service/internal/models"
	"payout-service/internal/services"
	"payout-service/pkg/common"

	"github.com/gin-gonic/gin"
)

// AdminHandler is the finance-operator surface: listing requests in bulk and
// driving settlement.
type AdminHandler struct {
	Withdrawal *services.WithdrawalService
	Settlement *services.SettlementService
}

func NewAdminHandler(withdrawal *services.WithdrawalService, settlement *services.SettlementService) *AdminHandler {
	return &AdminHandler{Withdrawal: withdrawal, Settlement: settlement}
}

func (h *AdminHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	technicianId, _ := strconv.Atoi(c.Query("technician_id"))

	res, err := h.Withdrawal.ListWithdrawalRequests(services.ListWithdrawalRequestsDTO{
		From:         c.Query("from"),
		To:           c.Query("to"),
		Status:       c.Query("status"),
		TechnicianId: technicianId,
		Page:         page,
		Limit:        limit,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, common.NewErrorResponse(err.Error(), nil, http.StatusInternalServerError))
		return
	}
	c.JSON(http.StatusOK, res)
}

// Process hands a pending withdrawal to the settlement queue. The claim
// itself (pending -> processing) happens in the worker, so a double click
// here cannot double-pay.
func (h *AdminHandler) Process(c *gin.Context) {
	ref := c.Param("ref")

	row, err := h.Withdrawal.GetByTransactionId(ref)
	if err != nil {
		status := statusForError(err)
		c.JSON(status, common.NewErrorResponse(err.Error(), nil, status))
		return
	}
	if row.Status != models.WithdrawalPending {
		c.JSON(http.StatusConflict, common.NewErrorResponse(services.ErrInvalidTransition.Error(), nil, http.StatusConflict))
		return
	}

	if err := h.Settlement.EnqueueSettlement(ref); err != nil {
		c.JSON(http.StatusInternalServerError, common.NewErrorResponse(err.Error(), nil, http.StatusInternalServerError))
		return
	}
	c.JSON(http.StatusOK, common.NewSuccessResponse(row, "Withdrawal queued for settlement"))
}

type SettleRequest struct {
	Outcome string `json:"outcome" binding:"required"`
	Reason  string `json:"reason"`
}

// Settle records a finance operator's manual completed/failed decision.
func (h *AdminHandler) Settle(c *gin.Context) {
	var req SettleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, common.NewErrorResponse(err.Error(), nil, http.StatusBadRequest))
		return
	}

	row, err := h.Settlement.ResolveManually(c.Param("ref"), req.Outcome, req.Reason)
	if err != nil {
		status := statusForError(err)
		c.JSON(status, common.NewErrorResponse(err.Error(), nil, status))
		return
	}
	c.JSON(http.StatusOK, common.NewSuccessResponse(row, "Withdrawal settled"))
}
