package handlers

import (
	"net/http"
	"strconv"

	"payout-service/internal/services"
	"payout-service/pkg/common"

	"github.com/gin-gonic/gin"
)

type TechnicianHandler struct {
	Pin *services.PinService
}

func NewTechnicianHandler(pin *services.PinService) *TechnicianHandler {
	return &TechnicianHandler{Pin: pin}
}

type SetPinRequest struct {
	Pin string `json:"pin" binding:"required"`
}

// SetPin sets or replaces a technician's withdrawal PIN.
func (h *TechnicianHandler) SetPin(c *gin.Context) {
	technicianId, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, common.NewErrorResponse("Invalid technician id", nil, http.StatusBadRequest))
		return
	}

	var req SetPinRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, common.NewErrorResponse(err.Error(), nil, http.StatusBadRequest))
		return
	}

	if err := h.Pin.Set(technicianId, req.Pin); err != nil {
		status := statusForError(err)
		c.JSON(status, common.NewErrorResponse(err.Error(), nil, status))
		return
	}
	c.JSON(http.StatusOK, common.NewSuccessResponse(nil, "Withdrawal PIN updated"))
}
