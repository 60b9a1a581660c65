package services

import (
	"encoding/json"
	"fmt"
	"log"
	"os"

	"payout-service/internal/models"
	"payout-service/pkg/common"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PayoutClient pushes funds to a technician's UPI handle through the
// configured payment rail. Every call is logged to payout_attempts with the
// idempotency reference sent to the rail.
type PayoutClient struct {
	DB        *gorm.DB
	baseUrl   string
	secretKey string
}

func NewPayoutClient(db *gorm.DB) *PayoutClient {
	baseUrl := os.Getenv("PAYOUT_GATEWAY_URL")
	if baseUrl == "" {
		baseUrl = "https://api.sandbox.upi-rail.example"
	}
	return &PayoutClient{
		DB:        db,
		baseUrl:   baseUrl,
		secretKey: os.Getenv("PAYOUT_GATEWAY_SECRET"),
	}
}

type PayoutResult struct {
	Ok        bool
	Reference string
	Reason    string
}

// Transfer attempts the payout. A returned error means the rail could not be
// reached or answered garbage; Ok=false with a Reason means the rail rejected
// the transfer.
func (c *PayoutClient) Transfer(trxRef, destination string, amount float64) (PayoutResult, error) {
	reference := uuid.NewString()

	payload := map[string]interface{}{
		"reference": reference,
		"vpa":       destination,
		"amount":    amount,
		"narration": fmt.Sprintf("Technician payout %s", trxRef),
	}
	headers := map[string]string{
		"Authorization": fmt.Sprintf("Bearer %s", c.secretKey),
	}

	resp, err := common.Post(c.baseUrl+"/v1/payouts", payload, headers)
	c.logAttempt(trxRef, reference, payload, resp, err)
	if err != nil {
		return PayoutResult{Reference: reference}, err
	}

	respMap, ok := resp.(map[string]interface{})
	if !ok {
		return PayoutResult{Reference: reference}, fmt.Errorf("unexpected payout gateway response: %v", resp)
	}

	result := PayoutResult{Reference: reference}
	if success, _ := respMap["success"].(bool); success {
		result.Ok = true
		return result, nil
	}

	if msg, _ := respMap["message"].(string); msg != "" {
		result.Reason = msg
	} else {
		result.Reason = "payout rejected by gateway"
	}
	return result, nil
}

func (c *PayoutClient) logAttempt(trxRef, reference string, request interface{}, response interface{}, callErr error) {
	reqJson, _ := json.Marshal(request)

	var respText string
	if callErr != nil {
		respText = callErr.Error()
	} else if respJson, err := json.Marshal(response); err == nil {
		respText = string(respJson)
	}

	status := "sent"
	if callErr != nil {
		status = "error"
	}

	attempt := models.PayoutAttempt{
		TransactionId: trxRef,
		Reference:     reference,
		Request:       string(reqJson),
		Response:      respText,
		Status:        status,
	}
	if err := c.DB.Create(&attempt).Error; err != nil {
		// Audit logging must not block the payout path.
		log.Printf("Failed to log payout attempt for %s: %v", trxRef, err)
	}
}
