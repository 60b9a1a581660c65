package services

import (
	"fmt"
	"log"
	"os"

	"payout-service/pkg/common"
)

// MarketplaceClient talks to the main marketplace backend, which owns
// technician accounts and operator-tunable withdrawal settings.
type MarketplaceClient struct {
	baseUrl string
}

func NewMarketplaceClient() *MarketplaceClient {
	baseUrl := os.Getenv("MARKETPLACE_SERVICE_URL")
	if baseUrl == "" {
		baseUrl = "http://localhost:5002"
	}
	return &MarketplaceClient{baseUrl: baseUrl}
}

// GetWithdrawalLimits fetches the operator-configured withdrawal bounds.
// On any failure the hardcoded defaults apply so payouts keep working when
// the marketplace backend is down.
func (c *MarketplaceClient) GetWithdrawalLimits(technicianId int) WithdrawalLimits {
	limits := DefaultWithdrawalLimits()

	url := fmt.Sprintf("%s/internal/withdrawal-settings?technician_id=%d", c.baseUrl, technicianId)
	resp, err := common.Get(url, nil)
	if err != nil {
		log.Printf("Failed to fetch withdrawal settings from marketplace service: %v", err)
		return limits
	}

	respMap, ok := resp.(map[string]interface{})
	if !ok {
		return limits
	}

	if min, ok := respMap["minimumWithdrawal"].(float64); ok && min >= limits.Minimum {
		limits.Minimum = min
	}
	if max, ok := respMap["maximumWithdrawal"].(float64); ok && max > 0 {
		limits.Maximum = max
	}
	return limits
}

// AutoDisbursementEnabled reports whether the operator has turned on
// automatic settlement of pending withdrawals. Environment override first,
// so a worker can run fully offline from the marketplace backend.
func (c *MarketplaceClient) AutoDisbursementEnabled() bool {
	if os.Getenv("AUTO_DISBURSEMENT") == "1" {
		return true
	}

	resp, err := common.Get(c.baseUrl+"/internal/withdrawal-settings", nil)
	if err != nil {
		return false
	}
	respMap, ok := resp.(map[string]interface{})
	if !ok {
		return false
	}
	enabled, _ := respMap["autoDisbursement"].(float64)
	return enabled == 1
}
