package consumers

import (
	"log"
	"os"

	"payout-service/internal/services"
	"payout-service/pkg/common"

	"gorm.io/gorm"
)

// SettlementProcessor is the worker-side consumer: it executes settlement
// jobs and forwards notification events to the marketplace's notification
// webhook.
type SettlementProcessor struct {
	DB         *gorm.DB
	Settlement *services.SettlementService
	webhookUrl string
}

func NewSettlementProcessor(db *gorm.DB, settlement *services.SettlementService) *SettlementProcessor {
	return &SettlementProcessor{
		DB:         db,
		Settlement: settlement,
		webhookUrl: os.Getenv("NOTIFICATION_WEBHOOK_URL"),
	}
}

func (p *SettlementProcessor) ProcessSettlement(job services.SettlementJobDTO) {
	if err := p.Settlement.Settle(job.TransactionId); err != nil {
		log.Printf("Settlement for %s not applied: %v", job.TransactionId, err)
		return
	}
	log.Printf("Settlement for %s applied", job.TransactionId)
}

// ProcessNotification delivers the event downstream. Fire and forget: a
// failed delivery is logged and dropped, never retried into a double send.
func (p *SettlementProcessor) ProcessNotification(event services.NotificationEvent) {
	if p.webhookUrl == "" {
		log.Printf("Notification %s for %s dropped: no webhook configured", event.EventId, event.TransactionId)
		return
	}

	if _, err := common.Post(p.webhookUrl, event, nil); err != nil {
		log.Printf("Notification %s for %s failed: %v", event.EventId, event.TransactionId, err)
		return
	}
	log.Printf("Notification %s for %s delivered", event.EventId, event.TransactionId)
}
