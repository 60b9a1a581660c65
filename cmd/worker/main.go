package main

import (
	"log"
	"os"

	"github.com/hibiken/asynq"
	"github.com/joho/godotenv"

	"payout-service/internal/consumers"
	"payout-service/internal/database"
	"payout-service/internal/services"
	"payout-service/internal/worker"
)

func main() {
	// Load env
	if err := godotenv.Load("../../.env"); err != nil {
		log.Println("No .env file found in ../../.env, trying .env")
		if err := godotenv.Load(".env"); err != nil {
			log.Println("No .env file found, using system env")
		}
	}

	// Connect DB
	database.Connect()
	db := database.DB

	// Redis
	redisAddr := os.Getenv("REDIS_URL")
	if redisAddr == "" {
		redisAddr = "localhost:6379"
	}
	redisOpt := asynq.RedisClientOpt{Addr: redisAddr}

	asynqClient := asynq.NewClient(redisOpt)
	defer asynqClient.Close()

	// Init Services
	marketplaceClient := services.NewMarketplaceClient()
	balanceService := services.NewBalanceService(db)
	ledgerService := services.NewLedgerService(db, asynqClient)
	payoutClient := services.NewPayoutClient(db)
	settlementService := services.NewSettlementService(db, ledgerService, payoutClient, balanceService, marketplaceClient, asynqClient)

	// Processor
	processor := consumers.NewSettlementProcessor(db, settlementService)

	log.Println("Starting Asynq Worker...")
	worker.StartWorker(redisOpt, processor)
}
