package main

import (
	"log"
	"os"

	"payout-service/internal/database"
	"payout-service/internal/handlers"
	"payout-service/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/hibiken/asynq"
	"github.com/joho/godotenv"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found in current directory, trying parent")
		if err := godotenv.Load("../.env"); err != nil {
			log.Println("No .env file found, using system environment variables")
		}
	}

	if mode := os.Getenv("GIN_MODE"); mode != "" {
		gin.SetMode(mode)
	}

	// Initialize Database
	database.Connect()
	database.Migrate()
	db := database.DB

	// Redis/Asynq Client
	redisAddr := os.Getenv("REDIS_URL")
	if redisAddr == "" {
		redisAddr = "localhost:6379"
	}
	asynqClient := asynq.NewClient(asynq.RedisClientOpt{Addr: redisAddr})
	defer asynqClient.Close()

	// Init Services
	marketplaceClient := services.NewMarketplaceClient()
	balanceService := services.NewBalanceService(db)
	pinService := services.NewPinService(db)
	ledgerService := services.NewLedgerService(db, asynqClient)
	payoutClient := services.NewPayoutClient(db)
	withdrawalService := services.NewWithdrawalService(db, balanceService, pinService, marketplaceClient)
	settlementService := services.NewSettlementService(db, ledgerService, payoutClient, balanceService, marketplaceClient, asynqClient)

	// Handlers
	withdrawalHandler := handlers.NewWithdrawalHandler(withdrawalService, ledgerService, balanceService)
	technicianHandler := handlers.NewTechnicianHandler(pinService)
	adminHandler := handlers.NewAdminHandler(withdrawalService, settlementService)

	// Initialize Gin
	r := gin.Default()

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"message": "Technician payout service",
		})
	})

	// Technician-facing routes
	r.POST("/withdrawals", withdrawalHandler.Create)
	r.GET("/withdrawals", withdrawalHandler.List)
	r.GET("/withdrawals/:ref", withdrawalHandler.Get)
	r.POST("/withdrawals/:ref/cancel", withdrawalHandler.Cancel)
	r.GET("/balance", withdrawalHandler.GetBalance)
	r.POST("/technicians/:id/pin", technicianHandler.SetPin)

	// Finance/admin routes
	r.GET("/admin/withdrawals", adminHandler.List)
	r.POST("/admin/withdrawals/:ref/process", adminHandler.Process)
	r.POST("/admin/withdrawals/:ref/settle", adminHandler.Settle)

	// Start Cron Schedulers
	settlementService.StartScheduler()

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Printf("HTTP Server starting on port %s", port)
	if err := r.Run(":" + port); err != nil {
		log.Fatal("Failed to start server: ", err)
	}
}
