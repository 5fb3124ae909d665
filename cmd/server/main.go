package main

import (
	"context"
	"fmt"
	"log"
	nethttp "net/http"
	"time"

	"po-backend/internal/auth"
	"po-backend/internal/cache"
	"po-backend/internal/config"
	"po-backend/internal/database"
	"po-backend/internal/db"
	"po-backend/internal/handlers"
	"po-backend/internal/health"
	"po-backend/internal/http"
	"po-backend/internal/middleware"
	"po-backend/internal/monitoring"
	"po-backend/internal/repositories"
	"po-backend/internal/services"
	"po-backend/internal/storage"
	"po-backend/migrations"
)

func main() {
	cfg := config.Load()

	pool := db.Connect(cfg)
	defer pool.Close()
	log.Println("[Database] Connected")

	// Redis is optional; the cache degrades to no-ops without it
	if err := cache.Init(); err != nil {
		log.Printf("[Redis] Cache unavailable, continuing without it: %v", err)
	}

	migrationCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	migrator := database.NewMigrator(pool, migrations.FS, ".")
	if err := migrator.RunMigrations(migrationCtx); err != nil {
		cancel()
		log.Fatalf("Migration failed: %v", err)
	}
	cancel()

	// Attachment storage is optional too; invoice uploads without a
	// configured bucket simply skip the file part
	var attachmentStore *storage.AttachmentStore
	if cfg.Storage.AccessKey != "" {
		store, err := storage.NewAttachmentStore(context.Background(), cfg)
		if err != nil {
			log.Printf("[Storage] Attachment store unavailable: %v", err)
		} else {
			attachmentStore = store
			log.Printf("[Storage] Attachment bucket: %s", cfg.Storage.Bucket)
		}
	} else {
		log.Println("[Storage] No S3 credentials, attachments disabled")
	}

	go monitoring.NewMonitoringServer(pool, 9090).Start()

	jwtManager := auth.NewJWTManager(cfg)

	// Repositories
	userRepo := repositories.NewUserRepository(pool)
	vendorRepo := repositories.NewVendorRepository(pool)
	itemRepo := repositories.NewItemRepository(pool)
	projectRepo := repositories.NewProjectRepository(pool)
	orderRepo := repositories.NewPurchaseOrderRepository(pool)
	invoiceRepo := repositories.NewInvoiceRepository(pool)
	receiptRepo := repositories.NewItemReceiptRepository(pool)
	verificationLogRepo := repositories.NewVerificationLogRepository(pool)
	loginLogRepo := repositories.NewLoginLogRepository(pool)
	actionLogRepo := repositories.NewAdminActionLogRepository(pool)
	settingRepo := repositories.NewSystemSettingRepository(pool)
	totpRepo := repositories.NewTOTPRepository(pool)

	// Services
	userService := services.NewUserService(userRepo, totpRepo, loginLogRepo, actionLogRepo, jwtManager)
	totpService := services.NewTOTPService(userRepo, totpRepo)
	orderService := services.NewOrderService(orderRepo, receiptRepo, verificationLogRepo)
	invoiceService := services.NewInvoiceService(invoiceRepo, orderRepo, verificationLogRepo,
		actionLogRepo, settingRepo, attachmentStore)
	receiptService := services.NewReceiptService(receiptRepo, orderRepo, verificationLogRepo)
	reportService := services.NewReportService(orderRepo, invoiceRepo)
	settingService := services.NewSystemSettingService(settingRepo)

	// Handlers
	authHandler := handlers.NewAuthHandler(userService, totpService)
	userHandler := handlers.NewUserHandler(userService)
	vendorHandler := handlers.NewVendorHandler(vendorRepo)
	itemHandler := handlers.NewItemHandler(itemRepo)
	projectHandler := handlers.NewProjectHandler(projectRepo)
	orderHandler := handlers.NewOrderHandler(orderService, reportService)
	invoiceHandler := handlers.NewInvoiceHandler(invoiceService)
	receiptHandler := handlers.NewItemReceiptHandler(receiptService)
	verificationLogHandler := handlers.NewVerificationLogHandler(verificationLogRepo)
	loginLogHandler := handlers.NewLoginLogHandler(loginLogRepo)
	actionLogHandler := handlers.NewAdminActionLogHandler(actionLogRepo)
	settingHandler := handlers.NewSystemSettingHandler(settingService)
	totpHandler := handlers.NewTOTPHandler(totpService, userService)
	healthHandler := handlers.NewHealthHandler(health.NewHealthChecker(pool))

	authMiddleware := middleware.NewAuthMiddleware(jwtManager, userRepo)

	router := http.NewRouter(
		authHandler,
		userHandler,
		vendorHandler,
		itemHandler,
		projectHandler,
		orderHandler,
		invoiceHandler,
		receiptHandler,
		verificationLogHandler,
		loginLogHandler,
		actionLogHandler,
		settingHandler,
		totpHandler,
		healthHandler,
		authMiddleware,
	)

	corsMiddleware := middleware.NewCORS(cfg)
	handler := middleware.PanicRecovery(middleware.MetricsMiddleware(corsMiddleware(router)))

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	log.Printf("[Server] Listening on %s", addr)
	log.Fatal(nethttp.ListenAndServe(addr, handler))
}
