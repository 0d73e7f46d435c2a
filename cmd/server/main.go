package main

import (
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"

	"billing-backend/internal/backup"
	"billing-backend/internal/config"
	"billing-backend/internal/directory"
	"billing-backend/internal/handlers"
	"billing-backend/internal/health"
	h "billing-backend/internal/http"
	"billing-backend/internal/middleware"
	"billing-backend/internal/monitoring"
	"billing-backend/internal/repositories"
	"billing-backend/internal/services"
)

func main() {
	// Parse command-line flags
	port := flag.Int("port", 0, "Server port (overrides config)")
	flag.Parse()

	// Load configuration
	cfg := config.Load()
	if *port != 0 {
		cfg.Server.Port = *port
	}

	// Ensure the data directory exists before anything touches it
	if err := os.MkdirAll(cfg.Data.Dir, 0755); err != nil {
		log.Fatalf("Failed to create data directory %s: %v", cfg.Data.Dir, err)
	}

	// Initialize repositories and load the directories once at startup.
	// Missing files mean a first run and start empty.
	customerRepo := repositories.NewCustomerRepository(cfg.CustomersPath())
	operatorRepo := repositories.NewOperatorRepository(cfg.OperatorsPath())

	customerRecords, err := customerRepo.Load()
	if err != nil {
		log.Fatalf("Failed to load customers: %v", err)
	}
	operatorRecords, err := operatorRepo.Load()
	if err != nil {
		log.Fatalf("Failed to load operators: %v", err)
	}

	customers := directory.NewCustomerDirectory(customerRecords)
	operators := directory.NewOperatorDirectory(operatorRecords)
	log.Printf("Loaded %d customers and %d operators from %s", customers.Len(), operators.Len(), cfg.Data.Dir)

	// Initialize services
	registrationService := services.NewRegistrationService(customers, customerRepo)
	customerService := services.NewCustomerService(customers, customerRepo)
	operatorService := services.NewOperatorService(operators, operatorRepo)
	billingService := services.NewBillingService(customers, operators, customerRepo, operatorRepo)
	reportService := services.NewReportService(customers, operators)

	// Initialize handlers
	customerHandler := handlers.NewCustomerHandler(customerService, registrationService)
	operatorHandler := handlers.NewOperatorHandler(operatorService)
	billingHandler := handlers.NewBillingHandler(billingService)
	reportHandler := handlers.NewReportHandler(reportService)

	healthChecker := health.NewHealthChecker(cfg.Data.Dir, customers, operators)
	healthHandler := handlers.NewHealthHandler(healthChecker)

	// Start monitoring dashboard server in background
	go monitoring.NewMonitoringServer(cfg.Monitoring.Port, cfg.Data.Dir, customers, operators).Start()

	// Start off-site backup scheduler when configured
	if cfg.Backup.Enabled {
		scheduler := backup.NewScheduler(cfg, cfg.CustomersPath(), cfg.OperatorsPath())
		scheduler.Start()
		defer scheduler.Stop()
	} else {
		log.Println("[Backup] Disabled (set BACKUP_ENABLED=true to enable)")
	}

	// Create router and wrap with panic recovery, metrics and CORS
	router := h.NewRouter(customerHandler, operatorHandler, billingHandler, reportHandler, healthHandler)
	corsMiddleware := middleware.NewCORS(cfg)
	handler := middleware.PanicRecovery(middleware.MetricsMiddleware(corsMiddleware(router)))

	// Start server
	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	log.Printf("Server running on %s", addr)
	if err := http.ListenAndServe(addr, handler); err != nil {
		log.Fatalf("Server failed to start: %v", err)
	}
}
