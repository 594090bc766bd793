package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"fiado-backend/internal/config"
	"fiado-backend/internal/database"
	"fiado-backend/internal/db"
	"fiado-backend/internal/handlers"
	"fiado-backend/internal/health"
	h "fiado-backend/internal/http"
	"fiado-backend/internal/metrics"
	"fiado-backend/internal/middleware"
	"fiado-backend/internal/notify"
	"fiado-backend/internal/repositories"
	"fiado-backend/internal/services"
)

func main() {
	log.Println("==================================================")
	log.Println("  FiadoFacil - informal credit ledger")
	log.Println("==================================================")

	cfg := config.Load()

	// Open the store and bring the schema up to date
	store := db.Connect(cfg)
	defer store.Close()

	migrator := database.NewMigrator(store)
	if err := migrator.RunMigrations(context.Background()); err != nil {
		log.Fatalf("migrations failed: %v", err)
	}

	// Change feed: metrics ride the same listener interface the
	// presentation layer subscribes to
	hub := notify.NewHub()
	hub.AddListener(func(evt notify.LedgerEvent) {
		metrics.LedgerMutationsTotal.WithLabelValues(string(evt.Type)).Inc()
	})
	go hub.Run()

	// Repositories
	customerRepo := repositories.NewCustomerRepository(store)
	purchaseRepo := repositories.NewPurchaseRepository(store)
	paymentRepo := repositories.NewPaymentRepository(store)
	ledgerRepo := repositories.NewLedgerRepository(store)

	// Services
	customerService := services.NewCustomerService(customerRepo, cfg, hub)
	ledgerService := services.NewLedgerService(purchaseRepo, paymentRepo, ledgerRepo, hub)
	backupService := services.NewBackupService(cfg)
	exportService := services.NewExportService(cfg, customerRepo, ledgerRepo)

	// Backup on startup; a failed backup never blocks the session
	if cfg.Backup.Auto {
		if _, err := backupService.Run(context.Background()); err != nil {
			log.Printf("[Backup] Startup backup failed: %v", err)
		}
	}

	// Handlers
	customerHandler := handlers.NewCustomerHandler(customerService)
	ledgerHandler := handlers.NewLedgerHandler(ledgerService)
	exportHandler := handlers.NewExportHandler(exportService)
	backupHandler := handlers.NewBackupHandler(backupService)
	settingsHandler := handlers.NewSettingsHandler(cfg)
	eventsHandler := handlers.NewEventsHandler(hub)
	healthChecker := health.NewHealthChecker(store, cfg.Database.Path)
	healthHandler := handlers.NewHealthHandler(healthChecker)

	router := h.NewRouter(
		customerHandler,
		ledgerHandler,
		exportHandler,
		backupHandler,
		settingsHandler,
		eventsHandler,
		healthHandler,
	)

	handler := middleware.PanicRecovery(
		middleware.NewCORS(cfg)(
			middleware.MetricsMiddleware(router),
		),
	)

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	server := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
	}

	go func() {
		log.Printf("[Server] Listening on %s", addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server failed: %v", err)
		}
	}()

	// Wait for shutdown signal
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	log.Println("[Server] Shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Printf("[Server] Shutdown error: %v", err)
	}

	hub.Close()

	// Backup on exit mirrors the backup on start
	if cfg.Backup.Auto {
		if _, err := backupService.Run(context.Background()); err != nil {
			log.Printf("[Backup] Exit backup failed: %v", err)
		}
	}

	log.Println("[Server] Bye")
}
