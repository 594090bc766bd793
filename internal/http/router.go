package http

import (
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"fiado-backend/internal/handlers"
)

// NewRouter wires the presentation-facing API. Every route returns plain
// data; rendering is the caller's concern.
func NewRouter(
	customerHandler *handlers.CustomerHandler,
	ledgerHandler *handlers.LedgerHandler,
	exportHandler *handlers.ExportHandler,
	backupHandler *handlers.BackupHandler,
	settingsHandler *handlers.SettingsHandler,
	eventsHandler *handlers.EventsHandler,
	healthHandler *handlers.HealthHandler,
) *mux.Router {
	r := mux.NewRouter()

	// Customers
	customersAPI := r.PathPrefix("/api/customers").Subrouter()
	customersAPI.HandleFunc("", customerHandler.FindCustomers).Methods("GET")
	customersAPI.HandleFunc("", customerHandler.RegisterCustomer).Methods("POST")
	customersAPI.HandleFunc("/{id}", customerHandler.GetCustomer).Methods("GET")
	customersAPI.HandleFunc("/{id}", customerHandler.UpdateCustomer).Methods("PUT")
	customersAPI.HandleFunc("/{id}", customerHandler.DeactivateCustomer).Methods("DELETE")

	// Ledger operations per customer
	customersAPI.HandleFunc("/{id}/purchases", ledgerHandler.AddPurchase).Methods("POST")
	customersAPI.HandleFunc("/{id}/payments", ledgerHandler.AddPayment).Methods("POST")
	customersAPI.HandleFunc("/{id}/balance", ledgerHandler.GetBalance).Methods("GET")
	customersAPI.HandleFunc("/{id}/history", ledgerHandler.GetHistory).Methods("GET")

	// Aggregates
	r.HandleFunc("/api/statistics", ledgerHandler.GetStatistics).Methods("GET")
	r.HandleFunc("/api/debtors", ledgerHandler.ListDebtors).Methods("GET")

	// Collaborators: export, backup, settings, change feed
	r.HandleFunc("/api/export/csv", exportHandler.ExportCSV).Methods("GET")
	r.HandleFunc("/api/export/pdf", exportHandler.ExportBulkPDF).Methods("GET")
	r.HandleFunc("/api/export/pdf/{id}", exportHandler.ExportCustomerPDF).Methods("GET")
	r.HandleFunc("/api/backup", backupHandler.TriggerBackup).Methods("POST")
	r.HandleFunc("/api/settings", settingsHandler.GetSettings).Methods("GET")
	r.HandleFunc("/api/events", eventsHandler.Subscribe).Methods("GET")

	// Health endpoints
	r.HandleFunc("/health", healthHandler.BasicHealth).Methods("GET")
	r.HandleFunc("/health/detailed", healthHandler.DetailedHealth).Methods("GET")

	// Metrics endpoint (Prometheus format)
	r.Handle("/metrics", promhttp.Handler())

	return r
}
