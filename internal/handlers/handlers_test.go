package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"fiado-backend/internal/config"
	"fiado-backend/internal/database"
	"fiado-backend/internal/db"
	"fiado-backend/internal/handlers"
	"fiado-backend/internal/health"
	fiadohttp "fiado-backend/internal/http"
	"fiado-backend/internal/models"
	"fiado-backend/internal/notify"
	"fiado-backend/internal/repositories"
	"fiado-backend/internal/services"

	"github.com/gorilla/mux"
)

func newTestServer(t *testing.T) *mux.Router {
	t.Helper()

	dir := t.TempDir()
	storePath := filepath.Join(dir, "fiado.db")
	store, err := db.Open(storePath)
	if err != nil {
		t.Fatalf("Open() error: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	if err := database.NewMigrator(store).RunMigrations(context.Background()); err != nil {
		t.Fatalf("RunMigrations() error: %v", err)
	}

	cfg := &config.Config{}
	cfg.Company.Name = "Test Store"
	cfg.DefaultCreditLimit = 500
	cfg.Database.Path = storePath
	cfg.Backup.Dir = filepath.Join(dir, "backups")

	customerRepo := repositories.NewCustomerRepository(store)
	purchaseRepo := repositories.NewPurchaseRepository(store)
	paymentRepo := repositories.NewPaymentRepository(store)
	ledgerRepo := repositories.NewLedgerRepository(store)

	hub := notify.NewHub()
	go hub.Run()
	t.Cleanup(hub.Close)

	customerService := services.NewCustomerService(customerRepo, cfg, hub)
	ledgerService := services.NewLedgerService(purchaseRepo, paymentRepo, ledgerRepo, hub)
	exportService := services.NewExportService(cfg, customerRepo, ledgerRepo)
	backupService := services.NewBackupService(cfg)

	return fiadohttp.NewRouter(
		handlers.NewCustomerHandler(customerService),
		handlers.NewLedgerHandler(ledgerService),
		handlers.NewExportHandler(exportService),
		handlers.NewBackupHandler(backupService),
		handlers.NewSettingsHandler(cfg),
		handlers.NewEventsHandler(hub),
		handlers.NewHealthHandler(health.NewHealthChecker(store, storePath)),
	)
}

func doJSON(t *testing.T, router *mux.Router, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func createCustomer(t *testing.T, router *mux.Router, name string) models.Customer {
	t.Helper()
	rec := doJSON(t, router, "POST", "/api/customers", map[string]any{"name": name})
	if rec.Code != http.StatusCreated {
		t.Fatalf("POST /api/customers = %d, body %s", rec.Code, rec.Body.String())
	}
	var c models.Customer
	if err := json.Unmarshal(rec.Body.Bytes(), &c); err != nil {
		t.Fatalf("decode customer: %v", err)
	}
	return c
}

// ─── Customers ──────────────────────────────────────────────────────────────

func TestAPI_RegisterCustomer(t *testing.T) {
	router := newTestServer(t)

	c := createCustomer(t, router, "Ana Silva")
	if c.ID == 0 || c.Name != "Ana Silva" {
		t.Errorf("customer = %+v", c)
	}
	if c.CreditLimit != 500 {
		t.Errorf("CreditLimit = %v, want default 500", c.CreditLimit)
	}
}

func TestAPI_RegisterCustomer_Validation(t *testing.T) {
	router := newTestServer(t)

	rec := doJSON(t, router, "POST", "/api/customers", map[string]any{"name": "  "})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("blank name = %d, want 400", rec.Code)
	}

	rec = doJSON(t, router, "POST", "/api/customers", map[string]any{"name": "Ana", "credit_limit": -5})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("negative limit = %d, want 400", rec.Code)
	}
}

func TestAPI_GetCustomer_NotFound(t *testing.T) {
	router := newTestServer(t)

	rec := doJSON(t, router, "GET", "/api/customers/4242", nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("GET unknown customer = %d, want 404", rec.Code)
	}
}

func TestAPI_FindCustomers(t *testing.T) {
	router := newTestServer(t)
	createCustomer(t, router, "Ana Silva")
	createCustomer(t, router, "Bruno Costa")

	rec := doJSON(t, router, "GET", "/api/customers?q=ana", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("GET /api/customers = %d", rec.Code)
	}
	var found []models.Customer
	if err := json.Unmarshal(rec.Body.Bytes(), &found); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(found) != 1 || found[0].Name != "Ana Silva" {
		t.Errorf("found = %+v, want only Ana Silva", found)
	}
}

func TestAPI_FindCustomers_EmptyIsJSONArray(t *testing.T) {
	router := newTestServer(t)

	rec := doJSON(t, router, "GET", "/api/customers", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("GET /api/customers = %d", rec.Code)
	}
	if got := rec.Body.String(); got != "[]\n" && got != "[]" {
		t.Errorf("empty list body = %q, want JSON array", got)
	}
}

func TestAPI_UpdateCustomer_UnknownIDIs204(t *testing.T) {
	router := newTestServer(t)

	rec := doJSON(t, router, "PUT", "/api/customers/4242", map[string]any{
		"name": "Nobody", "phone": "", "credit_limit": 100,
	})
	if rec.Code != http.StatusNoContent {
		t.Errorf("PUT unknown customer = %d, want 204 (silent no-op)", rec.Code)
	}
}

func TestAPI_DeactivateCustomer(t *testing.T) {
	router := newTestServer(t)
	c := createCustomer(t, router, "Ana")

	rec := doJSON(t, router, "DELETE", fmt.Sprintf("/api/customers/%d", c.ID), nil)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("DELETE = %d, want 204", rec.Code)
	}

	// Still readable by id, gone from search
	rec = doJSON(t, router, "GET", fmt.Sprintf("/api/customers/%d", c.ID), nil)
	if rec.Code != http.StatusOK {
		t.Errorf("GET after deactivate = %d, want 200", rec.Code)
	}
	rec = doJSON(t, router, "GET", "/api/customers", nil)
	var found []models.Customer
	json.Unmarshal(rec.Body.Bytes(), &found)
	if len(found) != 0 {
		t.Errorf("search after deactivate returned %d customers, want 0", len(found))
	}
}

// ─── Ledger ─────────────────────────────────────────────────────────────────

func TestAPI_PurchasePaymentBalanceFlow(t *testing.T) {
	router := newTestServer(t)
	c := createCustomer(t, router, "Ana")

	rec := doJSON(t, router, "POST", fmt.Sprintf("/api/customers/%d/purchases", c.ID), map[string]any{
		"description": "rice", "amount": 50,
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("POST purchase = %d, body %s", rec.Code, rec.Body.String())
	}

	rec = doJSON(t, router, "POST", fmt.Sprintf("/api/customers/%d/payments", c.ID), map[string]any{
		"amount": 20, "note": "cash",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("POST payment = %d, body %s", rec.Code, rec.Body.String())
	}

	rec = doJSON(t, router, "GET", fmt.Sprintf("/api/customers/%d/balance", c.ID), nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("GET balance = %d", rec.Code)
	}
	var balance map[string]float64
	if err := json.Unmarshal(rec.Body.Bytes(), &balance); err != nil {
		t.Fatalf("decode balance: %v", err)
	}
	if balance["balance"] != 30 {
		t.Errorf("balance = %v, want 30", balance["balance"])
	}

	rec = doJSON(t, router, "GET", fmt.Sprintf("/api/customers/%d/history", c.ID), nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("GET history = %d", rec.Code)
	}
	var history []models.HistoryEntry
	if err := json.Unmarshal(rec.Body.Bytes(), &history); err != nil {
		t.Fatalf("decode history: %v", err)
	}
	if len(history) != 2 {
		t.Fatalf("history has %d entries, want 2", len(history))
	}
	if history[0].Kind != models.HistoryKindPayment || history[1].Kind != models.HistoryKindPurchase {
		t.Errorf("history order = [%s, %s], want [payment, purchase]", history[0].Kind, history[1].Kind)
	}
}

func TestAPI_AddPurchase_Validation(t *testing.T) {
	router := newTestServer(t)
	c := createCustomer(t, router, "Ana")

	rec := doJSON(t, router, "POST", fmt.Sprintf("/api/customers/%d/purchases", c.ID), map[string]any{
		"description": "free", "amount": 0,
	})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("zero amount = %d, want 400", rec.Code)
	}

	rec = doJSON(t, router, "POST", "/api/customers/4242/purchases", map[string]any{
		"description": "ghost", "amount": 10,
	})
	if rec.Code != http.StatusNotFound {
		t.Errorf("unknown customer = %d, want 404", rec.Code)
	}
}

func TestAPI_Statistics(t *testing.T) {
	router := newTestServer(t)
	c := createCustomer(t, router, "Ana")
	doJSON(t, router, "POST", fmt.Sprintf("/api/customers/%d/purchases", c.ID), map[string]any{
		"description": "rice", "amount": 100,
	})
	doJSON(t, router, "POST", fmt.Sprintf("/api/customers/%d/payments", c.ID), map[string]any{
		"amount": 40,
	})

	rec := doJSON(t, router, "GET", "/api/statistics", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("GET statistics = %d", rec.Code)
	}
	var stats models.Statistics
	if err := json.Unmarshal(rec.Body.Bytes(), &stats); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if stats.ActiveCustomerCount != 1 || stats.TotalPurchases != 100 || stats.TotalPayments != 40 || stats.TotalOutstanding != 60 {
		t.Errorf("stats = %+v", stats)
	}
}

func TestAPI_Debtors(t *testing.T) {
	router := newTestServer(t)
	ana := createCustomer(t, router, "Ana")
	createCustomer(t, router, "Bruno")

	doJSON(t, router, "POST", fmt.Sprintf("/api/customers/%d/purchases", ana.ID), map[string]any{
		"description": "rice", "amount": 75,
	})

	rec := doJSON(t, router, "GET", "/api/debtors", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("GET debtors = %d", rec.Code)
	}
	var debtors []models.DebtorSummary
	if err := json.Unmarshal(rec.Body.Bytes(), &debtors); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(debtors) != 1 || debtors[0].Name != "Ana" || debtors[0].Balance != 75 {
		t.Errorf("debtors = %+v", debtors)
	}
}

// ─── Collaborators ──────────────────────────────────────────────────────────

func TestAPI_ExportCSV(t *testing.T) {
	router := newTestServer(t)
	c := createCustomer(t, router, "Ana")
	doJSON(t, router, "POST", fmt.Sprintf("/api/customers/%d/purchases", c.ID), map[string]any{
		"description": "rice", "amount": 50,
	})

	rec := doJSON(t, router, "GET", "/api/export/csv", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("GET export/csv = %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "text/csv" {
		t.Errorf("Content-Type = %q, want text/csv", ct)
	}
	if !bytes.Contains(rec.Body.Bytes(), []byte("Ana")) {
		t.Error("CSV missing customer name")
	}
}

func TestAPI_ExportCustomerPDF(t *testing.T) {
	router := newTestServer(t)
	c := createCustomer(t, router, "Ana")

	rec := doJSON(t, router, "GET", fmt.Sprintf("/api/export/pdf/%d", c.ID), nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("GET export/pdf/{id} = %d", rec.Code)
	}
	if !bytes.HasPrefix(rec.Body.Bytes(), []byte("%PDF")) {
		t.Error("response does not look like a PDF")
	}
}

func TestAPI_Settings(t *testing.T) {
	router := newTestServer(t)

	rec := doJSON(t, router, "GET", "/api/settings", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("GET settings = %d", rec.Code)
	}
	var settings map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &settings); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if settings["company"] == nil {
		t.Error("settings missing company block")
	}
	if settings["default_credit_limit"] != 500.0 {
		t.Errorf("default_credit_limit = %v, want 500", settings["default_credit_limit"])
	}
}

func TestAPI_Backup(t *testing.T) {
	router := newTestServer(t)

	rec := doJSON(t, router, "POST", "/api/backup", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("POST backup = %d, body %s", rec.Code, rec.Body.String())
	}
	var resp map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp["backup_file"] == "" {
		t.Error("response missing backup_file")
	}
}

func TestAPI_Health(t *testing.T) {
	router := newTestServer(t)

	rec := doJSON(t, router, "GET", "/health", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("GET health = %d", rec.Code)
	}
	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body["status"] != "healthy" {
		t.Errorf("status = %v, want healthy", body["status"])
	}
}
