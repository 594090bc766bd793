package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"fiado-backend/internal/models"
	"fiado-backend/internal/services"
	"fiado-backend/pkg/utils"

	"github.com/gorilla/mux"
)

// LedgerHandler exposes purchases, payments and the derived views.
type LedgerHandler struct {
	Service *services.LedgerService
}

func NewLedgerHandler(s *services.LedgerService) *LedgerHandler {
	return &LedgerHandler{Service: s}
}

// AddPurchase records a credit sale for a customer.
// POST /api/customers/{id}/purchases
func (h *LedgerHandler) AddPurchase(w http.ResponseWriter, r *http.Request) {
	customerID, _ := strconv.Atoi(mux.Vars(r)["id"])

	var req models.CreatePurchaseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	purchase, err := h.Service.AddPurchase(r.Context(), customerID, &req)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	utils.JSON(w, http.StatusCreated, purchase)
}

// AddPayment records a payment for a customer.
// POST /api/customers/{id}/payments
func (h *LedgerHandler) AddPayment(w http.ResponseWriter, r *http.Request) {
	customerID, _ := strconv.Atoi(mux.Vars(r)["id"])

	var req models.CreatePaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	payment, err := h.Service.AddPayment(r.Context(), customerID, &req)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	utils.JSON(w, http.StatusCreated, payment)
}

// GetBalance returns a customer's outstanding balance.
// GET /api/customers/{id}/balance
func (h *LedgerHandler) GetBalance(w http.ResponseWriter, r *http.Request) {
	customerID, _ := strconv.Atoi(mux.Vars(r)["id"])

	balance, err := h.Service.ComputeBalance(r.Context(), customerID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	utils.JSON(w, http.StatusOK, map[string]float64{"balance": balance})
}

// GetHistory returns a customer's merged audit trail, newest first.
// GET /api/customers/{id}/history
func (h *LedgerHandler) GetHistory(w http.ResponseWriter, r *http.Request) {
	customerID, _ := strconv.Atoi(mux.Vars(r)["id"])

	history, err := h.Service.GetHistory(r.Context(), customerID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if history == nil {
		history = []models.HistoryEntry{}
	}

	utils.JSON(w, http.StatusOK, history)
}

// GetStatistics returns the system-wide aggregates.
// GET /api/statistics
func (h *LedgerHandler) GetStatistics(w http.ResponseWriter, r *http.Request) {
	stats, err := h.Service.GetStatistics(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}

	utils.JSON(w, http.StatusOK, stats)
}

// ListDebtors returns active customers that still owe money.
// GET /api/debtors
func (h *LedgerHandler) ListDebtors(w http.ResponseWriter, r *http.Request) {
	debtors, err := h.Service.ListCustomersWithDebt(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if debtors == nil {
		debtors = []models.DebtorSummary{}
	}

	utils.JSON(w, http.StatusOK, debtors)
}
