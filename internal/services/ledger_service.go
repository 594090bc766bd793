package services

import (
	"context"

	"fiado-backend/internal/models"
	"fiado-backend/internal/notify"
	"fiado-backend/internal/repositories"
	"fiado-backend/internal/timeutil"
)

// LedgerService owns purchases, payments and the derived views. Validation
// happens here, before the store; the store surfaces its own errors instead
// of swallowing them into zero values.
type LedgerService struct {
	PurchaseRepo *repositories.PurchaseRepository
	PaymentRepo  *repositories.PaymentRepository
	LedgerRepo   *repositories.LedgerRepository
	Hub          *notify.Hub
}

func NewLedgerService(
	purchaseRepo *repositories.PurchaseRepository,
	paymentRepo *repositories.PaymentRepository,
	ledgerRepo *repositories.LedgerRepository,
	hub *notify.Hub,
) *LedgerService {
	return &LedgerService{
		PurchaseRepo: purchaseRepo,
		PaymentRepo:  paymentRepo,
		LedgerRepo:   ledgerRepo,
		Hub:          hub,
	}
}

// AddPurchase records a credit sale. No credit-limit enforcement: the limit
// is informational and the presentation layer decides what to warn about.
func (s *LedgerService) AddPurchase(ctx context.Context, customerID int, req *models.CreatePurchaseRequest) (*models.Purchase, error) {
	if req.Amount <= 0 {
		return nil, models.ErrInvalidAmount
	}
	if err := s.requireCustomer(ctx, customerID); err != nil {
		return nil, err
	}

	purchase := &models.Purchase{
		CustomerID:  customerID,
		Description: req.Description,
		Amount:      req.Amount,
	}
	if err := s.PurchaseRepo.Create(ctx, purchase); err != nil {
		return nil, err
	}

	s.publish(notify.EventPurchaseAdded, customerID)
	return purchase, nil
}

// AddPayment records a payment. Overpayment is permitted; the balance floor
// absorbs it.
func (s *LedgerService) AddPayment(ctx context.Context, customerID int, req *models.CreatePaymentRequest) (*models.Payment, error) {
	if req.Amount <= 0 {
		return nil, models.ErrInvalidAmount
	}
	if err := s.requireCustomer(ctx, customerID); err != nil {
		return nil, err
	}

	payment := &models.Payment{
		CustomerID: customerID,
		Amount:     req.Amount,
		Note:       req.Note,
	}
	if err := s.PaymentRepo.Create(ctx, payment); err != nil {
		return nil, err
	}

	s.publish(notify.EventPaymentAdded, customerID)
	return payment, nil
}

func (s *LedgerService) ComputeBalance(ctx context.Context, customerID int) (float64, error) {
	if err := s.requireCustomer(ctx, customerID); err != nil {
		return 0, err
	}
	return s.LedgerRepo.GetBalance(ctx, customerID)
}

func (s *LedgerService) GetHistory(ctx context.Context, customerID int) ([]models.HistoryEntry, error) {
	if err := s.requireCustomer(ctx, customerID); err != nil {
		return nil, err
	}
	return s.LedgerRepo.GetHistory(ctx, customerID)
}

func (s *LedgerService) GetStatistics(ctx context.Context) (*models.Statistics, error) {
	return s.LedgerRepo.GetStatistics(ctx)
}

func (s *LedgerService) ListCustomersWithDebt(ctx context.Context) ([]models.DebtorSummary, error) {
	return s.LedgerRepo.GetDebtors(ctx)
}

func (s *LedgerService) requireCustomer(ctx context.Context, customerID int) error {
	exists, err := s.LedgerRepo.CustomerExists(ctx, customerID)
	if err != nil {
		return err
	}
	if !exists {
		return models.ErrCustomerNotFound
	}
	return nil
}

func (s *LedgerService) publish(t notify.EventType, customerID int) {
	if s.Hub != nil {
		s.Hub.Publish(notify.LedgerEvent{Type: t, CustomerID: customerID, At: timeutil.Now()})
	}
}
