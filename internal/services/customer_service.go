package services

import (
	"context"
	"strings"

	"fiado-backend/internal/config"
	"fiado-backend/internal/models"
	"fiado-backend/internal/notify"
	"fiado-backend/internal/repositories"
	"fiado-backend/internal/timeutil"
)

type CustomerService struct {
	Repo *repositories.CustomerRepository
	Cfg  *config.Config
	Hub  *notify.Hub
}

func NewCustomerService(repo *repositories.CustomerRepository, cfg *config.Config, hub *notify.Hub) *CustomerService {
	return &CustomerService{Repo: repo, Cfg: cfg, Hub: hub}
}

// RegisterCustomer validates and registers a customer. The configured
// default credit limit is read at call time, so each customer keeps the
// default that was current when it was registered.
func (s *CustomerService) RegisterCustomer(ctx context.Context, req *models.CreateCustomerRequest) (*models.Customer, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, models.ErrNameRequired
	}

	limit := s.Cfg.DefaultCreditLimit
	if req.CreditLimit != nil {
		limit = *req.CreditLimit
	}
	if limit < 0 {
		return nil, models.ErrNegativeLimit
	}

	customer := &models.Customer{
		Name:        req.Name,
		Phone:       req.Phone,
		CreditLimit: limit,
	}
	if err := s.Repo.Create(ctx, customer); err != nil {
		return nil, err
	}

	s.publish(notify.EventCustomerRegistered, customer.ID)
	return customer, nil
}

func (s *CustomerService) GetCustomer(ctx context.Context, id int) (*models.Customer, error) {
	return s.Repo.Get(ctx, id)
}

func (s *CustomerService) FindCustomers(ctx context.Context, term string) ([]*models.Customer, error) {
	return s.Repo.Find(ctx, term)
}

// UpdateCustomer replaces a customer's mutable fields. An unknown id is a
// silent no-op per the store contract; callers are expected to have checked
// existence.
func (s *CustomerService) UpdateCustomer(ctx context.Context, id int, req *models.UpdateCustomerRequest) error {
	if strings.TrimSpace(req.Name) == "" {
		return models.ErrNameRequired
	}
	if req.CreditLimit < 0 {
		return models.ErrNegativeLimit
	}

	customer := &models.Customer{
		ID:          id,
		Name:        req.Name,
		Phone:       req.Phone,
		CreditLimit: req.CreditLimit,
	}
	affected, err := s.Repo.Update(ctx, customer)
	if err != nil {
		return err
	}
	if affected > 0 {
		s.publish(notify.EventCustomerUpdated, id)
	}
	return nil
}

// DeactivateCustomer soft-deletes a customer. Idempotent; unknown ids do not
// error.
func (s *CustomerService) DeactivateCustomer(ctx context.Context, id int) error {
	if err := s.Repo.Deactivate(ctx, id); err != nil {
		return err
	}
	s.publish(notify.EventCustomerDeactivated, id)
	return nil
}

func (s *CustomerService) publish(t notify.EventType, customerID int) {
	if s.Hub != nil {
		s.Hub.Publish(notify.LedgerEvent{Type: t, CustomerID: customerID, At: timeutil.Now()})
	}
}
