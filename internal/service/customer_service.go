package service

import (
	"context"
	"fmt"

	"backend/internal/model"
	"backend/internal/repository"
)

type CreateCustomerRequest struct {
	Name     string `json:"name" binding:"required"`
	Phone    string `json:"phone"`
	Email    string `json:"email" binding:"omitempty,email"`
	Address  string `json:"address"`
	Notes    string `json:"notes"`
	BranchID *uint  `json:"branch_id"`
}

type UpdateCustomerRequest struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Email   string `json:"email" binding:"omitempty,email"`
	Address string `json:"address"`
	Notes   string `json:"notes"`
	Active  *bool  `json:"active"`
}

// CustomerDetail bundles a customer with the aggregates derived from bills
type CustomerDetail struct {
	model.Customer
	Stats model.CustomerStats `json:"stats"`
}

type CustomerService interface {
	Create(ctx context.Context, actor string, req CreateCustomerRequest) (*model.Customer, error)
	Get(ctx context.Context, id uint) (*CustomerDetail, error)
	List(ctx context.Context, branchID *uint, search string, page, limit int) ([]model.Customer, int64, error)
	Update(ctx context.Context, actor string, id uint, req UpdateCustomerRequest) (*model.Customer, error)
	Delete(ctx context.Context, actor string, id uint) error
}

type customerService struct {
	customerRepo repository.CustomerRepository
	billRepo     repository.BillRepository
	txManager    repository.TransactionManager
	notifier     *Notifier
}

func NewCustomerService(
	customerRepo repository.CustomerRepository,
	billRepo repository.BillRepository,
	txManager repository.TransactionManager,
	notifier *Notifier,
) CustomerService {
	return &customerService{
		customerRepo: customerRepo,
		billRepo:     billRepo,
		txManager:    txManager,
		notifier:     notifier,
	}
}

func (s *customerService) Create(ctx context.Context, actor string, req CreateCustomerRequest) (*model.Customer, error) {
	customer := model.Customer{
		Name:     req.Name,
		Phone:    req.Phone,
		Email:    req.Email,
		Address:  req.Address,
		Notes:    req.Notes,
		BranchID: req.BranchID,
		Active:   true,
	}

	err := s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.customerRepo.Create(txCtx, &customer); err != nil {
			return fmt.Errorf("failed to create customer: %w", err)
		}
		notif := entityChanged(model.NotifCustomer, "created", "تم إنشاء", customer.Name)
		notif.ActorName = actor
		return s.notifier.Append(txCtx, notif)
	})
	if err != nil {
		return nil, err
	}
	return &customer, nil
}

// Get returns the customer with total_visits and total_spent recomputed
// from bills. The aggregates are never persisted on the customer row so
// they cannot drift from the billing ledger.
func (s *customerService) Get(ctx context.Context, id uint) (*CustomerDetail, error) {
	customer, err := s.customerRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	stats, err := s.billRepo.StatsByCustomer(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to derive customer stats: %w", err)
	}
	return &CustomerDetail{Customer: *customer, Stats: stats}, nil
}

func (s *customerService) List(ctx context.Context, branchID *uint, search string, page, limit int) ([]model.Customer, int64, error) {
	if page <= 0 {
		page = 1
	}
	if limit <= 0 {
		limit = 20
	}
	return s.customerRepo.List(ctx, branchID, search, page, limit)
}

func (s *customerService) Update(ctx context.Context, actor string, id uint, req UpdateCustomerRequest) (*model.Customer, error) {
	customer, err := s.customerRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != "" {
		customer.Name = req.Name
	}
	if req.Phone != "" {
		customer.Phone = req.Phone
	}
	if req.Email != "" {
		customer.Email = req.Email
	}
	if req.Address != "" {
		customer.Address = req.Address
	}
	if req.Notes != "" {
		customer.Notes = req.Notes
	}
	if req.Active != nil {
		customer.Active = *req.Active
	}

	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.customerRepo.Update(txCtx, customer); err != nil {
			return fmt.Errorf("failed to update customer: %w", err)
		}
		notif := entityChanged(model.NotifCustomer, "updated", "تم تعديل", customer.Name)
		notif.ActorName = actor
		return s.notifier.Append(txCtx, notif)
	})
	if err != nil {
		return nil, err
	}
	return customer, nil
}

func (s *customerService) Delete(ctx context.Context, actor string, id uint) error {
	customer, err := s.customerRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	return s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.customerRepo.Delete(txCtx, id); err != nil {
			return fmt.Errorf("failed to delete customer: %w", err)
		}
		notif := entityChanged(model.NotifCustomer, "deleted", "تم حذف", customer.Name)
		notif.ActorName = actor
		return s.notifier.Append(txCtx, notif)
	})
}
