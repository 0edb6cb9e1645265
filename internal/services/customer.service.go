package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/nimasrn/debt-ledger/internal/model"
	"github.com/nimasrn/debt-ledger/internal/repository"
)

type CustomerRepository interface {
	Create(ctx context.Context, customer *model.Customer) (*model.Customer, error)
	GetByID(ctx context.Context, id int64) (*model.Customer, error)
	GetAll(ctx context.Context) ([]*model.Customer, error)
	Update(ctx context.Context, customer *model.Customer) (bool, error)
	Delete(ctx context.Context, id int64) (bool, error)
	Count(ctx context.Context) (int64, error)
}

type CustomerService struct {
	customerRepo CustomerRepository
}

func NewCustomerService(customerRepo CustomerRepository) *CustomerService {
	return &CustomerService{
		customerRepo: customerRepo,
	}
}

func (s *CustomerService) CreateCustomer(ctx context.Context, in model.CustomerInput) (*model.Customer, error) {
	in = in.Normalize()
	if in.Name == "" {
		return nil, ErrEmptyName
	}

	created, err := s.customerRepo.Create(ctx, &model.Customer{
		Name:    in.Name,
		Phone:   in.Phone,
		Address: in.Address,
	})
	if err != nil {
		return nil, fmt.Errorf("create customer: %w", err)
	}
	return created, nil
}

// UpdateCustomer overwrites every editable field. It reports false when the
// customer does not exist.
func (s *CustomerService) UpdateCustomer(ctx context.Context, id int64, in model.CustomerInput) (bool, error) {
	if id <= 0 {
		return false, ErrInvalidCustomerID
	}
	in = in.Normalize()
	if in.Name == "" {
		return false, ErrEmptyName
	}

	updated, err := s.customerRepo.Update(ctx, &model.Customer{
		ID:      id,
		Name:    in.Name,
		Phone:   in.Phone,
		Address: in.Address,
	})
	if err != nil {
		return false, fmt.Errorf("update customer: %w", err)
	}
	return updated, nil
}

func (s *CustomerService) DeleteCustomer(ctx context.Context, id int64) (bool, error) {
	deleted, err := s.customerRepo.Delete(ctx, id)
	if err != nil {
		return false, fmt.Errorf("delete customer: %w", err)
	}
	return deleted, nil
}

func (s *CustomerService) GetCustomer(ctx context.Context, id int64) (*model.Customer, error) {
	customer, err := s.customerRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrCustomerNotFound) {
			return nil, ErrCustomerNotFound
		}
		return nil, fmt.Errorf("get customer: %w", err)
	}
	return customer, nil
}

func (s *CustomerService) ListCustomers(ctx context.Context) ([]*model.Customer, error) {
	customers, err := s.customerRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list customers: %w", err)
	}
	return customers, nil
}
