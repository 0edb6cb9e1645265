package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/nimasrn/debt-ledger/internal/model"
	"github.com/nimasrn/debt-ledger/internal/repository"
	"github.com/shopspring/decimal"
)

type TransactionRepository interface {
	Create(ctx context.Context, txn *model.Transaction) (*model.Transaction, error)
	GetByCustomerID(ctx context.Context, customerID int64) ([]*model.Transaction, error)
	Delete(ctx context.Context, id int64) (bool, error)
	GetCustomerBalance(ctx context.Context, customerID int64) (decimal.Decimal, error)
	GetTotalBalance(ctx context.Context) (decimal.Decimal, error)
}

// DebtService records loans and payments and derives balances from them.
// Balances are always recomputed from the stored transactions.
type DebtService struct {
	customerRepo    CustomerRepository
	transactionRepo TransactionRepository
}

func NewDebtService(customerRepo CustomerRepository, transactionRepo TransactionRepository) *DebtService {
	return &DebtService{
		customerRepo:    customerRepo,
		transactionRepo: transactionRepo,
	}
}

func (s *DebtService) CalculateDebt(ctx context.Context, customerID int64) (decimal.Decimal, error) {
	if err := s.requireCustomer(ctx, customerID); err != nil {
		return decimal.Zero, err
	}
	balance, err := s.transactionRepo.GetCustomerBalance(ctx, customerID)
	if err != nil {
		return decimal.Zero, fmt.Errorf("calculate debt: %w", err)
	}
	return balance, nil
}

func (s *DebtService) AddLoan(ctx context.Context, customerID int64, amount decimal.Decimal, note string) (*model.Transaction, error) {
	return s.record(ctx, customerID, model.TransactionTypeLoan, amount, note)
}

// AddPayment records money received. Paying more than the current balance is
// allowed and leaves the customer with a credit.
func (s *DebtService) AddPayment(ctx context.Context, customerID int64, amount decimal.Decimal, note string) (*model.Transaction, error) {
	return s.record(ctx, customerID, model.TransactionTypePayment, amount, note)
}

func (s *DebtService) record(ctx context.Context, customerID int64, typ model.TransactionType, amount decimal.Decimal, note string) (*model.Transaction, error) {
	if err := s.requireCustomer(ctx, customerID); err != nil {
		return nil, err
	}
	if err := checkAmount(amount); err != nil {
		return nil, err
	}

	created, err := s.transactionRepo.Create(ctx, &model.Transaction{
		CustomerID: customerID,
		Amount:     amount,
		Type:       typ,
		Note:       strings.TrimSpace(note),
	})
	if err != nil {
		return nil, fmt.Errorf("create %s transaction: %w", strings.ToLower(string(typ)), err)
	}
	return created, nil
}

func (s *DebtService) GetCustomerHistory(ctx context.Context, customerID int64) ([]*model.Transaction, error) {
	if err := s.requireCustomer(ctx, customerID); err != nil {
		return nil, err
	}
	history, err := s.transactionRepo.GetByCustomerID(ctx, customerID)
	if err != nil {
		return nil, fmt.Errorf("get customer history: %w", err)
	}
	return history, nil
}

func (s *DebtService) DeleteTransaction(ctx context.Context, id int64) (bool, error) {
	deleted, err := s.transactionRepo.Delete(ctx, id)
	if err != nil {
		return false, fmt.Errorf("delete transaction: %w", err)
	}
	return deleted, nil
}

func (s *DebtService) GetSummary(ctx context.Context) (*model.LedgerSummary, error) {
	count, err := s.customerRepo.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("count customers: %w", err)
	}
	total, err := s.transactionRepo.GetTotalBalance(ctx)
	if err != nil {
		return nil, fmt.Errorf("total balance: %w", err)
	}
	return &model.LedgerSummary{CustomerCount: count, TotalDebt: total}, nil
}

// ListCustomerBalances pairs every customer, newest first, with its balance.
func (s *DebtService) ListCustomerBalances(ctx context.Context) ([]*model.CustomerBalance, error) {
	customers, err := s.customerRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list customers: %w", err)
	}

	balances := make([]*model.CustomerBalance, 0, len(customers))
	for _, c := range customers {
		balance, err := s.transactionRepo.GetCustomerBalance(ctx, c.ID)
		if err != nil {
			return nil, fmt.Errorf("balance of customer %d: %w", c.ID, err)
		}
		balances = append(balances, &model.CustomerBalance{Customer: c, Balance: balance})
	}
	return balances, nil
}

func checkAmount(amount decimal.Decimal) error {
	switch {
	case !amount.IsPositive():
		return ErrAmountNotPositive
	case amount.GreaterThan(model.MaxAmount):
		return ErrAmountTooLarge
	case !amount.Equal(amount.Truncate(model.AmountScale)):
		return ErrAmountTooPrecise
	}
	return nil
}

func (s *DebtService) requireCustomer(ctx context.Context, customerID int64) error {
	_, err := s.customerRepo.GetByID(ctx, customerID)
	if err == nil {
		return nil
	}
	if errors.Is(err, repository.ErrCustomerNotFound) {
		return fmt.Errorf("%w: id %d", ErrCustomerNotFound, customerID)
	}
	return fmt.Errorf("get customer: %w", err)
}
