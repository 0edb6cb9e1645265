package controller

import (
	"context"
	"errors"
	"time"

	"github.com/nimasrn/debt-ledger/internal/model"
	"github.com/nimasrn/debt-ledger/internal/services"
	"github.com/nimasrn/debt-ledger/pkg/logger"
	"github.com/nimasrn/debt-ledger/pkg/prom"
	"github.com/shopspring/decimal"
	"golang.org/x/text/message"
)

type CustomerService interface {
	CreateCustomer(ctx context.Context, in model.CustomerInput) (*model.Customer, error)
	UpdateCustomer(ctx context.Context, id int64, in model.CustomerInput) (bool, error)
	DeleteCustomer(ctx context.Context, id int64) (bool, error)
	GetCustomer(ctx context.Context, id int64) (*model.Customer, error)
	ListCustomers(ctx context.Context) ([]*model.Customer, error)
}

type DebtService interface {
	CalculateDebt(ctx context.Context, customerID int64) (decimal.Decimal, error)
	AddLoan(ctx context.Context, customerID int64, amount decimal.Decimal, note string) (*model.Transaction, error)
	AddPayment(ctx context.Context, customerID int64, amount decimal.Decimal, note string) (*model.Transaction, error)
	GetCustomerHistory(ctx context.Context, customerID int64) ([]*model.Transaction, error)
	DeleteTransaction(ctx context.Context, id int64) (bool, error)
	GetSummary(ctx context.Context) (*model.LedgerSummary, error)
	ListCustomerBalances(ctx context.Context) ([]*model.CustomerBalance, error)
}

// LedgerController turns service outcomes into localized results for any
// presentation layer. It applies no business rules of its own.
type LedgerController struct {
	customers CustomerService
	debts     DebtService
	printer   *message.Printer
}

func NewLedgerController(customers CustomerService, debts DebtService, locale string) *LedgerController {
	return &LedgerController{
		customers: customers,
		debts:     debts,
		printer:   NewPrinter(locale),
	}
}

func (c *LedgerController) Printer() *message.Printer {
	return c.printer
}

func (c *LedgerController) CreateCustomer(ctx context.Context, in model.CustomerInput) (res Result) {
	defer c.observe("create_customer", time.Now(), &res)

	customer, err := c.customers.CreateCustomer(ctx, in)
	if err != nil {
		return c.failure("create_customer", err, 0)
	}
	return ok(c.printer.Sprintf(msgCustomerCreated), customer)
}

func (c *LedgerController) UpdateCustomer(ctx context.Context, id int64, in model.CustomerInput) (res Result) {
	defer c.observe("update_customer", time.Now(), &res)

	updated, err := c.customers.UpdateCustomer(ctx, id, in)
	if err != nil {
		return c.failure("update_customer", err, id)
	}
	if !updated {
		return fail(KindNotFound, c.printer.Sprintf(msgCustomerNotFound))
	}
	return ok(c.printer.Sprintf(msgCustomerUpdated), nil)
}

func (c *LedgerController) DeleteCustomer(ctx context.Context, id int64) (res Result) {
	defer c.observe("delete_customer", time.Now(), &res)

	deleted, err := c.customers.DeleteCustomer(ctx, id)
	if err != nil {
		return c.failure("delete_customer", err, id)
	}
	if !deleted {
		return fail(KindNotFound, c.printer.Sprintf(msgCustomerNotFound))
	}
	return ok(c.printer.Sprintf(msgCustomerDeleted), nil)
}

func (c *LedgerController) GetCustomer(ctx context.Context, id int64) (res Result) {
	defer c.observe("get_customer", time.Now(), &res)

	customer, err := c.customers.GetCustomer(ctx, id)
	if err != nil {
		return c.failure("get_customer", err, id)
	}
	return ok(c.printer.Sprintf(msgOK), customer)
}

func (c *LedgerController) GetAllCustomers(ctx context.Context) (res Result) {
	defer c.observe("list_customers", time.Now(), &res)

	customers, err := c.customers.ListCustomers(ctx)
	if err != nil {
		return c.failure("list_customers", err, 0)
	}
	return ok(c.printer.Sprintf(msgOK), customers)
}

func (c *LedgerController) GetCustomerBalances(ctx context.Context) (res Result) {
	defer c.observe("list_customer_balances", time.Now(), &res)

	balances, err := c.debts.ListCustomerBalances(ctx)
	if err != nil {
		return c.failure("list_customer_balances", err, 0)
	}
	return ok(c.printer.Sprintf(msgOK), balances)
}

func (c *LedgerController) AddLoan(ctx context.Context, customerID int64, amount decimal.Decimal, note string) (res Result) {
	defer c.observe("add_loan", time.Now(), &res)

	txn, err := c.debts.AddLoan(ctx, customerID, amount, note)
	if err != nil {
		if res, handled := c.amountFailure(err, msgLoanAmountInvalid); handled {
			return res
		}
		return c.failure("add_loan", err, customerID)
	}
	return ok(c.printer.Sprintf(msgLoanAdded), txn)
}

func (c *LedgerController) AddPayment(ctx context.Context, customerID int64, amount decimal.Decimal, note string) (res Result) {
	defer c.observe("add_payment", time.Now(), &res)

	txn, err := c.debts.AddPayment(ctx, customerID, amount, note)
	if err != nil {
		if res, handled := c.amountFailure(err, msgPaymentAmountInvalid); handled {
			return res
		}
		return c.failure("add_payment", err, customerID)
	}
	return ok(c.printer.Sprintf(msgPaymentAdded), txn)
}

func (c *LedgerController) GetCustomerDebt(ctx context.Context, customerID int64) (res Result) {
	defer c.observe("get_customer_debt", time.Now(), &res)

	debt, err := c.debts.CalculateDebt(ctx, customerID)
	if err != nil {
		return c.failure("get_customer_debt", err, customerID)
	}
	return ok(c.printer.Sprintf(msgOK), debt)
}

func (c *LedgerController) GetCustomerHistory(ctx context.Context, customerID int64) (res Result) {
	defer c.observe("get_customer_history", time.Now(), &res)

	history, err := c.debts.GetCustomerHistory(ctx, customerID)
	if err != nil {
		return c.failure("get_customer_history", err, customerID)
	}
	return ok(c.printer.Sprintf(msgOK), history)
}

func (c *LedgerController) DeleteTransaction(ctx context.Context, id int64) (res Result) {
	defer c.observe("delete_transaction", time.Now(), &res)

	deleted, err := c.debts.DeleteTransaction(ctx, id)
	if err != nil {
		return c.failure("delete_transaction", err, 0)
	}
	if !deleted {
		return fail(KindNotFound, c.printer.Sprintf(msgTransactionNotFound))
	}
	return ok(c.printer.Sprintf(msgTransactionDeleted), nil)
}

func (c *LedgerController) GetSummary(ctx context.Context) (res Result) {
	defer c.observe("get_summary", time.Now(), &res)

	summary, err := c.debts.GetSummary(ctx)
	if err != nil {
		return c.failure("get_summary", err, 0)
	}
	return ok(c.printer.Sprintf(msgOK), summary)
}

// amountFailure reports a rejected amount with the message of the operation
// that rejected it.
func (c *LedgerController) amountFailure(err error, notPositive string) (Result, bool) {
	switch {
	case errors.Is(err, services.ErrAmountTooLarge):
		return fail(KindValidation, c.printer.Sprintf(msgAmountTooLarge, FormatMoney(c.printer, model.MaxAmount))), true
	case errors.Is(err, services.ErrAmountTooPrecise):
		return fail(KindValidation, c.printer.Sprintf(msgAmountTooPrecise, model.AmountScale)), true
	case errors.Is(err, services.ErrInvalidAmount):
		return fail(KindValidation, c.printer.Sprintf(notPositive)), true
	}
	return Result{}, false
}

// failure maps a service error onto a result. Errors outside the validation
// and not-found families are logged and reported without detail.
func (c *LedgerController) failure(operation string, err error, customerID int64) Result {
	switch {
	case errors.Is(err, services.ErrEmptyName):
		return fail(KindValidation, c.printer.Sprintf(msgCustomerNameRequired))
	case errors.Is(err, services.ErrInvalidCustomerID):
		return fail(KindValidation, c.printer.Sprintf(msgInvalidCustomerID))
	case errors.Is(err, services.ErrInvalidAmount):
		return fail(KindValidation, c.printer.Sprintf(msgLoanAmountInvalid))
	case errors.Is(err, services.ErrValidation):
		return fail(KindValidation, c.printer.Sprintf(msgInvalidInput))
	case errors.Is(err, services.ErrCustomerNotFound):
		if customerID > 0 {
			return fail(KindNotFound, c.printer.Sprintf(msgCustomerNotFoundWithID, customerID))
		}
		return fail(KindNotFound, c.printer.Sprintf(msgCustomerNotFound))
	}

	logger.Error("ledger operation failed", "operation", operation, "error", err)
	return fail(KindUnexpected, c.printer.Sprintf(msgOperationFailed))
}

func (c *LedgerController) observe(operation string, started time.Time, res *Result) {
	prom.ObserveOperation(operation, res.Kind.String(), started)
}
