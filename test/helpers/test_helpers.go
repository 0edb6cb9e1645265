package helpers

import (
	"context"
	"testing"

	"github.com/nimasrn/debt-ledger/internal/controller"
	"github.com/nimasrn/debt-ledger/internal/repository"
	"github.com/nimasrn/debt-ledger/internal/services"
	"github.com/nimasrn/debt-ledger/pkg/store"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

// SetupTestDB opens an isolated migrated in-memory database.
func SetupTestDB(t *testing.T) *store.DB {
	t.Helper()
	db, err := store.Open(store.Config{Driver: store.DriverSQLite, Path: store.MemoryPath})
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = db.Close()
	})
	require.NoError(t, store.Migrate(context.Background(), db))
	return db
}

type Ledger struct {
	DB              *store.DB
	CustomerRepo    *repository.CustomerRepository
	TransactionRepo *repository.TransactionRepository
	CustomerService *services.CustomerService
	DebtService     *services.DebtService
	Controller      *controller.LedgerController
}

// SetupLedger wires the full stack on top of SetupTestDB.
func SetupLedger(t *testing.T, locale string) *Ledger {
	t.Helper()
	db := SetupTestDB(t)
	customerRepo := repository.NewCustomerRepository(db)
	transactionRepo := repository.NewTransactionRepository(db)
	customerService := services.NewCustomerService(customerRepo)
	debtService := services.NewDebtService(customerRepo, transactionRepo)
	return &Ledger{
		DB:              db,
		CustomerRepo:    customerRepo,
		TransactionRepo: transactionRepo,
		CustomerService: customerService,
		DebtService:     debtService,
		Controller:      controller.NewLedgerController(customerService, debtService, locale),
	}
}

// CountTransactions counts the stored rows of a customer.
func (l *Ledger) CountTransactions(t *testing.T, customerID int64) int64 {
	t.Helper()
	count, err := l.TransactionRepo.CountByCustomerID(context.Background(), customerID)
	require.NoError(t, err)
	return count
}

func Amount(v int64) decimal.Decimal {
	return decimal.NewFromInt(v)
}
