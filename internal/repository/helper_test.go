package repository

import (
	"context"
	"testing"

	"github.com/nimasrn/debt-ledger/internal/model"
	"github.com/nimasrn/debt-ledger/pkg/store"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestDB(t *testing.T) *store.DB {
	t.Helper()
	db, err := store.Open(store.Config{Driver: store.DriverSQLite, Path: store.MemoryPath})
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = db.Close()
	})
	require.NoError(t, store.Migrate(context.Background(), db))
	return db
}

func createCustomer(t *testing.T, repo *CustomerRepository, name string) *model.Customer {
	t.Helper()
	c, err := repo.Create(context.Background(), &model.Customer{Name: name})
	require.NoError(t, err)
	return c
}

func createTransaction(t *testing.T, repo *TransactionRepository, customerID int64, typ model.TransactionType, amount int64) *model.Transaction {
	t.Helper()
	txn, err := repo.Create(context.Background(), &model.Transaction{
		CustomerID: customerID,
		Type:       typ,
		Amount:     decimal.NewFromInt(amount),
	})
	require.NoError(t, err)
	return txn
}

func assertAmount(t *testing.T, expected int64, actual decimal.Decimal) {
	t.Helper()
	assert.True(t, decimal.NewFromInt(expected).Equal(actual), "expected %d, got %s", expected, actual)
}
