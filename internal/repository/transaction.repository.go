package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math"

	"github.com/nimasrn/debt-ledger/internal/model"
	"github.com/nimasrn/debt-ledger/pkg/store"
	"github.com/shopspring/decimal"
)

var ErrBalanceOverflow = errors.New("balance is not a finite number")

const balanceSelect = `SELECT
	COALESCE(SUM(CASE WHEN transaction_type = ? THEN amount ELSE 0 END), 0) -
	COALESCE(SUM(CASE WHEN transaction_type = ? THEN amount ELSE 0 END), 0)
FROM transactions`

type TransactionRepository struct {
	*store.DB
}

func NewTransactionRepository(db *store.DB) *TransactionRepository {
	return &TransactionRepository{
		db,
	}
}

func (r *TransactionRepository) Create(ctx context.Context, txn *model.Transaction) (*model.Transaction, error) {
	if !txn.Type.Valid() {
		return nil, fmt.Errorf("unknown transaction type %q", txn.Type)
	}
	entity := toTransactionEntity(txn)
	entity.ID = 0

	if err := r.Write(ctx).Create(entity).Error; err != nil {
		return nil, err
	}

	txn.ID = entity.ID
	txn.CreatedAt = entity.CreatedAt.UTC()
	return txn, nil
}

// GetByCustomerID returns the customer's transactions, newest first.
func (r *TransactionRepository) GetByCustomerID(ctx context.Context, customerID int64) ([]*model.Transaction, error) {
	var entities []*TransactionEntity
	err := r.Read(ctx).
		Where("customer_id = ?", customerID).
		Order("created_at DESC").
		Order("id DESC").
		Find(&entities).
		Error
	if err != nil {
		return nil, err
	}
	return toTransactionModels(entities), nil
}

func (r *TransactionRepository) GetAll(ctx context.Context) ([]*model.Transaction, error) {
	var entities []*TransactionEntity
	err := r.Read(ctx).
		Order("created_at DESC").
		Order("id DESC").
		Find(&entities).
		Error
	if err != nil {
		return nil, err
	}
	return toTransactionModels(entities), nil
}

func (r *TransactionRepository) Delete(ctx context.Context, id int64) (bool, error) {
	result := r.Write(ctx).Where("id = ?", id).Delete(&TransactionEntity{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *TransactionRepository) CountByCustomerID(ctx context.Context, customerID int64) (int64, error) {
	var count int64
	err := r.Read(ctx).Model(&TransactionEntity{}).Where("customer_id = ?", customerID).Count(&count).Error
	if err != nil {
		return 0, err
	}
	return count, nil
}

// GetCustomerBalance returns loans minus payments for one customer. A
// customer without transactions, or an unknown id, has a zero balance.
func (r *TransactionRepository) GetCustomerBalance(ctx context.Context, customerID int64) (decimal.Decimal, error) {
	return r.sumBalance(ctx, balanceSelect+" WHERE customer_id = ?",
		string(model.TransactionTypeLoan), string(model.TransactionTypePayment), customerID)
}

// GetTotalBalance returns loans minus payments across the whole ledger.
func (r *TransactionRepository) GetTotalBalance(ctx context.Context) (decimal.Decimal, error) {
	return r.sumBalance(ctx, balanceSelect, string(model.TransactionTypeLoan), string(model.TransactionTypePayment))
}

// sumBalance reads the aggregate as a float, the type SQLite sums REAL
// columns in, and rounds it back to the amount scale.
func (r *TransactionRepository) sumBalance(ctx context.Context, query string, args ...any) (decimal.Decimal, error) {
	var balance sql.NullFloat64
	if err := r.Read(ctx).Raw(query, args...).Row().Scan(&balance); err != nil {
		return decimal.Zero, fmt.Errorf("sum balance: %w", err)
	}
	if !balance.Valid {
		return decimal.Zero, nil
	}
	if math.IsInf(balance.Float64, 0) || math.IsNaN(balance.Float64) {
		return decimal.Zero, ErrBalanceOverflow
	}
	return decimal.NewFromFloat(balance.Float64).Round(model.AmountScale), nil
}
