package repository

import (
	"time"

	"github.com/nimasrn/debt-ledger/internal/model"
	"github.com/shopspring/decimal"
)

type TransactionEntity struct {
	ID         int64           `db:"id"               gorm:"primaryKey;autoIncrement;column:id"`
	CustomerID int64           `db:"customer_id"      gorm:"column:customer_id;not null;index"`
	Amount     decimal.Decimal `db:"amount"           gorm:"column:amount;not null"`
	Type       string          `db:"transaction_type" gorm:"column:transaction_type;not null"`
	Note       *string         `db:"note"             gorm:"column:note"`
	CreatedAt  time.Time       `db:"created_at"       gorm:"column:created_at;autoCreateTime"`
}

func (TransactionEntity) TableName() string {
	return "transactions"
}

func toTransactionEntity(m *model.Transaction) *TransactionEntity {
	if m == nil {
		return nil
	}
	return &TransactionEntity{
		ID:         m.ID,
		CustomerID: m.CustomerID,
		Amount:     m.Amount,
		Type:       string(m.Type),
		Note:       nullable(m.Note),
		CreatedAt:  m.CreatedAt,
	}
}

func toTransactionModel(e *TransactionEntity) *model.Transaction {
	if e == nil {
		return nil
	}
	return &model.Transaction{
		ID:         e.ID,
		CustomerID: e.CustomerID,
		Amount:     e.Amount.Round(model.AmountScale),
		Type:       model.TransactionType(e.Type),
		Note:       deref(e.Note),
		CreatedAt:  e.CreatedAt.UTC(),
	}
}

func toTransactionModels(entities []*TransactionEntity) []*model.Transaction {
	models := make([]*model.Transaction, len(entities))
	for i, e := range entities {
		models[i] = toTransactionModel(e)
	}
	return models
}
