package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type Amount = decimal.Decimal

// AmountScale is the number of fraction digits an amount may carry.
const AmountScale = 2

// MaxAmount bounds a single transaction so sums stay exact at AmountScale
// when the storage aggregates in floating point.
var MaxAmount = decimal.New(1, 12)

type TransactionType string

const (
	// TransactionTypeLoan increases what the customer owes.
	TransactionTypeLoan TransactionType = "LOAN"
	// TransactionTypePayment decreases it.
	TransactionTypePayment TransactionType = "PAYMENT"
)

func (t TransactionType) Valid() bool {
	return t == TransactionTypeLoan || t == TransactionTypePayment
}

type Transaction struct {
	ID         int64           `json:"id"`
	CustomerID int64           `json:"customer_id"`
	Amount     Amount          `json:"amount"`
	Type       TransactionType `json:"transaction_type"`
	Note       string          `json:"note"`
	CreatedAt  time.Time       `json:"created_at"`
}
