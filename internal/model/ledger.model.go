package model

// LedgerSummary is the ledger-wide total shown in status views.
type LedgerSummary struct {
	CustomerCount int64  `json:"customer_count"`
	TotalDebt     Amount `json:"total_debt"`
}
