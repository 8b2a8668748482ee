package model

import "github.com/shopspring/decimal"

// Transaction represents one extracted statement line item.
type Transaction struct {
	Date        string          // ISO-8601 date as printed on the statement
	Description string          // single line, whitespace-normalized
	Amount      decimal.Decimal // negative = debit, positive = credit
	Currency    string          // ISO 4217 code
}

// Key returns the dedup identity for a transaction: all four fields.
// Two transactions with equal keys are the same line item.
func (t Transaction) Key() string {
	return t.Date + "|" + t.Description + "|" + t.Amount.String() + "|" + t.Currency
}
