// Package models provides the data structures shared by the parser and the writers.
package models

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Direction tells whether money left or entered the account.
type Direction string

const (
	DirectionDebit  Direction = "DBIT"
	DirectionCredit Direction = "CRDT"
)

// Transaction is one statement entry. Values are built once by
// TransactionBuilder and passed around by value.
type Transaction struct {
	Date      time.Time
	Payee     string
	Amount    decimal.Decimal
	Memo      string
	Currency  string
	Operation string
}

// Direction derives the flow from the sign of Amount. Zero counts as credit.
func (t Transaction) Direction() Direction {
	if t.Amount.IsNegative() {
		return DirectionDebit
	}
	return DirectionCredit
}

// IsDebit reports whether the transaction is an outflow.
func (t Transaction) IsDebit() bool {
	return t.Direction() == DirectionDebit
}

func (t Transaction) String() string {
	return fmt.Sprintf("Transaction[%s, %s, %q]", t.Date.Format("2006.01.02"), t.Amount.StringFixed(2), t.Payee)
}
