package models

import (
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// TransactionBuilder accumulates the pieces of a statement entry while its
// lines are read. The first error sticks and is returned by Build.
type TransactionBuilder struct {
	tx      Transaction
	details []string
	err     error
}

// NewTransactionBuilder returns an empty builder.
func NewTransactionBuilder() *TransactionBuilder {
	return &TransactionBuilder{tx: Transaction{Amount: decimal.Zero}}
}

// WithDate sets the booking date.
func (b *TransactionBuilder) WithDate(date time.Time) *TransactionBuilder {
	if b.err != nil {
		return b
	}
	if date.IsZero() {
		b.err = errors.New("date cannot be zero")
		return b
	}
	b.tx.Date = date
	return b
}

// WithAmount sets the signed amount and its currency.
func (b *TransactionBuilder) WithAmount(amount decimal.Decimal, currency string) *TransactionBuilder {
	if b.err != nil {
		return b
	}
	b.tx.Amount = amount
	b.tx.Currency = currency
	return b
}

// WithOperation sets the operation type printed by the bank, e.g. "Purchases".
func (b *TransactionBuilder) WithOperation(operation string) *TransactionBuilder {
	if b.err != nil {
		return b
	}
	b.tx.Operation = strings.TrimSpace(operation)
	return b
}

// AppendDetails adds a fragment of the details column. Fragments from
// continuation lines are joined with single spaces.
func (b *TransactionBuilder) AppendDetails(fragment string) *TransactionBuilder {
	if b.err != nil {
		return b
	}
	if f := strings.Join(strings.Fields(fragment), " "); f != "" {
		b.details = append(b.details, f)
	}
	return b
}

// HasDetails reports whether any details were appended.
func (b *TransactionBuilder) HasDetails() bool {
	return len(b.details) > 0
}

// Build validates and returns the transaction.
func (b *TransactionBuilder) Build() (Transaction, error) {
	if b.err != nil {
		return Transaction{}, b.err
	}
	if b.tx.Date.IsZero() {
		return Transaction{}, errors.New("transaction date is required")
	}

	tx := b.tx
	tx.Payee = strings.Join(b.details, " ")
	if tx.Payee == "" {
		tx.Payee = tx.Operation
	}
	if tx.Payee == "" {
		return Transaction{}, errors.New("transaction has neither details nor operation")
	}
	tx.Memo = tx.Operation
	return tx, nil
}

// Reset clears the builder for the next entry.
func (b *TransactionBuilder) Reset() *TransactionBuilder {
	*b = *NewTransactionBuilder()
	return b
}
