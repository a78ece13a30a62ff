// Package report summarises a parsed statement for the log.
package report

import (
	"fjacquet/kaspi-csv/internal/logging"
	"fjacquet/kaspi-csv/internal/models"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// Summary totals a statement. Total is Inflow plus Outflow; Outflow is
// negative or zero.
type Summary struct {
	Count        int
	Total        decimal.Decimal
	Inflow       decimal.Decimal
	Outflow      decimal.Decimal
	CurrencyCode string
}

// Summarize totals transactions in one pass.
func Summarize(transactions []models.Transaction, currencyCode string) Summary {
	s := Summary{
		Count:        len(transactions),
		Total:        decimal.Zero,
		Inflow:       decimal.Zero,
		Outflow:      decimal.Zero,
		CurrencyCode: currencyCode,
	}
	for _, tx := range transactions {
		s.Total = s.Total.Add(tx.Amount)
		if tx.IsDebit() {
			s.Outflow = s.Outflow.Add(tx.Amount)
		} else {
			s.Inflow = s.Inflow.Add(tx.Amount)
		}
	}
	return s
}

// Format renders amount as money in the summary currency. Unknown
// currency codes fall back to a plain two-decimal number with the code.
func (s Summary) Format(amount decimal.Decimal) string {
	currency := money.GetCurrency(s.CurrencyCode)
	if currency == nil {
		if s.CurrencyCode == "" {
			return amount.StringFixed(2)
		}
		return amount.StringFixed(2) + " " + s.CurrencyCode
	}
	minor := amount.Shift(int32(currency.Fraction)).Round(0).IntPart()
	return money.New(minor, currency.Code).Display()
}

// Log writes the summary at info level.
func (s Summary) Log(logger logging.Logger) {
	logger.Info("Statement summary",
		logging.Field{Key: logging.FieldCount, Value: s.Count},
		logging.Field{Key: logging.FieldCurrency, Value: s.CurrencyCode},
		logging.Field{Key: "total_change", Value: s.Format(s.Total)},
		logging.Field{Key: "total_inflow", Value: s.Format(s.Inflow)},
		logging.Field{Key: "total_outflow", Value: s.Format(s.Outflow)})
}
