// Package common provides the CSV output shared by the converter commands.
package common

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"fjacquet/kaspi-csv/internal/dateutils"
	"fjacquet/kaspi-csv/internal/fileutils"
	"fjacquet/kaspi-csv/internal/logging"
	"fjacquet/kaspi-csv/internal/models"
	"fjacquet/kaspi-csv/internal/parsererror"

	"github.com/gocarina/gocsv"
)

// CSVRow is one line of the budgeting import file.
type CSVRow struct {
	Date   string `csv:"Date"`
	Payee  string `csv:"Payee"`
	Amount string `csv:"Amount"`
	Memo   string `csv:"Memo"`
}

// CSVOptions controls how transactions are rendered.
type CSVOptions struct {
	Delimiter rune
	// DateLayout is a Go time layout for the Date column.
	DateLayout string
	// QuoteAll quotes every field, not only those that need it.
	QuoteAll bool
	// RoundAmounts writes whole amounts instead of two decimals.
	RoundAmounts bool
}

// DefaultCSVOptions returns comma-separated output with ISO dates.
func DefaultCSVOptions() CSVOptions {
	return CSVOptions{
		Delimiter:  ',',
		DateLayout: dateutils.DateLayoutISO,
	}
}

// ToCSVRows renders transactions in statement order.
func ToCSVRows(transactions []models.Transaction, opts CSVOptions) []CSVRow {
	rows := make([]CSVRow, 0, len(transactions))
	for _, tx := range transactions {
		amount := tx.Amount.StringFixed(2)
		if opts.RoundAmounts {
			amount = tx.Amount.Round(0).StringFixed(0)
		}
		rows = append(rows, CSVRow{
			Date:   dateutils.FormatDate(tx.Date, opts.DateLayout),
			Payee:  tx.Payee,
			Amount: amount,
			Memo:   tx.Memo,
		})
	}
	return rows
}

// MarshalTransactions writes the header row and one row per transaction to w.
// The header is written even when there are no transactions.
func MarshalTransactions(w io.Writer, transactions []models.Transaction, opts CSVOptions) error {
	if opts.Delimiter == 0 {
		opts.Delimiter = ','
	}
	rows := ToCSVRows(transactions, opts)

	var out gocsv.CSVWriter
	if opts.QuoteAll {
		out = newQuoteAllWriter(w, opts.Delimiter)
	} else {
		csvWriter := csv.NewWriter(w)
		csvWriter.Comma = opts.Delimiter
		out = gocsv.NewSafeCSVWriter(csvWriter)
	}

	if err := gocsv.MarshalCSV(rows, out); err != nil {
		return fmt.Errorf("error writing CSV data: %w", err)
	}
	out.Flush()
	if err := out.Error(); err != nil {
		return fmt.Errorf("error flushing CSV data: %w", err)
	}
	return nil
}

// WriteTransactionsToCSV writes transactions to csvFile. The file only
// appears once every row has been written.
func WriteTransactionsToCSV(transactions []models.Transaction, csvFile string, opts CSVOptions, logger logging.Logger) error {
	logger.Info("Writing transactions to CSV file",
		logging.Field{Key: logging.FieldOutputFile, Value: csvFile},
		logging.Field{Key: logging.FieldCount, Value: len(transactions)},
		logging.Field{Key: logging.FieldDelimiter, Value: string(opts.Delimiter)})

	err := fileutils.WriteFileAtomic(csvFile, 0644, func(w io.Writer) error {
		return MarshalTransactions(w, transactions, opts)
	})
	if err != nil {
		logger.WithError(err).Error("Failed to write CSV file",
			logging.Field{Key: logging.FieldOutputFile, Value: csvFile})
		return &parsererror.WriteError{FilePath: csvFile, Err: err}
	}

	logger.Debug("Successfully wrote transactions to CSV file",
		logging.Field{Key: logging.FieldOutputFile, Value: csvFile})
	return nil
}

// quoteAllWriter is a gocsv.CSVWriter that wraps every field in quotes.
// encoding/csv only quotes fields that require it.
type quoteAllWriter struct {
	w     *bufio.Writer
	comma rune
	err   error
}

func newQuoteAllWriter(w io.Writer, comma rune) *quoteAllWriter {
	return &quoteAllWriter{w: bufio.NewWriter(w), comma: comma}
}

func (q *quoteAllWriter) Write(record []string) error {
	if q.err != nil {
		return q.err
	}
	for i, field := range record {
		if i > 0 {
			if _, q.err = q.w.WriteRune(q.comma); q.err != nil {
				return q.err
			}
		}
		quoted := `"` + strings.ReplaceAll(field, `"`, `""`) + `"`
		if _, q.err = q.w.WriteString(quoted); q.err != nil {
			return q.err
		}
	}
	_, q.err = q.w.WriteString("\n")
	return q.err
}

func (q *quoteAllWriter) Flush() {
	if q.err == nil {
		q.err = q.w.Flush()
	}
}

func (q *quoteAllWriter) Error() error {
	return q.err
}
