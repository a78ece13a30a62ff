package pdfparser

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"fjacquet/kaspi-csv/internal/common"
	"fjacquet/kaspi-csv/internal/layout"
	"fjacquet/kaspi-csv/internal/logging"
	"fjacquet/kaspi-csv/internal/parser"
	"fjacquet/kaspi-csv/internal/parsererror"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAdapter_Defaults(t *testing.T) {
	a := NewAdapter(logging.NewMockLogger(), nil, nil)
	assert.Equal(t, "native", a.Extractor().Name())
	require.NotNil(t, a.Profile())
	assert.Equal(t, "KZT", a.Profile().CurrencyCode)

	var _ parser.FullParser = a
}

func TestAdapter_ConvertToCSV(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	input := writeFakePDF(t, dir, "gold_statement.pdf")
	logger := logging.NewMockLogger()

	a := NewAdapter(logger, NewMockPDFExtractor(sampleStatement, nil), nil)
	require.NoError(t, a.ConvertToCSV(ctx, input, ""))

	output := filepath.Join(dir, "gold_statement.csv")
	data, err := os.ReadFile(output)
	require.NoError(t, err)

	expected := "Date,Payee,Amount,Memo\n" +
		"2024-01-12,Magnum Cash&Carry,-2500.00,Покупка\n" +
		"2024-01-13,С Kaspi Депозита,20.93,Пополнение\n" +
		"2024-01-15,Алия К. Комментарий: за обед,-1000.00,Перевод\n" +
		"2024-01-16,Yandex.Go,-500.00,Покупка\n" +
		"2024-01-16,Yandex.Go,-500.00,Покупка\n"
	assert.Equal(t, expected, string(data))
	assert.True(t, logger.HasEntry("INFO", "Statement summary"))

	// Re-running yields identical bytes.
	require.NoError(t, a.ConvertToCSV(ctx, input, ""))
	again, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.Equal(t, data, again)
}

func TestAdapter_ConvertToCSV_ExplicitOutputAndOptions(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	input := writeFakePDF(t, dir, "statement.pdf")
	output := filepath.Join(dir, "exports", "january.csv")

	a := NewAdapter(logging.NewMockLogger(), NewMockPDFExtractor(sampleStatement, nil), nil)
	a.SetCSVOptions(common.CSVOptions{Delimiter: ';', DateLayout: "02.01.2006", QuoteAll: true, RoundAmounts: true})
	require.NoError(t, a.ConvertToCSV(ctx, input, output))

	data, err := os.ReadFile(output)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 6)
	assert.Equal(t, `"Date";"Payee";"Amount";"Memo"`, lines[0])
	assert.Equal(t, `"13.01.2024";"С Kaspi Депозита";"21";"Пополнение"`, lines[2])
}

func TestAdapter_ConvertToCSV_NoTransactions(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	input := writeFakePDF(t, dir, "statement.pdf")
	logger := logging.NewMockLogger()

	a := NewAdapter(logger, NewMockPDFExtractor("Справка о наличии счета\n", nil), nil)
	require.NoError(t, a.ConvertToCSV(ctx, input, ""))

	data, err := os.ReadFile(filepath.Join(dir, "statement.csv"))
	require.NoError(t, err)
	assert.Equal(t, "Date,Payee,Amount,Memo\n", string(data))
	assert.True(t, logger.HasEntry("WARN", "No transactions found in statement"))
}

func TestAdapter_ConvertToCSV_FailuresWriteNothing(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		text    string
		makePDF bool
		want    error
	}{
		{"missing input", sampleStatement, false, parsererror.ErrInputNotFound},
		{"empty text layer", "", true, parsererror.ErrUnreadablePDF},
		{"bad row", "Дата Сумма Операция Детали\n12.01.24 broken\n", true, parsererror.ErrUnrecognizedLayout},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			input := filepath.Join(dir, "statement.pdf")
			if tt.makePDF {
				input = writeFakePDF(t, dir, "statement.pdf")
			}

			a := NewAdapter(logging.NewMockLogger(), NewMockPDFExtractor(tt.text, nil), nil)
			err := a.ConvertToCSV(ctx, input, "")
			assert.ErrorIs(t, err, tt.want)
			assert.NoFileExists(t, filepath.Join(dir, "statement.csv"))
		})
	}
}

func TestAdapter_Parse(t *testing.T) {
	a := NewAdapter(logging.NewMockLogger(), NewMockPDFExtractor(sampleStatement, nil), nil)

	txs, err := a.Parse(context.Background(), bytes.NewReader([]byte("%PDF-1.7\n")))
	require.NoError(t, err)
	assert.Len(t, txs, 5)

	_, err = a.Parse(context.Background(), strings.NewReader("plain text"))
	assert.ErrorIs(t, err, parsererror.ErrUnreadablePDF)
}

func TestAdapter_ValidateFormat(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	input := writeFakePDF(t, dir, "statement.pdf")

	tests := []struct {
		name    string
		path    string
		text    string
		valid   bool
		wantErr bool
	}{
		{"kaspi statement", input, sampleStatement, true, false},
		{"no table", input, "Справка о наличии счета", false, false},
		{"no text layer", input, "", false, false},
		{"missing file", filepath.Join(dir, "missing.pdf"), sampleStatement, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := NewAdapter(logging.NewMockLogger(), NewMockPDFExtractor(tt.text, nil), nil)
			valid, err := a.ValidateFormat(ctx, tt.path)
			assert.Equal(t, tt.valid, valid)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestAdapter_Convert_ReturnsSummary(t *testing.T) {
	dir := t.TempDir()
	input := writeFakePDF(t, dir, "statement.pdf")

	a := NewAdapter(logging.NewMockLogger(), NewMockPDFExtractor(sampleStatement, nil), nil)
	summary, err := a.Convert(context.Background(), input, "")
	require.NoError(t, err)

	assert.Equal(t, 5, summary.Count)
	assert.Equal(t, "KZT", summary.CurrencyCode)
	assert.Equal(t, "20.93", summary.Inflow.StringFixed(2))
	assert.Equal(t, "-4500.00", summary.Outflow.StringFixed(2))
	assert.Equal(t, "-4479.07", summary.Total.StringFixed(2))
}

// latinProfile describes the testdata statement, whose standard font has
// no tenge sign.
const latinProfile = `
bank: Kaspi Bank
date_pattern: '\d{2}\.\d{2}\.\d{2}'
date_layout: '02.01.06'
currency: KZT
currency_code: KZT
headers:
  - language: en
    columns: [Date, Amount, Transaction, Details]
operations: [Purchases, Transfers, Replenishment]
artifacts:
  - '^\d+\s*of\s*\d+$'
`

func TestAdapter_ConvertToCSV_NativeExtractor(t *testing.T) {
	profile, err := layout.Parse([]byte(latinProfile))
	require.NoError(t, err)

	output := filepath.Join(t.TempDir(), "statement.csv")
	a := NewAdapter(logging.NewMockLogger(), NewNativeExtractor(), profile)
	summary, err := a.Convert(context.Background(), filepath.Join("testdata", "statement.pdf"), output)
	require.NoError(t, err)

	data, err := os.ReadFile(output)
	require.NoError(t, err)
	expected := "Date,Payee,Amount,Memo\n" +
		"2024-01-12,Magnum Cash&Carry,-2500.00,Purchases\n" +
		"2024-01-15,Aliya K. Comment: lunch,-1000.00,Transfers\n" +
		"2024-01-16,Yandex.Go Almaty,-500.00,Purchases\n" +
		"2024-01-17,Salary,150000.00,Replenishment\n"
	assert.Equal(t, expected, string(data))

	assert.Equal(t, 4, summary.Count)
	assert.Equal(t, "146000.00", summary.Total.StringFixed(2))
}
