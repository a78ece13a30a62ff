package layout

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func defaultProfileForTest(t *testing.T) *Profile {
	t.Helper()
	p, err := Default()
	require.NoError(t, err)
	return p
}

func TestDefault(t *testing.T) {
	p := defaultProfileForTest(t)

	assert.Equal(t, "Kaspi Bank", p.Bank)
	assert.Equal(t, "₸", p.Currency)
	assert.Equal(t, "KZT", p.CurrencyCode)
	assert.Equal(t, "02.01.06", p.DateLayout)
	assert.Len(t, p.Headers, 3)
}

func TestMatchHeader(t *testing.T) {
	p := defaultProfileForTest(t)

	tests := []struct {
		line     string
		language string
		ok       bool
	}{
		{line: "Date      Amount      Transaction      Details", language: "en", ok: true},
		{line: "  Дата   Сумма   Операция   Детали  ", language: "ru", ok: true},
		{line: "Күні Сомасы Операция Толығырақ", language: "kk", ok: true},
		{line: "DATE AMOUNT TRANSACTION DETAILS", language: "en", ok: true},
		{line: "Date Amount Transaction", ok: false},
		{line: "Date Amount Transaction Details Balance", ok: false},
		{line: "", ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			h, ok := p.MatchHeader(tt.line)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.language, h.Language)
			}
		})
	}
}

func TestIsArtifact(t *testing.T) {
	p := defaultProfileForTest(t)

	assert.True(t, p.IsArtifact("2 / 5"))
	assert.True(t, p.IsArtifact("  1 из 3 "))
	assert.True(t, p.IsArtifact("3 of 3"))
	assert.True(t, p.IsArtifact("АО «Kaspi Bank», БИК CASPKZKA, www.kaspi.kz"))
	assert.True(t, p.IsArtifact(`JSC "Kaspi Bank", BIC CASPKZKA, www.kaspi.kz`))
	assert.False(t, p.IsArtifact("Magnum Cash&Carry"))
	assert.False(t, p.IsArtifact("www.kaspi.kz"))
	assert.False(t, p.IsArtifact("Payment via www.kaspi.kz"))
	assert.False(t, p.IsArtifact(`АО "Kaspi Bank"`))
	assert.False(t, p.IsArtifact("Kaspi Gold top-up"))
}

func TestHasDatePrefix(t *testing.T) {
	p := defaultProfileForTest(t)

	assert.True(t, p.HasDatePrefix("12.01.24   - 2 500,00 ₸   Purchases"))
	assert.True(t, p.HasDatePrefix("  31.12.23"))
	assert.False(t, p.HasDatePrefix("12.01.2024 something"))
	assert.False(t, p.HasDatePrefix("Card *1234 valid until 12.01.24"))
}

func TestMatchRow(t *testing.T) {
	p := defaultProfileForTest(t)

	tests := []struct {
		name     string
		line     string
		expected Row
		ok       bool
	}{
		{
			name: "debit with thousands separator",
			line: "12.01.24    - 2 500,00 ₸    Purchases    Magnum Cash&Carry",
			expected: Row{Date: "12.01.24", Sign: "-", Amount: "2 500,00", Currency: "₸",
				Rest: "Purchases    Magnum Cash&Carry"},
			ok: true,
		},
		{
			name:     "credit without gap after sign",
			line:     "05.02.24 +20,93 ₸ Replenishment Kaspi Deposit",
			expected: Row{Date: "05.02.24", Sign: "+", Amount: "20,93", Currency: "₸", Rest: "Replenishment Kaspi Deposit"},
			ok:       true,
		},
		{
			name:     "no rest",
			line:     "05.02.24 - 1 000 000,00 ₸",
			expected: Row{Date: "05.02.24", Sign: "-", Amount: "1 000 000,00", Currency: "₸"},
			ok:       true,
		},
		{
			name: "missing sign",
			line: "05.02.24 20,93 ₸ Replenishment",
			ok:   false,
		},
		{
			name: "missing amount",
			line: "05.02.24 - ₸ Purchases",
			ok:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			row, ok := p.MatchRow(tt.line)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.expected, row)
			}
		})
	}
}

func TestSplitOperation(t *testing.T) {
	p := defaultProfileForTest(t)

	tests := []struct {
		name      string
		rest      string
		operation string
		details   string
		ok        bool
	}{
		{name: "column gap", rest: "Purchases    Magnum Cash&Carry", operation: "Purchases", details: "Magnum Cash&Carry", ok: true},
		{name: "unknown operation with gap", rest: "Bonus   Kaspi Red", operation: "Bonus", details: "Kaspi Red", ok: true},
		{name: "known operation single spaces", rest: "Transfers Aigerim K.", operation: "Transfers", details: "Aigerim K.", ok: true},
		{name: "multi word kazakh operation", rest: "Ақша алу ATM Almaty", operation: "Ақша алу", details: "ATM Almaty", ok: true},
		{name: "russian operation", rest: "Покупки Small", operation: "Покупки", details: "Small", ok: true},
		{name: "operation only", rest: "Withdrawals", operation: "Withdrawals", details: "", ok: true},
		{name: "operation prefix of word", rest: "Othersome text", ok: false},
		{name: "unknown operation single spaces", rest: "Bonus Kaspi Red", ok: false},
		{name: "empty", rest: "  ", ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			op, details, ok := p.SplitOperation(tt.rest)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.operation, op)
			assert.Equal(t, tt.details, details)
		})
	}
}

func TestParse_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		errText string
	}{
		{name: "bad yaml", yaml: "bank: [", errText: "failed to unmarshal layout"},
		{name: "missing dates", yaml: "currency: X\nheaders: [{columns: [a]}]", errText: "date_pattern and date_layout are required"},
		{name: "missing currency", yaml: "date_pattern: x\ndate_layout: y\nheaders: [{columns: [a]}]", errText: "currency is required"},
		{name: "no headers", yaml: "date_pattern: x\ndate_layout: y\ncurrency: X", errText: "at least one header"},
		{name: "empty header", yaml: "date_pattern: x\ndate_layout: y\ncurrency: X\nheaders: [{language: en}]", errText: "has no columns"},
		{name: "bad date pattern", yaml: "date_pattern: '('\ndate_layout: y\ncurrency: X\nheaders: [{columns: [a]}]", errText: "invalid date_pattern"},
		{name: "bad artifact", yaml: "date_pattern: x\ndate_layout: y\ncurrency: X\nheaders: [{columns: [a]}]\nartifacts: ['[']", errText: "invalid artifact pattern"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errText)
		})
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "layout.yaml")
	content := `
bank: Test Bank
date_pattern: '\d{2}/\d{2}/\d{4}'
date_layout: '02/01/2006'
currency: EUR
headers:
  - language: en
    columns: [Date, Amount, Type, Details]
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))

	p, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "Test Bank", p.Bank)
	assert.True(t, p.HasDatePrefix("01/02/2024 + 5,00 EUR"))

	row, ok := p.MatchRow("01/02/2024 + 5,00 EUR Card Shop")
	require.True(t, ok)
	assert.Equal(t, "EUR", row.Currency)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
