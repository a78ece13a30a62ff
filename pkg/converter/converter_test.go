package converter

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"fjacquet/kaspi-csv/internal/logging"
	"fjacquet/kaspi-csv/internal/parsererror"
	"fjacquet/kaspi-csv/internal/pdfparser"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const statement = "Күні Сомасы Операция Толығырақ\n" +
	"12.01.24   - 2 500,00 ₸   Сатып алу   Magnum\n" +
	"13.01.24   + 20,93 ₸      Толықтыру   Kaspi Депозит\n"

func writeFakePDF(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "statement.pdf")
	require.NoError(t, os.WriteFile(path, []byte("%PDF-1.4\n"), 0600))
	return path
}

func mockOptions(text string) Options {
	return Options{
		extractor: pdfparser.NewMockPDFExtractor(text, nil),
		logger:    logging.NewMockLogger(),
	}
}

func TestConvert(t *testing.T) {
	input := writeFakePDF(t)

	res, err := Convert(context.Background(), input, mockOptions(statement))
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(filepath.Dir(input), "statement.csv"), res.OutputFile)
	assert.Equal(t, 2, res.Count)
	assert.Equal(t, "KZT", res.Currency)
	assert.Equal(t, "-2479.07", res.Total.StringFixed(2))

	data, err := os.ReadFile(res.OutputFile)
	require.NoError(t, err)
	assert.Equal(t, "Date,Payee,Amount,Memo\n"+
		"2024-01-12,Magnum,-2500.00,Сатып алу\n"+
		"2024-01-13,Kaspi Депозит,20.93,Толықтыру\n", string(data))
}

func TestConvert_Options(t *testing.T) {
	input := writeFakePDF(t)
	opts := mockOptions(statement)
	opts.Output = filepath.Join(filepath.Dir(input), "ynab.csv")
	opts.Delimiter = ';'
	opts.DateFormat = "DD/MM/YYYY"
	opts.RoundAmounts = true

	res, err := Convert(context.Background(), input, opts)
	require.NoError(t, err)

	data, err := os.ReadFile(res.OutputFile)
	require.NoError(t, err)
	assert.Equal(t, "Date;Payee;Amount;Memo\n"+
		"12/01/2024;Magnum;-2500;Сатып алу\n"+
		"13/01/2024;Kaspi Депозит;21;Толықтыру\n", string(data))
}

func TestConvert_Errors(t *testing.T) {
	t.Run("missing input", func(t *testing.T) {
		_, err := Convert(context.Background(), filepath.Join(t.TempDir(), "nope.pdf"), mockOptions(statement))
		assert.ErrorIs(t, err, parsererror.ErrInputNotFound)
	})

	t.Run("bad date format", func(t *testing.T) {
		opts := mockOptions(statement)
		opts.DateFormat = "someday"
		_, err := Convert(context.Background(), writeFakePDF(t), opts)
		assert.Error(t, err)
	})
}
