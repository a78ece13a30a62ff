package pdfparser

import (
	"context"
	"fmt"
	"io"
	"os"

	"fjacquet/kaspi-csv/internal/fileutils"
	"fjacquet/kaspi-csv/internal/layout"
	"fjacquet/kaspi-csv/internal/logging"
	"fjacquet/kaspi-csv/internal/models"
	"fjacquet/kaspi-csv/internal/parser"
	"fjacquet/kaspi-csv/internal/parsererror"
	"fjacquet/kaspi-csv/internal/report"
)

// Adapter implements parser.FullParser for Kaspi PDF statements.
type Adapter struct {
	parser.BaseParser
	extractor PDFExtractor
	profile   *layout.Profile
}

var _ parser.FullParser = (*Adapter)(nil)

// NewAdapter creates an adapter. A nil extractor falls back to the pure-Go
// extractor and a nil profile to the built-in Kaspi layout.
func NewAdapter(logger logging.Logger, extractor PDFExtractor, profile *layout.Profile) *Adapter {
	if extractor == nil {
		extractor = NewNativeExtractor()
	}
	if profile == nil {
		profile = layout.MustDefault()
	}
	return &Adapter{
		BaseParser: parser.NewBaseParser(logger),
		extractor:  extractor,
		profile:    profile,
	}
}

// Extractor returns the configured text extractor.
func (a *Adapter) Extractor() PDFExtractor {
	return a.extractor
}

// Profile returns the statement layout in use.
func (a *Adapter) Profile() *layout.Profile {
	return a.profile
}

// ExtractText returns the normalised text layer of a statement.
func (a *Adapter) ExtractText(ctx context.Context, filePath string) (string, error) {
	return extractText(ctx, a.extractor, filePath, a.GetLogger())
}

// ParseFile extracts and parses a statement file.
func (a *Adapter) ParseFile(ctx context.Context, filePath string) ([]models.Transaction, error) {
	logger := a.GetLogger()
	logger.Info("Parsing PDF file",
		logging.Field{Key: logging.FieldInputFile, Value: filePath},
		logging.Field{Key: logging.FieldExtractor, Value: a.extractor.Name()})

	text, err := a.ExtractText(ctx, filePath)
	if err != nil {
		return nil, err
	}

	transactions, err := ParseText(text, a.profile, logger)
	if err != nil {
		return nil, err
	}
	if len(transactions) == 0 {
		logger.Warn("No transactions found in statement",
			logging.Field{Key: logging.FieldInputFile, Value: filePath})
	}
	return transactions, nil
}

// Parse copies r to a temporary PDF file and parses it.
func (a *Adapter) Parse(ctx context.Context, r io.Reader) ([]models.Transaction, error) {
	tempFile, err := os.CreateTemp("", "kaspi-*.pdf")
	if err != nil {
		return nil, fmt.Errorf("failed to create temporary PDF file: %w", err)
	}
	defer func() {
		if err := os.Remove(tempFile.Name()); err != nil {
			a.GetLogger().WithError(err).Warn("Failed to remove temporary file",
				logging.Field{Key: logging.FieldInputFile, Value: tempFile.Name()})
		}
	}()

	if _, err := io.Copy(tempFile, r); err != nil {
		_ = tempFile.Close()
		return nil, &parsererror.UnreadablePDFError{FilePath: tempFile.Name(), Reason: "cannot read input", Err: err}
	}
	if err := tempFile.Close(); err != nil {
		return nil, fmt.Errorf("failed to close temporary PDF file: %w", err)
	}

	return a.ParseFile(ctx, tempFile.Name())
}

// Convert parses inputFile, writes the CSV import file and returns the
// statement totals. An empty outputFile means the input path with a .csv
// extension. Nothing is written when parsing fails.
func (a *Adapter) Convert(ctx context.Context, inputFile, outputFile string) (report.Summary, error) {
	if outputFile == "" {
		outputFile = fileutils.DeriveOutputPath(inputFile)
	}

	transactions, err := a.ParseFile(ctx, inputFile)
	if err != nil {
		return report.Summary{}, err
	}

	summary := report.Summarize(transactions, a.profile.CurrencyCode)
	summary.Log(a.GetLogger())

	if err := a.WriteToCSV(transactions, outputFile); err != nil {
		return report.Summary{}, err
	}
	return summary, nil
}

// ConvertToCSV is Convert without the totals.
func (a *Adapter) ConvertToCSV(ctx context.Context, inputFile, outputFile string) error {
	_, err := a.Convert(ctx, inputFile, outputFile)
	return err
}

// ValidateFormat reports whether filePath is a readable statement with a
// transaction table. Unreadable or non-PDF files are reported as invalid;
// a missing file is an error.
func (a *Adapter) ValidateFormat(ctx context.Context, filePath string) (bool, error) {
	logger := a.GetLogger()
	logger.Info("Validating PDF format",
		logging.Field{Key: logging.FieldInputFile, Value: filePath})

	text, err := a.ExtractText(ctx, filePath)
	if err != nil {
		if parsererror.KindOf(err) == parsererror.KindUnreadablePDF {
			logger.WithError(err).Warn("PDF validation failed")
			return false, nil
		}
		return false, err
	}

	header, ok := hasTransactionTable(text, a.profile)
	if !ok {
		logger.Warn("No transaction table header found",
			logging.Field{Key: logging.FieldInputFile, Value: filePath})
		return false, nil
	}

	logger.Debug("Statement layout recognised",
		logging.Field{Key: logging.FieldLanguage, Value: header.Language})
	return true, nil
}
