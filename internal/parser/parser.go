package parser

import (
	"context"
	"io"

	"fjacquet/kaspi-csv/internal/common"
	"fjacquet/kaspi-csv/internal/logging"
	"fjacquet/kaspi-csv/internal/models"
	"fjacquet/kaspi-csv/internal/report"
)

// Parser turns a statement into transactions in statement order.
type Parser interface {
	// Parse reads a statement from r. Implementations return the typed
	// errors of the parsererror package so callers can tell a missing input
	// from an unreadable one or from a layout mismatch.
	Parse(ctx context.Context, r io.Reader) ([]models.Transaction, error)
}

// Validator checks whether a file is a statement this parser understands.
type Validator interface {
	ValidateFormat(ctx context.Context, filePath string) (bool, error)
}

// CSVConverter converts a statement file into the CSV import file.
type CSVConverter interface {
	ConvertToCSV(ctx context.Context, inputFile, outputFile string) error
}

// StatementConverter converts a statement and reports its totals.
type StatementConverter interface {
	Convert(ctx context.Context, inputFile, outputFile string) (report.Summary, error)
}

// TextExtractor exposes the raw text layer a parser works from.
type TextExtractor interface {
	ExtractText(ctx context.Context, filePath string) (string, error)
}

// LoggerConfigurable is implemented by parsers whose logger can be swapped.
type LoggerConfigurable interface {
	SetLogger(logger logging.Logger)
}

// CSVConfigurable is implemented by parsers whose CSV output can be tuned.
type CSVConfigurable interface {
	SetCSVOptions(opts common.CSVOptions)
}

// FullParser is everything the commands need from a statement parser.
type FullParser interface {
	Parser
	Validator
	CSVConverter
	StatementConverter
	TextExtractor
	LoggerConfigurable
	CSVConfigurable
}
