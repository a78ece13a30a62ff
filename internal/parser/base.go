// Package parser provides the base parser functionality and common interfaces.
package parser

import (
	"fjacquet/kaspi-csv/internal/common"
	"fjacquet/kaspi-csv/internal/logging"
	"fjacquet/kaspi-csv/internal/models"
)

// BaseParser provides the logger and CSV settings shared by parser
// implementations. Parsers embed it:
//
//	type MyParser struct {
//		BaseParser
//		// parser-specific fields
//	}
type BaseParser struct {
	logger     logging.Logger
	csvOptions common.CSVOptions
}

// NewBaseParser creates a BaseParser. A nil logger is replaced by an
// info-level text logger on stderr.
func NewBaseParser(logger logging.Logger) BaseParser {
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}

	return BaseParser{
		logger:     logger,
		csvOptions: common.DefaultCSVOptions(),
	}
}

// SetLogger implements LoggerConfigurable. A nil logger is ignored.
func (b *BaseParser) SetLogger(logger logging.Logger) {
	if logger != nil {
		b.logger = logger
	}
}

// GetLogger returns the current logger instance.
func (b *BaseParser) GetLogger() logging.Logger {
	return b.logger
}

// SetCSVOptions implements CSVConfigurable.
func (b *BaseParser) SetCSVOptions(opts common.CSVOptions) {
	b.csvOptions = opts
}

// CSVOptions returns the current CSV settings.
func (b *BaseParser) CSVOptions() common.CSVOptions {
	return b.csvOptions
}

// WriteToCSV writes transactions with the parser's CSV settings.
func (b *BaseParser) WriteToCSV(transactions []models.Transaction, csvFile string) error {
	return common.WriteTransactionsToCSV(transactions, csvFile, b.csvOptions, b.logger)
}
