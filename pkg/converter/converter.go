// Package converter converts Kaspi Bank PDF statements to budgeting CSV files.
// It is the embeddable counterpart of the kaspi-csv command:
//
//	res, err := converter.Convert(ctx, "statement.pdf", converter.Options{})
//	if err != nil {
//		return err
//	}
//	fmt.Println(res.OutputFile, res.Count)
package converter

import (
	"context"

	"fjacquet/kaspi-csv/internal/config"
	"fjacquet/kaspi-csv/internal/container"
	"fjacquet/kaspi-csv/internal/fileutils"
	"fjacquet/kaspi-csv/internal/logging"
	"fjacquet/kaspi-csv/internal/pdfparser"

	"github.com/shopspring/decimal"
)

// Options tune a conversion. The zero value converts next to the input
// with the native extractor, comma delimiter and ISO dates.
type Options struct {
	// Output overrides the CSV path.
	Output string
	// Extractor is "native" or "pdftotext".
	Extractor     string
	PdftotextPath string
	Delimiter     rune
	// DateFormat is a pattern such as "YYYY-MM-DD" or "DD.MM.YYYY".
	DateFormat   string
	QuoteAll     bool
	RoundAmounts bool
	// LayoutFile replaces the built-in statement layout.
	LayoutFile string
	// LogLevel defaults to "warn" so embedding programs stay quiet.
	LogLevel string

	extractor pdfparser.PDFExtractor
	logger    logging.Logger
}

// Result describes a finished conversion.
type Result struct {
	OutputFile string
	Count      int
	Total      decimal.Decimal
	Inflow     decimal.Decimal
	Outflow    decimal.Decimal
	Currency   string
}

// Convert parses inputFile and writes its CSV file.
func Convert(ctx context.Context, inputFile string, opts Options) (*Result, error) {
	cfg := config.Default()
	cfg.Log.Level = "warn"
	if opts.LogLevel != "" {
		cfg.Log.Level = opts.LogLevel
	}
	if opts.Extractor != "" {
		cfg.PDF.Extractor = opts.Extractor
	}
	if opts.PdftotextPath != "" {
		cfg.PDF.PdftotextPath = opts.PdftotextPath
	}
	if opts.Delimiter != 0 {
		cfg.CSV.Delimiter = string(opts.Delimiter)
	}
	if opts.DateFormat != "" {
		cfg.CSV.DateFormat = opts.DateFormat
	}
	cfg.CSV.QuoteAll = opts.QuoteAll
	cfg.CSV.RoundAmounts = opts.RoundAmounts
	cfg.Layout.File = opts.LayoutFile

	var containerOpts []container.Option
	if opts.logger != nil {
		containerOpts = append(containerOpts, container.WithLogger(opts.logger))
	}
	if opts.extractor != nil {
		containerOpts = append(containerOpts, container.WithExtractor(opts.extractor))
	}

	c, err := container.NewContainer(cfg, containerOpts...)
	if err != nil {
		return nil, err
	}

	output := opts.Output
	if output == "" {
		output = fileutils.DeriveOutputPath(inputFile)
	}

	summary, err := c.GetParser().Convert(ctx, inputFile, output)
	if err != nil {
		return nil, err
	}

	return &Result{
		OutputFile: output,
		Count:      summary.Count,
		Total:      summary.Total,
		Inflow:     summary.Inflow,
		Outflow:    summary.Outflow,
		Currency:   summary.CurrencyCode,
	}, nil
}
