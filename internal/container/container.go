// Package container provides dependency injection for the kaspi-csv application.
// It centralizes the creation and wiring of all application dependencies,
// making them explicit and testable.
package container

import (
	"fmt"

	"fjacquet/kaspi-csv/internal/common"
	"fjacquet/kaspi-csv/internal/config"
	"fjacquet/kaspi-csv/internal/dateutils"
	"fjacquet/kaspi-csv/internal/layout"
	"fjacquet/kaspi-csv/internal/logging"
	"fjacquet/kaspi-csv/internal/parser"
	"fjacquet/kaspi-csv/internal/pdfparser"
)

// Container holds all application dependencies and provides methods to access them.
// It is immutable after creation.
type Container struct {
	logger    logging.Logger
	config    *config.Config
	profile   *layout.Profile
	extractor pdfparser.PDFExtractor
	parser    parser.FullParser
}

// Option overrides a dependency the container would otherwise build from config.
type Option func(*Container)

// WithLogger injects a logger instead of building one from cfg.Log.
func WithLogger(logger logging.Logger) Option {
	return func(c *Container) { c.logger = logger }
}

// WithExtractor injects a text extractor instead of the configured one.
func WithExtractor(extractor pdfparser.PDFExtractor) Option {
	return func(c *Container) { c.extractor = extractor }
}

// NewContainer creates and wires all application dependencies.
func NewContainer(cfg *config.Config, opts ...Option) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("configuration cannot be nil")
	}

	c := &Container{config: cfg}
	for _, opt := range opts {
		opt(c)
	}

	// Create logger first as it's needed by other components
	if c.logger == nil {
		c.logger = logging.NewLogrusAdapter(cfg.Log.Level, cfg.Log.Format)
	}

	profile, err := loadProfile(cfg)
	if err != nil {
		return nil, err
	}
	c.profile = profile

	if c.extractor == nil {
		c.extractor, err = NewExtractor(cfg)
		if err != nil {
			return nil, err
		}
	}

	csvOptions, err := CSVOptions(cfg)
	if err != nil {
		return nil, err
	}

	pdfParser := pdfparser.NewAdapter(c.logger, c.extractor, c.profile)
	pdfParser.SetCSVOptions(csvOptions)
	c.parser = pdfParser

	c.logger.Debug("Container initialized successfully",
		logging.Field{Key: logging.FieldExtractor, Value: c.extractor.Name()},
		logging.Field{Key: logging.FieldCurrency, Value: c.profile.CurrencyCode})

	return c, nil
}

func loadProfile(cfg *config.Config) (*layout.Profile, error) {
	if cfg.Layout.File == "" {
		return layout.Default()
	}
	return layout.Load(cfg.Layout.File)
}

// NewExtractor returns the text extractor selected by pdf.extractor.
func NewExtractor(cfg *config.Config) (pdfparser.PDFExtractor, error) {
	switch cfg.PDF.Extractor {
	case "", config.ExtractorNative:
		return pdfparser.NewNativeExtractor(), nil
	case config.ExtractorPdftotext:
		return pdfparser.NewPdftotextExtractor(cfg.PDF.PdftotextPath), nil
	default:
		return nil, fmt.Errorf("unknown PDF extractor: %s", cfg.PDF.Extractor)
	}
}

// CSVOptions translates the csv section of cfg into writer options.
func CSVOptions(cfg *config.Config) (common.CSVOptions, error) {
	layoutStr, err := dateutils.LayoutFromPattern(cfg.CSV.DateFormat)
	if err != nil {
		return common.CSVOptions{}, err
	}
	delimiter := ','
	if cfg.CSV.Delimiter != "" {
		delimiter = cfg.Delimiter()
	}
	return common.CSVOptions{
		Delimiter:    delimiter,
		DateLayout:   layoutStr,
		QuoteAll:     cfg.CSV.QuoteAll,
		RoundAmounts: cfg.CSV.RoundAmounts,
	}, nil
}

// GetParser returns the statement parser.
func (c *Container) GetParser() parser.FullParser {
	return c.parser
}

// GetLogger returns the container's logger instance.
func (c *Container) GetLogger() logging.Logger {
	return c.logger
}

// GetConfig returns the container's configuration instance.
func (c *Container) GetConfig() *config.Config {
	return c.config
}

// GetProfile returns the statement layout in use.
func (c *Container) GetProfile() *layout.Profile {
	return c.profile
}

// GetExtractor returns the PDF text extractor in use.
func (c *Container) GetExtractor() pdfparser.PDFExtractor {
	return c.extractor
}
