// Package config loads the converter configuration. Every key has a default,
// so the tool runs without any file or environment set up. Values are layered:
// defaults, then an optional YAML file, then KASPI_* environment variables.
package config

import (
	"errors"
	"fmt"
	"strings"

	"fjacquet/kaspi-csv/internal/dateutils"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment override, e.g. KASPI_LOG_LEVEL.
const EnvPrefix = "KASPI"

// Extractor names accepted by pdf.extractor.
const (
	ExtractorNative    = "native"
	ExtractorPdftotext = "pdftotext"
)

// Config represents the complete application configuration
type Config struct {
	Log struct {
		Level  string `mapstructure:"level" yaml:"level"`
		Format string `mapstructure:"format" yaml:"format"`
	} `mapstructure:"log" yaml:"log"`

	CSV struct {
		Delimiter    string `mapstructure:"delimiter" yaml:"delimiter"`
		DateFormat   string `mapstructure:"date_format" yaml:"date_format"`
		QuoteAll     bool   `mapstructure:"quote_all" yaml:"quote_all"`
		RoundAmounts bool   `mapstructure:"round_amounts" yaml:"round_amounts"`
	} `mapstructure:"csv" yaml:"csv"`

	PDF struct {
		Extractor     string `mapstructure:"extractor" yaml:"extractor"`
		PdftotextPath string `mapstructure:"pdftotext_path" yaml:"pdftotext_path"`
	} `mapstructure:"pdf" yaml:"pdf"`

	Layout struct {
		// File points to a YAML layout profile replacing the built-in one.
		File string `mapstructure:"file" yaml:"file"`
	} `mapstructure:"layout" yaml:"layout"`
}

// Delimiter returns the CSV delimiter as a rune.
func (c *Config) Delimiter() rune {
	return []rune(c.CSV.Delimiter)[0]
}

// InitializeConfig builds the configuration. configFile, when not empty, is
// read instead of searching the default locations and must exist.
func InitializeConfig(configFile string) (*Config, error) {
	v := viper.New()

	setDefaults(v)

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("$HOME/.kaspi-csv")
		v.AddConfigPath(".kaspi-csv")
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// Default returns the configuration used when nothing overrides it.
func Default() *Config {
	v := viper.New()
	setDefaults(v)
	var config Config
	// Defaults are plain scalars; decoding them cannot fail.
	_ = v.Unmarshal(&config)
	return &config
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	v.SetDefault("csv.delimiter", ",")
	v.SetDefault("csv.date_format", "YYYY-MM-DD")
	v.SetDefault("csv.quote_all", false)
	v.SetDefault("csv.round_amounts", false)

	v.SetDefault("pdf.extractor", ExtractorNative)
	v.SetDefault("pdf.pdftotext_path", "pdftotext")

	v.SetDefault("layout.file", "")
}

func validateConfig(config *Config) error {
	if _, err := logrus.ParseLevel(config.Log.Level); err != nil {
		return fmt.Errorf("invalid log level: %s", config.Log.Level)
	}

	if config.Log.Format != "text" && config.Log.Format != "json" {
		return fmt.Errorf("invalid log format: %s (must be 'text' or 'json')", config.Log.Format)
	}

	if len([]rune(config.CSV.Delimiter)) != 1 {
		return fmt.Errorf("CSV delimiter must be a single character, got: %q", config.CSV.Delimiter)
	}

	if _, err := dateutils.LayoutFromPattern(config.CSV.DateFormat); err != nil {
		return fmt.Errorf("invalid csv.date_format: %w", err)
	}

	switch config.PDF.Extractor {
	case ExtractorNative, ExtractorPdftotext:
	default:
		return fmt.Errorf("invalid pdf.extractor: %s (must be '%s' or '%s')",
			config.PDF.Extractor, ExtractorNative, ExtractorPdftotext)
	}

	if config.PDF.Extractor == ExtractorPdftotext && config.PDF.PdftotextPath == "" {
		return fmt.Errorf("pdf.pdftotext_path is required with the pdftotext extractor")
	}

	return nil
}
