// Package root contains the root command for the application
package root

import (
	"fmt"
	"sync"

	"fjacquet/kaspi-csv/internal/config"
	"fjacquet/kaspi-csv/internal/container"
	"fjacquet/kaspi-csv/internal/fileutils"
	"fjacquet/kaspi-csv/internal/logging"

	"github.com/spf13/cobra"
)

// CommonFlags represents the flags that are common to all commands
type CommonFlags struct {
	Output     string
	Extractor  string
	ConfigFile string
}

var (
	// Cmd is the root command. Given a statement it converts it to CSV.
	Cmd = &cobra.Command{
		Use:   "kaspi-csv <statement.pdf>",
		Short: "Convert Kaspi Bank PDF statements to CSV for budgeting apps.",
		Long: `kaspi-csv reads a Kaspi Bank card or deposit statement in PDF form and
writes the transactions as a Date,Payee,Amount,Memo CSV file next to it,
ready to import into a budgeting application.`,
		Args:              cobra.ExactArgs(1),
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: setup,
		RunE:              convert,
	}

	// SharedFlags holds the values of the persistent flags.
	SharedFlags = CommonFlags{}

	appContainer     *container.Container
	containerOptions []container.Option
	initOnce         sync.Once
)

// Init registers the persistent flags. It is safe to call more than once.
func Init() {
	initOnce.Do(func() {
		Cmd.PersistentFlags().StringVarP(&SharedFlags.Output, "output", "o", "", "Output file (default: input path with a .csv extension)")
		Cmd.PersistentFlags().StringVar(&SharedFlags.Extractor, "extractor", "", "PDF text extractor: native or pdftotext (default from config)")
		Cmd.PersistentFlags().StringVar(&SharedFlags.ConfigFile, "config", "", "Config file (default: search $HOME/.kaspi-csv, .kaspi-csv and .)")
	})
}

// SetContainerOptions sets options applied when the container is built,
// letting tests inject loggers and extractors.
func SetContainerOptions(opts ...container.Option) {
	containerOptions = opts
}

// GetContainer returns the container built for the running command.
func GetContainer() *container.Container {
	return appContainer
}

// GetLogger returns the configured logger.
func GetLogger() logging.Logger {
	if appContainer == nil {
		return logging.NewLogrusAdapter("info", "text")
	}
	return appContainer.GetLogger()
}

func setup(cmd *cobra.Command, args []string) error {
	cfg, err := config.InitializeConfig(SharedFlags.ConfigFile)
	if err != nil {
		return err
	}
	if SharedFlags.Extractor != "" {
		cfg.PDF.Extractor = SharedFlags.Extractor
	}

	c, err := container.NewContainer(cfg, containerOptions...)
	if err != nil {
		return fmt.Errorf("failed to initialize: %w", err)
	}
	appContainer = c
	return nil
}

func convert(cmd *cobra.Command, args []string) error {
	input := args[0]
	output := SharedFlags.Output
	if output == "" {
		output = fileutils.DeriveOutputPath(input)
	}

	logger := GetLogger()
	logger.Info("Converting statement",
		logging.Field{Key: logging.FieldInputFile, Value: input},
		logging.Field{Key: logging.FieldOutputFile, Value: output})

	if err := GetContainer().GetParser().ConvertToCSV(cmd.Context(), input, output); err != nil {
		return err
	}

	logger.Info("Conversion completed successfully!",
		logging.Field{Key: logging.FieldOutputFile, Value: output})
	return nil
}
