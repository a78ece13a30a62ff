package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"fjacquet/kaspi-csv/cmd/extract"
	"fjacquet/kaspi-csv/cmd/root"
	"fjacquet/kaspi-csv/cmd/validate"
	"fjacquet/kaspi-csv/internal/config"
	"fjacquet/kaspi-csv/internal/parsererror"
)

func init() {
	// Load .env before viper reads KASPI_* variables
	loadEnvSilently()

	root.Init()

	root.Cmd.AddCommand(validate.Cmd)
	root.Cmd.AddCommand(extract.Cmd)
}

// loadEnvSilently loads a .env file without logging anything; logging is
// only configured once the command runs.
func loadEnvSilently() {
	_, _ = config.LoadEnv()
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := root.Cmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, formatError(err))
		os.Exit(1)
	}
}

func formatError(err error) string {
	switch parsererror.KindOf(err) {
	case parsererror.KindInputNotFound:
		return fmt.Sprintf("Error: input not found: %v", err)
	case parsererror.KindUnreadablePDF:
		return fmt.Sprintf("Error: unreadable PDF: %v", err)
	case parsererror.KindUnrecognizedLayout:
		return fmt.Sprintf("Error: unrecognized statement layout: %v", err)
	case parsererror.KindOutputWriteFailure:
		return fmt.Sprintf("Error: cannot write output: %v", err)
	default:
		return fmt.Sprintf("Error: %v", err)
	}
}
