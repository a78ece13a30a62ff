// Package validate checks that a file is a Kaspi statement the converter can read.
package validate

import (
	"errors"
	"fmt"

	"fjacquet/kaspi-csv/cmd/root"

	"github.com/spf13/cobra"
)

// ErrNotStatement is returned when the file is readable but holds no
// transaction table.
var ErrNotStatement = errors.New("not a readable Kaspi statement")

// Cmd represents the validate command
var Cmd = &cobra.Command{
	Use:   "validate <statement.pdf>",
	Short: "Check a PDF is a convertible Kaspi statement",
	Long: `Extract the text layer of a PDF and look for the Kaspi transaction table
without writing anything. Exits non-zero when the file cannot be converted.`,
	Args: cobra.ExactArgs(1),
	RunE: validateFunc,
}

func validateFunc(cmd *cobra.Command, args []string) error {
	input := args[0]
	valid, err := root.GetContainer().GetParser().ValidateFormat(cmd.Context(), input)
	if err != nil {
		return err
	}
	if !valid {
		return fmt.Errorf("%s: %w", input, ErrNotStatement)
	}
	_, err = fmt.Fprintf(cmd.OutOrStdout(), "%s: valid Kaspi statement\n", input)
	return err
}
