// Package extract dumps the text layer of a statement, for checking how a
// PDF is seen by the parser.
package extract

import (
	"fmt"
	"io"

	"fjacquet/kaspi-csv/cmd/root"
	"fjacquet/kaspi-csv/internal/fileutils"
	"fjacquet/kaspi-csv/internal/logging"
	"fjacquet/kaspi-csv/internal/parsererror"

	"github.com/spf13/cobra"
)

// Cmd represents the extract command
var Cmd = &cobra.Command{
	Use:   "extract <statement.pdf>",
	Short: "Print the extracted PDF text",
	Long: `Print the normalised text layer of a PDF exactly as the parser reads it,
to standard output or to the file given with --output.`,
	Args: cobra.ExactArgs(1),
	RunE: extractFunc,
}

func extractFunc(cmd *cobra.Command, args []string) error {
	input := args[0]
	text, err := root.GetContainer().GetParser().ExtractText(cmd.Context(), input)
	if err != nil {
		return err
	}

	output := root.SharedFlags.Output
	if output == "" {
		_, err = io.WriteString(cmd.OutOrStdout(), text)
		return err
	}

	err = fileutils.WriteFileAtomic(output, 0644, func(w io.Writer) error {
		_, err := io.WriteString(w, text)
		return err
	})
	if err != nil {
		return &parsererror.WriteError{FilePath: output, Err: err}
	}
	root.GetLogger().Info(fmt.Sprintf("Wrote extracted text (%d bytes)", len(text)),
		logging.Field{Key: logging.FieldInputFile, Value: input},
		logging.Field{Key: logging.FieldOutputFile, Value: output})
	return nil
}
