package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/stemracing/regulations/backend/go-services/internal/ingest"
)

// NewExtractCommand creates the extract command.
func NewExtractCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "extract <file.pdf>",
		Short:         "Print the text layer of a local PDF",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return &ExitError{Code: ExitCommandError, Message: "reading pdf", Err: err}
			}
			text, err := ingest.PDFExtractor{}.Extract(data)
			if err != nil {
				return &ExitError{Code: ExitFailure, Message: "parsing pdf", Err: err}
			}
			if strings.TrimSpace(text) == "" {
				return &ExitError{Code: ExitFailure, Message: "could not extract text from PDF"}
			}
			out := struct {
				File string `json:"file"`
				Text string `json:"text"`
			}{File: args[0], Text: text}
			return newFormatter(rootOpts, cmd).Emit(out, func(w io.Writer) {
				fmt.Fprintln(w, text)
			})
		},
	}
}
