package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/stemracing/regulations/backend/go-services/internal/analysis"
)

// NewExplainCommand creates the explain command.
func NewExplainCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "explain [file|-]",
		Short:         "Summarize a regulation excerpt and list what it constrains",
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := readInput(cmd, args)
			if err != nil {
				return err
			}
			exp := analysis.Explain(text)
			return newFormatter(rootOpts, cmd).Emit(exp, func(w io.Writer) {
				fmt.Fprintln(w, exp.Summary)
				fmt.Fprintln(w)
				for _, b := range exp.Bullets {
					fmt.Fprintf(w, "- %s\n", b)
				}
			})
		},
	}
}
