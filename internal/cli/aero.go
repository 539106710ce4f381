package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/stemracing/regulations/backend/go-services/internal/analysis"
)

// NewAeroCommand creates the aero command.
func NewAeroCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "aero [file|-]",
		Short:         "List aerodynamic features mentioned in a text",
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := readInput(cmd, args)
			if err != nil {
				return err
			}
			hl := analysis.AeroHighlights(text)
			return newFormatter(rootOpts, cmd).Emit(hl, func(w io.Writer) {
				for _, h := range hl {
					fmt.Fprintf(w, "- %s\n", h)
				}
			})
		},
	}
}
