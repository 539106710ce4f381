package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/stemracing/regulations/backend/go-services/internal/analysis"
)

const (
	defaultCardCount = 5
	maxCardCount     = 20
)

// NewFlashcardsCommand creates the flashcards command.
func NewFlashcardsCommand(rootOpts *RootOptions) *cobra.Command {
	var (
		count int
		tag   string
	)
	cmd := &cobra.Command{
		Use:           "flashcards [file|-]",
		Short:         "Turn regulation sentences into question/answer cards",
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if count < 1 || count > maxCardCount {
				return &ExitError{Code: ExitCommandError, Message: fmt.Sprintf("--count must be between 1 and %d", maxCardCount)}
			}
			text, err := readInput(cmd, args)
			if err != nil {
				return err
			}
			var tagPtr *string
			if cmd.Flags().Changed("tag") {
				tagPtr = &tag
			}
			cards := analysis.GenerateFlashcards(text, count, tagPtr)
			f := newFormatter(rootOpts, cmd)
			f.VerboseLog("generated %d of %d requested cards", len(cards), count)
			return f.Emit(cards, func(w io.Writer) {
				for i, c := range cards {
					fmt.Fprintf(w, "%d. Q: %s\n   A: %s\n", i+1, c.Question, c.Answer)
				}
			})
		},
	}
	cmd.Flags().IntVarP(&count, "count", "n", defaultCardCount, "number of cards (1-20)")
	cmd.Flags().StringVar(&tag, "tag", "", "tag attached to every card")
	return cmd
}
