package cli

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/stemracing/regulations/backend/go-services/internal/analysis"
	"github.com/stemracing/regulations/backend/go-services/internal/config"
	"github.com/stemracing/regulations/backend/go-services/internal/knowledge"
)

// LookupResult is what the lookup command prints.
type LookupResult struct {
	Query          string   `json:"query"`
	Car            string   `json:"car"`
	Summary        string   `json:"summary"`
	Outcome        string   `json:"outcome"`
	AeroHighlights []string `json:"aero_highlights"`
}

// NewLookupCommand creates the lookup command.
func NewLookupCommand(rootOpts *RootOptions) *cobra.Command {
	var (
		searchURL  string
		summaryURL string
		timeout    time.Duration
	)
	cmd := &cobra.Command{
		Use:           "lookup <query...>",
		Short:         "Look a car up in the encyclopedia and list its aero features",
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			query := strings.Join(args, " ")
			f := newFormatter(rootOpts, cmd)
			f.VerboseLog("searching %s for %q", searchURL, query)

			client := knowledge.NewClient(searchURL, summaryURL, timeout, "regtool/0.1")
			res := client.Lookup(cmd.Context(), query)
			out := LookupResult{
				Query:          query,
				Car:            res.Title,
				Summary:        res.Extract,
				Outcome:        string(res.Outcome),
				AeroHighlights: analysis.AeroHighlights(res.Extract),
			}
			if err := f.Emit(out, func(w io.Writer) {
				fmt.Fprintf(w, "%s\n\n%s\n\n", out.Car, out.Summary)
				for _, h := range out.AeroHighlights {
					fmt.Fprintf(w, "- %s\n", h)
				}
			}); err != nil {
				return err
			}
			if res.Outcome == knowledge.OutcomeFailed {
				return &ExitError{Code: ExitFailure, Message: "lookup failed"}
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&searchURL, "search-url", config.DefaultSearchURL, "encyclopedia search endpoint")
	cmd.Flags().StringVar(&summaryURL, "summary-url", config.DefaultSummaryURL, "page summary endpoint prefix")
	cmd.Flags().DurationVar(&timeout, "timeout", 15*time.Second, "per-request timeout")
	return cmd
}
