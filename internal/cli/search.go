package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/roach88/roster/internal/query"
	"github.com/roach88/roster/internal/record"
)

// SearchOptions holds flags for the search command.
type SearchOptions struct {
	*RootOptions
	Name    string
	Course  string
	Compact bool
}

// NewSearchCommand creates the search command.
func NewSearchCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &SearchOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "search",
		Short: "Search students by name or course",
		Long: `List students whose name or course contains a fragment, ignoring case.

Example:
  roster search --name ali
  roster search --course math --compact`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(rootOpts, cmd, func(_ context.Context, s *session) error {
				return runSearch(opts, s)
			})
		},
	}

	cmd.Flags().StringVar(&opts.Name, "name", "", "name fragment")
	cmd.Flags().StringVar(&opts.Course, "course", "", "course fragment")
	cmd.Flags().BoolVar(&opts.Compact, "compact", false, "one line per student")
	cmd.MarkFlagsOneRequired("name", "course")
	cmd.MarkFlagsMutuallyExclusive("name", "course")

	return cmd
}

func runSearch(opts *SearchOptions, s *session) error {
	var matches []record.Record
	if opts.Name != "" {
		matches = query.SearchByName(s.store, opts.Name)
	} else {
		matches = query.SearchByCourse(s.store, opts.Course)
	}
	if matches == nil {
		matches = []record.Record{}
	}

	if s.out.IsJSON() {
		return s.out.Success(matches)
	}
	writeRecords(s.out.Writer, matches, opts.Compact)
	return nil
}
