package cli

import (
	"context"

	"github.com/spf13/cobra"
)

// ListOptions holds flags for the list command.
type ListOptions struct {
	*RootOptions
	Compact bool
}

// NewListCommand creates the list command.
func NewListCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ListOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:           "list",
		Short:         "Display all students",
		Long:          `Display every student in stored order, as a table or one line per student.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(rootOpts, cmd, func(_ context.Context, s *session) error {
				return runList(opts, s)
			})
		},
	}

	cmd.Flags().BoolVar(&opts.Compact, "compact", false, "one line per student")

	return cmd
}

func runList(opts *ListOptions, s *session) error {
	records := s.store.All()
	if s.out.IsJSON() {
		return s.out.Success(records)
	}
	writeRecords(s.out.Writer, records, opts.Compact)
	return nil
}
