package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/roach88/roster/internal/record"
	"github.com/roach88/roster/internal/sorting"
)

// SortOptions holds flags for the sort command.
type SortOptions struct {
	*RootOptions
	By   string
	Desc bool
}

// SortResult is the JSON payload of the sort command.
type SortResult struct {
	Key       sorting.Key       `json:"key"`
	Direction sorting.Direction `json:"direction"`
	Students  []record.Record   `json:"students"`
}

// NewSortCommand creates the sort command.
func NewSortCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &SortOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "sort",
		Short: "Reorder students and save the new order",
		Long: `Stably reorder students by id, name or age and save the new order.

Names compare without regard to case. Students that tie keep their
previous relative order.

Example:
  roster sort --by name
  roster sort --by age --desc`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(rootOpts, cmd, func(ctx context.Context, s *session) error {
				return runSort(ctx, opts, s)
			})
		},
	}

	cmd.Flags().StringVar(&opts.By, "by", "id", "sort key (id|name|age)")
	cmd.Flags().BoolVar(&opts.Desc, "desc", false, "descending order")

	return cmd
}

func runSort(ctx context.Context, opts *SortOptions, s *session) error {
	key, err := sorting.ParseKey(opts.By)
	if err != nil {
		return s.out.Fail(ExitCommandError, ErrCodeInvalidInput, err.Error(), nil)
	}
	dir := sorting.Ascending
	if opts.Desc {
		dir = sorting.Descending
	}

	if err := s.authorize(opts.RootOptions); err != nil {
		return err
	}
	if err := sorting.SortBy(s.store, key, dir); err != nil {
		return s.out.Fail(ExitCommandError, ErrCodeInvalidInput, err.Error(), nil)
	}
	if err := s.saveOrFail(ctx); err != nil {
		return err
	}

	if s.out.IsJSON() {
		return s.out.Success(SortResult{Key: key, Direction: dir, Students: s.store.All()})
	}
	s.out.Notice("Sorted %d student(s) by %s (%s).", s.store.Len(), key, dir)
	return nil
}
