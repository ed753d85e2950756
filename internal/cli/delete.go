package cli

import (
	"context"
	"errors"

	"github.com/spf13/cobra"

	"github.com/roach88/roster/internal/record"
	"github.com/roach88/roster/internal/store"
)

// DeleteOptions holds flags for the delete command.
type DeleteOptions struct {
	*RootOptions
	Yes bool
}

// DeleteResult is the JSON payload of the delete command.
type DeleteResult struct {
	ID      int  `json:"id"`
	Deleted bool `json:"deleted"`
}

// NewDeleteCommand creates the delete command.
func NewDeleteCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &DeleteOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a student",
		Long: `Delete a student and save the collection.

Deleting is refused unless --yes is given. Ids are never reused.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(rootOpts, cmd, func(ctx context.Context, s *session) error {
				return runDelete(ctx, opts, s, args[0])
			})
		},
	}

	cmd.Flags().BoolVarP(&opts.Yes, "yes", "y", false, "confirm the deletion")

	return cmd
}

func runDelete(ctx context.Context, opts *DeleteOptions, s *session, arg string) error {
	id, err := parseID(s.out, arg)
	if err != nil {
		return err
	}
	if err := s.authorize(opts.RootOptions); err != nil {
		return err
	}

	if _, err := s.store.Delete(id, opts.Yes); err != nil {
		switch {
		case record.IsNotFound(err):
			return s.notFound(id)
		case errors.Is(err, store.ErrNotConfirmed):
			return s.out.Fail(ExitCommandError, ErrCodeNotConfirmed, "deletion not confirmed (pass --yes)", nil)
		default:
			return s.out.Fail(ExitCommandError, ErrCodeGeneric, "delete failed", err)
		}
	}
	if err := s.saveOrFail(ctx); err != nil {
		return err
	}

	if s.out.IsJSON() {
		return s.out.Success(DeleteResult{ID: id, Deleted: true})
	}
	s.out.Notice("Student %d deleted.", id)
	return nil
}
