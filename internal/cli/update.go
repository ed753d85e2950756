package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/roach88/roster/internal/record"
)

// UpdateOptions holds flags for the update command.
type UpdateOptions struct {
	*RootOptions
	Name   string
	Age    int
	Email  string
	Course string
}

// NewUpdateCommand creates the update command.
func NewUpdateCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &UpdateOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Change fields of a student",
		Long: `Change fields of a student and save the collection.

Only the flags given are changed; every other field keeps its value.
An explicitly empty --email or --course clears that field.

Example:
  roster update 3 --age 21 --course Physics`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			patch := patchFromFlags(cmd, opts)
			return withSession(rootOpts, cmd, func(ctx context.Context, s *session) error {
				return runUpdate(ctx, opts, s, args[0], patch)
			})
		},
	}

	cmd.Flags().StringVar(&opts.Name, "name", "", "new name")
	cmd.Flags().IntVar(&opts.Age, "age", 0, "new age")
	cmd.Flags().StringVar(&opts.Email, "email", "", "new email")
	cmd.Flags().StringVar(&opts.Course, "course", "", "new course")

	return cmd
}

// patchFromFlags includes exactly the flags set on the command line.
func patchFromFlags(cmd *cobra.Command, opts *UpdateOptions) record.Patch {
	var p record.Patch
	if cmd.Flags().Changed("name") {
		p.Name = record.Some(opts.Name)
	}
	if cmd.Flags().Changed("age") {
		p.Age = record.Some(opts.Age)
	}
	if cmd.Flags().Changed("email") {
		p.Email = record.Some(opts.Email)
	}
	if cmd.Flags().Changed("course") {
		p.Course = record.Some(opts.Course)
	}
	return p
}

func runUpdate(ctx context.Context, opts *UpdateOptions, s *session, arg string, patch record.Patch) error {
	id, err := parseID(s.out, arg)
	if err != nil {
		return err
	}
	if err := s.authorize(opts.RootOptions); err != nil {
		return err
	}
	if patch.IsEmpty() {
		return s.out.Fail(ExitCommandError, ErrCodeInvalidInput, "nothing to update (give at least one of --name, --age, --email, --course)", nil)
	}
	if err := s.validator.Patch(patch); err != nil {
		return s.invalidInput(err)
	}

	updated, err := s.store.Update(id, patch)
	if err != nil {
		if record.IsNotFound(err) {
			return s.notFound(id)
		}
		return s.out.Fail(ExitCommandError, ErrCodeGeneric, "update failed", err)
	}
	if err := s.saveOrFail(ctx); err != nil {
		return err
	}

	if s.out.IsJSON() {
		return s.out.Success(updated)
	}
	s.out.Notice("Student %d updated.", updated.ID)
	return nil
}
