package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/roach88/roster/internal/record"
)

// AddOptions holds flags for the add command.
type AddOptions struct {
	*RootOptions
	Name   string
	Age    int
	Email  string
	Course string
}

// NewAddCommand creates the add command.
func NewAddCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &AddOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a student",
		Long: `Add a student and save the collection.

The new student gets the next free id. A blank course is stored as
"Not Specified".

Example:
  roster add --name "Ada Lovelace" --age 19 --email ada@example.com --course Math`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(rootOpts, cmd, func(ctx context.Context, s *session) error {
				return runAdd(ctx, opts, s)
			})
		},
	}

	cmd.Flags().StringVar(&opts.Name, "name", "", "student name (required)")
	cmd.Flags().IntVar(&opts.Age, "age", 0, "student age (required)")
	cmd.Flags().StringVar(&opts.Email, "email", "", "email address")
	cmd.Flags().StringVar(&opts.Course, "course", "", "course name")

	return cmd
}

func runAdd(ctx context.Context, opts *AddOptions, s *session) error {
	if err := s.authorize(opts.RootOptions); err != nil {
		return err
	}

	draft := record.Draft{
		Name:   opts.Name,
		Age:    opts.Age,
		Email:  opts.Email,
		Course: opts.Course,
	}
	if err := s.validator.Draft(draft); err != nil {
		return s.invalidInput(err)
	}

	r := s.store.Add(draft)
	if err := s.saveOrFail(ctx); err != nil {
		return err
	}

	if s.out.IsJSON() {
		return s.out.Success(r)
	}
	s.out.Notice("Student %d added: %s", r.ID, r.Name)
	return nil
}
