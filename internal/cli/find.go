package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/roster/internal/query"
	"github.com/roach88/roster/internal/record"
)

// FindOptions holds flags for the find command.
type FindOptions struct {
	*RootOptions
	Binary bool
}

// FindResult is the JSON payload of the find command.
type FindResult struct {
	Student     record.Record `json:"student"`
	Method      string        `json:"method"`                // "linear" or "binary"
	Comparisons int           `json:"comparisons,omitempty"` // binary search only
}

// NewFindCommand creates the find command.
func NewFindCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &FindOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "find <id>",
		Short: "Find a student by id",
		Long: `Find a student by id.

With --binary the lookup bisects the collection and reports how many
comparisons it took. Binary search needs the students sorted by id; when
they are not, find falls back to a linear scan (run "roster sort --by id"
to make it possible).`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(rootOpts, cmd, func(_ context.Context, s *session) error {
				return runFind(opts, s, args[0])
			})
		},
	}

	cmd.Flags().BoolVar(&opts.Binary, "binary", false, "use binary search")

	return cmd
}

func runFind(opts *FindOptions, s *session, arg string) error {
	id, err := parseID(s.out, arg)
	if err != nil {
		return err
	}

	binary := opts.Binary
	if binary && !query.IsSortedByID(s.store) {
		s.out.Warn("students are not sorted by id; using linear search")
		binary = false
	}

	result := FindResult{Method: "linear"}
	if binary {
		result.Method = "binary"
		result.Student, result.Comparisons, err = query.BinarySearchByID(s.store, id)
	} else {
		result.Student, err = query.LinearSearchByID(s.store, id)
	}
	if err != nil {
		if record.IsNotFound(err) {
			return s.notFound(id)
		}
		return s.out.Fail(ExitFailure, ErrCodeGeneric, "search failed", err)
	}

	if s.out.IsJSON() {
		return s.out.Success(result)
	}
	writeRecords(s.out.Writer, []record.Record{result.Student}, false)
	if result.Method == "binary" {
		fmt.Fprintf(s.out.Writer, "Found with binary search in %d comparison(s).\n", result.Comparisons)
	}
	return nil
}
