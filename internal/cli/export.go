package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/roach88/roster/internal/export"
)

// ExportOptions holds flags for the export command.
type ExportOptions struct {
	*RootOptions
	XLSX string
}

// ExportResult is the JSON payload of the export command.
type ExportResult struct {
	Path     string `json:"path"`
	Students int    `json:"students"`
}

// NewExportCommand creates the export command.
func NewExportCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ExportOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export students to a spreadsheet",
		Long: `Write every student, in stored order, to an Excel workbook.

Example:
  roster export --xlsx students.xlsx`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(rootOpts, cmd, func(_ context.Context, s *session) error {
				return runExport(opts, s)
			})
		},
	}

	cmd.Flags().StringVar(&opts.XLSX, "xlsx", "", "path of the workbook to write (required)")
	_ = cmd.MarkFlagRequired("xlsx")

	return cmd
}

func runExport(opts *ExportOptions, s *session) error {
	records := s.store.All()
	if err := export.WriteXLSX(opts.XLSX, records); err != nil {
		return s.out.Fail(ExitCommandError, ErrCodeExportFailed, "failed to write workbook", err)
	}

	if s.out.IsJSON() {
		return s.out.Success(ExportResult{Path: opts.XLSX, Students: len(records)})
	}
	s.out.Notice("Exported %d student(s) to %s", len(records), opts.XLSX)
	return nil
}
