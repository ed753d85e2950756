package cli

import (
	"fmt"
	"slices"

	"github.com/spf13/cobra"

	"github.com/roach88/roster/internal/config"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose    bool
	Format     string // "json" | "text"
	ConfigPath string
	File       string // overrides the data path of the selected backend
	Backend    string // overrides data.backend

	AdminID       string
	AdminPassword string
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the root command for the roster CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "roster",
		Short: "roster - student record management",
		Long: `Manage a collection of student records stored in a flat text file
(or a SQLite database).

Run without a subcommand to open the interactive menu.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !isValidFormat(opts.Format) {
				return fmt.Errorf("invalid format %q: must be one of %v", opts.Format, ValidFormats)
			}
			if opts.Backend != "" && opts.Backend != config.BackendText && opts.Backend != config.BackendSQLite {
				return fmt.Errorf("invalid backend %q: must be text or sqlite", opts.Backend)
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShell(opts, cmd)
		},
	}

	// Global flags
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")
	cmd.PersistentFlags().StringVar(&opts.ConfigPath, "config", "", "config file (default ./roster.yaml or $XDG_CONFIG_HOME/roster/roster.yaml)")
	cmd.PersistentFlags().StringVar(&opts.File, "file", "", "data file or database path")
	cmd.PersistentFlags().StringVar(&opts.Backend, "backend", "", "storage backend (text|sqlite)")
	cmd.PersistentFlags().StringVar(&opts.AdminID, "admin-id", "", "admin id for changes when the gate is enabled")
	cmd.PersistentFlags().StringVar(&opts.AdminPassword, "admin-password", "", "admin password (or ROSTER_ADMIN_PASSWORD)")

	cmd.AddCommand(NewShellCommand(opts))
	cmd.AddCommand(NewAddCommand(opts))
	cmd.AddCommand(NewListCommand(opts))
	cmd.AddCommand(NewFindCommand(opts))
	cmd.AddCommand(NewSearchCommand(opts))
	cmd.AddCommand(NewUpdateCommand(opts))
	cmd.AddCommand(NewDeleteCommand(opts))
	cmd.AddCommand(NewSortCommand(opts))
	cmd.AddCommand(NewExportCommand(opts))
	cmd.AddCommand(NewConfigCommand(opts))
	cmd.AddCommand(NewTestCommand(opts))

	return cmd
}

// isValidFormat checks if the format is one of the allowed values.
func isValidFormat(format string) bool {
	return slices.Contains(ValidFormats, format)
}
