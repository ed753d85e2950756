package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/roster/internal/auth"
	"github.com/roach88/roster/internal/config"
)

// redacted replaces the password hash in displayed config.
const redacted = "<set>"

// ConfigInitOptions holds flags for the config init command.
type ConfigInitOptions struct {
	*RootOptions
	Force    bool
	Password string
}

// NewConfigCommand creates the config command group.
func NewConfigCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Create or inspect the roster config file",
	}

	cmd.AddCommand(newConfigInitCommand(rootOpts))
	cmd.AddCommand(newConfigShowCommand(rootOpts))

	return cmd
}

func newConfigInitCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ConfigInitOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a config file with default settings",
		Long: `Write a config file with default settings to --config (default ./roster.yaml).

With --password the file enables the admin gate, storing only a
bcrypt hash of the password.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConfigInit(opts, cmd)
		},
	}

	cmd.Flags().BoolVar(&opts.Force, "force", false, "overwrite an existing file")
	cmd.Flags().StringVar(&opts.Password, "password", "", "enable the admin gate with this password")

	return cmd
}

func runConfigInit(opts *ConfigInitOptions, cmd *cobra.Command) error {
	out := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	path := opts.ConfigPath
	if path == "" {
		path = config.FileName
	}

	cfg := config.Default()
	applyOverrides(cfg, opts.RootOptions)
	if opts.AdminID != "" {
		cfg.Admin.ID = opts.AdminID
	}
	if opts.Password != "" {
		hash, err := auth.HashPassword(opts.Password)
		if err != nil {
			return out.Fail(ExitCommandError, ErrCodeConfig, "failed to hash admin password", err)
		}
		cfg.Admin.PasswordHash = hash
	}

	if err := config.Write(path, cfg, opts.Force); err != nil {
		return out.Fail(ExitCommandError, ErrCodeConfig, "failed to write config", err)
	}

	if out.IsJSON() {
		return out.Success(map[string]any{
			"path":       path,
			"admin_gate": cfg.Admin.PasswordHash != "",
		})
	}
	out.Notice("Wrote %s", path)
	return nil
}

func newConfigShowCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "show",
		Short:         "Print the effective configuration",
		Long:          `Print the configuration after applying the file, ROSTER_* variables and flags.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConfigShow(rootOpts, cmd)
		},
	}
}

func runConfigShow(opts *RootOptions, cmd *cobra.Command) error {
	out := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return out.Fail(ExitCommandError, ErrCodeConfig, "failed to load config", err)
	}
	applyOverrides(cfg, opts)
	if cfg.Admin.PasswordHash != "" {
		cfg.Admin.PasswordHash = redacted
	}

	if out.IsJSON() {
		return out.Success(cfg)
	}
	data, err := config.Encode(cfg)
	if err != nil {
		return out.Fail(ExitCommandError, ErrCodeConfig, "failed to encode config", err)
	}
	fmt.Fprint(out.Writer, string(data))
	return nil
}
