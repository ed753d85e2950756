package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/roach88/roster/internal/auth"
	"github.com/roach88/roster/internal/codec"
	"github.com/roach88/roster/internal/config"
	"github.com/roach88/roster/internal/persist"
	"github.com/roach88/roster/internal/schema"
	"github.com/roach88/roster/internal/store"
)

// AdminPasswordEnv supplies the admin password to one-shot commands.
const AdminPasswordEnv = "ROSTER_ADMIN_PASSWORD"

// session is everything a command needs once config and data are loaded.
type session struct {
	id        string
	cfg       *config.Config
	out       *OutputFormatter
	gateway   persist.Gateway
	store     *store.Store
	validator *schema.Validator
	gate      *auth.Gate
	corrupt   []*codec.CorruptError
}

// openSession loads config, installs the logger, opens the selected backend
// and restores the collection into a fresh store.
func openSession(ctx context.Context, opts *RootOptions, cmd *cobra.Command) (*session, error) {
	out := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, out.Fail(ExitCommandError, ErrCodeConfig, "failed to load config", err)
	}
	applyOverrides(cfg, opts)
	if err := cfg.Validate(); err != nil {
		return nil, out.Fail(ExitCommandError, ErrCodeConfig, "invalid settings", err)
	}

	id := uuid.NewString()
	slog.SetDefault(newLogger(cfg.Logging, opts.Verbose, cmd.ErrOrStderr()).With("session", id))

	validator, err := schema.New(cfg.Validation.MinAge, cfg.Validation.MaxAge)
	if err != nil {
		return nil, out.Fail(ExitCommandError, ErrCodeConfig, "invalid validation settings", err)
	}

	gw, err := openGateway(cfg)
	if err != nil {
		return nil, out.Fail(ExitCommandError, ErrCodeLoadFailed, "failed to open storage", err)
	}

	st := store.New()
	res, err := persist.Restore(ctx, gw, st)
	if err != nil {
		_ = gw.Close()
		return nil, out.Fail(ExitCommandError, ErrCodeLoadFailed, "failed to load students", err)
	}
	slog.Debug("students loaded", "location", gw.Location(), "records", st.Len(), "next_id", st.NextID())

	s := &session{
		id:        id,
		cfg:       cfg,
		out:       out,
		gateway:   gw,
		store:     st,
		validator: validator,
		gate:      auth.NewGate(cfg.Admin.ID, cfg.Admin.PasswordHash, cfg.Admin.MaxAttempts),
		corrupt:   res.Corrupt,
	}
	s.reportCorrupt()
	return s, nil
}

func applyOverrides(cfg *config.Config, opts *RootOptions) {
	if opts.Backend != "" {
		cfg.Data.Backend = opts.Backend
	}
	if opts.File != "" {
		if cfg.Data.Backend == config.BackendSQLite {
			cfg.Data.SQLitePath = opts.File
		} else {
			cfg.Data.Path = opts.File
		}
	}
}

func openGateway(cfg *config.Config) (persist.Gateway, error) {
	switch cfg.Data.Backend {
	case config.BackendSQLite:
		return persist.OpenSQLite(cfg.Data.SQLitePath)
	default:
		return persist.NewTextFile(cfg.Data.Path), nil
	}
}

func (s *session) reportCorrupt() {
	if len(s.corrupt) == 0 {
		return
	}
	s.out.Warn("skipped %d corrupt line(s) in %s", len(s.corrupt), s.gateway.Location())
	for _, c := range s.corrupt {
		s.out.VerboseLog("  line %d: %s", c.Line, c.Reason)
	}
}

// save writes the whole collection. The store is left untouched on failure.
func (s *session) save(ctx context.Context) error {
	if err := s.gateway.Save(ctx, s.store.All()); err != nil {
		slog.Error("save failed", "location", s.gateway.Location(), "error", err)
		return err
	}
	slog.Info("students saved", "location", s.gateway.Location(), "records", s.store.Len())
	return nil
}

// msgSaveFailed is reported for E005. A text save truncates first, so the
// file on disk may hold only part of the records.
const msgSaveFailed = "failed to save students; the data file may be incomplete"

// saveOrFail saves and converts a failure into a reported ExitError.
func (s *session) saveOrFail(ctx context.Context) error {
	if err := s.save(ctx); err != nil {
		return s.out.Fail(ExitCommandError, ErrCodeSaveFailed, msgSaveFailed, err)
	}
	return nil
}

func (s *session) close() {
	if err := s.gateway.Close(); err != nil {
		slog.Error("error closing storage", "error", err)
	}
}

// authorize checks the flag or environment credentials of a mutating
// one-shot command. An open gate authorizes everything.
func (s *session) authorize(opts *RootOptions) error {
	if !s.gate.Enabled() {
		return nil
	}
	creds := auth.Credentials{ID: opts.AdminID, Password: opts.AdminPassword}
	if creds.ID == "" {
		creds.ID = s.cfg.Admin.ID
	}
	if creds.Password == "" {
		creds.Password = os.Getenv(AdminPasswordEnv)
	}
	if err := s.gate.Check(creds); err != nil {
		slog.Warn("admin check failed", "admin_id", creds.ID)
		return s.out.Fail(ExitCommandError, ErrCodeAuthFailed, "admin credentials required", err)
	}
	return nil
}

// invalidInput reports a validation failure with one detail per field.
func (s *session) invalidInput(err error) error {
	var verr *schema.ValidationError
	if errors.As(err, &verr) {
		details := make(map[string]string, len(verr.Fields))
		for _, f := range verr.Fields {
			details[f.Field] = f.Message
		}
		_ = s.out.Error(ErrCodeInvalidInput, verr.Error(), details)
		return NewExitError(ExitCommandError, ErrCodeInvalidInput+": "+verr.Error())
	}
	return s.out.Fail(ExitCommandError, ErrCodeInvalidInput, err.Error(), nil)
}

func (s *session) notFound(id int) error {
	return s.out.Fail(ExitFailure, ErrCodeNotFound, fmt.Sprintf("student %d not found", id), nil)
}

// parseID parses a positional student id.
func parseID(out *OutputFormatter, arg string) (int, error) {
	id, err := strconv.Atoi(arg)
	if err != nil {
		return 0, out.Fail(ExitCommandError, ErrCodeInvalidInput, fmt.Sprintf("invalid student id %q", arg), nil)
	}
	return id, nil
}

// withSession opens a session for the duration of fn.
func withSession(opts *RootOptions, cmd *cobra.Command, fn func(ctx context.Context, s *session) error) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	s, err := openSession(ctx, opts, cmd)
	if err != nil {
		return err
	}
	defer s.close()
	return fn(ctx, s)
}
