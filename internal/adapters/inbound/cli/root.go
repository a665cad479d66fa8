package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/abdidvp/integrity/internal/adapters/outbound/mailer"
	"github.com/abdidvp/integrity/internal/adapters/outbound/sqlsource"
	"github.com/abdidvp/integrity/internal/domain"
)

var (
	version = "dev"
	commit  = "none"
)

// Deps are the outbound adapters the commands wire together. Tests replace
// them to run without a database or mail server.
type Deps struct {
	Connector    domain.Connector
	NewTransport func(cfg domain.SMTPConfig, logger *slog.Logger) domain.Transport
}

func defaultDeps() Deps {
	return Deps{
		Connector: sqlsource.NewConnector(),
		NewTransport: func(cfg domain.SMTPConfig, logger *slog.Logger) domain.Transport {
			return mailer.New(cfg, logger)
		},
	}
}

// app is the state shared by all subcommands of one invocation.
type app struct {
	deps      Deps
	logLevel  string
	logFormat string
	logger    *slog.Logger
}

func newRootCmd(deps Deps) *cobra.Command {
	a := &app{deps: deps}

	cmd := &cobra.Command{
		Use:   "integrity",
		Short: "Run data-integrity checks and mail the report",
		Long: "Integrity runs a registry of SQL checks against a database, reduces each result to a status, " +
			"compiles a failures-first report and mails it with a subject that reflects the worst outcome.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			logger, err := newLogger(cmd.ErrOrStderr(), a.logLevel, a.logFormat)
			if err != nil {
				return err
			}
			a.logger = logger
			return nil
		},
	}
	cmd.PersistentFlags().StringVar(&a.logLevel, "log-level", "info", "Log level: debug, info, warn, error")
	cmd.PersistentFlags().StringVar(&a.logFormat, "log-format", "text", "Log format: text or json")

	cmd.AddCommand(newVersionCmd())
	cmd.AddCommand(newInitCmd())
	cmd.AddCommand(newRunCmd(a))
	cmd.AddCommand(newChecksCmd(a))
	cmd.AddCommand(newValidateConfigCmd(a))
	cmd.AddCommand(newMCPCmd(a))
	return cmd
}

// newLogger builds the process logger. Logs always go to w (stderr) so
// stdout stays clean for reports, JSON and the MCP stdio transport.
func newLogger(w io.Writer, level, format string) (*slog.Logger, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return nil, fmt.Errorf("invalid --log-level %q: %w", level, err)
	}
	opts := &slog.HandlerOptions{Level: lvl}

	switch strings.ToLower(format) {
	case "text", "":
		return slog.New(slog.NewTextHandler(w, opts)), nil
	case "json":
		return slog.New(slog.NewJSONHandler(w, opts)), nil
	default:
		return nil, fmt.Errorf("invalid --log-format %q (valid: text, json)", format)
	}
}

// NewRootCmdForTest returns the root command for testing.
func NewRootCmdForTest() *cobra.Command {
	return newRootCmd(defaultDeps())
}

// NewRootCmdWithDeps returns the root command wired to deps.
func NewRootCmdWithDeps(deps Deps) *cobra.Command {
	return newRootCmd(deps)
}

func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err := newRootCmd(defaultDeps()).ExecuteContext(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
	}
	return err
}
