package application

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/abdidvp/integrity/internal/domain"
	"github.com/abdidvp/integrity/internal/domain/check"
	"github.com/abdidvp/integrity/internal/domain/report"
)

// ValidationService orchestrates one integrity run:
// connect -> execute checks -> compile report -> render -> deliver.
type ValidationService struct {
	connector domain.Connector
	transport domain.Transport
	renderer  domain.DocumentRenderer
	revision  domain.RevisionInfo
	logger    *slog.Logger
	now       func() time.Time
}

// Option customises a ValidationService.
type Option func(*ValidationService)

// WithRevision stamps reports with the commit of the repository holding the
// configuration file.
func WithRevision(r domain.RevisionInfo) Option {
	return func(s *ValidationService) { s.revision = r }
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(s *ValidationService) { s.now = now }
}

func NewValidationService(
	connector domain.Connector,
	transport domain.Transport,
	renderer domain.DocumentRenderer,
	logger *slog.Logger,
	opts ...Option,
) *ValidationService {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	s := &ValidationService{
		connector: connector,
		transport: transport,
		renderer:  renderer,
		logger:    logger,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// RunOptions selects what a run does beyond executing the checks.
type RunOptions struct {
	// DryRun compiles and renders the report without sending it.
	DryRun bool
	// Only restricts the run to the named checks, in registry order.
	Only []string
	// ConfigPath locates the repository used for the revision stamp.
	ConfigPath string
}

// RunResult is everything a caller needs to present one run. Fatal is set
// when the data source was unreachable and no check ran. DeliveryErr is set
// when the final send failed; it never makes the run itself fail.
type RunResult struct {
	Outcomes    []domain.CheckOutcome `json:"outcomes"`
	Document    *domain.Document      `json:"-"`
	Severity    domain.Severity       `json:"severity"`
	Subject     string                `json:"subject"`
	HTML        string                `json:"-"`
	Sent        bool                  `json:"sent"`
	Fatal       error                 `json:"-"`
	DeliveryErr error                 `json:"-"`
}

// Run executes the registry against the configured data source and delivers
// the report. The returned error is reserved for problems that prevent a
// report from being produced at all (bad selection, rendering failure).
func (s *ValidationService) Run(ctx context.Context, cfg domain.Config, opts RunOptions) (*RunResult, error) {
	checks, err := selectChecks(cfg.Checks, opts.Only)
	if err != nil {
		return nil, err
	}

	now := s.now()
	compileOpts := report.Options{
		Title:       cfg.Report.Title,
		SourceLabel: cfg.Report.SourceLabel,
		Now:         now,
		Revision:    s.lookupRevision(opts.ConfigPath),
	}

	src, err := s.connector.Connect(ctx, cfg.Database)
	if err != nil {
		return s.fatal(ctx, cfg, opts, compileOpts, err)
	}
	defer func() {
		if cerr := src.Close(); cerr != nil {
			s.logger.Warn("closing data source", "error", cerr)
		}
	}()

	s.logger.Info("running checks", "count", len(checks), "driver", cfg.Database.Driver)
	outcomes := check.NewExecutor(src, s.logger).RunAll(ctx, checks)

	doc := report.Compile(outcomes, compileOpts)
	result := &RunResult{
		Outcomes: outcomes,
		Document: doc,
		Severity: doc.Severity,
		Subject:  cfg.Report.Subjects.Subject(doc.Severity, now),
	}
	s.logger.Info("checks complete", "severity", result.Severity, "failing", doc.Summary.Failing, "total", doc.Summary.Total)

	if err := s.finish(ctx, cfg, opts, result); err != nil {
		return nil, err
	}
	return result, nil
}

// fatal builds and delivers the alert report for a run that could not reach
// the data source.
func (s *ValidationService) fatal(ctx context.Context, cfg domain.Config, opts RunOptions, compileOpts report.Options, cause error) (*RunResult, error) {
	s.logger.Error("startup connection failed", "driver", cfg.Database.Driver, "error", cause)

	doc := report.CompileFatal(cause, compileOpts)
	result := &RunResult{
		Document: doc,
		Severity: doc.Severity,
		Subject:  cfg.Report.Subjects.FatalSubject(compileOpts.Now),
		Fatal:    fmt.Errorf("%w: %w", domain.ErrStartupConnection, cause),
	}
	if err := s.finish(ctx, cfg, opts, result); err != nil {
		return nil, err
	}
	return result, nil
}

// finish renders the document and, unless this is a dry run, sends it.
func (s *ValidationService) finish(ctx context.Context, cfg domain.Config, opts RunOptions, result *RunResult) error {
	html, err := s.renderer.Render(result.Document)
	if err != nil {
		return fmt.Errorf("rendering report: %w", err)
	}
	result.HTML = html

	if opts.DryRun {
		s.logger.Info("dry run, report not sent", "subject", result.Subject)
		return nil
	}
	result.DeliveryErr = s.notify(ctx, cfg.SMTP, result.Subject, html)
	result.Sent = result.DeliveryErr == nil
	return nil
}

// notify sends the report. A failure is logged and returned wrapped in
// domain.ErrDelivery; it does not abort the run.
func (s *ValidationService) notify(ctx context.Context, smtp domain.SMTPConfig, subject, html string) error {
	if s.transport == nil {
		return fmt.Errorf("%w: no transport configured", domain.ErrDelivery)
	}
	msg := domain.Message{From: smtp.From, To: smtp.To, Subject: subject, HTML: html}
	if err := s.transport.Send(ctx, msg); err != nil {
		s.logger.Error("sending report", "recipients", len(smtp.To), "error", err)
		return fmt.Errorf("%w: %w", domain.ErrDelivery, err)
	}
	s.logger.Info("report sent", "recipients", len(smtp.To), "subject", subject)
	return nil
}

func (s *ValidationService) lookupRevision(configPath string) string {
	if s.revision == nil || configPath == "" {
		return ""
	}
	dir := filepath.Dir(configPath)
	if !s.revision.IsGitRepo(dir) {
		s.logger.Debug("config is not under version control", "path", configPath)
		return ""
	}
	hash, err := s.revision.CommitHash(dir)
	if err != nil {
		s.logger.Debug("no revision for config", "path", configPath, "error", err)
		return ""
	}
	return hash
}

// ErrUnknownCheck is returned when a selection names a check that is not in
// the registry.
var ErrUnknownCheck = errors.New("unknown check")

func selectChecks(registry domain.Registry, only []string) (domain.Registry, error) {
	if len(only) == 0 {
		return registry, nil
	}
	wanted := make(map[string]bool, len(only))
	for _, name := range only {
		if _, ok := registry.Find(name); !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownCheck, name)
		}
		wanted[name] = true
	}
	selected := make(domain.Registry, 0, len(wanted))
	for _, def := range registry {
		if wanted[def.Name] {
			selected = append(selected, def)
		}
	}
	return selected, nil
}
