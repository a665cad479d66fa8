package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/abdidvp/integrity/internal/adapters/outbound/config"
	"github.com/abdidvp/integrity/internal/adapters/outbound/gitinfo"
	"github.com/abdidvp/integrity/internal/adapters/outbound/htmlreport"
	"github.com/abdidvp/integrity/internal/adapters/outbound/tui"
	"github.com/abdidvp/integrity/internal/application"
	"github.com/abdidvp/integrity/internal/domain"
)

func newRunCmd(a *app) *cobra.Command {
	var (
		configPath string
		dryRun     bool
		jsonOutput bool
		htmlOut    string
		ciMode     bool
		only       []string
	)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run all checks and mail the report",
		Long: "Execute every check in the registry, compile the report and send it to the configured recipients. " +
			"A database that cannot be reached still produces a fatal alert report.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.New().Load(configPath)
			if err != nil {
				return err
			}
			if !dryRun {
				if err := cfg.ValidateDelivery(); err != nil {
					return fmt.Errorf("invalid %s: %w", config.Resolve(configPath), err)
				}
			}

			var transport domain.Transport
			if a.deps.NewTransport != nil {
				transport = a.deps.NewTransport(cfg.SMTP, a.logger)
			}
			svc := application.NewValidationService(
				a.deps.Connector,
				transport,
				htmlreport.New(),
				a.logger,
				application.WithRevision(gitinfo.New()),
			)

			res, err := svc.Run(cmd.Context(), cfg, application.RunOptions{
				DryRun:     dryRun,
				Only:       only,
				ConfigPath: config.Resolve(configPath),
			})
			if err != nil {
				return fmt.Errorf("run failed: %w", err)
			}

			if htmlOut != "" {
				if err := os.WriteFile(htmlOut, []byte(res.HTML), 0o644); err != nil {
					return fmt.Errorf("writing %s: %w", htmlOut, err)
				}
			}

			switch {
			case jsonOutput:
				if err := renderRunJSON(cmd, res); err != nil {
					return err
				}
			case dryRun:
				fmt.Fprint(cmd.OutOrStdout(), tui.RenderDocument(res.Document))
			default:
				renderRunSummary(cmd, res)
			}

			if ciMode && res.Severity == domain.SeverityAlert {
				return fmt.Errorf("integrity run finished with severity %s", res.Severity)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&configPath, "config", config.DefaultFileName, "Path to integrity.yaml (or its directory)")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Print the report instead of mailing it")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output outcomes as JSON")
	cmd.Flags().StringVar(&htmlOut, "html-out", "", "Also write the HTML report to this file")
	cmd.Flags().BoolVar(&ciMode, "ci", false, "CI mode: exit 1 when the run severity is alert")
	cmd.Flags().StringSliceVar(&only, "check", nil, "Run only the named checks (repeatable)")

	return cmd
}

// runJSON is the machine-readable view of a run.
type runJSON struct {
	Severity      domain.Severity       `json:"severity"`
	Subject       string                `json:"subject"`
	Sent          bool                  `json:"sent"`
	Fatal         string                `json:"fatal,omitempty"`
	DeliveryError string                `json:"delivery_error,omitempty"`
	Revision      string                `json:"revision,omitempty"`
	Outcomes      []domain.CheckOutcome `json:"outcomes"`
}

func renderRunJSON(cmd *cobra.Command, res *application.RunResult) error {
	out := runJSON{
		Severity: res.Severity,
		Subject:  res.Subject,
		Sent:     res.Sent,
		Outcomes: res.Outcomes,
	}
	if out.Outcomes == nil {
		out.Outcomes = []domain.CheckOutcome{}
	}
	if res.Fatal != nil {
		out.Fatal = res.Fatal.Error()
	}
	if res.DeliveryErr != nil {
		out.DeliveryError = res.DeliveryErr.Error()
	}
	if res.Document != nil {
		out.Revision = res.Document.Revision
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

func renderRunSummary(cmd *cobra.Command, res *application.RunResult) {
	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "%s\n", res.Subject)
	if res.Document != nil && res.Document.Fatal == "" {
		fmt.Fprintf(w, "%s\n", res.Document.Summary.Text)
	}
	switch {
	case res.Sent:
		fmt.Fprintln(w, "report sent")
	case res.DeliveryErr != nil:
		fmt.Fprintf(w, "report not sent: %v\n", res.DeliveryErr)
	}
}
