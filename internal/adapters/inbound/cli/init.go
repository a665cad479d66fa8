package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abdidvp/integrity/internal/adapters/outbound/config"
	"github.com/abdidvp/integrity/internal/domain"
)

func newInitCmd() *cobra.Command {
	var (
		driver string
		force  bool
	)

	cmd := &cobra.Command{
		Use:   "init [dir]",
		Short: "Generate an integrity.yaml configuration file",
		Long:  "Create an integrity.yaml with the default report settings and one example check for the chosen driver.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "."
			if len(args) > 0 {
				path = args[0]
			}

			absPath, err := filepath.Abs(path)
			if err != nil {
				return fmt.Errorf("resolving path: %w", err)
			}

			dest := filepath.Join(absPath, config.DefaultFileName)

			if !force {
				if _, err := os.Stat(dest); err == nil {
					return fmt.Errorf("%s already exists (use --force to overwrite)", config.DefaultFileName)
				}
			}

			d := domain.Driver(strings.ToLower(driver))
			valid := false
			for _, vd := range domain.ValidDrivers {
				if d == vd {
					valid = true
					break
				}
			}
			if !valid {
				return fmt.Errorf("unknown driver %q (valid: sqlserver, mysql)", driver)
			}

			if err := os.WriteFile(dest, []byte(generateConfig(d)), 0644); err != nil {
				return fmt.Errorf("writing config: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Created %s\n", config.DefaultFileName)
			return nil
		},
	}

	cmd.Flags().StringVar(&driver, "driver", string(domain.DriverSQLServer), "Database driver (sqlserver, mysql)")
	cmd.Flags().BoolVar(&force, "force", false, "Overwrite existing integrity.yaml")

	return cmd
}

func generateConfig(d domain.Driver) string {
	defaults := domain.DefaultConfig()
	subjects := defaults.Report.Subjects

	port, sampleQuery := 1433, "SELECT CASE WHEN COUNT(*) = 0 THEN 'TRUE' ELSE 'FALSE' END AS Status, COUNT(*) AS Orphans FROM dbo.Orders o WHERE NOT EXISTS (SELECT 1 FROM dbo.Invoices i WHERE i.OrderId = o.Id)"
	if d == domain.DriverMySQL {
		port, sampleQuery = 3306, "SELECT IF(COUNT(*) = 0, 'TRUE', 'FALSE') AS Status, COUNT(*) AS Orphans FROM orders o WHERE NOT EXISTS (SELECT 1 FROM invoices i WHERE i.order_id = o.id)"
	}

	var b strings.Builder
	b.WriteString("# integrity configuration\n")
	b.WriteString("# ${VAR} references are expanded from the environment (a .env next to this file is loaded first).\n\n")

	fmt.Fprintf(&b, "database:\n  driver: %s\n  host: ${DB_HOST}\n  port: %d\n  name: ${DB_NAME}\n  user: ${DB_USER}\n  password: ${DB_PASSWORD}\n  connect_timeout: 30s\n\n", d, port)

	fmt.Fprintf(&b, "smtp:\n  host: ${SMTP_SERVER}\n  port: %d\n  use_tls: false\n  username: ${SMTP_USERNAME}\n  password: ${SMTP_PASSWORD}\n  to:\n    - ${REPORT_RECIPIENT}\n\n", defaults.SMTP.Port)

	fmt.Fprintf(&b, "report:\n  title: %s\n  subjects:\n    alert: %q\n    warning: %q\n    success: %q\n    fatal: %q\n\n",
		defaults.Report.Title, subjects.Alert, subjects.Warning, subjects.Success, subjects.Fatal)

	b.WriteString("checks:\n")
	b.WriteString("  - name: Orders without invoice\n")
	b.WriteString("    description: Every order has a matching invoice.\n")
	fmt.Fprintf(&b, "    query: %q\n", sampleQuery)
	b.WriteString("    status_check_column: Status\n")
	b.WriteString("    multi_row: false\n")

	return b.String()
}
