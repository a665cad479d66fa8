package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abdidvp/integrity/internal/adapters/outbound/config"
	"github.com/abdidvp/integrity/internal/adapters/outbound/tui"
)

func newChecksCmd(a *app) *cobra.Command {
	var (
		configPath string
		jsonOutput bool
	)

	cmd := &cobra.Command{
		Use:   "checks",
		Short: "List the configured checks",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.New().Load(configPath)
			if err != nil {
				return err
			}
			a.logger.Debug("loaded registry", "checks", len(cfg.Checks))

			if jsonOutput {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(cfg.Checks)
			}
			fmt.Fprint(cmd.OutOrStdout(), tui.RenderChecks(cfg.Checks))
			return nil
		},
	}

	cmd.Flags().StringVar(&configPath, "config", config.DefaultFileName, "Path to integrity.yaml (or its directory)")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")
	return cmd
}

func newValidateConfigCmd(a *app) *cobra.Command {
	var (
		configPath string
		noMail     bool
	)

	cmd := &cobra.Command{
		Use:   "validate-config",
		Short: "Load and validate integrity.yaml",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := config.Resolve(configPath)
			cfg, err := config.New().Load(configPath)
			if err != nil {
				return err
			}
			if !noMail {
				if err := cfg.ValidateDelivery(); err != nil {
					return fmt.Errorf("invalid %s: %w", path, err)
				}
			}
			a.logger.Debug("config valid", "path", path)
			fmt.Fprintf(cmd.OutOrStdout(), "%s is valid: %d checks, driver %s\n", path, len(cfg.Checks), cfg.Database.Driver)
			return nil
		},
	}

	cmd.Flags().StringVar(&configPath, "config", config.DefaultFileName, "Path to integrity.yaml (or its directory)")
	cmd.Flags().BoolVar(&noMail, "no-mail", false, "Skip validation of the smtp section")
	return cmd
}
