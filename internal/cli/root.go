package cli

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"omanvat/internal/app"
	"omanvat/internal/config"
	"omanvat/internal/database"
	"omanvat/internal/logging"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// appFactory builds the services a command runs against.
type appFactory func() (*app.App, error)

func newRootCmd(newApp appFactory) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:           "omanvat",
		Short:         "Oman VAT localization admin",
		Long:          "Installs the Oman VAT localization and manages per-company VAT settings and tax templates.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if output != "json" && output != "yaml" {
				return fmt.Errorf("--output must be json or yaml, got %q", output)
			}
			return nil
		},
	}
	cmd.PersistentFlags().StringVarP(&output, "output", "o", "json", "Output format for records (json|yaml)")
	cmd.AddCommand(newInstallCmd(newApp))
	cmd.AddCommand(newVATSettingCmd(newApp))
	cmd.AddCommand(newTaxTemplatesCmd(newApp))
	cmd.AddCommand(newCustomFieldsCmd())
	return cmd
}

func Execute() error {
	return newRootCmd(connect).Execute()
}

// connect loads the configuration and opens the database.
func connect() (*app.App, error) {
	cfg, err := config.Load(config.DefaultEnvFile)
	if err != nil {
		return nil, err
	}
	// stdout carries command output
	slog.SetDefault(logging.New(os.Stderr, cfg.LogLevel, cfg.LogFormat))

	db, err := database.NewConnection(cfg.DSN(), cfg.LogLevel == "debug")
	if err != nil {
		return nil, fmt.Errorf("connecting to database: %w", err)
	}
	return app.New(cfg, db, nil), nil
}

// printRecord writes v in the format chosen with --output. YAML keeps the JSON field names.
func printRecord(cmd *cobra.Command, v interface{}) error {
	out := cmd.OutOrStdout()
	if format, _ := cmd.Flags().GetString("output"); format != "yaml" {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	}

	raw, err := json.Marshal(v)
	if err != nil {
		return err
	}
	var generic interface{}
	if err := json.Unmarshal(raw, &generic); err != nil {
		return err
	}
	enc := yaml.NewEncoder(out)
	enc.SetIndent(2)
	defer enc.Close()
	return enc.Encode(generic)
}
