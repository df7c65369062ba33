package cli

import (
	"github.com/spf13/cobra"
)

func newInstallCmd(newApp appFactory) *cobra.Command {
	return &cobra.Command{
		Use:   "install",
		Short: "Grant permissions, register custom fields and enable the OMAN VAT report",
		Long:  "Applies the site-wide part of the localization. Safe to run repeatedly.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}

			summary, err := a.Setup.Install(cmd.Context())
			if err != nil {
				return err
			}
			return printRecord(cmd, summary)
		},
	}
}
