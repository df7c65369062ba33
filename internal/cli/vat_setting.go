package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newVATSettingCmd(newApp appFactory) *cobra.Command {
	var company string

	cmd := &cobra.Command{
		Use:   "vat-setting",
		Short: "Manage the Oman VAT setting of a company",
	}
	cmd.PersistentFlags().StringVar(&company, "company", "", "Company name")
	_ = cmd.MarkPersistentFlagRequired("company")

	cmd.AddCommand(&cobra.Command{
		Use:   "create",
		Short: "Create the VAT setting from the bundled template unless it exists",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}

			created, err := a.VATSettings.CreateIfAbsent(cmd.Context(), company)
			if err != nil {
				return err
			}
			if !created {
				fmt.Fprintf(cmd.OutOrStdout(), "Oman VAT setting for %s already exists\n", company)
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created Oman VAT setting for %s\n", company)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print the VAT setting as JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}

			setting, err := a.VATSettings.GetVATSetting(cmd.Context(), company)
			if err != nil {
				return err
			}
			return printRecord(cmd, setting)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "delete",
		Short: "Permanently delete the VAT setting",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}

			deleted, err := a.VATSettings.DeleteVATSetting(cmd.Context(), company)
			if err != nil {
				return err
			}
			if !deleted {
				return fmt.Errorf("no Oman VAT setting for %s", company)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted Oman VAT setting for %s\n", company)
			return nil
		},
	})

	return cmd
}
