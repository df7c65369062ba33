package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newTaxTemplatesCmd(newApp appFactory) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tax-templates",
		Short: "Manage the Oman tax templates of a company",
	}

	var company string
	importCmd := &cobra.Command{
		Use:   "import",
		Short: "Import the bundled Oman tax templates for an Oman company",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}

			summary, err := a.TaxTemplates.SetupTaxTemplates(cmd.Context(), company)
			if err != nil {
				return err
			}
			if summary == nil {
				return fmt.Errorf("company %s is not in Oman", company)
			}
			return printRecord(cmd, summary)
		},
	}
	importCmd.Flags().StringVar(&company, "company", "", "Company name")
	_ = importCmd.MarkFlagRequired("company")

	cmd.AddCommand(importCmd)
	return cmd
}
