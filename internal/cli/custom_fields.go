package cli

import (
	"fmt"
	"sort"

	"omanvat/internal/customfield"

	"github.com/spf13/cobra"
)

func newCustomFieldsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "custom-fields",
		Short: "Inspect the custom fields installed by the localization",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "validate",
		Short: "Validate the custom field definitions without touching the database",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			mapping := customfield.Oman()
			if err := mapping.Validate(); err != nil {
				return err
			}

			docTypes := make([]string, 0, len(mapping))
			for docType := range mapping {
				docTypes = append(docTypes, docType)
			}
			sort.Strings(docTypes)

			out := cmd.OutOrStdout()
			for _, docType := range docTypes {
				fmt.Fprintf(out, "%-24s %d\n", docType, len(mapping[docType]))
			}
			fmt.Fprintf(out, "%d fields on %d document types OK\n", mapping.Count(), len(docTypes))
			return nil
		},
	})

	return cmd
}
