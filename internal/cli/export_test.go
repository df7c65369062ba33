package cli

import (
	"omanvat/internal/app"

	"github.com/spf13/cobra"
)

// NewRootCmdForTest returns the root command running against a.
func NewRootCmdForTest(a *app.App) *cobra.Command {
	return newRootCmd(func() (*app.App, error) { return a, nil })
}
