package cmd

import (
	"github.com/spf13/cobra"
)

// dashboardCmd shows roles, users and the summary counts
var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Show the admin dashboard",
	Long: `Show roles, users and summary statistics. The three are loaded one
after another; a failing section is reported and the rest still shown.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return reported(app.Dashboard(cmd.Context()))
	},
}

func init() {
	rootCmd.AddCommand(dashboardCmd)
}
