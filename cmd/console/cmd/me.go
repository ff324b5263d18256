package cmd

import (
	"github.com/spf13/cobra"
)

// meCmd shows the signed-in user's profile
var meCmd = &cobra.Command{
	Use:     "me",
	Aliases: []string{"profile"},
	Short:   "Show your profile",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, err := app.Profile(cmd.Context())
		return reported(err)
	},
}

// settingsCmd edits the signed-in user's own account
var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Update your own account",
	Long: `Update your own name, age, email or password. Flags left out keep
their current values, and roles cannot be changed here.

Examples:
  user-console settings --email ada@example.com`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		req, err := userRequestFromFlags(cmd.Flags())
		if err != nil {
			return err
		}
		_, err = app.UpdateSettings(cmd.Context(), req)
		return reported(err)
	},
}

func init() {
	rootCmd.AddCommand(meCmd, settingsCmd)
	addUserFlags(settingsCmd.Flags(), false)
}
