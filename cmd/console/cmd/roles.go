package cmd

import (
	"github.com/spf13/cobra"

	"github.com/chiquitav2/user-console/pkg/api"
)

var rolesCmd = &cobra.Command{
	Use:     "roles",
	Aliases: []string{"role"},
	Short:   "Manage roles",
}

var rolesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all roles",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, err := app.ListRoles(cmd.Context())
		return reported(err)
	},
}

var rolesCreateCmd = &cobra.Command{
	Use:   "create NAME",
	Short: "Create a role",
	Long: `Create a role. Role names conventionally carry the ROLE_ prefix.

Examples:
  user-console roles create ROLE_AUDITOR --description "Read-only access"`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		desc, _ := cmd.Flags().GetString("description")
		_, err := app.CreateRole(cmd.Context(), &api.RoleRequest{Name: args[0], Description: desc})
		return reported(err)
	},
}

var rolesUpdateCmd = &cobra.Command{
	Use:   "update ID NAME",
	Short: "Rename a role or change its description",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		desc, _ := cmd.Flags().GetString("description")
		_, err = app.UpdateRole(cmd.Context(), id, &api.RoleRequest{Name: args[1], Description: desc})
		return reported(err)
	},
}

var rolesDeleteCmd = &cobra.Command{
	Use:   "delete ID",
	Short: "Delete a role",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		return reported(app.DeleteRole(cmd.Context(), id))
	},
}

func init() {
	rootCmd.AddCommand(rolesCmd)
	rolesCmd.AddCommand(rolesListCmd, rolesCreateCmd, rolesUpdateCmd, rolesDeleteCmd)

	rolesCreateCmd.Flags().String("description", "", "role description")
	rolesUpdateCmd.Flags().String("description", "", "role description")
}
