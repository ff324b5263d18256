package cmd

import (
	"fmt"

	"github.com/gookit/goutil"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/chiquitav2/user-console/pkg/api"
	"github.com/chiquitav2/user-console/pkg/errors"
)

var usersCmd = &cobra.Command{
	Use:     "users",
	Aliases: []string{"user"},
	Short:   "Manage user accounts",
}

var usersListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all users",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, err := app.ListUsers(cmd.Context())
		return reported(err)
	},
}

var usersShowCmd = &cobra.Command{
	Use:   "show ID",
	Short: "Show a single user",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		_, err = app.ShowUser(cmd.Context(), id)
		return reported(err)
	},
}

var usersCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a user",
	Long: `Create a user account.

Examples:
  user-console users create --first-name Ada --last-name Lovelace \
    --age 36 --email ada@example.com --password s3cret --role 1 --role 2`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		req, err := userRequestFromFlags(cmd.Flags())
		if err != nil {
			return err
		}
		_, err = app.CreateUser(cmd.Context(), req)
		return reported(err)
	},
}

var usersUpdateCmd = &cobra.Command{
	Use:   "update ID",
	Short: "Update a user",
	Long: `Update a user account. Flags left out keep the stored values, and
without --role the user keeps their current roles.

Examples:
  # Change only the last name
  user-console users update 7 --last-name Byron

  # Replace the roles
  user-console users update 7 --role 1 --role 2`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		req, err := userRequestFromFlags(cmd.Flags())
		if err != nil {
			return err
		}
		_, err = app.UpdateUser(cmd.Context(), id, req)
		return reported(err)
	},
}

var usersDeleteCmd = &cobra.Command{
	Use:   "delete ID",
	Short: "Delete a user",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		return reported(app.DeleteUser(cmd.Context(), id))
	},
}

var usersEnableCmd = &cobra.Command{
	Use:   "enable ID",
	Short: "Enable a disabled user",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		_, err = app.EnableUser(cmd.Context(), id)
		return reported(err)
	},
}

var usersDisableCmd = &cobra.Command{
	Use:   "disable ID",
	Short: "Disable a user without deleting it",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		_, err = app.DisableUser(cmd.Context(), id)
		return reported(err)
	},
}

func init() {
	rootCmd.AddCommand(usersCmd)
	usersCmd.AddCommand(usersListCmd, usersShowCmd, usersCreateCmd, usersUpdateCmd,
		usersDeleteCmd, usersEnableCmd, usersDisableCmd)

	addUserFlags(usersCreateCmd.Flags(), true)
	addUserFlags(usersUpdateCmd.Flags(), true)
}

// addUserFlags registers the editable user fields
func addUserFlags(flags *pflag.FlagSet, withRoles bool) {
	flags.String("first-name", "", "first name")
	flags.String("last-name", "", "last name")
	flags.String("age", "", "age in years")
	flags.String("email", "", "email address")
	flags.String("username", "", "login name")
	flags.String("password", "", "new password (omitted when empty)")
	if withRoles {
		flags.StringSlice("role", nil, "role id, repeatable")
	}
}

func userRequestFromFlags(flags *pflag.FlagSet) (*api.UserRequest, error) {
	req := &api.UserRequest{}
	req.FirstName, _ = flags.GetString("first-name")
	req.LastName, _ = flags.GetString("last-name")
	req.Email, _ = flags.GetString("email")
	req.Username, _ = flags.GetString("username")
	req.Password, _ = flags.GetString("password")

	if age, _ := flags.GetString("age"); age != "" {
		n, err := goutil.ToInt(age)
		if err != nil || n < 0 {
			return nil, errors.NewInputError(fmt.Sprintf("invalid age %q", age), err)
		}
		req.Age = n
	}

	if flags.Lookup("role") != nil {
		roles, _ := flags.GetStringSlice("role")
		for _, r := range roles {
			id, err := parseID(r)
			if err != nil {
				return nil, err
			}
			req.RoleIDs = append(req.RoleIDs, id)
		}
	}

	return req, nil
}

// parseID converts a positional id argument
func parseID(s string) (int64, error) {
	n, err := goutil.ToInt(s)
	if err != nil || n <= 0 {
		return 0, errors.NewInputError(fmt.Sprintf("invalid id %q", s), err)
	}
	return int64(n), nil
}
