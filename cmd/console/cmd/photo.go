package cmd

import (
	"github.com/spf13/cobra"
)

var photoCmd = &cobra.Command{
	Use:   "photo",
	Short: "Manage your profile photo",
}

var photoUploadCmd = &cobra.Command{
	Use:   "upload FILE",
	Short: "Upload a new profile photo",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return reported(app.UploadPhoto(cmd.Context(), args[0]))
	},
}

var photoSaveCmd = &cobra.Command{
	Use:   "save [PATH]",
	Short: "Download your profile photo",
	Long: `Download your profile photo. PATH may be a file or a directory; it
defaults to photo.<ext> in the working directory.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var path string
		if len(args) == 1 {
			path = args[0]
		}
		_, err := app.SavePhoto(cmd.Context(), path)
		return reported(err)
	},
}

var photoDeleteCmd = &cobra.Command{
	Use:   "delete",
	Short: "Remove your profile photo",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return reported(app.DeletePhoto(cmd.Context()))
	},
}

func init() {
	rootCmd.AddCommand(photoCmd)
	photoCmd.AddCommand(photoUploadCmd, photoSaveCmd, photoDeleteCmd)
}
