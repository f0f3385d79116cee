package cmd

import (
	"github.com/spf13/cobra"

	"github.com/oshokin/tube-grabber/internal/app"
)

//nolint:gochecknoglobals // Cobra command requires a global definition.
var installCmd = &cobra.Command{
	Use:   "install",
	Short: "Make sure a yt-dlp executable is available",
	Long: `Locates yt-dlp, downloading the latest release into the user cache
directory when it is not installed, and prints where it is.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return app.ExecuteInstallCommand(cmd.Context(), appConfig, cmd.OutOrStdout())
	},
}

//nolint:gochecknoinits // Cobra requires the init function to set up commands.
func init() {
	rootCmd.AddCommand(installCmd)
}
