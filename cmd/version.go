package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/oshokin/tube-grabber/internal/version"
)

//nolint:gochecknoglobals // Cobra command requires a global definition.
var versionCmd = &cobra.Command{
	Use:               "version",
	Short:             "Print version, commit and build time",
	Args:              cobra.NoArgs,
	PersistentPreRunE: initLogLevel,
	RunE: func(cmd *cobra.Command, _ []string) error {
		_, err := fmt.Fprintln(cmd.OutOrStdout(), "tube-grabber", version.Full())

		return err
	},
}

//nolint:gochecknoinits // Cobra requires the init function to set up commands.
func init() {
	rootCmd.AddCommand(versionCmd)
}
