package cmd

import (
	"github.com/spf13/cobra"

	"github.com/oshokin/tube-grabber/internal/app"
)

var (
	//nolint:gochecknoglobals // Cobra command requires a global definition.
	configCmd = &cobra.Command{
		Use:   "config",
		Short: "Configuration management commands",
		Long: `Manage the configuration file.

Use 'config init' to write a configuration file with default values.`,
	}

	//nolint:gochecknoglobals // Cobra command requires a global definition.
	configInitCmd = &cobra.Command{
		Use:   "init",
		Short: "Write the default configuration file",
		Long: `Writes every configuration key with its default value as YAML.

The file is written to the path given with --config, or to the default
configuration file in the current directory. An existing file is never overwritten.`,
		Args:              cobra.NoArgs,
		PersistentPreRunE: initLogLevel,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return app.ExecuteConfigInitCommand(cmd.Context(), configFilenameFromFlag, cmd.OutOrStdout())
		},
	}
)

//nolint:gochecknoinits // Cobra requires the init function to set up commands.
func init() {
	configCmd.AddCommand(configInitCmd)
	rootCmd.AddCommand(configCmd)
}
