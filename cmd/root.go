package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/oshokin/tube-grabber/internal/app"
	"github.com/oshokin/tube-grabber/internal/config"
	"github.com/oshokin/tube-grabber/internal/logger"
	"github.com/oshokin/tube-grabber/internal/version"
)

// shutdownGracePeriod is how long an interrupted session may take to stop yt-dlp and report.
const shutdownGracePeriod = 5 * time.Second

// exitStatusError carries a session exit status through cobra.
type exitStatusError struct {
	status app.ExitStatus
}

func (e *exitStatusError) Error() string {
	return fmt.Sprintf("exit status %d", e.status)
}

var (
	//nolint:gochecknoglobals // It is required for configuration initialization before the application starts.
	configFilenameFromFlag string

	//nolint:gochecknoglobals,lll // It is initialized once during the application's startup and shared across the command execution logic.
	appConfig *config.Config

	//nolint:gochecknoglobals,lll // Cobra command requires a global definition for proper command-line parsing and execution.
	rootCmd = &cobra.Command{
		Use:   "tube-grabber",
		Short: "Download videos as MP4 or audio as MP3.",
		Long: `Tube Grabber is an interactive CLI for downloading online videos.
It asks for:
- The video or playlist URL
- The format: MP4 video (up to 1440p) or MP3 audio (192 Kbps)
- Whether to download a single video or the whole playlist
- The output directory

Downloading is done by yt-dlp, conversion by ffmpeg.`,
		Version:           version.Short(),
		Args:              cobra.NoArgs,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: initConfig,
		RunE: func(cmd *cobra.Command, _ []string) error {
			status := app.ExecuteRootCommand(cmd.Context(), appConfig, app.IOStreams{
				In:     cmd.InOrStdin(),
				Out:    cmd.OutOrStdout(),
				ErrOut: cmd.ErrOrStderr(),
			})
			if status != app.ExitSuccess {
				return &exitStatusError{status: status}
			}

			return nil
		},
	}
)

// Execute executes the root command and exits with its status.
func Execute() {
	signals := []os.Signal{syscall.SIGHUP, syscall.SIGINT, syscall.SIGTERM}
	ctx, stop := signal.NotifyContext(context.Background(), signals...)

	code := run(ctx, rootCmd, os.Args[1:])

	stop()

	_ = logger.Logger().Sync()

	os.Exit(code)
}

// run executes the command and waits for it, giving an interrupted session time to wind down.
func run(ctx context.Context, cmd *cobra.Command, args []string) int {
	done := make(chan int, 1)

	go func() {
		done <- executeCommand(ctx, cmd, args)
	}()

	select {
	case code := <-done:
		return code
	case <-ctx.Done():
	}

	select {
	case code := <-done:
		return code
	case <-time.After(shutdownGracePeriod):
		logger.Warn(ctx, "Session did not stop in time")

		return int(app.ExitInterrupted)
	}
}

// executeCommand runs the command and turns its error into an exit code.
func executeCommand(ctx context.Context, cmd *cobra.Command, args []string) int {
	cmd.SetArgs(args)

	err := cmd.ExecuteContext(ctx)
	if err == nil {
		return int(app.ExitSuccess)
	}

	var statusErr *exitStatusError
	if errors.As(err, &statusErr) {
		return int(statusErr.status)
	}

	_, _ = fmt.Fprintln(cmd.ErrOrStderr(), "Error:", err)

	return int(app.ExitFailure)
}

//nolint:gochecknoinits // Cobra requires the init function to set up flags before the command is executed.
func init() {
	rootCmd.PersistentFlags().StringVarP(
		&configFilenameFromFlag,
		"config",
		"c",
		"",
		fmt.Sprintf("path to the configuration file (default is '%s')",
			config.DefaultConfigFilename))

	rootCmd.PersistentFlags().String(
		"log-level",
		"",
		"log level: debug, info, warn, error (overrides the configuration file).")

	rootCmd.SetVersionTemplate("tube-grabber {{.Version}}\n")
}

func initConfig(cmd *cobra.Command, _ []string) error {
	cfg, err := config.LoadConfig(configFilenameFromFlag)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	if err = bindFlagsToConfig(cmd.Flags(), cfg); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	logger.SetLevel(cfg.ParsedLogLevel)

	if cfg.LogFile != "" {
		logger.EnableFileOutput(logger.FileSinkOptions{
			Filename:   cfg.LogFile,
			MaxSizeMB:  config.DefaultMaxLogSizeMB,
			MaxBackups: config.DefaultMaxLogBackups,
			Compress:   true,
		})
	}

	appConfig = cfg

	return nil
}

// initLogLevel applies only the log level flag, for commands that do not read the configuration.
func initLogLevel(cmd *cobra.Command, _ []string) error {
	flag := cmd.Flags().Lookup("log-level")
	if flag == nil || !flag.Changed {
		return nil
	}

	level, ok := logger.ParseLogLevel(flag.Value.String())
	if !ok {
		return fmt.Errorf("%w: '%s'", config.ErrUnknownLogLevel, flag.Value.String())
	}

	logger.SetLevel(level)

	return nil
}

func bindFlagsToConfig(flags *pflag.FlagSet, cfg *config.Config) error {
	if flag := flags.Lookup("log-level"); flag != nil && flag.Changed {
		cfg.LogLevel, _ = flags.GetString("log-level")
	}

	return config.ValidateConfig(cfg)
}
