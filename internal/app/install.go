package app

import (
	"context"
	"fmt"
	"io"

	"github.com/oshokin/tube-grabber/internal/client/ytdlp"
	"github.com/oshokin/tube-grabber/internal/config"
	"github.com/oshokin/tube-grabber/internal/logger"
)

// ExecuteInstallCommand makes sure a yt-dlp executable is available and prints where it is.
func ExecuteInstallCommand(ctx context.Context, cfg *config.Config, out io.Writer) error {
	return installExtractor(ctx, ytdlp.NewClient(cfg, nil), out)
}

func installExtractor(ctx context.Context, client ytdlp.Client, out io.Writer) error {
	logger.Info(ctx, "Resolving yt-dlp executable")

	result, err := client.Install(ctx)
	if err != nil {
		return err
	}

	logger.DebugKV(ctx, "yt-dlp resolved", "executable", result.Executable, "version", result.Version)

	_, err = fmt.Fprintf(out, "yt-dlp %s is available at %s\n", result.Version, result.Executable)

	return err
}
