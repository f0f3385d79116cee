package app

import (
	"context"
	"io"
	"os"

	"go.uber.org/zap/zapcore"

	"github.com/oshokin/tube-grabber/internal/client/ytdlp"
	"github.com/oshokin/tube-grabber/internal/config"
	"github.com/oshokin/tube-grabber/internal/logger"
	"github.com/oshokin/tube-grabber/internal/prompt"
	"github.com/oshokin/tube-grabber/internal/service/grabber"
)

// IOStreams are the console streams of a session.
type IOStreams struct {
	// In is where answers are read from.
	In io.Reader
	// Out receives questions and success messages.
	Out io.Writer
	// ErrOut receives failure messages and progress bars.
	ErrOut io.Writer
}

// ExecuteRootCommand is the entry point for the application.
// It initializes the yt-dlp client and the download service,
// runs one interactive session and returns its exit status.
func ExecuteRootCommand(ctx context.Context, cfg *config.Config, streams IOStreams) (status ExitStatus) {
	progress, showProgress := newProgressReporter(cfg, streams.ErrOut)

	// The session works on a copy, the decision about progress must not leak into cfg.
	sessionCfg := *cfg
	sessionCfg.ShowProgress = showProgress

	ytdlpClient := ytdlp.NewClient(&sessionCfg, progress)

	s := grabber.NewService(
		&sessionCfg,
		ytdlpClient,
		grabber.NewConverterLocator(cfg.FFmpegPath),
		grabber.NewTagProcessor(),
	)

	prompter := prompt.NewConsolePrompter(streams.In, streams.Out)
	defer prompter.Close()

	controller := NewSessionController(
		&sessionCfg,
		prompter,
		grabber.NewURLProcessor(),
		s,
		streams.ErrOut,
	)

	defer func() {
		if r := recover(); r != nil {
			logger.Errorf(ctx, "Panic recovered: %v", r)

			status = ExitFailure
		}
	}()

	return controller.Run(ctx)
}

// newProgressReporter draws progress bars only when they cannot garble logs or redirected output.
// The returned flag tells whether progress is shown at all.
func newProgressReporter(cfg *config.Config, out io.Writer) (ytdlp.ProgressReporter, bool) {
	file, isFile := out.(*os.File)

	if !cfg.ShowProgress || logger.Level() > zapcore.InfoLevel || !isFile || !ytdlp.IsTerminal(file) {
		return ytdlp.NoopProgressReporter{}, false
	}

	return ytdlp.NewBarProgressReporter(out), true
}
