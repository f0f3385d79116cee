package app

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/google/uuid"

	"github.com/oshokin/tube-grabber/internal/config"
	"github.com/oshokin/tube-grabber/internal/logger"
	"github.com/oshokin/tube-grabber/internal/prompt"
	"github.com/oshokin/tube-grabber/internal/service/grabber"
	"github.com/oshokin/tube-grabber/internal/utils"
)

// ExitStatus is the process exit code of a session.
type ExitStatus int

// Exit statuses, one per error class.
const (
	// ExitSuccess - every requested file was downloaded.
	ExitSuccess ExitStatus = 0
	// ExitFailure - an unexpected or configuration error.
	ExitFailure ExitStatus = 1
	// ExitInputValidation - the URL or a choice was invalid, or input ended early.
	ExitInputValidation ExitStatus = 2
	// ExitExternalService - yt-dlp failed to extract or download.
	ExitExternalService ExitStatus = 3
	// ExitConversion - ffmpeg is missing or failed.
	ExitConversion ExitStatus = 4
	// ExitInterrupted - the session was interrupted by a signal.
	ExitInterrupted ExitStatus = 130
)

// Session messages.
const (
	bannerTitle     = "YouTube Downloader CLI"
	bannerUnderline = "======================"

	urlQuestion    = "Enter video URL: "
	formatQuestion = "Download as MP4 (video) or MP3 (audio)? [mp4/mp3]: "
	scopeQuestion  = "Download: 1. Single video 2. Playlist [1/2]: "
	outputQuestion = "Output directory (press Enter for '%s'): "

	invalidFormatMessage = "Invalid choice. Please enter 'mp4' or 'mp3'.\n"
	invalidScopeMessage  = "Invalid choice. Please enter '1' or '2'.\n"
	successMessage       = "Download completed successfully!\n"
)

// SessionController runs one interactive download session.
type SessionController struct {
	// cfg contains the application configuration.
	cfg *config.Config
	// prompter asks the questions and prints progress messages.
	prompter prompt.Prompter
	// urlProcessor validates URLs and detects playlists.
	urlProcessor grabber.URLProcessor
	// service performs the download.
	service grabber.Service
	// errOut receives failure messages.
	errOut io.Writer
}

// NewSessionController creates a session controller.
func NewSessionController(
	cfg *config.Config,
	prompter prompt.Prompter,
	urlProcessor grabber.URLProcessor,
	service grabber.Service,
	errOut io.Writer,
) *SessionController {
	return &SessionController{
		cfg:          cfg,
		prompter:     prompter,
		urlProcessor: urlProcessor,
		service:      service,
		errOut:       errOut,
	}
}

// Run asks for the download parameters, performs the download and returns the exit status.
func (c *SessionController) Run(ctx context.Context) ExitStatus {
	ctx = logger.WithKV(ctx, "session_id", uuid.NewString())

	c.prompter.Printf("%s\n%s\n", bannerTitle, bannerUnderline)

	req, err := c.collectRequest(ctx)
	if err != nil {
		return c.fail(ctx, err)
	}

	logger.DebugKV(ctx, "Download requested",
		"url", req.URL,
		"format", req.Format.String(),
		"scope", req.Scope.String(),
		"output_path", req.OutputPath)

	c.prompter.Printf("Downloading %s...\n", req.Format.Noun())

	report, err := c.service.Download(ctx, req)
	if err != nil {
		return c.fail(ctx, err)
	}

	c.service.PrintDownloadSummary(ctx, report)
	c.prompter.Printf(successMessage)
	c.prompter.Printf("Saved %d file(s) to %s\n", len(report.Files), req.OutputPath)

	return ExitSuccess
}

// collectRequest asks the four questions of a session.
func (c *SessionController) collectRequest(ctx context.Context) (*grabber.DownloadRequest, error) {
	answer, err := c.ask(ctx, urlQuestion)
	if err != nil {
		return nil, err
	}

	url, err := c.urlProcessor.NormalizeURL(answer)
	if err != nil {
		return nil, err
	}

	format, err := c.askFormat(ctx)
	if err != nil {
		return nil, err
	}

	scope := grabber.DownloadScopeSingle

	if c.urlProcessor.IsPlaylistURL(url) {
		scope, err = c.askScope(ctx)
		if err != nil {
			return nil, err
		}
	}

	outputPath, err := c.askOutputPath(ctx)
	if err != nil {
		return nil, err
	}

	return &grabber.DownloadRequest{
		URL:        url,
		Format:     format,
		Scope:      scope,
		OutputPath: outputPath,
	}, nil
}

// askFormat repeats the format question until the answer is valid.
func (c *SessionController) askFormat(ctx context.Context) (grabber.MediaFormat, error) {
	for {
		answer, err := c.ask(ctx, formatQuestion)
		if err != nil {
			return grabber.MediaFormatUnknown, err
		}

		format, err := grabber.ParseMediaFormat(answer)
		if err == nil {
			return format, nil
		}

		logger.Debugf(ctx, "Rejected format answer: %v", err)
		c.prompter.Printf(invalidFormatMessage)
	}
}

// askScope repeats the scope question until the answer is valid.
func (c *SessionController) askScope(ctx context.Context) (grabber.DownloadScope, error) {
	for {
		answer, err := c.ask(ctx, scopeQuestion)
		if err != nil {
			return grabber.DownloadScopeUnknown, err
		}

		scope, err := grabber.ParseDownloadScope(answer)
		if err == nil {
			return scope, nil
		}

		logger.Debugf(ctx, "Rejected scope answer: %v", err)
		c.prompter.Printf(invalidScopeMessage)
	}
}

// askOutputPath asks for the output directory, an empty answer selects the configured default.
func (c *SessionController) askOutputPath(ctx context.Context) (string, error) {
	answer, err := c.ask(ctx, fmt.Sprintf(outputQuestion, c.cfg.OutputPath))
	if err != nil {
		return "", err
	}

	if answer == "" {
		answer = c.cfg.OutputPath
	}

	return utils.ExpandHomeDir(answer), nil
}

// ask asks a question, treating the end of input as invalid input.
func (c *SessionController) ask(ctx context.Context, question string) (string, error) {
	answer, err := c.prompter.Ask(ctx, question)
	if errors.Is(err, prompt.ErrInputClosed) {
		return "", fmt.Errorf("%w: %w", grabber.ErrInputValidation, err)
	}

	return answer, err
}

// fail reports the error and returns the exit status of its class.
func (c *SessionController) fail(ctx context.Context, err error) ExitStatus {
	status := ExitStatusFor(err)

	logger.DebugKV(ctx, "Session failed", "error", err, "exit_status", int(status))

	switch {
	case errors.Is(err, grabber.ErrEmptyURL):
		_, _ = fmt.Fprintln(c.errOut, "No URL provided. Exiting.")
	case status == ExitInterrupted:
		_, _ = fmt.Fprintln(c.errOut, "Interrupted.")
	default:
		_, _ = fmt.Fprintf(c.errOut, "An error occurred: %v\n", err)
	}

	return status
}

// ExitStatusFor returns the exit status of an error class.
func ExitStatusFor(err error) ExitStatus {
	switch {
	case err == nil:
		return ExitSuccess
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return ExitInterrupted
	case errors.Is(err, grabber.ErrInputValidation):
		return ExitInputValidation
	case errors.Is(err, grabber.ErrConversion):
		return ExitConversion
	case errors.Is(err, grabber.ErrExternalService):
		return ExitExternalService
	default:
		return ExitFailure
	}
}
