package ytdlp

//go:generate $MOCKGEN -source=client.go -destination=mocks/client_mock.go

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
	"time"

	"github.com/lrstanley/go-ytdlp"

	"github.com/oshokin/tube-grabber/internal/config"
	"github.com/oshokin/tube-grabber/internal/logger"
)

// progressUpdateInterval is how often yt-dlp progress callbacks are delivered.
const progressUpdateInterval = 250 * time.Millisecond

// Client defines the interface for invoking yt-dlp.
type Client interface {
	// Download runs yt-dlp synchronously and returns the files it finished.
	Download(ctx context.Context, opts *DownloadOptions) (*DownloadResult, error)
	// Install resolves a yt-dlp executable, downloading it into the cache when necessary.
	Install(ctx context.Context) (*InstallResult, error)
}

// ClientImpl implements the Client interface on top of go-ytdlp.
type ClientImpl struct {
	// executable is an explicit yt-dlp path. Empty means go-ytdlp resolves it.
	executable string
	// progress renders download progress.
	progress ProgressReporter
}

// NewClient creates a yt-dlp client.
func NewClient(cfg *config.Config, progress ProgressReporter) Client {
	if progress == nil {
		progress = NoopProgressReporter{}
	}

	return &ClientImpl{
		executable: strings.TrimSpace(cfg.YtDlpPath),
		progress:   progress,
	}
}

// Download runs yt-dlp synchronously and returns the files it finished.
func (c *ClientImpl) Download(ctx context.Context, opts *DownloadOptions) (*DownloadResult, error) {
	if strings.TrimSpace(opts.URL) == "" {
		return nil, ErrEmptyURL
	}

	ctx = logger.WithName(ctx, "ytdlp")

	logger.DebugKV(ctx, "Running yt-dlp",
		"url", opts.URL,
		"format", opts.Format,
		"extract_audio", opts.ExtractAudio,
		"no_playlist", opts.NoPlaylist,
		"output", opts.OutputTemplate)

	result, err := c.buildCommand(opts).Run(ctx, opts.URL)

	c.progress.Finish()

	if ctxErr := ctx.Err(); ctxErr != nil {
		return nil, ctxErr
	}

	if result == nil {
		if err == nil {
			err = fmt.Errorf("no result returned for %s", opts.URL)
		}

		return nil, fmt.Errorf("%w: %w", ErrExecutableUnavailable, err)
	}

	if isStartFailure(result, err) {
		return nil, fmt.Errorf("%w: %w", ErrExecutableUnavailable, err)
	}

	if err != nil || result.ExitCode != 0 {
		logger.DebugKV(ctx, "yt-dlp failed", "exit_code", result.ExitCode, "stderr", result.Stderr)

		return nil, classifyFailure(result.Stderr, result.ExitCode, err)
	}

	items, err := parseDownloadedItems(result.Stdout)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrExtraction, err)
	}

	return &DownloadResult{Items: items}, nil
}

// Install resolves a yt-dlp executable, downloading it into the cache when necessary.
// A configured executable is reported as is and never replaced by a cached one.
func (c *ClientImpl) Install(ctx context.Context) (*InstallResult, error) {
	if c.executable != "" {
		return c.inspectConfigured(ctx)
	}

	resolved, err := ytdlp.Install(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to install yt-dlp: %w", err)
	}

	return &InstallResult{
		Executable: resolved.Executable,
		Version:    resolved.Version,
	}, nil
}

// inspectConfigured checks the configured executable and asks it for its version.
func (c *ClientImpl) inspectConfigured(ctx context.Context) (*InstallResult, error) {
	path, err := exec.LookPath(c.executable)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrExecutableUnavailable, err)
	}

	result, err := ytdlp.New().SetExecutable(path).Version().Run(ctx)
	if err != nil {
		if result == nil || isStartFailure(result, err) {
			return nil, fmt.Errorf("%w: %w", ErrExecutableUnavailable, err)
		}

		return nil, fmt.Errorf("failed to read yt-dlp version from %s: %w", path, err)
	}

	return &InstallResult{
		Executable: path,
		Version:    strings.TrimSpace(result.Stdout),
	}, nil
}

// buildCommand translates the options into a go-ytdlp command.
// Every run aborts on the first failed item, a playlist never finishes partially.
func (c *ClientImpl) buildCommand(opts *DownloadOptions) *ytdlp.Command {
	cmd := ytdlp.New().
		Format(opts.Format).
		Output(opts.OutputTemplate).
		Print(itemPrintTemplate).
		AbortOnError()

	if logger.IsDebugLevel() {
		cmd = cmd.Verbose()
	}

	if c.executable != "" {
		cmd = cmd.SetExecutable(c.executable)
	}

	if opts.MergeOutputFormat != "" {
		cmd = cmd.MergeOutputFormat(opts.MergeOutputFormat)
	}

	if opts.ExtractAudio {
		cmd = cmd.ExtractAudio().
			AudioFormat(opts.AudioFormat).
			AudioQuality(opts.AudioQuality)
	}

	if opts.NoPlaylist {
		cmd = cmd.NoPlaylist()
	} else {
		cmd = cmd.YesPlaylist()
	}

	if opts.FFmpegLocation != "" {
		cmd = cmd.FFmpegLocation(opts.FFmpegLocation)
	}

	if opts.LimitRate > 0 {
		cmd = cmd.LimitRate(strconv.FormatInt(opts.LimitRate, 10))
	}

	if opts.RestrictFilenames {
		cmd = cmd.RestrictFilenames()
	}

	if opts.ShowProgress {
		cmd = cmd.ProgressFunc(progressUpdateInterval, func(update ytdlp.ProgressUpdate) {
			c.progress.Update(toProgressEvent(&update))
		})
	} else {
		cmd = cmd.NoProgress()
	}

	return cmd
}

// isStartFailure reports whether yt-dlp could not be started at all.
// go-ytdlp still returns a result in that case, with a negative exit code and no output.
func isStartFailure(result *ytdlp.Result, err error) bool {
	if err == nil {
		return false
	}

	var misconfig *ytdlp.ErrMisconfig
	if errors.As(err, &misconfig) {
		return true
	}

	return result.ExitCode < 0 && strings.TrimSpace(result.Stderr) == ""
}

func toProgressEvent(update *ytdlp.ProgressUpdate) ProgressEvent {
	var title string
	if update.Info != nil && update.Info.Title != nil {
		title = *update.Info.Title
	}

	return ProgressEvent{
		Title:           title,
		DownloadedBytes: int64(update.DownloadedBytes),
		TotalBytes:      int64(update.TotalBytes),
	}
}
