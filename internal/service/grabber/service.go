package grabber

//go:generate $MOCKGEN -source=service.go -destination=mocks/service_mock.go

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/oshokin/tube-grabber/internal/client/ytdlp"
	"github.com/oshokin/tube-grabber/internal/config"
	"github.com/oshokin/tube-grabber/internal/constants"
	"github.com/oshokin/tube-grabber/internal/logger"
)

// Service provides methods for downloading media through yt-dlp.
type Service interface {
	// Download executes the request and reports what was written.
	Download(ctx context.Context, req *DownloadRequest) (*DownloadReport, error)
	// PrintDownloadSummary prints a formatted summary of a finished download.
	PrintDownloadSummary(ctx context.Context, report *DownloadReport)
}

// ServiceImpl implements the download workflow on top of the yt-dlp client.
type ServiceImpl struct {
	// cfg contains the application configuration.
	cfg *config.Config
	// ytdlpClient runs yt-dlp.
	ytdlpClient ytdlp.Client
	// converterLocator finds ffmpeg.
	converterLocator ConverterLocator
	// tagProcessor writes metadata tags to audio files.
	tagProcessor TagProcessor
}

// NewService creates a download service instance with dependency-injected components.
func NewService(
	cfg *config.Config,
	ytdlpClient ytdlp.Client,
	converterLocator ConverterLocator,
	tagProcessor TagProcessor,
) Service {
	return &ServiceImpl{
		cfg:              cfg,
		ytdlpClient:      ytdlpClient,
		converterLocator: converterLocator,
		tagProcessor:     tagProcessor,
	}
}

// Download executes the request and reports what was written.
func (s *ServiceImpl) Download(ctx context.Context, req *DownloadRequest) (*DownloadReport, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	ctx = logger.WithKV(ctx, "format", req.Format.String())

	ffmpegLocation, err := s.resolveConverter(ctx, req.Format)
	if err != nil {
		return nil, err
	}

	if err = os.MkdirAll(req.OutputPath, constants.DefaultFolderPermissions); err != nil {
		return nil, fmt.Errorf("%w '%s': %w", ErrOutputDirectory, req.OutputPath, err)
	}

	report := &DownloadReport{
		Request:   req,
		StartTime: time.Now(),
	}

	logger.Infof(ctx, "Downloading %s from %s into %s", req.Format.Noun(), req.URL, req.OutputPath)

	result, err := s.ytdlpClient.Download(ctx, BuildDownloadOptions(s.cfg, req, ffmpegLocation))
	if err != nil {
		return nil, s.classifyClientError(err)
	}

	for _, item := range result.Items {
		s.processItem(ctx, report, item)
	}

	if len(report.Files) == 0 {
		logger.Warn(ctx, "yt-dlp finished without reporting any files")
	}

	report.EndTime = time.Now()

	return report, nil
}

// resolveConverter checks ffmpeg before yt-dlp runs.
// MP3 downloads cannot proceed without it. MP4 downloads fall back to pre-merged streams.
func (s *ServiceImpl) resolveConverter(ctx context.Context, format MediaFormat) (string, error) {
	path, err := s.converterLocator.Locate()
	if err != nil {
		if format == MediaFormatMP3 {
			return "", fmt.Errorf("%w: %w", ErrConversion, err)
		}

		logger.Warnf(ctx, "ffmpeg is not available, yt-dlp may fall back to a lower quality stream: %v", err)

		return "", nil
	}

	logger.Debugf(ctx, "Using ffmpeg at %s", path)

	// Only an explicitly configured converter is passed on, yt-dlp searches PATH itself.
	if s.cfg.FFmpegPath == "" {
		return "", nil
	}

	return path, nil
}

// classifyClientError maps yt-dlp client errors onto the service error classes.
func (s *ServiceImpl) classifyClientError(err error) error {
	switch {
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return err
	case errors.Is(err, ytdlp.ErrConversion):
		return fmt.Errorf("%w: %w", ErrConversion, err)
	case errors.Is(err, ytdlp.ErrEmptyURL):
		return fmt.Errorf("%w: %w", ErrInputValidation, err)
	default:
		return fmt.Errorf("%w: %w", ErrExternalService, err)
	}
}

// processItem records a finished file and tags it when it is an MP3.
func (s *ServiceImpl) processItem(ctx context.Context, report *DownloadReport, item *ytdlp.DownloadedItem) {
	stat, err := os.Stat(item.Path)
	if err != nil {
		logger.Warnf(ctx, "yt-dlp reported %s but it cannot be read: %v", item.Path, err)

		return
	}

	report.Files = append(report.Files, &DownloadedFile{
		Path:  item.Path,
		Title: item.Title,
		Size:  stat.Size(),
	})
	report.TotalBytes += stat.Size()

	logger.Infof(ctx, "Saved %s", item.Path)

	// Without ffmpeg yt-dlp keeps whatever container the source had.
	if !strings.EqualFold(filepath.Ext(item.Path), report.Request.Format.Extension()) {
		logger.Warnf(ctx, "%s is not a %s file, yt-dlp could not produce the requested format",
			item.Path, report.Request.Format)
	}

	if !s.cfg.WriteTags || report.Request.Format != MediaFormatMP3 {
		return
	}

	if err = s.tagProcessor.WriteTags(ctx, item); err != nil {
		logger.Warnf(ctx, "Failed to write tags to %s: %v", item.Path, err)

		return
	}

	report.TagsWritten++
}
