package grabber

import (
	"context"
	"fmt"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/oshokin/tube-grabber/internal/logger"
	"github.com/oshokin/tube-grabber/internal/utils"
)

// formatDuration formats a duration into a human-readable string.
func formatDuration(d time.Duration) string {
	if d < time.Second {
		return fmt.Sprintf("%dms", d.Milliseconds())
	}

	hours := int(d.Hours())
	minutes := int(d.Minutes()) % 60
	seconds := int(d.Seconds()) % 60

	if hours > 0 {
		return fmt.Sprintf("%dh %dm %ds", hours, minutes, seconds)
	}

	if minutes > 0 {
		return fmt.Sprintf("%dm %ds", minutes, seconds)
	}

	return fmt.Sprintf("%ds", seconds)
}

// PrintDownloadSummary prints a formatted summary of a finished download.
func (s *ServiceImpl) PrintDownloadSummary(ctx context.Context, report *DownloadReport) {
	if report == nil {
		return
	}

	logger.Info(ctx, "")
	logger.Info(ctx, "═══════════════════════════════════════════════════════════════")
	logger.Info(ctx, "                     DOWNLOAD SUMMARY")
	logger.Info(ctx, "═══════════════════════════════════════════════════════════════")
	logger.Infof(ctx, "Location:         %s", report.Request.OutputPath)
	logger.Infof(ctx, "Format:           %s", report.Request.Format)
	logger.Infof(ctx, "Files:            %d", len(report.Files))

	for _, name := range utils.Map(report.Files, describeFile) {
		logger.Infof(ctx, "  %s", name)
	}

	logger.Infof(ctx, "Total Size:       %s", humanize.Bytes(utils.SafeInt64ToUint64(report.TotalBytes)))

	if report.TagsWritten > 0 {
		logger.Infof(ctx, "Tagged:           %d", report.TagsWritten)
	}

	if !report.StartTime.IsZero() && !report.EndTime.IsZero() {
		elapsed := report.EndTime.Sub(report.StartTime)
		logger.Infof(ctx, "Duration:         %s", formatDuration(elapsed))

		if seconds := elapsed.Seconds(); seconds > 0 && report.TotalBytes > 0 {
			speed := uint64(float64(report.TotalBytes) / seconds)
			logger.Infof(ctx, "Average Speed:    %s/s", humanize.Bytes(speed))
		}
	}

	logger.Info(ctx, "═══════════════════════════════════════════════════════════════")
}

// describeFile renders a file as "path (size)".
func describeFile(file *DownloadedFile) string {
	return fmt.Sprintf("%s (%s)", file.Path, humanize.Bytes(utils.SafeInt64ToUint64(file.Size)))
}
