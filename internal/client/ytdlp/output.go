package ytdlp

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/valyala/fastjson"
)

const (
	// itemMarker prefixes every line yt-dlp prints for a finished file.
	itemMarker = "tube-grabber-item:"

	// itemPrintTemplate makes yt-dlp print selected metadata of each file once it is moved into place.
	itemPrintTemplate = "after_move:" + itemMarker +
		"%(.{filepath,title,uploader,channel,playlist_title,playlist_index,playlist_count,n_entries,upload_date})j"

	// errorLinePrefix marks error lines in yt-dlp's stderr.
	errorLinePrefix = "ERROR:"
)

// conversionErrorMarkers are fragments of yt-dlp messages caused by a missing or failing converter.
//
//nolint:gochecknoglobals // Immutable lookup table.
var conversionErrorMarkers = []string{
	"ffmpeg not found",
	"ffprobe and ffmpeg not found",
	"ffmpeg is not installed",
	"ffmpeg-location",
	"postprocessing:",
	"audio conversion failed",
	"conversion failed",
}

// parseDownloadedItems extracts the finished files from yt-dlp's standard output.
// Lines without the item marker are ignored.
func parseDownloadedItems(stdout string) ([]*DownloadedItem, error) {
	var (
		parser  fastjson.Parser
		items   []*DownloadedItem
		scanner = bufio.NewScanner(strings.NewReader(stdout))
	)

	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		payload, ok := strings.CutPrefix(line, itemMarker)
		if !ok {
			continue
		}

		value, err := parser.Parse(payload)
		if err != nil {
			return nil, fmt.Errorf("failed to parse item metadata: %w", err)
		}

		item := &DownloadedItem{
			Path:          string(value.GetStringBytes("filepath")),
			Title:         string(value.GetStringBytes("title")),
			Uploader:      firstNonEmpty(string(value.GetStringBytes("uploader")), string(value.GetStringBytes("channel"))),
			PlaylistTitle: string(value.GetStringBytes("playlist_title")),
			PlaylistIndex: value.GetInt64("playlist_index"),
			PlaylistCount: value.GetInt64("playlist_count"),
			UploadDate:    string(value.GetStringBytes("upload_date")),
		}

		if item.PlaylistCount == 0 {
			item.PlaylistCount = value.GetInt64("n_entries")
		}

		if item.Path == "" {
			continue
		}

		items = append(items, item)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read yt-dlp output: %w", err)
	}

	return items, nil
}

// classifyFailure turns yt-dlp's stderr into an extraction or conversion error.
// Only ERROR lines are inspected, warnings never decide the class.
// runErr is reported only when stderr has no ERROR lines.
func classifyFailure(stderr string, exitCode int, runErr error) error {
	lines := errorLines(stderr)
	if len(lines) == 0 {
		if runErr != nil {
			return fmt.Errorf("%w: yt-dlp exited with code %d: %w", ErrExtraction, exitCode, runErr)
		}

		return fmt.Errorf("%w: yt-dlp exited with code %d", ErrExtraction, exitCode)
	}

	message := lines[len(lines)-1]

	for _, line := range lines {
		lowered := strings.ToLower(line)

		for _, marker := range conversionErrorMarkers {
			if strings.Contains(lowered, marker) {
				return fmt.Errorf("%w: %s", ErrConversion, line)
			}
		}
	}

	return fmt.Errorf("%w: %s", ErrExtraction, message)
}

// errorLines returns the "ERROR:" lines of stderr without their prefix.
func errorLines(stderr string) []string {
	var result []string

	for line := range strings.Lines(stderr) {
		line = strings.TrimSpace(line)
		if after, ok := strings.CutPrefix(line, errorLinePrefix); ok {
			result = append(result, strings.TrimSpace(after))
		}
	}

	return result
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}

	return ""
}
