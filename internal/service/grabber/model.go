package grabber

import (
	"fmt"
	"strings"
	"time"

	"github.com/oshokin/tube-grabber/internal/constants"
)

// MediaFormat is the container the user asked for.
type MediaFormat uint8

const (
	// MediaFormatUnknown - format was not chosen.
	MediaFormatUnknown MediaFormat = iota
	// MediaFormatMP4 - video merged with audio into an MP4 container.
	MediaFormatMP4
	// MediaFormatMP3 - audio only, transcoded to MP3.
	MediaFormatMP3
)

// String returns a human-readable representation of the MediaFormat.
func (f MediaFormat) String() string {
	switch f {
	case MediaFormatUnknown:
		return "unknown"
	case MediaFormatMP4:
		return "mp4"
	case MediaFormatMP3:
		return "mp3"
	default:
		return fmt.Sprintf("unknown: %d", f)
	}
}

// Noun returns what the format downloads, for user messages.
func (f MediaFormat) Noun() string {
	if f == MediaFormatMP3 {
		return "audio"
	}

	return "video"
}

// Extension returns the file extension the format produces.
func (f MediaFormat) Extension() string {
	switch f {
	case MediaFormatMP4:
		return constants.ExtensionMP4
	case MediaFormatMP3:
		return constants.ExtensionMP3
	default:
		return ""
	}
}

// ParseMediaFormat parses the answer to the format prompt.
func ParseMediaFormat(value string) (MediaFormat, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "mp4":
		return MediaFormatMP4, nil
	case "mp3":
		return MediaFormatMP3, nil
	default:
		return MediaFormatUnknown, fmt.Errorf("%w: %w: '%s'", ErrInputValidation, ErrUnsupportedFormat, value)
	}
}

// DownloadScope chooses between a single item and a whole playlist.
type DownloadScope uint8

const (
	// DownloadScopeUnknown - scope was not chosen.
	DownloadScopeUnknown DownloadScope = iota
	// DownloadScopeSingle - only the resolved item.
	DownloadScopeSingle
	// DownloadScopePlaylist - every playlist entry.
	DownloadScopePlaylist
)

// String returns a human-readable representation of the DownloadScope.
func (s DownloadScope) String() string {
	switch s {
	case DownloadScopeUnknown:
		return "unknown"
	case DownloadScopeSingle:
		return "single"
	case DownloadScopePlaylist:
		return "playlist"
	default:
		return fmt.Sprintf("unknown: %d", s)
	}
}

// ParseDownloadScope parses the answer to the scope prompt ("1" or "2").
func ParseDownloadScope(value string) (DownloadScope, error) {
	switch strings.TrimSpace(value) {
	case "1":
		return DownloadScopeSingle, nil
	case "2":
		return DownloadScopePlaylist, nil
	default:
		return DownloadScopeUnknown, fmt.Errorf("%w: %w: '%s'", ErrInputValidation, ErrUnsupportedScope, value)
	}
}

// DownloadRequest is everything the user chose for one run.
type DownloadRequest struct {
	// URL is the video or playlist URL.
	URL string
	// Format is the requested media format.
	Format MediaFormat
	// Scope chooses between the single item and the whole playlist.
	Scope DownloadScope
	// OutputPath is the directory files are written to.
	OutputPath string
}

// Validate checks that every field of the request holds an allowed value.
func (r *DownloadRequest) Validate() error {
	if strings.TrimSpace(r.URL) == "" {
		return fmt.Errorf("%w: %w", ErrInputValidation, ErrEmptyURL)
	}

	if r.Format != MediaFormatMP4 && r.Format != MediaFormatMP3 {
		return fmt.Errorf("%w: %w: %s", ErrInputValidation, ErrUnsupportedFormat, r.Format)
	}

	if r.Scope != DownloadScopeSingle && r.Scope != DownloadScopePlaylist {
		return fmt.Errorf("%w: %w: %s", ErrInputValidation, ErrUnsupportedScope, r.Scope)
	}

	if strings.TrimSpace(r.OutputPath) == "" {
		return fmt.Errorf("%w: %w", ErrInputValidation, ErrEmptyOutputPath)
	}

	return nil
}

// DownloadedFile is a file written during the run.
type DownloadedFile struct {
	// Path is the path of the file.
	Path string
	// Title is the media title.
	Title string
	// Size is the file size in bytes.
	Size int64
}

// DownloadReport summarizes a finished run.
type DownloadReport struct {
	// Request is the request that was executed.
	Request *DownloadRequest
	// Files lists the files written.
	Files []*DownloadedFile
	// TotalBytes is the sum of all file sizes.
	TotalBytes int64
	// TagsWritten is the number of files that received ID3 tags.
	TagsWritten int64
	// StartTime is when the download started.
	StartTime time.Time
	// EndTime is when the download finished.
	EndTime time.Time
}
