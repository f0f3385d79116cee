package ytdlp

import "errors"

var (
	// ErrExecutableUnavailable indicates that yt-dlp could not be started.
	ErrExecutableUnavailable = errors.New("yt-dlp could not be started")
	// ErrExtraction indicates that yt-dlp failed to resolve or download the media.
	ErrExtraction = errors.New("extraction failed")
	// ErrConversion indicates that the media converter is missing or failed during post-processing.
	ErrConversion = errors.New("conversion failed")
	// ErrEmptyURL indicates that no URL was passed to the client.
	ErrEmptyURL = errors.New("url cannot be empty")
)
