package grabber

import "errors"

// Error classes. Every error returned by the service wraps exactly one of them.
var (
	// ErrInputValidation indicates an empty or malformed URL or an invalid choice.
	ErrInputValidation = errors.New("invalid input")
	// ErrExternalService indicates that extraction or download failed.
	ErrExternalService = errors.New("download failed")
	// ErrConversion indicates that the media converter is missing or failed.
	ErrConversion = errors.New("conversion failed")
)

// Specific causes wrapped together with an error class.
var (
	// ErrEmptyURL indicates that no URL was provided.
	ErrEmptyURL = errors.New("no URL provided")
	// ErrMalformedURL indicates that the URL cannot be parsed or has no host.
	ErrMalformedURL = errors.New("malformed URL")
	// ErrUnsupportedFormat indicates a format other than MP4 or MP3.
	ErrUnsupportedFormat = errors.New("unsupported format")
	// ErrUnsupportedScope indicates a scope other than single or playlist.
	ErrUnsupportedScope = errors.New("unsupported download scope")
	// ErrEmptyOutputPath indicates that no output directory was set.
	ErrEmptyOutputPath = errors.New("output directory cannot be empty")
	// ErrConverterNotFound indicates that ffmpeg could not be located.
	ErrConverterNotFound = errors.New("ffmpeg not found")
	// ErrOutputDirectory indicates that the output directory could not be created.
	ErrOutputDirectory = errors.New("failed to create output directory")
	// ErrEmptyFilePath indicates that a tag write was requested without a file.
	ErrEmptyFilePath = errors.New("file path cannot be empty")
)
