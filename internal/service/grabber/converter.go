package grabber

//go:generate $MOCKGEN -source=converter.go -destination=mocks/converter_mock.go

import (
	"fmt"
	"os/exec"
	"strings"
)

// defaultConverterName is the executable looked up in PATH when no converter path is configured.
const defaultConverterName = "ffmpeg"

// ConverterLocator finds the media converter yt-dlp needs for merging and transcoding.
type ConverterLocator interface {
	// Locate returns the resolved converter path.
	Locate() (string, error)
}

// ConverterLocatorImpl locates ffmpeg by configured path or in PATH.
type ConverterLocatorImpl struct {
	// configuredPath is the ffmpeg path from the configuration, may be empty.
	configuredPath string
}

// NewConverterLocator creates a ConverterLocator for the configured path.
func NewConverterLocator(configuredPath string) ConverterLocator {
	return &ConverterLocatorImpl{
		configuredPath: strings.TrimSpace(configuredPath),
	}
}

// Locate returns the resolved converter path.
func (cl *ConverterLocatorImpl) Locate() (string, error) {
	name := cl.configuredPath
	if name == "" {
		name = defaultConverterName
	}

	path, err := exec.LookPath(name)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrConverterNotFound, err)
	}

	return path, nil
}
