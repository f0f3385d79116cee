package grabber

//go:generate $MOCKGEN -source=url_processor.go -destination=mocks/url_processor_mock.go

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"github.com/oshokin/tube-grabber/internal/utils"
)

// URLProcessor defines the interface for checking the URLs the user enters.
type URLProcessor interface {
	// NormalizeURL trims the URL, adds a missing scheme and validates it.
	NormalizeURL(rawURL string) (string, error)
	// IsPlaylistURL reports whether the URL points at a playlist.
	IsPlaylistURL(rawURL string) bool
}

// URLProcessorImpl implements the URLProcessor interface.
type URLProcessorImpl struct{}

// defaultURLScheme is added to URLs entered without a scheme.
const defaultURLScheme = "https://"

// playlistPatterns match URLs that point at a playlist.
// The "ID" group holds the playlist identifier.
//
//nolint:gochecknoglobals // Immutable, pre-compiled regex patterns.
var playlistPatterns = []*regexp.Regexp{
	// YouTube watch or playlist URLs with a list parameter.
	regexp.MustCompile(`[?&]list=(?<ID>[\w-]+)`),
	// Generic playlist paths, e.g. /playlist/123 or /playlists/abc.
	regexp.MustCompile(`/playlists?(?:/(?<ID>[\w-]+))?/?(?:[?#]|$)`),
	// SoundCloud sets.
	regexp.MustCompile(`/sets/(?<ID>[\w-]+)`),
}

// NewURLProcessor creates and returns a new instance of URLProcessorImpl.
func NewURLProcessor() URLProcessor {
	return &URLProcessorImpl{}
}

// NormalizeURL trims the URL, adds a missing scheme and validates it.
func (up *URLProcessorImpl) NormalizeURL(rawURL string) (string, error) {
	rawURL = strings.TrimSpace(rawURL)
	if rawURL == "" {
		return "", fmt.Errorf("%w: %w", ErrInputValidation, ErrEmptyURL)
	}

	if !strings.Contains(rawURL, "://") {
		rawURL = defaultURLScheme + rawURL
	}

	parsed, err := url.Parse(rawURL)
	if err != nil {
		return "", fmt.Errorf("%w: %w: %w", ErrInputValidation, ErrMalformedURL, err)
	}

	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return "", fmt.Errorf("%w: %w: unsupported scheme '%s'", ErrInputValidation, ErrMalformedURL, parsed.Scheme)
	}

	if parsed.Host == "" || strings.ContainsAny(parsed.Host, " \t") {
		return "", fmt.Errorf("%w: %w: missing host in '%s'", ErrInputValidation, ErrMalformedURL, rawURL)
	}

	return parsed.String(), nil
}

// IsPlaylistURL reports whether the URL points at a playlist.
func (up *URLProcessorImpl) IsPlaylistURL(rawURL string) bool {
	return up.playlistID(rawURL) != "" || up.hasPlaylistPath(rawURL)
}

// playlistID returns the playlist identifier of the URL, if it has one.
func (up *URLProcessorImpl) playlistID(rawURL string) string {
	for _, pattern := range playlistPatterns {
		if id := utils.ExtractNamedGroup(pattern, "ID", rawURL); id != "" {
			return id
		}
	}

	return ""
}

// hasPlaylistPath catches playlist paths without an identifier, e.g. "/playlist?foo=bar".
func (up *URLProcessorImpl) hasPlaylistPath(rawURL string) bool {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return false
	}

	for segment := range strings.SplitSeq(strings.Trim(parsed.Path, "/"), "/") {
		if segment == "playlist" || segment == "playlists" || segment == "sets" {
			return true
		}
	}

	return false
}
