package grabber

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestNormalizeURL tests URL trimming, scheme completion and validation.
func TestNormalizeURL(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		input       string
		expected    string
		expectedErr error
	}{
		{
			name:     "full URL",
			input:    "https://www.youtube.com/watch?v=dQw4w9WgXcQ",
			expected: "https://www.youtube.com/watch?v=dQw4w9WgXcQ",
		},
		{
			name:     "surrounding whitespace",
			input:    "  https://youtu.be/dQw4w9WgXcQ \n",
			expected: "https://youtu.be/dQw4w9WgXcQ",
		},
		{
			name:     "missing scheme",
			input:    "youtube.com/watch?v=abc",
			expected: "https://youtube.com/watch?v=abc",
		},
		{
			name:        "empty",
			input:       "   ",
			expectedErr: ErrEmptyURL,
		},
		{
			name:        "unsupported scheme",
			input:       "ftp://example.com/file",
			expectedErr: ErrMalformedURL,
		},
		{
			name:        "no host",
			input:       "https:///watch?v=abc",
			expectedErr: ErrMalformedURL,
		},
		{
			name:        "unparsable",
			input:       "http://[::1",
			expectedErr: ErrMalformedURL,
		},
	}

	up := NewURLProcessor()

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			result, err := up.NormalizeURL(tt.input)
			if tt.expectedErr != nil {
				require.ErrorIs(t, err, tt.expectedErr)
				require.ErrorIs(t, err, ErrInputValidation)
				assert.Empty(t, result)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.expected, result)
		})
	}
}

// TestIsPlaylistURL tests playlist detection.
func TestIsPlaylistURL(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		url      string
		expected bool
	}{
		{
			name:     "YouTube playlist page",
			url:      "https://www.youtube.com/playlist?list=PLrAXtmErZgOeiKm4sgNOknGvNjby9efdf",
			expected: true,
		},
		{
			name:     "video inside a playlist",
			url:      "https://www.youtube.com/watch?v=dQw4w9WgXcQ&list=PL123",
			expected: true,
		},
		{
			name:     "SoundCloud set",
			url:      "https://soundcloud.com/artist/sets/best-of",
			expected: true,
		},
		{
			name:     "generic playlist path",
			url:      "https://example.com/playlist/42",
			expected: true,
		},
		{
			name:     "playlist path without id",
			url:      "https://example.com/playlist",
			expected: true,
		},
		{
			name:     "single video",
			url:      "https://www.youtube.com/watch?v=dQw4w9WgXcQ",
			expected: false,
		},
		{
			name:     "short link",
			url:      "https://youtu.be/dQw4w9WgXcQ",
			expected: false,
		},
		{
			name:     "similar parameter name",
			url:      "https://example.com/watch?v=1&wishlist=abc",
			expected: false,
		},
		{
			name:     "similar path segment",
			url:      "https://example.com/playlisting/abc",
			expected: false,
		},
	}

	up := NewURLProcessor()

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.expected, up.IsPlaylistURL(tt.url))
		})
	}
}
