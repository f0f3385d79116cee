package ytdlp_test

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/oshokin/tube-grabber/internal/client/ytdlp"
	mock_ytdlp "github.com/oshokin/tube-grabber/internal/client/ytdlp/mocks"
	"github.com/oshokin/tube-grabber/internal/config"
	"github.com/oshokin/tube-grabber/internal/constants"
)

const testPlaylistURL = "https://www.youtube.com/playlist?list=PL1"

// fakeExtractor is a shell script standing in for yt-dlp that records its arguments.
type fakeExtractor struct {
	path     string
	argsPath string
}

// newFakeExtractor writes a yt-dlp stand-in that records its arguments and then runs body.
func newFakeExtractor(t *testing.T, body string) *fakeExtractor {
	t.Helper()

	if runtime.GOOS == "windows" {
		t.Skip("shell scripts are not executable on Windows")
	}

	dir := t.TempDir()
	fake := &fakeExtractor{
		path:     filepath.Join(dir, "yt-dlp"),
		argsPath: filepath.Join(dir, "args.txt"),
	}

	script := "#!/bin/sh\n" +
		"for arg in \"$@\"; do printf '%s\\n' \"$arg\" >> '" + fake.argsPath + "'; done\n" +
		body + "\n"

	require.NoError(t, os.WriteFile(fake.path, []byte(script), constants.DefaultFolderPermissions))

	return fake
}

// args returns the arguments of the last run.
func (f *fakeExtractor) args(t *testing.T) []string {
	t.Helper()

	content, err := os.ReadFile(f.argsPath)
	require.NoError(t, err)

	return strings.Split(strings.TrimRight(string(content), "\n"), "\n")
}

// newClient returns a client running the executable.
func newClient(executable string, progress ytdlp.ProgressReporter) ytdlp.Client {
	cfg := config.Default()
	cfg.YtDlpPath = executable

	return ytdlp.NewClient(cfg, progress)
}

// TestDownload_Arguments tests the command line passed to yt-dlp.
func TestDownload_Arguments(t *testing.T) {
	t.Parallel()

	outputDir := t.TempDir()
	fake := newFakeExtractor(t,
		`echo 'tube-grabber-item:{"filepath": "`+filepath.Join(outputDir, "A.mp3")+`", "title": "A"}'`)

	result, err := newClient(fake.path, nil).Download(context.Background(), &ytdlp.DownloadOptions{
		URL:            testPlaylistURL,
		Format:         "bestaudio/best",
		ExtractAudio:   true,
		AudioFormat:    "mp3",
		AudioQuality:   "192K",
		OutputTemplate: filepath.Join(outputDir, "%(title)s.%(ext)s"),
		FFmpegLocation: "/opt/ffmpeg/bin/ffmpeg",
		LimitRate:      1_000_000,
	})
	require.NoError(t, err)
	require.Len(t, result.Items, 1)
	assert.Equal(t, "A", result.Items[0].Title)

	args := fake.args(t)
	assert.Contains(t, args, "--abort-on-error")
	assert.Contains(t, args, "--yes-playlist")
	assert.NotContains(t, args, "--no-playlist")
	assert.Contains(t, args, "--no-progress")
	assert.Contains(t, args, "--extract-audio")
	assert.Equal(t, testPlaylistURL, args[len(args)-1])

	assertFlagValue(t, args, "--format", "bestaudio/best")
	assertFlagValue(t, args, "--audio-format", "mp3")
	assertFlagValue(t, args, "--audio-quality", "192K")
	assertFlagValue(t, args, "--output", filepath.Join(outputDir, "%(title)s.%(ext)s"))
	assertFlagValue(t, args, "--ffmpeg-location", "/opt/ffmpeg/bin/ffmpeg")
	assertFlagValue(t, args, "--limit-rate", "1000000")
}

// TestDownload_SingleItemArguments tests the command line of a single video MP4 download.
func TestDownload_SingleItemArguments(t *testing.T) {
	t.Parallel()

	fake := newFakeExtractor(t, "exit 0")

	result, err := newClient(fake.path, nil).Download(context.Background(), &ytdlp.DownloadOptions{
		URL:               "https://www.youtube.com/watch?v=dQw4w9WgXcQ",
		Format:            "bestvideo[height<=1440]+bestaudio/best[height<=1440]",
		MergeOutputFormat: "mp4",
		OutputTemplate:    filepath.Join(t.TempDir(), "%(title)s.%(ext)s"),
		NoPlaylist:        true,
		RestrictFilenames: true,
	})
	require.NoError(t, err)
	assert.Empty(t, result.Items)

	args := fake.args(t)
	assert.Contains(t, args, "--abort-on-error")
	assert.Contains(t, args, "--no-playlist")
	assert.Contains(t, args, "--restrict-filenames")
	assert.NotContains(t, args, "--extract-audio")
	assertFlagValue(t, args, "--merge-output-format", "mp4")
}

// TestDownload_FailedItem tests that a failing item ends the run with an extraction error.
func TestDownload_FailedItem(t *testing.T) {
	t.Parallel()

	fake := newFakeExtractor(t, "echo 'ERROR: [youtube] abc: Video unavailable' >&2\nexit 1")

	result, err := newClient(fake.path, nil).Download(context.Background(), &ytdlp.DownloadOptions{
		URL:            testPlaylistURL,
		Format:         "bestaudio/best",
		OutputTemplate: filepath.Join(t.TempDir(), "%(title)s.%(ext)s"),
	})
	require.ErrorIs(t, err, ytdlp.ErrExtraction)
	assert.Contains(t, err.Error(), "Video unavailable")
	assert.Nil(t, result)
}

// TestDownload_MissingExecutable tests that a yt-dlp path that cannot be started is reported as such.
func TestDownload_MissingExecutable(t *testing.T) {
	t.Parallel()

	missing := filepath.Join(t.TempDir(), "missing-yt-dlp")

	result, err := newClient(missing, nil).Download(context.Background(), &ytdlp.DownloadOptions{
		URL:            testPlaylistURL,
		Format:         "bestaudio/best",
		OutputTemplate: filepath.Join(t.TempDir(), "%(title)s.%(ext)s"),
	})
	require.ErrorIs(t, err, ytdlp.ErrExecutableUnavailable)
	require.NotErrorIs(t, err, ytdlp.ErrExtraction)
	assert.Nil(t, result)
}

// TestDownload_CanceledContext tests that cancellation wins over any yt-dlp outcome.
func TestDownload_CanceledContext(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	progress := mock_ytdlp.NewMockProgressReporter(ctrl)
	progress.EXPECT().Finish().Times(1)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result, err := newClient(filepath.Join(t.TempDir(), "missing-yt-dlp"), progress).Download(ctx, &ytdlp.DownloadOptions{
		URL:            "https://www.youtube.com/watch?v=dQw4w9WgXcQ",
		Format:         "bestaudio/best",
		OutputTemplate: filepath.Join(t.TempDir(), "%(title)s.%(ext)s"),
		NoPlaylist:     true,
	})
	require.ErrorIs(t, err, context.Canceled)
	assert.Nil(t, result)
}

// TestInstall_ConfiguredExecutable tests that a configured yt-dlp is reported instead of a cached one.
func TestInstall_ConfiguredExecutable(t *testing.T) {
	t.Parallel()

	fake := newFakeExtractor(t, "echo 2025.09.26")

	result, err := newClient(fake.path, nil).Install(context.Background())
	require.NoError(t, err)
	assert.Equal(t, fake.path, result.Executable)
	assert.Equal(t, "2025.09.26", result.Version)
	assert.Contains(t, fake.args(t), "--version")

	_, err = newClient(filepath.Join(t.TempDir(), "missing-yt-dlp"), nil).Install(context.Background())
	require.ErrorIs(t, err, ytdlp.ErrExecutableUnavailable)
}

// assertFlagValue checks that flag is immediately followed by value.
func assertFlagValue(t *testing.T, args []string, flag, value string) {
	t.Helper()

	for i, arg := range args {
		if arg == flag {
			require.Less(t, i+1, len(args), "flag %s has no value", flag)
			assert.Equal(t, value, args[i+1], "value of %s", flag)

			return
		}
	}

	assert.Failf(t, "flag not passed", "%s is missing from %v", flag, args)
}
